package pos

import (
	"fmt"
	"strings"
	"testing"

	"tablecrm_cashier/internal/tablecrm"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDeriveReferenceDataDeduplicatesByFirstSeen(t *testing.T) {
	docs := []tablecrm.SalesDocument{
		{ID: 1, Organization: 5, Warehouse: 3},
		{ID: 2, Organization: 5, Warehouse: 9},
		{ID: 3, Organization: 7, Warehouse: 3},
	}

	refs := DeriveReferenceData(docs)

	require.Len(t, refs.Organizations, 2)
	assert.Equal(t, Organization{ID: 5, Name: "Организация 5"}, refs.Organizations[0])
	assert.Equal(t, Organization{ID: 7, Name: "Организация 7"}, refs.Organizations[1])

	require.Len(t, refs.Warehouses, 2)
	assert.Equal(t, Warehouse{ID: 3, Name: "Склад 3"}, refs.Warehouses[0])
	assert.Equal(t, Warehouse{ID: 9, Name: "Склад 9"}, refs.Warehouses[1])
}

func TestDeriveReferenceDataSkipsZeroIDs(t *testing.T) {
	docs := []tablecrm.SalesDocument{
		{ID: 1},
		{ID: 2, Organization: 4},
		{ID: 3, Warehouse: 6},
	}

	refs := DeriveReferenceData(docs)

	assert.Len(t, refs.Organizations, 1)
	assert.Len(t, refs.Warehouses, 1)
	assert.Empty(t, refs.Customers)
}

func TestDeriveReferenceDataUniqueIDs(t *testing.T) {
	var docs []tablecrm.SalesDocument
	for i := 0; i < 50; i++ {
		docs = append(docs, tablecrm.SalesDocument{
			ID:             int64(i + 1),
			Organization:   int64(i%4 + 1),
			Warehouse:      int64(i%3 + 1),
			Contragent:     int64(i%6 + 1),
			ContragentName: fmt.Sprintf("Клиент %d", i%6+1),
			Operation:      fmt.Sprintf("Операция %d", i%2),
		})
	}

	refs := DeriveReferenceData(docs)

	seenOrg := map[int64]bool{}
	for _, org := range refs.Organizations {
		assert.False(t, seenOrg[org.ID], "duplicate organization id %d", org.ID)
		seenOrg[org.ID] = true
		assert.Equal(t, fmt.Sprintf("Организация %d", org.ID), org.Name)
	}
	seenWh := map[int64]bool{}
	for _, w := range refs.Warehouses {
		assert.False(t, seenWh[w.ID], "duplicate warehouse id %d", w.ID)
		seenWh[w.ID] = true
		assert.Equal(t, fmt.Sprintf("Склад %d", w.ID), w.Name)
	}
	seenCust := map[int64]bool{}
	for _, c := range refs.Customers {
		assert.False(t, seenCust[c.ID], "duplicate customer id %d", c.ID)
		seenCust[c.ID] = true
	}
}

func TestDeriveReferenceDataCustomersRequireBothFields(t *testing.T) {
	docs := []tablecrm.SalesDocument{
		{ID: 1, Contragent: 11},
		{ID: 2, ContragentName: "Без id"},
		{ID: 3, Contragent: 12, ContragentName: "Полный"},
		{ID: 4, Contragent: 12, ContragentName: "Дубль"},
	}

	refs := DeriveReferenceData(docs)

	require.Len(t, refs.Customers, 1)
	assert.Equal(t, int64(12), refs.Customers[0].ID)
	assert.Equal(t, "Полный", refs.Customers[0].Name)
}

func TestDeriveReferenceDataSyntheticPhoneShape(t *testing.T) {
	docs := []tablecrm.SalesDocument{
		{ID: 1, Contragent: 1, ContragentName: "Клиент"},
	}

	refs := DeriveReferenceData(docs)

	require.Len(t, refs.Customers, 1)
	phone := refs.Customers[0].Phone
	assert.True(t, strings.HasPrefix(phone, "+7"), "phone %q must start with +7", phone)
	assert.Len(t, phone, 12)
	for _, r := range phone[2:] {
		assert.True(t, r >= '0' && r <= '9', "phone %q must be digits after +7", phone)
	}
}

func TestDeriveReferenceDataPriceTypes(t *testing.T) {
	docs := []tablecrm.SalesDocument{
		{ID: 1, Operation: "Заказ"},
		{ID: 2, Operation: "Продажа"},
		{ID: 3, Operation: "Заказ"},
		{ID: 4, Operation: "Возврат"},
	}

	refs := DeriveReferenceData(docs)

	require.Len(t, refs.PriceTypes, 3)
	assert.Equal(t, PriceType{ID: 1, Name: "Заказ"}, refs.PriceTypes[0])
	assert.Equal(t, PriceType{ID: 2, Name: "Продажа"}, refs.PriceTypes[1])
	assert.Equal(t, PriceType{ID: 3, Name: "Возврат"}, refs.PriceTypes[2])
}

func TestDeriveReferenceDataCatalogItems(t *testing.T) {
	docs := []tablecrm.SalesDocument{
		{ID: 1, Number: "A-1", Sum: 150},
		{ID: 2, Sum: 0},
		{ID: 3, Sum: -20},
		{ID: 4, Sum: 99.5},
	}

	refs := DeriveReferenceData(docs)

	require.Len(t, refs.CatalogItems, 2)
	assert.Equal(t, CatalogItem{ID: 45690, Name: "Товар из заказа №A-1", Price: 150}, refs.CatalogItems[0])
	assert.Equal(t, CatalogItem{ID: 45691, Name: "Товар из заказа №4", Price: 99.5}, refs.CatalogItems[1])
}

func TestDeriveReferenceDataCatalogCap(t *testing.T) {
	var docs []tablecrm.SalesDocument
	for i := 0; i < 25; i++ {
		docs = append(docs, tablecrm.SalesDocument{ID: int64(i + 1), Sum: float64(i + 1)})
	}

	refs := DeriveReferenceData(docs)

	require.Len(t, refs.CatalogItems, catalogItemLimit)
	for i, item := range refs.CatalogItems {
		assert.Equal(t, int64(catalogIDOffset+i), item.ID)
	}
}

func TestDeriveReferenceDataEmptyInput(t *testing.T) {
	refs := DeriveReferenceData(nil)

	assert.Empty(t, refs.Organizations)
	assert.Empty(t, refs.Warehouses)
	assert.Empty(t, refs.Customers)
	assert.Empty(t, refs.PriceTypes)
	assert.Empty(t, refs.CatalogItems)
}

func TestCustomerCandidatesCap(t *testing.T) {
	var docs []tablecrm.SalesDocument
	for i := 0; i < 15; i++ {
		docs = append(docs, tablecrm.SalesDocument{
			ID:             int64(i + 1),
			Contragent:     int64(i + 1),
			ContragentName: fmt.Sprintf("Клиент %d", i+1),
		})
	}

	refs := DeriveReferenceData(docs)

	candidates := refs.CustomerCandidates()
	require.Len(t, candidates, customerCandidateLimit)
	assert.Equal(t, refs.Customers[:customerCandidateLimit], candidates)
}
