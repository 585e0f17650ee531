package pos

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildPayload(t *testing.T) {
	d := NewDraft()
	d.Customer = "12"
	d.Organization = "5"
	d.Warehouse = "3"
	d.Paybox = "7"
	d.Lines = []LineItem{
		{Catalog: "45690", Price: "100", Quantity: "2", Discount: "10"},
		{Catalog: "45691", Price: "50", Quantity: "1", Discount: "0"},
	}

	now := time.Date(2026, 8, 28, 12, 0, 0, 0, time.UTC)
	payload := BuildPayload(d, true, now)

	assert.Equal(t, now.Unix(), payload.Dated)
	assert.Equal(t, "Заказ", payload.Operation)
	assert.True(t, payload.TaxIncluded)
	assert.True(t, payload.TaxActive)
	assert.True(t, payload.Status)
	assert.Nil(t, payload.Settings.DateNextCreated)
	require.NotNil(t, payload.PaidRubles)
	assert.InDelta(t, 230, *payload.PaidRubles, 1e-9)
	assert.Equal(t, float64(0), payload.PaidLt)

	require.NotNil(t, payload.Contragent)
	assert.Equal(t, int64(12), *payload.Contragent)
	require.NotNil(t, payload.Organization)
	assert.Equal(t, int64(5), *payload.Organization)
	require.NotNil(t, payload.Warehouse)
	assert.Equal(t, int64(3), *payload.Warehouse)
	require.NotNil(t, payload.Paybox)
	assert.Equal(t, int64(7), *payload.Paybox)

	require.Len(t, payload.Goods, 2)
	first := payload.Goods[0]
	assert.Equal(t, 116, first.Unit)
	require.NotNil(t, first.Price)
	assert.Equal(t, float64(100), *first.Price)
	require.NotNil(t, first.Quantity)
	assert.Equal(t, int64(2), *first.Quantity)
	require.NotNil(t, first.Discount)
	assert.Equal(t, float64(10), *first.Discount)
	require.NotNil(t, first.SumDiscounted)
	assert.InDelta(t, 180, *first.SumDiscounted, 1e-9)
	require.NotNil(t, first.Nomenclature)
	assert.Equal(t, int64(45690), *first.Nomenclature)
}

func TestBuildPayloadNonNumericReferencesBecomeNull(t *testing.T) {
	d := NewDraft()
	d.Customer = "не число"
	d.Warehouse = ""
	d.Lines = []LineItem{{Catalog: "товар", Price: "abc", Quantity: "1", Discount: "0"}}

	payload := BuildPayload(d, false, time.Now())

	assert.Nil(t, payload.Contragent)
	assert.Nil(t, payload.Warehouse)
	assert.Nil(t, payload.Paybox)
	assert.Nil(t, payload.Organization)
	assert.False(t, payload.Status)

	require.Len(t, payload.Goods, 1)
	assert.Nil(t, payload.Goods[0].Nomenclature)
	assert.Nil(t, payload.Goods[0].Price)
	assert.Nil(t, payload.Goods[0].SumDiscounted)
	// A garbage line poisons the grand total too.
	assert.Nil(t, payload.PaidRubles)

	// The payload must stay serializable even with garbage input:
	// unresolved numbers go out as null for the API to reject.
	data, err := json.Marshal(payload)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"nomenclature":null`)
	assert.Contains(t, string(data), `"sum_discounted":null`)
	assert.Contains(t, string(data), `"contragent":null`)
	assert.Contains(t, string(data), `"date_next_created":null`)
	assert.Contains(t, string(data), `"paid_rubles":null`)
}

func TestBuildPayloadEmptyDraft(t *testing.T) {
	payload := BuildPayload(NewDraft(), false, time.Now())

	assert.Empty(t, payload.Goods)
	require.NotNil(t, payload.PaidRubles)
	assert.Equal(t, float64(0), *payload.PaidRubles)
}
