package pos

import (
	"fmt"
	"math/rand"
	"strconv"

	"tablecrm_cashier/internal/tablecrm"
)

// The cashier has no dedicated lookup endpoints: every selectable list
// is derived from the sales history. Ids for synthesized catalog items
// start at an offset that keeps them clear of the other synthetic
// ranges.
const (
	catalogIDOffset        = 45690
	catalogItemLimit       = 20
	customerCandidateLimit = 10
)

type Organization struct {
	ID   int64
	Name string
}

type Warehouse struct {
	ID   int64
	Name string
}

// Customer.Phone is a placeholder when the customer was derived from
// sales history rather than the search endpoint. It must never be
// written back anywhere as real data.
type Customer struct {
	ID    int64
	Name  string
	Phone string
}

type PriceType struct {
	ID   int
	Name string
}

type CatalogItem struct {
	ID    int64
	Name  string
	Price float64
}

type ReferenceData struct {
	Organizations []Organization
	Warehouses    []Warehouse
	Customers     []Customer
	PriceTypes    []PriceType
	CatalogItems  []CatalogItem
}

// DeriveReferenceData builds all selectable lists from the sales
// history. Dedup is by id, first occurrence wins.
func DeriveReferenceData(docs []tablecrm.SalesDocument) ReferenceData {
	refs := ReferenceData{}

	seenOrgs := map[int64]bool{}
	seenWarehouses := map[int64]bool{}
	seenCustomers := map[int64]bool{}
	seenOperations := map[string]bool{}

	for _, doc := range docs {
		if doc.Organization != 0 && !seenOrgs[doc.Organization] {
			seenOrgs[doc.Organization] = true
			refs.Organizations = append(refs.Organizations, Organization{
				ID:   doc.Organization,
				Name: fmt.Sprintf("Организация %d", doc.Organization),
			})
		}

		if doc.Warehouse != 0 && !seenWarehouses[doc.Warehouse] {
			seenWarehouses[doc.Warehouse] = true
			refs.Warehouses = append(refs.Warehouses, Warehouse{
				ID:   doc.Warehouse,
				Name: fmt.Sprintf("Склад %d", doc.Warehouse),
			})
		}

		if doc.Contragent != 0 && doc.ContragentName != "" && !seenCustomers[doc.Contragent] {
			seenCustomers[doc.Contragent] = true
			refs.Customers = append(refs.Customers, Customer{
				ID:    doc.Contragent,
				Name:  doc.ContragentName,
				Phone: syntheticPhone(),
			})
		}

		if doc.Operation != "" && !seenOperations[doc.Operation] {
			seenOperations[doc.Operation] = true
			refs.PriceTypes = append(refs.PriceTypes, PriceType{
				ID:   len(refs.PriceTypes) + 1,
				Name: doc.Operation,
			})
		}

		if doc.Sum > 0 && len(refs.CatalogItems) < catalogItemLimit {
			refs.CatalogItems = append(refs.CatalogItems, CatalogItem{
				ID:    catalogIDOffset + int64(len(refs.CatalogItems)),
				Name:  fmt.Sprintf("Товар из заказа №%s", documentLabel(doc)),
				Price: doc.Sum,
			})
		}
	}

	return refs
}

// CustomerCandidates is the initial selection shown before any phone
// search has run.
func (r ReferenceData) CustomerCandidates() []Customer {
	if len(r.Customers) <= customerCandidateLimit {
		return r.Customers
	}
	return r.Customers[:customerCandidateLimit]
}

func documentLabel(doc tablecrm.SalesDocument) string {
	if doc.Number != "" {
		return doc.Number
	}
	return strconv.FormatInt(doc.ID, 10)
}

// syntheticPhone fabricates a +7 number for customers derived from
// sales history, which carry no phone at all. Placeholder only.
func syntheticPhone() string {
	return fmt.Sprintf("+7%d", rand.Int63n(9_000_000_000)+1_000_000_000)
}
