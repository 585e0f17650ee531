package pos

import (
	"time"

	"tablecrm_cashier/internal/tablecrm"
)

const (
	orderOperation = "Заказ"
	// Unit-of-measure code the remote system expects on every line.
	// Opaque to the client.
	orderUnitCode = 116
)

// BuildPayload serializes the draft into the /docs_sales/ document
// shape. No pre-validation happens here: unresolvable references go
// out as null and the API decides.
func BuildPayload(d *Draft, posted bool, now time.Time) tablecrm.SalesOrderPayload {
	goods := make([]tablecrm.OrderGood, 0, len(d.Lines))
	for _, line := range d.Lines {
		goods = append(goods, tablecrm.OrderGood{
			Price:         nullableFloat(parseNumber(line.Price)),
			Quantity:      nullableInt(parseNumber(line.Quantity)),
			Unit:          orderUnitCode,
			Discount:      nullableFloat(parseNumber(line.Discount)),
			SumDiscounted: nullableFloat(line.discounted()),
			Nomenclature:  parseRef(line.Catalog),
		})
	}

	return tablecrm.SalesOrderPayload{
		Dated:        now.Unix(),
		Operation:    orderOperation,
		TaxIncluded:  true,
		TaxActive:    true,
		Goods:        goods,
		Settings:     tablecrm.OrderSettings{DateNextCreated: nil},
		Warehouse:    parseRef(d.Warehouse),
		Contragent:   parseRef(d.Customer),
		Paybox:       parseRef(d.Paybox),
		Organization: parseRef(d.Organization),
		Status:       posted,
		PaidRubles:   nullableFloat(d.Total()),
		PaidLt:       0,
	}
}
