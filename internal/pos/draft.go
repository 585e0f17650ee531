package pos

import (
	"fmt"
	"strconv"
)

type LineField string

const (
	FieldCatalog  LineField = "item"
	FieldPrice    LineField = "price"
	FieldQuantity LineField = "quantity"
	FieldDiscount LineField = "discount"
)

// LineItem keeps raw operator input as strings. Editing never fails on
// a half-typed value; coercion to numbers happens only when a total is
// computed or the order is submitted.
type LineItem struct {
	Catalog  string
	Price    string
	Quantity string
	Discount string
}

func newLineItem() LineItem {
	return LineItem{
		Catalog:  "",
		Price:    "0",
		Quantity: "1",
		Discount: "0",
	}
}

func (l LineItem) discounted() float64 {
	sum := parseNumber(l.Price) * parseNumber(l.Quantity)
	return sum - sum*parseNumber(l.Discount)/100
}

// Draft is the single in-progress order. Reference fields hold the
// operator-selected ids as entered; they are coerced to integers only
// at submission.
type Draft struct {
	Customer     string
	Organization string
	Warehouse    string
	Paybox       string
	PriceType    string
	Lines        []LineItem
}

func NewDraft() *Draft {
	return &Draft{}
}

func (d *Draft) AddLine() {
	d.Lines = append(d.Lines, newLineItem())
}

// UpdateLine sets one field of the line at index. Selecting a catalog
// item with a known price also pulls that price into the line, so the
// operator sees both change at once.
func (d *Draft) UpdateLine(index int, field LineField, value string, catalog []CatalogItem) error {
	if index < 0 || index >= len(d.Lines) {
		return fmt.Errorf("no line at index %d", index)
	}

	switch field {
	case FieldCatalog:
		d.Lines[index].Catalog = value
		if item, ok := findCatalogItem(catalog, value); ok && item.Price != 0 {
			d.Lines[index].Price = formatNumber(item.Price)
		}
	case FieldPrice:
		d.Lines[index].Price = value
	case FieldQuantity:
		d.Lines[index].Quantity = value
	case FieldDiscount:
		d.Lines[index].Discount = value
	default:
		return fmt.Errorf("unknown line field %q", field)
	}
	return nil
}

func (d *Draft) RemoveLine(index int) error {
	if index < 0 || index >= len(d.Lines) {
		return fmt.Errorf("no line at index %d", index)
	}
	d.Lines = append(d.Lines[:index], d.Lines[index+1:]...)
	return nil
}

// Total sums the discounted line totals: price*quantity reduced by
// discount percent. Exact float arithmetic, no rounding; formatting to
// two decimals is a display concern.
func (d *Draft) Total() float64 {
	total := 0.0
	for _, line := range d.Lines {
		total += line.discounted()
	}
	return total
}

func (d *Draft) Reset() {
	*d = Draft{}
}

func findCatalogItem(catalog []CatalogItem, ref string) (CatalogItem, bool) {
	id, err := strconv.ParseInt(ref, 10, 64)
	if err != nil {
		return CatalogItem{}, false
	}
	for _, item := range catalog {
		if item.ID == id {
			return item, true
		}
	}
	return CatalogItem{}, false
}
