package tablecrm

// SalesDocument is the sales-history record returned by /docs_sales/.
// It is the sole source the cashier derives its reference data from.
type SalesDocument struct {
	ID             int64   `json:"id"`
	Number         string  `json:"number,omitempty"`
	Organization   int64   `json:"organization,omitempty"`
	Warehouse      int64   `json:"warehouse,omitempty"`
	Contragent     int64   `json:"contragent,omitempty"`
	ContragentName string  `json:"contragent_name,omitempty"`
	Operation      string  `json:"operation,omitempty"`
	Sum            float64 `json:"sum,omitempty"`
}

type Contragent struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Phone string `json:"phone,omitempty"`
}

type documentList struct {
	Result []SalesDocument `json:"result"`
}

// OrderGood mirrors one line of the /docs_sales/ POST body. The numeric
// fields are nullable: a value the operator left non-numeric marshals as
// null and the API is the one to reject it.
type OrderGood struct {
	Price         *float64 `json:"price"`
	Quantity      *int64   `json:"quantity"`
	Unit          int      `json:"unit"`
	Discount      *float64 `json:"discount"`
	SumDiscounted *float64 `json:"sum_discounted"`
	Nomenclature  *int64   `json:"nomenclature"`
}

type OrderSettings struct {
	DateNextCreated *int64 `json:"date_next_created"`
}

type SalesOrderPayload struct {
	Dated        int64         `json:"dated"`
	Operation    string        `json:"operation"`
	TaxIncluded  bool          `json:"tax_included"`
	TaxActive    bool          `json:"tax_active"`
	Goods        []OrderGood   `json:"goods"`
	Settings     OrderSettings `json:"settings"`
	Warehouse    *int64        `json:"warehouse"`
	Contragent   *int64        `json:"contragent"`
	Paybox       *int64        `json:"paybox"`
	Organization *int64        `json:"organization"`
	Status       bool          `json:"status"`
	PaidRubles   *float64      `json:"paid_rubles"`
	PaidLt       float64       `json:"paid_lt"`
}
