package order

// The types in this package are read-only snapshots of host-platform sales
// documents, taken at the moment a payment action runs. The host owns their
// storage and lifecycle; this module only reads them.

type Address struct {
	Email     string
	City      string
	Country   string
	FirstName string
	LastName  string
	Street    []string
	Postcode  string
	Telephone string
}

// FirstStreetLine returns the first street line or "" for an empty address.
// The gateway address block carries a single street field.
func (a *Address) FirstStreetLine() string {
	if len(a.Street) == 0 {
		return ""
	}
	return a.Street[0]
}

type Item struct {
	SKU            string
	Name           string
	Description    string
	QtyOrdered     float64
	RowTotal       float64 // base currency, excl. VAT
	TaxAmount      float64
	TaxPercent     float64
	DiscountAmount float64
}

type Order struct {
	IncrementID            string
	BaseCurrencyCode       string
	GrandTotal             float64
	TotalDue               float64
	TaxAmount              float64
	ShippingAmount         float64
	ShippingTaxAmount      float64
	ShippingDiscountAmount float64
	ShippingDescription    string
	CustomerEmail          string
	BillingAddress         *Address
	ShippingAddress        *Address
	Items                  []Item // visible items only
}

// ItemLineNumber returns the 1-based position of the ordered item with the
// given SKU, or 0 when the order has no such item. Partial capture and refund
// lines must carry the same line number the item had in the checkout request.
func (o *Order) ItemLineNumber(sku string) int {
	for i, item := range o.Items {
		if item.SKU == sku {
			return i + 1
		}
	}
	return 0
}

// DocumentItem is one row on an invoice or credit memo. SKU ties it back to
// the ordered item.
type DocumentItem struct {
	SKU            string
	Name           string
	Description    string
	Qty            float64
	RowTotal       float64
	TaxAmount      float64
	TaxPercent     float64
	DiscountAmount float64
}

// Invoice is the host's record of a (partial or full) capture.
type Invoice struct {
	CurrencyCode      string
	Items             []DocumentItem
	ShippingAmount    float64
	ShippingTaxAmount float64
}

// CreditMemo is the host's record of a refund against an order.
type CreditMemo struct {
	CurrencyCode      string
	Items             []DocumentItem
	ShippingAmount    float64
	ShippingTaxAmount float64
	Adjustment        float64
}
