package checkout

import (
	"math"

	"bambora-bridge/internal/currency"
	"bambora-bridge/internal/order"
)

const (
	unitLabel          = "pcs."
	shippingLineText   = "Shipping"
	adjustmentLineText = "Adjustment refund"
)

// URLProvider supplies the absolute URLs the hosted payment window redirects
// and calls back to. The host's routing layer implements it.
type URLProvider interface {
	AcceptURL() string
	DeclineURL() string
	CallbackURL() string
}

// StaticURLs is a URLProvider over fixed, pre-built URLs.
type StaticURLs struct {
	Accept   string
	Decline  string
	Callback string
}

func (u StaticURLs) AcceptURL() string   { return u.Accept }
func (u StaticURLs) DeclineURL() string  { return u.Decline }
func (u StaticURLs) CallbackURL() string { return u.Callback }

// Builder assembles gateway checkout requests and operation line items from
// host sales documents. It holds only store-level settings and is safe to
// share.
type Builder struct {
	PaymentWindowID   int
	InstantCapture    bool
	ImmediateRedirect bool
	Language          string
	URLs              URLProvider
}

// CreateLine builds one gateway order line. Net, gross and VAT amounts are
// each converted to minor units independently, with the discount subtracted
// in decimal space first. When vatPercent is nil the rate is derived from the
// VAT amount and defaults to 0 for non-positive totals.
func CreateLine(description, id string, lineNumber int, quantity float64, text string, totalPrice, totalPriceVAT float64, vatPercent *float64, currencyCode string, discountAmount float64) Line {
	minorUnits := currency.MinorUnits(currencyCode)

	if description == "" {
		description = text
	}

	var vat float64
	if vatPercent != nil {
		vat = *vatPercent
	} else if totalPriceVAT > 0 && totalPrice > 0 {
		vat = math.Round(totalPriceVAT / totalPrice * 100)
	}

	return Line{
		Description:         description,
		ID:                  id,
		LineNumber:          lineNumber,
		Quantity:            quantity,
		Text:                text,
		TotalPrice:          currency.ToMinorUnits(totalPrice-discountAmount, minorUnits),
		TotalPriceInclVAT:   currency.ToMinorUnits(totalPrice+totalPriceVAT-discountAmount, minorUnits),
		TotalPriceVATAmount: currency.ToMinorUnits(totalPriceVAT, minorUnits),
		Unit:                unitLabel,
		VAT:                 int(vat),
	}
}

// BuildRequest maps an order snapshot to a checkout session request. It is a
// pure transformation over the supplied order data and never fails; bad input
// surfaces downstream as a rejected gateway call.
func (b *Builder) BuildRequest(o *order.Order) *Request {
	email := o.CustomerEmail
	if o.BillingAddress != nil && o.BillingAddress.Email != "" {
		email = o.BillingAddress.Email
	}

	minorUnits := currency.MinorUnits(o.BaseCurrencyCode)

	req := &Request{
		Language:        b.Language,
		PaymentWindowID: b.PaymentWindowID,
	}
	if b.InstantCapture {
		req.InstantCaptureAmount = currency.ToMinorUnits(o.GrandTotal, minorUnits)
	}

	cust := &Customer{Email: email}

	ord := &Order{
		Currency:    o.BaseCurrencyCode,
		OrderNumber: o.IncrementID,
		Total:       currency.ToMinorUnits(o.TotalDue, minorUnits),
		VATAmount:   currency.ToMinorUnits(o.TaxAmount, minorUnits),
	}

	u := &URL{
		Accept:    b.URLs.AcceptURL(),
		Decline:   b.URLs.DeclineURL(),
		Callbacks: []Callback{{URL: b.URLs.CallbackURL()}},
	}
	if b.ImmediateRedirect {
		u.ImmediateRedirectToAccept = 1
	}
	req.URL = u

	if o.BillingAddress != nil {
		cust.PhoneNumber = o.BillingAddress.Telephone
		cust.PhoneNumberCountryCode = o.BillingAddress.Country
		ord.BillingAddress = mapAddress(o.BillingAddress)
	}
	if o.ShippingAddress != nil {
		ord.ShippingAddress = mapAddress(o.ShippingAddress)
	}
	req.Customer = cust

	lines := make([]Line, 0, len(o.Items)+1)
	for i, item := range o.Items {
		vat := item.TaxPercent
		lines = append(lines, CreateLine(
			item.Description,
			item.SKU,
			i+1,
			item.QtyOrdered,
			item.Name,
			item.RowTotal,
			item.TaxAmount,
			&vat,
			o.BaseCurrencyCode,
			item.DiscountAmount,
		))
	}

	// Shipping is always the trailing line; its VAT rate is derived from the
	// shipping tax amount.
	lines = append(lines, CreateLine(
		o.ShippingDescription,
		shippingLineText,
		len(o.Items)+1,
		1,
		shippingLineText,
		o.ShippingAmount,
		o.ShippingTaxAmount,
		nil,
		o.BaseCurrencyCode,
		o.ShippingDiscountAmount,
	))

	ord.Lines = lines
	req.Order = ord

	return req
}

func mapAddress(a *order.Address) *Address {
	return &Address{
		City:      a.City,
		Country:   a.Country,
		FirstName: a.FirstName,
		LastName:  a.LastName,
		Street:    a.FirstStreetLine(),
		Zip:       a.Postcode,
	}
}
