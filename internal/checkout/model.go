package checkout

// Request models for the Bambora Checkout session API. Field names follow the
// gateway's all-lowercase JSON contract.

type Request struct {
	InstantCaptureAmount int64     `json:"instantcaptureamount"`
	Language             string    `json:"language"`
	PaymentWindowID      int       `json:"paymentwindowid"`
	Customer             *Customer `json:"customer,omitempty"`
	Order                *Order    `json:"order"`
	URL                  *URL      `json:"url"`
}

type Customer struct {
	Email                  string `json:"email"`
	PhoneNumber            string `json:"phonenumber,omitempty"`
	PhoneNumberCountryCode string `json:"phonenumbercountrycode,omitempty"`
}

type Order struct {
	Currency        string   `json:"currency"`
	OrderNumber     string   `json:"ordernumber"`
	Total           int64    `json:"total"`
	VATAmount       int64    `json:"vatamount"`
	BillingAddress  *Address `json:"billingaddress,omitempty"`
	ShippingAddress *Address `json:"shippingaddress,omitempty"`
	Lines           []Line   `json:"lines"`
}

type Address struct {
	Att       string `json:"att"`
	City      string `json:"city"`
	Country   string `json:"country"`
	FirstName string `json:"firstname"`
	LastName  string `json:"lastname"`
	Street    string `json:"street"`
	Zip       string `json:"zip"`
}

type URL struct {
	Accept                    string     `json:"accept"`
	Decline                   string     `json:"decline"`
	Callbacks                 []Callback `json:"callbacks"`
	ImmediateRedirectToAccept int        `json:"immediateredirecttoaccept"`
}

type Callback struct {
	URL string `json:"url"`
}

// Line is one order line as the gateway ledgers it. Amounts are minor units;
// totalpriceinclvat = totalprice + totalpricevatamount after any discount.
type Line struct {
	Description         string  `json:"description"`
	ID                  string  `json:"id"`
	LineNumber          int     `json:"linenumber"`
	Quantity            float64 `json:"quantity"`
	Text                string  `json:"text"`
	TotalPrice          int64   `json:"totalprice"`
	TotalPriceInclVAT   int64   `json:"totalpriceinclvat"`
	TotalPriceVATAmount int64   `json:"totalpricevatamount"`
	Unit                string  `json:"unit"`
	VAT                 int     `json:"vat"`
}
