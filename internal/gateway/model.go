package gateway

// Meta is the result envelope every Bambora Checkout response carries.
type Meta struct {
	Result  bool    `json:"result"`
	Message Message `json:"message"`
}

type Message struct {
	EndUser  string `json:"enduser"`
	Merchant string `json:"merchant"`
}

// Response is implemented by every typed gateway response so the validator
// can classify results without knowing the call shape.
type Response interface {
	ResultMeta() Meta
}

// CheckoutResponse describes a created hosted payment session.
type CheckoutResponse struct {
	Meta  Meta   `json:"meta"`
	Token string `json:"token"`
	URL   string `json:"url"`
}

func (r *CheckoutResponse) ResultMeta() Meta {
	if r == nil {
		return Meta{}
	}
	return r.Meta
}

// TransactionOperation is one ledger entry within a gateway transaction's
// history.
type TransactionOperation struct {
	ID          string `json:"id"`
	Action      string `json:"action"`
	Amount      int64  `json:"amount"`
	CreatedDate string `json:"createddate"`
}

// OperationResponse is returned by capture, credit and delete calls.
type OperationResponse struct {
	Meta                  Meta                   `json:"meta"`
	TransactionOperations []TransactionOperation `json:"transactionoperations"`
}

func (r *OperationResponse) ResultMeta() Meta {
	if r == nil {
		return Meta{}
	}
	return r.Meta
}

// LastOperationID returns the id of the last transaction operation, which is
// the one a completed call appends. Audit trails depend on this picking the
// last element, not the first.
func (r *OperationResponse) LastOperationID() string {
	if r == nil || len(r.TransactionOperations) == 0 {
		return ""
	}
	return r.TransactionOperations[len(r.TransactionOperations)-1].ID
}

// Transaction is the gateway-side view of a payment.
type Transaction struct {
	ID        string `json:"id"`
	OrderID   string `json:"orderid"`
	Currency  string `json:"currency"`
	Total     int64  `json:"total"`
	Reference string `json:"reference"`
}

type TransactionResponse struct {
	Meta        Meta        `json:"meta"`
	Transaction Transaction `json:"transaction"`
}

func (r *TransactionResponse) ResultMeta() Meta {
	if r == nil {
		return Meta{}
	}
	return r.Meta
}

type PaymentGroup struct {
	ID          int    `json:"id"`
	DisplayName string `json:"displayname"`
}

type PaymentCollection struct {
	Name          string         `json:"name"`
	PaymentGroups []PaymentGroup `json:"paymentgroups"`
}

type PaymentTypesResponse struct {
	Meta               Meta                `json:"meta"`
	PaymentCollections []PaymentCollection `json:"paymentcollections"`
}

func (r *PaymentTypesResponse) ResultMeta() Meta {
	if r == nil {
		return Meta{}
	}
	return r.Meta
}
