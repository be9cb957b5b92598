package payment

import "time"

// ReferenceKey is the attribute name under which the host stores the gateway
// transaction reference on a payment.
const ReferenceKey = "bamboraCheckoutReference"

// Operation kinds, used to suffix transaction ids and tag ledger rows.
const (
	OpCapture = "capture"
	OpRefund  = "refund"
	OpVoid    = "void"
)

// Record is the host-owned payment record this module appends to. The gateway
// reference is the transaction id the gateway issued at checkout; every later
// operation chains back to it through ParentTransactionID.
type Record struct {
	ID                  uint
	OrderNumber         string
	GatewayReference    string
	TransactionID       string
	ParentTransactionID string
	Closed              bool
	SessionToken        string
	SessionURL          string
	CreatedAt           time.Time
	UpdatedAt           time.Time
}

// applyOperation records a completed gateway operation: the new transaction id
// is the operation id suffixed with its kind, the transaction is closed, and
// the parent points at the original gateway reference.
func (r *Record) applyOperation(operationID, kind string) {
	r.TransactionID = operationID + "-" + kind
	r.ParentTransactionID = r.GatewayReference
	r.Closed = true
}
