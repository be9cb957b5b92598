package payment

import "errors"

var (
	// -- Validation & Input --
	ErrNoOrder        = errors.New("no order supplied")
	ErrNoInvoice      = errors.New("no invoice supplied for partial capture")
	ErrNoCreditMemo   = errors.New("no credit memo supplied")
	ErrNoReference    = errors.New("payment has no gateway reference")
	ErrRecordNotFound = errors.New("payment record not found")

	// -- Gateway rejections (fatal to the host action) --
	ErrCheckoutFailed     = errors.New("the payment window could not be retrieved")
	ErrCaptureFailed      = errors.New("the capture action failed")
	ErrRefundFailed       = errors.New("the refund action failed")
	ErrVoidFailed         = errors.New("the void or cancel action failed")
	ErrPaymentTypesFailed = errors.New("payment types could not be retrieved")
	ErrTransactionLookup  = errors.New("the transaction could not be retrieved")
)
