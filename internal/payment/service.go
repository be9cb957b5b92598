package payment

import (
	"context"
	"fmt"

	"bambora-bridge/internal/checkout"
	"bambora-bridge/internal/currency"
	"bambora-bridge/internal/gateway"
	"bambora-bridge/internal/logger"
	"bambora-bridge/internal/order"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Gateway is the slice of the Bambora API the orchestrator drives.
type Gateway interface {
	SetCheckout(ctx context.Context, req *checkout.Request) (*gateway.CheckoutResponse, error)
	PaymentTypes(ctx context.Context, currency string, amountMinorUnits int64) (*gateway.PaymentTypesResponse, error)
	Transaction(ctx context.Context, transactionID string) (*gateway.TransactionResponse, error)
	Capture(ctx context.Context, reference string, amountMinorUnits int64, currency string, lines []checkout.Line) (*gateway.OperationResponse, error)
	Credit(ctx context.Context, reference string, amountMinorUnits int64, currency string, lines []checkout.Line) (*gateway.OperationResponse, error)
	Delete(ctx context.Context, reference string) (*gateway.OperationResponse, error)
}

// Service drives payment-state transitions for one order at a time against
// the gateway transaction ledger. Operations are synchronous, never retried,
// and leave the payment record untouched when the gateway rejects them.
type Service struct {
	gw      Gateway
	repo    Repository
	builder *checkout.Builder
	canVoid bool
}

func NewService(gw Gateway, repo Repository, builder *checkout.Builder, canVoid bool) *Service {
	return &Service{
		gw:      gw,
		repo:    repo,
		builder: builder,
		canVoid: canVoid,
	}
}

// PaymentWindow creates a hosted checkout session for the order and stores
// its token and url on the payment record.
func (s *Service) PaymentWindow(ctx context.Context, o *order.Order) (*gateway.CheckoutResponse, error) {
	if o == nil {
		return nil, ErrNoOrder
	}
	ctx = logger.WithRequestID(ctx, uuid.NewString())

	req := s.builder.BuildRequest(o)
	resp, err := s.gw.SetCheckout(ctx, req)
	if ok, msg := gateway.ValidateResult(resp, err, o.IncrementID, false); !ok {
		return nil, fmt.Errorf("%w: %s", ErrCheckoutFailed, msg)
	}

	if err := s.repo.SaveSession(ctx, o.IncrementID, resp.Token, resp.URL); err != nil {
		return nil, err
	}

	logger.FromCtx(ctx).Info("checkout session created",
		zap.String("order", o.IncrementID),
		zap.String("token", resp.Token),
	)
	return resp, nil
}

// PaymentTypes returns the payment-group ids available for a currency and
// amount, e.g. to filter card icons in the checkout.
func (s *Service) PaymentTypes(ctx context.Context, currencyCode string, amount float64) ([]int, error) {
	minorUnits := currency.MinorUnits(currencyCode)

	resp, err := s.gw.PaymentTypes(ctx, currencyCode, currency.ToMinorUnits(amount, minorUnits))
	if ok, msg := gateway.ValidateResult(resp, err, currencyCode, false); !ok {
		return nil, fmt.Errorf("%w: %s", ErrPaymentTypesFailed, msg)
	}

	var ids []int
	for _, collection := range resp.PaymentCollections {
		for _, group := range collection.PaymentGroups {
			ids = append(ids, group.ID)
		}
	}
	return ids, nil
}

// Transaction fetches the gateway-side transaction for display.
func (s *Service) Transaction(ctx context.Context, transactionID string) (*gateway.Transaction, error) {
	resp, err := s.gw.Transaction(ctx, transactionID)
	if ok, msg := gateway.ValidateResult(resp, err, transactionID, true); !ok {
		return nil, fmt.Errorf("%w: %s", ErrTransactionLookup, msg)
	}
	return &resp.Transaction, nil
}

// Capture settles amount against the authorized transaction. A partial
// capture (amount below the grand total) sends line items built from the
// invoice the host created for it; a full capture sends none.
func (s *Service) Capture(ctx context.Context, rec *Record, o *order.Order, invoice *order.Invoice, amount float64) error {
	if rec.GatewayReference == "" {
		return ErrNoReference
	}
	ctx = logger.WithRequestID(ctx, uuid.NewString())
	log := logger.FromCtx(ctx).With(
		zap.String("order", o.IncrementID),
		zap.Float64("amount", amount),
	)

	var lines []checkout.Line
	if amount < o.GrandTotal {
		if invoice == nil {
			return ErrNoInvoice
		}
		lines = checkout.CaptureLines(invoice, o)
	}

	minorUnits := currency.MinorUnits(o.BaseCurrencyCode)
	amountMinorUnits := currency.ToMinorUnits(amount, minorUnits)

	resp, err := s.gw.Capture(ctx, rec.GatewayReference, amountMinorUnits, o.BaseCurrencyCode, lines)
	if ok, msg := gateway.ValidateResult(resp, err, o.IncrementID, true); !ok {
		log.Error("capture rejected", zap.String("message", msg))
		return fmt.Errorf("%w: %s", ErrCaptureFailed, msg)
	}

	rec.applyOperation(resp.LastOperationID(), OpCapture)
	if err := s.repo.AppendTransaction(ctx, rec, OpCapture); err != nil {
		return err
	}

	log.Info("capture completed", zap.String("transaction_id", rec.TransactionID))
	return nil
}

// Refund credits amount back to the customer. Refund lines are always sent:
// the credit memo's rows, shipping, and a trailing adjustment-refund line.
func (s *Service) Refund(ctx context.Context, rec *Record, o *order.Order, memo *order.CreditMemo, amount float64) error {
	if rec.GatewayReference == "" {
		return ErrNoReference
	}
	if memo == nil {
		return ErrNoCreditMemo
	}
	ctx = logger.WithRequestID(ctx, uuid.NewString())
	log := logger.FromCtx(ctx).With(
		zap.String("order", o.IncrementID),
		zap.Float64("amount", amount),
	)

	lines := checkout.RefundLines(memo, o)

	minorUnits := currency.MinorUnits(o.BaseCurrencyCode)
	amountMinorUnits := currency.ToMinorUnits(amount, minorUnits)

	resp, err := s.gw.Credit(ctx, rec.GatewayReference, amountMinorUnits, o.BaseCurrencyCode, lines)
	if ok, msg := gateway.ValidateResult(resp, err, o.IncrementID, true); !ok {
		log.Error("refund rejected", zap.String("message", msg))
		return fmt.Errorf("%w: %s", ErrRefundFailed, msg)
	}

	rec.applyOperation(resp.LastOperationID(), OpRefund)
	if err := s.repo.AppendTransaction(ctx, rec, OpRefund); err != nil {
		return err
	}

	log.Info("refund completed", zap.String("transaction_id", rec.TransactionID))
	return nil
}

// Void cancels the authorized, uncaptured transaction.
func (s *Service) Void(ctx context.Context, rec *Record, o *order.Order) error {
	if rec.GatewayReference == "" {
		return ErrNoReference
	}
	ctx = logger.WithRequestID(ctx, uuid.NewString())
	log := logger.FromCtx(ctx).With(zap.String("order", o.IncrementID))

	resp, err := s.gw.Delete(ctx, rec.GatewayReference)
	if ok, msg := gateway.ValidateResult(resp, err, o.IncrementID, true); !ok {
		log.Error("void rejected", zap.String("message", msg))
		return fmt.Errorf("%w: %s", ErrVoidFailed, msg)
	}

	rec.applyOperation(resp.LastOperationID(), OpVoid)
	if err := s.repo.AppendTransaction(ctx, rec, OpVoid); err != nil {
		return err
	}

	log.Info("void completed", zap.String("transaction_id", rec.TransactionID))
	return nil
}

// Cancel voids the transaction when the void capability is enabled. When it
// is not, the order is still canceled on the host side; the gateway is left
// alone and the degraded outcome is only reported informationally.
func (s *Service) Cancel(ctx context.Context, rec *Record, o *order.Order) error {
	if s.canVoid {
		return s.Void(ctx, rec, o)
	}

	logger.FromCtx(ctx).Info("payment canceled but not voided",
		zap.String("order", o.IncrementID),
	)
	return nil
}
