package payment

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

type Repository interface {
	// SaveSession upserts the checkout session created for an order.
	SaveSession(ctx context.Context, orderNumber, token, url string) error
	// SetGatewayReference records the gateway transaction reference on the
	// order's payment record. It is idempotent: re-recording the same
	// reference succeeds, a conflicting one reports false.
	SetGatewayReference(ctx context.Context, orderNumber, reference string) (bool, error)
	RecordByOrder(ctx context.Context, orderNumber string) (*Record, error)
	// AppendTransaction persists the record's current transaction state and
	// adds a ledger row for the completed operation.
	AppendTransaction(ctx context.Context, rec *Record, kind string) error
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

func (r *repository) SaveSession(ctx context.Context, orderNumber, token, url string) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO payments (order_number, session_token, session_url)
		VALUES ($1, $2, $3)
		ON CONFLICT (order_number)
		DO UPDATE SET session_token = $2, session_url = $3, updated_at = now()
	`, orderNumber, token, url)
	return err
}

func (r *repository) SetGatewayReference(ctx context.Context, orderNumber, reference string) (bool, error) {
	res, err := r.db.ExecContext(ctx, `
		UPDATE payments
		SET gateway_reference = $2, updated_at = now()
		WHERE order_number = $1
		  AND (gateway_reference = '' OR gateway_reference = $2)
	`, orderNumber, reference)
	if err != nil {
		return false, err
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return affected > 0, nil
}

func (r *repository) RecordByOrder(ctx context.Context, orderNumber string) (*Record, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, order_number, gateway_reference, transaction_id,
		       parent_transaction_id, closed, session_token, session_url,
		       created_at, updated_at
		FROM payments WHERE order_number = $1
	`, orderNumber)

	var rec Record
	err := row.Scan(
		&rec.ID, &rec.OrderNumber, &rec.GatewayReference, &rec.TransactionID,
		&rec.ParentTransactionID, &rec.Closed, &rec.SessionToken, &rec.SessionURL,
		&rec.CreatedAt, &rec.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrRecordNotFound
		}
		return nil, err
	}
	return &rec, nil
}

func (r *repository) AppendTransaction(ctx context.Context, rec *Record, kind string) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `
		UPDATE payments
		SET transaction_id = $2, parent_transaction_id = $3, closed = $4, updated_at = now()
		WHERE order_number = $1
	`, rec.OrderNumber, rec.TransactionID, rec.ParentTransactionID, rec.Closed)
	if err != nil {
		return fmt.Errorf("failed to update payment record: %w", err)
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO payment_transactions (order_number, operation_id, parent_reference, kind, closed)
		VALUES ($1, $2, $3, $4, $5)
	`, rec.OrderNumber, rec.TransactionID, rec.ParentTransactionID, kind, rec.Closed)
	if err != nil {
		return fmt.Errorf("failed to insert transaction row: %w", err)
	}

	return tx.Commit()
}
