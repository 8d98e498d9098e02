package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"crm-backend/internal/apperrors"
	"crm-backend/internal/models"
)

type OnlineTransactionRepository struct {
	DB *pgxpool.Pool
}

func NewOnlineTransactionRepository(db *pgxpool.Pool) *OnlineTransactionRepository {
	return &OnlineTransactionRepository{DB: db}
}

func (r *OnlineTransactionRepository) Create(ctx context.Context, t *models.OnlineTransaction) error {
	err := r.DB.QueryRow(ctx,
		`INSERT INTO online_transactions(company_id, quotation_id, bill_id, razorpay_order_id, amount, status)
		 VALUES($1, $2, $3, $4, $5, $6)
		 RETURNING id, created_at, updated_at`,
		t.CompanyID, t.QuotationID, t.BillID, t.RazorpayOrderID, t.Amount, models.TransactionStatusCreated,
	).Scan(&t.ID, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create online transaction: %w", err)
	}
	t.Status = models.TransactionStatusCreated
	return nil
}

func (r *OnlineTransactionRepository) GetByOrderID(ctx context.Context, orderID string) (*models.OnlineTransaction, error) {
	row := r.DB.QueryRow(ctx,
		`SELECT id, company_id, quotation_id, bill_id, razorpay_order_id, razorpay_payment_id,
		        amount, status, failure_reason, created_at, updated_at
		 FROM online_transactions WHERE razorpay_order_id=$1`, orderID)

	var t models.OnlineTransaction
	err := row.Scan(&t.ID, &t.CompanyID, &t.QuotationID, &t.BillID, &t.RazorpayOrderID,
		&t.RazorpayPaymentID, &t.Amount, &t.Status, &t.FailureReason, &t.CreatedAt, &t.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperrors.NotFound("Transaction")
	}
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// MarkSuccess records the payment id. It only moves a transaction out
// of created once, so a verify and a webhook for the same order cannot
// both record a receipt.
func (r *OnlineTransactionRepository) MarkSuccess(ctx context.Context, orderID, paymentID string) (bool, error) {
	tag, err := r.DB.Exec(ctx,
		`UPDATE online_transactions SET status=$1, razorpay_payment_id=$2, updated_at=NOW()
		 WHERE razorpay_order_id=$3 AND status=$4`,
		models.TransactionStatusSuccess, paymentID, orderID, models.TransactionStatusCreated)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

func (r *OnlineTransactionRepository) MarkFailed(ctx context.Context, orderID, reason string) error {
	_, err := r.DB.Exec(ctx,
		`UPDATE online_transactions SET status=$1, failure_reason=$2, updated_at=NOW()
		 WHERE razorpay_order_id=$3 AND status=$4`,
		models.TransactionStatusFailed, reason, orderID, models.TransactionStatusCreated)
	return err
}
