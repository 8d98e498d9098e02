package repositories

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"crm-backend/internal/apperrors"
	"crm-backend/internal/billing"
	"crm-backend/internal/models"
)

type ReceiptRepository struct {
	DB *pgxpool.Pool
}

func NewReceiptRepository(db *pgxpool.Pool) *ReceiptRepository {
	return &ReceiptRepository{DB: db}
}

// Create records a payment and reconciles the quotation's bill in the
// same transaction
func (r *ReceiptRepository) Create(ctx context.Context, tenant models.TenantContext, req *models.ReceiptRequest) (*models.Receipt, error) {
	tx, err := r.DB.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	var exists bool
	err = tx.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM quotations WHERE id=$1 AND company_id=$2)`,
		req.QuotationID, tenant.CompanyID).Scan(&exists)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, apperrors.NotFound("Quotation")
	}

	number, err := nextDocumentNumber(ctx, tx, tenant.CompanyID, tenant.CompanyCode, billing.DocReceipt)
	if err != nil {
		return nil, err
	}

	rec := models.Receipt{
		CompanyID:            tenant.CompanyID,
		QuotationID:          req.QuotationID,
		ReceiptNumber:        number,
		Date:                 req.Date,
		Amount:               req.Amount,
		PaymentMode:          req.PaymentMode,
		TransactionReference: req.TransactionReference,
		Notes:                req.Notes,
	}
	err = tx.QueryRow(ctx,
		`INSERT INTO receipts(company_id, quotation_id, receipt_number, date, amount, payment_mode,
		        transaction_reference, notes)
		 VALUES($1, $2, $3, $4, $5, $6, $7, $8)
		 RETURNING id, created_at`,
		rec.CompanyID, rec.QuotationID, rec.ReceiptNumber, rec.Date, rec.Amount, rec.PaymentMode,
		rec.TransactionReference, rec.Notes,
	).Scan(&rec.ID, &rec.CreatedAt)
	if err != nil {
		return nil, err
	}

	if err := reconcileBill(ctx, tx, rec.QuotationID); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return &rec, nil
}

// Update changes a receipt's payment fields. The receipt keeps its
// number and quotation; the bill is reconciled with the new amount.
func (r *ReceiptRepository) Update(ctx context.Context, companyID, id int, req *models.ReceiptRequest) error {
	tx, err := r.DB.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	var quotationID int
	err = tx.QueryRow(ctx,
		`UPDATE receipts SET date=$1, amount=$2, payment_mode=$3, transaction_reference=$4, notes=$5
		 WHERE id=$6 AND company_id=$7
		 RETURNING quotation_id`,
		req.Date, req.Amount, req.PaymentMode, req.TransactionReference, req.Notes, id, companyID,
	).Scan(&quotationID)
	if errors.Is(err, pgx.ErrNoRows) {
		return apperrors.NotFound("Receipt")
	}
	if err != nil {
		return err
	}

	if err := reconcileBill(ctx, tx, quotationID); err != nil {
		return err
	}

	return tx.Commit(ctx)
}

// Delete removes a receipt and reconciles the bill, which may move it
// back from paid to partial or pending
func (r *ReceiptRepository) Delete(ctx context.Context, companyID, id int) error {
	tx, err := r.DB.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	var quotationID int
	err = tx.QueryRow(ctx,
		`DELETE FROM receipts WHERE id=$1 AND company_id=$2 RETURNING quotation_id`,
		id, companyID).Scan(&quotationID)
	if errors.Is(err, pgx.ErrNoRows) {
		return apperrors.NotFound("Receipt")
	}
	if err != nil {
		return err
	}

	if err := reconcileBill(ctx, tx, quotationID); err != nil {
		return err
	}

	return tx.Commit(ctx)
}

func (r *ReceiptRepository) Get(ctx context.Context, companyID, id int) (*models.ReceiptDetail, error) {
	row := r.DB.QueryRow(ctx,
		`SELECT r.id, r.company_id, r.quotation_id, r.receipt_number, r.date, r.amount, r.payment_mode,
		        r.transaction_reference, r.notes, r.created_at,
		        q.quotation_number, q.grand_total,
		        c.name, c.address, c.phone
		 FROM receipts r
		 JOIN quotations q ON r.quotation_id = q.id
		 JOIN clients c ON q.client_id = c.id
		 WHERE r.id=$1 AND r.company_id=$2`, id, companyID)

	var d models.ReceiptDetail
	err := row.Scan(&d.ID, &d.CompanyID, &d.QuotationID, &d.ReceiptNumber, &d.Date, &d.Amount,
		&d.PaymentMode, &d.TransactionReference, &d.Notes, &d.CreatedAt,
		&d.QuotationNumber, &d.QuotationTotal,
		&d.ClientName, &d.ClientAddress, &d.ClientPhone)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperrors.NotFound("Receipt")
	}
	if err != nil {
		return nil, err
	}

	err = r.DB.QueryRow(ctx,
		`SELECT COALESCE(SUM(amount), 0) FROM receipts WHERE quotation_id=$1`,
		d.QuotationID).Scan(&d.TotalReceived)
	if err != nil {
		return nil, err
	}
	d.Balance = d.QuotationTotal - d.TotalReceived

	return &d, nil
}

func (r *ReceiptRepository) List(ctx context.Context, companyID int) ([]*models.ReceiptSummary, error) {
	return r.list(ctx, companyID, 0)
}

func (r *ReceiptRepository) Recent(ctx context.Context, companyID, limit int) ([]*models.ReceiptSummary, error) {
	return r.list(ctx, companyID, limit)
}

func (r *ReceiptRepository) list(ctx context.Context, companyID, limit int) ([]*models.ReceiptSummary, error) {
	query := `SELECT r.id, r.company_id, r.quotation_id, r.receipt_number, r.date, r.amount,
	                 r.payment_mode, r.transaction_reference, r.notes, r.created_at,
	                 q.quotation_number, c.name
	          FROM receipts r
	          JOIN quotations q ON r.quotation_id = q.id
	          JOIN clients c ON q.client_id = c.id
	          WHERE r.company_id=$1
	          ORDER BY r.created_at DESC`
	args := []interface{}{companyID}
	if limit > 0 {
		query += ` LIMIT $2`
		args = append(args, limit)
	}

	rows, err := r.DB.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var receipts []*models.ReceiptSummary
	for rows.Next() {
		var s models.ReceiptSummary
		err := rows.Scan(&s.ID, &s.CompanyID, &s.QuotationID, &s.ReceiptNumber, &s.Date, &s.Amount,
			&s.PaymentMode, &s.TransactionReference, &s.Notes, &s.CreatedAt,
			&s.QuotationNumber, &s.ClientName)
		if err != nil {
			return nil, err
		}
		receipts = append(receipts, &s)
	}
	return receipts, rows.Err()
}

// ByQuotation returns a quotation's receipts with the running totals
// against its grand total
func (r *ReceiptRepository) ByQuotation(ctx context.Context, companyID, quotationID int) (*models.QuotationReceipts, error) {
	var grandTotal float64
	err := r.DB.QueryRow(ctx,
		`SELECT grand_total FROM quotations WHERE id=$1 AND company_id=$2`,
		quotationID, companyID).Scan(&grandTotal)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperrors.NotFound("Quotation")
	}
	if err != nil {
		return nil, err
	}

	qr := QuotationRepository{DB: r.DB}
	receipts, err := qr.listReceipts(ctx, quotationID)
	if err != nil {
		return nil, err
	}

	totalReceived := 0.0
	for _, rec := range receipts {
		totalReceived += rec.Amount
	}

	return &models.QuotationReceipts{
		Receipts:      receipts,
		TotalReceived: totalReceived,
		Balance:       grandTotal - totalReceived,
	}, nil
}
