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

type BillRepository struct {
	DB *pgxpool.Pool
}

func NewBillRepository(db *pgxpool.Pool) *BillRepository {
	return &BillRepository{DB: db}
}

// CreateFromQuotation converts a quotation into a bill: snapshots its
// financials, folds in any receipts already recorded and flips the
// quotation to billed, all in one transaction. A second bill for the
// same quotation is rejected here and again by the unique index.
func (r *BillRepository) CreateFromQuotation(ctx context.Context, tenant models.TenantContext, req *models.CreateBillRequest) (*models.Bill, error) {
	tx, err := r.DB.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	var q models.Quotation
	err = tx.QueryRow(ctx,
		`SELECT id, taxable_amount, cgst_percent, cgst_amount, sgst_percent, sgst_amount, total_tax, grand_total
		 FROM quotations WHERE id=$1 AND company_id=$2`,
		req.QuotationID, tenant.CompanyID,
	).Scan(&q.ID, &q.TaxableAmount, &q.CGSTPercent, &q.CGSTAmount, &q.SGSTPercent, &q.SGSTAmount,
		&q.TotalTax, &q.GrandTotal)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperrors.NotFound("Quotation")
	}
	if err != nil {
		return nil, err
	}

	var exists bool
	if err := tx.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM bills WHERE quotation_id=$1)`, q.ID).Scan(&exists); err != nil {
		return nil, err
	}
	if exists {
		return nil, apperrors.Conflictf("A bill already exists for this quotation")
	}

	var totalReceived float64
	if err := tx.QueryRow(ctx, `SELECT COALESCE(SUM(amount), 0) FROM receipts WHERE quotation_id=$1`, q.ID).Scan(&totalReceived); err != nil {
		return nil, err
	}
	state := billing.Reconcile(q.GrandTotal, totalReceived)

	number, err := nextDocumentNumber(ctx, tx, tenant.CompanyID, tenant.CompanyCode, billing.DocBill)
	if err != nil {
		return nil, err
	}

	b := models.Bill{
		CompanyID:     tenant.CompanyID,
		QuotationID:   q.ID,
		BillNumber:    number,
		Date:          req.Date,
		// The bill has no discount columns: its subtotal is the quotation's
		// post-discount taxable amount, so subtotal + total_tax = grand_total.
		Subtotal:      q.TaxableAmount,
		CGSTPercent:   q.CGSTPercent,
		CGSTAmount:    q.CGSTAmount,
		SGSTPercent:   q.SGSTPercent,
		SGSTAmount:    q.SGSTAmount,
		TotalTax:      q.TotalTax,
		GrandTotal:    q.GrandTotal,
		PaidAmount:    state.PaidAmount,
		BalanceAmount: state.BalanceAmount,
		Status:        state.Status,
		Notes:         req.Notes,
	}
	err = tx.QueryRow(ctx,
		`INSERT INTO bills(company_id, quotation_id, bill_number, date, subtotal, cgst_percent, cgst_amount,
		        sgst_percent, sgst_amount, total_tax, grand_total, paid_amount, balance_amount, status, notes)
		 VALUES($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
		 RETURNING id, created_at, updated_at`,
		b.CompanyID, b.QuotationID, b.BillNumber, b.Date, b.Subtotal, b.CGSTPercent, b.CGSTAmount,
		b.SGSTPercent, b.SGSTAmount, b.TotalTax, b.GrandTotal, b.PaidAmount, b.BalanceAmount,
		b.Status, b.Notes,
	).Scan(&b.ID, &b.CreatedAt, &b.UpdatedAt)
	if err != nil {
		return nil, err
	}

	if _, err := tx.Exec(ctx,
		`UPDATE quotations SET status=$1, updated_at=NOW() WHERE id=$2`,
		models.QuotationStatusBilled, q.ID); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return &b, nil
}

func (r *BillRepository) Get(ctx context.Context, companyID, id int) (*models.BillDetail, error) {
	row := r.DB.QueryRow(ctx,
		`SELECT b.id, b.company_id, b.quotation_id, b.bill_number, b.date, b.subtotal,
		        b.cgst_percent, b.cgst_amount, b.sgst_percent, b.sgst_amount, b.total_tax,
		        b.grand_total, b.paid_amount, b.balance_amount, b.status, b.notes,
		        b.created_at, b.updated_at,
		        q.quotation_number, q.total_sqft, q.rate_per_sqft,
		        c.name, c.address, c.phone, c.project_location
		 FROM bills b
		 JOIN quotations q ON b.quotation_id = q.id
		 JOIN clients c ON q.client_id = c.id
		 WHERE b.id=$1 AND b.company_id=$2`, id, companyID)

	var d models.BillDetail
	err := row.Scan(&d.ID, &d.CompanyID, &d.QuotationID, &d.BillNumber, &d.Date, &d.Subtotal,
		&d.CGSTPercent, &d.CGSTAmount, &d.SGSTPercent, &d.SGSTAmount, &d.TotalTax,
		&d.GrandTotal, &d.PaidAmount, &d.BalanceAmount, &d.Status, &d.Notes,
		&d.CreatedAt, &d.UpdatedAt,
		&d.QuotationNumber, &d.TotalSqft, &d.RatePerSqft,
		&d.ClientName, &d.ClientAddress, &d.ClientPhone, &d.ProjectLocation)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperrors.NotFound("Bill")
	}
	if err != nil {
		return nil, err
	}

	qr := QuotationRepository{DB: r.DB}
	if d.Items, err = qr.listItems(ctx, d.QuotationID); err != nil {
		return nil, err
	}
	if d.Receipts, err = qr.listReceipts(ctx, d.QuotationID); err != nil {
		return nil, err
	}
	return &d, nil
}

func (r *BillRepository) List(ctx context.Context, companyID int) ([]*models.BillSummary, error) {
	return r.list(ctx, companyID, 0)
}

func (r *BillRepository) Recent(ctx context.Context, companyID, limit int) ([]*models.BillSummary, error) {
	return r.list(ctx, companyID, limit)
}

func (r *BillRepository) list(ctx context.Context, companyID, limit int) ([]*models.BillSummary, error) {
	query := `SELECT b.id, b.company_id, b.quotation_id, b.bill_number, b.date, b.subtotal,
	                 b.cgst_percent, b.cgst_amount, b.sgst_percent, b.sgst_amount, b.total_tax,
	                 b.grand_total, b.paid_amount, b.balance_amount, b.status, b.notes,
	                 b.created_at, b.updated_at, q.quotation_number, c.name
	          FROM bills b
	          JOIN quotations q ON b.quotation_id = q.id
	          JOIN clients c ON q.client_id = c.id
	          WHERE b.company_id=$1
	          ORDER BY b.created_at DESC`
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

	var bills []*models.BillSummary
	for rows.Next() {
		var s models.BillSummary
		err := rows.Scan(&s.ID, &s.CompanyID, &s.QuotationID, &s.BillNumber, &s.Date, &s.Subtotal,
			&s.CGSTPercent, &s.CGSTAmount, &s.SGSTPercent, &s.SGSTAmount, &s.TotalTax,
			&s.GrandTotal, &s.PaidAmount, &s.BalanceAmount, &s.Status, &s.Notes,
			&s.CreatedAt, &s.UpdatedAt, &s.QuotationNumber, &s.ClientName)
		if err != nil {
			return nil, err
		}
		bills = append(bills, &s)
	}
	return bills, rows.Err()
}

// Update changes only date and notes; financials stay as snapshotted
func (r *BillRepository) Update(ctx context.Context, companyID, id int, req *models.UpdateBillRequest) error {
	tag, err := r.DB.Exec(ctx,
		`UPDATE bills SET date=$1, notes=$2, updated_at=NOW() WHERE id=$3 AND company_id=$4`,
		req.Date, req.Notes, id, companyID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return apperrors.NotFound("Bill")
	}
	return nil
}

// Delete removes the bill and reverts the quotation to confirmed,
// whatever its prior status. Receipts are kept.
func (r *BillRepository) Delete(ctx context.Context, companyID, id int) error {
	tx, err := r.DB.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	var quotationID int
	err = tx.QueryRow(ctx,
		`DELETE FROM bills WHERE id=$1 AND company_id=$2 RETURNING quotation_id`,
		id, companyID).Scan(&quotationID)
	if errors.Is(err, pgx.ErrNoRows) {
		return apperrors.NotFound("Bill")
	}
	if err != nil {
		return err
	}

	if _, err := tx.Exec(ctx,
		`UPDATE quotations SET status=$1, updated_at=NOW() WHERE id=$2`,
		models.QuotationStatusConfirmed, quotationID); err != nil {
		return err
	}

	return tx.Commit(ctx)
}

// reconcileBill recomputes a bill's payment state from the receipts of
// its quotation, inside the caller's transaction. The bill row is
// locked first so concurrent receipt mutations serialize. No bill for
// the quotation is not an error: receipts may pre-date billing.
func reconcileBill(ctx context.Context, tx pgx.Tx, quotationID int) error {
	var billID int
	var grandTotal float64
	err := tx.QueryRow(ctx,
		`SELECT id, grand_total FROM bills WHERE quotation_id=$1 FOR UPDATE`,
		quotationID).Scan(&billID, &grandTotal)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil
	}
	if err != nil {
		return err
	}

	var totalReceived float64
	if err := tx.QueryRow(ctx,
		`SELECT COALESCE(SUM(amount), 0) FROM receipts WHERE quotation_id=$1`,
		quotationID).Scan(&totalReceived); err != nil {
		return err
	}

	state := billing.Reconcile(grandTotal, totalReceived)
	_, err = tx.Exec(ctx,
		`UPDATE bills SET paid_amount=$1, balance_amount=$2, status=$3, updated_at=NOW() WHERE id=$4`,
		state.PaidAmount, state.BalanceAmount, state.Status, billID)
	return err
}
