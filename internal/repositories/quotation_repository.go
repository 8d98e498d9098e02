package repositories

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"crm-backend/internal/apperrors"
	"crm-backend/internal/billing"
	"crm-backend/internal/models"
)

type QuotationRepository struct {
	DB *pgxpool.Pool
}

func NewQuotationRepository(db *pgxpool.Pool) *QuotationRepository {
	return &QuotationRepository{DB: db}
}

// Create persists a fully computed quotation with its items and column
// config. Numbering, the document row and all children commit together.
func (r *QuotationRepository) Create(ctx context.Context, tenant models.TenantContext, q *models.Quotation, items []models.QuotationItem, columnConfig models.ColumnConfig) error {
	tx, err := r.DB.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	number, err := nextDocumentNumber(ctx, tx, tenant.CompanyID, tenant.CompanyCode, billing.DocQuotation)
	if err != nil {
		return err
	}
	q.QuotationNumber = number
	q.CompanyID = tenant.CompanyID

	bedroomConfig, err := json.Marshal(q.BedroomConfig)
	if err != nil {
		return err
	}

	err = tx.QueryRow(ctx,
		`INSERT INTO quotations(company_id, client_id, quotation_number, date, total_sqft, rate_per_sqft,
		        package_id, bedroom_count, bedroom_config, subtotal, discount_type, discount_value,
		        discount_amount, taxable_amount, cgst_percent, cgst_amount, sgst_percent, sgst_amount,
		        total_tax, grand_total, terms_conditions, notes, status)
		 VALUES($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21, $22, $23)
		 RETURNING id, created_at, updated_at`,
		q.CompanyID, q.ClientID, q.QuotationNumber, q.Date, q.TotalSqft, q.RatePerSqft,
		q.PackageID, q.BedroomCount, bedroomConfig, q.Subtotal, q.DiscountType, q.DiscountValue,
		q.DiscountAmount, q.TaxableAmount, q.CGSTPercent, q.CGSTAmount, q.SGSTPercent, q.SGSTAmount,
		q.TotalTax, q.GrandTotal, q.TermsConditions, q.Notes, q.Status,
	).Scan(&q.ID, &q.CreatedAt, &q.UpdatedAt)
	if err != nil {
		return err
	}

	if err := insertQuotationItems(ctx, tx, q.ID, items); err != nil {
		return err
	}
	if err := upsertColumnConfig(ctx, tx, q.ID, columnConfig); err != nil {
		return err
	}

	return tx.Commit(ctx)
}

// Update replaces the quotation's fields, items and column config.
// The quotation number never changes after creation.
func (r *QuotationRepository) Update(ctx context.Context, tenant models.TenantContext, id int, q *models.Quotation, items []models.QuotationItem, columnConfig models.ColumnConfig) error {
	tx, err := r.DB.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	bedroomConfig, err := json.Marshal(q.BedroomConfig)
	if err != nil {
		return err
	}

	tag, err := tx.Exec(ctx,
		`UPDATE quotations SET client_id=$1, date=$2, total_sqft=$3, rate_per_sqft=$4, package_id=$5,
		        bedroom_count=$6, bedroom_config=$7, subtotal=$8, discount_type=$9, discount_value=$10,
		        discount_amount=$11, taxable_amount=$12, cgst_percent=$13, cgst_amount=$14,
		        sgst_percent=$15, sgst_amount=$16, total_tax=$17, grand_total=$18,
		        terms_conditions=$19, notes=$20, status=$21, updated_at=NOW()
		 WHERE id=$22 AND company_id=$23`,
		q.ClientID, q.Date, q.TotalSqft, q.RatePerSqft, q.PackageID,
		q.BedroomCount, bedroomConfig, q.Subtotal, q.DiscountType, q.DiscountValue,
		q.DiscountAmount, q.TaxableAmount, q.CGSTPercent, q.CGSTAmount,
		q.SGSTPercent, q.SGSTAmount, q.TotalTax, q.GrandTotal,
		q.TermsConditions, q.Notes, q.Status, id, tenant.CompanyID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return apperrors.NotFound("Quotation")
	}

	if _, err := tx.Exec(ctx, `DELETE FROM quotation_items WHERE quotation_id=$1`, id); err != nil {
		return err
	}
	if err := insertQuotationItems(ctx, tx, id, items); err != nil {
		return err
	}
	if err := upsertColumnConfig(ctx, tx, id, columnConfig); err != nil {
		return err
	}

	return tx.Commit(ctx)
}

// Get loads the full document: client fields, items, column config,
// receipts and the bill if one exists.
func (r *QuotationRepository) Get(ctx context.Context, companyID, id int) (*models.QuotationDetail, error) {
	row := r.DB.QueryRow(ctx,
		`SELECT q.id, q.company_id, q.client_id, q.quotation_number, q.date, q.total_sqft, q.rate_per_sqft,
		        q.package_id, q.bedroom_count, q.bedroom_config, q.subtotal, q.discount_type, q.discount_value,
		        q.discount_amount, q.taxable_amount, q.cgst_percent, q.cgst_amount, q.sgst_percent, q.sgst_amount,
		        q.total_tax, q.grand_total, q.terms_conditions, q.notes, q.status, q.created_at, q.updated_at,
		        c.name, c.address, c.phone, c.email, c.project_location
		 FROM quotations q
		 JOIN clients c ON q.client_id = c.id
		 WHERE q.id=$1 AND q.company_id=$2`, id, companyID)

	var d models.QuotationDetail
	var bedroomConfig []byte
	err := row.Scan(&d.ID, &d.CompanyID, &d.ClientID, &d.QuotationNumber, &d.Date, &d.TotalSqft, &d.RatePerSqft,
		&d.PackageID, &d.BedroomCount, &bedroomConfig, &d.Subtotal, &d.DiscountType, &d.DiscountValue,
		&d.DiscountAmount, &d.TaxableAmount, &d.CGSTPercent, &d.CGSTAmount, &d.SGSTPercent, &d.SGSTAmount,
		&d.TotalTax, &d.GrandTotal, &d.TermsConditions, &d.Notes, &d.Status, &d.CreatedAt, &d.UpdatedAt,
		&d.ClientName, &d.ClientAddress, &d.ClientPhone, &d.ClientEmail, &d.ProjectLocation)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperrors.NotFound("Quotation")
	}
	if err != nil {
		return nil, err
	}
	if len(bedroomConfig) > 0 {
		if err := json.Unmarshal(bedroomConfig, &d.BedroomConfig); err != nil {
			return nil, err
		}
	}

	if d.Items, err = r.listItems(ctx, id); err != nil {
		return nil, err
	}
	if d.ColumnConfig, err = r.getColumnConfig(ctx, id); err != nil {
		return nil, err
	}
	if d.Receipts, err = r.listReceipts(ctx, id); err != nil {
		return nil, err
	}
	if d.Bill, err = r.getBill(ctx, id); err != nil {
		return nil, err
	}

	return &d, nil
}

func (r *QuotationRepository) List(ctx context.Context, companyID int) ([]*models.QuotationSummary, error) {
	return r.list(ctx, companyID, 0)
}

// Recent returns the latest quotations for the dashboard
func (r *QuotationRepository) Recent(ctx context.Context, companyID, limit int) ([]*models.QuotationSummary, error) {
	return r.list(ctx, companyID, limit)
}

func (r *QuotationRepository) list(ctx context.Context, companyID, limit int) ([]*models.QuotationSummary, error) {
	query := `SELECT q.id, q.company_id, q.client_id, q.quotation_number, q.date, q.total_sqft, q.rate_per_sqft,
	                 q.package_id, q.bedroom_count, q.bedroom_config, q.subtotal, q.discount_type, q.discount_value,
	                 q.discount_amount, q.taxable_amount, q.cgst_percent, q.cgst_amount, q.sgst_percent, q.sgst_amount,
	                 q.total_tax, q.grand_total, q.terms_conditions, q.notes, q.status, q.created_at, q.updated_at,
	                 c.name, c.phone
	          FROM quotations q
	          JOIN clients c ON q.client_id = c.id
	          WHERE q.company_id=$1
	          ORDER BY q.created_at DESC`
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

	var quotations []*models.QuotationSummary
	for rows.Next() {
		var s models.QuotationSummary
		var bedroomConfig []byte
		err := rows.Scan(&s.ID, &s.CompanyID, &s.ClientID, &s.QuotationNumber, &s.Date, &s.TotalSqft, &s.RatePerSqft,
			&s.PackageID, &s.BedroomCount, &bedroomConfig, &s.Subtotal, &s.DiscountType, &s.DiscountValue,
			&s.DiscountAmount, &s.TaxableAmount, &s.CGSTPercent, &s.CGSTAmount, &s.SGSTPercent, &s.SGSTAmount,
			&s.TotalTax, &s.GrandTotal, &s.TermsConditions, &s.Notes, &s.Status, &s.CreatedAt, &s.UpdatedAt,
			&s.ClientName, &s.ClientPhone)
		if err != nil {
			return nil, err
		}
		if len(bedroomConfig) > 0 {
			if err := json.Unmarshal(bedroomConfig, &s.BedroomConfig); err != nil {
				return nil, err
			}
		}
		quotations = append(quotations, &s)
	}
	return quotations, rows.Err()
}

// Delete removes a quotation with its items and column config. Blocked
// while any receipt or a bill references it.
func (r *QuotationRepository) Delete(ctx context.Context, companyID, id int) error {
	tx, err := r.DB.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	var exists bool
	err = tx.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM quotations WHERE id=$1 AND company_id=$2)`,
		id, companyID).Scan(&exists)
	if err != nil {
		return err
	}
	if !exists {
		return apperrors.NotFound("Quotation")
	}

	var receiptCount int
	if err := tx.QueryRow(ctx, `SELECT COUNT(*) FROM receipts WHERE quotation_id=$1`, id).Scan(&receiptCount); err != nil {
		return err
	}
	if receiptCount > 0 {
		return apperrors.Conflictf("Cannot delete quotation with existing receipts")
	}

	var billCount int
	if err := tx.QueryRow(ctx, `SELECT COUNT(*) FROM bills WHERE quotation_id=$1`, id).Scan(&billCount); err != nil {
		return err
	}
	if billCount > 0 {
		return apperrors.Conflictf("Cannot delete quotation with an existing bill")
	}

	// items and column config go with the quotation via ON DELETE CASCADE
	if _, err := tx.Exec(ctx, `DELETE FROM quotations WHERE id=$1 AND company_id=$2`, id, companyID); err != nil {
		return err
	}

	return tx.Commit(ctx)
}

func (r *QuotationRepository) listItems(ctx context.Context, quotationID int) ([]models.QuotationItem, error) {
	rows, err := r.DB.Query(ctx,
		`SELECT id, quotation_id, room_label, item_name, description, material, brand, unit,
		        quantity, rate, amount, remarks, custom_columns, sort_order
		 FROM quotation_items WHERE quotation_id=$1 ORDER BY sort_order, id`, quotationID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := []models.QuotationItem{}
	for rows.Next() {
		var item models.QuotationItem
		var customColumns []byte
		err := rows.Scan(&item.ID, &item.QuotationID, &item.RoomLabel, &item.ItemName, &item.Description,
			&item.Material, &item.Brand, &item.Unit, &item.Quantity, &item.Rate, &item.Amount,
			&item.Remarks, &customColumns, &item.SortOrder)
		if err != nil {
			return nil, err
		}
		if len(customColumns) > 0 {
			if err := json.Unmarshal(customColumns, &item.CustomColumns); err != nil {
				return nil, err
			}
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

func (r *QuotationRepository) getColumnConfig(ctx context.Context, quotationID int) (models.ColumnConfig, error) {
	var raw []byte
	err := r.DB.QueryRow(ctx,
		`SELECT columns_config FROM quotation_column_config WHERE quotation_id=$1`,
		quotationID).Scan(&raw)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var config models.ColumnConfig
	if err := json.Unmarshal(raw, &config); err != nil {
		return nil, err
	}
	return config, nil
}

func (r *QuotationRepository) listReceipts(ctx context.Context, quotationID int) ([]*models.Receipt, error) {
	rows, err := r.DB.Query(ctx,
		`SELECT id, company_id, quotation_id, receipt_number, date, amount, payment_mode,
		        transaction_reference, notes, created_at
		 FROM receipts WHERE quotation_id=$1 ORDER BY date, id`, quotationID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	receipts := []*models.Receipt{}
	for rows.Next() {
		var rec models.Receipt
		err := rows.Scan(&rec.ID, &rec.CompanyID, &rec.QuotationID, &rec.ReceiptNumber, &rec.Date,
			&rec.Amount, &rec.PaymentMode, &rec.TransactionReference, &rec.Notes, &rec.CreatedAt)
		if err != nil {
			return nil, err
		}
		receipts = append(receipts, &rec)
	}
	return receipts, rows.Err()
}

func (r *QuotationRepository) getBill(ctx context.Context, quotationID int) (*models.Bill, error) {
	row := r.DB.QueryRow(ctx,
		`SELECT id, company_id, quotation_id, bill_number, date, subtotal, cgst_percent, cgst_amount,
		        sgst_percent, sgst_amount, total_tax, grand_total, paid_amount, balance_amount,
		        status, notes, created_at, updated_at
		 FROM bills WHERE quotation_id=$1`, quotationID)

	var b models.Bill
	err := row.Scan(&b.ID, &b.CompanyID, &b.QuotationID, &b.BillNumber, &b.Date, &b.Subtotal,
		&b.CGSTPercent, &b.CGSTAmount, &b.SGSTPercent, &b.SGSTAmount, &b.TotalTax, &b.GrandTotal,
		&b.PaidAmount, &b.BalanceAmount, &b.Status, &b.Notes, &b.CreatedAt, &b.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &b, nil
}

func insertQuotationItems(ctx context.Context, tx pgx.Tx, quotationID int, items []models.QuotationItem) error {
	for i, item := range items {
		customColumns, err := json.Marshal(item.CustomColumns)
		if err != nil {
			return err
		}
		if item.CustomColumns == nil {
			customColumns = []byte(`{}`)
		}
		_, err = tx.Exec(ctx,
			`INSERT INTO quotation_items(quotation_id, room_label, item_name, description, material, brand,
			        unit, quantity, rate, amount, remarks, custom_columns, sort_order)
			 VALUES($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`,
			quotationID, item.RoomLabel, item.ItemName, item.Description, item.Material, item.Brand,
			item.Unit, item.Quantity, item.Rate, item.Amount, item.Remarks, customColumns, i)
		if err != nil {
			return err
		}
	}
	return nil
}

func upsertColumnConfig(ctx context.Context, tx pgx.Tx, quotationID int, config models.ColumnConfig) error {
	if len(config) == 0 {
		_, err := tx.Exec(ctx, `DELETE FROM quotation_column_config WHERE quotation_id=$1`, quotationID)
		return err
	}

	raw, err := json.Marshal(config)
	if err != nil {
		return err
	}
	_, err = tx.Exec(ctx,
		`INSERT INTO quotation_column_config(quotation_id, columns_config)
		 VALUES($1, $2)
		 ON CONFLICT (quotation_id) DO UPDATE SET columns_config = EXCLUDED.columns_config`,
		quotationID, raw)
	return err
}
