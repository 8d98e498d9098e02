package models

import "time"

// Bill payment status values
const (
	BillStatusPending = "pending"
	BillStatusPartial = "partial"
	BillStatusPaid    = "paid"
)

// Bill is the tax invoice snapshot of a quotation's financials at
// conversion time, plus running payment state. At most one bill exists
// per quotation (unique index on quotation_id).
type Bill struct {
	ID            int       `json:"id"`
	CompanyID     int       `json:"company_id"`
	QuotationID   int       `json:"quotation_id"`
	BillNumber    string    `json:"bill_number"`
	Date          string    `json:"date"`
	Subtotal      float64   `json:"subtotal"`
	CGSTPercent   float64   `json:"cgst_percent"`
	CGSTAmount    float64   `json:"cgst_amount"`
	SGSTPercent   float64   `json:"sgst_percent"`
	SGSTAmount    float64   `json:"sgst_amount"`
	TotalTax      float64   `json:"total_tax"`
	GrandTotal    float64   `json:"grand_total"`
	PaidAmount    float64   `json:"paid_amount"`
	BalanceAmount float64   `json:"balance_amount"`
	Status        string    `json:"status"`
	Notes         string    `json:"notes"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// BillSummary is the list-view row with quotation and client joined in
type BillSummary struct {
	Bill
	QuotationNumber string `json:"quotation_number"`
	ClientName      string `json:"client_name"`
}

// BillDetail is the full invoice with quotation context and receipts
type BillDetail struct {
	Bill
	QuotationNumber string          `json:"quotation_number"`
	TotalSqft       float64         `json:"total_sqft"`
	RatePerSqft     float64         `json:"rate_per_sqft"`
	ClientName      string          `json:"client_name"`
	ClientAddress   string          `json:"client_address"`
	ClientPhone     string          `json:"client_phone"`
	ProjectLocation string          `json:"project_location"`
	Items           []QuotationItem `json:"items"`
	Receipts        []*Receipt      `json:"receipts"`
}

type CreateBillRequest struct {
	QuotationID int    `json:"quotation_id"`
	Date        string `json:"date"`
	Notes       string `json:"notes"`
}

type UpdateBillRequest struct {
	Date  string `json:"date"`
	Notes string `json:"notes"`
}
