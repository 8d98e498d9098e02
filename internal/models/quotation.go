package models

import "time"

// Quotation status values. Confirmation is advisory: creating a bill
// moves any status straight to "billed".
const (
	QuotationStatusDraft     = "draft"
	QuotationStatusConfirmed = "confirmed"
	QuotationStatusBilled    = "billed"
)

// Quotation is the central financial document. All monetary fields are
// derived server-side; client-supplied totals are never trusted.
type Quotation struct {
	ID              int           `json:"id"`
	CompanyID       int           `json:"company_id"`
	ClientID        int           `json:"client_id"`
	QuotationNumber string        `json:"quotation_number"`
	Date            string        `json:"date"`
	TotalSqft       float64       `json:"total_sqft"`
	RatePerSqft     float64       `json:"rate_per_sqft"`
	PackageID       *int          `json:"package_id"`
	BedroomCount    int           `json:"bedroom_count"`
	BedroomConfig   []BedroomSpec `json:"bedroom_config"`
	Subtotal        float64       `json:"subtotal"`
	DiscountType    string        `json:"discount_type"`
	DiscountValue   float64       `json:"discount_value"`
	DiscountAmount  float64       `json:"discount_amount"`
	TaxableAmount   float64       `json:"taxable_amount"`
	CGSTPercent     float64       `json:"cgst_percent"`
	CGSTAmount      float64       `json:"cgst_amount"`
	SGSTPercent     float64       `json:"sgst_percent"`
	SGSTAmount      float64       `json:"sgst_amount"`
	TotalTax        float64       `json:"total_tax"`
	GrandTotal      float64       `json:"grand_total"`
	TermsConditions string        `json:"terms_conditions"`
	Notes           string        `json:"notes"`
	Status          string        `json:"status"`
	CreatedAt       time.Time     `json:"created_at"`
	UpdatedAt       time.Time     `json:"updated_at"`
}

// BedroomSpec is one entry of the ordered bedroom configuration
type BedroomSpec struct {
	Label string `json:"label"`
}

// QuotationItem is one line of a quotation. CustomColumns holds the
// per-quotation dynamic columns; values are strings or numbers, keyed
// by the column key declared in the quotation's ColumnConfig.
type QuotationItem struct {
	ID            int                    `json:"id"`
	QuotationID   int                    `json:"quotation_id"`
	RoomLabel     string                 `json:"room_label"`
	ItemName      string                 `json:"item_name"`
	Description   string                 `json:"description"`
	Material      string                 `json:"material"`
	Brand         string                 `json:"brand"`
	Unit          string                 `json:"unit"`
	Quantity      float64                `json:"quantity"`
	Rate          float64                `json:"rate"`
	Amount        float64                `json:"amount"`
	Remarks       string                 `json:"remarks"`
	CustomColumns map[string]interface{} `json:"custom_columns"`
	SortOrder     int                    `json:"sort_order"`
}

// ColumnDef describes one custom column for rendering
type ColumnDef struct {
	Key     string `json:"key"`
	Label   string `json:"label"`
	Type    string `json:"type"` // "text" or "number"
	Visible bool   `json:"visible"`
}

// ColumnConfig is the ordered schema of a quotation's custom columns
type ColumnConfig []ColumnDef

// QuotationSummary is the list-view row with client info joined in
type QuotationSummary struct {
	Quotation
	ClientName  string `json:"client_name"`
	ClientPhone string `json:"client_phone,omitempty"`
}

// QuotationDetail is the full document with related records
type QuotationDetail struct {
	Quotation
	ClientName      string          `json:"client_name"`
	ClientAddress   string          `json:"client_address"`
	ClientPhone     string          `json:"client_phone"`
	ClientEmail     string          `json:"client_email"`
	ProjectLocation string          `json:"project_location"`
	Items           []QuotationItem `json:"items"`
	ColumnConfig    ColumnConfig    `json:"column_config"`
	Receipts        []*Receipt      `json:"receipts"`
	Bill            *Bill           `json:"bill"`
}

// QuotationRequest carries the raw inputs for create/update. Totals and
// the discount amount are recomputed from these on every write.
type QuotationRequest struct {
	ClientID        int             `json:"client_id"`
	Date            string          `json:"date"`
	TotalSqft       float64         `json:"total_sqft"`
	RatePerSqft     float64         `json:"rate_per_sqft"`
	PackageID       *int            `json:"package_id"`
	BedroomCount    int             `json:"bedroom_count"`
	BedroomConfig   []BedroomSpec   `json:"bedroom_config"`
	Items           []QuotationItem `json:"items"`
	ColumnConfig    ColumnConfig    `json:"column_config"`
	DiscountType    string          `json:"discount_type"`
	DiscountValue   float64         `json:"discount_value"`
	CGSTPercent     float64         `json:"cgst_percent"`
	SGSTPercent     float64         `json:"sgst_percent"`
	TermsConditions string          `json:"terms_conditions"`
	Notes           string          `json:"notes"`
	Status          string          `json:"status"`
}

// CalculateRequest is the side-effect-free preview input
type CalculateRequest struct {
	TotalSqft     float64         `json:"total_sqft"`
	RatePerSqft   float64         `json:"rate_per_sqft"`
	Items         []QuotationItem `json:"items"`
	DiscountType  string          `json:"discount_type"`
	DiscountValue float64         `json:"discount_value"`
	CGSTPercent   float64         `json:"cgst_percent"`
	SGSTPercent   float64         `json:"sgst_percent"`
}
