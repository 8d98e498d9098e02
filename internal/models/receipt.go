package models

import "time"

// Receipt is a payment event against a quotation. Every create, update
// or delete triggers reconciliation of the related bill, if one exists.
type Receipt struct {
	ID                   int       `json:"id"`
	CompanyID            int       `json:"company_id"`
	QuotationID          int       `json:"quotation_id"`
	ReceiptNumber        string    `json:"receipt_number"`
	Date                 string    `json:"date"`
	Amount               float64   `json:"amount"`
	PaymentMode          string    `json:"payment_mode"`
	TransactionReference string    `json:"transaction_reference"`
	Notes                string    `json:"notes"`
	CreatedAt            time.Time `json:"created_at"`
}

// ReceiptSummary is the list-view row with quotation and client joined in
type ReceiptSummary struct {
	Receipt
	QuotationNumber string `json:"quotation_number"`
	ClientName      string `json:"client_name"`
}

// ReceiptDetail is a single receipt with running totals for its quotation
type ReceiptDetail struct {
	Receipt
	QuotationNumber string  `json:"quotation_number"`
	QuotationTotal  float64 `json:"quotation_total"`
	ClientName      string  `json:"client_name"`
	ClientAddress   string  `json:"client_address"`
	ClientPhone     string  `json:"client_phone"`
	TotalReceived   float64 `json:"total_received"`
	Balance         float64 `json:"balance"`
}

// QuotationReceipts groups a quotation's receipts with aggregate totals
type QuotationReceipts struct {
	Receipts      []*Receipt `json:"receipts"`
	TotalReceived float64    `json:"total_received"`
	Balance       float64    `json:"balance"`
}

type ReceiptRequest struct {
	QuotationID          int     `json:"quotation_id"`
	Date                 string  `json:"date"`
	Amount               float64 `json:"amount"`
	PaymentMode          string  `json:"payment_mode"`
	TransactionReference string  `json:"transaction_reference"`
	Notes                string  `json:"notes"`
}
