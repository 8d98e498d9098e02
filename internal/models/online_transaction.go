package models

import "time"

// Online transaction status values
const (
	TransactionStatusCreated = "created"
	TransactionStatusSuccess = "success"
	TransactionStatusFailed  = "failed"
)

// OnlineTransaction tracks a Razorpay order raised against a bill's
// balance. A successful payment records a receipt and reconciles the bill.
type OnlineTransaction struct {
	ID                int       `json:"id"`
	CompanyID         int       `json:"company_id"`
	QuotationID       int       `json:"quotation_id"`
	BillID            int       `json:"bill_id"`
	RazorpayOrderID   string    `json:"razorpay_order_id"`
	RazorpayPaymentID string    `json:"razorpay_payment_id,omitempty"`
	Amount            float64   `json:"amount"`
	Status            string    `json:"status"`
	FailureReason     string    `json:"failure_reason,omitempty"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}

type CreateOrderRequest struct {
	BillID int     `json:"bill_id"`
	Amount float64 `json:"amount"` // 0 means full outstanding balance
}

type CreateOrderResponse struct {
	OrderID  string  `json:"order_id"`
	Amount   int     `json:"amount"` // paise
	Currency string  `json:"currency"`
	KeyID    string  `json:"key_id"`
	Balance  float64 `json:"balance"`
}

type VerifyPaymentRequest struct {
	RazorpayOrderID   string `json:"razorpay_order_id"`
	RazorpayPaymentID string `json:"razorpay_payment_id"`
	RazorpaySignature string `json:"razorpay_signature"`
}

type PaymentStatusResponse struct {
	Enabled bool   `json:"enabled"`
	KeyID   string `json:"key_id,omitempty"`
}
