package billing

import "crm-backend/internal/models"

// PaymentState is the recomputed payment position of a bill
type PaymentState struct {
	PaidAmount    float64
	BalanceAmount float64
	Status        string
}

// Reconcile derives a bill's payment state from its grand total and
// the sum of all receipts for its quotation. Idempotent: the same
// inputs always yield the same state. Overpayment leaves a negative
// balance with status "paid".
func Reconcile(grandTotal, totalReceived float64) PaymentState {
	balance := grandTotal - totalReceived

	status := models.BillStatusPending
	if balance <= 0 {
		status = models.BillStatusPaid
	} else if totalReceived > 0 {
		status = models.BillStatusPartial
	}

	return PaymentState{
		PaidAmount:    totalReceived,
		BalanceAmount: balance,
		Status:        status,
	}
}
