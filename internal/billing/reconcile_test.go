package billing

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"crm-backend/internal/models"
)

func TestReconcileNoPayments(t *testing.T) {
	state := Reconcile(1593000, 0)

	assert.Equal(t, models.BillStatusPending, state.Status)
	assert.Equal(t, 0.0, state.PaidAmount)
	assert.Equal(t, 1593000.0, state.BalanceAmount)
}

func TestReconcilePartialThenPaid(t *testing.T) {
	// Receipts of 500,000 then 1,093,000 against a 1,593,000 bill
	state := Reconcile(1593000, 500000)
	assert.Equal(t, models.BillStatusPartial, state.Status)
	assert.Equal(t, 1093000.0, state.BalanceAmount)

	state = Reconcile(1593000, 500000+1093000)
	assert.Equal(t, models.BillStatusPaid, state.Status)
	assert.Equal(t, 0.0, state.BalanceAmount)
}

func TestReconcileReceiptDeleted(t *testing.T) {
	// Deleting the second receipt drops the bill back to partial
	state := Reconcile(1593000, 500000)

	assert.Equal(t, models.BillStatusPartial, state.Status)
	assert.Equal(t, 500000.0, state.PaidAmount)
	assert.Equal(t, 1093000.0, state.BalanceAmount)
}

func TestReconcileOverpayment(t *testing.T) {
	// Overpayment keeps status paid with a negative balance
	state := Reconcile(100000, 120000)

	assert.Equal(t, models.BillStatusPaid, state.Status)
	assert.Equal(t, -20000.0, state.BalanceAmount)
}

func TestReconcileZeroTotalBill(t *testing.T) {
	state := Reconcile(0, 0)
	assert.Equal(t, models.BillStatusPaid, state.Status)
}

func TestReconcileIdempotent(t *testing.T) {
	first := Reconcile(1593000, 650000)
	second := Reconcile(1593000, 650000)

	assert.Equal(t, first, second)
}
