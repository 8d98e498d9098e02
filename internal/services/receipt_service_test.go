package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"crm-backend/internal/apperrors"
	"crm-backend/internal/billing"
	"crm-backend/internal/models"
)

// fakeReceiptStore mimics the repository's transactional behavior:
// every mutation re-derives the bill's payment state.
type fakeReceiptStore struct {
	nextID   int
	receipts map[int]*models.Receipt
	bill     *models.Bill
}

func newFakeReceiptStore(bill *models.Bill) *fakeReceiptStore {
	return &fakeReceiptStore{receipts: map[int]*models.Receipt{}, bill: bill}
}

func (f *fakeReceiptStore) reconcile() {
	if f.bill == nil {
		return
	}
	total := 0.0
	for _, r := range f.receipts {
		total += r.Amount
	}
	state := billing.Reconcile(f.bill.GrandTotal, total)
	f.bill.PaidAmount = state.PaidAmount
	f.bill.BalanceAmount = state.BalanceAmount
	f.bill.Status = state.Status
}

func (f *fakeReceiptStore) Create(ctx context.Context, tenant models.TenantContext, req *models.ReceiptRequest) (*models.Receipt, error) {
	f.nextID++
	rec := &models.Receipt{
		ID:          f.nextID,
		CompanyID:   tenant.CompanyID,
		QuotationID: req.QuotationID,
		Date:        req.Date,
		Amount:      req.Amount,
		PaymentMode: req.PaymentMode,
	}
	f.receipts[rec.ID] = rec
	f.reconcile()
	return rec, nil
}

func (f *fakeReceiptStore) Update(ctx context.Context, companyID, id int, req *models.ReceiptRequest) error {
	rec, ok := f.receipts[id]
	if !ok {
		return apperrors.NotFound("Receipt")
	}
	rec.Amount = req.Amount
	rec.PaymentMode = req.PaymentMode
	f.reconcile()
	return nil
}

func (f *fakeReceiptStore) Delete(ctx context.Context, companyID, id int) error {
	if _, ok := f.receipts[id]; !ok {
		return apperrors.NotFound("Receipt")
	}
	delete(f.receipts, id)
	f.reconcile()
	return nil
}

func (f *fakeReceiptStore) Get(ctx context.Context, companyID, id int) (*models.ReceiptDetail, error) {
	rec, ok := f.receipts[id]
	if !ok {
		return nil, apperrors.NotFound("Receipt")
	}
	return &models.ReceiptDetail{Receipt: *rec}, nil
}

func (f *fakeReceiptStore) List(ctx context.Context, companyID int) ([]*models.ReceiptSummary, error) {
	return nil, nil
}

func (f *fakeReceiptStore) Recent(ctx context.Context, companyID, limit int) ([]*models.ReceiptSummary, error) {
	return nil, nil
}

func (f *fakeReceiptStore) ByQuotation(ctx context.Context, companyID, quotationID int) (*models.QuotationReceipts, error) {
	return &models.QuotationReceipts{}, nil
}

func TestCreateReceiptValidation(t *testing.T) {
	svc := NewReceiptService(newFakeReceiptStore(nil))
	ctx := context.Background()

	_, err := svc.CreateReceipt(ctx, testTenant, &models.ReceiptRequest{Amount: 100, PaymentMode: "cash"})
	assert.Error(t, err, "missing quotation")

	_, err = svc.CreateReceipt(ctx, testTenant, &models.ReceiptRequest{QuotationID: 1, PaymentMode: "cash"})
	assert.Error(t, err, "zero amount")

	_, err = svc.CreateReceipt(ctx, testTenant, &models.ReceiptRequest{QuotationID: 1, Amount: -5, PaymentMode: "cash"})
	assert.Error(t, err, "negative amount")

	_, err = svc.CreateReceipt(ctx, testTenant, &models.ReceiptRequest{QuotationID: 1, Amount: 100})
	assert.Error(t, err, "missing payment mode")
}

func TestReceiptLifecycleReconcilesBill(t *testing.T) {
	bill := &models.Bill{QuotationID: 1, GrandTotal: 1593000, Status: models.BillStatusPending}
	store := newFakeReceiptStore(bill)
	svc := NewReceiptService(store)
	ctx := context.Background()

	first, err := svc.CreateReceipt(ctx, testTenant, &models.ReceiptRequest{
		QuotationID: 1, Amount: 500000, PaymentMode: "bank_transfer",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, first.Date, "date defaults to today")
	assert.Equal(t, models.BillStatusPartial, bill.Status)
	assert.Equal(t, 1093000.0, bill.BalanceAmount)

	second, err := svc.CreateReceipt(ctx, testTenant, &models.ReceiptRequest{
		QuotationID: 1, Amount: 1093000, PaymentMode: "cheque",
	})
	require.NoError(t, err)
	assert.Equal(t, models.BillStatusPaid, bill.Status)
	assert.Equal(t, 0.0, bill.BalanceAmount)

	err = svc.DeleteReceipt(ctx, testTenant, second.ID)
	require.NoError(t, err)
	assert.Equal(t, models.BillStatusPartial, bill.Status)

	err = svc.DeleteReceipt(ctx, testTenant, first.ID)
	require.NoError(t, err)
	assert.Equal(t, models.BillStatusPending, bill.Status)
	assert.Equal(t, 1593000.0, bill.BalanceAmount)
}

func TestUpdateReceiptReconcilesBill(t *testing.T) {
	bill := &models.Bill{QuotationID: 1, GrandTotal: 100000}
	store := newFakeReceiptStore(bill)
	svc := NewReceiptService(store)
	ctx := context.Background()

	rec, err := svc.CreateReceipt(ctx, testTenant, &models.ReceiptRequest{
		QuotationID: 1, Amount: 100000, PaymentMode: "cash",
	})
	require.NoError(t, err)
	assert.Equal(t, models.BillStatusPaid, bill.Status)

	_, err = svc.UpdateReceipt(ctx, testTenant, rec.ID, &models.ReceiptRequest{
		QuotationID: 1, Amount: 40000, PaymentMode: "cash",
	})
	require.NoError(t, err)
	assert.Equal(t, models.BillStatusPartial, bill.Status)
	assert.Equal(t, 60000.0, bill.BalanceAmount)
}
