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

type fakeBillStore struct {
	nextID     int
	quotations map[int]*models.Quotation
	bills      map[int]*models.BillDetail
}

func newFakeBillStore(quotations ...*models.Quotation) *fakeBillStore {
	f := &fakeBillStore{quotations: map[int]*models.Quotation{}, bills: map[int]*models.BillDetail{}}
	for _, q := range quotations {
		f.quotations[q.ID] = q
	}
	return f
}

func (f *fakeBillStore) CreateFromQuotation(ctx context.Context, tenant models.TenantContext, req *models.CreateBillRequest) (*models.Bill, error) {
	q, ok := f.quotations[req.QuotationID]
	if !ok || q.CompanyID != tenant.CompanyID {
		return nil, apperrors.NotFound("Quotation")
	}
	for _, b := range f.bills {
		if b.QuotationID == q.ID {
			return nil, apperrors.Conflictf("A bill already exists for this quotation")
		}
	}

	state := billing.Reconcile(q.GrandTotal, 0)
	f.nextID++
	bill := models.Bill{
		ID:            f.nextID,
		CompanyID:     tenant.CompanyID,
		QuotationID:   q.ID,
		BillNumber:    "INV/TEST/2508/0001",
		Date:          req.Date,
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
	}
	f.bills[bill.ID] = &models.BillDetail{Bill: bill}
	q.Status = models.QuotationStatusBilled
	return &bill, nil
}

func (f *fakeBillStore) Get(ctx context.Context, companyID, id int) (*models.BillDetail, error) {
	b, ok := f.bills[id]
	if !ok || b.CompanyID != companyID {
		return nil, apperrors.NotFound("Bill")
	}
	return b, nil
}

func (f *fakeBillStore) List(ctx context.Context, companyID int) ([]*models.BillSummary, error) {
	return nil, nil
}

func (f *fakeBillStore) Recent(ctx context.Context, companyID, limit int) ([]*models.BillSummary, error) {
	return nil, nil
}

func (f *fakeBillStore) Update(ctx context.Context, companyID, id int, req *models.UpdateBillRequest) error {
	b, ok := f.bills[id]
	if !ok {
		return apperrors.NotFound("Bill")
	}
	b.Date = req.Date
	b.Notes = req.Notes
	return nil
}

func (f *fakeBillStore) Delete(ctx context.Context, companyID, id int) error {
	b, ok := f.bills[id]
	if !ok {
		return apperrors.NotFound("Bill")
	}
	if q, ok := f.quotations[b.QuotationID]; ok {
		q.Status = models.QuotationStatusConfirmed
	}
	delete(f.bills, id)
	return nil
}

func TestCreateBillMarksQuotationBilled(t *testing.T) {
	q := &models.Quotation{ID: 1, CompanyID: 1, GrandTotal: 1593000, Status: models.QuotationStatusDraft}
	store := newFakeBillStore(q)
	svc := NewBillService(store)

	bill, err := svc.CreateBill(context.Background(), testTenant, &models.CreateBillRequest{QuotationID: 1})
	require.NoError(t, err)

	assert.Equal(t, models.QuotationStatusBilled, q.Status, "draft converts straight to billed")
	assert.Equal(t, models.BillStatusPending, bill.Status)
	assert.Equal(t, 1593000.0, bill.BalanceAmount)
	assert.NotEmpty(t, bill.Date, "date defaults to today")
}

func TestCreateBillSnapshotsTaxableAmount(t *testing.T) {
	// Bills carry no discount columns: the snapshot's subtotal is the
	// quotation's post-discount taxable amount so the printed rows add up.
	q := &models.Quotation{
		ID: 1, CompanyID: 1,
		Subtotal:       1500000,
		DiscountAmount: 150000,
		TaxableAmount:  1350000,
		CGSTPercent:    9, CGSTAmount: 121500,
		SGSTPercent: 9, SGSTAmount: 121500,
		TotalTax:   243000,
		GrandTotal: 1593000,
		Status:     models.QuotationStatusConfirmed,
	}
	svc := NewBillService(newFakeBillStore(q))

	bill, err := svc.CreateBill(context.Background(), testTenant, &models.CreateBillRequest{QuotationID: 1})
	require.NoError(t, err)

	assert.Equal(t, 1350000.0, bill.Subtotal, "subtotal is the taxable amount, not the pre-discount subtotal")
	assert.Equal(t, bill.GrandTotal, bill.Subtotal+bill.TotalTax)
}

func TestCreateBillRejectsDuplicate(t *testing.T) {
	q := &models.Quotation{ID: 1, CompanyID: 1, GrandTotal: 100000}
	svc := NewBillService(newFakeBillStore(q))
	ctx := context.Background()

	_, err := svc.CreateBill(ctx, testTenant, &models.CreateBillRequest{QuotationID: 1})
	require.NoError(t, err)

	_, err = svc.CreateBill(ctx, testTenant, &models.CreateBillRequest{QuotationID: 1})
	require.Error(t, err)

	var ce *apperrors.ConflictError
	assert.ErrorAs(t, err, &ce)
}

func TestCreateBillRequiresQuotation(t *testing.T) {
	svc := NewBillService(newFakeBillStore())
	ctx := context.Background()

	_, err := svc.CreateBill(ctx, testTenant, &models.CreateBillRequest{})
	assert.Error(t, err)

	_, err = svc.CreateBill(ctx, testTenant, &models.CreateBillRequest{QuotationID: 42})
	var nf *apperrors.NotFoundError
	assert.ErrorAs(t, err, &nf)
}

func TestCreateBillOtherTenantQuotationNotFound(t *testing.T) {
	q := &models.Quotation{ID: 1, CompanyID: 99, GrandTotal: 100000}
	svc := NewBillService(newFakeBillStore(q))

	_, err := svc.CreateBill(context.Background(), testTenant, &models.CreateBillRequest{QuotationID: 1})
	var nf *apperrors.NotFoundError
	assert.ErrorAs(t, err, &nf)
}

func TestDeleteBillRevertsQuotationToConfirmed(t *testing.T) {
	q := &models.Quotation{ID: 1, CompanyID: 1, GrandTotal: 100000, Status: models.QuotationStatusDraft}
	store := newFakeBillStore(q)
	svc := NewBillService(store)
	ctx := context.Background()

	bill, err := svc.CreateBill(ctx, testTenant, &models.CreateBillRequest{QuotationID: 1})
	require.NoError(t, err)

	err = svc.DeleteBill(ctx, testTenant, bill.ID)
	require.NoError(t, err)

	// reverts to confirmed even though it was never confirmed
	assert.Equal(t, models.QuotationStatusConfirmed, q.Status)
}

func TestUpdateBillRequiresDate(t *testing.T) {
	svc := NewBillService(newFakeBillStore())

	_, err := svc.UpdateBill(context.Background(), testTenant, 1, &models.UpdateBillRequest{})
	assert.Error(t, err)
}
