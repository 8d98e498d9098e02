package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"crm-backend/internal/apperrors"
	"crm-backend/internal/models"
)

type fakeQuotationStore struct {
	nextID  int
	created map[int]*models.QuotationDetail
}

func newFakeQuotationStore() *fakeQuotationStore {
	return &fakeQuotationStore{created: map[int]*models.QuotationDetail{}}
}

func (f *fakeQuotationStore) Create(ctx context.Context, tenant models.TenantContext, q *models.Quotation, items []models.QuotationItem, columnConfig models.ColumnConfig) error {
	f.nextID++
	q.ID = f.nextID
	q.QuotationNumber = "TEST/2508/0001"
	f.created[q.ID] = &models.QuotationDetail{Quotation: *q, Items: items, ColumnConfig: columnConfig}
	return nil
}

func (f *fakeQuotationStore) Update(ctx context.Context, tenant models.TenantContext, id int, q *models.Quotation, items []models.QuotationItem, columnConfig models.ColumnConfig) error {
	existing, ok := f.created[id]
	if !ok {
		return apperrors.NotFound("Quotation")
	}
	q.ID = id
	q.QuotationNumber = existing.QuotationNumber
	f.created[id] = &models.QuotationDetail{Quotation: *q, Items: items, ColumnConfig: columnConfig}
	return nil
}

func (f *fakeQuotationStore) Get(ctx context.Context, companyID, id int) (*models.QuotationDetail, error) {
	d, ok := f.created[id]
	if !ok || d.CompanyID != companyID {
		return nil, apperrors.NotFound("Quotation")
	}
	return d, nil
}

func (f *fakeQuotationStore) List(ctx context.Context, companyID int) ([]*models.QuotationSummary, error) {
	return nil, nil
}

func (f *fakeQuotationStore) Recent(ctx context.Context, companyID, limit int) ([]*models.QuotationSummary, error) {
	return nil, nil
}

func (f *fakeQuotationStore) Delete(ctx context.Context, companyID, id int) error {
	if _, ok := f.created[id]; !ok {
		return apperrors.NotFound("Quotation")
	}
	delete(f.created, id)
	return nil
}

var testTenant = models.TenantContext{CompanyID: 1, CompanyCode: "TEST", CompanyName: "Test Interiors"}

func TestCreateQuotationComputesBreakdown(t *testing.T) {
	svc := NewQuotationService(newFakeQuotationStore())

	detail, err := svc.CreateQuotation(context.Background(), testTenant, &models.QuotationRequest{
		ClientID:      7,
		Date:          "2025-08-15",
		TotalSqft:     1000,
		RatePerSqft:   1500,
		DiscountType:  "percentage",
		DiscountValue: 10,
	})
	require.NoError(t, err)

	assert.Equal(t, 1500000.0, detail.Subtotal)
	assert.Equal(t, 150000.0, detail.DiscountAmount)
	assert.Equal(t, 1350000.0, detail.TaxableAmount)
	assert.Equal(t, 121500.0, detail.CGSTAmount)
	assert.Equal(t, 121500.0, detail.SGSTAmount)
	assert.Equal(t, 1593000.0, detail.GrandTotal)
	assert.Equal(t, models.QuotationStatusDraft, detail.Status)
	assert.NotEmpty(t, detail.QuotationNumber)
}

func TestCreateQuotationIgnoresClientSuppliedTotals(t *testing.T) {
	svc := NewQuotationService(newFakeQuotationStore())

	detail, err := svc.CreateQuotation(context.Background(), testTenant, &models.QuotationRequest{
		ClientID:    7,
		Date:        "2025-08-15",
		TotalSqft:   100,
		RatePerSqft: 10,
		Items: []models.QuotationItem{
			{ItemName: "Wardrobe", Quantity: 2, Rate: 25000},
			{ItemName: "False ceiling", Amount: 50000},
		},
	})
	require.NoError(t, err)

	// items win over sqft x rate; missing line amount derived from qty x rate
	assert.Equal(t, 100000.0, detail.Subtotal)
	assert.Equal(t, 50000.0, detail.Items[0].Amount)
}

func TestCreateQuotationRejectsExcessiveDiscount(t *testing.T) {
	svc := NewQuotationService(newFakeQuotationStore())

	_, err := svc.CreateQuotation(context.Background(), testTenant, &models.QuotationRequest{
		ClientID:      7,
		Date:          "2025-08-15",
		TotalSqft:     1000,
		RatePerSqft:   1500,
		DiscountType:  "flat",
		DiscountValue: 500000,
	})
	require.Error(t, err)

	var ve *apperrors.ValidationError
	assert.ErrorAs(t, err, &ve)
}

func TestCreateQuotationValidation(t *testing.T) {
	svc := NewQuotationService(newFakeQuotationStore())
	ctx := context.Background()

	_, err := svc.CreateQuotation(ctx, testTenant, &models.QuotationRequest{Date: "2025-08-15"})
	assert.Error(t, err)

	_, err = svc.CreateQuotation(ctx, testTenant, &models.QuotationRequest{ClientID: 1})
	assert.Error(t, err)

	_, err = svc.CreateQuotation(ctx, testTenant, &models.QuotationRequest{
		ClientID: 1, Date: "2025-08-15", Status: "archived",
	})
	assert.Error(t, err)
}

func TestUpdateQuotationRecomputesTotals(t *testing.T) {
	store := newFakeQuotationStore()
	svc := NewQuotationService(store)
	ctx := context.Background()

	created, err := svc.CreateQuotation(ctx, testTenant, &models.QuotationRequest{
		ClientID: 7, Date: "2025-08-15", TotalSqft: 1000, RatePerSqft: 1500,
	})
	require.NoError(t, err)

	updated, err := svc.UpdateQuotation(ctx, testTenant, created.ID, &models.QuotationRequest{
		ClientID: 7, Date: "2025-08-16", TotalSqft: 1000, RatePerSqft: 2000,
		Status: models.QuotationStatusConfirmed,
	})
	require.NoError(t, err)

	assert.Equal(t, 2000000.0, updated.Subtotal)
	assert.Equal(t, created.QuotationNumber, updated.QuotationNumber)
	assert.Equal(t, models.QuotationStatusConfirmed, updated.Status)
}

func TestCalculatePreviewDefaultsGST(t *testing.T) {
	svc := NewQuotationService(newFakeQuotationStore())

	breakdown, err := svc.CalculatePreview(&models.CalculateRequest{
		TotalSqft:   500,
		RatePerSqft: 1200,
	})
	require.NoError(t, err)

	assert.Equal(t, 600000.0, breakdown.Subtotal)
	assert.Equal(t, 9.0, breakdown.CGSTPercent)
	assert.Equal(t, 9.0, breakdown.SGSTPercent)
	assert.Equal(t, 708000.0, breakdown.GrandTotal)
}

func TestRecentQuotationsDefaultLimit(t *testing.T) {
	store := newFakeQuotationStore()
	svc := NewQuotationService(store)

	_, err := svc.RecentQuotations(context.Background(), testTenant, 0)
	assert.NoError(t, err)
}
