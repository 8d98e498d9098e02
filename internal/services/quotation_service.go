package services

import (
	"context"
	"errors"

	"crm-backend/internal/apperrors"
	"crm-backend/internal/billing"
	"crm-backend/internal/metrics"
	"crm-backend/internal/models"
)

// QuotationStore is the persistence surface the service needs. The
// pgx-backed repository implements it; tests substitute a fake.
type QuotationStore interface {
	Create(ctx context.Context, tenant models.TenantContext, q *models.Quotation, items []models.QuotationItem, columnConfig models.ColumnConfig) error
	Update(ctx context.Context, tenant models.TenantContext, id int, q *models.Quotation, items []models.QuotationItem, columnConfig models.ColumnConfig) error
	Get(ctx context.Context, companyID, id int) (*models.QuotationDetail, error)
	List(ctx context.Context, companyID int) ([]*models.QuotationSummary, error)
	Recent(ctx context.Context, companyID, limit int) ([]*models.QuotationSummary, error)
	Delete(ctx context.Context, companyID, id int) error
}

type QuotationService struct {
	store QuotationStore
}

func NewQuotationService(store QuotationStore) *QuotationService {
	return &QuotationService{store: store}
}

// CreateQuotation validates the payload, derives the full monetary
// breakdown server-side and persists the document. Client-supplied
// totals are ignored.
func (s *QuotationService) CreateQuotation(ctx context.Context, tenant models.TenantContext, req *models.QuotationRequest) (*models.QuotationDetail, error) {
	q, items, err := s.build(tenant, req)
	if err != nil {
		return nil, err
	}

	if err := s.store.Create(ctx, tenant, q, items, req.ColumnConfig); err != nil {
		return nil, err
	}
	metrics.DocumentsCreated.WithLabelValues("quotation").Inc()

	return s.store.Get(ctx, tenant.CompanyID, q.ID)
}

func (s *QuotationService) UpdateQuotation(ctx context.Context, tenant models.TenantContext, id int, req *models.QuotationRequest) (*models.QuotationDetail, error) {
	q, items, err := s.build(tenant, req)
	if err != nil {
		return nil, err
	}

	if err := s.store.Update(ctx, tenant, id, q, items, req.ColumnConfig); err != nil {
		return nil, err
	}

	return s.store.Get(ctx, tenant.CompanyID, id)
}

func (s *QuotationService) GetQuotation(ctx context.Context, tenant models.TenantContext, id int) (*models.QuotationDetail, error) {
	return s.store.Get(ctx, tenant.CompanyID, id)
}

func (s *QuotationService) ListQuotations(ctx context.Context, tenant models.TenantContext) ([]*models.QuotationSummary, error) {
	return s.store.List(ctx, tenant.CompanyID)
}

func (s *QuotationService) RecentQuotations(ctx context.Context, tenant models.TenantContext, limit int) ([]*models.QuotationSummary, error) {
	if limit <= 0 {
		limit = 5
	}
	return s.store.Recent(ctx, tenant.CompanyID, limit)
}

func (s *QuotationService) DeleteQuotation(ctx context.Context, tenant models.TenantContext, id int) error {
	return s.store.Delete(ctx, tenant.CompanyID, id)
}

// CalculatePreview computes the breakdown without touching storage,
// for live totals while the document is being edited
func (s *QuotationService) CalculatePreview(req *models.CalculateRequest) (*billing.Breakdown, error) {
	items := normalizeItems(req.Items)
	breakdown, err := billing.Calculate(billing.CalcInput{
		TotalSqft:     req.TotalSqft,
		RatePerSqft:   req.RatePerSqft,
		ItemAmounts:   itemAmounts(items),
		DiscountType:  billing.DiscountType(req.DiscountType),
		DiscountValue: req.DiscountValue,
		CGSTPercent:   req.CGSTPercent,
		SGSTPercent:   req.SGSTPercent,
	})
	if err != nil {
		countDiscountRejection(err)
		return nil, err
	}
	return &breakdown, nil
}

func (s *QuotationService) build(tenant models.TenantContext, req *models.QuotationRequest) (*models.Quotation, []models.QuotationItem, error) {
	if req.ClientID == 0 {
		return nil, nil, apperrors.Validationf("Client is required")
	}
	if req.Date == "" {
		return nil, nil, apperrors.Validationf("Date is required")
	}

	status := req.Status
	if status == "" {
		status = models.QuotationStatusDraft
	}
	switch status {
	case models.QuotationStatusDraft, models.QuotationStatusConfirmed, models.QuotationStatusBilled:
	default:
		return nil, nil, apperrors.Validationf("Invalid status %q", status)
	}

	items := normalizeItems(req.Items)
	breakdown, err := billing.Calculate(billing.CalcInput{
		TotalSqft:     req.TotalSqft,
		RatePerSqft:   req.RatePerSqft,
		ItemAmounts:   itemAmounts(items),
		DiscountType:  billing.DiscountType(req.DiscountType),
		DiscountValue: req.DiscountValue,
		CGSTPercent:   req.CGSTPercent,
		SGSTPercent:   req.SGSTPercent,
	})
	if err != nil {
		countDiscountRejection(err)
		return nil, nil, err
	}

	q := &models.Quotation{
		CompanyID:       tenant.CompanyID,
		ClientID:        req.ClientID,
		Date:            req.Date,
		TotalSqft:       req.TotalSqft,
		RatePerSqft:     req.RatePerSqft,
		PackageID:       req.PackageID,
		BedroomCount:    req.BedroomCount,
		BedroomConfig:   req.BedroomConfig,
		Subtotal:        breakdown.Subtotal,
		DiscountType:    req.DiscountType,
		DiscountValue:   req.DiscountValue,
		DiscountAmount:  breakdown.DiscountAmount,
		TaxableAmount:   breakdown.TaxableAmount,
		CGSTPercent:     breakdown.CGSTPercent,
		CGSTAmount:      breakdown.CGSTAmount,
		SGSTPercent:     breakdown.SGSTPercent,
		SGSTAmount:      breakdown.SGSTAmount,
		TotalTax:        breakdown.TotalTax,
		GrandTotal:      breakdown.GrandTotal,
		TermsConditions: req.TermsConditions,
		Notes:           req.Notes,
		Status:          status,
	}
	return q, items, nil
}

// normalizeItems fills in line amounts from quantity x rate when the
// amount was not supplied
func normalizeItems(items []models.QuotationItem) []models.QuotationItem {
	out := make([]models.QuotationItem, len(items))
	for i, item := range items {
		if item.Amount == 0 && item.Quantity > 0 && item.Rate > 0 {
			item.Amount = item.Quantity * item.Rate
		}
		out[i] = item
	}
	return out
}

func itemAmounts(items []models.QuotationItem) []float64 {
	if len(items) == 0 {
		return nil
	}
	amounts := make([]float64, len(items))
	for i, item := range items {
		amounts[i] = item.Amount
	}
	return amounts
}

func countDiscountRejection(err error) {
	var ve *apperrors.ValidationError
	if errors.As(err, &ve) {
		metrics.DiscountRejections.Inc()
	}
}
