package services

import (
	"context"

	"crm-backend/internal/apperrors"
	"crm-backend/internal/metrics"
	"crm-backend/internal/models"
	"crm-backend/internal/timeutil"
)

// ReceiptStore is the persistence surface the service needs
type ReceiptStore interface {
	Create(ctx context.Context, tenant models.TenantContext, req *models.ReceiptRequest) (*models.Receipt, error)
	Update(ctx context.Context, companyID, id int, req *models.ReceiptRequest) error
	Delete(ctx context.Context, companyID, id int) error
	Get(ctx context.Context, companyID, id int) (*models.ReceiptDetail, error)
	List(ctx context.Context, companyID int) ([]*models.ReceiptSummary, error)
	Recent(ctx context.Context, companyID, limit int) ([]*models.ReceiptSummary, error)
	ByQuotation(ctx context.Context, companyID, quotationID int) (*models.QuotationReceipts, error)
}

type ReceiptService struct {
	store ReceiptStore
}

func NewReceiptService(store ReceiptStore) *ReceiptService {
	return &ReceiptService{store: store}
}

func validateReceipt(req *models.ReceiptRequest) error {
	if req.Amount <= 0 {
		return apperrors.Validationf("Amount must be greater than zero")
	}
	if req.PaymentMode == "" {
		return apperrors.Validationf("Payment mode is required")
	}
	return nil
}

func (s *ReceiptService) CreateReceipt(ctx context.Context, tenant models.TenantContext, req *models.ReceiptRequest) (*models.Receipt, error) {
	if req.QuotationID == 0 {
		return nil, apperrors.Validationf("Quotation is required")
	}
	if err := validateReceipt(req); err != nil {
		return nil, err
	}
	if req.Date == "" {
		req.Date = timeutil.Now().Format(timeutil.DateLayout)
	}

	receipt, err := s.store.Create(ctx, tenant, req)
	if err != nil {
		return nil, err
	}
	metrics.DocumentsCreated.WithLabelValues("receipt").Inc()
	metrics.PaymentsRecorded.WithLabelValues(req.PaymentMode).Inc()
	return receipt, nil
}

func (s *ReceiptService) UpdateReceipt(ctx context.Context, tenant models.TenantContext, id int, req *models.ReceiptRequest) (*models.ReceiptDetail, error) {
	if err := validateReceipt(req); err != nil {
		return nil, err
	}
	if err := s.store.Update(ctx, tenant.CompanyID, id, req); err != nil {
		return nil, err
	}
	return s.store.Get(ctx, tenant.CompanyID, id)
}

func (s *ReceiptService) DeleteReceipt(ctx context.Context, tenant models.TenantContext, id int) error {
	return s.store.Delete(ctx, tenant.CompanyID, id)
}

func (s *ReceiptService) GetReceipt(ctx context.Context, tenant models.TenantContext, id int) (*models.ReceiptDetail, error) {
	return s.store.Get(ctx, tenant.CompanyID, id)
}

func (s *ReceiptService) ListReceipts(ctx context.Context, tenant models.TenantContext) ([]*models.ReceiptSummary, error) {
	return s.store.List(ctx, tenant.CompanyID)
}

func (s *ReceiptService) RecentReceipts(ctx context.Context, tenant models.TenantContext, limit int) ([]*models.ReceiptSummary, error) {
	if limit <= 0 {
		limit = 5
	}
	return s.store.Recent(ctx, tenant.CompanyID, limit)
}

func (s *ReceiptService) ReceiptsByQuotation(ctx context.Context, tenant models.TenantContext, quotationID int) (*models.QuotationReceipts, error) {
	return s.store.ByQuotation(ctx, tenant.CompanyID, quotationID)
}
