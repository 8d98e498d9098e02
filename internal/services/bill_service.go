package services

import (
	"context"

	"crm-backend/internal/apperrors"
	"crm-backend/internal/metrics"
	"crm-backend/internal/models"
	"crm-backend/internal/timeutil"
)

// BillStore is the persistence surface the service needs
type BillStore interface {
	CreateFromQuotation(ctx context.Context, tenant models.TenantContext, req *models.CreateBillRequest) (*models.Bill, error)
	Get(ctx context.Context, companyID, id int) (*models.BillDetail, error)
	List(ctx context.Context, companyID int) ([]*models.BillSummary, error)
	Recent(ctx context.Context, companyID, limit int) ([]*models.BillSummary, error)
	Update(ctx context.Context, companyID, id int, req *models.UpdateBillRequest) error
	Delete(ctx context.Context, companyID, id int) error
}

type BillService struct {
	store BillStore
}

func NewBillService(store BillStore) *BillService {
	return &BillService{store: store}
}

func (s *BillService) CreateBill(ctx context.Context, tenant models.TenantContext, req *models.CreateBillRequest) (*models.Bill, error) {
	if req.QuotationID == 0 {
		return nil, apperrors.Validationf("Quotation is required")
	}
	if req.Date == "" {
		req.Date = timeutil.Now().Format(timeutil.DateLayout)
	}

	bill, err := s.store.CreateFromQuotation(ctx, tenant, req)
	if err != nil {
		return nil, err
	}
	metrics.DocumentsCreated.WithLabelValues("bill").Inc()
	return bill, nil
}

func (s *BillService) GetBill(ctx context.Context, tenant models.TenantContext, id int) (*models.BillDetail, error) {
	return s.store.Get(ctx, tenant.CompanyID, id)
}

func (s *BillService) ListBills(ctx context.Context, tenant models.TenantContext) ([]*models.BillSummary, error) {
	return s.store.List(ctx, tenant.CompanyID)
}

func (s *BillService) RecentBills(ctx context.Context, tenant models.TenantContext, limit int) ([]*models.BillSummary, error) {
	if limit <= 0 {
		limit = 5
	}
	return s.store.Recent(ctx, tenant.CompanyID, limit)
}

func (s *BillService) UpdateBill(ctx context.Context, tenant models.TenantContext, id int, req *models.UpdateBillRequest) (*models.BillDetail, error) {
	if req.Date == "" {
		return nil, apperrors.Validationf("Date is required")
	}
	if err := s.store.Update(ctx, tenant.CompanyID, id, req); err != nil {
		return nil, err
	}
	return s.store.Get(ctx, tenant.CompanyID, id)
}

func (s *BillService) DeleteBill(ctx context.Context, tenant models.TenantContext, id int) error {
	return s.store.Delete(ctx, tenant.CompanyID, id)
}
