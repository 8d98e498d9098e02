package services

import (
	"context"

	"crm-backend/internal/apperrors"
	"crm-backend/internal/models"
	"crm-backend/internal/repositories"
)

type ClientService struct {
	Repo *repositories.ClientRepository
}

func NewClientService(repo *repositories.ClientRepository) *ClientService {
	return &ClientService{Repo: repo}
}

func (s *ClientService) CreateClient(ctx context.Context, tenant models.TenantContext, req *models.ClientRequest) (*models.Client, error) {
	if req.Name == "" {
		return nil, apperrors.Validationf("Client name is required")
	}
	return s.Repo.Create(ctx, tenant.CompanyID, req)
}

func (s *ClientService) GetClient(ctx context.Context, tenant models.TenantContext, id int) (*models.Client, error) {
	return s.Repo.Get(ctx, tenant.CompanyID, id)
}

func (s *ClientService) ListClients(ctx context.Context, tenant models.TenantContext, search string) ([]*models.Client, error) {
	return s.Repo.List(ctx, tenant.CompanyID, search)
}

func (s *ClientService) UpdateClient(ctx context.Context, tenant models.TenantContext, id int, req *models.ClientRequest) (*models.Client, error) {
	if req.Name == "" {
		return nil, apperrors.Validationf("Client name is required")
	}
	if err := s.Repo.Update(ctx, tenant.CompanyID, id, req); err != nil {
		return nil, err
	}
	return s.Repo.Get(ctx, tenant.CompanyID, id)
}

func (s *ClientService) DeleteClient(ctx context.Context, tenant models.TenantContext, id int) error {
	return s.Repo.Delete(ctx, tenant.CompanyID, id)
}
