package services

import (
	"context"

	"crm-backend/internal/apperrors"
	"crm-backend/internal/models"
	"crm-backend/internal/repositories"
)

type PackageService struct {
	Repo *repositories.PackageRepository
}

func NewPackageService(repo *repositories.PackageRepository) *PackageService {
	return &PackageService{Repo: repo}
}

func (s *PackageService) CreatePackage(ctx context.Context, tenant models.TenantContext, req *models.PackageRequest) (*models.PackageWithItems, error) {
	if req.Name == "" {
		return nil, apperrors.Validationf("Package name is required")
	}
	return s.Repo.Create(ctx, tenant.CompanyID, req)
}

func (s *PackageService) GetPackage(ctx context.Context, tenant models.TenantContext, id int) (*models.PackageWithItems, error) {
	return s.Repo.Get(ctx, tenant.CompanyID, id)
}

func (s *PackageService) ListPackages(ctx context.Context, tenant models.TenantContext, bhkType, tier string) ([]*models.Package, error) {
	return s.Repo.List(ctx, tenant.CompanyID, bhkType, tier)
}

func (s *PackageService) UpdatePackage(ctx context.Context, tenant models.TenantContext, id int, req *models.PackageRequest) (*models.PackageWithItems, error) {
	if req.Name == "" {
		return nil, apperrors.Validationf("Package name is required")
	}
	if err := s.Repo.Update(ctx, tenant.CompanyID, id, req); err != nil {
		return nil, err
	}
	return s.Repo.Get(ctx, tenant.CompanyID, id)
}

func (s *PackageService) DeletePackage(ctx context.Context, tenant models.TenantContext, id int) error {
	return s.Repo.Delete(ctx, tenant.CompanyID, id)
}
