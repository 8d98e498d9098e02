package services

import (
	"context"

	"crm-backend/internal/auth"
	"crm-backend/internal/models"
	"crm-backend/internal/repositories"
)

type CompanyService struct {
	companyRepo *repositories.CompanyRepository
	userRepo    *repositories.UserRepository
	jwt         *auth.JWTManager
}

func NewCompanyService(companyRepo *repositories.CompanyRepository, userRepo *repositories.UserRepository, jwt *auth.JWTManager) *CompanyService {
	return &CompanyService{companyRepo: companyRepo, userRepo: userRepo, jwt: jwt}
}

func (s *CompanyService) ListCompanies(ctx context.Context) ([]*models.Company, error) {
	return s.companyRepo.List(ctx)
}

func (s *CompanyService) GetCompany(ctx context.Context, id int) (*models.Company, error) {
	return s.companyRepo.Get(ctx, id)
}

// SelectCompany binds a user's session to one company by issuing a new
// token carrying the company claims
func (s *CompanyService) SelectCompany(ctx context.Context, userID, companyID int) (*models.SelectCompanyResponse, error) {
	company, err := s.companyRepo.Get(ctx, companyID)
	if err != nil {
		return nil, err
	}

	user, err := s.userRepo.Get(ctx, userID)
	if err != nil {
		return nil, err
	}

	token, err := s.jwt.GenerateTenantToken(user, company)
	if err != nil {
		return nil, err
	}

	return &models.SelectCompanyResponse{Token: token, Company: company}, nil
}

func (s *CompanyService) UpdateCompany(ctx context.Context, id int, req *models.UpdateCompanyRequest) (*models.Company, error) {
	if err := s.companyRepo.Update(ctx, id, req); err != nil {
		return nil, err
	}
	return s.companyRepo.Get(ctx, id)
}
