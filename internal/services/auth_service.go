package services

import (
	"context"

	"crm-backend/internal/apperrors"
	"crm-backend/internal/auth"
	"crm-backend/internal/models"
)

type UserStore interface {
	GetByUsername(ctx context.Context, username string) (*models.User, error)
	Get(ctx context.Context, id int) (*models.User, error)
	UpdatePassword(ctx context.Context, id int, passwordHash string) error
}

type AuthService struct {
	users UserStore
	jwt   *auth.JWTManager
}

func NewAuthService(users UserStore, jwt *auth.JWTManager) *AuthService {
	return &AuthService{users: users, jwt: jwt}
}

// Login authenticates and issues a token without company claims. The
// caller must select a company before reaching tenant-scoped routes.
func (s *AuthService) Login(ctx context.Context, req *models.LoginRequest) (*models.LoginResponse, error) {
	if req.Username == "" || req.Password == "" {
		return nil, apperrors.Validationf("Username and password are required")
	}

	user, err := s.users.GetByUsername(ctx, req.Username)
	if err != nil {
		return nil, apperrors.Validationf("Invalid username or password")
	}
	if !auth.VerifyPassword(user.PasswordHash, req.Password) {
		return nil, apperrors.Validationf("Invalid username or password")
	}

	token, err := s.jwt.GenerateToken(user)
	if err != nil {
		return nil, err
	}

	return &models.LoginResponse{
		Token:                   token,
		User:                    user,
		RequireCompanySelection: true,
	}, nil
}

// ChangePassword verifies the current password before storing a new hash.
func (s *AuthService) ChangePassword(ctx context.Context, userID int, req *models.ChangePasswordRequest) error {
	if req.CurrentPassword == "" || req.NewPassword == "" {
		return apperrors.Validationf("Current and new password are required")
	}

	user, err := s.users.Get(ctx, userID)
	if err != nil {
		return err
	}
	if !auth.VerifyPassword(user.PasswordHash, req.CurrentPassword) {
		return apperrors.Validationf("Current password is incorrect")
	}

	hash, err := auth.HashPassword(req.NewPassword)
	if err != nil {
		return err
	}
	return s.users.UpdatePassword(ctx, userID, hash)
}

func (s *AuthService) GetUser(ctx context.Context, id int) (*models.User, error) {
	return s.users.Get(ctx, id)
}
