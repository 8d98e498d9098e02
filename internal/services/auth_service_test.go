package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"crm-backend/internal/apperrors"
	"crm-backend/internal/auth"
	"crm-backend/internal/config"
	"crm-backend/internal/models"
)

type fakeUserStore struct {
	user *models.User
}

func (f *fakeUserStore) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	if f.user == nil || f.user.Username != username {
		return nil, apperrors.NotFound("User")
	}
	return f.user, nil
}

func (f *fakeUserStore) Get(ctx context.Context, id int) (*models.User, error) {
	if f.user == nil || f.user.ID != id {
		return nil, apperrors.NotFound("User")
	}
	return f.user, nil
}

func (f *fakeUserStore) UpdatePassword(ctx context.Context, id int, passwordHash string) error {
	f.user.PasswordHash = passwordHash
	return nil
}

func testJWTManager() *auth.JWTManager {
	cfg := &config.Config{}
	cfg.JWT.Secret = "test-secret"
	cfg.JWT.ExpirationHours = 1
	cfg.JWT.Issuer = "crm-backend-test"
	return auth.NewJWTManager(cfg)
}

func newTestUser(t *testing.T, password string) *models.User {
	t.Helper()
	hash, err := auth.HashPassword(password)
	require.NoError(t, err)
	return &models.User{ID: 1, Username: "admin", PasswordHash: hash, Name: "Admin"}
}

func TestLoginVerifiesAgainstStoredHash(t *testing.T) {
	store := &fakeUserStore{user: newTestUser(t, "admin123")}
	svc := NewAuthService(store, testJWTManager())
	ctx := context.Background()

	resp, err := svc.Login(ctx, &models.LoginRequest{Username: "admin", Password: "admin123"})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.Token)
	assert.True(t, resp.RequireCompanySelection)

	_, err = svc.Login(ctx, &models.LoginRequest{Username: "admin", Password: "wrong"})
	var ve *apperrors.ValidationError
	require.ErrorAs(t, err, &ve)
}

func TestChangePassword(t *testing.T) {
	store := &fakeUserStore{user: newTestUser(t, "admin123")}
	svc := NewAuthService(store, testJWTManager())
	ctx := context.Background()

	err := svc.ChangePassword(ctx, 1, &models.ChangePasswordRequest{
		CurrentPassword: "admin123",
		NewPassword:     "s3cure-new",
	})
	require.NoError(t, err)

	assert.True(t, auth.VerifyPassword(store.user.PasswordHash, "s3cure-new"))
	assert.False(t, auth.VerifyPassword(store.user.PasswordHash, "admin123"))

	_, err = svc.Login(ctx, &models.LoginRequest{Username: "admin", Password: "s3cure-new"})
	assert.NoError(t, err, "login works with the new password")
}

func TestChangePasswordRejectsWrongCurrent(t *testing.T) {
	store := &fakeUserStore{user: newTestUser(t, "admin123")}
	svc := NewAuthService(store, testJWTManager())

	err := svc.ChangePassword(context.Background(), 1, &models.ChangePasswordRequest{
		CurrentPassword: "nope",
		NewPassword:     "whatever",
	})
	var ve *apperrors.ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Contains(t, ve.Error(), "Current password is incorrect")

	assert.True(t, auth.VerifyPassword(store.user.PasswordHash, "admin123"), "hash unchanged")
}

func TestChangePasswordRequiresBothFields(t *testing.T) {
	store := &fakeUserStore{user: newTestUser(t, "admin123")}
	svc := NewAuthService(store, testJWTManager())
	ctx := context.Background()

	var ve *apperrors.ValidationError
	err := svc.ChangePassword(ctx, 1, &models.ChangePasswordRequest{NewPassword: "x"})
	require.ErrorAs(t, err, &ve)

	err = svc.ChangePassword(ctx, 1, &models.ChangePasswordRequest{CurrentPassword: "admin123"})
	require.ErrorAs(t, err, &ve)
}
