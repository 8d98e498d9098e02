package middleware

import (
	"context"
	"net/http"
	"strings"

	"crm-backend/internal/apperrors"
	"crm-backend/internal/auth"
	"crm-backend/internal/models"
	"crm-backend/pkg/utils"
)

type contextKey string

const UserIDKey contextKey = "user_id"
const UserNameKey contextKey = "user_name"
const TenantKey contextKey = "tenant"

type AuthMiddleware struct {
	jwtManager *auth.JWTManager
}

func NewAuthMiddleware(jwtManager *auth.JWTManager) *AuthMiddleware {
	return &AuthMiddleware{jwtManager: jwtManager}
}

// Authenticate validates the bearer token and stores the user identity
// plus any selected company on the request context.
func (m *AuthMiddleware) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			utils.Error(w, http.StatusUnauthorized, "Authorization header required")
			return
		}

		// Extract token from "Bearer <token>"
		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			utils.Error(w, http.StatusUnauthorized, "Invalid authorization format")
			return
		}

		claims, err := m.jwtManager.ValidateToken(parts[1])
		if err != nil {
			utils.Error(w, http.StatusUnauthorized, "Invalid or expired token")
			return
		}

		ctx := context.WithValue(r.Context(), UserIDKey, claims.UserID)
		ctx = context.WithValue(ctx, UserNameKey, claims.Name)
		if tenant, ok := claims.Tenant(); ok {
			ctx = context.WithValue(ctx, TenantKey, tenant)
		}

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequireCompany rejects requests whose token has no company selected.
// This is the tenant precondition: it fires before business logic runs.
func (m *AuthMiddleware) RequireCompany(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := TenantFromContext(r.Context()); !ok {
			utils.Error(w, http.StatusBadRequest, apperrors.ErrNoCompany.Error())
			return
		}
		next.ServeHTTP(w, r)
	})
}

// GetUserIDFromContext extracts the authenticated user ID
func GetUserIDFromContext(ctx context.Context) (int, bool) {
	userID, ok := ctx.Value(UserIDKey).(int)
	return userID, ok
}

// GetUserNameFromContext extracts the authenticated user's display name
func GetUserNameFromContext(ctx context.Context) (string, bool) {
	name, ok := ctx.Value(UserNameKey).(string)
	return name, ok
}

// TenantFromContext extracts the selected company
func TenantFromContext(ctx context.Context) (models.TenantContext, bool) {
	tenant, ok := ctx.Value(TenantKey).(models.TenantContext)
	return tenant, ok
}
