package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"crm-backend/internal/config"
	"crm-backend/internal/models"
	"crm-backend/internal/timeutil"
)

// Claims carry the user identity plus the selected company. Company
// fields are empty until the user selects one; tenant-scoped routes
// reject tokens without them.
type Claims struct {
	UserID      int    `json:"user_id"`
	Username    string `json:"username"`
	Name        string `json:"name"`
	CompanyID   int    `json:"company_id,omitempty"`
	CompanyCode string `json:"company_code,omitempty"`
	CompanyName string `json:"company_name,omitempty"`
	jwt.RegisteredClaims
}

// Tenant builds the TenantContext from the claims. ok is false when no
// company has been selected yet.
func (c *Claims) Tenant() (models.TenantContext, bool) {
	if c.CompanyID == 0 {
		return models.TenantContext{}, false
	}
	return models.TenantContext{
		CompanyID:   c.CompanyID,
		CompanyCode: c.CompanyCode,
		CompanyName: c.CompanyName,
	}, true
}

type JWTManager struct {
	cfg *config.Config
}

func NewJWTManager(cfg *config.Config) *JWTManager {
	return &JWTManager{cfg: cfg}
}

// GenerateToken creates a token for a user without a company selection
func (j *JWTManager) GenerateToken(user *models.User) (string, error) {
	return j.sign(user, nil)
}

// GenerateTenantToken creates a token bound to the selected company
func (j *JWTManager) GenerateTenantToken(user *models.User, company *models.Company) (string, error) {
	return j.sign(user, company)
}

func (j *JWTManager) sign(user *models.User, company *models.Company) (string, error) {
	now := timeutil.Now()
	expirationTime := now.Add(time.Duration(j.cfg.JWT.ExpirationHours) * time.Hour)

	claims := &Claims{
		UserID:   user.ID,
		Username: user.Username,
		Name:     user.Name,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(expirationTime),
			IssuedAt:  jwt.NewNumericDate(now),
			Issuer:    j.cfg.JWT.Issuer,
		},
	}
	if company != nil {
		claims.CompanyID = company.ID
		claims.CompanyCode = company.Code
		claims.CompanyName = company.Name
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(j.cfg.JWT.Secret))
}

// ValidateToken verifies a JWT token and returns the claims
func (j *JWTManager) ValidateToken(tokenString string) (*Claims, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		// Verify signing method
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("invalid signing method")
		}
		return []byte(j.cfg.JWT.Secret), nil
	})

	if err != nil {
		return nil, err
	}

	if !token.Valid {
		return nil, errors.New("invalid token")
	}

	return claims, nil
}
