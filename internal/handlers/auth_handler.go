package handlers

import (
	"encoding/json"
	"net/http"

	"crm-backend/internal/middleware"
	"crm-backend/internal/models"
	"crm-backend/internal/services"
	"crm-backend/pkg/utils"
)

type AuthHandler struct {
	Service *services.AuthService
}

func NewAuthHandler(s *services.AuthService) *AuthHandler {
	return &AuthHandler{Service: s}
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req models.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	resp, err := h.Service.Login(r.Context(), &req)
	if err != nil {
		utils.Error(w, http.StatusUnauthorized, err.Error())
		return
	}

	utils.JSON(w, http.StatusOK, resp)
}

// Logout is a no-op server-side: tokens are stateless and expire on
// their own. The endpoint exists so clients have a uniform flow.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	utils.Success(w, "Logged out")
}

func (h *AuthHandler) ChangePassword(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		utils.Error(w, http.StatusUnauthorized, "Not authenticated")
		return
	}

	var req models.ChangePasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := h.Service.ChangePassword(r.Context(), userID, &req); err != nil {
		utils.ErrorFrom(w, err)
		return
	}
	utils.Success(w, "Password changed successfully")
}

// Session returns the authenticated user and selected company, if any
func (h *AuthHandler) Session(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		utils.Error(w, http.StatusUnauthorized, "Not authenticated")
		return
	}

	user, err := h.Service.GetUser(r.Context(), userID)
	if err != nil {
		utils.Error(w, http.StatusUnauthorized, "User not found")
		return
	}

	resp := map[string]interface{}{"user": user}
	if tenant, ok := middleware.TenantFromContext(r.Context()); ok {
		resp["company"] = map[string]interface{}{
			"id":   tenant.CompanyID,
			"code": tenant.CompanyCode,
			"name": tenant.CompanyName,
		}
	}
	utils.JSON(w, http.StatusOK, resp)
}
