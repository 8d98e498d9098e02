package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"crm-backend/internal/middleware"
	"crm-backend/internal/models"
	"crm-backend/internal/services"
	"crm-backend/pkg/utils"
)

type CompanyHandler struct {
	Service *services.CompanyService
}

func NewCompanyHandler(s *services.CompanyService) *CompanyHandler {
	return &CompanyHandler{Service: s}
}

func (h *CompanyHandler) ListCompanies(w http.ResponseWriter, r *http.Request) {
	companies, err := h.Service.ListCompanies(r.Context())
	if err != nil {
		utils.ErrorFrom(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, companies)
}

// SelectCompany issues a fresh token scoped to the chosen company.
// Every tenant route requires a token issued here.
func (h *CompanyHandler) SelectCompany(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		utils.Error(w, http.StatusUnauthorized, "Not authenticated")
		return
	}

	var req models.SelectCompanyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	resp, err := h.Service.SelectCompany(r.Context(), userID, req.CompanyID)
	if err != nil {
		utils.ErrorFrom(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, resp)
}

// CurrentCompany returns the company bound to the token
func (h *CompanyHandler) CurrentCompany(w http.ResponseWriter, r *http.Request) {
	tenant, _ := middleware.TenantFromContext(r.Context())

	company, err := h.Service.GetCompany(r.Context(), tenant.CompanyID)
	if err != nil {
		utils.ErrorFrom(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, company)
}

func (h *CompanyHandler) UpdateCompany(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.Atoi(mux.Vars(r)["id"])

	var req models.UpdateCompanyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	company, err := h.Service.UpdateCompany(r.Context(), id, &req)
	if err != nil {
		utils.ErrorFrom(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, company)
}
