package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"crm-backend/internal/cache"
	"crm-backend/internal/middleware"
	"crm-backend/internal/models"
	"crm-backend/internal/services"
	"crm-backend/pkg/utils"
)

const quotationListTTL = time.Minute

type QuotationHandler struct {
	Service *services.QuotationService
}

func NewQuotationHandler(s *services.QuotationService) *QuotationHandler {
	return &QuotationHandler{Service: s}
}

func (h *QuotationHandler) CreateQuotation(w http.ResponseWriter, r *http.Request) {
	tenant, _ := middleware.TenantFromContext(r.Context())

	var req models.QuotationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	quotation, err := h.Service.CreateQuotation(r.Context(), tenant, &req)
	if err != nil {
		utils.ErrorFrom(w, err)
		return
	}

	cache.InvalidateQuotationCaches(r.Context(), tenant.CompanyID)
	utils.JSON(w, http.StatusCreated, quotation)
}

func (h *QuotationHandler) GetQuotation(w http.ResponseWriter, r *http.Request) {
	tenant, _ := middleware.TenantFromContext(r.Context())
	id, _ := strconv.Atoi(mux.Vars(r)["id"])

	quotation, err := h.Service.GetQuotation(r.Context(), tenant, id)
	if err != nil {
		utils.ErrorFrom(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, quotation)
}

func (h *QuotationHandler) ListQuotations(w http.ResponseWriter, r *http.Request) {
	tenant, _ := middleware.TenantFromContext(r.Context())

	cacheKey := cache.TenantKey(tenant.CompanyID, "quotations:all")
	if data, ok := cache.GetCached(r.Context(), cacheKey); ok {
		w.Header().Set("Content-Type", "application/json")
		w.Write(data)
		return
	}

	quotations, err := h.Service.ListQuotations(r.Context(), tenant)
	if err != nil {
		utils.ErrorFrom(w, err)
		return
	}

	if data, err := json.Marshal(quotations); err == nil {
		cache.SetCached(r.Context(), cacheKey, data, quotationListTTL)
	}
	utils.JSON(w, http.StatusOK, quotations)
}

func (h *QuotationHandler) RecentQuotations(w http.ResponseWriter, r *http.Request) {
	tenant, _ := middleware.TenantFromContext(r.Context())
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))

	quotations, err := h.Service.RecentQuotations(r.Context(), tenant, limit)
	if err != nil {
		utils.ErrorFrom(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, quotations)
}

// Calculate previews the monetary breakdown without saving anything
func (h *QuotationHandler) Calculate(w http.ResponseWriter, r *http.Request) {
	var req models.CalculateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	breakdown, err := h.Service.CalculatePreview(&req)
	if err != nil {
		utils.ErrorFrom(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, breakdown)
}

func (h *QuotationHandler) UpdateQuotation(w http.ResponseWriter, r *http.Request) {
	tenant, _ := middleware.TenantFromContext(r.Context())
	id, _ := strconv.Atoi(mux.Vars(r)["id"])

	var req models.QuotationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	quotation, err := h.Service.UpdateQuotation(r.Context(), tenant, id, &req)
	if err != nil {
		utils.ErrorFrom(w, err)
		return
	}

	cache.InvalidateQuotationCaches(r.Context(), tenant.CompanyID)
	utils.JSON(w, http.StatusOK, quotation)
}

func (h *QuotationHandler) DeleteQuotation(w http.ResponseWriter, r *http.Request) {
	tenant, _ := middleware.TenantFromContext(r.Context())
	id, _ := strconv.Atoi(mux.Vars(r)["id"])

	if err := h.Service.DeleteQuotation(r.Context(), tenant, id); err != nil {
		utils.ErrorFrom(w, err)
		return
	}

	cache.InvalidateQuotationCaches(r.Context(), tenant.CompanyID)
	utils.Success(w, "Quotation deleted")
}
