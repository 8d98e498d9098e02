package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"crm-backend/internal/cache"
	"crm-backend/internal/middleware"
	"crm-backend/internal/models"
	"crm-backend/internal/services"
	"crm-backend/pkg/utils"
)

type ReceiptHandler struct {
	Service *services.ReceiptService
}

func NewReceiptHandler(s *services.ReceiptService) *ReceiptHandler {
	return &ReceiptHandler{Service: s}
}

func (h *ReceiptHandler) invalidate(r *http.Request, companyID int) {
	// reconciliation rewrites bill state, so bills go stale too
	cache.InvalidateReceiptCaches(r.Context(), companyID)
	cache.InvalidateBillCaches(r.Context(), companyID)
}

func (h *ReceiptHandler) CreateReceipt(w http.ResponseWriter, r *http.Request) {
	tenant, _ := middleware.TenantFromContext(r.Context())

	var req models.ReceiptRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	receipt, err := h.Service.CreateReceipt(r.Context(), tenant, &req)
	if err != nil {
		utils.ErrorFrom(w, err)
		return
	}

	h.invalidate(r, tenant.CompanyID)
	utils.JSON(w, http.StatusCreated, receipt)
}

func (h *ReceiptHandler) GetReceipt(w http.ResponseWriter, r *http.Request) {
	tenant, _ := middleware.TenantFromContext(r.Context())
	id, _ := strconv.Atoi(mux.Vars(r)["id"])

	receipt, err := h.Service.GetReceipt(r.Context(), tenant, id)
	if err != nil {
		utils.ErrorFrom(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, receipt)
}

func (h *ReceiptHandler) ListReceipts(w http.ResponseWriter, r *http.Request) {
	tenant, _ := middleware.TenantFromContext(r.Context())

	receipts, err := h.Service.ListReceipts(r.Context(), tenant)
	if err != nil {
		utils.ErrorFrom(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, receipts)
}

func (h *ReceiptHandler) RecentReceipts(w http.ResponseWriter, r *http.Request) {
	tenant, _ := middleware.TenantFromContext(r.Context())
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))

	receipts, err := h.Service.RecentReceipts(r.Context(), tenant, limit)
	if err != nil {
		utils.ErrorFrom(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, receipts)
}

// ReceiptsByQuotation returns a quotation's payments with totals
func (h *ReceiptHandler) ReceiptsByQuotation(w http.ResponseWriter, r *http.Request) {
	tenant, _ := middleware.TenantFromContext(r.Context())
	quotationID, _ := strconv.Atoi(mux.Vars(r)["quotationId"])

	result, err := h.Service.ReceiptsByQuotation(r.Context(), tenant, quotationID)
	if err != nil {
		utils.ErrorFrom(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, result)
}

func (h *ReceiptHandler) UpdateReceipt(w http.ResponseWriter, r *http.Request) {
	tenant, _ := middleware.TenantFromContext(r.Context())
	id, _ := strconv.Atoi(mux.Vars(r)["id"])

	var req models.ReceiptRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	receipt, err := h.Service.UpdateReceipt(r.Context(), tenant, id, &req)
	if err != nil {
		utils.ErrorFrom(w, err)
		return
	}

	h.invalidate(r, tenant.CompanyID)
	utils.JSON(w, http.StatusOK, receipt)
}

func (h *ReceiptHandler) DeleteReceipt(w http.ResponseWriter, r *http.Request) {
	tenant, _ := middleware.TenantFromContext(r.Context())
	id, _ := strconv.Atoi(mux.Vars(r)["id"])

	if err := h.Service.DeleteReceipt(r.Context(), tenant, id); err != nil {
		utils.ErrorFrom(w, err)
		return
	}

	h.invalidate(r, tenant.CompanyID)
	utils.Success(w, "Receipt deleted")
}
