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

type BillHandler struct {
	Service *services.BillService
}

func NewBillHandler(s *services.BillService) *BillHandler {
	return &BillHandler{Service: s}
}

func (h *BillHandler) CreateBill(w http.ResponseWriter, r *http.Request) {
	tenant, _ := middleware.TenantFromContext(r.Context())

	var req models.CreateBillRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	bill, err := h.Service.CreateBill(r.Context(), tenant, &req)
	if err != nil {
		utils.ErrorFrom(w, err)
		return
	}

	// billing flips the quotation's status as well
	cache.InvalidateBillCaches(r.Context(), tenant.CompanyID)
	cache.InvalidateQuotationCaches(r.Context(), tenant.CompanyID)
	utils.JSON(w, http.StatusCreated, bill)
}

func (h *BillHandler) GetBill(w http.ResponseWriter, r *http.Request) {
	tenant, _ := middleware.TenantFromContext(r.Context())
	id, _ := strconv.Atoi(mux.Vars(r)["id"])

	bill, err := h.Service.GetBill(r.Context(), tenant, id)
	if err != nil {
		utils.ErrorFrom(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, bill)
}

func (h *BillHandler) ListBills(w http.ResponseWriter, r *http.Request) {
	tenant, _ := middleware.TenantFromContext(r.Context())

	bills, err := h.Service.ListBills(r.Context(), tenant)
	if err != nil {
		utils.ErrorFrom(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, bills)
}

func (h *BillHandler) RecentBills(w http.ResponseWriter, r *http.Request) {
	tenant, _ := middleware.TenantFromContext(r.Context())
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))

	bills, err := h.Service.RecentBills(r.Context(), tenant, limit)
	if err != nil {
		utils.ErrorFrom(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, bills)
}

func (h *BillHandler) UpdateBill(w http.ResponseWriter, r *http.Request) {
	tenant, _ := middleware.TenantFromContext(r.Context())
	id, _ := strconv.Atoi(mux.Vars(r)["id"])

	var req models.UpdateBillRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	bill, err := h.Service.UpdateBill(r.Context(), tenant, id, &req)
	if err != nil {
		utils.ErrorFrom(w, err)
		return
	}

	cache.InvalidateBillCaches(r.Context(), tenant.CompanyID)
	utils.JSON(w, http.StatusOK, bill)
}

func (h *BillHandler) DeleteBill(w http.ResponseWriter, r *http.Request) {
	tenant, _ := middleware.TenantFromContext(r.Context())
	id, _ := strconv.Atoi(mux.Vars(r)["id"])

	if err := h.Service.DeleteBill(r.Context(), tenant, id); err != nil {
		utils.ErrorFrom(w, err)
		return
	}

	cache.InvalidateBillCaches(r.Context(), tenant.CompanyID)
	cache.InvalidateQuotationCaches(r.Context(), tenant.CompanyID)
	utils.Success(w, "Bill deleted")
}
