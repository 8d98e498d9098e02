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

const clientListTTL = 2 * time.Minute

type ClientHandler struct {
	Service *services.ClientService
}

func NewClientHandler(s *services.ClientService) *ClientHandler {
	return &ClientHandler{Service: s}
}

func (h *ClientHandler) CreateClient(w http.ResponseWriter, r *http.Request) {
	tenant, _ := middleware.TenantFromContext(r.Context())

	var req models.ClientRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	client, err := h.Service.CreateClient(r.Context(), tenant, &req)
	if err != nil {
		utils.ErrorFrom(w, err)
		return
	}

	cache.InvalidateClientCaches(r.Context(), tenant.CompanyID)
	utils.JSON(w, http.StatusCreated, client)
}

func (h *ClientHandler) GetClient(w http.ResponseWriter, r *http.Request) {
	tenant, _ := middleware.TenantFromContext(r.Context())
	id, _ := strconv.Atoi(mux.Vars(r)["id"])

	client, err := h.Service.GetClient(r.Context(), tenant, id)
	if err != nil {
		utils.ErrorFrom(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, client)
}

func (h *ClientHandler) ListClients(w http.ResponseWriter, r *http.Request) {
	tenant, _ := middleware.TenantFromContext(r.Context())

	cacheKey := cache.TenantKey(tenant.CompanyID, "clients:all")
	if data, ok := cache.GetCached(r.Context(), cacheKey); ok {
		w.Header().Set("Content-Type", "application/json")
		w.Write(data)
		return
	}

	clients, err := h.Service.ListClients(r.Context(), tenant, "")
	if err != nil {
		utils.ErrorFrom(w, err)
		return
	}

	if data, err := json.Marshal(clients); err == nil {
		cache.SetCached(r.Context(), cacheKey, data, clientListTTL)
	}
	utils.JSON(w, http.StatusOK, clients)
}

func (h *ClientHandler) SearchClients(w http.ResponseWriter, r *http.Request) {
	tenant, _ := middleware.TenantFromContext(r.Context())
	query := mux.Vars(r)["query"]

	clients, err := h.Service.ListClients(r.Context(), tenant, query)
	if err != nil {
		utils.ErrorFrom(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, clients)
}

func (h *ClientHandler) UpdateClient(w http.ResponseWriter, r *http.Request) {
	tenant, _ := middleware.TenantFromContext(r.Context())
	id, _ := strconv.Atoi(mux.Vars(r)["id"])

	var req models.ClientRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	client, err := h.Service.UpdateClient(r.Context(), tenant, id, &req)
	if err != nil {
		utils.ErrorFrom(w, err)
		return
	}

	cache.InvalidateClientCaches(r.Context(), tenant.CompanyID)
	utils.JSON(w, http.StatusOK, client)
}

func (h *ClientHandler) DeleteClient(w http.ResponseWriter, r *http.Request) {
	tenant, _ := middleware.TenantFromContext(r.Context())
	id, _ := strconv.Atoi(mux.Vars(r)["id"])

	if err := h.Service.DeleteClient(r.Context(), tenant, id); err != nil {
		utils.ErrorFrom(w, err)
		return
	}

	cache.InvalidateClientCaches(r.Context(), tenant.CompanyID)
	utils.Success(w, "Client deleted")
}
