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

const packageListTTL = 5 * time.Minute

type PackageHandler struct {
	Service *services.PackageService
}

func NewPackageHandler(s *services.PackageService) *PackageHandler {
	return &PackageHandler{Service: s}
}

func (h *PackageHandler) CreatePackage(w http.ResponseWriter, r *http.Request) {
	tenant, _ := middleware.TenantFromContext(r.Context())

	var req models.PackageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	pkg, err := h.Service.CreatePackage(r.Context(), tenant, &req)
	if err != nil {
		utils.ErrorFrom(w, err)
		return
	}

	cache.InvalidatePackageCaches(r.Context(), tenant.CompanyID)
	utils.JSON(w, http.StatusCreated, pkg)
}

func (h *PackageHandler) GetPackage(w http.ResponseWriter, r *http.Request) {
	tenant, _ := middleware.TenantFromContext(r.Context())
	id, _ := strconv.Atoi(mux.Vars(r)["id"])

	pkg, err := h.Service.GetPackage(r.Context(), tenant, id)
	if err != nil {
		utils.ErrorFrom(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, pkg)
}

func (h *PackageHandler) ListPackages(w http.ResponseWriter, r *http.Request) {
	tenant, _ := middleware.TenantFromContext(r.Context())
	bhkType := r.URL.Query().Get("bhk_type")
	tier := r.URL.Query().Get("tier")

	// only the unfiltered list is cached
	cacheKey := cache.TenantKey(tenant.CompanyID, "packages:all")
	if bhkType == "" && tier == "" {
		if data, ok := cache.GetCached(r.Context(), cacheKey); ok {
			w.Header().Set("Content-Type", "application/json")
			w.Write(data)
			return
		}
	}

	packages, err := h.Service.ListPackages(r.Context(), tenant, bhkType, tier)
	if err != nil {
		utils.ErrorFrom(w, err)
		return
	}

	if bhkType == "" && tier == "" {
		if data, err := json.Marshal(packages); err == nil {
			cache.SetCached(r.Context(), cacheKey, data, packageListTTL)
		}
	}
	utils.JSON(w, http.StatusOK, packages)
}

func (h *PackageHandler) ListByTier(w http.ResponseWriter, r *http.Request) {
	tenant, _ := middleware.TenantFromContext(r.Context())
	tier := mux.Vars(r)["tier"]

	packages, err := h.Service.ListPackages(r.Context(), tenant, "", tier)
	if err != nil {
		utils.ErrorFrom(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, packages)
}

func (h *PackageHandler) UpdatePackage(w http.ResponseWriter, r *http.Request) {
	tenant, _ := middleware.TenantFromContext(r.Context())
	id, _ := strconv.Atoi(mux.Vars(r)["id"])

	var req models.PackageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	pkg, err := h.Service.UpdatePackage(r.Context(), tenant, id, &req)
	if err != nil {
		utils.ErrorFrom(w, err)
		return
	}

	cache.InvalidatePackageCaches(r.Context(), tenant.CompanyID)
	utils.JSON(w, http.StatusOK, pkg)
}

func (h *PackageHandler) DeletePackage(w http.ResponseWriter, r *http.Request) {
	tenant, _ := middleware.TenantFromContext(r.Context())
	id, _ := strconv.Atoi(mux.Vars(r)["id"])

	if err := h.Service.DeletePackage(r.Context(), tenant, id); err != nil {
		utils.ErrorFrom(w, err)
		return
	}

	cache.InvalidatePackageCaches(r.Context(), tenant.CompanyID)
	utils.Success(w, "Package deactivated")
}
