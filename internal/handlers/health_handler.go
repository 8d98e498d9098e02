package handlers

import (
	"net/http"

	"crm-backend/internal/health"
	"crm-backend/pkg/utils"
)

type HealthHandler struct {
	checker *health.HealthChecker
}

func NewHealthHandler(checker *health.HealthChecker) *HealthHandler {
	return &HealthHandler{checker: checker}
}

// Liveness answers as long as the process is up
func (h *HealthHandler) Liveness(w http.ResponseWriter, r *http.Request) {
	utils.JSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// Readiness checks the database before answering healthy
func (h *HealthHandler) Readiness(w http.ResponseWriter, r *http.Request) {
	status := h.checker.CheckBasic()

	code := http.StatusOK
	if status.Status != "healthy" {
		code = http.StatusServiceUnavailable
	}
	utils.JSON(w, code, status)
}
