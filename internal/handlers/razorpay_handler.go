package handlers

import (
	"encoding/json"
	"io"
	"log"
	"net/http"

	"crm-backend/internal/cache"
	"crm-backend/internal/middleware"
	"crm-backend/internal/models"
	"crm-backend/internal/services"
	"crm-backend/pkg/utils"
)

type RazorpayHandler struct {
	Service *services.RazorpayService
}

func NewRazorpayHandler(s *services.RazorpayService) *RazorpayHandler {
	return &RazorpayHandler{Service: s}
}

func (h *RazorpayHandler) PaymentStatus(w http.ResponseWriter, r *http.Request) {
	utils.JSON(w, http.StatusOK, h.Service.GetPaymentStatus())
}

func (h *RazorpayHandler) CreateOrder(w http.ResponseWriter, r *http.Request) {
	tenant, _ := middleware.TenantFromContext(r.Context())

	var req models.CreateOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	resp, err := h.Service.CreateOrder(r.Context(), tenant, &req)
	if err != nil {
		utils.ErrorFrom(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, resp)
}

func (h *RazorpayHandler) VerifyPayment(w http.ResponseWriter, r *http.Request) {
	tenant, _ := middleware.TenantFromContext(r.Context())

	var req models.VerifyPaymentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	receipt, err := h.Service.VerifyPayment(r.Context(), tenant, &req)
	if err != nil {
		utils.ErrorFrom(w, err)
		return
	}

	cache.InvalidateReceiptCaches(r.Context(), tenant.CompanyID)
	cache.InvalidateBillCaches(r.Context(), tenant.CompanyID)
	utils.JSON(w, http.StatusOK, map[string]interface{}{"success": true, "receipt": receipt})
}

// webhookEvent is the slice of the Razorpay payload we act on
type webhookEvent struct {
	Event   string `json:"event"`
	Payload struct {
		Payment struct {
			Entity struct {
				ID               string `json:"id"`
				OrderID          string `json:"order_id"`
				ErrorDescription string `json:"error_description"`
			} `json:"entity"`
		} `json:"payment"`
	} `json:"payload"`
}

// Webhook handles Razorpay server-to-server notifications. It always
// answers 200 once the signature checks out, so Razorpay stops
// retrying; processing failures are logged.
func (h *RazorpayHandler) Webhook(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		utils.Error(w, http.StatusBadRequest, "Failed to read body")
		return
	}

	if !h.Service.VerifyWebhookSignature(body, r.Header.Get("X-Razorpay-Signature")) {
		utils.Error(w, http.StatusBadRequest, "Invalid webhook signature")
		return
	}

	var event webhookEvent
	if err := json.Unmarshal(body, &event); err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid webhook payload")
		return
	}

	switch event.Event {
	case "payment.captured":
		entity := event.Payload.Payment.Entity
		if err := h.Service.HandlePaymentCaptured(r.Context(), entity.OrderID, entity.ID); err != nil {
			log.Printf("[Razorpay] Webhook processing failed for order %s: %v", entity.OrderID, err)
		}
	case "payment.failed":
		entity := event.Payload.Payment.Entity
		if err := h.Service.HandlePaymentFailed(r.Context(), entity.OrderID, entity.ErrorDescription); err != nil {
			log.Printf("[Razorpay] Webhook processing failed for order %s: %v", entity.OrderID, err)
		}
	}

	utils.JSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
