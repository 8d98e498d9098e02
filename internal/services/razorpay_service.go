package services

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"log"

	razorpay "github.com/razorpay/razorpay-go"

	"crm-backend/internal/apperrors"
	"crm-backend/internal/models"
	"crm-backend/internal/repositories"
)

// RazorpayService raises online payment orders against a bill's
// outstanding balance. A verified payment is recorded as an ordinary
// receipt, which reconciles the bill like any manual payment.
type RazorpayService struct {
	transactionRepo *repositories.OnlineTransactionRepository
	companyRepo     *repositories.CompanyRepository
	billStore       BillStore
	receipts        *ReceiptService

	keyID         string
	keySecret     string
	webhookSecret string
}

func NewRazorpayService(keyID, keySecret, webhookSecret string, transactionRepo *repositories.OnlineTransactionRepository, companyRepo *repositories.CompanyRepository, billStore BillStore, receipts *ReceiptService) *RazorpayService {
	return &RazorpayService{
		transactionRepo: transactionRepo,
		companyRepo:     companyRepo,
		billStore:       billStore,
		receipts:        receipts,
		keyID:           keyID,
		keySecret:       keySecret,
		webhookSecret:   webhookSecret,
	}
}

// IsEnabled reports whether credentials are configured
func (s *RazorpayService) IsEnabled() bool {
	return s.keyID != "" && s.keySecret != ""
}

func (s *RazorpayService) GetPaymentStatus() *models.PaymentStatusResponse {
	resp := &models.PaymentStatusResponse{Enabled: s.IsEnabled()}
	if resp.Enabled {
		resp.KeyID = s.keyID
	}
	return resp
}

// CreateOrder raises a Razorpay order for a bill. Amount 0 means the
// full outstanding balance; anything above the balance is rejected.
func (s *RazorpayService) CreateOrder(ctx context.Context, tenant models.TenantContext, req *models.CreateOrderRequest) (*models.CreateOrderResponse, error) {
	if !s.IsEnabled() {
		return nil, apperrors.Validationf("Online payments are not configured")
	}
	if req.BillID == 0 {
		return nil, apperrors.Validationf("Bill is required")
	}

	bill, err := s.billStore.Get(ctx, tenant.CompanyID, req.BillID)
	if err != nil {
		return nil, err
	}
	if bill.Status == models.BillStatusPaid {
		return nil, apperrors.Conflictf("Bill is already fully paid")
	}

	amount := req.Amount
	if amount == 0 {
		amount = bill.BalanceAmount
	}
	if amount <= 0 {
		return nil, apperrors.Validationf("Amount must be greater than zero")
	}
	if amount > bill.BalanceAmount {
		return nil, apperrors.Validationf("Amount exceeds outstanding balance of %.2f", bill.BalanceAmount)
	}

	amountPaise := int(amount * 100)
	client := razorpay.NewClient(s.keyID, s.keySecret)
	order, err := client.Order.Create(map[string]interface{}{
		"amount":   amountPaise,
		"currency": "INR",
		"receipt":  fmt.Sprintf("bill_%d", bill.ID),
		"notes": map[string]interface{}{
			"bill_number": bill.BillNumber,
			"company_id":  tenant.CompanyID,
		},
	}, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create razorpay order: %w", err)
	}

	orderID, _ := order["id"].(string)
	if orderID == "" {
		return nil, fmt.Errorf("razorpay order response missing id")
	}

	t := &models.OnlineTransaction{
		CompanyID:       tenant.CompanyID,
		QuotationID:     bill.QuotationID,
		BillID:          bill.ID,
		RazorpayOrderID: orderID,
		Amount:          amount,
	}
	if err := s.transactionRepo.Create(ctx, t); err != nil {
		return nil, err
	}

	return &models.CreateOrderResponse{
		OrderID:  orderID,
		Amount:   amountPaise,
		Currency: "INR",
		KeyID:    s.keyID,
		Balance:  bill.BalanceAmount,
	}, nil
}

// VerifyPayment checks the checkout signature and settles the order
func (s *RazorpayService) VerifyPayment(ctx context.Context, tenant models.TenantContext, req *models.VerifyPaymentRequest) (*models.Receipt, error) {
	payload := req.RazorpayOrderID + "|" + req.RazorpayPaymentID
	if !verifyHMAC(payload, req.RazorpaySignature, s.keySecret) {
		_ = s.transactionRepo.MarkFailed(ctx, req.RazorpayOrderID, "Invalid signature")
		return nil, apperrors.Validationf("Invalid payment signature")
	}
	return s.settle(ctx, tenant, req.RazorpayOrderID, req.RazorpayPaymentID)
}

// HandlePaymentCaptured settles an order reported by webhook. The
// handler has already checked the webhook signature.
func (s *RazorpayService) HandlePaymentCaptured(ctx context.Context, orderID, paymentID string) error {
	t, err := s.transactionRepo.GetByOrderID(ctx, orderID)
	if err != nil {
		return err
	}
	company, err := s.companyRepo.Get(ctx, t.CompanyID)
	if err != nil {
		return err
	}
	tenant := models.TenantContext{
		CompanyID:   company.ID,
		CompanyCode: company.Code,
		CompanyName: company.Name,
	}
	_, err = s.settle(ctx, tenant, orderID, paymentID)
	return err
}

// HandlePaymentFailed marks the order's transaction failed
func (s *RazorpayService) HandlePaymentFailed(ctx context.Context, orderID, reason string) error {
	if reason == "" {
		reason = "Payment failed"
	}
	return s.transactionRepo.MarkFailed(ctx, orderID, reason)
}

// VerifyWebhookSignature checks the X-Razorpay-Signature header
// against the raw request body
func (s *RazorpayService) VerifyWebhookSignature(body []byte, signature string) bool {
	if s.webhookSecret == "" {
		return false
	}
	return verifyHMAC(string(body), signature, s.webhookSecret)
}

// settle marks the transaction successful and records the receipt.
// MarkSuccess only fires once per order, so verify and webhook racing
// on the same payment record a single receipt.
func (s *RazorpayService) settle(ctx context.Context, tenant models.TenantContext, orderID, paymentID string) (*models.Receipt, error) {
	t, err := s.transactionRepo.GetByOrderID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if t.CompanyID != tenant.CompanyID {
		return nil, apperrors.NotFound("Transaction")
	}

	first, err := s.transactionRepo.MarkSuccess(ctx, orderID, paymentID)
	if err != nil {
		return nil, err
	}
	if !first {
		log.Printf("[Razorpay] Order %s already settled, skipping receipt", orderID)
		return nil, nil
	}

	receipt, err := s.receipts.CreateReceipt(ctx, tenant, &models.ReceiptRequest{
		QuotationID:          t.QuotationID,
		Amount:               t.Amount,
		PaymentMode:          "online",
		TransactionReference: paymentID,
		Notes:                fmt.Sprintf("Razorpay order %s", orderID),
	})
	if err != nil {
		return nil, err
	}
	return receipt, nil
}

func verifyHMAC(payload, signature, secret string) bool {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(payload))
	expected := hex.EncodeToString(mac.Sum(nil))
	return hmac.Equal([]byte(expected), []byte(signature))
}
