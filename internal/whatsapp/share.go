// Package whatsapp builds wa.me share links for sending documents to
// clients. No message is sent server-side; the frontend opens the URL.
package whatsapp

import (
	"fmt"
	"net/url"
	"strings"

	"crm-backend/internal/models"
)

// ShareLink is the payload the frontend needs to open WhatsApp
type ShareLink struct {
	URL     string `json:"whatsapp_url"`
	Message string `json:"message"`
	Phone   string `json:"phone"`
}

type Service struct {
	countryCode string
}

func NewService(countryCode string) *Service {
	if countryCode == "" {
		countryCode = "91"
	}
	return &Service{countryCode: countryCode}
}

// QuotationLink builds the share link for a quotation
func (s *Service) QuotationLink(tenant models.TenantContext, q *models.QuotationDetail) *ShareLink {
	message := fmt.Sprintf("Dear %s,\n\nPlease find your quotation:\n\nQuotation No: %s\nTotal Amount: %s\n\nThank you for your business!\n\n- %s",
		q.ClientName, q.QuotationNumber, formatINR(q.GrandTotal), tenant.CompanyName)
	return s.link(q.ClientPhone, message)
}

// BillLink builds the share link for a bill
func (s *Service) BillLink(tenant models.TenantContext, b *models.BillDetail) *ShareLink {
	message := fmt.Sprintf("Dear %s,\n\nInvoice Details:\n\nInvoice No: %s\nTotal: %s\nBalance Due: %s\n\nThank you!\n\n- %s",
		b.ClientName, b.BillNumber, formatINR(b.GrandTotal), formatINR(b.BalanceAmount), tenant.CompanyName)
	return s.link(b.ClientPhone, message)
}

// ReceiptLink builds the share link for a receipt
func (s *Service) ReceiptLink(tenant models.TenantContext, r *models.ReceiptDetail) *ShareLink {
	message := fmt.Sprintf("Dear %s,\n\nPayment Received:\n\nReceipt No: %s\nAmount: %s\n\nThank you!\n\n- %s",
		r.ClientName, r.ReceiptNumber, formatINR(r.Amount), tenant.CompanyName)
	return s.link(r.ClientPhone, message)
}

func (s *Service) link(phone, message string) *ShareLink {
	normalized := s.NormalizePhone(phone)
	return &ShareLink{
		URL:     fmt.Sprintf("https://wa.me/%s?text=%s", normalized, url.QueryEscape(message)),
		Message: message,
		Phone:   phone,
	}
}

// NormalizePhone strips non-digits and prefixes the country code when
// the number is local
func (s *Service) NormalizePhone(phone string) string {
	var b strings.Builder
	for _, r := range phone {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	digits := b.String()
	if digits == "" {
		return digits
	}
	if strings.HasPrefix(digits, s.countryCode) && len(digits) > 10 {
		return digits
	}
	return s.countryCode + digits
}

// formatINR renders an amount with Indian digit grouping (12,34,567.89)
func formatINR(amount float64) string {
	negative := amount < 0
	if negative {
		amount = -amount
	}

	whole := fmt.Sprintf("%.2f", amount)
	intPart := whole[:len(whole)-3]
	fracPart := whole[len(whole)-2:]

	grouped := intPart
	if len(intPart) > 3 {
		head := intPart[:len(intPart)-3]
		tail := intPart[len(intPart)-3:]
		var parts []string
		for len(head) > 2 {
			parts = append([]string{head[len(head)-2:]}, parts...)
			head = head[:len(head)-2]
		}
		if head != "" {
			parts = append([]string{head}, parts...)
		}
		grouped = strings.Join(append(parts, tail), ",")
	}

	sign := ""
	if negative {
		sign = "-"
	}
	return fmt.Sprintf("%sRs. %s.%s", sign, grouped, fracPart)
}
