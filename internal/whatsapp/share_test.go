package whatsapp

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"crm-backend/internal/models"
)

func TestNormalizePhone(t *testing.T) {
	svc := NewService("91")

	assert.Equal(t, "919876543210", svc.NormalizePhone("98765 43210"))
	assert.Equal(t, "919876543210", svc.NormalizePhone("919876543210"))
	assert.Equal(t, "919876543210", svc.NormalizePhone("+91 98765-43210"))
	assert.Equal(t, "", svc.NormalizePhone(""))
}

func TestQuotationLink(t *testing.T) {
	svc := NewService("91")
	tenant := models.TenantContext{CompanyID: 1, CompanyCode: "AARTI", CompanyName: "Aarti Constructions"}

	link := svc.QuotationLink(tenant, &models.QuotationDetail{
		Quotation:   models.Quotation{QuotationNumber: "AARTI/2508/0007", GrandTotal: 1593000},
		ClientName:  "Sharma",
		ClientPhone: "9876543210",
	})

	assert.True(t, strings.HasPrefix(link.URL, "https://wa.me/919876543210?text="))
	assert.Contains(t, link.Message, "AARTI/2508/0007")
	assert.Contains(t, link.Message, "Aarti Constructions")
	assert.Contains(t, link.Message, "15,93,000.00")
	assert.Equal(t, "9876543210", link.Phone)
}

func TestBillLinkIncludesBalance(t *testing.T) {
	svc := NewService("91")
	tenant := models.TenantContext{CompanyName: "Aarti Constructions"}

	link := svc.BillLink(tenant, &models.BillDetail{
		Bill:        models.Bill{BillNumber: "INV/AARTI/2508/0002", GrandTotal: 1593000, BalanceAmount: 1093000},
		ClientName:  "Sharma",
		ClientPhone: "9876543210",
	})

	assert.Contains(t, link.Message, "INV/AARTI/2508/0002")
	assert.Contains(t, link.Message, "10,93,000.00")
}

func TestFormatINRGrouping(t *testing.T) {
	assert.Equal(t, "Rs. 0.00", formatINR(0))
	assert.Equal(t, "Rs. 999.00", formatINR(999))
	assert.Equal(t, "Rs. 1,000.00", formatINR(1000))
	assert.Equal(t, "Rs. 12,34,567.89", formatINR(1234567.89))
	assert.Equal(t, "Rs. 1,00,00,000.00", formatINR(10000000))
	assert.Equal(t, "-Rs. 500.50", formatINR(-500.50))
}
