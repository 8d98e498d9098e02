package handlers

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/gorilla/mux"

	"crm-backend/internal/middleware"
	"crm-backend/internal/services"
	"crm-backend/internal/whatsapp"
	"crm-backend/pkg/utils"
)

// PDFHandler serves rendered documents and WhatsApp share links
type PDFHandler struct {
	PDF        *services.PDFService
	Share      *whatsapp.Service
	Companies  *services.CompanyService
	Quotations *services.QuotationService
	Bills      *services.BillService
	Receipts   *services.ReceiptService
}

func NewPDFHandler(pdf *services.PDFService, share *whatsapp.Service, companies *services.CompanyService, quotations *services.QuotationService, bills *services.BillService, receipts *services.ReceiptService) *PDFHandler {
	return &PDFHandler{
		PDF:        pdf,
		Share:      share,
		Companies:  companies,
		Quotations: quotations,
		Bills:      bills,
		Receipts:   receipts,
	}
}

func (h *PDFHandler) QuotationPDF(w http.ResponseWriter, r *http.Request) {
	tenant, _ := middleware.TenantFromContext(r.Context())
	id, _ := strconv.Atoi(mux.Vars(r)["id"])

	quotation, err := h.Quotations.GetQuotation(r.Context(), tenant, id)
	if err != nil {
		utils.ErrorFrom(w, err)
		return
	}
	company, err := h.Companies.GetCompany(r.Context(), tenant.CompanyID)
	if err != nil {
		utils.ErrorFrom(w, err)
		return
	}

	data, err := h.PDF.QuotationPDF(company, quotation)
	if err != nil {
		utils.ErrorFrom(w, err)
		return
	}
	servePDF(w, data, quotation.QuotationNumber)
}

func (h *PDFHandler) BillPDF(w http.ResponseWriter, r *http.Request) {
	tenant, _ := middleware.TenantFromContext(r.Context())
	id, _ := strconv.Atoi(mux.Vars(r)["id"])

	bill, err := h.Bills.GetBill(r.Context(), tenant, id)
	if err != nil {
		utils.ErrorFrom(w, err)
		return
	}
	company, err := h.Companies.GetCompany(r.Context(), tenant.CompanyID)
	if err != nil {
		utils.ErrorFrom(w, err)
		return
	}

	data, err := h.PDF.BillPDF(company, bill)
	if err != nil {
		utils.ErrorFrom(w, err)
		return
	}
	servePDF(w, data, bill.BillNumber)
}

func (h *PDFHandler) ReceiptPDF(w http.ResponseWriter, r *http.Request) {
	tenant, _ := middleware.TenantFromContext(r.Context())
	id, _ := strconv.Atoi(mux.Vars(r)["id"])

	receipt, err := h.Receipts.GetReceipt(r.Context(), tenant, id)
	if err != nil {
		utils.ErrorFrom(w, err)
		return
	}
	company, err := h.Companies.GetCompany(r.Context(), tenant.CompanyID)
	if err != nil {
		utils.ErrorFrom(w, err)
		return
	}

	data, err := h.PDF.ReceiptPDF(company, receipt)
	if err != nil {
		utils.ErrorFrom(w, err)
		return
	}
	servePDF(w, data, receipt.ReceiptNumber)
}

// WhatsAppShare builds a wa.me link for a document. The client opens
// the URL; nothing is sent from the server.
func (h *PDFHandler) WhatsAppShare(w http.ResponseWriter, r *http.Request) {
	tenant, _ := middleware.TenantFromContext(r.Context())
	vars := mux.Vars(r)
	id, _ := strconv.Atoi(vars["id"])

	var link *whatsapp.ShareLink
	switch vars["type"] {
	case "quotation":
		quotation, err := h.Quotations.GetQuotation(r.Context(), tenant, id)
		if err != nil {
			utils.ErrorFrom(w, err)
			return
		}
		link = h.Share.QuotationLink(tenant, quotation)
	case "bill":
		bill, err := h.Bills.GetBill(r.Context(), tenant, id)
		if err != nil {
			utils.ErrorFrom(w, err)
			return
		}
		link = h.Share.BillLink(tenant, bill)
	case "receipt":
		receipt, err := h.Receipts.GetReceipt(r.Context(), tenant, id)
		if err != nil {
			utils.ErrorFrom(w, err)
			return
		}
		link = h.Share.ReceiptLink(tenant, receipt)
	default:
		utils.Error(w, http.StatusBadRequest, "Unknown document type")
		return
	}

	utils.JSON(w, http.StatusOK, link)
}

func servePDF(w http.ResponseWriter, data []byte, documentNumber string) {
	filename := strings.ReplaceAll(documentNumber, "/", "-") + ".pdf"
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf(`inline; filename="%s"`, filename))
	w.Write(data)
}
