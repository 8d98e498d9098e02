package services

import (
	"bytes"
	"fmt"

	"github.com/jung-kurt/gofpdf/v2"

	"crm-backend/internal/models"
)

// PDFService renders quotations, bills and receipts as A4 documents.
// It is pure rendering: callers load the data through the document
// services first.
type PDFService struct{}

func NewPDFService() *PDFService {
	return &PDFService{}
}

func (s *PDFService) QuotationPDF(company *models.Company, q *models.QuotationDetail) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(10, 10, 10)
	pdf.AddPage()

	writeCompanyHeader(pdf, company, "QUOTATION")

	pdf.SetFont("Arial", "B", 11)
	pdf.CellFormat(95, 7, fmt.Sprintf("Quotation No: %s", q.QuotationNumber), "", 0, "L", false, 0, "")
	pdf.CellFormat(95, 7, fmt.Sprintf("Date: %s", q.Date), "", 1, "R", false, 0, "")
	pdf.Ln(2)

	writeClientBlock(pdf, q.ClientName, q.ClientAddress, q.ClientPhone, q.ProjectLocation)

	if q.TotalSqft > 0 {
		pdf.SetFont("Arial", "", 10)
		pdf.CellFormat(95, 6, fmt.Sprintf("Carpet Area: %.0f sq.ft", q.TotalSqft), "", 0, "L", false, 0, "")
		pdf.CellFormat(95, 6, fmt.Sprintf("Rate: Rs. %.2f / sq.ft", q.RatePerSqft), "", 1, "L", false, 0, "")
		pdf.Ln(2)
	}

	if len(q.Items) > 0 {
		writeItemsTable(pdf, q.Items)
	}

	writeFinancialSummary(pdf, q.Subtotal, q.DiscountAmount, q.TaxableAmount,
		q.CGSTPercent, q.CGSTAmount, q.SGSTPercent, q.SGSTAmount, q.GrandTotal)

	if q.TermsConditions != "" {
		pdf.Ln(5)
		pdf.SetFont("Arial", "B", 10)
		pdf.CellFormat(190, 6, "Terms & Conditions", "", 1, "L", false, 0, "")
		pdf.SetFont("Arial", "", 9)
		pdf.MultiCell(190, 5, q.TermsConditions, "", "L", false)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to generate quotation pdf: %w", err)
	}
	return buf.Bytes(), nil
}

func (s *PDFService) BillPDF(company *models.Company, b *models.BillDetail) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(10, 10, 10)
	pdf.AddPage()

	writeCompanyHeader(pdf, company, "TAX INVOICE")

	pdf.SetFont("Arial", "B", 11)
	pdf.CellFormat(95, 7, fmt.Sprintf("Invoice No: %s", b.BillNumber), "", 0, "L", false, 0, "")
	pdf.CellFormat(95, 7, fmt.Sprintf("Date: %s", b.Date), "", 1, "R", false, 0, "")
	pdf.SetFont("Arial", "", 10)
	pdf.CellFormat(190, 6, fmt.Sprintf("Against Quotation: %s", b.QuotationNumber), "", 1, "L", false, 0, "")
	pdf.Ln(2)

	writeClientBlock(pdf, b.ClientName, b.ClientAddress, b.ClientPhone, b.ProjectLocation)

	if len(b.Items) > 0 {
		writeItemsTable(pdf, b.Items)
	}

	writeFinancialSummary(pdf, b.Subtotal, 0, b.Subtotal,
		b.CGSTPercent, b.CGSTAmount, b.SGSTPercent, b.SGSTAmount, b.GrandTotal)

	pdf.Ln(3)
	pdf.SetFont("Arial", "B", 11)
	pdf.SetFillColor(240, 240, 240)
	pdf.CellFormat(63, 8, fmt.Sprintf("Paid: Rs. %.2f", b.PaidAmount), "1", 0, "C", true, 0, "")
	pdf.CellFormat(63, 8, fmt.Sprintf("Balance: Rs. %.2f", b.BalanceAmount), "1", 0, "C", true, 0, "")
	pdf.CellFormat(64, 8, fmt.Sprintf("Status: %s", b.Status), "1", 1, "C", true, 0, "")

	if len(b.Receipts) > 0 {
		pdf.Ln(5)
		pdf.SetFont("Arial", "B", 10)
		pdf.CellFormat(190, 7, "Payments Received", "1", 1, "L", true, 0, "")
		pdf.SetFont("Arial", "", 9)
		for _, rec := range b.Receipts {
			pdf.CellFormat(60, 6, rec.ReceiptNumber, "1", 0, "L", false, 0, "")
			pdf.CellFormat(40, 6, rec.Date, "1", 0, "C", false, 0, "")
			pdf.CellFormat(40, 6, rec.PaymentMode, "1", 0, "C", false, 0, "")
			pdf.CellFormat(50, 6, fmt.Sprintf("Rs. %.2f", rec.Amount), "1", 1, "R", false, 0, "")
		}
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to generate bill pdf: %w", err)
	}
	return buf.Bytes(), nil
}

func (s *PDFService) ReceiptPDF(company *models.Company, r *models.ReceiptDetail) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(10, 10, 10)
	pdf.AddPage()

	writeCompanyHeader(pdf, company, "PAYMENT RECEIPT")

	pdf.SetFont("Arial", "B", 11)
	pdf.CellFormat(95, 7, fmt.Sprintf("Receipt No: %s", r.ReceiptNumber), "", 0, "L", false, 0, "")
	pdf.CellFormat(95, 7, fmt.Sprintf("Date: %s", r.Date), "", 1, "R", false, 0, "")
	pdf.Ln(2)

	writeClientBlock(pdf, r.ClientName, r.ClientAddress, r.ClientPhone, "")

	pdf.SetFont("Arial", "", 11)
	pdf.CellFormat(190, 7, fmt.Sprintf("Against Quotation: %s", r.QuotationNumber), "1", 1, "L", false, 0, "")
	pdf.SetFont("Arial", "B", 14)
	pdf.SetFillColor(200, 255, 200)
	pdf.CellFormat(190, 10, fmt.Sprintf("Amount Received: Rs. %.2f", r.Amount), "1", 1, "C", true, 0, "")
	pdf.SetFont("Arial", "", 10)
	pdf.CellFormat(95, 7, fmt.Sprintf("Payment Mode: %s", r.PaymentMode), "1", 0, "L", false, 0, "")
	ref := r.TransactionReference
	if ref == "" {
		ref = "-"
	}
	pdf.CellFormat(95, 7, fmt.Sprintf("Reference: %s", ref), "1", 1, "L", false, 0, "")

	pdf.Ln(3)
	pdf.SetFont("Arial", "", 10)
	pdf.CellFormat(95, 7, fmt.Sprintf("Total Received: Rs. %.2f", r.TotalReceived), "1", 0, "C", false, 0, "")
	pdf.CellFormat(95, 7, fmt.Sprintf("Balance: Rs. %.2f", r.Balance), "1", 1, "C", false, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to generate receipt pdf: %w", err)
	}
	return buf.Bytes(), nil
}

func writeCompanyHeader(pdf *gofpdf.Fpdf, company *models.Company, title string) {
	pdf.SetFont("Arial", "B", 16)
	pdf.CellFormat(190, 10, company.Name, "", 1, "C", false, 0, "")
	pdf.SetFont("Arial", "", 9)
	if company.Address != "" {
		pdf.CellFormat(190, 5, company.Address, "", 1, "C", false, 0, "")
	}
	contact := company.Phone
	if company.Email != "" {
		if contact != "" {
			contact += " | "
		}
		contact += company.Email
	}
	if contact != "" {
		pdf.CellFormat(190, 5, contact, "", 1, "C", false, 0, "")
	}
	if company.GSTNumber != "" {
		pdf.CellFormat(190, 5, fmt.Sprintf("GSTIN: %s", company.GSTNumber), "", 1, "C", false, 0, "")
	}
	pdf.Ln(2)
	pdf.SetFont("Arial", "B", 13)
	pdf.SetFillColor(230, 230, 230)
	pdf.CellFormat(190, 9, title, "1", 1, "C", true, 0, "")
	pdf.Ln(3)
}

func writeClientBlock(pdf *gofpdf.Fpdf, name, address, phone, projectLocation string) {
	pdf.SetFont("Arial", "B", 10)
	pdf.SetFillColor(240, 240, 240)
	pdf.CellFormat(190, 7, "Client Details", "1", 1, "L", true, 0, "")
	pdf.SetFont("Arial", "", 10)
	pdf.CellFormat(95, 6, fmt.Sprintf("Name: %s", name), "LB", 0, "L", false, 0, "")
	pdf.CellFormat(95, 6, fmt.Sprintf("Phone: %s", phone), "RB", 1, "L", false, 0, "")
	pdf.CellFormat(95, 6, fmt.Sprintf("Address: %s", address), "LB", 0, "L", false, 0, "")
	if projectLocation != "" {
		pdf.CellFormat(95, 6, fmt.Sprintf("Project: %s", projectLocation), "RB", 1, "L", false, 0, "")
	} else {
		pdf.CellFormat(95, 6, "", "RB", 1, "L", false, 0, "")
	}
	pdf.Ln(3)
}

func writeItemsTable(pdf *gofpdf.Fpdf, items []models.QuotationItem) {
	pdf.SetFont("Arial", "B", 9)
	pdf.SetFillColor(200, 200, 200)
	pdf.CellFormat(10, 7, "#", "1", 0, "C", true, 0, "")
	pdf.CellFormat(30, 7, "Room", "1", 0, "C", true, 0, "")
	pdf.CellFormat(60, 7, "Item", "1", 0, "C", true, 0, "")
	pdf.CellFormat(20, 7, "Unit", "1", 0, "C", true, 0, "")
	pdf.CellFormat(20, 7, "Qty", "1", 0, "C", true, 0, "")
	pdf.CellFormat(25, 7, "Rate", "1", 0, "C", true, 0, "")
	pdf.CellFormat(25, 7, "Amount", "1", 1, "C", true, 0, "")

	pdf.SetFont("Arial", "", 9)
	for i, item := range items {
		pdf.CellFormat(10, 6, fmt.Sprintf("%d", i+1), "1", 0, "C", false, 0, "")
		pdf.CellFormat(30, 6, item.RoomLabel, "1", 0, "L", false, 0, "")
		pdf.CellFormat(60, 6, item.ItemName, "1", 0, "L", false, 0, "")
		pdf.CellFormat(20, 6, item.Unit, "1", 0, "C", false, 0, "")
		pdf.CellFormat(20, 6, fmt.Sprintf("%.2f", item.Quantity), "1", 0, "R", false, 0, "")
		pdf.CellFormat(25, 6, fmt.Sprintf("%.2f", item.Rate), "1", 0, "R", false, 0, "")
		pdf.CellFormat(25, 6, fmt.Sprintf("%.2f", item.Amount), "1", 1, "R", false, 0, "")
	}
	pdf.Ln(3)
}

func writeFinancialSummary(pdf *gofpdf.Fpdf, subtotal, discount, taxable, cgstPct, cgstAmt, sgstPct, sgstAmt, grandTotal float64) {
	row := func(label string, value float64, bold bool) {
		if bold {
			pdf.SetFont("Arial", "B", 11)
		} else {
			pdf.SetFont("Arial", "", 10)
		}
		pdf.CellFormat(140, 7, label, "1", 0, "R", false, 0, "")
		pdf.CellFormat(50, 7, fmt.Sprintf("Rs. %.2f", value), "1", 1, "R", false, 0, "")
	}

	row("Subtotal", subtotal, false)
	if discount > 0 {
		row("Discount", discount, false)
		row("Taxable Amount", taxable, false)
	}
	row(fmt.Sprintf("CGST @ %.1f%%", cgstPct), cgstAmt, false)
	row(fmt.Sprintf("SGST @ %.1f%%", sgstPct), sgstAmt, false)
	row("Grand Total", grandTotal, true)
}
