package billing

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"crm-backend/internal/timeutil"
)

// DocumentType selects the number format for a generated document
type DocumentType string

const (
	DocQuotation DocumentType = "quotation"
	DocBill      DocumentType = "bill"
	DocReceipt   DocumentType = "receipt"
)

// Prefix returns the leading segment for a document type. Quotations
// have none; bills and receipts carry INV and RCP respectively.
func (t DocumentType) Prefix() string {
	switch t {
	case DocBill:
		return "INV"
	case DocReceipt:
		return "RCP"
	default:
		return ""
	}
}

// Period renders the YYMM segment for a point in time, in IST. The
// sequence resets for every new (company, type, period) combination.
func Period(t time.Time) string {
	return timeutil.ToIST(t).Format("0601")
}

// FormatNumber renders a document number:
// quotations CODE/YYMM/0001, bills INV/CODE/YYMM/0001, receipts RCP/CODE/YYMM/0001.
func FormatNumber(docType DocumentType, companyCode, period string, seq int) string {
	if prefix := docType.Prefix(); prefix != "" {
		return fmt.Sprintf("%s/%s/%s/%04d", prefix, companyCode, period, seq)
	}
	return fmt.Sprintf("%s/%s/%04d", companyCode, period, seq)
}

// SequenceOf parses the trailing numeric segment of a document number
func SequenceOf(number string) (int, error) {
	parts := strings.Split(number, "/")
	seq, err := strconv.Atoi(parts[len(parts)-1])
	if err != nil {
		return 0, fmt.Errorf("invalid document number %q: %w", number, err)
	}
	return seq, nil
}
