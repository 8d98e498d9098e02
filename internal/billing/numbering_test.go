package billing

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"crm-backend/internal/timeutil"
)

func TestFormatNumber(t *testing.T) {
	assert.Equal(t, "AARTI/2508/0001", FormatNumber(DocQuotation, "AARTI", "2508", 1))
	assert.Equal(t, "INV/AARTI/2508/0042", FormatNumber(DocBill, "AARTI", "2508", 42))
	assert.Equal(t, "RCP/INTERIOR/2601/1234", FormatNumber(DocReceipt, "INTERIOR", "2601", 1234))
}

func TestPeriodUsesIST(t *testing.T) {
	// 2025-08-31 23:30 UTC is already September 1st in IST
	utc := time.Date(2025, 8, 31, 23, 30, 0, 0, time.UTC)
	assert.Equal(t, "2509", Period(utc))

	ist := time.Date(2025, 8, 15, 12, 0, 0, 0, timeutil.IST)
	assert.Equal(t, "2508", Period(ist))
}

func TestSequenceOf(t *testing.T) {
	seq, err := SequenceOf("INV/AARTI/2508/0042")
	require.NoError(t, err)
	assert.Equal(t, 42, seq)

	seq, err = SequenceOf("AARTI/2508/9999")
	require.NoError(t, err)
	assert.Equal(t, 9999, seq)

	_, err = SequenceOf("AARTI/2508/abc")
	assert.Error(t, err)
}

func TestFormatParseRoundTrip(t *testing.T) {
	// Sequence numbers survive formatting for each document type
	for seq := 1; seq <= 5; seq++ {
		for _, docType := range []DocumentType{DocQuotation, DocBill, DocReceipt} {
			number := FormatNumber(docType, "AARTI", "2508", seq)
			parsed, err := SequenceOf(number)
			require.NoError(t, err)
			assert.Equal(t, seq, parsed)
		}
	}
}
