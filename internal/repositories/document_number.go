package repositories

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"crm-backend/internal/billing"
	"crm-backend/internal/timeutil"
)

// nextDocumentNumber allocates the next sequence for (company, type,
// month) and renders the document number. It must run inside the
// transaction that inserts the document: the upsert takes a row lock
// on the sequence, so concurrent creates serialize and a rolled-back
// create releases its number with the lock.
func nextDocumentNumber(ctx context.Context, tx pgx.Tx, companyID int, companyCode string, docType billing.DocumentType) (string, error) {
	period := billing.Period(timeutil.Now())

	var seq int
	err := tx.QueryRow(ctx,
		`INSERT INTO document_sequences(company_id, doc_type, period, last_seq)
		 VALUES($1, $2, $3, 1)
		 ON CONFLICT (company_id, doc_type, period)
		 DO UPDATE SET last_seq = document_sequences.last_seq + 1
		 RETURNING last_seq`,
		companyID, string(docType), period,
	).Scan(&seq)
	if err != nil {
		return "", fmt.Errorf("failed to advance %s sequence: %w", docType, err)
	}

	return billing.FormatNumber(docType, companyCode, period, seq), nil
}
