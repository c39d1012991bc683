package export

import (
	"encoding/csv"
	"io"

	"github.com/avifonte/ledgerdesk-backend/pkg/db/models"
	"github.com/avifonte/ledgerdesk-backend/pkg/enums"
	"github.com/avifonte/ledgerdesk-backend/pkg/money"
)

// entryColumns is the stable CSV header. Downstream spreadsheets key on these
// names, so additions go at the end and nothing gets reordered.
var entryColumns = []string{
	"entry_id",
	"order_number",
	"created_at",
	"type",
	"category",
	"amount",
	"method",
	"status",
	"external_payment_id",
	"approved_at",
	"notes",
}

const timeLayout = "2006-01-02 15:04:05"

// WriteEntriesCSV streams one row per non-voided entry. Voided entries are
// excluded entirely rather than rendered with a flag.
func WriteEntriesCSV(w io.Writer, entries []models.LedgerEntry) error {
	writer := csv.NewWriter(w)

	if err := writer.Write(entryColumns); err != nil {
		return err
	}
	for _, entry := range entries {
		if entry.Status == enums.EntryStatusVoided {
			continue
		}
		if err := writer.Write(entryRow(entry)); err != nil {
			return err
		}
	}
	writer.Flush()
	return writer.Error()
}

func entryRow(entry models.LedgerEntry) []string {
	externalID := ""
	if entry.ExternalPaymentID != nil {
		externalID = *entry.ExternalPaymentID
	}
	approvedAt := ""
	if entry.ApprovedAt != nil {
		approvedAt = entry.ApprovedAt.UTC().Format(timeLayout)
	}
	notes := ""
	if entry.Notes != nil {
		notes = *entry.Notes
	}
	return []string{
		entry.ID.String(),
		entry.OrderNumber,
		entry.CreatedAt.UTC().Format(timeLayout),
		string(entry.Type),
		string(entry.Category),
		money.Format(entry.Amount),
		string(entry.Method),
		string(entry.Status),
		externalID,
		approvedAt,
		notes,
	}
}
