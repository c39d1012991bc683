package reconciliation

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/avifonte/ledgerdesk-backend/pkg/db/models"
	"github.com/avifonte/ledgerdesk-backend/pkg/enums"
	"github.com/avifonte/ledgerdesk-backend/pkg/money"
)

// Classify compares ledger entries against processor records and buckets every
// row. Matching is by external payment id; amounts within one cent of each
// other are treated as equal. Pure: no I/O, deterministic for a given input.
func Classify(source string, window Window, entries []models.LedgerEntry, records []ExternalRecord, now time.Time) *Report {
	report := &Report{
		Source:           source,
		WindowFrom:       window.From,
		WindowTo:         window.To,
		GeneratedAt:      now,
		TotalDiscrepancy: decimal.Zero,
		Rows:             make([]Row, 0, len(entries)),
	}

	byExternalID := make(map[string]ExternalRecord, len(records))
	for _, record := range records {
		byExternalID[record.ID] = record
	}
	referenced := make(map[string]bool, len(entries))

	for _, entry := range entries {
		row := Row{
			OrderID:     entry.OrderID,
			OrderNumber: entry.OrderNumber,
			EntryID:     entry.ID,
			EntryType:   entry.Type,
		}
		amount := entry.Amount
		row.LedgerAmount = &amount

		if entry.ExternalPaymentID == nil || *entry.ExternalPaymentID == "" {
			row.Status = enums.ReconcileStatusMissingStripe
			report.MissingStripe++
			report.Rows = append(report.Rows, row)
			continue
		}

		externalID := *entry.ExternalPaymentID
		row.ExternalID = externalID
		record, ok := byExternalID[externalID]
		if !ok {
			row.Status = enums.ReconcileStatusMissingStripe
			report.MissingStripe++
			report.Rows = append(report.Rows, row)
			continue
		}
		referenced[externalID] = true

		externalAmount := record.Amount
		row.ExternalAmount = &externalAmount
		row.ExternalStatus = record.Status

		if money.Equalish(entry.Amount, record.Amount) {
			row.Status = enums.ReconcileStatusMatched
			report.Matched++
		} else {
			row.Status = enums.ReconcileStatusMismatch
			row.DiscrepancyAmount = entry.Amount.Sub(record.Amount)
			report.Mismatched++
			report.TotalDiscrepancy = report.TotalDiscrepancy.Add(row.DiscrepancyAmount.Abs())
		}
		report.Rows = append(report.Rows, row)
	}

	orphans := make([]ExternalRecord, 0)
	for _, record := range records {
		if !referenced[record.ID] {
			orphans = append(orphans, record)
		}
	}
	sort.Slice(orphans, func(i, j int) bool { return orphans[i].ID < orphans[j].ID })
	for _, record := range orphans {
		externalAmount := record.Amount
		report.Rows = append(report.Rows, Row{
			ExternalID:     record.ID,
			ExternalAmount: &externalAmount,
			ExternalStatus: record.Status,
			Status:         enums.ReconcileStatusMissingLedger,
		})
		report.MissingLedger++
	}

	report.TotalEntries = len(report.Rows)
	return report
}
