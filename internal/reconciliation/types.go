package reconciliation

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/avifonte/ledgerdesk-backend/pkg/enums"
)

// ExternalRecord is one settled payment as the processor reports it.
type ExternalRecord struct {
	ID     string
	Amount decimal.Decimal
	Status string
}

// Window bounds one reconciliation run by entry creation time.
type Window struct {
	From time.Time
	To   time.Time
}

// RecordSource fetches processor records for a window. Implementations must
// return an error when the processor cannot be reached so the run is reported
// as a dependency failure rather than a wall of missing records.
type RecordSource interface {
	Name() string
	FetchRecords(ctx context.Context, window Window) ([]ExternalRecord, error)
}

// Row is the comparison outcome for one ledger entry or orphaned processor
// record.
type Row struct {
	OrderID     uuid.UUID             `json:"order_id,omitempty"`
	OrderNumber string                `json:"order_number,omitempty"`
	EntryID     uuid.UUID             `json:"entry_id,omitempty"`
	EntryType   enums.TransactionType `json:"entry_type,omitempty"`

	LedgerAmount   *decimal.Decimal `json:"ledger_amount,omitempty"`
	ExternalID     string           `json:"external_id,omitempty"`
	ExternalAmount *decimal.Decimal `json:"external_amount,omitempty"`
	ExternalStatus string           `json:"external_status,omitempty"`

	Status enums.ReconcileStatus `json:"status"`
	// DiscrepancyAmount is ledger minus external, zero unless Status is
	// mismatch.
	DiscrepancyAmount decimal.Decimal `json:"discrepancy_amount"`
}

// Report summarizes one reconciliation run.
type Report struct {
	Source      string    `json:"source"`
	WindowFrom  time.Time `json:"window_from"`
	WindowTo    time.Time `json:"window_to"`
	GeneratedAt time.Time `json:"generated_at"`

	TotalEntries  int `json:"total_entries"`
	Matched       int `json:"matched"`
	Mismatched    int `json:"mismatched"`
	MissingStripe int `json:"missing_stripe"`
	MissingLedger int `json:"missing_ledger"`

	// TotalDiscrepancy is the sum of absolute mismatch discrepancies.
	TotalDiscrepancy decimal.Decimal `json:"total_discrepancy"`

	Rows []Row `json:"rows"`
}

// Unmatched counts every row that needs human review.
func (r *Report) Unmatched() int {
	return r.Mismatched + r.MissingStripe + r.MissingLedger
}
