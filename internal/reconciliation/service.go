package reconciliation

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/multierr"

	"github.com/avifonte/ledgerdesk-backend/pkg/db/models"
	"github.com/avifonte/ledgerdesk-backend/pkg/enums"
	pkgerrors "github.com/avifonte/ledgerdesk-backend/pkg/errors"
	"github.com/avifonte/ledgerdesk-backend/pkg/logger"
)

// EntrySource is the slice of the ledger repository a reconciliation run needs.
type EntrySource interface {
	ListByMethodWindow(ctx context.Context, method enums.PaymentMethod, from, to time.Time, limit int) ([]models.LedgerEntry, error)
}

// Service runs on-demand reconciliation against one processor source.
type Service interface {
	Run(ctx context.Context, window Window) (*Report, error)
}

// ServiceParams wires the reconciliation service dependencies.
type ServiceParams struct {
	Entries EntrySource
	Source  RecordSource
	Logger  *logger.Logger
	// Limit caps entries per run so a runaway window cannot load the whole
	// table. Zero means no cap.
	Limit int
	Now   func() time.Time
}

type service struct {
	entries EntrySource
	source  RecordSource
	logger  *logger.Logger
	limit   int
	now     func() time.Time
}

// NewService builds a reconciliation service with the required dependencies.
func NewService(params ServiceParams) (Service, error) {
	if params.Entries == nil {
		return nil, fmt.Errorf("entry source required")
	}
	if params.Source == nil {
		return nil, fmt.Errorf("record source required")
	}
	if params.Logger == nil {
		return nil, fmt.Errorf("logger required")
	}
	now := params.Now
	if now == nil {
		now = time.Now
	}
	return &service{
		entries: params.Entries,
		source:  params.Source,
		logger:  params.Logger,
		limit:   params.Limit,
		now:     now,
	}, nil
}

func (s *service) Run(ctx context.Context, window Window) (*Report, error) {
	if window.From.IsZero() || window.To.IsZero() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "reconciliation window requires both bounds")
	}
	if !window.From.Before(window.To) {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "reconciliation window start must precede its end")
	}

	entries, err := s.entries.ListByMethodWindow(ctx, enums.PaymentMethodStripe, window.From, window.To, s.limit)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list stripe ledger entries")
	}

	records, err := s.source.FetchRecords(ctx, window)
	if err != nil {
		// A dead processor must surface as unavailable, never as a report
		// full of missing records.
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err,
			fmt.Sprintf("fetch records from %s", s.source.Name()))
	}

	if anomalies := recordAnomalies(records); anomalies != nil {
		s.logger.Warn(ctx, fmt.Sprintf("processor returned anomalous records: %v", anomalies))
	}

	report := Classify(s.source.Name(), window, entries, records, s.now())

	s.logger.Info(s.logger.WithFields(ctx, map[string]any{
		"source":            report.Source,
		"total_entries":     report.TotalEntries,
		"matched":           report.Matched,
		"mismatched":        report.Mismatched,
		"missing_stripe":    report.MissingStripe,
		"missing_ledger":    report.MissingLedger,
		"total_discrepancy": report.TotalDiscrepancy.StringFixed(2),
	}), "reconciliation run complete")

	return report, nil
}

// recordAnomalies flags processor data the classifier tolerates but an
// operator should know about: duplicate ids and non-positive amounts.
func recordAnomalies(records []ExternalRecord) error {
	var combined error
	seen := make(map[string]bool, len(records))
	for _, record := range records {
		if record.ID == "" {
			combined = multierr.Append(combined, fmt.Errorf("record with empty id"))
			continue
		}
		if seen[record.ID] {
			combined = multierr.Append(combined, fmt.Errorf("duplicate record id %s", record.ID))
		}
		seen[record.ID] = true
		if !record.Amount.IsPositive() {
			combined = multierr.Append(combined, fmt.Errorf("record %s has non-positive amount %s", record.ID, record.Amount))
		}
	}
	return combined
}
