package reconciliation

import (
	"context"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/avifonte/ledgerdesk-backend/pkg/db/models"
	"github.com/avifonte/ledgerdesk-backend/pkg/enums"
	pkgerrors "github.com/avifonte/ledgerdesk-backend/pkg/errors"
	"github.com/avifonte/ledgerdesk-backend/pkg/logger"
)

type fakeEntries struct {
	entries []models.LedgerEntry
	err     error
	gotFrom time.Time
	gotTo   time.Time
}

func (f *fakeEntries) ListByMethodWindow(ctx context.Context, method enums.PaymentMethod, from, to time.Time, limit int) ([]models.LedgerEntry, error) {
	f.gotFrom = from
	f.gotTo = to
	return f.entries, f.err
}

type fakeSource struct {
	records []ExternalRecord
	err     error
}

func (f *fakeSource) Name() string { return "stripe" }

func (f *fakeSource) FetchRecords(ctx context.Context, window Window) ([]ExternalRecord, error) {
	return f.records, f.err
}

func quietLogger() *logger.Logger {
	return logger.New(logger.Options{ServiceName: "test", Level: zerolog.Disabled, Output: io.Discard})
}

func newRunService(t *testing.T, entries *fakeEntries, source *fakeSource) Service {
	t.Helper()
	svc, err := NewService(ServiceParams{
		Entries: entries,
		Source:  source,
		Logger:  quietLogger(),
		Limit:   5000,
	})
	if err != nil {
		t.Fatalf("NewService: %v", err)
	}
	return svc
}

func TestRunProducesReport(t *testing.T) {
	entries := &fakeEntries{entries: []models.LedgerEntry{stripeEntry("ch_1", "100.00")}}
	source := &fakeSource{records: []ExternalRecord{
		{ID: "ch_1", Amount: decimal.RequireFromString("100.00"), Status: "succeeded"},
	}}
	svc := newRunService(t, entries, source)

	window := testWindow()
	report, err := svc.Run(context.Background(), window)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if report.Matched != 1 {
		t.Fatalf("matched = %d, want 1", report.Matched)
	}
	if !entries.gotFrom.Equal(window.From) || !entries.gotTo.Equal(window.To) {
		t.Fatal("window bounds must pass through to the entry listing")
	}
}

func TestRunSourceUnavailable(t *testing.T) {
	entries := &fakeEntries{entries: []models.LedgerEntry{stripeEntry("ch_1", "100.00")}}
	source := &fakeSource{err: errors.New("connection refused")}
	svc := newRunService(t, entries, source)

	_, err := svc.Run(context.Background(), testWindow())
	if err == nil {
		t.Fatal("expected error when source is unreachable")
	}
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeDependency {
		t.Fatalf("expected DEPENDENCY_ERROR, got %v", err)
	}
}

func TestRunInvalidWindow(t *testing.T) {
	svc := newRunService(t, &fakeEntries{}, &fakeSource{})

	cases := []struct {
		name   string
		window Window
	}{
		{"zero bounds", Window{}},
		{
			"inverted bounds",
			Window{
				From: time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC),
				To:   time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC),
			},
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Run(context.Background(), tc.window)
			typed := pkgerrors.As(err)
			if typed == nil || typed.Code() != pkgerrors.CodeValidation {
				t.Fatalf("expected VALIDATION_ERROR, got %v", err)
			}
		})
	}
}

func TestRecordAnomalies(t *testing.T) {
	clean := []ExternalRecord{
		{ID: "ch_1", Amount: decimal.RequireFromString("10.00")},
		{ID: "ch_2", Amount: decimal.RequireFromString("20.00")},
	}
	if err := recordAnomalies(clean); err != nil {
		t.Fatalf("clean records flagged: %v", err)
	}

	dirty := []ExternalRecord{
		{ID: "ch_1", Amount: decimal.RequireFromString("10.00")},
		{ID: "ch_1", Amount: decimal.RequireFromString("10.00")},
		{ID: "", Amount: decimal.RequireFromString("5.00")},
		{ID: "ch_3", Amount: decimal.Zero},
	}
	err := recordAnomalies(dirty)
	if err == nil {
		t.Fatal("expected anomalies to be flagged")
	}
}
