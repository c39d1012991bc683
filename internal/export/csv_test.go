package export

import (
	"bytes"
	"encoding/csv"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/avifonte/ledgerdesk-backend/pkg/db/models"
	"github.com/avifonte/ledgerdesk-backend/pkg/enums"
)

func TestWriteEntriesCSV(t *testing.T) {
	created := time.Date(2025, 6, 1, 10, 30, 0, 0, time.UTC)
	approvedAt := time.Date(2025, 6, 2, 9, 0, 0, 0, time.UTC)
	checkRef := "https://files.example.com/checks/1042.pdf"
	notes := "paid at counter"

	entries := []models.LedgerEntry{
		{
			ID:           uuid.New(),
			OrderNumber:  "SO-1042",
			Type:         enums.TransactionTypePayment,
			Category:     enums.EntryCategoryInitialDeposit,
			Amount:       decimal.RequireFromString("600.5"),
			Method:       enums.PaymentMethodCheck,
			Status:       enums.EntryStatusApproved,
			ProofFileURL: &checkRef,
			Notes:        &notes,
			CreatedAt:    created,
			ApprovedAt:   &approvedAt,
		},
		{
			ID:          uuid.New(),
			OrderNumber: "SO-1042",
			Type:        enums.TransactionTypePayment,
			Category:    enums.EntryCategoryAdditionalPayment,
			Amount:      decimal.RequireFromString("200.00"),
			Method:      enums.PaymentMethodCash,
			Status:      enums.EntryStatusVoided,
			CreatedAt:   created,
		},
	}

	var buf bytes.Buffer
	if err := WriteEntriesCSV(&buf, entries); err != nil {
		t.Fatalf("WriteEntriesCSV: %v", err)
	}

	rows, err := csv.NewReader(&buf).ReadAll()
	if err != nil {
		t.Fatalf("parse output: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("rows = %d, want header plus one entry (voided excluded)", len(rows))
	}
	if strings.Join(rows[0], ",") != strings.Join(entryColumns, ",") {
		t.Fatalf("header = %v, want %v", rows[0], entryColumns)
	}

	row := rows[1]
	if row[1] != "SO-1042" {
		t.Fatalf("order_number = %s, want SO-1042", row[1])
	}
	if row[5] != "600.50" {
		t.Fatalf("amount = %s, want fixed two decimals 600.50", row[5])
	}
	if row[2] != "2025-06-01 10:30:00" {
		t.Fatalf("created_at = %s", row[2])
	}
	if row[9] != "2025-06-02 09:00:00" {
		t.Fatalf("approved_at = %s", row[9])
	}
	if row[10] != "paid at counter" {
		t.Fatalf("notes = %s", row[10])
	}
}

func TestWriteEntriesCSVEmpty(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteEntriesCSV(&buf, nil); err != nil {
		t.Fatalf("WriteEntriesCSV: %v", err)
	}

	rows, err := csv.NewReader(&buf).ReadAll()
	if err != nil {
		t.Fatalf("parse output: %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("rows = %d, want header only", len(rows))
	}
}
