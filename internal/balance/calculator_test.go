package balance

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/avifonte/ledgerdesk-backend/internal/changeorders"
	"github.com/avifonte/ledgerdesk-backend/pkg/db/models"
	"github.com/avifonte/ledgerdesk-backend/pkg/enums"
)

func dec(value string) decimal.Decimal {
	return decimal.RequireFromString(value)
}

func entry(t enums.TransactionType, amount string, status enums.EntryStatus) models.LedgerEntry {
	return models.LedgerEntry{
		ID:     uuid.New(),
		Type:   t,
		Amount: dec(amount),
		Method: enums.PaymentMethodCheck,
		Status: status,
	}
}

func calcInput(deposit string, entries ...models.LedgerEntry) CalculateInput {
	return CalculateInput{
		OrderID:         uuid.New(),
		OrderNumber:     "SO-2001",
		OriginalDeposit: dec(deposit),
		DepositRequired: dec(deposit),
		DepositSource:   changeorders.ValueSourceOrder,
		Entries:         entries,
		Now:             time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC),
	}
}

func TestCalculatePartialPaymentWithPending(t *testing.T) {
	summary := Calculate(calcInput("1000.00",
		entry(enums.TransactionTypePayment, "600.00", enums.EntryStatusApproved),
		entry(enums.TransactionTypePayment, "200.00", enums.EntryStatusPending),
	))

	if !summary.NetReceived.Equal(dec("600.00")) {
		t.Fatalf("net received = %s, want 600.00", summary.NetReceived)
	}
	if !summary.Balance.Equal(dec("400.00")) {
		t.Fatalf("balance = %s, want 400.00", summary.Balance)
	}
	if summary.BalanceStatus != enums.BalanceStatusUnderpaid {
		t.Fatalf("status = %s, want underpaid", summary.BalanceStatus)
	}
	if !summary.PendingReceived.Equal(dec("200.00")) {
		t.Fatalf("pending received = %s, want 200.00", summary.PendingReceived)
	}
}

func TestCalculateVoidedEntryExcludedEverywhere(t *testing.T) {
	voided := entry(enums.TransactionTypePayment, "600.00", enums.EntryStatusVoided)
	reason := "duplicate"
	voided.VoidReason = &reason

	summary := Calculate(calcInput("1000.00",
		voided,
		entry(enums.TransactionTypePayment, "200.00", enums.EntryStatusPending),
	))

	if !summary.NetReceived.IsZero() {
		t.Fatalf("net received = %s, want 0", summary.NetReceived)
	}
	if !summary.Balance.Equal(dec("1000.00")) {
		t.Fatalf("balance = %s, want 1000.00", summary.Balance)
	}
	if summary.BalanceStatus != enums.BalanceStatusUnderpaid {
		t.Fatalf("status = %s, want underpaid", summary.BalanceStatus)
	}
	if !summary.PendingReceived.Equal(dec("200.00")) {
		t.Fatalf("voiding one entry must not touch other pending amounts, got %s", summary.PendingReceived)
	}
}

func TestCalculateVoidedNeverInPendingTotals(t *testing.T) {
	voidedRefund := entry(enums.TransactionTypeRefund, "50.00", enums.EntryStatusVoided)
	summary := Calculate(calcInput("100.00", voidedRefund))

	if !summary.TotalRefunded.IsZero() || !summary.PendingRefunds.IsZero() {
		t.Fatalf("voided refund leaked into totals: refunded=%s pending=%s",
			summary.TotalRefunded, summary.PendingRefunds)
	}
}

func TestCalculateBalanceStatusFromSign(t *testing.T) {
	tests := []struct {
		name    string
		deposit string
		paid    string
		want    enums.BalanceStatus
	}{
		{"exact payment", "500.00", "500.00", enums.BalanceStatusPaid},
		{"underpaid", "500.00", "100.00", enums.BalanceStatusUnderpaid},
		{"overpaid", "500.00", "700.00", enums.BalanceStatusOverpaid},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			summary := Calculate(calcInput(tc.deposit,
				entry(enums.TransactionTypePayment, tc.paid, enums.EntryStatusVerified),
			))
			if summary.BalanceStatus != tc.want {
				t.Fatalf("status = %s, want %s", summary.BalanceStatus, tc.want)
			}
		})
	}
}

func TestCalculatePendingStatusOnlyWhenUnpriced(t *testing.T) {
	unpriced := Calculate(calcInput("0",
		entry(enums.TransactionTypePayment, "75.00", enums.EntryStatusPending),
	))
	if unpriced.BalanceStatus != enums.BalanceStatusPending {
		t.Fatalf("status = %s, want pending for unpriced order", unpriced.BalanceStatus)
	}

	// A zero-deposit order with cleared funds is overpaid, not pending.
	cleared := Calculate(calcInput("0",
		entry(enums.TransactionTypePayment, "75.00", enums.EntryStatusApproved),
	))
	if cleared.BalanceStatus != enums.BalanceStatusOverpaid {
		t.Fatalf("status = %s, want overpaid", cleared.BalanceStatus)
	}
}

func TestCalculateIndependentOfEntryOrder(t *testing.T) {
	entries := []models.LedgerEntry{
		entry(enums.TransactionTypePayment, "300.00", enums.EntryStatusApproved),
		entry(enums.TransactionTypeRefund, "100.00", enums.EntryStatusVerified),
		entry(enums.TransactionTypePayment, "250.00", enums.EntryStatusVerified),
		entry(enums.TransactionTypePayment, "40.00", enums.EntryStatusPending),
	}
	reversed := []models.LedgerEntry{entries[3], entries[2], entries[1], entries[0]}

	a := Calculate(calcInput("1000.00", entries...))
	b := Calculate(calcInput("1000.00", reversed...))

	if !a.Balance.Equal(b.Balance) || !a.NetReceived.Equal(b.NetReceived) ||
		!a.PendingReceived.Equal(b.PendingReceived) {
		t.Fatalf("summary depends on entry order: %+v vs %+v", a, b)
	}
	if !a.NetReceived.Equal(dec("450.00")) {
		t.Fatalf("net received = %s, want 450.00", a.NetReceived)
	}
}

func TestCalculateIdempotent(t *testing.T) {
	input := calcInput("1000.00",
		entry(enums.TransactionTypePayment, "600.00", enums.EntryStatusApproved),
		entry(enums.TransactionTypeRefund, "150.00", enums.EntryStatusApproved),
	)
	first := Calculate(input)
	second := Calculate(input)

	if !first.Balance.Equal(second.Balance) || first.BalanceStatus != second.BalanceStatus ||
		first.EntryCount != second.EntryCount {
		t.Fatalf("repeated calculation diverged: %+v vs %+v", first, second)
	}
}

func TestCalculateAdjustmentsInformationalOnly(t *testing.T) {
	summary := Calculate(calcInput("1000.00",
		entry(enums.TransactionTypePayment, "1000.00", enums.EntryStatusApproved),
		entry(enums.TransactionTypeDepositIncrease, "250.00", enums.EntryStatusApproved),
		entry(enums.TransactionTypeDepositDecrease, "100.00", enums.EntryStatusApproved),
	))

	if summary.DepositAdjustmentCount != 2 {
		t.Fatalf("adjustment count = %d, want 2", summary.DepositAdjustmentCount)
	}
	if !summary.DepositAdjustmentTotal.Equal(dec("150.00")) {
		t.Fatalf("adjustment total = %s, want 150.00", summary.DepositAdjustmentTotal)
	}
	// Adjustments surface in the summary but must not shift the balance.
	if !summary.Balance.IsZero() {
		t.Fatalf("balance = %s, want 0 (deposit fully paid)", summary.Balance)
	}
	if summary.BalanceStatus != enums.BalanceStatusPaid {
		t.Fatalf("status = %s, want paid", summary.BalanceStatus)
	}
}

func TestCalculateRefundsReduceNet(t *testing.T) {
	summary := Calculate(calcInput("500.00",
		entry(enums.TransactionTypePayment, "500.00", enums.EntryStatusVerified),
		entry(enums.TransactionTypeRefund, "200.00", enums.EntryStatusApproved),
		entry(enums.TransactionTypeRefund, "25.00", enums.EntryStatusPending),
	))

	if !summary.NetReceived.Equal(dec("300.00")) {
		t.Fatalf("net received = %s, want 300.00", summary.NetReceived)
	}
	if !summary.Balance.Equal(dec("200.00")) {
		t.Fatalf("balance = %s, want 200.00", summary.Balance)
	}
	if !summary.PendingRefunds.Equal(dec("25.00")) {
		t.Fatalf("pending refunds = %s, want 25.00", summary.PendingRefunds)
	}
}
