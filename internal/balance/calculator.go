package balance

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/avifonte/ledgerdesk-backend/internal/changeorders"
	"github.com/avifonte/ledgerdesk-backend/pkg/db/models"
	"github.com/avifonte/ledgerdesk-backend/pkg/enums"
)

// OrderLedgerSummary is derived state. It is recomputed from the entry set
// and the effective deposit on every read, never patched incrementally.
type OrderLedgerSummary struct {
	OrderID     uuid.UUID `json:"order_id"`
	OrderNumber string    `json:"order_number"`

	OriginalDeposit decimal.Decimal         `json:"original_deposit"`
	DepositRequired decimal.Decimal         `json:"deposit_required"`
	DepositSource   changeorders.ValueSource `json:"deposit_source"`

	DepositAdjustmentCount int             `json:"deposit_adjustment_count"`
	DepositAdjustmentTotal decimal.Decimal `json:"deposit_adjustment_total"`

	TotalReceived decimal.Decimal `json:"total_received"`
	TotalRefunded decimal.Decimal `json:"total_refunded"`
	NetReceived   decimal.Decimal `json:"net_received"`

	Balance       decimal.Decimal     `json:"balance"`
	BalanceStatus enums.BalanceStatus `json:"balance_status"`

	PendingReceived decimal.Decimal `json:"pending_received"`
	PendingRefunds  decimal.Decimal `json:"pending_refunds"`

	EntryCount   int       `json:"entry_count"`
	CalculatedAt time.Time `json:"calculated_at"`
}

// CalculateInput carries everything the derivation needs. DepositRequired is
// the change-order-resolved effective value, never the order's static field.
type CalculateInput struct {
	OrderID         uuid.UUID
	OrderNumber     string
	OriginalDeposit decimal.Decimal
	DepositRequired decimal.Decimal
	DepositSource   changeorders.ValueSource
	Entries         []models.LedgerEntry
	Now             time.Time
}

// Calculate derives the order's summary from its entry set. Pure and
// idempotent: the same input always yields the same summary regardless of
// entry order. Voided entries contribute to no totals. Pending amounts are
// surfaced but never enter net received or the balance.
//
// Deposit adjustment entries are informational. DepositRequired is always
// sourced from the order/change-order, never summed from adjustment entries;
// summing both would double count.
func Calculate(input CalculateInput) OrderLedgerSummary {
	summary := OrderLedgerSummary{
		OrderID:         input.OrderID,
		OrderNumber:     input.OrderNumber,
		OriginalDeposit: input.OriginalDeposit,
		DepositRequired: input.DepositRequired,
		DepositSource:   input.DepositSource,
		EntryCount:      len(input.Entries),
		CalculatedAt:    input.Now,
	}

	clearedCount := 0
	for i := range input.Entries {
		entry := &input.Entries[i]
		switch {
		case entry.Status == enums.EntryStatusVoided:
			continue
		case entry.Status.IsCleared():
			clearedCount++
			switch entry.Type {
			case enums.TransactionTypePayment:
				summary.TotalReceived = summary.TotalReceived.Add(entry.Amount)
			case enums.TransactionTypeRefund:
				summary.TotalRefunded = summary.TotalRefunded.Add(entry.Amount)
			case enums.TransactionTypeDepositIncrease:
				summary.DepositAdjustmentCount++
				summary.DepositAdjustmentTotal = summary.DepositAdjustmentTotal.Add(entry.Amount)
			case enums.TransactionTypeDepositDecrease:
				summary.DepositAdjustmentCount++
				summary.DepositAdjustmentTotal = summary.DepositAdjustmentTotal.Sub(entry.Amount)
			}
		case entry.Status == enums.EntryStatusPending:
			switch entry.Type {
			case enums.TransactionTypePayment:
				summary.PendingReceived = summary.PendingReceived.Add(entry.Amount)
			case enums.TransactionTypeRefund:
				summary.PendingRefunds = summary.PendingRefunds.Add(entry.Amount)
			}
		}
	}

	summary.NetReceived = summary.TotalReceived.Sub(summary.TotalRefunded)
	summary.Balance = summary.DepositRequired.Sub(summary.NetReceived)
	summary.BalanceStatus = statusFor(summary.Balance, clearedCount, summary.DepositRequired)
	return summary
}

func statusFor(balance decimal.Decimal, clearedCount int, depositRequired decimal.Decimal) enums.BalanceStatus {
	if clearedCount == 0 && depositRequired.IsZero() {
		return enums.BalanceStatusPending
	}
	switch balance.Sign() {
	case 0:
		return enums.BalanceStatusPaid
	case 1:
		return enums.BalanceStatusUnderpaid
	default:
		return enums.BalanceStatusOverpaid
	}
}
