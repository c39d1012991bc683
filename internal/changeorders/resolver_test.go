package changeorders

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/avifonte/ledgerdesk-backend/pkg/db/models"
	"github.com/avifonte/ledgerdesk-backend/pkg/enums"
)

func dec(value string) decimal.Decimal {
	return decimal.RequireFromString(value)
}

func testOrder() *models.SalesOrder {
	return &models.SalesOrder{
		ID:                uuid.New(),
		OrderNumber:       "SO-1001",
		SubtotalBeforeTax: dec("2000.00"),
		ExtraAmount:       dec("150.00"),
		DepositRequired:   dec("500.00"),
	}
}

func changeOrder(orderID uuid.UUID, number int, status enums.ChangeOrderStatus, deposit string) models.ChangeOrder {
	return models.ChangeOrder{
		ID:                uuid.New(),
		OrderID:           orderID,
		ChangeOrderNumber: number,
		Status:            status,
		NewSubtotal:       dec("2500.00"),
		NewExtraAmount:    dec("100.00"),
		NewDeposit:        dec(deposit),
	}
}

func TestResolveNoChangeOrders(t *testing.T) {
	order := testOrder()
	got := Resolve(order, nil)

	if got.Source != ValueSourceOrder {
		t.Fatalf("source = %s, want order", got.Source)
	}
	if !got.Deposit.Equal(dec("500.00")) {
		t.Fatalf("deposit = %s, want 500.00", got.Deposit)
	}
	if !got.OrderTotal.Equal(dec("2150.00")) {
		t.Fatalf("order total = %s, want 2150.00", got.OrderTotal)
	}
}

func TestResolveLivePicksHighestPendingSignature(t *testing.T) {
	order := testOrder()
	older := changeOrder(order.ID, 1, enums.ChangeOrderStatusPendingSignature, "600.00")
	newer := changeOrder(order.ID, 2, enums.ChangeOrderStatusPendingSignature, "750.00")

	got := Resolve(order, []models.ChangeOrder{older, newer})

	if got.Source != ValueSourceChangeOrder {
		t.Fatalf("source = %s, want change_order", got.Source)
	}
	if !got.Deposit.Equal(dec("750.00")) {
		t.Fatalf("deposit = %s, want 750.00 from change order #2", got.Deposit)
	}
	if got.LiveChangeOrderNumber == nil || *got.LiveChangeOrderNumber != 2 {
		t.Fatalf("live number = %v, want 2", got.LiveChangeOrderNumber)
	}
	if len(got.Superseded) != 1 || got.Superseded[0] != older.ID {
		t.Fatalf("superseded = %v, want [%s]", got.Superseded, older.ID)
	}
}

func TestResolveOrderIndependentOfInputOrder(t *testing.T) {
	order := testOrder()
	older := changeOrder(order.ID, 1, enums.ChangeOrderStatusPendingSignature, "600.00")
	newer := changeOrder(order.ID, 3, enums.ChangeOrderStatusPendingSignature, "900.00")

	forward := Resolve(order, []models.ChangeOrder{older, newer})
	reversed := Resolve(order, []models.ChangeOrder{newer, older})

	if !forward.Deposit.Equal(reversed.Deposit) {
		t.Fatalf("resolution depends on slice order: %s vs %s", forward.Deposit, reversed.Deposit)
	}
	if !forward.Deposit.Equal(dec("900.00")) {
		t.Fatalf("deposit = %s, want 900.00", forward.Deposit)
	}
}

func TestResolveIgnoresNonPendingStatuses(t *testing.T) {
	order := testOrder()
	cos := []models.ChangeOrder{
		changeOrder(order.ID, 1, enums.ChangeOrderStatusDraft, "999.00"),
		changeOrder(order.ID, 2, enums.ChangeOrderStatusSigned, "999.00"),
		changeOrder(order.ID, 3, enums.ChangeOrderStatusCancelled, "999.00"),
		changeOrder(order.ID, 4, enums.ChangeOrderStatusSuperseded, "999.00"),
	}

	got := Resolve(order, cos)
	if got.Source != ValueSourceOrder {
		t.Fatalf("non-pending statuses must not supersede the order, got source %s", got.Source)
	}
	if !got.Deposit.Equal(dec("500.00")) {
		t.Fatalf("deposit = %s, want the order's own 500.00", got.Deposit)
	}
}

func TestResolveOrderTotalFromLiveChangeOrder(t *testing.T) {
	order := testOrder()
	live := changeOrder(order.ID, 1, enums.ChangeOrderStatusPendingSignature, "750.00")

	got := Resolve(order, []models.ChangeOrder{live})
	if !got.OrderTotal.Equal(dec("2600.00")) {
		t.Fatalf("order total = %s, want 2600.00 (new subtotal + new extra)", got.OrderTotal)
	}
}
