package changeorders

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/avifonte/ledgerdesk-backend/pkg/db/models"
	"github.com/avifonte/ledgerdesk-backend/pkg/enums"
)

// ValueSource tags where an order's effective values came from.
type ValueSource string

const (
	ValueSourceOrder       ValueSource = "order"
	ValueSourceChangeOrder ValueSource = "change_order"
)

// EffectiveValues is the single resolution of an order's governing price and
// deposit. Resolved once per read and threaded into the balance calculator;
// callers never read the order's static fields when a live change order exists.
type EffectiveValues struct {
	Source     ValueSource     `json:"source"`
	Deposit    decimal.Decimal `json:"deposit"`
	OrderTotal decimal.Decimal `json:"order_total"`

	LiveChangeOrderID     *uuid.UUID `json:"live_change_order_id,omitempty"`
	LiveChangeOrderNumber *int       `json:"live_change_order_number,omitempty"`

	// Superseded lists pending_signature revisions outranked by the live one.
	// A data anomaly (two pending signatures) is tolerated, not rejected;
	// display layers show these as superseded.
	Superseded []uuid.UUID `json:"superseded,omitempty"`
}

// Resolve picks the live change order, the pending_signature revision with
// the greatest change order number, and derives the order's effective deposit
// and total. Draft, signed and cancelled revisions never affect the result.
func Resolve(order *models.SalesOrder, changeOrders []models.ChangeOrder) EffectiveValues {
	var live *models.ChangeOrder
	var superseded []uuid.UUID

	for i := range changeOrders {
		co := &changeOrders[i]
		if co.Status != enums.ChangeOrderStatusPendingSignature {
			continue
		}
		if live == nil {
			live = co
			continue
		}
		if co.ChangeOrderNumber > live.ChangeOrderNumber {
			superseded = append(superseded, live.ID)
			live = co
		} else {
			superseded = append(superseded, co.ID)
		}
	}

	if live == nil {
		return EffectiveValues{
			Source:     ValueSourceOrder,
			Deposit:    order.DepositRequired,
			OrderTotal: order.SubtotalBeforeTax.Add(order.ExtraAmount),
		}
	}

	number := live.ChangeOrderNumber
	return EffectiveValues{
		Source:                ValueSourceChangeOrder,
		Deposit:               live.NewDeposit,
		OrderTotal:            live.NewSubtotal.Add(live.NewExtraAmount),
		LiveChangeOrderID:     &live.ID,
		LiveChangeOrderNumber: &number,
		Superseded:            superseded,
	}
}
