package balance

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/avifonte/ledgerdesk-backend/internal/changeorders"
	"github.com/avifonte/ledgerdesk-backend/internal/orders"
	"github.com/avifonte/ledgerdesk-backend/pkg/db/models"
	pkgerrors "github.com/avifonte/ledgerdesk-backend/pkg/errors"
)

// EntryLister is the slice of the ledger repository the calculator needs.
type EntryLister interface {
	ListByOrderID(ctx context.Context, orderID uuid.UUID) ([]models.LedgerEntry, error)
}

// Service derives authoritative order summaries on demand.
type Service interface {
	ComputeSummary(ctx context.Context, orderID uuid.UUID) (*OrderLedgerSummary, error)
}

// ServiceParams wires the balance service dependencies.
type ServiceParams struct {
	Orders       orders.Repository
	ChangeOrders changeorders.Repository
	Entries      EntryLister
	Now          func() time.Time
}

type service struct {
	orders       orders.Repository
	changeOrders changeorders.Repository
	entries      EntryLister
	now          func() time.Time
}

// NewService builds a balance service with the required dependencies.
func NewService(params ServiceParams) (Service, error) {
	if params.Orders == nil {
		return nil, fmt.Errorf("orders repository required")
	}
	if params.ChangeOrders == nil {
		return nil, fmt.Errorf("change orders repository required")
	}
	if params.Entries == nil {
		return nil, fmt.Errorf("entry lister required")
	}
	now := params.Now
	if now == nil {
		now = time.Now
	}
	return &service{
		orders:       params.Orders,
		changeOrders: params.ChangeOrders,
		entries:      params.Entries,
		now:          now,
	}, nil
}

// ComputeSummary reads the full current entry set plus the resolved effective
// deposit and derives the summary. Read-only and safe to re-invoke; callers
// re-trigger it after any entry mutation instead of patching the summary.
func (s *service) ComputeSummary(ctx context.Context, orderID uuid.UUID) (*OrderLedgerSummary, error) {
	if orderID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "order id required")
	}

	order, err := s.orders.FindByID(ctx, orderID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "fetch order")
	}
	if order == nil {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "order not found")
	}

	changeOrders, err := s.changeOrders.ListByOrderID(ctx, orderID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list change orders")
	}
	effective := changeorders.Resolve(order, changeOrders)

	entries, err := s.entries.ListByOrderID(ctx, orderID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list ledger entries")
	}

	summary := Calculate(CalculateInput{
		OrderID:         order.ID,
		OrderNumber:     order.OrderNumber,
		OriginalDeposit: order.DepositRequired,
		DepositRequired: effective.Deposit,
		DepositSource:   effective.Source,
		Entries:         entries,
		Now:             s.now(),
	})
	return &summary, nil
}
