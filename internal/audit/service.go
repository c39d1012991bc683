package audit

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/avifonte/ledgerdesk-backend/pkg/db/models"
	"github.com/avifonte/ledgerdesk-backend/pkg/enums"
)

// Service defines operations that record and read the audit trail.
type Service interface {
	WithTx(tx *gorm.DB) Service
	RecordTransition(ctx context.Context, input TransitionInput) (*models.AuditEntry, error)
	RecordOrderNote(ctx context.Context, input OrderNoteInput) (*models.AuditEntry, error)
	ListByEntryID(ctx context.Context, entryID uuid.UUID) ([]models.AuditEntry, error)
	ListByOrderID(ctx context.Context, orderID uuid.UUID) ([]models.AuditEntry, error)
}

// TransitionInput captures one lifecycle transition on a ledger entry.
type TransitionInput struct {
	EntryID        uuid.UUID
	OrderID        uuid.UUID
	Action         enums.AuditAction
	PreviousStatus *enums.EntryStatus
	NewStatus      *enums.EntryStatus
	ActorID        uuid.UUID
	ActorEmail     string
	Details        *string
}

// OrderNoteInput captures an order-level informational note, e.g. a
// recalculation, with no entry attached.
type OrderNoteInput struct {
	OrderID    uuid.UUID
	Action     enums.AuditAction
	ActorID    uuid.UUID
	ActorEmail string
	Details    *string
}

type service struct {
	repo Repository
}

// NewService wires an audit service with the provided repository.
func NewService(repo Repository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("audit repository required")
	}
	return &service{repo: repo}, nil
}

func (s *service) WithTx(tx *gorm.DB) Service {
	if tx == nil {
		return s
	}
	return &service{repo: s.repo.WithTx(tx)}
}

func (s *service) RecordTransition(ctx context.Context, input TransitionInput) (*models.AuditEntry, error) {
	if input.EntryID == uuid.Nil {
		return nil, fmt.Errorf("entry id is required")
	}
	if input.OrderID == uuid.Nil {
		return nil, fmt.Errorf("order id is required")
	}
	if input.ActorID == uuid.Nil {
		return nil, fmt.Errorf("actor id is required")
	}
	if !input.Action.IsValid() {
		return nil, fmt.Errorf("invalid audit action %q", input.Action)
	}

	entryID := input.EntryID
	entry := &models.AuditEntry{
		EntryID:        &entryID,
		OrderID:        input.OrderID,
		Action:         input.Action,
		PreviousStatus: input.PreviousStatus,
		NewStatus:      input.NewStatus,
		ActorID:        input.ActorID,
		ActorEmail:     input.ActorEmail,
		Details:        input.Details,
	}
	if err := s.repo.Create(ctx, entry); err != nil {
		return nil, err
	}
	return entry, nil
}

func (s *service) RecordOrderNote(ctx context.Context, input OrderNoteInput) (*models.AuditEntry, error) {
	if input.OrderID == uuid.Nil {
		return nil, fmt.Errorf("order id is required")
	}
	if input.ActorID == uuid.Nil {
		return nil, fmt.Errorf("actor id is required")
	}
	if !input.Action.IsValid() {
		return nil, fmt.Errorf("invalid audit action %q", input.Action)
	}

	entry := &models.AuditEntry{
		OrderID:    input.OrderID,
		Action:     input.Action,
		ActorID:    input.ActorID,
		ActorEmail: input.ActorEmail,
		Details:    input.Details,
	}
	if err := s.repo.Create(ctx, entry); err != nil {
		return nil, err
	}
	return entry, nil
}

func (s *service) ListByEntryID(ctx context.Context, entryID uuid.UUID) ([]models.AuditEntry, error) {
	if entryID == uuid.Nil {
		return nil, fmt.Errorf("entry id is required")
	}
	return s.repo.ListByEntryID(ctx, entryID)
}

func (s *service) ListByOrderID(ctx context.Context, orderID uuid.UUID) ([]models.AuditEntry, error) {
	if orderID == uuid.Nil {
		return nil, fmt.Errorf("order id is required")
	}
	return s.repo.ListByOrderID(ctx, orderID)
}
