package ledger

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/avifonte/ledgerdesk-backend/internal/audit"
	"github.com/avifonte/ledgerdesk-backend/internal/balance"
	"github.com/avifonte/ledgerdesk-backend/internal/orders"
	"github.com/avifonte/ledgerdesk-backend/pkg/db/models"
	"github.com/avifonte/ledgerdesk-backend/pkg/enums"
	pkgerrors "github.com/avifonte/ledgerdesk-backend/pkg/errors"
	"github.com/avifonte/ledgerdesk-backend/pkg/pagination"
)

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

// Service owns the ledger entry lifecycle: creation, approval, voiding and
// administrative recalculation. Every successful mutation appends to the
// audit trail and re-derives the order summary.
type Service interface {
	CreateEntry(ctx context.Context, input CreateEntryInput) (*models.LedgerEntry, error)
	ApproveEntry(ctx context.Context, input ApproveEntryInput) (*models.LedgerEntry, error)
	VoidEntry(ctx context.Context, input VoidEntryInput) (*models.LedgerEntry, error)
	Recalculate(ctx context.Context, orderID uuid.UUID, actor Actor) (*balance.OrderLedgerSummary, error)
	ListEntries(ctx context.Context, input ListEntriesInput) (*ListEntriesResult, error)
}

// ServiceParams wires the ledger service dependencies.
type ServiceParams struct {
	Repo    Repository
	Orders  orders.Repository
	Audit   audit.Service
	Balance balance.Service
	Tx      txRunner
	Policy  ApprovalPolicy
	Now     func() time.Time
}

type service struct {
	repo    Repository
	orders  orders.Repository
	audit   audit.Service
	balance balance.Service
	tx      txRunner
	policy  ApprovalPolicy
	now     func() time.Time
}

// NewService builds a ledger service with the required dependencies.
func NewService(params ServiceParams) (Service, error) {
	if params.Repo == nil {
		return nil, fmt.Errorf("ledger repository required")
	}
	if params.Orders == nil {
		return nil, fmt.Errorf("orders repository required")
	}
	if params.Audit == nil {
		return nil, fmt.Errorf("audit service required")
	}
	if params.Balance == nil {
		return nil, fmt.Errorf("balance service required")
	}
	if params.Tx == nil {
		return nil, fmt.Errorf("transaction runner required")
	}
	now := params.Now
	if now == nil {
		now = time.Now
	}
	return &service{
		repo:    params.Repo,
		orders:  params.Orders,
		audit:   params.Audit,
		balance: params.Balance,
		tx:      params.Tx,
		policy:  params.Policy,
		now:     now,
	}, nil
}

func (s *service) CreateEntry(ctx context.Context, input CreateEntryInput) (*models.LedgerEntry, error) {
	if input.OrderID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "order id required")
	}
	if input.Actor.ID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "actor identity missing")
	}
	if !input.Type.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("invalid transaction type %q", input.Type))
	}
	if !input.Category.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("invalid entry category %q", input.Category))
	}
	if !input.Method.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("invalid payment method %q", input.Method))
	}
	if !input.Amount.IsPositive() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "amount must be positive")
	}

	order, err := s.orders.FindByID(ctx, input.OrderID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "fetch order")
	}
	if order == nil {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "order not found")
	}

	entry := &models.LedgerEntry{
		OrderID:           order.ID,
		OrderNumber:       order.OrderNumber,
		Type:              input.Type,
		Category:          input.Category,
		Amount:            input.Amount,
		Method:            input.Method,
		Status:            initialStatus(input),
		ExternalPaymentID: input.ExternalPaymentID,
		ProofFileURL:      input.ProofFileURL,
		Notes:             input.Notes,
		CreatedBy:         input.Actor.ID,
	}
	if entry.Status == enums.EntryStatusApproved {
		actorID := input.Actor.ID
		at := s.now()
		entry.ApprovedBy = &actorID
		entry.ApprovedAt = &at
	}

	newStatus := entry.Status
	if err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		if err := s.repo.WithTx(tx).Create(ctx, entry); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create ledger entry")
		}
		_, err := s.audit.WithTx(tx).RecordTransition(ctx, audit.TransitionInput{
			EntryID:    entry.ID,
			OrderID:    entry.OrderID,
			Action:     enums.AuditActionCreated,
			NewStatus:  &newStatus,
			ActorID:    input.Actor.ID,
			ActorEmail: input.Actor.Email,
		})
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "record audit entry")
		}
		return nil
	}); err != nil {
		return nil, err
	}

	if _, err := s.balance.ComputeSummary(ctx, entry.OrderID); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "recompute summary after create")
	}
	return entry, nil
}

// initialStatus applies the creation rules: processor-settled stripe entries
// are born verified, manager-entered entries are born approved, everything
// else starts pending.
func initialStatus(input CreateEntryInput) enums.EntryStatus {
	if input.Method == enums.PaymentMethodStripe && input.ProcessorConfirmed {
		return enums.EntryStatusVerified
	}
	if input.Actor.Role.IsElevated() {
		return enums.EntryStatusApproved
	}
	return enums.EntryStatusPending
}

func (s *service) ApproveEntry(ctx context.Context, input ApproveEntryInput) (*models.LedgerEntry, error) {
	if input.EntryID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "entry id required")
	}
	if input.Actor.ID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "actor identity missing")
	}

	entry, err := s.repo.FindByID(ctx, input.EntryID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "fetch ledger entry")
	}
	if entry == nil {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "ledger entry not found")
	}
	if entry.Status != enums.EntryStatusPending {
		return nil, pkgerrors.New(pkgerrors.CodeStateConflict,
			fmt.Sprintf("cannot approve entry in status %q", entry.Status)).
			WithDetails(map[string]any{"status": entry.Status})
	}

	if !s.policy.CanApprove(input.Actor) {
		return nil, pkgerrors.New(pkgerrors.CodePrecondition, "approval code invalid")
	}

	method := entry.Method
	if input.Method != nil {
		if !input.Method.IsValid() {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("invalid payment method %q", *input.Method))
		}
		method = *input.Method
	}

	proof := entry.ProofFileURL
	if input.ProofFileURL != nil && strings.TrimSpace(*input.ProofFileURL) != "" {
		proof = input.ProofFileURL
	}
	if method.RequiresProof() && proof == nil {
		return nil, pkgerrors.New(pkgerrors.CodePrecondition,
			fmt.Sprintf("%s entries require a proof document before approval", method))
	}

	notes := entry.Notes
	if input.Notes != nil && strings.TrimSpace(*input.Notes) != "" {
		notes = input.Notes
	}
	if method.RequiresNotes() && (notes == nil || strings.TrimSpace(*notes) == "") {
		return nil, pkgerrors.New(pkgerrors.CodePrecondition, "entries with method other require notes")
	}

	approvedAt := s.now()
	updates := map[string]any{
		"status":      enums.EntryStatusApproved,
		"method":      method,
		"approved_by": input.Actor.ID,
		"approved_at": approvedAt,
	}
	if proof != nil {
		updates["proof_file_url"] = *proof
	}
	if notes != nil {
		updates["notes"] = *notes
	}

	previous := entry.Status
	approved := enums.EntryStatusApproved
	if err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		// Re-check under the transaction: a concurrent approval must fail
		// loudly rather than double-process.
		ok, err := s.repo.WithTx(tx).TransitionFrom(ctx, entry.ID, enums.EntryStatusPending, updates)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "transition ledger entry")
		}
		if !ok {
			return pkgerrors.New(pkgerrors.CodeStateConflict, "entry already left pending")
		}
		_, err = s.audit.WithTx(tx).RecordTransition(ctx, audit.TransitionInput{
			EntryID:        entry.ID,
			OrderID:        entry.OrderID,
			Action:         enums.AuditActionApproved,
			PreviousStatus: &previous,
			NewStatus:      &approved,
			ActorID:        input.Actor.ID,
			ActorEmail:     input.Actor.Email,
		})
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "record audit entry")
		}
		return nil
	}); err != nil {
		return nil, err
	}

	entry.Status = enums.EntryStatusApproved
	entry.Method = method
	entry.ProofFileURL = proof
	entry.Notes = notes
	actorID := input.Actor.ID
	entry.ApprovedBy = &actorID
	entry.ApprovedAt = &approvedAt

	if _, err := s.balance.ComputeSummary(ctx, entry.OrderID); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "recompute summary after approve")
	}
	return entry, nil
}

func (s *service) VoidEntry(ctx context.Context, input VoidEntryInput) (*models.LedgerEntry, error) {
	if input.EntryID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "entry id required")
	}
	if input.Actor.ID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "actor identity missing")
	}
	reason := strings.TrimSpace(input.Reason)
	if reason == "" {
		return nil, pkgerrors.New(pkgerrors.CodePrecondition, "void reason required")
	}

	entry, err := s.repo.FindByID(ctx, input.EntryID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "fetch ledger entry")
	}
	if entry == nil {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "ledger entry not found")
	}
	if entry.Status == enums.EntryStatusVoided {
		return nil, pkgerrors.New(pkgerrors.CodeStateConflict, "entry already voided")
	}

	previous := entry.Status
	voided := enums.EntryStatusVoided
	details := reason
	if err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		ok, err := s.repo.WithTx(tx).TransitionNotVoided(ctx, entry.ID, map[string]any{
			"status":      enums.EntryStatusVoided,
			"void_reason": reason,
		})
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "transition ledger entry")
		}
		if !ok {
			return pkgerrors.New(pkgerrors.CodeStateConflict, "entry already voided")
		}
		_, err = s.audit.WithTx(tx).RecordTransition(ctx, audit.TransitionInput{
			EntryID:        entry.ID,
			OrderID:        entry.OrderID,
			Action:         enums.AuditActionVoided,
			PreviousStatus: &previous,
			NewStatus:      &voided,
			ActorID:        input.Actor.ID,
			ActorEmail:     input.Actor.Email,
			Details:        &details,
		})
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "record audit entry")
		}
		return nil
	}); err != nil {
		return nil, err
	}

	entry.Status = enums.EntryStatusVoided
	entry.VoidReason = &reason

	if _, err := s.balance.ComputeSummary(ctx, entry.OrderID); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "recompute summary after void")
	}
	return entry, nil
}

// Recalculate re-derives the order summary from current entries. Read-only on
// the ledger; it records an order-level audit note rather than per-entry rows.
func (s *service) Recalculate(ctx context.Context, orderID uuid.UUID, actor Actor) (*balance.OrderLedgerSummary, error) {
	if actor.ID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "actor identity missing")
	}

	summary, err := s.balance.ComputeSummary(ctx, orderID)
	if err != nil {
		return nil, err
	}

	details := fmt.Sprintf("balance recalculated: %s (%s)", summary.Balance.StringFixed(2), summary.BalanceStatus)
	if _, err := s.audit.RecordOrderNote(ctx, audit.OrderNoteInput{
		OrderID:    orderID,
		Action:     enums.AuditActionRecalculated,
		ActorID:    actor.ID,
		ActorEmail: actor.Email,
		Details:    &details,
	}); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "record recalculation note")
	}
	return summary, nil
}

func (s *service) ListEntries(ctx context.Context, input ListEntriesInput) (*ListEntriesResult, error) {
	if input.OrderID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "order id required")
	}

	order, err := s.orders.FindByID(ctx, input.OrderID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "fetch order")
	}
	if order == nil {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "order not found")
	}

	entries, total, err := s.repo.ListPage(ctx, input.OrderID, input.Filters, input.Page)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list ledger entries")
	}
	return &ListEntriesResult{
		Entries: entries,
		Total:   total,
		HasMore: pagination.HasMore(total, pagination.Normalize(input.Page)),
	}, nil
}
