package ledger

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/avifonte/ledgerdesk-backend/pkg/db/models"
	"github.com/avifonte/ledgerdesk-backend/pkg/enums"
	"github.com/avifonte/ledgerdesk-backend/pkg/pagination"
)

// CreateEntryInput captures the immutable data a new ledger entry requires.
type CreateEntryInput struct {
	OrderID  uuid.UUID
	Type     enums.TransactionType
	Category enums.EntryCategory
	Amount   decimal.Decimal
	Method   enums.PaymentMethod

	// ExternalPaymentID is set for processor-originated entries.
	ExternalPaymentID *string
	// ProcessorConfirmed marks a stripe entry the processor already settled;
	// such entries are born verified.
	ProcessorConfirmed bool

	ProofFileURL *string
	Notes        *string

	Actor Actor
}

// ApproveEntryInput carries the approval-time confirmations. Method may be
// (re)confirmed at approval; proof and notes may be supplied in the same call.
type ApproveEntryInput struct {
	EntryID      uuid.UUID
	Actor        Actor
	Method       *enums.PaymentMethod
	ProofFileURL *string
	Notes        *string
}

// VoidEntryInput marks an entry void. Irreversible.
type VoidEntryInput struct {
	EntryID uuid.UUID
	Actor   Actor
	Reason  string
}

// ListEntriesInput pages through one order's entries.
type ListEntriesInput struct {
	OrderID uuid.UUID
	Filters ListFilters
	Page    pagination.Params
}

// ListEntriesResult is one page of entries plus paging metadata.
type ListEntriesResult struct {
	Entries []models.LedgerEntry `json:"entries"`
	Total   int64                `json:"total"`
	HasMore bool                 `json:"has_more"`
}
