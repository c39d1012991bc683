package ledger

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/avifonte/ledgerdesk-backend/api/middleware"
	internalledger "github.com/avifonte/ledgerdesk-backend/internal/ledger"
	"github.com/avifonte/ledgerdesk-backend/pkg/enums"
	pkgerrors "github.com/avifonte/ledgerdesk-backend/pkg/errors"
)

type createEntryRequest struct {
	Type               string          `json:"type" validate:"required"`
	Category           string          `json:"category" validate:"required"`
	Amount             decimal.Decimal `json:"amount" validate:"required"`
	Method             string          `json:"method" validate:"required"`
	ExternalPaymentID  *string         `json:"external_payment_id,omitempty"`
	ProcessorConfirmed bool            `json:"processor_confirmed,omitempty"`
	ProofFileURL       *string         `json:"proof_file_url,omitempty" validate:"omitempty,url"`
	Notes              *string         `json:"notes,omitempty" validate:"omitempty,max=2000"`
}

type approveEntryRequest struct {
	ApprovalCode string  `json:"approval_code,omitempty"`
	Method       *string `json:"method,omitempty"`
	ProofFileURL *string `json:"proof_file_url,omitempty" validate:"omitempty,url"`
	Notes        *string `json:"notes,omitempty" validate:"omitempty,max=2000"`
}

type voidEntryRequest struct {
	Reason string `json:"reason" validate:"required,max=2000"`
}

// actorFromRequest rebuilds the acting identity the gateway middleware
// attached to the request context.
func actorFromRequest(r *http.Request) (internalledger.Actor, error) {
	ctx := r.Context()

	rawID := middleware.ActorIDFromContext(ctx)
	actorID, err := uuid.Parse(rawID)
	if err != nil {
		return internalledger.Actor{}, pkgerrors.New(pkgerrors.CodeUnauthorized, "actor identity missing")
	}

	role, err := enums.ParseActorRole(middleware.ActorRoleFromContext(ctx))
	if err != nil {
		return internalledger.Actor{}, pkgerrors.New(pkgerrors.CodeForbidden, "unknown actor role")
	}

	return internalledger.Actor{
		ID:    actorID,
		Email: middleware.ActorEmailFromContext(ctx),
		Role:  role,
	}, nil
}
