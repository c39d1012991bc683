package ledger

import (
	"crypto/subtle"
	"strings"

	"github.com/google/uuid"

	"github.com/avifonte/ledgerdesk-backend/pkg/config"
	"github.com/avifonte/ledgerdesk-backend/pkg/enums"
)

// Actor identifies who performs a lifecycle operation. ApprovalCode is only
// consulted when the role is not elevated.
type Actor struct {
	ID           uuid.UUID
	Email        string
	Role         enums.ActorRole
	ApprovalCode string
}

// ApprovalPolicy decides whether an actor may approve ledger entries.
// Elevated roles bypass the shared code; everyone else must present it.
type ApprovalPolicy struct {
	code string
}

// NewApprovalPolicy builds the policy from configuration.
func NewApprovalPolicy(cfg config.ApprovalConfig) ApprovalPolicy {
	return ApprovalPolicy{code: strings.TrimSpace(cfg.Code)}
}

// CanApprove reports whether the actor satisfies the approval precondition.
func (p ApprovalPolicy) CanApprove(actor Actor) bool {
	if actor.Role.IsElevated() {
		return true
	}
	if p.code == "" {
		return false
	}
	supplied := strings.TrimSpace(actor.ApprovalCode)
	return subtle.ConstantTimeCompare([]byte(supplied), []byte(p.code)) == 1
}
