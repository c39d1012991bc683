package enums

import "fmt"

// AuditAction names a ledger entry lifecycle transition.
type AuditAction string

const (
	AuditActionCreated      AuditAction = "created"
	AuditActionApproved     AuditAction = "approved"
	AuditActionVoided       AuditAction = "voided"
	AuditActionRecalculated AuditAction = "recalculated"
)

var validAuditActions = []AuditAction{
	AuditActionCreated,
	AuditActionApproved,
	AuditActionVoided,
	AuditActionRecalculated,
}

// IsValid reports whether the value is known.
func (a AuditAction) IsValid() bool {
	for _, candidate := range validAuditActions {
		if candidate == a {
			return true
		}
	}
	return false
}

// ParseAuditAction converts raw input into an AuditAction.
func ParseAuditAction(value string) (AuditAction, error) {
	for _, candidate := range validAuditActions {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid audit action %q", value)
}
