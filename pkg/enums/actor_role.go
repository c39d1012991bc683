package enums

import "fmt"

// ActorRole is the role of the person performing a ledger operation.
type ActorRole string

const (
	ActorRoleStaff   ActorRole = "staff"
	ActorRoleManager ActorRole = "manager"
	ActorRoleAdmin   ActorRole = "admin"
)

var validActorRoles = []ActorRole{
	ActorRoleStaff,
	ActorRoleManager,
	ActorRoleAdmin,
}

// IsValid reports whether the value is known.
func (r ActorRole) IsValid() bool {
	for _, candidate := range validActorRoles {
		if candidate == r {
			return true
		}
	}
	return false
}

// IsElevated reports whether the role bypasses the approval code requirement.
func (r ActorRole) IsElevated() bool {
	return r == ActorRoleManager || r == ActorRoleAdmin
}

// ParseActorRole converts raw input into an ActorRole.
func ParseActorRole(value string) (ActorRole, error) {
	for _, candidate := range validActorRoles {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid actor role %q", value)
}
