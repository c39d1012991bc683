package enums

import "fmt"

// EntryStatus is the lifecycle state of a ledger entry.
type EntryStatus string

const (
	EntryStatusPending EntryStatus = "pending"
	// EntryStatusVerified means the payment channel confirmed the entry
	// automatically, e.g. a processor webhook.
	EntryStatusVerified EntryStatus = "verified"
	// EntryStatusApproved means a reviewer confirmed the entry manually.
	EntryStatusApproved EntryStatus = "approved"
	EntryStatusVoided   EntryStatus = "voided"
)

var validEntryStatuses = []EntryStatus{
	EntryStatusPending,
	EntryStatusVerified,
	EntryStatusApproved,
	EntryStatusVoided,
}

// String implements fmt.Stringer.
func (s EntryStatus) String() string {
	return string(s)
}

// IsValid reports whether the value is known.
func (s EntryStatus) IsValid() bool {
	for _, candidate := range validEntryStatuses {
		if candidate == s {
			return true
		}
	}
	return false
}

// IsCleared reports whether the entry counts toward the balance.
func (s EntryStatus) IsCleared() bool {
	return s == EntryStatusVerified || s == EntryStatusApproved
}

// IsTerminal reports whether no further transition besides voiding is possible.
func (s EntryStatus) IsTerminal() bool {
	return s == EntryStatusVoided
}

// ParseEntryStatus converts raw input into an EntryStatus.
func ParseEntryStatus(value string) (EntryStatus, error) {
	for _, candidate := range validEntryStatuses {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid entry status %q", value)
}
