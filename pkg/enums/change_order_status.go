package enums

import "fmt"

// ChangeOrderStatus maps to the change_order_status_enum enum in Postgres.
type ChangeOrderStatus string

const (
	ChangeOrderStatusDraft            ChangeOrderStatus = "draft"
	ChangeOrderStatusPendingSignature ChangeOrderStatus = "pending_signature"
	ChangeOrderStatusSigned           ChangeOrderStatus = "signed"
	ChangeOrderStatusCancelled        ChangeOrderStatus = "cancelled"
	ChangeOrderStatusSuperseded       ChangeOrderStatus = "superseded"
)

var validChangeOrderStatuses = []ChangeOrderStatus{
	ChangeOrderStatusDraft,
	ChangeOrderStatusPendingSignature,
	ChangeOrderStatusSigned,
	ChangeOrderStatusCancelled,
	ChangeOrderStatusSuperseded,
}

// IsValid reports whether the value is known.
func (s ChangeOrderStatus) IsValid() bool {
	for _, candidate := range validChangeOrderStatuses {
		if candidate == s {
			return true
		}
	}
	return false
}

// ParseChangeOrderStatus converts raw input into a ChangeOrderStatus.
func ParseChangeOrderStatus(value string) (ChangeOrderStatus, error) {
	for _, candidate := range validChangeOrderStatuses {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid change order status %q", value)
}
