package enums

import "fmt"

// EntryCategory classifies a ledger entry for display. Informational only;
// never consulted by balance math.
type EntryCategory string

const (
	EntryCategoryInitialDeposit    EntryCategory = "initial_deposit"
	EntryCategoryAdditionalPayment EntryCategory = "additional_payment"
	EntryCategoryRefund            EntryCategory = "refund"
	EntryCategoryAdjustment        EntryCategory = "adjustment"
)

var validEntryCategories = []EntryCategory{
	EntryCategoryInitialDeposit,
	EntryCategoryAdditionalPayment,
	EntryCategoryRefund,
	EntryCategoryAdjustment,
}

// IsValid reports whether the value is known.
func (c EntryCategory) IsValid() bool {
	for _, candidate := range validEntryCategories {
		if candidate == c {
			return true
		}
	}
	return false
}

// ParseEntryCategory converts raw input into an EntryCategory.
func ParseEntryCategory(value string) (EntryCategory, error) {
	for _, candidate := range validEntryCategories {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid entry category %q", value)
}
