package enums

import "fmt"

// PaymentMethod is the channel a ledger entry arrived through.
type PaymentMethod string

const (
	PaymentMethodStripe       PaymentMethod = "stripe"
	PaymentMethodCheck        PaymentMethod = "check"
	PaymentMethodCash         PaymentMethod = "cash"
	PaymentMethodWire         PaymentMethod = "wire"
	PaymentMethodCreditOnFile PaymentMethod = "credit_on_file"
	PaymentMethodOther        PaymentMethod = "other"
)

var validPaymentMethods = []PaymentMethod{
	PaymentMethodStripe,
	PaymentMethodCheck,
	PaymentMethodCash,
	PaymentMethodWire,
	PaymentMethodCreditOnFile,
	PaymentMethodOther,
}

// IsValid reports whether the value is known.
func (m PaymentMethod) IsValid() bool {
	for _, candidate := range validPaymentMethods {
		if candidate == m {
			return true
		}
	}
	return false
}

// RequiresProof reports whether the method needs a proof document before approval.
func (m PaymentMethod) RequiresProof() bool {
	return m == PaymentMethodCheck || m == PaymentMethodWire
}

// RequiresNotes reports whether the method needs explanatory notes before approval.
func (m PaymentMethod) RequiresNotes() bool {
	return m == PaymentMethodOther
}

// ParsePaymentMethod converts raw input into a PaymentMethod.
func ParsePaymentMethod(value string) (PaymentMethod, error) {
	for _, candidate := range validPaymentMethods {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid payment method %q", value)
}
