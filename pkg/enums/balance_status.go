package enums

// BalanceStatus is derived from the sign of an order's balance.
type BalanceStatus string

const (
	BalanceStatusPaid      BalanceStatus = "paid"
	BalanceStatusUnderpaid BalanceStatus = "underpaid"
	BalanceStatusOverpaid  BalanceStatus = "overpaid"
	// BalanceStatusPending means the order has no deposit requirement
	// recorded and no cleared funds yet.
	BalanceStatusPending BalanceStatus = "pending"
)

// String implements fmt.Stringer.
func (s BalanceStatus) String() string {
	return string(s)
}
