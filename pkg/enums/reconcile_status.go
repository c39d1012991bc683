package enums

// ReconcileStatus classifies one reconciliation comparison row.
type ReconcileStatus string

const (
	ReconcileStatusMatched  ReconcileStatus = "matched"
	ReconcileStatusMismatch ReconcileStatus = "mismatch"
	// ReconcileStatusMissingStripe marks a ledger entry with no resolvable
	// processor record.
	ReconcileStatusMissingStripe ReconcileStatus = "missing_stripe"
	// ReconcileStatusMissingLedger marks a processor record never recorded
	// in the ledger.
	ReconcileStatusMissingLedger ReconcileStatus = "missing_ledger"
)

// String implements fmt.Stringer.
func (s ReconcileStatus) String() string {
	return string(s)
}
