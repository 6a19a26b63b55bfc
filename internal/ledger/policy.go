package ledger

import "fmt"

// LockedAccountPolicy decides what happens to deposits and withdrawals on a
// locked account.
type LockedAccountPolicy string

const (
	// LockedAllow keeps accepting deposits and withdrawals after a chargeback.
	LockedAllow LockedAccountPolicy = "allow"
	// LockedFreeze ignores deposits and withdrawals once an account is locked.
	LockedFreeze LockedAccountPolicy = "freeze"
)

// ChargebackPolicy decides whether a charged-back deposit can be disputed again.
type ChargebackPolicy string

const (
	// ChargebackRetire makes a charged-back deposit permanently undisputable.
	ChargebackRetire ChargebackPolicy = "retire"
	// ChargebackReopen resets the deposit so a new dispute cycle may start.
	ChargebackReopen ChargebackPolicy = "reopen"
)

// ClientMismatchPolicy decides how to treat a dispute, resolve or chargeback
// whose client differs from the client of the referenced deposit.
type ClientMismatchPolicy string

const (
	// MismatchReject ignores the record.
	MismatchReject ClientMismatchPolicy = "reject"
	// MismatchTrust applies the record to the deposit's owner.
	MismatchTrust ClientMismatchPolicy = "trust"
)

// Policy holds the business-rule choices of an Engine.
type Policy struct {
	LockedAccounts LockedAccountPolicy  `yaml:"locked_accounts"`
	Chargeback     ChargebackPolicy     `yaml:"chargeback"`
	ClientMismatch ClientMismatchPolicy `yaml:"client_mismatch"`
}

// DefaultPolicy allows activity on locked accounts, retires charged-back
// deposits and rejects client mismatches.
func DefaultPolicy() Policy {
	return Policy{
		LockedAccounts: LockedAllow,
		Chargeback:     ChargebackRetire,
		ClientMismatch: MismatchReject,
	}
}

// Validate reports the first unknown policy value.
func (p Policy) Validate() error {
	switch p.LockedAccounts {
	case LockedAllow, LockedFreeze:
	default:
		return fmt.Errorf("unknown locked_accounts policy %q", p.LockedAccounts)
	}
	switch p.Chargeback {
	case ChargebackRetire, ChargebackReopen:
	default:
		return fmt.Errorf("unknown chargeback policy %q", p.Chargeback)
	}
	switch p.ClientMismatch {
	case MismatchReject, MismatchTrust:
	default:
		return fmt.Errorf("unknown client_mismatch policy %q", p.ClientMismatch)
	}
	return nil
}
