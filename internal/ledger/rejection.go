package ledger

import (
	"fmt"

	"github.com/transakt-dev/transakt/internal/model"
)

// Reason explains why a record was ignored.
type Reason string

const (
	ReasonInvalidAmount     Reason = "invalid_amount"
	ReasonInsufficientFunds Reason = "insufficient_funds"
	ReasonDuplicateTx       Reason = "duplicate_tx"
	ReasonAccountLocked     Reason = "account_locked"
	ReasonUnknownTx         Reason = "unknown_tx"
	ReasonClientMismatch    Reason = "client_mismatch"
	ReasonNotDisputable     Reason = "not_disputable"
	ReasonAlreadyDisputed   Reason = "already_disputed"
	ReasonNotDisputed       Reason = "not_disputed"
	ReasonChargedBack       Reason = "charged_back"
)

// Rejection is a business-rule violation. The record is ignored and the
// replay continues; Engine.Process never returns a Rejection.
type Rejection struct {
	Transaction model.Transaction
	Reason      Reason
}

func (r Rejection) Error() string {
	return fmt.Sprintf("%s ignored: %s", r.Transaction, r.Reason)
}

func reject(tx model.Transaction, reason Reason) error {
	return Rejection{Transaction: tx, Reason: reason}
}
