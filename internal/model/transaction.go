package model

import (
	"fmt"
	"strings"

	"github.com/transakt-dev/transakt/internal/money"
)

// Kind identifies the type of a transaction record.
type Kind string

const (
	KindDeposit    Kind = "deposit"
	KindWithdraw   Kind = "withdraw"
	KindDispute    Kind = "dispute"
	KindResolve    Kind = "resolve"
	KindChargeback Kind = "chargeback"
)

// ParseKind parses a kind case-insensitively, ignoring surrounding whitespace.
func ParseKind(s string) (Kind, error) {
	k := Kind(strings.ToLower(strings.TrimSpace(s)))
	switch k {
	case KindDeposit, KindWithdraw, KindDispute, KindResolve, KindChargeback:
		return k, nil
	}
	return "", fmt.Errorf("unknown transaction type %q", s)
}

// CarriesAmount reports whether records of this kind have their own amount.
// Dispute, resolve and chargeback only reference an earlier record.
func (k Kind) CarriesAmount() bool {
	return k == KindDeposit || k == KindWithdraw
}

// ClientID identifies a client account.
type ClientID uint32

// TxID identifies a deposit or withdrawal.
type TxID uint32

// Transaction is one row of the input history.
type Transaction struct {
	Kind   Kind
	Client ClientID
	Tx     TxID
	Amount money.Money // zero unless Kind.CarriesAmount()
}

func (t Transaction) String() string {
	if t.Kind.CarriesAmount() {
		return fmt.Sprintf("%s client=%d tx=%d amount=%s", t.Kind, t.Client, t.Tx, t.Amount)
	}
	return fmt.Sprintf("%s client=%d tx=%d", t.Kind, t.Client, t.Tx)
}
