package model

import "github.com/transakt-dev/transakt/internal/money"

// Account is the balance state of one client.
//
// Total is derived from Available and Held and never stored, so
// total == available + held holds by construction.
type Account struct {
	Client    ClientID
	Available money.Money
	Held      money.Money
	Locked    bool
}

// NewAccount returns an unlocked account with zero balances.
func NewAccount(client ClientID) *Account {
	return &Account{Client: client}
}

// Total returns Available + Held.
func (a Account) Total() (money.Money, error) {
	return a.Available.Add(a.Held)
}

// HistoryEntry is a recorded deposit or withdrawal and its dispute state.
type HistoryEntry struct {
	Transaction Transaction
	Disputed    bool
	ChargedBack bool // retired; see ledger.ChargebackPolicy
}
