package accounts

import (
	"cmp"
	"slices"

	"github.com/transakt-dev/transakt/internal/model"
)

// Store provides in-memory client accounts, created on first reference.
type Store struct {
	byClient map[model.ClientID]*model.Account
}

// NewStore creates an empty Store.
func NewStore() *Store {
	return &Store{byClient: make(map[model.ClientID]*model.Account)}
}

// GetOrCreate returns the account for client, creating a zero account if needed.
// It is the only way accounts come into existence.
func (s *Store) GetOrCreate(client model.ClientID) *model.Account {
	if a, ok := s.byClient[client]; ok {
		return a
	}
	a := model.NewAccount(client)
	s.byClient[client] = a
	return a
}

// Get returns a copy of the account for client.
func (s *Store) Get(client model.ClientID) (model.Account, bool) {
	a, ok := s.byClient[client]
	if !ok {
		return model.Account{}, false
	}
	return *a, true
}

// Exists reports whether an account exists for client.
func (s *Store) Exists(client model.ClientID) bool {
	_, ok := s.byClient[client]
	return ok
}

// Len returns the number of accounts.
func (s *Store) Len() int {
	return len(s.byClient)
}

// All returns copies of every account, sorted by client id.
func (s *Store) All() []model.Account {
	result := make([]model.Account, 0, len(s.byClient))
	for _, a := range s.byClient {
		result = append(result, *a)
	}
	slices.SortFunc(result, func(a, b model.Account) int {
		return cmp.Compare(a.Client, b.Client)
	})
	return result
}
