// Package history keeps applied deposits and withdrawals so later disputes,
// resolves and chargebacks can find the amount they refer to.
package history

import (
	"errors"
	"fmt"

	"github.com/transakt-dev/transakt/internal/model"
)

var (
	// ErrDuplicate is returned when a tx id is recorded twice.
	ErrDuplicate = errors.New("duplicate transaction id")
	// ErrNotRecordable is returned for kinds that are not stored in history.
	ErrNotRecordable = errors.New("only deposits and withdrawals are recorded")
	// ErrUnknown is returned when marking an id that was never recorded.
	ErrUnknown = errors.New("unknown transaction id")
)

// Store maps tx ids to history entries. It is not safe for concurrent use.
type Store struct {
	entries map[model.TxID]*model.HistoryEntry
}

// NewStore creates an empty Store.
func NewStore() *Store {
	return &Store{entries: make(map[model.TxID]*model.HistoryEntry)}
}

// Record stores a deposit or withdrawal under its tx id.
func (s *Store) Record(tx model.Transaction) error {
	if !tx.Kind.CarriesAmount() {
		return fmt.Errorf("%w: got %s", ErrNotRecordable, tx.Kind)
	}
	if _, ok := s.entries[tx.Tx]; ok {
		return fmt.Errorf("%w: %d", ErrDuplicate, tx.Tx)
	}
	s.entries[tx.Tx] = &model.HistoryEntry{Transaction: tx}
	return nil
}

// Contains reports whether id has been recorded.
func (s *Store) Contains(id model.TxID) bool {
	_, ok := s.entries[id]
	return ok
}

// Lookup returns a copy of the entry for id.
func (s *Store) Lookup(id model.TxID) (model.HistoryEntry, bool) {
	e, ok := s.entries[id]
	if !ok {
		return model.HistoryEntry{}, false
	}
	return *e, true
}

// MarkDisputed flags the entry as under dispute.
func (s *Store) MarkDisputed(id model.TxID) error {
	e, err := s.get(id)
	if err != nil {
		return err
	}
	e.Disputed = true
	return nil
}

// MarkResolved clears the dispute flag.
func (s *Store) MarkResolved(id model.TxID) error {
	e, err := s.get(id)
	if err != nil {
		return err
	}
	e.Disputed = false
	return nil
}

// MarkChargedBack clears the dispute flag. When retire is true the entry can
// never be disputed again.
func (s *Store) MarkChargedBack(id model.TxID, retire bool) error {
	e, err := s.get(id)
	if err != nil {
		return err
	}
	e.Disputed = false
	e.ChargedBack = retire
	return nil
}

// Len returns the number of recorded entries.
func (s *Store) Len() int {
	return len(s.entries)
}

func (s *Store) get(id model.TxID) (*model.HistoryEntry, error) {
	e, ok := s.entries[id]
	if !ok {
		return nil, fmt.Errorf("%w: %d", ErrUnknown, id)
	}
	return e, nil
}
