// Package ledger replays transaction records against client accounts.
//
// Records are applied strictly in order. Deposits and withdrawals change the
// available balance and are kept in history; disputes, resolves and
// chargebacks look up the referenced deposit and move its amount between
// available and held, or remove it entirely on chargeback.
//
// Records that break a business rule, such as a withdrawal without funds or a
// dispute of an unknown id, are ignored. Only arithmetic overflow aborts a
// replay.
package ledger

import (
	"errors"
	"fmt"
	"iter"

	"go.uber.org/zap"

	"github.com/transakt-dev/transakt/internal/accounts"
	"github.com/transakt-dev/transakt/internal/history"
	"github.com/transakt-dev/transakt/internal/model"
)

// Stats counts the records seen by an Engine.
type Stats struct {
	Processed int
	Applied   int
	Ignored   int
}

// Engine owns the account and history stores for one replay. It is not safe
// for concurrent use.
type Engine struct {
	accounts *accounts.Store
	history  *history.Store
	policy   Policy
	logger   *zap.Logger
	onReject func(Rejection)
	stats    Stats
}

// Option configures an Engine.
type Option func(*Engine)

// WithPolicy sets the business-rule policy. The default is DefaultPolicy().
func WithPolicy(p Policy) Option {
	return func(e *Engine) { e.policy = p }
}

// WithLogger sets the logger used for ignored records.
func WithLogger(l *zap.Logger) Option {
	return func(e *Engine) { e.logger = l }
}

// WithRejectHandler registers fn to be called for every ignored record.
func WithRejectHandler(fn func(Rejection)) Option {
	return func(e *Engine) { e.onReject = fn }
}

// NewEngine creates an Engine with empty stores.
func NewEngine(opts ...Option) (*Engine, error) {
	e := &Engine{
		accounts: accounts.NewStore(),
		history:  history.NewStore(),
		policy:   DefaultPolicy(),
		logger:   zap.NewNop(),
	}
	for _, opt := range opts {
		opt(e)
	}
	if err := e.policy.Validate(); err != nil {
		return nil, fmt.Errorf("invalid policy: %w", err)
	}
	return e, nil
}

// Run processes every record of txs in order. It stops at the first error
// yielded by txs or returned by Process.
func (e *Engine) Run(txs iter.Seq2[model.Transaction, error]) error {
	for tx, err := range txs {
		if err != nil {
			return err
		}
		if err := e.Process(tx); err != nil {
			return err
		}
	}
	return nil
}

// Process applies a single record. Business-rule violations are logged,
// reported to the reject handler and swallowed; any returned error is fatal.
func (e *Engine) Process(tx model.Transaction) error {
	e.stats.Processed++

	err := e.apply(tx)
	var rej Rejection
	if errors.As(err, &rej) {
		e.stats.Ignored++
		e.logger.Debug("transaction ignored",
			zap.String("kind", string(tx.Kind)),
			zap.Uint32("client", uint32(tx.Client)),
			zap.Uint32("tx", uint32(tx.Tx)),
			zap.String("reason", string(rej.Reason)),
		)
		if e.onReject != nil {
			e.onReject(rej)
		}
		return nil
	}
	if err != nil {
		return fmt.Errorf("applying %s: %w", tx, err)
	}

	e.stats.Applied++
	return nil
}

// Accounts returns a snapshot of every account, sorted by client id.
func (e *Engine) Accounts() []model.Account {
	return e.accounts.All()
}

// Account returns a snapshot of one account.
func (e *Engine) Account(client model.ClientID) (model.Account, bool) {
	return e.accounts.Get(client)
}

// Entry returns the history entry of a deposit or withdrawal.
func (e *Engine) Entry(id model.TxID) (model.HistoryEntry, bool) {
	return e.history.Lookup(id)
}

// Stats returns the record counters.
func (e *Engine) Stats() Stats {
	return e.stats
}

func (e *Engine) apply(tx model.Transaction) error {
	// Every record references a client, so the account exists afterwards
	// even when the record itself is ignored.
	acct := e.accounts.GetOrCreate(tx.Client)

	switch tx.Kind {
	case model.KindDeposit:
		return e.deposit(acct, tx)
	case model.KindWithdraw:
		return e.withdraw(acct, tx)
	case model.KindDispute:
		return e.dispute(acct, tx)
	case model.KindResolve:
		return e.resolve(acct, tx)
	case model.KindChargeback:
		return e.chargeback(acct, tx)
	default:
		return fmt.Errorf("unknown transaction kind %q", tx.Kind)
	}
}

// checkMovement holds the checks shared by deposits and withdrawals.
func (e *Engine) checkMovement(acct *model.Account, tx model.Transaction) error {
	if !tx.Amount.IsPositive() {
		return reject(tx, ReasonInvalidAmount)
	}
	if acct.Locked && e.policy.LockedAccounts == LockedFreeze {
		return reject(tx, ReasonAccountLocked)
	}
	if e.history.Contains(tx.Tx) {
		return reject(tx, ReasonDuplicateTx)
	}
	return nil
}

func (e *Engine) deposit(acct *model.Account, tx model.Transaction) error {
	if err := e.checkMovement(acct, tx); err != nil {
		return err
	}

	available, err := acct.Available.Add(tx.Amount)
	if err != nil {
		return err
	}
	if err := e.history.Record(tx); err != nil {
		return err
	}
	acct.Available = available
	return nil
}

func (e *Engine) withdraw(acct *model.Account, tx model.Transaction) error {
	if err := e.checkMovement(acct, tx); err != nil {
		return err
	}
	if acct.Available.Cmp(tx.Amount) < 0 {
		return reject(tx, ReasonInsufficientFunds)
	}

	available, err := acct.Available.Sub(tx.Amount)
	if err != nil {
		return err
	}
	if err := e.history.Record(tx); err != nil {
		return err
	}
	acct.Available = available
	return nil
}

// referenced resolves the deposit a dispute, resolve or chargeback points at,
// and the account that owns it.
func (e *Engine) referenced(acct *model.Account, tx model.Transaction) (model.HistoryEntry, *model.Account, error) {
	entry, ok := e.history.Lookup(tx.Tx)
	if !ok {
		return model.HistoryEntry{}, nil, reject(tx, ReasonUnknownTx)
	}

	owner := acct
	if entry.Transaction.Client != tx.Client {
		if e.policy.ClientMismatch != MismatchTrust {
			return model.HistoryEntry{}, nil, reject(tx, ReasonClientMismatch)
		}
		owner = e.accounts.GetOrCreate(entry.Transaction.Client)
	}
	return entry, owner, nil
}

func (e *Engine) dispute(acct *model.Account, tx model.Transaction) error {
	entry, owner, err := e.referenced(acct, tx)
	if err != nil {
		return err
	}
	switch {
	case entry.Transaction.Kind != model.KindDeposit:
		return reject(tx, ReasonNotDisputable)
	case entry.ChargedBack:
		return reject(tx, ReasonChargedBack)
	case entry.Disputed:
		return reject(tx, ReasonAlreadyDisputed)
	}

	amount := entry.Transaction.Amount
	available, err := owner.Available.Sub(amount)
	if err != nil {
		return err
	}
	held, err := owner.Held.Add(amount)
	if err != nil {
		return err
	}
	if err := e.history.MarkDisputed(tx.Tx); err != nil {
		return err
	}
	owner.Available = available
	owner.Held = held
	return nil
}

func (e *Engine) resolve(acct *model.Account, tx model.Transaction) error {
	entry, owner, err := e.referenced(acct, tx)
	if err != nil {
		return err
	}
	if !entry.Disputed {
		return reject(tx, ReasonNotDisputed)
	}

	amount := entry.Transaction.Amount
	held, err := owner.Held.Sub(amount)
	if err != nil {
		return err
	}
	available, err := owner.Available.Add(amount)
	if err != nil {
		return err
	}
	if err := e.history.MarkResolved(tx.Tx); err != nil {
		return err
	}
	owner.Held = held
	owner.Available = available
	return nil
}

func (e *Engine) chargeback(acct *model.Account, tx model.Transaction) error {
	entry, owner, err := e.referenced(acct, tx)
	if err != nil {
		return err
	}
	if !entry.Disputed {
		return reject(tx, ReasonNotDisputed)
	}

	held, err := owner.Held.Sub(entry.Transaction.Amount)
	if err != nil {
		return err
	}
	if err := e.history.MarkChargedBack(tx.Tx, e.policy.Chargeback == ChargebackRetire); err != nil {
		return err
	}
	owner.Held = held
	owner.Locked = true
	return nil
}
