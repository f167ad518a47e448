// Package ledger is the transactional core of minibank: the in-memory
// account registry, the balance-mutation protocol and its durability
// contract. Amounts are int64 minor units. Every mutating operation either
// commits the whole registry through the persistence gateway before
// reporting success, or reports the failure to the caller.
package ledger

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// DefaultLockTimeout bounds how long an operation waits for an account lock
// before giving up with ErrLockTimeout.
const DefaultLockTimeout = 3 * time.Second

// lockPoll is the retry interval for bounded lock acquisition; RWMutex has
// no native deadline, so acquisition spins on TryLock at this granularity.
const lockPoll = 200 * time.Microsecond

// Gateway persists the full account set. Save must replace the durable
// snapshot atomically so a crash mid-save never corrupts the previous one.
type Gateway interface {
	Save(ctx context.Context, accounts []Account) error
}

// Ledger enforces the balance invariants and the concurrency discipline on
// top of a Store, and commits every mutation through a Gateway.
type Ledger struct {
	store   *Store
	gateway Gateway
	log     *slog.Logger
	tracer  trace.Tracer

	// commitMu: applies hold it shared, snapshotting holds it exclusively,
	// so a save can never observe half of a transfer.
	commitMu sync.RWMutex
	// saveMu keeps snapshot and write paired; saves land in snapshot order
	// and a later state is never overwritten by an earlier one.
	saveMu sync.Mutex

	lockTimeout time.Duration

	journalMu sync.Mutex
	journal   []JournalEntry
}

// JournalEntry records one committed mutation. A transfer is a single entry
// carrying both sides; there is no way to record a debit without its credit.
type JournalEntry struct {
	ID     string
	Time   time.Time
	Op     string
	Source string
	Dest   string
	Amount int64
}

// Option configures a Ledger.
type Option func(*Ledger)

// WithLogger sets the logger used for commit and durability events.
func WithLogger(log *slog.Logger) Option {
	return func(l *Ledger) { l.log = log }
}

// WithLockTimeout overrides the bounded wait for account locks.
func WithLockTimeout(d time.Duration) Option {
	return func(l *Ledger) {
		if d > 0 {
			l.lockTimeout = d
		}
	}
}

// New wires a Ledger over store and gateway.
func New(store *Store, gateway Gateway, opts ...Option) *Ledger {
	l := &Ledger{
		store:       store,
		gateway:     gateway,
		log:         slog.Default(),
		tracer:      otel.Tracer("minibank/ledger"),
		lockTimeout: DefaultLockTimeout,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// acquire takes the exclusive lock of an account entry, waiting at most the
// configured timeout.
func (l *Ledger) acquire(e *entry) error {
	deadline := time.Now().Add(l.lockTimeout)
	for {
		if e.mu.TryLock() {
			return nil
		}
		if time.Now().After(deadline) {
			return ErrLockTimeout
		}
		time.Sleep(lockPoll)
	}
}

// acquireShared takes the shared lock of an account entry with the same
// bounded wait, so reads stay concurrent with reads but never observe a
// torn balance.
func (l *Ledger) acquireShared(e *entry) error {
	deadline := time.Now().Add(l.lockTimeout)
	for {
		if e.mu.TryRLock() {
			return nil
		}
		if time.Now().After(deadline) {
			return ErrLockTimeout
		}
		time.Sleep(lockPoll)
	}
}

// Register creates a zero-balance account and commits it durably before
// returning. The credential hash is opaque to the ledger.
func (l *Ledger) Register(ctx context.Context, name, email, credentialHash string) (acct Account, err error) {
	ctx, span := l.tracer.Start(ctx, "ledger.register")
	defer span.End()
	defer func() { observe("register", err) }()

	acct, err = l.store.Register(name, email, credentialHash)
	if err != nil {
		return Account{}, err
	}
	if err = l.persist(ctx); err != nil {
		return Account{}, err
	}
	l.record("register", "", acct.Number, 0)
	l.log.InfoContext(ctx, "account registered", "account", acct.Number)
	return acct, nil
}

// Deposit increases the account balance by amount and returns the new
// balance.
func (l *Ledger) Deposit(ctx context.Context, accountNumber string, amount int64) (balance int64, err error) {
	ctx, span := l.tracer.Start(ctx, "ledger.deposit",
		trace.WithAttributes(attribute.Int64("amount", amount)))
	defer span.End()
	timer := prometheus.NewTimer(opLatency.WithLabelValues("deposit"))
	defer timer.ObserveDuration()
	defer func() { observe("deposit", err) }()

	if amount <= 0 {
		return 0, ErrInvalidAmount
	}
	e, ok := l.store.lookup(accountNumber)
	if !ok {
		return 0, ErrAccountNotFound
	}
	if err = l.acquire(e); err != nil {
		return 0, err
	}
	l.commitMu.RLock()
	e.acct.Balance += amount
	balance = e.acct.Balance
	l.commitMu.RUnlock()
	e.mu.Unlock()

	if err = l.persist(ctx); err != nil {
		return balance, err
	}
	l.record("deposit", "", accountNumber, amount)
	return balance, nil
}

// Withdraw decreases the account balance by amount and returns the new
// balance. The balance never goes negative.
func (l *Ledger) Withdraw(ctx context.Context, accountNumber string, amount int64) (balance int64, err error) {
	ctx, span := l.tracer.Start(ctx, "ledger.withdraw",
		trace.WithAttributes(attribute.Int64("amount", amount)))
	defer span.End()
	timer := prometheus.NewTimer(opLatency.WithLabelValues("withdraw"))
	defer timer.ObserveDuration()
	defer func() { observe("withdraw", err) }()

	if amount <= 0 {
		return 0, ErrInvalidAmount
	}
	e, ok := l.store.lookup(accountNumber)
	if !ok {
		return 0, ErrAccountNotFound
	}
	if err = l.acquire(e); err != nil {
		return 0, err
	}
	l.commitMu.RLock()
	if e.acct.Balance < amount {
		l.commitMu.RUnlock()
		e.mu.Unlock()
		return 0, ErrInsufficientFunds
	}
	e.acct.Balance -= amount
	balance = e.acct.Balance
	l.commitMu.RUnlock()
	e.mu.Unlock()

	if err = l.persist(ctx); err != nil {
		return balance, err
	}
	l.record("withdraw", accountNumber, "", amount)
	return balance, nil
}

// Balance returns the current balance of the account.
func (l *Ledger) Balance(ctx context.Context, accountNumber string) (int64, error) {
	_, span := l.tracer.Start(ctx, "ledger.balance")
	defer span.End()

	e, ok := l.store.lookup(accountNumber)
	if !ok {
		return 0, ErrAccountNotFound
	}
	if err := l.acquireShared(e); err != nil {
		return 0, err
	}
	balance := e.acct.Balance
	e.mu.RUnlock()
	return balance, nil
}

// Transfer debits source and credits dest as one atomic unit: both account
// locks are taken in ascending account-number order regardless of direction,
// so opposing transfers cannot deadlock, and both balances change inside a
// single shared section of the commit lock, so no snapshot can see the debit
// without the credit.
func (l *Ledger) Transfer(ctx context.Context, source, dest string, amount int64) (err error) {
	ctx, span := l.tracer.Start(ctx, "ledger.transfer",
		trace.WithAttributes(attribute.Int64("amount", amount)))
	defer span.End()
	timer := prometheus.NewTimer(opLatency.WithLabelValues("transfer"))
	defer timer.ObserveDuration()
	defer func() { observe("transfer", err) }()

	if amount <= 0 {
		return ErrInvalidAmount
	}
	if source == dest {
		return ErrSameAccount
	}
	src, ok := l.store.lookup(source)
	if !ok {
		return ErrAccountNotFound
	}
	dst, ok := l.store.lookup(dest)
	if !ok {
		return ErrAccountNotFound
	}

	first, second := src, dst
	if dest < source {
		first, second = dst, src
	}
	if err = l.acquire(first); err != nil {
		return err
	}
	if err = l.acquire(second); err != nil {
		first.mu.Unlock()
		return err
	}

	l.commitMu.RLock()
	if src.acct.Balance < amount {
		l.commitMu.RUnlock()
		second.mu.Unlock()
		first.mu.Unlock()
		return ErrInsufficientFunds
	}
	src.acct.Balance -= amount
	dst.acct.Balance += amount
	l.commitMu.RUnlock()
	second.mu.Unlock()
	first.mu.Unlock()

	if err = l.persist(ctx); err != nil {
		return err
	}
	l.record("transfer", source, dest, amount)
	return nil
}

// persist snapshots the registry and hands it to the gateway. The snapshot
// is taken under the exclusive commit lock, so it reflects a single point in
// time; saveMu orders concurrent commits so the durable file only ever moves
// forward. On failure the in-memory state stays authoritative but the
// triggering operation is reported as failed, never as success.
func (l *Ledger) persist(ctx context.Context) error {
	l.saveMu.Lock()
	defer l.saveMu.Unlock()
	l.commitMu.Lock()
	snapshot := l.store.Snapshot()
	l.commitMu.Unlock()
	if err := l.gateway.Save(ctx, snapshot); err != nil {
		saveFailures.Inc()
		l.log.ErrorContext(ctx, "snapshot save failed", "error", err)
		return fmt.Errorf("commit snapshot: %w", err)
	}
	return nil
}

func (l *Ledger) record(op, source, dest string, amount int64) {
	l.journalMu.Lock()
	l.journal = append(l.journal, JournalEntry{
		ID:     uuid.NewString(),
		Time:   time.Now(),
		Op:     op,
		Source: source,
		Dest:   dest,
		Amount: amount,
	})
	l.journalMu.Unlock()
}

// Journal returns a copy of the committed-mutation journal, oldest first.
func (l *Ledger) Journal() []JournalEntry {
	l.journalMu.Lock()
	defer l.journalMu.Unlock()
	out := make([]JournalEntry, len(l.journal))
	copy(out, l.journal)
	return out
}
