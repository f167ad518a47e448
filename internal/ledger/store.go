package ledger

import (
	"fmt"
	"sort"
	"sync"
)

// entry pairs an account with its lock. The lock serializes balance
// mutations on this account; readers take it shared.
type entry struct {
	mu   sync.RWMutex
	acct Account
}

// Store owns the full set of accounts and enforces uniqueness of account
// numbers and emails. It is the single in-memory source of truth; the
// persistence gateway only ever sees copies produced by Snapshot.
type Store struct {
	mu       sync.RWMutex
	byNumber map[string]*entry
	byEmail  map[string]*entry
	gen      *NumberGenerator
	routing  int64
}

// NewStore returns an empty store issuing numbers from gen. A zero routing
// number selects the institution default.
func NewStore(gen *NumberGenerator, routing int64) *Store {
	if routing == 0 {
		routing = DefaultRoutingNumber
	}
	return &Store{
		byNumber: make(map[string]*entry),
		byEmail:  make(map[string]*entry),
		gen:      gen,
		routing:  routing,
	}
}

// Register allocates an account number and inserts a zero-balance account.
// The duplicate-email check and the insert share one critical section, so of
// two concurrent registrations with the same email exactly one succeeds.
func (s *Store) Register(name, email, credentialHash string) (Account, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, dup := s.byEmail[email]; dup {
		return Account{}, ErrDuplicateEmail
	}
	num, err := s.gen.Next()
	if err != nil {
		return Account{}, err
	}
	e := &entry{acct: Account{
		Number:         num,
		RoutingNumber:  s.routing,
		Name:           name,
		Email:          email,
		CredentialHash: credentialHash,
	}}
	s.byNumber[num] = e
	s.byEmail[email] = e
	return e.acct, nil
}

// FindByEmail returns a copy of the account registered under email, matched
// exactly and case-sensitively.
func (s *Store) FindByEmail(email string) (Account, bool) {
	s.mu.RLock()
	e, ok := s.byEmail[email]
	s.mu.RUnlock()
	if !ok {
		return Account{}, false
	}
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.acct, true
}

// FindByNumber returns a copy of the account with the given account number.
func (s *Store) FindByNumber(num string) (Account, bool) {
	s.mu.RLock()
	e, ok := s.byNumber[num]
	s.mu.RUnlock()
	if !ok {
		return Account{}, false
	}
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.acct, true
}

// lookup returns the live entry for ledger operations that need to take the
// account lock. The pointer must not be retained past the operation.
func (s *Store) lookup(num string) (*entry, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	e, ok := s.byNumber[num]
	return e, ok
}

// Snapshot returns a copy of every account, ordered by account number.
// Point-in-time consistency is the Ledger's contract: it excludes in-flight
// applies before calling this.
func (s *Store) Snapshot() []Account {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Account, 0, len(s.byNumber))
	for _, e := range s.byNumber {
		out = append(out, e.acct)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Number < out[j].Number })
	return out
}

// Len reports the number of registered accounts.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.byNumber)
}

// Hydrate inserts accounts loaded from a persisted snapshot and reserves
// their numbers with the generator. It must run before the store is shared;
// duplicate numbers or emails mean the snapshot cannot be trusted.
func (s *Store) Hydrate(accounts []Account) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, a := range accounts {
		if _, dup := s.byNumber[a.Number]; dup {
			return fmt.Errorf("snapshot has duplicate account number %q", a.Number)
		}
		if _, dup := s.byEmail[a.Email]; dup {
			return fmt.Errorf("snapshot has duplicate email %q", a.Email)
		}
		if a.RoutingNumber == 0 {
			a.RoutingNumber = s.routing
		}
		e := &entry{acct: a}
		s.byNumber[a.Number] = e
		s.byEmail[a.Email] = e
		s.gen.Reserve(a.Number)
	}
	return nil
}
