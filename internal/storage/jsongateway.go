// Package storage persists the account set as a single JSON document whose
// shape is byte-compatible with the original deployment: a top-level object
// with one key "customers" holding the account records.
package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/sapliy/minibank/internal/ledger"
)

var (
	// ErrNoSnapshot means no durable snapshot exists yet; callers treat
	// this as "start empty", not as a failure.
	ErrNoSnapshot = errors.New("no snapshot file")

	// ErrCorruptData means a snapshot exists but cannot be trusted.
	ErrCorruptData = errors.New("corrupt snapshot data")

	// ErrPersistence wraps I/O failures while writing a snapshot. The
	// in-memory state stays authoritative but is not durable.
	ErrPersistence = errors.New("snapshot persistence failed")
)

// customerRecord mirrors the on-disk shape exactly; the field names must not
// change. Password holds the opaque credential hash, never plaintext.
type customerRecord struct {
	Name          string `json:"name"`
	Email         string `json:"email"`
	AccountNumber string `json:"account_number"`
	Password      string `json:"password"`
	RoutingNumber int64  `json:"routing_number"`
	Balance       int64  `json:"balance"`
}

type snapshotFile struct {
	Customers []customerRecord `json:"customers"`
}

// JSONGateway reads and writes the snapshot file. Saves go through a
// write-then-rename replace, so a crash mid-write leaves the previously
// committed snapshot intact.
type JSONGateway struct {
	path string
}

// NewJSONGateway returns a gateway over the given file path.
func NewJSONGateway(path string) *JSONGateway {
	return &JSONGateway{path: path}
}

// Save serializes the full account set and atomically replaces the snapshot
// file.
func (g *JSONGateway) Save(_ context.Context, accounts []ledger.Account) error {
	doc := snapshotFile{Customers: make([]customerRecord, 0, len(accounts))}
	for _, a := range accounts {
		doc.Customers = append(doc.Customers, customerRecord{
			Name:          a.Name,
			Email:         a.Email,
			AccountNumber: a.Number,
			Password:      a.CredentialHash,
			RoutingNumber: a.RoutingNumber,
			Balance:       a.Balance,
		})
	}

	tmp := g.path + ".tmp"
	f, err := os.Create(tmp)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	enc := json.NewEncoder(f)
	enc.SetIndent("", "    ")
	if err := enc.Encode(doc); err != nil {
		f.Close()
		os.Remove(tmp)
		return fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	if err := f.Sync(); err != nil {
		f.Close()
		os.Remove(tmp)
		return fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	if err := f.Close(); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	if err := os.Rename(tmp, g.path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	return nil
}

// Load deserializes the snapshot file into account records, ordered as
// persisted. A missing file is ErrNoSnapshot; malformed JSON, a negative or
// non-integer balance, a malformed account number or duplicated identifiers
// are all ErrCorruptData.
func (g *JSONGateway) Load(_ context.Context) ([]ledger.Account, error) {
	f, err := os.Open(g.path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, ErrNoSnapshot
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	defer f.Close()

	var doc snapshotFile
	if err := json.NewDecoder(f).Decode(&doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorruptData, err)
	}

	accounts := make([]ledger.Account, 0, len(doc.Customers))
	seenNumber := make(map[string]struct{}, len(doc.Customers))
	seenEmail := make(map[string]struct{}, len(doc.Customers))
	for i, c := range doc.Customers {
		if err := validateRecord(c); err != nil {
			return nil, fmt.Errorf("%w: customer %d: %v", ErrCorruptData, i, err)
		}
		if _, dup := seenNumber[c.AccountNumber]; dup {
			return nil, fmt.Errorf("%w: customer %d: duplicate account number %q", ErrCorruptData, i, c.AccountNumber)
		}
		if _, dup := seenEmail[c.Email]; dup {
			return nil, fmt.Errorf("%w: customer %d: duplicate email %q", ErrCorruptData, i, c.Email)
		}
		seenNumber[c.AccountNumber] = struct{}{}
		seenEmail[c.Email] = struct{}{}

		routing := c.RoutingNumber
		if routing == 0 {
			routing = ledger.DefaultRoutingNumber
		}
		accounts = append(accounts, ledger.Account{
			Number:         c.AccountNumber,
			RoutingNumber:  routing,
			Name:           c.Name,
			Email:          c.Email,
			CredentialHash: c.Password,
			Balance:        c.Balance,
		})
	}
	return accounts, nil
}

func validateRecord(c customerRecord) error {
	if c.Email == "" {
		return errors.New("empty email")
	}
	if len(c.AccountNumber) != ledger.NumberWidth {
		return fmt.Errorf("account number %q is not %d digits", c.AccountNumber, ledger.NumberWidth)
	}
	for _, r := range c.AccountNumber {
		if r < '0' || r > '9' {
			return fmt.Errorf("account number %q is not numeric", c.AccountNumber)
		}
	}
	if c.Balance < 0 {
		return fmt.Errorf("negative balance %d", c.Balance)
	}
	if c.RoutingNumber < 0 {
		return fmt.Errorf("negative routing number %d", c.RoutingNumber)
	}
	return nil
}
