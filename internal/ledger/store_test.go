package ledger

import (
	"errors"
	"testing"
)

func TestStoreRegisterAndFind(t *testing.T) {
	s := NewStore(NewNumberGenerator(), 0)
	acct, err := s.Register("Alice", "alice@x.com", "hash")
	if err != nil {
		t.Fatal(err)
	}

	byEmail, ok := s.FindByEmail("alice@x.com")
	if !ok || byEmail.Number != acct.Number {
		t.Fatalf("FindByEmail got %+v ok=%v", byEmail, ok)
	}
	byNumber, ok := s.FindByNumber(acct.Number)
	if !ok || byNumber.Email != "alice@x.com" {
		t.Fatalf("FindByNumber got %+v ok=%v", byNumber, ok)
	}
	if _, ok := s.FindByEmail("ALICE@X.COM"); ok {
		t.Fatal("email match must be case-sensitive")
	}
	if _, ok := s.FindByNumber("0000000000"); ok {
		t.Fatal("unknown number must not be found")
	}
}

func TestStoreReturnsCopies(t *testing.T) {
	s := NewStore(NewNumberGenerator(), 0)
	acct, err := s.Register("Alice", "alice@x.com", "hash")
	if err != nil {
		t.Fatal(err)
	}

	acct.Balance = 999999
	acct.Name = "Mallory"

	fresh, _ := s.FindByNumber(acct.Number)
	if fresh.Balance != 0 || fresh.Name != "Alice" {
		t.Fatalf("store state leaked through returned copy: %+v", fresh)
	}

	snap := s.Snapshot()
	snap[0].Balance = -1
	again, _ := s.FindByNumber(acct.Number)
	if again.Balance != 0 {
		t.Fatalf("store state leaked through snapshot: %+v", again)
	}
}

func TestStoreDuplicateEmail(t *testing.T) {
	s := NewStore(NewNumberGenerator(), 0)
	if _, err := s.Register("Alice", "alice@x.com", "h"); err != nil {
		t.Fatal(err)
	}
	if _, err := s.Register("Other", "alice@x.com", "h"); !errors.Is(err, ErrDuplicateEmail) {
		t.Fatalf("want ErrDuplicateEmail, got %v", err)
	}
}

func TestStoreSnapshotOrdered(t *testing.T) {
	s := NewStore(NewNumberGenerator(), 0)
	for _, email := range []string{"a@x.com", "b@x.com", "c@x.com"} {
		if _, err := s.Register("N", email, "h"); err != nil {
			t.Fatal(err)
		}
	}
	snap := s.Snapshot()
	if len(snap) != 3 {
		t.Fatalf("snapshot len=%d want=3", len(snap))
	}
	for i := 1; i < len(snap); i++ {
		if snap[i-1].Number >= snap[i].Number {
			t.Fatalf("snapshot not ordered: %q before %q", snap[i-1].Number, snap[i].Number)
		}
	}
}

func TestStoreHydrate(t *testing.T) {
	accounts := []Account{
		{Number: "0000000002", Name: "B", Email: "b@x.com", CredentialHash: "h2", Balance: 200, RoutingNumber: DefaultRoutingNumber},
		{Number: "0000000001", Name: "A", Email: "a@x.com", CredentialHash: "h1", Balance: 100},
	}

	gen := NewNumberGenerator()
	s := NewStore(gen, 0)
	if err := s.Hydrate(accounts); err != nil {
		t.Fatal(err)
	}

	a, ok := s.FindByNumber("0000000001")
	if !ok || a.Balance != 100 {
		t.Fatalf("hydrated account missing or wrong: %+v ok=%v", a, ok)
	}
	if a.RoutingNumber != DefaultRoutingNumber {
		t.Fatalf("zero routing not defaulted: %+v", a)
	}
	if s.Len() != 2 {
		t.Fatalf("len=%d want=2", s.Len())
	}

	snap := s.Snapshot()
	if snap[0].Number != "0000000001" || snap[1].Number != "0000000002" {
		t.Fatalf("snapshot order unexpected: %+v", snap)
	}
}

func TestStoreHydrateRejectsDuplicates(t *testing.T) {
	tests := []struct {
		name     string
		accounts []Account
	}{
		{"duplicate number", []Account{
			{Number: "0000000001", Email: "a@x.com"},
			{Number: "0000000001", Email: "b@x.com"},
		}},
		{"duplicate email", []Account{
			{Number: "0000000001", Email: "a@x.com"},
			{Number: "0000000002", Email: "a@x.com"},
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewStore(NewNumberGenerator(), 0)
			if err := s.Hydrate(tt.accounts); err == nil {
				t.Fatal("want error, got nil")
			}
		})
	}
}

func TestStoreRoutingOverride(t *testing.T) {
	s := NewStore(NewNumberGenerator(), 987654321)
	acct, err := s.Register("Alice", "alice@x.com", "h")
	if err != nil {
		t.Fatal(err)
	}
	if acct.RoutingNumber != 987654321 {
		t.Fatalf("routing=%d want=987654321", acct.RoutingNumber)
	}
}
