package authn

import (
	"strings"
	"testing"

	"golang.org/x/crypto/bcrypt"
)

func TestHashVerifyRoundTrip(t *testing.T) {
	a := Bcrypt{Cost: bcrypt.MinCost}

	hash, err := a.Hash("correct horse battery staple")
	if err != nil {
		t.Fatal(err)
	}
	if hash == "" || strings.Contains(hash, "correct horse") {
		t.Fatalf("hash must be opaque, got %q", hash)
	}
	if !a.Verify("correct horse battery staple", hash) {
		t.Fatal("Verify(p, Hash(p)) must be true")
	}
	if a.Verify("wrong password", hash) {
		t.Fatal("Verify must reject a wrong password")
	}
}

func TestVerifyGarbageHash(t *testing.T) {
	a := Bcrypt{}
	if a.Verify("anything", "not-a-bcrypt-hash") {
		t.Fatal("Verify must reject a malformed hash")
	}
}

func TestHashesDiffer(t *testing.T) {
	a := Bcrypt{Cost: bcrypt.MinCost}
	h1, err := a.Hash("password123")
	if err != nil {
		t.Fatal(err)
	}
	h2, err := a.Hash("password123")
	if err != nil {
		t.Fatal(err)
	}
	if h1 == h2 {
		t.Fatal("bcrypt hashes must be salted")
	}
}
