// Package authn is the credential capability consumed by the ledger core.
// The core only ever holds the opaque hash; plaintext stays on this side of
// the boundary and is never stored or logged.
package authn

import "golang.org/x/crypto/bcrypt"

// Authenticator hashes and verifies credentials.
type Authenticator interface {
	// Hash returns the credential hash for a plaintext password.
	Hash(plaintext string) (string, error)
	// Verify reports whether plaintext matches a stored hash.
	Verify(plaintext, hash string) bool
}

// Bcrypt implements Authenticator with golang.org/x/crypto/bcrypt. A zero
// Cost selects bcrypt.DefaultCost.
type Bcrypt struct {
	Cost int
}

// Hash generates a bcrypt hash of the plaintext.
func (b Bcrypt) Hash(plaintext string) (string, error) {
	cost := b.Cost
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(plaintext), cost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// Verify compares plaintext against a stored bcrypt hash.
func (b Bcrypt) Verify(plaintext, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plaintext)) == nil
}
