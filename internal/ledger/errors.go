package ledger

import "errors"

// Domain errors returned by the store and the ledger. They are always
// returned to the immediate caller, never printed or swallowed here; the
// driving layer decides how to present them.
var (
	// ErrAccountNotFound means the account number is not registered.
	ErrAccountNotFound = errors.New("account not found")

	// ErrDuplicateEmail means another account already uses the email
	// (exact, case-sensitive match).
	ErrDuplicateEmail = errors.New("email is already in use")

	// ErrInvalidAmount means the amount of a mutation was zero or negative.
	ErrInvalidAmount = errors.New("amount must be greater than zero")

	// ErrInsufficientFunds means a withdrawal or transfer exceeds the
	// source balance.
	ErrInsufficientFunds = errors.New("insufficient funds")

	// ErrSameAccount means a transfer named the same account on both sides.
	ErrSameAccount = errors.New("source and destination are the same account")

	// ErrExhaustedSpace means every account number in the configured space
	// has been issued.
	ErrExhaustedSpace = errors.New("account number space exhausted")

	// ErrLockTimeout means an operation gave up waiting for an account lock.
	ErrLockTimeout = errors.New("timed out waiting for account lock")
)
