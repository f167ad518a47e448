package ledger

// DefaultRoutingNumber is the institution constant applied to every account
// unless the store is configured with an override.
const DefaultRoutingNumber int64 = 123456789

// Account is a registered holder's identity, contact, credential and balance
// record. The account number is assigned once by the number generator and
// never changes; the balance is in minor units and never negative. The
// credential hash is opaque here: hashing and verification live behind the
// Authenticator capability, outside this package.
type Account struct {
	Number         string
	RoutingNumber  int64
	Name           string
	Email          string
	CredentialHash string
	Balance        int64
}
