package ledger

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"sync"
)

// NumberWidth is the fixed length of generated account numbers.
const NumberWidth = 10

// NumberGenerator issues unique fixed-width numeric account numbers drawn
// uniformly from the 10^width space. Issued numbers stay reserved for the
// generator's lifetime; "already issued" is tracked here, not in the store,
// so a number can never be reissued even if the account it belonged to is
// gone.
type NumberGenerator struct {
	mu     sync.Mutex
	issued map[string]struct{}
	width  int
	space  int64
}

// NewNumberGenerator returns a generator over the standard 10-digit space.
func NewNumberGenerator() *NumberGenerator {
	return newNumberGenerator(NumberWidth)
}

func newNumberGenerator(width int) *NumberGenerator {
	space := int64(1)
	for i := 0; i < width; i++ {
		space *= 10
	}
	return &NumberGenerator{
		issued: make(map[string]struct{}),
		width:  width,
		space:  space,
	}
}

// Next returns a fresh account number, rejecting collisions against every
// number issued so far. It fails with ErrExhaustedSpace only once the whole
// space has been issued, which at the standard width is unreachable in
// practice but still a case callers must handle.
func (g *NumberGenerator) Next() (string, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if int64(len(g.issued)) >= g.space {
		return "", ErrExhaustedSpace
	}
	for {
		n, err := rand.Int(rand.Reader, big.NewInt(g.space))
		if err != nil {
			return "", fmt.Errorf("account number entropy: %w", err)
		}
		num := fmt.Sprintf("%0*d", g.width, n)
		if _, taken := g.issued[num]; taken {
			continue
		}
		g.issued[num] = struct{}{}
		return num, nil
	}
}

// Reserve marks a number as issued without generating it, so accounts
// hydrated from a persisted snapshot keep their numbers off the free space.
func (g *NumberGenerator) Reserve(num string) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.issued[num] = struct{}{}
}
