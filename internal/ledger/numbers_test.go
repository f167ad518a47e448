package ledger

import (
	"errors"
	"sync"
	"testing"
)

func TestNumberGeneratorShape(t *testing.T) {
	g := NewNumberGenerator()
	num, err := g.Next()
	if err != nil {
		t.Fatal(err)
	}
	if len(num) != NumberWidth {
		t.Fatalf("len=%d want=%d", len(num), NumberWidth)
	}
	for _, r := range num {
		if r < '0' || r > '9' {
			t.Fatalf("number %q is not numeric", num)
		}
	}
}

func TestNumberGeneratorUnique(t *testing.T) {
	g := NewNumberGenerator()
	seen := make(map[string]struct{})
	for i := 0; i < 1000; i++ {
		num, err := g.Next()
		if err != nil {
			t.Fatal(err)
		}
		if _, dup := seen[num]; dup {
			t.Fatalf("number %q issued twice", num)
		}
		seen[num] = struct{}{}
	}
}

func TestNumberGeneratorConcurrent(t *testing.T) {
	g := NewNumberGenerator()
	const workers = 50
	const perWorker = 20

	var mu sync.Mutex
	seen := make(map[string]struct{})
	var wg sync.WaitGroup
	wg.Add(workers)
	for i := 0; i < workers; i++ {
		go func() {
			defer wg.Done()
			for j := 0; j < perWorker; j++ {
				num, err := g.Next()
				if err != nil {
					t.Errorf("Next: %v", err)
					return
				}
				mu.Lock()
				_, dup := seen[num]
				seen[num] = struct{}{}
				mu.Unlock()
				if dup {
					t.Errorf("number %q issued twice", num)
					return
				}
			}
		}()
	}
	wg.Wait()

	if len(seen) != workers*perWorker {
		t.Fatalf("issued %d unique numbers, want %d", len(seen), workers*perWorker)
	}
}

// TestNumberGeneratorExhaustion shrinks the space to a single digit so the
// exhaustion path is actually reachable.
func TestNumberGeneratorExhaustion(t *testing.T) {
	g := newNumberGenerator(1)
	for i := 0; i < 10; i++ {
		if _, err := g.Next(); err != nil {
			t.Fatalf("draw %d: %v", i, err)
		}
	}
	if _, err := g.Next(); !errors.Is(err, ErrExhaustedSpace) {
		t.Fatalf("want ErrExhaustedSpace, got %v", err)
	}
}

func TestNumberGeneratorReserveCountsAgainstSpace(t *testing.T) {
	g := newNumberGenerator(1)
	for i := 0; i < 10; i++ {
		g.Reserve(string(rune('0' + i)))
	}
	if _, err := g.Next(); !errors.Is(err, ErrExhaustedSpace) {
		t.Fatalf("want ErrExhaustedSpace, got %v", err)
	}
}
