package quiz

import (
	"math/rand/v2"
	"sync"
	"time"
)

// Rand is the randomness used for sampling, picking and shuffling.
// *rand.Rand from math/rand/v2 satisfies it.
type Rand interface {
	IntN(n int) int
	Shuffle(n int, swap func(i, j int))
	Perm(n int) []int
}

// NewSeededRand returns a deterministic source for tests and reproducible runs.
func NewSeededRand(seed uint64) Rand {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// NewRand returns a time-seeded source that is safe for concurrent use.
func NewRand() Rand {
	now := uint64(time.Now().UnixNano())
	return &lockedRand{r: rand.New(rand.NewPCG(now, now>>1))}
}

type lockedRand struct {
	mu sync.Mutex
	r  *rand.Rand
}

func (l *lockedRand) IntN(n int) int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.r.IntN(n)
}

func (l *lockedRand) Shuffle(n int, swap func(i, j int)) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.r.Shuffle(n, swap)
}

func (l *lockedRand) Perm(n int) []int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.r.Perm(n)
}
