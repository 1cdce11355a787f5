package services

import (
	"errors"
	"math/rand"
	"sort"
	"sync"
	"time"

	"lotto645/internal/models"
)

// ErrInfeasibleRange is returned when a requested sum window can never (or in
// practice will never) produce a valid combination.
var ErrInfeasibleRange = errors.New("requested sum range cannot be satisfied")

// maxAttempts bounds rejection sampling under a sum constraint so a narrow
// but technically possible window cannot spin forever.
const maxAttempts = 5000

// Generator produces random 6-number combinations. The random source is
// injected so tests can seed it deterministically. rand.Rand is not safe for
// concurrent use, and gin runs each request on its own goroutine, so draws
// are serialized behind mu.
type Generator struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// NewGenerator creates a Generator. A nil rng falls back to a time-seeded
// source.
func NewGenerator(rng *rand.Rand) *Generator {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Generator{rng: rng}
}

// Pick draws 6 distinct numbers from [1,45] uniformly at random and returns
// them sorted ascending. Duplicates are simply redrawn, not retried as a
// whole set.
func (g *Generator) Pick() []int {
	g.mu.Lock()
	defer g.mu.Unlock()

	seen := make(map[int]bool, models.NumberCount)
	numbers := make([]int, 0, models.NumberCount)
	for len(numbers) < models.NumberCount {
		n := g.rng.Intn(models.MaxNumber) + 1
		if seen[n] {
			continue
		}
		seen[n] = true
		numbers = append(numbers, n)
	}
	sort.Ints(numbers)
	return numbers
}

// PickInSumRange draws combinations until one sums within [minSum, maxSum]
// inclusive. An impossible window is rejected up front; a possible but
// never-hit window gives up after maxAttempts.
func (g *Generator) PickInSumRange(minSum, maxSum int) ([]int, error) {
	if minSum > maxSum || maxSum < models.MinPossibleSum || minSum > models.MaxPossibleSum {
		return nil, ErrInfeasibleRange
	}
	for i := 0; i < maxAttempts; i++ {
		numbers := g.Pick()
		s := Sum(numbers)
		if s >= minSum && s <= maxSum {
			return numbers, nil
		}
	}
	return nil, ErrInfeasibleRange
}

// Sum adds up a combination's numbers.
func Sum(numbers []int) int {
	total := 0
	for _, n := range numbers {
		total += n
	}
	return total
}
