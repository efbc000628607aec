// Package rng provides the single randomness source shared by every
// proposal operator.
package rng

import (
	"math"
	"math/rand"
	"sync"
	"time"
)

// #region source
// Source is a mutex-guarded *rand.Rand. All operators draw from one Source
// per document so that a fixed seed and a fixed call sequence reproduce an
// identical stream of SearchSteps.
type Source struct {
	rng *rand.Rand
	mu  sync.Mutex
}

// New returns a Source seeded deterministically. A zero seed is replaced
// with the current time, matching the non-deterministic default used when
// no explicit seed is configured.
func New(seed int64) *Source {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &Source{rng: rand.New(rand.NewSource(seed))}
}
// #endregion source

// #region primitives
// UniformInt returns an integer in [0, n). Panics if n <= 0, matching
// rand.Intn.
func (s *Source) UniformInt(n int) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rng.Intn(n)
}

// Coin returns true with probability p. p outside [0,1] is clamped.
func (s *Source) Coin(p float64) bool {
	if p <= 0 {
		return false
	}
	if p >= 1 {
		return true
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rng.Float64() < p
}

// Geometric draws an integer in [0, maxInclusive] from a truncated
// geometric distribution with parameter decay in (0,1): larger decay biases
// toward smaller values. maxInclusive <= 0 returns 0 without consuming a
// draw.
func (s *Source) Geometric(decay float64, maxInclusive int) int {
	if maxInclusive <= 0 {
		return 0
	}
	if decay <= 0 {
		decay = 1e-6
	}
	if decay >= 1 {
		decay = 1 - 1e-6
	}
	s.mu.Lock()
	u := s.rng.Float64()
	s.mu.Unlock()

	// Inverse-CDF draw of Geometric(decay) (success probability decay,
	// P(X=k) = decay*(1-decay)^k) truncated by min() against maxInclusive,
	// per spec.md's "min(geom(decay), maxInclusive)" note.
	v := int(math.Log(1-u) / math.Log(1-decay))
	if v < 0 {
		v = 0
	}
	if v > maxInclusive {
		v = maxInclusive
	}
	return v
}

// SelectCumulative draws a uniform u in [0, total) where total is the last
// element of cumWeights, and returns the index i such that u falls in the
// i-th bucket of the ascending cumulative-weight vector.
func (s *Source) SelectCumulative(cumWeights []float64) int {
	if len(cumWeights) == 0 {
		return -1
	}
	total := cumWeights[len(cumWeights)-1]
	s.mu.Lock()
	u := s.rng.Float64() * total
	s.mu.Unlock()

	for i, w := range cumWeights {
		if u < w {
			return i
		}
	}
	return len(cumWeights) - 1
}
// #endregion primitives
