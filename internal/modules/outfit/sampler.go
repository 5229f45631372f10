package outfit

import (
	"math"
	"math/rand/v2"
	"sync"
)

// Source is the randomness the engine draws from.
type Source interface {
	Float64() float64
	IntN(n int) int
}

type lockedSource struct {
	mu sync.Mutex
	r  *rand.Rand
}

// NewSource returns a goroutine-safe PCG source. A zero seed picks a random one.
func NewSource(seed uint64) Source {
	if seed == 0 {
		seed = rand.Uint64()
	}
	return &lockedSource{r: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))}
}

func (s *lockedSource) Float64() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.r.Float64()
}

func (s *lockedSource) IntN(n int) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.r.IntN(n)
}

// DrawMode records how a pick was made.
type DrawMode string

const (
	DrawWeighted DrawMode = "weighted"
	// DrawExplore is the flat exploration branch.
	DrawExplore DrawMode = "explore"
	// DrawZeroWeights is taken when every weight is zero.
	DrawZeroWeights DrawMode = "zero_weights"
	// DrawFallback is taken when the weights are unusable (negative, NaN, Inf).
	DrawFallback DrawMode = "fallback"
)

// Sampler draws indices proportional to non-negative weights.
type Sampler struct {
	src Source
}

func NewSampler(src Source) *Sampler {
	return &Sampler{src: src}
}

// Chance reports true with probability p.
func (s *Sampler) Chance(p float64) bool {
	return s.src.Float64() < p
}

// Uniform picks an index in [0,n). n must be positive.
func (s *Sampler) Uniform(n int) int {
	return s.src.IntN(n)
}

// Weighted draws an index with probability weights[i]/sum(weights). An all-zero
// vector and invalid weights both degrade to a uniform pick; the returned mode
// says which branch ran. weights must be non-empty.
func (s *Sampler) Weighted(weights []float64) (int, DrawMode) {
	n := len(weights)
	sum := 0.0
	for _, w := range weights {
		if w < 0 || math.IsNaN(w) || math.IsInf(w, 0) {
			return s.Uniform(n), DrawFallback
		}
		sum += w
	}
	if sum == 0 {
		return s.Uniform(n), DrawZeroWeights
	}
	if math.IsInf(sum, 0) {
		return s.Uniform(n), DrawFallback
	}

	target := s.src.Float64() * sum
	acc := 0.0
	last := -1
	for i, w := range weights {
		if w == 0 {
			continue
		}
		acc += w
		last = i
		if target < acc {
			return i, DrawWeighted
		}
	}
	// Rounding can leave target just above the running total.
	return last, DrawWeighted
}
