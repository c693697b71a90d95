package activity

import (
	"math/rand"
	"time"
)

// Source supplies uniformly distributed integers.
type Source interface {
	// Uniform returns a value in [low, high], both bounds included.
	Uniform(low, high int) int
}

type randSource struct {
	rnd *rand.Rand
}

// NewSource returns a Source backed by math/rand. A zero seed picks a time based seed.
func NewSource(seed int64) Source {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &randSource{rnd: rand.New(rand.NewSource(seed))}
}

func (s *randSource) Uniform(low, high int) int {
	if high <= low {
		return low
	}
	return low + s.rnd.Intn(high-low+1)
}
