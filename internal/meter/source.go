package meter

import (
	"math/rand"
	"sync"
	"time"
)

// Source supplies the raw meter register value attached to each submission.
// Real meter integration replaces the synthetic source without touching the
// write path.
type Source interface {
	NextReading() int64
}

const (
	syntheticMin = 10000
	syntheticMax = 99999
)

// SyntheticSource stands in for hardware telemetry with a uniform random
// register value in [10000, 99999].
type SyntheticSource struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// NewSyntheticSource returns a time-seeded synthetic source.
func NewSyntheticSource() *SyntheticSource {
	return &SyntheticSource{rng: rand.New(rand.NewSource(time.Now().UnixNano()))}
}

// NextReading returns the next simulated register value.
func (s *SyntheticSource) NextReading() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return int64(s.rng.Intn(syntheticMax-syntheticMin+1)) + syntheticMin
}
