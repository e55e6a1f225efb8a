package random

import (
	"math/rand"
	"sync"
	"time"
)

// Source produces uniform floats in [0,1).
type Source interface {
	Float64() float64
}

// Seeded is a Source backed by math/rand. It is safe for concurrent use.
type Seeded struct {
	mu  sync.Mutex
	rnd *rand.Rand
}

// New returns a Source seeded with seed.
func New(seed int64) *Seeded {
	return &Seeded{rnd: rand.New(rand.NewSource(seed))}
}

// NewFromTime seeds from the wall clock.
func NewFromTime() *Seeded {
	return New(time.Now().UnixNano())
}

func (s *Seeded) Float64() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rnd.Float64()
}

// Index returns floor(u*n) for u drawn from src, clamped to [0,n).
func Index(src Source, n int) int {
	if n <= 0 {
		return 0
	}
	i := int(src.Float64() * float64(n))
	if i >= n {
		i = n - 1
	}
	if i < 0 {
		i = 0
	}
	return i
}

// Shuffle permutes items in place with Fisher–Yates, walking from the end.
func Shuffle[T any](src Source, items []T) {
	for i := len(items) - 1; i > 0; i-- {
		j := Index(src, i+1)
		items[i], items[j] = items[j], items[i]
	}
}

// Between returns min + u*(max-min).
func Between(src Source, min, max float64) float64 {
	return min + src.Float64()*(max-min)
}

// Script replays a fixed list of values, cycling when exhausted. Useful
// for deterministic tests.
type Script struct {
	values []float64
	next   int
}

// NewScript returns a Script over values; an empty script always yields 0.
func NewScript(values ...float64) *Script {
	return &Script{values: values}
}

func (s *Script) Float64() float64 {
	if len(s.values) == 0 {
		return 0
	}
	v := s.values[s.next%len(s.values)]
	s.next++
	return v
}
