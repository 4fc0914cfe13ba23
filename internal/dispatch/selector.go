package dispatch

import (
	"math/rand"
	"sync"
	"time"
)

// Selector picks one phrasing out of a set of equivalent responses. The
// dispatcher never cares which one comes back, only that something does, so
// tests can pin the choice with a FixedSelector.
type Selector interface {
	Pick(options []string) string
}

// RandomSelector picks uniformly at random. Safe for concurrent use.
type RandomSelector struct {
	mu  sync.Mutex
	rng *rand.Rand
}

func NewRandomSelector() *RandomSelector {
	return &RandomSelector{rng: rand.New(rand.NewSource(time.Now().UnixNano()))}
}

func (s *RandomSelector) Pick(options []string) string {
	if len(options) == 0 {
		return ""
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return options[s.rng.Intn(len(options))]
}

// FixedSelector always picks the option at Index, clamped into range.
type FixedSelector struct {
	Index int
}

func (s FixedSelector) Pick(options []string) string {
	if len(options) == 0 {
		return ""
	}
	i := s.Index
	if i < 0 {
		i = 0
	}
	if i >= len(options) {
		i = len(options) - 1
	}
	return options[i]
}
