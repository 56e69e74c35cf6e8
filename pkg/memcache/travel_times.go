package mem

import (
	"sync"
	"time"
)

// TravelTimeStore keeps recently computed pairwise travel times in-process,
// so repeated plan requests over the same city do not re-hit the routing
// provider pair by pair. Pairs are symmetric: (a,b) and (b,a) share an entry.
type TravelTimeStore interface {
	Get(a, b string) (float64, bool)
	Set(a, b string, minutes float64, ttl time.Duration)
}

type pairKey struct {
	A string
	B string
}

func normalizePair(a, b string) pairKey {
	if b < a {
		a, b = b, a
	}
	return pairKey{A: a, B: b}
}

type entry struct {
	minutes   float64
	expiresAt time.Time
}

type TravelTimes struct {
	mu   sync.RWMutex
	data map[pairKey]entry
}

func NewTravelTimes() *TravelTimes {
	return &TravelTimes{
		data: make(map[pairKey]entry),
	}
}

func (s *TravelTimes) Get(a, b string) (float64, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	e, ok := s.data[normalizePair(a, b)]
	if !ok || time.Now().After(e.expiresAt) {
		return 0, false
	}
	return e.minutes, true
}

func (s *TravelTimes) Set(a, b string, minutes float64, ttl time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[normalizePair(a, b)] = entry{
		minutes:   minutes,
		expiresAt: time.Now().Add(ttl),
	}
}
