package seeder

import (
	"sync"

	"github.com/zeebo/xxh3"
)

// EmailSet remembers every email handed out during a run. It keeps 64-bit
// xxh3 digests instead of the strings: two addresses with the same digest
// are treated as one, which costs an extra draw but never lets a duplicate
// through. Safe for concurrent use.
type EmailSet struct {
	mu   sync.Mutex
	seen map[uint64]struct{}
}

// NewEmailSet sizes the set for about capacity emails.
func NewEmailSet(capacity int) *EmailSet {
	if capacity < 0 {
		capacity = 0
	}
	return &EmailSet{seen: make(map[uint64]struct{}, capacity)}
}

// Claim adds email and reports true, or reports false if it was already present.
func (s *EmailSet) Claim(email string) bool {
	h := xxh3.HashString(email)

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.seen[h]; ok {
		return false
	}
	s.seen[h] = struct{}{}
	return true
}

func (s *EmailSet) Contains(email string) bool {
	h := xxh3.HashString(email)

	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.seen[h]
	return ok
}

func (s *EmailSet) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.seen)
}
