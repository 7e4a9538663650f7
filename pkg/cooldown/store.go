// Package cooldown tracks when each user may next use a rate limited action.
//
// A store only records deadlines. Whether a user is still cooling down is
// computed by the caller against the current time, so nothing ever has to
// fire when a cooldown ends.
package cooldown

import (
	"context"
	"sync"
	"time"
)

type Store interface {
	// Deadline returns the stored deadline for userID. ok is false when the
	// user has never been put on cooldown (or the entry expired), which means
	// they are eligible now.
	Deadline(ctx context.Context, userID string) (deadline time.Time, ok bool, err error)
	// SetDeadline records the next time userID becomes eligible, replacing any
	// previous deadline.
	SetDeadline(ctx context.Context, userID string, deadline time.Time) error
}

// MemoryStore keeps deadlines for the lifetime of the process. Entries are
// never evicted.
type MemoryStore struct {
	mu        sync.RWMutex
	deadlines map[string]time.Time
}

var _ Store = (*MemoryStore)(nil)

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		deadlines: make(map[string]time.Time),
	}
}

func (s *MemoryStore) Deadline(ctx context.Context, userID string) (time.Time, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	d, ok := s.deadlines[userID]
	return d, ok, nil
}

func (s *MemoryStore) SetDeadline(ctx context.Context, userID string, deadline time.Time) error {
	s.mu.Lock()
	s.deadlines[userID] = deadline
	s.mu.Unlock()
	return nil
}

func (s *MemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.deadlines)
}
