package cooldown

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"carberretta/pkg/cache"
)

// RedisStore shares deadlines between bot processes and across restarts.
// Keys expire once their deadline has passed, which reads the same as an
// entry that was never written.
type RedisStore struct {
	cache *cache.Cache
	scope string
}

var _ Store = (*RedisStore)(nil)

// NewRedisStore namespaces keys under scope, e.g. "modmail".
func NewRedisStore(c *cache.Cache, scope string) *RedisStore {
	return &RedisStore{
		cache: c,
		scope: scope,
	}
}

func (s *RedisStore) key(userID string) string {
	return s.cache.Key("cooldown", s.scope, userID)
}

func (s *RedisStore) Deadline(ctx context.Context, userID string) (time.Time, bool, error) {
	raw, err := s.cache.Get(ctx, s.key(userID))
	if errors.Is(err, cache.ErrMiss) {
		return time.Time{}, false, nil
	}
	if err != nil {
		return time.Time{}, false, fmt.Errorf("failed to read cooldown for %s: %w", userID, err)
	}

	nanos, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return time.Time{}, false, fmt.Errorf("corrupt cooldown for %s: %w", userID, err)
	}
	return time.Unix(0, nanos), true, nil
}

func (s *RedisStore) SetDeadline(ctx context.Context, userID string, deadline time.Time) error {
	ttl := time.Until(deadline)
	if ttl <= 0 {
		return s.cache.Delete(ctx, s.key(userID))
	}

	// Round up so the key never disappears before the deadline.
	ttl = ttl.Truncate(time.Second) + time.Second
	if err := s.cache.Set(ctx, s.key(userID), strconv.FormatInt(deadline.UnixNano(), 10), ttl); err != nil {
		return fmt.Errorf("failed to store cooldown for %s: %w", userID, err)
	}
	return nil
}
