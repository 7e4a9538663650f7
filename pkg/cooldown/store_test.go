package cooldown

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStore(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	_, ok, err := s.Deadline(ctx, "user1")
	require.NoError(t, err)
	assert.False(t, ok, "unseen users have no entry")

	deadline := time.Date(2026, 10, 17, 12, 0, 0, 0, time.UTC)
	require.NoError(t, s.SetDeadline(ctx, "user1", deadline))

	got, ok, err := s.Deadline(ctx, "user1")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.True(t, deadline.Equal(got))

	// Overwritten on every accepted send
	later := deadline.Add(time.Hour)
	require.NoError(t, s.SetDeadline(ctx, "user1", later))
	got, _, _ = s.Deadline(ctx, "user1")
	assert.True(t, later.Equal(got))

	// Expired entries are kept; eligibility is decided by the caller
	require.NoError(t, s.SetDeadline(ctx, "user2", time.Unix(0, 0)))
	_, ok, _ = s.Deadline(ctx, "user2")
	assert.True(t, ok)
	assert.Equal(t, 2, s.Len())
}

func TestMemoryStore_Concurrent(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			s.SetDeadline(ctx, "user", time.Unix(int64(i), 0))
			s.Deadline(ctx, "user")
		}(i)
	}
	wg.Wait()

	assert.Equal(t, 1, s.Len())
}
