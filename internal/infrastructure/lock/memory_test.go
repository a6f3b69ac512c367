package lock

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryLocker_ExclusiveUntilReleased(t *testing.T) {
	ctx := context.Background()
	locker := NewMemoryLocker()

	release, ok, err := locker.TryLock(ctx, "score-entry:2025-03-01:hawks", time.Minute)
	require.NoError(t, err)
	require.True(t, ok)

	_, ok, err = locker.TryLock(ctx, "score-entry:2025-03-01:hawks", time.Minute)
	require.NoError(t, err)
	assert.False(t, ok)

	_, ok, _ = locker.TryLock(ctx, "score-entry:2025-03-01:owls", time.Minute)
	assert.True(t, ok)

	require.NoError(t, release(ctx))
	_, ok, _ = locker.TryLock(ctx, "score-entry:2025-03-01:hawks", time.Minute)
	assert.True(t, ok)
}

func TestMemoryLocker_ExpiredLockCanBeTaken(t *testing.T) {
	ctx := context.Background()
	locker := NewMemoryLocker()
	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	locker.now = func() time.Time { return now }

	staleRelease, ok, _ := locker.TryLock(ctx, "k", time.Second)
	require.True(t, ok)

	now = now.Add(2 * time.Second)
	_, ok, _ = locker.TryLock(ctx, "k", time.Minute)
	require.True(t, ok)

	require.NoError(t, staleRelease(ctx))
	_, ok, _ = locker.TryLock(ctx, "k", time.Minute)
	assert.False(t, ok, "stale release must not drop the newer holder")
}
