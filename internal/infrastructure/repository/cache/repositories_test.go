package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/riskibarqy/pick-grader/internal/domain/pick"
	pickmock "github.com/riskibarqy/pick-grader/internal/mocks/domain/pick"
	basecache "github.com/riskibarqy/pick-grader/internal/platform/cache"
	usermock "github.com/riskibarqy/pick-grader/internal/mocks/domain/user"
)

func TestPickRepository_CachesUntilUpsert(t *testing.T) {
	ctx := context.Background()
	next := pickmock.NewRepository(t)
	repo := NewPickRepository(next, time.Minute)

	dates := []time.Time{time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)}
	rows := []pick.Pick{{ID: "p1", Team: "Hawks"}}

	next.On("ListPending", mock.Anything, dates).Return(rows, nil).Twice()
	next.On("UpsertPicks", ctx, mock.Anything).Return(nil).Once()

	for i := 0; i < 3; i++ {
		got, err := repo.ListPending(ctx, dates)
		require.NoError(t, err)
		assert.Len(t, got, 1)
	}

	require.NoError(t, repo.UpsertPicks(ctx, rows))

	_, err := repo.ListPending(ctx, dates)
	require.NoError(t, err)
}

func TestPickRepository_WithoutCacheReadsThrough(t *testing.T) {
	ctx := context.Background()
	next := pickmock.NewRepository(t)
	repo := NewPickRepository(next, time.Minute)

	dates := []time.Time{time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)}
	stale := []pick.Pick{{ID: "p1", Team: "Hawks"}}

	next.On("ListPending", mock.Anything, dates).Return(stale, nil).Once()
	next.On("ListPending", mock.Anything, dates).Return([]pick.Pick{}, nil).Once()

	got, err := repo.ListPending(ctx, dates)
	require.NoError(t, err)
	assert.Len(t, got, 1)

	got, err = repo.ListPending(basecache.WithoutCache(ctx), dates)
	require.NoError(t, err)
	assert.Empty(t, got)

	got, err = repo.ListPending(ctx, dates)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestUserRepository_IncrementEvictsPoints(t *testing.T) {
	ctx := context.Background()
	next := usermock.NewRepository(t)
	repo := NewUserRepository(next, time.Minute)

	next.On("GetPoints", mock.Anything, "u1").Return(1, true, nil).Once()
	next.On("IncrementPoints", ctx, "u1", 1).Return(2, nil).Once()
	next.On("GetPoints", mock.Anything, "u1").Return(2, true, nil).Once()

	points, _, err := repo.GetPoints(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, 1, points)
	points, _, _ = repo.GetPoints(ctx, "u1")
	assert.Equal(t, 1, points)

	_, err = repo.IncrementPoints(ctx, "u1", 1)
	require.NoError(t, err)

	points, _, err = repo.GetPoints(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, 2, points)
}
