package memory

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/riskibarqy/pick-grader/internal/domain/pick"
	"github.com/riskibarqy/pick-grader/internal/domain/user"
)

var today = time.Date(2025, 3, 1, 15, 0, 0, 0, time.UTC)

func window() []time.Time {
	d := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	return []time.Time{d.AddDate(0, 0, -1), d, d.AddDate(0, 0, 1)}
}

func TestPickRepository_ListPending(t *testing.T) {
	users := NewUserRepository(SeedUsers())
	repo := NewPickRepository(SeedPicks(today), users)

	got, err := repo.ListPending(context.Background(), window())
	require.NoError(t, err)
	require.Len(t, got, 6)

	assert.Equal(t, "Owls", got[0].Team)
	assert.Equal(t, "Wolves", got[len(got)-1].Team)
	for _, p := range got {
		assert.NotEmpty(t, p.UserName)
		assert.NotEmpty(t, p.Description)
	}

	onlyToday, err := repo.ListPending(context.Background(), []time.Time{window()[1]})
	require.NoError(t, err)
	assert.Len(t, onlyToday, 3)
}

func TestPickRepository_UpsertCompletesAndHidesPicks(t *testing.T) {
	repo := NewPickRepository(SeedPicks(today), nil)
	ctx := context.Background()

	pending, err := repo.ListPending(ctx, window())
	require.NoError(t, err)

	var hawks []pick.Pick
	for _, p := range pending {
		if p.Team == "Hawks" {
			hawks = append(hawks, p.Complete(p.ID != "pk-002"))
		}
	}
	require.Len(t, hawks, 3)
	require.NoError(t, repo.UpsertPicks(ctx, hawks))

	after, err := repo.ListPending(ctx, window())
	require.NoError(t, err)
	for _, p := range after {
		assert.NotEqual(t, "Hawks", p.Team)
	}

	rec, ok := repo.Get("pk-002")
	require.True(t, ok)
	assert.Equal(t, pick.StatusCompleted, rec.Status)
	require.NotNil(t, rec.Winner)
	assert.False(t, *rec.Winner)
	assert.Equal(t, "10", rec.Spread.String())
}

func TestPickRepository_UpsertKeepsCompletedOutcome(t *testing.T) {
	repo := NewPickRepository(SeedPicks(today), nil)
	ctx := context.Background()

	rec, ok := repo.Get("pk-001")
	require.True(t, ok)
	original := pick.FromRecord(rec)

	require.NoError(t, repo.UpsertPicks(ctx, []pick.Pick{original.Complete(true)}))
	require.NoError(t, repo.UpsertPicks(ctx, []pick.Pick{original.Complete(false)}))

	rec, ok = repo.Get("pk-001")
	require.True(t, ok)
	assert.Equal(t, pick.StatusCompleted, rec.Status)
	require.NotNil(t, rec.Winner)
	assert.True(t, *rec.Winner)
}

func TestUserRepository_IncrementPointsIsAtomic(t *testing.T) {
	repo := NewUserRepository(SeedUsers())
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := repo.IncrementPoints(ctx, "usr-ana", 1)
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	points, ok, err := repo.GetPoints(ctx, "usr-ana")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, 50, points)
}

func TestUserRepository_UnknownUser(t *testing.T) {
	repo := NewUserRepository(nil)
	ctx := context.Background()

	_, ok, err := repo.GetPoints(ctx, "ghost")
	require.NoError(t, err)
	assert.False(t, ok)

	_, err = repo.IncrementPoints(ctx, "ghost", 1)
	assert.True(t, errors.Is(err, user.ErrUserNotFound))
	assert.True(t, errors.Is(repo.SetPoints(ctx, "ghost", 3), user.ErrUserNotFound))
}

func TestUserRepository_SetPointsRejectsNegative(t *testing.T) {
	repo := NewUserRepository(SeedUsers())
	ctx := context.Background()

	require.NoError(t, repo.SetPoints(ctx, "usr-ana", 4))
	assert.True(t, errors.Is(repo.SetPoints(ctx, "usr-ana", -1), user.ErrInvalidPoints))

	points, _, err := repo.GetPoints(ctx, "usr-ana")
	require.NoError(t, err)
	assert.Equal(t, 4, points)
}
