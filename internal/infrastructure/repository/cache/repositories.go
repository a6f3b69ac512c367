package cache

import (
	"context"
	"strings"
	"time"

	"github.com/riskibarqy/pick-grader/internal/domain/pick"
	"github.com/riskibarqy/pick-grader/internal/domain/user"
	basecache "github.com/riskibarqy/pick-grader/internal/platform/cache"
)

const (
	pendingPicksPrefix = "pick:pending:"
	userPointsPrefix   = "user:points:"
)

// PickRepository caches pending-pick reads. Any upsert drops every cached window.
type PickRepository struct {
	next  pick.Repository
	cache *basecache.Store[[]pick.Pick]
}

func NewPickRepository(next pick.Repository, ttl time.Duration) *PickRepository {
	return &PickRepository{next: next, cache: basecache.NewStore[[]pick.Pick](ttl)}
}

func (r *PickRepository) ListPending(ctx context.Context, dates []time.Time) ([]pick.Pick, error) {
	items, err := r.cache.GetOrLoad(ctx, pendingKey(dates), func(ctx context.Context) ([]pick.Pick, error) {
		return r.next.ListPending(ctx, dates)
	})
	if err != nil {
		return nil, err
	}
	return append([]pick.Pick(nil), items...), nil
}

func (r *PickRepository) UpsertPicks(ctx context.Context, picks []pick.Pick) error {
	defer r.cache.DeletePrefix(ctx, pendingPicksPrefix)
	return r.next.UpsertPicks(ctx, picks)
}

func pendingKey(dates []time.Time) string {
	parts := make([]string, 0, len(dates))
	for _, d := range dates {
		parts = append(parts, pick.FormatDate(d))
	}
	return pendingPicksPrefix + strings.Join(parts, ",")
}

type cachedPoints struct {
	value  int
	exists bool
}

// UserRepository caches point reads; writes go straight through and evict the user.
type UserRepository struct {
	next  user.Repository
	cache *basecache.Store[cachedPoints]
}

func NewUserRepository(next user.Repository, ttl time.Duration) *UserRepository {
	return &UserRepository{next: next, cache: basecache.NewStore[cachedPoints](ttl)}
}

func (r *UserRepository) GetPoints(ctx context.Context, userID string) (int, bool, error) {
	cached, err := r.cache.GetOrLoad(ctx, userPointsPrefix+userID, func(ctx context.Context) (cachedPoints, error) {
		points, exists, err := r.next.GetPoints(ctx, userID)
		if err != nil {
			return cachedPoints{}, err
		}
		return cachedPoints{value: points, exists: exists}, nil
	})
	if err != nil {
		return 0, false, err
	}
	return cached.value, cached.exists, nil
}

func (r *UserRepository) SetPoints(ctx context.Context, userID string, points int) error {
	defer r.cache.Delete(ctx, userPointsPrefix+userID)
	return r.next.SetPoints(ctx, userID, points)
}

func (r *UserRepository) IncrementPoints(ctx context.Context, userID string, delta int) (int, error) {
	defer r.cache.Delete(ctx, userPointsPrefix+userID)
	return r.next.IncrementPoints(ctx, userID, delta)
}
