package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/riskibarqy/pick-grader/internal/domain/user"
)

type UserRepository struct {
	mu    sync.RWMutex
	items map[string]user.User
}

func NewUserRepository(users []user.User) *UserRepository {
	items := make(map[string]user.User, len(users))
	for _, u := range users {
		items[u.ID] = u
	}
	return &UserRepository{items: items}
}

func (r *UserRepository) GetPoints(_ context.Context, userID string) (int, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	u, ok := r.items[userID]
	if !ok {
		return 0, false, nil
	}
	return u.Points, true, nil
}

func (r *UserRepository) SetPoints(_ context.Context, userID string, points int) error {
	if err := user.ValidatePoints(points); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	u, ok := r.items[userID]
	if !ok {
		return fmt.Errorf("%w: user=%s", user.ErrUserNotFound, userID)
	}
	u.Points = points
	r.items[userID] = u
	return nil
}

func (r *UserRepository) IncrementPoints(_ context.Context, userID string, delta int) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	u, ok := r.items[userID]
	if !ok {
		return 0, fmt.Errorf("%w: user=%s", user.ErrUserNotFound, userID)
	}
	u.Points += delta
	r.items[userID] = u
	return u.Points, nil
}

// name resolves a display name for the pick join.
func (r *UserRepository) name(userID string) string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.items[userID].Name
}
