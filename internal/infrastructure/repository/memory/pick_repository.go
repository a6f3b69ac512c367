package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/riskibarqy/pick-grader/internal/domain/pick"
)

type PickRepository struct {
	mu    sync.RWMutex
	items map[string]pick.Record
	users *UserRepository
}

// NewPickRepository keeps picks keyed by id. users, when set, supplies display names.
func NewPickRepository(picks []pick.Pick, users *UserRepository) *PickRepository {
	items := make(map[string]pick.Record, len(picks))
	for _, p := range picks {
		items[p.ID] = p.Record()
	}
	return &PickRepository{items: items, users: users}
}

func (r *PickRepository) ListPending(_ context.Context, dates []time.Time) ([]pick.Pick, error) {
	wanted := make(map[string]struct{}, len(dates))
	for _, d := range dates {
		wanted[pick.FormatDate(d)] = struct{}{}
	}

	r.mu.RLock()
	out := make([]pick.Pick, 0, len(r.items))
	for _, rec := range r.items {
		if rec.Status != pick.StatusPending {
			continue
		}
		if _, ok := wanted[pick.FormatDate(rec.GameDate)]; !ok {
			continue
		}
		if r.users != nil {
			rec.UserName = r.users.name(rec.UserID)
		}
		out = append(out, pick.FromRecord(rec))
	}
	r.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool {
		if !out[i].GameDate.Equal(out[j].GameDate) {
			return out[i].GameDate.Before(out[j].GameDate)
		}
		if out[i].Team != out[j].Team {
			return out[i].Team < out[j].Team
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

// UpsertPicks inserts new picks and only moves status and outcome on existing pending ones.
// Completed rows are left as they are.
func (r *PickRepository) UpsertPicks(_ context.Context, picks []pick.Pick) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, p := range picks {
		next := p.Record()
		if current, ok := r.items[p.ID]; ok {
			if current.Status != pick.StatusPending {
				continue
			}
			current.Status = next.Status
			current.Winner = next.Winner
			r.items[p.ID] = current
			continue
		}
		r.items[p.ID] = next
	}
	return nil
}

// Get returns the stored row of a pick.
func (r *PickRepository) Get(id string) (pick.Record, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	rec, ok := r.items[id]
	return rec, ok
}
