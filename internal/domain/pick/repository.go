package pick

import (
	"context"
	"time"
)

// Repository exposes the pick persistence operations used by score entry.
type Repository interface {
	// ListPending returns pending picks whose game date is one of dates, joined with the
	// owner's display name and ordered by game date then team.
	ListPending(ctx context.Context, dates []time.Time) ([]Pick, error)
	// UpsertPicks writes all picks in one batch keyed by pick id.
	UpsertPicks(ctx context.Context, picks []Pick) error
}
