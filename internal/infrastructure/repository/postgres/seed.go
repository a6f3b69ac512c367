package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/riskibarqy/pick-grader/internal/infrastructure/repository/memory"
	qb "github.com/riskibarqy/pick-grader/internal/platform/querybuilder"
)

// BootstrapSeed loads demo users and pending picks around today into an empty database.
func BootstrapSeed(ctx context.Context, db *sqlx.DB, today time.Time) error {
	var count int
	if err := db.GetContext(ctx, &count, `SELECT COUNT(1) FROM users`); err != nil {
		return fmt.Errorf("count users for bootstrap seed: %w", err)
	}
	if count > 0 {
		return nil
	}

	tx, err := db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin seed tx: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	for _, u := range memory.SeedUsers() {
		if err := u.Validate(); err != nil {
			return fmt.Errorf("seed user: %w", err)
		}
		query, args, err := qb.InsertInto("users").
			Columns("id", "name", "points").
			Values(u.ID, u.Name, u.Points).
			Suffix("ON CONFLICT (id) DO NOTHING").
			ToSQL()
		if err != nil {
			return fmt.Errorf("build seed user %s query: %w", u.ID, err)
		}
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("seed user %s: %w", u.ID, err)
		}
	}

	picks := memory.SeedPicks(today)
	if len(picks) > 0 {
		query, args, err := upsertPicksQuery(picks)
		if err != nil {
			return fmt.Errorf("build seed picks query: %w", err)
		}
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("seed picks: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit seed tx: %w", err)
	}
	return nil
}
