package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/riskibarqy/pick-grader/internal/domain/pick"
	qb "github.com/riskibarqy/pick-grader/internal/platform/querybuilder"
)

// Existing rows only take the grading outcome; their wager terms are never rewritten.
// Only pending rows move; a completed pick keeps its first outcome.
const pickUpsertSuffix = "ON CONFLICT (id) DO UPDATE SET " +
	"status = EXCLUDED.status, " +
	"winner = EXCLUDED.winner, " +
	"updated_at = NOW() " +
	"WHERE picks.status = '" + string(pick.StatusPending) + "'"

type PickRepository struct {
	db *sqlx.DB
}

func NewPickRepository(db *sqlx.DB) *PickRepository {
	return &PickRepository{db: db}
}

func (r *PickRepository) ListPending(ctx context.Context, dates []time.Time) ([]pick.Pick, error) {
	query, args, err := listPendingQuery(dates)
	if err != nil {
		return nil, fmt.Errorf("build select pending picks query: %w", err)
	}

	var rows []pickTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select pending picks: %w", err)
	}

	out := make([]pick.Pick, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}
	return out, nil
}

func (r *PickRepository) UpsertPicks(ctx context.Context, picks []pick.Pick) error {
	if len(picks) == 0 {
		return nil
	}

	query, args, err := upsertPicksQuery(picks)
	if err != nil {
		return fmt.Errorf("build upsert picks query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("upsert picks: %w", err)
	}
	return nil
}

func listPendingQuery(dates []time.Time) (string, []any, error) {
	return qb.Select(
		"p.id",
		"p.user_id",
		"u.name AS user_name",
		"p.team",
		"p.spread",
		"p.over_under",
		"p.is_favorite",
		"p.is_over",
		"p.status",
		"p.winner",
		"p.game_date",
	).
		From("picks p").
		Join("LEFT JOIN users u ON u.id = p.user_id").
		Where(
			qb.Eq("p.status", string(pick.StatusPending)),
			qb.In("p.game_date", dateArgs(dates)),
		).
		OrderBy("p.game_date ASC", "p.team ASC").
		ToSQL()
}

func upsertPicksQuery(picks []pick.Pick) (string, []any, error) {
	models := make([]pickTableModel, 0, len(picks))
	for _, p := range picks {
		models = append(models, pickModelFromDomain(p))
	}
	return qb.InsertModels("picks", models, pickUpsertSuffix)
}
