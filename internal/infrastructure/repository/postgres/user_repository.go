package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/riskibarqy/pick-grader/internal/domain/user"
	qb "github.com/riskibarqy/pick-grader/internal/platform/querybuilder"
)

type UserRepository struct {
	db *sqlx.DB
}

func NewUserRepository(db *sqlx.DB) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) GetPoints(ctx context.Context, userID string) (int, bool, error) {
	query, args, err := qb.Select("points").From("users").
		Where(qb.Eq("id", userID)).
		ToSQL()
	if err != nil {
		return 0, false, fmt.Errorf("build get user points query: %w", err)
	}

	var points int
	if err := r.db.GetContext(ctx, &points, query, args...); err != nil {
		if isNotFound(err) {
			return 0, false, nil
		}
		return 0, false, fmt.Errorf("get user points: %w", err)
	}
	return points, true, nil
}

func (r *UserRepository) SetPoints(ctx context.Context, userID string, points int) error {
	if err := user.ValidatePoints(points); err != nil {
		return err
	}

	query, args, err := qb.Update("users").
		Set("points", points).
		SetExpr("updated_at", "NOW()").
		Where(qb.Eq("id", userID)).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build set user points query: %w", err)
	}

	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("set user points: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("set user points rows affected: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("%w: user=%s", user.ErrUserNotFound, userID)
	}
	return nil
}

// IncrementPoints adds delta in a single UPDATE so concurrent graders never lose an increment.
func (r *UserRepository) IncrementPoints(ctx context.Context, userID string, delta int) (int, error) {
	query, args, err := incrementPointsQuery(userID, delta)
	if err != nil {
		return 0, fmt.Errorf("build increment user points query: %w", err)
	}

	var points int
	if err := r.db.GetContext(ctx, &points, query, args...); err != nil {
		if isNotFound(err) {
			return 0, fmt.Errorf("%w: user=%s", user.ErrUserNotFound, userID)
		}
		return 0, fmt.Errorf("increment user points: %w", err)
	}
	return points, nil
}

func incrementPointsQuery(userID string, delta int) (string, []any, error) {
	return qb.Update("users").
		SetExpr("points", "COALESCE(points, 0) + ?", delta).
		SetExpr("updated_at", "NOW()").
		Where(qb.Eq("id", userID)).
		Suffix("RETURNING points").
		ToSQL()
}
