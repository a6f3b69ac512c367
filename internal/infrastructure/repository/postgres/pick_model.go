package postgres

import (
	"database/sql"
	"time"

	"github.com/shopspring/decimal"

	"github.com/riskibarqy/pick-grader/internal/domain/pick"
)

type pickTableModel struct {
	ID         string              `db:"id"`
	UserID     string              `db:"user_id"`
	UserName   sql.NullString      `db:"user_name" insert:"-"`
	Team       string              `db:"team"`
	Spread     decimal.NullDecimal `db:"spread"`
	OverUnder  decimal.NullDecimal `db:"over_under"`
	IsFavorite sql.NullBool        `db:"is_favorite"`
	IsOver     sql.NullBool        `db:"is_over"`
	Status     string              `db:"status"`
	Winner     sql.NullBool        `db:"winner"`
	GameDate   time.Time           `db:"game_date"`
}

func (m pickTableModel) toDomain() pick.Pick {
	return pick.FromRecord(pick.Record{
		ID:         m.ID,
		UserID:     m.UserID,
		UserName:   m.UserName.String,
		Team:       m.Team,
		Spread:     nullDecimal(m.Spread),
		OverUnder:  nullDecimal(m.OverUnder),
		IsFavorite: m.IsFavorite.Valid && m.IsFavorite.Bool,
		IsOver:     nullBoolPtr(m.IsOver),
		Status:     pick.Status(m.Status),
		Winner:     nullBoolPtr(m.Winner),
		GameDate:   m.GameDate,
	})
}

func pickModelFromDomain(p pick.Pick) pickTableModel {
	r := p.Record()
	return pickTableModel{
		ID:         r.ID,
		UserID:     r.UserID,
		Team:       r.Team,
		Spread:     decimal.NullDecimal{Decimal: r.Spread, Valid: true},
		OverUnder:  decimal.NullDecimal{Decimal: r.OverUnder, Valid: true},
		IsFavorite: sql.NullBool{Bool: r.IsFavorite, Valid: true},
		IsOver:     boolPtrToNull(r.IsOver),
		Status:     string(r.Status),
		Winner:     boolPtrToNull(r.Winner),
		GameDate:   r.GameDate,
	}
}
