package postgres

import (
	"database/sql"
	"errors"
	"time"

	"github.com/shopspring/decimal"

	"github.com/riskibarqy/pick-grader/internal/domain/pick"
)

func isNotFound(err error) bool {
	return errors.Is(err, sql.ErrNoRows)
}

// dateArgs renders dates as YYYY-MM-DD so they compare against DATE columns without a
// session timezone shift.
func dateArgs(dates []time.Time) []string {
	out := make([]string, 0, len(dates))
	seen := make(map[string]struct{}, len(dates))
	for _, d := range dates {
		v := pick.FormatDate(d)
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}

func nullDecimal(v decimal.NullDecimal) decimal.Decimal {
	if !v.Valid {
		return decimal.Zero
	}
	return v.Decimal
}

func nullBoolPtr(v sql.NullBool) *bool {
	if !v.Valid {
		return nil
	}
	out := v.Bool
	return &out
}

func boolPtrToNull(v *bool) sql.NullBool {
	if v == nil {
		return sql.NullBool{}
	}
	return sql.NullBool{Bool: *v, Valid: true}
}
