package memory

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/riskibarqy/pick-grader/internal/domain/pick"
	"github.com/riskibarqy/pick-grader/internal/domain/user"
)

func SeedUsers() []user.User {
	return []user.User{
		{ID: "usr-ana", Name: "Ana", Points: 0},
		{ID: "usr-ben", Name: "Ben", Points: 0},
		{ID: "usr-cleo", Name: "Cleo", Points: 0},
	}
}

// SeedPicks returns pending picks spread over the window around today.
func SeedPicks(today time.Time) []pick.Pick {
	y, m, d := today.UTC().Date()
	day := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	over, under := true, false

	records := []pick.Record{
		{ID: "pk-001", UserID: "usr-ana", Team: "Hawks", Spread: decimal.RequireFromString("3.5"), IsFavorite: true, GameDate: day},
		{ID: "pk-002", UserID: "usr-ben", Team: "Hawks", Spread: decimal.RequireFromString("10"), GameDate: day},
		{ID: "pk-003", UserID: "usr-ana", Team: "Hawks", OverUnder: decimal.RequireFromString("190.5"), IsOver: &over, GameDate: day},
		{ID: "pk-004", UserID: "usr-cleo", Team: "Owls", Spread: decimal.RequireFromString("6.5"), GameDate: day.AddDate(0, 0, -1)},
		{ID: "pk-005", UserID: "usr-ben", Team: "Owls", OverUnder: decimal.RequireFromString("145"), IsOver: &under, GameDate: day.AddDate(0, 0, -1)},
		{ID: "pk-006", UserID: "usr-cleo", Team: "Wolves", Spread: decimal.Zero, GameDate: day.AddDate(0, 0, 1)},
	}

	out := make([]pick.Pick, 0, len(records))
	for _, r := range records {
		r.Status = pick.StatusPending
		out = append(out, pick.FromRecord(r))
	}
	return out
}
