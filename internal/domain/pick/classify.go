package pick

import (
	"strings"
)

// Classify infers the bet variant of a stored row. A row is an over/under bet only when
// its over flag is set and its threshold is strictly positive; everything else is a spread bet.
func Classify(r Record) BetType {
	if r.IsOver != nil && r.OverUnder.IsPositive() {
		return BetTypeOverUnder
	}
	return BetTypeSpread
}

// FromRecord builds a Pick from a stored row. The variant is decided here once; fields
// of the other variant are dropped.
func FromRecord(r Record) Pick {
	var wager Wager
	switch Classify(r) {
	case BetTypeOverUnder:
		wager = OverUnderWager{Threshold: r.OverUnder, IsOver: *r.IsOver}
	default:
		wager = SpreadWager{Spread: r.Spread, IsFavorite: r.IsFavorite}
	}

	return Pick{
		ID:          r.ID,
		UserID:      r.UserID,
		UserName:    r.UserName,
		Team:        r.Team,
		GameDate:    r.GameDate,
		Wager:       wager,
		Status:      r.Status,
		Winner:      r.Winner,
		Description: Describe(r.Team, wager),
		raw:         r,
	}
}

// Describe renders a pick for display, e.g. "Hawks -6.5" or "Hawks Over 145".
func Describe(team string, wager Wager) string {
	team = strings.TrimSpace(team)

	switch w := wager.(type) {
	case OverUnderWager:
		side := "Under"
		if w.IsOver {
			side = "Over"
		}
		return team + " " + side + " " + w.Threshold.String()
	case SpreadWager:
		if w.Spread.IsZero() {
			return team + " PK"
		}
		line := w.Spread.Abs().String()
		if w.IsFavorite {
			return team + " -" + line
		}
		return team + " +" + line
	default:
		return team
	}
}
