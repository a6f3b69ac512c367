package pick

import (
	"time"

	"github.com/shopspring/decimal"
)

// DateLayout is the calendar-date format used for game dates everywhere in the service.
const DateLayout = "2006-01-02"

type Status string

const (
	StatusPending   Status = "pending"
	StatusCompleted Status = "completed"
)

type BetType string

const (
	BetTypeSpread    BetType = "spread"
	BetTypeOverUnder BetType = "over_under"
)

// Wager holds the terms of exactly one bet variant.
type Wager interface {
	BetType() BetType
}

// SpreadWager bets that the team's margin beats a handicap line.
type SpreadWager struct {
	Spread     decimal.Decimal
	IsFavorite bool
}

func (SpreadWager) BetType() BetType { return BetTypeSpread }

// Line is the margin the team has to exceed: -spread for a favorite, +spread otherwise.
func (w SpreadWager) Line() decimal.Decimal {
	if w.IsFavorite {
		return w.Spread.Neg()
	}
	return w.Spread
}

// OverUnderWager bets on the combined score against a threshold.
type OverUnderWager struct {
	Threshold decimal.Decimal
	IsOver    bool
}

func (OverUnderWager) BetType() BetType { return BetTypeOverUnder }

// Pick is one user's wager on a team's game.
type Pick struct {
	ID          string
	UserID      string
	UserName    string
	Team        string
	GameDate    time.Time
	Wager       Wager
	Status      Status
	Winner      *bool
	Description string

	// raw keeps the stored wager columns so a write-back never alters the original terms.
	raw Record
}

func (p Pick) BetType() BetType {
	if p.Wager == nil {
		return BetTypeSpread
	}
	return p.Wager.BetType()
}

func (p Pick) IsCompleted() bool {
	return p.Status == StatusCompleted
}

// Complete returns a copy of the pick transitioned to completed with the given outcome.
func (p Pick) Complete(won bool) Pick {
	p.Status = StatusCompleted
	p.Winner = &won
	return p
}

// Record is the persisted row shape shared by both bet variants.
type Record struct {
	ID         string
	UserID     string
	UserName   string
	Team       string
	Spread     decimal.Decimal
	OverUnder  decimal.Decimal
	IsFavorite bool
	IsOver     *bool
	Status     Status
	Winner     *bool
	GameDate   time.Time
}

// Record converts the pick back to its row shape, keeping the stored wager terms.
func (p Pick) Record() Record {
	out := p.raw
	out.ID = p.ID
	out.UserID = p.UserID
	out.UserName = p.UserName
	out.Team = p.Team
	out.GameDate = p.GameDate
	out.Status = p.Status
	out.Winner = p.Winner

	switch w := p.Wager.(type) {
	case SpreadWager:
		if !p.hasRaw() {
			out.Spread = w.Spread
			out.IsFavorite = w.IsFavorite
		}
	case OverUnderWager:
		if !p.hasRaw() {
			out.OverUnder = w.Threshold
			isOver := w.IsOver
			out.IsOver = &isOver
		}
	}

	return out
}

func (p Pick) hasRaw() bool {
	return p.raw.ID != ""
}

func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}

func ParseDate(raw string) (time.Time, error) {
	return time.ParseInLocation(DateLayout, raw, time.UTC)
}
