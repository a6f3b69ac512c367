package scoreentry

import (
	"strconv"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/shopspring/decimal"

	"github.com/riskibarqy/pick-grader/internal/domain/pick"
)

var (
	ErrScoreRequired = errors.New("score is required")
	ErrInvalidScore  = errors.New("score must be a non-negative integer")
)

// Scores are the parsed final scores of a game from the picked team's point of view.
type Scores struct {
	Team  int
	Other int
}

func (s Scores) Total() decimal.Decimal {
	return decimal.NewFromInt(int64(s.Team) + int64(s.Other))
}

func (s Scores) Margin() decimal.Decimal {
	return decimal.NewFromInt(int64(s.Team) - int64(s.Other))
}

// ParseScore reads a score typed by an operator.
func ParseScore(raw string) (int, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, ErrScoreRequired
	}

	value, err := strconv.Atoi(raw)
	if err != nil || value < 0 {
		return 0, errors.Wrapf(ErrInvalidScore, "parse score %q", raw)
	}
	return value, nil
}

// ParseScores parses both score fields of a game.
func ParseScores(teamScore, otherScore string) (Scores, error) {
	team, err := ParseScore(teamScore)
	if err != nil {
		return Scores{}, errors.Wrap(err, "team score")
	}
	other, err := ParseScore(otherScore)
	if err != nil {
		return Scores{}, errors.Wrap(err, "other score")
	}
	return Scores{Team: team, Other: other}, nil
}

// Result is the outcome of one graded pick.
type Result struct {
	Pick pick.Pick
	Won  bool
}

// Grade decides every pick of the game against the final scores. A margin landing exactly
// on the spread line is a loss.
func Grade(game Game, scores Scores) []Result {
	picks := game.Picks()
	out := make([]Result, 0, len(picks))
	for _, p := range picks {
		out = append(out, Result{Pick: p, Won: Wins(p.Wager, scores)})
	}
	return out
}

// Wins decides a single wager.
func Wins(wager pick.Wager, scores Scores) bool {
	switch w := wager.(type) {
	case pick.OverUnderWager:
		return scores.Total().GreaterThan(w.Threshold) == w.IsOver
	case pick.SpreadWager:
		return scores.Margin().GreaterThan(w.Line())
	default:
		return false
	}
}

// Winners counts winning results per user.
func Winners(results []Result) map[string]int {
	out := make(map[string]int)
	for _, r := range results {
		if r.Won {
			out[r.Pick.UserID]++
		}
	}
	return out
}

// Completed returns the picks of results transitioned to completed with their outcome.
func Completed(results []Result) []pick.Pick {
	out := make([]pick.Pick, 0, len(results))
	for _, r := range results {
		out = append(out, r.Pick.Complete(r.Won))
	}
	return out
}
