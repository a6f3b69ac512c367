package scoreentry

import (
	"strings"
	"time"

	"github.com/riskibarqy/pick-grader/internal/domain/pick"
)

type GameState string

const (
	StateDisplayed     GameState = "displayed"
	StateScoresEntered GameState = "scores_entered"
	StateSubmitting    GameState = "submitting"
	StateGraded        GameState = "graded"
	StateFailed        GameState = "failed"
)

// Game groups the pending picks of one team inside a date window.
type Game struct {
	Team           string
	GameDate       time.Time
	TeamScore      string
	OtherScore     string
	SpreadPicks    []pick.Pick
	OverUnderPicks []pick.Pick
	State          GameState
}

func newGame(team string, date time.Time) *Game {
	return &Game{
		Team:     team,
		GameDate: date,
		State:    StateDisplayed,
	}
}

// EnterScores records the raw score text. The game is submittable once both are non-empty.
func (g *Game) EnterScores(teamScore, otherScore string) {
	g.TeamScore = teamScore
	g.OtherScore = otherScore
	if g.CanSubmit() {
		g.State = StateScoresEntered
		return
	}
	g.State = StateDisplayed
}

// CanSubmit reports whether both score fields hold text.
func (g Game) CanSubmit() bool {
	return strings.TrimSpace(g.TeamScore) != "" && strings.TrimSpace(g.OtherScore) != ""
}

// Picks returns every pick of the game, spread picks first.
func (g Game) Picks() []pick.Pick {
	out := make([]pick.Pick, 0, len(g.SpreadPicks)+len(g.OverUnderPicks))
	out = append(out, g.SpreadPicks...)
	out = append(out, g.OverUnderPicks...)
	return out
}

func (g Game) PickCount() int {
	return len(g.SpreadPicks) + len(g.OverUnderPicks)
}

func (g *Game) add(p pick.Pick) {
	if p.BetType() == pick.BetTypeOverUnder {
		g.OverUnderPicks = append(g.OverUnderPicks, p)
		return
	}
	g.SpreadPicks = append(g.SpreadPicks, p)
}
