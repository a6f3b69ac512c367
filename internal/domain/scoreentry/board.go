package scoreentry

import (
	"sort"
	"time"

	"github.com/riskibarqy/pick-grader/internal/domain/pick"
)

// Board is the set of games shown for one selected date.
type Board struct {
	Date  time.Time
	games map[string]*Game
	order []string
}

// Aggregate groups pending picks into one game per team. A game's date is the date of the
// first pick seen for its team; later picks of the same team on another date in the window
// land in the same game.
func Aggregate(date time.Time, picks []pick.Pick) Board {
	board := Board{
		Date:  Day(date),
		games: make(map[string]*Game),
	}

	for _, p := range picks {
		game, ok := board.games[p.Team]
		if !ok {
			game = newGame(p.Team, p.GameDate)
			board.games[p.Team] = game
			board.order = append(board.order, p.Team)
		}
		if p.Description == "" {
			p.Description = pick.Describe(p.Team, p.Wager)
		}
		game.add(p)
	}

	return board
}

// Dates returns the date window the board was loaded for.
func (b Board) Dates() []time.Time {
	return Window(b.Date)
}

func (b Board) Len() int {
	return len(b.games)
}

// Teams returns the distinct team names on the board in first-seen order.
func (b Board) Teams() []string {
	out := make([]string, 0, len(b.order))
	for _, team := range b.order {
		if _, ok := b.games[team]; ok {
			out = append(out, team)
		}
	}
	return out
}

// Game returns the game keyed by team.
func (b Board) Game(team string) (*Game, bool) {
	game, ok := b.games[team]
	return game, ok
}

// Games returns the games ordered by game date, then team.
func (b Board) Games() []Game {
	out := make([]Game, 0, len(b.games))
	for _, team := range b.Teams() {
		out = append(out, *b.games[team])
	}
	sort.SliceStable(out, func(i, j int) bool {
		if !out[i].GameDate.Equal(out[j].GameDate) {
			return out[i].GameDate.Before(out[j].GameDate)
		}
		return out[i].Team < out[j].Team
	})
	return out
}

// Remove drops a graded game from the board.
func (b *Board) Remove(team string) bool {
	if _, ok := b.games[team]; !ok {
		return false
	}
	delete(b.games, team)
	return true
}
