package httpapi

import (
	"strings"

	"github.com/riskibarqy/pick-grader/internal/domain/pick"
	"github.com/riskibarqy/pick-grader/internal/domain/scoreentry"
	"github.com/riskibarqy/pick-grader/internal/usecase"
)

type boardDTO struct {
	Date   string    `json:"date"`
	Window windowDTO `json:"window"`
	Games  []gameDTO `json:"games"`
}

type windowDTO struct {
	Dates []string `json:"dates"`
	Label string   `json:"label"`
}

type gameDTO struct {
	Team           string    `json:"team"`
	GameDate       string    `json:"game_date"`
	State          string    `json:"state"`
	TeamScore      string    `json:"team_score"`
	OtherScore     string    `json:"other_score"`
	CanSubmit      bool      `json:"can_submit"`
	PickCount      int       `json:"pick_count"`
	SpreadPicks    []pickDTO `json:"spread_picks"`
	OverUnderPicks []pickDTO `json:"over_under_picks"`
}

type pickDTO struct {
	ID          string `json:"id"`
	UserID      string `json:"user_id"`
	UserName    string `json:"user_name"`
	BetType     string `json:"bet_type"`
	Description string `json:"description"`
	Display     string `json:"display"`
}

type gradedPickDTO struct {
	PickID      string `json:"pick_id"`
	UserID      string `json:"user_id"`
	BetType     string `json:"bet_type"`
	Description string `json:"description"`
	Won         bool   `json:"won"`
}

type submitResultDTO struct {
	Team          string          `json:"team"`
	State         string          `json:"state"`
	Message       string          `json:"message,omitempty"`
	Results       []gradedPickDTO `json:"results"`
	PointsAwarded map[string]int  `json:"points_awarded"`
	Board         *boardDTO       `json:"board,omitempty"`
}

type batchItemDTO struct {
	submitResultDTO
	Error string `json:"error,omitempty"`
}

type batchResultDTO struct {
	Items       []batchItemDTO `json:"items"`
	GradedCount int            `json:"graded_count"`
	FailedCount int            `json:"failed_count"`
	Board       boardDTO       `json:"board"`
}

type userPointsDTO struct {
	UserID string `json:"user_id"`
	Points int    `json:"points"`
}

func boardToDTO(b scoreentry.Board) boardDTO {
	dates := b.Dates()
	out := boardDTO{
		Date: pick.FormatDate(b.Date),
		Window: windowDTO{
			Dates: make([]string, 0, len(dates)),
			Label: scoreentry.WindowLabel(b.Date),
		},
		Games: make([]gameDTO, 0, b.Len()),
	}
	for _, d := range dates {
		out.Window.Dates = append(out.Window.Dates, pick.FormatDate(d))
	}
	for _, g := range b.Games() {
		out.Games = append(out.Games, gameToDTO(g))
	}
	return out
}

func gameToDTO(g scoreentry.Game) gameDTO {
	return gameDTO{
		Team:           g.Team,
		GameDate:       pick.FormatDate(g.GameDate),
		State:          string(g.State),
		TeamScore:      g.TeamScore,
		OtherScore:     g.OtherScore,
		CanSubmit:      g.CanSubmit(),
		PickCount:      g.PickCount(),
		SpreadPicks:    picksToDTO(g.SpreadPicks),
		OverUnderPicks: picksToDTO(g.OverUnderPicks),
	}
}

func picksToDTO(picks []pick.Pick) []pickDTO {
	out := make([]pickDTO, 0, len(picks))
	for _, p := range picks {
		out = append(out, pickDTO{
			ID:          p.ID,
			UserID:      p.UserID,
			UserName:    p.UserName,
			BetType:     string(p.BetType()),
			Description: p.Description,
			Display:     pickDisplayLine(p),
		})
	}
	return out
}

// pickDisplayLine renders "<user name>: <description>", falling back to the user id.
func pickDisplayLine(p pick.Pick) string {
	name := strings.TrimSpace(p.UserName)
	if name == "" {
		name = p.UserID
	}
	return name + ": " + p.Description
}

func submitResultToDTO(r usecase.SubmitScoresResult, withBoard bool) submitResultDTO {
	out := submitResultDTO{
		Team:          r.Team,
		State:         string(r.State),
		Message:       r.Message,
		Results:       make([]gradedPickDTO, 0, len(r.Results)),
		PointsAwarded: r.PointsAwarded,
	}
	if out.PointsAwarded == nil {
		out.PointsAwarded = map[string]int{}
	}
	for _, res := range r.Results {
		out.Results = append(out.Results, gradedPickDTO{
			PickID:      res.Pick.ID,
			UserID:      res.Pick.UserID,
			BetType:     string(res.Pick.BetType()),
			Description: res.Pick.Description,
			Won:         res.Won,
		})
	}
	if withBoard {
		board := boardToDTO(r.Board)
		out.Board = &board
	}
	return out
}

func batchResultToDTO(r usecase.SubmitScoresBatchResult) batchResultDTO {
	out := batchResultDTO{
		Items:       make([]batchItemDTO, 0, len(r.Items)),
		GradedCount: r.GradedCount,
		FailedCount: r.FailedCount,
		Board:       boardToDTO(r.Board),
	}
	for _, item := range r.Items {
		dto := batchItemDTO{submitResultDTO: submitResultToDTO(item.SubmitScoresResult, false)}
		if item.Err != nil {
			dto.Error = item.Err.Error()
		}
		out.Items = append(out.Items, dto)
	}
	return out
}
