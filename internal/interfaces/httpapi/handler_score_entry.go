package httpapi

import (
	"errors"
	"net/http"
	"strings"

	"go.opentelemetry.io/otel/attribute"

	"github.com/riskibarqy/pick-grader/internal/usecase"
)

type submitGameScoresRequest struct {
	Date       string `json:"date" validate:"omitempty,datetime=2006-01-02"`
	TeamScore  string `json:"team_score" validate:"required"`
	OtherScore string `json:"other_score" validate:"required"`
}

type gameScoresRequest struct {
	Team       string `json:"team" validate:"required"`
	TeamScore  string `json:"team_score" validate:"required"`
	OtherScore string `json:"other_score" validate:"required"`
}

type submitScoresBatchRequest struct {
	Date  string              `json:"date" validate:"omitempty,datetime=2006-01-02"`
	Games []gameScoresRequest `json:"games" validate:"required,min=1,dive"`
}

func (h *Handler) ListGames(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListGames")
	defer span.End()

	date, err := h.resolveDate(r.URL.Query().Get("date"))
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	board, err := h.scoreEntryService.ListGames(ctx, date)
	if err != nil {
		h.logger.ErrorContext(ctx, "list games failed", "date", r.URL.Query().Get("date"), "error", err)
		writeErrorWithData(ctx, w, err, boardToDTO(board))
		return
	}

	writeSuccess(ctx, w, http.StatusOK, boardToDTO(board))
}

func (h *Handler) SubmitGameScores(w http.ResponseWriter, r *http.Request) {
	team := strings.TrimSpace(r.PathValue("team"))
	ctx, span := startSpan(r.Context(), "httpapi.Handler.SubmitGameScores",
		attribute.String("score_entry.team", team),
	)
	defer span.End()

	var req submitGameScoresRequest
	if err := h.decodeJSON(w, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}
	date, err := h.resolveDate(req.Date)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	result, err := h.scoreEntryService.SubmitScores(ctx, usecase.SubmitScoresInput{
		Date:       date,
		Team:       team,
		TeamScore:  req.TeamScore,
		OtherScore: req.OtherScore,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "submit game scores failed", "team", team, "error", err)
		if errors.Is(err, usecase.ErrSubmissionFailed) {
			writeErrorWithData(ctx, w, err, submitResultToDTO(result, true))
			return
		}
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, submitResultToDTO(result, true))
}

func (h *Handler) SubmitScoresBatch(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.SubmitScoresBatch")
	defer span.End()

	var req submitScoresBatchRequest
	if err := h.decodeJSON(w, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}
	date, err := h.resolveDate(req.Date)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	games := make([]usecase.GameScoresInput, 0, len(req.Games))
	for _, g := range req.Games {
		games = append(games, usecase.GameScoresInput{
			Team:       g.Team,
			TeamScore:  g.TeamScore,
			OtherScore: g.OtherScore,
		})
	}

	result, err := h.scoreEntryService.SubmitScoresBatch(ctx, usecase.SubmitScoresBatchInput{Date: date, Games: games})
	if err != nil {
		h.logger.WarnContext(ctx, "submit scores batch failed", "games", len(games), "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, batchResultToDTO(result))
}

func (h *Handler) GetUserPoints(w http.ResponseWriter, r *http.Request) {
	userID := strings.TrimSpace(r.PathValue("userID"))
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetUserPoints",
		attribute.String("user.id", userID),
	)
	defer span.End()

	points, err := h.scoreEntryService.GetUserPoints(ctx, userID)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, userPointsDTO{UserID: userID, Points: points})
}
