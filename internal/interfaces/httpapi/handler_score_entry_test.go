package httpapi

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	sonic "github.com/bytedance/sonic"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/riskibarqy/pick-grader/internal/infrastructure/repository/memory"
	"github.com/riskibarqy/pick-grader/internal/platform/logging"
	"github.com/riskibarqy/pick-grader/internal/usecase"
)

var seedDay = time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)

type envelope[T any] struct {
	APIVersion string           `json:"apiVersion"`
	Data       T                `json:"data"`
	Error      *googleErrorBody `json:"error"`
}

func newTestRouter(t *testing.T) http.Handler {
	t.Helper()

	users := memory.NewUserRepository(memory.SeedUsers())
	picks := memory.NewPickRepository(memory.SeedPicks(seedDay), users)
	service := usecase.NewScoreEntryService(picks, users, nil, nil, nil, usecase.ScoreEntryConfig{}, logging.NewNop())

	handler := NewHandler(service, logging.NewNop())
	handler.now = func() time.Time { return seedDay.Add(15 * time.Hour) }

	return NewRouter(handler, logging.NewNop(), []string{"*"})
}

func do(t *testing.T, router http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()

	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) envelope[T] {
	t.Helper()

	var out envelope[T]
	require.NoError(t, sonic.Unmarshal(rec.Body.Bytes(), &out))
	return out
}

func TestHandler_ListGames_DefaultsToToday(t *testing.T) {
	router := newTestRouter(t)

	rec := do(t, router, http.MethodGet, "/v1/score-entry/games", "")
	require.Equal(t, http.StatusOK, rec.Code)

	body := decode[boardDTO](t, rec)
	assert.Equal(t, "2025-03-01", body.Data.Date)
	assert.Equal(t, []string{"2025-02-28", "2025-03-01", "2025-03-02"}, body.Data.Window.Dates)
	assert.Contains(t, body.Data.Window.Label, "2025-03-01")

	require.Len(t, body.Data.Games, 3)
	assert.Equal(t, "Owls", body.Data.Games[0].Team)
	assert.Equal(t, "Hawks", body.Data.Games[1].Team)
	assert.Equal(t, "Wolves", body.Data.Games[2].Team)

	hawks := body.Data.Games[1]
	assert.Equal(t, "displayed", hawks.State)
	assert.False(t, hawks.CanSubmit)
	assert.Equal(t, 3, hawks.PickCount)
	require.Len(t, hawks.SpreadPicks, 2)
	require.Len(t, hawks.OverUnderPicks, 1)
	assert.Equal(t, "Ana: Hawks -3.5", hawks.SpreadPicks[0].Display)
	assert.Equal(t, "Ben: Hawks +10", hawks.SpreadPicks[1].Display)
	assert.Equal(t, "Ana: Hawks Over 190.5", hawks.OverUnderPicks[0].Display)
}

func TestHandler_ListGames_InvalidDate(t *testing.T) {
	router := newTestRouter(t)

	rec := do(t, router, http.MethodGet, "/v1/score-entry/games?date=03/01/2025", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandler_SubmitGameScores_HawksScenario(t *testing.T) {
	router := newTestRouter(t)

	rec := do(t, router, http.MethodPost, "/v1/score-entry/games/Hawks/scores",
		`{"date":"2025-03-01","team_score":"100","other_score":"95"}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	body := decode[submitResultDTO](t, rec)
	assert.Equal(t, "graded", body.Data.State)
	assert.Equal(t, "Scores updated successfully for Hawks!", body.Data.Message)
	assert.Equal(t, map[string]int{"usr-ana": 2}, body.Data.PointsAwarded)

	won := map[string]bool{}
	for _, r := range body.Data.Results {
		won[r.PickID] = r.Won
	}
	assert.Equal(t, map[string]bool{"pk-001": true, "pk-002": false, "pk-003": true}, won)

	require.NotNil(t, body.Data.Board)
	require.Len(t, body.Data.Board.Games, 2)
	for _, g := range body.Data.Board.Games {
		assert.NotEqual(t, "Hawks", g.Team)
	}

	rec = do(t, router, http.MethodGet, "/v1/users/usr-ana/points", "")
	require.Equal(t, http.StatusOK, rec.Code)
	points := decode[userPointsDTO](t, rec)
	assert.Equal(t, 2, points.Data.Points)

	rec = do(t, router, http.MethodGet, "/v1/users/usr-ben/points", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 0, decode[userPointsDTO](t, rec).Data.Points)
}

func TestHandler_SubmitGameScores_Rejections(t *testing.T) {
	tests := []struct {
		name string
		path string
		body string
		want int
	}{
		{
			name: "non numeric score",
			path: "/v1/score-entry/games/Hawks/scores",
			body: `{"date":"2025-03-01","team_score":"abc","other_score":"95"}`,
			want: http.StatusBadRequest,
		},
		{
			name: "missing score",
			path: "/v1/score-entry/games/Hawks/scores",
			body: `{"date":"2025-03-01","team_score":"100"}`,
			want: http.StatusBadRequest,
		},
		{
			name: "unknown field",
			path: "/v1/score-entry/games/Hawks/scores",
			body: `{"date":"2025-03-01","team_score":"100","other_score":"95","bonus":1}`,
			want: http.StatusBadRequest,
		},
		{
			name: "malformed date",
			path: "/v1/score-entry/games/Hawks/scores",
			body: `{"date":"1 March","team_score":"100","other_score":"95"}`,
			want: http.StatusBadRequest,
		},
		{
			name: "team without pending picks",
			path: "/v1/score-entry/games/Eagles/scores",
			body: `{"date":"2025-03-01","team_score":"100","other_score":"95"}`,
			want: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := newTestRouter(t)

			rec := do(t, router, http.MethodPost, tt.path, tt.body)
			assert.Equal(t, tt.want, rec.Code, rec.Body.String())

			body := decode[map[string]any](t, rec)
			require.NotNil(t, body.Error)
		})
	}
}

func TestHandler_SubmitScoresBatch(t *testing.T) {
	router := newTestRouter(t)

	rec := do(t, router, http.MethodPost, "/v1/score-entry/scores", `{
		"date": "2025-03-01",
		"games": [
			{"team": "Owls", "team_score": "70", "other_score": "72"},
			{"team": "Eagles", "team_score": "1", "other_score": "2"},
			{"team": "Wolves", "team_score": "80", "other_score": "80"}
		]
	}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	body := decode[batchResultDTO](t, rec)
	assert.Equal(t, 2, body.Data.GradedCount)
	assert.Equal(t, 1, body.Data.FailedCount)
	require.Len(t, body.Data.Items, 3)
	assert.Equal(t, "Owls", body.Data.Items[0].Team)
	assert.Equal(t, "graded", body.Data.Items[0].State)
	assert.Equal(t, "Eagles", body.Data.Items[1].Team)
	assert.NotEmpty(t, body.Data.Items[1].Error)
	assert.Equal(t, "graded", body.Data.Items[2].State)

	require.Len(t, body.Data.Board.Games, 1)
	assert.Equal(t, "Hawks", body.Data.Board.Games[0].Team)
}

func TestHandler_SubmitScoresBatch_EmptyGames(t *testing.T) {
	router := newTestRouter(t)

	rec := do(t, router, http.MethodPost, "/v1/score-entry/scores", `{"games":[]}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandler_GetUserPoints_UnknownUser(t *testing.T) {
	router := newTestRouter(t)

	rec := do(t, router, http.MethodGet, "/v1/users/nobody/points", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestHandler_Healthz(t *testing.T) {
	router := newTestRouter(t)

	rec := do(t, router, http.MethodGet, "/healthz", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", decode[map[string]string](t, rec).Data["status"])
}

func TestRecoverPanic(t *testing.T) {
	panicking := http.HandlerFunc(func(http.ResponseWriter, *http.Request) { panic("boom") })
	handler := recoverPanic(logging.NewNop(), panicking)

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/score-entry/games", nil))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}
