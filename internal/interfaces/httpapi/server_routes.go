package httpapi

import "net/http"

func registerSystemRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /healthz", handler.Healthz)
}

func registerScoreEntryRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /v1/score-entry/games", handler.ListGames)
	mux.HandleFunc("POST /v1/score-entry/games/{team}/scores", handler.SubmitGameScores)
	mux.HandleFunc("POST /v1/score-entry/scores", handler.SubmitScoresBatch)
}

func registerUserRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /v1/users/{userID}/points", handler.GetUserPoints)
}
