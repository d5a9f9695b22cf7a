package httpapi

import "net/http"

func registerSystemRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /healthz", handler.Healthz)
}

func registerInsightRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /v1/players", handler.ListPlayers)
	mux.HandleFunc("GET /v1/players/{playerID}", handler.GetPlayerInsight)
	mux.HandleFunc("GET /v1/gameweeks/current", handler.GetCurrentGameweekSummary)
	mux.HandleFunc("GET /v1/gameweeks/{gameweek}", handler.GetGameweekSummary)
}

func registerSquadRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /v1/entries/{entryID}/analytics", handler.AnalyzeSquad)
	mux.HandleFunc("GET /v1/entries/{entryID}/replacements/{playerID}", handler.ListReplacements)
}

func registerInternalJobRoutes(mux *http.ServeMux, handler *Handler, internalJobToken string) {
	mux.Handle("POST /v1/internal/jobs/sync-snapshot", RequireInternalJobToken(internalJobToken, http.HandlerFunc(handler.RunSnapshotSyncJob)))
}
