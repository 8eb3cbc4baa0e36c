package httpapi

import "net/http"

func newRouter(cfg ServerConfig, h *Handler) *http.ServeMux {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /healthz", h.handleHealthz)

	mux.HandleFunc("GET /v1/board", h.handleBoardSummary)
	mux.HandleFunc("GET /v1/board/available", h.handleAvailable)
	mux.HandleFunc("GET /v1/board/power-ranking", h.handlePowerRanking)
	mux.HandleFunc("GET /v1/board/roster", h.handleRoster)
	mux.HandleFunc("GET /v1/board/unresolved", h.handleUnresolved)
	mux.HandleFunc("POST /v1/board/refresh", h.handleRefresh)

	mux.Handle("POST /v1/internal/jobs/resync",
		RequireInternalJobToken(cfg.InternalJobToken)(http.HandlerFunc(h.handleResync)))

	return mux
}
