package handlers

import (
	"context"
	"net/http"

	"github.com/nhlcentral/stats-api/internal/cache"
)

// RawGames dumps the games table as-is.
func (h *Handler) RawGames(w http.ResponseWriter, r *http.Request) {
	h.serveDirect(w, r, h.adapter.RawGames)
}

// RawReports dumps the report table(s); the dual-table variants return a
// VS/SO envelope, the legacy variant a flat merge.
func (h *Handler) RawReports(w http.ResponseWriter, r *http.Request) {
	h.serveDirect(w, r, h.adapter.RawReports)
}

// GamesOverview returns the combined games listing
// @Summary Games listing with per-team breakdown
// @Produce json
// @Router /{prefix}/api/games [get]
func (h *Handler) GamesOverview(w http.ResponseWriter, r *http.Request) {
	h.serveCached(w, r, h.keys.Games(), cache.TTLListing, h.adapter.GamesOverview)
}

// GameReports returns the reports filed for one game.
func (h *Handler) GameReports(w http.ResponseWriter, r *http.Request) {
	id, ok := urlID(r, "id")
	if !ok {
		h.errorResponse(w, http.StatusBadRequest, "invalid game id")
		return
	}
	h.serveDirect(w, r, func(ctx context.Context) (any, error) {
		return h.adapter.ReportsForGame(ctx, id)
	})
}

// GameSummary returns per-side score totals and the winner for one game
// @Summary Game summary
// @Produce json
// @Failure 404 "unknown game"
// @Router /{prefix}/api/games/{id}/summary [get]
func (h *Handler) GameSummary(w http.ResponseWriter, r *http.Request) {
	id, ok := urlID(r, "id")
	if !ok {
		h.errorResponse(w, http.StatusBadRequest, "invalid game id")
		return
	}
	h.serveDirect(w, r, func(ctx context.Context) (any, error) {
		return h.adapter.GameSummary(ctx, id)
	})
}
