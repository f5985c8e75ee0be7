package handlers

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/nhlcentral/stats-api/internal/adapter"
	"github.com/nhlcentral/stats-api/internal/cache"
)

// GetLeaderboard returns players ranked by total goals within a range
// @Summary Leaderboard
// @Param range path string true "day, week, month, or anything for all time"
// @Produce json
// @Router /{prefix}/api/leaderboard/{range} [get]
func (h *Handler) GetLeaderboard(w http.ResponseWriter, r *http.Request) {
	rng := chi.URLParam(r, "range")

	h.serveCached(w, r, h.keys.Leaderboard(rng), cache.TTLAggregate, func(ctx context.Context) (any, error) {
		return h.adapter.Leaderboard(ctx, rng)
	})
}

// GlobalStats returns variant-wide totals.
func (h *Handler) GlobalStats(w http.ResponseWriter, r *http.Request) {
	h.serveCached(w, r, h.keys.GlobalStats(), cache.TTLAggregate, func(ctx context.Context) (any, error) {
		return h.adapter.GlobalStats(ctx)
	})
}

// LatestReports returns the most recent reports, newest first. limit is
// clamped to [1, 500], default 50.
func (h *Handler) LatestReports(w http.ResponseWriter, r *http.Request) {
	limit := adapter.ClampLimit(r.URL.Query().Get("limit"))
	h.serveDirect(w, r, func(ctx context.Context) (any, error) {
		return h.adapter.LatestReports(ctx, limit)
	})
}

// UserHistory returns a user's reports enriched with opponent identity.
func (h *Handler) UserHistory(w http.ResponseWriter, r *http.Request) {
	id, ok := urlID(r, "id")
	if !ok {
		h.errorResponse(w, http.StatusBadRequest, "invalid user id")
		return
	}
	h.serveDirect(w, r, func(ctx context.Context) (any, error) {
		return h.adapter.UserHistory(ctx, id)
	})
}
