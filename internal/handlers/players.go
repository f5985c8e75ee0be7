package handlers

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/nhlcentral/stats-api/internal/cache"
)

// ListPlayers returns the distinct gamertags of a variant
// @Summary Player list
// @Produce json
// @Success 200 {array} string
// @Router /{prefix}/api/players [get]
func (h *Handler) ListPlayers(w http.ResponseWriter, r *http.Request) {
	h.serveCached(w, r, h.keys.Players(), cache.TTLListing, func(ctx context.Context) (any, error) {
		return h.adapter.ListPlayers(ctx)
	})
}

// GetPlayer returns a player profile by gamertag
// @Summary Player profile
// @Produce json
// @Success 200 {object} models.PlayerProfile
// @Failure 404 "player has no reports"
// @Router /{prefix}/api/player/{gamertag} [get]
func (h *Handler) GetPlayer(w http.ResponseWriter, r *http.Request) {
	gamertag := chi.URLParam(r, "gamertag")
	key := h.keys.Player(h.adapter.PlayerCacheKeyArg(gamertag))

	h.serveCached(w, r, key, cache.TTLListing, func(ctx context.Context) (any, error) {
		return h.adapter.PlayerProfile(ctx, gamertag)
	})
}
