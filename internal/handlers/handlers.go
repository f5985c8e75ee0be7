// Package handlers is the HTTP gateway: one Handler per mounted variant,
// orchestrating rate-limited requests through cache lookup, adapter fetch,
// aggregation and cache write-back.
package handlers

import (
	"strings"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/nhlcentral/stats-api/internal/adapter"
	"github.com/nhlcentral/stats-api/internal/cache"
)

// EndpointSet picks which routes a variant exposes. The nhl11 title only
// ever shipped the basic set (players, player profile, raw tables).
type EndpointSet int

const (
	EndpointsFull EndpointSet = iota
	EndpointsBasic
)

type Config struct {
	Adapter   adapter.StatsAdapter
	Cache     *cache.Store // nil disables caching for this variant
	Keys      cache.Keys
	Logger    *zap.Logger
	Endpoints EndpointSet
}

type Handler struct {
	adapter   adapter.StatsAdapter
	cache     *cache.Store
	keys      cache.Keys
	logger    *zap.SugaredLogger
	endpoints EndpointSet
}

func New(cfg Config) *Handler {
	return &Handler{
		adapter:   cfg.Adapter,
		cache:     cfg.Cache,
		keys:      cfg.Keys,
		logger:    cfg.Logger.Sugar(),
		endpoints: cfg.Endpoints,
	}
}

// Mount registers the variant's endpoint set under {routePrefix}/api. The
// routing layer calls this once per enabled variant at startup.
func (h *Handler) Mount(r chi.Router, routePrefix string) {
	base := "/" + strings.Trim(routePrefix, "/") + "/api"
	r.Route(base, func(r chi.Router) {
		r.Get("/players", h.ListPlayers)
		r.Get("/player/{gamertag}", h.GetPlayer)
		r.Get("/raw/games", h.RawGames)
		r.Get("/raw/reports", h.RawReports)

		if h.endpoints == EndpointsBasic {
			return
		}

		r.Get("/games", h.GamesOverview)
		r.Get("/game/{id}/reports", h.GameReports)
		r.Get("/games/{id}/summary", h.GameSummary)
		r.Get("/leaderboard/{range}", h.GetLeaderboard)
		r.Get("/stats/global", h.GlobalStats)
		r.Get("/reports/latest", h.LatestReports)
		r.Get("/user/{id}/history", h.UserHistory)
	})
}
