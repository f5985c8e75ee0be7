// Package adapter contains the per-variant schema adapters: each knows how
// to fetch and shape raw rows for one game title's database. The set is
// closed — three schema forms cover every supported title — and the
// adapter for a variant is chosen from configuration at startup, never by
// inspecting data at runtime.
package adapter

import (
	"context"

	"github.com/nhlcentral/stats-api/internal/logic"
	"github.com/nhlcentral/stats-api/internal/models"
)

// StatsAdapter is the capability set every variant exposes. Shapes that
// differ per schema form (flat lists vs VS/SO envelopes) are returned as
// any and serialized as-is by the gateway.
type StatsAdapter interface {
	Namespace() string

	ListPlayers(ctx context.Context) ([]string, error)
	PlayerProfile(ctx context.Context, gamertag string) (*models.PlayerProfile, error)
	// PlayerCacheKeyArg maps a gamertag to its cache key argument. Most
	// variants key case-sensitively; the split variant lowercases the key
	// while querying case-sensitively. Preserved per variant.
	PlayerCacheKeyArg(gamertag string) string

	RawGames(ctx context.Context) (any, error)
	RawReports(ctx context.Context) (any, error)
	GamesOverview(ctx context.Context) (any, error)
	ReportsForGame(ctx context.Context, id int64) (any, error)
	GameSummary(ctx context.Context, id int64) (any, error)

	Leaderboard(ctx context.Context, rng string) ([]models.LeaderboardEntry, error)
	GlobalStats(ctx context.Context) (*models.GlobalStats, error)
	LatestReports(ctx context.Context, limit int) (any, error)
	UserHistory(ctx context.Context, userID int64) (any, error)
}

// singleColumns is the single-table schema (full column names).
var singleColumns = logic.SchemaColumns{
	Gamertag: "gamertag",
	Team:     "team_name",
	Score:    "score",
	Shots:    "shots",
	Hits:     "hits",
	Fps:      "fpsavg",
	Latency:  "lateavgnet",
}

// splitColumns is the dual-table schema (truncated wire names), shared by
// the split and legacy variants.
var splitColumns = logic.SchemaColumns{
	Gamertag: "gtag",
	Team:     "tnam",
	Score:    "scor",
	Shots:    "shts",
	Hits:     "hits",
	Fps:      "fpsavg",
	Latency:  "lateavgnet",
}
