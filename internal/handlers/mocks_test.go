package handlers

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/nhlcentral/stats-api/internal/models"
)

// MockAdapter implements adapter.StatsAdapter with overridable behavior
// per capability.
type MockAdapter struct {
	NamespaceValue    string
	ListPlayersFunc   func(ctx context.Context) ([]string, error)
	PlayerProfileFunc func(ctx context.Context, gamertag string) (*models.PlayerProfile, error)
	KeyArgFunc        func(gamertag string) string
	RawGamesFunc      func(ctx context.Context) (any, error)
	RawReportsFunc    func(ctx context.Context) (any, error)
	GamesOverviewFunc func(ctx context.Context) (any, error)
	ReportsFunc       func(ctx context.Context, id int64) (any, error)
	SummaryFunc       func(ctx context.Context, id int64) (any, error)
	LeaderboardFunc   func(ctx context.Context, rng string) ([]models.LeaderboardEntry, error)
	GlobalStatsFunc   func(ctx context.Context) (*models.GlobalStats, error)
	LatestFunc        func(ctx context.Context, limit int) (any, error)
	UserHistoryFunc   func(ctx context.Context, userID int64) (any, error)
}

func (m *MockAdapter) Namespace() string {
	if m.NamespaceValue != "" {
		return m.NamespaceValue
	}
	return "mock"
}

func (m *MockAdapter) ListPlayers(ctx context.Context) ([]string, error) {
	if m.ListPlayersFunc != nil {
		return m.ListPlayersFunc(ctx)
	}
	return []string{}, nil
}

func (m *MockAdapter) PlayerProfile(ctx context.Context, gamertag string) (*models.PlayerProfile, error) {
	if m.PlayerProfileFunc != nil {
		return m.PlayerProfileFunc(ctx, gamertag)
	}
	return &models.PlayerProfile{PlayerName: gamertag}, nil
}

func (m *MockAdapter) PlayerCacheKeyArg(gamertag string) string {
	if m.KeyArgFunc != nil {
		return m.KeyArgFunc(gamertag)
	}
	return gamertag
}

func (m *MockAdapter) RawGames(ctx context.Context) (any, error) {
	if m.RawGamesFunc != nil {
		return m.RawGamesFunc(ctx)
	}
	return []models.RawRow{}, nil
}

func (m *MockAdapter) RawReports(ctx context.Context) (any, error) {
	if m.RawReportsFunc != nil {
		return m.RawReportsFunc(ctx)
	}
	return []models.RawRow{}, nil
}

func (m *MockAdapter) GamesOverview(ctx context.Context) (any, error) {
	if m.GamesOverviewFunc != nil {
		return m.GamesOverviewFunc(ctx)
	}
	return []models.GameOverview{}, nil
}

func (m *MockAdapter) ReportsForGame(ctx context.Context, id int64) (any, error) {
	if m.ReportsFunc != nil {
		return m.ReportsFunc(ctx, id)
	}
	return &models.GameReports{GameID: id}, nil
}

func (m *MockAdapter) GameSummary(ctx context.Context, id int64) (any, error) {
	if m.SummaryFunc != nil {
		return m.SummaryFunc(ctx, id)
	}
	return &models.GameSummary{}, nil
}

func (m *MockAdapter) Leaderboard(ctx context.Context, rng string) ([]models.LeaderboardEntry, error) {
	if m.LeaderboardFunc != nil {
		return m.LeaderboardFunc(ctx, rng)
	}
	return []models.LeaderboardEntry{}, nil
}

func (m *MockAdapter) GlobalStats(ctx context.Context) (*models.GlobalStats, error) {
	if m.GlobalStatsFunc != nil {
		return m.GlobalStatsFunc(ctx)
	}
	return &models.GlobalStats{}, nil
}

func (m *MockAdapter) LatestReports(ctx context.Context, limit int) (any, error) {
	if m.LatestFunc != nil {
		return m.LatestFunc(ctx, limit)
	}
	return []models.RawRow{}, nil
}

func (m *MockAdapter) UserHistory(ctx context.Context, userID int64) (any, error) {
	if m.UserHistoryFunc != nil {
		return m.UserHistoryFunc(ctx, userID)
	}
	return []models.RawRow{}, nil
}

// MockRedis implements cache.Client for cache hit/miss paths.
type MockRedis struct {
	GetFunc func(ctx context.Context, key string) *redis.StringCmd
	SetFunc func(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd
}

func (m *MockRedis) Get(ctx context.Context, key string) *redis.StringCmd {
	if m.GetFunc != nil {
		return m.GetFunc(ctx, key)
	}
	return redis.NewStringResult("", redis.Nil)
}

func (m *MockRedis) Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd {
	if m.SetFunc != nil {
		return m.SetFunc(ctx, key, value, expiration)
	}
	return redis.NewStatusResult("OK", nil)
}
