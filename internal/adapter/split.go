package adapter

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/nhlcentral/stats-api/internal/logic"
	"github.com/nhlcentral/stats-api/internal/models"
)

// splitAdapter serves the dual-table schema: parallel reports_vs and
// reports_so tables for the VS and SO sub-modes. Capabilities fan out to
// both tables and keep the results as parallel collections. A report lives
// in exactly one of the two tables.
type splitAdapter struct {
	dbAdapter
}

func NewSplit(db *sql.DB, dialect Dialect, namespace string, logger *zap.Logger) StatsAdapter {
	return &splitAdapter{dbAdapter{
		db:        db,
		dialect:   dialect,
		namespace: namespace,
		logger:    logger.Sugar(),
	}}
}

// The old deployment keyed player lookups by lowercased gamertag while the
// query stayed case-sensitive. Kept as-is for cache compatibility.
func (a *splitAdapter) PlayerCacheKeyArg(gamertag string) string {
	return strings.ToLower(gamertag)
}

// fetchBoth runs the same per-table fetch against reports_vs and
// reports_so in parallel, each on its own scoped connection.
func (a *splitAdapter) fetchBoth(ctx context.Context, fetch func(ctx context.Context, conn *sql.Conn, table string) ([]models.RawRow, error)) (vs, so []models.RawRow, err error) {
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return a.withConn(ctx, func(conn *sql.Conn) error {
			var err error
			vs, err = fetch(ctx, conn, "reports_vs")
			return err
		})
	})
	g.Go(func() error {
		return a.withConn(ctx, func(conn *sql.Conn) error {
			var err error
			so, err = fetch(ctx, conn, "reports_so")
			return err
		})
	})
	if err := g.Wait(); err != nil {
		return nil, nil, err
	}
	return vs, so, nil
}

func (a *splitAdapter) ListPlayers(ctx context.Context) ([]string, error) {
	var players []string
	err := a.withConn(ctx, func(conn *sql.Conn) error {
		var err error
		players, err = a.readStrings(ctx, conn, `
			SELECT DISTINCT gtag FROM reports_vs
			UNION
			SELECT DISTINCT gtag FROM reports_so`)
		return err
	})
	return players, err
}

func (a *splitAdapter) PlayerProfile(ctx context.Context, gamertag string) (*models.PlayerProfile, error) {
	vs, so, err := a.fetchBoth(ctx, func(ctx context.Context, conn *sql.Conn, table string) ([]models.RawRow, error) {
		return a.readRows(ctx, conn,
			"SELECT user_id, scor FROM "+table+" WHERE gtag = ?", gamertag)
	})
	if err != nil {
		return nil, err
	}
	return logic.ToSplitPlayerProfile(vs, so, gamertag, splitColumns.Score)
}

func (a *splitAdapter) RawGames(ctx context.Context) (any, error) {
	var rows []models.RawRow
	err := a.withConn(ctx, func(conn *sql.Conn) error {
		var err error
		rows, err = a.readRows(ctx, conn, "SELECT * FROM games ORDER BY created_at DESC")
		return err
	})
	return rows, err
}

func (a *splitAdapter) RawReports(ctx context.Context) (any, error) {
	vs, so, err := a.fetchBoth(ctx, func(ctx context.Context, conn *sql.Conn, table string) ([]models.RawRow, error) {
		return a.readRows(ctx, conn, "SELECT * FROM "+table+" ORDER BY created_at DESC")
	})
	if err != nil {
		return nil, err
	}
	return &models.SplitRows{VS: vs, SO: so}, nil
}

func (a *splitAdapter) GamesOverview(ctx context.Context) (any, error) {
	var games []models.RawRow
	err := a.withConn(ctx, func(conn *sql.Conn) error {
		var err error
		games, err = a.readRows(ctx, conn, "SELECT * FROM games ORDER BY created_at DESC")
		return err
	})
	if err != nil {
		return nil, err
	}

	vs, so, err := a.fetchBoth(ctx, func(ctx context.Context, conn *sql.Conn, table string) ([]models.RawRow, error) {
		return a.readRows(ctx, conn, "SELECT * FROM "+table)
	})
	if err != nil {
		return nil, err
	}

	return &models.SplitGames{
		VS: logic.ToGamesOverview(games, vs, splitColumns, logic.StatusFromFinishedFlag, false),
		SO: logic.ToGamesOverview(games, so, splitColumns, logic.StatusFromFinishedFlag, false),
	}, nil
}

func (a *splitAdapter) ReportsForGame(ctx context.Context, id int64) (any, error) {
	vs, so, err := a.fetchBoth(ctx, func(ctx context.Context, conn *sql.Conn, table string) ([]models.RawRow, error) {
		return a.readRows(ctx, conn, "SELECT * FROM "+table+" WHERE game_id = ?", id)
	})
	if err != nil {
		return nil, err
	}
	return &models.SplitRows{VS: vs, SO: so}, nil
}

func (a *splitAdapter) GameSummary(ctx context.Context, id int64) (any, error) {
	vs, so, err := a.fetchBoth(ctx, func(ctx context.Context, conn *sql.Conn, table string) ([]models.RawRow, error) {
		return a.readRows(ctx, conn, "SELECT * FROM "+table+" WHERE game_id = ?", id)
	})
	if err != nil {
		return nil, err
	}
	all := append(append([]models.RawRow{}, vs...), so...)
	if len(all) == 0 {
		return nil, logic.ErrNotFound
	}

	homeScore, awayScore := logic.SideTotals(all, splitColumns, "home")
	return &models.SplitGameSummary{
		GameID:    id,
		HomeScore: homeScore,
		AwayScore: awayScore,
		VS:        vs,
		SO:        so,
		Winner:    logic.Winner("home", "away", homeScore, awayScore),
	}, nil
}

func (a *splitAdapter) Leaderboard(ctx context.Context, rng string) ([]models.LeaderboardEntry, error) {
	floor := logic.RangeFloor(rng, time.Now().UTC())

	query := `
		SELECT gtag, scor FROM (
			SELECT gtag, scor, created_at FROM reports_vs
			UNION ALL
			SELECT gtag, scor, created_at FROM reports_so
		) x`
	var args []any
	if !floor.IsZero() {
		query += " WHERE created_at >= ?"
		args = append(args, floor)
	}

	var rows []models.RawRow
	err := a.withConn(ctx, func(conn *sql.Conn) error {
		var err error
		rows, err = a.readRows(ctx, conn, query, args...)
		return err
	})
	if err != nil {
		return nil, err
	}
	return logic.ToLeaderboard(rows, splitColumns), nil
}

func (a *splitAdapter) GlobalStats(ctx context.Context) (*models.GlobalStats, error) {
	stats := &models.GlobalStats{}
	err := a.withConn(ctx, func(conn *sql.Conn) error {
		var err error
		if stats.TotalGames, err = a.readInt(ctx, conn, "SELECT COUNT(*) FROM games"); err != nil {
			return err
		}
		vsCount, err := a.readInt(ctx, conn, "SELECT COUNT(*) FROM reports_vs")
		if err != nil {
			return err
		}
		soCount, err := a.readInt(ctx, conn, "SELECT COUNT(*) FROM reports_so")
		if err != nil {
			return err
		}
		stats.TotalReports = vsCount + soCount
		stats.TotalPlayers, err = a.readInt(ctx, conn, `
			SELECT COUNT(DISTINCT gtag) FROM (
				SELECT gtag FROM reports_vs
				UNION
				SELECT gtag FROM reports_so
			) x`)
		return err
	})
	if err != nil {
		return nil, err
	}
	return stats, nil
}

func (a *splitAdapter) LatestReports(ctx context.Context, limit int) (any, error) {
	vs, so, err := a.fetchBoth(ctx, func(ctx context.Context, conn *sql.Conn, table string) ([]models.RawRow, error) {
		return a.readRows(ctx, conn,
			"SELECT * FROM "+table+" ORDER BY created_at DESC LIMIT ?", limit)
	})
	if err != nil {
		return nil, err
	}
	return &models.SplitRows{VS: vs, SO: so}, nil
}

func (a *splitAdapter) UserHistory(ctx context.Context, userID int64) (any, error) {
	vs, so, err := a.fetchBoth(ctx, func(ctx context.Context, conn *sql.Conn, table string) ([]models.RawRow, error) {
		return a.readRows(ctx, conn,
			"SELECT * FROM "+table+" WHERE user_id = ?", userID)
	})
	if err != nil {
		return nil, err
	}
	if len(vs) == 0 && len(so) == 0 {
		return &models.SplitRows{VS: vs, SO: so}, nil
	}

	seen := make(map[int64]bool)
	var ids []int64
	for _, r := range append(append([]models.RawRow{}, vs...), so...) {
		id := r.Get("game_id").Int64()
		if !seen[id] {
			seen[id] = true
			ids = append(ids, id)
		}
	}

	oppVS, oppSO, err := a.fetchBoth(ctx, func(ctx context.Context, conn *sql.Conn, table string) ([]models.RawRow, error) {
		return a.readRows(ctx, conn,
			"SELECT * FROM "+table+" WHERE game_id IN ("+inClause(len(ids))+")", int64Args(ids)...)
	})
	if err != nil {
		return nil, err
	}
	opponents := append(append([]models.RawRow{}, oppVS...), oppSO...)

	return &models.SplitRows{
		VS: logic.ToUserHistory(vs, opponents, userID, splitColumns, false),
		SO: logic.ToUserHistory(so, opponents, userID, splitColumns, false),
	}, nil
}
