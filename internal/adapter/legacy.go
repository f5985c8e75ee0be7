package adapter

import (
	"context"
	"database/sql"
	"time"

	"go.uber.org/zap"

	"github.com/nhlcentral/stats-api/internal/logic"
	"github.com/nhlcentral/stats-api/internal/models"
)

// legacyAdapter serves the oldest dual-table schema. Unlike the split
// adapter it merges the two report tables with UNION ALL inside SQL and
// returns flat lists, losing the VS/SO grouping.
//
// Known compat hazards, both kept deliberately: the tables do not share an
// identical column set, so `SELECT * ... UNION ALL` pairs columns
// positionally and can mislabel values when the schemas drift; and a
// report reachable through both arms of an overlapping query would be
// counted twice. Old deployments depend on the flat shapes, so neither is
// changed here.
type legacyAdapter struct {
	dbAdapter
}

func NewLegacy(db *sql.DB, dialect Dialect, namespace string, logger *zap.Logger) StatsAdapter {
	return &legacyAdapter{dbAdapter{
		db:        db,
		dialect:   dialect,
		namespace: namespace,
		logger:    logger.Sugar(),
	}}
}

func (a *legacyAdapter) PlayerCacheKeyArg(gamertag string) string { return gamertag }

func (a *legacyAdapter) ListPlayers(ctx context.Context) ([]string, error) {
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

func (a *legacyAdapter) PlayerProfile(ctx context.Context, gamertag string) (*models.PlayerProfile, error) {
	var rows []models.RawRow
	err := a.withConn(ctx, func(conn *sql.Conn) error {
		var err error
		rows, err = a.readRows(ctx, conn, `
			SELECT user_id, scor FROM reports_vs WHERE gtag = ?
			UNION ALL
			SELECT user_id, scor FROM reports_so WHERE gtag = ?`, gamertag, gamertag)
		return err
	})
	if err != nil {
		return nil, err
	}
	return logic.ToPlayerProfile(rows, gamertag, splitColumns.Score)
}

func (a *legacyAdapter) RawGames(ctx context.Context) (any, error) {
	var rows []models.RawRow
	err := a.withConn(ctx, func(conn *sql.Conn) error {
		var err error
		rows, err = a.readRows(ctx, conn, "SELECT * FROM games ORDER BY created_at DESC")
		return err
	})
	return rows, err
}

func (a *legacyAdapter) RawReports(ctx context.Context) (any, error) {
	var rows []models.RawRow
	err := a.withConn(ctx, func(conn *sql.Conn) error {
		var err error
		// Positional column pairing; see the type comment.
		rows, err = a.readRows(ctx, conn, `
			SELECT * FROM (
				SELECT * FROM reports_vs
				UNION ALL
				SELECT * FROM reports_so
			) x ORDER BY created_at DESC`)
		return err
	})
	return rows, err
}

func (a *legacyAdapter) GamesOverview(ctx context.Context) (any, error) {
	var games, reports []models.RawRow
	err := a.withConn(ctx, func(conn *sql.Conn) error {
		var err error
		if games, err = a.readRows(ctx, conn,
			"SELECT * FROM games ORDER BY created_at DESC"); err != nil {
			return err
		}
		reports, err = a.readRows(ctx, conn, `
			SELECT game_id, user_id, gtag, tnam, scor, shts, hits, fpsavg, lateavgnet FROM reports_vs
			UNION ALL
			SELECT game_id, user_id, gtag, tnam, scor, shts, hits, fpsavg, lateavgnet FROM reports_so`)
		return err
	})
	if err != nil {
		return nil, err
	}
	return logic.ToGamesOverview(games, reports, splitColumns, logic.StatusFromReportPresence, true), nil
}

func (a *legacyAdapter) ReportsForGame(ctx context.Context, id int64) (any, error) {
	var rows []models.RawRow
	err := a.withConn(ctx, func(conn *sql.Conn) error {
		var err error
		rows, err = a.readRows(ctx, conn, `
			SELECT * FROM reports_vs WHERE game_id = ?
			UNION ALL
			SELECT * FROM reports_so WHERE game_id = ?`, id, id)
		return err
	})
	if err != nil {
		return nil, err
	}
	return &models.GameReports{GameID: id, Reports: rows}, nil
}

func (a *legacyAdapter) GameSummary(ctx context.Context, id int64) (any, error) {
	var rows []models.RawRow
	err := a.withConn(ctx, func(conn *sql.Conn) error {
		var err error
		rows, err = a.readRows(ctx, conn, `
			SELECT * FROM reports_vs WHERE game_id = ?
			UNION ALL
			SELECT * FROM reports_so WHERE game_id = ?`, id, id)
		return err
	})
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, logic.ErrNotFound
	}

	homeScore, awayScore := logic.SideTotals(rows, splitColumns, "home")
	return &models.SplitGameSummary{
		GameID:    id,
		HomeScore: homeScore,
		AwayScore: awayScore,
		Reports:   rows,
		Winner:    logic.Winner("home", "away", homeScore, awayScore),
	}, nil
}

func (a *legacyAdapter) Leaderboard(ctx context.Context, rng string) ([]models.LeaderboardEntry, error) {
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

func (a *legacyAdapter) GlobalStats(ctx context.Context) (*models.GlobalStats, error) {
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

func (a *legacyAdapter) LatestReports(ctx context.Context, limit int) (any, error) {
	var rows []models.RawRow
	err := a.withConn(ctx, func(conn *sql.Conn) error {
		var err error
		rows, err = a.readRows(ctx, conn, `
			SELECT * FROM (
				SELECT * FROM reports_vs
				UNION ALL
				SELECT * FROM reports_so
			) x ORDER BY created_at DESC LIMIT ?`, limit)
		return err
	})
	return rows, err
}

func (a *legacyAdapter) UserHistory(ctx context.Context, userID int64) (any, error) {
	var userRows, oppRows []models.RawRow
	err := a.withConn(ctx, func(conn *sql.Conn) error {
		var err error
		if userRows, err = a.readRows(ctx, conn, `
			SELECT * FROM (
				SELECT * FROM reports_vs
				UNION ALL
				SELECT * FROM reports_so
			) x WHERE user_id = ? ORDER BY created_at DESC`, userID); err != nil {
			return err
		}
		if len(userRows) == 0 {
			return nil
		}

		seen := make(map[int64]bool)
		var ids []int64
		for _, r := range userRows {
			id := r.Get("game_id").Int64()
			if !seen[id] {
				seen[id] = true
				ids = append(ids, id)
			}
		}

		in := inClause(len(ids))
		args := append(int64Args(ids), int64Args(ids)...)
		oppRows, err = a.readRows(ctx, conn, `
			SELECT * FROM reports_vs WHERE game_id IN (`+in+`)
			UNION ALL
			SELECT * FROM reports_so WHERE game_id IN (`+in+`)`, args...)
		return err
	})
	if err != nil {
		return nil, err
	}
	return logic.ToUserHistory(userRows, oppRows, userID, splitColumns, false), nil
}
