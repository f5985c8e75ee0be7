package adapter

import (
	"context"
	"database/sql"
	"time"

	"go.uber.org/zap"

	"github.com/nhlcentral/stats-api/internal/logic"
	"github.com/nhlcentral/stats-api/internal/models"
)

// singleAdapter serves the single-table schema: one reports table keyed by
// gamertag/user/game with score, team, shots, hits, fps and latency
// columns, plus a games table.
type singleAdapter struct {
	dbAdapter
}

func NewSingle(db *sql.DB, dialect Dialect, namespace string, logger *zap.Logger) StatsAdapter {
	return &singleAdapter{dbAdapter{
		db:        db,
		dialect:   dialect,
		namespace: namespace,
		logger:    logger.Sugar(),
	}}
}

// Gamertag cache keys are case-sensitive here; the query is exact-match.
func (a *singleAdapter) PlayerCacheKeyArg(gamertag string) string { return gamertag }

func (a *singleAdapter) ListPlayers(ctx context.Context) ([]string, error) {
	var players []string
	err := a.withConn(ctx, func(conn *sql.Conn) error {
		var err error
		players, err = a.readStrings(ctx, conn,
			"SELECT DISTINCT gamertag FROM reports WHERE gamertag IS NOT NULL")
		return err
	})
	return players, err
}

func (a *singleAdapter) PlayerProfile(ctx context.Context, gamertag string) (*models.PlayerProfile, error) {
	var rows []models.RawRow
	err := a.withConn(ctx, func(conn *sql.Conn) error {
		var err error
		rows, err = a.readRows(ctx, conn,
			"SELECT user_id, score FROM reports WHERE gamertag = ?", gamertag)
		return err
	})
	if err != nil {
		return nil, err
	}
	return logic.ToPlayerProfile(rows, gamertag, singleColumns.Score)
}

func (a *singleAdapter) RawGames(ctx context.Context) (any, error) {
	var rows []models.RawRow
	err := a.withConn(ctx, func(conn *sql.Conn) error {
		var err error
		rows, err = a.readRows(ctx, conn, "SELECT * FROM games")
		return err
	})
	return rows, err
}

func (a *singleAdapter) RawReports(ctx context.Context) (any, error) {
	var rows []models.RawRow
	err := a.withConn(ctx, func(conn *sql.Conn) error {
		var err error
		rows, err = a.readRows(ctx, conn, "SELECT * FROM reports")
		return err
	})
	return rows, err
}

func (a *singleAdapter) GamesOverview(ctx context.Context) (any, error) {
	var games, reports []models.RawRow
	err := a.withConn(ctx, func(conn *sql.Conn) error {
		var err error
		if games, err = a.readRows(ctx, conn,
			"SELECT * FROM games ORDER BY created_at DESC"); err != nil {
			return err
		}
		reports, err = a.readRows(ctx, conn, "SELECT * FROM reports")
		return err
	})
	if err != nil {
		return nil, err
	}
	return logic.ToGamesOverview(games, reports, singleColumns, logic.StatusFromFinishedFlag, true), nil
}

func (a *singleAdapter) ReportsForGame(ctx context.Context, id int64) (any, error) {
	var rows []models.RawRow
	err := a.withConn(ctx, func(conn *sql.Conn) error {
		var err error
		rows, err = a.readRows(ctx, conn,
			"SELECT user_id, gamertag, score FROM reports WHERE game_id = ?", id)
		return err
	})
	if err != nil {
		return nil, err
	}
	return &models.GameReports{GameID: id, Reports: rows}, nil
}

func (a *singleAdapter) GameSummary(ctx context.Context, id int64) (any, error) {
	var gameRows, reports, listing []models.RawRow
	err := a.withConn(ctx, func(conn *sql.Conn) error {
		var err error
		if gameRows, err = a.readRows(ctx, conn,
			"SELECT game_id, created_at FROM games WHERE game_id = ?", id); err != nil {
			return err
		}
		if len(gameRows) == 0 {
			return nil
		}
		if reports, err = a.readRows(ctx, conn,
			"SELECT * FROM reports WHERE game_id = ?", id); err != nil {
			return err
		}
		listing, err = a.readRows(ctx, conn,
			"SELECT user_id, gamertag, score FROM reports WHERE game_id = ?", id)
		return err
	})
	if err != nil {
		return nil, err
	}
	if len(gameRows) == 0 {
		return nil, logic.ErrNotFound
	}

	homeScore, awayScore := logic.SideTotals(reports, singleColumns, "team")
	homeTeam, awayTeam := logic.SideTeamNames(reports, singleColumns, "team")
	return &models.GameSummary{
		Game: models.GameHeader{
			GameID:    id,
			PlayedAt:  gameRows[0].Get("created_at"),
			HomeTeam:  homeTeam,
			AwayTeam:  awayTeam,
			HomeScore: homeScore,
			AwayScore: awayScore,
		},
		Reports:    listing,
		WinnerTeam: logic.Winner(homeTeam.String(), awayTeam.String(), homeScore, awayScore),
	}, nil
}

func (a *singleAdapter) Leaderboard(ctx context.Context, rng string) ([]models.LeaderboardEntry, error) {
	floor := logic.RangeFloor(rng, time.Now().UTC())

	query := `
		SELECT r.gamertag, r.score
		FROM reports r
		JOIN games g ON g.game_id = r.game_id`
	var args []any
	if !floor.IsZero() {
		query += " WHERE g.created_at >= ?"
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
	return logic.ToLeaderboard(rows, singleColumns), nil
}

func (a *singleAdapter) GlobalStats(ctx context.Context) (*models.GlobalStats, error) {
	stats := &models.GlobalStats{}
	err := a.withConn(ctx, func(conn *sql.Conn) error {
		var err error
		if stats.TotalGames, err = a.readInt(ctx, conn, "SELECT COUNT(*) FROM games"); err != nil {
			return err
		}
		if stats.TotalReports, err = a.readInt(ctx, conn, "SELECT COUNT(*) FROM reports"); err != nil {
			return err
		}
		stats.TotalPlayers, err = a.readInt(ctx, conn, "SELECT COUNT(DISTINCT gamertag) FROM reports")
		return err
	})
	if err != nil {
		return nil, err
	}
	return stats, nil
}

func (a *singleAdapter) LatestReports(ctx context.Context, limit int) (any, error) {
	var rows []models.RawRow
	err := a.withConn(ctx, func(conn *sql.Conn) error {
		var err error
		rows, err = a.readRows(ctx, conn,
			"SELECT * FROM reports ORDER BY created_at DESC LIMIT ?", limit)
		return err
	})
	return rows, err
}

func (a *singleAdapter) UserHistory(ctx context.Context, userID int64) (any, error) {
	var userRows, oppRows []models.RawRow
	err := a.withConn(ctx, func(conn *sql.Conn) error {
		var err error
		if userRows, err = a.readRows(ctx, conn,
			"SELECT * FROM reports WHERE user_id = ? ORDER BY created_at DESC", userID); err != nil {
			return err
		}
		if len(userRows) == 0 {
			return nil
		}

		ids := make([]int64, 0, len(userRows))
		for _, r := range userRows {
			ids = append(ids, r.Get("game_id").Int64())
		}
		args := append(int64Args(ids), userID)
		oppRows, err = a.readRows(ctx, conn,
			"SELECT * FROM reports WHERE game_id IN ("+inClause(len(ids))+") AND user_id != ?", args...)
		return err
	})
	if err != nil {
		return nil, err
	}
	return logic.ToUserHistory(userRows, oppRows, userID, singleColumns, true), nil
}
