// Package logic holds the pure aggregation layer: every function here
// transforms raw rows fetched by a schema adapter into the unified response
// model, with no I/O and no shared state. All numeric work treats SQL NULL
// as zero.
package logic

import (
	"errors"
	"sort"
	"time"

	"github.com/nhlcentral/stats-api/internal/models"
)

// ErrNotFound marks a valid empty result. The gateway maps it to 404 with
// an empty body; it is not a server error.
var ErrNotFound = errors.New("not found")

// SchemaColumns names the report columns that differ between the variant
// schemas. The single-table schema spells fields out (gamertag, score); the
// dual-table schemas use the truncated wire names (gtag, scor).
type SchemaColumns struct {
	Gamertag string
	Team     string
	Score    string
	Shots    string
	Hits     string
	Fps      string
	Latency  string
}

// StatusPolicy selects how a game's listing status is derived. The
// single-table and split variants trust the games table's finished flag;
// the legacy variant never had a reliable flag and infers status from
// report presence. Both are intentional, per variant.
type StatusPolicy int

const (
	StatusFromFinishedFlag StatusPolicy = iota
	StatusFromReportPresence
)

func (p StatusPolicy) status(finished models.Value, reportCount int) string {
	if p == StatusFromReportPresence {
		if reportCount > 0 {
			return "Finished"
		}
		return "Unknown"
	}
	if finished.Bool() {
		return "Finished"
	}
	return "In Progress"
}

// SumColumn adds a column over all rows, NULL and missing counting as 0.
func SumColumn(rows []models.RawRow, col string) int64 {
	var total int64
	for _, r := range rows {
		total += r.Get(col).Int64()
	}
	return total
}

// MeanColumn is the arithmetic mean of a column over all rows, 0 for an
// empty set. Values are truncated to integers before averaging, matching
// the fps/latency columns which are stored as whole numbers.
func MeanColumn(rows []models.RawRow, col string) float64 {
	if len(rows) == 0 {
		return 0
	}
	var total int64
	for _, r := range rows {
		total += r.Get(col).Int64()
	}
	return float64(total) / float64(len(rows))
}

// ToPlayerProfile builds a flat profile from one variant's report rows for
// a single gamertag. Empty input is ErrNotFound.
func ToPlayerProfile(rows []models.RawRow, gamertag, scoreCol string) (*models.PlayerProfile, error) {
	if len(rows) == 0 {
		return nil, ErrNotFound
	}
	return &models.PlayerProfile{
		UserID:     rows[0].Get("user_id").Int64(),
		PlayerName: gamertag,
		TotalGames: len(rows),
		TotalGoals: SumColumn(rows, scoreCol),
	}, nil
}

// ToSplitPlayerProfile builds a profile with VS/SO sub-totals from the two
// report tables. A player may have rows in either table, both, or neither;
// neither is ErrNotFound.
func ToSplitPlayerProfile(vs, so []models.RawRow, gamertag, scoreCol string) (*models.PlayerProfile, error) {
	if len(vs) == 0 && len(so) == 0 {
		return nil, ErrNotFound
	}
	var userID int64
	if len(vs) > 0 {
		userID = vs[0].Get("user_id").Int64()
	} else {
		userID = so[0].Get("user_id").Int64()
	}
	vsTotals := &models.SubModeTotals{Games: len(vs), Goals: SumColumn(vs, scoreCol)}
	soTotals := &models.SubModeTotals{Games: len(so), Goals: SumColumn(so, scoreCol)}
	return &models.PlayerProfile{
		UserID:     userID,
		PlayerName: gamertag,
		VS:         vsTotals,
		SO:         soTotals,
		TotalGames: vsTotals.Games + soTotals.Games,
		TotalGoals: vsTotals.Goals + soTotals.Goals,
	}, nil
}

// groupByGame buckets reports by game_id. Bucket contents keep the input
// row order so downstream output is deterministic.
func groupByGame(reports []models.RawRow) map[int64][]models.RawRow {
	grouped := make(map[int64][]models.RawRow)
	for _, r := range reports {
		if !r.Has("game_id") {
			continue
		}
		id := r.Get("game_id").Int64()
		grouped[id] = append(grouped[id], r)
	}
	return grouped
}

// ToGamesOverview joins the games table against grouped reports. Games are
// emitted in input order. When includeEmpty is false, games without reports
// are skipped (the split variant lists a game under a sub-mode only when
// that sub-mode has reports for it).
func ToGamesOverview(games, reports []models.RawRow, cols SchemaColumns, policy StatusPolicy, includeEmpty bool) []models.GameOverview {
	grouped := groupByGame(reports)
	out := make([]models.GameOverview, 0, len(games))

	for _, g := range games {
		id := g.Get("game_id").Int64()
		reps := grouped[id]
		if len(reps) == 0 && !includeEmpty {
			continue
		}

		teams := make([]models.TeamLine, 0, len(reps))
		for _, r := range reps {
			teams = append(teams, models.TeamLine{
				TeamName: r.Get(cols.Team),
				Score:    r.Get(cols.Score),
				Shots:    r.Get(cols.Shots),
				Hits:     r.Get(cols.Hits),
				Gamertag: r.Get(cols.Gamertag),
			})
		}

		out = append(out, models.GameOverview{
			GameID:     id,
			CreatedAt:  g.Get("created_at"),
			Finished:   g.Get("fnsh"),
			GameType:   g.Get("gtyp"),
			Venue:      g.Get("venue"),
			Players:    len(reps),
			TotalGoals: SumColumn(reps, cols.Score),
			AvgFps:     MeanColumn(reps, cols.Fps),
			AvgLatency: MeanColumn(reps, cols.Latency),
			Teams:      teams,
			Status:     policy.status(g.Get("fnsh"), len(reps)),
		})
	}
	return out
}

// ToLeaderboard groups report rows by gamertag, sums goals, counts games
// and assigns dense 1-based ranks by total goals descending. The sort is
// stable, so tied players keep first-seen order.
func ToLeaderboard(rows []models.RawRow, cols SchemaColumns) []models.LeaderboardEntry {
	index := make(map[string]int)
	entries := make([]models.LeaderboardEntry, 0)

	for _, r := range rows {
		tag := r.Get(cols.Gamertag).String()
		i, ok := index[tag]
		if !ok {
			i = len(entries)
			index[tag] = i
			entries = append(entries, models.LeaderboardEntry{Gamertag: tag})
		}
		entries[i].TotalGoals += r.Get(cols.Score).Int64()
		entries[i].GamesPlayed++
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].TotalGoals > entries[j].TotalGoals
	})
	for i := range entries {
		entries[i].Rank = i + 1
	}
	return entries
}

// ToUserHistory attaches opponent identity to each of the subject's report
// rows: the first opponent row sharing the game id with a different user
// id wins, arbitrary when a game had more than two participants. Rows
// without a matching opponent stay untouched. The input slice is enriched
// in place and returned.
func ToUserHistory(userRows, oppRows []models.RawRow, subjectID int64, cols SchemaColumns, detailed bool) []models.RawRow {
	for i := range userRows {
		gameID := userRows[i].Get("game_id").Int64()
		for _, opp := range oppRows {
			if opp.Get("game_id").Int64() != gameID || opp.Get("user_id").Int64() == subjectID {
				continue
			}
			userRows[i].Set("opponent", opp.Get(cols.Gamertag))
			userRows[i].Set("opponent_team", opp.Get(cols.Team))
			userRows[i].Set("opponent_score", opp.Get(cols.Score))
			if detailed {
				userRows[i].Set("opponent_hits", opp.Get(cols.Hits))
				userRows[i].Set("opponent_shots", opp.Get(cols.Shots))
			}
			break
		}
	}
	return userRows
}

// SideTotals partitions reports into home and away by a boolean flag
// column and sums each side's scores.
func SideTotals(reports []models.RawRow, cols SchemaColumns, flagCol string) (home, away int64) {
	for _, r := range reports {
		if r.Get(flagCol).Bool() {
			home += r.Get(cols.Score).Int64()
		} else {
			away += r.Get(cols.Score).Int64()
		}
	}
	return home, away
}

// SideTeamNames picks the first non-null team name seen on each side.
func SideTeamNames(reports []models.RawRow, cols SchemaColumns, flagCol string) (home, away models.Value) {
	for _, r := range reports {
		name := r.Get(cols.Team)
		if name.IsNull() {
			continue
		}
		if r.Get(flagCol).Bool() {
			if home.IsNull() {
				home = name
			}
		} else if away.IsNull() {
			away = name
		}
	}
	return home, away
}

// Winner returns the label of the strictly higher-scoring side, nil on a
// tie.
func Winner(homeLabel, awayLabel string, homeScore, awayScore int64) *string {
	switch {
	case homeScore > awayScore:
		return &homeLabel
	case awayScore > homeScore:
		return &awayLabel
	}
	return nil
}

// RangeFloor maps a leaderboard range token to its lower time bound.
// Unknown tokens mean no lower bound (zero time).
func RangeFloor(rng string, now time.Time) time.Time {
	switch rng {
	case "day":
		return now.AddDate(0, 0, -1)
	case "week":
		return now.AddDate(0, 0, -7)
	case "month":
		return now.AddDate(0, -1, 0)
	}
	return time.Time{}
}
