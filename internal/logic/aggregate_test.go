package logic

import (
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/nhlcentral/stats-api/internal/models"
)

// row builds an ordered raw row from alternating column/value pairs.
func row(pairs ...any) models.RawRow {
	r := models.NewRawRow()
	for i := 0; i+1 < len(pairs); i += 2 {
		col := pairs[i].(string)
		switch v := pairs[i+1].(type) {
		case nil:
			r.Set(col, models.NullValue())
		case int:
			r.Set(col, models.IntValue(int64(v)))
		case int64:
			r.Set(col, models.IntValue(v))
		case float64:
			r.Set(col, models.FloatValue(v))
		case string:
			r.Set(col, models.StringValue(v))
		case bool:
			r.Set(col, models.BoolValue(v))
		case time.Time:
			r.Set(col, models.TimeValue(v))
		default:
			panic("row: unsupported value type")
		}
	}
	return r
}

var testCols = SchemaColumns{
	Gamertag: "gamertag",
	Team:     "team_name",
	Score:    "score",
	Shots:    "shots",
	Hits:     "hits",
	Fps:      "fpsavg",
	Latency:  "lateavgnet",
}

func TestToPlayerProfile(t *testing.T) {
	t.Run("empty rows is not found", func(t *testing.T) {
		_, err := ToPlayerProfile(nil, "ghost", "score")
		if !errors.Is(err, ErrNotFound) {
			t.Fatalf("err = %v, want ErrNotFound", err)
		}
	})

	t.Run("null scores count as zero", func(t *testing.T) {
		rows := []models.RawRow{
			row("user_id", 7, "score", 3),
			row("user_id", 7, "score", nil),
		}
		p, err := ToPlayerProfile(rows, "IceBreaker", "score")
		if err != nil {
			t.Fatal(err)
		}
		if p.UserID != 7 || p.TotalGames != 2 || p.TotalGoals != 3 {
			t.Errorf("profile = %+v, want userId 7, 2 games, 3 goals", p)
		}
		if p.PlayerName != "IceBreaker" {
			t.Errorf("PlayerName = %q", p.PlayerName)
		}
	})
}

func TestToSplitPlayerProfile(t *testing.T) {
	vs := []models.RawRow{
		row("user_id", 42, "scor", 2),
		row("user_id", 42, "scor", 4),
	}
	so := []models.RawRow{
		row("user_id", 42, "scor", nil),
	}

	p, err := ToSplitPlayerProfile(vs, so, "TopShelf88", "scor")
	if err != nil {
		t.Fatal(err)
	}
	if p.VS == nil || p.SO == nil {
		t.Fatal("expected both sub-mode totals")
	}
	if p.VS.Games != 2 || p.VS.Goals != 6 {
		t.Errorf("VS = %+v", p.VS)
	}
	if p.SO.Games != 1 || p.SO.Goals != 0 {
		t.Errorf("SO = %+v", p.SO)
	}
	if p.TotalGames != 3 || p.TotalGoals != 6 {
		t.Errorf("totals = %d games %d goals", p.TotalGames, p.TotalGoals)
	}

	t.Run("only one sub-mode populated", func(t *testing.T) {
		p, err := ToSplitPlayerProfile(nil, so, "TopShelf88", "scor")
		if err != nil {
			t.Fatal(err)
		}
		if p.UserID != 42 {
			t.Errorf("UserID = %d, want fallback to SO rows", p.UserID)
		}
	})

	t.Run("neither populated", func(t *testing.T) {
		if _, err := ToSplitPlayerProfile(nil, nil, "x", "scor"); !errors.Is(err, ErrNotFound) {
			t.Fatalf("err = %v, want ErrNotFound", err)
		}
	})
}

func TestToGamesOverview(t *testing.T) {
	games := []models.RawRow{
		row("game_id", 1, "fnsh", true, "venue", "Arena A"),
		row("game_id", 2, "fnsh", false),
		row("game_id", 3, "fnsh", true),
	}
	reports := []models.RawRow{
		row("game_id", 1, "gamertag", "a", "score", 2, "fpsavg", 60, "lateavgnet", 40, "team_name", "Bruins"),
		row("game_id", 1, "gamertag", "b", "score", nil, "fpsavg", 30, "lateavgnet", 80),
		row("game_id", 2, "gamertag", "c", "score", 5),
	}

	out := ToGamesOverview(games, reports, testCols, StatusFromFinishedFlag, true)
	if len(out) != 3 {
		t.Fatalf("len = %d, want 3", len(out))
	}

	g1 := out[0]
	if g1.Players != 2 || g1.TotalGoals != 2 {
		t.Errorf("game 1 = %d players %d goals", g1.Players, g1.TotalGoals)
	}
	if g1.AvgFps != 45 || g1.AvgLatency != 60 {
		t.Errorf("game 1 avgs = %v / %v", g1.AvgFps, g1.AvgLatency)
	}
	if g1.Status != "Finished" {
		t.Errorf("game 1 status = %q", g1.Status)
	}
	if len(g1.Teams) != 2 {
		t.Errorf("game 1 teams = %d", len(g1.Teams))
	}

	if out[1].Status != "In Progress" {
		t.Errorf("game 2 status = %q", out[1].Status)
	}

	// Empty group: means are exactly 0, not NaN.
	g3 := out[2]
	if g3.Players != 0 || g3.AvgFps != 0 || g3.AvgLatency != 0 {
		t.Errorf("game 3 = %+v, want zeroed aggregates", g3)
	}

	t.Run("skip empty groups", func(t *testing.T) {
		out := ToGamesOverview(games, reports, testCols, StatusFromFinishedFlag, false)
		if len(out) != 2 {
			t.Fatalf("len = %d, want 2", len(out))
		}
	})

	t.Run("report presence status policy", func(t *testing.T) {
		out := ToGamesOverview(games, reports, testCols, StatusFromReportPresence, true)
		if out[0].Status != "Finished" {
			t.Errorf("game 1 status = %q", out[0].Status)
		}
		if out[2].Status != "Unknown" {
			t.Errorf("game 3 status = %q", out[2].Status)
		}
	})
}

func TestToGamesOverviewDeterministic(t *testing.T) {
	games := []models.RawRow{
		row("game_id", 1, "fnsh", true),
		row("game_id", 2, "fnsh", false),
	}
	reports := []models.RawRow{
		row("game_id", 2, "gamertag", "a", "score", 1),
		row("game_id", 1, "gamertag", "b", "score", 2),
		row("game_id", 1, "gamertag", "c", "score", 3),
	}

	first, err := json.Marshal(ToGamesOverview(games, reports, testCols, StatusFromFinishedFlag, true))
	if err != nil {
		t.Fatal(err)
	}
	for i := 0; i < 10; i++ {
		again, err := json.Marshal(ToGamesOverview(games, reports, testCols, StatusFromFinishedFlag, true))
		if err != nil {
			t.Fatal(err)
		}
		if string(first) != string(again) {
			t.Fatalf("output differs between runs:\n%s\n%s", first, again)
		}
	}
}

func TestToLeaderboard(t *testing.T) {
	rows := []models.RawRow{
		row("gamertag", "a", "score", 1),
		row("gamertag", "b", "score", 5),
		row("gamertag", "a", "score", 2),
		row("gamertag", "c", "score", 3),
		row("gamertag", "d", "score", 3),
	}

	entries := ToLeaderboard(rows, testCols)
	if len(entries) != 4 {
		t.Fatalf("len = %d, want 4", len(entries))
	}

	// Ranks are a strictly increasing 1..K permutation.
	for i, e := range entries {
		if e.Rank != i+1 {
			t.Errorf("entry %d rank = %d", i, e.Rank)
		}
	}

	if entries[0].Gamertag != "b" || entries[0].TotalGoals != 5 {
		t.Errorf("top = %+v", entries[0])
	}
	if entries[1].Gamertag != "a" || entries[1].TotalGoals != 3 || entries[1].GamesPlayed != 2 {
		t.Errorf("second = %+v", entries[1])
	}
	// c and d are tied on 3 goals; first-seen order decides.
	if entries[2].Gamertag != "c" || entries[3].Gamertag != "d" {
		t.Errorf("tie order = %s, %s, want c, d", entries[2].Gamertag, entries[3].Gamertag)
	}
}

func TestToUserHistory(t *testing.T) {
	userRows := []models.RawRow{
		row("game_id", 1, "user_id", 42, "score", 2),
		row("game_id", 2, "user_id", 42, "score", 1),
	}
	oppRows := []models.RawRow{
		row("game_id", 1, "user_id", 99, "gamertag", "Rival", "team_name", "Bruins", "score", 4, "hits", 7, "shots", 12),
	}

	out := ToUserHistory(userRows, oppRows, 42, testCols, true)

	if got := out[0].Get("opponent").String(); got != "Rival" {
		t.Errorf("game 1 opponent = %q", got)
	}
	if got := out[0].Get("opponent_score").Int64(); got != 4 {
		t.Errorf("game 1 opponent_score = %d", got)
	}
	if got := out[0].Get("opponent_hits").Int64(); got != 7 {
		t.Errorf("game 1 opponent_hits = %d", got)
	}

	// No opponent in game 2: fields stay absent, not null.
	if out[1].Has("opponent") || out[1].Has("opponent_team") {
		t.Errorf("game 2 should have no opponent fields: %v", out[1].Columns())
	}
}

func TestToUserHistorySkipsOwnReports(t *testing.T) {
	userRows := []models.RawRow{row("game_id", 1, "user_id", 42)}
	oppRows := []models.RawRow{
		row("game_id", 1, "user_id", 42, "gamertag", "Self"),
		row("game_id", 1, "user_id", 7, "gamertag", "Other"),
	}

	out := ToUserHistory(userRows, oppRows, 42, testCols, false)
	if got := out[0].Get("opponent").String(); got != "Other" {
		t.Errorf("opponent = %q, want Other", got)
	}
}

func TestSideTotalsAndWinner(t *testing.T) {
	reports := []models.RawRow{
		row("home", true, "score", 3, "team_name", "Bruins"),
		row("home", true, "score", nil),
		row("home", false, "score", 2, "team_name", "Rangers"),
	}

	home, away := SideTotals(reports, testCols, "home")
	if home != 3 || away != 2 {
		t.Fatalf("totals = %d/%d, want 3/2", home, away)
	}

	homeTeam, awayTeam := SideTeamNames(reports, testCols, "home")
	if homeTeam.String() != "Bruins" || awayTeam.String() != "Rangers" {
		t.Errorf("teams = %q/%q", homeTeam.String(), awayTeam.String())
	}

	if w := Winner("Bruins", "Rangers", home, away); w == nil || *w != "Bruins" {
		t.Errorf("winner = %v", w)
	}
	if w := Winner("Bruins", "Rangers", 2, 2); w != nil {
		t.Errorf("tie winner = %q, want nil", *w)
	}
}

func TestRangeFloor(t *testing.T) {
	now := time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		rng  string
		want time.Time
	}{
		{"day", now.AddDate(0, 0, -1)},
		{"week", now.AddDate(0, 0, -7)},
		{"month", now.AddDate(0, -1, 0)},
		{"decade-ish-unknown-string", time.Time{}},
		{"", time.Time{}},
	}
	for _, tt := range tests {
		if got := RangeFloor(tt.rng, now); !got.Equal(tt.want) {
			t.Errorf("RangeFloor(%q) = %v, want %v", tt.rng, got, tt.want)
		}
	}

	// A week floor keeps a 3-day-old report and drops a 10-day-old one.
	floor := RangeFloor("week", now)
	if !now.AddDate(0, 0, -3).After(floor) {
		t.Error("3-day-old report should pass the week floor")
	}
	if now.AddDate(0, 0, -10).After(floor) {
		t.Error("10-day-old report should not pass the week floor")
	}
}
