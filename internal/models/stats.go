package models

// SubModeTotals is one sub-mode slice (VS or SO) of a player profile.
type SubModeTotals struct {
	Games int   `json:"games"`
	Goals int64 `json:"goals"`
}

// PlayerProfile is the unified player lookup response. VS/SO are only
// populated by the dual-table variants.
type PlayerProfile struct {
	UserID     int64          `json:"userId"`
	PlayerName string         `json:"playerName"`
	VS         *SubModeTotals `json:"VS,omitempty"`
	SO         *SubModeTotals `json:"SO,omitempty"`
	TotalGames int            `json:"totalGames"`
	TotalGoals int64          `json:"totalGoals"`
}

// TeamLine is one report's contribution to a game listing entry.
type TeamLine struct {
	TeamName Value `json:"team_name"`
	Score    Value `json:"score"`
	Shots    Value `json:"shots"`
	Hits     Value `json:"hits"`
	Gamertag Value `json:"gamertag"`
}

// GameOverview is one entry of the combined games listing.
type GameOverview struct {
	GameID     int64      `json:"game_id"`
	CreatedAt  Value      `json:"created_at"`
	Finished   Value      `json:"fnsh"`
	GameType   Value      `json:"gtyp"`
	Venue      Value      `json:"venue"`
	Players    int        `json:"players"`
	TotalGoals int64      `json:"totalGoals"`
	AvgFps     float64    `json:"avgFps"`
	AvgLatency float64    `json:"avgLatency"`
	Teams      []TeamLine `json:"teams"`
	Status     string     `json:"status"`
}

type LeaderboardEntry struct {
	Gamertag    string `json:"gamertag"`
	TotalGoals  int64  `json:"totalGoals"`
	GamesPlayed int    `json:"gamesPlayed"`
	Rank        int    `json:"rank"`
}

type GlobalStats struct {
	TotalGames   int64 `json:"totalGames"`
	TotalReports int64 `json:"totalReports"`
	TotalPlayers int64 `json:"totalPlayers"`
}

// SplitRows is the VS/SO envelope the dual-table variants use for raw and
// per-game report listings.
type SplitRows struct {
	VS []RawRow `json:"VS"`
	SO []RawRow `json:"SO"`
}

// SplitGames is the dual-table games listing, one overview list per
// sub-mode. A game appears under a sub-mode only when it has reports there.
type SplitGames struct {
	VS []GameOverview `json:"VS"`
	SO []GameOverview `json:"SO"`
}

// GameReports is the single-table per-game report listing.
type GameReports struct {
	GameID  int64    `json:"gameId"`
	Reports []RawRow `json:"reports"`
}

// GameHeader summarizes one game for the single-table summary endpoint.
type GameHeader struct {
	GameID    int64 `json:"gameId"`
	PlayedAt  Value `json:"playedAt"`
	HomeTeam  Value `json:"homeTeam"`
	AwayTeam  Value `json:"awayTeam"`
	HomeScore int64 `json:"homeScore"`
	AwayScore int64 `json:"awayScore"`
}

// GameSummary is the single-table game summary. WinnerTeam is nil on a
// tie.
type GameSummary struct {
	Game       GameHeader `json:"game"`
	Reports    []RawRow   `json:"reports"`
	WinnerTeam *string    `json:"winnerTeam"`
}

// SplitGameSummary is the dual-table game summary. The split variant keeps
// the VS/SO report lists; the legacy variant flattens them into Reports.
// Winner is "home" or "away", nil on a tie.
type SplitGameSummary struct {
	GameID    int64    `json:"gameId"`
	HomeScore int64    `json:"homeScore"`
	AwayScore int64    `json:"awayScore"`
	VS        []RawRow `json:"VS,omitempty"`
	SO        []RawRow `json:"SO,omitempty"`
	Reports   []RawRow `json:"reports,omitempty"`
	Winner    *string  `json:"winner"`
}
