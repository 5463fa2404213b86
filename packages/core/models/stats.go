package models

// Stats is the global activity snapshot shown on the home page.
type Stats struct {
	TotalPlayers         int64 `json:"total_players"`
	TotalMatches         int64 `json:"total_matches"`
	PendingMatches       int64 `json:"pending_matches"`
	MatchesLast7Days     int64 `json:"matches_last_7_days"`
	MatchesPrevious7Days int64 `json:"matches_previous_7_days"`
}

// PlayerStats is derived from completed matches on every read; it is never
// stored.
type PlayerStats struct {
	Handle       string         `json:"handle"`
	DisplayName  string         `json:"display_name"`
	TotalMatches int            `json:"total_matches"`
	Wins         int            `json:"wins"`
	Losses       int            `json:"losses"`
	WinRate      int            `json:"win_rate"` // percent, 0 when no matches
	BestSport    string         `json:"best_sport"`
	Ratings      map[string]int `json:"ratings"`
}

// LeaderboardEntry is one row of a per-sport leaderboard.
type LeaderboardEntry struct {
	Rank        int    `json:"rank"`
	Handle      string `json:"handle"`
	DisplayName string `json:"display_name"`
	Rating      int    `json:"rating"`
}
