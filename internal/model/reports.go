package model

// Denormalized row sets for dashboards and tables. These are read models
// joined across entities, not write paths.

type TeamRow struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Coach       string `json:"coach"`
	FoundedYear int    `json:"founded_year"`
}

type PlayerRow struct {
	ID           int64  `json:"id"`
	FullName     string `json:"full_name"`
	Age          int    `json:"age"`
	Position     string `json:"position"`
	TeamName     string `json:"team_name"`
	JerseyNumber int    `json:"jersey_number"`
}

type MatchRow struct {
	ID        int64  `json:"id"`
	HomeTeam  string `json:"home_team"`
	AwayTeam  string `json:"away_team"`
	MatchDate string `json:"match_date"`
	Venue     string `json:"venue"`
	Score     string `json:"score"`
}

type EventRow struct {
	ID         int64  `json:"id"`
	MatchID    int64  `json:"match_id"`
	PlayerName string `json:"player_name"`
	TeamName   string `json:"team_name"`
	EventType  string `json:"event_type"`
	EventTime  int    `json:"event_time"`
}

type PerformanceRow struct {
	ID            int64  `json:"id"`
	PlayerName    string `json:"player_name"`
	TeamName      string `json:"team_name"`
	Goals         int    `json:"goals"`
	Assists       int    `json:"assists"`
	MinutesPlayed int    `json:"minutes_played"`
}
