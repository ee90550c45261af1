package store

import (
	"database/sql"
	"fmt"
)

// The six tables, created in FK order on every start. Statements are
// additive (IF NOT EXISTS) so running them against an existing database is a
// no-op.
var sqliteSchema = []string{
	`CREATE TABLE IF NOT EXISTS accounts (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		username TEXT NOT NULL UNIQUE,
		password_hash TEXT NOT NULL,
		role TEXT NOT NULL CHECK(role IN ('Admin','Viewer')),
		email TEXT
	)`,
	`CREATE TABLE IF NOT EXISTS teams (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		name TEXT NOT NULL UNIQUE,
		coach TEXT,
		founded_year INTEGER
	)`,
	`CREATE TABLE IF NOT EXISTS players (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		full_name TEXT NOT NULL,
		age INTEGER CHECK(age >= 0),
		nationality TEXT,
		position TEXT,
		team_id INTEGER,
		jersey_number INTEGER CHECK(jersey_number >= 0),
		FOREIGN KEY(team_id) REFERENCES teams(id) ON DELETE CASCADE
	)`,
	`CREATE TABLE IF NOT EXISTS matches (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		home_team_id INTEGER,
		away_team_id INTEGER,
		match_date TEXT,
		venue TEXT,
		home_score INTEGER DEFAULT 0 CHECK(home_score >= 0),
		away_score INTEGER DEFAULT 0 CHECK(away_score >= 0),
		FOREIGN KEY(home_team_id) REFERENCES teams(id),
		FOREIGN KEY(away_team_id) REFERENCES teams(id)
	)`,
	`CREATE TABLE IF NOT EXISTS game_event (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		match_id INTEGER NOT NULL,
		player_id INTEGER,
		event_type TEXT CHECK(event_type IN ('Goal','Assist','Yellow Card','Red Card','Substitution','Foul')),
		event_time INTEGER CHECK(event_time >= 0),
		description TEXT,
		FOREIGN KEY(match_id) REFERENCES matches(id) ON DELETE CASCADE,
		FOREIGN KEY(player_id) REFERENCES players(id)
	)`,
	`CREATE TABLE IF NOT EXISTS performance (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		player_id INTEGER NOT NULL,
		match_id INTEGER NOT NULL,
		goals INTEGER DEFAULT 0 CHECK(goals >= 0),
		assists INTEGER DEFAULT 0 CHECK(assists >= 0),
		yellow_cards INTEGER DEFAULT 0 CHECK(yellow_cards >= 0),
		red_cards INTEGER DEFAULT 0 CHECK(red_cards >= 0),
		minutes_played INTEGER DEFAULT 0 CHECK(minutes_played >= 0),
		rating REAL DEFAULT 0.0,
		FOREIGN KEY(player_id) REFERENCES players(id) ON DELETE CASCADE,
		FOREIGN KEY(match_id) REFERENCES matches(id) ON DELETE CASCADE
	)`,
}

var postgresSchema = []string{
	`CREATE TABLE IF NOT EXISTS accounts (
		id BIGSERIAL PRIMARY KEY,
		username TEXT NOT NULL UNIQUE,
		password_hash TEXT NOT NULL,
		role TEXT NOT NULL CHECK(role IN ('Admin','Viewer')),
		email TEXT
	)`,
	`CREATE TABLE IF NOT EXISTS teams (
		id BIGSERIAL PRIMARY KEY,
		name TEXT NOT NULL UNIQUE,
		coach TEXT,
		founded_year INTEGER
	)`,
	`CREATE TABLE IF NOT EXISTS players (
		id BIGSERIAL PRIMARY KEY,
		full_name TEXT NOT NULL,
		age INTEGER CHECK(age >= 0),
		nationality TEXT,
		position TEXT,
		team_id BIGINT REFERENCES teams(id) ON DELETE CASCADE,
		jersey_number INTEGER CHECK(jersey_number >= 0)
	)`,
	`CREATE TABLE IF NOT EXISTS matches (
		id BIGSERIAL PRIMARY KEY,
		home_team_id BIGINT REFERENCES teams(id),
		away_team_id BIGINT REFERENCES teams(id),
		match_date TEXT,
		venue TEXT,
		home_score INTEGER DEFAULT 0 CHECK(home_score >= 0),
		away_score INTEGER DEFAULT 0 CHECK(away_score >= 0)
	)`,
	`CREATE TABLE IF NOT EXISTS game_event (
		id BIGSERIAL PRIMARY KEY,
		match_id BIGINT NOT NULL REFERENCES matches(id) ON DELETE CASCADE,
		player_id BIGINT REFERENCES players(id),
		event_type TEXT CHECK(event_type IN ('Goal','Assist','Yellow Card','Red Card','Substitution','Foul')),
		event_time INTEGER CHECK(event_time >= 0),
		description TEXT
	)`,
	`CREATE TABLE IF NOT EXISTS performance (
		id BIGSERIAL PRIMARY KEY,
		player_id BIGINT NOT NULL REFERENCES players(id) ON DELETE CASCADE,
		match_id BIGINT NOT NULL REFERENCES matches(id) ON DELETE CASCADE,
		goals INTEGER DEFAULT 0 CHECK(goals >= 0),
		assists INTEGER DEFAULT 0 CHECK(assists >= 0),
		yellow_cards INTEGER DEFAULT 0 CHECK(yellow_cards >= 0),
		red_cards INTEGER DEFAULT 0 CHECK(red_cards >= 0),
		minutes_played INTEGER DEFAULT 0 CHECK(minutes_played >= 0),
		rating DOUBLE PRECISION DEFAULT 0.0
	)`,
}

func ensureSchema(db *sql.DB, statements []string) error {
	for _, stmt := range statements {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("create table: %w", err)
		}
	}
	return nil
}
