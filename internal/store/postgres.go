package store

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"soccer-league-app/internal/model"

	_ "github.com/jackc/pgx/v5/stdlib"
	"go.uber.org/zap"
)

type PostgresStore struct {
	db *sql.DB
}

type PostgresOptions struct {
	MigrationsDir string
}

func NewPostgresStore(dsn string, opts PostgresOptions) (*PostgresStore, error) {
	if strings.TrimSpace(dsn) == "" {
		return nil, errors.New("postgres dsn is required")
	}
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}
	if err := ensureSchema(db, postgresSchema); err != nil {
		_ = db.Close()
		return nil, err
	}
	if dir := strings.TrimSpace(opts.MigrationsDir); dir != "" {
		if err := applyMigrations(db, dir); err != nil {
			_ = db.Close()
			return nil, err
		}
	}
	return &PostgresStore{db: db}, nil
}

func (s *PostgresStore) Close() error {
	return s.db.Close()
}

// ---- accounts ----

func (s *PostgresStore) CreateAccount(account model.Account) bool {
	if !account.Role.Valid() {
		zap.L().Warn("create account rejected: unknown role", zap.String("role", string(account.Role)))
		return false
	}
	_, err := s.db.Exec(`INSERT INTO accounts (username, password_hash, role, email) VALUES ($1, $2, $3, $4)`,
		account.Username, account.PasswordHash, string(account.Role), account.Email)
	if err != nil {
		logQueryError("create account", err)
		return false
	}
	return true
}

func (s *PostgresStore) GetAccountByUsername(username string) (model.Account, error) {
	return s.getAccount(`SELECT id, username, password_hash, role, email FROM accounts WHERE username = $1`, username)
}

func (s *PostgresStore) GetAccountByEmail(email string) (model.Account, error) {
	return s.getAccount(`SELECT id, username, password_hash, role, email FROM accounts WHERE lower(email) = lower($1) LIMIT 1`, email)
}

func (s *PostgresStore) getAccount(query string, arg any) (model.Account, error) {
	var a model.Account
	var role string
	err := s.db.QueryRow(query, arg).Scan(&a.ID, &a.Username, &a.PasswordHash, &role, &a.Email)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Account{}, ErrNotFound
	}
	if err != nil {
		logQueryError("get account", err)
		return model.Account{}, err
	}
	a.Role = model.Role(role)
	return a, nil
}

func (s *PostgresStore) EmailExists(email string) bool {
	var one int
	err := s.db.QueryRow(`SELECT 1 FROM accounts WHERE lower(email) = lower($1) LIMIT 1`, email).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return false
	}
	if err != nil {
		logQueryError("email exists", err)
		return false
	}
	return true
}

func (s *PostgresStore) UpdatePassword(email, newHash string) bool {
	res, err := s.db.Exec(`UPDATE accounts SET password_hash = $1 WHERE lower(email) = lower($2)`, newHash, email)
	if err != nil {
		logQueryError("update password", err)
		return false
	}
	return rowsAffected(res) > 0
}

func (s *PostgresStore) CountAccounts() int {
	return s.count(`SELECT COUNT(*) FROM accounts`)
}

// ---- teams ----

func (s *PostgresStore) AddTeam(team model.Team) bool {
	_, err := s.db.Exec(`INSERT INTO teams (name, coach, founded_year) VALUES ($1, $2, $3)`,
		team.Name, team.Coach, team.FoundedYear)
	if err != nil {
		logQueryError("add team", err)
		return false
	}
	return true
}

func (s *PostgresStore) UpdateTeam(team model.Team) bool {
	res, err := s.db.Exec(`UPDATE teams SET name = $1, coach = $2, founded_year = $3 WHERE id = $4`,
		team.Name, team.Coach, team.FoundedYear, team.ID)
	if err != nil {
		logQueryError("update team", err)
		return false
	}
	return rowsAffected(res) > 0
}

func (s *PostgresStore) DeleteTeam(id int64, name string) bool {
	res, err := s.db.Exec(`DELETE FROM teams WHERE id = $1 AND name = $2`, id, name)
	if err != nil {
		logQueryError("delete team", err)
		return false
	}
	return rowsAffected(res) > 0
}

func (s *PostgresStore) CountTeams() int {
	return s.count(`SELECT COUNT(*) FROM teams`)
}

// ---- players ----

func (s *PostgresStore) AddPlayer(player model.Player) bool {
	_, err := s.db.Exec(`INSERT INTO players (full_name, age, nationality, position, team_id, jersey_number) VALUES ($1, $2, $3, $4, $5, $6)`,
		player.FullName, player.Age, player.Nationality, player.Position, nullableID(player.TeamID), player.JerseyNumber)
	if err != nil {
		logQueryError("add player", err)
		return false
	}
	return true
}

func (s *PostgresStore) UpdatePlayer(player model.Player) bool {
	res, err := s.db.Exec(`UPDATE players SET full_name = $1, age = $2, nationality = $3, position = $4, team_id = $5, jersey_number = $6 WHERE id = $7`,
		player.FullName, player.Age, player.Nationality, player.Position, nullableID(player.TeamID), player.JerseyNumber, player.ID)
	if err != nil {
		logQueryError("update player", err)
		return false
	}
	return rowsAffected(res) > 0
}

func (s *PostgresStore) DeletePlayer(id int64, fullName string, jerseyNumber int) bool {
	res, err := s.db.Exec(`DELETE FROM players WHERE id = $1 AND full_name = $2 AND jersey_number = $3`,
		id, fullName, jerseyNumber)
	if err != nil {
		logQueryError("delete player", err)
		return false
	}
	return rowsAffected(res) > 0
}

func (s *PostgresStore) CountPlayers() int {
	return s.count(`SELECT COUNT(*) FROM players`)
}

func (s *PostgresStore) ListPlayersByTeam(teamID int64) []model.Player {
	rows, err := s.db.Query(`SELECT id, full_name, age, nationality, position, team_id, jersey_number FROM players WHERE team_id = $1 ORDER BY full_name`, teamID)
	if err != nil {
		logQueryError("list players by team", err)
		return nil
	}
	defer rows.Close()

	players := []model.Player{}
	for rows.Next() {
		var p model.Player
		if err := rows.Scan(&p.ID, &p.FullName, &p.Age, &p.Nationality, &p.Position, &p.TeamID, &p.JerseyNumber); err != nil {
			continue
		}
		players = append(players, p)
	}
	return players
}

// ---- matches ----

func (s *PostgresStore) AddMatch(match model.Match) bool {
	if match.HomeTeamID == match.AwayTeamID {
		zap.L().Warn("add match rejected: a team cannot play against itself", zap.Int64("team_id", match.HomeTeamID))
		return false
	}
	_, err := s.db.Exec(`INSERT INTO matches (home_team_id, away_team_id, match_date, venue, home_score, away_score) VALUES ($1, $2, $3, $4, $5, $6)`,
		match.HomeTeamID, match.AwayTeamID, match.MatchDate, match.Venue, match.HomeScore, match.AwayScore)
	if err != nil {
		logQueryError("add match", err)
		return false
	}
	return true
}

func (s *PostgresStore) UpdateMatch(match model.Match) bool {
	res, err := s.db.Exec(`UPDATE matches SET home_team_id = $1, away_team_id = $2, match_date = $3, venue = $4, home_score = $5, away_score = $6 WHERE id = $7`,
		match.HomeTeamID, match.AwayTeamID, match.MatchDate, match.Venue, match.HomeScore, match.AwayScore, match.ID)
	if err != nil {
		logQueryError("update match", err)
		return false
	}
	return rowsAffected(res) > 0
}

func (s *PostgresStore) DeleteMatch(id int64) bool {
	res, err := s.db.Exec(`DELETE FROM matches WHERE id = $1`, id)
	if err != nil {
		logQueryError("delete match", err)
		return false
	}
	return rowsAffected(res) > 0
}

func (s *PostgresStore) CountMatches() int {
	return s.count(`SELECT COUNT(*) FROM matches`)
}

// ---- game events ----

func (s *PostgresStore) AddEvent(event model.GameEvent) bool {
	_, err := s.db.Exec(`INSERT INTO game_event (match_id, player_id, event_type, event_time, description) VALUES ($1, $2, $3, $4, $5)`,
		event.MatchID, nullableID(event.PlayerID), string(event.EventType), event.EventTime, event.Description)
	if err != nil {
		logQueryError("add event", err)
		return false
	}
	return true
}

func (s *PostgresStore) UpdateEvent(event model.GameEvent) bool {
	res, err := s.db.Exec(`UPDATE game_event SET match_id = $1, player_id = $2, event_type = $3, event_time = $4, description = $5 WHERE id = $6`,
		event.MatchID, nullableID(event.PlayerID), string(event.EventType), event.EventTime, event.Description, event.ID)
	if err != nil {
		logQueryError("update event", err)
		return false
	}
	return rowsAffected(res) > 0
}

func (s *PostgresStore) DeleteEvent(id int64) bool {
	res, err := s.db.Exec(`DELETE FROM game_event WHERE id = $1`, id)
	if err != nil {
		logQueryError("delete event", err)
		return false
	}
	return rowsAffected(res) > 0
}

func (s *PostgresStore) CountEvents() int {
	return s.count(`SELECT COUNT(*) FROM game_event`)
}

// ---- performance ----

func (s *PostgresStore) AddPerformance(perf model.Performance) bool {
	_, err := s.db.Exec(`INSERT INTO performance (player_id, match_id, goals, assists, yellow_cards, red_cards, minutes_played, rating) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		perf.PlayerID, perf.MatchID, perf.Goals, perf.Assists, perf.YellowCards, perf.RedCards, perf.MinutesPlayed, perf.Rating)
	if err != nil {
		logQueryError("add performance", err)
		return false
	}
	return true
}

func (s *PostgresStore) UpdatePerformance(perf model.Performance) bool {
	res, err := s.db.Exec(`UPDATE performance SET player_id = $1, match_id = $2, goals = $3, assists = $4, yellow_cards = $5, red_cards = $6, minutes_played = $7, rating = $8 WHERE id = $9`,
		perf.PlayerID, perf.MatchID, perf.Goals, perf.Assists, perf.YellowCards, perf.RedCards, perf.MinutesPlayed, perf.Rating, perf.ID)
	if err != nil {
		logQueryError("update performance", err)
		return false
	}
	return rowsAffected(res) > 0
}

func (s *PostgresStore) DeletePerformance(id int64) bool {
	res, err := s.db.Exec(`DELETE FROM performance WHERE id = $1`, id)
	if err != nil {
		logQueryError("delete performance", err)
		return false
	}
	return rowsAffected(res) > 0
}

func (s *PostgresStore) CountPerformances() int {
	return s.count(`SELECT COUNT(*) FROM performance`)
}

// ---- reporting ----

func (s *PostgresStore) TeamRows() []model.TeamRow {
	rows, err := s.db.Query(`SELECT id, name, COALESCE(coach, ''), COALESCE(founded_year, 0) FROM teams ORDER BY name`)
	if err != nil {
		logQueryError("team rows", err)
		return nil
	}
	defer rows.Close()

	teams := []model.TeamRow{}
	for rows.Next() {
		var t model.TeamRow
		if err := rows.Scan(&t.ID, &t.Name, &t.Coach, &t.FoundedYear); err != nil {
			continue
		}
		teams = append(teams, t)
	}
	return teams
}

func (s *PostgresStore) PlayerRows() []model.PlayerRow {
	rows, err := s.db.Query(`
		SELECT p.id, p.full_name, p.age, p.position, COALESCE(t.name, ''), p.jersey_number
		FROM players p
		LEFT JOIN teams t ON p.team_id = t.id
		ORDER BY p.full_name`)
	if err != nil {
		logQueryError("player rows", err)
		return nil
	}
	defer rows.Close()

	players := []model.PlayerRow{}
	for rows.Next() {
		var p model.PlayerRow
		if err := rows.Scan(&p.ID, &p.FullName, &p.Age, &p.Position, &p.TeamName, &p.JerseyNumber); err != nil {
			continue
		}
		players = append(players, p)
	}
	return players
}

func (s *PostgresStore) MatchRows() []model.MatchRow {
	rows, err := s.db.Query(`
		SELECT m.id, COALESCE(t1.name, ''), COALESCE(t2.name, ''), m.match_date, m.venue,
		       m.home_score::text || ' - ' || m.away_score::text
		FROM matches m
		LEFT JOIN teams t1 ON m.home_team_id = t1.id
		LEFT JOIN teams t2 ON m.away_team_id = t2.id
		ORDER BY m.match_date`)
	if err != nil {
		logQueryError("match rows", err)
		return nil
	}
	defer rows.Close()

	matches := []model.MatchRow{}
	for rows.Next() {
		var m model.MatchRow
		if err := rows.Scan(&m.ID, &m.HomeTeam, &m.AwayTeam, &m.MatchDate, &m.Venue, &m.Score); err != nil {
			continue
		}
		matches = append(matches, m)
	}
	return matches
}

func (s *PostgresStore) EventRows() []model.EventRow {
	rows, err := s.db.Query(`
		SELECT ge.id, ge.match_id, COALESCE(p.full_name, ''), COALESCE(t.name, ''), ge.event_type, ge.event_time
		FROM game_event ge
		LEFT JOIN players p ON ge.player_id = p.id
		LEFT JOIN teams t ON p.team_id = t.id
		ORDER BY ge.id`)
	if err != nil {
		logQueryError("event rows", err)
		return nil
	}
	defer rows.Close()

	events := []model.EventRow{}
	for rows.Next() {
		var e model.EventRow
		if err := rows.Scan(&e.ID, &e.MatchID, &e.PlayerName, &e.TeamName, &e.EventType, &e.EventTime); err != nil {
			continue
		}
		events = append(events, e)
	}
	return events
}

func (s *PostgresStore) PerformanceRows() []model.PerformanceRow {
	rows, err := s.db.Query(`
		SELECT pf.id, p.full_name, COALESCE(t.name, ''), pf.goals, pf.assists, pf.minutes_played
		FROM performance pf
		JOIN players p ON pf.player_id = p.id
		LEFT JOIN teams t ON p.team_id = t.id
		ORDER BY pf.id`)
	if err != nil {
		logQueryError("performance rows", err)
		return nil
	}
	defer rows.Close()

	perfs := []model.PerformanceRow{}
	for rows.Next() {
		var pr model.PerformanceRow
		if err := rows.Scan(&pr.ID, &pr.PlayerName, &pr.TeamName, &pr.Goals, &pr.Assists, &pr.MinutesPlayed); err != nil {
			continue
		}
		perfs = append(perfs, pr)
	}
	return perfs
}

func (s *PostgresStore) count(query string) int {
	var n int
	if err := s.db.QueryRow(query).Scan(&n); err != nil {
		logQueryError("count", err)
		return 0
	}
	return n
}
