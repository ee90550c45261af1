package store

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"soccer-league-app/internal/model"

	"go.uber.org/zap"
	_ "modernc.org/sqlite"
)

type SQLiteStore struct {
	db *sql.DB
}

type SQLiteOptions struct {
	MigrationsDir string
}

func NewSQLiteStore(path string, opts SQLiteOptions) (*SQLiteStore, error) {
	if strings.TrimSpace(path) == "" {
		return nil, errors.New("sqlite path is required")
	}
	// Pragmas go in the DSN so the driver replays them on every connection
	// the pool opens, not just the first one.
	dsn := "file:" + path + "?_pragma=foreign_keys(1)&_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	// SQLite allows a single writer; funnel everything through one
	// connection so concurrent callers serialize instead of racing.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping sqlite: %w", err)
	}
	if err := ensureSchema(db, sqliteSchema); err != nil {
		_ = db.Close()
		return nil, err
	}
	if dir := strings.TrimSpace(opts.MigrationsDir); dir != "" {
		if err := applyMigrations(db, dir); err != nil {
			_ = db.Close()
			return nil, err
		}
	}
	return &SQLiteStore{db: db}, nil
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// BackupTo writes a consistent copy of the database to path while the store
// stays open. Restoring a copy still requires the store to be closed first.
func (s *SQLiteStore) BackupTo(path string) error {
	if _, err := s.db.Exec(`VACUUM INTO ?`, path); err != nil {
		return fmt.Errorf("backup database: %w", err)
	}
	return nil
}

// ---- accounts ----

func (s *SQLiteStore) CreateAccount(account model.Account) bool {
	if !account.Role.Valid() {
		zap.L().Warn("create account rejected: unknown role", zap.String("role", string(account.Role)))
		return false
	}
	_, err := s.db.Exec(`INSERT INTO accounts (username, password_hash, role, email) VALUES (?, ?, ?, ?)`,
		account.Username, account.PasswordHash, string(account.Role), account.Email)
	if err != nil {
		logQueryError("create account", err)
		return false
	}
	return true
}

func (s *SQLiteStore) GetAccountByUsername(username string) (model.Account, error) {
	return s.getAccount(`SELECT id, username, password_hash, role, email FROM accounts WHERE username = ?`, username)
}

func (s *SQLiteStore) GetAccountByEmail(email string) (model.Account, error) {
	return s.getAccount(`SELECT id, username, password_hash, role, email FROM accounts WHERE lower(email) = lower(?) LIMIT 1`, email)
}

func (s *SQLiteStore) getAccount(query string, arg any) (model.Account, error) {
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

func (s *SQLiteStore) EmailExists(email string) bool {
	var one int
	err := s.db.QueryRow(`SELECT 1 FROM accounts WHERE lower(email) = lower(?) LIMIT 1`, email).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return false
	}
	if err != nil {
		logQueryError("email exists", err)
		return false
	}
	return true
}

func (s *SQLiteStore) UpdatePassword(email, newHash string) bool {
	res, err := s.db.Exec(`UPDATE accounts SET password_hash = ? WHERE lower(email) = lower(?)`, newHash, email)
	if err != nil {
		logQueryError("update password", err)
		return false
	}
	return rowsAffected(res) > 0
}

func (s *SQLiteStore) CountAccounts() int {
	return s.count(`SELECT COUNT(*) FROM accounts`)
}

// ---- teams ----

func (s *SQLiteStore) AddTeam(team model.Team) bool {
	_, err := s.db.Exec(`INSERT INTO teams (name, coach, founded_year) VALUES (?, ?, ?)`,
		team.Name, team.Coach, team.FoundedYear)
	if err != nil {
		logQueryError("add team", err)
		return false
	}
	return true
}

func (s *SQLiteStore) UpdateTeam(team model.Team) bool {
	res, err := s.db.Exec(`UPDATE teams SET name = ?, coach = ?, founded_year = ? WHERE id = ?`,
		team.Name, team.Coach, team.FoundedYear, team.ID)
	if err != nil {
		logQueryError("update team", err)
		return false
	}
	return rowsAffected(res) > 0
}

func (s *SQLiteStore) DeleteTeam(id int64, name string) bool {
	res, err := s.db.Exec(`DELETE FROM teams WHERE id = ? AND name = ?`, id, name)
	if err != nil {
		logQueryError("delete team", err)
		return false
	}
	return rowsAffected(res) > 0
}

func (s *SQLiteStore) CountTeams() int {
	return s.count(`SELECT COUNT(*) FROM teams`)
}

// ---- players ----

func (s *SQLiteStore) AddPlayer(player model.Player) bool {
	_, err := s.db.Exec(`INSERT INTO players (full_name, age, nationality, position, team_id, jersey_number) VALUES (?, ?, ?, ?, ?, ?)`,
		player.FullName, player.Age, player.Nationality, player.Position, nullableID(player.TeamID), player.JerseyNumber)
	if err != nil {
		logQueryError("add player", err)
		return false
	}
	return true
}

func (s *SQLiteStore) UpdatePlayer(player model.Player) bool {
	res, err := s.db.Exec(`UPDATE players SET full_name = ?, age = ?, nationality = ?, position = ?, team_id = ?, jersey_number = ? WHERE id = ?`,
		player.FullName, player.Age, player.Nationality, player.Position, nullableID(player.TeamID), player.JerseyNumber, player.ID)
	if err != nil {
		logQueryError("update player", err)
		return false
	}
	return rowsAffected(res) > 0
}

func (s *SQLiteStore) DeletePlayer(id int64, fullName string, jerseyNumber int) bool {
	res, err := s.db.Exec(`DELETE FROM players WHERE id = ? AND full_name = ? AND jersey_number = ?`,
		id, fullName, jerseyNumber)
	if err != nil {
		logQueryError("delete player", err)
		return false
	}
	return rowsAffected(res) > 0
}

func (s *SQLiteStore) CountPlayers() int {
	return s.count(`SELECT COUNT(*) FROM players`)
}

func (s *SQLiteStore) ListPlayersByTeam(teamID int64) []model.Player {
	rows, err := s.db.Query(`SELECT id, full_name, age, nationality, position, team_id, jersey_number FROM players WHERE team_id = ? ORDER BY full_name`, teamID)
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

func (s *SQLiteStore) AddMatch(match model.Match) bool {
	if match.HomeTeamID == match.AwayTeamID {
		zap.L().Warn("add match rejected: a team cannot play against itself", zap.Int64("team_id", match.HomeTeamID))
		return false
	}
	_, err := s.db.Exec(`INSERT INTO matches (home_team_id, away_team_id, match_date, venue, home_score, away_score) VALUES (?, ?, ?, ?, ?, ?)`,
		match.HomeTeamID, match.AwayTeamID, match.MatchDate, match.Venue, match.HomeScore, match.AwayScore)
	if err != nil {
		logQueryError("add match", err)
		return false
	}
	return true
}

func (s *SQLiteStore) UpdateMatch(match model.Match) bool {
	res, err := s.db.Exec(`UPDATE matches SET home_team_id = ?, away_team_id = ?, match_date = ?, venue = ?, home_score = ?, away_score = ? WHERE id = ?`,
		match.HomeTeamID, match.AwayTeamID, match.MatchDate, match.Venue, match.HomeScore, match.AwayScore, match.ID)
	if err != nil {
		logQueryError("update match", err)
		return false
	}
	return rowsAffected(res) > 0
}

func (s *SQLiteStore) DeleteMatch(id int64) bool {
	res, err := s.db.Exec(`DELETE FROM matches WHERE id = ?`, id)
	if err != nil {
		logQueryError("delete match", err)
		return false
	}
	return rowsAffected(res) > 0
}

func (s *SQLiteStore) CountMatches() int {
	return s.count(`SELECT COUNT(*) FROM matches`)
}

// ---- game events ----

func (s *SQLiteStore) AddEvent(event model.GameEvent) bool {
	_, err := s.db.Exec(`INSERT INTO game_event (match_id, player_id, event_type, event_time, description) VALUES (?, ?, ?, ?, ?)`,
		event.MatchID, nullableID(event.PlayerID), string(event.EventType), event.EventTime, event.Description)
	if err != nil {
		logQueryError("add event", err)
		return false
	}
	return true
}

func (s *SQLiteStore) UpdateEvent(event model.GameEvent) bool {
	res, err := s.db.Exec(`UPDATE game_event SET match_id = ?, player_id = ?, event_type = ?, event_time = ?, description = ? WHERE id = ?`,
		event.MatchID, nullableID(event.PlayerID), string(event.EventType), event.EventTime, event.Description, event.ID)
	if err != nil {
		logQueryError("update event", err)
		return false
	}
	return rowsAffected(res) > 0
}

func (s *SQLiteStore) DeleteEvent(id int64) bool {
	res, err := s.db.Exec(`DELETE FROM game_event WHERE id = ?`, id)
	if err != nil {
		logQueryError("delete event", err)
		return false
	}
	return rowsAffected(res) > 0
}

func (s *SQLiteStore) CountEvents() int {
	return s.count(`SELECT COUNT(*) FROM game_event`)
}

// ---- performance ----

func (s *SQLiteStore) AddPerformance(perf model.Performance) bool {
	_, err := s.db.Exec(`INSERT INTO performance (player_id, match_id, goals, assists, yellow_cards, red_cards, minutes_played, rating) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		perf.PlayerID, perf.MatchID, perf.Goals, perf.Assists, perf.YellowCards, perf.RedCards, perf.MinutesPlayed, perf.Rating)
	if err != nil {
		logQueryError("add performance", err)
		return false
	}
	return true
}

func (s *SQLiteStore) UpdatePerformance(perf model.Performance) bool {
	res, err := s.db.Exec(`UPDATE performance SET player_id = ?, match_id = ?, goals = ?, assists = ?, yellow_cards = ?, red_cards = ?, minutes_played = ?, rating = ? WHERE id = ?`,
		perf.PlayerID, perf.MatchID, perf.Goals, perf.Assists, perf.YellowCards, perf.RedCards, perf.MinutesPlayed, perf.Rating, perf.ID)
	if err != nil {
		logQueryError("update performance", err)
		return false
	}
	return rowsAffected(res) > 0
}

func (s *SQLiteStore) DeletePerformance(id int64) bool {
	res, err := s.db.Exec(`DELETE FROM performance WHERE id = ?`, id)
	if err != nil {
		logQueryError("delete performance", err)
		return false
	}
	return rowsAffected(res) > 0
}

func (s *SQLiteStore) CountPerformances() int {
	return s.count(`SELECT COUNT(*) FROM performance`)
}

// ---- reporting ----

func (s *SQLiteStore) TeamRows() []model.TeamRow {
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

func (s *SQLiteStore) PlayerRows() []model.PlayerRow {
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

func (s *SQLiteStore) MatchRows() []model.MatchRow {
	rows, err := s.db.Query(`
		SELECT m.id, COALESCE(t1.name, ''), COALESCE(t2.name, ''), m.match_date, m.venue,
		       m.home_score || ' - ' || m.away_score
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

func (s *SQLiteStore) EventRows() []model.EventRow {
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

func (s *SQLiteStore) PerformanceRows() []model.PerformanceRow {
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

func (s *SQLiteStore) count(query string) int {
	var n int
	if err := s.db.QueryRow(query).Scan(&n); err != nil {
		logQueryError("count", err)
		return 0
	}
	return n
}

func rowsAffected(res sql.Result) int64 {
	n, _ := res.RowsAffected()
	return n
}

// nullableID maps the zero id to NULL for optional foreign key columns.
func nullableID(id int64) any {
	if id == 0 {
		return nil
	}
	return id
}
