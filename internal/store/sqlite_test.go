package store

import (
	"os"
	"path/filepath"
	"testing"

	"soccer-league-app/internal/model"
)

func newTestStore(t *testing.T) *SQLiteStore {
	t.Helper()
	s, err := NewSQLiteStore(filepath.Join(t.TempDir(), "league.db"), SQLiteOptions{})
	if err != nil {
		t.Fatalf("NewSQLiteStore() failed: %v", err)
	}
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func mustAddTeam(t *testing.T, s *SQLiteStore, name string) model.Team {
	t.Helper()
	if !s.AddTeam(model.Team{Name: name, Coach: "Coach", FoundedYear: 1990}) {
		t.Fatalf("AddTeam(%q) failed", name)
	}
	rows := s.TeamRows()
	for _, row := range rows {
		if row.Name == name {
			return model.Team{ID: row.ID, Name: row.Name, Coach: row.Coach, FoundedYear: row.FoundedYear}
		}
	}
	t.Fatalf("team %q not found after add", name)
	return model.Team{}
}

func mustAddPlayer(t *testing.T, s *SQLiteStore, name string, teamID int64, jersey int) model.Player {
	t.Helper()
	if !s.AddPlayer(model.Player{FullName: name, Age: 25, Nationality: "Spain", Position: "Forward", TeamID: teamID, JerseyNumber: jersey}) {
		t.Fatalf("AddPlayer(%q) failed", name)
	}
	for _, p := range s.ListPlayersByTeam(teamID) {
		if p.FullName == name && p.JerseyNumber == jersey {
			return p
		}
	}
	t.Fatalf("player %q not found after add", name)
	return model.Player{}
}

func mustAddMatch(t *testing.T, s *SQLiteStore, home, away int64) model.Match {
	t.Helper()
	if !s.AddMatch(model.Match{HomeTeamID: home, AwayTeamID: away, MatchDate: "2025-08-25", Venue: "Stadium", HomeScore: 2, AwayScore: 1}) {
		t.Fatalf("AddMatch(%d, %d) failed", home, away)
	}
	rows := s.MatchRows()
	if len(rows) == 0 {
		t.Fatal("no match rows after add")
	}
	return model.Match{ID: rows[len(rows)-1].ID, HomeTeamID: home, AwayTeamID: away, MatchDate: "2025-08-25", Venue: "Stadium", HomeScore: 2, AwayScore: 1}
}

func TestAddTeamDuplicateName(t *testing.T) {
	s := newTestStore(t)

	if !s.AddTeam(model.Team{Name: "Red FC", FoundedYear: 1990}) {
		t.Fatal("first AddTeam failed")
	}
	count := s.CountTeams()

	if s.AddTeam(model.Team{Name: "Red FC", FoundedYear: 2001}) {
		t.Error("duplicate team name accepted")
	}
	if got := s.CountTeams(); got != count {
		t.Errorf("count changed after failed add: got %d, want %d", got, count)
	}
}

func TestAddMatchRejectsSameTeam(t *testing.T) {
	s := newTestStore(t)
	team := mustAddTeam(t, s, "Solo FC")

	if s.AddMatch(model.Match{HomeTeamID: team.ID, AwayTeamID: team.ID}) {
		t.Error("match with identical home and away accepted")
	}
	if got := s.CountMatches(); got != 0 {
		t.Errorf("match row written despite rejection: count %d", got)
	}
}

func TestForeignKeysEnforced(t *testing.T) {
	s := newTestStore(t)

	if s.AddMatch(model.Match{HomeTeamID: 41, AwayTeamID: 42}) {
		t.Error("match with missing teams accepted")
	}
	if s.AddPlayer(model.Player{FullName: "Lost", TeamID: 42, JerseyNumber: 1}) {
		t.Error("player with missing team accepted")
	}
	if got := s.CountMatches(); got != 0 {
		t.Errorf("match count = %d, want 0", got)
	}
	if got := s.CountPlayers(); got != 0 {
		t.Errorf("player count = %d, want 0", got)
	}
}

func TestCountsTrackSuccessfulAdds(t *testing.T) {
	s := newTestStore(t)

	if got := s.CountTeams(); got != 0 {
		t.Fatalf("fresh store team count = %d", got)
	}
	mustAddTeam(t, s, "Alpha")
	if got := s.CountTeams(); got != 1 {
		t.Errorf("after one add, count = %d, want 1", got)
	}
	s.AddTeam(model.Team{Name: "Alpha"}) // duplicate, fails
	if got := s.CountTeams(); got != 1 {
		t.Errorf("after failed add, count = %d, want 1", got)
	}
	mustAddTeam(t, s, "Beta")
	if got := s.CountTeams(); got != 2 {
		t.Errorf("after second add, count = %d, want 2", got)
	}
}

func TestDeletePlayerCompoundKey(t *testing.T) {
	s := newTestStore(t)
	team := mustAddTeam(t, s, "Blue FC")
	player := mustAddPlayer(t, s, "Leo Messi", team.ID, 10)

	cases := []struct {
		name     string
		id       int64
		fullName string
		jersey   int
		want     bool
	}{
		{"wrong id", player.ID + 99, "Leo Messi", 10, false},
		{"wrong name", player.ID, "Leo Messo", 10, false},
		{"wrong jersey", player.ID, "Leo Messi", 7, false},
		{"exact match", player.ID, "Leo Messi", 10, true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := s.DeletePlayer(tc.id, tc.fullName, tc.jersey); got != tc.want {
				t.Errorf("DeletePlayer(%d, %q, %d) = %v, want %v", tc.id, tc.fullName, tc.jersey, got, tc.want)
			}
		})
	}
	if got := s.CountPlayers(); got != 0 {
		t.Errorf("player count after delete = %d, want 0", got)
	}
}

func TestDeleteTeamCompoundKey(t *testing.T) {
	s := newTestStore(t)
	team := mustAddTeam(t, s, "Red FC")

	if s.DeleteTeam(team.ID, "Blue FC") {
		t.Error("delete with wrong name succeeded")
	}
	if !s.DeleteTeam(team.ID, "Red FC") {
		t.Error("delete with matching id and name failed")
	}
	if got := s.CountTeams(); got != 0 {
		t.Errorf("team count after delete = %d, want 0", got)
	}
}

func TestDeleteTeamCascadesPlayers(t *testing.T) {
	s := newTestStore(t)
	team := mustAddTeam(t, s, "Casc FC")
	mustAddPlayer(t, s, "One", team.ID, 1)
	mustAddPlayer(t, s, "Two", team.ID, 2)

	if !s.DeleteTeam(team.ID, "Casc FC") {
		t.Fatal("DeleteTeam failed")
	}
	if players := s.ListPlayersByTeam(team.ID); len(players) != 0 {
		t.Errorf("players survived team delete: %v", players)
	}
	if got := s.CountPlayers(); got != 0 {
		t.Errorf("player count after cascade = %d, want 0", got)
	}
}

func TestDeleteMatchCascadesEventsAndPerformance(t *testing.T) {
	s := newTestStore(t)
	home := mustAddTeam(t, s, "Home FC")
	away := mustAddTeam(t, s, "Away FC")
	player := mustAddPlayer(t, s, "Scorer", home.ID, 9)
	match := mustAddMatch(t, s, home.ID, away.ID)

	if !s.AddEvent(model.GameEvent{MatchID: match.ID, PlayerID: player.ID, EventType: model.EventGoal, EventTime: 23}) {
		t.Fatal("AddEvent failed")
	}
	if !s.AddPerformance(model.Performance{PlayerID: player.ID, MatchID: match.ID, Goals: 1, MinutesPlayed: 90}) {
		t.Fatal("AddPerformance failed")
	}

	if !s.DeleteMatch(match.ID) {
		t.Fatal("DeleteMatch failed")
	}
	if got := s.CountEvents(); got != 0 {
		t.Errorf("event count after match delete = %d, want 0", got)
	}
	if got := s.CountPerformances(); got != 0 {
		t.Errorf("performance count after match delete = %d, want 0", got)
	}
}

func TestDeletePlayerCascadesPerformance(t *testing.T) {
	s := newTestStore(t)
	home := mustAddTeam(t, s, "Home FC")
	away := mustAddTeam(t, s, "Away FC")
	player := mustAddPlayer(t, s, "Runner", home.ID, 8)
	match := mustAddMatch(t, s, home.ID, away.ID)

	if !s.AddPerformance(model.Performance{PlayerID: player.ID, MatchID: match.ID, MinutesPlayed: 45}) {
		t.Fatal("AddPerformance failed")
	}
	if !s.DeletePlayer(player.ID, "Runner", 8) {
		t.Fatal("DeletePlayer failed")
	}
	if got := s.CountPerformances(); got != 0 {
		t.Errorf("performance count after player delete = %d, want 0", got)
	}
}

func TestUpdateMissingRowReturnsFalse(t *testing.T) {
	s := newTestStore(t)

	if s.UpdateTeam(model.Team{ID: 404, Name: "Ghost"}) {
		t.Error("UpdateTeam on missing id succeeded")
	}
	if s.UpdatePlayer(model.Player{ID: 404, FullName: "Ghost"}) {
		t.Error("UpdatePlayer on missing id succeeded")
	}
	if s.UpdateMatch(model.Match{ID: 404, HomeTeamID: 1, AwayTeamID: 2}) {
		t.Error("UpdateMatch on missing id succeeded")
	}
}

func TestEventTypeConstraint(t *testing.T) {
	s := newTestStore(t)
	home := mustAddTeam(t, s, "Home FC")
	away := mustAddTeam(t, s, "Away FC")
	match := mustAddMatch(t, s, home.ID, away.ID)

	if s.AddEvent(model.GameEvent{MatchID: match.ID, EventType: "Handstand", EventTime: 10}) {
		t.Error("event with unknown type accepted")
	}
	if !s.AddEvent(model.GameEvent{MatchID: match.ID, EventType: model.EventYellowCard, EventTime: 41}) {
		t.Error("event with valid type rejected")
	}
}

func TestNegativeCountersRejected(t *testing.T) {
	s := newTestStore(t)
	home := mustAddTeam(t, s, "Home FC")
	away := mustAddTeam(t, s, "Away FC")
	player := mustAddPlayer(t, s, "Neg", home.ID, 3)
	match := mustAddMatch(t, s, home.ID, away.ID)

	if s.AddPlayer(model.Player{FullName: "Backwards", Age: -1, TeamID: home.ID, JerseyNumber: 4}) {
		t.Error("negative age accepted")
	}
	if s.AddPerformance(model.Performance{PlayerID: player.ID, MatchID: match.ID, Goals: -2}) {
		t.Error("negative goals accepted")
	}
	if s.AddMatch(model.Match{HomeTeamID: home.ID, AwayTeamID: away.ID, HomeScore: -1}) {
		t.Error("negative score accepted")
	}
}

func TestReportingRows(t *testing.T) {
	s := newTestStore(t)
	home := mustAddTeam(t, s, "Home FC")
	away := mustAddTeam(t, s, "Away FC")
	player := mustAddPlayer(t, s, "Striker", home.ID, 9)
	match := mustAddMatch(t, s, home.ID, away.ID)

	if !s.AddEvent(model.GameEvent{MatchID: match.ID, PlayerID: player.ID, EventType: model.EventGoal, EventTime: 12}) {
		t.Fatal("AddEvent failed")
	}
	if !s.AddPerformance(model.Performance{PlayerID: player.ID, MatchID: match.ID, Goals: 2, Assists: 1, MinutesPlayed: 90}) {
		t.Fatal("AddPerformance failed")
	}

	players := s.PlayerRows()
	if len(players) != 1 || players[0].TeamName != "Home FC" {
		t.Errorf("PlayerRows() = %+v, want one row with team Home FC", players)
	}

	matches := s.MatchRows()
	if len(matches) != 1 {
		t.Fatalf("MatchRows() returned %d rows, want 1", len(matches))
	}
	if matches[0].HomeTeam != "Home FC" || matches[0].AwayTeam != "Away FC" {
		t.Errorf("match row teams = %q vs %q", matches[0].HomeTeam, matches[0].AwayTeam)
	}
	if matches[0].Score != "2 - 1" {
		t.Errorf("match row score = %q, want %q", matches[0].Score, "2 - 1")
	}

	events := s.EventRows()
	if len(events) != 1 || events[0].PlayerName != "Striker" || events[0].TeamName != "Home FC" {
		t.Errorf("EventRows() = %+v", events)
	}

	perfs := s.PerformanceRows()
	if len(perfs) != 1 || perfs[0].PlayerName != "Striker" || perfs[0].Goals != 2 {
		t.Errorf("PerformanceRows() = %+v", perfs)
	}
}

func TestAccountLifecycle(t *testing.T) {
	s := newTestStore(t)

	if !s.CreateAccount(model.Account{Username: "loay", PasswordHash: "hash", Role: model.RoleAdmin, Email: "loay@example.com"}) {
		t.Fatal("CreateAccount failed")
	}
	if s.CreateAccount(model.Account{Username: "loay", PasswordHash: "other", Role: model.RoleViewer, Email: "dup@example.com"}) {
		t.Error("duplicate username accepted")
	}
	if s.CreateAccount(model.Account{Username: "stranger", PasswordHash: "h", Role: "Referee", Email: "x@example.com"}) {
		t.Error("unknown role accepted")
	}

	account, err := s.GetAccountByUsername("loay")
	if err != nil {
		t.Fatalf("GetAccountByUsername() error: %v", err)
	}
	if account.Role != model.RoleAdmin || account.Email != "loay@example.com" {
		t.Errorf("unexpected account: %+v", account)
	}

	if _, err := s.GetAccountByUsername("nobody"); err != ErrNotFound {
		t.Errorf("missing username error = %v, want ErrNotFound", err)
	}

	if !s.EmailExists("LOAY@EXAMPLE.COM") {
		t.Error("EmailExists is not case-insensitive")
	}
	if s.EmailExists("nobody@example.com") {
		t.Error("EmailExists reported a missing email")
	}

	if !s.UpdatePassword("loay@example.com", "newhash") {
		t.Error("UpdatePassword failed")
	}
	account, _ = s.GetAccountByEmail("loay@example.com")
	if account.PasswordHash != "newhash" {
		t.Errorf("password hash not updated: %q", account.PasswordHash)
	}
	if s.UpdatePassword("nobody@example.com", "h") {
		t.Error("UpdatePassword for missing email succeeded")
	}
}

func TestRedFCScenario(t *testing.T) {
	s := newTestStore(t)

	before := s.CountTeams()
	if !s.AddTeam(model.Team{Name: "Red FC", FoundedYear: 1990}) {
		t.Fatal("AddTeam failed")
	}
	if got := s.CountTeams(); got != before+1 {
		t.Fatalf("count after add = %d, want %d", got, before+1)
	}
	if s.AddTeam(model.Team{Name: "Red FC", FoundedYear: 1990}) {
		t.Fatal("duplicate add succeeded")
	}
	if got := s.CountTeams(); got != before+1 {
		t.Fatalf("count after failed add = %d, want %d", got, before+1)
	}

	var id int64
	for _, row := range s.TeamRows() {
		if row.Name == "Red FC" {
			id = row.ID
		}
	}
	if !s.DeleteTeam(id, "Red FC") {
		t.Fatal("DeleteTeam failed")
	}
	if got := s.CountTeams(); got != before {
		t.Errorf("count after delete = %d, want %d", got, before)
	}
}

func TestBackupTo(t *testing.T) {
	s := newTestStore(t)
	mustAddTeam(t, s, "Snapshot FC")

	dest := filepath.Join(t.TempDir(), "backup.db")
	if err := s.BackupTo(dest); err != nil {
		t.Fatalf("BackupTo() error: %v", err)
	}
	if _, err := os.Stat(dest); err != nil {
		t.Fatalf("backup file missing: %v", err)
	}

	restored, err := NewSQLiteStore(dest, SQLiteOptions{})
	if err != nil {
		t.Fatalf("open backup: %v", err)
	}
	defer restored.Close()
	if got := restored.CountTeams(); got != 1 {
		t.Errorf("restored team count = %d, want 1", got)
	}
}
