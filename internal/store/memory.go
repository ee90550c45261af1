package store

import (
	"fmt"
	"sort"
	"strings"
	"sync"

	"soccer-league-app/internal/model"

	"go.uber.org/zap"
)

// MemoryStore mirrors the SQL stores' observable contract, including
// uniqueness rules and cascades, behind a RWMutex. It backs tests and dev
// runs without a database file.
type MemoryStore struct {
	mu           sync.RWMutex
	accounts     map[int64]model.Account
	teams        map[int64]model.Team
	players      map[int64]model.Player
	matches      map[int64]model.Match
	events       map[int64]model.GameEvent
	performances map[int64]model.Performance
	nextID       int64
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		accounts:     make(map[int64]model.Account),
		teams:        make(map[int64]model.Team),
		players:      make(map[int64]model.Player),
		matches:      make(map[int64]model.Match),
		events:       make(map[int64]model.GameEvent),
		performances: make(map[int64]model.Performance),
	}
}

func (s *MemoryStore) Close() error {
	return nil
}

func (s *MemoryStore) allocID() int64 {
	s.nextID++
	return s.nextID
}

// ---- accounts ----

func (s *MemoryStore) CreateAccount(account model.Account) bool {
	if !account.Role.Valid() {
		zap.L().Warn("create account rejected: unknown role", zap.String("role", string(account.Role)))
		return false
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, a := range s.accounts {
		if a.Username == account.Username {
			return false
		}
	}
	account.ID = s.allocID()
	s.accounts[account.ID] = account
	return true
}

func (s *MemoryStore) GetAccountByUsername(username string) (model.Account, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, a := range s.accounts {
		if a.Username == username {
			return a, nil
		}
	}
	return model.Account{}, ErrNotFound
}

func (s *MemoryStore) GetAccountByEmail(email string) (model.Account, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, a := range s.accounts {
		if strings.EqualFold(a.Email, email) {
			return a, nil
		}
	}
	return model.Account{}, ErrNotFound
}

func (s *MemoryStore) EmailExists(email string) bool {
	_, err := s.GetAccountByEmail(email)
	return err == nil
}

func (s *MemoryStore) UpdatePassword(email, newHash string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	for id, a := range s.accounts {
		if strings.EqualFold(a.Email, email) {
			a.PasswordHash = newHash
			s.accounts[id] = a
			return true
		}
	}
	return false
}

func (s *MemoryStore) CountAccounts() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.accounts)
}

// ---- teams ----

func (s *MemoryStore) AddTeam(team model.Team) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, t := range s.teams {
		if t.Name == team.Name {
			return false
		}
	}
	team.ID = s.allocID()
	s.teams[team.ID] = team
	return true
}

func (s *MemoryStore) UpdateTeam(team model.Team) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.teams[team.ID]; !ok {
		return false
	}
	for id, t := range s.teams {
		if id != team.ID && t.Name == team.Name {
			return false
		}
	}
	s.teams[team.ID] = team
	return true
}

func (s *MemoryStore) DeleteTeam(id int64, name string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	team, ok := s.teams[id]
	if !ok || team.Name != name {
		return false
	}
	delete(s.teams, id)
	for pid, p := range s.players {
		if p.TeamID == id {
			delete(s.players, pid)
			s.dropPerformancesForPlayer(pid)
		}
	}
	return true
}

func (s *MemoryStore) CountTeams() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.teams)
}

// ---- players ----

func (s *MemoryStore) AddPlayer(player model.Player) bool {
	if player.Age < 0 || player.JerseyNumber < 0 {
		return false
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if player.TeamID != 0 {
		if _, ok := s.teams[player.TeamID]; !ok {
			return false
		}
	}
	player.ID = s.allocID()
	s.players[player.ID] = player
	return true
}

func (s *MemoryStore) UpdatePlayer(player model.Player) bool {
	if player.Age < 0 || player.JerseyNumber < 0 {
		return false
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.players[player.ID]; !ok {
		return false
	}
	if player.TeamID != 0 {
		if _, ok := s.teams[player.TeamID]; !ok {
			return false
		}
	}
	s.players[player.ID] = player
	return true
}

func (s *MemoryStore) DeletePlayer(id int64, fullName string, jerseyNumber int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.players[id]
	if !ok || p.FullName != fullName || p.JerseyNumber != jerseyNumber {
		return false
	}
	delete(s.players, id)
	s.dropPerformancesForPlayer(id)
	return true
}

// dropPerformancesForPlayer mirrors the performance table's ON DELETE
// CASCADE. Callers hold the write lock.
func (s *MemoryStore) dropPerformancesForPlayer(playerID int64) {
	for id, pf := range s.performances {
		if pf.PlayerID == playerID {
			delete(s.performances, id)
		}
	}
}

func (s *MemoryStore) CountPlayers() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.players)
}

func (s *MemoryStore) ListPlayersByTeam(teamID int64) []model.Player {
	s.mu.RLock()
	defer s.mu.RUnlock()

	players := []model.Player{}
	for _, p := range s.players {
		if p.TeamID == teamID {
			players = append(players, p)
		}
	}
	sort.Slice(players, func(i, j int) bool { return players[i].FullName < players[j].FullName })
	return players
}

// teamsExist mirrors the match table's team foreign keys, which are written
// unconditionally. Callers hold a lock.
func (s *MemoryStore) teamsExist(ids ...int64) bool {
	for _, id := range ids {
		if _, ok := s.teams[id]; !ok {
			return false
		}
	}
	return true
}

// ---- matches ----

func (s *MemoryStore) AddMatch(match model.Match) bool {
	if match.HomeTeamID == match.AwayTeamID {
		zap.L().Warn("add match rejected: a team cannot play against itself", zap.Int64("team_id", match.HomeTeamID))
		return false
	}
	if match.HomeScore < 0 || match.AwayScore < 0 {
		return false
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.teamsExist(match.HomeTeamID, match.AwayTeamID) {
		return false
	}
	match.ID = s.allocID()
	s.matches[match.ID] = match
	return true
}

func (s *MemoryStore) UpdateMatch(match model.Match) bool {
	if match.HomeScore < 0 || match.AwayScore < 0 {
		return false
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.matches[match.ID]; !ok {
		return false
	}
	if !s.teamsExist(match.HomeTeamID, match.AwayTeamID) {
		return false
	}
	s.matches[match.ID] = match
	return true
}

func (s *MemoryStore) DeleteMatch(id int64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.matches[id]; !ok {
		return false
	}
	delete(s.matches, id)
	for eid, e := range s.events {
		if e.MatchID == id {
			delete(s.events, eid)
		}
	}
	for pid, pf := range s.performances {
		if pf.MatchID == id {
			delete(s.performances, pid)
		}
	}
	return true
}

func (s *MemoryStore) CountMatches() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.matches)
}

// ---- game events ----

func (s *MemoryStore) AddEvent(event model.GameEvent) bool {
	if !event.EventType.Valid() || event.EventTime < 0 {
		return false
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.matches[event.MatchID]; !ok {
		return false
	}
	event.ID = s.allocID()
	s.events[event.ID] = event
	return true
}

func (s *MemoryStore) UpdateEvent(event model.GameEvent) bool {
	if !event.EventType.Valid() || event.EventTime < 0 {
		return false
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.events[event.ID]; !ok {
		return false
	}
	s.events[event.ID] = event
	return true
}

func (s *MemoryStore) DeleteEvent(id int64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.events[id]; !ok {
		return false
	}
	delete(s.events, id)
	return true
}

func (s *MemoryStore) CountEvents() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.events)
}

// ---- performance ----

func (s *MemoryStore) AddPerformance(perf model.Performance) bool {
	if perf.Goals < 0 || perf.Assists < 0 || perf.MinutesPlayed < 0 || perf.YellowCards < 0 || perf.RedCards < 0 {
		return false
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.players[perf.PlayerID]; !ok {
		return false
	}
	if _, ok := s.matches[perf.MatchID]; !ok {
		return false
	}
	perf.ID = s.allocID()
	s.performances[perf.ID] = perf
	return true
}

func (s *MemoryStore) UpdatePerformance(perf model.Performance) bool {
	if perf.Goals < 0 || perf.Assists < 0 || perf.MinutesPlayed < 0 || perf.YellowCards < 0 || perf.RedCards < 0 {
		return false
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.performances[perf.ID]; !ok {
		return false
	}
	s.performances[perf.ID] = perf
	return true
}

func (s *MemoryStore) DeletePerformance(id int64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.performances[id]; !ok {
		return false
	}
	delete(s.performances, id)
	return true
}

func (s *MemoryStore) CountPerformances() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.performances)
}

// ---- reporting ----

func (s *MemoryStore) TeamRows() []model.TeamRow {
	s.mu.RLock()
	defer s.mu.RUnlock()

	teams := []model.TeamRow{}
	for _, t := range s.teams {
		teams = append(teams, model.TeamRow{ID: t.ID, Name: t.Name, Coach: t.Coach, FoundedYear: t.FoundedYear})
	}
	sort.Slice(teams, func(i, j int) bool { return teams[i].Name < teams[j].Name })
	return teams
}

func (s *MemoryStore) PlayerRows() []model.PlayerRow {
	s.mu.RLock()
	defer s.mu.RUnlock()

	players := []model.PlayerRow{}
	for _, p := range s.players {
		players = append(players, model.PlayerRow{
			ID:           p.ID,
			FullName:     p.FullName,
			Age:          p.Age,
			Position:     p.Position,
			TeamName:     s.teams[p.TeamID].Name,
			JerseyNumber: p.JerseyNumber,
		})
	}
	sort.Slice(players, func(i, j int) bool { return players[i].FullName < players[j].FullName })
	return players
}

func (s *MemoryStore) MatchRows() []model.MatchRow {
	s.mu.RLock()
	defer s.mu.RUnlock()

	matches := []model.MatchRow{}
	for _, m := range s.matches {
		matches = append(matches, model.MatchRow{
			ID:        m.ID,
			HomeTeam:  s.teams[m.HomeTeamID].Name,
			AwayTeam:  s.teams[m.AwayTeamID].Name,
			MatchDate: m.MatchDate,
			Venue:     m.Venue,
			Score:     fmt.Sprintf("%d - %d", m.HomeScore, m.AwayScore),
		})
	}
	sort.Slice(matches, func(i, j int) bool { return matches[i].MatchDate < matches[j].MatchDate })
	return matches
}

func (s *MemoryStore) EventRows() []model.EventRow {
	s.mu.RLock()
	defer s.mu.RUnlock()

	events := []model.EventRow{}
	for _, e := range s.events {
		player := s.players[e.PlayerID]
		events = append(events, model.EventRow{
			ID:         e.ID,
			MatchID:    e.MatchID,
			PlayerName: player.FullName,
			TeamName:   s.teams[player.TeamID].Name,
			EventType:  string(e.EventType),
			EventTime:  e.EventTime,
		})
	}
	sort.Slice(events, func(i, j int) bool { return events[i].ID < events[j].ID })
	return events
}

func (s *MemoryStore) PerformanceRows() []model.PerformanceRow {
	s.mu.RLock()
	defer s.mu.RUnlock()

	perfs := []model.PerformanceRow{}
	for _, pf := range s.performances {
		player := s.players[pf.PlayerID]
		perfs = append(perfs, model.PerformanceRow{
			ID:            pf.ID,
			PlayerName:    player.FullName,
			TeamName:      s.teams[player.TeamID].Name,
			Goals:         pf.Goals,
			Assists:       pf.Assists,
			MinutesPlayed: pf.MinutesPlayed,
		})
	}
	sort.Slice(perfs, func(i, j int) bool { return perfs[i].ID < perfs[j].ID })
	return perfs
}
