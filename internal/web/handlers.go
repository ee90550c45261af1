package web

import (
	"net/http"
	"strconv"
	"strings"

	"soccer-league-app/internal/model"
)

func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]int{
		"teams":        s.store.CountTeams(),
		"players":      s.store.CountPlayers(),
		"matches":      s.store.CountMatches(),
		"events":       s.store.CountEvents(),
		"performances": s.store.CountPerformances(),
	})
}

// ---- teams ----

type teamRequest struct {
	Name        string `json:"name"`
	Coach       string `json:"coach"`
	FoundedYear int    `json:"founded_year"`
}

func (s *Server) handleTeamRows(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, s.store.TeamRows())
}

func (s *Server) handleTeamCreate(w http.ResponseWriter, r *http.Request) {
	var req teamRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if !s.store.AddTeam(model.Team{Name: req.Name, Coach: req.Coach, FoundedYear: req.FoundedYear}) {
		respondError(w, http.StatusConflict, "could not add team")
		return
	}
	w.WriteHeader(http.StatusCreated)
}

func (s *Server) handleTeamUpdate(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "teamID")
	if !ok {
		respondError(w, http.StatusBadRequest, "invalid team id")
		return
	}
	var req teamRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if !s.store.UpdateTeam(model.Team{ID: id, Name: req.Name, Coach: req.Coach, FoundedYear: req.FoundedYear}) {
		respondError(w, http.StatusNotFound, "could not update team")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// handleTeamDelete requires the team name alongside the id, matching the
// store's compound-key confirmation guard.
func (s *Server) handleTeamDelete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "teamID")
	if !ok {
		respondError(w, http.StatusBadRequest, "invalid team id")
		return
	}
	name := strings.TrimSpace(r.URL.Query().Get("name"))
	if name == "" {
		respondError(w, http.StatusBadRequest, "team name is required to confirm deletion")
		return
	}
	if !s.store.DeleteTeam(id, name) {
		respondError(w, http.StatusNotFound, "could not delete team")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleTeamPlayers(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "teamID")
	if !ok {
		respondError(w, http.StatusBadRequest, "invalid team id")
		return
	}
	players := s.store.ListPlayersByTeam(id)
	rows := make([]model.PlayerRow, 0, len(players))
	for _, p := range players {
		rows = append(rows, model.PlayerRow{
			ID:           p.ID,
			FullName:     p.FullName,
			Age:          p.Age,
			Position:     p.Position,
			JerseyNumber: p.JerseyNumber,
		})
	}
	respondJSON(w, http.StatusOK, rows)
}

// ---- players ----

type playerRequest struct {
	FullName     string `json:"full_name"`
	Age          int    `json:"age"`
	Nationality  string `json:"nationality"`
	Position     string `json:"position"`
	TeamID       int64  `json:"team_id"`
	JerseyNumber int    `json:"jersey_number"`
}

func (r playerRequest) toModel(id int64) model.Player {
	return model.Player{
		ID:           id,
		FullName:     r.FullName,
		Age:          r.Age,
		Nationality:  r.Nationality,
		Position:     r.Position,
		TeamID:       r.TeamID,
		JerseyNumber: r.JerseyNumber,
	}
}

func (s *Server) handlePlayerRows(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, s.store.PlayerRows())
}

func (s *Server) handlePlayerCreate(w http.ResponseWriter, r *http.Request) {
	var req playerRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if !s.store.AddPlayer(req.toModel(0)) {
		respondError(w, http.StatusConflict, "could not add player")
		return
	}
	w.WriteHeader(http.StatusCreated)
}

func (s *Server) handlePlayerUpdate(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "playerID")
	if !ok {
		respondError(w, http.StatusBadRequest, "invalid player id")
		return
	}
	var req playerRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if !s.store.UpdatePlayer(req.toModel(id)) {
		respondError(w, http.StatusNotFound, "could not update player")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handlePlayerDelete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "playerID")
	if !ok {
		respondError(w, http.StatusBadRequest, "invalid player id")
		return
	}
	name := strings.TrimSpace(r.URL.Query().Get("name"))
	jersey, err := strconv.Atoi(r.URL.Query().Get("jersey"))
	if name == "" || err != nil {
		respondError(w, http.StatusBadRequest, "player name and jersey number are required to confirm deletion")
		return
	}
	if !s.store.DeletePlayer(id, name, jersey) {
		respondError(w, http.StatusNotFound, "could not delete player")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ---- matches ----

type matchRequest struct {
	HomeTeamID int64  `json:"home_team_id"`
	AwayTeamID int64  `json:"away_team_id"`
	MatchDate  string `json:"match_date"`
	Venue      string `json:"venue"`
	HomeScore  int    `json:"home_score"`
	AwayScore  int    `json:"away_score"`
}

func (r matchRequest) toModel(id int64) model.Match {
	return model.Match{
		ID:         id,
		HomeTeamID: r.HomeTeamID,
		AwayTeamID: r.AwayTeamID,
		MatchDate:  r.MatchDate,
		Venue:      r.Venue,
		HomeScore:  r.HomeScore,
		AwayScore:  r.AwayScore,
	}
}

func (s *Server) handleMatchRows(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, s.store.MatchRows())
}

func (s *Server) handleMatchCreate(w http.ResponseWriter, r *http.Request) {
	var req matchRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if req.HomeTeamID == req.AwayTeamID {
		respondError(w, http.StatusBadRequest, "a team cannot play against itself")
		return
	}
	if !s.store.AddMatch(req.toModel(0)) {
		respondError(w, http.StatusConflict, "could not add match")
		return
	}
	w.WriteHeader(http.StatusCreated)
}

func (s *Server) handleMatchUpdate(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "matchID")
	if !ok {
		respondError(w, http.StatusBadRequest, "invalid match id")
		return
	}
	var req matchRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if !s.store.UpdateMatch(req.toModel(id)) {
		respondError(w, http.StatusNotFound, "could not update match")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleMatchDelete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "matchID")
	if !ok {
		respondError(w, http.StatusBadRequest, "invalid match id")
		return
	}
	if !s.store.DeleteMatch(id) {
		respondError(w, http.StatusNotFound, "could not delete match")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ---- game events ----

type eventRequest struct {
	MatchID     int64  `json:"match_id"`
	PlayerID    int64  `json:"player_id"`
	EventType   string `json:"event_type"`
	EventTime   int    `json:"event_time"`
	Description string `json:"description"`
}

func (r eventRequest) toModel(id int64) model.GameEvent {
	return model.GameEvent{
		ID:          id,
		MatchID:     r.MatchID,
		PlayerID:    r.PlayerID,
		EventType:   model.EventType(r.EventType),
		EventTime:   r.EventTime,
		Description: r.Description,
	}
}

func (s *Server) handleEventRows(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, s.store.EventRows())
}

func (s *Server) handleEventCreate(w http.ResponseWriter, r *http.Request) {
	var req eventRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	event := req.toModel(0)
	if !event.EventType.Valid() {
		respondError(w, http.StatusBadRequest, "unknown event type")
		return
	}
	if !s.store.AddEvent(event) {
		respondError(w, http.StatusConflict, "could not add event")
		return
	}
	w.WriteHeader(http.StatusCreated)
}

func (s *Server) handleEventUpdate(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "eventID")
	if !ok {
		respondError(w, http.StatusBadRequest, "invalid event id")
		return
	}
	var req eventRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	event := req.toModel(id)
	if !event.EventType.Valid() {
		respondError(w, http.StatusBadRequest, "unknown event type")
		return
	}
	if !s.store.UpdateEvent(event) {
		respondError(w, http.StatusNotFound, "could not update event")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleEventDelete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "eventID")
	if !ok {
		respondError(w, http.StatusBadRequest, "invalid event id")
		return
	}
	if !s.store.DeleteEvent(id) {
		respondError(w, http.StatusNotFound, "could not delete event")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ---- performance ----

type performanceRequest struct {
	PlayerID      int64   `json:"player_id"`
	MatchID       int64   `json:"match_id"`
	Goals         int     `json:"goals"`
	Assists       int     `json:"assists"`
	YellowCards   int     `json:"yellow_cards"`
	RedCards      int     `json:"red_cards"`
	MinutesPlayed int     `json:"minutes_played"`
	Rating        float64 `json:"rating"`
}

func (r performanceRequest) toModel(id int64) model.Performance {
	return model.Performance{
		ID:            id,
		PlayerID:      r.PlayerID,
		MatchID:       r.MatchID,
		Goals:         r.Goals,
		Assists:       r.Assists,
		YellowCards:   r.YellowCards,
		RedCards:      r.RedCards,
		MinutesPlayed: r.MinutesPlayed,
		Rating:        r.Rating,
	}
}

func (s *Server) handlePerformanceRows(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, s.store.PerformanceRows())
}

func (s *Server) handlePerformanceCreate(w http.ResponseWriter, r *http.Request) {
	var req performanceRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if !s.store.AddPerformance(req.toModel(0)) {
		respondError(w, http.StatusConflict, "could not add performance")
		return
	}
	w.WriteHeader(http.StatusCreated)
}

func (s *Server) handlePerformanceUpdate(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "performanceID")
	if !ok {
		respondError(w, http.StatusBadRequest, "invalid performance id")
		return
	}
	var req performanceRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if !s.store.UpdatePerformance(req.toModel(id)) {
		respondError(w, http.StatusNotFound, "could not update performance")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handlePerformanceDelete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "performanceID")
	if !ok {
		respondError(w, http.StatusBadRequest, "invalid performance id")
		return
	}
	if !s.store.DeletePerformance(id) {
		respondError(w, http.StatusNotFound, "could not delete performance")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ---- backup ----

// handleBackup snapshots the live database when the active store supports
// it. Restore stays an offline operation: it needs the store closed.
func (s *Server) handleBackup(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Dest string `json:"dest"`
	}
	if !decodeJSON(w, r, &req) {
		return
	}
	if strings.TrimSpace(req.Dest) == "" {
		respondError(w, http.StatusBadRequest, "destination path is required")
		return
	}
	backuper, ok := s.store.(interface{ BackupTo(path string) error })
	if !ok {
		respondError(w, http.StatusNotImplemented, "active store does not support live backup")
		return
	}
	if err := backuper.BackupTo(req.Dest); err != nil {
		respondError(w, http.StatusInternalServerError, "backup failed")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
