package store

import (
	"errors"

	"soccer-league-app/internal/model"
)

// ErrNotFound is returned by account lookups when no row matches. The
// authentication service relies on it to tell a bad credential apart from a
// broken connection.
var ErrNotFound = errors.New("store: not found")

// AccountStore manages login principals.
type AccountStore interface {
	CreateAccount(account model.Account) bool
	GetAccountByUsername(username string) (model.Account, error)
	GetAccountByEmail(email string) (model.Account, error)
	EmailExists(email string) bool
	UpdatePassword(email, newHash string) bool
	CountAccounts() int
}

type TeamStore interface {
	AddTeam(team model.Team) bool
	UpdateTeam(team model.Team) bool
	// DeleteTeam requires id and name to match the same row, as a guard
	// against deleting the wrong team. Dependent players are removed by the
	// schema's cascade.
	DeleteTeam(id int64, name string) bool
	CountTeams() int
}

type PlayerStore interface {
	AddPlayer(player model.Player) bool
	UpdatePlayer(player model.Player) bool
	// DeletePlayer requires id, full name and jersey number to match the
	// same row.
	DeletePlayer(id int64, fullName string, jerseyNumber int) bool
	CountPlayers() int
	ListPlayersByTeam(teamID int64) []model.Player
}

type MatchStore interface {
	// AddMatch rejects a match whose home and away team are the same before
	// touching the database.
	AddMatch(match model.Match) bool
	UpdateMatch(match model.Match) bool
	DeleteMatch(id int64) bool
	CountMatches() int
}

type GameEventStore interface {
	AddEvent(event model.GameEvent) bool
	UpdateEvent(event model.GameEvent) bool
	DeleteEvent(id int64) bool
	CountEvents() int
}

type PerformanceStore interface {
	AddPerformance(perf model.Performance) bool
	UpdatePerformance(perf model.Performance) bool
	DeletePerformance(id int64) bool
	CountPerformances() int
}

// ReportingStore exposes the denormalized row sets the dashboard tables
// render. Failures surface as empty slices; the cause goes to the log.
type ReportingStore interface {
	TeamRows() []model.TeamRow
	PlayerRows() []model.PlayerRow
	MatchRows() []model.MatchRow
	EventRows() []model.EventRow
	PerformanceRows() []model.PerformanceRow
}

type Store interface {
	AccountStore
	TeamStore
	PlayerStore
	MatchStore
	GameEventStore
	PerformanceStore
	ReportingStore

	Close() error
}
