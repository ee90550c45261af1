package model

import "strings"

type Role string

type EventType string

const (
	RoleAdmin  Role = "Admin"
	RoleViewer Role = "Viewer"

	EventGoal         EventType = "Goal"
	EventAssist       EventType = "Assist"
	EventYellowCard   EventType = "Yellow Card"
	EventRedCard      EventType = "Red Card"
	EventSubstitution EventType = "Substitution"
	EventFoul         EventType = "Foul"
)

// ParseRole maps free-form input onto the closed role set.
func ParseRole(value string) (Role, bool) {
	switch {
	case strings.EqualFold(value, string(RoleAdmin)):
		return RoleAdmin, true
	case strings.EqualFold(value, string(RoleViewer)):
		return RoleViewer, true
	}
	return "", false
}

func (r Role) Valid() bool {
	return r == RoleAdmin || r == RoleViewer
}

func (e EventType) Valid() bool {
	switch e {
	case EventGoal, EventAssist, EventYellowCard, EventRedCard, EventSubstitution, EventFoul:
		return true
	}
	return false
}

type Account struct {
	ID           int64
	Username     string
	PasswordHash string
	Role         Role
	Email        string
}

type Team struct {
	ID          int64
	Name        string
	Coach       string
	FoundedYear int
}

type Player struct {
	ID           int64
	FullName     string
	Age          int
	Nationality  string
	Position     string
	TeamID       int64
	JerseyNumber int
}

type Match struct {
	ID         int64
	HomeTeamID int64
	AwayTeamID int64
	MatchDate  string
	Venue      string
	HomeScore  int
	AwayScore  int
}

type GameEvent struct {
	ID          int64
	MatchID     int64
	PlayerID    int64
	EventType   EventType
	EventTime   int
	Description string
}

type Performance struct {
	ID            int64
	PlayerID      int64
	MatchID       int64
	Goals         int
	Assists       int
	YellowCards   int
	RedCards      int
	MinutesPlayed int
	Rating        float64
}
