package web

import (
	"net/http"
	"sync"

	"soccer-league-app/internal/auth"
	"soccer-league-app/internal/model"
	"soccer-league-app/internal/store"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

const sessionCookieName = "session"

type session struct {
	Username string
	Role     model.Role
}

// Server is the JSON presentation collaborator: the only consumer of the
// repository surface and the auth service.
type Server struct {
	store store.Store
	auth  *auth.Service

	mu       sync.RWMutex
	sessions map[string]session
}

func NewServer(st store.Store, authSvc *auth.Service) *Server {
	return &Server{
		store:    st,
		auth:     authSvc,
		sessions: make(map[string]session),
	}
}

func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusOK) })

	r.Post("/api/login", s.handleLogin)
	r.Post("/api/signup", s.handleSignup)
	r.Post("/api/logout", s.handleLogout)
	r.Post("/api/password-reset/request", s.handlePasswordResetRequest)
	r.Post("/api/password-reset/confirm", s.handlePasswordResetConfirm)

	// Read side: any logged-in role.
	r.Group(func(r chi.Router) {
		r.Use(s.requireSession)
		r.Get("/api/dashboard", s.handleDashboard)
		r.Get("/api/teams", s.handleTeamRows)
		r.Get("/api/teams/{teamID}/players", s.handleTeamPlayers)
		r.Get("/api/players", s.handlePlayerRows)
		r.Get("/api/matches", s.handleMatchRows)
		r.Get("/api/events", s.handleEventRows)
		r.Get("/api/performances", s.handlePerformanceRows)
	})

	// Write side: admin only.
	r.Group(func(r chi.Router) {
		r.Use(s.requireAdmin)
		r.Post("/api/teams", s.handleTeamCreate)
		r.Put("/api/teams/{teamID}", s.handleTeamUpdate)
		r.Delete("/api/teams/{teamID}", s.handleTeamDelete)
		r.Post("/api/players", s.handlePlayerCreate)
		r.Put("/api/players/{playerID}", s.handlePlayerUpdate)
		r.Delete("/api/players/{playerID}", s.handlePlayerDelete)
		r.Post("/api/matches", s.handleMatchCreate)
		r.Put("/api/matches/{matchID}", s.handleMatchUpdate)
		r.Delete("/api/matches/{matchID}", s.handleMatchDelete)
		r.Post("/api/events", s.handleEventCreate)
		r.Put("/api/events/{eventID}", s.handleEventUpdate)
		r.Delete("/api/events/{eventID}", s.handleEventDelete)
		r.Post("/api/performances", s.handlePerformanceCreate)
		r.Put("/api/performances/{performanceID}", s.handlePerformanceUpdate)
		r.Delete("/api/performances/{performanceID}", s.handlePerformanceDelete)
		r.Post("/api/admins", s.handleAdminCreate)
		r.Post("/api/admin/backup", s.handleBackup)
	})

	return r
}

func (s *Server) openSession(w http.ResponseWriter, username string, role model.Role) {
	token := uuid.NewString()

	s.mu.Lock()
	s.sessions[token] = session{Username: username, Role: role}
	s.mu.Unlock()

	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookieName,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

func (s *Server) closeSession(w http.ResponseWriter, r *http.Request) {
	if cookie, err := r.Cookie(sessionCookieName); err == nil {
		s.mu.Lock()
		delete(s.sessions, cookie.Value)
		s.mu.Unlock()
	}
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

func (s *Server) currentSession(r *http.Request) (session, bool) {
	cookie, err := r.Cookie(sessionCookieName)
	if err != nil {
		return session{}, false
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	sess, ok := s.sessions[cookie.Value]
	return sess, ok
}

func (s *Server) requireSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := s.currentSession(r); !ok {
			respondError(w, http.StatusUnauthorized, "login required")
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) requireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sess, ok := s.currentSession(r)
		if !ok {
			respondError(w, http.StatusUnauthorized, "login required")
			return
		}
		if sess.Role != model.RoleAdmin {
			respondError(w, http.StatusForbidden, "admin role required")
			return
		}
		next.ServeHTTP(w, r)
	})
}
