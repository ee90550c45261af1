package web

import (
	"net/http"

	"soccer-league-app/internal/auth"
	"soccer-league-app/internal/model"
)

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Username string `json:"username"`
		Password string `json:"password"`
		Role     string `json:"role"`
	}
	if !decodeJSON(w, r, &req) {
		return
	}
	role, ok := model.ParseRole(req.Role)
	if !ok {
		respondError(w, http.StatusBadRequest, "unknown role")
		return
	}
	result := s.auth.Login(req.Username, req.Password, string(role))
	switch result.Status {
	case auth.StatusAuthorized:
		s.openSession(w, req.Username, result.Role)
		respondJSON(w, http.StatusOK, map[string]string{"role": string(result.Role)})
	case auth.StatusRoleMismatch:
		respondError(w, http.StatusForbidden, "role does not match this account")
	case auth.StatusInvalidCredentials:
		respondError(w, http.StatusUnauthorized, "invalid username or password")
	default:
		respondError(w, http.StatusServiceUnavailable, "login unavailable")
	}
}

func (s *Server) handleSignup(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Username string `json:"username"`
		Password string `json:"password"`
		Email    string `json:"email"`
	}
	if !decodeJSON(w, r, &req) {
		return
	}
	if s.auth.EmailExists(req.Email) {
		respondError(w, http.StatusConflict, "email already registered")
		return
	}
	if !s.auth.Signup(req.Username, req.Password, req.Email) {
		respondError(w, http.StatusConflict, "could not create account")
		return
	}
	respondJSON(w, http.StatusCreated, map[string]string{"role": "Viewer"})
}

func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	s.closeSession(w, r)
	w.WriteHeader(http.StatusNoContent)
}

// handlePasswordResetRequest returns the verification code directly: email
// delivery is an external collaborator that does not exist yet, and the code
// only ever lives in the requesting session.
func (s *Server) handlePasswordResetRequest(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email string `json:"email"`
	}
	if !decodeJSON(w, r, &req) {
		return
	}
	code, ok := s.auth.RequestPasswordReset(req.Email)
	if !ok {
		respondError(w, http.StatusNotFound, "no account with that email")
		return
	}
	respondJSON(w, http.StatusOK, map[string]int{"code": code})
}

func (s *Server) handlePasswordResetConfirm(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email       string `json:"email"`
		Code        int    `json:"code"`
		NewPassword string `json:"new_password"`
	}
	if !decodeJSON(w, r, &req) {
		return
	}
	if !s.auth.ConfirmPasswordReset(req.Email, req.Code, req.NewPassword) {
		respondError(w, http.StatusBadRequest, "verification failed")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleAdminCreate(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Username string `json:"username"`
		Password string `json:"password"`
		Email    string `json:"email"`
	}
	if !decodeJSON(w, r, &req) {
		return
	}
	if !s.auth.CreateAdmin(req.Username, req.Password, req.Email) {
		respondError(w, http.StatusConflict, "could not create admin")
		return
	}
	respondJSON(w, http.StatusCreated, map[string]string{"role": "Admin"})
}
