package auth

import (
	"errors"
	"math/rand"
	"strings"
	"sync"

	"soccer-league-app/internal/model"
	"soccer-league-app/internal/store"

	"golang.org/x/crypto/bcrypt"
)

type Status int

const (
	StatusAuthorized Status = iota
	StatusRoleMismatch
	StatusInvalidCredentials
	StatusConnectivityError
)

func (s Status) String() string {
	switch s {
	case StatusAuthorized:
		return "authorized"
	case StatusRoleMismatch:
		return "role_mismatch"
	case StatusInvalidCredentials:
		return "invalid_credentials"
	default:
		return "error"
	}
}

// LoginResult carries one of four outcomes. Role is set only when Status is
// StatusAuthorized.
type LoginResult struct {
	Status Status
	Role   model.Role
}

// Service implements login, signup and the password-reset flow on top of
// the account repository. Reset codes live only in this process: they are a
// UX confirmation step for a single-operator tool, not a security control.
type Service struct {
	accounts store.AccountStore

	mu         sync.Mutex
	resetCodes map[string]int
}

func NewService(accounts store.AccountStore) *Service {
	return &Service{
		accounts:   accounts,
		resetCodes: make(map[string]int),
	}
}

// Login verifies credentials and the claimed role. An unknown username and a
// wrong password are indistinguishable to the caller; a store failure other
// than not-found surfaces as StatusConnectivityError.
func (s *Service) Login(username, password, claimedRole string) LoginResult {
	account, err := s.accounts.GetAccountByUsername(username)
	if errors.Is(err, store.ErrNotFound) {
		return LoginResult{Status: StatusInvalidCredentials}
	}
	if err != nil {
		return LoginResult{Status: StatusConnectivityError}
	}
	if !CheckPassword(account.PasswordHash, password) {
		return LoginResult{Status: StatusInvalidCredentials}
	}
	if !strings.EqualFold(string(account.Role), claimedRole) {
		return LoginResult{Status: StatusRoleMismatch}
	}
	return LoginResult{Status: StatusAuthorized, Role: account.Role}
}

// Signup registers a new Viewer account. Uniqueness is not pre-checked; a
// concurrent duplicate resolves at the unique constraint and returns false.
func (s *Service) Signup(username, password, email string) bool {
	return s.createAccount(username, password, email, model.RoleViewer)
}

// CreateAdmin registers a new Admin account, for use from the admin
// dashboard only.
func (s *Service) CreateAdmin(username, password, email string) bool {
	return s.createAccount(username, password, email, model.RoleAdmin)
}

func (s *Service) createAccount(username, password, email string, role model.Role) bool {
	if strings.TrimSpace(username) == "" || password == "" {
		return false
	}
	hash := HashPassword(password)
	if hash == "" {
		return false
	}
	return s.accounts.CreateAccount(model.Account{
		Username:     username,
		PasswordHash: hash,
		Role:         role,
		Email:        email,
	})
}

func (s *Service) EmailExists(email string) bool {
	return s.accounts.EmailExists(email)
}

// RequestPasswordReset issues a 4-digit code for the account behind email.
// The code is held in memory with no expiry and replaces any earlier code
// for the same address.
func (s *Service) RequestPasswordReset(email string) (int, bool) {
	if !s.accounts.EmailExists(email) {
		return 0, false
	}
	code := 1000 + rand.Intn(9000)

	s.mu.Lock()
	s.resetCodes[strings.ToLower(email)] = code
	s.mu.Unlock()
	return code, true
}

// ConfirmPasswordReset sets a new password when enteredCode matches the code
// issued for email in this process. A used code is consumed either way the
// store update goes, so it cannot be replayed.
func (s *Service) ConfirmPasswordReset(email string, enteredCode int, newPassword string) bool {
	key := strings.ToLower(email)

	s.mu.Lock()
	code, ok := s.resetCodes[key]
	if ok {
		delete(s.resetCodes, key)
	}
	s.mu.Unlock()

	if !ok || code != enteredCode || newPassword == "" {
		return false
	}
	hash := HashPassword(newPassword)
	if hash == "" {
		return false
	}
	return s.accounts.UpdatePassword(email, hash)
}

func HashPassword(password string) string {
	if password == "" {
		return ""
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return ""
	}
	return string(hash)
}

func CheckPassword(hash, password string) bool {
	if hash == "" || password == "" {
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
