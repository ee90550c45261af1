package web

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"soccer-league-app/internal/auth"
	"soccer-league-app/internal/model"
	"soccer-league-app/internal/store"
)

func newTestServer(t *testing.T) http.Handler {
	t.Helper()
	st := store.NewMemoryStore()
	authSvc := auth.NewService(st)
	if !authSvc.CreateAdmin("admin", "admin-pass", "admin@example.com") {
		t.Fatal("could not seed admin")
	}
	if !authSvc.Signup("viewer", "viewer-pass", "viewer@example.com") {
		t.Fatal("could not seed viewer")
	}
	return NewServer(st, authSvc).Routes()
}

func doJSON(t *testing.T, h http.Handler, method, target string, body any, cookie *http.Cookie) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode request: %v", err)
		}
	}
	req := httptest.NewRequest(method, target, &buf)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if cookie != nil {
		req.AddCookie(cookie)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func login(t *testing.T, h http.Handler, username, password, role string) *http.Cookie {
	t.Helper()
	rec := doJSON(t, h, http.MethodPost, "/api/login", map[string]string{
		"username": username, "password": password, "role": role,
	}, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("login(%q, %q) status = %d", username, role, rec.Code)
	}
	for _, c := range rec.Result().Cookies() {
		if c.Name == sessionCookieName {
			return c
		}
	}
	t.Fatal("no session cookie in login response")
	return nil
}

func TestLoginStatusCodes(t *testing.T) {
	h := newTestServer(t)

	cases := []struct {
		name     string
		username string
		password string
		role     string
		want     int
	}{
		{"authorized", "viewer", "viewer-pass", "Viewer", http.StatusOK},
		{"role mismatch", "viewer", "viewer-pass", "Admin", http.StatusForbidden},
		{"bad password", "viewer", "nope", "Viewer", http.StatusUnauthorized},
		{"unknown user", "ghost", "pw", "Viewer", http.StatusUnauthorized},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := doJSON(t, h, http.MethodPost, "/api/login", map[string]string{
				"username": tc.username, "password": tc.password, "role": tc.role,
			}, nil)
			if rec.Code != tc.want {
				t.Errorf("status = %d, want %d", rec.Code, tc.want)
			}
		})
	}
}

func TestSignupAndDuplicateEmail(t *testing.T) {
	h := newTestServer(t)

	rec := doJSON(t, h, http.MethodPost, "/api/signup", map[string]string{
		"username": "newbie", "password": "pw", "email": "newbie@example.com",
	}, nil)
	if rec.Code != http.StatusCreated {
		t.Fatalf("signup status = %d", rec.Code)
	}
	var body map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode signup response: %v", err)
	}
	if body["role"] != "Viewer" {
		t.Errorf("signup role = %q, want Viewer", body["role"])
	}

	rec = doJSON(t, h, http.MethodPost, "/api/signup", map[string]string{
		"username": "other", "password": "pw", "email": "NEWBIE@example.com",
	}, nil)
	if rec.Code != http.StatusConflict {
		t.Errorf("duplicate email status = %d, want 409", rec.Code)
	}
}

func TestSessionRequired(t *testing.T) {
	h := newTestServer(t)

	if rec := doJSON(t, h, http.MethodGet, "/api/dashboard", nil, nil); rec.Code != http.StatusUnauthorized {
		t.Errorf("anonymous dashboard status = %d, want 401", rec.Code)
	}

	cookie := login(t, h, "viewer", "viewer-pass", "Viewer")
	rec := doJSON(t, h, http.MethodGet, "/api/dashboard", nil, cookie)
	if rec.Code != http.StatusOK {
		t.Fatalf("dashboard status = %d", rec.Code)
	}
	var counts map[string]int
	if err := json.Unmarshal(rec.Body.Bytes(), &counts); err != nil {
		t.Fatalf("decode dashboard: %v", err)
	}
	for _, key := range []string{"teams", "players", "matches", "events", "performances"} {
		if _, ok := counts[key]; !ok {
			t.Errorf("dashboard missing %q", key)
		}
	}
}

func TestWritesRequireAdmin(t *testing.T) {
	h := newTestServer(t)
	viewer := login(t, h, "viewer", "viewer-pass", "Viewer")
	admin := login(t, h, "admin", "admin-pass", "Admin")

	team := map[string]any{"name": "Red FC", "coach": "Dana", "founded_year": 1990}

	if rec := doJSON(t, h, http.MethodPost, "/api/teams", team, viewer); rec.Code != http.StatusForbidden {
		t.Errorf("viewer create team status = %d, want 403", rec.Code)
	}
	if rec := doJSON(t, h, http.MethodPost, "/api/teams", team, admin); rec.Code != http.StatusCreated {
		t.Errorf("admin create team status = %d, want 201", rec.Code)
	}
	if rec := doJSON(t, h, http.MethodPost, "/api/teams", team, admin); rec.Code != http.StatusConflict {
		t.Errorf("duplicate team status = %d, want 409", rec.Code)
	}
}

func TestTeamDeleteConfirmation(t *testing.T) {
	h := newTestServer(t)
	admin := login(t, h, "admin", "admin-pass", "Admin")

	if rec := doJSON(t, h, http.MethodPost, "/api/teams", map[string]any{"name": "Doomed FC"}, admin); rec.Code != http.StatusCreated {
		t.Fatalf("create team status = %d", rec.Code)
	}
	rec := doJSON(t, h, http.MethodGet, "/api/teams", nil, admin)
	var teams []model.TeamRow
	if err := json.Unmarshal(rec.Body.Bytes(), &teams); err != nil || len(teams) != 1 {
		t.Fatalf("list teams: err=%v teams=%v", err, teams)
	}
	id := teams[0].ID

	if rec := doJSON(t, h, http.MethodDelete, fmt.Sprintf("/api/teams/%d", id), nil, admin); rec.Code != http.StatusBadRequest {
		t.Errorf("delete without name status = %d, want 400", rec.Code)
	}
	if rec := doJSON(t, h, http.MethodDelete, fmt.Sprintf("/api/teams/%d?name=Wrong+FC", id), nil, admin); rec.Code != http.StatusNotFound {
		t.Errorf("delete with wrong name status = %d, want 404", rec.Code)
	}
	if rec := doJSON(t, h, http.MethodDelete, fmt.Sprintf("/api/teams/%d?name=Doomed+FC", id), nil, admin); rec.Code != http.StatusNoContent {
		t.Errorf("delete status = %d, want 204", rec.Code)
	}
}

func TestMatchSelfPairRejected(t *testing.T) {
	h := newTestServer(t)
	admin := login(t, h, "admin", "admin-pass", "Admin")

	rec := doJSON(t, h, http.MethodPost, "/api/matches", map[string]any{
		"home_team_id": 7, "away_team_id": 7,
	}, admin)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("self match status = %d, want 400", rec.Code)
	}
}

func TestEventTypeValidated(t *testing.T) {
	h := newTestServer(t)
	admin := login(t, h, "admin", "admin-pass", "Admin")

	rec := doJSON(t, h, http.MethodPost, "/api/events", map[string]any{
		"match_id": 1, "event_type": "Handstand", "event_time": 10,
	}, admin)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("unknown event type status = %d, want 400", rec.Code)
	}
}

func TestPasswordResetEndpoints(t *testing.T) {
	h := newTestServer(t)

	if rec := doJSON(t, h, http.MethodPost, "/api/password-reset/request", map[string]string{"email": "ghost@example.com"}, nil); rec.Code != http.StatusNotFound {
		t.Errorf("unknown email status = %d, want 404", rec.Code)
	}

	rec := doJSON(t, h, http.MethodPost, "/api/password-reset/request", map[string]string{"email": "viewer@example.com"}, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("request status = %d", rec.Code)
	}
	var body map[string]int
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode code: %v", err)
	}
	code := body["code"]

	if rec := doJSON(t, h, http.MethodPost, "/api/password-reset/confirm", map[string]any{
		"email": "viewer@example.com", "code": 0, "new_password": "changed",
	}, nil); rec.Code != http.StatusBadRequest {
		t.Errorf("wrong code status = %d, want 400", rec.Code)
	}

	// The failed attempt consumed the code.
	rec = doJSON(t, h, http.MethodPost, "/api/password-reset/request", map[string]string{"email": "viewer@example.com"}, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("second request status = %d", rec.Code)
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode second code: %v", err)
	}
	code = body["code"]

	if rec := doJSON(t, h, http.MethodPost, "/api/password-reset/confirm", map[string]any{
		"email": "viewer@example.com", "code": code, "new_password": "changed",
	}, nil); rec.Code != http.StatusNoContent {
		t.Errorf("confirm status = %d, want 204", rec.Code)
	}

	login(t, h, "viewer", "changed", "Viewer")
}

func TestLogoutEndsSession(t *testing.T) {
	h := newTestServer(t)
	cookie := login(t, h, "viewer", "viewer-pass", "Viewer")

	if rec := doJSON(t, h, http.MethodPost, "/api/logout", nil, cookie); rec.Code != http.StatusNoContent {
		t.Fatalf("logout status = %d", rec.Code)
	}
	if rec := doJSON(t, h, http.MethodGet, "/api/dashboard", nil, cookie); rec.Code != http.StatusUnauthorized {
		t.Errorf("dashboard after logout status = %d, want 401", rec.Code)
	}
}
