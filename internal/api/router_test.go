package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"sandlot/internal/sim"
)

func newTestRouter(t *testing.T) (http.Handler, *SessionManager) {
	t.Helper()
	manager := NewSessionManager(ManagerConfig{
		MaxSessions: 4,
		TickRate:    60,
	})
	t.Cleanup(manager.StopAll)

	router := NewRouter(RouterConfig{Store: manager})
	return router, manager
}

func createSession(t *testing.T, router http.Handler, body string) map[string]interface{} {
	t.Helper()
	req := httptest.NewRequest("POST", "/api/session", bytes.NewBufferString(body))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusCreated {
		t.Fatalf("Create returned %d: %s", w.Code, w.Body.String())
	}
	var resp map[string]interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("Bad create response: %v", err)
	}
	return resp
}

// TestHealthEndpoint verifies the liveness probe
func TestHealthEndpoint(t *testing.T) {
	router, _ := newTestRouter(t)

	req := httptest.NewRequest("GET", "/health", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("Health returned %d", w.Code)
	}
	if ct := w.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("Content-Type %q", ct)
	}
}

// TestCreateSession verifies session creation with a pinned seed
func TestCreateSession(t *testing.T) {
	router, manager := newTestRouter(t)

	resp := createSession(t, router, `{"mode":"quickPlay","seed":42}`)
	id, _ := resp["id"].(string)
	if id == "" {
		t.Fatal("Create returned no id")
	}
	if seed, _ := resp["seed"].(float64); seed != 42 {
		t.Errorf("Expected seed 42, got %v", resp["seed"])
	}
	if _, ok := manager.Get(id); !ok {
		t.Error("Created session not in the manager")
	}
}

// TestCreateSessionDefaults verifies an omitted mode uses the default
func TestCreateSessionDefaults(t *testing.T) {
	router, _ := newTestRouter(t)

	resp := createSession(t, router, `{}`)
	state, _ := resp["state"].(map[string]interface{})
	if state["mode"] != "quickPlay" {
		t.Errorf("Expected default quickPlay, got %v", state["mode"])
	}
}

// TestCreateSessionInvalidMode verifies bad modes are rejected
func TestCreateSessionInvalidMode(t *testing.T) {
	router, _ := newTestRouter(t)

	req := httptest.NewRequest("POST", "/api/session", bytes.NewBufferString(`{"mode":"sandlot"}`))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("Expected 400, got %d", w.Code)
	}
}

// TestSessionLimit verifies the manager cap returns 503
func TestSessionLimit(t *testing.T) {
	router, _ := newTestRouter(t)

	for i := 0; i < 4; i++ {
		createSession(t, router, `{"mode":"practice"}`)
	}

	req := httptest.NewRequest("POST", "/api/session", bytes.NewBufferString(`{"mode":"practice"}`))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	if w.Code != http.StatusServiceUnavailable {
		t.Errorf("Expected 503 at the cap, got %d", w.Code)
	}
}

// TestPitchAndSwingCommands verifies the command endpoints reach the session
func TestPitchAndSwingCommands(t *testing.T) {
	router, _ := newTestRouter(t)
	id := createSession(t, router, `{"mode":"practice","seed":7}`)["id"].(string)

	req := httptest.NewRequest("POST", "/api/session/"+id+"/pitch", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("Pitch returned %d: %s", w.Code, w.Body.String())
	}

	var resp struct {
		State sim.GameState `json:"state"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("Bad pitch response: %v", err)
	}
	if resp.State.PitchCount != 1 {
		t.Errorf("Expected 1 pitch, got %d", resp.State.PitchCount)
	}

	req = httptest.NewRequest("POST", "/api/session/"+id+"/swing", nil)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("Swing returned %d", w.Code)
	}
}

// TestSessionNotFound verifies 404s across the session endpoints
func TestSessionNotFound(t *testing.T) {
	router, _ := newTestRouter(t)

	paths := []struct{ method, path string }{
		{"GET", "/api/session/nope/state"},
		{"POST", "/api/session/nope/pitch"},
		{"POST", "/api/session/nope/swing"},
		{"GET", "/api/session/nope/spraychart.png"},
		{"DELETE", "/api/session/nope/"},
	}
	for _, p := range paths {
		req := httptest.NewRequest(p.method, p.path, nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		if w.Code != http.StatusNotFound {
			t.Errorf("%s %s returned %d, want 404", p.method, p.path, w.Code)
		}
	}
}

// TestSessionState verifies the snapshot endpoint shape
func TestSessionState(t *testing.T) {
	router, _ := newTestRouter(t)
	id := createSession(t, router, `{"mode":"hrDerby","seed":1}`)["id"].(string)

	req := httptest.NewRequest("GET", "/api/session/"+id+"/state", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("State returned %d", w.Code)
	}

	var snap sim.Snapshot
	if err := json.Unmarshal(w.Body.Bytes(), &snap); err != nil {
		t.Fatalf("Bad snapshot: %v", err)
	}
	if snap.State.Mode != sim.ModeHRDerby {
		t.Errorf("Snapshot mode %s", snap.State.Mode)
	}
}

// TestDeleteSession verifies removal stops and forgets the session
func TestDeleteSession(t *testing.T) {
	router, manager := newTestRouter(t)
	id := createSession(t, router, `{"mode":"practice"}`)["id"].(string)

	req := httptest.NewRequest("DELETE", "/api/session/"+id+"/", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("Delete returned %d", w.Code)
	}
	if _, ok := manager.Get(id); ok {
		t.Error("Session survived deletion")
	}
	if manager.Count() != 0 {
		t.Errorf("Manager still counts %d sessions", manager.Count())
	}
}

// TestSprayChartEndpoint verifies the chart renders a PNG
func TestSprayChartEndpoint(t *testing.T) {
	router, _ := newTestRouter(t)
	id := createSession(t, router, `{"mode":"practice"}`)["id"].(string)

	req := httptest.NewRequest("GET", "/api/session/"+id+"/spraychart.png", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("Chart returned %d", w.Code)
	}
	if ct := w.Header().Get("Content-Type"); ct != "image/png" {
		t.Errorf("Content-Type %q", ct)
	}
	// PNG magic bytes.
	body := w.Body.Bytes()
	if len(body) < 8 || body[0] != 0x89 || body[1] != 'P' || body[2] != 'N' || body[3] != 'G' {
		t.Error("Response is not a PNG")
	}
}

// TestScorecardEndpoint verifies the box score for a session and the empty
// default card
func TestScorecardEndpoint(t *testing.T) {
	router, _ := newTestRouter(t)

	// No session named: an empty quickPlay card.
	req := httptest.NewRequest("GET", "/api/scorecard", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("Scorecard returned %d", w.Code)
	}
	var card Scorecard
	if err := json.Unmarshal(w.Body.Bytes(), &card); err != nil {
		t.Fatalf("Bad scorecard: %v", err)
	}
	if card.Mode != "quickPlay" || card.Inning != 1 {
		t.Errorf("Default card wrong: %+v", card)
	}

	// Named session.
	id := createSession(t, router, `{"mode":"hrDerby"}`)["id"].(string)
	req = httptest.NewRequest("GET", "/api/scorecard?session="+id, nil)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	if err := json.Unmarshal(w.Body.Bytes(), &card); err != nil {
		t.Fatalf("Bad scorecard: %v", err)
	}
	if card.Mode != "hrDerby" {
		t.Errorf("Expected hrDerby card, got %q", card.Mode)
	}

	// Unknown session.
	req = httptest.NewRequest("GET", "/api/scorecard?session=nope", nil)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	if w.Code != http.StatusNotFound {
		t.Errorf("Unknown session returned %d", w.Code)
	}
}

// TestListSessions verifies the listing endpoint
func TestListSessions(t *testing.T) {
	router, _ := newTestRouter(t)
	createSession(t, router, `{"mode":"practice"}`)
	createSession(t, router, `{"mode":"hrDerby"}`)

	req := httptest.NewRequest("GET", "/api/sessions", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	var resp struct {
		Sessions []string `json:"sessions"`
		Count    int      `json:"count"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("Bad list response: %v", err)
	}
	if resp.Count != 2 || len(resp.Sessions) != 2 {
		t.Errorf("Expected 2 sessions, got %+v", resp)
	}
}
