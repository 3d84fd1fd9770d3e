package api

import (
	"encoding/json"
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"sandlot/internal/sim"
	"sandlot/internal/spray"
)

// handlers carries the collaborators every endpoint needs.
type handlers struct {
	store  SessionStore
	hub    *WebSocketHub
	events *sim.EventLog
	spray  *spray.Renderer
}

// randomSeed derives a seed for sessions that did not pin one.
func randomSeed() uint32 {
	return uint32(time.Now().UnixNano())
}

// writeJSON writes a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("⚠️ Failed to encode response: %v", err)
	}
}

// writeError writes a JSON error response.
func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

// health reports liveness.
func (h *handlers) health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"status":   "ok",
		"sessions": h.store.Count(),
	})
}

// createSessionRequest is the body for POST /api/session.
type createSessionRequest struct {
	Mode string  `json:"mode"`
	Seed *uint32 `json:"seed,omitempty"`
}

// createSession starts a new simulation session.
func (h *handlers) createSession(w http.ResponseWriter, r *http.Request) {
	var req createSessionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	var seed uint32
	if req.Seed != nil {
		seed = *req.Seed
	} else {
		seed = randomSeed()
	}

	session, err := h.store.Create(req.Mode, seed)
	switch err {
	case nil:
	case ErrInvalidMode:
		writeError(w, http.StatusBadRequest, "mode must be practice, quickPlay, or hrDerby")
		return
	case ErrSessionLimit:
		writeError(w, http.StatusServiceUnavailable, "session limit reached")
		return
	default:
		writeError(w, http.StatusInternalServerError, "failed to create session")
		return
	}

	writeJSON(w, http.StatusCreated, map[string]interface{}{
		"id":    session.ID,
		"seed":  seed,
		"state": session.State(),
	})
}

// listSessions returns the live session IDs.
func (h *handlers) listSessions(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"sessions": h.store.IDs(),
		"count":    h.store.Count(),
	})
}

// sessionState returns the latest snapshot for one session.
func (h *handlers) sessionState(w http.ResponseWriter, r *http.Request) {
	session, ok := h.store.Get(chi.URLParam(r, "id"))
	if !ok {
		writeError(w, http.StatusNotFound, "session not found")
		return
	}
	writeJSON(w, http.StatusOK, session.Snapshot())
}

// startPitch releases the next pitch.
func (h *handlers) startPitch(w http.ResponseWriter, r *http.Request) {
	session, ok := h.store.Get(chi.URLParam(r, "id"))
	if !ok {
		writeError(w, http.StatusNotFound, "session not found")
		return
	}
	session.StartNextPitch()
	RecordPitch()
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"phase": session.Phase(),
		"state": session.State(),
	})
}

// triggerSwing swings at the active pitch.
func (h *handlers) triggerSwing(w http.ResponseWriter, r *http.Request) {
	session, ok := h.store.Get(chi.URLParam(r, "id"))
	if !ok {
		writeError(w, http.StatusNotFound, "session not found")
		return
	}
	session.TriggerSwing()
	RecordSwing()
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"phase": session.Phase(),
		"state": session.State(),
	})
}

// deleteSession stops and removes a session.
func (h *handlers) deleteSession(w http.ResponseWriter, r *http.Request) {
	if err := h.store.Remove(chi.URLParam(r, "id")); err != nil {
		writeError(w, http.StatusNotFound, "session not found")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

// sprayChart renders the session's batted-ball landings as a PNG.
func (h *handlers) sprayChart(w http.ResponseWriter, r *http.Request) {
	session, ok := h.store.Get(chi.URLParam(r, "id"))
	if !ok {
		writeError(w, http.StatusNotFound, "session not found")
		return
	}

	w.Header().Set("Content-Type", "image/png")
	if err := h.spray.Render(w, session.Landings()); err != nil {
		log.Printf("⚠️ Spray chart render failed: %v", err)
	}
}

// stats aggregates server-level counters.
func (h *handlers) stats(w http.ResponseWriter, r *http.Request) {
	out := map[string]interface{}{
		"sessions": h.store.Count(),
	}
	if h.events != nil {
		out["events"] = h.events.GetStats()
	}
	writeJSON(w, http.StatusOK, out)
}

// serveWS upgrades to a websocket subscribed to ?session=<id>.
func (h *handlers) serveWS(w http.ResponseWriter, r *http.Request) {
	id := r.URL.Query().Get("session")
	if _, ok := h.store.Get(id); !ok {
		writeError(w, http.StatusNotFound, "session not found")
		return
	}
	h.hub.ServeWS(w, r, id)
}
