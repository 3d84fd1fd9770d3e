package api

import (
	"errors"
	"log"
	"sync"

	"sandlot/internal/sim"
)

// Manager errors returned to handlers.
var (
	ErrSessionNotFound = errors.New("session not found")
	ErrSessionLimit    = errors.New("session limit reached")
	ErrInvalidMode     = errors.New("invalid mode")
)

// SessionManager owns the live sessions behind one mutex. Sessions run their
// own frame loops; the manager only handles create/lookup/remove.
type SessionManager struct {
	mu       sync.RWMutex
	sessions map[string]*sim.Session

	maxSessions int
	tickRate    int
	handSign    float64
	defaultMode string
	anchors     sim.AnchorProvider
	events      *sim.EventLog
	hub         *WebSocketHub
}

// ManagerConfig wires the manager's collaborators and limits.
type ManagerConfig struct {
	MaxSessions int
	TickRate    int
	HandSign    float64
	DefaultMode string // used when a create request omits the mode
	Anchors     sim.AnchorProvider
	Events      *sim.EventLog
	Hub         *WebSocketHub
}

// NewSessionManager creates an empty manager.
func NewSessionManager(cfg ManagerConfig) *SessionManager {
	if cfg.MaxSessions <= 0 {
		cfg.MaxSessions = 64
	}
	if cfg.DefaultMode == "" {
		cfg.DefaultMode = string(sim.ModeQuickPlay)
	}
	return &SessionManager{
		sessions:    make(map[string]*sim.Session),
		maxSessions: cfg.MaxSessions,
		tickRate:    cfg.TickRate,
		handSign:    cfg.HandSign,
		defaultMode: cfg.DefaultMode,
		anchors:     cfg.Anchors,
		events:      cfg.Events,
		hub:         cfg.Hub,
	}
}

// Create spins up a session in the given mode and starts its frame loop.
func (m *SessionManager) Create(mode string, seed uint32) (*sim.Session, error) {
	if mode == "" {
		mode = m.defaultMode
	}
	parsed, ok := sim.ParseMode(mode)
	if !ok {
		return nil, ErrInvalidMode
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if len(m.sessions) >= m.maxSessions {
		RecordConnectionRejected("capacity")
		return nil, ErrSessionLimit
	}

	// The listener needs the session ID, which is minted inside NewSession,
	// so it is back-filled before the loop starts.
	listener := &broadcastListener{hub: m.hub}
	session := sim.NewSession(sim.SessionConfig{
		Mode:     parsed,
		Seed:     seed,
		HandSign: m.handSign,
		TickRate: m.tickRate,
		Anchors:  m.anchors,
		Events:   m.events,
		Listener: listener,
		TickHook: RecordTickDuration,
	})
	listener.sessionID = session.ID

	m.sessions[session.ID] = session
	session.Start()
	RecordSessionCreated()

	log.Printf("🎮 Created session %s (mode=%s seed=%d, %d live)", session.ID, parsed, seed, len(m.sessions))
	return session, nil
}

// Get looks up a session by ID.
func (m *SessionManager) Get(id string) (*sim.Session, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	s, ok := m.sessions[id]
	return s, ok
}

// Remove stops and drops a session.
func (m *SessionManager) Remove(id string) error {
	m.mu.Lock()
	session, ok := m.sessions[id]
	if ok {
		delete(m.sessions, id)
	}
	m.mu.Unlock()

	if !ok {
		return ErrSessionNotFound
	}
	session.Stop()
	RecordSessionClosed()
	return nil
}

// Count returns the number of live sessions.
func (m *SessionManager) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}

// IDs returns the live session IDs.
func (m *SessionManager) IDs() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	ids := make([]string, 0, len(m.sessions))
	for id := range m.sessions {
		ids = append(ids, id)
	}
	return ids
}

// StopAll stops every session; used at shutdown.
func (m *SessionManager) StopAll() {
	m.mu.Lock()
	sessions := make([]*sim.Session, 0, len(m.sessions))
	for _, s := range m.sessions {
		sessions = append(sessions, s)
	}
	m.sessions = make(map[string]*sim.Session)
	m.mu.Unlock()

	for _, s := range sessions {
		s.Stop()
		RecordSessionClosed()
	}
}

// broadcastListener forwards controller events onto the websocket hub.
// Callbacks run inside the session's frame lock, so every hub send below
// must stay non-blocking.
type broadcastListener struct {
	hub       *WebSocketHub
	sessionID string
}

func (l *broadcastListener) OnPhaseChange(phase sim.Phase) {
	if l.hub == nil {
		return
	}
	l.hub.Broadcast(l.sessionID, "phase", map[string]string{"phase": string(phase)})
}

func (l *broadcastListener) OnGameUpdate(state sim.GameState) {
	if l.hub == nil {
		return
	}
	l.hub.Broadcast(l.sessionID, "state", state)
}

func (l *broadcastListener) OnPlayResolved(outcome sim.FieldingOutcome, ball *sim.BattedBallResult) {
	RecordPlayOutcome(outcome.String())
	if l.hub == nil {
		return
	}
	l.hub.Broadcast(l.sessionID, "play", map[string]interface{}{
		"outcome": outcome.String(),
		"ball":    ball,
	})
}

func (l *broadcastListener) OnGameOver(state sim.GameState) {
	if l.hub == nil {
		return
	}
	l.hub.Broadcast(l.sessionID, "gameOver", state)
}
