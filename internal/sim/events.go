package sim

import (
	"encoding/json"
	"time"
)

// EventType enum for event classification
type EventType uint8

const (
	EventTypeUnknown EventType = iota
	EventTypeSessionStart
	EventTypePitchStart
	EventTypeZoneCross
	EventTypeSwing
	EventTypeContact
	EventTypePlayResolved
	EventTypeStateChange
	EventTypeGameOver
)

// EventVersion for backwards compatibility in replay
const EventVersion uint8 = 1

// Event is the core event structure for the event log
type Event struct {
	Version   uint8     `json:"version"`   // Schema version
	Type      EventType `json:"type"`      // Event type
	Timestamp int64     `json:"timestamp"` // Unix nano
	Sequence  uint64    `json:"sequence"`  // Monotonic sequence
	PitchNum  int       `json:"pitchNum"`  // Pitch this occurred in (0 = pre-game)
	SessionID string    `json:"sessionId"` // Source session (for rate limiting)
	Payload   []byte    `json:"payload"`   // JSON-encoded payload
}

// String returns human-readable event type
func (t EventType) String() string {
	switch t {
	case EventTypeSessionStart:
		return "session_start"
	case EventTypePitchStart:
		return "pitch_start"
	case EventTypeZoneCross:
		return "zone_cross"
	case EventTypeSwing:
		return "swing"
	case EventTypeContact:
		return "contact"
	case EventTypePlayResolved:
		return "play_resolved"
	case EventTypeStateChange:
		return "state_change"
	case EventTypeGameOver:
		return "game_over"
	default:
		return "unknown"
	}
}

// Typed payloads for different event types

// SessionStartPayload records how a session was seeded for replay.
type SessionStartPayload struct {
	Mode     string `json:"mode"`
	BaseSeed uint32 `json:"baseSeed"`
}

// PitchStartPayload records the lane draw and per-pitch seed.
type PitchStartPayload struct {
	Lane     string `json:"lane"`
	Seed     uint32 `json:"seed"`
	PitchNum int    `json:"pitchNum"`
}

// ZoneCrossPayload records the single strike-plane crossing of a pitch.
type ZoneCrossPayload struct {
	TNorm   float64 `json:"tNorm"`
	Elapsed float64 `json:"elapsed"`
	InZone  bool    `json:"inZone"`
	Point   Vec3    `json:"point"`
}

// SwingPayload records a swing trigger and its timing classification.
type SwingPayload struct {
	TriggeredAt float64 `json:"triggeredAt"`
	Timing      string  `json:"timing"`
}

// ContactPayload records the contact roll and any resulting batted ball.
type ContactPayload struct {
	Quality string            `json:"quality"`
	Ball    *BattedBallResult `json:"ball,omitempty"`
}

// PlayResolvedPayload records the fielding resolution.
type PlayResolvedPayload struct {
	Outcome  string  `json:"outcome"`
	Distance float64 `json:"distance"`
	BallType string  `json:"ballType"`
}

// StateChangePayload carries the full state after a transition.
type StateChangePayload struct {
	Phase string    `json:"phase"`
	State GameState `json:"state"`
}

// EncodePayload marshals a payload to JSON bytes
func EncodePayload(payload interface{}) []byte {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil
	}
	return data
}

// NewEvent creates a new event with the current timestamp
func NewEvent(eventType EventType, pitchNum int, sessionID string, payload interface{}) Event {
	return Event{
		Version:   EventVersion,
		Type:      eventType,
		Timestamp: time.Now().UnixNano(),
		PitchNum:  pitchNum,
		SessionID: sessionID,
		Payload:   EncodePayload(payload),
	}
}
