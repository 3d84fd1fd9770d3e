package sim

import (
	"log"
	"sync"
	"time"

	"github.com/google/uuid"
)

// maxFrameDelta clamps long frame gaps (GC pause, suspended host) so one
// late tick can't teleport the ball through the strike plane unsampled.
const maxFrameDelta = 0.1

// Landing records where a ball put in play came down, for the spray chart.
type Landing struct {
	Point   Vec3            `json:"point"`
	Type    BattedBallType  `json:"type"`
	Outcome FieldingOutcome `json:"outcome"`
}

// Session hosts one controller behind a mutex and drives it from a ticker
// loop. The controller itself stays single-threaded; the session is the
// concurrency boundary for API and websocket callers.
type Session struct {
	ID string

	mu         sync.Mutex
	controller *Controller
	listener   Listener
	prevPhase  Phase
	landings   []Landing

	snapshots *SnapshotPool

	tickRate int
	running  bool
	ticker   *time.Ticker
	stopChan chan struct{}
	lastTick time.Time
	tickHook func(time.Duration)
}

// SessionConfig configures a hosted session.
type SessionConfig struct {
	Mode     Mode
	Seed     uint32
	HandSign float64
	TickRate int // frames per second; defaults to 60

	Anchors AnchorProvider
	Events  *EventLog

	// Listener receives the controller's events, already serialized by the
	// session lock. May be nil.
	Listener Listener

	// TickHook observes each frame's wall time, for metrics. May be nil.
	TickHook func(time.Duration)
}

// NewSession creates a session and its controller. The loop does not start
// until Start is called.
func NewSession(cfg SessionConfig) *Session {
	if cfg.TickRate <= 0 {
		cfg.TickRate = 60
	}

	s := &Session{
		ID:        uuid.NewString(),
		listener:  cfg.Listener,
		snapshots: NewSnapshotPool(),
		tickRate:  cfg.TickRate,
		stopChan:  make(chan struct{}),
		tickHook:  cfg.TickHook,
	}

	s.controller = NewController(ControllerConfig{
		Mode:      cfg.Mode,
		Seed:      cfg.Seed,
		HandSign:  cfg.HandSign,
		Anchors:   cfg.Anchors,
		Listener:  s.listener,
		Events:    cfg.Events,
		SessionID: s.ID,
	})
	s.prevPhase = s.controller.Phase()
	return s
}

// Start begins the frame loop.
func (s *Session) Start() {
	s.mu.Lock()
	if s.running {
		s.mu.Unlock()
		return
	}
	s.running = true
	s.lastTick = time.Now()
	s.mu.Unlock()

	s.ticker = time.NewTicker(time.Second / time.Duration(s.tickRate))

	go func() {
		for {
			select {
			case <-s.ticker.C:
				s.tick()
			case <-s.stopChan:
				return
			}
		}
	}()

	log.Printf("⚾ Session %s started (%s, %d TPS)", s.ID, s.controller.State().Mode, s.tickRate)
}

// Stop halts the frame loop and retires any active pitch.
func (s *Session) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.running {
		return
	}
	s.running = false
	if s.ticker != nil {
		s.ticker.Stop()
	}
	close(s.stopChan)
	s.controller.Stop()
	log.Printf("🛑 Session %s stopped", s.ID)
}

// tick advances the controller by the wall-clock delta, clamped.
func (s *Session) tick() {
	s.mu.Lock()

	now := time.Now()
	dt := now.Sub(s.lastTick).Seconds()
	s.lastTick = now
	if dt > maxFrameDelta {
		dt = maxFrameDelta
	}

	s.step(dt)
	s.mu.Unlock()

	if s.tickHook != nil {
		s.tickHook(time.Since(now))
	}
}

// step runs one frame while holding the lock. Split out so tests can drive
// the session deterministically without the ticker.
func (s *Session) step(dt float64) {
	s.controller.Update(dt)

	// Leaving the fielding phase means a ball was just resolved: record its
	// landing for the spray chart.
	phase := s.controller.Phase()
	if s.prevPhase == PhaseFielding && phase != PhaseFielding {
		if ball := s.controller.LastBattedBall(); ball != nil {
			outcome, _ := s.controller.LastOutcome()
			s.landings = append(s.landings, Landing{
				Point:   ball.Landing,
				Type:    ball.Type,
				Outcome: outcome,
			})
		}
	}
	s.prevPhase = phase

	s.publishSnapshot()
}

// publishSnapshot copies the controller view into the lock-free pool.
func (s *Session) publishSnapshot() {
	snap := s.snapshots.AcquireWrite()
	snap.Phase = s.controller.Phase()
	snap.State = s.controller.State()
	snap.PitchIndex = s.controller.pitchIndex

	if pitch := s.controller.ActivePitch(); pitch != nil {
		snap.PitchActive = pitch.Active()
		snap.PitchTNorm = pitch.TNorm()
		snap.BallPosition = pitch.Position()
		if cross := pitch.LastCross(); cross != nil {
			c := *cross
			snap.LastCross = &c
		}
	}
	if ball := s.controller.LastBattedBall(); ball != nil {
		b := *ball
		snap.LastBall = &b
	}
	if outcome, ok := s.controller.LastOutcome(); ok {
		snap.LastOutcome = outcome.String()
	}

	s.snapshots.PublishWrite()
}

// Snapshot returns the latest published snapshot without taking the lock.
func (s *Session) Snapshot() *Snapshot {
	return s.snapshots.AcquireRead()
}

// StartNextPitch forwards the command into the frame-locked controller.
func (s *Session) StartNextPitch() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.controller.StartNextPitch()
	s.publishSnapshot()
}

// TriggerSwing forwards the swing command.
func (s *Session) TriggerSwing() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.controller.TriggerSwing()
	s.publishSnapshot()
}

// State returns the latest state value under the lock.
func (s *Session) State() GameState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.controller.State()
}

// Phase returns the current phase under the lock.
func (s *Session) Phase() Phase {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.controller.Phase()
}

// Landings returns a copy of the recorded spray-chart points.
func (s *Session) Landings() []Landing {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Landing, len(s.landings))
	copy(out, s.landings)
	return out
}
