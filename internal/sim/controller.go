package sim

// Phase is the at-bat control state.
type Phase string

const (
	PhaseLoading  Phase = "loading"
	PhaseReady    Phase = "ready"
	PhasePitching Phase = "pitching"
	PhaseSwinging Phase = "swinging"
	PhaseFielding Phase = "fielding"
	PhaseResult   Phase = "result"
	PhaseGameOver Phase = "gameOver"
)

// resultDelay is how long the result phase is displayed before the next
// pitch can start.
const resultDelay = 1.5

// Listener receives controller events. All callbacks fire synchronously
// inside the Update call that produced them, on the caller's goroutine.
type Listener interface {
	OnPhaseChange(phase Phase)
	OnGameUpdate(state GameState)
	OnPlayResolved(outcome FieldingOutcome, ball *BattedBallResult)
	OnGameOver(state GameState)
}

// nopListener keeps the controller nil-safe when the host doesn't care.
type nopListener struct{}

func (nopListener) OnPhaseChange(Phase)                               {}
func (nopListener) OnGameUpdate(GameState)                            {}
func (nopListener) OnPlayResolved(FieldingOutcome, *BattedBallResult) {}
func (nopListener) OnGameOver(GameState)                              {}

// ControllerConfig wires a controller's collaborators and tuning.
type ControllerConfig struct {
	Mode Mode
	Seed uint32

	// HandSign is +1 for a right-handed batter, -1 for a lefty.
	// Zero defaults to right-handed.
	HandSign float64

	// Zone half extents in meters; zero selects the defaults.
	ZoneHalfWidth  float64
	ZoneHalfHeight float64

	// Anchors may be nil; every lookup then uses the fallback landmarks.
	Anchors  AnchorProvider
	Listener Listener

	// Events may be nil to disable event logging.
	Events    *EventLog
	SessionID string
}

// Controller runs one at-bat session: it owns the authoritative GameState
// value, drives the active pitch every frame, and resolves swings and plays
// through the pure transition functions. Single-threaded by contract — all
// methods must be called from the same goroutine that calls Update.
type Controller struct {
	cfg      ControllerConfig
	phase    Phase
	state    GameState
	listener Listener
	events   *EventLog

	// laneStream draws the lane for each pitch; seeded once per session so
	// the pitch sequence is a pure function of the base seed.
	laneStream *Stream
	pitchIndex int
	pitchSeed  uint32

	pitch        *Pitch
	crossHandled bool
	swingAt      float64
	swung        bool
	battedBall   *BattedBallResult
	lastOutcome  FieldingOutcome
	hasOutcome   bool

	resultTimer float64

	mound      Vec3
	zoneCenter Vec3
	fielders   []Vec3
}

// NewController creates a controller in the loading phase. The first Update
// call promotes it to ready.
func NewController(cfg ControllerConfig) *Controller {
	if cfg.HandSign == 0 {
		cfg.HandSign = 1
	}
	listener := cfg.Listener
	if listener == nil {
		listener = nopListener{}
	}

	c := &Controller{
		cfg:        cfg,
		phase:      PhaseLoading,
		state:      NewGameState(cfg.Mode),
		listener:   listener,
		events:     cfg.Events,
		laneStream: NewStream(cfg.Seed),
		mound:      resolveAnchor(cfg.Anchors, AnchorMound).Position,
		zoneCenter: resolveAnchor(cfg.Anchors, AnchorZoneCenter).Position,
		fielders:   resolveFielders(cfg.Anchors),
	}

	c.emit(EventTypeSessionStart, SessionStartPayload{
		Mode:     string(cfg.Mode),
		BaseSeed: cfg.Seed,
	})
	return c
}

// Phase returns the current phase.
func (c *Controller) Phase() Phase {
	return c.phase
}

// State returns the latest immutable state snapshot.
func (c *Controller) State() GameState {
	return c.state
}

// LastBattedBall returns the most recent ball put in play, or nil.
func (c *Controller) LastBattedBall() *BattedBallResult {
	return c.battedBall
}

// LastOutcome returns the most recent play resolution.
func (c *Controller) LastOutcome() (FieldingOutcome, bool) {
	return c.lastOutcome, c.hasOutcome
}

// ActivePitch returns the in-flight pitch for snapshot publication, or nil
// between pitches.
func (c *Controller) ActivePitch() *Pitch {
	return c.pitch
}

// StartNextPitch spawns the next pitch. Only valid in the ready phase;
// calls in any other phase are ignored.
func (c *Controller) StartNextPitch() {
	if c.phase != PhaseReady {
		return
	}

	c.pitchIndex++
	c.pitchSeed = c.cfg.Seed + uint32(c.pitchIndex)
	lane := PitchLane(c.laneStream.NextIndex(LaneCount))

	c.pitch = SpawnPitch(lane, c.pitchSeed, c.mound, c.zoneCenter,
		c.cfg.HandSign, c.cfg.ZoneHalfWidth, c.cfg.ZoneHalfHeight)
	c.crossHandled = false
	c.swung = false
	c.battedBall = nil
	c.hasOutcome = false

	c.setState(c.state.RecordPitch())
	c.emit(EventTypePitchStart, PitchStartPayload{
		Lane:     lane.String(),
		Seed:     c.pitchSeed,
		PitchNum: c.pitchIndex,
	})
	c.setPhase(PhasePitching)
}

// TriggerSwing records the swing trigger timestamp. Only valid while a
// pitch is in flight.
func (c *Controller) TriggerSwing() {
	if c.phase != PhasePitching || c.pitch == nil {
		return
	}
	c.swingAt = c.pitch.Elapsed()
	c.swung = true
	c.setState(c.state.RecordSwing())
	c.setPhase(PhaseSwinging)
}

// Stop retires the active pitch and is safe to call from any phase. Used
// when restarting or ending a session.
func (c *Controller) Stop() {
	if c.pitch != nil {
		c.pitch.Stop()
	}
}

// Update advances the session by dt seconds. Processing order within a
// frame is fixed: pitch update (crossing detection first), then swing
// evaluation, then phase resolution, so a swing and a crossing in the same
// frame resolve deterministically.
func (c *Controller) Update(dt float64) {
	if dt <= 0 {
		return
	}

	switch c.phase {
	case PhaseLoading:
		c.setPhase(PhaseReady)

	case PhasePitching:
		c.updatePitching(dt)

	case PhaseSwinging:
		c.updateSwinging(dt)

	case PhaseFielding:
		c.resolveFielding()

	case PhaseResult:
		c.resultTimer += dt
		if c.resultTimer >= resultDelay {
			c.setPhase(PhaseReady)
		}
	}
}

// updatePitching advances a pitch nobody has swung at.
func (c *Controller) updatePitching(dt float64) {
	c.pitch.Update(dt)

	if cross := c.pitch.LastCross(); cross != nil && !c.crossHandled {
		c.crossHandled = true
		c.emit(EventTypeZoneCross, ZoneCrossPayload{
			TNorm:   cross.TNorm,
			Elapsed: cross.Elapsed,
			InZone:  cross.InZone,
			Point:   cross.Point,
		})

		if c.state.Mode == ModeHRDerby {
			// A take in derby spends an out, no count bookkeeping.
			c.setState(c.state.RecordTakeOut())
			c.finishPitch()
			return
		}

		if cross.InZone {
			c.setState(c.state.RecordStrike())
		} else {
			c.setState(c.state.RecordBall())
		}
		// A called third strike or ball four ends the at-bat right away.
		if c.state.LastResult == "strikeout" || c.state.LastResult == "walk" {
			c.finishPitch()
			return
		}
	}

	if c.pitch.Done() {
		c.finishPitch()
	}
}

// updateSwinging keeps the pitch flying until the crossing is finalized,
// then evaluates timing and contact against it.
func (c *Controller) updateSwinging(dt float64) {
	c.pitch.Update(dt)

	cross := c.pitch.LastCross()
	if cross == nil && !c.pitch.Done() {
		return // crossing not finalized yet
	}

	timing := EvaluateTiming(c.swingAt, cross)
	quality := EvaluateContact(timing, cross, c.pitchSeed+1)

	c.emit(EventTypeSwing, SwingPayload{
		TriggeredAt: c.swingAt,
		Timing:      timing.String(),
	})

	var ball *BattedBallResult
	if quality != ContactWhiff && quality != ContactFoul {
		ball = GenerateBattedBall(quality, timing, cross, c.pitchSeed+2)
	}
	c.emit(EventTypeContact, ContactPayload{
		Quality: quality.String(),
		Ball:    ball,
	})

	if ball != nil {
		c.battedBall = ball
		c.setPhase(PhaseFielding)
		return
	}

	// Whiff or foul: no play to field.
	if c.state.Mode == ModeHRDerby {
		c.setState(c.state.RecordDerbyMiss(quality))
	} else if quality == ContactFoul {
		c.setState(c.state.RecordFoul())
	} else {
		c.setState(c.state.RecordWhiff())
	}
	c.finishPitch()
}

// resolveFielding turns the batted ball into a play outcome and folds it
// into the state.
func (c *Controller) resolveFielding() {
	outcome := ResolvePlay(c.battedBall, c.fielders, c.pitchSeed+3)
	c.lastOutcome = outcome
	c.hasOutcome = true

	c.setState(c.state.ApplyFielding(outcome))
	c.emit(EventTypePlayResolved, PlayResolvedPayload{
		Outcome:  outcome.String(),
		Distance: c.battedBall.Distance,
		BallType: c.battedBall.Type.String(),
	})
	c.listener.OnPlayResolved(outcome, c.battedBall)
	c.finishPitch()
}

// finishPitch retires the flight and shows the result, or ends the game.
func (c *Controller) finishPitch() {
	if c.pitch != nil {
		c.pitch.Stop()
	}

	if c.state.GameOver {
		c.setPhase(PhaseGameOver)
		c.emit(EventTypeGameOver, StateChangePayload{
			Phase: string(PhaseGameOver),
			State: c.state,
		})
		c.listener.OnGameOver(c.state)
		return
	}

	c.resultTimer = 0
	c.setPhase(PhaseResult)
}

// setPhase transitions the phase machine and notifies the host.
func (c *Controller) setPhase(p Phase) {
	if c.phase == p {
		return
	}
	c.phase = p
	c.listener.OnPhaseChange(p)
}

// setState installs a new state value and notifies the host.
func (c *Controller) setState(s GameState) {
	c.state = s
	c.listener.OnGameUpdate(s)
	c.emit(EventTypeStateChange, StateChangePayload{
		Phase: string(c.phase),
		State: s,
	})
}

// emit writes to the event log when one is attached.
func (c *Controller) emit(t EventType, payload interface{}) {
	if c.events == nil {
		return
	}
	c.events.EmitSimple(t, c.pitchIndex, c.cfg.SessionID, payload)
}
