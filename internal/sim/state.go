package sim

// Mode selects the ruleset for a session.
type Mode string

const (
	ModePractice  Mode = "practice"
	ModeQuickPlay Mode = "quickPlay"
	ModeHRDerby   Mode = "hrDerby"
)

// ParseMode validates an opaque mode string from the host.
func ParseMode(s string) (Mode, bool) {
	switch Mode(s) {
	case ModePractice, ModeQuickPlay, ModeHRDerby:
		return Mode(s), true
	default:
		return "", false
	}
}

// ModeRules captures per-mode bookkeeping. Innings of 0 means endless.
type ModeRules struct {
	Innings       int
	OutsPerInning int
	DerbyOutCap   int
}

// RulesFor returns the bookkeeping for a mode.
func RulesFor(mode Mode) ModeRules {
	switch mode {
	case ModeQuickPlay:
		return ModeRules{Innings: 3, OutsPerInning: 3}
	case ModeHRDerby:
		return ModeRules{DerbyOutCap: 10}
	default: // practice never ends on its own
		return ModeRules{Innings: 0, OutsPerInning: 3}
	}
}

// Bases tracks runner occupancy.
type Bases struct {
	First  bool `json:"first"`
	Second bool `json:"second"`
	Third  bool `json:"third"`
}

// Score tracks runs per side. The top of an inning bats the away side.
type Score struct {
	Home int `json:"home"`
	Away int `json:"away"`
}

// Stats are the session counters surfaced to the host HUD.
type Stats struct {
	Pitches       int `json:"pitches"`
	Swings        int `json:"swings"`
	Singles       int `json:"singles"`
	Doubles       int `json:"doubles"`
	Triples       int `json:"triples"`
	HomeRuns      int `json:"homeRuns"`
	Whiffs        int `json:"whiffs"`
	Fouls         int `json:"fouls"`
	Outs          int `json:"outs"`
	Runs          int `json:"runs"`
	HitStreak     int `json:"hitStreak"`
	LongestStreak int `json:"longestStreak"`
	DerbyOuts     int `json:"derbyOuts"`
}

// GameState is the complete rules state of a session. It is a value:
// transitions return an updated copy and never mutate in place, so the
// controller can hold the single authoritative latest value.
type GameState struct {
	Mode        Mode   `json:"mode"`
	Inning      int    `json:"inning"`
	TopOfInning bool   `json:"topOfInning"`
	Outs        int    `json:"outs"`
	Runs        Score  `json:"runs"`
	Bases       Bases  `json:"bases"`
	Strikes     int    `json:"strikes"`
	Balls       int    `json:"balls"`
	PitchCount  int    `json:"pitchCount"`
	LastResult  string `json:"lastResult"`
	GameOver    bool   `json:"gameOver"`
	Stats       Stats  `json:"stats"`
}

// NewGameState creates the starting state for a mode.
func NewGameState(mode Mode) GameState {
	return GameState{
		Mode:        mode,
		Inning:      1,
		TopOfInning: true,
	}
}

// RecordPitch counts a delivered pitch.
func (s GameState) RecordPitch() GameState {
	s.PitchCount++
	s.Stats.Pitches++
	return s
}

// RecordSwing counts a swing trigger.
func (s GameState) RecordSwing() GameState {
	s.Stats.Swings++
	return s
}

// RecordStrike adds a strike; the third strike is a strikeout, which records
// an out and resets the count.
func (s GameState) RecordStrike() GameState {
	s.Strikes++
	if s.Strikes >= 3 {
		s.LastResult = "strikeout"
		return s.recordOut()
	}
	s.LastResult = "strike"
	return s
}

// RecordWhiff is a swinging strike: same count effect, tracked separately.
func (s GameState) RecordWhiff() GameState {
	s.Stats.Whiffs++
	return s.RecordStrike()
}

// RecordFoul counts as a strike only below two strikes; a foul can never
// strike a batter out.
func (s GameState) RecordFoul() GameState {
	s.Stats.Fouls++
	if s.Strikes < 2 {
		s.Strikes++
	}
	s.LastResult = "foul"
	return s
}

// RecordBall adds a ball; the fourth is a walk, which forces runners one
// base and resets the count.
func (s GameState) RecordBall() GameState {
	s.Balls++
	if s.Balls >= 4 {
		return s.recordWalk()
	}
	s.LastResult = "ball"
	return s
}

// recordWalk advances only forced runners: the batter takes first and pushes
// an occupied chain ahead one base.
func (s GameState) recordWalk() GameState {
	if s.Bases.First {
		if s.Bases.Second {
			if s.Bases.Third {
				s = s.scoreRuns(1)
			}
			s.Bases.Third = true
		}
		s.Bases.Second = true
	}
	s.Bases.First = true

	s.Strikes = 0
	s.Balls = 0
	s.LastResult = "walk"
	return s
}

// RecordTakeOut handles a derby take: watching a pitch go by spends an out.
func (s GameState) RecordTakeOut() GameState {
	s.LastResult = "take"
	return s.recordDerbyOut()
}

// RecordDerbyMiss spends a derby out for a swing that put nothing in play.
func (s GameState) RecordDerbyMiss(quality ContactQuality) GameState {
	if quality == ContactFoul {
		s.Stats.Fouls++
	} else {
		s.Stats.Whiffs++
	}
	s.LastResult = quality.String()
	return s.recordDerbyOut()
}

// ApplyFielding folds a resolved play into the state. In derby mode anything
// short of a home run spends a derby out; normal modes run the full
// count/bases/outs bookkeeping.
func (s GameState) ApplyFielding(outcome FieldingOutcome) GameState {
	if s.Mode == ModeHRDerby {
		if outcome == OutcomeHomeRun {
			return s.recordHomeRun()
		}
		s.LastResult = outcome.String()
		return s.recordDerbyOut()
	}

	switch outcome {
	case OutcomeOut:
		s.LastResult = "out"
		return s.recordOut()
	case OutcomeSingle:
		return s.recordHit(1, outcome)
	case OutcomeDouble:
		return s.recordHit(2, outcome)
	case OutcomeTriple:
		return s.recordHit(3, outcome)
	case OutcomeHomeRun:
		return s.recordHomeRun()
	default: // error: batter reaches, runners move one, no hit credit
		s = s.advanceRunners(1)
		s.Strikes = 0
		s.Balls = 0
		s.LastResult = "error"
		return s
	}
}

// recordHit credits a hit of n bases and advances the runners.
func (s GameState) recordHit(n int, outcome FieldingOutcome) GameState {
	s = s.advanceRunners(n)
	s.Strikes = 0
	s.Balls = 0
	s.LastResult = outcome.String()

	switch outcome {
	case OutcomeSingle:
		s.Stats.Singles++
	case OutcomeDouble:
		s.Stats.Doubles++
	case OutcomeTriple:
		s.Stats.Triples++
	}
	s.Stats.HitStreak++
	if s.Stats.HitStreak > s.Stats.LongestStreak {
		s.Stats.LongestStreak = s.Stats.HitStreak
	}
	return s
}

// recordHomeRun scores the batter and everyone aboard.
func (s GameState) recordHomeRun() GameState {
	if s.Mode == ModeHRDerby {
		s = s.scoreRuns(1)
		s.Stats.HomeRuns++
		s.Stats.HitStreak++
		if s.Stats.HitStreak > s.Stats.LongestStreak {
			s.Stats.LongestStreak = s.Stats.HitStreak
		}
		s.LastResult = "homeRun"
		return s
	}

	s = s.advanceRunners(4)
	s.Strikes = 0
	s.Balls = 0
	s.Stats.HomeRuns++
	s.Stats.HitStreak++
	if s.Stats.HitStreak > s.Stats.LongestStreak {
		s.Stats.LongestStreak = s.Stats.HitStreak
	}
	s.LastResult = "homeRun"
	return s
}

// advanceRunners moves every runner and the batter ahead by n bases,
// scoring anyone pushed past third. The batter's own run only scores on a
// four-base advance, never double-counted.
func (s GameState) advanceRunners(n int) GameState {
	runs := 0
	occupied := [4]bool{false, s.Bases.First, s.Bases.Second, s.Bases.Third}
	var next [4]bool

	for base := 3; base >= 1; base-- {
		if !occupied[base] {
			continue
		}
		target := base + n
		if target >= 4 {
			runs++
		} else {
			next[target] = true
		}
	}
	if n >= 4 {
		runs++ // batter comes all the way around
	} else {
		next[n] = true
	}

	s.Bases = Bases{First: next[1], Second: next[2], Third: next[3]}
	return s.scoreRuns(runs)
}

// scoreRuns credits the batting half.
func (s GameState) scoreRuns(n int) GameState {
	if n <= 0 {
		return s
	}
	if s.Mode != ModeHRDerby && s.TopOfInning {
		s.Runs.Away += n
	} else {
		s.Runs.Home += n
	}
	s.Stats.Runs += n
	return s
}

// recordOut books an out, resets the count, and rolls the half-inning when
// the third out lands. Outs never holds the value 3.
func (s GameState) recordOut() GameState {
	s.Stats.Outs++
	s.Stats.HitStreak = 0
	s.Strikes = 0
	s.Balls = 0

	if s.Mode == ModeHRDerby {
		return s.recordDerbyOut()
	}

	rules := RulesFor(s.Mode)
	s.Outs++
	if s.Outs >= rules.OutsPerInning {
		s = s.endHalfInning(rules)
	}
	return s
}

// recordDerbyOut spends one of the fixed derby out budget. Inning and outs
// bookkeeping is bypassed entirely in this mode.
func (s GameState) recordDerbyOut() GameState {
	rules := RulesFor(ModeHRDerby)
	s.Stats.DerbyOuts++
	s.Stats.HitStreak = 0
	s.Strikes = 0
	s.Balls = 0
	if s.Stats.DerbyOuts >= rules.DerbyOutCap {
		s.GameOver = true
	}
	return s
}

// endHalfInning clears the bases and flips the half. Completing the bottom
// past the mode's inning limit ends the game.
func (s GameState) endHalfInning(rules ModeRules) GameState {
	s.Outs = 0
	s.Bases = Bases{}

	if s.TopOfInning {
		s.TopOfInning = false
		return s
	}

	s.TopOfInning = true
	s.Inning++
	if rules.Innings > 0 && s.Inning > rules.Innings {
		s.GameOver = true
	}
	return s
}
