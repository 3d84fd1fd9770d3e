package sim

import "math"

// SwingTiming classifies when the bat came through relative to the ball
// crossing the strike plane.
type SwingTiming uint8

const (
	TimingMiss SwingTiming = iota // swung with no crossing to measure against
	TimingEarly
	TimingGood
	TimingLate
)

func (t SwingTiming) String() string {
	switch t {
	case TimingEarly:
		return "early"
	case TimingGood:
		return "good"
	case TimingLate:
		return "late"
	default:
		return "miss"
	}
}

// ContactQuality classifies how much of the ball the bat found.
type ContactQuality uint8

const (
	ContactWhiff ContactQuality = iota
	ContactFoul
	ContactWeak
	ContactGood
	ContactPerfect
)

func (q ContactQuality) String() string {
	switch q {
	case ContactFoul:
		return "foul"
	case ContactWeak:
		return "weak"
	case ContactGood:
		return "good"
	case ContactPerfect:
		return "perfect"
	default:
		return "whiff"
	}
}

// Timing windows in seconds around the crossing moment.
const (
	timingGoodWindow = 0.04
	timingEdgeWindow = 0.08
)

// EvaluateTiming classifies a swing trigger timestamp against the crossing
// event. A swing with no crossing is a miss. The 0.04-0.08s gap between the
// good window and the edge threshold is classified by the sign of the delta,
// matching the original tuning (a delta there always reads as late).
func EvaluateTiming(swingAt float64, cross *StrikeCrossEvent) SwingTiming {
	if cross == nil {
		return TimingMiss
	}
	delta := swingAt - cross.Elapsed
	switch {
	case delta >= -timingGoodWindow && delta <= timingGoodWindow:
		return TimingGood
	case delta < -timingEdgeWindow:
		return TimingEarly
	case delta > timingEdgeWindow:
		return TimingLate
	case delta < 0:
		return TimingEarly
	default:
		return TimingLate
	}
}

// EvaluateContact rolls contact quality from the fixed probability tables.
// One draw from the seeded stream decides the bucket; a miss never rolls.
func EvaluateContact(timing SwingTiming, cross *StrikeCrossEvent, seed uint32) ContactQuality {
	if timing == TimingMiss || cross == nil {
		return ContactWhiff
	}

	roll := NewStream(seed).Next()

	if !cross.InZone {
		// Chasing out of the zone: 40% whiff, 30% foul, 30% weak.
		switch {
		case roll < 0.40:
			return ContactWhiff
		case roll < 0.70:
			return ContactFoul
		default:
			return ContactWeak
		}
	}

	if timing == TimingGood {
		// Squared up in the zone: 25% perfect, 45% good, 15% weak, 15% foul.
		switch {
		case roll < 0.25:
			return ContactPerfect
		case roll < 0.70:
			return ContactGood
		case roll < 0.85:
			return ContactWeak
		default:
			return ContactFoul
		}
	}

	// Early or late on a strike: 15% good, 25% weak, 35% foul, 25% whiff.
	switch {
	case roll < 0.15:
		return ContactGood
	case roll < 0.40:
		return ContactWeak
	case roll < 0.75:
		return ContactFoul
	default:
		return ContactWhiff
	}
}

// BattedBallType classifies the flight of a ball put in play.
type BattedBallType uint8

const (
	GroundBall BattedBallType = iota
	LineDrive
	FlyBall
	Popup
	HomeRunBall
)

func (t BattedBallType) String() string {
	switch t {
	case GroundBall:
		return "groundBall"
	case LineDrive:
		return "lineDrive"
	case FlyBall:
		return "flyBall"
	case Popup:
		return "popup"
	case HomeRunBall:
		return "homeRun"
	default:
		return "unknown"
	}
}

// BattedBallResult is the analytic flight of a ball put in play.
type BattedBallResult struct {
	Type         BattedBallType `json:"type"`
	LaunchAngle  float64        `json:"launchAngle"`  // degrees
	ExitVelocity float64        `json:"exitVelocity"` // m/s
	Direction    float64        `json:"direction"`    // degrees from center, negative = left
	Landing      Vec3           `json:"landing"`
	HangTime     float64        `json:"hangTime"` // seconds
	Distance     float64        `json:"distance"` // meters
}

// Flight constants.
const (
	gravity = 9.81

	// Fence distance tapers from center field down the lines.
	fenceCenter = 60.0
	fenceLine   = 50.0
	fairLimit   = 45.0 // degrees either side of center

	// minFlightTime keeps grounders traveling a sensible distance.
	minFlightTime = 0.5

	// homeRunLoft is the vertical velocity a ball needs to carry a fence.
	homeRunLoft = 8.0
)

// FenceDistanceAt interpolates the outfield fence distance for a direction
// in degrees from center. Exported for the spray-chart renderer so the drawn
// fence matches the home-run check.
func FenceDistanceAt(direction float64) float64 {
	frac := math.Abs(direction) / fairLimit
	if frac > 1 {
		frac = 1
	}
	return fenceCenter - (fenceCenter-fenceLine)*frac
}

// GenerateBattedBall synthesizes the flight for contact that put the ball in
// play. Whiffs and fouls return nil: there is nothing to field. All draws
// come from the seeded stream, so the same inputs always make the same ball.
func GenerateBattedBall(quality ContactQuality, timing SwingTiming, cross *StrikeCrossEvent, seed uint32) *BattedBallResult {
	if quality == ContactWhiff || quality == ContactFoul || cross == nil {
		return nil
	}

	rng := NewStream(seed)

	var angle, velo float64
	switch quality {
	case ContactPerfect:
		angle = rng.NextRange(22, 30) + rng.NextSigned(3)
		velo = rng.NextRange(38, 42)
	case ContactGood:
		angle = rng.NextRange(15, 30) + rng.NextSigned(6)
		velo = rng.NextRange(28, 38)
	default: // weak
		angle = rng.NextRange(-5, 15) + rng.NextSigned(8)
		velo = rng.NextRange(14, 22)
	}

	// Pull side for early swings, opposite field for late, center-biased
	// otherwise. Negative = left field.
	var direction float64
	switch timing {
	case TimingEarly:
		direction = -20 + rng.NextSigned(15)
	case TimingLate:
		direction = 20 + rng.NextSigned(15)
	default:
		direction = rng.NextSigned(15)
	}
	if direction < -fairLimit {
		direction = -fairLimit
	} else if direction > fairLimit {
		direction = fairLimit
	}

	angleRad := angle * math.Pi / 180
	vHoriz := velo * math.Cos(angleRad)
	vVert := velo * math.Sin(angleRad)

	// Airborne hang from the ballistic arc; grounders get a rolling-ball
	// approximation instead of a degenerate near-zero flight.
	var hang float64
	if vVert > 0.5 {
		hang = 2 * vVert / gravity
	} else {
		hang = minFlightTime
	}

	distance := vHoriz * math.Max(hang, minFlightTime)

	dirRad := direction * math.Pi / 180
	landing := Vec3{
		X: math.Sin(dirRad) * distance,
		Y: 0,
		Z: math.Cos(dirRad) * distance,
	}

	return &BattedBallResult{
		Type:         classifyBattedBall(angle, distance, vVert, direction),
		LaunchAngle:  angle,
		ExitVelocity: velo,
		Direction:    direction,
		Landing:      landing,
		HangTime:     hang,
		Distance:     distance,
	}
}

// classifyBattedBall buckets a flight by launch angle, promoting deep lofted
// flies to home runs when they carry the fence with enough vertical velocity.
func classifyBattedBall(angle, distance, vVert, direction float64) BattedBallType {
	switch {
	case angle < 5:
		return GroundBall
	case angle < 18:
		return LineDrive
	case angle < 40:
		if distance > FenceDistanceAt(direction) && vVert > homeRunLoft {
			return HomeRunBall
		}
		return FlyBall
	default:
		return Popup
	}
}
