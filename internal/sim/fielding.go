package sim

// FieldingOutcome is the result of a ball put in play.
type FieldingOutcome uint8

const (
	OutcomeOut FieldingOutcome = iota
	OutcomeSingle
	OutcomeDouble
	OutcomeTriple
	OutcomeHomeRun
	OutcomeError
)

func (o FieldingOutcome) String() string {
	switch o {
	case OutcomeOut:
		return "out"
	case OutcomeSingle:
		return "single"
	case OutcomeDouble:
		return "double"
	case OutcomeTriple:
		return "triple"
	case OutcomeHomeRun:
		return "homeRun"
	case OutcomeError:
		return "error"
	default:
		return "unknown"
	}
}

// Fielding tuning. Reach radii are jittered per play by the seeded stream.
const (
	groundReachMin = 8.0
	groundReachMax = 11.0
	bobbleChance   = 0.15
	bobbleVelocity = 32.0 // exit velo above which hard grounders get bobbled

	linerReachMin   = 12.0
	linerReachMax   = 17.0
	linerCatchHang  = 0.8  // liners hanging longer than this are catchable
	linerTripleDist = 35.0 // gap liners past this can stretch to three
	linerTripleOdds = 0.30

	flyReachBase   = 15.0
	flyReachPerSec = 4.0 // extra reach per second of hang time
	flyTripleDist  = 50.0
	flyTripleOdds  = 0.40

	popupCatchOdds = 0.95

	// fallbackDistanceFrac stands in for the nearest-fielder distance when no
	// alignment is supplied.
	fallbackDistanceFrac = 0.60
)

// ResolvePlay turns a batted ball into a play outcome. Home runs resolve
// immediately; everything else weighs the nearest fielder's reach against
// the flight, with seeded jitter so identical inputs replay identically.
func ResolvePlay(ball *BattedBallResult, fielders []Vec3, seed uint32) FieldingOutcome {
	if ball.Type == HomeRunBall {
		return OutcomeHomeRun
	}

	rng := NewStream(seed)

	nearest := ball.Distance * fallbackDistanceFrac
	for i, f := range fielders {
		d := f.DistanceTo(ball.Landing)
		if i == 0 || d < nearest {
			nearest = d
		}
	}

	switch ball.Type {
	case GroundBall:
		reach := rng.NextRange(groundReachMin, groundReachMax)
		if nearest <= reach {
			if ball.ExitVelocity > bobbleVelocity && rng.Next() < bobbleChance {
				return OutcomeSingle // too hot to handle cleanly
			}
			return OutcomeOut
		}
		return OutcomeSingle

	case LineDrive:
		if ball.HangTime > linerCatchHang {
			reach := rng.NextRange(linerReachMin, linerReachMax)
			if nearest <= reach {
				return OutcomeOut
			}
			if ball.Distance > linerTripleDist && rng.Next() < linerTripleOdds {
				return OutcomeTriple
			}
			return OutcomeDouble
		}
		// Low liner drops in front of everyone.
		return OutcomeSingle

	case FlyBall:
		reach := flyReachBase + flyReachPerSec*ball.HangTime
		if nearest <= reach {
			return OutcomeOut
		}
		if ball.Distance > flyTripleDist && rng.Next() < flyTripleOdds {
			return OutcomeTriple
		}
		return OutcomeDouble

	default: // popup
		if rng.Next() < popupCatchOdds {
			return OutcomeOut
		}
		return OutcomeSingle
	}
}
