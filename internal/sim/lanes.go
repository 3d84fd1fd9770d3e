package sim

// PitchLane is one of nine named targets crossing the strike zone.
// The enum is closed: every value maps to a profile, and an out-of-range
// value is a programmer error caught at the catalog boundary.
type PitchLane uint8

const (
	LaneInsideHigh PitchLane = iota
	LaneMiddleHigh
	LaneOutsideHigh
	LaneInsideMid
	LaneMiddleMid
	LaneOutsideMid
	LaneInsideLow
	LaneMiddleLow
	LaneOutsideLow

	LaneCount = 9
)

// String returns the lane's wire name.
func (l PitchLane) String() string {
	switch l {
	case LaneInsideHigh:
		return "inside-high"
	case LaneMiddleHigh:
		return "middle-high"
	case LaneOutsideHigh:
		return "outside-high"
	case LaneInsideMid:
		return "inside-mid"
	case LaneMiddleMid:
		return "middle-mid"
	case LaneOutsideMid:
		return "outside-mid"
	case LaneInsideLow:
		return "inside-low"
	case LaneMiddleLow:
		return "middle-low"
	case LaneOutsideLow:
		return "outside-low"
	default:
		return "unknown"
	}
}

// PitchProfile shapes a lane's flight: where it crosses the plate relative to
// the zone center, how much vertical arc and lateral break it carries, and
// how long the flight takes. Offsets and magnitudes are meters, duration is
// seconds. Horizontal terms are written for a right-handed batter and get
// mirrored by handSign at spawn.
type PitchProfile struct {
	PlateOffsetX float64
	PlateOffsetY float64
	ArcHeight    float64
	BreakMag     float64
	Duration     float64
}

// laneProfiles is the nominal profile per lane. Inside = negative X for a
// right-handed batter (toward third base). High lanes ride flatter and
// quicker; low lanes carry more arc and break.
var laneProfiles = [LaneCount]PitchProfile{
	LaneInsideHigh:  {PlateOffsetX: -0.18, PlateOffsetY: 0.20, ArcHeight: 0.25, BreakMag: 0.08, Duration: 1.10},
	LaneMiddleHigh:  {PlateOffsetX: 0.00, PlateOffsetY: 0.22, ArcHeight: 0.22, BreakMag: 0.05, Duration: 1.05},
	LaneOutsideHigh: {PlateOffsetX: 0.18, PlateOffsetY: 0.20, ArcHeight: 0.25, BreakMag: 0.10, Duration: 1.12},
	LaneInsideMid:   {PlateOffsetX: -0.20, PlateOffsetY: 0.00, ArcHeight: 0.35, BreakMag: 0.10, Duration: 1.18},
	LaneMiddleMid:   {PlateOffsetX: 0.00, PlateOffsetY: 0.00, ArcHeight: 0.30, BreakMag: 0.04, Duration: 1.15},
	LaneOutsideMid:  {PlateOffsetX: 0.20, PlateOffsetY: 0.00, ArcHeight: 0.35, BreakMag: 0.12, Duration: 1.20},
	LaneInsideLow:   {PlateOffsetX: -0.18, PlateOffsetY: -0.22, ArcHeight: 0.45, BreakMag: 0.14, Duration: 1.28},
	LaneMiddleLow:   {PlateOffsetX: 0.00, PlateOffsetY: -0.24, ArcHeight: 0.42, BreakMag: 0.10, Duration: 1.25},
	LaneOutsideLow:  {PlateOffsetX: 0.18, PlateOffsetY: -0.22, ArcHeight: 0.48, BreakMag: 0.16, Duration: 1.30},
}

// Lane jitter bounds. Each pitch perturbs its nominal profile so two pitches
// on the same lane never trace identical paths while staying in shape.
const (
	jitterOffset   = 0.04 // meters, plate offsets
	jitterArcFrac  = 0.15 // fraction of arc height
	jitterDurFrac  = 0.08 // fraction of duration
	jitterBreakPct = 0.20 // fraction of break magnitude
)

// profileFor returns the lane's profile with seeded jitter applied and
// horizontal terms mirrored by handSign (+1 right-handed batter, -1 left).
func profileFor(lane PitchLane, handSign float64, rng *Stream) PitchProfile {
	p := laneProfiles[lane]

	p.PlateOffsetX += rng.NextSigned(jitterOffset)
	p.PlateOffsetY += rng.NextSigned(jitterOffset)
	p.ArcHeight *= 1 + rng.NextSigned(jitterArcFrac)
	p.Duration *= 1 + rng.NextSigned(jitterDurFrac)
	p.BreakMag *= 1 + rng.NextSigned(jitterBreakPct)

	if handSign < 0 {
		p.PlateOffsetX = -p.PlateOffsetX
		p.BreakMag = -p.BreakMag
	}
	return p
}
