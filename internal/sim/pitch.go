package sim

import "math"

// Default strike zone half-extents in meters.
const (
	DefaultZoneHalfWidth  = 0.25
	DefaultZoneHalfHeight = 0.30

	// breakOnset is the normalized time past which lateral break activates.
	breakOnset = 0.4

	// planeOvershoot pushes the flight end point past the strike plane so a
	// crossing always happens before tNorm reaches 1.
	planeOvershoot = 0.6

	// crossEpsilon guards the signed-distance comparisons and the
	// interpolation denominator.
	crossEpsilon = 1e-6
)

// StrikeCrossEvent records the single moment a pitch crosses the strike
// plane. Created at most once per pitch and immutable afterwards.
type StrikeCrossEvent struct {
	TNorm      float64 `json:"tNorm"`   // normalized flight progress at crossing
	Elapsed    float64 `json:"elapsed"` // seconds since the pitch spawned
	Point      Vec3    `json:"point"`   // intersection with the strike plane
	InZone     bool    `json:"inZone"`
	HalfWidth  float64 `json:"halfWidth"`
	HalfHeight float64 `json:"halfHeight"`
}

// Pitch is one simulated pitch flight. It advances inside the per-frame
// Update call of its owner; it has no clock of its own.
type Pitch struct {
	Lane    PitchLane
	Seed    uint32
	profile PitchProfile

	start Vec3
	end   Vec3

	// Strike plane: through the zone center, normal along the nominal
	// straight-line flight direction.
	planePoint  Vec3
	planeNormal Vec3
	planeRight  Vec3
	planeUp     Vec3

	halfW float64
	halfH float64

	tNorm   float64
	elapsed float64
	pos     Vec3
	prevPos Vec3

	active bool
	done   bool
	cross  *StrikeCrossEvent
}

// SpawnPitch builds a pitch flight for the given lane and seed. startPos is
// the release point (mound anchor), zoneCenter the strike-zone aim point.
// handSign is +1 for a right-handed batter, -1 for a lefty. Zero half-extents
// select the defaults.
func SpawnPitch(lane PitchLane, seed uint32, startPos, zoneCenter Vec3, handSign float64, halfW, halfH float64) *Pitch {
	if halfW <= 0 {
		halfW = DefaultZoneHalfWidth
	}
	if halfH <= 0 {
		halfH = DefaultZoneHalfHeight
	}
	if handSign == 0 {
		handSign = 1
	}

	rng := NewStream(seed)
	profile := profileFor(lane, handSign, rng)

	normal := zoneCenter.Sub(startPos).Normalize()
	// Plane basis: right is horizontal and perpendicular to the flight
	// direction, up completes the frame. Falls back to world axes if the
	// flight direction is vertical (degenerate anchor data).
	right := Vec3{0, 1, 0}.Cross(normal).Normalize()
	if right.Length() < crossEpsilon {
		right = Vec3{1, 0, 0}
	}
	up := normal.Cross(right).Normalize()

	end := zoneCenter.
		Add(right.Scale(profile.PlateOffsetX)).
		Add(up.Scale(profile.PlateOffsetY)).
		Add(normal.Scale(planeOvershoot))

	p := &Pitch{
		Lane:        lane,
		Seed:        seed,
		profile:     profile,
		start:       startPos,
		end:         end,
		planePoint:  zoneCenter,
		planeNormal: normal,
		planeRight:  right,
		planeUp:     up,
		halfW:       halfW,
		halfH:       halfH,
		active:      true,
	}
	p.pos = p.positionAt(0)
	p.prevPos = p.pos
	return p
}

// positionAt evaluates the parametric flight path at normalized time t:
// straight-line interpolation plus a sinusoidal vertical arc, plus lateral
// break that eases in after 40% of the path.
func (p *Pitch) positionAt(t float64) Vec3 {
	pos := p.start.Lerp(p.end, t)
	pos.Y += math.Sin(math.Pi*t) * p.profile.ArcHeight

	if t > breakOnset {
		ease := smoothstep((t - breakOnset) / (1 - breakOnset))
		pos = pos.Add(p.planeRight.Scale(p.profile.BreakMag * ease))
	}
	return pos
}

// Update advances the flight by dt seconds. Crossing detection runs every
// frame until the single StrikeCrossEvent is recorded; the pitch retires
// when tNorm reaches 1.
func (p *Pitch) Update(dt float64) {
	if !p.active || dt <= 0 {
		return
	}

	prevT := p.tNorm
	prevElapsed := p.elapsed

	p.tNorm += dt / p.profile.Duration
	if p.tNorm > 1 {
		p.tNorm = 1
	}
	p.elapsed += dt

	p.prevPos = p.pos
	p.pos = p.positionAt(p.tNorm)

	if p.cross == nil {
		p.detectCrossing(prevT, prevElapsed)
	}

	if p.tNorm >= 1 {
		p.active = false
		p.done = true
	}
}

// detectCrossing tests whether the ball passed through the strike plane this
// frame and records the interpolated intersection exactly once.
func (p *Pitch) detectCrossing(prevT, prevElapsed float64) {
	d0 := p.prevPos.Sub(p.planePoint).Dot(p.planeNormal)
	d1 := p.pos.Sub(p.planePoint).Dot(p.planeNormal)

	// Sign convention: the normal points from the mound toward the plate, so
	// d < 0 means still in flight. A flip to d1 >= 0, or a sample landing on
	// the plane, is the crossing.
	crossed := (d0 < 0 && d1 >= 0) || math.Abs(d1) <= crossEpsilon
	if !crossed {
		return
	}

	ratio := 0.0
	denom := d0 - d1
	if math.Abs(denom) > crossEpsilon {
		ratio = d0 / denom
	}
	if ratio < 0 {
		ratio = 0
	} else if ratio > 1 {
		ratio = 1
	}

	point := p.prevPos.Lerp(p.pos, ratio)
	rel := point.Sub(p.planePoint)
	x := rel.Dot(p.planeRight)
	y := rel.Dot(p.planeUp)

	p.cross = &StrikeCrossEvent{
		TNorm:      prevT + (p.tNorm-prevT)*ratio,
		Elapsed:    prevElapsed + (p.elapsed-prevElapsed)*ratio,
		Point:      point,
		InZone:     math.Abs(x) <= p.halfW && math.Abs(y) <= p.halfH,
		HalfWidth:  p.halfW,
		HalfHeight: p.halfH,
	}
}

// Stop immediately deactivates the flight. Safe to call from any phase;
// subsequent Update calls are no-ops.
func (p *Pitch) Stop() {
	p.active = false
}

// LastCross returns the crossing event, or nil if the plane has not been
// reached yet.
func (p *Pitch) LastCross() *StrikeCrossEvent {
	return p.cross
}

// Active reports whether the flight is still in progress.
func (p *Pitch) Active() bool {
	return p.active
}

// Done reports whether the flight ran to completion (as opposed to being
// stopped early).
func (p *Pitch) Done() bool {
	return p.done
}

// TNorm returns the current normalized flight progress.
func (p *Pitch) TNorm() float64 {
	return p.tNorm
}

// Elapsed returns seconds since the pitch spawned.
func (p *Pitch) Elapsed() float64 {
	return p.elapsed
}

// Position returns the current ball position.
func (p *Pitch) Position() Vec3 {
	return p.pos
}
