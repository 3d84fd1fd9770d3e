package sim

import (
	"math"
	"testing"
)

// TestLaneNames verifies every lane has a wire name
func TestLaneNames(t *testing.T) {
	seen := map[string]bool{}
	for lane := PitchLane(0); lane < LaneCount; lane++ {
		name := lane.String()
		if name == "" || name == "unknown" {
			t.Errorf("Lane %d has no name", lane)
		}
		if seen[name] {
			t.Errorf("Duplicate lane name %q", name)
		}
		seen[name] = true
	}
}

// TestProfileJitterBounds verifies jittered profiles stay near the base
// tuning for every lane and seed
func TestProfileJitterBounds(t *testing.T) {
	for lane := PitchLane(0); lane < LaneCount; lane++ {
		base := laneProfiles[lane]
		for seed := uint32(0); seed < 50; seed++ {
			p := profileFor(lane, 1, NewStream(seed))

			if math.Abs(p.PlateOffsetX-base.PlateOffsetX) > jitterOffset {
				t.Fatalf("Lane %s seed %d: offsetX %v strayed from %v", lane, seed, p.PlateOffsetX, base.PlateOffsetX)
			}
			if math.Abs(p.PlateOffsetY-base.PlateOffsetY) > jitterOffset {
				t.Fatalf("Lane %s seed %d: offsetY %v strayed from %v", lane, seed, p.PlateOffsetY, base.PlateOffsetY)
			}
			if p.Duration <= 0 {
				t.Fatalf("Lane %s seed %d: non-positive duration", lane, seed)
			}
			if math.Abs(p.Duration-base.Duration) > base.Duration*jitterDurFrac {
				t.Fatalf("Lane %s seed %d: duration %v strayed from %v", lane, seed, p.Duration, base.Duration)
			}
		}
	}
}

// TestProfileHandMirror verifies a lefty batter mirrors the horizontal
// tuning and nothing else
func TestProfileHandMirror(t *testing.T) {
	for lane := PitchLane(0); lane < LaneCount; lane++ {
		for seed := uint32(0); seed < 10; seed++ {
			r := profileFor(lane, 1, NewStream(seed))
			l := profileFor(lane, -1, NewStream(seed))

			if r.PlateOffsetX != -l.PlateOffsetX {
				t.Fatalf("Lane %s: offsetX not mirrored: %v vs %v", lane, r.PlateOffsetX, l.PlateOffsetX)
			}
			if r.BreakMag != -l.BreakMag {
				t.Fatalf("Lane %s: break not mirrored: %v vs %v", lane, r.BreakMag, l.BreakMag)
			}
			if r.PlateOffsetY != l.PlateOffsetY || r.ArcHeight != l.ArcHeight || r.Duration != l.Duration {
				t.Fatalf("Lane %s: vertical tuning changed with handedness", lane)
			}
		}
	}
}
