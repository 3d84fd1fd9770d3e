package spray

import (
	"bytes"
	"image/png"
	"testing"

	"sandlot/internal/sim"
)

// TestRenderEmptyChart verifies an empty chart still encodes a valid PNG
func TestRenderEmptyChart(t *testing.T) {
	var buf bytes.Buffer
	if err := NewRenderer().Render(&buf, nil); err != nil {
		t.Fatalf("Render failed: %v", err)
	}

	img, err := png.Decode(&buf)
	if err != nil {
		t.Fatalf("Output is not a PNG: %v", err)
	}
	bounds := img.Bounds()
	if bounds.Dx() != 640 || bounds.Dy() != 640 {
		t.Errorf("Unexpected canvas %dx%d", bounds.Dx(), bounds.Dy())
	}
}

// TestRenderWithLandings verifies landings of every outcome draw without
// error
func TestRenderWithLandings(t *testing.T) {
	landings := []sim.Landing{
		{Point: sim.Vec3{X: 0, Z: 30}, Type: sim.GroundBall, Outcome: sim.OutcomeSingle},
		{Point: sim.Vec3{X: -20, Z: 40}, Type: sim.LineDrive, Outcome: sim.OutcomeDouble},
		{Point: sim.Vec3{X: 25, Z: 45}, Type: sim.FlyBall, Outcome: sim.OutcomeTriple},
		{Point: sim.Vec3{X: 0, Z: 65}, Type: sim.HomeRunBall, Outcome: sim.OutcomeHomeRun},
		{Point: sim.Vec3{X: 5, Z: 20}, Type: sim.Popup, Outcome: sim.OutcomeOut},
		{Point: sim.Vec3{X: 10, Z: 25}, Type: sim.GroundBall, Outcome: sim.OutcomeError},
	}

	var buf bytes.Buffer
	if err := NewRenderer().Render(&buf, landings); err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	if _, err := png.Decode(&buf); err != nil {
		t.Fatalf("Output is not a PNG: %v", err)
	}
}
