// Package spray renders batted-ball landing charts as PNG images for the
// host dashboard. This is a diagnostic view, not the game render.
package spray

import (
	"io"
	"math"

	"github.com/fogleman/gg"

	"sandlot/internal/sim"
)

const (
	chartSize = 640
	// metersToPx maps the ~70m of fair territory onto the canvas.
	metersToPx = 7.5

	plateX = chartSize / 2
	plateY = chartSize - 40
)

// Renderer draws spray charts at a fixed canvas size.
type Renderer struct {
	size int
}

// NewRenderer creates a chart renderer.
func NewRenderer() *Renderer {
	return &Renderer{size: chartSize}
}

// Render draws the field and every landing, then encodes a PNG to w.
func (r *Renderer) Render(w io.Writer, landings []sim.Landing) error {
	dc := gg.NewContext(r.size, r.size)

	// Grass
	dc.SetRGB(0.20, 0.43, 0.22)
	dc.Clear()

	r.drawInfield(dc)
	r.drawFoulLines(dc)
	r.drawFence(dc)

	for _, l := range landings {
		r.drawLanding(dc, l)
	}

	return dc.EncodePNG(w)
}

// drawInfield draws the dirt wedge around the plate.
func (r *Renderer) drawInfield(dc *gg.Context) {
	dc.SetRGB(0.55, 0.42, 0.26)
	dc.DrawArc(plateX, plateY, 28*metersToPx/2, -math.Pi*3/4, -math.Pi/4)
	dc.LineTo(plateX, plateY)
	dc.ClosePath()
	dc.Fill()

	// Home plate marker
	dc.SetRGB(0.95, 0.95, 0.95)
	dc.DrawCircle(plateX, plateY, 4)
	dc.Fill()
}

// drawFoulLines draws the two 45-degree lines bounding fair territory.
func (r *Renderer) drawFoulLines(dc *gg.Context) {
	dc.SetRGB(0.92, 0.92, 0.92)
	dc.SetLineWidth(2)
	reach := 70.0 * metersToPx
	for _, sign := range []float64{-1, 1} {
		dx := math.Sin(sign*math.Pi/4) * reach
		dy := math.Cos(sign*math.Pi/4) * reach
		dc.DrawLine(plateX, plateY, plateX+dx, plateY-dy)
		dc.Stroke()
	}
}

// drawFence traces the outfield fence, tapering from center toward the
// lines the same way the simulation's home-run check does.
func (r *Renderer) drawFence(dc *gg.Context) {
	dc.SetRGB(0.85, 0.78, 0.35)
	dc.SetLineWidth(3)

	first := true
	for deg := -45.0; deg <= 45.0; deg += 1.5 {
		dist := sim.FenceDistanceAt(deg) * metersToPx
		rad := deg * math.Pi / 180
		x := plateX + math.Sin(rad)*dist
		y := plateY - math.Cos(rad)*dist
		if first {
			dc.MoveTo(x, y)
			first = false
		} else {
			dc.LineTo(x, y)
		}
	}
	dc.Stroke()
}

// drawLanding plots one ball, colored by outcome.
func (r *Renderer) drawLanding(dc *gg.Context, l sim.Landing) {
	x := plateX + l.Point.X*metersToPx
	y := plateY - l.Point.Z*metersToPx

	switch l.Outcome {
	case sim.OutcomeHomeRun:
		dc.SetRGB(0.95, 0.25, 0.25)
	case sim.OutcomeTriple:
		dc.SetRGB(0.95, 0.60, 0.15)
	case sim.OutcomeDouble:
		dc.SetRGB(0.95, 0.85, 0.20)
	case sim.OutcomeSingle, sim.OutcomeError:
		dc.SetRGB(0.35, 0.75, 0.95)
	default: // out
		dc.SetRGB(0.75, 0.75, 0.75)
	}

	dc.DrawCircle(x, y, 5)
	dc.Fill()
	dc.SetRGB(0.1, 0.1, 0.1)
	dc.SetLineWidth(1)
	dc.DrawCircle(x, y, 5)
	dc.Stroke()
}
