package sim

// Anchor is a named field landmark supplied by the scene layer: a position
// and the direction the landmark faces.
type Anchor struct {
	Position Vec3
	Forward  Vec3
}

// AnchorProvider resolves field landmarks by name. The scene/asset layer
// implements this; the simulation only ever reads from it.
type AnchorProvider interface {
	Anchor(name string) (Anchor, bool)
}

// Anchor names the simulation looks up. Fielder names double as the keys for
// the defensive alignment.
const (
	AnchorMound      = "pitcherMound"
	AnchorHomePlate  = "homePlate"
	AnchorZoneCenter = "strikeZoneCenter"
)

// FielderAnchors lists the nine defensive positions in a fixed order.
var FielderAnchors = []string{
	"fielderPitcher",
	"fielderCatcher",
	"fielderFirst",
	"fielderSecond",
	"fielderShortstop",
	"fielderThird",
	"fielderLeft",
	"fielderCenter",
	"fielderRight",
}

// defaultAnchors are the fallback landmarks used when the provider is absent
// or a name is missing. Positions are regulation-ish distances in meters.
var defaultAnchors = map[string]Anchor{
	AnchorMound:      {Position: Vec3{0, 1.8, 18.44}, Forward: Vec3{0, 0, -1}},
	AnchorHomePlate:  {Position: Vec3{0, 0, 0}, Forward: Vec3{0, 0, 1}},
	AnchorZoneCenter: {Position: Vec3{0, 0.95, 0.2}, Forward: Vec3{0, 0, 1}},

	"fielderPitcher":   {Position: Vec3{0, 0, 18.44}, Forward: Vec3{0, 0, -1}},
	"fielderCatcher":   {Position: Vec3{0, 0, -1.5}, Forward: Vec3{0, 0, 1}},
	"fielderFirst":     {Position: Vec3{20, 0, 22}, Forward: Vec3{0, 0, -1}},
	"fielderSecond":    {Position: Vec3{10, 0, 35}, Forward: Vec3{0, 0, -1}},
	"fielderShortstop": {Position: Vec3{-10, 0, 35}, Forward: Vec3{0, 0, -1}},
	"fielderThird":     {Position: Vec3{-20, 0, 22}, Forward: Vec3{0, 0, -1}},
	"fielderLeft":      {Position: Vec3{-28, 0, 55}, Forward: Vec3{0, 0, -1}},
	"fielderCenter":    {Position: Vec3{0, 0, 62}, Forward: Vec3{0, 0, -1}},
	"fielderRight":     {Position: Vec3{28, 0, 55}, Forward: Vec3{0, 0, -1}},
}

// DefaultAnchors is an AnchorProvider backed entirely by the fallback table.
// Useful for headless sessions and tests.
type DefaultAnchors struct{}

func (DefaultAnchors) Anchor(name string) (Anchor, bool) {
	a, ok := defaultAnchors[name]
	return a, ok
}

// resolveAnchor looks up a name on the provider, falling back to the built-in
// table. Missing anchors degrade to defaults; they never fail the simulation.
func resolveAnchor(p AnchorProvider, name string) Anchor {
	if p != nil {
		if a, ok := p.Anchor(name); ok {
			return a
		}
	}
	return defaultAnchors[name]
}

// resolveFielders returns the nine defensive positions from the provider,
// substituting defaults for any missing names.
func resolveFielders(p AnchorProvider) []Vec3 {
	out := make([]Vec3, 0, len(FielderAnchors))
	for _, name := range FielderAnchors {
		out = append(out, resolveAnchor(p, name).Position)
	}
	return out
}
