package sim

// Stream is a deterministic pseudo-random number generator with 32-bit state.
// The mixing schedule is part of the engine contract: replays, event-log
// verification, and cross-host determinism tests all depend on the exact
// bit arithmetic, so it must never be swapped for a platform RNG.
type Stream struct {
	state uint32
}

// NewStream creates a stream seeded with the given value.
// Any 32-bit value is a valid seed, including zero.
func NewStream(seed uint32) *Stream {
	return &Stream{state: seed}
}

// Next advances the stream and returns a float in [0, 1).
// State advances by a fixed additive constant, then passes through two
// xor-multiply mixing rounds before scaling.
func (s *Stream) Next() float64 {
	s.state += 0x6D2B79F5
	t := s.state
	t = (t ^ (t >> 15)) * (t | 1)
	t ^= t + (t^(t>>7))*(t|61)
	t ^= t >> 14
	return float64(t) / 4294967296.0
}

// NextRange returns a float in [lo, hi).
func (s *Stream) NextRange(lo, hi float64) float64 {
	return lo + s.Next()*(hi-lo)
}

// NextSigned returns a float in [-mag, mag).
func (s *Stream) NextSigned(mag float64) float64 {
	return (s.Next()*2 - 1) * mag
}

// NextIndex returns an int in [0, n). n must be positive.
func (s *Stream) NextIndex(n int) int {
	i := int(s.Next() * float64(n))
	if i >= n {
		i = n - 1
	}
	return i
}
