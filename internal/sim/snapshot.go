package sim

import (
	"sync/atomic"
	"time"
)

// Snapshot is a complete immutable view of a session for API polling.
// Value types only, so a published snapshot can never be mutated by a later
// tick.
type Snapshot struct {
	Sequence  uint64    `json:"sequence"`  // Monotonic sequence for ordering
	Timestamp time.Time `json:"timestamp"` // When the snapshot was produced

	Phase      Phase     `json:"phase"`
	State      GameState `json:"state"`
	PitchIndex int       `json:"pitchIndex"`

	// Live flight data for polling renderers; zero when no pitch is active.
	BallPosition Vec3    `json:"ballPosition"`
	PitchTNorm   float64 `json:"pitchTNorm"`
	PitchActive  bool    `json:"pitchActive"`

	// Last-play details; pointers are copies owned by the snapshot.
	LastCross   *StrikeCrossEvent `json:"lastCross,omitempty"`
	LastBall    *BattedBallResult `json:"lastBall,omitempty"`
	LastOutcome string            `json:"lastOutcome,omitempty"`
}

// SnapshotPool triple-buffers snapshots for lock-free producer/consumer
// separation: the tick loop writes, API handlers read, nobody blocks.
type SnapshotPool struct {
	snapshots [3]Snapshot
	writeIdx  uint32 // atomic - producer index
	readIdx   uint32 // atomic - consumer index
	sequence  uint64 // atomic - monotonic sequence
}

// NewSnapshotPool creates an empty pool.
func NewSnapshotPool() *SnapshotPool {
	return &SnapshotPool{}
}

// AcquireWrite gets the next write slot (producer only, called from the tick
// loop).
func (p *SnapshotPool) AcquireWrite() *Snapshot {
	idx := atomic.AddUint32(&p.writeIdx, 1) % 3
	snap := &p.snapshots[idx]
	*snap = Snapshot{
		Sequence:  atomic.AddUint64(&p.sequence, 1),
		Timestamp: time.Now(),
	}
	return snap
}

// PublishWrite marks the write complete and advances the read pointer.
func (p *SnapshotPool) PublishWrite() {
	atomic.StoreUint32(&p.readIdx, atomic.LoadUint32(&p.writeIdx))
}

// AcquireRead gets the latest complete snapshot (consumer side).
func (p *SnapshotPool) AcquireRead() *Snapshot {
	idx := atomic.LoadUint32(&p.readIdx) % 3
	return &p.snapshots[idx]
}
