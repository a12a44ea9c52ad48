package platformer

import (
	"errors"
	"fmt"
	"math/rand"

	"github.com/vovakirdan/tui-platformer/internal/replay"
)

// ErrReplayMismatch is returned by Verify when a re-simulated run differs
// from its recording.
var ErrReplayMismatch = errors.New("platformer: replay mismatch")

// Replay re-simulates a recording from its seed and jump ticks and returns
// the final snapshot. Adapters receive events as in live play.
func Replay(rec *replay.Recording, adapters ...Adapter) (Snapshot, error) {
	e, err := NewEngine(rec.Config, rand.New(rand.NewSource(rec.Seed)),
		WithAdapter(MultiAdapter(adapters)))
	if err != nil {
		return Snapshot{}, err
	}
	e.Start()

	jumps := rec.Jumps
	for tick := uint64(0); tick < rec.Ticks && e.State() == StateRunning; tick++ {
		for len(jumps) > 0 && jumps[0] == tick {
			e.RequestJump()
			jumps = jumps[1:]
		}
		e.Tick()
	}

	return e.Snapshot(), nil
}

// Verify replays rec and checks that the score and final state match.
func Verify(rec *replay.Recording) (Snapshot, error) {
	snap, err := Replay(rec)
	if err != nil {
		return snap, err
	}
	if snap.Score != rec.Score || snap.State.String() != rec.State {
		return snap, fmt.Errorf("%w: recorded %d (%s), replayed %d (%s)",
			ErrReplayMismatch, rec.Score, rec.State, snap.Score, snap.State)
	}
	return snap, nil
}
