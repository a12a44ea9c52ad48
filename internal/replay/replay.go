// Package replay records platformer runs as the seed plus the ticks at which
// jumps were requested, and encodes them with msgpack for storage.
package replay

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"github.com/vmihailenco/msgpack/v5"

	"github.com/vovakirdan/tui-platformer/internal/config"
)

// Version is the current recording format version.
const Version = 1

// ErrVersion is returned when decoding a recording from a newer format.
var ErrVersion = errors.New("replay: unsupported version")

// Recording is everything needed to re-simulate a run deterministically.
type Recording struct {
	Version int                     `msgpack:"v"`
	GameID  string                  `msgpack:"game"`
	Seed    int64                   `msgpack:"seed"`
	Config  config.PlatformerConfig `msgpack:"config"`
	// Jumps holds, in order, the tick index during which each jump was
	// requested (the request precedes that tick's step).
	Jumps []uint64 `msgpack:"jumps"`
	Ticks uint64   `msgpack:"ticks"`
	Score int      `msgpack:"score"`
	State string   `msgpack:"state"`
}

// Encode writes rec as msgpack.
func Encode(w io.Writer, rec *Recording) error {
	if err := msgpack.NewEncoder(w).Encode(rec); err != nil {
		return fmt.Errorf("replay: encode: %w", err)
	}
	return nil
}

// Decode reads a msgpack recording.
func Decode(r io.Reader) (*Recording, error) {
	var rec Recording
	if err := msgpack.NewDecoder(r).Decode(&rec); err != nil {
		return nil, fmt.Errorf("replay: decode: %w", err)
	}
	if rec.Version > Version {
		return nil, fmt.Errorf("%w: %d", ErrVersion, rec.Version)
	}
	return &rec, nil
}

// Marshal returns the msgpack encoding of rec.
func Marshal(rec *Recording) ([]byte, error) {
	var buf bytes.Buffer
	if err := Encode(&buf, rec); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Unmarshal decodes a recording produced by Marshal.
func Unmarshal(data []byte) (*Recording, error) {
	return Decode(bytes.NewReader(data))
}

// Recorder collects jump ticks while a run is played.
type Recorder struct {
	rec  Recording
	tick uint64
}

// NewRecorder starts a recording for a run with the given seed and config.
func NewRecorder(gameID string, seed int64, cfg config.PlatformerConfig) *Recorder {
	return &Recorder{
		rec: Recording{
			Version: Version,
			GameID:  gameID,
			Seed:    seed,
			Config:  cfg,
		},
	}
}

// Jump records a jump request before the current tick.
func (r *Recorder) Jump() {
	r.rec.Jumps = append(r.rec.Jumps, r.tick)
}

// Tick marks the end of one simulated tick.
func (r *Recorder) Tick() {
	r.tick++
}

// Ticks returns the number of recorded ticks.
func (r *Recorder) Ticks() uint64 {
	return r.tick
}

// Finish stamps the outcome and returns the recording.
func (r *Recorder) Finish(score int, state string) *Recording {
	rec := r.rec
	rec.Ticks = r.tick
	rec.Score = score
	rec.State = state
	rec.Jumps = append([]uint64(nil), r.rec.Jumps...)
	return &rec
}
