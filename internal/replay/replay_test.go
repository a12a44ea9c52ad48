package replay

import (
	"bytes"
	"errors"
	"reflect"
	"testing"

	"github.com/vmihailenco/msgpack/v5"

	"github.com/vovakirdan/tui-platformer/internal/config"
)

func TestRecorderTracksJumpTicks(t *testing.T) {
	r := NewRecorder("platformer", 42, config.DefaultPlatformerConfig())

	r.Jump() // before tick 0
	r.Tick()
	r.Tick()
	r.Jump() // before tick 2
	r.Jump() // double jump, same tick
	r.Tick()

	rec := r.Finish(17, "game_over")

	want := []uint64{0, 2, 2}
	if !reflect.DeepEqual(rec.Jumps, want) {
		t.Errorf("Jumps = %v, want %v", rec.Jumps, want)
	}
	if rec.Ticks != 3 {
		t.Errorf("Ticks = %d, want 3", rec.Ticks)
	}
	if rec.Score != 17 || rec.State != "game_over" {
		t.Errorf("outcome = (%d, %q), want (17, game_over)", rec.Score, rec.State)
	}
	if rec.Version != Version || rec.Seed != 42 || rec.GameID != "platformer" {
		t.Errorf("header not stamped: %+v", rec)
	}
}

func TestFinishDetachesJumps(t *testing.T) {
	r := NewRecorder("platformer", 1, config.DefaultPlatformerConfig())
	r.Jump()
	rec := r.Finish(0, "running")

	r.Jump()
	if len(rec.Jumps) != 1 {
		t.Errorf("finished recording changed after more jumps: %v", rec.Jumps)
	}
}

func TestMarshalRoundTrip(t *testing.T) {
	r := NewRecorder("platformer_course", -7, config.DefaultCourseConfig())
	for i := 0; i < 100; i++ {
		if i%25 == 0 {
			r.Jump()
		}
		r.Tick()
	}
	want := r.Finish(50, "cleared")

	data, err := Marshal(want)
	if err != nil {
		t.Fatalf("Marshal() failed: %v", err)
	}
	got, err := Unmarshal(data)
	if err != nil {
		t.Fatalf("Unmarshal() failed: %v", err)
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("round trip mismatch:\n got %+v\nwant %+v", got, want)
	}
}

func TestDecodeRejectsNewerVersion(t *testing.T) {
	var buf bytes.Buffer
	if err := msgpack.NewEncoder(&buf).Encode(&Recording{Version: Version + 1}); err != nil {
		t.Fatal(err)
	}

	_, err := Decode(&buf)
	if !errors.Is(err, ErrVersion) {
		t.Errorf("expected ErrVersion, got %v", err)
	}
}

func TestDecodeGarbage(t *testing.T) {
	if _, err := Unmarshal([]byte{0xc1, 0x00}); err == nil {
		t.Error("expected error decoding garbage")
	}
}
