// Package platformer implements a side-scrolling platformer: a seeded level
// generator, a fixed-step physics integrator, a collision resolver and the run
// state machine that ties them together. The Engine is pure simulation; the
// Game type adapts it to the game registry for terminal play.
package platformer

import (
	"fmt"

	"github.com/vovakirdan/tui-platformer/internal/core"
)

// MaxJumps is the number of jumps allowed before the actor must land again.
const MaxJumps = 2

// Terrain is a cosmetic style flag carried by platforms. It never affects physics.
type Terrain uint8

const (
	TerrainGround   Terrain = iota // Regular ground segment
	TerrainStart                   // First ground segment of a run
	TerrainGoal                    // Goal platform of the fixed course
	TerrainFloating                // Randomly placed floating platform
	TerrainBridge                  // Floating platform guaranteed over an obstacle cluster
)

// String returns the terrain name used in snapshots and logs.
func (t Terrain) String() string {
	switch t {
	case TerrainGround:
		return "ground"
	case TerrainStart:
		return "start"
	case TerrainGoal:
		return "goal"
	case TerrainFloating:
		return "floating"
	case TerrainBridge:
		return "bridge"
	default:
		return "unknown"
	}
}

// MarshalText lets snapshots encode terrains by name.
func (t Terrain) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

// UnmarshalText parses a terrain name produced by MarshalText.
func (t *Terrain) UnmarshalText(text []byte) error {
	for c := TerrainGround; c <= TerrainBridge; c++ {
		if c.String() == string(text) {
			*t = c
			return nil
		}
	}
	return fmt.Errorf("platformer: unknown terrain %q", text)
}

// Platform is a solid surface in world coordinates. Only its top is solid.
type Platform struct {
	X       float64 `json:"x"`
	Y       float64 `json:"y"`
	Width   float64 `json:"w"`
	Height  float64 `json:"h"`
	Terrain Terrain `json:"terrain"`
}

// Rect returns the platform bounds.
func (p Platform) Rect() core.RectF {
	return core.NewRectF(p.X, p.Y, p.Width, p.Height)
}

// Right returns the world x of the platform's right edge.
func (p Platform) Right() float64 {
	return p.X + p.Width
}

// Obstacle is a lethal box in world coordinates.
type Obstacle struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"w"`
	Height float64 `json:"h"`
}

// Rect returns the obstacle bounds.
func (o Obstacle) Rect() core.RectF {
	return core.NewRectF(o.X, o.Y, o.Width, o.Height)
}

// Right returns the world x of the obstacle's right edge.
func (o Obstacle) Right() float64 {
	return o.X + o.Width
}

// Actor is the player. X is fixed in viewport space; the world scrolls past it.
type Actor struct {
	X         float64 `json:"x"`
	Y         float64 `json:"y"`
	Width     float64 `json:"w"`
	Height    float64 `json:"h"`
	VelY      float64 `json:"vy"` // Positive = downward
	Grounded  bool    `json:"grounded"`
	JumpCount int     `json:"jumps"`
}

// Rect returns the actor bounds in viewport space.
func (a Actor) Rect() core.RectF {
	return core.NewRectF(a.X, a.Y, a.Width, a.Height)
}

// Bottom returns the y of the actor's feet.
func (a Actor) Bottom() float64 {
	return a.Y + a.Height
}

// RunState is the state of the current run.
type RunState uint8

const (
	StateNotStarted RunState = iota
	StateRunning
	StateGameOver
	StateCleared
)

// String returns a human-readable state name.
func (s RunState) String() string {
	switch s {
	case StateNotStarted:
		return "not_started"
	case StateRunning:
		return "running"
	case StateGameOver:
		return "game_over"
	case StateCleared:
		return "cleared"
	default:
		return "unknown"
	}
}

// MarshalText lets snapshots encode states by name.
func (s RunState) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText parses a state name produced by MarshalText.
func (s *RunState) UnmarshalText(text []byte) error {
	for c := StateNotStarted; c <= StateCleared; c++ {
		if c.String() == string(text) {
			*s = c
			return nil
		}
	}
	return fmt.Errorf("platformer: unknown run state %q", text)
}

// Terminal reports whether the run has ended.
func (s RunState) Terminal() bool {
	return s == StateGameOver || s == StateCleared
}
