package platformer

import (
	"fmt"
	"math"
	"math/rand"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-platformer/internal/config"
)

// Engine runs one platformer run at a time: NotStarted -> Running ->
// GameOver or Cleared, and back to Running on Restart. It is not safe for
// concurrent use; a single driver calls Tick once per frame.
type Engine struct {
	cfg        config.PlatformerConfig
	gen        *Generator
	resolver   Resolver
	difficulty *config.DifficultyManager
	adapter    Adapter
	logger     *log.Logger

	actor   Actor
	state   RunState
	scroll  float64
	speed   float64
	ticks   int
	score   int
	best    int
	newBest bool
}

// Option configures an Engine.
type Option func(*Engine)

// WithAdapter sets the event receiver. Defaults to NopAdapter.
func WithAdapter(a Adapter) Option {
	return func(e *Engine) {
		if a != nil {
			e.adapter = a
		}
	}
}

// WithBestScore seeds the best score, e.g. from storage.
func WithBestScore(best int) Option {
	return func(e *Engine) {
		if best > 0 {
			e.best = best
		}
	}
}

// WithLogger enables debug logging of run transitions.
func WithLogger(l *log.Logger) Option {
	return func(e *Engine) {
		e.logger = l
	}
}

// NewEngine validates cfg and builds an engine in the NotStarted state.
// A nil rng falls back to a time-seeded source.
func NewEngine(cfg config.PlatformerConfig, rng Rand, opts ...Option) (*Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("platformer: %w", err)
	}
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}

	e := &Engine{
		cfg:        cfg,
		gen:        NewGenerator(cfg, rng),
		difficulty: config.NewDifficultyManager(cfg.Difficulty),
		adapter:    NopAdapter{},
		resolver: Resolver{
			ViewportHeight: cfg.World.ViewportHeight,
		},
	}
	if cfg.Course.Enabled {
		e.resolver.Goal = cfg.Course.GoalPosition
	}
	for _, opt := range opts {
		opt(e)
	}

	e.reset()
	return e, nil
}

// reset puts the actor on the start platform and regenerates the level.
func (e *Engine) reset() {
	p := e.cfg.Player
	e.actor = Actor{
		X:      p.X,
		Y:      e.cfg.World.GroundY() - p.Height,
		Width:  p.Width,
		Height: p.Height,
	}
	e.scroll = 0
	e.ticks = 0
	e.score = 0
	e.newBest = false
	e.speed = e.currentSpeed()
	e.gen.Setup()
}

// Start begins the first run. It does nothing unless the engine is NotStarted.
func (e *Engine) Start() {
	if e.state != StateNotStarted {
		return
	}
	e.reset()
	e.state = StateRunning
	e.debug("run started")
}

// Restart begins a new run after GameOver or Cleared. The best score is kept.
func (e *Engine) Restart() {
	if !e.state.Terminal() {
		return
	}
	e.reset()
	e.state = StateRunning
	e.debug("run restarted")
}

// RequestJump jumps if the run is active and a jump is left.
// Reports whether the jump was applied.
func (e *Engine) RequestJump() bool {
	if e.state != StateRunning {
		return false
	}
	return Jump(&e.actor, e.cfg.Physics.JumpPower, MaxJumps)
}

// Tick advances the simulation by one fixed step and renders.
// Outside Running only Render is called.
func (e *Engine) Tick() {
	if e.state == StateRunning {
		e.step()
	}
	e.adapter.Render(e.Snapshot())
}

// Advance runs n ticks.
func (e *Engine) Advance(n int) {
	for i := 0; i < n; i++ {
		e.Tick()
	}
}

func (e *Engine) step() {
	e.ticks++

	e.gen.Ensure(e.scroll)
	Integrate(&e.actor, e.cfg.Physics.Gravity, e.cfg.Physics.MaxFallSpeed)

	switch e.resolver.Resolve(&e.actor, e.scroll, e.gen) {
	case OutcomeCleared:
		e.finish(StateCleared, "goal")
		return
	case OutcomeHit:
		e.finish(StateGameOver, "obstacle")
		return
	case OutcomeFell:
		e.finish(StateGameOver, "fell")
		return
	}

	e.speed = e.currentSpeed()
	e.scroll += e.speed

	if score := int(math.Floor(e.scroll / e.cfg.World.ScoreDivisor)); score != e.score {
		e.score = score
		e.adapter.OnScoreChanged(score)
	}
}

// currentSpeed is recomputed every tick from the score.
func (e *Engine) currentSpeed() float64 {
	return e.difficulty.Speed(e.cfg.Physics.BaseSpeed, e.cfg.Physics.MaxSpeedMultiplier, e.score, e.ticks)
}

// finish ends the run and reports whether it set a new best.
func (e *Engine) finish(state RunState, reason string) {
	e.state = state
	e.newBest = e.score > e.best
	if e.newBest {
		e.best = e.score
	}

	e.debug("run ended",
		"state", state,
		"reason", reason,
		"score", e.score,
		"best", e.best,
		"ticks", e.ticks,
	)

	if state == StateCleared {
		e.adapter.OnCleared(e.score, e.newBest)
	} else {
		e.adapter.OnGameOver(e.score, e.newBest)
	}
}

func (e *Engine) debug(msg string, keyvals ...interface{}) {
	if e.logger != nil {
		e.logger.Debug(msg, keyvals...)
	}
}

// State returns the run state.
func (e *Engine) State() RunState {
	return e.state
}

// Score returns the current run's score.
func (e *Engine) Score() int {
	return e.score
}

// BestScore returns the best score seen by this engine.
func (e *Engine) BestScore() int {
	return e.best
}

// NewBest reports whether the finished run set a new best score.
func (e *Engine) NewBest() bool {
	return e.newBest
}

// Ticks returns the number of simulated ticks in the current run.
func (e *Engine) Ticks() int {
	return e.ticks
}

// Scroll returns the current scroll offset.
func (e *Engine) Scroll() float64 {
	return e.scroll
}

// Actor returns a copy of the actor.
func (e *Engine) Actor() Actor {
	return e.actor
}

// Generator exposes the level geometry for read-only inspection.
func (e *Engine) Generator() *Generator {
	return e.gen
}

// Config returns the configuration the engine was built with.
func (e *Engine) Config() config.PlatformerConfig {
	return e.cfg
}
