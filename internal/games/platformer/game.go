package platformer

import (
	"math/rand"
	"sync"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-platformer/internal/config"
	"github.com/vovakirdan/tui-platformer/internal/core"
	"github.com/vovakirdan/tui-platformer/internal/registry"
	"github.com/vovakirdan/tui-platformer/internal/replay"
)

// Registered game IDs.
const (
	IDEndless = "platformer"
	IDCourse  = "platformer_course"
)

var (
	settingsMu       sync.RWMutex
	configPath       string
	difficultyPreset config.DifficultyPreset
	spectator        Adapter
	logger           *log.Logger
)

// SetConfigPath sets the custom config path for loading.
func SetConfigPath(path string) {
	settingsMu.Lock()
	defer settingsMu.Unlock()
	configPath = path
}

// SetDifficultyPreset sets the difficulty preset ("easy", "normal", "hard", "fixed").
// Unknown values fall back to the config default.
func SetDifficultyPreset(preset string) {
	settingsMu.Lock()
	defer settingsMu.Unlock()
	difficultyPreset = config.ParsePreset(preset)
}

// SetSpectator attaches an extra adapter to every engine created afterwards.
// Pass nil to detach.
func SetSpectator(a Adapter) {
	settingsMu.Lock()
	defer settingsMu.Unlock()
	spectator = a
}

// SetLogger sets the logger handed to every engine created afterwards.
func SetLogger(l *log.Logger) {
	settingsMu.Lock()
	defer settingsMu.Unlock()
	logger = l
}

func engineLogger() *log.Logger {
	settingsMu.RLock()
	defer settingsMu.RUnlock()
	return logger
}

func settings() (string, config.DifficultyPreset, Adapter) {
	settingsMu.RLock()
	defer settingsMu.RUnlock()
	return configPath, difficultyPreset, spectator
}

// Game adapts an Engine to the game registry: it maps input actions to
// engine calls, records replays and draws snapshots to the terminal screen.
type Game struct {
	id     string
	title  string
	course bool

	runtime  core.RuntimeConfig
	seeds    *rand.Rand
	seed     int64
	engine   *Engine
	recorder *replay.Recorder
	finished *replay.Recording
	view     *view
	paused   bool
	best     int
}

// New creates an endless platformer.
func New() *Game {
	return &Game{id: IDEndless, title: "Platformer"}
}

// NewCourse creates the fixed-length course variant.
func NewCourse() *Game {
	return &Game{id: IDCourse, title: "Platformer: Course", course: true}
}

// ID returns the unique identifier for this game.
func (g *Game) ID() string {
	return g.id
}

// Title returns the display name for this game.
func (g *Game) Title() string {
	return g.title
}

// Description returns a one-line summary for menus.
func (g *Game) Description() string {
	if g.course {
		return "Reach the goal flag before you fall"
	}
	return "Run, jump and double jump as far as you can"
}

// SeedBestScore sets the best score carried into the next engine, e.g. from storage.
func (g *Game) SeedBestScore(best int) {
	if best > g.best {
		g.best = best
	}
	if g.engine != nil && g.engine.State() == StateNotStarted && best > g.engine.BestScore() {
		g.build(g.seed)
	}
}

// Reset initializes or restarts the game with a fresh seed sequence.
// The run waits in NotStarted until the player jumps.
func (g *Game) Reset(runtime core.RuntimeConfig) {
	g.runtime = runtime
	seed := runtime.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	g.seeds = rand.New(rand.NewSource(seed))
	g.build(g.seeds.Int63())
}

// build creates a fresh engine and recorder for one run.
func (g *Game) build(seed int64) {
	if g.engine != nil && g.engine.BestScore() > g.best {
		g.best = g.engine.BestScore()
	}

	cfg := g.loadConfig()
	adapters := MultiAdapter{}
	g.view = newView()
	adapters = append(adapters, g.view)

	_, _, watcher := settings()
	if watcher != nil {
		adapters = append(adapters, watcher)
	}

	opts := []Option{
		WithAdapter(adapters),
		WithBestScore(g.best),
		WithLogger(engineLogger()),
	}
	engine, err := NewEngine(cfg, rand.New(rand.NewSource(seed)), opts...)
	if err != nil {
		// Invalid custom config: fall back to the built-in defaults
		if l := engineLogger(); l != nil {
			l.Warn("invalid config, using defaults", "game", g.id, "error", err)
		}
		cfg = g.defaultConfig()
		engine, _ = NewEngine(cfg, rand.New(rand.NewSource(seed)), opts...)
	}

	g.seed = seed
	g.engine = engine
	g.recorder = replay.NewRecorder(g.id, seed, cfg)
	g.finished = nil
	g.paused = false
	g.view.Render(engine.Snapshot())
}

func (g *Game) loadConfig() config.PlatformerConfig {
	cfg, err := ResolveConfig(g.course)
	if err != nil {
		if l := engineLogger(); l != nil {
			l.Warn("cannot load config, using defaults", "game", g.id, "error", err)
		}
		cfg = g.defaultConfig()
		_, preset, _ := settings()
		config.ApplyPlatformerPreset(&cfg, preset)
	}
	return cfg
}

// ResolveConfig loads the config the next run would use, with the current
// config path and difficulty preset applied. It also reports validation errors.
func ResolveConfig(course bool) (config.PlatformerConfig, error) {
	path, preset, _ := settings()

	name := config.NamePlatformer
	if course {
		name = config.NameCourse
	}
	cfg, err := config.Load(name, path)
	if err != nil {
		return cfg, err
	}
	config.ApplyPlatformerPreset(&cfg, preset)
	return cfg, cfg.Validate()
}

func (g *Game) defaultConfig() config.PlatformerConfig {
	if g.course {
		return config.DefaultCourseConfig()
	}
	return config.DefaultPlatformerConfig()
}

// Step advances the game by one tick.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	switch g.engine.State() {
	case StateNotStarted:
		if in.Has(core.ActionJump) || in.Has(core.ActionConfirm) {
			g.engine.Start()
		}
		g.advance()
		return core.StepResult{State: g.State()}

	case StateGameOver, StateCleared:
		if in.Has(core.ActionRestart) {
			g.build(g.seeds.Int63())
			g.engine.Start()
		}
		g.advance()
		return core.StepResult{State: g.State()}
	}

	if in.Has(core.ActionPause) {
		g.paused = !g.paused
	}
	if g.paused {
		return core.StepResult{State: g.State()}
	}

	if in.Has(core.ActionJump) && g.engine.RequestJump() {
		g.recorder.Jump()
	}
	g.advance()

	return core.StepResult{State: g.State()}
}

// advance ticks the engine. Only running ticks are recorded, so the
// recorder stays in step with Engine.Ticks.
func (g *Game) advance() {
	running := g.engine.State() == StateRunning
	g.engine.Tick()
	if !running {
		return
	}
	g.recorder.Tick()
	if g.engine.State().Terminal() {
		g.finished = g.recorder.Finish(g.engine.Score(), g.engine.State().String())
	}
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	if g.engine == nil {
		return core.GameState{BestScore: g.best}
	}
	state := g.engine.State()
	return core.GameState{
		Score:     g.engine.Score(),
		BestScore: g.engine.BestScore(),
		GameOver:  state.Terminal(),
		Cleared:   state == StateCleared,
		Paused:    g.paused,
		NewBest:   g.engine.NewBest(),
	}
}

// Recording returns the replay of the last finished run, or nil while a run
// is still in progress.
func (g *Game) Recording() *replay.Recording {
	return g.finished
}

// Engine exposes the underlying engine.
func (g *Game) Engine() *Engine {
	return g.engine
}

// Register both variants with the registry
func init() {
	registry.Register(IDEndless, func() registry.Game {
		return New()
	})
	registry.Register(IDCourse, func() registry.Game {
		return NewCourse()
	})
}
