package tui

import (
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-platformer/internal/config"
	"github.com/vovakirdan/tui-platformer/internal/core"
	"github.com/vovakirdan/tui-platformer/internal/replay"
	"github.com/vovakirdan/tui-platformer/internal/storage"
)

// scriptedGame ends its run after endAt ticks with the given score.
type scriptedGame struct {
	endAt   int
	score   int
	cleared bool

	ticks    int
	resets   int
	best     int
	paused   bool
	restarts int
	jumps    []uint64
}

func (g *scriptedGame) ID() string    { return "scripted" }
func (g *scriptedGame) Title() string { return "Scripted" }

func (g *scriptedGame) Reset(core.RuntimeConfig) {
	g.resets++
	g.ticks = 0
}

func (g *scriptedGame) Step(in core.InputFrame) core.StepResult {
	if g.over() {
		if in.Has(core.ActionRestart) {
			g.restarts++
			g.ticks = 0
		}
		return core.StepResult{State: g.State()}
	}
	if in.Has(core.ActionPause) {
		g.paused = !g.paused
	}
	if g.paused {
		return core.StepResult{State: g.State()}
	}
	if in.Has(core.ActionJump) {
		g.jumps = append(g.jumps, uint64(g.ticks))
	}
	g.ticks++
	return core.StepResult{State: g.State()}
}

func (g *scriptedGame) over() bool { return g.ticks >= g.endAt }

func (g *scriptedGame) Render(dst *core.Screen) {
	dst.Clear()
	dst.DrawTextColored(0, 0, "SCRIPTED", core.ColorGreen)
}

func (g *scriptedGame) State() core.GameState {
	return core.GameState{
		Score:     g.score,
		BestScore: g.best,
		GameOver:  g.over(),
		Cleared:   g.over() && g.cleared,
		Paused:    g.paused,
	}
}

func (g *scriptedGame) SeedBestScore(best int) { g.best = best }

func (g *scriptedGame) Recording() *replay.Recording {
	if !g.over() {
		return nil
	}
	return &replay.Recording{
		Version: replay.Version,
		GameID:  g.ID(),
		Seed:    7,
		Config:  config.DefaultPlatformerConfig(),
		Jumps:   g.jumps,
		Ticks:   uint64(g.ticks),
		Score:   g.score,
		State:   "game_over",
	}
}

func openStore(t *testing.T) *storage.Store {
	t.Helper()
	store, err := storage.Open(filepath.Join(t.TempDir(), "scores.db"))
	if err != nil {
		t.Fatalf("storage.Open() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func testConfig() core.RuntimeConfig {
	return core.RuntimeConfig{ScreenW: 40, ScreenH: 10, TickRate: 60, Seed: 1}
}

func tick(t *testing.T, m GameModel) GameModel {
	t.Helper()
	next, _ := m.Update(TickMsg{ID: m.loopID})
	gm, ok := next.(GameModel)
	if !ok {
		t.Fatalf("Update returned %T", next)
	}
	return gm
}

func press(t *testing.T, m GameModel, msg tea.KeyMsg) (GameModel, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	gm, ok := next.(GameModel)
	if !ok {
		t.Fatalf("Update returned %T", next)
	}
	return gm, cmd
}

func TestGameModelSavesRunWithReplay(t *testing.T) {
	store := openStore(t)
	game := &scriptedGame{endAt: 3, score: 42, cleared: true}

	m := NewGameModel(game, store, testConfig())
	m.Init()

	m, _ = press(t, m, runeKey(' '))
	for i := 0; i < 5; i++ {
		m = tick(t, m)
	}

	if !m.State().GameOver {
		t.Fatal("run should be over")
	}
	if m.LastSavedRun() == 0 {
		t.Fatal("finished run should be saved")
	}

	scores, err := store.TopScores("scripted", 10)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}
	if len(scores) != 1 {
		t.Fatalf("expected exactly one saved run, got %d", len(scores))
	}
	if scores[0].Score != 42 || !scores[0].Cleared || scores[0].ReplayID == 0 {
		t.Errorf("unexpected saved run: %+v", scores[0])
	}

	entry, err := store.Replay(scores[0].ReplayID)
	if err != nil {
		t.Fatalf("Replay() failed: %v", err)
	}
	rec, err := replay.Unmarshal(entry.Data)
	if err != nil {
		t.Fatalf("replay.Unmarshal() failed: %v", err)
	}
	if rec.Seed != 7 || len(rec.Jumps) != 1 || rec.Jumps[0] != 0 {
		t.Errorf("unexpected recording: seed=%d jumps=%v", rec.Seed, rec.Jumps)
	}
}

func TestGameModelSavesAgainAfterRestart(t *testing.T) {
	store := openStore(t)
	game := &scriptedGame{endAt: 2, score: 10}

	m := NewGameModel(game, store, testConfig())
	m.Init()
	for i := 0; i < 4; i++ {
		m = tick(t, m)
	}

	m, _ = press(t, m, runeKey('r'))
	for i := 0; i < 4; i++ {
		m = tick(t, m)
	}

	if game.restarts != 1 {
		t.Errorf("restarts = %d, want 1", game.restarts)
	}
	scores, _ := store.AllScores("scripted")
	if len(scores) != 2 {
		t.Errorf("expected 2 saved runs, got %d", len(scores))
	}
}

func TestGameModelSeedsBestScore(t *testing.T) {
	store := openStore(t)
	store.SaveRun(storage.Run{GameID: "scripted", Score: 300})

	game := &scriptedGame{endAt: 100}
	m := NewGameModel(game, store, testConfig())
	m.Init()

	if game.best != 300 {
		t.Errorf("best = %d, want 300", game.best)
	}
}

func TestGameModelWithoutStore(t *testing.T) {
	game := &scriptedGame{endAt: 1, score: 5}
	m := NewGameModel(game, nil, testConfig())
	m.Init()
	m = tick(t, m)
	m = tick(t, m)

	if !m.State().GameOver || m.LastSavedRun() != 0 {
		t.Errorf("state=%+v saved=%d", m.State(), m.LastSavedRun())
	}
}

func TestGameModelIgnoresStaleTicks(t *testing.T) {
	game := &scriptedGame{endAt: 100}
	m := NewGameModel(game, nil, testConfig())
	m.Init()

	next, cmd := m.Update(TickMsg{ID: m.loopID + 1000})
	if cmd != nil {
		t.Error("stale tick should not schedule another tick")
	}
	if next.(GameModel).gameState.Score != 0 || game.ticks != 0 {
		t.Error("stale tick should not step the game")
	}
}

func TestGameModelBackOnlyWhenPausedOrOver(t *testing.T) {
	game := &scriptedGame{endAt: 100}
	m := NewGameModel(game, nil, testConfig())
	m.Init()
	m = tick(t, m)

	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	if m.BackToMenu() {
		t.Fatal("back should be ignored while running")
	}
	m = tick(t, m)

	m, _ = press(t, m, runeKey('p'))
	m = tick(t, m)
	if !m.State().Paused {
		t.Fatal("game should be paused")
	}

	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	if !m.BackToMenu() {
		t.Error("back should leave a paused game")
	}
}

func TestGameModelQuit(t *testing.T) {
	m := NewGameModel(&scriptedGame{endAt: 100}, nil, testConfig())
	m.Init()

	m, cmd := press(t, m, runeKey('q'))
	if !m.IsQuitting() || cmd == nil {
		t.Error("q should quit")
	}
	if m.View() != "" {
		t.Error("quitting model should render nothing")
	}
}

func TestGameModelView(t *testing.T) {
	m := NewGameModel(&scriptedGame{endAt: 100}, nil, testConfig())
	m.Init()

	if view := m.View(); !strings.Contains(view, "SCRIPTED") {
		t.Errorf("view should contain the rendered frame, got %q", view)
	}
}

func TestRenderScreenPlainCells(t *testing.T) {
	s := core.NewScreen(5, 2)
	s.DrawText(0, 0, "hello")

	out := RenderScreen(s)
	lines := strings.Split(out, "\n")
	if len(lines) != 2 || lines[0] != "hello" {
		t.Errorf("RenderScreen() = %q", out)
	}
}
