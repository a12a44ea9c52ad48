package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-platformer/internal/config"
	"github.com/vovakirdan/tui-platformer/internal/core"
	"github.com/vovakirdan/tui-platformer/internal/games/platformer"
	"github.com/vovakirdan/tui-platformer/internal/platform/tui"
	"github.com/vovakirdan/tui-platformer/internal/registry"
	"github.com/vovakirdan/tui-platformer/internal/storage"
)

var (
	flagConfig     string
	flagDifficulty string
	flagSpectate   string
	flagCourse     bool
)

var playCmd = &cobra.Command{
	Use:   "play [mode]",
	Short: "Play a game mode",
	Long: `Start a run in the given mode (default: platformer).

Controls:
  Space/Up/W - Start, jump, double jump
  P          - Pause
  Esc/B      - Leave (when paused or after the run)
  R          - Restart after game over or course clear
  Ctrl+S     - Save a text screenshot
  Q/Ctrl+C   - Quit

Difficulty options:
  easy   - Lower speed ramp, fewer obstacles
  normal - Default ramp
  hard   - Faster ramp start, denser obstacles
  fixed  - No speed ramp

Examples:
  platformer play
  platformer play --course
  platformer play --difficulty hard
  platformer play --config ./my-platformer.toml
  platformer play --spectate :8080`,
	Args: cobra.MaximumNArgs(1),
	Run:  runPlay,
}

func init() {
	for _, cmd := range []*cobra.Command{playCmd, menuCmd} {
		cmd.Flags().StringVar(&flagConfig, "config", "", "Path to custom config (YAML or TOML)")
		cmd.Flags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
		cmd.Flags().StringVar(&flagSpectate, "spectate", "", "Serve a websocket spectator stream on this address")
	}
	playCmd.Flags().BoolVar(&flagCourse, "course", false, "Play the fixed-length course")
}

func runPlay(_ *cobra.Command, args []string) {
	gameID := platformer.IDEndless
	if flagCourse {
		gameID = platformer.IDCourse
	}
	if len(args) > 0 {
		gameID = args[0]
	}

	if !registry.Exists(gameID) {
		fmt.Fprintf(os.Stderr, "Error: unknown mode %q\n", gameID)
		fmt.Fprintln(os.Stderr, "Run 'platformer list' to see available modes.")
		os.Exit(1)
	}

	applyGameSettings()
	checkConfig(gameID == platformer.IDCourse)

	stopSpectate := startSpectator(flagSpectate)
	defer stopSpectate()

	game, err := registry.Create(gameID)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating game: %v\n", err)
		os.Exit(1)
	}

	store := openStore()
	closeLog := logToFile()

	runErr := tui.Run(game, store, runtimeConfig())

	closeLog()
	if store != nil {
		store.Close()
	}
	if runErr != nil {
		fmt.Fprintf(os.Stderr, "Error running game: %v\n", runErr)
		os.Exit(1)
	}
}

func applyGameSettings() {
	platformer.SetConfigPath(flagConfig)
	platformer.SetDifficultyPreset(flagDifficulty)
}

// checkConfig reports config problems before the terminal switches to the
// alternate screen.
func checkConfig(course bool) {
	cfg, err := platformer.ResolveConfig(course)
	if err != nil {
		logger.Warn("config rejected, the built-in defaults will be used", "error", err)
		return
	}
	for _, w := range cfg.Warnings(platformer.MaxJumps) {
		logger.Warn("config", "warning", w)
	}
	if flagConfig != "" {
		logger.Info("using custom config", "path", flagConfig,
			"jump_reach", fmt.Sprintf("%.0f", cfg.JumpReach(platformer.MaxJumps)))
	}
}

func runtimeConfig() core.RuntimeConfig {
	cfg := core.DefaultConfig()
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		cfg.ScreenW, cfg.ScreenH = w, h
	}
	cfg.TickRate = flagFPS
	cfg.Seed = flagSeed
	return cfg
}

func openStore() *storage.Store {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		logger.Warn("could not open scores database, scores will not be saved", "error", err)
		return nil
	}
	return store
}

// logToFile redirects the logger to ~/.platformer/platformer.log while the
// TUI owns the terminal. The returned func restores stderr.
func logToFile() func() {
	home, err := os.UserHomeDir()
	if err != nil {
		return func() {}
	}
	dir := filepath.Join(home, ".platformer")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return func() {}
	}
	f, err := os.OpenFile(filepath.Join(dir, "platformer.log"), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600)
	if err != nil {
		return func() {}
	}
	logger.SetOutput(f)
	return func() {
		logger.SetOutput(os.Stderr)
		f.Close()
	}
}

func presetOrDefault() config.DifficultyPreset {
	return config.ParsePreset(flagDifficulty)
}
