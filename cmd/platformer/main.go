// platformer is a side-scrolling platformer for the terminal.
//
// Usage:
//
//	platformer list               - List game modes
//	platformer play [mode]        - Play a mode (default: platformer)
//	platformer menu               - Pick modes interactively
//	platformer serve              - Start SSH server for remote play
//	platformer scores <mode>      - Show high scores for a mode
//	platformer replay [id]        - List or verify recorded runs
//	platformer config dump [mode] - Print the effective config
//
// Global flags:
//
//	--fps <rate>    - Set tick rate (default: 60)
//	--seed <value>  - Set RNG seed for reproducible runs
//	--db <path>     - Set database path (default: ~/.platformer/scores.db)
//	--verbose       - Log engine transitions
package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-platformer/internal/games/platformer"
)

var (
	flagFPS     int
	flagSeed    int64
	flagDBPath  string
	flagVerbose bool
)

var logger = log.NewWithOptions(os.Stderr, log.Options{
	ReportTimestamp: true,
	Prefix:          "platformer",
})

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "platformer",
	Short: "A side-scrolling platformer in your terminal",
	Long: `Run, jump and double jump across procedurally generated terrain.

Two modes are available:
  platformer         - endless run, speed ramps up with your score
  platformer_course  - fixed-length course with a goal flag

Examples:
  platformer play
  platformer play --course
  platformer menu
  platformer serve --ssh :2222
  platformer replay 3`,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		if flagVerbose {
			logger.SetLevel(log.DebugLevel)
		}
		platformer.SetLogger(logger)
	},
}

func init() {
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.platformer/scores.db", "Path to scores database")
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "Enable debug logging")

	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(replayCmd)
	rootCmd.AddCommand(configCmd)
}
