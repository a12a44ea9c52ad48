package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-platformer/internal/config"
	"github.com/vovakirdan/tui-platformer/internal/games/platformer"
)

var flagConfigFormat string

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Inspect game configuration",
}

var configDumpCmd = &cobra.Command{
	Use:   "dump [mode]",
	Short: "Print the effective config for a mode",
	Long: `Print the config a run would use, after the config file search and the
difficulty preset. The output can be saved to ~/.platformer/configs/ and edited.

Examples:
  platformer config dump
  platformer config dump platformer_course --format toml
  platformer config dump --difficulty hard > ~/.platformer/configs/platformer.yaml`,
	Args: cobra.MaximumNArgs(1),
	Run:  runConfigDump,
}

var configCheckCmd = &cobra.Command{
	Use:   "check [mode]",
	Short: "Validate a config and report reachability warnings",
	Args:  cobra.MaximumNArgs(1),
	Run:   runConfigCheck,
}

func init() {
	for _, cmd := range []*cobra.Command{configDumpCmd, configCheckCmd} {
		cmd.Flags().StringVar(&flagConfig, "config", "", "Path to custom config (YAML or TOML)")
		cmd.Flags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
	}
	configDumpCmd.Flags().StringVarP(&flagConfigFormat, "format", "f", "yaml", "Output format: yaml or toml")

	configCmd.AddCommand(configDumpCmd)
	configCmd.AddCommand(configCheckCmd)
}

func isCourse(args []string) bool {
	return len(args) > 0 && args[0] == platformer.IDCourse
}

func runConfigDump(_ *cobra.Command, args []string) {
	applyGameSettings()

	cfg, err := platformer.ResolveConfig(isCourse(args))
	if err != nil {
		logger.Warn("config is not valid", "error", err)
	}
	if err := config.Encode(os.Stdout, cfg, flagConfigFormat); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func runConfigCheck(_ *cobra.Command, args []string) {
	applyGameSettings()

	cfg, err := platformer.ResolveConfig(isCourse(args))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Invalid config: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Config OK (preset %q)\n", presetOrDefault())
	fmt.Printf("  Airtime:   %d ticks\n", cfg.JumpAirtime(platformer.MaxJumps))
	fmt.Printf("  Reach:     %.0f units at base speed\n", cfg.JumpReach(platformer.MaxJumps))
	fmt.Printf("  Max gap:   %.0f units\n", cfg.Generator.MaxGap)

	warnings := cfg.Warnings(platformer.MaxJumps)
	if len(warnings) == 0 {
		return
	}
	fmt.Println()
	for _, w := range warnings {
		fmt.Printf("  warning: %s\n", w)
	}
}
