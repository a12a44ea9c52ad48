package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-platformer/internal/games/platformer"
	"github.com/vovakirdan/tui-platformer/internal/replay"
	"github.com/vovakirdan/tui-platformer/internal/storage"
)

var (
	flagReplayMode   string
	flagReplayLimit  int
	flagReplayJSON   bool
	flagReplayExport string
	flagReplayFile   string
)

var replayCmd = &cobra.Command{
	Use:   "replay [id]",
	Short: "List or verify recorded runs",
	Long: `Without an ID, list the most recent recorded runs.

With an ID, re-simulate the run from its seed, config and jump inputs and
check that it ends with the recorded score and state.

Examples:
  platformer replay
  platformer replay --mode platformer_course
  platformer replay 12
  platformer replay 12 --json
  platformer replay 12 --export run12.msgpack
  platformer replay --file run12.msgpack`,
	Args: cobra.MaximumNArgs(1),
	Run:  runReplay,
}

func init() {
	replayCmd.Flags().StringVar(&flagReplayMode, "mode", "", "Only list replays for this mode")
	replayCmd.Flags().IntVarP(&flagReplayLimit, "limit", "n", 10, "Number of replays to list")
	replayCmd.Flags().BoolVar(&flagReplayJSON, "json", false, "Print the final snapshot as JSON")
	replayCmd.Flags().StringVar(&flagReplayExport, "export", "", "Write the encoded recording to a file")
	replayCmd.Flags().StringVar(&flagReplayFile, "file", "", "Verify a recording file instead of a stored replay")
}

func runReplay(_ *cobra.Command, args []string) {
	if flagReplayFile != "" {
		data, err := os.ReadFile(flagReplayFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error reading replay file: %v\n", err)
			os.Exit(1)
		}
		verifyReplay(flagReplayFile, data)
		return
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening scores database: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	if len(args) == 0 {
		listReplays(store)
		return
	}

	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: invalid replay id %q\n", args[0])
		os.Exit(1)
	}

	entry, err := store.Replay(id)
	if errors.Is(err, storage.ErrNotFound) {
		fmt.Fprintf(os.Stderr, "Error: no replay with id %d\n", id)
		fmt.Fprintln(os.Stderr, "Run 'platformer replay' to list recorded runs.")
		os.Exit(1)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading replay: %v\n", err)
		os.Exit(1)
	}

	if flagReplayExport != "" {
		if err := os.WriteFile(flagReplayExport, entry.Data, 0o644); err != nil {
			fmt.Fprintf(os.Stderr, "Error writing replay: %v\n", err)
			os.Exit(1)
		}
		logger.Info("replay exported", "id", id, "path", flagReplayExport, "bytes", len(entry.Data))
	}

	verifyReplay(fmt.Sprintf("#%d", id), entry.Data)
}

func listReplays(store *storage.Store) {
	entries, err := store.RecentReplays(flagReplayMode, flagReplayLimit)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error listing replays: %v\n", err)
		os.Exit(1)
	}
	if len(entries) == 0 {
		fmt.Println("No replays recorded yet.")
		return
	}

	fmt.Printf("  %-6s  %-18s  %-8s  %-20s  %s\n", "ID", "Mode", "Score", "Seed", "Date")
	fmt.Printf("  %-6s  %-18s  %-8s  %-20s  %s\n", "--", "----", "-----", "----", "----")
	for _, e := range entries {
		fmt.Printf("  %-6d  %-18s  %-8d  %-20d  %s\n",
			e.ID, e.GameID, e.Score, e.Seed, e.CreatedAt.Format("2006-01-02 15:04"))
	}
}

func verifyReplay(name string, data []byte) {
	rec, err := replay.Unmarshal(data)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error decoding replay %s: %v\n", name, err)
		os.Exit(1)
	}

	snap, err := platformer.Verify(rec)
	if err != nil {
		logger.Error("replay verification failed", "replay", name, "error", err)
		os.Exit(1)
	}

	if flagReplayJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(snap); err != nil {
			fmt.Fprintf(os.Stderr, "Error encoding snapshot: %v\n", err)
			os.Exit(1)
		}
		return
	}

	fmt.Printf("Replay %s (%s, seed %d)\n", name, rec.GameID, rec.Seed)
	fmt.Printf("  Ticks:  %d\n", snap.Tick)
	fmt.Printf("  Jumps:  %d\n", len(rec.Jumps))
	fmt.Printf("  Result: %s\n", snap.State)
	fmt.Printf("  Score:  %d (verified)\n", snap.Score)
}
