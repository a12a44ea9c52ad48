package main

import (
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-platformer/internal/registry"
	"github.com/vovakirdan/tui-platformer/internal/storage"
)

var (
	flagScoresLimit int
	flagScoresClear bool
)

var scoresCmd = &cobra.Command{
	Use:   "scores [mode]",
	Short: "Show high scores for a mode, or a summary of all modes",
	Long: `Display the top scores for the given mode, with the replay ID of each run.
Without a mode, print run statistics for every mode that has been played.

Examples:
  platformer scores
  platformer scores platformer
  platformer scores platformer_course --limit 20
  platformer scores platformer --limit 0
  platformer scores platformer --clear`,
	Args: cobra.MaximumNArgs(1),
	Run:  runScores,
}

func init() {
	scoresCmd.Flags().IntVarP(&flagScoresLimit, "limit", "n", 10, "Number of scores to show (0 shows all)")
	scoresCmd.Flags().BoolVar(&flagScoresClear, "clear", false, "Delete all scores and replays for the mode")
}

func runScores(_ *cobra.Command, args []string) {
	var info registry.GameInfo
	if len(args) > 0 {
		var ok bool
		info, ok = registry.Info(args[0])
		if !ok {
			fmt.Fprintf(os.Stderr, "Error: unknown mode %q\n", args[0])
			fmt.Fprintln(os.Stderr, "Run 'platformer list' to see available modes.")
			os.Exit(1)
		}
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening scores database: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	switch {
	case info.ID == "":
		err = printSummary(os.Stdout, store)
	case flagScoresClear:
		if err = store.ClearScores(info.ID); err == nil {
			fmt.Printf("Cleared all scores for %s\n", info.Title)
		}
	default:
		err = printScores(os.Stdout, store, info, flagScoresLimit)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// printSummary writes one stats line per played mode, sorted by mode ID.
func printSummary(w io.Writer, store *storage.Store) error {
	stats, err := store.GetAllGamesStats()
	if err != nil {
		return err
	}
	if len(stats) == 0 {
		fmt.Fprintln(w, "No runs recorded yet.")
		return nil
	}

	ids := make([]string, 0, len(stats))
	for id := range stats {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	fmt.Fprintf(w, "  %-20s  %-6s  %-6s  %-8s  %-8s  %s\n", "Mode", "Runs", "Clears", "Best", "Average", "Last played")
	fmt.Fprintf(w, "  %-20s  %-6s  %-6s  %-8s  %-8s  %s\n", "----", "----", "------", "----", "-------", "-----------")
	for _, id := range ids {
		gs := stats[id]
		fmt.Fprintf(w, "  %-20s  %-6d  %-6d  %-8d  %-8.0f  %s\n",
			id, gs.GamesCount, gs.Clears, gs.HighScore, gs.AvgScore, gs.LastPlayed.Format("2006-01-02 15:04"))
	}
	return nil
}

// printScores writes the score table for one mode. A limit of 0 or less lists every run.
func printScores(w io.Writer, store *storage.Store, info registry.GameInfo, limit int) error {
	var (
		scores []storage.ScoreEntry
		err    error
	)
	if limit > 0 {
		scores, err = store.TopScores(info.ID, limit)
	} else {
		scores, err = store.AllScores(info.ID)
	}
	if err != nil {
		return err
	}

	fmt.Fprintf(w, "High Scores - %s\n", info.Title)
	fmt.Fprintln(w)

	if len(scores) == 0 {
		fmt.Fprintln(w, "No scores recorded yet.")
		fmt.Fprintln(w)
		fmt.Fprintf(w, "Play 'platformer play %s' to set the first high score!\n", info.ID)
		return nil
	}

	fmt.Fprintf(w, "  %-4s  %-8s  %-8s  %-6s  %s\n", "Rank", "Score", "Result", "Replay", "Date")
	fmt.Fprintf(w, "  %-4s  %-8s  %-8s  %-6s  %s\n", "----", "-----", "------", "------", "----")
	for i, entry := range scores {
		result := "fell"
		if entry.Cleared {
			result = "cleared"
		}
		replayID := "-"
		if entry.ReplayID != 0 {
			replayID = fmt.Sprintf("%d", entry.ReplayID)
		}
		fmt.Fprintf(w, "  %-4d  %-8d  %-8s  %-6s  %s\n",
			i+1, entry.Score, result, replayID, entry.CreatedAt.Format("2006-01-02 15:04"))
	}

	if stats, err := store.GetGameStats(info.ID); err == nil {
		fmt.Fprintln(w)
		fmt.Fprintf(w, "Runs: %d  Clears: %d  Best: %d  Average: %.0f\n",
			stats.GamesCount, stats.Clears, stats.HighScore, stats.AvgScore)
	}
	return nil
}
