package main

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/star-collider/internal/platform/tui"
	"github.com/vovakirdan/star-collider/internal/storage"
)

var (
	flagScoresTUI    bool
	flagScoresRecent bool
	flagScoresLimit  int
	flagScoresClear  bool
)

var scoresCmd = &cobra.Command{
	Use:   "scores",
	Short: "Show the best runs",
	Long: `Display the best winning runs and overall statistics.

Examples:
  starcollider scores
  starcollider scores --recent --limit 20
  starcollider scores --tui
  starcollider scores --clear`,
	RunE: runScores,
}

func init() {
	scoresCmd.Flags().BoolVar(&flagScoresTUI, "tui", false, "Browse scores interactively")
	scoresCmd.Flags().BoolVar(&flagScoresRecent, "recent", false, "Show the most recent runs instead of the best wins")
	scoresCmd.Flags().IntVar(&flagScoresLimit, "limit", 10, "Number of runs to show")
	scoresCmd.Flags().BoolVar(&flagScoresClear, "clear", false, "Delete every stored run")
}

func runScores(cmd *cobra.Command, args []string) error {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		return fmt.Errorf("cannot open scores database: %w", err)
	}
	defer store.Close()

	switch {
	case flagScoresClear:
		if err := store.ClearRuns(); err != nil {
			return err
		}
		fmt.Println("All runs deleted.")
		return nil
	case flagScoresTUI:
		w, h := terminalSize()
		_, err := tui.RunScoreboard(store, w, h)
		return err
	}

	var runs []storage.Run
	if flagScoresRecent {
		runs, err = store.RecentRuns(flagScoresLimit)
	} else {
		runs, err = store.TopScores(flagScoresLimit)
	}
	if err != nil {
		return err
	}
	stats, err := store.Stats()
	if err != nil {
		return err
	}
	writeScores(os.Stdout, runs, stats, flagScoresRecent)
	return nil
}

// writeScores prints runs as a table followed by the totals.
func writeScores(w io.Writer, runs []storage.Run, stats *storage.Stats, recent bool) {
	if recent {
		fmt.Fprintln(w, "Recent Runs - Star Collider")
	} else {
		fmt.Fprintln(w, "High Scores - Star Collider")
	}
	fmt.Fprintln(w)

	if len(runs) == 0 {
		if recent {
			fmt.Fprintln(w, "No runs recorded yet.")
		} else {
			fmt.Fprintln(w, "No wins recorded yet.")
		}
		fmt.Fprintln(w)
		fmt.Fprintln(w, "Play 'starcollider play' to set the first high score!")
		return
	}

	fmt.Fprintf(w, "  %-4s  %-7s  %-8s  %-5s  %-10s  %-9s  %s\n", "Rank", "Score", "Time", "Stage", "Player", "Result", "Date")
	fmt.Fprintf(w, "  %-4s  %-7s  %-8s  %-5s  %-10s  %-9s  %s\n", "----", "-----", "----", "-----", "------", "------", "----")
	for i, r := range runs {
		result := string(r.Outcome)
		if r.LoseReason != "" {
			result += " (" + r.LoseReason + ")"
		}
		player := r.Player
		if player == "" {
			player = "-"
		}
		fmt.Fprintf(w, "  %-4d  %-7d  %-8s  %-5d  %-10s  %-9s  %s\n",
			i+1, r.Score, formatMillis(r.ElapsedMillis), r.Stage, player, result,
			r.CreatedAt.Local().Format("2006-01-02 15:04"))
	}

	if stats == nil {
		return
	}
	fmt.Fprintln(w)
	fmt.Fprintf(w, "Best: %d   Runs: %d (wins %d, losses %d, quits %d)\n",
		stats.HighScore, stats.Runs, stats.Wins, stats.Losses, stats.Quits)
	if stats.FastestWin > 0 {
		fmt.Fprintf(w, "Fastest win: %s\n", formatMillis(stats.FastestWin.Milliseconds()))
	}
	if !stats.LastPlayed.IsZero() {
		fmt.Fprintf(w, "Last played: %s\n", stats.LastPlayed.Local().Format(time.DateTime))
	}
}

// formatMillis renders milliseconds as m:ss.s.
func formatMillis(ms int64) string {
	return fmt.Sprintf("%d:%04.1f", ms/60_000, float64(ms%60_000)/1000)
}
