package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pitchlab/go-pitch-metrics/internal/storage"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List all stored matches",
	Args:  cobra.NoArgs,
	RunE:  runList,
}

func runList(cmd *cobra.Command, args []string) error {
	db, err := storage.Open(dbPath)
	if err != nil {
		return fmt.Errorf("open storage: %w", err)
	}
	defer db.Close()

	matches, err := db.ListMatches()
	if err != nil {
		return fmt.Errorf("list matches: %w", err)
	}
	if len(matches) == 0 {
		fmt.Fprintln(os.Stdout, "No matches stored yet. Run 'pitchmetrics analyze <events.json>' or 'pitchmetrics fetch' to add one.")
		return nil
	}

	fmt.Fprintf(os.Stdout, "%-14s  %-10s  %-24s  %-24s  %5s  %s\n",
		"ID", "DATE", "HOME", "AWAY", "SCORE", "SOURCE")
	fmt.Fprintf(os.Stdout, "%-14s  %-10s  %-24s  %-24s  %5s  %s\n",
		"──────────────", "──────────", "────────────────────────", "────────────────────────", "─────", "──────")
	for _, m := range matches {
		score := fmt.Sprintf("%d-%d", m.HomeScore, m.AwayScore)
		fmt.Fprintf(os.Stdout, "%-14s  %-10s  %-24s  %-24s  %5s  %s\n",
			shortID(m.MatchID), m.MatchDate, m.HomeTeam, m.AwayTeam, score, m.Source)
	}
	return nil
}
