package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pitchlab/go-pitch-metrics/internal/report"
	"github.com/pitchlab/go-pitch-metrics/internal/storage"
)

// playerCmd aggregates one or more players' counters across all stored matches.
var playerCmd = &cobra.Command{
	Use:   "player <name> [<name>...]",
	Short: "Cross-match analysis for one or more players",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runPlayer,
}

func runPlayer(cmd *cobra.Command, args []string) error {
	db, err := storage.Open(dbPath)
	if err != nil {
		return fmt.Errorf("open storage: %w", err)
	}
	defer db.Close()

	found := false
	for _, name := range args {
		agg, err := db.GetPlayerAggregate(name)
		if err != nil {
			return fmt.Errorf("query aggregate for %q: %w", name, err)
		}
		if agg == nil {
			fmt.Fprintf(os.Stderr, "No data found for player %q\n", name)
			continue
		}
		if !found {
			fmt.Fprintln(os.Stdout)
			found = true
		}
		report.PrintPlayerAggregate(os.Stdout, *agg)
	}
	return nil
}
