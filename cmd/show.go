package cmd

import (
	"fmt"
	"os"
	"sort"

	"github.com/spf13/cobra"

	"github.com/pitchlab/go-pitch-metrics/internal/model"
	"github.com/pitchlab/go-pitch-metrics/internal/storage"
)

var showFocus string

var showCmd = &cobra.Command{
	Use:   "show <match-id-prefix>",
	Short: "Show stored match stats by id prefix",
	Args:  cobra.ExactArgs(1),
	RunE:  runShow,
}

func init() {
	showCmd.Flags().StringVar(&showFocus, "player", "", "highlight player by name")
}

func runShow(cmd *cobra.Command, args []string) error {
	prefix := args[0]

	db, err := storage.Open(dbPath)
	if err != nil {
		return fmt.Errorf("open storage: %w", err)
	}
	defer db.Close()

	match, err := db.GetMatchByPrefix(prefix)
	if err != nil {
		return fmt.Errorf("query match: %w", err)
	}
	if match == nil {
		fmt.Fprintf(os.Stderr, "No match found with id prefix %q\n", prefix)
		return nil
	}

	return showByID(db, match.MatchID, showFocus)
}

func sortPlayers(players []model.PlayerMatchStats) {
	sort.Slice(players, func(i, j int) bool {
		if players[i].Team != players[j].Team {
			return players[i].Team < players[j].Team
		}
		return players[i].Name < players[j].Name
	})
}

func sortTeams(teams []model.TeamMatchStats) {
	sort.Slice(teams, func(i, j int) bool {
		return teams[i].Name < teams[j].Name
	})
}
