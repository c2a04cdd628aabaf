package cmd

import (
	"crypto/sha256"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
	"github.com/spf13/cobra"

	"github.com/pitchlab/go-pitch-metrics/internal/engine"
	"github.com/pitchlab/go-pitch-metrics/internal/event"
	"github.com/pitchlab/go-pitch-metrics/internal/model"
	"github.com/pitchlab/go-pitch-metrics/internal/report"
	"github.com/pitchlab/go-pitch-metrics/internal/storage"
)

var (
	analyzeMatchID string
	analyzeDate    string
	analyzeHome    string
	analyzeAway    string
	analyzeFocus   string
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze <events.json[.gz|.zst]>",
	Short: "Analyze a match event file and store metrics",
	Args:  cobra.ExactArgs(1),
	RunE:  runAnalyze,
}

func init() {
	analyzeCmd.Flags().StringVar(&analyzeMatchID, "match-id", "", "match id (defaults to the payload digest)")
	analyzeCmd.Flags().StringVar(&analyzeDate, "date", "", "match date label")
	analyzeCmd.Flags().StringVar(&analyzeHome, "home", "", "override home team name")
	analyzeCmd.Flags().StringVar(&analyzeAway, "away", "", "override away team name")
	analyzeCmd.Flags().StringVar(&analyzeFocus, "player", "", "highlight player by name")
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	eventsPath := args[0]

	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return fmt.Errorf("create db dir: %w", err)
	}

	db, err := storage.Open(dbPath)
	if err != nil {
		return fmt.Errorf("open storage: %w", err)
	}
	defer db.Close()

	payload, err := readEventFile(eventsPath)
	if err != nil {
		return fmt.Errorf("read events: %w", err)
	}

	matchID := analyzeMatchID
	if matchID == "" {
		matchID = fmt.Sprintf("%x", sha256.Sum256(payload))
	}

	exists, err := db.MatchExists(matchID)
	if err != nil {
		return fmt.Errorf("check match: %w", err)
	}
	if exists {
		fmt.Fprintf(os.Stdout, "Match %s already stored — showing cached results.\n\n", shortID(matchID))
		return showByID(db, matchID, analyzeFocus)
	}

	events, home, away, err := event.Normalize(payload)
	if err != nil {
		return fmt.Errorf("normalize events: %w", err)
	}
	if analyzeHome != "" {
		home = analyzeHome
	}
	if analyzeAway != "" {
		away = analyzeAway
	}

	stats := engine.Compute(events, home, away)
	stats.MatchID = matchID

	summary := model.MatchSummary{
		MatchID:   matchID,
		MatchDate: analyzeDate,
		HomeTeam:  home,
		AwayTeam:  away,
		Source:    "file",
	}
	summary.HomeScore, summary.AwayScore = goalsByTeam(stats, home, away)

	if err := db.UpsertMatch(summary); err != nil {
		return fmt.Errorf("insert match: %w", err)
	}
	if err := db.UpsertMatchStats(stats); err != nil {
		return fmt.Errorf("insert stats: %w", err)
	}
	if err := db.PutRawEvents(matchID, payload); err != nil {
		return fmt.Errorf("cache events: %w", err)
	}

	printMatch(summary, stats, analyzeFocus)
	return nil
}

// readEventFile reads an event payload, transparently decompressing
// .gz and .zst files.
func readEventFile(path string) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	switch {
	case strings.HasSuffix(path, ".gz"):
		zr, err := gzip.NewReader(f)
		if err != nil {
			return nil, fmt.Errorf("open gzip stream: %w", err)
		}
		defer zr.Close()
		return io.ReadAll(zr)
	case strings.HasSuffix(path, ".zst"):
		zr, err := zstd.NewReader(f)
		if err != nil {
			return nil, fmt.Errorf("open zstd stream: %w", err)
		}
		defer zr.Close()
		return io.ReadAll(zr.IOReadCloser())
	default:
		return io.ReadAll(f)
	}
}

func goalsByTeam(stats *model.MatchStats, home, away string) (homeGoals, awayGoals int) {
	for _, p := range stats.Players {
		switch p.Team {
		case home:
			homeGoals += p.Goals
		case away:
			awayGoals += p.Goals
		}
	}
	return
}

func printMatch(summary model.MatchSummary, stats *model.MatchStats, focus string) {
	players := make([]model.PlayerMatchStats, 0, len(stats.Players))
	for _, p := range stats.Players {
		players = append(players, *p)
	}
	sortPlayers(players)

	teams := make([]model.TeamMatchStats, 0, len(stats.Teams))
	for _, t := range stats.Teams {
		teams = append(teams, *t)
	}
	sortTeams(teams)

	report.PrintMatchSummary(os.Stdout, summary)
	report.PrintPassingTable(os.Stdout, players, focus)
	report.PrintAttackingTable(os.Stdout, players, focus)
	report.PrintDefendingTable(os.Stdout, players, focus)
	report.PrintKeeperTable(os.Stdout, players)
	report.PrintTeamTable(os.Stdout, teams)
}

func showByID(db *storage.DB, matchID, focus string) error {
	match, err := db.GetMatchByPrefix(matchID)
	if err != nil || match == nil {
		return fmt.Errorf("match not found: %s", matchID)
	}
	players, err := db.GetPlayerStats(match.MatchID)
	if err != nil {
		return fmt.Errorf("get player stats: %w", err)
	}
	teams, err := db.GetTeamStats(match.MatchID)
	if err != nil {
		return fmt.Errorf("get team stats: %w", err)
	}
	report.PrintMatchSummary(os.Stdout, *match)
	report.PrintPassingTable(os.Stdout, players, focus)
	report.PrintAttackingTable(os.Stdout, players, focus)
	report.PrintDefendingTable(os.Stdout, players, focus)
	report.PrintKeeperTable(os.Stdout, players)
	report.PrintTeamTable(os.Stdout, teams)
	return nil
}

func shortID(id string) string {
	if len(id) > 12 {
		return id[:12]
	}
	return id
}
