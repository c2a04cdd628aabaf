package cmd

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"sync"

	"github.com/panjf2000/ants/v2"
	"github.com/spf13/cobra"

	"github.com/pitchlab/go-pitch-metrics/internal/config"
	"github.com/pitchlab/go-pitch-metrics/internal/engine"
	"github.com/pitchlab/go-pitch-metrics/internal/event"
	"github.com/pitchlab/go-pitch-metrics/internal/logging"
	"github.com/pitchlab/go-pitch-metrics/internal/model"
	"github.com/pitchlab/go-pitch-metrics/internal/statsbomb"
	"github.com/pitchlab/go-pitch-metrics/internal/storage"
)

var (
	fetchWorkers int
	fetchCount   int
	fetchForce   bool
)

var fetchCmd = &cobra.Command{
	Use:   "fetch [<competition-id> <season-id>]",
	Short: "Fetch a season's matches from the open-data feed and store metrics",
	Long:  "Downloads every match of a season, computes metrics, and stores the results. With no arguments, lists the competitions and seasons available in the feed.",
	Args:  cobra.RangeArgs(0, 2),
	RunE:  runFetch,
}

func init() {
	fetchCmd.Flags().IntVar(&fetchWorkers, "workers", 0, "concurrent event downloads (defaults to FETCH_WORKERS)")
	fetchCmd.Flags().IntVar(&fetchCount, "count", 0, "ingest at most N new matches (0 = all)")
	fetchCmd.Flags().BoolVar(&fetchForce, "force", false, "recompute matches that are already stored")
}

func runFetch(cmd *cobra.Command, args []string) error {
	cfg, err := config.New()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	if len(args) == 0 {
		return listCompetitions(cmd.Context(), cfg)
	}
	if len(args) != 2 {
		return fmt.Errorf("expected <competition-id> <season-id>")
	}

	competitionID, err := strconv.Atoi(args[0])
	if err != nil {
		return fmt.Errorf("invalid competition id %q: %w", args[0], err)
	}
	seasonID, err := strconv.Atoi(args[1])
	if err != nil {
		return fmt.Errorf("invalid season id %q: %w", args[1], err)
	}

	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return fmt.Errorf("create db dir: %w", err)
	}
	db, err := storage.Open(dbPath)
	if err != nil {
		return fmt.Errorf("open storage: %w", err)
	}
	defer db.Close()

	return syncSeason(cmd.Context(), db, cfg, competitionID, seasonID, fetchForce)
}

// listCompetitions prints the competitions and seasons the feed exposes.
func listCompetitions(ctx context.Context, cfg *config.Config) error {
	client := statsbomb.NewClient(statsbomb.ClientConfig{
		BaseURL:    cfg.Provider.BaseURL,
		Timeout:    cfg.Provider.Timeout,
		MaxRetries: cfg.Provider.MaxRetries,
	})

	comps, err := client.Competitions(ctx)
	if err != nil {
		return fmt.Errorf("fetch competitions: %w", err)
	}

	fmt.Fprintf(os.Stdout, "%6s  %6s  %-32s  %-16s  %s\n", "COMP", "SEASON", "NAME", "COUNTRY", "SEASON_NAME")
	for _, c := range comps {
		fmt.Fprintf(os.Stdout, "%6d  %6d  %-32s  %-16s  %s\n",
			c.CompetitionID, c.SeasonID, c.CompetitionName, c.CountryName, c.SeasonName)
	}
	return nil
}

// syncSeason downloads every match of a season, computes metrics, and stores
// the results. Event payloads are fetched concurrently; database writes are
// serialized under a single lock.
func syncSeason(ctx context.Context, db *storage.DB, cfg *config.Config, competitionID, seasonID int, force bool) error {
	logger := logging.Default().With("competition_id", competitionID, "season_id", seasonID)

	client := statsbomb.NewClient(statsbomb.ClientConfig{
		BaseURL:    cfg.Provider.BaseURL,
		Timeout:    cfg.Provider.Timeout,
		MaxRetries: cfg.Provider.MaxRetries,
		Logger:     logger,
	})

	matches, err := client.Matches(ctx, competitionID, seasonID)
	if err != nil {
		return fmt.Errorf("fetch match index: %w", err)
	}
	logger.Info("fetched match index", "matches", len(matches))

	workers := fetchWorkers
	if workers <= 0 {
		workers = cfg.Fetch.Workers
	}
	if workers <= 0 {
		workers = 1
	}

	pool, err := ants.NewPool(workers)
	if err != nil {
		return fmt.Errorf("create worker pool: %w", err)
	}
	defer pool.Release()

	var (
		wg        sync.WaitGroup
		dbMu      sync.Mutex
		processed int
		skipped   int
		failed    int
		submitted int
	)

	for _, m := range matches {
		if fetchCount > 0 && submitted >= fetchCount {
			break
		}
		m := m
		matchID := strconv.Itoa(m.MatchID)

		if !force {
			exists, err := db.MatchExists(matchID)
			if err != nil {
				return fmt.Errorf("check match %s: %w", matchID, err)
			}
			if exists {
				skipped++
				continue
			}
		}

		submitted++
		wg.Add(1)
		if err := pool.Submit(func() {
			defer wg.Done()

			payload, err := matchEvents(ctx, db, &dbMu, client, matchID, m.MatchID)
			if err != nil {
				logger.Warn("fetch match events failed", "match_id", matchID, "error", err)
				dbMu.Lock()
				failed++
				dbMu.Unlock()
				return
			}

			events, home, away, err := event.Normalize(payload)
			if err != nil {
				logger.Warn("normalize failed", "match_id", matchID, "error", err)
				dbMu.Lock()
				failed++
				dbMu.Unlock()
				return
			}
			if home == "" {
				home = m.HomeTeam.TeamName()
			}
			if away == "" {
				away = m.AwayTeam.TeamName()
			}

			stats := engine.Compute(events, home, away)
			stats.MatchID = matchID

			summary := model.MatchSummary{
				MatchID:   matchID,
				MatchDate: m.MatchDate,
				HomeTeam:  home,
				AwayTeam:  away,
				HomeScore: m.HomeScore,
				AwayScore: m.AwayScore,
				Source:    "statsbomb",
			}

			dbMu.Lock()
			defer dbMu.Unlock()
			if err := db.UpsertMatch(summary); err != nil {
				logger.Warn("store match failed", "match_id", matchID, "error", err)
				failed++
				return
			}
			if err := db.UpsertMatchStats(stats); err != nil {
				logger.Warn("store stats failed", "match_id", matchID, "error", err)
				failed++
				return
			}
			processed++
			logger.Debug("match stored", "match_id", matchID, "home", home, "away", away)
		}); err != nil {
			wg.Done()
			return fmt.Errorf("submit fetch task: %w", err)
		}
	}

	wg.Wait()
	logger.Info("season sync complete", "processed", processed, "skipped", skipped, "failed", failed)
	if failed > 0 {
		return fmt.Errorf("%d of %d matches failed", failed, len(matches))
	}
	return nil
}

// matchEvents returns a match's raw event payload, serving from the local
// cache when present and caching fresh downloads.
func matchEvents(ctx context.Context, db *storage.DB, dbMu *sync.Mutex, client *statsbomb.Client, matchID string, providerID int) ([]byte, error) {
	dbMu.Lock()
	cached, err := db.GetRawEvents(matchID)
	dbMu.Unlock()
	if err != nil {
		return nil, err
	}
	if cached != nil {
		return cached, nil
	}

	payload, err := client.Events(ctx, providerID)
	if err != nil {
		return nil, err
	}

	dbMu.Lock()
	err = db.PutRawEvents(matchID, payload)
	dbMu.Unlock()
	if err != nil {
		return nil, err
	}
	return payload, nil
}
