package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/pitchlab/go-pitch-metrics/internal/config"
	"github.com/pitchlab/go-pitch-metrics/internal/logging"
	"github.com/pitchlab/go-pitch-metrics/internal/scheduler"
	"github.com/pitchlab/go-pitch-metrics/internal/storage"
)

var watchEvery time.Duration

var watchCmd = &cobra.Command{
	Use:   "watch <competition-id> <season-id>",
	Short: "Periodically sync a season from the open-data feed",
	Long:  "Runs a season sync on a fixed interval until interrupted. New matches in the feed are fetched and computed; stored matches are skipped.",
	Args:  cobra.ExactArgs(2),
	RunE:  runWatch,
}

func init() {
	watchCmd.Flags().DurationVar(&watchEvery, "every", 0, "sync interval (defaults to WATCH_INTERVAL)")
}

func runWatch(cmd *cobra.Command, args []string) error {
	competitionID, err := strconv.Atoi(args[0])
	if err != nil {
		return fmt.Errorf("invalid competition id %q: %w", args[0], err)
	}
	seasonID, err := strconv.Atoi(args[1])
	if err != nil {
		return fmt.Errorf("invalid season id %q: %w", args[1], err)
	}

	cfg, err := config.New()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return fmt.Errorf("create db dir: %w", err)
	}
	db, err := storage.Open(dbPath)
	if err != nil {
		return fmt.Errorf("open storage: %w", err)
	}
	defer db.Close()

	interval := watchEvery
	if interval <= 0 {
		interval = cfg.Fetch.Interval
	}

	logger := logging.Default()
	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	sched, err := scheduler.New(interval, func() {
		if err := syncSeason(ctx, db, cfg, competitionID, seasonID, false); err != nil {
			logger.Warn("season sync failed", "error", err)
		}
	}, logger)
	if err != nil {
		return fmt.Errorf("create scheduler: %w", err)
	}

	sched.Start()
	logger.Info("watching season", "competition_id", competitionID, "season_id", seasonID, "interval", interval)

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	<-sig

	cancel()
	return sched.Stop()
}
