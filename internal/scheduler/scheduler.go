package scheduler

import (
	"fmt"
	"time"

	"github.com/go-co-op/gocron/v2"

	"github.com/pitchlab/go-pitch-metrics/internal/logging"
)

// Scheduler runs a sync task on a fixed interval. The task fires once
// immediately on start so a fresh watch does not wait a full interval.
type Scheduler struct {
	s      gocron.Scheduler
	logger *logging.Logger
}

func New(interval time.Duration, task func(), logger *logging.Logger) (*Scheduler, error) {
	if logger == nil {
		logger = logging.Default()
	}

	s, err := gocron.NewScheduler()
	if err != nil {
		return nil, fmt.Errorf("create scheduler: %w", err)
	}

	_, err = s.NewJob(
		gocron.DurationJob(interval),
		gocron.NewTask(task),
		gocron.WithStartAt(gocron.WithStartImmediately()),
	)
	if err != nil {
		return nil, fmt.Errorf("create sync job: %w", err)
	}

	return &Scheduler{s: s, logger: logger}, nil
}

func (s *Scheduler) Start() {
	s.logger.Info("scheduler started")
	s.s.Start()
}

func (s *Scheduler) Stop() error {
	s.logger.Info("scheduler stopping")
	return s.s.Shutdown()
}
