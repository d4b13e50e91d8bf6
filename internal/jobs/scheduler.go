// Package jobs runs periodic maintenance next to the HTTP server.
package jobs

import (
	"context"
	"time"

	cron "github.com/robfig/cron/v3"

	"freiplatz/internal/logging"
	"freiplatz/internal/metrics"
)

// AvailabilitySyncer recomputes availability summaries from place rows.
type AvailabilitySyncer interface {
	SyncFromPlaces(ctx context.Context) (int64, error)
}

// LimiterCleaner drops idle rate limiter state.
type LimiterCleaner interface {
	Cleanup(idle time.Duration)
}

const syncTimeout = time.Minute

type Scheduler struct {
	cron    *cron.Cron
	syncer  AvailabilitySyncer
	limiter LimiterCleaner
}

func NewScheduler(syncer AvailabilitySyncer, limiter LimiterCleaner) *Scheduler {
	return &Scheduler{
		cron:    cron.New(cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger))),
		syncer:  syncer,
		limiter: limiter,
	}
}

// Register adds the jobs. An empty syncSchedule disables availability sync.
func (s *Scheduler) Register(syncSchedule string) error {
	if syncSchedule != "" {
		if _, err := s.cron.AddFunc(syncSchedule, s.SyncAvailability); err != nil {
			return err
		}
	}
	if s.limiter != nil {
		if _, err := s.cron.AddFunc("@every 10m", func() { s.limiter.Cleanup(time.Hour) }); err != nil {
			return err
		}
	}
	return nil
}

func (s *Scheduler) Start() { s.cron.Start() }

// Stop waits for running jobs or until ctx is done.
func (s *Scheduler) Stop(ctx context.Context) {
	done := s.cron.Stop()
	select {
	case <-done.Done():
	case <-ctx.Done():
	}
}

func (s *Scheduler) SyncAvailability() {
	ctx, cancel := context.WithTimeout(context.Background(), syncTimeout)
	defer cancel()

	start := time.Now()
	n, err := s.syncer.SyncFromPlaces(ctx)
	if err != nil {
		metrics.AvailabilitySyncRuns.WithLabelValues("error").Inc()
		logging.Error().Err(err).Msg("availability sync failed")
		return
	}
	metrics.AvailabilitySyncRuns.WithLabelValues("ok").Inc()
	logging.Info().
		Int64("rows", n).
		Dur("took", time.Since(start)).
		Msg("availability sync")
}
