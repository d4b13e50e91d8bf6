package jobs_fx

import (
	"context"

	"go.uber.org/fx"

	"freiplatz/internal/config"
	"freiplatz/internal/jobs"
	"freiplatz/internal/repositories"
	"freiplatz/pkg/middleware"
)

var Module = fx.Options(
	fx.Provide(provideScheduler),
	fx.Invoke(startScheduler),
)

func provideScheduler(availability repositories.AvailabilityRepository, limiter *middleware.RateLimiter) *jobs.Scheduler {
	return jobs.NewScheduler(availability, limiter)
}

func startScheduler(lc fx.Lifecycle, cfg config.Config, s *jobs.Scheduler) error {
	schedule := ""
	if cfg.Sync.Enabled {
		schedule = cfg.Sync.AvailabilitySchedule
	}
	if err := s.Register(schedule); err != nil {
		return err
	}
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			s.Start()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			s.Stop(ctx)
			return nil
		},
	})
	return nil
}
