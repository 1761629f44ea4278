package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog/log"

	"etherpets/internal/app/decay"
)

const DefaultSchedule = "@hourly"

type Sweeper interface {
	Sweep(ctx context.Context) (decay.Report, error)
}

// Runner triggers a decay sweep on a cron schedule. Overlapping runs are
// skipped rather than queued.
type Runner struct {
	cron    *cron.Cron
	sweeper Sweeper
	timeout time.Duration
}

func New(schedule string, sweeper Sweeper, timeout time.Duration) (*Runner, error) {
	if schedule == "" {
		schedule = DefaultSchedule
	}
	r := &Runner{
		cron: cron.New(cron.WithChain(
			cron.Recover(cron.DefaultLogger),
			cron.SkipIfStillRunning(cron.DefaultLogger),
		)),
		sweeper: sweeper,
		timeout: timeout,
	}
	if _, err := r.cron.AddFunc(schedule, r.RunOnce); err != nil {
		return nil, fmt.Errorf("parse decay schedule %q: %w", schedule, err)
	}
	return r, nil
}

func (r *Runner) RunOnce() {
	ctx := context.Background()
	if r.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.timeout)
		defer cancel()
	}
	report, err := r.sweeper.Sweep(ctx)
	if err != nil {
		log.Error().Err(err).Msg("scheduled decay sweep failed")
		return
	}
	log.Debug().Int("updated", report.Updated).Int("alerts", report.Alerts).Msg("scheduled decay sweep done")
}

func (r *Runner) Start() {
	r.cron.Start()
	log.Info().Int("entries", len(r.cron.Entries())).Msg("decay scheduler started")
}

func (r *Runner) Stop() {
	<-r.cron.Stop().Done()
}
