package crontab

import (
	"context"
	"time"

	"github.com/mileusna/crontab"
	"github.com/rs/zerolog"

	"moodcanvas-server/internal/config"
	"moodcanvas-server/internal/domain/diary"
	"moodcanvas-server/internal/utils/platformerrors"
)

// CronJobTimeout bounds a single job execution.
const CronJobTimeout = 10 * time.Minute

type Crontab struct {
	ctab    *crontab.Crontab
	cfg     config.OrphanSweepConfig
	sweeper *diary.OrphanSweeper
	log     zerolog.Logger
}

func NewCrontab(cfg *config.Config, sweeper *diary.OrphanSweeper, log zerolog.Logger) *Crontab {
	return &Crontab{
		ctab:    crontab.New(),
		cfg:     cfg.OrphanSweep,
		sweeper: sweeper,
		log:     log.With().Str("component", "crontab").Logger(),
	}
}

// Run schedules the maintenance jobs and blocks until ctx is done.
func (c *Crontab) Run(ctx context.Context) error {
	if c.cfg.Enabled {
		if err := c.ctab.AddJob(c.cfg.Schedule, func() {
			jobCtx, cancel := context.WithTimeout(context.Background(), CronJobTimeout)
			defer cancel()
			c.sweepOrphans(jobCtx)
		}); err != nil {
			return platformerrors.AsError(ctx, platformerrors.LayerInfrastructure, err, "failed to add orphan sweep job")
		}
		c.log.Info().Str("schedule", c.cfg.Schedule).Dur("min_age", c.cfg.MinAge).Msg("orphan image sweep scheduled")
	} else {
		c.log.Info().Msg("orphan image sweep disabled")
	}

	<-ctx.Done()
	c.ctab.Shutdown()
	return nil
}

func (c *Crontab) sweepOrphans(ctx context.Context) {
	if _, err := c.sweeper.Sweep(ctx); err != nil {
		c.log.Error().Err(err).Msg("orphan image sweep failed")
	}
}
