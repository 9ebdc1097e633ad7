package app

import (
	"context"
	"fmt"
	"time"

	"github.com/guttosm/stockaigent/internal/logger"
	"github.com/robfig/cron/v3"
)

// Warmable is anything that can be refreshed ahead of demand.
type Warmable interface {
	Warm(ctx context.Context) error
}

// Warmer refreshes the snapshot cache on a cron schedule so that dashboard
// requests rarely pay for a rebuild.
type Warmer struct {
	cron   *cron.Cron
	target Warmable
}

// NewWarmer registers target on schedule. Standard five-field specs and
// descriptors such as "@every 9m" are accepted.
func NewWarmer(target Warmable, schedule string) (*Warmer, error) {
	w := &Warmer{
		cron:   cron.New(cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger))),
		target: target,
	}
	if _, err := w.cron.AddFunc(schedule, w.run); err != nil {
		return nil, fmt.Errorf("register warm schedule %q: %w", schedule, err)
	}
	return w, nil
}

// Start starts the cron scheduler.
func (w *Warmer) Start() {
	w.cron.Start()
	logger.Component("warmer").Info().Msg("cache warmer started")
}

// Stop stops the scheduler and waits for a running refresh to finish.
func (w *Warmer) Stop() {
	<-w.cron.Stop().Done()
	logger.Component("warmer").Info().Msg("cache warmer stopped")
}

func (w *Warmer) run() {
	start := time.Now()
	if err := w.target.Warm(context.Background()); err != nil {
		logger.Component("warmer").Warn().Err(err).Msg("scheduled refresh failed")
		return
	}
	logger.Component("warmer").Debug().Dur("elapsed", time.Since(start)).Msg("scheduled refresh done")
}

// warmOnStartup builds the first snapshot. Failure is not fatal: the
// service starts unready and the first request or tick retries.
func warmOnStartup(target Warmable) {
	if err := target.Warm(context.Background()); err != nil {
		logger.Component("warmer").Warn().Err(err).Msg("initial snapshot build failed")
	}
}
