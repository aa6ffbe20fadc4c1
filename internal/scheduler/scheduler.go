package scheduler

import (
	"context"
	"time"

	"github.com/rs/zerolog"
)

type Task func(ctx context.Context) error

// Every runs task once immediately and then on every tick until ctx is done.
// Task errors are logged, never fatal.
func Every(ctx context.Context, interval time.Duration, name string, task Task, log zerolog.Logger) {
	log = log.With().Str("task", name).Logger()

	t := time.NewTicker(interval)
	defer t.Stop()

	run := func() {
		start := time.Now()
		if err := task(ctx); err != nil {
			log.Error().Err(err).Msg("scheduled task failed")
			return
		}
		log.Debug().Dur("took", time.Since(start)).Msg("scheduled task done")
	}

	// run immediately
	go run()

	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			run()
		}
	}
}
