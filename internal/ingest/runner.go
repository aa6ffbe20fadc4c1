package ingest

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"passionmatch-engine/internal/events"
)

var ErrAlreadyRunning = errors.New("ingest already running")

type RunFunc func(ctx context.Context) (PollResult, error)

// Runner serializes ingest runs and tracks their status for /ingest/status.
type Runner struct {
	run RunFunc
	hub *events.Hub
	log zerolog.Logger

	mu     sync.Mutex
	status Status
}

func NewRunner(run RunFunc, hub *events.Hub, log zerolog.Logger) *Runner {
	return &Runner{
		run: run,
		hub: hub,
		log: log.With().Str("component", "ingest").Logger(),
	}
}

func (r *Runner) Status() Status {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.status
}

// RunOnce runs one ingest pass, or returns ErrAlreadyRunning.
func (r *Runner) RunOnce(ctx context.Context) (PollResult, error) {
	r.mu.Lock()
	if r.status.Running {
		r.mu.Unlock()
		return PollResult{}, ErrAlreadyRunning
	}
	r.status.Running = true
	r.status.LastRunAt = time.Now().Format(time.RFC3339)
	r.mu.Unlock()

	res, err := r.run(ctx)

	now := time.Now().Format(time.RFC3339)
	r.mu.Lock()
	r.status.Running = false
	r.status.LastAdded = res.Added
	if err != nil {
		r.status.LastError = err.Error()
	} else {
		r.status.LastError = ""
		r.status.LastOkAt = now
	}
	r.mu.Unlock()

	evt := events.IngestFinished{Added: res.Added}
	if err != nil {
		evt.Error = err.Error()
		r.log.Error().Err(err).Msg("ingest run failed")
	} else {
		r.log.Info().Int("added", res.Added).Int("updated", res.Updated).Int("notified", res.Notified).Msg("ingest run ok")
	}
	r.hub.Emit("", events.TypeIngestFinished, evt)

	return res, err
}

// Trigger starts a run in the background. It reports false when a run is
// already in progress.
func (r *Runner) Trigger() bool {
	r.mu.Lock()
	running := r.status.Running
	r.mu.Unlock()
	if running {
		return false
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
		defer cancel()
		_, _ = r.RunOnce(ctx)
	}()
	return true
}
