package ingest

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"passionmatch-engine/internal/events"
)

func TestRunner_StatusAndExclusion(t *testing.T) {
	release := make(chan struct{})
	started := make(chan struct{})
	r := NewRunner(func(ctx context.Context) (PollResult, error) {
		close(started)
		<-release
		return PollResult{Added: 3}, nil
	}, events.NewHub(), zerolog.Nop())

	done := make(chan struct{})
	go func() {
		defer close(done)
		res, err := r.RunOnce(context.Background())
		assert.NoError(t, err)
		assert.Equal(t, 3, res.Added)
	}()

	<-started
	assert.True(t, r.Status().Running)
	_, err := r.RunOnce(context.Background())
	assert.ErrorIs(t, err, ErrAlreadyRunning)
	assert.False(t, r.Trigger())

	close(release)
	<-done

	st := r.Status()
	assert.False(t, st.Running)
	assert.Equal(t, 3, st.LastAdded)
	assert.Empty(t, st.LastError)
	assert.NotEmpty(t, st.LastOkAt)
}

func TestRunner_RecordsErrorsAndEmits(t *testing.T) {
	hub := events.NewHub()
	sub := hub.Subscribe()
	r := NewRunner(func(ctx context.Context) (PollResult, error) {
		return PollResult{}, errors.New("all sources failed")
	}, hub, zerolog.Nop())

	_, err := r.RunOnce(context.Background())
	require.Error(t, err)

	st := r.Status()
	assert.Equal(t, "all sources failed", st.LastError)
	assert.Empty(t, st.LastOkAt)

	select {
	case msg := <-sub:
		assert.Contains(t, msg, `"type":"ingest_finished"`)
		assert.Contains(t, msg, "all sources failed")
	case <-time.After(time.Second):
		t.Fatal("no ingest_finished event")
	}
}

func TestRunner_Trigger(t *testing.T) {
	ran := make(chan struct{}, 1)
	r := NewRunner(func(ctx context.Context) (PollResult, error) {
		ran <- struct{}{}
		return PollResult{}, nil
	}, nil, zerolog.Nop())

	assert.True(t, r.Trigger())
	select {
	case <-ran:
	case <-time.After(2 * time.Second):
		t.Fatal("triggered run did not start")
	}
}
