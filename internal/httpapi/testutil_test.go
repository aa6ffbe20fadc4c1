package httpapi

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"passionmatch-engine/internal/config"
	"passionmatch-engine/internal/events"
	"passionmatch-engine/internal/ingest"
	"passionmatch-engine/internal/passion"
	"passionmatch-engine/internal/profile"
	"passionmatch-engine/internal/store"
)

type testEnv struct {
	deps    Deps
	handler http.Handler
	cfgVal  *atomic.Value
	ingests atomic.Int32
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	dir := t.TempDir()

	db, err := store.Open(filepath.Join(dir, "engine.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	cfgPath := filepath.Join(dir, "config.yml")
	require.NoError(t, config.SaveAtomic(cfgPath, config.Default()))

	env := &testEnv{cfgVal: &atomic.Value{}}
	env.cfgVal.Store(config.Default())

	catalog := passion.DefaultCatalog()
	hub := events.NewHub()
	runner := ingest.NewRunner(func(ctx context.Context) (ingest.PollResult, error) {
		env.ingests.Add(1)
		return ingest.PollResult{Added: 1}, nil
	}, hub, zerolog.Nop())

	env.deps = Deps{
		DB:          db.Pool,
		Hub:         hub,
		Matcher:     passion.NewMatcher(catalog),
		Profiles:    profile.NewManager(store.NewSQLiteKV(db.Pool), catalog, zerolog.Nop()),
		Ingest:      runner,
		CfgVal:      env.cfgVal,
		UserCfgPath: cfgPath,
		LoadCfg:     func() (config.Config, error) { return config.Load(cfgPath) },
		Log:         zerolog.Nop(),
	}
	env.handler = Chain(NewMux(env.deps), RequestID, Recover(zerolog.Nop()), AccessLog(zerolog.Nop()), Cors)
	return env
}

func (e *testEnv) do(t *testing.T, method, path, body string, headers ...string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}
	rec := httptest.NewRecorder()
	e.handler.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v), rec.Body.String())
	return v
}
