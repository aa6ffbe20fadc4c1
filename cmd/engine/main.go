package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"sync/atomic"
	"syscall"
	"time"

	"passionmatch-engine/internal/config"
	"passionmatch-engine/internal/events"
	"passionmatch-engine/internal/httpapi"
	"passionmatch-engine/internal/ingest"
	"passionmatch-engine/internal/logging"
	"passionmatch-engine/internal/passion"
	"passionmatch-engine/internal/profile"
	"passionmatch-engine/internal/scheduler"
	"passionmatch-engine/internal/store"
)

func main() {
	boot := logging.New(logging.Config{Level: "info", Format: "console"})

	// Engine data dir: use env if provided (the desktop shell passes one), else local folder.
	dataDir := os.Getenv("PASSIONMATCH_DATA_DIR")
	if dataDir == "" {
		dataDir = "."
	}
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		boot.Fatal().Err(err).Str("data_dir", dataDir).Msg("create data dir")
	}

	userCfgPath, err := config.EnsureUserConfig(dataDir, filepath.Join("config", "config.yml"))
	if err != nil {
		boot.Fatal().Err(err).Msg("config bootstrap failed")
	}
	sourcesPath, err := config.EnsureUserSources(dataDir, filepath.Join("config", "sources.yml"))
	if err != nil {
		boot.Fatal().Err(err).Msg("sources bootstrap failed")
	}

	loadCfg := func() (config.Config, error) {
		return loadConfig(userCfgPath, sourcesPath)
	}
	cfg, err := loadCfg()
	if err != nil {
		boot.Fatal().Err(err).Str("path", userCfgPath).Msg("config load failed")
	}
	var cfgVal atomic.Value // stores config.Config
	cfgVal.Store(cfg)

	log := logging.New(logging.Config{Level: cfg.Logging.Level, Format: cfg.Logging.Format})
	_, vr := config.NormalizeAndValidate(cfg)
	for _, w := range vr.Warnings {
		log.Warn().Str("path", userCfgPath).Msg(w)
	}

	if cfg.App.DataDir != "" && cfg.App.DataDir != dataDir {
		dataDir = cfg.App.DataDir
		if err := os.MkdirAll(dataDir, 0o755); err != nil {
			log.Fatal().Err(err).Str("data_dir", dataDir).Msg("create data dir")
		}
	}

	dbPath := filepath.Join(dataDir, "passionmatch.db")
	db, err := store.Open(dbPath)
	if err != nil {
		log.Fatal().Err(err).Str("db", dbPath).Msg("open database")
	}
	defer db.Close()

	if n, err := store.CleanupOldHotels(db.Pool); err != nil {
		log.Warn().Err(err).Msg("cleanup old hotels")
	} else if n > 0 {
		log.Info().Int64("deleted", n).Msg("cleaned up stale hotels")
	}

	catalog, err := loadCatalog(cfg)
	if err != nil {
		log.Fatal().Err(err).Str("path", cfg.Catalog.Path).Msg("load passion catalog")
	}
	matcher := passion.NewMatcher(catalog)

	kv, err := profileStore(cfg, db, dataDir)
	if err != nil {
		log.Fatal().Err(err).Msg("profile store")
	}
	profiles := profile.NewManager(kv, catalog, log)

	hub := events.NewHub()

	runner := ingest.NewRunner(func(ctx context.Context) (ingest.PollResult, error) {
		cur := cfgVal.Load().(config.Config)
		return ingest.PollOnce(ctx, ingest.PollDeps{
			DB:       db.Pool,
			Cfg:      cur,
			Fetchers: ingest.BuildFetchers(cur, log),
			Matcher:  matcher,
			Selected: profiles.For(profile.DefaultUser).Selected,
			Hub:      hub,
			Log:      log,
		})
	}, hub, log)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if cfg.Ingest.Enabled {
		interval := time.Duration(cfg.Ingest.IntervalSeconds) * time.Second
		go scheduler.Every(ctx, interval, "ingest", func(ctx context.Context) error {
			_, err := runner.RunOnce(ctx)
			if errors.Is(err, ingest.ErrAlreadyRunning) {
				return nil
			}
			return err
		}, log)
	}

	mux := httpapi.NewMux(httpapi.Deps{
		DB:          db.Pool,
		Hub:         hub,
		Matcher:     matcher,
		Profiles:    profiles,
		Ingest:      runner,
		CfgVal:      &cfgVal,
		UserCfgPath: userCfgPath,
		LoadCfg:     loadCfg,
		Log:         log,
	})

	token, err := randomToken(32)
	if err != nil {
		log.Fatal().Err(err).Msg("shutdown token")
	}

	addr := fmt.Sprintf("127.0.0.1:%d", cfg.App.Port)
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		log.Fatal().Err(err).Str("addr", addr).Msg("listen")
	}

	srv := &http.Server{
		Handler: httpapi.Chain(mux,
			httpapi.RequestID,
			httpapi.Recover(log),
			httpapi.AccessLog(log),
			httpapi.Cors,
		),
		ReadHeaderTimeout: 5 * time.Second,
	}
	mux.HandleFunc("/shutdown", shutdownHandler(&token, srv, log))

	// The desktop shell reads this line to learn the shutdown token.
	fmt.Printf("SHUTDOWN_TOKEN=%s\n", token)
	log.Info().
		Str("addr", "http://"+addr).
		Str("db", dbPath).
		Str("config", userCfgPath).
		Int("passions", catalog.Len()).
		Msg("engine listening")

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Error().Err(err).Msg("serve")
	}
	log.Info().Msg("engine stopped")
}
