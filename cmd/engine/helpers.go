package main

import (
	"context"
	"crypto/rand"
	"crypto/subtle"
	"encoding/hex"
	"fmt"
	"net"
	"net/http"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"

	"passionmatch-engine/internal/config"
	"passionmatch-engine/internal/httpapi"
	"passionmatch-engine/internal/passion"
	"passionmatch-engine/internal/profile"
	"passionmatch-engine/internal/store"
)

// loadConfig reads the user config, applies the shipped sources list and
// normalizes the result.
func loadConfig(userCfgPath, sourcesPath string) (config.Config, error) {
	cfg, err := config.Load(userCfgPath)
	if err != nil {
		return config.Config{}, err
	}
	if err := config.OverlaySources(&cfg, sourcesPath); err != nil {
		return config.Config{}, fmt.Errorf("sources overlay: %w", err)
	}
	cfg, vr := config.NormalizeAndValidate(cfg)
	if !vr.OK() {
		return config.Config{}, config.Validate(cfg)
	}
	return cfg, nil
}

func loadCatalog(cfg config.Config) (*passion.Catalog, error) {
	if cfg.Catalog.Path == "" {
		return passion.DefaultCatalog(), nil
	}
	return passion.LoadCatalogFile(cfg.Catalog.Path)
}

func profileStore(cfg config.Config, db *store.DB, dataDir string) (profile.Store, error) {
	switch cfg.Profile.Backend {
	case config.BackendFile:
		path := cfg.Profile.FilePath
		if path == "" {
			path = filepath.Join(dataDir, "profile.json")
		}
		return store.NewFileKV(path), nil
	case config.BackendSQLite, "":
		return store.NewSQLiteKV(db.Pool), nil
	default:
		return nil, fmt.Errorf("unknown profile backend %q", cfg.Profile.Backend)
	}
}

func randomToken(n int) (string, error) {
	b := make([]byte, n)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}

func shutdownHandler(token *string, srv *http.Server, log zerolog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			httpapi.WriteError(w, r, http.StatusMethodNotAllowed, "method_not_allowed", "POST only")
			return
		}

		// Local-only guard (covers typical desktop usage)
		host, _, err := net.SplitHostPort(r.RemoteAddr)
		if err != nil {
			host = r.RemoteAddr
		}
		if host != "127.0.0.1" && host != "::1" && host != "localhost" {
			httpapi.WriteError(w, r, http.StatusForbidden, "forbidden", "forbidden")
			return
		}

		got := r.Header.Get("X-Shutdown-Token")
		if got == "" || subtle.ConstantTimeCompare([]byte(got), []byte(*token)) != 1 {
			httpapi.WriteError(w, r, http.StatusUnauthorized, "unauthorized", "bad shutdown token")
			return
		}

		// Respond immediately, then shutdown asynchronously
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("shutting down\n"))
		log.Info().Str("request_id", httpapi.RequestIDFrom(r.Context())).Msg("shutdown requested")

		go func() {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = srv.Shutdown(ctx)
		}()
	}
}
