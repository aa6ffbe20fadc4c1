package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault_IsValid(t *testing.T) {
	_, vr := NormalizeAndValidate(Default())
	assert.True(t, vr.OK(), vr.Errors)
	assert.NoError(t, Validate(Default()))
}

func TestLoad_FillsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, os.WriteFile(path, []byte("app:\n  port: 4000\nmatching:\n  notify_min_score: 35\n"), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 4000, cfg.App.Port)
	assert.Equal(t, 35, cfg.Matching.NotifyMinScore)
	assert.Equal(t, BackendSQLite, cfg.Profile.Backend)
	assert.Equal(t, 900, cfg.Ingest.IntervalSeconds)
}

func TestLoad_Errors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yml"))
	assert.ErrorIs(t, err, os.ErrNotExist)

	path := filepath.Join(t.TempDir(), "bad.yml")
	require.NoError(t, os.WriteFile(path, []byte("app: [unclosed"), 0o644))
	_, err = Load(path)
	assert.Error(t, err)
}

func TestShippedConfig_Loads(t *testing.T) {
	cfg, err := Load(filepath.Join("..", "..", "config", "config.yml"))
	require.NoError(t, err)
	assert.NoError(t, Validate(cfg))
}

func TestNormalizeAndValidate(t *testing.T) {
	cfg := Default()
	cfg.Profile.Backend = " FILE "
	cfg.Logging.Level = "DEBUG"
	cfg.Ingest.Pages = []Page{
		{URL: " https://example.com/deals "},
		{Name: "dup", URL: "https://EXAMPLE.com/deals"},
		{Name: "blank", URL: ""},
	}

	out, vr := NormalizeAndValidate(cfg)
	assert.True(t, vr.OK(), vr.Errors)
	assert.Equal(t, BackendFile, out.Profile.Backend)
	assert.Equal(t, "debug", out.Logging.Level)
	require.Len(t, out.Ingest.Pages, 1)
	assert.Equal(t, Page{Name: "example.com", URL: "https://example.com/deals"}, out.Ingest.Pages[0])
}

func TestNormalizeAndValidate_Errors(t *testing.T) {
	cfg := Default()
	cfg.App.Port = 0
	cfg.Profile.Backend = "redis"
	cfg.Matching.NotifyMinScore = 101
	cfg.Ingest.IntervalSeconds = 0
	cfg.Ingest.Pages = []Page{{Name: "x", URL: "ftp://example.com"}}
	cfg.Ingest.Email.Enabled = true
	cfg.Ingest.Email.IMAPHost = ""
	cfg.Ingest.Email.Username = ""

	_, vr := NormalizeAndValidate(cfg)
	assert.False(t, vr.OK())
	assert.Contains(t, vr.Errors, "app.port must be 1..65535")
	assert.Contains(t, vr.Errors, `profile.backend "redis" is not one of sqlite|file`)
	assert.Contains(t, vr.Errors, "matching.notify_min_score must be 0..100")
	assert.Contains(t, vr.Errors, "ingest.interval_seconds must be > 0")
	assert.Contains(t, vr.Errors, `ingest.pages[0].url "ftp://example.com" must be an absolute http(s) URL`)
	assert.Contains(t, vr.Errors, "ingest.email.imap_host is required when ingest.email.enabled=true")
	assert.Contains(t, vr.Errors, "ingest.email.username is required when ingest.email.enabled=true")
}

func TestNormalizeAndValidate_Warnings(t *testing.T) {
	cfg := Default()
	cfg.Ingest.Enabled = true
	cfg.Ingest.IntervalSeconds = 30

	_, vr := NormalizeAndValidate(cfg)
	assert.True(t, vr.OK())
	assert.Len(t, vr.Warnings, 2)
}

func TestSaveAtomic_WritesAndBacksUp(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cfg", "config.yml")

	first := Default()
	require.NoError(t, SaveAtomic(path, first))

	second := Default()
	second.Matching.NotifyMinScore = 42
	require.NoError(t, SaveAtomic(path, second))

	got, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 42, got.Matching.NotifyMinScore)

	bak, err := Load(path + ".bak")
	require.NoError(t, err)
	assert.Equal(t, 20, bak.Matching.NotifyMinScore)

	_, err = os.Stat(path + ".tmp")
	assert.True(t, os.IsNotExist(err))
}

func TestSaveAtomic_RejectsInvalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yml")
	cfg := Default()
	cfg.App.Port = -1

	err := SaveAtomic(path, cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "config validation failed")

	_, statErr := os.Stat(path)
	assert.True(t, os.IsNotExist(statErr))
}

func TestEnsureUserConfig(t *testing.T) {
	t.Run("copies shipped file", func(t *testing.T) {
		dir := t.TempDir()
		shipped := filepath.Join(t.TempDir(), "config.yml")
		require.NoError(t, os.WriteFile(shipped, []byte("app:\n  port: 5555\n"), 0o644))

		p, err := EnsureUserConfig(dir, shipped)
		require.NoError(t, err)
		assert.Equal(t, filepath.Join(dir, "config.yml"), p)

		cfg, err := Load(p)
		require.NoError(t, err)
		assert.Equal(t, 5555, cfg.App.Port)
	})

	t.Run("writes defaults when shipped file is missing", func(t *testing.T) {
		dir := t.TempDir()
		p, err := EnsureUserConfig(dir, filepath.Join(dir, "nope.yml"))
		require.NoError(t, err)

		cfg, err := Load(p)
		require.NoError(t, err)
		assert.Equal(t, Default().App.Port, cfg.App.Port)
	})

	t.Run("keeps existing user file", func(t *testing.T) {
		dir := t.TempDir()
		user := filepath.Join(dir, "config.yml")
		require.NoError(t, os.WriteFile(user, []byte("app:\n  port: 7777\n"), 0o644))

		p, err := EnsureUserConfig(dir, filepath.Join(dir, "nope.yml"))
		require.NoError(t, err)

		cfg, err := Load(p)
		require.NoError(t, err)
		assert.Equal(t, 7777, cfg.App.Port)
	})
}

func TestOverlaySources(t *testing.T) {
	cfg := Default()
	cfg.Ingest.Pages = []Page{{Name: "old", URL: "https://old.example"}}

	require.NoError(t, OverlaySources(&cfg, filepath.Join(t.TempDir(), "missing.yml")))
	assert.Equal(t, "old", cfg.Ingest.Pages[0].Name)

	path := filepath.Join(t.TempDir(), "sources.yml")
	require.NoError(t, os.WriteFile(path, []byte("pages:\n  - name: new\n    url: https://new.example/list\n"), 0o644))
	require.NoError(t, OverlaySources(&cfg, path))
	assert.Equal(t, []Page{{Name: "new", URL: "https://new.example/list"}}, cfg.Ingest.Pages)

	require.NoError(t, os.WriteFile(path, []byte("pages: {"), 0o644))
	assert.Error(t, OverlaySources(&cfg, path))
}

func TestEnsureUserConfig_InvalidShippedFallsBackToDefault(t *testing.T) {
	dir := t.TempDir()
	shipped := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, os.WriteFile(shipped, []byte("app: [unclosed"), 0o644))

	p, err := EnsureUserConfig(dir, shipped)
	require.NoError(t, err)

	cfg, err := Load(p)
	require.NoError(t, err)
	assert.Equal(t, Default().Ingest.IntervalSeconds, cfg.Ingest.IntervalSeconds)
}

func TestEnsureUserSources(t *testing.T) {
	dir := t.TempDir()

	p, err := EnsureUserSources(dir, filepath.Join(dir, "missing.yml"))
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, UserSourcesFile), p)
	_, statErr := os.Stat(p)
	assert.True(t, os.IsNotExist(statErr))

	shipped := filepath.Join(t.TempDir(), "sources.yml")
	require.NoError(t, os.WriteFile(shipped, []byte("pages:\n  - url: https://a.example\n"), 0o644))
	p, err = EnsureUserSources(dir, shipped)
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(shipped, []byte("pages: []\n"), 0o644))
	_, err = EnsureUserSources(dir, shipped)
	require.NoError(t, err)

	cfg := Default()
	require.NoError(t, OverlaySources(&cfg, p))
	require.Len(t, cfg.Ingest.Pages, 1)
	assert.Equal(t, "https://a.example", cfg.Ingest.Pages[0].URL)
}

func TestSaveAtomic_NormalizesAndTypesErrors(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yml")
	cfg := Default()
	cfg.Profile.Backend = " File "
	require.NoError(t, SaveAtomic(path, cfg))

	got, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, BackendFile, got.Profile.Backend)

	cfg.Ingest.Burst = 0
	err = SaveAtomic(path, cfg)
	var ve *ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, []string{"ingest.burst must be > 0"}, ve.Errors)
}
