package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

type Page struct {
	Name string `yaml:"name" json:"name"`
	URL  string `yaml:"url" json:"url"`
}

type Email struct {
	Enabled     bool   `yaml:"enabled" json:"enabled"`
	IMAPHost    string `yaml:"imap_host" json:"imap_host"`
	IMAPPort    int    `yaml:"imap_port" json:"imap_port"`
	Username    string `yaml:"username" json:"username"`
	Mailbox     string `yaml:"mailbox" json:"mailbox"`
	MaxMessages int    `yaml:"max_messages" json:"max_messages"`
	SinceDays   int    `yaml:"since_days" json:"since_days"`
}

type Config struct {
	App struct {
		Port    int    `yaml:"port" json:"port"`
		DataDir string `yaml:"data_dir" json:"data_dir"`
	} `yaml:"app" json:"app"`

	Logging struct {
		Level  string `yaml:"level" json:"level"`
		Format string `yaml:"format" json:"format"` // json | console
	} `yaml:"logging" json:"logging"`

	Profile struct {
		Backend  string `yaml:"backend" json:"backend"` // sqlite | file
		FilePath string `yaml:"file_path" json:"file_path"`
	} `yaml:"profile" json:"profile"`

	Catalog struct {
		Path string `yaml:"path" json:"path"`
	} `yaml:"catalog" json:"catalog"`

	Matching struct {
		NotifyMinScore int `yaml:"notify_min_score" json:"notify_min_score"`
	} `yaml:"matching" json:"matching"`

	Ingest struct {
		Enabled           bool    `yaml:"enabled" json:"enabled"`
		IntervalSeconds   int     `yaml:"interval_seconds" json:"interval_seconds"`
		RequestsPerSecond float64 `yaml:"requests_per_second" json:"requests_per_second"`
		Burst             int     `yaml:"burst" json:"burst"`
		UserAgent         string  `yaml:"user_agent" json:"user_agent"`
		Pages             []Page  `yaml:"pages" json:"pages"`
		Email             Email   `yaml:"email" json:"email"`
	} `yaml:"ingest" json:"ingest"`
}

const (
	BackendSQLite = "sqlite"
	BackendFile   = "file"
)

// Default is the configuration written when no shipped config.yml exists.
func Default() Config {
	var cfg Config
	cfg.App.Port = 38471
	cfg.Logging.Level = "info"
	cfg.Logging.Format = "console"
	cfg.Profile.Backend = BackendSQLite
	cfg.Matching.NotifyMinScore = 20
	cfg.Ingest.IntervalSeconds = 900
	cfg.Ingest.RequestsPerSecond = 1.0
	cfg.Ingest.Burst = 2
	cfg.Ingest.UserAgent = "passionmatch-engine/1.0"
	cfg.Ingest.Pages = []Page{}
	cfg.Ingest.Email.IMAPPort = 993
	cfg.Ingest.Email.Mailbox = "INBOX"
	cfg.Ingest.Email.MaxMessages = 25
	cfg.Ingest.Email.SinceDays = 7
	return cfg
}

func Load(path string) (Config, error) {
	cfg := Default()
	b, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}
