package httpapi

import (
	"database/sql"
	"sync/atomic"

	"github.com/rs/zerolog"

	"passionmatch-engine/internal/config"
	"passionmatch-engine/internal/events"
	"passionmatch-engine/internal/ingest"
	"passionmatch-engine/internal/passion"
	"passionmatch-engine/internal/profile"
)

type Deps struct {
	DB *sql.DB

	Hub *events.Hub

	Matcher  *passion.Matcher
	Profiles *profile.Manager
	Ingest   *ingest.Runner

	// Atomic stores
	CfgVal *atomic.Value // stores config.Config

	// Config persistence
	UserCfgPath string
	LoadCfg     func() (config.Config, error)

	Log zerolog.Logger
}
