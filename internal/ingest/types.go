package ingest

import (
	"context"

	"passionmatch-engine/internal/domain"
)

// Result is one fetcher's harvest. Finalize, when set, runs after the hotels
// were stored (e.g. to mark newsletters read).
type Result struct {
	Source   string
	Hotels   []domain.Hotel
	Finalize func(context.Context) error
}

type Fetcher interface {
	Name() string
	Fetch(ctx context.Context) (Result, error)
}

type Status struct {
	LastRunAt string `json:"last_run_at"`
	LastOkAt  string `json:"last_ok_at"`
	LastError string `json:"last_error"`
	LastAdded int    `json:"last_added"`
	Running   bool   `json:"running"`
}
