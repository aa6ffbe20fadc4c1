package ingest

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"passionmatch-engine/internal/config"
	"passionmatch-engine/internal/events"
	"passionmatch-engine/internal/passion"
	"passionmatch-engine/internal/secrets"
	"passionmatch-engine/internal/store"
)

type PollDeps struct {
	DB       *sql.DB
	Cfg      config.Config
	Fetchers []Fetcher
	Matcher  *passion.Matcher
	// Selected returns the passion ids new hotels are scored against.
	Selected func() []string
	Hub      *events.Hub
	Log      zerolog.Logger
}

type PollResult struct {
	Added    int `json:"added"`
	Updated  int `json:"updated"`
	Notified int `json:"notified"`
}

// BuildFetchers returns the fetchers enabled in cfg.
func BuildFetchers(cfg config.Config, log zerolog.Logger) []Fetcher {
	var fetchers []Fetcher
	if len(cfg.Ingest.Pages) > 0 {
		limiter := NewHostLimiter(cfg.Ingest.RequestsPerSecond, cfg.Ingest.Burst)
		fetchers = append(fetchers, NewPageFetcher(cfg.Ingest.Pages, limiter, cfg.Ingest.UserAgent, log))
	}
	if cfg.Ingest.Email.Enabled {
		account := secrets.IMAPKeyringAccount(cfg)
		fetchers = append(fetchers, NewEmailFetcher(cfg.Ingest.Email, func() (string, error) {
			return secrets.GetIMAPPassword(account)
		}, log))
	}
	return fetchers
}

func fetchTimeout(name string) time.Duration {
	switch name {
	case "pages":
		return 5 * time.Minute
	default:
		return 2 * time.Minute
	}
}

// PollOnce runs every fetcher concurrently, stores what they found and
// announces new hotels that match the selected passions well enough.
func PollOnce(ctx context.Context, d PollDeps) (PollResult, error) {
	var out PollResult
	log := d.Log.With().Str("component", "ingest").Logger()

	var g errgroup.Group
	results := make(chan Result, len(d.Fetchers))
	fetchErrs := make(chan error, len(d.Fetchers))

	for _, f := range d.Fetchers {
		g.Go(func() error {
			fctx, cancel := context.WithTimeout(ctx, fetchTimeout(f.Name()))
			defer cancel()

			log.Debug().Str("fetcher", f.Name()).Msg("running")
			res, err := f.Fetch(fctx)
			if err != nil {
				log.Warn().Err(err).Str("fetcher", f.Name()).Msg("fetch failed")
				fetchErrs <- fmt.Errorf("%s: %w", f.Name(), err)
			}
			if len(res.Hotels) > 0 || res.Finalize != nil {
				results <- res
			}
			return nil
		})
	}

	_ = g.Wait()
	close(results)
	close(fetchErrs)

	var selected []string
	if d.Selected != nil {
		selected = d.Selected()
	}

	var finals []func(context.Context) error
	for res := range results {
		log.Info().Str("source", res.Source).Int("hotels", len(res.Hotels)).Msg("fetched")
		for _, h := range res.Hotels {
			id, added, err := store.UpsertHotel(ctx, d.DB, h)
			if err != nil {
				log.Error().Err(err).Str("hotel", h.Name).Msg("store hotel failed")
				continue
			}
			if !added {
				out.Updated++
				continue
			}
			out.Added++
			h.ID = id

			if d.Matcher == nil || len(selected) == 0 {
				continue
			}
			mr := d.Matcher.CalculatePassionScore(h, selected)
			if mr.TotalScore <= 0 || mr.TotalScore < d.Cfg.Matching.NotifyMinScore {
				continue
			}
			out.Notified++
			d.Hub.Emit("", events.TypeHotelAdded, events.HotelAdded{
				ID:         id,
				Name:       h.Name,
				Source:     h.Source,
				TotalScore: mr.TotalScore,
				Strength:   passion.Strength(mr.TotalScore),
			})
		}
		if res.Finalize != nil {
			finals = append(finals, res.Finalize)
		}
	}

	for _, fin := range finals {
		if err := fin(ctx); err != nil {
			log.Warn().Err(err).Msg("finalize failed")
		}
	}

	var errs []error
	for err := range fetchErrs {
		errs = append(errs, err)
	}
	if len(d.Fetchers) > 0 && len(errs) == len(d.Fetchers) {
		return out, errors.Join(errs...)
	}
	return out, nil
}
