package ingest

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"passionmatch-engine/internal/config"
	"passionmatch-engine/internal/domain"
)

// PageFetcher pulls hotel listings from the configured web pages.
type PageFetcher struct {
	pages     []config.Page
	limiter   *HostLimiter
	hc        *http.Client
	userAgent string
	log       zerolog.Logger
}

func NewPageFetcher(pages []config.Page, limiter *HostLimiter, userAgent string, log zerolog.Logger) *PageFetcher {
	if userAgent == "" {
		userAgent = "passionmatch-engine/1.0"
	}
	return &PageFetcher{
		pages:     pages,
		limiter:   limiter,
		hc:        &http.Client{Timeout: 20 * time.Second},
		userAgent: userAgent,
		log:       log.With().Str("fetcher", "pages").Logger(),
	}
}

func (f *PageFetcher) Name() string { return "pages" }

// Fetch returns partial results when some pages fail; it errors only when
// every page failed.
func (f *PageFetcher) Fetch(ctx context.Context) (Result, error) {
	res := Result{Source: f.Name()}
	var errs []error
	for _, p := range f.pages {
		hotels, err := f.fetchPage(ctx, p)
		if err != nil {
			// don't fail the whole run because one site is down
			f.log.Warn().Err(err).Str("page", p.Name).Str("url", p.URL).Msg("page fetch failed")
			errs = append(errs, err)
			continue
		}
		f.log.Debug().Str("page", p.Name).Int("hotels", len(hotels)).Msg("page parsed")
		res.Hotels = append(res.Hotels, hotels...)
	}
	if len(f.pages) > 0 && len(errs) == len(f.pages) {
		return res, errors.Join(errs...)
	}
	return res, nil
}

func (f *PageFetcher) fetchPage(ctx context.Context, p config.Page) ([]domain.Hotel, error) {
	if f.limiter != nil {
		if err := f.limiter.WaitURL(ctx, p.URL); err != nil {
			return nil, err
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.URL, nil)
	if err != nil {
		return nil, fmt.Errorf("build request %s: %w", p.URL, err)
	}
	req.Header.Set("User-Agent", f.userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml")

	res, err := f.hc.Do(req)
	if err != nil {
		return nil, fmt.Errorf("get %s: %w", p.URL, err)
	}
	defer res.Body.Close()
	if res.StatusCode >= 400 {
		return nil, fmt.Errorf("get %s: status %d", p.URL, res.StatusCode)
	}

	return ParseHotelsHTML(io.LimitReader(res.Body, 10<<20), p.URL, p.Name)
}
