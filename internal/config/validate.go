package config

import (
	"fmt"
	"net/url"
	"strings"
)

type Validation struct {
	Errors   []string `json:"errors"`
	Warnings []string `json:"warnings"`
}

func (v *Validation) addErr(format string, args ...any) {
	v.Errors = append(v.Errors, fmt.Sprintf(format, args...))
}
func (v *Validation) addWarn(format string, args ...any) {
	v.Warnings = append(v.Warnings, fmt.Sprintf(format, args...))
}
func (v Validation) OK() bool { return len(v.Errors) == 0 }

// NormalizeAndValidate returns a normalized copy of cfg with the validation
// result.
func NormalizeAndValidate(cfg Config) (Config, Validation) {
	var out = cfg
	var res Validation

	out.Logging.Level = strings.ToLower(strings.TrimSpace(out.Logging.Level))
	out.Logging.Format = strings.ToLower(strings.TrimSpace(out.Logging.Format))
	out.Profile.Backend = strings.ToLower(strings.TrimSpace(out.Profile.Backend))
	out.Profile.FilePath = strings.TrimSpace(out.Profile.FilePath)
	out.Catalog.Path = strings.TrimSpace(out.Catalog.Path)
	out.Ingest.Pages = normalizePages(out.Ingest.Pages)
	out.Ingest.Email.IMAPHost = strings.TrimSpace(out.Ingest.Email.IMAPHost)
	out.Ingest.Email.Username = strings.TrimSpace(out.Ingest.Email.Username)
	out.Ingest.Email.Mailbox = strings.TrimSpace(out.Ingest.Email.Mailbox)

	// ---- Validation rules ----

	if out.App.Port <= 0 || out.App.Port > 65535 {
		res.addErr("app.port must be 1..65535")
	}

	switch out.Logging.Level {
	case "", "trace", "debug", "info", "warn", "error":
	default:
		res.addErr("logging.level %q is not one of trace|debug|info|warn|error", out.Logging.Level)
	}
	switch out.Logging.Format {
	case "", "json", "console":
	default:
		res.addErr("logging.format %q is not one of json|console", out.Logging.Format)
	}

	switch out.Profile.Backend {
	case "":
		out.Profile.Backend = BackendSQLite
	case BackendSQLite, BackendFile:
	default:
		res.addErr("profile.backend %q is not one of sqlite|file", out.Profile.Backend)
	}

	if out.Matching.NotifyMinScore < 0 || out.Matching.NotifyMinScore > 100 {
		res.addErr("matching.notify_min_score must be 0..100")
	}

	if out.Ingest.IntervalSeconds <= 0 {
		res.addErr("ingest.interval_seconds must be > 0")
	} else if out.Ingest.IntervalSeconds < 60 {
		res.addWarn("ingest.interval_seconds is very low (%d) and may cause rate limits.", out.Ingest.IntervalSeconds)
	}
	if out.Ingest.RequestsPerSecond <= 0 {
		res.addErr("ingest.requests_per_second must be > 0")
	}
	if out.Ingest.Burst <= 0 {
		res.addErr("ingest.burst must be > 0")
	}

	for i, p := range out.Ingest.Pages {
		u, err := url.Parse(p.URL)
		if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
			res.addErr("ingest.pages[%d].url %q must be an absolute http(s) URL", i, p.URL)
		}
	}

	// email required fields if enabled (password not required here; it's in keychain)
	em := out.Ingest.Email
	if em.Enabled {
		if em.IMAPHost == "" {
			res.addErr("ingest.email.imap_host is required when ingest.email.enabled=true")
		}
		if em.IMAPPort <= 0 || em.IMAPPort > 65535 {
			res.addErr("ingest.email.imap_port is required when ingest.email.enabled=true")
		}
		if em.Username == "" {
			res.addErr("ingest.email.username is required when ingest.email.enabled=true")
		}
		if em.Mailbox == "" {
			res.addErr("ingest.email.mailbox is required when ingest.email.enabled=true")
		}
	}
	if em.MaxMessages < 0 {
		res.addErr("ingest.email.max_messages must be >= 0")
	}

	if out.Ingest.Enabled && len(out.Ingest.Pages) == 0 && !em.Enabled {
		res.addWarn("ingest is enabled but no pages are configured and email is off; nothing will be fetched.")
	}

	return out, res
}

func normalizePages(pages []Page) []Page {
	seen := map[string]bool{}
	out := []Page{}
	for _, p := range pages {
		p.Name = strings.TrimSpace(p.Name)
		p.URL = strings.TrimSpace(p.URL)
		if p.URL == "" {
			continue
		}
		key := strings.ToLower(p.URL)
		if seen[key] {
			continue
		}
		seen[key] = true
		if p.Name == "" {
			if u, err := url.Parse(p.URL); err == nil && u.Host != "" {
				p.Name = u.Host
			} else {
				p.Name = p.URL
			}
		}
		out = append(out, p)
	}
	return out
}
