package httpapi

import (
	"net/http"
	"time"
)

// NewMux returns the raw mux so main() can still attach /shutdown (needs srv+token).
func NewMux(d Deps) *http.ServeMux {
	mux := http.NewServeMux()
	catalog := d.Matcher.Catalog()

	health := HealthHandler{DB: d.DB, Catalog: catalog, Hub: d.Hub, Started: time.Now()}
	mux.HandleFunc("/health", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: health.Health,
	}))

	// Passions
	ph := PassionsHandler{Catalog: catalog}
	mux.HandleFunc("/passions", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: ph.List,
	}))
	mux.HandleFunc("/passions/", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: ph.GetByPath, // expects /passions/{id}
	}))

	// Matching
	mh := MatchHandler{Matcher: d.Matcher, Profiles: d.Profiles}
	mux.HandleFunc("/match", methodMux(map[string]http.HandlerFunc{
		http.MethodPost: mh.Match,
	}))
	mux.HandleFunc("/strength", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: mh.Strength,
	}))

	// Profile
	prh := ProfileHandler{Catalog: catalog, Profiles: d.Profiles, Hub: d.Hub}
	mux.HandleFunc("/profile", methodMux(map[string]http.HandlerFunc{
		http.MethodGet:    prh.Get,
		http.MethodDelete: prh.Clear,
	}))
	mux.HandleFunc("/profile/toggle", methodMux(map[string]http.HandlerFunc{
		http.MethodPost: prh.Toggle,
	}))

	// Hotels
	hh := HotelsHandler{DB: d.DB, Hub: d.Hub, Matcher: d.Matcher, Profiles: d.Profiles}
	mux.HandleFunc("/hotels", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: hh.List,
	}))
	mux.HandleFunc("/hotels/", methodMux(map[string]http.HandlerFunc{
		http.MethodDelete: hh.DeleteByPath, // expects /hotels/{id}
	}))

	// Ingest
	ih := IngestHandler{Runner: d.Ingest}
	mux.HandleFunc("/ingest/status", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: ih.Status,
	}))
	mux.HandleFunc("/ingest/run", methodMux(map[string]http.HandlerFunc{
		http.MethodPost: ih.Run,
	}))

	// Config
	ch := ConfigHandler{
		CfgVal:      d.CfgVal,
		UserCfgPath: d.UserCfgPath,
		LoadCfg:     d.LoadCfg,
		Hub:         d.Hub,
	}
	mux.HandleFunc("/config", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: ch.Get,
		http.MethodPut: ch.Put,
	}))
	mux.HandleFunc("/config/path", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: ch.Path,
	}))
	mux.HandleFunc("/config/validate", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: ch.Validate,
	}))

	// Secrets (use cfgVal, NOT a snapshot cfg)
	sh := SecretsHandler{CfgVal: d.CfgVal}
	mux.HandleFunc("/api/secrets/imap", methodMux(map[string]http.HandlerFunc{
		http.MethodGet:    sh.Status,
		http.MethodPost:   sh.SetIMAPPassword,
		http.MethodDelete: sh.DeleteIMAPPassword,
	}))

	// SSE events
	eh := EventsHandler{Hub: d.Hub}
	mux.HandleFunc("/events", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: eh.ServeSSE,
	}))

	// DB maintenance
	dh := DBHandler{DB: d.DB}
	mux.HandleFunc("/db/checkpoint", methodMux(map[string]http.HandlerFunc{
		http.MethodPost: dh.Checkpoint,
	}))

	return mux
}
