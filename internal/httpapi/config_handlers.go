package httpapi

import (
	"net/http"
	"path/filepath"
	"sync/atomic"

	"passionmatch-engine/internal/config"
	"passionmatch-engine/internal/events"
)

type ConfigHandler struct {
	CfgVal      *atomic.Value // stores config.Config
	UserCfgPath string
	LoadCfg     func() (config.Config, error)
	Hub         *events.Hub
}

type configSaved struct {
	Config   config.Config `json:"config"`
	Warnings []string      `json:"warnings"`
}

func (h ConfigHandler) Get(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, h.CfgVal.Load().(config.Config))
}

// Put validates, saves and reloads the config. Ingest and profile settings
// apply on the next run; app.port and the profile backend need a restart.
func (h ConfigHandler) Put(w http.ResponseWriter, r *http.Request) {
	var incoming config.Config
	if err := decodeJSON(w, r, &incoming); err != nil {
		WriteError(w, r, http.StatusBadRequest, "invalid_json", err.Error())
		return
	}

	_, vr := config.NormalizeAndValidate(incoming)
	if err := config.SaveAtomic(h.UserCfgPath, incoming); err != nil {
		writeErr(w, r, err, "save_failed")
		return
	}

	saved, err := h.LoadCfg()
	if err != nil {
		WriteError(w, r, http.StatusInternalServerError, "reload_failed", "saved but reload failed: "+err.Error())
		return
	}
	h.CfgVal.Store(saved)

	warnings := vr.Warnings
	if warnings == nil {
		warnings = []string{}
	}
	h.Hub.Emit(RequestIDFrom(r.Context()), events.TypeConfigUpdated, events.ConfigUpdated{
		Path:     h.UserCfgPath,
		Warnings: vr.Warnings,
	})
	writeJSON(w, configSaved{Config: saved, Warnings: warnings})
}

func (h ConfigHandler) Path(w http.ResponseWriter, r *http.Request) {
	abs, _ := filepath.Abs(h.UserCfgPath)
	writeJSON(w, map[string]any{"path": abs})
}

func (h ConfigHandler) Validate(w http.ResponseWriter, r *http.Request) {
	_, vr := config.NormalizeAndValidate(h.CfgVal.Load().(config.Config))
	if vr.Errors == nil {
		vr.Errors = []string{}
	}
	if vr.Warnings == nil {
		vr.Warnings = []string{}
	}
	writeJSON(w, vr)
}
