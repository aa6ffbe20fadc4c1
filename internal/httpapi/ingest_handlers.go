package httpapi

import (
	"net/http"

	"passionmatch-engine/internal/ingest"
)

type IngestHandler struct {
	Runner *ingest.Runner
}

func (h IngestHandler) Status(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, h.Runner.Status())
}

func (h IngestHandler) Run(w http.ResponseWriter, r *http.Request) {
	if !h.Runner.Trigger() {
		writeJSON(w, map[string]any{"ok": false, "msg": "already running"})
		return
	}
	WriteJSON(w, http.StatusAccepted, map[string]any{"ok": true})
}
