package httpapi

import (
	"database/sql"
	"net/http"
	"strings"
)

var checkpointModes = map[string]string{
	"passive":  "PASSIVE",
	"full":     "FULL",
	"restart":  "RESTART",
	"truncate": "TRUNCATE",
}

type DBHandler struct {
	DB *sql.DB
}

type checkpointResponse struct {
	Mode         string `json:"mode"`
	Busy         bool   `json:"busy"`
	LogFrames    int    `json:"log_frames"`
	Checkpointed int    `json:"checkpointed"`
}

// Checkpoint runs a WAL checkpoint (?mode=passive|full|restart|truncate,
// default full). Local callers only.
func (h DBHandler) Checkpoint(w http.ResponseWriter, r *http.Request) {
	if !isLocal(r) {
		WriteError(w, r, http.StatusForbidden, "forbidden", "forbidden")
		return
	}

	mode := strings.ToLower(strings.TrimSpace(r.URL.Query().Get("mode")))
	if mode == "" {
		mode = "full"
	}
	pragma, ok := checkpointModes[mode]
	if !ok {
		WriteError(w, r, http.StatusBadRequest, "invalid_mode", "mode must be passive|full|restart|truncate")
		return
	}

	var busy, logFrames, checkpointed int
	err := h.DB.QueryRowContext(r.Context(), `PRAGMA wal_checkpoint(`+pragma+`);`).
		Scan(&busy, &logFrames, &checkpointed)
	if err != nil {
		writeErr(w, r, err, "db_error")
		return
	}

	writeJSON(w, checkpointResponse{
		Mode:         mode,
		Busy:         busy != 0,
		LogFrames:    logFrames,
		Checkpointed: checkpointed,
	})
}
