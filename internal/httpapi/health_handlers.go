package httpapi

import (
	"context"
	"database/sql"
	"net/http"
	"time"

	"passionmatch-engine/internal/events"
	"passionmatch-engine/internal/passion"
)

type HealthHandler struct {
	DB      *sql.DB
	Catalog *passion.Catalog
	Hub     *events.Hub
	Started time.Time
}

type healthResponse struct {
	OK        bool   `json:"ok"`
	Time      string `json:"time"`
	UptimeSec int64  `json:"uptime_sec"`
	DB        string `json:"db"`
	Passions  int    `json:"passions"`
	Streams   int    `json:"sse_clients"`
	Dropped   uint64 `json:"sse_dropped"`
}

// Health reports 503 when the database does not answer a ping.
func (h HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	res := healthResponse{
		OK:        true,
		Time:      time.Now().Format(time.RFC3339),
		UptimeSec: int64(time.Since(h.Started).Seconds()),
		DB:        "ok",
		Passions:  h.Catalog.Len(),
		Streams:   h.Hub.Subscribers(),
		Dropped:   h.Hub.Dropped(),
	}
	status := http.StatusOK
	if err := h.DB.PingContext(ctx); err != nil {
		res.OK = false
		res.DB = "unavailable"
		status = http.StatusServiceUnavailable
	}
	WriteJSON(w, status, res)
}
