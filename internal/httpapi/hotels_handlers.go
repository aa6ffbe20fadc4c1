package httpapi

import (
	"database/sql"
	"net/http"
	"strconv"

	"passionmatch-engine/internal/events"
	"passionmatch-engine/internal/passion"
	"passionmatch-engine/internal/profile"
	"passionmatch-engine/internal/store"
)

type HotelsHandler struct {
	DB       *sql.DB
	Hub      *events.Hub
	Matcher  *passion.Matcher
	Profiles *profile.Manager
}

// List returns stored hotels ranked against the caller's passions.
func (h HotelsHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	minScore := 0
	if v := q.Get("min_score"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			WriteError(w, r, http.StatusBadRequest, "invalid_min_score", "min_score must be an integer")
			return
		}
		minScore = n
	}
	limit := 0
	if v := q.Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			WriteError(w, r, http.StatusBadRequest, "invalid_limit", "limit must be a non-negative integer")
			return
		}
		limit = n
	}

	hotels, err := store.ListHotels(r.Context(), h.DB, store.ListHotelsOpts{
		Source: q.Get("source"),
		Window: q.Get("window"),
		Limit:  5000,
	})
	if err != nil {
		writeErr(w, r, err, "db_error")
		return
	}

	selected := h.Profiles.For(userFrom(r)).Selected()
	ranked := h.Matcher.RankHotels(hotels, selected)

	out := make([]passion.HotelMatch, 0, len(ranked))
	for _, m := range ranked {
		if m.Result.TotalScore < minScore {
			continue
		}
		out = append(out, m)
		if limit > 0 && len(out) == limit {
			break
		}
	}
	writeJSON(w, out)
}

func (h HotelsHandler) DeleteByPath(w http.ResponseWriter, r *http.Request) {
	id := pathID(r, "/hotels/")
	if id == "" {
		WriteError(w, r, http.StatusBadRequest, "invalid_id", "missing hotel id")
		return
	}

	hotel, found, err := store.GetHotel(r.Context(), h.DB, id)
	if err != nil {
		writeErr(w, r, err, "db_error")
		return
	}
	if !found {
		WriteError(w, r, http.StatusNotFound, "not_found", "unknown hotel "+id)
		return
	}

	deleted, err := store.DeleteHotel(r.Context(), h.DB, id)
	if err != nil {
		writeErr(w, r, err, "db_error")
		return
	}
	if !deleted {
		// removed concurrently between lookup and delete
		WriteError(w, r, http.StatusNotFound, "not_found", "unknown hotel "+id)
		return
	}

	h.Hub.Emit(RequestIDFrom(r.Context()), events.TypeHotelDeleted, events.HotelDeleted{ID: id, Name: hotel.Name})
	writeJSON(w, map[string]any{"ok": true, "id": id, "name": hotel.Name})
}
