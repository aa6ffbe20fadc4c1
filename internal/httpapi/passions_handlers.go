package httpapi

import (
	"net/http"

	"passionmatch-engine/internal/passion"
)

type PassionsHandler struct {
	Catalog *passion.Catalog
}

func (h PassionsHandler) List(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, h.Catalog.All())
}

func (h PassionsHandler) GetByPath(w http.ResponseWriter, r *http.Request) {
	id := pathID(r, "/passions/")
	c, ok := h.Catalog.Get(id)
	if !ok {
		WriteError(w, r, http.StatusNotFound, "not_found", "unknown passion "+id)
		return
	}
	writeJSON(w, c)
}
