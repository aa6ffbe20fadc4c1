package httpapi

import (
	"net/http"
	"strings"

	"passionmatch-engine/internal/events"
	"passionmatch-engine/internal/passion"
	"passionmatch-engine/internal/profile"
)

type ProfileHandler struct {
	Catalog  *passion.Catalog
	Profiles *profile.Manager
	Hub      *events.Hub
}

type profileResponse struct {
	User     string             `json:"user"`
	Selected []string           `json:"selected"`
	Passions []passion.Category `json:"passions"`
}

type toggleRequest struct {
	ID string `json:"id"`
}

type toggleResponse struct {
	profileResponse
	ID         string `json:"id"`
	IsSelected bool   `json:"isSelected"`
}

func snapshot(user string, p *profile.Profile) profileResponse {
	return profileResponse{
		User:     user,
		Selected: p.Selected(),
		Passions: p.SelectedPassions(),
	}
}

func (h ProfileHandler) Get(w http.ResponseWriter, r *http.Request) {
	user := userFrom(r)
	writeJSON(w, snapshot(user, h.Profiles.For(user)))
}

func (h ProfileHandler) Toggle(w http.ResponseWriter, r *http.Request) {
	var req toggleRequest
	if err := decodeJSON(w, r, &req); err != nil {
		WriteError(w, r, http.StatusBadRequest, "invalid_json", err.Error())
		return
	}
	id := strings.TrimSpace(req.ID)
	if _, ok := h.Catalog.Get(id); !ok && id != "" {
		WriteError(w, r, http.StatusBadRequest, "unknown_passion", "unknown passion "+id)
		return
	}

	user := userFrom(r)
	p := h.Profiles.For(user)
	selected, err := p.Toggle(id)
	if err != nil {
		writeErr(w, r, err, "persist_failed")
		return
	}

	snap := snapshot(user, p)
	h.Hub.Emit(RequestIDFrom(r.Context()), events.TypeProfileUpdated, events.ProfileUpdated{
		User:     user,
		Selected: snap.Selected,
	})
	writeJSON(w, toggleResponse{profileResponse: snap, ID: id, IsSelected: selected})
}

func (h ProfileHandler) Clear(w http.ResponseWriter, r *http.Request) {
	user := userFrom(r)
	p := h.Profiles.For(user)
	if err := p.ClearAll(); err != nil {
		writeErr(w, r, err, "persist_failed")
		return
	}
	h.Hub.Emit(RequestIDFrom(r.Context()), events.TypeProfileUpdated, events.ProfileUpdated{
		User:     user,
		Selected: []string{},
	})
	writeJSON(w, snapshot(user, p))
}
