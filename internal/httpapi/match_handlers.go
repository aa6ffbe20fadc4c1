package httpapi

import (
	"net/http"
	"strconv"

	"passionmatch-engine/internal/domain"
	"passionmatch-engine/internal/passion"
	"passionmatch-engine/internal/profile"
)

type MatchHandler struct {
	Matcher  *passion.Matcher
	Profiles *profile.Manager
}

type matchRequest struct {
	Hotels []domain.RawHotel `json:"hotels"`
	// Passions overrides the caller's saved selection when present.
	Passions *[]string `json:"passions"`
}

type matchResponse struct {
	Passions []string            `json:"passions"`
	Results  []passion.HotelMatch `json:"results"`
}

func (h MatchHandler) Match(w http.ResponseWriter, r *http.Request) {
	var req matchRequest
	if err := decodeLenientJSON(w, r, &req); err != nil {
		WriteError(w, r, http.StatusBadRequest, "invalid_json", err.Error())
		return
	}

	var selected []string
	if req.Passions != nil {
		selected = *req.Passions
	} else {
		selected = h.Profiles.For(userFrom(r)).Selected()
	}
	if selected == nil {
		selected = []string{}
	}

	hotels := make([]domain.Hotel, 0, len(req.Hotels))
	for _, raw := range req.Hotels {
		hotels = append(hotels, raw.Normalize())
	}

	writeJSON(w, matchResponse{
		Passions: selected,
		Results:  h.Matcher.RankHotels(hotels, selected),
	})
}

func (h MatchHandler) Strength(w http.ResponseWriter, r *http.Request) {
	score, err := strconv.Atoi(r.URL.Query().Get("score"))
	if err != nil {
		WriteError(w, r, http.StatusBadRequest, "invalid_score", "score must be an integer")
		return
	}
	writeJSON(w, map[string]any{
		"score":    score,
		"strength": passion.Strength(score),
	})
}
