package events

import (
	"encoding/json"
	"time"
)

const (
	TypePing           = "ping"
	TypeProfileUpdated = "profile_updated"
	TypeHotelAdded     = "hotel_added"
	TypeHotelDeleted   = "hotel_deleted"
	TypeIngestFinished = "ingest_finished"
	TypeConfigUpdated  = "config_updated"
)

type Event struct {
	Type      string          `json:"type"`
	Version   int             `json:"v"`
	At        time.Time       `json:"at"`
	RequestID string          `json:"request_id,omitempty"`
	Data      json.RawMessage `json:"data,omitempty"`
}

// MakeEvent renders the JSON envelope sent on the SSE stream.
func MakeEvent(reqID, typ string, v int, data any) string {
	var raw json.RawMessage
	if data != nil {
		b, _ := json.Marshal(data)
		raw = b
	}
	e := Event{
		Type:      typ,
		Version:   v,
		At:        time.Now().UTC(),
		RequestID: reqID,
		Data:      raw,
	}
	b, _ := json.Marshal(e)
	return string(b)
}

type ProfileUpdated struct {
	User     string   `json:"user"`
	Selected []string `json:"selected"`
}

type HotelAdded struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Source     string `json:"source"`
	TotalScore int    `json:"totalScore"`
	Strength   string `json:"strength"`
}

type HotelDeleted struct {
	ID   string `json:"id"`
	Name string `json:"name,omitempty"`
}

type IngestFinished struct {
	Added int    `json:"added"`
	Error string `json:"error,omitempty"`
}

type ConfigUpdated struct {
	Path     string   `json:"path"`
	Warnings []string `json:"warnings,omitempty"`
}
