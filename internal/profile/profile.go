// Package profile keeps a user's selected passions and persists them
// through a key-value Store after every change.
package profile

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/rs/zerolog"

	"passionmatch-engine/internal/passion"
)

// DefaultKey is the storage key of the default user's selection.
const DefaultKey = "passion_profile"

var ErrEmptyID = errors.New("passion id is empty")

// Store is the durable key-value capability a Profile persists through.
// Values are opaque strings; a missing key reports ok=false.
type Store interface {
	Get(key string) (value string, ok bool, err error)
	Set(key, value string) error
}

// Profile is one user's passion selection. Methods are safe for concurrent
// use; every mutation is written to the store before returning.
type Profile struct {
	mu       sync.Mutex
	store    Store
	catalog  *passion.Catalog
	key      string
	log      zerolog.Logger
	selected []string
}

func New(store Store, catalog *passion.Catalog, key string, log zerolog.Logger) *Profile {
	if key == "" {
		key = DefaultKey
	}
	return &Profile{
		store:    store,
		catalog:  catalog,
		key:      key,
		log:      log.With().Str("component", "profile").Str("key", key).Logger(),
		selected: []string{},
	}
}

// Load replaces the in-memory selection with the stored one. Missing,
// unreadable or corrupt data yields an empty selection; the failure is
// logged and never returned.
func (p *Profile) Load() {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.selected = []string{}

	raw, ok, err := p.store.Get(p.key)
	if err != nil {
		p.log.Warn().Err(err).Msg("read selection failed; starting empty")
		return
	}
	if !ok || strings.TrimSpace(raw) == "" {
		return
	}

	var ids []string
	if err := json.Unmarshal([]byte(raw), &ids); err != nil {
		p.log.Warn().Err(err).Int("bytes", len(raw)).Msg("corrupt selection; starting empty")
		return
	}

	seen := map[string]bool{}
	for _, id := range ids {
		id = strings.TrimSpace(id)
		if id == "" || seen[id] {
			continue
		}
		seen[id] = true
		p.selected = append(p.selected, id)
	}
}

// Toggle adds id when absent and removes it when present, then persists.
// It reports whether id is selected afterwards. A write error is returned
// but the in-memory selection keeps the change.
func (p *Profile) Toggle(id string) (selected bool, err error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return false, ErrEmptyID
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	if i := p.indexOf(id); i >= 0 {
		p.selected = append(p.selected[:i], p.selected[i+1:]...)
		selected = false
	} else {
		p.selected = append(p.selected, id)
		selected = true
	}
	return selected, p.persist()
}

func (p *Profile) IsSelected(id string) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.indexOf(id) >= 0
}

// Selected returns the selected ids in insertion order.
func (p *Profile) Selected() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]string{}, p.selected...)
}

// ClearAll empties the selection and persists.
func (p *Profile) ClearAll() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.selected = []string{}
	return p.persist()
}

// SelectedPassions resolves the selection against the catalog, dropping ids
// the catalog does not know.
func (p *Profile) SelectedPassions() []passion.Category {
	ids := p.Selected()
	out := make([]passion.Category, 0, len(ids))
	for _, id := range ids {
		if c, ok := p.catalog.Get(id); ok {
			out = append(out, c)
		}
	}
	return out
}

func (p *Profile) indexOf(id string) int {
	for i, s := range p.selected {
		if s == id {
			return i
		}
	}
	return -1
}

// persist must be called with mu held.
func (p *Profile) persist() error {
	b, err := json.Marshal(p.selected)
	if err != nil {
		return fmt.Errorf("marshal selection: %w", err)
	}
	if err := p.store.Set(p.key, string(b)); err != nil {
		return fmt.Errorf("persist selection: %w", err)
	}
	return nil
}
