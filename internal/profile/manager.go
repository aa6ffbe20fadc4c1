package profile

import (
	"strings"
	"sync"

	"github.com/rs/zerolog"

	"passionmatch-engine/internal/passion"
)

// DefaultUser is used when a caller does not identify itself.
const DefaultUser = "default"

// Manager hands out one loaded Profile per user over a shared store.
type Manager struct {
	mu       sync.Mutex
	store    Store
	catalog  *passion.Catalog
	log      zerolog.Logger
	profiles map[string]*Profile
}

func NewManager(store Store, catalog *passion.Catalog, log zerolog.Logger) *Manager {
	return &Manager{
		store:    store,
		catalog:  catalog,
		log:      log,
		profiles: make(map[string]*Profile),
	}
}

// For returns the user's profile, loading it from the store on first use.
func (m *Manager) For(userID string) *Profile {
	userID = NormalizeUser(userID)

	m.mu.Lock()
	defer m.mu.Unlock()

	if p, ok := m.profiles[userID]; ok {
		return p
	}
	p := New(m.store, m.catalog, KeyFor(userID), m.log)
	p.Load()
	m.profiles[userID] = p
	return p
}

// KeyFor maps a user id to its storage key. The default user keeps the bare
// key so a single-user install reads the same entry.
func KeyFor(userID string) string {
	userID = NormalizeUser(userID)
	if userID == DefaultUser {
		return DefaultKey
	}
	return DefaultKey + ":" + userID
}

func NormalizeUser(userID string) string {
	userID = strings.ToLower(strings.TrimSpace(userID))
	if userID == "" {
		return DefaultUser
	}
	return userID
}
