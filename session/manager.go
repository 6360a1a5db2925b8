package session

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

type managedStore struct {
	store    *Store
	lastSeen time.Time
}

// Manager hands out one Store per browser session and forgets idle ones.
type Manager struct {
	mu       sync.Mutex
	sessions map[string]*managedStore
	ttl      time.Duration
	now      func() time.Time
}

func NewManager(ttl time.Duration) *Manager {
	return &Manager{
		sessions: make(map[string]*managedStore),
		ttl:      ttl,
		now:      time.Now,
	}
}

// Acquire returns the store for id, creating a fresh session when id is empty,
// unknown or expired. The returned id is the one the caller must keep using.
func (m *Manager) Acquire(id string) (string, *Store) {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.now()
	if entry, ok := m.sessions[id]; ok && !m.expired(entry, now) {
		entry.lastSeen = now
		return id, entry.store
	}
	delete(m.sessions, id)

	id = uuid.NewString()
	store := NewStore()
	store.now = m.now
	m.sessions[id] = &managedStore{store: store, lastSeen: now}
	return id, store
}

// End clears and removes a session.
func (m *Manager) End(id string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if entry, ok := m.sessions[id]; ok {
		entry.store.Clear()
		delete(m.sessions, id)
	}
}

// Sweep removes expired sessions and returns how many were dropped.
func (m *Manager) Sweep() int {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.now()
	removed := 0
	for id, entry := range m.sessions {
		if m.expired(entry, now) {
			entry.store.Clear()
			delete(m.sessions, id)
			removed++
		}
	}
	return removed
}

func (m *Manager) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sessions)
}

func (m *Manager) expired(entry *managedStore, now time.Time) bool {
	return m.ttl > 0 && now.Sub(entry.lastSeen) > m.ttl
}
