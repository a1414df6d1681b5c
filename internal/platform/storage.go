package platform

import (
	"sync"

	"github.com/zjrosen/vitrine/internal/log"
)

// Storage is a persisted key-value store.
type Storage interface {
	Get(key string) (value string, ok bool, err error)
	Set(key, value string) error
	Remove(key string) error
}

// MemoryStorage is a Storage that lives for the process only.
type MemoryStorage struct {
	mu    sync.RWMutex
	items map[string]string
}

// NewMemoryStorage creates an empty MemoryStorage.
func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{items: make(map[string]string)}
}

func (m *MemoryStorage) Get(key string) (string, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.items[key]
	return v, ok, nil
}

func (m *MemoryStorage) Set(key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.items[key] = value
	return nil
}

func (m *MemoryStorage) Remove(key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.items, key)
	return nil
}

// ResilientStorage forwards to a primary Storage until it first fails, then
// serves the rest of the session from memory. Callers never see the error.
type ResilientStorage struct {
	mu       sync.Mutex
	primary  Storage
	fallback *MemoryStorage
	degraded bool
}

// NewResilientStorage wraps primary.
func NewResilientStorage(primary Storage) *ResilientStorage {
	return &ResilientStorage{primary: primary, fallback: NewMemoryStorage()}
}

// Degraded reports whether the primary store has been abandoned.
func (r *ResilientStorage) Degraded() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.degraded
}

func (r *ResilientStorage) Get(key string) (string, bool, error) {
	if s := r.active(); s != nil {
		v, ok, err := s.Get(key)
		if err == nil {
			return v, ok, nil
		}
		r.degrade("get", key, err)
	}
	return r.fallback.Get(key)
}

func (r *ResilientStorage) Set(key, value string) error {
	if s := r.active(); s != nil {
		err := s.Set(key, value)
		if err == nil {
			return nil
		}
		r.degrade("set", key, err)
	}
	return r.fallback.Set(key, value)
}

func (r *ResilientStorage) Remove(key string) error {
	if s := r.active(); s != nil {
		err := s.Remove(key)
		if err == nil {
			return nil
		}
		r.degrade("remove", key, err)
	}
	return r.fallback.Remove(key)
}

// active returns the primary store, or nil once degraded.
func (r *ResilientStorage) active() Storage {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.degraded || r.primary == nil {
		return nil
	}
	return r.primary
}

func (r *ResilientStorage) degrade(op, key string, err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.degraded {
		return
	}
	r.degraded = true
	log.WarnErr(log.CatPlatform, "Storage unavailable, preferences kept in memory for this session", err,
		"op", op, "key", key)
}
