package session

import (
	"context"
	"sync"
	"time"
)

type memoryEntry struct {
	value     string
	updatedAt time.Time
}

// MemoryKV keeps entries in process memory. Used by tests and the terminal
// client's ephemeral mode.
type MemoryKV struct {
	mu   sync.Mutex
	data map[string]map[string]memoryEntry
	now  func() time.Time
}

func NewMemoryKV() *MemoryKV {
	return &MemoryKV{
		data: make(map[string]map[string]memoryEntry),
		now:  time.Now,
	}
}

func (m *MemoryKV) Get(_ context.Context, namespace, key string) (string, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	entry, ok := m.data[namespace][key]
	return entry.value, ok, nil
}

func (m *MemoryKV) Set(_ context.Context, namespace, key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	ns, ok := m.data[namespace]
	if !ok {
		ns = make(map[string]memoryEntry)
		m.data[namespace] = ns
	}
	ns[key] = memoryEntry{value: value, updatedAt: m.now()}
	return nil
}

func (m *MemoryKV) Delete(_ context.Context, namespace, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if ns, ok := m.data[namespace]; ok {
		delete(ns, key)
		if len(ns) == 0 {
			delete(m.data, namespace)
		}
	}
	return nil
}

func (m *MemoryKV) PurgeBefore(_ context.Context, cutoff time.Time) ([]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var purged []string
	for namespace, entries := range m.data {
		var newest time.Time
		for _, e := range entries {
			if e.updatedAt.After(newest) {
				newest = e.updatedAt
			}
		}
		if newest.Before(cutoff) {
			delete(m.data, namespace)
			purged = append(purged, namespace)
		}
	}
	return purged, nil
}
