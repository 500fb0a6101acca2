package dashboard

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"
	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/rs/zerolog/log"

	"github.com/MuhamadAgungGumelar/clarity-dashboard/internal/core/metrics"
	"github.com/MuhamadAgungGumelar/clarity-dashboard/internal/core/session"
)

// Registry keeps recently used sessions in memory. Evicted sessions are
// rebuilt from the store on the next Get.
type Registry struct {
	mu       sync.Mutex
	cache    *lru.Cache[string, *Session]
	kv       session.KV
	deps     Deps
	observer metrics.Observer
}

// NewRegistry holds at most size live sessions
func NewRegistry(size int, kv session.KV, deps Deps) (*Registry, error) {
	r := &Registry{kv: kv, deps: deps, observer: deps.Observer}
	if r.observer == nil {
		r.observer = (*metrics.Prometheus)(nil)
	}

	cache, err := lru.NewWithEvict[string, *Session](size, func(id string, _ *Session) {
		log.Debug().Str("session", id).Msg("♻️ Session evicted from registry")
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create session cache: %w", err)
	}
	r.cache = cache
	return r, nil
}

// Create starts a new anonymous session
func (r *Registry) Create(ctx context.Context) (*Session, error) {
	return r.Get(ctx, uuid.NewString())
}

// Get returns the live session with id, rehydrating it when needed
func (r *Registry) Get(ctx context.Context, id string) (*Session, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if s, ok := r.cache.Get(id); ok {
		return s, nil
	}

	s, err := NewSession(ctx, session.NewStore(r.kv, id), r.deps)
	if err != nil {
		return nil, fmt.Errorf("failed to load session %s: %w", id, err)
	}
	r.cache.Add(id, s)
	r.observer.SetLiveSessions(r.cache.Len())
	return s, nil
}

// Remove drops sessions from memory
func (r *Registry) Remove(ids ...string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, id := range ids {
		r.cache.Remove(id)
	}
	r.observer.SetLiveSessions(r.cache.Len())
}

func (r *Registry) Len() int {
	return r.cache.Len()
}
