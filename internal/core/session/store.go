package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
)

// Keys of the two entries a session persists.
const (
	KeyUser     = "user"
	KeyInsights = "roiInsights"
)

// ErrMalformedState is returned when a stored entry cannot be decoded.
// Callers treat it as if the entry were absent.
var ErrMalformedState = errors.New("malformed persisted state")

// Store is the persisted state of a single session namespace.
type Store struct {
	kv        KV
	namespace string
}

// NewStore binds kv to one session namespace
func NewStore(kv KV, namespace string) *Store {
	return &Store{kv: kv, namespace: namespace}
}

// Namespace returns the session id the store is bound to
func (s *Store) Namespace() string {
	return s.namespace
}

// Load decodes the JSON entry under key into v. It reports false when the
// entry does not exist.
func (s *Store) Load(ctx context.Context, key string, v interface{}) (bool, error) {
	raw, ok, err := s.LoadRaw(ctx, key)
	if err != nil || !ok {
		return false, err
	}
	if err := json.Unmarshal([]byte(raw), v); err != nil {
		return false, fmt.Errorf("%w: %s: %v", ErrMalformedState, key, err)
	}
	return true, nil
}

// Save serialises v and replaces the entry under key.
func (s *Store) Save(ctx context.Context, key string, v interface{}) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", key, err)
	}
	return s.SaveRaw(ctx, key, string(data))
}

func (s *Store) LoadRaw(ctx context.Context, key string) (string, bool, error) {
	return s.kv.Get(ctx, s.namespace, key)
}

func (s *Store) SaveRaw(ctx context.Context, key, value string) error {
	return s.kv.Set(ctx, s.namespace, key, value)
}

func (s *Store) Delete(ctx context.Context, key string) error {
	return s.kv.Delete(ctx, s.namespace, key)
}
