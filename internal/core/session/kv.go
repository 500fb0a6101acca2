package session

import (
	"context"
	"time"
)

// KV is a durable string key-value store partitioned by namespace (one
// namespace per user session).
type KV interface {
	Get(ctx context.Context, namespace, key string) (string, bool, error)
	Set(ctx context.Context, namespace, key, value string) error
	Delete(ctx context.Context, namespace, key string) error
}

// Purger is implemented by backends that do not expire entries on their own.
// PurgeBefore drops every namespace whose newest entry is older than cutoff
// and returns the purged namespaces.
type Purger interface {
	PurgeBefore(ctx context.Context, cutoff time.Time) ([]string, error)
}
