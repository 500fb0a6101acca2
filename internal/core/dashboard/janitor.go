package dashboard

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog/log"

	"github.com/MuhamadAgungGumelar/clarity-dashboard/internal/core/session"
)

// Janitor periodically purges sessions whose stored state has not changed
// for longer than ttl.
type Janitor struct {
	cron     *cron.Cron
	purger   session.Purger
	registry *Registry
	ttl      time.Duration
	now      func() time.Time
}

func NewJanitor(purger session.Purger, registry *Registry, ttl time.Duration) *Janitor {
	return &Janitor{
		cron:     cron.New(),
		purger:   purger,
		registry: registry,
		ttl:      ttl,
		now:      time.Now,
	}
}

// Start schedules Sweep with a cron expression (e.g. "@every 10m")
func (j *Janitor) Start(schedule string) error {
	_, err := j.cron.AddFunc(schedule, func() {
		if _, err := j.Sweep(context.Background()); err != nil {
			log.Error().Err(err).Msg("❌ Session sweep failed")
		}
	})
	if err != nil {
		return fmt.Errorf("failed to add cron job: %w", err)
	}

	log.Info().Str("schedule", schedule).Dur("ttl", j.ttl).Msg("⏰ Starting session janitor")
	j.cron.Start()
	return nil
}

// Stop waits for a running sweep to finish
func (j *Janitor) Stop() {
	<-j.cron.Stop().Done()
	log.Info().Msg("✅ Session janitor stopped")
}

// Sweep purges stale sessions and returns how many were removed
func (j *Janitor) Sweep(ctx context.Context) (int, error) {
	ids, err := j.purger.PurgeBefore(ctx, j.now().Add(-j.ttl))
	if err != nil {
		return 0, fmt.Errorf("failed to purge sessions: %w", err)
	}
	if j.registry != nil {
		j.registry.Remove(ids...)
	}
	if len(ids) > 0 {
		log.Info().Int("count", len(ids)).Msg("🧹 Purged idle sessions")
	}
	return len(ids), nil
}
