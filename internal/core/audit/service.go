package audit

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/rs/zerolog/log"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/MuhamadAgungGumelar/clarity-dashboard/internal/core/analytics"
)

// Recorder receives dashboard events. Recording never fails the action that
// produced the event.
type Recorder interface {
	Record(ctx context.Context, e Event)
}

// Service provides audit logging functionality
type Service struct {
	db         *gorm.DB
	aggregator *analytics.Aggregator
}

// NewService creates a new audit service
func NewService(db *gorm.DB) *Service {
	return &Service{db: db, aggregator: analytics.NewAggregator(db)}
}

// Log creates a new audit log entry
func (s *Service) Log(ctx context.Context, e *Event) error {
	if err := s.db.WithContext(ctx).Create(e).Error; err != nil {
		return fmt.Errorf("failed to create audit event: %w", err)
	}
	return nil
}

// Record stores e and logs failures at warn
func (s *Service) Record(ctx context.Context, e Event) {
	if err := s.Log(ctx, &e); err != nil {
		log.Warn().Err(err).Str("action", e.Action).Msg("⚠️ Failed to record event")
	}
}

// Recent returns the latest events, newest first
func (s *Service) Recent(ctx context.Context, limit int) ([]Event, error) {
	if limit < 1 {
		limit = 50
	}

	var events []Event
	err := s.db.WithContext(ctx).
		Order("created_at DESC").
		Limit(limit).
		Find(&events).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get recent events: %w", err)
	}

	return events, nil
}

// Activity counts events per action over period (see analytics.GetDateRange)
func (s *Service) Activity(ctx context.Context, period string, recent int) (*ActivityReport, error) {
	counts, err := s.aggregator.CountBy(ctx, Event{}.TableName(), "action", analytics.GetDateRange(period))
	if err != nil {
		return nil, fmt.Errorf("failed to get action stats: %w", err)
	}

	events, err := s.Recent(ctx, recent)
	if err != nil {
		return nil, err
	}

	var total int64
	for _, n := range counts {
		total += n
	}

	return &ActivityReport{Period: period, Total: total, Actions: counts, Recent: events}, nil
}

// Metadata encodes v for Event.Metadata, returning nil on failure
func Metadata(v interface{}) datatypes.JSON {
	if v == nil {
		return nil
	}
	data, err := json.Marshal(v)
	if err != nil {
		log.Warn().Err(err).Msg("⚠️ Failed to serialize event metadata")
		return nil
	}
	return datatypes.JSON(data)
}
