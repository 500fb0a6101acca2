package session

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Entry is one persisted session value.
type Entry struct {
	SessionID string `gorm:"column:session_id;type:varchar(64);primaryKey" json:"session_id"`
	Key       string `gorm:"column:entry_key;type:varchar(64);primaryKey" json:"key"`
	Value     string `gorm:"column:value;type:text;not null" json:"value"`
	UpdatedAt int64  `gorm:"column:updated_at;not null;index" json:"updated_at"` // unix seconds
}

// TableName specifies the table name
func (Entry) TableName() string {
	return "session_entries"
}

// GormKV stores session entries in a relational table (sqlite or postgres).
type GormKV struct {
	db  *gorm.DB
	now func() time.Time
}

// NewGormKV creates a new gorm-backed store
func NewGormKV(db *gorm.DB) *GormKV {
	return &GormKV{db: db, now: time.Now}
}

func (s *GormKV) Get(ctx context.Context, namespace, key string) (string, bool, error) {
	var entry Entry
	err := s.db.WithContext(ctx).
		Where("session_id = ? AND entry_key = ?", namespace, key).
		First(&entry).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("failed to read session entry %s/%s: %w", namespace, key, err)
	}
	return entry.Value, true, nil
}

func (s *GormKV) Set(ctx context.Context, namespace, key, value string) error {
	entry := Entry{
		SessionID: namespace,
		Key:       key,
		Value:     value,
		UpdatedAt: s.now().Unix(),
	}

	err := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "session_id"}, {Name: "entry_key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(&entry).Error
	if err != nil {
		return fmt.Errorf("failed to write session entry %s/%s: %w", namespace, key, err)
	}
	return nil
}

func (s *GormKV) Delete(ctx context.Context, namespace, key string) error {
	err := s.db.WithContext(ctx).
		Where("session_id = ? AND entry_key = ?", namespace, key).
		Delete(&Entry{}).Error
	if err != nil {
		return fmt.Errorf("failed to delete session entry %s/%s: %w", namespace, key, err)
	}
	return nil
}

func (s *GormKV) PurgeBefore(ctx context.Context, cutoff time.Time) ([]string, error) {
	var stale []string
	err := s.db.WithContext(ctx).Model(&Entry{}).
		Group("session_id").
		Having("MAX(updated_at) < ?", cutoff.Unix()).
		Pluck("session_id", &stale).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list stale sessions: %w", err)
	}
	if len(stale) == 0 {
		return nil, nil
	}

	if err := s.db.WithContext(ctx).Where("session_id IN ?", stale).Delete(&Entry{}).Error; err != nil {
		return nil, fmt.Errorf("failed to purge stale sessions: %w", err)
	}
	return stale, nil
}
