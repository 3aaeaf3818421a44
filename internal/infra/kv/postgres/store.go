// Package postgres stores key/value pairs in the kv_entries table through
// gorm.
package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/BruksfildServices01/reception-scheduler/internal/kv/core"
	"github.com/BruksfildServices01/reception-scheduler/internal/models"
)

type Store struct {
	db *gorm.DB
}

// New wraps an open, migrated connection. The connection is owned by the
// caller; Close does not release it.
func New(db *gorm.DB) (*Store, error) {
	if db == nil {
		return nil, errors.New("postgres driver requires a database connection")
	}
	return &Store{db: db}, nil
}

func (s *Store) Driver() core.Driver { return core.DriverPostgres }

func (s *Store) Get(ctx context.Context, key string) ([]byte, error) {
	var entry models.KVEntry
	err := s.db.WithContext(ctx).
		Where("key = ?", key).
		First(&entry).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, core.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", key, err)
	}
	return entry.Value, nil
}

func (s *Store) Set(ctx context.Context, key string, value []byte) error {
	entry := models.KVEntry{
		Key:       key,
		Value:     value,
		UpdatedAt: time.Now().UTC(),
	}

	if err := upsert(s.db.WithContext(ctx), &entry).Error; err != nil {
		return fmt.Errorf("save %s: %w", key, err)
	}
	return nil
}

func (s *Store) Close() error { return nil }

func upsert(tx *gorm.DB, entry *models.KVEntry) *gorm.DB {
	return tx.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(entry)
}
