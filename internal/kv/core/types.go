// Package core defines the key/value contract used to persist store
// snapshots. Each key holds one opaque value, normally a JSON document.
package core

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
)

// Driver identifies a concrete key/value backend.
type Driver string

const (
	DriverMemory   Driver = "memory"   // in-memory (tests)
	DriverSQLite   Driver = "sqlite"   // local file (default)
	DriverPostgres Driver = "postgres" // kv_entries table through gorm
	DriverRedis    Driver = "redis"
	DriverS3       Driver = "s3" // one object per key
)

// ErrNotFound is returned by Get when the key has never been written.
var ErrNotFound = errors.New("kv: key not found")

// Store is a flat, last-write-wins key/value store.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Driver() Driver
	Close() error
}

// GetJSON decodes the value under key into v. It reports false, nil when the
// key does not exist.
func GetJSON(ctx context.Context, s Store, key string, v any) (bool, error) {
	raw, err := s.Get(ctx, key)
	if errors.Is(err, ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if err := json.Unmarshal(raw, v); err != nil {
		return false, fmt.Errorf("decode %s: %w", key, err)
	}
	return true, nil
}

func SetJSON(ctx context.Context, s Store, key string, v any) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	return s.Set(ctx, key, raw)
}
