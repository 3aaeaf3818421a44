// Package kv selects the key/value backend that persists store snapshots.
package kv

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/BruksfildServices01/reception-scheduler/internal/infra/kv/memory"
	"github.com/BruksfildServices01/reception-scheduler/internal/infra/kv/postgres"
	"github.com/BruksfildServices01/reception-scheduler/internal/infra/kv/redis"
	"github.com/BruksfildServices01/reception-scheduler/internal/infra/kv/s3"
	"github.com/BruksfildServices01/reception-scheduler/internal/infra/kv/sqlite"
	"github.com/BruksfildServices01/reception-scheduler/internal/kv/core"
)

type (
	Store  = core.Store
	Driver = core.Driver
)

const (
	DriverMemory   = core.DriverMemory
	DriverSQLite   = core.DriverSQLite
	DriverPostgres = core.DriverPostgres
	DriverRedis    = core.DriverRedis
	DriverS3       = core.DriverS3
)

var ErrNotFound = core.ErrNotFound

// Options carries the settings of every driver; only the selected driver's
// fields are read.
type Options struct {
	Driver Driver

	SQLitePath string
	// DB is the migrated connection used by the postgres driver.
	DB *gorm.DB

	Redis redis.Config
	S3    s3.Config
}

// Open builds the backend named by opts.Driver. An empty driver means sqlite.
func Open(ctx context.Context, opts Options) (Store, error) {
	driver := opts.Driver
	if driver == "" {
		driver = DriverSQLite
	}

	switch driver {
	case DriverMemory:
		return memory.New(), nil
	case DriverSQLite:
		return sqlite.New(opts.SQLitePath)
	case DriverPostgres:
		return postgres.New(opts.DB)
	case DriverRedis:
		return redis.New(ctx, opts.Redis)
	case DriverS3:
		return s3.New(opts.S3)
	default:
		return nil, fmt.Errorf("unknown storage driver %q", driver)
	}
}
