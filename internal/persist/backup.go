package persist

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/BruksfildServices01/reception-scheduler/internal/kv/core"
	"github.com/BruksfildServices01/reception-scheduler/internal/models"
	"github.com/BruksfildServices01/reception-scheduler/internal/store"
)

const DefaultBackupSchedule = "@daily"

// Backup is a full copy of the store taken at one instant.
type Backup struct {
	TakenAt      time.Time            `json:"taken_at"`
	Providers    []models.Provider    `json:"providers"`
	Products     []models.Product     `json:"products"`
	Cages        []models.Cage        `json:"cages"`
	Appointments []models.Appointment `json:"appointments"`
	Sequences    store.Sequences      `json:"sequences"`
}

func BackupKey(at time.Time) string {
	return BackupPrefix + at.UTC().Format("20060102T150405Z")
}

// WriteBackup stores a snapshot of st under a timestamped key and returns
// the key.
func WriteBackup(ctx context.Context, kv core.Store, st *store.Store, now time.Time) (string, error) {
	snap := st.Snapshot()
	b := Backup{
		TakenAt:      now,
		Providers:    snap.Providers,
		Products:     snap.Products,
		Cages:        snap.Cages,
		Appointments: snap.Appointments,
		Sequences:    snap.Sequences,
	}

	key := BackupKey(now)
	if err := core.SetJSON(ctx, kv, key, b); err != nil {
		return "", fmt.Errorf("write backup: %w", err)
	}
	return key, nil
}

// StartBackups runs WriteBackup on the given cron schedule. The returned cron
// must be stopped by the caller.
func StartBackups(schedule string, kv core.Store, st *store.Store, now func() time.Time, log *zap.Logger) (*cron.Cron, error) {
	if schedule == "" {
		schedule = DefaultBackupSchedule
	}
	if log == nil {
		log = zap.NewNop()
	}

	c := cron.New()
	_, err := c.AddFunc(schedule, func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
		defer cancel()

		key, err := WriteBackup(ctx, kv, st, now())
		if err != nil {
			log.Error("backup failed", zap.Error(err))
			return
		}
		log.Info("backup written", zap.String("key", key))
	})
	if err != nil {
		return nil, fmt.Errorf("backup schedule %q: %w", schedule, err)
	}

	c.Start()
	log.Info("backup scheduler started", zap.String("schedule", schedule))
	return c, nil
}
