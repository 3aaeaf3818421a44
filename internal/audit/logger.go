package audit

import (
	"context"
	"encoding/json"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/reception-scheduler/internal/models"
)

// DBSink writes events to the audit_logs table.
type DBSink struct {
	db *gorm.DB
}

func NewDBSink(db *gorm.DB) *DBSink {
	return &DBSink{db: db}
}

func (s *DBSink) Write(ctx context.Context, ev Event) error {
	row := models.AuditLog{
		RequestID: ev.RequestID,
		Action:    ev.Action,
		Entity:    ev.Entity,
		EntityID:  ev.EntityID,
		Metadata:  encodeMetadata(ev.Metadata),
	}
	return s.db.WithContext(ctx).Create(&row).Error
}

// LogSink writes events as structured log lines.
type LogSink struct {
	log *zap.Logger
}

func NewLogSink(log *zap.Logger) *LogSink {
	return &LogSink{log: log.Named("audit")}
}

func (s *LogSink) Write(_ context.Context, ev Event) error {
	fields := []zap.Field{
		zap.String("request_id", ev.RequestID),
		zap.String("entity", ev.Entity),
	}
	if ev.EntityID != nil {
		fields = append(fields, zap.Uint("entity_id", *ev.EntityID))
	}
	if ev.Metadata != nil {
		fields = append(fields, zap.Any("metadata", ev.Metadata))
	}
	s.log.Info(ev.Action, fields...)
	return nil
}

func encodeMetadata(meta any) string {
	if meta == nil {
		return ""
	}
	b, err := json.Marshal(meta)
	if err != nil {
		return ""
	}
	return string(b)
}
