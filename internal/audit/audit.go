package audit

import (
	"context"
	"log"

	"alucam-admin/internal/models"

	"gorm.io/gorm"
)

// Sink records admin activity. Services call it after a successful mutation;
// a failed audit write must never fail the business operation.
type Sink interface {
	Record(ctx context.Context, actorID uint, entityType string, entityID uint, action, detail string)
}

// DBSink persists activity rows in the activity_logs table.
type DBSink struct{ DB *gorm.DB }

func NewDBSink(db *gorm.DB) *DBSink { return &DBSink{DB: db} }

func (s *DBSink) Record(ctx context.Context, actorID uint, entityType string, entityID uint, action, detail string) {
	entry := models.ActivityLog{
		UserID:     actorID,
		EntityType: entityType,
		EntityID:   entityID,
		Action:     action,
		Detail:     detail,
		RequestID:  RequestIDFromContext(ctx),
	}
	if err := s.DB.WithContext(ctx).Create(&entry).Error; err != nil {
		log.Printf("audit: failed to record %s %s/%d: %v", action, entityType, entityID, err)
	}
}

type ctxKey string

const requestIDCtxKey = ctxKey("requestID")

// WithRequestID stores the request correlation id in context.
func WithRequestID(ctx context.Context, rid string) context.Context {
	return context.WithValue(ctx, requestIDCtxKey, rid)
}

// RequestIDFromContext returns the request correlation id, or "".
func RequestIDFromContext(ctx context.Context) string {
	if v, ok := ctx.Value(requestIDCtxKey).(string); ok {
		return v
	}
	return ""
}

// Discard is a Sink that drops everything; handy in tests.
type Discard struct{}

func (Discard) Record(context.Context, uint, string, uint, string, string) {}
