package repository

import (
	"context"
	"time"

	"stayhub/internal/infra"
	"stayhub/internal/infra/db"
)

type NotificationRepository struct {
	db db.DBTX
}

func NewNotificationRepository(db db.DBTX) *NotificationRepository {
	return &NotificationRepository{db: db}
}

// CreateJob enqueues a delivery job. A separate worker drains the
// table; nothing on the request path waits for delivery.
func (r *NotificationRepository) CreateJob(ctx context.Context, kind, topic string, payload []byte, runAt time.Time) error {
	query, args, err := psql.Insert("notification_jobs").
		Columns("kind", "topic", "payload", "run_at", "status").
		Values(kind, topic, payload, runAt, "queued").
		ToSql()
	if err != nil {
		return infra.WrapRepoErr("failed to build notification job insert", err)
	}

	if _, err := r.db.Exec(ctx, query, args...); err != nil {
		return infra.WrapRepoErr("failed to create notification job", err)
	}
	return nil
}
