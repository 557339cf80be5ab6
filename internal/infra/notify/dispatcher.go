// Package notify turns booking events into queued delivery jobs. Jobs
// land in notification_jobs and are drained out of band; the booking
// flow never waits on delivery.
package notify

import (
	"context"
	"encoding/json"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"stayhub/internal/infra/repository"
	"stayhub/internal/pkg/clock"
	"stayhub/internal/pkg/errs"
	"stayhub/internal/usecase/commands"
)

const jobKindEmail = "email"

type OutboxDispatcher struct {
	jobs  *repository.NotificationRepository
	clock clock.Clock
}

func NewOutboxDispatcher(pool *pgxpool.Pool, clock clock.Clock) *OutboxDispatcher {
	return &OutboxDispatcher{
		jobs:  repository.NewNotificationRepository(pool),
		clock: clock,
	}
}

func (d *OutboxDispatcher) BookingCreated(ctx context.Context, event commands.BookingCreatedEvent) error {
	payload, err := json.Marshal(map[string]any{
		"booking_id": event.BookingID,
		"guest_id":   event.GuestID,
		"room_id":    event.RoomID,
		"hotel_id":   event.HotelID,
		"check_in":   event.CheckIn.Format("2006-01-02"),
		"check_out":  event.CheckOut.Format("2006-01-02"),
	})
	if err != nil {
		return errs.Wrap(err, "failed to encode booking created payload")
	}
	return d.jobs.CreateJob(ctx, jobKindEmail, "booking_created", payload, d.clock.Now())
}

func (d *OutboxDispatcher) BookingCancelled(ctx context.Context, bookingID, guestID uuid.UUID) error {
	payload, err := json.Marshal(map[string]any{
		"booking_id": bookingID,
		"guest_id":   guestID,
	})
	if err != nil {
		return errs.Wrap(err, "failed to encode booking cancelled payload")
	}
	return d.jobs.CreateJob(ctx, jobKindEmail, "booking_cancelled", payload, d.clock.Now())
}
