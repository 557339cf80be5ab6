package commands

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// BookingCreatedEvent is handed to the dispatcher after the booking
// row is committed.
type BookingCreatedEvent struct {
	BookingID  uuid.UUID
	GuestID    uuid.UUID
	RoomID     uuid.UUID
	HotelID    uuid.UUID
	CheckIn    time.Time
	CheckOut   time.Time
	OccurredAt time.Time
}

// NotificationDispatcher records a post-commit notification for
// asynchronous delivery. Dispatch failures never affect the booking
// that triggered them.
type NotificationDispatcher interface {
	BookingCreated(ctx context.Context, event BookingCreatedEvent) error
	BookingCancelled(ctx context.Context, bookingID, guestID uuid.UUID) error
}
