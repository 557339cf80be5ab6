package commands

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"stayhub/internal/domain/booking"
	"stayhub/internal/domain/room"
	reqdto "stayhub/internal/handler/dto/request"
	"stayhub/internal/infra"
	"stayhub/internal/pkg/clock"
	"stayhub/internal/pkg/errs"
	"stayhub/internal/usecase/queries"
	"stayhub/internal/usecase/shared"
)

var (
	ErrRoomNotFound            = errs.New("room not found")
	ErrBookingNotFound         = errs.New("booking not found")
	ErrRoomUnavailable         = errs.New("room is not open for booking")
	ErrBookingConflict         = errs.New("booking conflicts with an existing stay")
	ErrDomainValidation        = errs.New("domain validation error")
	ErrInvalidStatusValue      = errs.New("invalid booking status")
	ErrInvalidStatusTransition = errs.New("illegal status transition")
	ErrDatabaseOperationFailed = errs.New("database operation failed")
)

const dispatchTimeout = 5 * time.Second

type BookingCommands interface {
	// CreateBooking runs the atomic check-and-insert. Exactly one of a
	// set of concurrent requests for an overlapping stay succeeds; the
	// rest observe ErrBookingConflict.
	CreateBooking(ctx context.Context, req reqdto.CreateBookingRequest, guestID uuid.UUID) (*queries.BookingView, error)
	// CancelBooking frees the interval. Cancelling an already cancelled
	// booking succeeds without touching the row.
	CancelBooking(ctx context.Context, bookingID uuid.UUID) error
	SetStatus(ctx context.Context, bookingID uuid.UUID, status string) error
}

type bookingCommandsImpl struct {
	uow            shared.UnitOfWork
	bookingFactory *booking.Factory
	bookingQueries queries.BookingQueries
	dispatcher     NotificationDispatcher
	clock          clock.Clock
}

func NewBookingCommands(
	uow shared.UnitOfWork,
	bookingFactory *booking.Factory,
	bookingQueries queries.BookingQueries,
	dispatcher NotificationDispatcher,
	clock clock.Clock,
) BookingCommands {
	return &bookingCommandsImpl{
		uow:            uow,
		bookingFactory: bookingFactory,
		bookingQueries: bookingQueries,
		dispatcher:     dispatcher,
		clock:          clock,
	}
}

func (b *bookingCommandsImpl) CreateBooking(
	ctx context.Context,
	req reqdto.CreateBookingRequest,
	guestID uuid.UUID,
) (*queries.BookingView, error) {
	roomEntity, err := b.loadRoom(ctx, req.RoomID)
	if err != nil {
		return nil, err
	}

	period, err := req.ToDomain()
	if err != nil {
		return nil, errs.Mark(err, ErrDomainValidation)
	}

	bookingEntity, err := b.bookingFactory.CreateBooking(roomEntity, guestID, period, req.Guests)
	if err != nil {
		if errors.Is(err, booking.ErrRoomUnavailable) {
			return nil, errs.Mark(err, ErrRoomUnavailable)
		}
		return nil, errs.Mark(err, ErrDomainValidation)
	}

	var bookingID uuid.UUID
	err = b.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		id, insertErr := tx.Bookings().InsertIfAvailable(ctx, bookingEntity)
		if insertErr != nil {
			return insertErr
		}
		bookingID = id
		return nil
	})
	if err != nil {
		if infra.IsKind(err, infra.KindConflict) {
			return nil, errs.Mark(err, ErrBookingConflict)
		}
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}

	b.dispatchCreated(bookingEntity, bookingID)

	view, err := b.bookingQueries.GetByID(ctx, bookingID)
	if err != nil {
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}
	return view, nil
}

func (b *bookingCommandsImpl) CancelBooking(ctx context.Context, bookingID uuid.UUID) error {
	var guestID uuid.UUID
	var changed bool
	err := b.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		entity, findErr := tx.Bookings().FindByID(ctx, bookingID)
		if findErr != nil {
			return findErr
		}
		guestID = entity.GuestID()

		if entity.IsCancelled() {
			return nil
		}
		if cancelErr := entity.Cancel(); cancelErr != nil {
			return cancelErr
		}
		changed = true
		return tx.Bookings().UpdateStatus(ctx, bookingID, entity.Status())
	})
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return errs.Mark(err, ErrBookingNotFound)
		}
		return errs.Mark(err, ErrDatabaseOperationFailed)
	}

	if changed {
		b.dispatchCancelled(bookingID, guestID)
	}
	return nil
}

func (b *bookingCommandsImpl) SetStatus(ctx context.Context, bookingID uuid.UUID, status string) error {
	next, err := booking.NewStatus(status)
	if err != nil {
		return errs.Mark(err, ErrInvalidStatusValue)
	}

	err = b.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		entity, findErr := tx.Bookings().FindByID(ctx, bookingID)
		if findErr != nil {
			return findErr
		}
		if entity.Status() == next {
			if next == booking.StatusCancelled {
				return nil
			}
			return booking.ErrInvalidTransition
		}
		if transitionErr := entity.TransitionTo(next); transitionErr != nil {
			return transitionErr
		}
		return tx.Bookings().UpdateStatus(ctx, bookingID, entity.Status())
	})
	if err != nil {
		switch {
		case errors.Is(err, booking.ErrInvalidTransition):
			return errs.Mark(err, ErrInvalidStatusTransition)
		case infra.IsKind(err, infra.KindNotFound):
			return errs.Mark(err, ErrBookingNotFound)
		default:
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}
	}
	return nil
}

func (b *bookingCommandsImpl) loadRoom(ctx context.Context, roomID uuid.UUID) (*room.Room, error) {
	snapshot, err := b.uow.CommandReads().RoomByID(ctx, roomID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, errs.Mark(err, ErrRoomNotFound)
		}
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}

	roomEntity, err := room.NewRoom(
		snapshot.ID,
		snapshot.HotelID,
		snapshot.Name,
		snapshot.PricePerNightCents,
		snapshot.MaxGuests,
		snapshot.Amenities,
		snapshot.IsAvailable,
	)
	if err != nil {
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}
	return roomEntity, nil
}

// dispatchCreated notifies off the request path. A panicking or failing
// dispatcher is logged and otherwise ignored; the booking is already
// committed.
func (b *bookingCommandsImpl) dispatchCreated(entity *booking.Booking, bookingID uuid.UUID) {
	event := BookingCreatedEvent{
		BookingID:  bookingID,
		GuestID:    entity.GuestID(),
		RoomID:     entity.RoomID(),
		HotelID:    entity.HotelID(),
		CheckIn:    entity.Period().CheckIn(),
		CheckOut:   entity.Period().CheckOut(),
		OccurredAt: b.clock.Now(),
	}
	go func() {
		defer func() {
			if r := recover(); r != nil {
				slog.Error("notification dispatch panicked", "booking_id", bookingID, "panic", r)
			}
		}()
		ctx, cancel := context.WithTimeout(context.Background(), dispatchTimeout)
		defer cancel()
		if err := b.dispatcher.BookingCreated(ctx, event); err != nil {
			slog.Warn("failed to dispatch booking created notification", "booking_id", bookingID, "error", err.Error())
		}
	}()
}

func (b *bookingCommandsImpl) dispatchCancelled(bookingID, guestID uuid.UUID) {
	go func() {
		defer func() {
			if r := recover(); r != nil {
				slog.Error("notification dispatch panicked", "booking_id", bookingID, "panic", r)
			}
		}()
		ctx, cancel := context.WithTimeout(context.Background(), dispatchTimeout)
		defer cancel()
		if err := b.dispatcher.BookingCancelled(ctx, bookingID, guestID); err != nil {
			slog.Warn("failed to dispatch booking cancelled notification", "booking_id", bookingID, "error", err.Error())
		}
	}()
}
