package queries

import (
	"context"

	"github.com/google/uuid"

	"stayhub/internal/domain/booking"
	"stayhub/internal/infra"
	"stayhub/internal/pkg/errs"
)

var (
	ErrBookingNotFound   = errs.New("booking not found")
	ErrHotelNotFound     = errs.New("hotel not found")
	ErrBookingQueryFail  = errs.New("failed to query bookings")
	ErrInvalidDateFilter = errs.New("invalid date filter")
)

// HotelBookings bundles an owner dashboard listing with aggregates
// computed over the same rows.
type HotelBookings struct {
	Bookings          []BookingListItem `json:"bookings"`
	TotalBookings     int               `json:"total_bookings"`
	TotalRevenueCents int64             `json:"total_revenue_cents"`
}

type BookingReadStore interface {
	HasOverlap(ctx context.Context, roomID uuid.UUID, period booking.StayPeriod) (bool, error)
	FindViewByID(ctx context.Context, id uuid.UUID) (*BookingView, error)
	ListByGuest(ctx context.Context, guestID uuid.UUID) ([]BookingListItem, error)
	ListByHotel(ctx context.Context, hotelID uuid.UUID) ([]BookingListItem, error)
}

type HotelReadStore interface {
	FindViewByID(ctx context.Context, id uuid.UUID) (*HotelView, error)
}

type HotelView struct {
	ID      uuid.UUID `json:"id"`
	OwnerID uuid.UUID `json:"owner_id"`
	Name    string    `json:"name"`
	City    string    `json:"city"`
}

type BookingQueries interface {
	// CheckAvailability reports whether the room is free of active
	// bookings for the whole period. Advisory only: the answer can be
	// stale by the time a booking is attempted.
	CheckAvailability(ctx context.Context, roomID uuid.UUID, period booking.StayPeriod) (bool, error)
	GetByID(ctx context.Context, id uuid.UUID) (*BookingView, error)
	ListByGuest(ctx context.Context, guestID uuid.UUID) ([]BookingListItem, error)
	ListByHotel(ctx context.Context, hotelID uuid.UUID) (*HotelBookings, error)
	HotelByID(ctx context.Context, id uuid.UUID) (*HotelView, error)
}

type bookingQueries struct {
	bookings BookingReadStore
	hotels   HotelReadStore
}

func NewBookingQueries(bookings BookingReadStore, hotels HotelReadStore) BookingQueries {
	return &bookingQueries{bookings: bookings, hotels: hotels}
}

func (q *bookingQueries) CheckAvailability(ctx context.Context, roomID uuid.UUID, period booking.StayPeriod) (bool, error) {
	overlap, err := q.bookings.HasOverlap(ctx, roomID, period)
	if err != nil {
		return false, errs.Mark(err, ErrBookingQueryFail)
	}
	return !overlap, nil
}

func (q *bookingQueries) GetByID(ctx context.Context, id uuid.UUID) (*BookingView, error) {
	view, err := q.bookings.FindViewByID(ctx, id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, errs.Mark(err, ErrBookingNotFound)
		}
		return nil, errs.Mark(err, ErrBookingQueryFail)
	}
	return view, nil
}

func (q *bookingQueries) ListByGuest(ctx context.Context, guestID uuid.UUID) ([]BookingListItem, error) {
	items, err := q.bookings.ListByGuest(ctx, guestID)
	if err != nil {
		return nil, errs.Mark(err, ErrBookingQueryFail)
	}
	return items, nil
}

func (q *bookingQueries) ListByHotel(ctx context.Context, hotelID uuid.UUID) (*HotelBookings, error) {
	items, err := q.bookings.ListByHotel(ctx, hotelID)
	if err != nil {
		return nil, errs.Mark(err, ErrBookingQueryFail)
	}
	result := &HotelBookings{Bookings: items, TotalBookings: len(items)}
	for _, item := range items {
		if item.Status != booking.StatusCancelled.String() {
			result.TotalRevenueCents += item.TotalPriceCents
		}
	}
	return result, nil
}

func (q *bookingQueries) HotelByID(ctx context.Context, id uuid.UUID) (*HotelView, error) {
	view, err := q.hotels.FindViewByID(ctx, id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, errs.Mark(err, ErrHotelNotFound)
		}
		return nil, errs.Mark(err, ErrBookingQueryFail)
	}
	return view, nil
}
