package booking

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	ErrInvalidStayRange  = errors.New("check-in must be before check-out")
	ErrInvalidGuestCount = errors.New("guest count must be positive")
	ErrTooManyGuests     = errors.New("guest count exceeds room capacity")
	ErrRoomUnavailable   = errors.New("room is not open for booking")
	ErrInvalidStatus     = errors.New("invalid booking status")
	ErrInvalidTransition = errors.New("illegal status transition")
	ErrNegativePrice     = errors.New("price cannot be negative")
)

const DefaultPaymentMethod = "Pay At Hotel"

type Booking struct {
	id            uuid.UUID
	roomID        uuid.UUID
	hotelID       uuid.UUID
	guestID       uuid.UUID
	period        StayPeriod
	guests        int
	totalPrice    Money
	status        Status
	paymentMethod string
	isPaid        bool
	createdAt     time.Time
	updatedAt     time.Time
}

func NewBooking(
	roomID, hotelID, guestID uuid.UUID,
	period StayPeriod,
	guests int,
	totalPrice Money,
) (*Booking, error) {
	if period.IsZero() || period.Nights() <= 0 {
		return nil, ErrInvalidStayRange
	}
	if guests <= 0 {
		return nil, ErrInvalidGuestCount
	}
	if totalPrice.Cents() < 0 {
		return nil, ErrNegativePrice
	}

	return &Booking{
		id:            uuid.New(),
		roomID:        roomID,
		hotelID:       hotelID,
		guestID:       guestID,
		period:        period,
		guests:        guests,
		totalPrice:    totalPrice,
		status:        StatusPending,
		paymentMethod: DefaultPaymentMethod,
	}, nil
}

func ReconstructBooking(
	id, roomID, hotelID, guestID uuid.UUID,
	period StayPeriod,
	guests int,
	totalPrice Money,
	status Status,
	paymentMethod string,
	isPaid bool,
	createdAt, updatedAt time.Time,
) *Booking {
	return &Booking{
		id:            id,
		roomID:        roomID,
		hotelID:       hotelID,
		guestID:       guestID,
		period:        period,
		guests:        guests,
		totalPrice:    totalPrice,
		status:        status,
		paymentMethod: paymentMethod,
		isPaid:        isPaid,
		createdAt:     createdAt,
		updatedAt:     updatedAt,
	}
}

// TransitionTo applies the lifecycle table. Cancelling an already
// cancelled booking is a no-op success; everything else outside the
// table fails with ErrInvalidTransition.
func (b *Booking) TransitionTo(next Status) error {
	if !next.IsValid() {
		return ErrInvalidStatus
	}
	if b.status == StatusCancelled && next == StatusCancelled {
		return nil
	}
	if !b.status.CanTransitionTo(next) {
		return ErrInvalidTransition
	}
	b.status = next
	return nil
}

// Cancel is idempotent: the interval is freed the first time and the
// call keeps succeeding afterwards.
func (b *Booking) Cancel() error {
	return b.TransitionTo(StatusCancelled)
}

func (b *Booking) Confirm() error {
	return b.TransitionTo(StatusConfirmed)
}

func (b *Booking) IsActive() bool {
	return b.status.IsActive()
}

func (b *Booking) IsCancelled() bool {
	return b.status == StatusCancelled
}

func (b *Booking) ID() uuid.UUID         { return b.id }
func (b *Booking) RoomID() uuid.UUID     { return b.roomID }
func (b *Booking) HotelID() uuid.UUID    { return b.hotelID }
func (b *Booking) GuestID() uuid.UUID    { return b.guestID }
func (b *Booking) Period() StayPeriod    { return b.period }
func (b *Booking) Guests() int           { return b.guests }
func (b *Booking) TotalPrice() Money     { return b.totalPrice }
func (b *Booking) Status() Status        { return b.status }
func (b *Booking) PaymentMethod() string { return b.paymentMethod }
func (b *Booking) IsPaid() bool          { return b.isPaid }
func (b *Booking) CreatedAt() time.Time  { return b.createdAt }
func (b *Booking) UpdatedAt() time.Time  { return b.updatedAt }
