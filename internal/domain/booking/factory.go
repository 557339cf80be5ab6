package booking

import (
	"stayhub/internal/domain/room"

	"github.com/google/uuid"
)

// Factory builds new bookings from a room snapshot. It applies every
// rule that does not need the reservation ledger: range validity, the
// owner's availability switch, capacity, and the nightly price. The
// overlap check stays in the store because only the store can make it
// atomic.
type Factory struct{}

func NewFactory() *Factory {
	return &Factory{}
}

func (f *Factory) CreateBooking(
	roomEntity *room.Room,
	guestID uuid.UUID,
	period StayPeriod,
	guests int,
) (*Booking, error) {
	if period.IsZero() || period.Nights() <= 0 {
		return nil, ErrInvalidStayRange
	}
	if !roomEntity.IsAvailable() {
		return nil, ErrRoomUnavailable
	}
	if guests <= 0 {
		return nil, ErrInvalidGuestCount
	}
	if guests > roomEntity.MaxGuests() {
		return nil, ErrTooManyGuests
	}

	totalPrice := NewMoney(int64(period.Nights()) * roomEntity.PricePerNightCents())

	return NewBooking(
		roomEntity.ID(),
		roomEntity.HotelID(),
		guestID,
		period,
		guests,
		totalPrice,
	)
}
