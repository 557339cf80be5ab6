package request

import (
	"stayhub/internal/domain/booking"

	"github.com/google/uuid"
)

type CreateBookingRequest struct {
	RoomID   uuid.UUID `json:"room_id" binding:"required"`
	CheckIn  string    `json:"check_in" binding:"required,datetime=2006-01-02"`
	CheckOut string    `json:"check_out" binding:"required,datetime=2006-01-02"`
	Guests   int       `json:"guests" binding:"required,min=1"`
}

func (r CreateBookingRequest) ToDomain() (booking.StayPeriod, error) {
	return booking.ParseStayPeriod(r.CheckIn, r.CheckOut)
}

type UpdateBookingStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=pending confirmed cancelled"`
}

type AvailabilityQuery struct {
	RoomID   uuid.UUID `form:"room_id" binding:"required"`
	CheckIn  string    `form:"check_in" binding:"required,datetime=2006-01-02"`
	CheckOut string    `form:"check_out" binding:"required,datetime=2006-01-02"`
}

func (q AvailabilityQuery) ToDomain() (booking.StayPeriod, error) {
	return booking.ParseStayPeriod(q.CheckIn, q.CheckOut)
}
