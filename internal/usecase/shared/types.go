package shared

import (
	"github.com/google/uuid"
)

// RoomSnapshot is the minimal room state commands validate against.
type RoomSnapshot struct {
	ID                 uuid.UUID
	HotelID            uuid.UUID
	Name               string
	PricePerNightCents int64
	MaxGuests          int
	Amenities          []string
	IsAvailable        bool
}


