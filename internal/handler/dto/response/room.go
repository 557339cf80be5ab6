package response

import (
	"time"

	"github.com/google/uuid"

	"stayhub/internal/usecase/queries"
)

type RoomResponse struct {
	ID                 uuid.UUID `json:"id"`
	HotelID            uuid.UUID `json:"hotelId"`
	HotelName          string    `json:"hotelName"`
	HotelCity          string    `json:"hotelCity"`
	Name               string    `json:"name"`
	PricePerNightCents int64     `json:"pricePerNightCents"`
	MaxGuests          int       `json:"maxGuests"`
	Amenities          []string  `json:"amenities"`
	IsAvailable        bool      `json:"isAvailable"`
	CreatedAt          time.Time `json:"createdAt"`
}

func FromRoomView(rm *queries.RoomView) *RoomResponse {
	amenities := rm.Amenities
	if amenities == nil {
		amenities = []string{}
	}
	return &RoomResponse{
		ID:                 rm.ID,
		HotelID:            rm.HotelID,
		HotelName:          rm.HotelName,
		HotelCity:          rm.HotelCity,
		Name:               rm.Name,
		PricePerNightCents: rm.PricePerNightCents,
		MaxGuests:          rm.MaxGuests,
		Amenities:          amenities,
		IsAvailable:        rm.IsAvailable,
		CreatedAt:          rm.CreatedAt,
	}
}

func FromRoomViews(rms []queries.RoomView) []*RoomResponse {
	out := make([]*RoomResponse, len(rms))
	for i := range rms {
		out[i] = FromRoomView(&rms[i])
	}
	return out
}
