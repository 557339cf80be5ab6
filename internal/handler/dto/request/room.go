package request

import (
	"time"

	"github.com/google/uuid"

	"stayhub/internal/usecase/queries"
)

type CreateRoomRequest struct {
	HotelID            uuid.UUID `json:"hotel_id" binding:"required"`
	Name               string    `json:"name" binding:"required,max=200"`
	PricePerNightCents int64     `json:"price_per_night_cents" binding:"required,min=0"`
	MaxGuests          int       `json:"max_guests" binding:"required,min=1"`
	Amenities          []string  `json:"amenities"`
	IsAvailable        *bool     `json:"is_available"`
}

func (r CreateRoomRequest) Available() bool {
	if r.IsAvailable == nil {
		return true
	}
	return *r.IsAvailable
}

type ListRoomsQuery struct {
	City     string `form:"city"`
	Sort     string `form:"sort" binding:"omitempty,oneof=price_asc price_desc newest"`
	Limit    int    `form:"limit" binding:"omitempty,min=1,max=100"`
	CheckIn  string `form:"check_in" binding:"omitempty,datetime=2006-01-02"`
	CheckOut string `form:"check_out" binding:"omitempty,datetime=2006-01-02"`
}

func (q ListRoomsQuery) ToFilter() (queries.RoomFilter, error) {
	filter := queries.RoomFilter{
		City:  q.City,
		Sort:  q.Sort,
		Limit: q.Limit,
	}
	if q.CheckIn != "" {
		t, err := time.Parse("2006-01-02", q.CheckIn)
		if err != nil {
			return queries.RoomFilter{}, err
		}
		filter.CheckIn = &t
	}
	if q.CheckOut != "" {
		t, err := time.Parse("2006-01-02", q.CheckOut)
		if err != nil {
			return queries.RoomFilter{}, err
		}
		filter.CheckOut = &t
	}
	return filter, nil
}
