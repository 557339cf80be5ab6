package queries

import (
	"time"

	"github.com/google/uuid"
)

// Read models (DTO for read side)

type BookingView struct {
	ID              uuid.UUID `json:"id"`
	RoomID          uuid.UUID `json:"room_id"`
	RoomName        string    `json:"room_name"`
	HotelID         uuid.UUID `json:"hotel_id"`
	HotelName       string    `json:"hotel_name"`
	HotelCity       string    `json:"hotel_city"`
	GuestID         uuid.UUID `json:"guest_id"`
	GuestEmail      string    `json:"guest_email"`
	CheckIn         time.Time `json:"check_in"`
	CheckOut        time.Time `json:"check_out"`
	Guests          int       `json:"guests"`
	Status          string    `json:"status"`
	TotalPriceCents int64     `json:"total_price_cents"`
	PaymentMethod   string    `json:"payment_method"`
	IsPaid          bool      `json:"is_paid"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

type BookingListItem struct {
	ID              uuid.UUID `json:"id"`
	RoomID          uuid.UUID `json:"room_id"`
	RoomName        string    `json:"room_name"`
	HotelName       string    `json:"hotel_name"`
	GuestEmail      string    `json:"guest_email"`
	CheckIn         time.Time `json:"check_in"`
	CheckOut        time.Time `json:"check_out"`
	Status          string    `json:"status"`
	TotalPriceCents int64     `json:"total_price_cents"`
	CreatedAt       time.Time `json:"created_at"`
}

type RoomView struct {
	ID                 uuid.UUID `json:"id"`
	HotelID            uuid.UUID `json:"hotel_id"`
	HotelName          string    `json:"hotel_name"`
	HotelCity          string    `json:"hotel_city"`
	Name               string    `json:"name"`
	PricePerNightCents int64     `json:"price_per_night_cents"`
	MaxGuests          int       `json:"max_guests"`
	Amenities          []string  `json:"amenities"`
	IsAvailable        bool      `json:"is_available"`
	CreatedAt          time.Time `json:"created_at"`
}

type AuthorizedUserView struct {
	ID           uuid.UUID  `json:"id"`
	Email        string     `json:"email"`
	PasswordHash string     `json:"-"`
	Role         string     `json:"role"`
	IsActive     bool       `json:"is_active"`
	LastLogin    *time.Time `json:"last_login,omitempty"`
}

// RoomFilter narrows the public room listing. CheckIn/CheckOut, when
// both set, exclude rooms with an overlapping active booking.
type RoomFilter struct {
	City     string
	Sort     string
	Limit    int
	CheckIn  *time.Time
	CheckOut *time.Time
}
