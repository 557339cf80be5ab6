package response

import (
	"time"

	"github.com/google/uuid"

	"stayhub/internal/usecase/queries"
)

const dateLayout = "2006-01-02"

type BookingResponse struct {
	ID              uuid.UUID `json:"id"`
	RoomID          uuid.UUID `json:"roomId"`
	RoomName        string    `json:"roomName"`
	HotelID         uuid.UUID `json:"hotelId"`
	HotelName       string    `json:"hotelName"`
	HotelCity       string    `json:"hotelCity"`
	GuestID         uuid.UUID `json:"guestId"`
	GuestEmail      string    `json:"guestEmail"`
	CheckIn         string    `json:"checkIn"`
	CheckOut        string    `json:"checkOut"`
	Guests          int       `json:"guests"`
	Status          string    `json:"status"`
	TotalPriceCents int64     `json:"totalPriceCents"`
	PaymentMethod   string    `json:"paymentMethod"`
	IsPaid          bool      `json:"isPaid"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`
}

type BookingListResponse struct {
	ID              uuid.UUID `json:"id"`
	RoomID          uuid.UUID `json:"roomId"`
	RoomName        string    `json:"roomName"`
	HotelName       string    `json:"hotelName"`
	GuestEmail      string    `json:"guestEmail"`
	CheckIn         string    `json:"checkIn"`
	CheckOut        string    `json:"checkOut"`
	Status          string    `json:"status"`
	TotalPriceCents int64     `json:"totalPriceCents"`
	CreatedAt       time.Time `json:"createdAt"`
}

type HotelBookingsResponse struct {
	Bookings          []*BookingListResponse `json:"bookings"`
	TotalBookings     int                    `json:"totalBookings"`
	TotalRevenueCents int64                  `json:"totalRevenueCents"`
}

type AvailabilityResponse struct {
	RoomID    uuid.UUID `json:"roomId"`
	CheckIn   string    `json:"checkIn"`
	CheckOut  string    `json:"checkOut"`
	Available bool      `json:"available"`
}

func FromBookingView(rm *queries.BookingView) *BookingResponse {
	return &BookingResponse{
		ID:              rm.ID,
		RoomID:          rm.RoomID,
		RoomName:        rm.RoomName,
		HotelID:         rm.HotelID,
		HotelName:       rm.HotelName,
		HotelCity:       rm.HotelCity,
		GuestID:         rm.GuestID,
		GuestEmail:      rm.GuestEmail,
		CheckIn:         rm.CheckIn.Format(dateLayout),
		CheckOut:        rm.CheckOut.Format(dateLayout),
		Guests:          rm.Guests,
		Status:          rm.Status,
		TotalPriceCents: rm.TotalPriceCents,
		PaymentMethod:   rm.PaymentMethod,
		IsPaid:          rm.IsPaid,
		CreatedAt:       rm.CreatedAt,
		UpdatedAt:       rm.UpdatedAt,
	}
}

func FromBookingListItem(rm *queries.BookingListItem) *BookingListResponse {
	return &BookingListResponse{
		ID:              rm.ID,
		RoomID:          rm.RoomID,
		RoomName:        rm.RoomName,
		HotelName:       rm.HotelName,
		GuestEmail:      rm.GuestEmail,
		CheckIn:         rm.CheckIn.Format(dateLayout),
		CheckOut:        rm.CheckOut.Format(dateLayout),
		Status:          rm.Status,
		TotalPriceCents: rm.TotalPriceCents,
		CreatedAt:       rm.CreatedAt,
	}
}

func FromHotelBookings(rm *queries.HotelBookings) *HotelBookingsResponse {
	bookings := make([]*BookingListResponse, len(rm.Bookings))
	for i := range rm.Bookings {
		bookings[i] = FromBookingListItem(&rm.Bookings[i])
	}
	return &HotelBookingsResponse{
		Bookings:          bookings,
		TotalBookings:     rm.TotalBookings,
		TotalRevenueCents: rm.TotalRevenueCents,
	}
}
