//go:build unit || e2e

package builder

import (
	"time"

	"github.com/google/uuid"

	"stayhub/internal/domain/booking"
	"stayhub/internal/domain/room"
	reqdto "stayhub/internal/handler/dto/request"
	"stayhub/internal/usecase/queries"
)

type BookingBuilder struct {
	RoomID          uuid.UUID
	HotelID         uuid.UUID
	GuestID         uuid.UUID
	CheckIn         string
	CheckOut        string
	Guests          int
	PricePerNight   int64
	Status          string
	TotalPriceCents int64
}

func NewBookingBuilder() *BookingBuilder {
	return &BookingBuilder{
		RoomID:          uuid.New(),
		HotelID:         uuid.New(),
		GuestID:         uuid.New(),
		CheckIn:         "2026-06-01",
		CheckOut:        "2026-06-04",
		Guests:          2,
		PricePerNight:   10000,
		Status:          "pending",
		TotalPriceCents: 30000,
	}
}

func (b *BookingBuilder) WithStay(checkIn, checkOut string) *BookingBuilder {
	b.CheckIn = checkIn
	b.CheckOut = checkOut
	return b
}

func (b *BookingBuilder) WithGuests(guests int) *BookingBuilder {
	b.Guests = guests
	return b
}

func (b *BookingBuilder) WithStatus(status string) *BookingBuilder {
	b.Status = status
	return b
}

func (b *BookingBuilder) AsCancelled() *BookingBuilder {
	b.Status = "cancelled"
	return b
}

func (b *BookingBuilder) BuildPeriod() (booking.StayPeriod, error) {
	return booking.ParseStayPeriod(b.CheckIn, b.CheckOut)
}

func (b *BookingBuilder) BuildDomain() (*booking.Booking, error) {
	period, err := b.BuildPeriod()
	if err != nil {
		return nil, err
	}
	status, err := booking.NewStatus(b.Status)
	if err != nil {
		return nil, err
	}
	entity, err := booking.NewBooking(
		b.RoomID, b.HotelID, b.GuestID,
		period, b.Guests, booking.NewMoney(b.TotalPriceCents),
	)
	if err != nil {
		return nil, err
	}
	if status != booking.StatusPending {
		if err := entity.TransitionTo(status); err != nil {
			return nil, err
		}
	}
	return entity, nil
}

func (b *BookingBuilder) BuildListItem() queries.BookingListItem {
	checkIn, _ := time.Parse("2006-01-02", b.CheckIn)
	checkOut, _ := time.Parse("2006-01-02", b.CheckOut)
	return queries.BookingListItem{
		ID:              uuid.New(),
		RoomID:          b.RoomID,
		RoomName:        "Sea View Double",
		HotelName:       "Harbor Hotel",
		GuestEmail:      "guest@example.com",
		CheckIn:         checkIn,
		CheckOut:        checkOut,
		Status:          b.Status,
		TotalPriceCents: b.TotalPriceCents,
		CreatedAt:       time.Now(),
	}
}

func (b *BookingBuilder) BuildDTO() reqdto.CreateBookingRequest {
	return reqdto.CreateBookingRequest{
		RoomID:   b.RoomID,
		CheckIn:  b.CheckIn,
		CheckOut: b.CheckOut,
		Guests:   b.Guests,
	}
}

func (b *BookingBuilder) BuildView() *queries.BookingView {
	checkIn, _ := time.Parse("2006-01-02", b.CheckIn)
	checkOut, _ := time.Parse("2006-01-02", b.CheckOut)
	now := time.Now()
	return &queries.BookingView{
		ID:              uuid.New(),
		RoomID:          b.RoomID,
		RoomName:        "Sea View Double",
		HotelID:         b.HotelID,
		HotelName:       "Harbor Hotel",
		HotelCity:       "Lisbon",
		GuestID:         b.GuestID,
		GuestEmail:      "guest@example.com",
		CheckIn:         checkIn,
		CheckOut:        checkOut,
		Guests:          b.Guests,
		Status:          b.Status,
		TotalPriceCents: b.TotalPriceCents,
		PaymentMethod:   booking.DefaultPaymentMethod,
		IsPaid:          false,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
}

type RoomBuilder struct {
	ID            uuid.UUID
	HotelID       uuid.UUID
	Name          string
	PricePerNight int64
	MaxGuests     int
	Amenities     []string
	IsAvailable   bool
}

func NewRoomBuilder() *RoomBuilder {
	return &RoomBuilder{
		ID:            uuid.New(),
		HotelID:       uuid.New(),
		Name:          "Sea View Double",
		PricePerNight: 10000,
		MaxGuests:     2,
		Amenities:     []string{"wifi", "ac"},
		IsAvailable:   true,
	}
}

func (r *RoomBuilder) WithMaxGuests(maxGuests int) *RoomBuilder {
	r.MaxGuests = maxGuests
	return r
}

func (r *RoomBuilder) WithPricePerNight(cents int64) *RoomBuilder {
	r.PricePerNight = cents
	return r
}

func (r *RoomBuilder) AsUnavailable() *RoomBuilder {
	r.IsAvailable = false
	return r
}

func (r *RoomBuilder) BuildDomain() (*room.Room, error) {
	return room.NewRoom(r.ID, r.HotelID, r.Name, r.PricePerNight, r.MaxGuests, r.Amenities, r.IsAvailable)
}

func (r *RoomBuilder) BuildView() *queries.RoomView {
	return &queries.RoomView{
		ID:                 r.ID,
		HotelID:            r.HotelID,
		HotelName:          "Harbor Hotel",
		HotelCity:          "Lisbon",
		Name:               r.Name,
		PricePerNightCents: r.PricePerNight,
		MaxGuests:          r.MaxGuests,
		Amenities:          r.Amenities,
		IsAvailable:        r.IsAvailable,
		CreatedAt:          time.Now(),
	}
}
