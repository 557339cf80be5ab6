package room

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrEmptyRoomName   = errors.New("room name cannot be empty")
	ErrRoomNameTooLong = errors.New("room name is too long (max 255 characters)")
	ErrNegativePrice   = errors.New("nightly price cannot be negative")
	ErrInvalidCapacity = errors.New("room capacity must be positive")
)

const MaxRoomNameLength = 255

// Room is a bookable unit owned by a hotel. isAvailable is the owner's
// kill-switch, independent of date-based conflicts.
type Room struct {
	id                 uuid.UUID
	hotelID            uuid.UUID
	name               string
	pricePerNightCents int64
	maxGuests          int
	amenities          []string
	isAvailable        bool
	createdAt          time.Time
	updatedAt          time.Time
}

func NewRoom(id, hotelID uuid.UUID, name string, pricePerNightCents int64, maxGuests int, amenities []string, isAvailable bool) (*Room, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrEmptyRoomName
	}
	if len(name) > MaxRoomNameLength {
		return nil, ErrRoomNameTooLong
	}
	if pricePerNightCents < 0 {
		return nil, ErrNegativePrice
	}
	if maxGuests <= 0 {
		return nil, ErrInvalidCapacity
	}

	return &Room{
		id:                 id,
		hotelID:            hotelID,
		name:               name,
		pricePerNightCents: pricePerNightCents,
		maxGuests:          maxGuests,
		amenities:          amenities,
		isAvailable:        isAvailable,
	}, nil
}

func (r *Room) ID() uuid.UUID             { return r.id }
func (r *Room) HotelID() uuid.UUID        { return r.hotelID }
func (r *Room) Name() string              { return r.name }
func (r *Room) PricePerNightCents() int64 { return r.pricePerNightCents }
func (r *Room) MaxGuests() int            { return r.maxGuests }
func (r *Room) Amenities() []string       { return r.amenities }
func (r *Room) IsAvailable() bool         { return r.isAvailable }
func (r *Room) CreatedAt() time.Time      { return r.createdAt }
func (r *Room) UpdatedAt() time.Time      { return r.updatedAt }
