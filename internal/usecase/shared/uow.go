package shared

import (
	"context"

	"stayhub/internal/domain/booking"
	"stayhub/internal/domain/hotel"
	"stayhub/internal/domain/room"

	"github.com/google/uuid"
)

type UnitOfWork interface {
	// Within: full read-committed transaction for write operations, with
	// bounded retry on transient storage failures.
	Within(ctx context.Context, fn func(ctx context.Context, tx Tx) error) error
	// CommandReads: read access for validation outside transactions.
	CommandReads() CommandReads
}

type Tx interface {
	Bookings() BookingRepository
	Rooms() RoomRepository
	Users() UserRepository
	// Reads runs command-side lookups on the transaction's snapshot.
	Reads() CommandReads
}

type CommandReads interface {
	RoomByID(ctx context.Context, id uuid.UUID) (*RoomSnapshot, error)
	HotelByID(ctx context.Context, id uuid.UUID) (*hotel.Hotel, error)
}

// BookingRepository is the write side of the reservation ledger. The
// transaction it is bound to, together with the storage-level exclusion
// constraint, keeps the conflict check and the insert atomic.
type BookingRepository interface {
	// InsertIfAvailable performs the atomic check-and-insert: the row is
	// created only if no active booking on the room overlaps the stay.
	// A losing racer observes a CONFLICT-kind repository error, never a
	// double-booked state.
	InsertIfAvailable(ctx context.Context, b *booking.Booking) (uuid.UUID, error)
	// FindByID loads the booking with a row lock so a status change in
	// the same transaction cannot race another writer.
	FindByID(ctx context.Context, id uuid.UUID) (*booking.Booking, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status booking.Status) error
}

type RoomRepository interface {
	Insert(ctx context.Context, r *room.Room) (uuid.UUID, error)
}

type UserRepository interface {
	UpdateLastLogin(ctx context.Context, userID uuid.UUID) error
}
