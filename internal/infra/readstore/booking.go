package readstore

import (
	"context"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	"stayhub/internal/domain/booking"
	"stayhub/internal/infra"
	"stayhub/internal/pkg/pgconv"
	"stayhub/internal/usecase/queries"
)

type BookingReadStore struct {
	pool *pgxpool.Pool
}

func NewBookingReadStore(pool *pgxpool.Pool) *BookingReadStore {
	return &BookingReadStore{pool: pool}
}

// HasOverlap reports whether any active booking on the room intersects
// the period. Two stays overlap when each starts before the other
// ends; sharing a boundary night does not count.
func (s *BookingReadStore) HasOverlap(ctx context.Context, roomID uuid.UUID, period booking.StayPeriod) (bool, error) {
	sub := psql.Select("1").
		From("bookings").
		Where(squirrel.Eq{"room_id": roomID}).
		Where(squirrel.NotEq{"status": booking.StatusCancelled.String()}).
		Where(squirrel.Lt{"check_in": period.CheckOut()}).
		Where(squirrel.Gt{"check_out": period.CheckIn()})

	subQuery, args, err := sub.ToSql()
	if err != nil {
		return false, infra.WrapRepoErr("failed to build overlap query", err)
	}

	var exists bool
	if err := s.pool.QueryRow(ctx, "SELECT EXISTS ("+subQuery+")", args...).Scan(&exists); err != nil {
		return false, infra.WrapRepoErr("failed to check overlap", err)
	}
	return exists, nil
}

func (s *BookingReadStore) FindViewByID(ctx context.Context, id uuid.UUID) (*queries.BookingView, error) {
	query, args, err := bookingViewSelect().
		Where(squirrel.Eq{"b.id": id}).
		ToSql()
	if err != nil {
		return nil, infra.WrapRepoErr("failed to build booking view query", err)
	}

	view, err := scanBookingView(s.pool.QueryRow(ctx, query, args...))
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("booking not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find booking view", err)
	}
	return view, nil
}

func (s *BookingReadStore) ListByGuest(ctx context.Context, guestID uuid.UUID) ([]queries.BookingListItem, error) {
	query, args, err := bookingListSelect().
		Where(squirrel.Eq{"b.guest_id": guestID}).
		OrderBy("b.created_at DESC").
		ToSql()
	if err != nil {
		return nil, infra.WrapRepoErr("failed to build guest bookings query", err)
	}
	return s.listItems(ctx, query, args)
}

func (s *BookingReadStore) ListByHotel(ctx context.Context, hotelID uuid.UUID) ([]queries.BookingListItem, error) {
	query, args, err := bookingListSelect().
		Where(squirrel.Eq{"b.hotel_id": hotelID}).
		OrderBy("b.created_at DESC").
		ToSql()
	if err != nil {
		return nil, infra.WrapRepoErr("failed to build hotel bookings query", err)
	}
	return s.listItems(ctx, query, args)
}

func (s *BookingReadStore) listItems(ctx context.Context, query string, args []any) ([]queries.BookingListItem, error) {
	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list bookings", err)
	}
	defer rows.Close()

	items := []queries.BookingListItem{}
	for rows.Next() {
		var (
			item              queries.BookingListItem
			checkIn, checkOut pgtype.Date
			createdAt         pgtype.Timestamptz
		)
		if err := rows.Scan(
			&item.ID, &item.RoomID, &item.RoomName, &item.HotelName, &item.GuestEmail,
			&checkIn, &checkOut, &item.Status, &item.TotalPriceCents, &createdAt,
		); err != nil {
			return nil, infra.WrapRepoErr("failed to scan booking row", err)
		}
		item.CheckIn = pgconv.DateFromPgtype(checkIn)
		item.CheckOut = pgconv.DateFromPgtype(checkOut)
		item.CreatedAt = pgconv.TimeFromPgtype(createdAt)
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to read booking rows", err)
	}
	return items, nil
}

func bookingViewSelect() squirrel.SelectBuilder {
	return psql.Select(
		"b.id", "b.room_id", "r.name", "b.hotel_id", "h.name", "h.city",
		"b.guest_id", "u.email",
		"b.check_in", "b.check_out", "b.guests", "b.status",
		"b.total_price_cents", "b.payment_method", "b.is_paid",
		"b.created_at", "b.updated_at",
	).
		From("bookings b").
		Join("rooms r ON b.room_id = r.id").
		Join("hotels h ON b.hotel_id = h.id").
		Join("users u ON b.guest_id = u.id")
}

func bookingListSelect() squirrel.SelectBuilder {
	return psql.Select(
		"b.id", "b.room_id", "r.name", "h.name", "u.email",
		"b.check_in", "b.check_out", "b.status", "b.total_price_cents", "b.created_at",
	).
		From("bookings b").
		Join("rooms r ON b.room_id = r.id").
		Join("hotels h ON b.hotel_id = h.id").
		Join("users u ON b.guest_id = u.id")
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanBookingView(row rowScanner) (*queries.BookingView, error) {
	var (
		view                 queries.BookingView
		checkIn, checkOut    pgtype.Date
		createdAt, updatedAt pgtype.Timestamptz
	)
	err := row.Scan(
		&view.ID, &view.RoomID, &view.RoomName, &view.HotelID, &view.HotelName, &view.HotelCity,
		&view.GuestID, &view.GuestEmail,
		&checkIn, &checkOut, &view.Guests, &view.Status,
		&view.TotalPriceCents, &view.PaymentMethod, &view.IsPaid,
		&createdAt, &updatedAt,
	)
	if err != nil {
		return nil, err
	}
	view.CheckIn = pgconv.DateFromPgtype(checkIn)
	view.CheckOut = pgconv.DateFromPgtype(checkOut)
	view.CreatedAt = pgconv.TimeFromPgtype(createdAt)
	view.UpdatedAt = pgconv.TimeFromPgtype(updatedAt)
	return &view, nil
}
