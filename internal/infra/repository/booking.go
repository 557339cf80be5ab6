package repository

import (
	"context"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"

	"stayhub/internal/domain/booking"
	"stayhub/internal/infra"
	"stayhub/internal/infra/db"
	"stayhub/internal/pkg/pgconv"
)

type BookingRepository struct {
	db db.DBTX
}

func NewBookingRepository(db db.DBTX) *BookingRepository {
	return &BookingRepository{db: db}
}

// InsertIfAvailable creates the booking only if no active booking on
// the room overlaps the stay. The NOT EXISTS guard and the insert run
// as one statement; the exclusion constraint on bookings backstops the
// race where two transactions pass the guard concurrently, so exactly
// one of them commits and the other surfaces a CONFLICT kind here.
func (r *BookingRepository) InsertIfAvailable(ctx context.Context, b *booking.Booking) (uuid.UUID, error) {
	sel := psql.Select().
		Column(squirrel.Expr("?::uuid", b.ID())).
		Column(squirrel.Expr("?::uuid", b.RoomID())).
		Column(squirrel.Expr("?::uuid", b.HotelID())).
		Column(squirrel.Expr("?::uuid", b.GuestID())).
		Column(squirrel.Expr("?::date", b.Period().CheckIn())).
		Column(squirrel.Expr("?::date", b.Period().CheckOut())).
		Column(squirrel.Expr("?::int", b.Guests())).
		Column(squirrel.Expr("?::bigint", b.TotalPrice().Cents())).
		Column(squirrel.Expr("?::text", b.Status().String())).
		Column(squirrel.Expr("?::text", b.PaymentMethod())).
		Column(squirrel.Expr("?::boolean", b.IsPaid())).
		Where(squirrel.Expr(
			"NOT EXISTS (SELECT 1 FROM bookings WHERE room_id = ?::uuid AND status <> 'cancelled' AND check_in < ?::date AND ?::date < check_out)",
			b.RoomID(), b.Period().CheckOut(), b.Period().CheckIn(),
		))

	query, args, err := psql.Insert("bookings").
		Columns(
			"id", "room_id", "hotel_id", "guest_id",
			"check_in", "check_out", "guests", "total_price_cents",
			"status", "payment_method", "is_paid",
		).
		Select(sel).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return uuid.Nil, infra.WrapRepoErr("failed to build booking insert", err)
	}

	var id uuid.UUID
	if err := r.db.QueryRow(ctx, query, args...).Scan(&id); err != nil {
		if pgconv.IsNoRows(err) {
			// the guard rejected the stay: an active booking overlaps
			return uuid.Nil, infra.WrapRepoErr("booking overlaps an existing stay", err, infra.KindConflict)
		}
		return uuid.Nil, infra.WrapRepoErr("failed to insert booking", err, classifyPgError(err))
	}
	return id, nil
}

// FindByID locks the row for the rest of the transaction so a status
// change cannot race another writer.
func (r *BookingRepository) FindByID(ctx context.Context, id uuid.UUID) (*booking.Booking, error) {
	query, args, err := psql.Select(
		"id", "room_id", "hotel_id", "guest_id",
		"check_in", "check_out", "guests", "total_price_cents",
		"status", "payment_method", "is_paid", "created_at", "updated_at",
	).
		From("bookings").
		Where(squirrel.Eq{"id": id}).
		Suffix("FOR UPDATE").
		ToSql()
	if err != nil {
		return nil, infra.WrapRepoErr("failed to build booking select", err)
	}

	var (
		bookingID, roomID, hotelID, guestID uuid.UUID
		checkIn, checkOut                   pgtype.Date
		guests                              int
		totalPriceCents                     int64
		status, paymentMethod               string
		isPaid                              bool
		createdAt, updatedAt                pgtype.Timestamptz
	)
	err = r.db.QueryRow(ctx, query, args...).Scan(
		&bookingID, &roomID, &hotelID, &guestID,
		&checkIn, &checkOut, &guests, &totalPriceCents,
		&status, &paymentMethod, &isPaid, &createdAt, &updatedAt,
	)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("booking not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find booking", err)
	}

	period, err := booking.NewStayPeriod(pgconv.DateFromPgtype(checkIn), pgconv.DateFromPgtype(checkOut))
	if err != nil {
		return nil, infra.WrapRepoErr("stored stay period is invalid", err)
	}
	statusValue, err := booking.NewStatus(status)
	if err != nil {
		return nil, infra.WrapRepoErr("stored status is invalid", err)
	}

	return booking.ReconstructBooking(
		bookingID, roomID, hotelID, guestID,
		period, guests, booking.NewMoney(totalPriceCents),
		statusValue, paymentMethod, isPaid,
		pgconv.TimeFromPgtype(createdAt), pgconv.TimeFromPgtype(updatedAt),
	), nil
}

func (r *BookingRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status booking.Status) error {
	query, args, err := psql.Update("bookings").
		Set("status", status.String()).
		Set("updated_at", squirrel.Expr("now()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return infra.WrapRepoErr("failed to build booking status update", err)
	}

	tag, err := r.db.Exec(ctx, query, args...)
	if err != nil {
		return infra.WrapRepoErr("failed to update booking status", err, classifyPgError(err))
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("booking not found", nil, infra.KindNotFound)
	}
	return nil
}
