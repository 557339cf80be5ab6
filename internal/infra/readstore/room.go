package readstore

import (
	"context"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	"stayhub/internal/infra"
	"stayhub/internal/pkg/pgconv"
	"stayhub/internal/usecase/queries"
)

type RoomReadStore struct {
	pool *pgxpool.Pool
}

func NewRoomReadStore(pool *pgxpool.Pool) *RoomReadStore {
	return &RoomReadStore{pool: pool}
}

func (s *RoomReadStore) FindViewByID(ctx context.Context, id uuid.UUID) (*queries.RoomView, error) {
	query, args, err := roomViewSelect().
		Where(squirrel.Eq{"r.id": id}).
		ToSql()
	if err != nil {
		return nil, infra.WrapRepoErr("failed to build room view query", err)
	}

	view, err := scanRoomView(s.pool.QueryRow(ctx, query, args...))
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("room not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find room view", err)
	}
	return view, nil
}

func (s *RoomReadStore) List(ctx context.Context, filter queries.RoomFilter) ([]queries.RoomView, error) {
	builder := roomViewSelect().Where(squirrel.Eq{"r.is_available": true})

	if filter.City != "" {
		builder = builder.Where(squirrel.ILike{"h.city": filter.City})
	}
	if filter.CheckIn != nil && filter.CheckOut != nil {
		builder = builder.Where(squirrel.Expr(
			"NOT EXISTS (SELECT 1 FROM bookings b WHERE b.room_id = r.id AND b.status <> 'cancelled' AND b.check_in < ?::date AND ?::date < b.check_out)",
			*filter.CheckOut, *filter.CheckIn,
		))
	}

	switch filter.Sort {
	case "price_asc":
		builder = builder.OrderBy("r.price_per_night_cents ASC")
	case "price_desc":
		builder = builder.OrderBy("r.price_per_night_cents DESC")
	default:
		builder = builder.OrderBy("r.created_at DESC")
	}
	builder = builder.Limit(uint64(filter.Limit))

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, infra.WrapRepoErr("failed to build room list query", err)
	}

	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list rooms", err)
	}
	defer rows.Close()

	views := []queries.RoomView{}
	for rows.Next() {
		view, err := scanRoomView(rows)
		if err != nil {
			return nil, infra.WrapRepoErr("failed to scan room row", err)
		}
		views = append(views, *view)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to read room rows", err)
	}
	return views, nil
}

func roomViewSelect() squirrel.SelectBuilder {
	return psql.Select(
		"r.id", "r.hotel_id", "h.name", "h.city",
		"r.name", "r.price_per_night_cents", "r.max_guests",
		"r.amenities", "r.is_available", "r.created_at",
	).
		From("rooms r").
		Join("hotels h ON r.hotel_id = h.id")
}

func scanRoomView(row rowScanner) (*queries.RoomView, error) {
	var (
		view      queries.RoomView
		createdAt pgtype.Timestamptz
	)
	err := row.Scan(
		&view.ID, &view.HotelID, &view.HotelName, &view.HotelCity,
		&view.Name, &view.PricePerNightCents, &view.MaxGuests,
		&view.Amenities, &view.IsAvailable, &createdAt,
	)
	if err != nil {
		return nil, err
	}
	view.CreatedAt = pgconv.TimeFromPgtype(createdAt)
	return &view, nil
}
