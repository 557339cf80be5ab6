package repository

import (
	"context"

	"github.com/google/uuid"

	"stayhub/internal/domain/room"
	"stayhub/internal/infra"
	"stayhub/internal/infra/db"
)

type RoomRepository struct {
	db db.DBTX
}

func NewRoomRepository(db db.DBTX) *RoomRepository {
	return &RoomRepository{db: db}
}

func (r *RoomRepository) Insert(ctx context.Context, entity *room.Room) (uuid.UUID, error) {
	query, args, err := psql.Insert("rooms").
		Columns("id", "hotel_id", "name", "price_per_night_cents", "max_guests", "amenities", "is_available").
		Values(
			entity.ID(), entity.HotelID(), entity.Name(),
			entity.PricePerNightCents(), entity.MaxGuests(),
			entity.Amenities(), entity.IsAvailable(),
		).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return uuid.Nil, infra.WrapRepoErr("failed to build room insert", err)
	}

	var id uuid.UUID
	if err := r.db.QueryRow(ctx, query, args...).Scan(&id); err != nil {
		return uuid.Nil, infra.WrapRepoErr("failed to insert room", err, classifyPgError(err))
	}
	return id, nil
}
