package readstore

import (
	"context"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"stayhub/internal/infra"
	"stayhub/internal/pkg/pgconv"
	"stayhub/internal/usecase/queries"
)

type HotelReadStore struct {
	pool *pgxpool.Pool
}

func NewHotelReadStore(pool *pgxpool.Pool) *HotelReadStore {
	return &HotelReadStore{pool: pool}
}

func (s *HotelReadStore) FindViewByID(ctx context.Context, id uuid.UUID) (*queries.HotelView, error) {
	query, args, err := psql.Select("id", "owner_id", "name", "city").
		From("hotels").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, infra.WrapRepoErr("failed to build hotel view query", err)
	}

	var view queries.HotelView
	err = s.pool.QueryRow(ctx, query, args...).Scan(&view.ID, &view.OwnerID, &view.Name, &view.City)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("hotel not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find hotel view", err)
	}
	return &view, nil
}
