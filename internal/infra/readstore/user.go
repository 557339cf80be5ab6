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

type UserReadStore struct {
	pool *pgxpool.Pool
}

func NewUserReadStore(pool *pgxpool.Pool) *UserReadStore {
	return &UserReadStore{pool: pool}
}

func (s *UserReadStore) FindByEmail(ctx context.Context, email string) (*queries.AuthorizedUserView, error) {
	return s.findOne(ctx, squirrel.Eq{"email": email})
}

func (s *UserReadStore) FindByID(ctx context.Context, id uuid.UUID) (*queries.AuthorizedUserView, error) {
	return s.findOne(ctx, squirrel.Eq{"id": id})
}

func (s *UserReadStore) findOne(ctx context.Context, pred any) (*queries.AuthorizedUserView, error) {
	query, args, err := psql.Select("id", "email", "password_hash", "role", "is_active", "last_login").
		From("users").
		Where(pred).
		ToSql()
	if err != nil {
		return nil, infra.WrapRepoErr("failed to build user query", err)
	}

	var (
		view      queries.AuthorizedUserView
		lastLogin pgtype.Timestamptz
	)
	err = s.pool.QueryRow(ctx, query, args...).Scan(
		&view.ID, &view.Email, &view.PasswordHash, &view.Role, &view.IsActive, &lastLogin,
	)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("user not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find user", err)
	}
	view.LastLogin = pgconv.TimePtrFromPgtype(lastLogin)
	return &view, nil
}
