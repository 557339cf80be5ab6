package queries

import (
	"context"

	"github.com/google/uuid"

	"stayhub/internal/infra"
	"stayhub/internal/pkg/errs"
)

var (
	ErrUserNotFound  = errs.New("user not found")
	ErrUserQueryFail = errs.New("failed to query users")
)

type UserReadStore interface {
	FindByEmail(ctx context.Context, email string) (*AuthorizedUserView, error)
	FindByID(ctx context.Context, id uuid.UUID) (*AuthorizedUserView, error)
}

type UserQueries interface {
	GetByEmail(ctx context.Context, email string) (*AuthorizedUserView, error)
	GetByID(ctx context.Context, id uuid.UUID) (*AuthorizedUserView, error)
}

type userQueries struct {
	users UserReadStore
}

func NewUserQueries(users UserReadStore) UserQueries {
	return &userQueries{users: users}
}

func (q *userQueries) GetByEmail(ctx context.Context, email string) (*AuthorizedUserView, error) {
	view, err := q.users.FindByEmail(ctx, email)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, errs.Mark(err, ErrUserNotFound)
		}
		return nil, errs.Mark(err, ErrUserQueryFail)
	}
	return view, nil
}

func (q *userQueries) GetByID(ctx context.Context, id uuid.UUID) (*AuthorizedUserView, error) {
	view, err := q.users.FindByID(ctx, id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, errs.Mark(err, ErrUserNotFound)
		}
		return nil, errs.Mark(err, ErrUserQueryFail)
	}
	return view, nil
}
