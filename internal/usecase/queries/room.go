package queries

import (
	"context"

	"github.com/google/uuid"

	"stayhub/internal/infra"
	"stayhub/internal/pkg/errs"
)

var (
	ErrRoomNotFound  = errs.New("room not found")
	ErrRoomQueryFail = errs.New("failed to query rooms")
)

type RoomReadStore interface {
	FindViewByID(ctx context.Context, id uuid.UUID) (*RoomView, error)
	List(ctx context.Context, filter RoomFilter) ([]RoomView, error)
}

type RoomQueries interface {
	GetByID(ctx context.Context, id uuid.UUID) (*RoomView, error)
	List(ctx context.Context, filter RoomFilter) ([]RoomView, error)
}

type roomQueries struct {
	rooms RoomReadStore
}

func NewRoomQueries(rooms RoomReadStore) RoomQueries {
	return &roomQueries{rooms: rooms}
}

func (q *roomQueries) GetByID(ctx context.Context, id uuid.UUID) (*RoomView, error) {
	view, err := q.rooms.FindViewByID(ctx, id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, errs.Mark(err, ErrRoomNotFound)
		}
		return nil, errs.Mark(err, ErrRoomQueryFail)
	}
	return view, nil
}

func (q *roomQueries) List(ctx context.Context, filter RoomFilter) ([]RoomView, error) {
	if filter.Limit <= 0 || filter.Limit > 100 {
		filter.Limit = 20
	}
	// half-open filter: only meaningful as a pair
	if (filter.CheckIn == nil) != (filter.CheckOut == nil) {
		return nil, ErrInvalidDateFilter
	}
	if filter.CheckIn != nil && !filter.CheckIn.Before(*filter.CheckOut) {
		return nil, ErrInvalidDateFilter
	}
	views, err := q.rooms.List(ctx, filter)
	if err != nil {
		return nil, errs.Mark(err, ErrRoomQueryFail)
	}
	return views, nil
}
