package commands

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"stayhub/internal/domain/room"
	reqdto "stayhub/internal/handler/dto/request"
	"stayhub/internal/infra"
	"stayhub/internal/pkg/errs"
	"stayhub/internal/usecase/queries"
	"stayhub/internal/usecase/shared"
)

var (
	ErrHotelNotFound  = errs.New("hotel not found")
	ErrNotHotelOwner  = errs.New("hotel belongs to another owner")
	ErrInvalidRoom    = errs.New("invalid room")
	ErrRoomCreateFail = errs.New("failed to create room")
)

type RoomCommands interface {
	// CreateRoom adds a room under one of the actor's hotels. Admins may
	// create rooms under any hotel.
	CreateRoom(ctx context.Context, req reqdto.CreateRoomRequest, actorID uuid.UUID, isAdmin bool) (*queries.RoomView, error)
}

type roomCommandsImpl struct {
	uow         shared.UnitOfWork
	roomQueries queries.RoomQueries
}

func NewRoomCommands(uow shared.UnitOfWork, roomQueries queries.RoomQueries) RoomCommands {
	return &roomCommandsImpl{uow: uow, roomQueries: roomQueries}
}

func (r *roomCommandsImpl) CreateRoom(
	ctx context.Context,
	req reqdto.CreateRoomRequest,
	actorID uuid.UUID,
	isAdmin bool,
) (*queries.RoomView, error) {
	roomEntity, err := room.NewRoom(
		uuid.New(),
		req.HotelID,
		req.Name,
		req.PricePerNightCents,
		req.MaxGuests,
		req.Amenities,
		req.Available(),
	)
	if err != nil {
		return nil, errs.Mark(err, ErrInvalidRoom)
	}

	// Ownership is checked on the transaction's snapshot so the insert
	// lands under the same view of the hotel row.
	var roomID uuid.UUID
	err = r.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		hotelEntity, readErr := tx.Reads().HotelByID(ctx, req.HotelID)
		if readErr != nil {
			return readErr
		}
		if !isAdmin && !hotelEntity.IsOwnedBy(actorID) {
			return ErrNotHotelOwner
		}

		id, insertErr := tx.Rooms().Insert(ctx, roomEntity)
		if insertErr != nil {
			return insertErr
		}
		roomID = id
		return nil
	})
	if err != nil {
		switch {
		case errors.Is(err, ErrNotHotelOwner):
			return nil, ErrNotHotelOwner
		case infra.IsKind(err, infra.KindNotFound):
			return nil, errs.Mark(err, ErrHotelNotFound)
		default:
			return nil, errs.Mark(err, ErrRoomCreateFail)
		}
	}

	view, err := r.roomQueries.GetByID(ctx, roomID)
	if err != nil {
		return nil, errs.Mark(err, ErrRoomCreateFail)
	}
	return view, nil
}
