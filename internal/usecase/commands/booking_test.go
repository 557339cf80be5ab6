//go:build unit

package commands_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"stayhub/internal/domain/booking"
	"stayhub/internal/infra"
	"stayhub/internal/pkg/clock"
	"stayhub/internal/usecase/commands"
	"stayhub/internal/usecase/shared"
	"stayhub/tests/common/builder"
	queriesmock "stayhub/tests/mock/queries"
	sharedmock "stayhub/tests/mock/shared"
)

// recordingDispatcher stands in for the outbox so that asynchronous
// dispatch never races the gomock controller.
type recordingDispatcher struct {
	mu        sync.Mutex
	created   []commands.BookingCreatedEvent
	cancelled []uuid.UUID
}

func (d *recordingDispatcher) BookingCreated(_ context.Context, event commands.BookingCreatedEvent) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.created = append(d.created, event)
	return nil
}

func (d *recordingDispatcher) BookingCancelled(_ context.Context, bookingID, _ uuid.UUID) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.cancelled = append(d.cancelled, bookingID)
	return nil
}

func (d *recordingDispatcher) createdCount() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.created)
}

func (d *recordingDispatcher) cancelledCount() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.cancelled)
}

func waitFor(timeout time.Duration, cond func() bool) bool {
	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		if cond() {
			return true
		}
		time.Sleep(5 * time.Millisecond)
	}
	return cond()
}

type BookingCommandsTestSuite struct {
	suite.Suite
	ctx          context.Context
	mockCtrl     *gomock.Controller
	mockUow      *sharedmock.MockUnitOfWork
	mockTx       *sharedmock.MockTx
	mockBookings *sharedmock.MockBookingRepository
	mockReads    *sharedmock.MockCommandReads
	mockQueries  *queriesmock.MockBookingQueries
	dispatcher   *recordingDispatcher
	cmds         commands.BookingCommands
}

func (s *BookingCommandsTestSuite) SetupTest() {
	s.ctx = context.Background()
	s.mockCtrl = gomock.NewController(s.T())
	s.mockUow = sharedmock.NewMockUnitOfWork(s.mockCtrl)
	s.mockTx = sharedmock.NewMockTx(s.mockCtrl)
	s.mockBookings = sharedmock.NewMockBookingRepository(s.mockCtrl)
	s.mockReads = sharedmock.NewMockCommandReads(s.mockCtrl)
	s.mockQueries = queriesmock.NewMockBookingQueries(s.mockCtrl)
	s.dispatcher = &recordingDispatcher{}

	s.mockTx.EXPECT().Bookings().Return(s.mockBookings).AnyTimes()
	s.mockUow.EXPECT().CommandReads().Return(s.mockReads).AnyTimes()
	s.mockUow.EXPECT().Within(gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, fn func(context.Context, shared.Tx) error) error {
			return fn(ctx, s.mockTx)
		}).AnyTimes()

	s.cmds = commands.NewBookingCommands(
		s.mockUow,
		booking.NewFactory(),
		s.mockQueries,
		s.dispatcher,
		clock.NewMockClock(time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)),
	)
}

func (s *BookingCommandsTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestBookingCommandsSuite(t *testing.T) {
	suite.Run(t, new(BookingCommandsTestSuite))
}

func (s *BookingCommandsTestSuite) roomSnapshot(rb *builder.RoomBuilder) *shared.RoomSnapshot {
	return &shared.RoomSnapshot{
		ID:                 rb.ID,
		HotelID:            rb.HotelID,
		Name:               rb.Name,
		PricePerNightCents: rb.PricePerNight,
		MaxGuests:          rb.MaxGuests,
		Amenities:          rb.Amenities,
		IsAvailable:        rb.IsAvailable,
	}
}

// ================================================================================
// TestCreateBooking
// ================================================================================

func (s *BookingCommandsTestSuite) TestCreateBooking() {
	guestID := uuid.New()

	s.Run("success: inserts, notifies and returns the stored view", func() {
		rb := builder.NewRoomBuilder()
		bb := builder.NewBookingBuilder()
		bb.RoomID = rb.ID
		req := bb.BuildDTO()
		bookingID := uuid.New()
		view := bb.BuildView()
		view.ID = bookingID

		s.mockReads.EXPECT().RoomByID(gomock.Any(), rb.ID).
			Return(s.roomSnapshot(rb), nil).Times(1)
		s.mockBookings.EXPECT().InsertIfAvailable(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, b *booking.Booking) (uuid.UUID, error) {
				s.Equal(rb.ID, b.RoomID())
				s.Equal(guestID, b.GuestID())
				s.Equal(booking.StatusPending, b.Status())
				// 3 nights at the builder's nightly price
				s.Equal(int64(30000), b.TotalPrice().Cents())
				return bookingID, nil
			}).Times(1)
		s.mockQueries.EXPECT().GetByID(gomock.Any(), bookingID).
			Return(view, nil).Times(1)

		got, err := s.cmds.CreateBooking(s.ctx, req, guestID)
		s.Require().NoError(err)
		s.Equal(bookingID, got.ID)

		s.True(waitFor(time.Second, func() bool { return s.dispatcher.createdCount() == 1 }))
	})

	s.Run("error: conflict from the store maps to ErrBookingConflict", func() {
		rb := builder.NewRoomBuilder()
		bb := builder.NewBookingBuilder()
		bb.RoomID = rb.ID
		req := bb.BuildDTO()

		before := s.dispatcher.createdCount()
		s.mockReads.EXPECT().RoomByID(gomock.Any(), rb.ID).
			Return(s.roomSnapshot(rb), nil).Times(1)
		s.mockBookings.EXPECT().InsertIfAvailable(gomock.Any(), gomock.Any()).
			Return(uuid.Nil, infra.WrapRepoErr("booking overlaps an existing stay", nil, infra.KindConflict)).Times(1)

		_, err := s.cmds.CreateBooking(s.ctx, req, guestID)
		s.Require().ErrorIs(err, commands.ErrBookingConflict)
		s.Equal(before, s.dispatcher.createdCount())
	})

	s.Run("error: unknown room maps to ErrRoomNotFound", func() {
		bb := builder.NewBookingBuilder()
		req := bb.BuildDTO()

		s.mockReads.EXPECT().RoomByID(gomock.Any(), bb.RoomID).
			Return(nil, infra.WrapRepoErr("room not found", nil, infra.KindNotFound)).Times(1)

		_, err := s.cmds.CreateBooking(s.ctx, req, guestID)
		s.Require().ErrorIs(err, commands.ErrRoomNotFound)
	})

	s.Run("error: closed room maps to ErrRoomUnavailable", func() {
		rb := builder.NewRoomBuilder().AsUnavailable()
		bb := builder.NewBookingBuilder()
		bb.RoomID = rb.ID
		req := bb.BuildDTO()

		s.mockReads.EXPECT().RoomByID(gomock.Any(), rb.ID).
			Return(s.roomSnapshot(rb), nil).Times(1)

		_, err := s.cmds.CreateBooking(s.ctx, req, guestID)
		s.Require().ErrorIs(err, commands.ErrRoomUnavailable)
	})

	s.Run("error: zero-length stay maps to ErrDomainValidation", func() {
		rb := builder.NewRoomBuilder()
		bb := builder.NewBookingBuilder().WithStay("2026-06-01", "2026-06-01")
		bb.RoomID = rb.ID
		req := bb.BuildDTO()

		s.mockReads.EXPECT().RoomByID(gomock.Any(), rb.ID).
			Return(s.roomSnapshot(rb), nil).Times(1)

		_, err := s.cmds.CreateBooking(s.ctx, req, guestID)
		s.Require().ErrorIs(err, commands.ErrDomainValidation)
	})

	s.Run("error: party larger than the room maps to ErrDomainValidation", func() {
		rb := builder.NewRoomBuilder().WithMaxGuests(2)
		bb := builder.NewBookingBuilder().WithGuests(5)
		bb.RoomID = rb.ID
		req := bb.BuildDTO()

		s.mockReads.EXPECT().RoomByID(gomock.Any(), rb.ID).
			Return(s.roomSnapshot(rb), nil).Times(1)

		_, err := s.cmds.CreateBooking(s.ctx, req, guestID)
		s.Require().ErrorIs(err, commands.ErrDomainValidation)
	})
}

// ================================================================================
// TestCancelBooking
// ================================================================================

func (s *BookingCommandsTestSuite) TestCancelBooking() {
	bookingID := uuid.New()

	s.Run("success: cancels a pending booking and notifies", func() {
		entity, err := builder.NewBookingBuilder().BuildDomain()
		s.Require().NoError(err)

		s.mockBookings.EXPECT().FindByID(gomock.Any(), bookingID).
			Return(entity, nil).Times(1)
		s.mockBookings.EXPECT().UpdateStatus(gomock.Any(), bookingID, booking.StatusCancelled).
			Return(nil).Times(1)

		s.Require().NoError(s.cmds.CancelBooking(s.ctx, bookingID))
		s.True(waitFor(time.Second, func() bool { return s.dispatcher.cancelledCount() == 1 }))
	})

	s.Run("success: cancelling an already cancelled booking is a no-op", func() {
		entity, err := builder.NewBookingBuilder().WithStatus("cancelled").BuildDomain()
		s.Require().NoError(err)

		before := s.dispatcher.cancelledCount()
		s.mockBookings.EXPECT().FindByID(gomock.Any(), bookingID).
			Return(entity, nil).Times(1)

		s.Require().NoError(s.cmds.CancelBooking(s.ctx, bookingID))
		s.Equal(before, s.dispatcher.cancelledCount())
	})

	s.Run("error: missing booking maps to ErrBookingNotFound", func() {
		s.mockBookings.EXPECT().FindByID(gomock.Any(), bookingID).
			Return(nil, infra.WrapRepoErr("booking not found", nil, infra.KindNotFound)).Times(1)

		err := s.cmds.CancelBooking(s.ctx, bookingID)
		s.Require().ErrorIs(err, commands.ErrBookingNotFound)
	})
}

// ================================================================================
// TestSetStatus
// ================================================================================

func (s *BookingCommandsTestSuite) TestSetStatus() {
	bookingID := uuid.New()

	s.Run("success: pending to confirmed", func() {
		entity, err := builder.NewBookingBuilder().BuildDomain()
		s.Require().NoError(err)

		s.mockBookings.EXPECT().FindByID(gomock.Any(), bookingID).
			Return(entity, nil).Times(1)
		s.mockBookings.EXPECT().UpdateStatus(gomock.Any(), bookingID, booking.StatusConfirmed).
			Return(nil).Times(1)

		s.Require().NoError(s.cmds.SetStatus(s.ctx, bookingID, "confirmed"))
	})

	s.Run("success: cancelled to cancelled is idempotent", func() {
		entity, err := builder.NewBookingBuilder().WithStatus("cancelled").BuildDomain()
		s.Require().NoError(err)

		s.mockBookings.EXPECT().FindByID(gomock.Any(), bookingID).
			Return(entity, nil).Times(1)

		s.Require().NoError(s.cmds.SetStatus(s.ctx, bookingID, "cancelled"))
	})

	s.Run("error: unknown status value", func() {
		err := s.cmds.SetStatus(s.ctx, bookingID, "checked_in")
		s.Require().ErrorIs(err, commands.ErrInvalidStatusValue)
	})

	s.Run("error: cancelled cannot be confirmed", func() {
		entity, err := builder.NewBookingBuilder().WithStatus("cancelled").BuildDomain()
		s.Require().NoError(err)

		s.mockBookings.EXPECT().FindByID(gomock.Any(), bookingID).
			Return(entity, nil).Times(1)

		setErr := s.cmds.SetStatus(s.ctx, bookingID, "confirmed")
		s.Require().ErrorIs(setErr, commands.ErrInvalidStatusTransition)
	})

	s.Run("error: confirmed to confirmed is rejected", func() {
		entity, err := builder.NewBookingBuilder().WithStatus("confirmed").BuildDomain()
		s.Require().NoError(err)

		s.mockBookings.EXPECT().FindByID(gomock.Any(), bookingID).
			Return(entity, nil).Times(1)

		setErr := s.cmds.SetStatus(s.ctx, bookingID, "confirmed")
		s.Require().ErrorIs(setErr, commands.ErrInvalidStatusTransition)
	})

	s.Run("error: missing booking maps to ErrBookingNotFound", func() {
		s.mockBookings.EXPECT().FindByID(gomock.Any(), bookingID).
			Return(nil, infra.WrapRepoErr("booking not found", nil, infra.KindNotFound)).Times(1)

		err := s.cmds.SetStatus(s.ctx, bookingID, "confirmed")
		s.Require().ErrorIs(err, commands.ErrBookingNotFound)
	})
}
