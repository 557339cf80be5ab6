//go:build unit

package queries_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"stayhub/internal/infra"
	"stayhub/internal/pkg/errs"
	"stayhub/internal/usecase/queries"
	"stayhub/tests/common/builder"
	readstoremock "stayhub/tests/mock/readstore"
)

type RoomQueriesTestSuite struct {
	suite.Suite
	ctx       context.Context
	mockCtrl  *gomock.Controller
	mockRooms *readstoremock.MockRoomReadStore
	queries   queries.RoomQueries
}

func (s *RoomQueriesTestSuite) SetupTest() {
	s.ctx = context.Background()
	s.mockCtrl = gomock.NewController(s.T())
	s.mockRooms = readstoremock.NewMockRoomReadStore(s.mockCtrl)
	s.queries = queries.NewRoomQueries(s.mockRooms)
}

func (s *RoomQueriesTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestRoomQueriesSuite(t *testing.T) {
	suite.Run(t, new(RoomQueriesTestSuite))
}

func (s *RoomQueriesTestSuite) TestList() {
	s.Run("missing limit falls back to the default page size", func() {
		s.mockRooms.EXPECT().List(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, filter queries.RoomFilter) ([]queries.RoomView, error) {
				s.Equal(20, filter.Limit)
				return []queries.RoomView{}, nil
			})

		_, err := s.queries.List(s.ctx, queries.RoomFilter{})

		s.NoError(err)
	})

	s.Run("explicit limit is preserved", func() {
		s.mockRooms.EXPECT().List(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, filter queries.RoomFilter) ([]queries.RoomView, error) {
				s.Equal(5, filter.Limit)
				return []queries.RoomView{*builder.NewRoomBuilder().BuildView()}, nil
			})

		views, err := s.queries.List(s.ctx, queries.RoomFilter{Limit: 5})

		s.NoError(err)
		s.Len(views, 1)
	})

	s.Run("date bounds only work as a pair", func() {
		checkIn := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)

		_, err := s.queries.List(s.ctx, queries.RoomFilter{CheckIn: &checkIn})

		s.ErrorIs(err, queries.ErrInvalidDateFilter)
	})

	s.Run("inverted date bounds are rejected", func() {
		checkIn := time.Date(2026, 6, 5, 0, 0, 0, 0, time.UTC)
		checkOut := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)

		_, err := s.queries.List(s.ctx, queries.RoomFilter{CheckIn: &checkIn, CheckOut: &checkOut})

		s.ErrorIs(err, queries.ErrInvalidDateFilter)
	})

	s.Run("equal date bounds are rejected", func() {
		day := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)

		_, err := s.queries.List(s.ctx, queries.RoomFilter{CheckIn: &day, CheckOut: &day})

		s.ErrorIs(err, queries.ErrInvalidDateFilter)
	})
}

func (s *RoomQueriesTestSuite) TestGetByID() {
	s.Run("unknown room", func() {
		id := uuid.New()
		s.mockRooms.EXPECT().FindViewByID(gomock.Any(), id).
			Return(nil, infra.WrapRepoErr("room not found", errs.New("no rows"), infra.KindNotFound))

		view, err := s.queries.GetByID(s.ctx, id)

		s.Nil(view)
		s.ErrorIs(err, queries.ErrRoomNotFound)
	})

	s.Run("store failure", func() {
		id := uuid.New()
		s.mockRooms.EXPECT().FindViewByID(gomock.Any(), id).
			Return(nil, infra.WrapRepoErr("query failed", errs.New("boom")))

		view, err := s.queries.GetByID(s.ctx, id)

		s.Nil(view)
		s.ErrorIs(err, queries.ErrRoomQueryFail)
	})
}
