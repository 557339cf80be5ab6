//go:build unit

package api_test

import (
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"stayhub/internal/domain/user"
	"stayhub/internal/handler/api"
	resdto "stayhub/internal/handler/dto/response"
	"stayhub/internal/usecase/commands"
	"stayhub/internal/usecase/queries"
	"stayhub/tests/common/builder"
	"stayhub/tests/common/httptest"
	"stayhub/tests/common/testutil"
	commandsmock "stayhub/tests/mock/commands"
	queriesmock "stayhub/tests/mock/queries"
)

type BookingHandlerTestSuite struct {
	suite.Suite
	router             *gin.Engine
	mockCtrl           *gomock.Controller
	mockCommands       *commandsmock.MockBookingCommands
	mockBookingQueries *queriesmock.MockBookingQueries
	mockRoomQueries    *queriesmock.MockRoomQueries
	handler            *api.BookingHandler

	// identity injected by the stub auth middleware; tests mutate per case
	userID   uuid.UUID
	userRole user.Role
}

func (s *BookingHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.router = gin.New()

	s.mockCtrl = gomock.NewController(s.T())
	s.mockCommands = commandsmock.NewMockBookingCommands(s.mockCtrl)
	s.mockBookingQueries = queriesmock.NewMockBookingQueries(s.mockCtrl)
	s.mockRoomQueries = queriesmock.NewMockRoomQueries(s.mockCtrl)
	s.handler = api.NewBookingHandler(s.mockCommands, s.mockBookingQueries, s.mockRoomQueries)

	s.userID = uuid.New()
	s.userRole = user.RoleGuest

	authMiddleware := func(c *gin.Context) {
		if c.GetHeader("Authorization") == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		c.Set("user_id", s.userID)
		c.Set("user_role", s.userRole)
		c.Next()
	}

	s.router.GET("/bookings/availability", s.handler.CheckAvailability)
	s.router.POST("/bookings", authMiddleware, s.handler.CreateBooking)
	s.router.GET("/bookings/me", authMiddleware, s.handler.ListMyBookings)
	s.router.GET("/bookings/hotel/:hotelId", authMiddleware, s.handler.ListHotelBookings)
	s.router.PATCH("/bookings/:id/status", authMiddleware, s.handler.UpdateBookingStatus)
	s.router.DELETE("/bookings/:id", authMiddleware, s.handler.CancelBooking)
}

func (s *BookingHandlerTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestBookingHandlerSuite(t *testing.T) {
	suite.Run(t, new(BookingHandlerTestSuite))
}

// ================================================================================
// TestCheckAvailability
// ================================================================================

func (s *BookingHandlerTestSuite) TestCheckAvailability() {
	roomView := builder.NewRoomBuilder().BuildView()
	url := "/bookings/availability?room_id=" + roomView.ID.String() +
		"&check_in=2026-06-01&check_out=2026-06-04"

	period, err := builder.NewBookingBuilder().BuildPeriod()
	s.Require().NoError(err)

	s.Run("success: room is free", func() {
		s.mockRoomQueries.EXPECT().GetByID(gomock.Any(), roomView.ID).
			Return(roomView, nil).Times(1)
		s.mockBookingQueries.EXPECT().CheckAvailability(gomock.Any(), roomView.ID, period).
			Return(true, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url, nil, "")

		var response resdto.AvailabilityResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &response)
		s.Equal(roomView.ID, response.RoomID)
		s.True(response.Available)
	})

	s.Run("success: room is taken", func() {
		s.mockRoomQueries.EXPECT().GetByID(gomock.Any(), roomView.ID).
			Return(roomView, nil).Times(1)
		s.mockBookingQueries.EXPECT().CheckAvailability(gomock.Any(), roomView.ID, period).
			Return(false, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url, nil, "")

		var response resdto.AvailabilityResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &response)
		s.False(response.Available)
	})

	s.Run("error: 400 Bad Request when dates are missing", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet,
			"/bookings/availability?room_id="+roomView.ID.String(), nil, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid query parameters")
	})

	s.Run("error: 400 Bad Request for inverted range", func() {
		invertedURL := "/bookings/availability?room_id=" + roomView.ID.String() +
			"&check_in=2026-06-04&check_out=2026-06-01"
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, invertedURL, nil, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Check-in must be before check-out")
	})

	s.Run("error: 404 Not Found for unknown room", func() {
		s.mockRoomQueries.EXPECT().GetByID(gomock.Any(), roomView.ID).
			Return(nil, queries.ErrRoomNotFound).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url, nil, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusNotFound, "Room not found")
	})
}

// ================================================================================
// TestCreateBooking
// ================================================================================

func (s *BookingHandlerTestSuite) TestCreateBooking() {
	url := "/bookings"

	bb := builder.NewBookingBuilder()
	reqBody := bb.BuildDTO()
	returnView := bb.BuildView()

	s.Run("success: returns 201 Created with booking payload", func() {
		s.mockCommands.EXPECT().CreateBooking(gomock.Any(), reqBody, gomock.Any()).
			Return(returnView, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "bearer-token")

		var response resdto.BookingResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusCreated, &response)
		s.Equal(returnView.ID, response.ID)
		s.Equal("pending", response.Status)
		s.Equal(returnView.TotalPriceCents, response.TotalPriceCents)
	})

	s.Run("error: 400 Bad Request on validation errors", func() {
		testCases := []struct {
			name   string
			mutate func(m map[string]any)
		}{
			{name: "missing field: room_id", mutate: testutil.Field("room_id", nil)},
			{name: "missing field: check_in", mutate: testutil.Field("check_in", nil)},
			{name: "missing field: check_out", mutate: testutil.Field("check_out", nil)},
			{name: "missing field: guests", mutate: testutil.Field("guests", nil)},
			{name: "guests below minimum", mutate: testutil.Field("guests", 0)},
			{name: "malformed check_in", mutate: testutil.Field("check_in", "June 1st")},
			{name: "datetime instead of date", mutate: testutil.Field("check_in", "2026-06-01T15:00:00Z")},
		}

		for _, tc := range testCases {
			s.Run(tc.name, func() {
				requestMap := testutil.DtoMap(s.T(), reqBody, tc.mutate)
				rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, requestMap, "bearer-token")
				httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid request format")
			})
		}
	})

	s.Run("error: 401 Unauthorized when unauthenticated", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusUnauthorized, "Unauthorized")
	})

	s.Run("error: maps usecase errors to proper statuses", func() {
		testCases := []struct {
			name           string
			commandsError  error
			expectedStatus int
			expectedMsg    string
		}{
			{
				name:           "room not found",
				commandsError:  commands.ErrRoomNotFound,
				expectedStatus: http.StatusNotFound,
				expectedMsg:    "Room not found",
			},
			{
				name:           "room closed for booking",
				commandsError:  commands.ErrRoomUnavailable,
				expectedStatus: http.StatusForbidden,
				expectedMsg:    "not open for booking",
			},
			{
				name:           "domain validation failed",
				commandsError:  commands.ErrDomainValidation,
				expectedStatus: http.StatusBadRequest,
				expectedMsg:    "Invalid booking request",
			},
			{
				name:           "dates already taken",
				commandsError:  commands.ErrBookingConflict,
				expectedStatus: http.StatusConflict,
				expectedMsg:    "already booked",
			},
			{
				name:           "internal server error",
				commandsError:  errors.New("database error"),
				expectedStatus: http.StatusInternalServerError,
				expectedMsg:    "Internal server error",
			},
		}

		for _, tc := range testCases {
			s.Run(tc.name, func() {
				s.mockCommands.EXPECT().CreateBooking(gomock.Any(), reqBody, gomock.Any()).
					Return(nil, tc.commandsError).Times(1)

				rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "bearer-token")
				httptest.AssertErrorResponse(s.T(), rec, tc.expectedStatus, tc.expectedMsg)
			})
		}
	})
}

// ================================================================================
// TestListMyBookings
// ================================================================================

func (s *BookingHandlerTestSuite) TestListMyBookings() {
	url := "/bookings/me"

	checkIn, _ := time.Parse("2006-01-02", "2026-06-01")
	items := []queries.BookingListItem{
		{ID: uuid.New(), RoomName: "Sea View Double", CheckIn: checkIn, Status: "pending"},
		{ID: uuid.New(), RoomName: "Garden Twin", CheckIn: checkIn.AddDate(0, 1, 0), Status: "confirmed"},
	}

	s.Run("success: returns own bookings", func() {
		s.mockBookingQueries.EXPECT().ListByGuest(gomock.Any(), s.userID).
			Return(items, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url, nil, "bearer-token")

		var response []resdto.BookingListResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &response)
		s.Len(response, 2)
		s.Equal(items[0].ID, response[0].ID)
	})

	s.Run("success: empty list for guest with no bookings", func() {
		s.mockBookingQueries.EXPECT().ListByGuest(gomock.Any(), s.userID).
			Return([]queries.BookingListItem{}, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url, nil, "bearer-token")

		var response []resdto.BookingListResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &response)
		s.Empty(response)
	})

	s.Run("error: 401 Unauthorized when unauthenticated", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url, nil, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusUnauthorized, "Unauthorized")
	})

	s.Run("error: 500 on query failure", func() {
		s.mockBookingQueries.EXPECT().ListByGuest(gomock.Any(), s.userID).
			Return(nil, queries.ErrBookingQueryFail).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url, nil, "bearer-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusInternalServerError, "Internal server error")
	})
}

// ================================================================================
// TestListHotelBookings
// ================================================================================

func (s *BookingHandlerTestSuite) TestListHotelBookings() {
	hotelID := uuid.New()
	url := "/bookings/hotel/" + hotelID.String()

	result := &queries.HotelBookings{
		Bookings:          []queries.BookingListItem{{ID: uuid.New(), Status: "confirmed"}},
		TotalBookings:     1,
		TotalRevenueCents: 30000,
	}

	s.Run("success: owner sees own hotel", func() {
		s.userRole = user.RoleOwner
		s.mockBookingQueries.EXPECT().HotelByID(gomock.Any(), hotelID).
			Return(&queries.HotelView{ID: hotelID, OwnerID: s.userID}, nil).Times(1)
		s.mockBookingQueries.EXPECT().ListByHotel(gomock.Any(), hotelID).
			Return(result, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url, nil, "bearer-token")

		var response resdto.HotelBookingsResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &response)
		s.Equal(1, response.TotalBookings)
		s.Equal(int64(30000), response.TotalRevenueCents)
	})

	s.Run("success: admin skips ownership check", func() {
		s.userRole = user.RoleAdmin
		s.mockBookingQueries.EXPECT().ListByHotel(gomock.Any(), hotelID).
			Return(result, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url, nil, "bearer-token")
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, nil)
	})

	s.Run("error: 403 Forbidden for someone else's hotel", func() {
		s.userRole = user.RoleOwner
		s.mockBookingQueries.EXPECT().HotelByID(gomock.Any(), hotelID).
			Return(&queries.HotelView{ID: hotelID, OwnerID: uuid.New()}, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url, nil, "bearer-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusForbidden, "Insufficient permissions")
	})

	s.Run("error: 404 Not Found for unknown hotel", func() {
		s.userRole = user.RoleOwner
		s.mockBookingQueries.EXPECT().HotelByID(gomock.Any(), hotelID).
			Return(nil, queries.ErrHotelNotFound).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url, nil, "bearer-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusNotFound, "Hotel not found")
	})

	s.Run("error: 400 Bad Request for invalid hotel UUID", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/bookings/hotel/not-a-uuid", nil, "bearer-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid hotel ID format")
	})
}

// ================================================================================
// TestUpdateBookingStatus
// ================================================================================

func (s *BookingHandlerTestSuite) TestUpdateBookingStatus() {
	bb := builder.NewBookingBuilder()
	returnView := bb.BuildView()
	bookingID := returnView.ID
	url := "/bookings/" + bookingID.String() + "/status"

	reqBody := map[string]any{"status": "confirmed"}

	s.Run("success: owner confirms a pending booking", func() {
		s.userRole = user.RoleOwner
		s.mockBookingQueries.EXPECT().GetByID(gomock.Any(), bookingID).
			Return(returnView, nil).Times(2)
		s.mockBookingQueries.EXPECT().HotelByID(gomock.Any(), returnView.HotelID).
			Return(&queries.HotelView{ID: returnView.HotelID, OwnerID: s.userID}, nil).Times(1)
		s.mockCommands.EXPECT().SetStatus(gomock.Any(), bookingID, "confirmed").
			Return(nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPatch, url, reqBody, "bearer-token")
		s.Equal(http.StatusOK, rec.Code)

		var resp resdto.BookingResponse
		httptest.DecodeResponseBody(s.T(), rec.Body, &resp)
		s.Equal(bookingID, resp.ID)
	})

	s.Run("error: 400 Bad Request for unknown status value", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPatch, url,
			map[string]any{"status": "checked_in"}, "bearer-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid request format")
	})

	s.Run("error: 400 Bad Request for illegal transition", func() {
		s.userRole = user.RoleAdmin
		s.mockBookingQueries.EXPECT().GetByID(gomock.Any(), bookingID).
			Return(returnView, nil).Times(1)
		s.mockCommands.EXPECT().SetStatus(gomock.Any(), bookingID, "pending").
			Return(commands.ErrInvalidStatusTransition).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPatch, url,
			map[string]any{"status": "pending"}, "bearer-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Illegal status transition")
	})

	s.Run("error: 404 Not Found for missing booking", func() {
		s.userRole = user.RoleAdmin
		s.mockBookingQueries.EXPECT().GetByID(gomock.Any(), bookingID).
			Return(nil, queries.ErrBookingNotFound).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPatch, url, reqBody, "bearer-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusNotFound, "Booking not found")
	})

	s.Run("error: 403 Forbidden for non-owning owner", func() {
		s.userRole = user.RoleOwner
		s.mockBookingQueries.EXPECT().GetByID(gomock.Any(), bookingID).
			Return(returnView, nil).Times(1)
		s.mockBookingQueries.EXPECT().HotelByID(gomock.Any(), returnView.HotelID).
			Return(&queries.HotelView{ID: returnView.HotelID, OwnerID: uuid.New()}, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPatch, url, reqBody, "bearer-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusForbidden, "Insufficient permissions")
	})
}

// ================================================================================
// TestCancelBooking
// ================================================================================

func (s *BookingHandlerTestSuite) TestCancelBooking() {
	bb := builder.NewBookingBuilder()
	returnView := bb.BuildView()
	bookingID := returnView.ID
	url := "/bookings/" + bookingID.String()

	s.Run("success: guest cancels own booking", func() {
		returnView.GuestID = s.userID
		s.mockBookingQueries.EXPECT().GetByID(gomock.Any(), bookingID).
			Return(returnView, nil).Times(2)
		s.mockCommands.EXPECT().CancelBooking(gomock.Any(), bookingID).
			Return(nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodDelete, url, nil, "bearer-token")
		s.Equal(http.StatusOK, rec.Code)

		var resp resdto.BookingResponse
		httptest.DecodeResponseBody(s.T(), rec.Body, &resp)
		s.Equal(bookingID, resp.ID)
	})

	s.Run("success: hotel owner cancels a guest booking", func() {
		s.userRole = user.RoleOwner
		returnView.GuestID = uuid.New()
		s.mockBookingQueries.EXPECT().GetByID(gomock.Any(), bookingID).
			Return(returnView, nil).Times(2)
		s.mockBookingQueries.EXPECT().HotelByID(gomock.Any(), returnView.HotelID).
			Return(&queries.HotelView{ID: returnView.HotelID, OwnerID: s.userID}, nil).Times(1)
		s.mockCommands.EXPECT().CancelBooking(gomock.Any(), bookingID).
			Return(nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodDelete, url, nil, "bearer-token")
		s.Equal(http.StatusOK, rec.Code)
	})

	s.Run("error: 403 Forbidden for unrelated guest", func() {
		s.userRole = user.RoleGuest
		returnView.GuestID = uuid.New()
		s.mockBookingQueries.EXPECT().GetByID(gomock.Any(), bookingID).
			Return(returnView, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodDelete, url, nil, "bearer-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusForbidden, "Insufficient permissions")
	})

	s.Run("error: 404 Not Found for missing booking", func() {
		s.mockBookingQueries.EXPECT().GetByID(gomock.Any(), bookingID).
			Return(nil, queries.ErrBookingNotFound).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodDelete, url, nil, "bearer-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusNotFound, "Booking not found")
	})

	s.Run("error: 400 Bad Request for invalid booking UUID", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodDelete, "/bookings/not-a-uuid", nil, "bearer-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid booking ID format")
	})

	s.Run("error: 401 Unauthorized when unauthenticated", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodDelete, url, nil, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusUnauthorized, "Unauthorized")
	})
}
