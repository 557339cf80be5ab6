//go:build e2e

package room_test

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"stayhub/internal/domain/user"
	"stayhub/internal/handler/dto/request"
	"stayhub/internal/handler/dto/response"
	"stayhub/tests/common/authtest"
	"stayhub/tests/common/dbtest"
	"stayhub/tests/common/httptest"
	"stayhub/tests/e2e"
)

const roomsURL = "/api/rooms"

type RoomSuite struct {
	e2e.SharedSuite
}

func TestRoomSuite(t *testing.T) {
	t.Parallel()
	suite.Run(t, new(RoomSuite))
}

func (s *RoomSuite) seedHotel(ownerEmail string) (ownerID, hotelID uuid.UUID) {
	t := s.T()
	ownerID = dbtest.CreateTestUser(t, s.DB, ownerEmail, string(user.RoleOwner))
	hotelID = dbtest.CreateTestHotel(t, s.DB, ownerID, "Harbor Hotel", "Lisbon")
	return ownerID, hotelID
}

func (s *RoomSuite) TestListRooms() {
	s.Run("Normal case: city filter and price sort", func() {
		t := s.T()
		_, hotelID := s.seedHotel("owner@example.com")
		otherOwner := dbtest.CreateTestUser(t, s.DB, "porto-owner@example.com", string(user.RoleOwner))
		portoHotel := dbtest.CreateTestHotel(t, s.DB, otherOwner, "River Inn", "Porto")

		cheap := dbtest.CreateTestRoom(t, s.DB, hotelID, "Budget Single", 6000, 1)
		dear := dbtest.CreateTestRoom(t, s.DB, hotelID, "Penthouse", 50000, 4)
		dbtest.CreateTestRoom(t, s.DB, portoHotel, "Porto Double", 9000, 2)

		w := httptest.PerformRequest(t, s.Router, http.MethodGet,
			roomsURL+"?city=Lisbon&sort=price_asc", nil, "")
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())

		var list []response.RoomResponse
		httptest.DecodeResponseBody(t, w.Body, &list)
		require.Len(t, list, 2)
		require.Equal(t, cheap, list[0].ID)
		require.Equal(t, dear, list[1].ID)
	})

	s.Run("Normal case: date filter hides booked rooms", func() {
		t := s.T()
		_, hotelID := s.seedHotel("owner@example.com")
		booked := dbtest.CreateTestRoom(t, s.DB, hotelID, "Sea View Double", 10000, 2)
		free := dbtest.CreateTestRoom(t, s.DB, hotelID, "Garden Twin", 12000, 2)

		guestToken := authtest.CreateAndLogin(t, s.DB, s.Router, "guest@example.com", string(user.RoleGuest))
		w := httptest.PerformRequest(t, s.Router, http.MethodPost, "/api/bookings",
			request.CreateBookingRequest{
				RoomID:   booked,
				CheckIn:  "2026-06-01",
				CheckOut: "2026-06-04",
				Guests:   2,
			}, guestToken)
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

		w = httptest.PerformRequest(t, s.Router, http.MethodGet,
			roomsURL+"?check_in=2026-06-02&check_out=2026-06-05", nil, "")
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())

		var list []response.RoomResponse
		httptest.DecodeResponseBody(t, w.Body, &list)
		require.Len(t, list, 1)
		require.Equal(t, free, list[0].ID)

		// a disjoint window shows both rooms again
		w = httptest.PerformRequest(t, s.Router, http.MethodGet,
			roomsURL+"?check_in=2026-06-04&check_out=2026-06-07", nil, "")
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		httptest.DecodeResponseBody(t, w.Body, &list)
		require.Len(t, list, 2)
	})

	s.Run("Normal case: closed rooms stay out of the listing", func() {
		t := s.T()
		_, hotelID := s.seedHotel("owner@example.com")
		dbtest.CreateTestRoom(t, s.DB, hotelID, "Open Room", 8000, 2)
		closed := dbtest.CreateTestRoom(t, s.DB, hotelID, "Closed Room", 8000, 2)
		dbtest.CloseTestRoom(t, s.DB, closed)

		w := httptest.PerformRequest(t, s.Router, http.MethodGet, roomsURL, nil, "")
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())

		var list []response.RoomResponse
		httptest.DecodeResponseBody(t, w.Body, &list)
		require.Len(t, list, 1)
		require.Equal(t, "Open Room", list[0].Name)
	})

	s.Run("Error case: inverted date filter", func() {
		t := s.T()

		w := httptest.PerformRequest(t, s.Router, http.MethodGet,
			roomsURL+"?check_in=2026-06-05&check_out=2026-06-01", nil, "")
		require.Equal(t, http.StatusBadRequest, w.Code, w.Body.String())
	})
}

func (s *RoomSuite) TestGetRoom() {
	s.Run("Normal case: room detail includes hotel context", func() {
		t := s.T()
		_, hotelID := s.seedHotel("owner@example.com")
		roomID := dbtest.CreateTestRoom(t, s.DB, hotelID, "Sea View Double", 10000, 2)

		w := httptest.PerformRequest(t, s.Router, http.MethodGet,
			fmt.Sprintf("%s/%s", roomsURL, roomID), nil, "")
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())

		var room response.RoomResponse
		httptest.DecodeResponseBody(t, w.Body, &room)
		require.Equal(t, roomID, room.ID)
		require.Equal(t, hotelID, room.HotelID)
		require.Equal(t, "Harbor Hotel", room.HotelName)
		require.Equal(t, "Lisbon", room.HotelCity)
		require.Equal(t, []string{"wifi"}, room.Amenities)
	})

	s.Run("Error case: unknown room", func() {
		t := s.T()

		w := httptest.PerformRequest(t, s.Router, http.MethodGet,
			fmt.Sprintf("%s/%s", roomsURL, uuid.New()), nil, "")
		require.Equal(t, http.StatusNotFound, w.Code, w.Body.String())
	})
}

func (s *RoomSuite) TestCreateRoom() {
	s.Run("Normal case: owner adds a room to own hotel", func() {
		t := s.T()
		_, hotelID := s.seedHotel("owner@example.com")
		token := authtest.LoginUser(t, s.Router, "owner@example.com", dbtest.TestPassword)

		w := httptest.PerformRequest(t, s.Router, http.MethodPost, roomsURL, request.CreateRoomRequest{
			HotelID:            hotelID,
			Name:               "New Suite",
			PricePerNightCents: 25000,
			MaxGuests:          3,
			Amenities:          []string{"wifi", "minibar"},
		}, token)
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

		var room response.RoomResponse
		httptest.DecodeResponseBody(t, w.Body, &room)
		require.Equal(t, hotelID, room.HotelID)
		require.Equal(t, "New Suite", room.Name)
		require.True(t, room.IsAvailable)
	})

	s.Run("Error case: owner cannot add a room to a foreign hotel", func() {
		t := s.T()
		_, hotelID := s.seedHotel("owner@example.com")
		token := authtest.CreateAndLogin(t, s.DB, s.Router, "other-owner@example.com", string(user.RoleOwner))

		w := httptest.PerformRequest(t, s.Router, http.MethodPost, roomsURL, request.CreateRoomRequest{
			HotelID:            hotelID,
			Name:               "Intruder Suite",
			PricePerNightCents: 25000,
			MaxGuests:          3,
		}, token)
		require.Equal(t, http.StatusForbidden, w.Code, w.Body.String())
	})

	s.Run("Normal case: admin may add rooms anywhere", func() {
		t := s.T()
		_, hotelID := s.seedHotel("owner@example.com")
		token := authtest.CreateAndLogin(t, s.DB, s.Router, "admin@example.com", string(user.RoleAdmin))

		w := httptest.PerformRequest(t, s.Router, http.MethodPost, roomsURL, request.CreateRoomRequest{
			HotelID:            hotelID,
			Name:               "Admin Suite",
			PricePerNightCents: 30000,
			MaxGuests:          2,
		}, token)
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	})

	s.Run("Error case: guest role is rejected", func() {
		t := s.T()
		_, hotelID := s.seedHotel("owner@example.com")
		token := authtest.CreateAndLogin(t, s.DB, s.Router, "guest@example.com", string(user.RoleGuest))

		w := httptest.PerformRequest(t, s.Router, http.MethodPost, roomsURL, request.CreateRoomRequest{
			HotelID:            hotelID,
			Name:               "Guest Suite",
			PricePerNightCents: 10000,
			MaxGuests:          2,
		}, token)
		require.Equal(t, http.StatusForbidden, w.Code, w.Body.String())
	})
}
