package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"stayhub/internal/domain/user"
	reqdto "stayhub/internal/handler/dto/request"
	resdto "stayhub/internal/handler/dto/response"
	"stayhub/internal/handler/middleware"
	"stayhub/internal/usecase/commands"
	"stayhub/internal/usecase/queries"
)

type BookingHandler struct {
	bookingCommands commands.BookingCommands
	bookingQueries  queries.BookingQueries
	roomQueries     queries.RoomQueries
}

func NewBookingHandler(
	bookingCommands commands.BookingCommands,
	bookingQueries queries.BookingQueries,
	roomQueries queries.RoomQueries,
) *BookingHandler {
	return &BookingHandler{
		bookingCommands: bookingCommands,
		bookingQueries:  bookingQueries,
		roomQueries:     roomQueries,
	}
}

// @Summary Check room availability
// @Description Check whether a room is free for a stay. The answer is advisory; booking enforces the real check.
// @Tags bookings
// @Produce json
// @Param room_id query string true "Room ID"
// @Param check_in query string true "Check-in date (YYYY-MM-DD)"
// @Param check_out query string true "Check-out date (YYYY-MM-DD)"
// @Success 200 {object} resdto.AvailabilityResponse
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /bookings/availability [get]
func (h *BookingHandler) CheckAvailability(c *gin.Context) {
	var query reqdto.AvailabilityQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid query parameters",
		})
		return
	}

	period, err := query.ToDomain()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Check-in must be before check-out",
		})
		return
	}

	if _, err := h.roomQueries.GetByID(c.Request.Context(), query.RoomID); err != nil {
		if errors.Is(err, queries.ErrRoomNotFound) {
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Room not found",
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	available, err := h.bookingQueries.CheckAvailability(c.Request.Context(), query.RoomID, period)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	c.JSON(http.StatusOK, resdto.AvailabilityResponse{
		RoomID:    query.RoomID,
		CheckIn:   query.CheckIn,
		CheckOut:  query.CheckOut,
		Available: available,
	})
}

// @Summary Create booking
// @Description Book a room for a stay. Back-to-back stays on the same room do not conflict.
// @Tags bookings
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.CreateBookingRequest true "Booking request"
// @Success 201 {object} resdto.BookingResponse
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /bookings [post]
func (h *BookingHandler) CreateBooking(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	var req reqdto.CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request format",
		})
		return
	}

	view, err := h.bookingCommands.CreateBooking(c.Request.Context(), req, userID)
	if err != nil {
		switch {
		case errors.Is(err, commands.ErrRoomNotFound):
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Room not found",
			})
		case errors.Is(err, commands.ErrRoomUnavailable):
			c.JSON(http.StatusForbidden, gin.H{
				"error": "Room is not open for booking",
			})
		case errors.Is(err, commands.ErrDomainValidation):
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "Invalid booking request",
			})
		case errors.Is(err, commands.ErrBookingConflict):
			c.JSON(http.StatusConflict, gin.H{
				"error": "Room is already booked for these dates",
			})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "Internal server error",
			})
		}
		return
	}

	c.JSON(http.StatusCreated, resdto.FromBookingView(view))
}

// @Summary List own bookings
// @Description List the authenticated guest's bookings, newest first
// @Tags bookings
// @Produce json
// @Security BearerAuth
// @Success 200 {array} resdto.BookingListResponse
// @Failure 401 {object} map[string]string
// @Router /bookings/me [get]
func (h *BookingHandler) ListMyBookings(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	items, err := h.bookingQueries.ListByGuest(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	out := make([]*resdto.BookingListResponse, len(items))
	for i := range items {
		out[i] = resdto.FromBookingListItem(&items[i])
	}
	c.JSON(http.StatusOK, out)
}

// @Summary List hotel bookings
// @Description List bookings for a hotel with revenue totals. Owners see their own hotels only.
// @Tags bookings
// @Produce json
// @Security BearerAuth
// @Param hotelId path string true "Hotel ID"
// @Success 200 {object} resdto.HotelBookingsResponse
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /bookings/hotel/{hotelId} [get]
func (h *BookingHandler) ListHotelBookings(c *gin.Context) {
	hotelID, err := uuid.Parse(c.Param("hotelId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid hotel ID format",
		})
		return
	}

	if !h.authorizeHotelAccess(c, hotelID) {
		return
	}

	result, err := h.bookingQueries.ListByHotel(c.Request.Context(), hotelID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	c.JSON(http.StatusOK, resdto.FromHotelBookings(result))
}

// @Summary Update booking status
// @Description Move a booking through its lifecycle. Cancelled is terminal.
// @Tags bookings
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Booking ID"
// @Param request body reqdto.UpdateBookingStatusRequest true "Status request"
// @Success 200 {object} resdto.BookingResponse
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /bookings/{id}/status [patch]
func (h *BookingHandler) UpdateBookingStatus(c *gin.Context) {
	bookingID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid booking ID format",
		})
		return
	}

	var req reqdto.UpdateBookingStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request format",
		})
		return
	}

	view, ok := h.loadBooking(c, bookingID)
	if !ok {
		return
	}
	if !h.authorizeHotelAccess(c, view.HotelID) {
		return
	}

	if err := h.bookingCommands.SetStatus(c.Request.Context(), bookingID, req.Status); err != nil {
		switch {
		case errors.Is(err, commands.ErrInvalidStatusValue),
			errors.Is(err, commands.ErrInvalidStatusTransition):
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "Illegal status transition",
			})
		case errors.Is(err, commands.ErrBookingNotFound):
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Booking not found",
			})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "Internal server error",
			})
		}
		return
	}

	updated, ok := h.loadBooking(c, bookingID)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, resdto.FromBookingView(updated))
}

// @Summary Cancel booking
// @Description Cancel a booking and free its nights. Cancelling twice succeeds.
// @Tags bookings
// @Produce json
// @Security BearerAuth
// @Param id path string true "Booking ID"
// @Success 200 {object} resdto.BookingResponse
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /bookings/{id} [delete]
func (h *BookingHandler) CancelBooking(c *gin.Context) {
	bookingID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid booking ID format",
		})
		return
	}

	view, ok := h.loadBooking(c, bookingID)
	if !ok {
		return
	}

	userID, _ := middleware.GetUserID(c)
	role, _ := middleware.GetUserRole(c)
	if view.GuestID != userID && !h.hotelAccessAllowed(c, role, view.HotelID) {
		c.JSON(http.StatusForbidden, gin.H{
			"error": "Insufficient permissions",
		})
		return
	}

	if err := h.bookingCommands.CancelBooking(c.Request.Context(), bookingID); err != nil {
		if errors.Is(err, commands.ErrBookingNotFound) {
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Booking not found",
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	updated, ok := h.loadBooking(c, bookingID)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, resdto.FromBookingView(updated))
}

func (h *BookingHandler) loadBooking(c *gin.Context, bookingID uuid.UUID) (*queries.BookingView, bool) {
	view, err := h.bookingQueries.GetByID(c.Request.Context(), bookingID)
	if err != nil {
		if errors.Is(err, queries.ErrBookingNotFound) {
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Booking not found",
			})
			return nil, false
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return nil, false
	}
	return view, true
}

// authorizeHotelAccess writes the response itself when access is denied.
func (h *BookingHandler) authorizeHotelAccess(c *gin.Context, hotelID uuid.UUID) bool {
	role, ok := middleware.GetUserRole(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return false
	}

	if role == user.RoleAdmin {
		return true
	}

	userID, _ := middleware.GetUserID(c)
	hotel, err := h.bookingQueries.HotelByID(c.Request.Context(), hotelID)
	if err != nil {
		if errors.Is(err, queries.ErrHotelNotFound) {
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Hotel not found",
			})
			return false
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return false
	}
	if hotel.OwnerID != userID {
		c.JSON(http.StatusForbidden, gin.H{
			"error": "Insufficient permissions",
		})
		return false
	}
	return true
}

// hotelAccessAllowed is the silent variant used when guest ownership is
// checked first.
func (h *BookingHandler) hotelAccessAllowed(c *gin.Context, role user.Role, hotelID uuid.UUID) bool {
	if role == user.RoleAdmin {
		return true
	}
	if role != user.RoleOwner {
		return false
	}
	userID, _ := middleware.GetUserID(c)
	hotel, err := h.bookingQueries.HotelByID(c.Request.Context(), hotelID)
	if err != nil {
		return false
	}
	return hotel.OwnerID == userID
}
