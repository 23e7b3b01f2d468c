package booking

import (
	"errors"
	"net/http"
	"strconv"

	"stayinn/internal/domain"
	"stayinn/internal/modules/inventory"
	"stayinn/internal/pkg/response"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service   *Service
	publisher EventPublisher
}

func NewHandler(service *Service, publisher EventPublisher) *Handler {
	return &Handler{service: service, publisher: publisher}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/bookings", h.CreateBooking)
	rg.GET("/bookings/my-bookings", h.MyBookings)
	rg.GET("/bookings/:id", h.GetBooking)
	rg.GET("/bookings/reference/:ref", h.GetBookingByReference)
	rg.PUT("/bookings/:id/cancel", h.CancelBooking)
	rg.PUT("/bookings/:id/checkin", h.CheckIn)
	rg.PUT("/bookings/:id/checkout", h.CheckOut)
	rg.GET("/bookings/hotel/:hotelId", h.HotelBookings)
}

func (h *Handler) CreateBooking(c *gin.Context) {
	var req CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	userID := c.GetInt64("user_id")
	b, err := h.service.Create(c.Request.Context(), userID, req)
	if err != nil {
		h.writeError(c, err)
		return
	}

	// The inventory event for a successful creation is emitted here, with
	// the post-reserve unit count.
	if h.publisher != nil {
		if inv, invErr := h.service.Availability(c.Request.Context(), b.HotelID, b.RoomType); invErr == nil {
			h.publisher.Publish(HotelTopic(b.HotelID), AvailabilityChangedEvent{
				Event:          EventAvailabilityChanged,
				HotelID:        b.HotelID,
				RoomType:       b.RoomType,
				AvailableUnits: inv.AvailableUnits,
				BookingID:      b.ID,
			})
		}
	}

	response.Success(c, http.StatusCreated, gin.H{
		"booking":          b,
		"payment_required": true,
	})
}

func (h *Handler) GetBooking(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	b, err := h.service.Get(c.Request.Context(), id, c.GetInt64("user_id"), domain.UserRole(c.GetString("role")))
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"booking": b})
}

func (h *Handler) GetBookingByReference(c *gin.Context) {
	ref := c.Param("ref")
	if ref == "" {
		response.Error(c, http.StatusBadRequest, "INVALID_REFERENCE", "Reference is required")
		return
	}
	b, err := h.service.GetByReference(c.Request.Context(), ref, c.GetInt64("user_id"), domain.UserRole(c.GetString("role")))
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"booking": b})
}

func (h *Handler) MyBookings(c *gin.Context) {
	page, limit := pageParams(c)
	status := c.Query("status")

	rows, pagination, err := h.service.ListMy(c.Request.Context(), c.GetInt64("user_id"), status, page, limit)
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"bookings": rows, "pagination": pagination})
}

func (h *Handler) HotelBookings(c *gin.Context) {
	hotelID, ok := pathID(c, "hotelId")
	if !ok {
		return
	}
	page, limit := pageParams(c)

	rows, pagination, err := h.service.ListForHotel(
		c.Request.Context(), hotelID,
		c.GetInt64("user_id"), domain.UserRole(c.GetString("role")),
		c.Query("status"), page, limit,
	)
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"bookings": rows, "pagination": pagination})
}

func (h *Handler) CancelBooking(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req CancelBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil && err.Error() != "EOF" {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	b, refund, err := h.service.Cancel(c.Request.Context(), id, c.GetInt64("user_id"), req.Reason)
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"booking": b, "refund_amount": refund})
}

func (h *Handler) CheckIn(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	b, err := h.service.CheckIn(c.Request.Context(), id, c.GetInt64("user_id"), domain.UserRole(c.GetString("role")))
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"booking": b})
}

func (h *Handler) CheckOut(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	b, err := h.service.CheckOut(c.Request.Context(), id, c.GetInt64("user_id"), domain.UserRole(c.GetString("role")))
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"booking": b})
}

func (h *Handler) writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrInvalidDateRange):
		response.Error(c, http.StatusBadRequest, "INVALID_DATE_RANGE", err.Error())
	case errors.Is(err, ErrOccupancyExceeded):
		response.Error(c, http.StatusBadRequest, "OCCUPANCY_EXCEEDED", err.Error())
	case errors.Is(err, inventory.ErrInsufficientInventory):
		response.Error(c, http.StatusConflict, "INSUFFICIENT_INVENTORY", err.Error())
	case errors.Is(err, inventory.ErrRoomTypeNotFound):
		response.Error(c, http.StatusNotFound, "ROOM_TYPE_NOT_FOUND", err.Error())
	case errors.Is(err, ErrNotCancellable):
		response.Error(c, http.StatusBadRequest, "NOT_CANCELLABLE", "Booking cannot be cancelled. Check cancellation policy.")
	case errors.Is(err, ErrCheckInWindow):
		response.Error(c, http.StatusBadRequest, "CHECKIN_WINDOW", err.Error())
	case errors.Is(err, ErrInvalidTransition):
		response.Error(c, http.StatusBadRequest, "INVALID_TRANSITION", err.Error())
	case errors.Is(err, ErrNotFound):
		response.Error(c, http.StatusNotFound, "NOT_FOUND", "Booking not found")
	case errors.Is(err, ErrAccessDenied):
		response.Error(c, http.StatusForbidden, "ACCESS_DENIED", "Access denied")
	default:
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Internal server error")
	}
}

func pathID(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid id")
		return 0, false
	}
	return id, true
}

func pageParams(c *gin.Context) (page, limit int) {
	page, _ = strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ = strconv.Atoi(c.DefaultQuery("limit", "10"))
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 10
	}
	return page, limit
}
