package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/staywise/booking_engine/internal/model"
	"github.com/staywise/booking_engine/internal/service"
)

type bookingRequest struct {
	RoomID        int64     `json:"room_id" binding:"required"`
	CustomerID    int64     `json:"customer_id" binding:"required"`
	CustomerName  string    `json:"customer_name" binding:"required"`
	CustomerEmail string    `json:"customer_email" binding:"required"`
	CustomerPhone string    `json:"customer_phone"`
	CheckIn       time.Time `json:"check_in" binding:"required"`
	CheckOut      time.Time `json:"check_out" binding:"required"`
	Breakfast     bool      `json:"breakfast"`
	Capacity      int       `json:"capacity" binding:"required,min=1"`
}

func (r *bookingRequest) toInput() service.BookingInput {
	return service.BookingInput{
		RoomID:        r.RoomID,
		CustomerID:    r.CustomerID,
		CustomerName:  r.CustomerName,
		CustomerEmail: r.CustomerEmail,
		CustomerPhone: r.CustomerPhone,
		CheckIn:       r.CheckIn,
		CheckOut:      r.CheckOut,
		Breakfast:     r.Breakfast,
		Capacity:      r.Capacity,
	}
}

type bookingResponse struct {
	*model.Booking
	StatusText  string `json:"status_text"`
	StatusColor string `json:"status_color"`
}

type bookingDetailResponse struct {
	bookingResponse
	CanEdit   bool `json:"can_edit"`
	CanPay    bool `json:"can_pay"`
	CanCancel bool `json:"can_cancel"`
}

func toResponse(b *model.Booking) bookingResponse {
	return bookingResponse{
		Booking:     b,
		StatusText:  b.Status.String(),
		StatusColor: b.Status.Color(),
	}
}

func toDetailResponse(b *model.Booking) bookingDetailResponse {
	return bookingDetailResponse{
		bookingResponse: toResponse(b),
		CanEdit:         b.CanEdit(),
		CanPay:          b.CanPay(),
		CanCancel:       b.CanCancel(),
	}
}

func bookingID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid booking id"})
		return uuid.Nil, false
	}
	return id, true
}

// CreateBooking обработчик для POST /api/bookings
func (h *Handler) CreateBooking(c *gin.Context) {
	var req bookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	booking, err := h.BookingService.Create(c.Request.Context(), req.toInput())
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, toResponse(booking))
}

// ListBookings обработчик для GET /api/bookings?status=&q=
func (h *Handler) ListBookings(c *gin.Context) {
	var status *model.BookingStatus
	if raw, ok := c.GetQuery("status"); ok {
		value, err := strconv.Atoi(raw)
		parsed := model.BookingStatus(value)
		if err != nil || !parsed.Valid() {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid status filter"})
			return
		}
		status = &parsed
	}

	bookings, err := h.BookingService.List(c.Request.Context(), status, c.Query("q"))
	if err != nil {
		writeError(c, err)
		return
	}

	responses := make([]bookingResponse, 0, len(bookings))
	for _, b := range bookings {
		responses = append(responses, toResponse(b))
	}

	c.JSON(http.StatusOK, responses)
}

// GetBooking обработчик для GET /api/bookings/:id
func (h *Handler) GetBooking(c *gin.Context) {
	id, ok := bookingID(c)
	if !ok {
		return
	}

	booking, err := h.BookingService.Get(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, toDetailResponse(booking))
}

// GetBookingForUpdate обработчик для GET /api/bookings/:id/edit
func (h *Handler) GetBookingForUpdate(c *gin.Context) {
	id, ok := bookingID(c)
	if !ok {
		return
	}

	booking, err := h.BookingService.GetForUpdate(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, toResponse(booking))
}

// UpdateBooking обработчик для PUT /api/bookings/:id
func (h *Handler) UpdateBooking(c *gin.Context) {
	id, ok := bookingID(c)
	if !ok {
		return
	}

	var req bookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	booking, err := h.BookingService.Update(c.Request.Context(), id, req.toInput())
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, toResponse(booking))
}

// PayBooking обработчик для POST /api/bookings/:id/pay
func (h *Handler) PayBooking(c *gin.Context) {
	id, ok := bookingID(c)
	if !ok {
		return
	}

	booking, err := h.BookingService.Pay(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, toResponse(booking))
}

// CancelBooking обработчик для POST /api/bookings/:id/cancel
func (h *Handler) CancelBooking(c *gin.Context) {
	id, ok := bookingID(c)
	if !ok {
		return
	}

	booking, err := h.BookingService.Cancel(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, toResponse(booking))
}

// RefundBooking обработчик для POST /api/bookings/:id/refund.
// Возвраты убраны из продукта, эндпоинт оставлен для совместимости.
func (h *Handler) RefundBooking(c *gin.Context) {
	id, ok := bookingID(c)
	if !ok {
		return
	}

	if err := h.BookingService.Refund(c.Request.Context(), id); err != nil {
		writeError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// GetStatistics обработчик для GET /api/statistics?month=&year=
func (h *Handler) GetStatistics(c *gin.Context) {
	var params struct {
		Month int `form:"month"`
		Year  int `form:"year"`
	}
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	report, err := h.StatisticsService.Report(c.Request.Context(), params.Month, params.Year)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, report)
}
