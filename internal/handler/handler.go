package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/staywise/booking_engine/internal/service"
)

// Handler структурирует зависимости сервисов для обработки HTTP-запросов.
type Handler struct {
	BookingService    *service.BookingService
	StatisticsService *service.StatisticsService
}

// NewHandler создает новый Handler с внедрением зависимостей (сервисов).
func NewHandler(bs *service.BookingService, ss *service.StatisticsService) *Handler {
	return &Handler{
		BookingService:    bs,
		StatisticsService: ss,
	}
}

// RegisterRoutes регистрирует маршруты API.
func (h *Handler) RegisterRoutes(router *gin.Engine) {
	api := router.Group("/api")
	{
		api.POST("/bookings", h.CreateBooking)
		api.GET("/bookings", h.ListBookings)
		api.GET("/bookings/:id", h.GetBooking)
		api.GET("/bookings/:id/edit", h.GetBookingForUpdate)
		api.PUT("/bookings/:id", h.UpdateBooking)
		api.POST("/bookings/:id/pay", h.PayBooking)
		api.POST("/bookings/:id/cancel", h.CancelBooking)
		api.POST("/bookings/:id/refund", h.RefundBooking)
		api.GET("/statistics", h.GetStatistics)
	}

	// Health-check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
}
