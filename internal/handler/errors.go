package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/staywise/booking_engine/internal/service"
)

// writeError переводит ошибку сервиса в HTTP-ответ со стабильным видом ошибки
func writeError(c *gin.Context, err error) {
	kind := service.KindOf(err)

	var status int
	switch kind {
	case service.KindRoomNotFound, service.KindBookingNotFound, service.KindPropertyNotFound:
		status = http.StatusNotFound
	case service.KindInvalidDateRange, service.KindCapacityExceeded, service.KindInvalidPeriod:
		status = http.StatusUnprocessableEntity
	case service.KindMaintenanceConflict, service.KindRoomUnavailable,
		service.KindImmutableBooking, service.KindAlreadySettled,
		service.KindCannotCancel, service.KindConflict:
		status = http.StatusConflict
	case service.KindFeatureRemoved:
		status = http.StatusGone
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}

	c.JSON(status, gin.H{"kind": string(kind), "error": err.Error()})
}
