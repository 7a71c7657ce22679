package service

import (
	"time"

	"github.com/staywise/booking_engine/internal/model"
)

// intervalsOverlap проверяет пересечение полуоткрытых интервалов [s1,e1) и [s2,e2):
// они пересекаются тогда и только тогда, когда s1 < e2 && s2 < e1
func intervalsOverlap(s1, e1, s2, e2 time.Time) bool {
	return s1.Before(e2) && s2.Before(e1)
}

// maintenanceOverlaps проверяет пересечение запрошенного интервала с окном
// обслуживания комнаты. Окно обслуживания блокирует бронирование как обычная бронь.
func maintenanceOverlaps(room *model.Room, checkIn, checkOut time.Time) bool {
	if !room.HasMaintenanceWindow() {
		return false
	}
	return intervalsOverlap(checkIn, checkOut, *room.MaintenanceStart, *room.MaintenanceEnd)
}
