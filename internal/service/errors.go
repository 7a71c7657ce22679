package service

import (
	"errors"
	"fmt"
)

// ErrorKind устойчивый машиночитаемый вид ошибки движка бронирований
type ErrorKind string

const (
	KindRoomNotFound        ErrorKind = "RoomNotFound"
	KindBookingNotFound     ErrorKind = "BookingNotFound"
	KindPropertyNotFound    ErrorKind = "PropertyNotFound"
	KindInvalidDateRange    ErrorKind = "InvalidDateRange"
	KindCapacityExceeded    ErrorKind = "CapacityExceeded"
	KindMaintenanceConflict ErrorKind = "MaintenanceConflict"
	KindRoomUnavailable     ErrorKind = "RoomUnavailable"
	KindImmutableBooking    ErrorKind = "ImmutableBooking"
	KindAlreadySettled      ErrorKind = "AlreadySettled"
	KindCannotCancel        ErrorKind = "CannotCancel"
	KindFeatureRemoved      ErrorKind = "FeatureRemoved"
	KindInvalidPeriod       ErrorKind = "InvalidPeriod"
	KindConflict            ErrorKind = "Conflict"
)

// Error ошибка валидации или нарушения жизненного цикла, видимая вызывающему
type Error struct {
	Kind    ErrorKind
	Message string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func newError(kind ErrorKind, format string, args ...any) *Error {
	return &Error{
		Kind:    kind,
		Message: fmt.Sprintf(format, args...),
	}
}

// IsKind проверяет относится ли ошибка к указанному виду
func IsKind(err error, kind ErrorKind) bool {
	var e *Error
	return errors.As(err, &e) && e.Kind == kind
}

// KindOf возвращает вид ошибки, либо пустую строку для посторонних ошибок
func KindOf(err error) ErrorKind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return ""
}
