package model

import (
	"time"

	"github.com/google/uuid"
)

// BookingStatus числовой статус бронирования (фиксированная таксономия 0/1/2)
type BookingStatus int

const (
	BookingStatusWaitingForPayment BookingStatus = 0 // Ожидает оплаты
	BookingStatusPaymentConfirmed  BookingStatus = 1 // Оплата подтверждена
	BookingStatusCancelled         BookingStatus = 2 // Отменено
)

// Valid проверяет что статус входит в известную таксономию
func (s BookingStatus) Valid() bool {
	return s >= BookingStatusWaitingForPayment && s <= BookingStatusCancelled
}

func (s BookingStatus) String() string {
	switch s {
	case BookingStatusWaitingForPayment:
		return "WaitingForPayment"
	case BookingStatusPaymentConfirmed:
		return "PaymentConfirmed"
	case BookingStatusCancelled:
		return "Cancelled"
	default:
		return "Unknown"
	}
}

// Color возвращает цвет для отображения статуса в UI
func (s BookingStatus) Color() string {
	switch s {
	case BookingStatusWaitingForPayment:
		return "warning"
	case BookingStatusPaymentConfirmed:
		return "success"
	case BookingStatusCancelled:
		return "danger"
	default:
		return ""
	}
}

type Booking struct {
	ID            uuid.UUID     `json:"id"`
	RoomID        int64         `json:"room_id"`
	CustomerID    int64         `json:"customer_id"`
	CustomerName  string        `json:"customer_name"`
	CustomerEmail string        `json:"customer_email"`
	CustomerPhone string        `json:"customer_phone"`
	CheckIn       time.Time     `json:"check_in"`
	CheckOut      time.Time     `json:"check_out"`
	Nights        int           `json:"nights"`
	TotalPrice    int64         `json:"total_price"` // в минимальных единицах валюты
	Breakfast     bool          `json:"breakfast"`
	Capacity      int           `json:"capacity"`
	Status        BookingStatus `json:"status"`
	CreatedAt     time.Time     `json:"created_at"`
	UpdatedAt     time.Time     `json:"updated_at"`
}

// CanEdit бронирование можно редактировать только до оплаты
func (b *Booking) CanEdit() bool {
	return b.Status == BookingStatusWaitingForPayment
}

// CanPay оплатить можно только неоплаченное бронирование
func (b *Booking) CanPay() bool {
	return b.Status == BookingStatusWaitingForPayment
}

// CanCancel отменить можно только неоплаченное бронирование
func (b *Booking) CanCancel() bool {
	return b.Status == BookingStatusWaitingForPayment
}
