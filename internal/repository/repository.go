package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/staywise/booking_engine/internal/model"
)

// Bookings граница запросов движка бронирований к хранилищу
type Bookings interface {
	// Create сохраняет новое бронирование
	Create(ctx context.Context, booking *model.Booking) error

	// GetByID возвращает бронирование по ID, nil если не найдено
	GetByID(ctx context.Context, id uuid.UUID) (*model.Booking, error)

	// Update перезаписывает изменяемые поля бронирования
	Update(ctx context.Context, booking *model.Booking) error

	// UpdateStatus обновляет только статус бронирования
	UpdateStatus(ctx context.Context, id uuid.UUID, status model.BookingStatus) error

	// FindOverlapping возвращает бронирования комнаты, пересекающиеся с
	// полуоткрытым интервалом [checkIn, checkOut), независимо от статуса.
	// Отмененные отфильтровывает вызывающий.
	FindOverlapping(ctx context.Context, roomID int64, checkIn, checkOut time.Time) ([]*model.Booking, error)

	// FindByStatus возвращает все бронирования с указанным статусом
	FindByStatus(ctx context.Context, status model.BookingStatus) ([]*model.Booking, error)

	// Search ищет бронирования по фрагменту названия объекта или номера комнаты
	Search(ctx context.Context, query string) ([]*model.Booking, error)

	// List возвращает все бронирования, новые первыми
	List(ctx context.Context) ([]*model.Booking, error)

	// FindSettledInPeriod возвращает оплаченные бронирования, у которых заезд
	// попадает в [from, to). Это и есть предикат "завершённости" для статистики.
	FindSettledInPeriod(ctx context.Context, from, to time.Time) ([]*model.SettledBooking, error)
}

// Rooms доступ к комнатам (только чтение со стороны движка)
type Rooms interface {
	// GetInfoByID возвращает комнату вместе с типом и объектом, nil если не найдена
	GetInfoByID(ctx context.Context, roomID int64) (*model.RoomInfo, error)
}

// Properties доступ к объектам размещения. Движку нужна только запись дохода:
// сам объект приходит вместе с комнатой через Rooms.GetInfoByID.
type Properties interface {
	// AddIncome увеличивает накопленный доход объекта
	AddIncome(ctx context.Context, id int64, amount int64) error
}

// Tx запускает функцию в одной SERIALIZABLE транзакции
type Tx interface {
	Serializable(ctx context.Context, fn func(ctx context.Context) error) error
}
