package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/staywise/booking_engine/internal/model"
)

// fakeTx выполняет функцию без настоящей транзакции
type fakeTx struct{}

func (fakeTx) Serializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type fakeRooms struct {
	rooms map[int64]*model.RoomInfo
}

func (f *fakeRooms) GetInfoByID(_ context.Context, roomID int64) (*model.RoomInfo, error) {
	return f.rooms[roomID], nil
}

type fakeProperties struct {
	properties map[int64]*model.Property
	addIncome  error // если задано, AddIncome возвращает эту ошибку
}

func (f *fakeProperties) AddIncome(_ context.Context, id int64, amount int64) error {
	if f.addIncome != nil {
		return f.addIncome
	}
	property, ok := f.properties[id]
	if !ok {
		return fmt.Errorf("property not found")
	}
	property.Income += amount
	return nil
}

type fakeBookings struct {
	byID      map[uuid.UUID]*model.Booking
	order     []uuid.UUID
	settled   []*model.SettledBooking
	createErr error // если задано, Create возвращает эту ошибку
}

func newFakeBookings() *fakeBookings {
	return &fakeBookings{byID: make(map[uuid.UUID]*model.Booking)}
}

func (f *fakeBookings) Create(_ context.Context, booking *model.Booking) error {
	if f.createErr != nil {
		return f.createErr
	}
	stored := *booking
	stored.CreatedAt = time.Now()
	stored.UpdatedAt = stored.CreatedAt
	f.byID[booking.ID] = &stored
	f.order = append(f.order, booking.ID)
	return nil
}

func (f *fakeBookings) GetByID(_ context.Context, id uuid.UUID) (*model.Booking, error) {
	booking, ok := f.byID[id]
	if !ok {
		return nil, nil
	}
	copied := *booking
	return &copied, nil
}

func (f *fakeBookings) Update(_ context.Context, booking *model.Booking) error {
	stored, ok := f.byID[booking.ID]
	if !ok {
		return fmt.Errorf("booking not found")
	}
	updated := *booking
	updated.CreatedAt = stored.CreatedAt
	updated.UpdatedAt = time.Now()
	f.byID[booking.ID] = &updated
	return nil
}

func (f *fakeBookings) UpdateStatus(_ context.Context, id uuid.UUID, status model.BookingStatus) error {
	booking, ok := f.byID[id]
	if !ok {
		return fmt.Errorf("booking not found")
	}
	booking.Status = status
	return nil
}

func (f *fakeBookings) FindOverlapping(_ context.Context, roomID int64, checkIn, checkOut time.Time) ([]*model.Booking, error) {
	var result []*model.Booking
	for _, id := range f.order {
		b := f.byID[id]
		if b.RoomID != roomID {
			continue
		}
		if b.CheckIn.Before(checkOut) && checkIn.Before(b.CheckOut) {
			copied := *b
			result = append(result, &copied)
		}
	}
	return result, nil
}

func (f *fakeBookings) FindByStatus(_ context.Context, status model.BookingStatus) ([]*model.Booking, error) {
	var result []*model.Booking
	for _, id := range f.order {
		if f.byID[id].Status == status {
			copied := *f.byID[id]
			result = append(result, &copied)
		}
	}
	return result, nil
}

func (f *fakeBookings) Search(_ context.Context, _ string) ([]*model.Booking, error) {
	return nil, nil
}

func (f *fakeBookings) List(_ context.Context) ([]*model.Booking, error) {
	var result []*model.Booking
	for _, id := range f.order {
		copied := *f.byID[id]
		result = append(result, &copied)
	}
	return result, nil
}

func (f *fakeBookings) FindSettledInPeriod(_ context.Context, _, _ time.Time) ([]*model.SettledBooking, error) {
	return f.settled, nil
}
