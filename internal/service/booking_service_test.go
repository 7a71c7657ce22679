package service

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/staywise/booking_engine/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestService() (*BookingService, *fakeProperties, *fakeBookings) {
	start := time.Date(2026, 1, 10, 0, 0, 0, 0, time.UTC)
	end := time.Date(2026, 1, 20, 0, 0, 0, 0, time.UTC)

	rooms := &fakeRooms{rooms: map[int64]*model.RoomInfo{
		1: {
			Room:     model.Room{ID: 1, RoomTypeID: 10, Number: "101", IsAvailable: true},
			RoomType: model.RoomType{ID: 10, PropertyID: 100, Name: "Deluxe Double", NightlyRate: 500000, Capacity: 2, Floor: 1},
			Property: model.Property{ID: 100, OwnerID: 7, Name: "Seaside Villa"},
		},
		2: {
			Room:     model.Room{ID: 2, RoomTypeID: 10, Number: "102", IsAvailable: true, MaintenanceStart: &start, MaintenanceEnd: &end},
			RoomType: model.RoomType{ID: 10, PropertyID: 100, Name: "Deluxe Double", NightlyRate: 500000, Capacity: 2, Floor: 1},
			Property: model.Property{ID: 100, OwnerID: 7, Name: "Seaside Villa"},
		},
	}}
	properties := &fakeProperties{properties: map[int64]*model.Property{
		100: {ID: 100, OwnerID: 7, Name: "Seaside Villa"},
	}}
	bookings := newFakeBookings()

	svc := NewBookingService(fakeTx{}, rooms, properties, bookings, 0, zap.NewNop())
	svc.now = func() time.Time { return time.Date(2025, 11, 1, 0, 0, 0, 0, time.UTC) }

	return svc, properties, bookings
}

func validInput() BookingInput {
	return BookingInput{
		RoomID:        1,
		CustomerID:    42,
		CustomerName:  "Jane Roe",
		CustomerEmail: "jane@example.com",
		CustomerPhone: "+100000000",
		CheckIn:       date(2025, 12, 1, 14),
		CheckOut:      date(2025, 12, 3, 12),
		Breakfast:     true,
		Capacity:      2,
	}
}

func TestCreateBooking(t *testing.T) {
	svc, _, _ := newTestService()

	booking, err := svc.Create(context.Background(), validInput())
	require.NoError(t, err)

	assert.Equal(t, 2, booking.Nights)
	// 2*500000 + 2*50000
	assert.Equal(t, int64(1100000), booking.TotalPrice)
	assert.Equal(t, model.BookingStatusWaitingForPayment, booking.Status)
	assert.NotEqual(t, uuid.Nil, booking.ID)
}

func TestCreateBookingWithoutBreakfast(t *testing.T) {
	svc, _, _ := newTestService()

	input := validInput()
	input.Breakfast = false

	booking, err := svc.Create(context.Background(), input)
	require.NoError(t, err)
	assert.Equal(t, int64(1000000), booking.TotalPrice)
}

func TestCreateBookingRoomNotFound(t *testing.T) {
	svc, _, _ := newTestService()

	input := validInput()
	input.RoomID = 999

	_, err := svc.Create(context.Background(), input)
	assert.True(t, IsKind(err, KindRoomNotFound))
}

func TestCreateBookingPastCheckIn(t *testing.T) {
	svc, _, _ := newTestService()

	input := validInput()
	input.CheckIn = date(2025, 10, 1, 14)
	input.CheckOut = date(2025, 10, 3, 12)

	_, err := svc.Create(context.Background(), input)
	assert.True(t, IsKind(err, KindInvalidDateRange))
}

func TestCreateBookingCheckOutBeforeCheckIn(t *testing.T) {
	svc, _, _ := newTestService()

	input := validInput()
	input.CheckOut = input.CheckIn

	_, err := svc.Create(context.Background(), input)
	assert.True(t, IsKind(err, KindInvalidDateRange))
}

func TestCreateBookingCapacityExceeded(t *testing.T) {
	svc, _, _ := newTestService()

	input := validInput()
	input.Capacity = 3

	_, err := svc.Create(context.Background(), input)
	assert.True(t, IsKind(err, KindCapacityExceeded))
}

func TestCreateBookingMaintenanceConflict(t *testing.T) {
	svc, _, _ := newTestService()

	input := validInput()
	input.RoomID = 2
	input.CheckIn = date(2026, 1, 12, 14)
	input.CheckOut = date(2026, 1, 14, 12)

	_, err := svc.Create(context.Background(), input)
	assert.True(t, IsKind(err, KindMaintenanceConflict))
}

func TestCreateBookingRoomUnavailable(t *testing.T) {
	svc, _, _ := newTestService()

	first := validInput()
	first.CheckIn = date(2025, 12, 10, 14)
	first.CheckOut = date(2025, 12, 12, 12)
	booking, err := svc.Create(context.Background(), first)
	require.NoError(t, err)

	_, err = svc.Pay(context.Background(), booking.ID)
	require.NoError(t, err)

	second := validInput()
	second.CheckIn = date(2025, 12, 11, 14)
	second.CheckOut = date(2025, 12, 13, 12)

	_, err = svc.Create(context.Background(), second)
	assert.True(t, IsKind(err, KindRoomUnavailable))
}

// Нарушение exclusion-констрейнта означает что конкурент успел занять комнату
func TestCreateBookingExclusionViolationMeansRoomUnavailable(t *testing.T) {
	svc, _, bookings := newTestService()

	bookings.createErr = fmt.Errorf("create booking: %w", &pgconn.PgError{Code: "23P01"})

	_, err := svc.Create(context.Background(), validInput())
	assert.True(t, IsKind(err, KindRoomUnavailable))
}

// Исчерпанные повторы сериализации отдаются вызывающему как Conflict
func TestCreateBookingSerializationFailureMeansConflict(t *testing.T) {
	svc, _, bookings := newTestService()

	bookings.createErr = fmt.Errorf("create booking: %w", &pgconn.PgError{Code: "40001"})

	_, err := svc.Create(context.Background(), validInput())
	assert.True(t, IsKind(err, KindConflict))
}

func TestCreateBookingDeadlockMeansConflict(t *testing.T) {
	svc, _, bookings := newTestService()

	bookings.createErr = fmt.Errorf("create booking: %w", &pgconn.PgError{Code: "40P01"})

	_, err := svc.Create(context.Background(), validInput())
	assert.True(t, IsKind(err, KindConflict))
}

// Посторонние ошибки хранилища не маскируются под ошибки движка
func TestCreateBookingStorageErrorPassesThrough(t *testing.T) {
	svc, _, bookings := newTestService()

	bookings.createErr = assert.AnError

	_, err := svc.Create(context.Background(), validInput())
	require.Error(t, err)
	assert.Equal(t, ErrorKind(""), KindOf(err))
}

func TestCreateBookingAfterCancellationFreesRoom(t *testing.T) {
	svc, _, _ := newTestService()

	booking, err := svc.Create(context.Background(), validInput())
	require.NoError(t, err)

	_, err = svc.Cancel(context.Background(), booking.ID)
	require.NoError(t, err)

	// Отменённая бронь не блокирует комнату
	_, err = svc.Create(context.Background(), validInput())
	assert.NoError(t, err)
}

func TestUpdateBookingExcludesSelfFromConflictCheck(t *testing.T) {
	svc, _, _ := newTestService()

	booking, err := svc.Create(context.Background(), validInput())
	require.NoError(t, err)

	// Новые даты пересекаются со старыми датами той же брони
	input := validInput()
	input.CheckIn = date(2025, 12, 2, 14)
	input.CheckOut = date(2025, 12, 5, 12)
	input.Breakfast = false

	updated, err := svc.Update(context.Background(), booking.ID, input)
	require.NoError(t, err)
	assert.Equal(t, 3, updated.Nights)
	assert.Equal(t, int64(1500000), updated.TotalPrice)
}

func TestUpdateBookingConflictsWithOtherBooking(t *testing.T) {
	svc, _, _ := newTestService()

	first := validInput()
	first.CheckIn = date(2025, 12, 10, 14)
	first.CheckOut = date(2025, 12, 12, 12)
	_, err := svc.Create(context.Background(), first)
	require.NoError(t, err)

	second := validInput()
	second.CheckIn = date(2025, 12, 20, 14)
	second.CheckOut = date(2025, 12, 22, 12)
	booking, err := svc.Create(context.Background(), second)
	require.NoError(t, err)

	moved := second
	moved.CheckIn = date(2025, 12, 11, 14)
	moved.CheckOut = date(2025, 12, 13, 12)

	_, err = svc.Update(context.Background(), booking.ID, moved)
	assert.True(t, IsKind(err, KindRoomUnavailable))
}

func TestUpdateBookingNotFound(t *testing.T) {
	svc, _, _ := newTestService()

	_, err := svc.Update(context.Background(), uuid.New(), validInput())
	assert.True(t, IsKind(err, KindBookingNotFound))
}

func TestUpdateBookingAfterPayIsRejected(t *testing.T) {
	svc, _, _ := newTestService()

	booking, err := svc.Create(context.Background(), validInput())
	require.NoError(t, err)

	_, err = svc.Pay(context.Background(), booking.ID)
	require.NoError(t, err)

	_, err = svc.Update(context.Background(), booking.ID, validInput())
	assert.True(t, IsKind(err, KindImmutableBooking))
}

func TestPayBookingAddsPropertyIncome(t *testing.T) {
	svc, properties, bookings := newTestService()

	booking, err := svc.Create(context.Background(), validInput())
	require.NoError(t, err)

	paid, err := svc.Pay(context.Background(), booking.ID)
	require.NoError(t, err)

	assert.Equal(t, model.BookingStatusPaymentConfirmed, paid.Status)
	assert.Equal(t, int64(1100000), properties.properties[100].Income)

	stored, err := bookings.GetByID(context.Background(), booking.ID)
	require.NoError(t, err)
	assert.Equal(t, model.BookingStatusPaymentConfirmed, stored.Status)
}

func TestPayBookingTwice(t *testing.T) {
	svc, properties, _ := newTestService()

	booking, err := svc.Create(context.Background(), validInput())
	require.NoError(t, err)

	_, err = svc.Pay(context.Background(), booking.ID)
	require.NoError(t, err)

	_, err = svc.Pay(context.Background(), booking.ID)
	assert.True(t, IsKind(err, KindAlreadySettled))

	// Доход засчитан ровно один раз
	assert.Equal(t, int64(1100000), properties.properties[100].Income)
}

func TestPayBookingIncomeFailureLeavesStatusUntouched(t *testing.T) {
	svc, properties, bookings := newTestService()

	booking, err := svc.Create(context.Background(), validInput())
	require.NoError(t, err)

	properties.addIncome = assert.AnError
	_, err = svc.Pay(context.Background(), booking.ID)
	require.Error(t, err)

	stored, err := bookings.GetByID(context.Background(), booking.ID)
	require.NoError(t, err)
	assert.Equal(t, model.BookingStatusWaitingForPayment, stored.Status)
}

func TestCancelBookingTwice(t *testing.T) {
	svc, _, _ := newTestService()

	booking, err := svc.Create(context.Background(), validInput())
	require.NoError(t, err)

	cancelled, err := svc.Cancel(context.Background(), booking.ID)
	require.NoError(t, err)
	assert.Equal(t, model.BookingStatusCancelled, cancelled.Status)

	_, err = svc.Cancel(context.Background(), booking.ID)
	assert.True(t, IsKind(err, KindCannotCancel))
}

func TestCancelBookingAfterPayIsRejected(t *testing.T) {
	svc, _, _ := newTestService()

	booking, err := svc.Create(context.Background(), validInput())
	require.NoError(t, err)

	_, err = svc.Pay(context.Background(), booking.ID)
	require.NoError(t, err)

	_, err = svc.Cancel(context.Background(), booking.ID)
	assert.True(t, IsKind(err, KindCannotCancel))
}

func TestRefundAlwaysFails(t *testing.T) {
	svc, _, _ := newTestService()

	booking, err := svc.Create(context.Background(), validInput())
	require.NoError(t, err)

	err = svc.Refund(context.Background(), booking.ID)
	assert.True(t, IsKind(err, KindFeatureRemoved))

	err = svc.Refund(context.Background(), uuid.New())
	assert.True(t, IsKind(err, KindFeatureRemoved))
}

func TestGetForUpdateOnlyWhileWaitingForPayment(t *testing.T) {
	svc, _, _ := newTestService()

	booking, err := svc.Create(context.Background(), validInput())
	require.NoError(t, err)

	_, err = svc.GetForUpdate(context.Background(), booking.ID)
	require.NoError(t, err)

	_, err = svc.Pay(context.Background(), booking.ID)
	require.NoError(t, err)

	_, err = svc.GetForUpdate(context.Background(), booking.ID)
	assert.True(t, IsKind(err, KindImmutableBooking))
}

func TestListBookingsByStatus(t *testing.T) {
	svc, _, _ := newTestService()

	first, err := svc.Create(context.Background(), validInput())
	require.NoError(t, err)

	second := validInput()
	second.CheckIn = date(2025, 12, 20, 14)
	second.CheckOut = date(2025, 12, 22, 12)
	_, err = svc.Create(context.Background(), second)
	require.NoError(t, err)

	_, err = svc.Pay(context.Background(), first.ID)
	require.NoError(t, err)

	status := model.BookingStatusPaymentConfirmed
	paid, err := svc.List(context.Background(), &status, "")
	require.NoError(t, err)
	require.Len(t, paid, 1)
	assert.Equal(t, first.ID, paid[0].ID)

	all, err := svc.List(context.Background(), nil, "")
	require.NoError(t, err)
	assert.Len(t, all, 2)
}
