package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/staywise/booking_engine/internal/model"
	"github.com/staywise/booking_engine/internal/repository"
	"github.com/staywise/booking_engine/internal/repository/base"
	"go.uber.org/zap"
)

type BookingService struct {
	tx            repository.Tx
	roomRepo      repository.Rooms
	propertyRepo  repository.Properties
	bookingRepo   repository.Bookings
	breakfastRate int64
	now           func() time.Time
	logger        *zap.Logger
}

func NewBookingService(
	tx repository.Tx,
	roomRepo repository.Rooms,
	propertyRepo repository.Properties,
	bookingRepo repository.Bookings,
	breakfastRate int64,
	logger *zap.Logger,
) *BookingService {
	if breakfastRate <= 0 {
		breakfastRate = DefaultBreakfastRate
	}
	return &BookingService{
		tx:            tx,
		roomRepo:      roomRepo,
		propertyRepo:  propertyRepo,
		bookingRepo:   bookingRepo,
		breakfastRate: breakfastRate,
		now:           time.Now,
		logger:        logger,
	}
}

// BookingInput данные для создания или изменения бронирования
type BookingInput struct {
	RoomID        int64
	CustomerID    int64
	CustomerName  string
	CustomerEmail string
	CustomerPhone string
	CheckIn       time.Time
	CheckOut      time.Time
	Breakfast     bool
	Capacity      int
}

// Create создаёт бронирование со статусом WaitingForPayment.
// Проверка конфликтов и вставка выполняются в одной SERIALIZABLE транзакции.
func (s *BookingService) Create(ctx context.Context, input BookingInput) (*model.Booking, error) {
	var booking *model.Booking

	err := s.tx.Serializable(ctx, func(ctx context.Context) error {
		info, err := s.roomRepo.GetInfoByID(ctx, input.RoomID)
		if err != nil {
			return fmt.Errorf("get room: %w", err)
		}
		if info == nil {
			return newError(KindRoomNotFound, "room %d not found", input.RoomID)
		}

		if err := s.validateStay(ctx, info, input, nil); err != nil {
			return err
		}

		nights := NightsBetween(input.CheckIn, input.CheckOut)
		booking = &model.Booking{
			ID:            uuid.New(),
			RoomID:        input.RoomID,
			CustomerID:    input.CustomerID,
			CustomerName:  input.CustomerName,
			CustomerEmail: input.CustomerEmail,
			CustomerPhone: input.CustomerPhone,
			CheckIn:       input.CheckIn,
			CheckOut:      input.CheckOut,
			Nights:        nights,
			TotalPrice:    TotalPrice(nights, info.RoomType.NightlyRate, input.Breakfast, s.breakfastRate),
			Breakfast:     input.Breakfast,
			Capacity:      input.Capacity,
			Status:        model.BookingStatusWaitingForPayment,
		}

		return s.bookingRepo.Create(ctx, booking)
	})

	if err != nil {
		return nil, translateStorageError(err)
	}

	s.logger.Info("Booking created",
		zap.String("booking_id", booking.ID.String()),
		zap.Int64("room_id", booking.RoomID),
		zap.Int("nights", booking.Nights),
		zap.Int64("total_price", booking.TotalPrice),
	)

	return booking, nil
}

// Update изменяет бронирование до оплаты. Проверки создания выполняются заново
// для новой комнаты и новых дат, собственная бронь исключается из проверки конфликтов.
func (s *BookingService) Update(ctx context.Context, id uuid.UUID, input BookingInput) (*model.Booking, error) {
	var booking *model.Booking

	err := s.tx.Serializable(ctx, func(ctx context.Context) error {
		existing, err := s.bookingRepo.GetByID(ctx, id)
		if err != nil {
			return fmt.Errorf("get booking: %w", err)
		}
		if existing == nil {
			return newError(KindBookingNotFound, "booking %s not found", id)
		}
		if !existing.CanEdit() {
			return newError(KindImmutableBooking, "booking %s is %s and can no longer be edited", id, existing.Status)
		}

		info, err := s.roomRepo.GetInfoByID(ctx, input.RoomID)
		if err != nil {
			return fmt.Errorf("get room: %w", err)
		}
		if info == nil {
			return newError(KindRoomNotFound, "room %d not found", input.RoomID)
		}

		if err := s.validateStay(ctx, info, input, &id); err != nil {
			return err
		}

		nights := NightsBetween(input.CheckIn, input.CheckOut)
		existing.RoomID = input.RoomID
		existing.CustomerID = input.CustomerID
		existing.CustomerName = input.CustomerName
		existing.CustomerEmail = input.CustomerEmail
		existing.CustomerPhone = input.CustomerPhone
		existing.CheckIn = input.CheckIn
		existing.CheckOut = input.CheckOut
		existing.Nights = nights
		existing.TotalPrice = TotalPrice(nights, info.RoomType.NightlyRate, input.Breakfast, s.breakfastRate)
		existing.Breakfast = input.Breakfast
		existing.Capacity = input.Capacity

		if err := s.bookingRepo.Update(ctx, existing); err != nil {
			return err
		}

		booking = existing
		return nil
	})

	if err != nil {
		return nil, translateStorageError(err)
	}

	s.logger.Info("Booking updated",
		zap.String("booking_id", booking.ID.String()),
		zap.Int64("total_price", booking.TotalPrice),
	)

	return booking, nil
}

// Pay подтверждает оплату: доход объекта и статус брони меняются в одной транзакции
func (s *BookingService) Pay(ctx context.Context, id uuid.UUID) (*model.Booking, error) {
	var booking *model.Booking

	err := s.tx.Serializable(ctx, func(ctx context.Context) error {
		existing, err := s.bookingRepo.GetByID(ctx, id)
		if err != nil {
			return fmt.Errorf("get booking: %w", err)
		}
		if existing == nil {
			return newError(KindBookingNotFound, "booking %s not found", id)
		}
		if !existing.CanPay() {
			return newError(KindAlreadySettled, "booking %s is already %s", id, existing.Status)
		}

		info, err := s.roomRepo.GetInfoByID(ctx, existing.RoomID)
		if err != nil {
			return fmt.Errorf("get room: %w", err)
		}
		if info == nil {
			return newError(KindPropertyNotFound, "property for room %d not found", existing.RoomID)
		}

		if err := s.propertyRepo.AddIncome(ctx, info.Property.ID, existing.TotalPrice); err != nil {
			return fmt.Errorf("add property income: %w", err)
		}

		if err := s.bookingRepo.UpdateStatus(ctx, id, model.BookingStatusPaymentConfirmed); err != nil {
			return err
		}

		existing.Status = model.BookingStatusPaymentConfirmed
		booking = existing
		return nil
	})

	if err != nil {
		return nil, translateStorageError(err)
	}

	s.logger.Info("Booking paid",
		zap.String("booking_id", booking.ID.String()),
		zap.Int64("amount", booking.TotalPrice),
	)

	return booking, nil
}

// Cancel отменяет неоплаченное бронирование. Отмена терминальна.
func (s *BookingService) Cancel(ctx context.Context, id uuid.UUID) (*model.Booking, error) {
	var booking *model.Booking

	err := s.tx.Serializable(ctx, func(ctx context.Context) error {
		existing, err := s.bookingRepo.GetByID(ctx, id)
		if err != nil {
			return fmt.Errorf("get booking: %w", err)
		}
		if existing == nil {
			return newError(KindBookingNotFound, "booking %s not found", id)
		}
		if !existing.CanCancel() {
			return newError(KindCannotCancel, "booking %s is %s and cannot be cancelled", id, existing.Status)
		}

		if err := s.bookingRepo.UpdateStatus(ctx, id, model.BookingStatusCancelled); err != nil {
			return err
		}

		existing.Status = model.BookingStatusCancelled
		booking = existing
		return nil
	})

	if err != nil {
		return nil, translateStorageError(err)
	}

	s.logger.Info("Booking cancelled", zap.String("booking_id", booking.ID.String()))

	return booking, nil
}

// Refund возвраты убраны из продукта, вызов всегда завершается ошибкой
func (s *BookingService) Refund(ctx context.Context, id uuid.UUID) error {
	return newError(KindFeatureRemoved, "refunds are no longer supported")
}

// Get возвращает бронирование по ID
func (s *BookingService) Get(ctx context.Context, id uuid.UUID) (*model.Booking, error) {
	booking, err := s.bookingRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get booking: %w", err)
	}
	if booking == nil {
		return nil, newError(KindBookingNotFound, "booking %s not found", id)
	}
	return booking, nil
}

// GetForUpdate возвращает бронирование для формы редактирования,
// доступно только пока бронь не оплачена и не отменена
func (s *BookingService) GetForUpdate(ctx context.Context, id uuid.UUID) (*model.Booking, error) {
	booking, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if !booking.CanEdit() {
		return nil, newError(KindImmutableBooking, "booking %s is %s and can no longer be edited", id, booking.Status)
	}
	return booking, nil
}

// List возвращает бронирования с опциональным фильтром по статусу или поиском
func (s *BookingService) List(ctx context.Context, status *model.BookingStatus, search string) ([]*model.Booking, error) {
	switch {
	case status != nil:
		return s.bookingRepo.FindByStatus(ctx, *status)
	case search != "":
		return s.bookingRepo.Search(ctx, search)
	default:
		return s.bookingRepo.List(ctx)
	}
}

// validateStay проверяет все условия легальности проживания в порядке,
// в котором первая нарушенная проверка выигрывает
func (s *BookingService) validateStay(ctx context.Context, info *model.RoomInfo, input BookingInput, excludeID *uuid.UUID) error {
	if input.CheckIn.Before(s.now()) {
		return newError(KindInvalidDateRange, "check-in date is in the past")
	}
	if !input.CheckOut.After(input.CheckIn) {
		return newError(KindInvalidDateRange, "check-out must be after check-in")
	}
	if input.Capacity > info.RoomType.Capacity {
		return newError(KindCapacityExceeded, "requested capacity %d exceeds room type capacity %d", input.Capacity, info.RoomType.Capacity)
	}
	if maintenanceOverlaps(&info.Room, input.CheckIn, input.CheckOut) {
		return newError(KindMaintenanceConflict, "room %d is under maintenance for the requested dates", info.Room.ID)
	}

	conflict, err := s.roomConflicts(ctx, info.Room.ID, input.CheckIn, input.CheckOut, excludeID)
	if err != nil {
		return err
	}
	if conflict {
		return newError(KindRoomUnavailable, "room %d is already booked for the requested dates", info.Room.ID)
	}

	return nil
}

// roomConflicts проверяет есть ли у комнаты активная бронь, пересекающаяся с интервалом
func (s *BookingService) roomConflicts(ctx context.Context, roomID int64, checkIn, checkOut time.Time, excludeID *uuid.UUID) (bool, error) {
	overlapping, err := s.bookingRepo.FindOverlapping(ctx, roomID, checkIn, checkOut)
	if err != nil {
		return false, fmt.Errorf("find overlapping bookings: %w", err)
	}

	for _, b := range overlapping {
		if b.Status == model.BookingStatusCancelled {
			continue
		}
		if excludeID != nil && b.ID == *excludeID {
			continue
		}
		if intervalsOverlap(checkIn, checkOut, b.CheckIn, b.CheckOut) {
			return true, nil
		}
	}

	return false, nil
}

// translateStorageError переводит ошибки хранилища в ошибки движка:
// нарушение exclusion-констрейнта означает гонку за комнату, исчерпанные
// повторы сериализации отдаются как Conflict
func translateStorageError(err error) error {
	switch {
	case err == nil:
		return nil
	case base.IsExclusionViolation(err):
		return newError(KindRoomUnavailable, "room is already booked for the requested dates")
	case base.IsSerializationFailure(err):
		return newError(KindConflict, "concurrent booking activity, please retry")
	default:
		return err
	}
}
