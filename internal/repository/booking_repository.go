package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/staywise/booking_engine/internal/model"
	"github.com/staywise/booking_engine/internal/repository/base"
)

const bookingColumns = `id, room_id, customer_id, customer_name, customer_email, customer_phone,
		check_in, check_out, nights, total_price, breakfast, capacity, status, created_at, updated_at`

type BookingRepository struct {
	*base.Repository
}

func NewBookingRepository(pool *pgxpool.Pool) *BookingRepository {
	return &BookingRepository{Repository: base.NewRepository(pool)}
}

func scanBooking(row pgx.Row) (*model.Booking, error) {
	var booking model.Booking
	err := row.Scan(
		&booking.ID,
		&booking.RoomID,
		&booking.CustomerID,
		&booking.CustomerName,
		&booking.CustomerEmail,
		&booking.CustomerPhone,
		&booking.CheckIn,
		&booking.CheckOut,
		&booking.Nights,
		&booking.TotalPrice,
		&booking.Breakfast,
		&booking.Capacity,
		&booking.Status,
		&booking.CreatedAt,
		&booking.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &booking, nil
}

func collectBookings(rows pgx.Rows) ([]*model.Booking, error) {
	defer rows.Close()

	var bookings []*model.Booking
	for rows.Next() {
		booking, err := scanBooking(rows)
		if err != nil {
			return nil, fmt.Errorf("scan booking: %w", err)
		}
		bookings = append(bookings, booking)
	}

	return bookings, rows.Err()
}

// Create создаёт новое бронирование
func (r *BookingRepository) Create(ctx context.Context, booking *model.Booking) error {
	query := `
		INSERT INTO bookings (id, room_id, customer_id, customer_name, customer_email, customer_phone,
			check_in, check_out, nights, total_price, breakfast, capacity, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		RETURNING created_at, updated_at
	`

	err := r.DB(ctx).QueryRow(
		ctx, query,
		booking.ID,
		booking.RoomID,
		booking.CustomerID,
		booking.CustomerName,
		booking.CustomerEmail,
		booking.CustomerPhone,
		booking.CheckIn,
		booking.CheckOut,
		booking.Nights,
		booking.TotalPrice,
		booking.Breakfast,
		booking.Capacity,
		booking.Status,
	).Scan(&booking.CreatedAt, &booking.UpdatedAt)

	if err != nil {
		return fmt.Errorf("create booking: %w", err)
	}

	return nil
}

// GetByID получает бронирование по ID
func (r *BookingRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Booking, error) {
	query := `
		SELECT ` + bookingColumns + `
		FROM bookings
		WHERE id = $1
	`

	booking, err := scanBooking(r.DB(ctx).QueryRow(ctx, query, id))
	if err != nil {
		if base.IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get booking by id: %w", err)
	}

	return booking, nil
}

// Update перезаписывает изменяемые поля бронирования
func (r *BookingRepository) Update(ctx context.Context, booking *model.Booking) error {
	query := `
		UPDATE bookings
		SET room_id = $1, customer_id = $2, customer_name = $3, customer_email = $4,
			customer_phone = $5, check_in = $6, check_out = $7, nights = $8,
			total_price = $9, breakfast = $10, capacity = $11, updated_at = now()
		WHERE id = $12
		RETURNING updated_at
	`

	err := r.DB(ctx).QueryRow(
		ctx, query,
		booking.RoomID,
		booking.CustomerID,
		booking.CustomerName,
		booking.CustomerEmail,
		booking.CustomerPhone,
		booking.CheckIn,
		booking.CheckOut,
		booking.Nights,
		booking.TotalPrice,
		booking.Breakfast,
		booking.Capacity,
		booking.ID,
	).Scan(&booking.UpdatedAt)

	if err != nil {
		if base.IsNotFound(err) {
			return fmt.Errorf("booking not found")
		}
		return fmt.Errorf("update booking: %w", err)
	}

	return nil
}

// UpdateStatus обновляет статус бронирования
func (r *BookingRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status model.BookingStatus) error {
	query := `
		UPDATE bookings
		SET status = $1, updated_at = now()
		WHERE id = $2
	`

	result, err := r.DB(ctx).Exec(ctx, query, status, id)
	if err != nil {
		return fmt.Errorf("update booking status: %w", err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("booking not found")
	}

	return nil
}

// FindOverlapping получает бронирования комнаты, пересекающиеся с интервалом [checkIn, checkOut)
func (r *BookingRepository) FindOverlapping(ctx context.Context, roomID int64, checkIn, checkOut time.Time) ([]*model.Booking, error) {
	query := `
		SELECT ` + bookingColumns + `
		FROM bookings
		WHERE room_id = $1
		  AND check_in < $3
		  AND check_out > $2
		ORDER BY check_in
	`

	rows, err := r.DB(ctx).Query(ctx, query, roomID, checkIn, checkOut)
	if err != nil {
		return nil, fmt.Errorf("find overlapping bookings: %w", err)
	}

	return collectBookings(rows)
}

// FindByStatus получает все бронирования с указанным статусом
func (r *BookingRepository) FindByStatus(ctx context.Context, status model.BookingStatus) ([]*model.Booking, error) {
	query := `
		SELECT ` + bookingColumns + `
		FROM bookings
		WHERE status = $1
		ORDER BY created_at DESC
	`

	rows, err := r.DB(ctx).Query(ctx, query, status)
	if err != nil {
		return nil, fmt.Errorf("find bookings by status: %w", err)
	}

	return collectBookings(rows)
}

// Search ищет бронирования по фрагменту названия объекта или номера комнаты
func (r *BookingRepository) Search(ctx context.Context, q string) ([]*model.Booking, error) {
	query := `
		SELECT b.id, b.room_id, b.customer_id, b.customer_name, b.customer_email, b.customer_phone,
			b.check_in, b.check_out, b.nights, b.total_price, b.breakfast, b.capacity, b.status,
			b.created_at, b.updated_at
		FROM bookings b
		JOIN rooms r ON r.id = b.room_id
		JOIN room_types rt ON rt.id = r.room_type_id
		JOIN properties p ON p.id = rt.property_id
		WHERE p.name ILIKE '%' || $1 || '%'
		   OR r.number ILIKE '%' || $1 || '%'
		ORDER BY b.created_at DESC
	`

	rows, err := r.DB(ctx).Query(ctx, query, q)
	if err != nil {
		return nil, fmt.Errorf("search bookings: %w", err)
	}

	return collectBookings(rows)
}

// List получает все бронирования, новые первыми
func (r *BookingRepository) List(ctx context.Context) ([]*model.Booking, error) {
	query := `
		SELECT ` + bookingColumns + `
		FROM bookings
		ORDER BY created_at DESC
	`

	rows, err := r.DB(ctx).Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list bookings: %w", err)
	}

	return collectBookings(rows)
}

// FindSettledInPeriod получает оплаченные бронирования с заездом в [from, to)
func (r *BookingRepository) FindSettledInPeriod(ctx context.Context, from, to time.Time) ([]*model.SettledBooking, error) {
	query := `
		SELECT b.id, p.id, p.name, b.total_price
		FROM bookings b
		JOIN rooms r ON r.id = b.room_id
		JOIN room_types rt ON rt.id = r.room_type_id
		JOIN properties p ON p.id = rt.property_id
		WHERE b.status = $1
		  AND b.check_in >= $2
		  AND b.check_in < $3
		ORDER BY b.check_in
	`

	rows, err := r.DB(ctx).Query(ctx, query, model.BookingStatusPaymentConfirmed, from, to)
	if err != nil {
		return nil, fmt.Errorf("find settled bookings: %w", err)
	}
	defer rows.Close()

	var settled []*model.SettledBooking
	for rows.Next() {
		var row model.SettledBooking
		err := rows.Scan(
			&row.BookingID,
			&row.PropertyID,
			&row.PropertyName,
			&row.TotalPrice,
		)
		if err != nil {
			return nil, fmt.Errorf("scan settled booking: %w", err)
		}
		settled = append(settled, &row)
	}

	return settled, rows.Err()
}
