package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/staywise/booking_engine/internal/model"
	"github.com/staywise/booking_engine/internal/repository/base"
)

type RoomRepository struct {
	*base.Repository
}

func NewRoomRepository(pool *pgxpool.Pool) *RoomRepository {
	return &RoomRepository{Repository: base.NewRepository(pool)}
}

// GetInfoByID получает комнату вместе с типом и объектом размещения одним запросом
func (r *RoomRepository) GetInfoByID(ctx context.Context, roomID int64) (*model.RoomInfo, error) {
	query := `
		SELECT r.id, r.room_type_id, r.number, r.is_available, r.maintenance_start, r.maintenance_end,
			rt.id, rt.property_id, rt.name, rt.nightly_rate, rt.capacity, rt.floor,
			p.id, p.owner_id, p.name, p.income, p.created_at, p.updated_at
		FROM rooms r
		JOIN room_types rt ON rt.id = r.room_type_id
		JOIN properties p ON p.id = rt.property_id
		WHERE r.id = $1
	`

	var info model.RoomInfo
	err := r.DB(ctx).QueryRow(ctx, query, roomID).Scan(
		&info.Room.ID,
		&info.Room.RoomTypeID,
		&info.Room.Number,
		&info.Room.IsAvailable,
		&info.Room.MaintenanceStart,
		&info.Room.MaintenanceEnd,
		&info.RoomType.ID,
		&info.RoomType.PropertyID,
		&info.RoomType.Name,
		&info.RoomType.NightlyRate,
		&info.RoomType.Capacity,
		&info.RoomType.Floor,
		&info.Property.ID,
		&info.Property.OwnerID,
		&info.Property.Name,
		&info.Property.Income,
		&info.Property.CreatedAt,
		&info.Property.UpdatedAt,
	)

	if err != nil {
		if base.IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get room info by id: %w", err)
	}

	return &info, nil
}
