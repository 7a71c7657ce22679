package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/staywise/booking_engine/internal/model"
	"github.com/staywise/booking_engine/internal/repository/base"
)

type PropertyRepository struct {
	*base.Repository
}

func NewPropertyRepository(pool *pgxpool.Pool) *PropertyRepository {
	return &PropertyRepository{Repository: base.NewRepository(pool)}
}

// GetByID получает объект размещения по ID
func (r *PropertyRepository) GetByID(ctx context.Context, id int64) (*model.Property, error) {
	query := `
		SELECT id, owner_id, name, income, created_at, updated_at
		FROM properties
		WHERE id = $1
	`

	var property model.Property
	err := r.DB(ctx).QueryRow(ctx, query, id).Scan(
		&property.ID,
		&property.OwnerID,
		&property.Name,
		&property.Income,
		&property.CreatedAt,
		&property.UpdatedAt,
	)

	if err != nil {
		if base.IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get property by id: %w", err)
	}

	return &property, nil
}

// AddIncome увеличивает накопленный доход объекта
func (r *PropertyRepository) AddIncome(ctx context.Context, id int64, amount int64) error {
	query := `
		UPDATE properties
		SET income = income + $1, updated_at = now()
		WHERE id = $2
	`

	result, err := r.DB(ctx).Exec(ctx, query, amount, id)
	if err != nil {
		return fmt.Errorf("add property income: %w", err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("property not found")
	}

	return nil
}
