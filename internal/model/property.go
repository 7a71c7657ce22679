package model

import "time"

type Property struct {
	ID        int64     `json:"id"`
	OwnerID   int64     `json:"owner_id"`
	Name      string    `json:"name"`
	Income    int64     `json:"income"` // накопленный доход, увеличивается при подтверждении оплаты
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
