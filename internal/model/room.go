package model

import "time"

type Room struct {
	ID               int64      `json:"id"`
	RoomTypeID       int64      `json:"room_type_id"`
	Number           string     `json:"number"`
	IsAvailable      bool       `json:"is_available"`
	MaintenanceStart *time.Time `json:"maintenance_start"` // указатель - окно может отсутствовать
	MaintenanceEnd   *time.Time `json:"maintenance_end"`
}

// HasMaintenanceWindow проверяет задано ли окно обслуживания целиком
func (r *Room) HasMaintenanceWindow() bool {
	return r.MaintenanceStart != nil && r.MaintenanceEnd != nil
}

type RoomType struct {
	ID          int64  `json:"id"`
	PropertyID  int64  `json:"property_id"`
	Name        string `json:"name"`
	NightlyRate int64  `json:"nightly_rate"` // цена за ночь в минимальных единицах
	Capacity    int    `json:"capacity"`
	Floor       int    `json:"floor"`
}

// RoomInfo комната вместе с типом и объектом размещения (один запрос для всех проверок)
type RoomInfo struct {
	Room     Room     `json:"room"`
	RoomType RoomType `json:"room_type"`
	Property Property `json:"property"`
}
