package model

// SettledBooking строка для агрегации выручки: оплаченное бронирование с владельцем
type SettledBooking struct {
	BookingID    string `json:"booking_id"`
	PropertyID   int64  `json:"property_id"`
	PropertyName string `json:"property_name"`
	TotalPrice   int64  `json:"total_price"`
}

// PropertyRevenue выручка одного объекта размещения за период
type PropertyRevenue struct {
	PropertyID   int64   `json:"property_id"`
	PropertyName string  `json:"property_name"`
	BookingCount int     `json:"booking_count"`
	Revenue      int64   `json:"revenue"`
	Percentage   float64 `json:"percentage"`
}

// RevenueReport итоговый отчёт по выручке за месяц
type RevenueReport struct {
	Period          string            `json:"period"`
	TotalProperties int               `json:"total_properties"`
	TotalRevenue    int64             `json:"total_revenue"`
	Properties      []PropertyRevenue `json:"properties"`
}
