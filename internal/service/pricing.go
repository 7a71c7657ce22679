package service

import "time"

// DefaultBreakfastRate стоимость завтрака за ночь в минимальных единицах валюты
const DefaultBreakfastRate int64 = 50000

// NightsBetween считает количество ночей по календарным датам (время суток
// отбрасывается). Минимум одна ночь: заезд и выезд в один календарный день
// тарифицируется как одна ночь.
func NightsBetween(checkIn, checkOut time.Time) int {
	nights := int(toDate(checkOut).Sub(toDate(checkIn)).Hours() / 24)
	if nights < 1 {
		nights = 1
	}
	return nights
}

// TotalPrice считает полную стоимость проживания. Только целочисленная арифметика.
func TotalPrice(nights int, nightlyRate int64, breakfast bool, breakfastRate int64) int64 {
	total := nightlyRate * int64(nights)
	if breakfast {
		total += breakfastRate * int64(nights)
	}
	return total
}

func toDate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
