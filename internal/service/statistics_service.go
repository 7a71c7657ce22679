package service

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/staywise/booking_engine/internal/model"
	"github.com/staywise/booking_engine/internal/repository"
	"go.uber.org/zap"
)

// Допустимые границы отчётного периода
const (
	minReportYear = 2000
	maxReportYear = 2100
)

// Фиксированная таблица английских названий месяцев для заголовка периода
var monthNames = [12]string{
	"January", "February", "March", "April", "May", "June",
	"July", "August", "September", "October", "November", "December",
}

// StatisticsService агрегирует выручку по оплаченным бронированиям. Только чтение.
type StatisticsService struct {
	bookingRepo repository.Bookings
	now         func() time.Time
	logger      *zap.Logger
}

func NewStatisticsService(bookingRepo repository.Bookings, logger *zap.Logger) *StatisticsService {
	return &StatisticsService{
		bookingRepo: bookingRepo,
		now:         time.Now,
		logger:      logger,
	}
}

// Report строит отчёт по выручке за месяц. Нулевые month/year означают текущий
// календарный месяц. Пустой период не является ошибкой.
func (s *StatisticsService) Report(ctx context.Context, month, year int) (*model.RevenueReport, error) {
	now := s.now()
	if month == 0 {
		month = int(now.Month())
	}
	if year == 0 {
		year = now.Year()
	}

	if month < 1 || month > 12 {
		return nil, newError(KindInvalidPeriod, "month %d is out of range 1-12", month)
	}
	if year < minReportYear || year > maxReportYear {
		return nil, newError(KindInvalidPeriod, "year %d is out of range %d-%d", year, minReportYear, maxReportYear)
	}

	from := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	to := from.AddDate(0, 1, 0)

	settled, err := s.bookingRepo.FindSettledInPeriod(ctx, from, to)
	if err != nil {
		return nil, fmt.Errorf("find settled bookings: %w", err)
	}

	// Группируем по объекту, сохраняя порядок первого появления
	groups := make(map[int64]*model.PropertyRevenue)
	var order []int64
	var totalRevenue int64

	for _, b := range settled {
		group, ok := groups[b.PropertyID]
		if !ok {
			group = &model.PropertyRevenue{
				PropertyID:   b.PropertyID,
				PropertyName: b.PropertyName,
			}
			groups[b.PropertyID] = group
			order = append(order, b.PropertyID)
		}
		group.BookingCount++
		group.Revenue += b.TotalPrice
		totalRevenue += b.TotalPrice
	}

	properties := make([]model.PropertyRevenue, 0, len(order))
	for _, id := range order {
		group := groups[id]
		if totalRevenue > 0 {
			group.Percentage = float64(group.Revenue) * 100.0 / float64(totalRevenue)
		}
		properties = append(properties, *group)
	}

	// Стабильная сортировка: при равной выручке сохраняется порядок группировки
	sort.SliceStable(properties, func(i, j int) bool {
		return properties[i].Revenue > properties[j].Revenue
	})

	report := &model.RevenueReport{
		Period:          fmt.Sprintf("%s %d", monthNames[month-1], year),
		TotalProperties: len(properties),
		TotalRevenue:    totalRevenue,
		Properties:      properties,
	}

	s.logger.Debug("Revenue report built",
		zap.String("period", report.Period),
		zap.Int("properties", report.TotalProperties),
		zap.Int64("total_revenue", report.TotalRevenue),
	)

	return report, nil
}
