package service

import (
	"context"
	"testing"
	"time"

	"github.com/staywise/booking_engine/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newStatisticsService(settled []*model.SettledBooking) *StatisticsService {
	bookings := newFakeBookings()
	bookings.settled = settled

	svc := NewStatisticsService(bookings, zap.NewNop())
	svc.now = func() time.Time { return time.Date(2025, 12, 15, 0, 0, 0, 0, time.UTC) }
	return svc
}

func TestReportGroupsAndRanksProperties(t *testing.T) {
	svc := newStatisticsService([]*model.SettledBooking{
		{BookingID: "a", PropertyID: 1, PropertyName: "Seaside Villa", TotalPrice: 1000000},
		{BookingID: "b", PropertyID: 2, PropertyName: "City Center Hotel", TotalPrice: 2500000},
		{BookingID: "c", PropertyID: 1, PropertyName: "Seaside Villa", TotalPrice: 500000},
	})

	report, err := svc.Report(context.Background(), 12, 2025)
	require.NoError(t, err)

	assert.Equal(t, "December 2025", report.Period)
	assert.Equal(t, 2, report.TotalProperties)
	assert.Equal(t, int64(4000000), report.TotalRevenue)

	require.Len(t, report.Properties, 2)
	assert.Equal(t, int64(2), report.Properties[0].PropertyID)
	assert.Equal(t, int64(2500000), report.Properties[0].Revenue)
	assert.Equal(t, 1, report.Properties[0].BookingCount)
	assert.Equal(t, int64(1500000), report.Properties[1].Revenue)
	assert.Equal(t, 2, report.Properties[1].BookingCount)

	// Проценты в сумме дают 100
	var sum float64
	for _, p := range report.Properties {
		sum += p.Percentage
	}
	assert.InDelta(t, 100.0, sum, 0.0001)
}

func TestReportStableOrderOnRevenueTie(t *testing.T) {
	svc := newStatisticsService([]*model.SettledBooking{
		{BookingID: "a", PropertyID: 5, PropertyName: "First Seen", TotalPrice: 700000},
		{BookingID: "b", PropertyID: 9, PropertyName: "Second Seen", TotalPrice: 700000},
	})

	report, err := svc.Report(context.Background(), 12, 2025)
	require.NoError(t, err)

	require.Len(t, report.Properties, 2)
	assert.Equal(t, int64(5), report.Properties[0].PropertyID)
	assert.Equal(t, int64(9), report.Properties[1].PropertyID)
}

func TestReportEmptyPeriod(t *testing.T) {
	svc := newStatisticsService(nil)

	report, err := svc.Report(context.Background(), 6, 2025)
	require.NoError(t, err)

	assert.Equal(t, "June 2025", report.Period)
	assert.Equal(t, 0, report.TotalProperties)
	assert.Equal(t, int64(0), report.TotalRevenue)
	assert.Empty(t, report.Properties)
}

func TestReportDefaultsToCurrentMonth(t *testing.T) {
	svc := newStatisticsService(nil)

	report, err := svc.Report(context.Background(), 0, 0)
	require.NoError(t, err)
	assert.Equal(t, "December 2025", report.Period)
}

func TestReportInvalidPeriod(t *testing.T) {
	svc := newStatisticsService(nil)

	_, err := svc.Report(context.Background(), 13, 2025)
	assert.True(t, IsKind(err, KindInvalidPeriod))

	_, err = svc.Report(context.Background(), 12, 1999)
	assert.True(t, IsKind(err, KindInvalidPeriod))

	_, err = svc.Report(context.Background(), 12, 2101)
	assert.True(t, IsKind(err, KindInvalidPeriod))
}
