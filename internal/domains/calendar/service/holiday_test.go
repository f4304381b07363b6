package service_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"edurooms/config"
	feedMocks "edurooms/infras/holiday/mocks"
	otelMocks "edurooms/infras/otel/mocks"
	"edurooms/internal/domains/calendar/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func day(t *testing.T, value string) time.Time {
	t.Helper()

	parsed, err := time.Parse("2006-01-02", value)
	require.NoError(t, err)

	return parsed
}

func TestHolidayCache_OverrideSkipsFeed(t *testing.T) {
	ctrl := gomock.NewController(t)
	feed := feedMocks.NewMockFeed(ctrl)

	cfg := &config.Config{}
	cfg.Holiday.Overrides = []string{"2026-03-19", "not-a-date"}

	cache := service.NewHolidayCache(cfg, feed, otelMocks.NewOtel())

	holiday, err := cache.IsHoliday(context.Background(), day(t, "2025-12-25"))
	require.NoError(t, err)
	assert.True(t, holiday)

	holiday, err = cache.IsHoliday(context.Background(), day(t, "2026-03-19"))
	require.NoError(t, err)
	assert.True(t, holiday)
}

func TestHolidayCache_FetchesEachYearOnce(t *testing.T) {
	ctrl := gomock.NewController(t)
	feed := feedMocks.NewMockFeed(ctrl)

	feed.EXPECT().FetchYear(gomock.Any(), 2026).Return([]string{"2026-01-01", "2026-01-06"}, nil).Times(1)

	cache := service.NewHolidayCache(&config.Config{}, feed, otelMocks.NewOtel())

	holiday, err := cache.IsHoliday(context.Background(), day(t, "2026-01-06"))
	require.NoError(t, err)
	assert.True(t, holiday)

	holiday, err = cache.IsHoliday(context.Background(), day(t, "2026-01-07"))
	require.NoError(t, err)
	assert.False(t, holiday)

	dates, err := cache.Holidays(context.Background(), 2026)
	require.NoError(t, err)
	assert.Equal(t, []string{"2026-01-01", "2026-01-06"}, dates)
}

func TestHolidayCache_FailedFetchIsRetried(t *testing.T) {
	ctrl := gomock.NewController(t)
	feed := feedMocks.NewMockFeed(ctrl)

	gomock.InOrder(
		feed.EXPECT().FetchYear(gomock.Any(), 2027).Return(nil, errors.New("connection refused")),
		feed.EXPECT().FetchYear(gomock.Any(), 2027).Return([]string{}, nil),
	)

	cache := service.NewHolidayCache(&config.Config{}, feed, otelMocks.NewOtel())

	_, err := cache.IsHoliday(context.Background(), day(t, "2027-05-03"))
	require.Error(t, err)

	holiday, err := cache.IsHoliday(context.Background(), day(t, "2027-05-03"))
	require.NoError(t, err)
	assert.False(t, holiday)
}

func TestHolidayCache_ConcurrentMissesShareOneFetch(t *testing.T) {
	ctrl := gomock.NewController(t)
	feed := feedMocks.NewMockFeed(ctrl)

	feed.EXPECT().FetchYear(gomock.Any(), 2028).DoAndReturn(func(context.Context, int) ([]string, error) {
		time.Sleep(20 * time.Millisecond)

		return []string{"2028-01-01"}, nil
	}).Times(1)

	cache := service.NewHolidayCache(&config.Config{}, feed, otelMocks.NewOtel())

	var wg sync.WaitGroup

	for range 16 {
		wg.Add(1)

		go func() {
			defer wg.Done()

			holiday, err := cache.IsHoliday(context.Background(), day(t, "2028-01-01"))
			assert.NoError(t, err)
			assert.True(t, holiday)
		}()
	}

	wg.Wait()
}
