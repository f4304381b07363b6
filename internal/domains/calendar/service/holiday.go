package service

//go:generate go run go.uber.org/mock/mockgen -source=./holiday.go -destination=../mocks/holiday_mock.go -package=mocks

import (
	"context"
	"fmt"
	"slices"
	"strconv"
	"sync"
	"time"

	"edurooms/config"
	"edurooms/infras/holiday"
	"edurooms/infras/metrics"
	"edurooms/infras/otel"
	"edurooms/shared/constant"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/singleflight"
)

const (
	holidayFetchOK    = "ok"
	holidayFetchError = "error"
)

// defaultOverrides are the regional holidays known ahead of the remote feed.
var defaultOverrides = []string{
	"2025-01-01", "2025-01-06", "2025-03-19", "2025-04-18", "2025-05-01", "2025-08-15",
	"2025-10-12", "2025-11-01", "2025-12-06", "2025-12-08", "2025-12-25",
}

type HolidayCache interface {
	IsHoliday(ctx context.Context, date time.Time) (bool, error)
	Holidays(ctx context.Context, year int) ([]string, error)
}

// holidayCache resolves each year once and keeps the result for the process lifetime.
type holidayCache struct {
	feed      holiday.Feed
	otel      otel.Otel
	overrides map[string]struct{}

	mu    sync.RWMutex
	years map[int][]string
	group singleflight.Group
}

func NewHolidayCache(cfg *config.Config, feed holiday.Feed, otl otel.Otel) HolidayCache {
	overrides := make(map[string]struct{}, len(defaultOverrides)+len(cfg.Holiday.Overrides))

	for _, date := range slices.Concat(defaultOverrides, cfg.Holiday.Overrides) {
		if _, err := time.Parse(constant.ISODateLayout, date); err != nil {
			log.Warn().Str("date", date).Msg("ignoring malformed holiday override")

			continue
		}

		overrides[date] = struct{}{}
	}

	return &holidayCache{
		feed:      feed,
		otel:      otl,
		overrides: overrides,
		years:     map[int][]string{},
	}
}

func (h *holidayCache) IsHoliday(ctx context.Context, date time.Time) (res bool, err error) {
	ctx, scope := h.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".IsHoliday")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	day := date.Format(constant.ISODateLayout)

	if _, ok := h.overrides[day]; ok {
		return true, nil
	}

	dates, err := h.Holidays(ctx, date.Year())
	if err != nil {
		return false, err
	}

	_, found := slices.BinarySearch(dates, day)

	return found, nil
}

// Holidays returns the sorted holiday dates fetched for year. Concurrent misses on the same
// year share one fetch, and a failed fetch leaves the year unresolved.
func (h *holidayCache) Holidays(ctx context.Context, year int) ([]string, error) {
	h.mu.RLock()
	dates, ok := h.years[year]
	h.mu.RUnlock()

	if ok {
		return dates, nil
	}

	result, err, _ := h.group.Do(strconv.Itoa(year), func() (any, error) {
		h.mu.RLock()
		cached, ok := h.years[year]
		h.mu.RUnlock()

		if ok {
			return cached, nil
		}

		fetched, err := h.feed.FetchYear(context.WithoutCancel(ctx), year)
		if err != nil {
			metrics.IncHolidayFetch(holidayFetchError)

			return nil, err
		}

		metrics.IncHolidayFetch(holidayFetchOK)

		h.mu.Lock()
		h.years[year] = fetched
		h.mu.Unlock()

		return fetched, nil
	})
	if err != nil {
		log.Error().Err(err).Int("year", year).Msg("failed to load holidays")

		return nil, fmt.Errorf("failed to load holidays for %d: %w", year, err)
	}

	dates, _ = result.([]string)

	return dates, nil
}
