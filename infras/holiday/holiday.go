// Package holiday downloads public-holiday dates from a remote iCalendar feed.
package holiday

//go:generate go run go.uber.org/mock/mockgen -source=./holiday.go -destination=./mocks/holiday_mock.go -package=mocks

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"slices"
	"time"

	"edurooms/config"
	"edurooms/infras/otel"
	"edurooms/shared/constant"

	ics "github.com/arran4/golang-ical"
	"github.com/rs/zerolog/log"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

// Feed returns the holiday dates of one year as sorted, unique "YYYY-MM-DD" strings.
type Feed interface {
	FetchYear(ctx context.Context, year int) ([]string, error)
}

type icalFeed struct {
	url    string
	client *http.Client
	otel   otel.Otel
}

func New(cfg *config.Config, otl otel.Otel) Feed {
	return NewWithClient(cfg.Holiday.FeedURL, &http.Client{
		Timeout:   time.Duration(cfg.Holiday.TimeoutSeconds) * time.Second,
		Transport: otelhttp.NewTransport(http.DefaultTransport),
	}, otl)
}

func NewWithClient(url string, client *http.Client, otl otel.Otel) Feed {
	return &icalFeed{
		url:    url,
		client: client,
		otel:   otl,
	}
}

func (f *icalFeed) FetchYear(ctx context.Context, year int) (dates []string, err error) {
	ctx, scope := f.otel.NewScope(ctx, constant.OtelExternalScopeName, constant.OtelExternalScopeName+".holiday.FetchYear")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	scope.SetAttribute("holiday.year", year)

	request, err := http.NewRequestWithContext(ctx, http.MethodGet, f.url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build holiday feed request: %w", err)
	}

	response, err := f.client.Do(request)
	if err != nil {
		log.Error().Err(err).Str("url", f.url).Msg("failed to fetch holiday feed")

		return nil, fmt.Errorf("failed to fetch holiday feed: %w", err)
	}
	defer response.Body.Close()

	if response.StatusCode != http.StatusOK {
		_, _ = io.Copy(io.Discard, response.Body)

		return nil, fmt.Errorf("holiday feed answered with status %d", response.StatusCode)
	}

	calendar, err := ics.ParseCalendar(response.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to parse holiday feed: %w", err)
	}

	dates = ExtractYear(calendar, year)

	log.Info().Int("year", year).Int("holidays", len(dates)).Msg("holiday feed loaded")

	return dates, nil
}

// ExtractYear collects the start dates of the calendar events that fall in year.
func ExtractYear(calendar *ics.Calendar, year int) []string {
	dates := []string{}

	for _, event := range calendar.Events() {
		start, err := event.GetAllDayStartAt()
		if err != nil {
			start, err = event.GetStartAt()
		}

		if err != nil {
			log.Debug().Err(err).Str("uid", event.Id()).Msg("skipping holiday event without start date")

			continue
		}

		if start.Year() != year {
			continue
		}

		dates = append(dates, start.Format(constant.ISODateLayout))
	}

	slices.Sort(dates)

	return slices.Compact(dates)
}
