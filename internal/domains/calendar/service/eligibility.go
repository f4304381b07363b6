package service

//go:generate go run go.uber.org/mock/mockgen -source=./eligibility.go -destination=../mocks/eligibility_mock.go -package=mocks

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"time"

	"edurooms/config"
	"edurooms/infras/otel"
	"edurooms/shared/constant"
	"edurooms/shared/failure"
	"edurooms/shared/timezone"

	"github.com/rs/zerolog/log"
)

var isoDatePattern = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

var weekdays = map[string]time.Weekday{
	"sunday":    time.Sunday,
	"monday":    time.Monday,
	"tuesday":   time.Tuesday,
	"wednesday": time.Wednesday,
	"thursday":  time.Thursday,
	"friday":    time.Friday,
	"saturday":  time.Saturday,
}

// Eligibility decides whether a calendar day can take new bookings.
type Eligibility interface {
	// ValidateBookingDate parses dateStr and returns the day at local midnight when it is bookable.
	ValidateBookingDate(ctx context.Context, dateStr string) (time.Time, error)
}

type eligibilityImpl struct {
	holidays HolidayCache
	closed   map[time.Weekday]struct{}
	now      timezone.Clock
	otel     otel.Otel
}

func NewEligibility(cfg *config.Config, holidays HolidayCache, now timezone.Clock, otl otel.Otel) Eligibility {
	closed := map[time.Weekday]struct{}{}

	for _, name := range cfg.Reservation.ClosedWeekdays {
		day, ok := weekdays[strings.ToLower(strings.TrimSpace(name))]
		if !ok {
			log.Warn().Str("weekday", name).Msg("ignoring unknown closed weekday")

			continue
		}

		closed[day] = struct{}{}
	}

	return &eligibilityImpl{
		holidays: holidays,
		closed:   closed,
		now:      now,
		otel:     otl,
	}
}

func (e *eligibilityImpl) ValidateBookingDate(ctx context.Context, dateStr string) (date time.Time, err error) {
	ctx, scope := e.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".ValidateBookingDate")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if !isoDatePattern.MatchString(dateStr) {
		return date, failure.Format("date must follow the YYYY-MM-DD format") // nolint:wrapcheck
	}

	date, err = timezone.Parse(constant.ISODateLayout, dateStr)
	if err != nil {
		return date, failure.Format(fmt.Sprintf("%s is not a valid calendar date", dateStr)) // nolint:wrapcheck
	}

	today := timezone.StartOfDay(e.now().In(date.Location()))
	if date.Before(today) {
		return date, failure.BadRequestFromString("reservations cannot be made for past dates") // nolint:wrapcheck
	}

	if _, ok := e.closed[date.Weekday()]; ok {
		return date, failure.BadRequestFromString(fmt.Sprintf("reservations are not allowed on %s", strings.ToLower(date.Weekday().String()))) // nolint:wrapcheck
	}

	holiday, err := e.holidays.IsHoliday(ctx, date)
	if err != nil {
		return date, failure.Fetch("could not verify the holiday calendar, try again later") // nolint:wrapcheck
	}

	if holiday {
		return date, failure.BadRequestFromString(fmt.Sprintf("%s is a public holiday", dateStr)) // nolint:wrapcheck
	}

	return date, nil
}
