// Package schedule holds the time-of-day arithmetic behind reservations: parsing "HH:MM"
// values, generating the canonical slots of a day and classifying them against bookings.
package schedule

import (
	"database/sql/driver"
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"time"
)

const minutesPerDay = 24 * 60

var (
	clockPattern = regexp.MustCompile(`^([01]\d|2[0-3]):([0-5]\d)(:[0-5]\d)?$`)

	ErrInvalidClock = errors.New("time must follow the HH:MM format")
)

// Clock is a time of day in whole minutes since midnight.
type Clock int

// NewClock builds a Clock from an hour and minute.
func NewClock(hour, minute int) Clock {
	return Clock(hour*60 + minute)
}

// ParseClock accepts "HH:MM" and the "HH:MM:SS" form returned by PostgreSQL. Seconds are dropped.
func ParseClock(value string) (Clock, error) {
	match := clockPattern.FindStringSubmatch(value)
	if match == nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidClock, value)
	}

	hour, _ := strconv.Atoi(match[1])
	minute, _ := strconv.Atoi(match[2])

	return NewClock(hour, minute), nil
}

// ClockOf returns the time of day of t, truncated to the minute.
func ClockOf(t time.Time) Clock {
	return NewClock(t.Hour(), t.Minute())
}

func (c Clock) Hour() int {
	return int(c) / 60
}

func (c Clock) Minute() int {
	return int(c) % 60
}

// CeilHour rounds up to the next whole hour. A whole hour is returned unchanged.
func (c Clock) CeilHour() Clock {
	if c.Minute() == 0 {
		return c
	}

	return NewClock(c.Hour()+1, 0)
}

func (c Clock) Add(d time.Duration) Clock {
	return c + Clock(d/time.Minute)
}

func (c Clock) String() string {
	return fmt.Sprintf("%02d:%02d", c.Hour(), c.Minute())
}

func (c Clock) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

func (c *Clock) UnmarshalText(text []byte) error {
	parsed, err := ParseClock(string(text))
	if err != nil {
		return err
	}

	*c = parsed

	return nil
}

// Value stores the clock in a PostgreSQL TIME column.
func (c Clock) Value() (driver.Value, error) {
	if c < 0 || c >= minutesPerDay {
		return nil, fmt.Errorf("%w: %d minutes", ErrInvalidClock, int(c))
	}

	return c.String() + ":00", nil
}

func (c *Clock) Scan(src any) error {
	switch value := src.(type) {
	case time.Time:
		*c = ClockOf(value)

		return nil
	case []byte:
		return c.UnmarshalText(value)
	case string:
		return c.UnmarshalText([]byte(value))
	default:
		return fmt.Errorf("cannot scan %T into schedule.Clock", src)
	}
}
