package schedule

import (
	"database/sql/driver"
	"fmt"
	"time"

	"edurooms/shared/constant"
	"edurooms/shared/timezone"
)

// Day is a calendar date stored in a PostgreSQL DATE column. It is always local midnight.
type Day struct {
	time.Time
}

func DayOf(t time.Time) Day {
	return Day{Time: timezone.StartOfDay(t)}
}

// ParseDay reads a "YYYY-MM-DD" date in the application timezone.
func ParseDay(value string) (Day, error) {
	parsed, err := timezone.Parse(constant.ISODateLayout, value)
	if err != nil {
		return Day{}, fmt.Errorf("invalid date %q: %w", value, err)
	}

	return Day{Time: parsed}, nil
}

func (d Day) String() string {
	return d.Format(constant.ISODateLayout)
}

func (d Day) Value() (driver.Value, error) {
	return d.String(), nil
}

func (d *Day) Scan(src any) error {
	switch value := src.(type) {
	case time.Time:
		year, month, day := value.Date()
		d.Time = time.Date(year, month, day, 0, 0, 0, 0, timezone.GetLocation())

		return nil
	case []byte:
		return d.parse(string(value))
	case string:
		return d.parse(value)
	default:
		return fmt.Errorf("cannot scan %T into schedule.Day", src)
	}
}

func (d *Day) parse(value string) error {
	if len(value) > len(constant.ISODateLayout) {
		value = value[:len(constant.ISODateLayout)]
	}

	parsed, err := ParseDay(value)
	if err != nil {
		return err
	}

	*d = parsed

	return nil
}
