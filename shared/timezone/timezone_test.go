package timezone_test

import (
	"edurooms/shared/timezone"
	"testing"
	"time"
)

func TestTimezoneInit(t *testing.T) {
	if timezone.Now().IsZero() {
		t.Error("Now() returned zero time")
	}

	if timezone.GetLocation() == nil {
		t.Error("GetLocation() returned nil")
	}
}

func TestTimezoneParse(t *testing.T) {
	parsed, err := timezone.Parse("2006-01-02", "2025-11-10")
	if err != nil {
		t.Fatalf("Parse() failed: %v", err)
	}

	if parsed.Weekday() != time.Monday {
		t.Errorf("expected 2025-11-10 to be a Monday, got %s", parsed.Weekday())
	}
}

func TestFixedClock(t *testing.T) {
	pinned := time.Date(2025, 11, 10, 9, 15, 0, 0, time.UTC)
	clock := timezone.Fixed(pinned)

	if !clock().Equal(pinned) {
		t.Errorf("expected %s, got %s", pinned, clock())
	}
}

func TestStartOfDay(t *testing.T) {
	loc := time.FixedZone("CET", 3600)
	got := timezone.StartOfDay(time.Date(2025, 11, 10, 23, 59, 0, 0, loc))

	want := time.Date(2025, 11, 10, 0, 0, 0, 0, loc)
	if !got.Equal(want) {
		t.Errorf("expected %s, got %s", want, got)
	}
}

func TestSameDay(t *testing.T) {
	loc := time.FixedZone("CET", 3600)
	morning := time.Date(2025, 11, 10, 8, 0, 0, 0, loc)

	if !timezone.SameDay(time.Date(2025, 11, 10, 21, 0, 0, 0, loc), morning) {
		t.Error("expected same day")
	}

	if timezone.SameDay(time.Date(2025, 11, 11, 0, 0, 0, 0, loc), morning) {
		t.Error("expected different days")
	}
}
