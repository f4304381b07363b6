package schedule

import (
	"errors"
	"time"

	"edurooms/shared/timezone"
)

// SlotLength is the duration of every generated availability slot.
const SlotLength = 90 * time.Minute

var (
	// WindowOpen is when the first generated slot of a day starts.
	WindowOpen = NewClock(8, 0)
	// WindowClose bounds the end of the last generated slot.
	WindowClose = NewClock(21, 0)

	ErrEmptyRange = errors.New("end time must be after start time")
)

// Slot is a half-open [Start, End) range of a single day.
type Slot struct {
	Start Clock `json:"start"`
	End   Clock `json:"end"`
}

// ParseSlot parses both bounds and rejects empty or inverted ranges.
func ParseSlot(start, end string) (Slot, error) {
	from, err := ParseClock(start)
	if err != nil {
		return Slot{}, err
	}

	to, err := ParseClock(end)
	if err != nil {
		return Slot{}, err
	}

	if to <= from {
		return Slot{}, ErrEmptyRange
	}

	return Slot{Start: from, End: to}, nil
}

// Overlaps reports whether a and b intersect. Ranges that only touch do not overlap.
func Overlaps(a, b Slot) bool {
	return a.Start < b.End && a.End > b.Start
}

// GenerateSlots returns the canonical slots for date. On the current day the walk starts at
// the next whole hour after now, so nothing already started is offered.
func GenerateSlots(date, now time.Time) []Slot {
	start := WindowOpen

	if timezone.SameDay(date, now) {
		start = max(ClockOf(now.In(date.Location())).CeilHour(), WindowOpen)
	}

	slots := []Slot{}

	for from := start; from.Add(SlotLength) <= WindowClose; from = from.Add(SlotLength) {
		slots = append(slots, Slot{Start: from, End: from.Add(SlotLength)})
	}

	return slots
}

// Compose splits slots into free and occupied ones, keeping their order. A slot is occupied
// when it overlaps any of booked.
func Compose(slots, booked []Slot) (free, occupied []Slot) {
	free, occupied = []Slot{}, []Slot{}

	for _, slot := range slots {
		taken := false

		for _, reservation := range booked {
			if Overlaps(slot, reservation) {
				taken = true

				break
			}
		}

		if taken {
			occupied = append(occupied, slot)
		} else {
			free = append(free, slot)
		}
	}

	return free, occupied
}
