package timezone

import "time"

// Clock returns the current instant. Services take a Clock so "today" can be pinned in tests.
type Clock func() time.Time

// NewClock returns a Clock reading the application timezone.
func NewClock() Clock {
	return Now
}

// Fixed returns a Clock that always reports t.
func Fixed(t time.Time) Clock {
	return func() time.Time {
		return t
	}
}

// StartOfDay truncates t to local midnight in t's location.
func StartOfDay(t time.Time) time.Time {
	year, month, day := t.Date()

	return time.Date(year, month, day, 0, 0, 0, 0, t.Location())
}

// SameDay reports whether a and b fall on the same calendar day, comparing a in b's location.
func SameDay(a, b time.Time) bool {
	ay, am, ad := a.In(b.Location()).Date()
	by, bm, bd := b.Date()

	return ay == by && am == bm && ad == bd
}
