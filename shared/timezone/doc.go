// Package timezone pins every wall-clock computation to the configured APP_TIMEZONE
// (an IANA name such as "Europe/Madrid"). It is initialised on import.
//
// Booking dates are calendar days in this zone: "today" for eligibility checks and slot
// generation is derived from Now, or from an injected Clock in tests.
//
//	clock := timezone.Fixed(time.Date(2025, 11, 10, 9, 0, 0, 0, timezone.GetLocation()))
//	day, err := timezone.Parse("2006-01-02", "2025-11-10")
package timezone
