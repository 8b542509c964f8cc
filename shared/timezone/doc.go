// Package timezone pins wall-clock handling to the restaurant's location.
//
// Reservation dates and times are entered as local wall-clock values, so "is this
// reservation in the past" must be answered in the restaurant's timezone rather than
// the server's:
//
//	now := timezone.Now()
//	day, err := timezone.Parse("2006-01-02", "2024-03-15")
//
// The location is read from APP_TIMEZONE (an IANA name such as "America/Denver")
// when the package is imported and falls back to UTC.
package timezone
