package shared

import "time"

// ISOLayout renders timestamps the way API consumers expect: UTC with
// microseconds and a Z suffix.
const ISOLayout = "2006-01-02T15:04:05.000000Z07:00"

// ISOTime formats t in UTC using ISOLayout.
func ISOTime(t time.Time) string {
	return t.UTC().Format(ISOLayout)
}

// Clock returns the current time. Handlers and jobs hold one so tests can pin it.
type Clock func() time.Time

// SystemClock is the default wall clock.
func SystemClock() time.Time {
	return time.Now()
}

// Now calls c, falling back to time.Now when c is nil.
func (c Clock) Now() time.Time {
	if c == nil {
		return time.Now()
	}
	return c()
}
