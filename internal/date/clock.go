package date

import "time"

// Clock supplies the current date. The core packages take a Clock (or an
// already-resolved Date) instead of calling time.Now so tests can pin "today".
type Clock interface {
	Today() Date
}

// SystemClock reads the current date from the wall clock in local time.
type SystemClock struct{}

// Today implements Clock.
func (SystemClock) Today() Date {
	now := time.Now()
	return New(now.Year(), now.Month(), now.Day())
}

// Fixed is a Clock pinned to a single date.
type Fixed struct {
	Date Date
}

// Today implements Clock.
func (f Fixed) Today() Date { return f.Date }
