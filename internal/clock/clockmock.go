package clock

import (
	"time"
)

// MockEpoch is the instant returned by NewClockMock.
var MockEpoch = time.Unix(838850400, 0)

type clockMock struct {
	now time.Time
}

func NewClockMock() Clock {
	return &clockMock{now: MockEpoch}
}

// NewClockMockAt returns a clock frozen at t.
func NewClockMockAt(t time.Time) Clock {
	return &clockMock{now: t}
}

func (c *clockMock) Now() time.Time {
	return c.now
}
