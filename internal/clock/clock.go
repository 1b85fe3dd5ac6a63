package clock

import "time"

// Clock abstracts the wall clock so metadata snapshots can be stamped
// deterministically in tests.
type Clock interface {
	Now() time.Time
}

type realClock struct{}

func NewRealClock() Clock {
	return realClock{}
}

func (realClock) Now() time.Time {
	return time.Now()
}
