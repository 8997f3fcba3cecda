// Package solver holds small search helpers for the solar equations.
package solver

import (
	"errors"
	"fmt"
)

// DayFunc evaluates an event on the day starting at Julian day jd. ok is
// false when the event does not happen that day.
type DayFunc func(jd float64) (value float64, ok bool)

// Direction is the way a scan walks along the Julian day axis.
type Direction int

const (
	// Backward looks for the most recent day with an event.
	Backward Direction = -1
	// Forward looks for the next day with an event.
	Forward Direction = 1
)

func (d Direction) String() string {
	switch d {
	case Backward:
		return "backward"
	case Forward:
		return "forward"
	default:
		return fmt.Sprintf("Direction(%d)", int(d))
	}
}

// Result holds the output of a day scan.
type Result struct {
	JD    float64 // day the event was found on
	Value float64 // value returned by the DayFunc for that day
	Steps int     // whole days moved from the start
}

// ErrExhausted is returned when no day within the limit has an event.
var ErrExhausted = errors.New("solver: day scan exhausted")

// ScanDays evaluates f at start and then one day at a time in direction dir
// until f reports an event. At most limit steps are taken past start.
func ScanDays(f DayFunc, start float64, dir Direction, limit int) (Result, error) {
	if dir != Backward && dir != Forward {
		return Result{}, fmt.Errorf("solver: invalid direction %v", dir)
	}

	jd := start
	for step := 0; step <= limit; step++ {
		if v, ok := f(jd); ok {
			return Result{JD: jd, Value: v, Steps: step}, nil
		}
		jd += float64(dir)
	}

	return Result{}, ErrExhausted
}
