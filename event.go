package solarinfo

import (
	"errors"
	"fmt"
	"strings"
)

// Event identifies a daily solar event.
type Event int

const (
	Sunrise Event = iota
	Sunset
	SolarNoon
)

// ErrUnknownEvent is returned by ParseEvent for unrecognised names.
var ErrUnknownEvent = errors.New("solarinfo: unknown event")

func (e Event) String() string {
	switch e {
	case Sunrise:
		return "sunrise"
	case Sunset:
		return "sunset"
	case SolarNoon:
		return "noon"
	default:
		return fmt.Sprintf("Event(%d)", int(e))
	}
}

// ParseEvent parses "sunrise", "sunset" or "noon" (case-insensitive).
func ParseEvent(s string) (Event, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "sunrise", "rise":
		return Sunrise, nil
	case "sunset", "set":
		return Sunset, nil
	case "noon", "solarnoon", "solar-noon":
		return SolarNoon, nil
	default:
		return 0, fmt.Errorf("%w %q (use sunrise, sunset or noon)", ErrUnknownEvent, s)
	}
}
