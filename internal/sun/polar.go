package sun

import (
	"errors"
	"fmt"
	"math"

	"github.com/thurmanmarka/solarinfo/internal/solver"
)

const (
	// PolarLatitude is the latitude above which a missing sunrise or sunset
	// is resolved by searching neighbouring days.
	PolarLatitude = 66.4

	// MaxSearchDays bounds the polar search. Polar day and night last well
	// under 200 days at any latitude within [-89, 89].
	MaxSearchDays = 400
)

var (
	// ErrSearchExhausted is returned when the polar search runs past
	// MaxSearchDays without finding an event.
	ErrSearchExhausted = errors.New("sun: polar search exhausted")

	// ErrUnreachableBranch is returned when a missing event cannot be
	// attributed to polar day or polar night for the latitude and day of
	// year.
	ErrUnreachableBranch = errors.New("sun: no polar search branch")
)

// Searched reports whether a missing sunrise or sunset at latitude is
// resolved by the polar search.
func Searched(latitude float64) bool {
	return math.Abs(latitude) > PolarLatitude
}

// polarDay reports whether doy falls in the half of the year in which the
// Sun may stay up all day at latitude.
func polarDay(latitude float64, doy int) bool {
	return latitude > PolarLatitude && doy > 79 && doy < 267 ||
		latitude < -PolarLatitude && (doy < 83 || doy > 263)
}

// polarNight is polarDay for the opposite season. The two overlap for a few
// days around the equinoxes; polarDay is checked first.
func polarNight(latitude float64, doy int) bool {
	return latitude > PolarLatitude && (doy < 83 || doy > 263) ||
		latitude < -PolarLatitude && doy > 79 && doy < 267
}

// SearchDirection returns which way to scan for a missing event. During
// polar day the most recent sunrise and the next sunset are wanted; during
// polar night the next sunrise and the most recent sunset.
func SearchDirection(latitude float64, doy int, rising bool) (solver.Direction, error) {
	switch {
	case polarDay(latitude, doy):
		if rising {
			return solver.Backward, nil
		}
		return solver.Forward, nil
	case polarNight(latitude, doy):
		if rising {
			return solver.Forward, nil
		}
		return solver.Backward, nil
	}
	return 0, fmt.Errorf("%w: latitude %.4f, day of year %d", ErrUnreachableBranch, latitude, doy)
}

// SearchSunrise finds the sunrise nearest to the day starting at jd when
// that day has none. It returns the Julian day the event was found on and
// the event time in minutes from that day's midnight.
func SearchSunrise(jd float64, doy int, latitude, longitude, utcOffset float64) (float64, float64, error) {
	return search(jd, doy, latitude, longitude, utcOffset, true)
}

// SearchSunset is SearchSunrise for sunset.
func SearchSunset(jd float64, doy int, latitude, longitude, utcOffset float64) (float64, float64, error) {
	return search(jd, doy, latitude, longitude, utcOffset, false)
}

func search(jd float64, doy int, latitude, longitude, utcOffset float64, rising bool) (float64, float64, error) {
	return searchWithin(jd, doy, latitude, longitude, utcOffset, rising, MaxSearchDays)
}

func searchWithin(jd float64, doy int, latitude, longitude, utcOffset float64, rising bool, limit int) (float64, float64, error) {
	dir, err := SearchDirection(latitude, doy, rising)
	if err != nil {
		return 0, 0, err
	}

	event := func(day float64) (float64, bool) {
		m, err := EventUTC(day, latitude, longitude, utcOffset, StandardZenith, rising)
		return m, err == nil
	}

	res, err := solver.ScanDays(event, jd, dir, limit)
	if errors.Is(err, solver.ErrExhausted) {
		return 0, 0, fmt.Errorf("%w: %d days %s from JD %.1f", ErrSearchExhausted, limit, dir, jd)
	}
	if err != nil {
		return 0, 0, err
	}
	return res.JD, res.Value, nil
}
