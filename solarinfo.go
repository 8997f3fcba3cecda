// Package solarinfo computes sunrise, sunset, solar noon, solar declination
// and the equation of time for a date and location, using the NOAA
// low-precision solar position algorithm.
//
// Results are good to about a minute between 1900 and 2100, which is enough
// for schedulers, lighting controllers and almanacs. Above the polar circles,
// a day without a sunrise or sunset reports the nearest one found on
// neighbouring days instead.
//
// Every function is pure and safe for concurrent use.
package solarinfo

import (
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/thurmanmarka/solarinfo/internal/sun"
	"github.com/thurmanmarka/solarinfo/internal/timeutil"
)

// SolarInfo holds the solar ephemeris for one calendar date.
//
// All timestamps are expressed in Location, a fixed zone built from the
// effective UTC offset of the query (see ForDate).
type SolarInfo struct {
	Date     time.Time      // midnight starting the requested date, in Location
	Location *time.Location // fixed zone of every timestamp in the result
	Latitude float64        // degrees, after clamping

	Declination    float64       // degrees, at solar noon
	EquationOfTime time.Duration // apparent minus mean solar time, at solar noon

	Sunrise   time.Time
	Sunset    time.Time
	SolarNoon time.Duration // offset from Date

	HasSunrise   bool
	HasSunset    bool
	HasSolarNoon bool

	// HasSunrise / HasSunset are false only when the date has no such event
	// and the latitude is too low for the polar search.
	//
	// SunriseSearched / SunsetSearched are set when the date itself has no
	// such event and the value is the nearest one on another day.
	SunriseSearched bool
	SunsetSearched  bool
}

var (
	// ErrNoEvent is returned when the Sun does not cross the requested
	// altitude on that date at that location.
	ErrNoEvent = sun.ErrNoEvent

	// ErrSearchExhausted is returned when the polar search finds no
	// sunrise or sunset within its day limit.
	ErrSearchExhausted = sun.ErrSearchExhausted

	// ErrUnreachableBranch is returned when the polar search is asked to
	// resolve an event it has no season for. ForDate never searches at or
	// below sun.PolarLatitude, so it does not return it.
	ErrUnreachableBranch = sun.ErrUnreachableBranch

	// ErrInvalidInput is returned for NaN or infinite arguments.
	ErrInvalidInput = errors.New("solarinfo: latitude, longitude and UTC offset must be finite")
)

// ForDate computes the solar ephemeris for the calendar date of date (its
// clock time and location are ignored) at latitude and longitude (degrees,
// north and east positive). utcOffset is the fixed offset in hours that
// event times are reported in.
//
// Latitude is clamped to [-89, 89].
//
// For southern latitudes the published formulas negate utcOffset. ForDate
// keeps that convention: the minutes they produce are read from midnight of
// the negated zone, which is returned as Location. The absolute instants of
// Sunrise and Sunset are the same either way; convert with In to display
// them in another zone.
//
// Above 66.4° north or south, a date with no sunrise or sunset reports the
// nearest event searched for on neighbouring days: the most recent sunrise
// and next sunset during polar day, the next sunrise and most recent sunset
// during polar night.
//
// Just below those latitudes the Sun can still stay up for a few days around
// the solstice. There is no search there: the missing event is reported
// through HasSunrise or HasSunset, and the error is nil.
func ForDate(latitude, longitude float64, date time.Time, utcOffset float64) (SolarInfo, error) {
	q, err := newQuery(latitude, longitude, date, utcOffset)
	if err != nil {
		return SolarInfo{}, err
	}

	info := SolarInfo{
		Date:     q.midnight(),
		Location: q.loc,
		Latitude: q.lat,
	}

	noon := sun.SolarNoonUTC(q.t, q.lon, q.offset)

	// Report declination and equation of time for the solar day rather
	// than for midnight.
	tnoon := timeutil.JulianCentury(q.jd + (noon-q.offset*60)/timeutil.MinutesPerDay)
	info.Declination = sun.Declination(tnoon)
	info.EquationOfTime = time.Duration(sun.EquationOfTime(tnoon) * float64(time.Minute))

	info.Sunrise, info.HasSunrise, info.SunriseSearched, err = q.event(sun.SunriseUTC, sun.SearchSunrise)
	if err != nil {
		return SolarInfo{}, fmt.Errorf("sunrise on %s: %w", q.dateString(), err)
	}

	info.Sunset, info.HasSunset, info.SunsetSearched, err = q.event(sun.SunsetUTC, sun.SearchSunset)
	if err != nil {
		return SolarInfo{}, fmt.Errorf("sunset on %s: %w", q.dateString(), err)
	}

	if info.HasSunrise && info.HasSunset {
		info.SolarNoon = timeutil.MinutesToDuration(noon)
		info.HasSolarNoon = true
	}

	return info, nil
}

// At returns the time of event e, or false if the result does not hold it.
func (s SolarInfo) At(e Event) (time.Time, bool) {
	switch e {
	case Sunrise:
		return s.Sunrise, s.HasSunrise
	case Sunset:
		return s.Sunset, s.HasSunset
	case SolarNoon:
		if !s.HasSolarNoon {
			return time.Time{}, false
		}
		return s.Date.Add(s.SolarNoon), true
	default:
		return time.Time{}, false
	}
}

// DaylightHours returns the time between sunrise and sunset, in hours, for
// the given date and location. See DayLength.
func DaylightHours(latitude, longitude float64, date time.Time, utcOffset float64) (float64, error) {
	info, err := ForDate(latitude, longitude, date, utcOffset)
	if err != nil {
		return 0, err
	}
	return info.DayLength().Hours(), nil
}

// DayLength returns the time between sunrise and sunset.
//
// When either event came from the polar search or is missing, the span is
// clipped to the calendar date, so polar day gives 24h and polar night 0. A
// date with neither event counts as daylight when the Sun is on the
// latitude's side of the equator.
func (s SolarInfo) DayLength() time.Duration {
	dayStart := s.Date
	dayEnd := s.Date.AddDate(0, 0, 1)

	switch {
	case !s.HasSunrise && !s.HasSunset:
		if s.Date.IsZero() || s.Latitude*s.Declination <= 0 {
			return 0
		}
		return dayEnd.Sub(dayStart)
	case !s.HasSunrise:
		return clip(dayStart, s.Sunset, dayStart, dayEnd)
	case !s.HasSunset:
		return clip(s.Sunrise, dayEnd, dayStart, dayEnd)
	case !s.SunriseSearched && !s.SunsetSearched:
		return s.Sunset.Sub(s.Sunrise)
	}
	return clip(s.Sunrise, s.Sunset, dayStart, dayEnd)
}

// clip returns the length of [start, end] inside [dayStart, dayEnd].
func clip(start, end, dayStart, dayEnd time.Time) time.Duration {
	if start.Before(dayStart) {
		start = dayStart
	}
	if end.After(dayEnd) {
		end = dayEnd
	}
	if !end.After(start) {
		return 0
	}
	return end.Sub(start)
}

// -----------------------------
// Query preparation
// -----------------------------

// query is one ForDate call after latitude clamping and the
// southern-hemisphere offset flip.
type query struct {
	lat    float64
	lon    float64
	offset float64 // effective offset, hours

	year  int
	month time.Month
	day   int

	jd  float64 // 0h of the date
	t   float64 // Julian century of jd
	doy int

	loc *time.Location
}

func newQuery(latitude, longitude float64, date time.Time, utcOffset float64) (query, error) {
	if !finite(latitude) || !finite(longitude) || !finite(utcOffset) {
		return query{}, ErrInvalidInput
	}

	latitude = clampLatitude(latitude)
	if latitude < 0 {
		utcOffset = -utcOffset
	}

	year, month, day := date.Date()
	jd := timeutil.JulianDay(year, month, day)

	return query{
		lat:    latitude,
		lon:    longitude,
		offset: utcOffset,
		year:   year,
		month:  month,
		day:    day,
		jd:     jd,
		t:      timeutil.JulianCentury(jd),
		doy:    timeutil.DayOfYear(month, day, timeutil.IsLeapYear(year)),
		loc:    fixedZone(utcOffset),
	}, nil
}

type eventFunc func(jd, latitude, longitude, utcOffset float64) (float64, error)

type searchFunc func(jd float64, doy int, latitude, longitude, utcOffset float64) (float64, float64, error)

// event computes one of sunrise/sunset for the query's date, falling back to
// the polar search when the date has none. ok is false when the event is
// missing and the latitude is not searched.
func (q query) event(compute eventFunc, search searchFunc) (at time.Time, ok, searched bool, err error) {
	minutes, err := compute(q.jd, q.lat, q.lon, q.offset)
	if err == nil {
		return timeutil.MinutesToTime(q.jd, minutes, q.loc), true, false, nil
	}
	if !errors.Is(err, sun.ErrNoEvent) {
		return time.Time{}, false, false, err
	}
	if !sun.Searched(q.lat) {
		return time.Time{}, false, false, nil
	}

	jd, minutes, err := search(q.jd, q.doy, q.lat, q.lon, q.offset)
	if err != nil {
		return time.Time{}, false, false, err
	}
	return timeutil.MinutesToTime(jd, minutes, q.loc), true, true, nil
}

func (q query) midnight() time.Time {
	return time.Date(q.year, q.month, q.day, 0, 0, 0, 0, q.loc)
}

func (q query) dateString() string {
	return fmt.Sprintf("%04d-%02d-%02d", q.year, q.month, q.day)
}

// clampLatitude keeps latitude off the poles, where the hour-angle formula
// divides by zero.
func clampLatitude(latitude float64) float64 {
	return math.Max(-89, math.Min(89, latitude))
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// fixedZone returns a zone named like "UTC-04:00" for an offset in hours.
func fixedZone(hours float64) *time.Location {
	seconds := int(math.Round(hours * 3600))
	if seconds == 0 {
		return time.FixedZone("UTC", 0)
	}

	sign := '+'
	abs := seconds
	if abs < 0 {
		sign = '-'
		abs = -abs
	}
	name := fmt.Sprintf("UTC%c%02d:%02d", sign, abs/3600, abs%3600/60)
	return time.FixedZone(name, seconds)
}
