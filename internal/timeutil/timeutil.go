// Package timeutil holds the calendar and Julian-day arithmetic shared by the
// solar equations, plus small degree/radian helpers.
//
// All calendar functions use the proleptic Gregorian calendar.
package timeutil

import (
	"math"
	"time"
)

const (
	// J2000 is the Julian day of the J2000.0 epoch (2000-01-01 12:00 TT).
	J2000 = 2451545.0

	// DaysPerCentury is the length of a Julian century in days.
	DaysPerCentury = 36525.0

	// MinutesPerDay is the number of minutes in a civil day.
	MinutesPerDay = 1440.0
)

// -----------------------------
// Calendar <-> Julian day
// -----------------------------

// JulianDay returns the Julian day at 0h UTC of the given Gregorian calendar
// date. January and February are counted as months 13 and 14 of the previous
// year.
func JulianDay(year int, month time.Month, day int) float64 {
	y := float64(year)
	m := float64(month)

	if m <= 2 {
		y -= 1
		m += 12
	}

	A := math.Floor(y / 100)
	B := 2 - A + math.Floor(A/4)

	return math.Floor(365.25*(y+4716)) +
		math.Floor(30.6001*(m+1)) +
		float64(day) + B - 1524.5
}

// CalendarDate is the inverse of JulianDay. The fractional part of jd
// (measured from 0h) is returned as frac in [0, 1).
func CalendarDate(jd float64) (year int, month time.Month, day int, frac float64) {
	z := math.Floor(jd + 0.5)
	frac = jd + 0.5 - z

	alpha := math.Floor((z - 1867216.25) / 36524.25)
	A := z + 1 + alpha - math.Floor(alpha/4)

	B := A + 1524
	C := math.Floor((B - 122.1) / 365.25)
	D := math.Floor(365.25 * C)
	E := math.Floor((B - D) / 30.6001)

	d := B - D - math.Floor(30.6001*E)

	m := E - 13
	if E < 14 {
		m = E - 1
	}

	y := C - 4715
	if m > 2 {
		y = C - 4716
	}

	return int(y), time.Month(m), int(d), frac
}

// JulianCentury converts a Julian day to Julian centuries since J2000.0.
func JulianCentury(jd float64) float64 {
	return (jd - J2000) / DaysPerCentury
}

// JulianDayFromCentury is the inverse of JulianCentury.
func JulianDayFromCentury(t float64) float64 {
	return t*DaysPerCentury + J2000
}

// IsLeapYear reports whether year is a Gregorian leap year.
func IsLeapYear(year int) bool {
	return year%4 == 0 && year%100 != 0 || year%400 == 0
}

// DayOfYear returns the 1-based ordinal day for month/day in a year whose
// leap status is given by leap.
func DayOfYear(month time.Month, day int, leap bool) int {
	k := 2.0
	if leap {
		k = 1.0
	}
	mn := float64(month)
	doy := math.Floor(275*mn/9) - k*math.Floor((mn+9)/12) + float64(day) - 30
	return int(doy)
}

// Weekday returns the day of the week for the calendar day containing jd.
func Weekday(jd float64) time.Weekday {
	w := math.Mod(math.Floor(jd+1.5), 7)
	if w < 0 {
		w += 7
	}
	return time.Weekday(int(w))
}

// -----------------------------
// Result assembly
// -----------------------------

// MinutesToTime renders an event given as minutes from midnight of the
// calendar day holding jd into a time.Time in loc.
//
// minutes is first brought into [0, 1440) by moving jd a whole day at a time,
// so the calendar date of the result is always the date of the event. The
// clock time is rounded to the nearest second.
func MinutesToTime(jd, minutes float64, loc *time.Location) time.Time {
	for minutes >= MinutesPerDay {
		minutes -= MinutesPerDay
		jd += 1.0
	}
	for minutes < 0 {
		minutes += MinutesPerDay
		jd -= 1.0
	}

	year, month, day, _ := CalendarDate(jd)
	base := time.Date(year, month, day, 0, 0, 0, 0, loc)

	sec := int64(math.Round(minutes * 60))
	return base.Add(time.Duration(sec) * time.Second)
}

// MinutesToDuration converts fractional minutes to a duration rounded to the
// nearest second.
func MinutesToDuration(minutes float64) time.Duration {
	return time.Duration(math.Round(minutes*60)) * time.Second
}

// -----------------------------
// Basic degree/radian helpers and trig with degree inputs.
// -----------------------------

func Deg2Rad(d float64) float64 {
	return d * math.Pi / 180.0
}

func Rad2Deg(r float64) float64 {
	return r * 180.0 / math.Pi
}

func SinD(deg float64) float64 {
	return math.Sin(Deg2Rad(deg))
}

func CosD(deg float64) float64 {
	return math.Cos(Deg2Rad(deg))
}

func TanD(deg float64) float64 {
	return math.Tan(Deg2Rad(deg))
}

// Normalize360 maps d into [0, 360).
func Normalize360(d float64) float64 {
	d = math.Mod(d, 360.0)
	if d < 0 {
		d += 360.0
	}
	// math.Mod of a tiny negative value can round back up to 360.
	if d >= 360.0 {
		d = 0
	}
	return d
}
