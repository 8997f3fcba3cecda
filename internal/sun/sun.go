// Package sun implements the NOAA low-precision solar equations: position
// series, equation of time, solar noon and sunrise/sunset hour angles.
//
// Longitudes are in degrees, east positive. Event times are minutes from
// 0h of the day identified by the Julian day argument, with the caller's
// UTC offset already applied.
package sun

import (
	"errors"
	"math"

	"github.com/thurmanmarka/solarinfo/internal/timeutil"
)

// StandardZenith is the commonly used zenith angle (in degrees) for sunrise/sunset:
// 90°50' ≈ 90.833°, accounting for refraction + Sun's apparent radius.
const StandardZenith = 90.833

// ErrNoEvent is returned when the Sun does not reach the requested zenith on
// the given day (polar day or polar night).
var ErrNoEvent = errors.New("sun: no rise or set on this day")

// EquationOfTime returns apparent minus mean solar time, in minutes, at
// Julian century t.
func EquationOfTime(t float64) float64 {
	eps := CorrectedObliquity(t)
	l0 := timeutil.Deg2Rad(GeomMeanLongitude(t))
	e := Eccentricity(t)
	m := timeutil.Deg2Rad(GeomMeanAnomaly(t))

	y := math.Tan(timeutil.Deg2Rad(eps) / 2)
	y *= y

	sinM := math.Sin(m)

	eTime := y*math.Sin(2*l0) -
		2*e*sinM +
		4*e*y*sinM*math.Cos(2*l0) -
		0.5*y*y*math.Sin(4*l0) -
		1.25*e*e*math.Sin(2*m)

	return timeutil.Rad2Deg(eTime) * 4
}

// SolarNoonUTC returns solar noon for the day starting at Julian century t
// (which must fall on 0h), in minutes from midnight, shifted by utcOffset
// hours.
func SolarNoonUTC(t, longitude, utcOffset float64) float64 {
	jd := timeutil.JulianDayFromCentury(t)

	// first pass at the mean noon of this meridian
	tnoon := timeutil.JulianCentury(jd + 0.5 - longitude/360)
	noon := 720 - 4*longitude - EquationOfTime(tnoon)

	// second pass at the estimated noon
	tnoon = timeutil.JulianCentury(jd + noon/timeutil.MinutesPerDay)
	noon = 720 - 4*longitude - EquationOfTime(tnoon)

	return noon + utcOffset*60
}

// HourAngle returns the hour angle, in radians, at which the Sun's center
// reaches zenith (degrees) for an observer at latitude when the solar
// declination is dec. ErrNoEvent is returned if the Sun never gets there.
func HourAngle(latitude, dec, zenith float64) (float64, error) {
	arg := timeutil.CosD(zenith)/(timeutil.CosD(latitude)*timeutil.CosD(dec)) -
		timeutil.TanD(latitude)*timeutil.TanD(dec)

	if math.IsNaN(arg) || arg < -1 || arg > 1 {
		return math.NaN(), ErrNoEvent
	}
	return math.Acos(arg), nil
}

// HourAngleSunrise is HourAngle at StandardZenith.
func HourAngleSunrise(latitude, dec float64) (float64, error) {
	return HourAngle(latitude, dec, StandardZenith)
}

// HourAngleSunset is the negated HourAngleSunrise.
func HourAngleSunset(latitude, dec float64) (float64, error) {
	ha, err := HourAngleSunrise(latitude, dec)
	return -ha, err
}

// SunriseUTC returns sunrise on the day starting at jd in minutes from
// midnight, shifted by utcOffset hours.
func SunriseUTC(jd, latitude, longitude, utcOffset float64) (float64, error) {
	return EventUTC(jd, latitude, longitude, utcOffset, StandardZenith, true)
}

// SunsetUTC is SunriseUTC for sunset.
func SunsetUTC(jd, latitude, longitude, utcOffset float64) (float64, error) {
	return EventUTC(jd, latitude, longitude, utcOffset, StandardZenith, false)
}

// EventUTC returns the time the Sun's center crosses zenith (degrees) on the
// day starting at jd, rising or setting. The estimate made with the
// declination at solar noon is refined once with the declination at the
// estimated event time.
func EventUTC(jd, latitude, longitude, utcOffset, zenith float64, rising bool) (float64, error) {
	noon := SolarNoonUTC(timeutil.JulianCentury(jd), longitude, 0)

	at := func(t float64) (float64, error) {
		ha, err := HourAngle(latitude, Declination(t), zenith)
		if err != nil {
			return math.NaN(), err
		}
		if !rising {
			ha = -ha
		}
		return 720 - 4*(longitude+timeutil.Rad2Deg(ha)) - EquationOfTime(t), nil
	}

	coarse, err := at(timeutil.JulianCentury(jd + noon/timeutil.MinutesPerDay))
	if err != nil {
		return math.NaN(), err
	}

	refined, err := at(timeutil.JulianCentury(jd + coarse/timeutil.MinutesPerDay))
	if err != nil {
		return math.NaN(), err
	}

	return refined + utcOffset*60, nil
}
