package sun

import (
	"math"

	"github.com/thurmanmarka/solarinfo/internal/timeutil"
)

// Position is the Sun's geocentric position at one instant, as given by the
// NOAA low-precision series. Angles are in degrees.
//
//	L0  = geometric mean longitude
//	M   = geometric mean anomaly
//	e   = eccentricity of Earth's orbit (unitless)
//	C   = equation of the center
//	eps = obliquity of the ecliptic, corrected for nutation
type Position struct {
	T                  float64 // Julian centuries since J2000.0
	GeomMeanLongitude  float64
	GeomMeanAnomaly    float64
	Eccentricity       float64
	EquationOfCenter   float64
	TrueLongitude      float64
	TrueAnomaly        float64
	RadiusVector       float64 // AU
	ApparentLongitude  float64
	MeanObliquity      float64
	CorrectedObliquity float64
	RightAscension     float64 // [0, 360)
	Declination        float64
}

// PositionAt evaluates every term of the series at Julian century t.
func PositionAt(t float64) Position {
	return Position{
		T:                  t,
		GeomMeanLongitude:  GeomMeanLongitude(t),
		GeomMeanAnomaly:    GeomMeanAnomaly(t),
		Eccentricity:       Eccentricity(t),
		EquationOfCenter:   EquationOfCenter(t),
		TrueLongitude:      TrueLongitude(t),
		TrueAnomaly:        TrueAnomaly(t),
		RadiusVector:       RadiusVector(t),
		ApparentLongitude:  ApparentLongitude(t),
		MeanObliquity:      MeanObliquity(t),
		CorrectedObliquity: CorrectedObliquity(t),
		RightAscension:     RightAscension(t),
		Declination:        Declination(t),
	}
}

// GeomMeanLongitude returns L0 in [0, 360).
func GeomMeanLongitude(t float64) float64 {
	return timeutil.Normalize360(280.46646 + t*(36000.76983+0.0003032*t))
}

// GeomMeanAnomaly returns M. It is not normalized.
func GeomMeanAnomaly(t float64) float64 {
	return 357.52911 + t*(35999.05029-0.0001537*t)
}

func Eccentricity(t float64) float64 {
	return 0.016708634 - t*(0.000042037+0.0000001267*t)
}

func EquationOfCenter(t float64) float64 {
	m := timeutil.Deg2Rad(GeomMeanAnomaly(t))

	return math.Sin(m)*(1.914602-t*(0.004817+0.000014*t)) +
		math.Sin(2*m)*(0.019993-0.000101*t) +
		math.Sin(3*m)*0.000289
}

func TrueLongitude(t float64) float64 {
	return GeomMeanLongitude(t) + EquationOfCenter(t)
}

func TrueAnomaly(t float64) float64 {
	return GeomMeanAnomaly(t) + EquationOfCenter(t)
}

// RadiusVector returns the Earth-Sun distance in astronomical units.
func RadiusVector(t float64) float64 {
	e := Eccentricity(t)
	return 1.000001018 * (1 - e*e) / (1 + e*timeutil.CosD(TrueAnomaly(t)))
}

// omega is the longitude of the Moon's ascending node, used by the nutation
// and aberration corrections below.
func omega(t float64) float64 {
	return 125.04 - 1934.136*t
}

func ApparentLongitude(t float64) float64 {
	return TrueLongitude(t) - 0.00569 - 0.00478*timeutil.SinD(omega(t))
}

func MeanObliquity(t float64) float64 {
	seconds := 21.448 - t*(46.8150+t*(0.00059-t*0.001813))
	return 23.0 + (26.0+seconds/60.0)/60.0
}

func CorrectedObliquity(t float64) float64 {
	return MeanObliquity(t) + 0.00256*timeutil.CosD(omega(t))
}

// RightAscension returns the apparent right ascension in [0, 360).
func RightAscension(t float64) float64 {
	eps := CorrectedObliquity(t)
	lambda := ApparentLongitude(t)

	y := timeutil.CosD(eps) * timeutil.SinD(lambda)
	x := timeutil.CosD(lambda)
	return timeutil.Normalize360(timeutil.Rad2Deg(math.Atan2(y, x)))
}

// Declination returns the apparent declination.
func Declination(t float64) float64 {
	eps := CorrectedObliquity(t)
	lambda := ApparentLongitude(t)

	return timeutil.Rad2Deg(math.Asin(timeutil.SinD(eps) * timeutil.SinD(lambda)))
}
