// Package almanac tabulates the solar ephemeris over a range of dates and
// stores or exports the result.
package almanac

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"time"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/thurmanmarka/solarinfo"
)

// MaxDays bounds a single Generate call.
const MaxDays = 366 * 200

// ErrEmptyRange is returned when the end date precedes the start date.
var ErrEmptyRange = errors.New("almanac: end date before start date")

// Location is the observer an almanac is computed for.
type Location struct {
	Latitude  float64
	Longitude float64
	UTCOffset float64 // hours
}

// Row is one day of an almanac.
type Row struct {
	Date           time.Time // midnight, in the result's fixed zone
	Sunrise        time.Time
	Sunset         time.Time
	SolarNoon      time.Time
	Declination    float64 // degrees
	EquationOfTime time.Duration
	DayLength      time.Duration

	SunriseSearched bool
	SunsetSearched  bool
}

// Generate computes one Row per calendar date from from to to, inclusive.
// Only the calendar dates of from and to are used.
func Generate(loc Location, from, to time.Time) ([]Row, error) {
	start := civil(from)
	end := civil(to)
	if end.Before(start) {
		return nil, fmt.Errorf("%w: %s..%s", ErrEmptyRange, start.Format(time.DateOnly), end.Format(time.DateOnly))
	}

	days := int(end.Sub(start).Hours()/24) + 1
	if days > MaxDays {
		return nil, fmt.Errorf("almanac: %d days requested, limit is %d", days, MaxDays)
	}

	rows := make([]Row, 0, days)
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		info, err := solarinfo.ForDate(loc.Latitude, loc.Longitude, d, loc.UTCOffset)
		if err != nil {
			return nil, err
		}
		rows = append(rows, rowOf(info))
	}
	return rows, nil
}

func rowOf(info solarinfo.SolarInfo) Row {
	r := Row{
		Date:            info.Date,
		Sunrise:         info.Sunrise,
		Sunset:          info.Sunset,
		Declination:     info.Declination,
		EquationOfTime:  info.EquationOfTime,
		DayLength:       info.DayLength(),
		SunriseSearched: info.SunriseSearched,
		SunsetSearched:  info.SunsetSearched,
	}
	if noon, ok := info.At(solarinfo.SolarNoon); ok {
		r.SolarNoon = noon
	}
	return r
}

// civil returns UTC midnight of t's calendar date.
func civil(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

var csvHeader = []string{
	"date",
	"sunrise",
	"sunset",
	"solar_noon",
	"declination_deg",
	"equation_of_time_min",
	"day_length_hours",
	"sunrise_searched",
	"sunset_searched",
}

// WriteCSV writes rows with a header line. Timestamps are RFC 3339.
func WriteCSV(w io.Writer, rows []Row) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return err
	}

	for _, r := range rows {
		rec := []string{
			r.Date.Format(time.DateOnly),
			formatTime(r.Sunrise),
			formatTime(r.Sunset),
			formatTime(r.SolarNoon),
			strconv.FormatFloat(r.Declination, 'f', 4, 64),
			strconv.FormatFloat(r.EquationOfTime.Minutes(), 'f', 2, 64),
			strconv.FormatFloat(r.DayLength.Hours(), 'f', 3, 64),
			strconv.FormatBool(r.SunriseSearched),
			strconv.FormatBool(r.SunsetSearched),
		}
		if err := cw.Write(rec); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(time.RFC3339)
}

// Summary describes day length and equation of time over an almanac.
type Summary struct {
	Days int

	MeanDayLength   time.Duration
	StdDevDayLength time.Duration
	Shortest        Row
	Longest         Row

	MinEquationOfTime time.Duration
	MaxEquationOfTime time.Duration

	// PolarDays counts rows whose sunrise or sunset came from the polar search.
	PolarDays int
}

// Summarize computes a Summary. It returns the zero Summary for no rows.
func Summarize(rows []Row) Summary {
	if len(rows) == 0 {
		return Summary{}
	}

	hours := make([]float64, len(rows))
	eot := make([]float64, len(rows))
	var polar int
	for i, r := range rows {
		hours[i] = r.DayLength.Hours()
		eot[i] = r.EquationOfTime.Minutes()
		if r.SunriseSearched || r.SunsetSearched {
			polar++
		}
	}

	s := Summary{
		Days:              len(rows),
		MeanDayLength:     fromHours(stat.Mean(hours, nil)),
		Shortest:          rows[floats.MinIdx(hours)],
		Longest:           rows[floats.MaxIdx(hours)],
		MinEquationOfTime: fromMinutes(floats.Min(eot)),
		MaxEquationOfTime: fromMinutes(floats.Max(eot)),
		PolarDays:         polar,
	}
	if len(rows) > 1 {
		s.StdDevDayLength = fromHours(stat.StdDev(hours, nil))
	}
	return s
}

func fromHours(h float64) time.Duration {
	return time.Duration(h * float64(time.Hour)).Round(time.Second)
}

func fromMinutes(m float64) time.Duration {
	return time.Duration(m * float64(time.Minute)).Round(time.Second)
}
