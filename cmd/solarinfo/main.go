package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"math"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/thurmanmarka/solarinfo"
	"github.com/thurmanmarka/solarinfo/internal/log"
	"github.com/thurmanmarka/solarinfo/internal/timeutil"
)

func main() {
	if err := log.Init(os.Getenv("SOLARINFO_DEBUG") != ""); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer log.Sync()

	// - If no args or first arg starts with "-", print the day's report.
	// - Otherwise treat the first arg as a subcommand.
	if len(os.Args) < 2 || strings.HasPrefix(os.Args[1], "-") {
		runReport(os.Args[1:])
		return
	}

	switch os.Args[1] {
	case "twilight":
		runTwilight(os.Args[2:])
	case "almanac":
		runAlmanac(os.Args[2:])
	case "schedule":
		runSchedule(os.Args[2:])
	default:
		fmt.Fprintf(os.Stderr, "unknown subcommand %q\n\n", os.Args[1])
		usage()
		os.Exit(1)
	}
}

func usage() {
	fmt.Fprintf(os.Stderr, `solarinfo: NOAA sunrise, sunset and solar noon

Usage:
  solarinfo [flags]              # one day's report (default mode)
  solarinfo twilight [flags]     # civil, nautical and astronomical twilight
  solarinfo almanac [flags]      # a table of days as CSV or SQLite
  solarinfo schedule [flags]     # run commands at solar events

Default mode flags:
  -lat float
        latitude in degrees (north positive)
  -lon float
        longitude in degrees (east positive, west negative)
  -date string
        date in YYYY-MM-DD (optional, defaults to today in local time)
  -utc-offset string
        UTC offset in hours (optional, defaults to the local offset on -date)
  -event string
        event: sunrise, sunset, noon or all (default "all")
  -json
        output result as JSON

Set SOLARINFO_DEBUG=1 for debug logging. Run a subcommand with -h for its
flags.
`)
}

// place holds the flags every mode shares.
type place struct {
	lat, lon *float64
	date     *string
	offset   *string
}

func placeFlags(fs *flag.FlagSet) place {
	return place{
		lat:    fs.Float64("lat", 0, "latitude in degrees (north positive)"),
		lon:    fs.Float64("lon", 0, "longitude in degrees (east positive, west negative)"),
		date:   fs.String("date", "", "date in YYYY-MM-DD (optional, defaults to today in local time)"),
		offset: fs.String("utc-offset", "", "UTC offset in hours (optional, defaults to the local offset on -date)"),
	}
}

// resolve returns the date and UTC offset the flags select.
func (p place) resolve() (time.Time, float64) {
	if *p.lat == 0 && *p.lon == 0 {
		log.Warnw("lat=0 lon=0 (Gulf of Guinea). Use -lat and -lon to set a real location.")
	}

	date, err := parseDate(*p.date)
	if err != nil {
		log.Fatalf("invalid -date %q: %v", *p.date, err)
	}
	offset, err := parseOffset(*p.offset, date)
	if err != nil {
		log.Fatalf("invalid -utc-offset %q: %v", *p.offset, err)
	}
	return date, offset
}

func parseDate(s string) (time.Time, error) {
	if s == "" {
		now := time.Now()
		return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.Local), nil
	}
	return time.ParseInLocation(time.DateOnly, s, time.Local)
}

// parseOffset parses hours such as "-4" or "5.5". An empty string selects
// the local zone's offset at date.
func parseOffset(s string, date time.Time) (float64, error) {
	if s == "" {
		_, secs := date.Zone()
		return float64(secs) / 3600, nil
	}
	h, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, err
	}
	if math.IsNaN(h) || h < -14 || h > 14 {
		return 0, fmt.Errorf("offset %v outside [-14, 14]", h)
	}
	return h, nil
}

// ---------------------
// Report (default) mode
// ---------------------

func runReport(args []string) {
	fs := flag.NewFlagSet("solarinfo", flag.ExitOnError)

	p := placeFlags(fs)
	event := fs.String("event", "all", "event: sunrise, sunset, noon or all")
	jsonOut := fs.Bool("json", false, "output result as JSON")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `Usage: solarinfo [flags]

Flags:
`)
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		log.Fatalf("failed to parse flags: %v", err)
	}

	var only []solarinfo.Event
	if e := strings.ToLower(*event); e != "all" && e != "both" {
		ev, err := solarinfo.ParseEvent(e)
		if err != nil {
			log.Fatalf("invalid -event: %v", err)
		}
		only = []solarinfo.Event{ev}
	} else {
		only = []solarinfo.Event{solarinfo.Sunrise, solarinfo.Sunset, solarinfo.SolarNoon}
	}

	date, offset := p.resolve()

	info, err := solarinfo.ForDate(*p.lat, *p.lon, date, offset)
	if err != nil {
		log.Fatalf("error computing solar ephemeris: %v", err)
	}
	log.Debugw("computed", "date", date.Format(time.DateOnly), "utc_offset", offset, "zone", info.Location.String())

	if *jsonOut {
		printJSON(*p.lat, *p.lon, date, only, info)
	} else {
		printHuman(*p.lat, *p.lon, date, only, info)
	}
}

func weekday(date time.Time) time.Weekday {
	return timeutil.Weekday(timeutil.JulianDay(date.Date()))
}

func printHuman(lat, lon float64, date time.Time, events []solarinfo.Event, info solarinfo.SolarInfo) {
	fmt.Printf("Sun for lat=%.6f lon=%.6f\n", lat, lon)
	fmt.Printf("Date: %s, %s (%s)\n\n", date.Format(time.DateOnly), weekday(date), info.Location)

	label := map[solarinfo.Event]string{
		solarinfo.Sunrise:   "Sunrise:   ",
		solarinfo.Sunset:    "Sunset:    ",
		solarinfo.SolarNoon: "Solar noon:",
	}

	for _, e := range events {
		at, ok := info.At(e)
		if !ok {
			fmt.Printf("%s none\n", label[e])
			continue
		}
		note := ""
		if (e == solarinfo.Sunrise && info.SunriseSearched) || (e == solarinfo.Sunset && info.SunsetSearched) {
			note = " (nearest, polar search)"
		}
		fmt.Printf("%s %s%s\n", label[e], at.Format(time.RFC3339), note)
	}

	fmt.Printf("\nDeclination:      %+.4f°\n", info.Declination)
	fmt.Printf("Equation of time: %+.2f min\n", info.EquationOfTime.Minutes())
	fmt.Printf("Day length:       %s\n", info.DayLength().Round(time.Second))
}

type jsonOutput struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Date      string  `json:"date"` // YYYY-MM-DD
	Weekday   string  `json:"weekday"`
	Timezone  string  `json:"timezone"`

	Sunrise   *time.Time `json:"sunrise,omitempty"`
	Sunset    *time.Time `json:"sunset,omitempty"`
	SolarNoon *time.Time `json:"solar_noon,omitempty"`

	SunriseSearched bool `json:"sunrise_searched,omitempty"`
	SunsetSearched  bool `json:"sunset_searched,omitempty"`

	Declination    float64 `json:"declination"`
	EquationOfTime float64 `json:"equation_of_time_minutes"`
	DayLength      float64 `json:"day_length_hours"`
}

func printJSON(lat, lon float64, date time.Time, events []solarinfo.Event, info solarinfo.SolarInfo) {
	out := jsonOutput{
		Latitude:        lat,
		Longitude:       lon,
		Date:            date.Format(time.DateOnly),
		Weekday:         weekday(date).String(),
		Timezone:        info.Location.String(),
		SunriseSearched: info.SunriseSearched,
		SunsetSearched:  info.SunsetSearched,
		Declination:     info.Declination,
		EquationOfTime:  info.EquationOfTime.Minutes(),
		DayLength:       info.DayLength().Hours(),
	}

	for _, e := range events {
		at, ok := info.At(e)
		if !ok {
			continue
		}
		switch e {
		case solarinfo.Sunrise:
			out.Sunrise = &at
		case solarinfo.Sunset:
			out.Sunset = &at
		case solarinfo.SolarNoon:
			out.SolarNoon = &at
		}
	}

	writeJSON(out)
}

func writeJSON(v any) {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		log.Fatalf("failed to encode JSON: %v", err)
	}
}
