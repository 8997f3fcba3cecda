package main

import (
	"encoding/csv"
	"flag"
	"fmt"
	"math"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/nathan-osman/go-sunrise"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/thurmanmarka/solarinfo"
	"github.com/thurmanmarka/solarinfo/internal/log"
)

// reference is one day of expected event times.
type reference struct {
	row  int // 1-based CSV row, 0 when generated
	date time.Time
	rise time.Time
	set  time.Time
}

// errorSet collects error samples in minutes.
type errorSet struct {
	values []float64
}

func (s *errorSet) add(v float64) {
	if math.IsNaN(v) {
		return
	}
	s.values = append(s.values, v)
}

type summary struct {
	count                       int
	min, max, mean, stddev, p95 float64
}

func (s *errorSet) summarize() summary {
	if len(s.values) == 0 {
		return summary{}
	}
	sorted := append([]float64(nil), s.values...)
	sort.Float64s(sorted)

	sum := summary{
		count: len(sorted),
		min:   floats.Min(sorted),
		max:   floats.Max(sorted),
		mean:  stat.Mean(sorted, nil),
		p95:   stat.Quantile(0.95, stat.Empirical, sorted, nil),
	}
	if len(sorted) > 1 {
		sum.stddev = stat.StdDev(sorted, nil)
	}
	return sum
}

func diffMinutes(a, b time.Time) float64 {
	// If either time is zero, treat as "no data".
	if a.IsZero() || b.IsZero() {
		return math.NaN()
	}
	return math.Abs(a.Sub(b).Minutes())
}

func diffMinutesSigned(a, b time.Time) float64 {
	if a.IsZero() || b.IsZero() {
		return math.NaN()
	}
	return a.Sub(b).Minutes() // can be negative or positive
}

// CSV format:
//
// date,rise,set
// 2025-01-01,07:32,17:12
// 2025-01-02,07:32,17:13
//
// - date is YYYY-MM-DD
// - rise/set are local times in HH:MM (24-hour clock)
// - All times are at the fixed offset given by -utc-offset.
//
// With -ref gosunrise the reference is github.com/nathan-osman/go-sunrise
// for every day of -year instead.
func main() {
	var (
		lat      = flag.Float64("lat", 0, "latitude in degrees (north positive)")
		lon      = flag.Float64("lon", 0, "longitude in degrees (east positive, west negative)")
		offset   = flag.Float64("utc-offset", 0, "UTC offset in hours of the reference times")
		ref      = flag.String("ref", "", `reference ephemeris: path to a CSV file (date,rise,set) or "gosunrise"`)
		year     = flag.Int("year", 0, "year to generate with -ref gosunrise, or to sanity check CSV dates against")
		verbose  = flag.Bool("verbose", false, "print per-day errors instead of only summary")
		twilight = flag.String("twilight", "", "compare dawn/dusk of this twilight kind: civil, nautical, astronomical")
		outCSV   = flag.String("outcsv", "", "optional path to write per-row error CSV")
	)

	flag.Parse()

	if err := log.Init(false); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer log.Sync()

	if *ref == "" {
		log.Fatalf("missing -ref (path to reference CSV, or gosunrise)")
	}

	zone := time.FixedZone(fmt.Sprintf("UTC%+g", *offset), int(math.Round(*offset*3600)))

	useTwilight := *twilight != ""
	var twilightKind solarinfo.TwilightKind
	modeDesc := "SUNRISE/SUNSET"
	if useTwilight {
		var err error
		if twilightKind, err = solarinfo.ParseTwilightKind(*twilight); err != nil {
			log.Fatalf("%v", err)
		}
		modeDesc = strings.ToUpper(twilightKind.String()) + " TWILIGHT"
	}

	if *lat == 0 && *lon == 0 {
		log.Warnw("lat=0 lon=0 (Gulf of Guinea). Did you mean to set -lat/-lon?")
	}

	var (
		refs []reference
		err  error
	)
	if strings.EqualFold(*ref, "gosunrise") {
		if useTwilight {
			log.Fatalf("-twilight needs a CSV reference")
		}
		if *year == 0 {
			*year = time.Now().Year()
		}
		refs = goSunriseReference(*lat, *lon, *year, zone)
	} else {
		refs, err = readReference(*ref, zone, *year)
		if err != nil {
			log.Fatalf("%v", err)
		}
	}

	var outWriter *csv.Writer
	if *outCSV != "" {
		outFile, err := os.Create(*outCSV)
		if err != nil {
			log.Fatalf("failed to create outcsv %q: %v", *outCSV, err)
		}
		defer outFile.Close()

		outWriter = csv.NewWriter(outFile)
		defer outWriter.Flush()

		if err := outWriter.Write([]string{
			"date",
			"mode",
			"rise_err",
			"set_err",
			"rise_signed",
			"set_signed",
			"rise_searched",
			"set_searched",
		}); err != nil {
			log.Fatalf("failed to write outcsv header: %v", err)
		}
	}

	var (
		riseErr, setErr       errorSet
		riseSigned, setSigned errorSet
		skipped               int
	)

	for _, r := range refs {
		var gotRise, gotSet time.Time
		var riseSearched, setSearched bool

		if useTwilight {
			// In twilight mode, interpret CSV "rise" as dawn and "set" as dusk.
			tw, err := solarinfo.TwilightFor(*lat, *lon, r.date, *offset, twilightKind)
			if err != nil {
				log.Warnw("skipping row", "row", r.row, "date", r.date.Format(time.DateOnly), "error", err)
				skipped++
				continue
			}
			if tw.HasDawn {
				gotRise = tw.Dawn
			}
			if tw.HasDusk {
				gotSet = tw.Dusk
			}
		} else {
			info, err := solarinfo.ForDate(*lat, *lon, r.date, *offset)
			if err != nil {
				log.Warnw("skipping row", "row", r.row, "date", r.date.Format(time.DateOnly), "error", err)
				skipped++
				continue
			}
			gotRise, gotSet = info.Sunrise, info.Sunset
			riseSearched, setSearched = info.SunriseSearched, info.SunsetSearched
		}

		re := diffMinutes(gotRise, r.rise)
		se := diffMinutes(gotSet, r.set)
		rs := diffMinutesSigned(gotRise, r.rise)
		ss := diffMinutesSigned(gotSet, r.set)

		riseErr.add(re)
		setErr.add(se)
		riseSigned.add(rs)
		setSigned.add(ss)

		if *verbose {
			fmt.Printf("%s %s: rise err=%.2f min (got=%s ref=%s), set err=%.2f min (got=%s ref=%s)\n",
				r.date.Format(time.DateOnly), modeDesc,
				re, hhmm(gotRise, zone), hhmm(r.rise, zone),
				se, hhmm(gotSet, zone), hhmm(r.set, zone))
		}

		if outWriter != nil {
			rec := []string{
				r.date.Format(time.DateOnly),
				modeDesc,
				fmt.Sprintf("%.6f", re),
				fmt.Sprintf("%.6f", se),
				fmt.Sprintf("%.6f", rs),
				fmt.Sprintf("%.6f", ss),
				fmt.Sprint(riseSearched),
				fmt.Sprint(setSearched),
			}
			if err := outWriter.Write(rec); err != nil {
				log.Errorw("failed to write outcsv row", "date", r.date.Format(time.DateOnly), "error", err)
			}
		}
	}

	fmt.Println("=== solarinfo profiler summary ===")
	fmt.Printf("Mode:    %s\n", modeDesc)
	fmt.Printf("Ref:     %s\n", *ref)
	fmt.Printf("Lat/Lon: %.4f / %.4f\n", *lat, *lon)
	fmt.Printf("Zone:    %s\n", zone)
	fmt.Printf("Rows:    %d (processed), %d skipped\n", len(refs)-skipped, skipped)

	if len(riseErr.values) == 0 && len(setErr.values) == 0 {
		fmt.Println("No valid rows to compute stats.")
		return
	}

	printStats("Rise error (minutes)", riseErr.summarize())
	printStats("Set error (minutes)", setErr.summarize())
	printStats("Rise signed error (minutes, our - ref)", riseSigned.summarize())
	printStats("Set signed error (minutes, our - ref)", setSigned.summarize())
}

func printStats(title string, s summary) {
	fmt.Printf("\n%s:\n", title)
	fmt.Printf("  count:  %d\n", s.count)
	if s.count == 0 {
		return
	}
	fmt.Printf("  min:    %.3f\n", s.min)
	fmt.Printf("  max:    %.3f\n", s.max)
	fmt.Printf("  mean:   %.3f\n", s.mean)
	fmt.Printf("  stddev: %.3f\n", s.stddev)
	fmt.Printf("  p95:    %.3f\n", s.p95)
}

func hhmm(t time.Time, zone *time.Location) string {
	if t.IsZero() {
		return "--:--"
	}
	return t.In(zone).Format("15:04")
}

// goSunriseReference returns go-sunrise's times for every day of year.
// Days on which go-sunrise reports no event are left out.
func goSunriseReference(lat, lon float64, year int, zone *time.Location) []reference {
	var refs []reference
	for d := time.Date(year, time.January, 1, 0, 0, 0, 0, zone); d.Year() == year; d = d.AddDate(0, 0, 1) {
		rise, set := sunrise.SunriseSunset(lat, lon, d.Year(), d.Month(), d.Day())
		if rise.IsZero() || set.IsZero() {
			continue
		}
		refs = append(refs, reference{date: d, rise: rise, set: set})
	}
	return refs
}

func readReference(path string, zone *time.Location, year int) ([]reference, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open reference CSV %q: %w", path, err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1 // allow variable, we validate

	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV: %w", err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("empty CSV file %q", path)
	}

	// If first row looks like a header, skip it.
	startIdx := 0
	if len(records[0]) >= 1 && strings.EqualFold(strings.TrimSpace(records[0][0]), "date") {
		startIdx = 1
	}

	var refs []reference
	for i := startIdx; i < len(records); i++ {
		row := records[i]
		if len(row) < 3 {
			log.Warnw("expected at least 3 columns (date,rise,set), skipping", "row", i+1, "columns", len(row))
			continue
		}
		dateStr := strings.TrimSpace(row[0])

		date, err := time.ParseInLocation(time.DateOnly, dateStr, zone)
		if err != nil {
			log.Warnw("invalid date, skipping", "row", i+1, "date", dateStr, "error", err)
			continue
		}
		if year != 0 && date.Year() != year {
			// Just warn; don't skip.
			log.Warnw("date outside -year", "row", i+1, "date", dateStr, "year", year)
		}

		rise, err := parseLocalTime(date, strings.TrimSpace(row[1]), zone)
		if err != nil {
			log.Warnw("invalid rise time, skipping", "row", i+1, "rise", row[1], "error", err)
			continue
		}
		set, err := parseLocalTime(date, strings.TrimSpace(row[2]), zone)
		if err != nil {
			log.Warnw("invalid set time, skipping", "row", i+1, "set", row[2], "error", err)
			continue
		}

		refs = append(refs, reference{row: i + 1, date: date, rise: rise, set: set})
	}
	return refs, nil
}

// parseLocalTime combines date with a clock time of HH:MM or HH:MM:SS.
// An empty field or "--:--" means no event that day.
func parseLocalTime(date time.Time, clock string, zone *time.Location) (time.Time, error) {
	if clock == "" || clock == "--:--" {
		return time.Time{}, nil
	}

	layout := "15:04"
	if strings.Count(clock, ":") == 2 {
		layout = "15:04:05"
	}

	parsed, err := time.ParseInLocation(layout, clock, zone)
	if err != nil {
		return time.Time{}, err
	}
	return time.Date(date.Year(), date.Month(), date.Day(),
		parsed.Hour(), parsed.Minute(), parsed.Second(), 0, zone), nil
}
