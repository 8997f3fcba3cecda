package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/thurmanmarka/solarinfo/internal/almanac"
	"github.com/thurmanmarka/solarinfo/internal/log"
)

func runAlmanac(args []string) {
	fs := flag.NewFlagSet("almanac", flag.ExitOnError)

	lat := fs.Float64("lat", 0, "latitude in degrees (north positive)")
	lon := fs.Float64("lon", 0, "longitude in degrees (east positive, west negative)")
	offsetS := fs.String("utc-offset", "", "UTC offset in hours (optional, defaults to the local offset on -from)")
	fromS := fs.String("from", "", "first date in YYYY-MM-DD (default: January 1 of this year)")
	toS := fs.String("to", "", "last date in YYYY-MM-DD (default: December 31 of the -from year)")
	outPath := fs.String("out", "-", "CSV output file, - for stdout, empty to skip")
	dbPath := fs.String("db", "", "SQLite database to store rows in (optional)")
	summary := fs.Bool("summary", false, "print a summary to stderr")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `Usage: solarinfo almanac [flags]

Flags:
`)
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		log.Fatalf("failed to parse flags: %v", err)
	}

	from := time.Date(time.Now().Year(), time.January, 1, 0, 0, 0, 0, time.Local)
	if *fromS != "" {
		var err error
		if from, err = parseDate(*fromS); err != nil {
			log.Fatalf("invalid -from %q: %v", *fromS, err)
		}
	}
	to := time.Date(from.Year(), time.December, 31, 0, 0, 0, 0, time.Local)
	if *toS != "" {
		var err error
		if to, err = parseDate(*toS); err != nil {
			log.Fatalf("invalid -to %q: %v", *toS, err)
		}
	}
	offset, err := parseOffset(*offsetS, from)
	if err != nil {
		log.Fatalf("invalid -utc-offset %q: %v", *offsetS, err)
	}

	loc := almanac.Location{Latitude: *lat, Longitude: *lon, UTCOffset: offset}
	rows, err := almanac.Generate(loc, from, to)
	if err != nil {
		log.Fatalf("error generating almanac: %v", err)
	}
	log.Infow("almanac generated", "days", len(rows), "from", from.Format(time.DateOnly), "to", to.Format(time.DateOnly))

	if *outPath != "" {
		if err := writeCSV(*outPath, rows); err != nil {
			log.Fatalf("failed to write CSV: %v", err)
		}
	}

	if *dbPath != "" {
		ctx := context.Background()
		store, err := almanac.OpenStore(ctx, *dbPath)
		if err != nil {
			log.Fatalf("%v", err)
		}
		defer store.Close()

		if err := store.Save(ctx, loc, rows); err != nil {
			log.Fatalf("failed to store almanac: %v", err)
		}
		log.Infow("almanac stored", "db", *dbPath, "rows", len(rows))
	}

	if *summary {
		printSummary(os.Stderr, almanac.Summarize(rows))
	}
}

func writeCSV(path string, rows []almanac.Row) error {
	if path == "-" {
		return almanac.WriteCSV(os.Stdout, rows)
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := almanac.WriteCSV(f, rows); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func printSummary(w io.Writer, s almanac.Summary) {
	fmt.Fprintf(w, "Days:             %d\n", s.Days)
	fmt.Fprintf(w, "Mean day length:  %s (stddev %s)\n", s.MeanDayLength, s.StdDevDayLength)
	fmt.Fprintf(w, "Longest day:      %s (%s)\n", s.Longest.Date.Format(time.DateOnly), s.Longest.DayLength.Round(time.Second))
	fmt.Fprintf(w, "Shortest day:     %s (%s)\n", s.Shortest.Date.Format(time.DateOnly), s.Shortest.DayLength.Round(time.Second))
	fmt.Fprintf(w, "Equation of time: %s .. %s\n", s.MinEquationOfTime, s.MaxEquationOfTime)
	if s.PolarDays > 0 {
		fmt.Fprintf(w, "Polar days:       %d\n", s.PolarDays)
	}
}
