package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/thurmanmarka/solarinfo"
	"github.com/thurmanmarka/solarinfo/internal/log"
)

var twilightKinds = []solarinfo.TwilightKind{
	solarinfo.TwilightCivil,
	solarinfo.TwilightNautical,
	solarinfo.TwilightAstronomical,
}

func runTwilight(args []string) {
	fs := flag.NewFlagSet("twilight", flag.ExitOnError)

	p := placeFlags(fs)
	kindS := fs.String("kind", "all", "twilight kind: civil, nautical, astronomical or all")
	jsonOut := fs.Bool("json", false, "output result as JSON")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `Usage: solarinfo twilight [flags]

Flags:
`)
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		log.Fatalf("failed to parse flags: %v", err)
	}

	kinds := twilightKinds
	if strings.ToLower(*kindS) != "all" {
		k, err := solarinfo.ParseTwilightKind(*kindS)
		if err != nil {
			log.Fatalf("invalid -kind: %v", err)
		}
		kinds = []solarinfo.TwilightKind{k}
	}

	date, offset := p.resolve()

	type jsonTwilight struct {
		Kind string     `json:"kind"`
		Dawn *time.Time `json:"dawn,omitempty"`
		Dusk *time.Time `json:"dusk,omitempty"`
	}
	var out []jsonTwilight

	if !*jsonOut {
		fmt.Printf("Twilight for lat=%.6f lon=%.6f\n", *p.lat, *p.lon)
		fmt.Printf("Date: %s, %s\n\n", date.Format(time.DateOnly), weekday(date))
	}

	for _, k := range kinds {
		tw, err := solarinfo.TwilightFor(*p.lat, *p.lon, date, offset, k)
		if err != nil && !errors.Is(err, solarinfo.ErrNoEvent) {
			log.Fatalf("error computing %s twilight: %v", k, err)
		}

		if *jsonOut {
			jt := jsonTwilight{Kind: k.String()}
			if tw.HasDawn {
				jt.Dawn = &tw.Dawn
			}
			if tw.HasDusk {
				jt.Dusk = &tw.Dusk
			}
			out = append(out, jt)
			continue
		}

		fmt.Printf("%-13s dawn %s  dusk %s\n", strings.ToUpper(k.String()[:1])+k.String()[1:]+":",
			clock(tw.Dawn, tw.HasDawn), clock(tw.Dusk, tw.HasDusk))
	}

	if *jsonOut {
		writeJSON(out)
	}
}

func clock(t time.Time, ok bool) string {
	if !ok {
		return "none "
	}
	return t.Format("15:04")
}
