package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/thurmanmarka/solarinfo"
)

const sample = `
debug: true
location:
  latitude: 38.897079
  longitude: -77.036605
  utc_offset: -4
jobs:
  - name: porch-light
    event: sunset
    offset: -30m
    command: ["/usr/local/bin/lights", "on"]
  - name: porch-off
    schedule: "@sunrise 15m"
    command: ["/usr/local/bin/lights", "off"]
  - name: nightly-report
    schedule: "0 23 * * *"
    command: ["report"]
`

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "solarinfo.yaml")
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestOpen(t *testing.T) {
	cfg, err := Open(writeConfig(t, sample))
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate() error = %v", err)
	}

	if !cfg.Debug || cfg.Location.UTCOffset != -4 || cfg.Location.Latitude != 38.897079 {
		t.Errorf("decoded %+v", cfg)
	}
	if len(cfg.Jobs) != 3 {
		t.Fatalf("got %d jobs, want 3", len(cfg.Jobs))
	}
	if got := cfg.Jobs[0]; got.Name != "porch-light" || got.Event != "sunset" || got.Offset != "-30m" ||
		strings.Join(got.Command, " ") != "/usr/local/bin/lights on" {
		t.Errorf("job 0 = %+v", got)
	}
}

func TestOpenErrors(t *testing.T) {
	if _, err := Open(filepath.Join(t.TempDir(), "missing.yaml")); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("Open(missing) error = %v, want ErrNotExist", err)
	}
	if _, err := Open(writeConfig(t, "location:\n  lattitude: 10\n")); err == nil {
		t.Errorf("Open() accepted an unknown key")
	}
}

func TestScheduleFor(t *testing.T) {
	cfg, err := Parse([]byte(sample))
	if err != nil {
		t.Fatal(err)
	}

	s, err := cfg.ScheduleFor(cfg.Jobs[0], nil)
	if err != nil {
		t.Fatalf("ScheduleFor(porch-light) error = %v", err)
	}
	es, ok := s.(solarinfo.EventSchedule)
	if !ok {
		t.Fatalf("ScheduleFor(porch-light) = %T, want solarinfo.EventSchedule", s)
	}
	if es.Event != solarinfo.Sunset || es.Offset != -30*time.Minute || es.UTCOffset != -4 {
		t.Errorf("porch-light schedule = %+v", es)
	}

	s, err = cfg.ScheduleFor(cfg.Jobs[1], nil)
	if err != nil {
		t.Fatalf("ScheduleFor(porch-off) error = %v", err)
	}
	if es, ok := s.(solarinfo.EventSchedule); !ok || es.Event != solarinfo.Sunrise || es.Offset != 15*time.Minute {
		t.Errorf("porch-off schedule = %#v", s)
	}

	s, err = cfg.ScheduleFor(cfg.Jobs[2], nil)
	if err != nil {
		t.Fatalf("ScheduleFor(nightly-report) error = %v", err)
	}
	now := time.Date(2019, time.June, 21, 12, 0, 0, 0, time.Local)
	if next := s.Next(now); next.Hour() != 23 || next.Day() != 21 {
		t.Errorf("cron schedule Next = %s, want 23:00 the same day", next)
	}

	daily := Job{Name: "d", Schedule: "@daily", Command: []string{"x"}}
	if _, err := cfg.ScheduleFor(daily, nil); err != nil {
		t.Errorf("ScheduleFor(@daily) error = %v", err)
	}
}

func TestValidate(t *testing.T) {
	cfg := &Config{
		Location: Location{Latitude: 95, Longitude: 10, UTCOffset: 15},
		Jobs: []Job{
			{Name: "a", Event: "sunset", Offset: "soon", Command: []string{"x"}},
			{Name: "a", Event: "moonrise", Command: []string{"x"}},
			{Event: "sunrise"},
			{Name: "b", Event: "sunrise", Schedule: "@sunset", Command: []string{"x"}},
			{Name: "c", Command: []string{"x"}},
			{Name: "d", Schedule: "61 * * * *", Command: []string{"x"}},
		},
	}

	err := cfg.Validate()
	if err == nil {
		t.Fatal("Validate() = nil, want errors")
	}
	if !errors.Is(err, solarinfo.ErrUnknownEvent) {
		t.Errorf("Validate() does not wrap ErrUnknownEvent: %v", err)
	}

	msg := err.Error()
	for _, want := range []string{
		"latitude 95",
		"utc_offset 15",
		`job "a": parse offset`,
		`job "a": duplicate name`,
		"job 2: missing name",
		"job 2: missing command",
		`job "b": event and schedule are mutually exclusive`,
		`job "c": one of event or schedule is required`,
		`job "d": parse schedule`,
	} {
		if !strings.Contains(msg, want) {
			t.Errorf("Validate() error missing %q:\n%s", want, msg)
		}
	}
}

func TestValidateNoJobs(t *testing.T) {
	cfg := &Config{}
	if err := cfg.Validate(); err == nil || !strings.Contains(err.Error(), "no jobs defined") {
		t.Errorf("Validate() = %v, want no jobs error", err)
	}
}
