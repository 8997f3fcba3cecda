package solarinfo_test

import (
	"math"
	"testing"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/thurmanmarka/solarinfo"
)

func TestEventScheduleNext(t *testing.T) {
	edt := time.FixedZone("EDT", -4*3600)
	at := func(day, hour, min int) time.Time {
		return time.Date(2019, time.June, day, hour, min, 0, 0, edt)
	}

	tests := []struct {
		name   string
		event  solarinfo.Event
		offset time.Duration
		now    time.Time
		want   time.Time
	}{
		{"before sunset", solarinfo.Sunset, -30 * time.Minute, at(21, 12, 0), at(21, 20, 7)},
		{"after sunset", solarinfo.Sunset, -30 * time.Minute, at(21, 21, 0), at(22, 20, 7)},
		{"next sunrise", solarinfo.Sunrise, 0, at(21, 12, 0), at(22, 5, 43)},
		{"noon", solarinfo.SolarNoon, 0, at(21, 9, 0), at(21, 13, 10)},
		{"offset pulls tomorrow in", solarinfo.Sunrise, -12 * time.Hour, at(21, 12, 0), at(21, 17, 43)},
		{"offset pushes yesterday out", solarinfo.Sunrise, 20 * time.Hour, at(21, 0, 30), at(21, 1, 43)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := solarinfo.EventSchedule{
				Latitude:  dcLat,
				Longitude: dcLon,
				UTCOffset: -4,
				Event:     tt.event,
				Offset:    tt.offset,
			}
			got := s.Next(tt.now)
			if !got.After(tt.now) {
				t.Fatalf("Next(%s) = %s, not after now", tt.now, got)
			}
			if !within(got, tt.want, 2*time.Minute) {
				t.Errorf("Next(%s) = %s, want %s ±2m", tt.now, got.In(edt), tt.want)
			}
		})
	}
}

func TestEventScheduleDaily(t *testing.T) {
	s := solarinfo.EventSchedule{Latitude: dcLat, Longitude: dcLon, UTCOffset: -4, Event: solarinfo.Sunset}

	prev := s.Next(time.Date(2019, time.March, 1, 0, 0, 0, 0, time.UTC))
	for i := 0; i < 30; i++ {
		next := s.Next(prev)
		gap := next.Sub(prev)
		if gap < 23*time.Hour || gap > 25*time.Hour {
			t.Fatalf("gap between %s and %s is %s", prev, next, gap)
		}
		prev = next
	}
}

func TestEventSchedulePolar(t *testing.T) {
	s := solarinfo.EventSchedule{Latitude: 78.22, Longitude: 15.63, UTCOffset: 2, Event: solarinfo.Sunset}
	now := time.Date(2019, time.June, 21, 12, 0, 0, 0, time.UTC)

	got := s.Next(now)
	if got.IsZero() {
		t.Fatal("Next() = zero time during polar day")
	}
	if got.Month() != time.August {
		t.Errorf("Next() = %s, want the first sunset in August", got)
	}
}

// Starting inside the midnight-sun window just below the polar circle, the
// schedule waits for the first sunset after it.
func TestEventScheduleBelowPolarCircle(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	s := solarinfo.EventSchedule{
		Latitude:  66.0,
		Longitude: 25,
		UTCOffset: 3,
		Event:     solarinfo.Sunset,
		Logger:    zap.New(core),
	}
	now := time.Date(2019, time.June, 16, 12, 0, 0, 0, time.UTC)

	got := s.Next(now)
	if got.IsZero() {
		t.Fatal("Next() = zero time inside the midnight-sun window")
	}
	if !got.After(now) || got.Sub(now) > 30*24*time.Hour {
		t.Errorf("Next() = %s, want within 30 days after %s", got, now)
	}

	info, err := solarinfo.ForDate(s.Latitude, s.Longitude, got, s.UTCOffset)
	if err != nil {
		t.Fatal(err)
	}
	if !info.HasSunset || info.SunsetSearched || !info.Sunset.Equal(got) {
		t.Errorf("Next() = %s is not that date's sunset (%s, has=%v)", got, info.Sunset, info.HasSunset)
	}
	if n := logs.FilterLevelExact(zapcore.ErrorLevel).Len(); n != 0 {
		t.Errorf("got %d error logs, want none", n)
	}
	t.Logf("first sunset after the window: %s", got)
}

func TestEventScheduleLogsFailure(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	s := solarinfo.EventSchedule{
		Latitude: math.NaN(),
		Event:    solarinfo.Sunrise,
		Logger:   zap.New(core),
	}

	if got := s.Next(time.Now()); !got.IsZero() {
		t.Errorf("Next() = %s, want zero time", got)
	}

	// Every date fails, and each failure is logged before moving on.
	entries := logs.FilterMessage("solar event lookup failed").All()
	if len(entries) < 2 {
		t.Fatalf("got %d failure logs, want one per date tried", len(entries))
	}
	if entries[0].Level != zapcore.ErrorLevel {
		t.Errorf("level = %s, want error", entries[0].Level)
	}
	if ev, ok := entries[0].ContextMap()["event"]; !ok || ev != "sunrise" {
		t.Errorf("event field = %v, want sunrise", ev)
	}
	if entries[0].ContextMap()["date"] == entries[1].ContextMap()["date"] {
		t.Errorf("consecutive failures for the same date %v", entries[0].ContextMap()["date"])
	}
	if n := logs.FilterMessage("no solar event within horizon").Len(); n != 1 {
		t.Errorf("got %d horizon warnings, want 1", n)
	}
}
