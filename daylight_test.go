package solarinfo_test

import (
	"math"
	"testing"
	"time"

	"github.com/thurmanmarka/solarinfo"
)

const (
	phoenixLat = 33.4484
	phoenixLon = -112.0740
)

func TestDaylightHours(t *testing.T) {
	tests := []struct {
		name         string
		lat, lon     float64
		date         time.Time
		wantMinHours float64 // minimum expected hours
		wantMaxHours float64 // maximum expected hours
	}{
		{
			name:         "Phoenix Summer Solstice",
			lat:          phoenixLat,
			lon:          phoenixLon,
			date:         date(2025, time.June, 21),
			wantMinHours: 14.0,
			wantMaxHours: 14.5,
		},
		{
			name:         "Phoenix Winter Solstice",
			lat:          phoenixLat,
			lon:          phoenixLon,
			date:         date(2025, time.December, 21),
			wantMinHours: 9.8,
			wantMaxHours: 10.2,
		},
		{
			name:         "Phoenix Spring Equinox",
			lat:          phoenixLat,
			lon:          phoenixLon,
			date:         date(2025, time.March, 20),
			wantMinHours: 11.9,
			wantMaxHours: 12.3,
		},
		{
			name:         "Equator",
			lat:          0,
			lon:          0,
			date:         date(2025, time.September, 1),
			wantMinHours: 12.0,
			wantMaxHours: 12.2,
		},
		{
			name:         "Polar Day",
			lat:          78.22,
			lon:          15.63,
			date:         date(2025, time.June, 21),
			wantMinHours: 24,
			wantMaxHours: 24,
		},
		{
			name:         "Midnight Sun Below Polar Circle",
			lat:          66.0,
			lon:          25.0,
			date:         date(2019, time.June, 21),
			wantMinHours: 24,
			wantMaxHours: 24,
		},
		{
			name:         "Polar Night",
			lat:          78.22,
			lon:          15.63,
			date:         date(2025, time.December, 21),
			wantMinHours: 0,
			wantMaxHours: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hours, err := solarinfo.DaylightHours(tt.lat, tt.lon, tt.date, -7)
			if err != nil {
				t.Fatalf("DaylightHours() error = %v", err)
			}

			if hours < tt.wantMinHours || hours > tt.wantMaxHours {
				t.Errorf("DaylightHours() = %.2f hours, want between %.2f and %.2f",
					hours, tt.wantMinHours, tt.wantMaxHours)
			}

			t.Logf("%s: %.2f hours of daylight", tt.name, hours)
		})
	}
}

func TestDaylightHoursIgnoresOffset(t *testing.T) {
	d := date(2025, time.June, 21)
	a, err := solarinfo.DaylightHours(phoenixLat, phoenixLon, d, -7)
	if err != nil {
		t.Fatal(err)
	}
	b, err := solarinfo.DaylightHours(phoenixLat, phoenixLon, d, 0)
	if err != nil {
		t.Fatal(err)
	}
	if math.Abs(a-b) > 1e-9 {
		t.Errorf("DaylightHours depends on the offset: %v vs %v", a, b)
	}
}
