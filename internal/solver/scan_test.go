package solver

import (
	"errors"
	"testing"
)

func TestScanDays(t *testing.T) {
	// Events only on days 100..110.
	f := func(jd float64) (float64, bool) {
		if jd >= 100 && jd <= 110 {
			return jd * 2, true
		}
		return 0, false
	}

	tests := []struct {
		name      string
		start     float64
		dir       Direction
		wantJD    float64
		wantSteps int
	}{
		{"already there", 105, Forward, 105, 0},
		{"forward", 90, Forward, 100, 10},
		{"backward", 130, Backward, 110, 20},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := ScanDays(f, tt.start, tt.dir, 400)
			if err != nil {
				t.Fatalf("ScanDays() error = %v", err)
			}
			if res.JD != tt.wantJD || res.Steps != tt.wantSteps {
				t.Errorf("ScanDays() = %+v, want JD %v after %d steps", res, tt.wantJD, tt.wantSteps)
			}
			if res.Value != tt.wantJD*2 {
				t.Errorf("Value = %v, want %v", res.Value, tt.wantJD*2)
			}
		})
	}
}

func TestScanDaysExhausted(t *testing.T) {
	calls := 0
	never := func(float64) (float64, bool) {
		calls++
		return 0, false
	}

	_, err := ScanDays(never, 0, Forward, 400)
	if !errors.Is(err, ErrExhausted) {
		t.Fatalf("ScanDays() error = %v, want ErrExhausted", err)
	}
	if calls != 401 {
		t.Errorf("f called %d times, want 401", calls)
	}

	// The limit is exact: an event 400 days out is still found.
	f := func(jd float64) (float64, bool) { return 0, jd == -400 }
	if _, err := ScanDays(f, 0, Backward, 400); err != nil {
		t.Errorf("event at the limit: error = %v", err)
	}
}

func TestScanDaysInvalidDirection(t *testing.T) {
	f := func(float64) (float64, bool) { return 0, true }
	if _, err := ScanDays(f, 0, Direction(0), 10); err == nil {
		t.Error("ScanDays() with zero direction: expected error")
	}
}
