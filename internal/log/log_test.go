package log

import (
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestHelpersWriteToLogger(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	Use(zap.New(core))
	t.Cleanup(func() { base, sugar = nil, nil })

	Infow("scheduled", "job", "porch", "event", "sunset")
	Warnw("skipped", "job", "porch")
	Errorf("job %s failed", "porch")
	Named("schedule").Debug("next run")

	if got := logs.Len(); got != 4 {
		t.Fatalf("got %d entries, want 4", got)
	}

	entries := logs.All()
	if entries[0].Message != "scheduled" || entries[0].ContextMap()["event"] != "sunset" {
		t.Errorf("first entry = %+v", entries[0])
	}
	if entries[1].Level != zapcore.WarnLevel {
		t.Errorf("Warnw level = %s", entries[1].Level)
	}
	if entries[2].Message != "job porch failed" {
		t.Errorf("Errorf message = %q", entries[2].Message)
	}
	if entries[3].LoggerName != "schedule" {
		t.Errorf("Named logger name = %q", entries[3].LoggerName)
	}
}

func TestInit(t *testing.T) {
	t.Cleanup(func() { base, sugar = nil, nil })

	for _, debug := range []bool{true, false} {
		if err := Init(debug); err != nil {
			t.Fatalf("Init(%v) error = %v", debug, err)
		}
		if GetSugaredLogger() == nil {
			t.Fatalf("Init(%v) left no logger", debug)
		}
	}
}

func TestFallbackLogger(t *testing.T) {
	base, sugar = nil, nil
	t.Cleanup(func() { base, sugar = nil, nil })

	if GetSugaredLogger() == nil {
		t.Fatal("no fallback logger")
	}
}
