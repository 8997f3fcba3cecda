// Package log holds the process-wide zap logger used by the solarinfo
// commands.
package log

import (
	"fmt"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	base  *zap.Logger
	sugar *zap.SugaredLogger
)

// Init builds the package logger. Debug selects zap's development config
// (console output, debug level); otherwise production JSON at info level.
func Init(debug bool) error {
	var (
		l   *zap.Logger
		err error
	)
	if debug {
		l, err = zap.NewDevelopment(zap.AddCallerSkip(1))
	} else {
		cfg := zap.NewProductionConfig()
		cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
		l, err = cfg.Build(zap.AddCallerSkip(1))
	}
	if err != nil {
		return fmt.Errorf("can't initialize zap logger: %w", err)
	}
	set(l)
	return nil
}

// Use replaces the package logger, e.g. with an observer in tests.
func Use(l *zap.Logger) {
	set(l.WithOptions(zap.AddCallerSkip(1)))
}

func set(l *zap.Logger) {
	base = l
	sugar = l.Sugar()
}

func ensure() {
	if base == nil {
		l, _ := zap.NewProduction(zap.AddCallerSkip(1))
		set(l)
	}
}

// Named returns a child of the package logger without the caller skip used
// by the helpers below, for handing to library types such as
// solarinfo.EventSchedule.
func Named(name string) *zap.Logger {
	ensure()
	return base.WithOptions(zap.AddCallerSkip(-1)).Named(name)
}

// GetSugaredLogger returns the sugared package logger.
func GetSugaredLogger() *zap.SugaredLogger {
	ensure()
	return sugar
}

// Sync flushes any buffered log entries.
func Sync() {
	if base != nil {
		_ = base.Sync()
	}
}

func Debugw(msg string, keysAndValues ...interface{}) {
	ensure()
	sugar.Debugw(msg, keysAndValues...)
}

func Infow(msg string, keysAndValues ...interface{}) {
	ensure()
	sugar.Infow(msg, keysAndValues...)
}

func Infof(template string, args ...interface{}) {
	ensure()
	sugar.Infof(template, args...)
}

func Warnw(msg string, keysAndValues ...interface{}) {
	ensure()
	sugar.Warnw(msg, keysAndValues...)
}

func Errorw(msg string, keysAndValues ...interface{}) {
	ensure()
	sugar.Errorw(msg, keysAndValues...)
}

func Errorf(template string, args ...interface{}) {
	ensure()
	sugar.Errorf(template, args...)
}

func Fatalf(template string, args ...interface{}) {
	ensure()
	sugar.Fatalf(template, args...)
	os.Exit(1)
}
