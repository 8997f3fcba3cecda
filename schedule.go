package solarinfo

import (
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// scheduleHorizon is how many days ahead EventSchedule looks for an event.
const scheduleHorizon = 400

var _ cron.Schedule = EventSchedule{}

// EventSchedule fires at a fixed offset from a daily solar event, e.g. 30
// minutes before sunset.
//
// This implements robfig/cron.Schedule
type EventSchedule struct {
	Latitude  float64
	Longitude float64
	UTCOffset float64 // hours

	Event  Event
	Offset time.Duration // added to the event time; negative fires early

	// Logger receives lookup failures. Nil discards them.
	Logger *zap.Logger
}

// Next returns the first event time plus Offset strictly after now. Dates
// whose lookup fails are logged and skipped. It returns the zero time,
// which cron treats as "never", if there is none within scheduleHorizon
// days.
//
// Near the poles consecutive dates can report the same searched event; such
// repeats are skipped.
func (s EventSchedule) Next(now time.Time) time.Time {
	logger := s.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	local := now.In(fixedZone(s.UTCOffset))
	// Start a day early: a large positive Offset can push yesterday's
	// event past now.
	start := time.Date(local.Year(), local.Month(), local.Day()-1, 0, 0, 0, 0, local.Location())

	for i := 0; i < scheduleHorizon; i++ {
		date := start.AddDate(0, 0, i)

		info, err := ForDate(s.Latitude, s.Longitude, date, s.UTCOffset)
		if err != nil {
			logger.Error("solar event lookup failed",
				zap.Stringer("event", s.Event),
				zap.String("date", date.Format("2006-01-02")),
				zap.Error(err))
			continue
		}

		at, ok := info.At(s.Event)
		if !ok {
			continue
		}

		at = at.Add(s.Offset)
		if at.After(now) {
			logger.Debug("next solar event",
				zap.Stringer("event", s.Event),
				zap.Duration("offset", s.Offset),
				zap.Time("at", at))
			return at
		}
	}

	logger.Warn("no solar event within horizon",
		zap.Stringer("event", s.Event),
		zap.Int("days", scheduleHorizon),
		zap.Time("from", now))
	return time.Time{}
}
