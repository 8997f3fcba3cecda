// Package config reads the YAML configuration of the solarinfo scheduler.
package config

import (
	"bytes"
	"fmt"
	"math"
	"os"
	"strings"
	"time"

	"cloudeng.io/errors"
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/thurmanmarka/solarinfo"
)

// Location is the observer the solar jobs are computed for.
type Location struct {
	Latitude  float64 `yaml:"latitude"`
	Longitude float64 `yaml:"longitude"`
	UTCOffset float64 `yaml:"utc_offset"` // hours
}

type Config struct {
	Debug    bool     `yaml:"debug"`
	Location Location `yaml:"location"`
	Jobs     []Job    `yaml:"jobs"`
}

// Job defines when to run and what to run.
//
// Either Event (with an optional Offset) or Schedule is set. Schedule
// accepts a standard five-field cron expression, or "@sunrise", "@sunset"
// or "@noon" followed by an optional offset such as "@sunset -30m".
type Job struct {
	Name     string   `yaml:"name"`
	Event    string   `yaml:"event,omitempty"`
	Offset   string   `yaml:"offset,omitempty"`
	Schedule string   `yaml:"schedule,omitempty"`
	Command  []string `yaml:"command"`
}

// Open reads and decodes filename. Unknown keys are rejected.
func Open(filename string) (*Config, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	cfg, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("decode config file %s: %w", filename, err)
	}
	return cfg, nil
}

// Parse decodes a YAML document.
func Parse(data []byte) (*Config, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	var cfg Config
	if err := dec.Decode(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate reports every problem in the configuration, not just the first.
func (c *Config) Validate() error {
	errs := errors.M{}

	loc := c.Location
	if math.IsNaN(loc.Latitude) || loc.Latitude < -90 || loc.Latitude > 90 {
		errs.Append(fmt.Errorf("location: latitude %v outside [-90, 90]", loc.Latitude))
	}
	if math.IsNaN(loc.Longitude) || loc.Longitude < -180 || loc.Longitude > 180 {
		errs.Append(fmt.Errorf("location: longitude %v outside [-180, 180]", loc.Longitude))
	}
	if math.IsNaN(loc.UTCOffset) || loc.UTCOffset < -14 || loc.UTCOffset > 14 {
		errs.Append(fmt.Errorf("location: utc_offset %v outside [-14, 14]", loc.UTCOffset))
	}

	if len(c.Jobs) == 0 {
		errs.Append(errors.New("no jobs defined"))
	}

	seen := make(map[string]bool, len(c.Jobs))
	for i, job := range c.Jobs {
		label := fmt.Sprintf("job %d", i)
		if job.Name == "" {
			errs.Append(fmt.Errorf("%s: missing name", label))
		} else {
			label = fmt.Sprintf("job %q", job.Name)
			if seen[job.Name] {
				errs.Append(fmt.Errorf("%s: duplicate name", label))
			}
			seen[job.Name] = true
		}

		if len(job.Command) == 0 {
			errs.Append(fmt.Errorf("%s: missing command", label))
		}

		switch {
		case job.Event != "" && job.Schedule != "":
			errs.Append(fmt.Errorf("%s: event and schedule are mutually exclusive", label))
		case job.Event == "" && job.Schedule == "":
			errs.Append(fmt.Errorf("%s: one of event or schedule is required", label))
		default:
			if _, err := c.ScheduleFor(job, nil); err != nil {
				errs.Append(fmt.Errorf("%s: %w", label, err))
			}
		}
	}

	return errs.Err()
}

// ScheduleFor builds the cron schedule of job. Solar schedules log through
// logger, which may be nil.
func (c *Config) ScheduleFor(job Job, logger *zap.Logger) (cron.Schedule, error) {
	event, offset := job.Event, job.Offset
	if job.Schedule != "" {
		if !strings.HasPrefix(job.Schedule, "@") || isCronDescriptor(job.Schedule) {
			s, err := cron.ParseStandard(job.Schedule)
			if err != nil {
				return nil, fmt.Errorf("parse schedule: %w", err)
			}
			return s, nil
		}

		fields := strings.Fields(strings.TrimPrefix(job.Schedule, "@"))
		if len(fields) == 0 || len(fields) > 2 {
			return nil, fmt.Errorf("parse schedule %q: want @event [offset]", job.Schedule)
		}
		event = fields[0]
		if len(fields) == 2 {
			offset = fields[1]
		}
	}

	ev, err := solarinfo.ParseEvent(event)
	if err != nil {
		return nil, err
	}

	var d time.Duration
	if offset != "" {
		d, err = time.ParseDuration(offset)
		if err != nil {
			return nil, fmt.Errorf("parse offset: %w", err)
		}
	}

	return solarinfo.EventSchedule{
		Latitude:  c.Location.Latitude,
		Longitude: c.Location.Longitude,
		UTCOffset: c.Location.UTCOffset,
		Event:     ev,
		Offset:    d,
		Logger:    logger,
	}, nil
}

// isCronDescriptor reports whether s is one of cron's own @ descriptors,
// such as @daily or @every 1h.
func isCronDescriptor(s string) bool {
	name := strings.Fields(s)[0]
	switch name {
	case "@yearly", "@annually", "@monthly", "@weekly", "@daily", "@midnight", "@hourly", "@every":
		return true
	}
	return false
}
