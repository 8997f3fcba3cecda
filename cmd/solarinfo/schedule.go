package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/exec"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/thurmanmarka/solarinfo/internal/config"
	"github.com/thurmanmarka/solarinfo/internal/log"
)

// commandJob runs a configured command. It implements cron.Job.
type commandJob struct {
	ctx     context.Context
	name    string
	argv    []string
	timeout time.Duration
}

func (j commandJob) Run() {
	ctx, cancel := context.WithTimeout(j.ctx, j.timeout)
	defer cancel()

	start := time.Now()
	out, err := exec.CommandContext(ctx, j.argv[0], j.argv[1:]...).CombinedOutput()
	if err != nil {
		log.Errorw("job failed", "job", j.name, "error", err, "output", strings.TrimSpace(string(out)))
		return
	}
	log.Infow("job finished", "job", j.name, "elapsed", time.Since(start).Round(time.Millisecond), "output", strings.TrimSpace(string(out)))
}

// cronLogger adapts the package logger to cron.Logger.
type cronLogger struct {
	s *zap.SugaredLogger
}

func (l cronLogger) Info(msg string, keysAndValues ...interface{}) {
	l.s.Debugw(msg, keysAndValues...)
}

func (l cronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	l.s.Errorw(msg, append(keysAndValues, "error", err)...)
}

func runSchedule(args []string) {
	fs := flag.NewFlagSet("schedule", flag.ExitOnError)

	configFile := fs.String("config", "solarinfo.yaml", "YAML configuration file")
	dryRun := fs.Bool("dry-run", false, "print the next run of every job and exit")
	timeout := fs.Duration("timeout", 5*time.Minute, "maximum run time of one command")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `Usage: solarinfo schedule [flags]

Flags:
`)
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		log.Fatalf("failed to parse flags: %v", err)
	}

	cfg, err := config.Open(*configFile)
	if err != nil {
		log.Fatalf("read config file failed: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("invalid config %s:\n%v", *configFile, err)
	}

	if cfg.Debug {
		if err := log.Init(true); err != nil {
			log.Fatalf("%v", err)
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cl := cronLogger{s: log.GetSugaredLogger().Named("cron")}
	c := cron.New(
		cron.WithLogger(cl),
		cron.WithChain(cron.Recover(cl), cron.SkipIfStillRunning(cl)),
	)

	now := time.Now()
	for _, job := range cfg.Jobs {
		schedule, err := cfg.ScheduleFor(job, log.Named("schedule").With(zap.String("job", job.Name)))
		if err != nil {
			log.Fatalf("job %q: %v", job.Name, err)
		}

		next := schedule.Next(now)
		if *dryRun {
			fmt.Printf("%-20s %s\n", job.Name, next.Format(time.RFC3339))
			continue
		}

		c.Schedule(schedule, commandJob{
			ctx:     ctx,
			name:    job.Name,
			argv:    job.Command,
			timeout: *timeout,
		})
		log.Infow("job scheduled", "job", job.Name, "next", next.Format(time.RFC3339))
	}

	if *dryRun {
		return
	}

	c.Start()
	log.Infow("scheduler running", "jobs", len(cfg.Jobs), "config", *configFile)

	<-ctx.Done()
	log.Infow("shutting down, waiting for running jobs")
	<-c.Stop().Done()
}
