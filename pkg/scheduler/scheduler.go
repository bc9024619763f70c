package scheduler

import (
	"context"
	"fmt"

	"sla-srv/pkg/log"

	"github.com/robfig/cron/v3"
)

// Scheduler runs named periodic jobs. A run that is still going when the next
// tick fires is skipped, and panics are recovered.
type Scheduler struct {
	l    log.Logger
	cron *cron.Cron
}

func New(l log.Logger) *Scheduler {
	cl := cronLogger{l: l}
	return &Scheduler{
		l: l,
		cron: cron.New(
			cron.WithLogger(cl),
			cron.WithChain(cron.SkipIfStillRunning(cl), cron.Recover(cl)),
		),
	}
}

// Add registers fn under spec ("@every 5m", standard 5-field cron).
func (s *Scheduler) Add(name, spec string, fn func(ctx context.Context)) error {
	_, err := s.cron.AddFunc(spec, func() {
		ctx := log.WithContext(context.Background(), s.l, "job", name)
		fn(ctx)
	})
	if err != nil {
		return fmt.Errorf("schedule %s (%q): %w", name, spec, err)
	}
	return nil
}

func (s *Scheduler) Start() {
	s.cron.Start()
}

// Stop stops scheduling and waits for running jobs until ctx is done.
func (s *Scheduler) Stop(ctx context.Context) error {
	select {
	case <-s.cron.Stop().Done():
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

type cronLogger struct {
	l log.Logger
}

func (c cronLogger) Info(msg string, keysAndValues ...interface{}) {
	c.l.Debugf(context.Background(), "pkg.scheduler: %s %v", msg, keysAndValues)
}

func (c cronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	c.l.Errorf(context.Background(), "pkg.scheduler: %s %v: %v", msg, keysAndValues, err)
}
