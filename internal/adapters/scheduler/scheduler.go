package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/NaMinhyeok/order-practice/internal/adapters/config"
	"github.com/NaMinhyeok/order-practice/internal/core/logger"
)

// Job returns how many records it processed.
type Job func(ctx context.Context) (int, error)

type Observer interface {
	ObserveJob(job string, processed int, err error, finishedAt time.Time)
}

// DailyScheduler runs a job once a day at a fixed wall-clock time. A failed
// run is logged and observed; the next attempt is the next day's slot.
type DailyScheduler struct {
	name     string
	hour     int
	minute   int
	location *time.Location
	job      Job
	observer Observer
	now      func() time.Time
}

type Option func(*DailyScheduler)

func WithObserver(observer Observer) Option {
	return func(s *DailyScheduler) { s.observer = observer }
}

func WithClock(now func() time.Time) Option {
	return func(s *DailyScheduler) { s.now = now }
}

func NewDailyScheduler(name string, cfg config.SchedulerConfig, job Job, opts ...Option) (*DailyScheduler, error) {
	if cfg.DeliveryHour < 0 || cfg.DeliveryHour > 23 {
		return nil, fmt.Errorf("scheduler %s: hour %d out of range", name, cfg.DeliveryHour)
	}
	if cfg.DeliveryMinute < 0 || cfg.DeliveryMinute > 59 {
		return nil, fmt.Errorf("scheduler %s: minute %d out of range", name, cfg.DeliveryMinute)
	}

	s := &DailyScheduler{
		name:     name,
		hour:     cfg.DeliveryHour,
		minute:   cfg.DeliveryMinute,
		location: cfg.Location(),
		job:      job,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// NextRun returns the first hour:minute in loc strictly after now.
func NextRun(now time.Time, hour, minute int, loc *time.Location) time.Time {
	local := now.In(loc)
	next := time.Date(local.Year(), local.Month(), local.Day(), hour, minute, 0, 0, loc)
	if !next.After(local) {
		next = time.Date(local.Year(), local.Month(), local.Day()+1, hour, minute, 0, 0, loc)
	}
	return next
}

func (s *DailyScheduler) Start(ctx context.Context) {
	for {
		now := s.now()
		next := NextRun(now, s.hour, s.minute, s.location)
		logger.Info(ctx, "scheduler: next run scheduled", map[string]any{
			"job":      s.name,
			"next_run": next.Format(time.RFC3339),
		})

		timer := time.NewTimer(next.Sub(now))
		select {
		case <-ctx.Done():
			timer.Stop()
			return
		case <-timer.C:
			s.RunOnce(ctx)
		}
	}
}

// RunOnce executes the job immediately. Panics are recovered and reported as
// failures so the loop keeps going.
func (s *DailyScheduler) RunOnce(ctx context.Context) {
	start := s.now()
	processed, err := s.safeRun(ctx)
	finished := s.now()

	attrs := map[string]any{
		"job":       s.name,
		"processed": processed,
		"duration":  finished.Sub(start),
	}
	if err != nil {
		logger.Error(ctx, "scheduler: job failed", err, attrs)
	} else {
		logger.Info(ctx, "scheduler: job finished", attrs)
	}

	if s.observer != nil {
		s.observer.ObserveJob(s.name, processed, err, finished)
	}
}

func (s *DailyScheduler) safeRun(ctx context.Context) (processed int, err error) {
	defer func() {
		if r := recover(); r != nil {
			processed, err = 0, fmt.Errorf("job panicked: %v", r)
		}
	}()
	return s.job(ctx)
}
