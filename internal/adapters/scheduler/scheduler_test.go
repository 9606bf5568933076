package scheduler_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/NaMinhyeok/order-practice/internal/adapters/config"
	"github.com/NaMinhyeok/order-practice/internal/adapters/scheduler"
)

type observation struct {
	job       string
	processed int
	err       error
}

type recordingObserver struct {
	mu   sync.Mutex
	runs []observation
}

func (o *recordingObserver) ObserveJob(job string, processed int, err error, _ time.Time) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.runs = append(o.runs, observation{job: job, processed: processed, err: err})
}

func (o *recordingObserver) snapshot() []observation {
	o.mu.Lock()
	defer o.mu.Unlock()
	return append([]observation(nil), o.runs...)
}

func TestNextRun(t *testing.T) {
	seoul, err := time.LoadLocation("Asia/Seoul")
	if err != nil {
		t.Skipf("tzdata not available: %v", err)
	}

	tests := []struct {
		name string
		now  time.Time
		want time.Time
	}{
		{
			name: "before the slot runs today",
			now:  time.Date(2024, 3, 10, 9, 30, 0, 0, seoul),
			want: time.Date(2024, 3, 10, 14, 0, 0, 0, seoul),
		},
		{
			name: "exactly at the slot runs tomorrow",
			now:  time.Date(2024, 3, 10, 14, 0, 0, 0, seoul),
			want: time.Date(2024, 3, 11, 14, 0, 0, 0, seoul),
		},
		{
			name: "after the slot runs tomorrow",
			now:  time.Date(2024, 3, 10, 18, 0, 0, 0, seoul),
			want: time.Date(2024, 3, 11, 14, 0, 0, 0, seoul),
		},
		{
			name: "month rollover",
			now:  time.Date(2024, 1, 31, 15, 0, 0, 0, seoul),
			want: time.Date(2024, 2, 1, 14, 0, 0, 0, seoul),
		},
		{
			name: "input in another zone is converted first",
			now:  time.Date(2024, 3, 10, 4, 0, 0, 0, time.UTC),
			want: time.Date(2024, 3, 10, 14, 0, 0, 0, seoul),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := scheduler.NextRun(tt.now, 14, 0, seoul)
			if !got.Equal(tt.want) {
				t.Fatalf("expected %s, got %s", tt.want, got)
			}
		})
	}
}

func TestNewDailyScheduler_RejectsInvalidTime(t *testing.T) {
	job := func(context.Context) (int, error) { return 0, nil }

	if _, err := scheduler.NewDailyScheduler("x", config.SchedulerConfig{DeliveryHour: 24}, job); err == nil {
		t.Fatal("expected error for hour 24")
	}
	if _, err := scheduler.NewDailyScheduler("x", config.SchedulerConfig{DeliveryHour: 14, DeliveryMinute: 60}, job); err == nil {
		t.Fatal("expected error for minute 60")
	}
}

func TestDailyScheduler_RunOnce(t *testing.T) {
	t.Run("reports success", func(t *testing.T) {
		observer := &recordingObserver{}
		s, _ := scheduler.NewDailyScheduler("send-orders", config.SchedulerConfig{DeliveryHour: 14},
			func(context.Context) (int, error) { return 3, nil },
			scheduler.WithObserver(observer))

		s.RunOnce(context.Background())

		runs := observer.snapshot()
		if len(runs) != 1 || runs[0].processed != 3 || runs[0].err != nil {
			t.Fatalf("unexpected observations: %+v", runs)
		}
	})

	t.Run("reports failure without propagating", func(t *testing.T) {
		observer := &recordingObserver{}
		s, _ := scheduler.NewDailyScheduler("send-orders", config.SchedulerConfig{DeliveryHour: 14},
			func(context.Context) (int, error) { return 0, errors.New("db down") },
			scheduler.WithObserver(observer))

		s.RunOnce(context.Background())

		runs := observer.snapshot()
		if len(runs) != 1 || runs[0].err == nil {
			t.Fatalf("expected one failed run, got %+v", runs)
		}
	})

	t.Run("recovers from panics", func(t *testing.T) {
		observer := &recordingObserver{}
		s, _ := scheduler.NewDailyScheduler("send-orders", config.SchedulerConfig{DeliveryHour: 14},
			func(context.Context) (int, error) { panic("boom") },
			scheduler.WithObserver(observer))

		s.RunOnce(context.Background())

		runs := observer.snapshot()
		if len(runs) != 1 || runs[0].err == nil {
			t.Fatalf("expected panic to be reported as failure, got %+v", runs)
		}
	})
}

func TestDailyScheduler_Start(t *testing.T) {
	t.Run("fires at the scheduled time", func(t *testing.T) {
		fixed := time.Date(2024, 3, 10, 13, 59, 59, 950_000_000, time.UTC)
		fired := make(chan struct{}, 1)

		s, err := scheduler.NewDailyScheduler("send-orders",
			config.SchedulerConfig{DeliveryHour: 14, DeliveryMinute: 0, Timezone: "UTC"},
			func(context.Context) (int, error) {
				select {
				case fired <- struct{}{}:
				default:
				}
				return 0, nil
			},
			scheduler.WithClock(func() time.Time { return fixed }))
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()
		go s.Start(ctx)

		select {
		case <-fired:
		case <-time.After(2 * time.Second):
			t.Fatal("job did not fire")
		}
	})

	t.Run("stops on context cancel", func(t *testing.T) {
		s, _ := scheduler.NewDailyScheduler("send-orders", config.SchedulerConfig{DeliveryHour: 14},
			func(context.Context) (int, error) {
				t.Error("job must not run")
				return 0, nil
			},
			scheduler.WithClock(func() time.Time { return time.Date(2024, 3, 10, 15, 0, 0, 0, time.Local) }))

		ctx, cancel := context.WithCancel(context.Background())
		done := make(chan struct{})
		go func() {
			s.Start(ctx)
			close(done)
		}()

		cancel()

		select {
		case <-done:
		case <-time.After(2 * time.Second):
			t.Fatal("scheduler did not stop after context cancellation")
		}
	})
}
