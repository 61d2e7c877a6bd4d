// Package scheduler runs a task on a fixed interval and on demand.
package scheduler

import (
	"context"
	"sync"
	"time"

	"github.com/tripwind/tripwind/pkg/pipeline/core/model"
	"github.com/tripwind/tripwind/pkg/pipeline/launcher"
	"github.com/tripwind/tripwind/pkg/pipeline/support/logger"
)

// IntervalScheduler launches a named task every interval. TriggerNow queues
// an immediate run without disturbing the schedule.
type IntervalScheduler struct {
	launcher launcher.TaskLauncher
	taskName string
	interval time.Duration
	runFirst bool

	triggerCh chan struct{}
	stopOnce  sync.Once
	stopCh    chan struct{}
	doneCh    chan struct{}
}

// NewIntervalScheduler creates a scheduler for the named task. When runFirst
// is true the first run happens immediately on Start instead of after the
// first interval.
func NewIntervalScheduler(l launcher.TaskLauncher, taskName string, interval time.Duration, runFirst bool) *IntervalScheduler {
	return &IntervalScheduler{
		launcher:  l,
		taskName:  taskName,
		interval:  interval,
		runFirst:  runFirst,
		triggerCh: make(chan struct{}, 1),
		stopCh:    make(chan struct{}),
		doneCh:    make(chan struct{}),
	}
}

// Start runs the scheduling loop until Stop is called or the context is
// canceled. It returns immediately; the loop runs in its own goroutine.
func (s *IntervalScheduler) Start(ctx context.Context) {
	go s.loop(ctx)
}

func (s *IntervalScheduler) loop(ctx context.Context) {
	defer close(s.doneCh)

	logger.Infof("Scheduler started for task '%s' (interval: %s)", s.taskName, s.interval)

	if s.runFirst {
		s.launch(ctx, model.TriggerScheduled)
	}

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			logger.Infof("Scheduler for task '%s' stopping: %v", s.taskName, ctx.Err())
			return
		case <-s.stopCh:
			logger.Infof("Scheduler for task '%s' stopped.", s.taskName)
			return
		case <-ticker.C:
			s.launch(ctx, model.TriggerScheduled)
		case <-s.triggerCh:
			s.launch(ctx, model.TriggerManual)
		}
	}
}

func (s *IntervalScheduler) launch(ctx context.Context, trigger model.Trigger) {
	if _, err := s.launcher.Launch(ctx, s.taskName, trigger); err != nil {
		logger.Errorf("Scheduler failed to launch task '%s': %v", s.taskName, err)
	}
}

// TriggerNow queues an immediate run. Repeated calls while a trigger is
// already pending collapse into a single run.
func (s *IntervalScheduler) TriggerNow() {
	select {
	case s.triggerCh <- struct{}{}:
	default:
	}
}

// Stop terminates the scheduling loop and waits for it to exit.
func (s *IntervalScheduler) Stop() {
	s.stopOnce.Do(func() {
		close(s.stopCh)
	})
	<-s.doneCh
}
