package task

import (
	"context"
	"sync"

	"github.com/tripwind/tripwind/pkg/pipeline/core/model"
	"github.com/tripwind/tripwind/pkg/pipeline/launcher"
	"github.com/tripwind/tripwind/pkg/pipeline/listener"
	"github.com/tripwind/tripwind/pkg/pipeline/support/logger"
)

// Coordinator launches the notification task whenever an update run
// reaches a terminal state. A failed update still triggers notification,
// which then works against the last consistent target store state.
type Coordinator struct {
	launcher launcher.TaskLauncher
	signaler *listener.CompletionSignaler

	stopOnce sync.Once
	stopCh   chan struct{}
	doneCh   chan struct{}
}

// NewCoordinator creates the completion-event subscriber.
func NewCoordinator(l launcher.TaskLauncher, signaler *listener.CompletionSignaler) *Coordinator {
	return &Coordinator{
		launcher: l,
		signaler: signaler,
		stopCh:   make(chan struct{}),
		doneCh:   make(chan struct{}),
	}
}

// Start consumes completion events until the context ends or Stop is
// called.
func (c *Coordinator) Start(ctx context.Context) {
	go c.loop(ctx)
}

func (c *Coordinator) loop(ctx context.Context) {
	defer close(c.doneCh)
	for {
		select {
		case <-ctx.Done():
			return
		case <-c.stopCh:
			return
		case execution := <-c.signaler.Events():
			c.handle(ctx, execution)
		}
	}
}

func (c *Coordinator) handle(ctx context.Context, execution *model.TaskExecution) {
	if execution.TaskName != UpdateTaskName {
		return
	}
	logger.Debugf("Update run %s finished with status %s, triggering notification", execution.ID, execution.Status)
	if _, err := c.launcher.Launch(ctx, NotificationTaskName, model.TriggerUpstream); err != nil {
		logger.Errorf("Failed to launch notification task after update run %s: %v", execution.ID, err)
	}
}

// Stop shuts the loop down and waits for it to drain.
func (c *Coordinator) Stop() {
	c.stopOnce.Do(func() { close(c.stopCh) })
	<-c.doneCh
}
