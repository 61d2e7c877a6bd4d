package notify

import (
	"context"
	"fmt"
	"strings"

	"github.com/tripwind/tripwind/pkg/pipeline/core/model"
	"github.com/tripwind/tripwind/pkg/pipeline/core/ports"
	"github.com/tripwind/tripwind/pkg/pipeline/support/logger"
)

// FailureAlertNotifier sends an operational alert through a notification
// channel whenever a task run finishes in the FAILED state. An empty
// recipient disables alerting.
type FailureAlertNotifier struct {
	channel   Channel
	recipient string
}

// NewFailureAlertNotifier creates a FailureAlertNotifier delivering alerts
// to the given recipient over the given channel.
func NewFailureAlertNotifier(channel Channel, recipient string) *FailureAlertNotifier {
	return &FailureAlertNotifier{
		channel:   channel,
		recipient: recipient,
	}
}

// NotifyTaskCompletion sends an alert for failed executions. Delivery errors
// are logged, not propagated; alerting must never fail the run it reports on.
func (n *FailureAlertNotifier) NotifyTaskCompletion(ctx context.Context, execution *model.TaskExecution) {
	if n.recipient == "" || execution.Status != model.TaskStatusFailed {
		return
	}

	msg := Message{
		Subject: fmt.Sprintf("Task '%s' failed", execution.TaskName),
		Body: fmt.Sprintf("Task '%s' (ID: %s, trigger: %s) failed.\n\nFailures:\n%s\n",
			execution.TaskName, execution.ID, execution.Trigger, strings.Join(execution.Failures, "\n")),
	}
	if err := n.channel.Send(ctx, n.recipient, msg); err != nil {
		logger.Errorf("FailureAlertNotifier: failed to deliver alert for task '%s' (ID: %s): %v", execution.TaskName, execution.ID, err)
	}
}

var _ ports.Notifier = (*FailureAlertNotifier)(nil)
