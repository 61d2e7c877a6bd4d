// Package ports declares outbound interfaces of the pipeline core.
package ports

import (
	"context"

	"github.com/tripwind/tripwind/pkg/pipeline/core/model"
)

// NotifierGroup is the Fx group name used to collect all Notifier implementations.
const NotifierGroup = "notifiers"

// Notifier is notified about task completion (success or failure). It is a
// pipeline-level hook for operational alerting, distinct from the
// user-facing notification channel of the vacation domain.
type Notifier interface {
	// NotifyTaskCompletion is called once per finished execution.
	NotifyTaskCompletion(ctx context.Context, execution *model.TaskExecution)
}
