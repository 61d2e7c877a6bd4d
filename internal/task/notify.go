package task

import (
	"context"

	"github.com/tripwind/tripwind/internal/generation"
	"github.com/tripwind/tripwind/internal/notify"
	"github.com/tripwind/tripwind/internal/policy"
	"github.com/tripwind/tripwind/internal/store"
	"github.com/tripwind/tripwind/pkg/pipeline/core/model"
	"github.com/tripwind/tripwind/pkg/pipeline/support/logger"
)

// NotificationTaskName is the registered name of the notification task.
const NotificationTaskName = "vacation_spot_notification"

// NotifyConfig configures the notification recipient and subject line.
type NotifyConfig struct {
	Recipient string `yaml:"recipient"`
	Subject   string `yaml:"subject"`
}

// Normalize fills the default subject.
func (c NotifyConfig) Normalize() NotifyConfig {
	if c.Subject == "" {
		c.Subject = "Your vacation recommendations"
	}
	return c
}

// NotificationTasklet filters the target store against the recommendation
// policy and sends exactly one message per run: a no-match notice, a
// generated report, or a generation-failure notice whose wording tells an
// unavailable capability apart from a failed attempt. Only the generation
// call is guarded; a channel failure fails the run.
type NotificationTasklet struct {
	targets    store.TargetStore
	thresholds policy.Thresholds
	generator  generation.Client
	channel    notify.Channel
	cfg        NotifyConfig
}

// NewNotificationTasklet creates the notification task.
func NewNotificationTasklet(
	targets store.TargetStore,
	thresholds policy.Thresholds,
	generator generation.Client,
	channel notify.Channel,
	cfg NotifyConfig,
) *NotificationTasklet {
	return &NotificationTasklet{
		targets:    targets,
		thresholds: thresholds.Normalize(),
		generator:  generator,
		channel:    channel,
		cfg:        cfg.Normalize(),
	}
}

// Name implements ports.Tasklet.
func (t *NotificationTasklet) Name() string {
	return NotificationTaskName
}

// Execute implements ports.Tasklet.
func (t *NotificationTasklet) Execute(ctx context.Context, execution *model.TaskExecution) (model.ExitStatus, error) {
	state := StateFiltering

	spots, err := t.targets.List(ctx)
	if err != nil {
		return model.ExitStatusFailed, err
	}
	matches := t.thresholds.Filter(spots)
	execution.Counters.Add("rows_considered", int64(len(spots)))
	execution.Counters.Add("matches", int64(len(matches)))

	if len(matches) == 0 {
		state, _ = state.Transition(StateNoMatch)
		logger.Infof("Notification run reached %s, no destination qualified out of %d rows", state, len(spots))
		if err := t.send(ctx, execution, noMatchBody()); err != nil {
			return model.ExitStatusFailed, err
		}
		return model.ExitStatusNoOp, nil
	}

	state, _ = state.Transition(StateGenerating)
	prompt, err := generation.BuildPrompt(matches)
	if err != nil {
		return model.ExitStatusFailed, err
	}

	// The generation call is the only guarded step of the run. Every
	// outcome still delivers a message.
	outcome := t.generator.GenerateReport(ctx, prompt)
	switch outcome.Kind {
	case generation.KindGenerated:
		state, _ = state.Transition(StateDelivered)
		execution.Counters.Add("reports_generated", 1)
		logger.Infof("Notification run reached %s with %d matched destinations", state, len(matches))
		if err := t.send(ctx, execution, outcome.Report); err != nil {
			return model.ExitStatusFailed, err
		}
		return model.ExitStatusCompleted, nil
	case generation.KindUnavailable:
		state, _ = state.Transition(StateGenerationFailed)
		execution.Counters.Add("generation_failures", 1)
		logger.Warnf("Notification run reached %s: %s", state, outcome.Reason)
		if err := t.send(ctx, execution, unavailableBody()); err != nil {
			return model.ExitStatusFailed, err
		}
		return model.ExitStatusCompleted, nil
	default:
		state, _ = state.Transition(StateGenerationFailed)
		execution.Counters.Add("generation_failures", 1)
		logger.Warnf("Notification run reached %s: %s", state, outcome.Reason)
		if err := t.send(ctx, execution, generationFailedBody()); err != nil {
			return model.ExitStatusFailed, err
		}
		return model.ExitStatusCompleted, nil
	}
}

func (t *NotificationTasklet) send(ctx context.Context, execution *model.TaskExecution, body string) error {
	msg := notify.Message{Subject: t.cfg.Subject, Body: body}
	if err := t.channel.Send(ctx, t.cfg.Recipient, msg); err != nil {
		return err
	}
	execution.Counters.Add("notifications_sent", 1)
	logger.Infof("Sent notification via '%s' channel to '%s'", t.channel.Name(), t.cfg.Recipient)
	return nil
}

func noMatchBody() string {
	return "No suitable vacation spots were found in this run. We will look again after the next data refresh."
}

func unavailableBody() string {
	return "Matching vacation spots were found, but the report generation capability is inaccessible in this deployment, so no narrative summary could be produced."
}

func generationFailedBody() string {
	return "Matching vacation spots were found, but report generation failed on this attempt, so no narrative summary could be produced. Another attempt follows the next data refresh."
}
