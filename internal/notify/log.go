package notify

import (
	"context"

	"github.com/tripwind/tripwind/pkg/pipeline/support/logger"
)

// LogChannel writes notifications to the application log. It backs local
// runs and deployments without a mail integration.
type LogChannel struct{}

// NewLogChannel creates the log-backed channel.
func NewLogChannel() *LogChannel {
	return &LogChannel{}
}

// Name implements Channel.
func (c *LogChannel) Name() string {
	return "log"
}

// Send implements Channel.
func (c *LogChannel) Send(ctx context.Context, recipient string, msg Message) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	logger.Infof("Notification for '%s': %s\n%s", recipient, msg.Subject, msg.Body)
	return nil
}
