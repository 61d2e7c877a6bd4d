// Package notify delivers the end-of-run message to the configured
// recipient. Every run delivers exactly one message through one channel.
package notify

import "context"

// Message is one outbound notification.
type Message struct {
	Subject string
	Body    string
}

// Channel sends messages through one delivery integration.
type Channel interface {
	// Send delivers the message to the recipient. Delivery failures are
	// returned, never retried here.
	Send(ctx context.Context, recipient string, msg Message) error

	// Name identifies the integration for logging and run counters.
	Name() string
}
