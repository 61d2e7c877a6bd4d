package generation

import "context"

// Client runs one generation attempt. Implementations report the result as
// a tagged Outcome rather than an error so callers can route each kind to
// a different notification.
type Client interface {
	GenerateReport(ctx context.Context, prompt string) Outcome
}

// unavailableClient is the permanent no-capability implementation used when
// the deployment configures no model access.
type unavailableClient struct {
	reason string
}

// NewUnavailableClient creates a client that reports the capability as
// absent on every attempt.
func NewUnavailableClient(reason string) Client {
	return &unavailableClient{reason: reason}
}

func (c *unavailableClient) GenerateReport(context.Context, string) Outcome {
	return Unavailable(c.reason)
}
