package generation

import (
	"context"
	"fmt"
	"strings"

	"google.golang.org/genai"

	"github.com/tripwind/tripwind/pkg/pipeline/support/logger"
)

const defaultModel = "gemini-2.0-flash"

// GeminiConfig configures the Gemini-backed generation client.
type GeminiConfig struct {
	APIKey string `yaml:"api_key"`
	Model  string `yaml:"model"`
}

// GeminiClient generates reports through the Gemini API.
type GeminiClient struct {
	client *genai.Client
	model  string
}

// NewClient builds the generation client for the deployment. Without an
// API key the capability is considered absent and every attempt reports
// Unavailable instead of failing.
func NewClient(ctx context.Context, cfg GeminiConfig) (Client, error) {
	if cfg.APIKey == "" {
		logger.Infof("No generation API key configured, report generation is unavailable")
		return NewUnavailableClient("no generation API key configured"), nil
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{APIKey: cfg.APIKey})
	if err != nil {
		return nil, fmt.Errorf("failed to create generation client: %w", err)
	}

	model := cfg.Model
	if model == "" {
		model = defaultModel
	}
	return &GeminiClient{client: client, model: model}, nil
}

// GenerateReport runs one generation attempt against the configured model.
func (c *GeminiClient) GenerateReport(ctx context.Context, prompt string) Outcome {
	resp, err := c.client.Models.GenerateContent(ctx, c.model, genai.Text(prompt), nil)
	if err != nil {
		logger.Warnf("Report generation against model '%s' failed: %v", c.model, err)
		return Failed(fmt.Sprintf("generation request failed: %v", err))
	}

	text := strings.TrimSpace(resp.Text())
	if text == "" {
		return Failed("generation returned an empty report")
	}
	return Generated(text)
}
