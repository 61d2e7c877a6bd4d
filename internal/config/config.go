// Package config binds the application section of the configuration file
// to the typed structures of the vacation pipeline.
package config

import (
	"github.com/tripwind/tripwind/internal/dataset"
	"github.com/tripwind/tripwind/internal/enrichment"
	"github.com/tripwind/tripwind/internal/export"
	"github.com/tripwind/tripwind/internal/generation"
	"github.com/tripwind/tripwind/internal/notify"
	"github.com/tripwind/tripwind/internal/policy"
	"github.com/tripwind/tripwind/internal/task"
	coreconfig "github.com/tripwind/tripwind/pkg/pipeline/core/config"
	"github.com/tripwind/tripwind/pkg/pipeline/support/configbinder"
	"github.com/tripwind/tripwind/pkg/pipeline/support/exception"
)

const componentName = "appconfig"

// EnrichmentConfig locates the airport reference data and the home
// airport document.
type EnrichmentConfig struct {
	// AirportReferencePath is the fixed-width airport reference file.
	AirportReferencePath string `yaml:"airport_reference_path"`
	// Layout overrides the reference file column layout.
	Layout *enrichment.Layout `yaml:"layout"`
	// HomeAirportDoc is a JSON document exposing an "airport" field.
	HomeAirportDoc string `yaml:"home_airport_doc"`
	// HomeAirport sets the home airport inline, taking precedence over
	// HomeAirportDoc.
	HomeAirport string `yaml:"home_airport"`
}

// NotificationConfig selects and configures the delivery channel.
type NotificationConfig struct {
	// Channel is "email" or "log".
	Channel   string            `yaml:"channel"`
	Recipient string            `yaml:"recipient"`
	Subject   string            `yaml:"subject"`
	SMTP      notify.SMTPConfig `yaml:"smtp"`
	// AlertRecipient receives operational alerts about failed task runs.
	// Empty disables failure alerts.
	AlertRecipient string `yaml:"alert_recipient"`
}

// AppConfig is the typed application section.
type AppConfig struct {
	Datasets     dataset.Paths           `yaml:"datasets"`
	Enrichment   EnrichmentConfig        `yaml:"enrichment"`
	Update       task.UpdateConfig       `yaml:"update"`
	Policy       policy.Thresholds       `yaml:"policy"`
	Generation   generation.GeminiConfig `yaml:"generation"`
	Notification NotificationConfig      `yaml:"notification"`
	Export       export.Config           `yaml:"export"`
}

// NewAppConfig binds the application map of the loaded configuration.
func NewAppConfig(cfg *coreconfig.Config) (*AppConfig, error) {
	var app AppConfig
	if err := configbinder.BindProperties(cfg.Tripwind.Application, &app); err != nil {
		return nil, exception.New(componentName, "failed to bind application configuration", err, false)
	}
	if app.Enrichment.AirportReferencePath == "" {
		return nil, exception.New(componentName, "application configuration requires 'enrichment.airport_reference_path'", nil, false)
	}
	if app.Enrichment.HomeAirport == "" && app.Enrichment.HomeAirportDoc == "" {
		return nil, exception.New(componentName, "application configuration requires 'enrichment.home_airport' or 'enrichment.home_airport_doc'", nil, false)
	}
	return &app, nil
}

// ReferenceLayout returns the configured reference layout or the default.
func (c *AppConfig) ReferenceLayout() enrichment.Layout {
	if c.Enrichment.Layout != nil {
		return *c.Enrichment.Layout
	}
	return enrichment.DefaultLayout()
}
