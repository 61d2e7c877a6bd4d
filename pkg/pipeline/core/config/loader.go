package config

import (
	"go.uber.org/fx"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/tripwind/tripwind/pkg/pipeline/support/exception"
	"github.com/tripwind/tripwind/pkg/pipeline/support/logger"
)

const componentName = "config"

// ConfigParams defines the dependencies of NewConfigProvider.
type ConfigParams struct {
	fx.In
	// EmbeddedConfig contains the raw bytes of the configuration file.
	EmbeddedConfig EmbeddedConfig
	// EnvFilePath is the path to the .env file, if any.
	EnvFilePath string `name:"envFilePath" optional:"true"`
}

// loadConfig loads configuration from the embedded YAML and the environment.
// Environment variables referenced as ${VAR} inside the YAML are expanded
// before parsing, so secrets never live in the embedded document.
func loadConfig(envFilePath string, embeddedConfig EmbeddedConfig) (*Config, error) {
	if envFilePath != "" {
		if err := godotenv.Load(envFilePath); err != nil {
			logger.Warnf(".env file (%s) not found or could not be loaded: %v", envFilePath, err)
		}
	} else {
		if err := godotenv.Load(); err != nil {
			logger.Debugf(".env file not found or could not be loaded: %v", err)
		}
	}

	cfg := NewConfig()

	expander := NewOsEnvironmentExpander()
	expanded, err := expander.Expand(embeddedConfig)
	if err != nil {
		return nil, exception.New(componentName, "failed to expand environment variables in embedded config", err, false)
	}

	var yamlConfig Config
	if err := yaml.Unmarshal(expanded, &yamlConfig); err != nil {
		return nil, exception.New(componentName, "failed to unmarshal embedded config", err, false)
	}

	mergeConfig(cfg, &yamlConfig)
	cfg.EmbeddedConfig = embeddedConfig
	return cfg, nil
}

// mergeConfig overlays the values parsed from YAML onto the defaults.
// Zero values in the overlay leave the default in place.
func mergeConfig(base, overlay *Config) {
	if overlay.Tripwind.System.Timezone != "" {
		base.Tripwind.System.Timezone = overlay.Tripwind.System.Timezone
	}
	if overlay.Tripwind.System.Logging.Level != "" {
		base.Tripwind.System.Logging.Level = overlay.Tripwind.System.Logging.Level
	}
	if overlay.Tripwind.Pipeline.Scheduler.IntervalMinutes > 0 {
		base.Tripwind.Pipeline.Scheduler.IntervalMinutes = overlay.Tripwind.Pipeline.Scheduler.IntervalMinutes
	}
	if overlay.Tripwind.Pipeline.Scheduler.RunOnStart {
		base.Tripwind.Pipeline.Scheduler.RunOnStart = true
	}
	if overlay.Tripwind.Pipeline.RunHistoryLimit > 0 {
		base.Tripwind.Pipeline.RunHistoryLimit = overlay.Tripwind.Pipeline.RunHistoryLimit
	}
	if overlay.Tripwind.Infrastructure.TaskRepositoryDBRef != "" {
		base.Tripwind.Infrastructure.TaskRepositoryDBRef = overlay.Tripwind.Infrastructure.TaskRepositoryDBRef
	}
	if overlay.Tripwind.Infrastructure.TargetStoreDBRef != "" {
		base.Tripwind.Infrastructure.TargetStoreDBRef = overlay.Tripwind.Infrastructure.TargetStoreDBRef
	}
	if len(overlay.Tripwind.AdapterConfigs) > 0 {
		base.Tripwind.AdapterConfigs = overlay.Tripwind.AdapterConfigs
	}
	if len(overlay.Tripwind.StorageConfigs) > 0 {
		base.Tripwind.StorageConfigs = overlay.Tripwind.StorageConfigs
	}
	if len(overlay.Tripwind.Application) > 0 {
		base.Tripwind.Application = overlay.Tripwind.Application
	}
}

// NewConfigProvider is the Fx provider for *Config. It loads defaults,
// merges the embedded YAML, and applies the configured log level.
func NewConfigProvider(params ConfigParams) (*Config, error) {
	cfg, err := loadConfig(params.EnvFilePath, params.EmbeddedConfig)
	if err != nil {
		return nil, err
	}

	logger.SetLogLevel(cfg.Tripwind.System.Logging.Level)
	logger.Infof("Log level set to: %s", cfg.Tripwind.System.Logging.Level)

	return cfg, nil
}

// LoadConfig loads configuration outside of an Fx container. It is expected
// to be called once during startup.
func LoadConfig(envFilePath string, embeddedConfig EmbeddedConfig) (*Config, error) {
	return loadConfig(envFilePath, embeddedConfig)
}
