// Package config provides structures and utilities for loading the
// application configuration from embedded YAML and the environment.
package config

// EmbeddedConfig holds the raw bytes of the configuration file, typically
// embedded into the binary and passed in from main.
type EmbeddedConfig []byte

// LoggingConfig holds logging configuration.
type LoggingConfig struct {
	// Level is the logging level (e.g. "INFO", "DEBUG").
	Level string `yaml:"level"`
}

// SystemConfig holds system-wide settings.
type SystemConfig struct {
	// Timezone is the application timezone (e.g. "UTC").
	Timezone string `yaml:"timezone"`
	// Logging is the logging configuration.
	Logging LoggingConfig `yaml:"logging"`
}

// SchedulerConfig holds the fixed-interval scheduling settings of the
// update task.
type SchedulerConfig struct {
	// IntervalMinutes is the scheduling interval. The production cadence is
	// daily (1440 minutes).
	IntervalMinutes int `yaml:"interval_minutes"`
	// RunOnStart triggers an immediate run when the application starts,
	// in addition to the interval ticks.
	RunOnStart bool `yaml:"run_on_start"`
}

// PipelineConfig holds settings of the pipeline engine itself.
type PipelineConfig struct {
	// Scheduler configures the update task cadence.
	Scheduler SchedulerConfig `yaml:"scheduler"`
	// RunHistoryLimit bounds FindRecentTaskExecutions queries issued by
	// operator tooling.
	RunHistoryLimit int `yaml:"run_history_limit"`
}

// InfrastructureConfig names the logical resources the pipeline core binds to.
type InfrastructureConfig struct {
	// TaskRepositoryDBRef is the database connection used for the run
	// history (e.g. "metadata").
	TaskRepositoryDBRef string `yaml:"task_repository_db_ref"`
	// TargetStoreDBRef is the database connection holding the target table
	// (e.g. "workload").
	TargetStoreDBRef string `yaml:"target_store_db_ref"`
}

// TripwindConfig holds all configuration under the "tripwind" top-level key.
type TripwindConfig struct {
	Pipeline       PipelineConfig       `yaml:"pipeline"`
	System         SystemConfig         `yaml:"system"`
	Infrastructure InfrastructureConfig `yaml:"infrastructure"`
	// AdapterConfigs holds the raw database connection configurations,
	// keyed by connection name and decoded by the database providers.
	AdapterConfigs map[string]interface{} `yaml:"database"`
	// StorageConfigs holds the raw storage connection configurations,
	// keyed by connection name and decoded by the storage adapters.
	StorageConfigs map[string]interface{} `yaml:"storage"`
	// Application holds component-specific configuration (datasets,
	// generation, notification, recommendation policy), bound to typed
	// structs by the application layer.
	Application map[string]interface{} `yaml:"application"`
}

// Config is the root structure of the application configuration.
type Config struct {
	Tripwind TripwindConfig `yaml:"tripwind"`
	// EmbeddedConfig holds the raw embedded source, not parsed from YAML.
	EmbeddedConfig EmbeddedConfig `yaml:"-"`
}

// NewConfig returns a Config populated with defaults.
func NewConfig() *Config {
	cfg := &Config{
		Tripwind: TripwindConfig{
			System: SystemConfig{
				Timezone: "UTC",
				Logging:  LoggingConfig{Level: "INFO"},
			},
			Pipeline: PipelineConfig{
				Scheduler: SchedulerConfig{
					IntervalMinutes: 1440,
					RunOnStart:      false,
				},
				RunHistoryLimit: 50,
			},
			Infrastructure: InfrastructureConfig{
				TaskRepositoryDBRef: "metadata",
				TargetStoreDBRef:    "workload",
			},
		},
	}
	cfg.Tripwind.AdapterConfigs = map[string]interface{}{}
	cfg.Tripwind.StorageConfigs = map[string]interface{}{}
	cfg.Tripwind.Application = map[string]interface{}{}
	return cfg
}
