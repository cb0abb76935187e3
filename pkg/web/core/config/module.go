// Package config provides core configuration structures and utilities for the web framework.
// This module defines Fx providers for configuration-related components.
package config

import (
	"go.uber.org/fx"

	"github.com/tigerroll/pipelines/pkg/web/support/util/logger"
)

// ConfigParams defines the dependencies for NewConfigProvider.
type ConfigParams struct {
	fx.In
	EmbeddedConfig EmbeddedConfig `optional:"true"`
	EnvFilePath    string         `name:"envFilePath" optional:"true"`
	Args           []string       `name:"args" optional:"true"`
}

// NewConfigProvider is an Fx provider that loads and provides *Config.
// It also applies the configured log level so later constructors log at the right verbosity.
func NewConfigProvider(params ConfigParams) (*Config, error) {
	cfg, err := LoadConfig(params.EnvFilePath, params.EmbeddedConfig, params.Args)
	if err != nil {
		return nil, err
	}
	logger.SetLogLevel(cfg.Pipelines.System.Logging.Level)
	return cfg, nil
}

// NewServerConfigProvider extracts *ServerConfig from *Config.
func NewServerConfigProvider(cfg *Config) *ServerConfig { return &cfg.Pipelines.Server }

// NewViewConfigProvider extracts *ViewConfig from *Config.
func NewViewConfigProvider(cfg *Config) *ViewConfig { return &cfg.Pipelines.View }

// NewManagementConfigProvider extracts *ManagementConfig from *Config.
func NewManagementConfigProvider(cfg *Config) *ManagementConfig { return &cfg.Pipelines.Management }

// NewTracingConfigProvider extracts *TracingConfig from *Config.
func NewTracingConfigProvider(cfg *Config) *TracingConfig { return &cfg.Pipelines.Tracing }

// NewLoggingConfigProvider extracts *LoggingConfig from *Config.
func NewLoggingConfigProvider(cfg *Config) *LoggingConfig { return &cfg.Pipelines.System.Logging }

// Module provides the configuration and its sections to Fx.
var Module = fx.Options(
	fx.Provide(NewConfigProvider),
	fx.Provide(
		NewServerConfigProvider,
		NewViewConfigProvider,
		NewManagementConfigProvider,
		NewTracingConfigProvider,
		NewLoggingConfigProvider,
	),
)
