package config

// Package config provides structures and utilities for managing application configuration.

// EmbeddedConfig holds the content of the configuration file, typically passed from main.go.
type EmbeddedConfig []byte

// Metrics exporter names accepted by ManagementConfig.MetricsExporter.
const (
	MetricsExporterPrometheus = "prometheus"
	MetricsExporterOTLP       = "otlp"
)

// OTLP transport protocols accepted by TracingConfig.OTLPProtocol.
const (
	OTLPProtocolHTTP = "http"
	OTLPProtocolGRPC = "grpc"
)

// ServerConfig holds the HTTP listener settings.
type ServerConfig struct {
	// Address is the host or IP to bind. Empty binds all interfaces.
	Address string `yaml:"address"`
	// Port is the TCP port to listen on. 0 asks the OS for a free port.
	Port int `yaml:"port"`
	// ReadHeaderTimeoutSeconds bounds the time allowed to read request headers.
	ReadHeaderTimeoutSeconds int `yaml:"read_header_timeout_seconds"`
	// IdleTimeoutSeconds bounds how long keep-alive connections stay open between requests.
	IdleTimeoutSeconds int `yaml:"idle_timeout_seconds"`
	// ShutdownTimeoutSeconds bounds graceful shutdown of in-flight requests.
	ShutdownTimeoutSeconds int `yaml:"shutdown_timeout_seconds"`
}

// ViewConfig controls how view identifiers map to template files.
// A view named "index" resolves to Prefix + "index" + Suffix.
type ViewConfig struct {
	Prefix string `yaml:"prefix"`
	Suffix string `yaml:"suffix"`
}

// ManagementConfig holds operational endpoints.
type ManagementConfig struct {
	MetricsEnabled  bool   `yaml:"metrics_enabled"`
	MetricsPath     string `yaml:"metrics_path"`
	MetricsExporter string `yaml:"metrics_exporter"`
	// OTLPEndpoint is the collector URL used when MetricsExporter is "otlp".
	OTLPEndpoint string `yaml:"otlp_endpoint"`
	// OTLPProtocol is "http" or "grpc".
	OTLPProtocol string `yaml:"otlp_protocol"`
}

// TracingConfig holds OpenTelemetry tracing settings.
type TracingConfig struct {
	Enabled      bool   `yaml:"enabled"`
	ServiceName  string `yaml:"service_name"`
	OTLPEndpoint string `yaml:"otlp_endpoint"`
	OTLPProtocol string `yaml:"otlp_protocol"`
}

// LoggingConfig holds logging configuration.
type LoggingConfig struct {
	// Level is the logging level (e.g., "INFO", "DEBUG").
	Level string `yaml:"level"`
}

// SystemConfig holds system-wide settings.
type SystemConfig struct {
	Logging LoggingConfig `yaml:"logging"`
}

// PipelinesConfig holds all configuration under the "pipelines" top-level key.
type PipelinesConfig struct {
	Server     ServerConfig     `yaml:"server"`
	View       ViewConfig       `yaml:"view"`
	Management ManagementConfig `yaml:"management"`
	Tracing    TracingConfig    `yaml:"tracing"`
	System     SystemConfig     `yaml:"system"`
}

// Config is the root structure for the entire application configuration.
type Config struct {
	Pipelines PipelinesConfig `yaml:"pipelines"`
}

// NewConfig returns a new instance of Config with default values.
func NewConfig() *Config {
	return &Config{
		Pipelines: PipelinesConfig{
			Server: ServerConfig{
				Port:                     8080,
				ReadHeaderTimeoutSeconds: 10,
				IdleTimeoutSeconds:       60,
				ShutdownTimeoutSeconds:   15,
			},
			View: ViewConfig{
				Prefix: "templates/",
				Suffix: ".html",
			},
			Management: ManagementConfig{
				MetricsPath:     "/metrics",
				MetricsExporter: MetricsExporterPrometheus,
				OTLPProtocol:    OTLPProtocolHTTP,
			},
			Tracing: TracingConfig{
				ServiceName:  "pipelines",
				OTLPProtocol: OTLPProtocolHTTP,
			},
			System: SystemConfig{
				Logging: LoggingConfig{Level: "INFO"},
			},
		},
	}
}
