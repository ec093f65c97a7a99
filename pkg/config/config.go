package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration for the application
type Config struct {
	// Server configuration
	Server ServerConfig `mapstructure:"server"`

	// Claims bridge configuration
	Claims ClaimsConfig `mapstructure:"claims"`

	// Scheduling configuration
	Scheduling SchedulingConfig `mapstructure:"scheduling"`

	// Insight summarizer configuration
	Insight InsightConfig `mapstructure:"insight"`

	// Monitoring configuration
	Monitoring MonitoringConfig `mapstructure:"monitoring"`

	// Logging configuration
	LogLevel string `mapstructure:"log_level"`

	// Demo data seeding
	SeedDemoData bool `mapstructure:"seed_demo_data"`
}

// ServerConfig holds server-specific configuration
type ServerConfig struct {
	Host         string `mapstructure:"host"`
	Port         int    `mapstructure:"port"`
	ReadTimeout  int    `mapstructure:"read_timeout"`
	WriteTimeout int    `mapstructure:"write_timeout"`
	IdleTimeout  int    `mapstructure:"idle_timeout"`
}

// ClaimsConfig holds claim bridge configuration
type ClaimsConfig struct {
	// BridgeDelay is the simulated insurer adjudication latency before a
	// submitted claim moves to processing
	BridgeDelay time.Duration `mapstructure:"bridge_delay"`
}

// SchedulingConfig holds scheduling ledger configuration
type SchedulingConfig struct {
	// LegacyUnboundedSlots restores the original behavior where the full
	// slot catalog is offered regardless of existing bookings
	LegacyUnboundedSlots bool `mapstructure:"legacy_unbounded_slots"`
}

// InsightConfig holds the external insight summarizer configuration
type InsightConfig struct {
	Endpoint string        `mapstructure:"endpoint"`
	APIKey   string        `mapstructure:"api_key"`
	Model    string        `mapstructure:"model"`
	Timeout  time.Duration `mapstructure:"timeout"`

	// Circuit breaker settings
	BreakerMaxRequests      uint32        `mapstructure:"breaker_max_requests"`
	BreakerInterval         time.Duration `mapstructure:"breaker_interval"`
	BreakerTimeout          time.Duration `mapstructure:"breaker_timeout"`
	BreakerFailureThreshold uint32        `mapstructure:"breaker_failure_threshold"`
}

// MonitoringConfig holds monitoring configuration
type MonitoringConfig struct {
	Enabled        bool    `mapstructure:"enabled"`
	MetricsPath    string  `mapstructure:"metrics_path"`
	HealthPath     string  `mapstructure:"health_path"`
	TracingEnabled bool    `mapstructure:"tracing_enabled"`
	OTLPEndpoint   string  `mapstructure:"otlp_endpoint"`
	SamplingRate   float64 `mapstructure:"sampling_rate"`
}

// Load loads configuration from environment variables and config files
func Load() (*Config, error) {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")
	viper.AddConfigPath("/etc/medi-erp")

	// Set default values
	setDefaults()

	// Enable environment variable support
	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// Read config file if it exists
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	// Override with environment variables
	overrideWithEnv(&config)

	// Validate configuration
	if err := validate(&config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// setDefaults sets default configuration values
func setDefaults() {
	// Server defaults
	viper.SetDefault("server.host", "0.0.0.0")
	viper.SetDefault("server.port", 8080)
	viper.SetDefault("server.read_timeout", 30)
	viper.SetDefault("server.write_timeout", 30)
	viper.SetDefault("server.idle_timeout", 120)

	// Claims bridge defaults
	viper.SetDefault("claims.bridge_delay", "3s")

	// Scheduling defaults
	viper.SetDefault("scheduling.legacy_unbounded_slots", false)

	// Insight defaults
	viper.SetDefault("insight.endpoint", "")
	viper.SetDefault("insight.model", "medis-flash")
	viper.SetDefault("insight.timeout", "10s")
	viper.SetDefault("insight.breaker_max_requests", 3)
	viper.SetDefault("insight.breaker_interval", "60s")
	viper.SetDefault("insight.breaker_timeout", "30s")
	viper.SetDefault("insight.breaker_failure_threshold", 5)

	// Monitoring defaults
	viper.SetDefault("monitoring.enabled", true)
	viper.SetDefault("monitoring.metrics_path", "/metrics")
	viper.SetDefault("monitoring.health_path", "/health")
	viper.SetDefault("monitoring.tracing_enabled", false)
	viper.SetDefault("monitoring.otlp_endpoint", "localhost:4318")
	viper.SetDefault("monitoring.sampling_rate", 1.0)

	// Logging defaults
	viper.SetDefault("log_level", "info")

	// Seed defaults
	viper.SetDefault("seed_demo_data", true)
}

// overrideWithEnv overrides configuration with environment variables
func overrideWithEnv(config *Config) {
	if port := os.Getenv("PORT"); port != "" {
		if p, err := strconv.Atoi(port); err == nil {
			config.Server.Port = p
		}
	}

	if apiKey := os.Getenv("INSIGHT_API_KEY"); apiKey != "" {
		config.Insight.APIKey = apiKey
	}

	if endpoint := os.Getenv("INSIGHT_ENDPOINT"); endpoint != "" {
		config.Insight.Endpoint = endpoint
	}

	if logLevel := os.Getenv("LOG_LEVEL"); logLevel != "" {
		config.LogLevel = logLevel
	}
}

// validate validates the configuration
func validate(config *Config) error {
	if config.Server.Port <= 0 || config.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", config.Server.Port)
	}

	if config.Claims.BridgeDelay < 0 {
		return fmt.Errorf("claims bridge delay must not be negative")
	}

	if config.Insight.Timeout <= 0 {
		return fmt.Errorf("insight timeout must be positive")
	}

	if config.Monitoring.SamplingRate < 0 || config.Monitoring.SamplingRate > 1 {
		return fmt.Errorf("invalid sampling rate: %f", config.Monitoring.SamplingRate)
	}

	return nil
}
