package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/fx"
)

const (
	EnvDevelopment = "development"
	EnvProduction  = "production"
)

// Config holds all configuration for the card validator service
type Config struct {
	Service ServiceConfig
	HTTP    HTTPConfig
	Logging LoggingConfig
	Kafka   KafkaConfig
}

// ServiceConfig holds service configuration
type ServiceConfig struct {
	Name        string
	Port        string
	Environment string
}

// IsDevelopment reports whether the service runs in the development environment
func (c *ServiceConfig) IsDevelopment() bool {
	return strings.EqualFold(c.Environment, EnvDevelopment)
}

// HTTPConfig holds fasthttp server tuning
type HTTPConfig struct {
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration
	MaxBodySize  int
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	Level  string
	Format string
}

// KafkaConfig holds configuration of the card validation event publisher
type KafkaConfig struct {
	Enabled            bool
	Brokers            []string
	TopicCardValidated string
}

// Result is fx.Out struct for providing config dependencies
type Result struct {
	fx.Out

	Config        *Config
	ServiceConfig *ServiceConfig
	HTTPConfig    *HTTPConfig
	LoggingConfig *LoggingConfig
	KafkaConfig   *KafkaConfig
}

// Out returns fx-compatible config result
func Out() (Result, error) {
	cfg, err := Load()
	if err != nil {
		return Result{}, err
	}

	return Result{
		Config:        cfg,
		ServiceConfig: &cfg.Service,
		HTTPConfig:    &cfg.HTTP,
		LoggingConfig: &cfg.Logging,
		KafkaConfig:   &cfg.Kafka,
	}, nil
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if exists
	_ = godotenv.Load()

	maxBodySize, err := strconv.Atoi(getEnv("HTTP_MAX_BODY_SIZE", "4096"))
	if err != nil {
		return nil, fmt.Errorf("invalid HTTP_MAX_BODY_SIZE: %w", err)
	}

	cfg := &Config{
		Service: ServiceConfig{
			Name:        getEnv("SERVICE_NAME", "card-validator"),
			Port:        getEnv("SERVICE_PORT", "8080"),
			Environment: strings.ToLower(getEnv("APP_ENV", EnvProduction)),
		},
		HTTP: HTTPConfig{
			ReadTimeout:  getEnvDuration("HTTP_READ_TIMEOUT", 5*time.Second),
			WriteTimeout: getEnvDuration("HTTP_WRITE_TIMEOUT", 10*time.Second),
			IdleTimeout:  getEnvDuration("HTTP_IDLE_TIMEOUT", 120*time.Second),
			MaxBodySize:  maxBodySize,
		},
		Logging: LoggingConfig{
			Level:  getEnv("LOG_LEVEL", "info"),
			Format: strings.ToLower(getEnv("LOG_FORMAT", "console")),
		},
		Kafka: KafkaConfig{
			Enabled:            getEnvBool("EVENTS_ENABLED", false),
			Brokers:            splitList(getEnv("KAFKA_BROKERS", "localhost:9093")),
			TopicCardValidated: getEnv("KAFKA_TOPIC_CARD_VALIDATED", "cards.validated"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	port, err := strconv.Atoi(c.Service.Port)
	if err != nil || port <= 0 || port > 65535 {
		return fmt.Errorf("SERVICE_PORT must be a valid port number, got %q", c.Service.Port)
	}

	switch c.Service.Environment {
	case EnvDevelopment, EnvProduction:
	default:
		return fmt.Errorf("APP_ENV must be %q or %q, got %q", EnvDevelopment, EnvProduction, c.Service.Environment)
	}

	if c.HTTP.MaxBodySize <= 0 {
		return fmt.Errorf("HTTP_MAX_BODY_SIZE must be positive")
	}

	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("LOG_FORMAT must be console or json, got %q", c.Logging.Format)
	}

	if c.Kafka.Enabled {
		if len(c.Kafka.Brokers) == 0 {
			return fmt.Errorf("KAFKA_BROKERS is required when EVENTS_ENABLED is set")
		}
		if c.Kafka.TopicCardValidated == "" {
			return fmt.Errorf("KAFKA_TOPIC_CARD_VALIDATED is required when EVENTS_ENABLED is set")
		}
	}

	return nil
}

// getEnv gets environment variable with default value
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

// getEnvDuration gets environment variable as duration with default value
func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	duration, err := time.ParseDuration(value)
	if err != nil {
		return defaultValue
	}
	return duration
}

// getEnvBool gets environment variable as bool with default value
func getEnvBool(key string, defaultValue bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	b, err := strconv.ParseBool(value)
	if err != nil {
		return defaultValue
	}
	return b
}

func splitList(value string) []string {
	parts := strings.Split(value, ",")
	result := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			result = append(result, p)
		}
	}
	return result
}
