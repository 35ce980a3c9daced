// Package config holds the runtime configuration of the hub server.
package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

const (
	SessionStoreMemory = "memory"
	SessionStoreRedis  = "redis"

	EventBusGoChannel = "gochannel"
	EventBusKafka     = "kafka"
)

// Config is assembled from an optional YAML file overlaid by command line flags.
type Config struct {
	Port         int           `yaml:"port"          validate:"min=1,max=65535"`
	LogLevel     string        `yaml:"log_level"     validate:"oneof=debug info warn error"`
	LogFormat    string        `yaml:"log_format"    validate:"oneof=text json"`
	LatencyScale float64       `yaml:"latency_scale" validate:"gte=0,lte=10"`
	CatalogPath  string        `yaml:"catalog"`
	ServiceName  string        `yaml:"service_name"  validate:"required"`
	Tracing      bool          `yaml:"tracing"`
	SecureCookie bool          `yaml:"secure_cookie"`
	DemoIdentity string        `yaml:"demo_identity"`
	Session      SessionConfig `yaml:"session"`
	Events       EventsConfig  `yaml:"events"`
}

type SessionConfig struct {
	Store         string        `yaml:"store"          validate:"oneof=memory redis"`
	TTL           time.Duration `yaml:"ttl"            validate:"gte=1m"`
	RedisURL      string        `yaml:"redis_url"      validate:"required_if=Store redis"`
	SweepSchedule string        `yaml:"sweep_schedule" validate:"required"`
}

type EventsConfig struct {
	Bus          string   `yaml:"bus"           validate:"oneof=gochannel kafka"`
	KafkaBrokers []string `yaml:"kafka_brokers" validate:"required_if=Bus kafka"`
}

// Default returns the configuration of a single in-memory hub on port 3000.
func Default() Config {
	return Config{
		Port:         3000,
		LogLevel:     "info",
		LogFormat:    "text",
		LatencyScale: 1,
		ServiceName:  "projecthub",
		Session: SessionConfig{
			Store:         SessionStoreMemory,
			TTL:           8 * time.Hour,
			SweepSchedule: "@every 1m",
		},
		Events: EventsConfig{
			Bus: EventBusGoChannel,
		},
	}
}

// LoadFile reads a YAML file over the defaults. Keys absent from the file keep their
// default value.
func LoadFile(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("failed to parse YAML config: %w", err)
	}

	return cfg, nil
}

func (c Config) Validate() error {
	validate := validator.New(validator.WithRequiredStructEnabled())

	if err := validate.Struct(c); err != nil {
		var validationErrors validator.ValidationErrors
		if errors.As(err, &validationErrors) && len(validationErrors) > 0 {
			first := validationErrors[0]

			return fmt.Errorf("invalid configuration: %s failed on '%s'", first.Namespace(), first.Tag())
		}

		return fmt.Errorf("invalid configuration: %w", err)
	}

	return nil
}
