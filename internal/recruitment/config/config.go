// Package config loads the recruitment configuration from an optional YAML
// file, RECRUITMENT_* environment variables and built-in defaults.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gartstein/recruitment/internal/recruitment/models"
	"github.com/spf13/viper"
)

const (
	fileName  = "recruitment"
	envPrefix = "RECRUITMENT"

	minIDLength = 4
	maxIDLength = models.MaxIDLength
)

// Config holds all configuration for the application
type Config struct {
	Log   LogConfig   `mapstructure:"log"`
	Kafka KafkaConfig `mapstructure:"kafka"`
	Seed  SeedConfig  `mapstructure:"seed"`
	ID    IDConfig    `mapstructure:"id"`
}

type LogConfig struct {
	Level       string `mapstructure:"level"`
	Development bool   `mapstructure:"development"`
}

// KafkaConfig configures the domain event stream. When Enabled is false
// the registry discards its events.
type KafkaConfig struct {
	Enabled     bool          `mapstructure:"enabled"`
	Brokers     []string      `mapstructure:"brokers"`
	Topic       string        `mapstructure:"topic"`
	GroupID     string        `mapstructure:"group_id"`
	QueueSize   int           `mapstructure:"queue_size"`
	DialTimeout time.Duration `mapstructure:"dial_timeout"`
}

type SeedConfig struct {
	Path string `mapstructure:"path"`
}

// IDConfig sets the length of generated contractor and job IDs.
type IDConfig struct {
	Length int `mapstructure:"length"`
}

// Load reads configuration. An empty path searches ".", "./config" and
// "$HOME/.config/recruitment" for recruitment.yaml and tolerates its
// absence; a non-empty path must exist. Environment variables override
// file values, e.g. RECRUITMENT_KAFKA_ENABLED=true.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName(fileName)
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, ".config", fileName))
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Default returns the configuration used when no file or environment
// overrides are present.
func Default() *Config {
	return &Config{
		Log: LogConfig{Level: "info"},
		Kafka: KafkaConfig{
			Brokers:     []string{"localhost:9092"},
			Topic:       "recruitment.events",
			GroupID:     "recruitment-cli",
			QueueSize:   1000,
			DialTimeout: 30 * time.Second,
		},
		ID: IDConfig{Length: 5},
	}
}

func setDefaults(v *viper.Viper) {
	d := Default()
	v.SetDefault("log.level", d.Log.Level)
	v.SetDefault("log.development", d.Log.Development)
	v.SetDefault("kafka.enabled", d.Kafka.Enabled)
	v.SetDefault("kafka.brokers", d.Kafka.Brokers)
	v.SetDefault("kafka.topic", d.Kafka.Topic)
	v.SetDefault("kafka.group_id", d.Kafka.GroupID)
	v.SetDefault("kafka.queue_size", d.Kafka.QueueSize)
	v.SetDefault("kafka.dial_timeout", d.Kafka.DialTimeout)
	v.SetDefault("seed.path", d.Seed.Path)
	v.SetDefault("id.length", d.ID.Length)
}

// Validate checks the values Load cannot express as types.
func (c *Config) Validate() error {
	var errs []error
	if c.Kafka.QueueSize <= 0 {
		errs = append(errs, fmt.Errorf("kafka.queue_size must be positive, got %d", c.Kafka.QueueSize))
	}
	if c.Kafka.Enabled {
		if len(c.Kafka.Brokers) == 0 {
			errs = append(errs, errors.New("kafka.brokers is required when kafka is enabled"))
		}
		if c.Kafka.Topic == "" {
			errs = append(errs, errors.New("kafka.topic is required when kafka is enabled"))
		}
	}
	if c.ID.Length < minIDLength || c.ID.Length > maxIDLength {
		errs = append(errs, fmt.Errorf("id.length must be between %d and %d, got %d",
			minIDLength, maxIDLength, c.ID.Length))
	}
	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}
