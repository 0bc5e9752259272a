/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/suparena/factorytable/codec"
	"github.com/suparena/factorytable/errors"
	"github.com/suparena/factorytable/storagemodels"
	"gopkg.in/yaml.v3"
)

// Environment variables that override file settings.
const (
	EnvAccessKey    = "AWS_ACCESS_KEY"
	EnvSecretKey    = "AWS_SECRET_KEY"
	EnvRegion       = "AWS_REGION"
	EnvTable        = "AWS_DDB_TABLE"
	EnvEndpoint     = "AWS_DDB_ENDPOINT"
	EnvUnknownTypes = "FACTORYTABLE_UNKNOWN_TYPES"
	EnvLogLevel     = "FACTORYTABLE_LOG_LEVEL"
)

type Config struct {
	AWS     AWSConfig     `yaml:"aws"`
	Stream  StreamConfig  `yaml:"stream"`
	Decoder DecoderConfig `yaml:"decoder"`
	Log     LogConfig     `yaml:"log"`
}

type AWSConfig struct {
	AccessKey string `yaml:"access_key"`
	SecretKey string `yaml:"-"`
	Region    string `yaml:"region"`
	Table     string `yaml:"table"`
	Endpoint  string `yaml:"endpoint"`
}

type StreamConfig struct {
	BufferSize   int           `yaml:"buffer_size"`
	PageSize     int32         `yaml:"page_size"`
	MaxRetries   int           `yaml:"max_retries"`
	RetryBackoff time.Duration `yaml:"retry_backoff"`
}

type DecoderConfig struct {
	// UnknownTypes is "fail" or "generic".
	UnknownTypes string `yaml:"unknown_types"`
}

type LogConfig struct {
	Level       string `yaml:"level"`
	Development bool   `yaml:"development"`
}

// Default returns the configuration used when nothing else is set.
func Default() *Config {
	stream := storagemodels.DefaultStreamOptions()
	return &Config{
		AWS: AWSConfig{
			Region: "us-east-1",
		},
		Stream: StreamConfig{
			BufferSize:   stream.BufferSize,
			PageSize:     stream.PageSize,
			MaxRetries:   stream.MaxRetries,
			RetryBackoff: stream.RetryBackoff,
		},
		Decoder: DecoderConfig{
			UnknownTypes: codec.UnknownTypeFail.String(),
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// Load builds a Config from defaults, the YAML file at path (skipped when path
// is empty), a .env file in the working directory if present, and the
// environment, in that order. The result is validated.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
		}
	}

	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("failed to load .env: %w", err)
	}
	cfg.applyEnv()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyEnv() {
	override := func(dst *string, key string) {
		if v, ok := os.LookupEnv(key); ok && v != "" {
			*dst = v
		}
	}
	override(&c.AWS.AccessKey, EnvAccessKey)
	override(&c.AWS.SecretKey, EnvSecretKey)
	override(&c.AWS.Region, EnvRegion)
	override(&c.AWS.Table, EnvTable)
	override(&c.AWS.Endpoint, EnvEndpoint)
	override(&c.Decoder.UnknownTypes, EnvUnknownTypes)
	override(&c.Log.Level, EnvLogLevel)
}

// Validate checks the configuration for values the components cannot use.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.AWS.Region) == "" {
		return errors.NewValidationError("aws.region", "required")
	}
	if c.AWS.AccessKey != "" && c.AWS.SecretKey == "" {
		return errors.NewValidationError("aws.secret_key", "required when an access key is set")
	}
	if c.Stream.BufferSize < 0 {
		return errors.NewValidationError("stream.buffer_size", "must not be negative")
	}
	if c.Stream.PageSize <= 0 {
		return errors.NewValidationError("stream.page_size", "must be positive")
	}
	if c.Stream.MaxRetries < 0 {
		return errors.NewValidationError("stream.max_retries", "must not be negative")
	}
	if c.Stream.RetryBackoff < 0 {
		return errors.NewValidationError("stream.retry_backoff", "must not be negative")
	}
	if _, err := c.UnknownTypePolicy(); err != nil {
		return err
	}
	if _, err := parseLevel(c.Log.Level); err != nil {
		return err
	}
	return nil
}

// UnknownTypePolicy returns the decoder policy named by the configuration.
func (c *Config) UnknownTypePolicy() (codec.UnknownTypePolicy, error) {
	return codec.ParseUnknownTypePolicy(c.Decoder.UnknownTypes)
}

// StreamOptions converts the stream section into datastore stream options.
func (c *Config) StreamOptions() []storagemodels.StreamOption {
	return []storagemodels.StreamOption{
		storagemodels.WithBufferSize(c.Stream.BufferSize),
		storagemodels.WithPageSize(c.Stream.PageSize),
		storagemodels.WithMaxRetries(c.Stream.MaxRetries),
		storagemodels.WithRetryBackoff(c.Stream.RetryBackoff),
	}
}
