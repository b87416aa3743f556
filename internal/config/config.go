// Package config loads the startup parameters of the lockstep CLI.
//
// Parameters come from an optional YAML or JSON file, then LOCKSTEP_* environment
// variables, then command line flags applied by the caller. The set of keys is
// closed: unknown keys are rejected.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v3"
)

// EnvPrefix prefixes the environment variable of every key.
const EnvPrefix = "LOCKSTEP_"

// Transport names.
const (
	TransportMQTT   = "mqtt"
	TransportRedis  = "redis"
	TransportMemory = "memory"
)

// Config holds every startup parameter.
type Config struct {
	TickIntervalMS int    `mapstructure:"tick_interval_ms" yaml:"tick_interval_ms" json:"tick_interval_ms"`
	MQTTURL        string `mapstructure:"mqtt_url" yaml:"mqtt_url" json:"mqtt_url"`
	MQTTUser       string `mapstructure:"mqtt_user" yaml:"mqtt_user" json:"mqtt_user"`
	MQTTPassword   string `mapstructure:"mqtt_password" yaml:"mqtt_password" json:"-"`
	Transport      string `mapstructure:"transport" yaml:"transport" json:"transport"`
	RedisAddr      string `mapstructure:"redis_addr" yaml:"redis_addr" json:"redis_addr"`
	MetricsAddr    string `mapstructure:"metrics_addr" yaml:"metrics_addr" json:"metrics_addr"`
	TotalSpaces    int    `mapstructure:"total_spaces" yaml:"total_spaces" json:"total_spaces"`
}

// Keys lists the accepted configuration keys.
var Keys = []string{
	"tick_interval_ms",
	"mqtt_url",
	"mqtt_user",
	"mqtt_password",
	"transport",
	"redis_addr",
	"metrics_addr",
	"total_spaces",
}

// Default returns the configuration used when nothing is set.
func Default() Config {
	return Config{
		TickIntervalMS: 500,
		MQTTURL:        "tcp://localhost:1883",
		Transport:      TransportMQTT,
		RedisAddr:      "localhost:6379",
		TotalSpaces:    5,
	}
}

// TickInterval returns the tick interval as a duration.
func (c Config) TickInterval() time.Duration {
	return time.Duration(c.TickIntervalMS) * time.Millisecond
}

// Validate checks value ranges and transport specific requirements.
func (c Config) Validate() error {
	var errs []error
	if c.TickIntervalMS <= 0 {
		errs = append(errs, fmt.Errorf("tick_interval_ms must be positive, got %d", c.TickIntervalMS))
	}
	if c.TotalSpaces < 1 {
		errs = append(errs, fmt.Errorf("total_spaces must be at least 1, got %d", c.TotalSpaces))
	}
	switch c.Transport {
	case TransportMQTT:
		if c.MQTTURL == "" {
			errs = append(errs, errors.New("mqtt_url is required for the mqtt transport"))
		}
	case TransportRedis:
		if c.RedisAddr == "" {
			errs = append(errs, errors.New("redis_addr is required for the redis transport"))
		}
	case TransportMemory:
	default:
		errs = append(errs, fmt.Errorf("unknown transport %q (want mqtt, redis or memory)", c.Transport))
	}
	return errors.Join(errs...)
}

// Load reads path (if not empty) and the process environment.
func Load(path string) (Config, error) {
	return LoadWithEnv(path, os.LookupEnv)
}

// LoadWithEnv is Load with an injectable environment lookup.
func LoadWithEnv(path string, lookup func(string) (string, bool)) (Config, error) {
	raw := map[string]any{}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("failed to read config: %w", err)
		}

		if strings.ToLower(filepath.Ext(path)) == ".json" {
			err = json.Unmarshal(data, &raw)
		} else {
			// Default to YAML
			err = yaml.Unmarshal(data, &raw)
		}
		if err != nil {
			return Config{}, fmt.Errorf("failed to parse %s: %w", filepath.Base(path), err)
		}
	}

	for _, key := range Keys {
		if v, ok := lookup(EnvPrefix + strings.ToUpper(key)); ok {
			raw[key] = v
		}
	}

	cfg := Default()
	if err := decode(raw, &cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func decode(raw map[string]any, cfg *Config) error {
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           cfg,
		ErrorUnused:      true,
		WeaklyTypedInput: true,
		TagName:          "mapstructure",
	})
	if err != nil {
		return err
	}
	if err := dec.Decode(raw); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}
