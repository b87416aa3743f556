package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func env(vars map[string]string) func(string) (string, bool) {
	return func(k string) (string, bool) {
		v, ok := vars[k]
		return v, ok
	}
}

func write(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := LoadWithEnv("", env(nil))
	require.NoError(t, err)

	assert.Equal(t, Default(), cfg)
	assert.Equal(t, 500*time.Millisecond, cfg.TickInterval())
	assert.NoError(t, cfg.Validate())
}

func TestLoad_YAML(t *testing.T) {
	path := write(t, "lockstep.yaml", `
tick_interval_ms: 250
mqtt_url: tcp://broker:1883
mqtt_user: sorrir
mqtt_password: secret
total_spaces: 12
`)

	cfg, err := LoadWithEnv(path, env(nil))
	require.NoError(t, err)

	assert.Equal(t, 250, cfg.TickIntervalMS)
	assert.Equal(t, "tcp://broker:1883", cfg.MQTTURL)
	assert.Equal(t, "sorrir", cfg.MQTTUser)
	assert.Equal(t, "secret", cfg.MQTTPassword)
	assert.Equal(t, 12, cfg.TotalSpaces)
	assert.Equal(t, TransportMQTT, cfg.Transport)
}

func TestLoad_JSON(t *testing.T) {
	path := write(t, "lockstep.json", `{"transport": "redis", "redis_addr": "cache:6379", "tick_interval_ms": 100}`)

	cfg, err := LoadWithEnv(path, env(nil))
	require.NoError(t, err)

	assert.Equal(t, TransportRedis, cfg.Transport)
	assert.Equal(t, "cache:6379", cfg.RedisAddr)
	assert.Equal(t, 100, cfg.TickIntervalMS)
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	path := write(t, "lockstep.yaml", "tick_interval_ms: 250\ntransport: mqtt\n")

	cfg, err := LoadWithEnv(path, env(map[string]string{
		"LOCKSTEP_TICK_INTERVAL_MS": "50",
		"LOCKSTEP_TRANSPORT":        "memory",
	}))
	require.NoError(t, err)

	assert.Equal(t, 50, cfg.TickIntervalMS)
	assert.Equal(t, TransportMemory, cfg.Transport)
}

func TestLoad_RejectsUnknownKeys(t *testing.T) {
	path := write(t, "lockstep.yaml", "tick_interval_ms: 250\nbroker: tcp://x\n")

	_, err := LoadWithEnv(path, env(nil))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "broker")
}

func TestLoad_Errors(t *testing.T) {
	_, err := LoadWithEnv(filepath.Join(t.TempDir(), "missing.yaml"), env(nil))
	assert.Error(t, err)

	_, err = LoadWithEnv(write(t, "bad.yaml", "tick_interval_ms: [1"), env(nil))
	assert.Error(t, err)

	_, err = LoadWithEnv("", env(map[string]string{"LOCKSTEP_TOTAL_SPACES": "many"}))
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"zero interval", func(c *Config) { c.TickIntervalMS = 0 }},
		{"no spaces", func(c *Config) { c.TotalSpaces = 0 }},
		{"unknown transport", func(c *Config) { c.Transport = "carrier-pigeon" }},
		{"mqtt without url", func(c *Config) { c.MQTTURL = "" }},
		{"redis without addr", func(c *Config) { c.Transport = TransportRedis; c.RedisAddr = "" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(&cfg)
			assert.Error(t, cfg.Validate())
		})
	}

	cfg := Default()
	cfg.Transport = TransportMemory
	cfg.MQTTURL = ""
	assert.NoError(t, cfg.Validate())
}
