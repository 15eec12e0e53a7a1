package main

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config is the process configuration: a YAML file with environment
// overrides. Physics tuning is compiled in (shared with the renderer), so
// only operational knobs live here.
type Config struct {
	Server struct {
		Addr string `yaml:"addr"`
	} `yaml:"server"`
	Game struct {
		// AdminCode is the shared admin secret. Plain comparison, no
		// throttling; do not mistake it for a security control.
		AdminCode string `yaml:"admin_code"`
	} `yaml:"game"`
	Events struct {
		// NATSURL enables the match-event mirror when non-empty.
		NATSURL       string `yaml:"nats_url"`
		SubjectPrefix string `yaml:"subject_prefix"`
	} `yaml:"events"`
	Log struct {
		Level string `yaml:"level"`
	} `yaml:"log"`
}

func defaultConfig() *Config {
	cfg := &Config{}
	cfg.Server.Addr = ":8765"
	cfg.Game.AdminCode = "100"
	cfg.Events.SubjectPrefix = "pong.match"
	cfg.Log.Level = "info"
	return cfg
}

// loadConfig reads the YAML file at path on top of the defaults. A missing
// file is not an error; the defaults stand.
func loadConfig(path string) (*Config, error) {
	cfg := defaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	return cfg, nil
}

// applyEnv lets the environment override the file.
func (c *Config) applyEnv() {
	c.Server.Addr = getEnv("ADDR", c.Server.Addr)
	c.Game.AdminCode = getEnv("ADMIN_CODE", c.Game.AdminCode)
	c.Events.NATSURL = getEnv("NATS_URL", c.Events.NATSURL)
	c.Events.SubjectPrefix = getEnv("EVENTS_SUBJECT_PREFIX", c.Events.SubjectPrefix)
	c.Log.Level = getEnv("LOG_LEVEL", c.Log.Level)
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
