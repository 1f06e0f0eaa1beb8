// Package config loads the wizard's settings from an optional YAML file and
// PROFILEFLOW_* environment variables. Environment values win.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	EnvAPIURL   = "PROFILEFLOW_API_URL"
	EnvAPIToken = "PROFILEFLOW_API_TOKEN"
	EnvLogMode  = "PROFILEFLOW_LOG_MODE"
	EnvLogLevel = "PROFILEFLOW_LOG_LEVEL"
	EnvTimeout  = "PROFILEFLOW_TIMEOUT"
)

type Config struct {
	API       API       `yaml:"api"`
	Log       Log       `yaml:"log"`
	Endpoints Endpoints `yaml:"endpoints"`
	// Steps points at a field definition file replacing the embedded one.
	Steps string `yaml:"steps"`
	// Contract enables payload checks against the bundled OpenAPI document
	// before each submission. Off by default.
	Contract bool `yaml:"contract"`
}

type API struct {
	BaseURL string        `yaml:"base_url"`
	Token   string        `yaml:"token"`
	Timeout time.Duration `yaml:"timeout"`
}

type Log struct {
	Mode  string `yaml:"mode"`
	Level string `yaml:"level"`
}

// Endpoints overrides API paths. Blank entries keep the client defaults.
type Endpoints struct {
	Dropdowns string `yaml:"dropdowns"`
	Countries string `yaml:"countries"`
	States    string `yaml:"states"`
	Cities    string `yaml:"cities"`
	Castes    string `yaml:"castes"`
	Profile   string `yaml:"profile"`
	Step      string `yaml:"step"`
	Skip      string `yaml:"skip"`
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		API: API{Timeout: 15 * time.Second},
		Log: Log{Mode: "development", Level: "info"},
	}
}

// Load reads path (when not empty) over the defaults and applies the
// process environment.
func Load(path string) (Config, error) {
	return LoadWithEnv(path, os.LookupEnv)
}

// LoadWithEnv is Load with an injectable environment lookup.
func LoadWithEnv(path string, lookup func(string) (string, bool)) (Config, error) {
	cfg := Default()
	if path = strings.TrimSpace(path); path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("config: read %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("config: parse %s: %w", path, err)
		}
	}
	if lookup != nil {
		if err := applyEnv(&cfg, lookup); err != nil {
			return Config{}, err
		}
	}
	return cfg, nil
}

func applyEnv(cfg *Config, lookup func(string) (string, bool)) error {
	if v, ok := lookup(EnvAPIURL); ok && strings.TrimSpace(v) != "" {
		cfg.API.BaseURL = strings.TrimSpace(v)
	}
	if v, ok := lookup(EnvAPIToken); ok {
		cfg.API.Token = strings.TrimSpace(v)
	}
	if v, ok := lookup(EnvLogMode); ok && strings.TrimSpace(v) != "" {
		cfg.Log.Mode = strings.TrimSpace(v)
	}
	if v, ok := lookup(EnvLogLevel); ok && strings.TrimSpace(v) != "" {
		cfg.Log.Level = strings.TrimSpace(v)
	}
	if v, ok := lookup(EnvTimeout); ok && strings.TrimSpace(v) != "" {
		d, err := time.ParseDuration(strings.TrimSpace(v))
		if err != nil {
			return fmt.Errorf("config: %s: %w", EnvTimeout, err)
		}
		cfg.API.Timeout = d
	}
	return nil
}

// Validate checks the settings needed to reach a remote API.
func (c Config) Validate() error {
	var errs []error
	if strings.TrimSpace(c.API.BaseURL) == "" {
		errs = append(errs, fmt.Errorf("config: api.base_url is required (or set %s)", EnvAPIURL))
	}
	if c.API.Timeout < 0 {
		errs = append(errs, errors.New("config: api.timeout must not be negative"))
	}
	return errors.Join(errs...)
}
