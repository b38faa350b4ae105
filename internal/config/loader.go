package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"time"

	toml "github.com/pelletier/go-toml/v2"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// Config holds the parameters of an evtwatch run.
// Zero values mean "unspecified" and are replaced by Defaults.
type Config struct {
	URL         string            `json:"url" yaml:"url" toml:"url"`
	Headers     map[string]string `json:"headers" yaml:"headers" toml:"headers"`
	Events      []string          `json:"events" yaml:"events" toml:"events"`
	NamePath    string            `json:"name_path" yaml:"name_path" toml:"name_path"`
	KeepAlive   string            `json:"keep_alive" yaml:"keep_alive" toml:"keep_alive"`
	Reconnect   bool              `json:"reconnect" yaml:"reconnect" toml:"reconnect"`
	MetricsAddr string            `json:"metrics_addr" yaml:"metrics_addr" toml:"metrics_addr"`
	LogLevel    string            `json:"log_level" yaml:"log_level" toml:"log_level"`
}

// Defaults fills unspecified fields.
func (c Config) Defaults() Config {
	if len(c.Events) == 0 {
		c.Events = []string{"open", "message", "close", "reconnect"}
	}
	if c.MetricsAddr == "" {
		c.MetricsAddr = ":9464"
	}
	if c.LogLevel == "" {
		c.LogLevel = "info"
	}
	return c
}

// KeepAliveInterval parses KeepAlive. An empty value disables keep-alive.
func (c Config) KeepAliveInterval() (time.Duration, error) {
	if c.KeepAlive == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(c.KeepAlive)
	if err != nil {
		return 0, errors.Wrapf(err, "invalid keep_alive %q", c.KeepAlive)
	}
	return d, nil
}

// Validate reports configuration that cannot be run.
func (c Config) Validate() error {
	if c.URL == "" {
		return errors.New("url is required")
	}
	if _, err := c.KeepAliveInterval(); err != nil {
		return err
	}
	return nil
}

// Load reads a configuration file based on its extension.
// Supports: .yaml/.yml, .json, .toml
func Load(path string) (Config, error) {
	var cfg Config
	if path == "" {
		return cfg, errors.New("empty config path")
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return cfg, errors.Wrap(err, "cannot read config")
	}
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(b, &cfg)
	case ".json":
		err = json.Unmarshal(b, &cfg)
	case ".toml":
		err = toml.Unmarshal(b, &cfg)
	default:
		return cfg, errors.Errorf("unsupported config extension: %s", ext)
	}
	if err != nil {
		return cfg, errors.Wrapf(err, "cannot parse %s", path)
	}
	return cfg, nil
}
