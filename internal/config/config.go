// Package config loads Statline settings from flags, STATLINE_* env vars and an
// optional YAML file, plus the optional scoring rules file.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

const (
	KeyDB         = "db"
	KeyRules      = "rules"
	KeyLogLevel   = "log-level"
	KeyLogFormat  = "log-format"
	KeyListenAddr = "listen"

	EnvPrefix = "STATLINE"
)

type Config struct {
	DBPath     string
	RulesPath  string
	LogLevel   string
	LogFormat  string
	ListenAddr string
}

// NewViper returns a viper instance with defaults, env binding and the optional
// config file (~/.statline.yaml or $STATLINE_CONFIG) already read.
func NewViper() (*viper.Viper, error) {
	v := viper.New()
	v.SetDefault(KeyLogLevel, "warn")
	v.SetDefault(KeyLogFormat, "console")
	v.SetDefault(KeyListenAddr, "127.0.0.1:8787")

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	path := os.Getenv(EnvPrefix + "_CONFIG")
	if path == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return v, nil
		}
		path = filepath.Join(home, ".statline.yaml")
	}
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) || errors.Is(err, os.ErrNotExist) {
			return v, nil
		}
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	return v, nil
}

// FromViper reads and validates the settings.
func FromViper(v *viper.Viper) (*Config, error) {
	cfg := &Config{
		DBPath:     strings.TrimSpace(v.GetString(KeyDB)),
		RulesPath:  strings.TrimSpace(v.GetString(KeyRules)),
		LogLevel:   strings.TrimSpace(v.GetString(KeyLogLevel)),
		LogFormat:  strings.TrimSpace(v.GetString(KeyLogFormat)),
		ListenAddr: strings.TrimSpace(v.GetString(KeyListenAddr)),
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	switch strings.ToLower(c.LogFormat) {
	case "console", "json":
	default:
		return fmt.Errorf("config.log-format must be console or json, got %q", c.LogFormat)
	}
	if c.ListenAddr == "" {
		return fmt.Errorf("config.listen is required")
	}
	return nil
}
