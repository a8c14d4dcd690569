// Package config loads browser settings from defaults, an optional YAML
// file and BROWSER_* environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// EnvPrefix is the prefix for environment overrides, e.g.
// BROWSER_VIEWPORT_WIDTH=1024.
const EnvPrefix = "BROWSER"

type Config struct {
	Viewport ViewportConfig `mapstructure:"viewport" yaml:"viewport"`
	Style    StyleConfig    `mapstructure:"style" yaml:"style"`
	Script   ScriptConfig   `mapstructure:"script" yaml:"script"`
	Fetch    FetchConfig    `mapstructure:"fetch" yaml:"fetch"`
	Logger   LoggerConfig   `mapstructure:"logger" yaml:"logger"`
}

type ViewportConfig struct {
	Width  int `mapstructure:"width" yaml:"width"`
	Height int `mapstructure:"height" yaml:"height"`
}

// StyleConfig holds the user stylesheet, applied after all page styles.
type StyleConfig struct {
	UserCSS     string `mapstructure:"user_css" yaml:"user_css"`
	UserCSSFile string `mapstructure:"user_css_file" yaml:"user_css_file"`
}

type ScriptConfig struct {
	Enabled bool `mapstructure:"enabled" yaml:"enabled"`
	// MaxTimerRuns bounds how many timer callbacks a host drains in one
	// go. Zero runs none.
	MaxTimerRuns int `mapstructure:"max_timer_runs" yaml:"max_timer_runs"`
	// MaxSteps bounds the statements one script or callback may run.
	// Zero disables the limit.
	MaxSteps int `mapstructure:"max_steps" yaml:"max_steps"`
}

type FetchConfig struct {
	Timeout   time.Duration `mapstructure:"timeout" yaml:"timeout"`
	UserAgent string        `mapstructure:"user_agent" yaml:"user_agent"`
}

type LoggerConfig struct {
	Level       string `mapstructure:"level" yaml:"level"`
	Format      string `mapstructure:"format" yaml:"format"`
	AddSource   bool   `mapstructure:"add_source" yaml:"add_source"`
	ServiceName string `mapstructure:"service_name" yaml:"service_name"`
	LogFile     string `mapstructure:"log_file" yaml:"log_file"`
	MaxSize     int    `mapstructure:"max_size" yaml:"max_size"`
	MaxBackups  int    `mapstructure:"max_backups" yaml:"max_backups"`
	MaxAge      int    `mapstructure:"max_age" yaml:"max_age"`
	Compress    bool   `mapstructure:"compress" yaml:"compress"`
}

// SetDefaults registers every default value on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("viewport.width", 900)
	v.SetDefault("viewport.height", 700)

	v.SetDefault("style.user_css", "")
	v.SetDefault("style.user_css_file", "")

	v.SetDefault("script.enabled", true)
	v.SetDefault("script.max_timer_runs", 1000)
	v.SetDefault("script.max_steps", 1000000)

	v.SetDefault("fetch.timeout", "30s")
	v.SetDefault("fetch.user_agent", "browser/0.1")

	v.SetDefault("logger.level", "info")
	v.SetDefault("logger.format", "console")
	v.SetDefault("logger.add_source", false)
	v.SetDefault("logger.service_name", "browser")
	v.SetDefault("logger.log_file", "")
	v.SetDefault("logger.max_size", 10)
	v.SetDefault("logger.max_backups", 3)
	v.SetDefault("logger.max_age", 7)
	v.SetDefault("logger.compress", false)
}

// Default returns the configuration with nothing but defaults applied.
func Default() *Config {
	v := viper.New()
	SetDefaults(v)
	cfg, err := NewConfigFromViper(v)
	if err != nil {
		// defaults are always valid
		panic(err)
	}
	return cfg
}

// Load reads configuration into v. An explicit path must exist; without
// one, browser.yaml in the working directory is used when present.
func Load(v *viper.Viper, path string) (*Config, error) {
	SetDefaults(v)
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.AddConfigPath(".")
		v.SetConfigName("browser")
		v.SetConfigType("yaml")
	}
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}
	return NewConfigFromViper(v)
}

// NewConfigFromViper unmarshals and validates v.
func NewConfigFromViper(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return &cfg, nil
}

// Validate checks ranges that would otherwise produce a blank page.
func (c *Config) Validate() error {
	if c.Viewport.Width <= 0 || c.Viewport.Height <= 0 {
		return fmt.Errorf("viewport must be positive, got %dx%d", c.Viewport.Width, c.Viewport.Height)
	}
	if c.Script.MaxTimerRuns < 0 {
		return fmt.Errorf("script.max_timer_runs must not be negative")
	}
	if c.Script.MaxSteps < 0 {
		return fmt.Errorf("script.max_steps must not be negative")
	}
	if c.Fetch.Timeout < 0 {
		return fmt.Errorf("fetch.timeout must not be negative")
	}
	return nil
}

// UserStylesheet returns the inline user CSS followed by the contents of
// the user CSS file, if one is configured.
func (c *Config) UserStylesheet() (string, error) {
	css := c.Style.UserCSS
	if c.Style.UserCSSFile == "" {
		return css, nil
	}
	data, err := os.ReadFile(c.Style.UserCSSFile)
	if err != nil {
		return "", fmt.Errorf("reading user stylesheet: %w", err)
	}
	if css != "" {
		css += "\n"
	}
	return css + string(data), nil
}
