// Package config loads bpilive settings from defaults, an optional YAML
// file, BPILIVE_* environment variables and command-line flags, in that
// order of increasing precedence.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"bpilive/internal/bpi"
	"bpilive/internal/currencies"
	"bpilive/internal/date"
	"bpilive/internal/format"
)

// Config holds all bpilive configuration.
type Config struct {
	API     APIConfig     `mapstructure:"api"`
	Refresh RefreshConfig `mapstructure:"refresh"`
	Display DisplayConfig `mapstructure:"display"`
	Window  WindowConfig  `mapstructure:"window"`
	Mock    bool          `mapstructure:"mock"`
	Verbose bool          `mapstructure:"verbose"`
}

type APIConfig struct {
	BaseURL string        `mapstructure:"base_url"`
	Timeout time.Duration `mapstructure:"timeout"`
}

type RefreshConfig struct {
	Interval time.Duration `mapstructure:"interval"`
}

// DisplayConfig is the initial selection. Empty Start/End mean one month
// up to today.
type DisplayConfig struct {
	Currency string `mapstructure:"currency"`
	Locale   string `mapstructure:"locale"`
	Start    string `mapstructure:"start"`
	End      string `mapstructure:"end"`
}

type WindowConfig struct {
	Width  int `mapstructure:"width"`
	Height int `mapstructure:"height"`
}

// flagKeys maps command-line flag names to config keys.
var flagKeys = map[string]string{
	"currency": "display.currency",
	"locale":   "display.locale",
	"start":    "display.start",
	"end":      "display.end",
	"interval": "refresh.interval",
	"api-url":  "api.base_url",
	"mock":     "mock",
	"verbose":  "verbose",
}

// Load reads config.yaml from the working directory or ~/.bpilive, or from
// path when it is not empty. A missing file in the search path is not an
// error. Flags that were set on the command line win over everything else.
func Load(path string, flags *pflag.FlagSet) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath(filepath.Join(homeDir(), ".bpilive"))
	}

	v.SetEnvPrefix("BPILIVE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	if flags != nil {
		for name, key := range flagKeys {
			f := flags.Lookup(name)
			if f == nil {
				continue
			}
			if err := v.BindPFlag(key, f); err != nil {
				return nil, fmt.Errorf("bind flag --%s: %w", name, err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}
	cfg.Display.Currency = strings.ToUpper(cfg.Display.Currency)
	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("api.base_url", bpi.DefaultBaseURL)
	v.SetDefault("api.timeout", 10*time.Second)

	v.SetDefault("refresh.interval", 10*time.Second)

	v.SetDefault("display.currency", "USD")
	v.SetDefault("display.locale", format.DefaultLocale)
	v.SetDefault("display.start", "")
	v.SetDefault("display.end", "")

	v.SetDefault("window.width", 640)
	v.SetDefault("window.height", 480)

	v.SetDefault("mock", false)
	v.SetDefault("verbose", false)
}

// Validate checks the values the rest of the program relies on.
func (c *Config) Validate() error {
	if c.API.BaseURL == "" {
		return fmt.Errorf("api.base_url must be set")
	}
	if c.API.Timeout <= 0 {
		return fmt.Errorf("api.timeout must be positive, got %s", c.API.Timeout)
	}
	if c.Refresh.Interval < time.Second {
		return fmt.Errorf("refresh.interval must be at least 1s, got %s", c.Refresh.Interval)
	}
	if !currencies.Supported(c.Display.Currency) {
		return fmt.Errorf("unsupported currency %q", c.Display.Currency)
	}
	if _, ok := format.LookupLocale(c.Display.Locale); !ok {
		return fmt.Errorf("unsupported locale %q", c.Display.Locale)
	}
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		return fmt.Errorf("window size must be positive, got %dx%d", c.Window.Width, c.Window.Height)
	}
	if _, _, err := c.Range(date.Today()); err != nil {
		return err
	}
	return nil
}

// Range resolves the configured start and end dates against today.
func (c *Config) Range(today date.Date) (start, end date.Date, err error) {
	end = today
	if c.Display.End != "" {
		if end, err = date.Parse(c.Display.End); err != nil {
			return date.Date{}, date.Date{}, fmt.Errorf("display.end: %w", err)
		}
	}
	start = end.AddMonths(-1)
	if c.Display.Start != "" {
		if start, err = date.Parse(c.Display.Start); err != nil {
			return date.Date{}, date.Date{}, fmt.Errorf("display.start: %w", err)
		}
	}
	if start.After(end) || end.After(today) {
		return date.Date{}, date.Date{}, fmt.Errorf("date range %s..%s: need start <= end <= %s", start, end, today)
	}
	return start, end, nil
}

func homeDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return home
}
