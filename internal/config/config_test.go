package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/require"

	"bpilive/internal/bpi"
	"bpilive/internal/date"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoadDefaults(t *testing.T) {
	rq := require.New(t)
	t.Chdir(t.TempDir())
	t.Setenv("HOME", t.TempDir())

	cfg, err := Load("", nil)
	rq.NoError(err)
	rq.Equal(bpi.DefaultBaseURL, cfg.API.BaseURL)
	rq.Equal(10*time.Second, cfg.API.Timeout)
	rq.Equal(10*time.Second, cfg.Refresh.Interval)
	rq.Equal("USD", cfg.Display.Currency)
	rq.Equal("en-US", cfg.Display.Locale)
	rq.Equal(640, cfg.Window.Width)
	rq.False(cfg.Mock)
	rq.NoError(cfg.Validate())
}

func TestLoadFromFile(t *testing.T) {
	rq := require.New(t)
	path := writeConfig(t, `
api:
  timeout: 3s
refresh:
  interval: 30s
display:
  currency: eur
  locale: es
window:
  width: 800
`)

	cfg, err := Load(path, nil)
	rq.NoError(err)
	rq.Equal(3*time.Second, cfg.API.Timeout)
	rq.Equal(30*time.Second, cfg.Refresh.Interval)
	rq.Equal("EUR", cfg.Display.Currency)
	rq.Equal("es", cfg.Display.Locale)
	rq.Equal(800, cfg.Window.Width)
	rq.Equal(480, cfg.Window.Height)
}

func TestLoadMissingExplicitFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"), nil)
	require.Error(t, err)
}

func TestEnvAndFlagsOverride(t *testing.T) {
	rq := require.New(t)
	path := writeConfig(t, "display:\n  currency: GBP\n")
	t.Setenv("BPILIVE_DISPLAY_LOCALE", "es")
	t.Setenv("BPILIVE_DISPLAY_CURRENCY", "JPY")

	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.String("currency", "", "")
	flags.Duration("interval", 0, "")
	rq.NoError(flags.Parse([]string{"--currency", "CHF"}))

	cfg, err := Load(path, flags)
	rq.NoError(err)
	rq.Equal("CHF", cfg.Display.Currency)
	rq.Equal("es", cfg.Display.Locale)
	rq.Equal(10*time.Second, cfg.Refresh.Interval)
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		return &Config{
			API:     APIConfig{BaseURL: "http://x", Timeout: time.Second},
			Refresh: RefreshConfig{Interval: 10 * time.Second},
			Display: DisplayConfig{Currency: "USD", Locale: "en-US"},
			Window:  WindowConfig{Width: 640, Height: 480},
		}
	}
	require.NoError(t, valid().Validate())

	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"empty url", func(c *Config) { c.API.BaseURL = "" }},
		{"zero timeout", func(c *Config) { c.API.Timeout = 0 }},
		{"fast refresh", func(c *Config) { c.Refresh.Interval = 100 * time.Millisecond }},
		{"unknown currency", func(c *Config) { c.Display.Currency = "XXX" }},
		{"unknown locale", func(c *Config) { c.Display.Locale = "fr" }},
		{"no window", func(c *Config) { c.Window.Width = 0 }},
		{"bad date", func(c *Config) { c.Display.Start = "2021/04/01" }},
		{"future end", func(c *Config) { c.Display.End = "2999-01-01" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := valid()
			tt.mutate(c)
			require.Error(t, c.Validate())
		})
	}
}

func TestRange(t *testing.T) {
	rq := require.New(t)
	today := date.New(2021, time.April, 10)

	c := &Config{}
	start, end, err := c.Range(today)
	rq.NoError(err)
	rq.Equal("2021-03-10", start.String())
	rq.Equal("2021-04-10", end.String())

	c.Display = DisplayConfig{Start: "2021-01-01", End: "2021-02-01"}
	start, end, err = c.Range(today)
	rq.NoError(err)
	rq.Equal("2021-01-01", start.String())
	rq.Equal("2021-02-01", end.String())

	c.Display = DisplayConfig{Start: "2021-03-01", End: "2021-02-01"}
	_, _, err = c.Range(today)
	rq.Error(err)
}
