// Package config loads optional settings for the cloudtools binaries from
// ~/.cloudtools/config.yaml. A missing file yields the defaults; a
// present file only needs to set the fields it wants to change.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds settings for both tools.
type Config struct {
	Azure   AzureConfig   `yaml:"azure"`
	Browser BrowserConfig `yaml:"browser"`
}

// AzureConfig configures the az invoker.
type AzureConfig struct {
	// Binary is the az executable name or path.
	Binary string `yaml:"binary"`

	// TimeoutSeconds bounds each az invocation.
	TimeoutSeconds int `yaml:"timeout_seconds"`
}

// BrowserConfig configures browser sessions and extraction limits.
type BrowserConfig struct {
	Headless  *bool    `yaml:"headless"`
	Viewport  Viewport `yaml:"viewport"`
	TextLimit int      `yaml:"text_limit"`
	HTMLLimit int      `yaml:"html_limit"`
	TimeoutMS float64  `yaml:"timeout_ms"`
}

// Viewport is the browser window size.
type Viewport struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
}

// Default values applied to unset fields.
const (
	DefaultAzureBinary    = "az"
	DefaultAzureTimeout   = 120
	DefaultTextLimit      = 5000
	DefaultHTMLLimit      = 10000
	DefaultBrowserTimeout = 30000.0
	DefaultViewportWidth  = 1280
	DefaultViewportHeight = 720
)

// Default returns the built-in configuration.
func Default() Config {
	headless := true
	return Config{
		Azure: AzureConfig{
			Binary:         DefaultAzureBinary,
			TimeoutSeconds: DefaultAzureTimeout,
		},
		Browser: BrowserConfig{
			Headless:  &headless,
			Viewport:  Viewport{Width: DefaultViewportWidth, Height: DefaultViewportHeight},
			TextLimit: DefaultTextLimit,
			HTMLLimit: DefaultHTMLLimit,
			TimeoutMS: DefaultBrowserTimeout,
		},
	}
}

// Path returns the config file location under the user's home directory.
func Path() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(home, ".cloudtools", "config.yaml"), nil
}

// Load reads the config file at path and fills unset fields with
// defaults. An empty path resolves to Path(). A missing file is not an
// error; malformed YAML is.
func Load(path string) (Config, error) {
	cfg := Default()

	if path == "" {
		resolved, err := Path()
		if err != nil {
			return cfg, err
		}
		path = resolved
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("failed to read config: %w", err)
	}

	var loaded Config
	if err := yaml.Unmarshal(data, &loaded); err != nil {
		return cfg, fmt.Errorf("failed to parse config: %w", err)
	}

	cfg.merge(loaded)
	return cfg, nil
}

// merge overlays explicitly set fields from loaded onto the defaults.
func (c *Config) merge(loaded Config) {
	if loaded.Azure.Binary != "" {
		c.Azure.Binary = loaded.Azure.Binary
	}
	if loaded.Azure.TimeoutSeconds > 0 {
		c.Azure.TimeoutSeconds = loaded.Azure.TimeoutSeconds
	}
	if loaded.Browser.Headless != nil {
		c.Browser.Headless = loaded.Browser.Headless
	}
	if loaded.Browser.Viewport.Width > 0 {
		c.Browser.Viewport.Width = loaded.Browser.Viewport.Width
	}
	if loaded.Browser.Viewport.Height > 0 {
		c.Browser.Viewport.Height = loaded.Browser.Viewport.Height
	}
	if loaded.Browser.TextLimit > 0 {
		c.Browser.TextLimit = loaded.Browser.TextLimit
	}
	if loaded.Browser.HTMLLimit > 0 {
		c.Browser.HTMLLimit = loaded.Browser.HTMLLimit
	}
	if loaded.Browser.TimeoutMS > 0 {
		c.Browser.TimeoutMS = loaded.Browser.TimeoutMS
	}
}

// AzureTimeout returns the az invocation timeout as a duration.
func (c Config) AzureTimeout() time.Duration {
	return time.Duration(c.Azure.TimeoutSeconds) * time.Second
}
