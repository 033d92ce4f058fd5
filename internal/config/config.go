// Package config loads the guestlist YAML configuration.
package config

import (
	"errors"
	"os"
	"path/filepath"

	"github.com/nconklindev/guestlist/internal/sheet"

	"github.com/adrg/xdg"
	"gopkg.in/yaml.v3"
)

const (
	AppName = "guestlist"

	// LocalConfigFile is looked up in the working directory.
	LocalConfigFile = ".guestlist.yaml"
	// ConfigFileName is looked up in the XDG config directory.
	ConfigFileName = "config.yaml"
)

var (
	// ErrConfigNotFound is returned when an explicit config path does not exist.
	ErrConfigNotFound = errors.New("configuration file not found")

	// ErrNoInput is returned when no guest list path is configured.
	ErrNoInput = errors.New("no input specified: set input_path or pass a file")

	// ErrNoOutput is returned when write_output is set without output_path.
	ErrNoOutput = errors.New("write_output is set but output_path is empty")

	// ErrUnsupportedOutput is returned when output_path is not .xlsx or .csv.
	ErrUnsupportedOutput = errors.New("unsupported output_path: must end in .xlsx or .csv")
)

type Config struct {
	InputPath    string `yaml:"input_path"`
	OutputPath   string `yaml:"output_path"`
	WriteOutput  bool   `yaml:"write_output"`
	MarkdownPath string `yaml:"markdown_path"`
}

// Default returns a config with output disabled.
func Default() *Config {
	return &Config{}
}

// XDGConfigDir returns the guestlist directory under the XDG config home.
func XDGConfigDir() string {
	return filepath.Join(xdg.ConfigHome, AppName)
}

// FindConfigFile returns the config file to use, or "" if there is none.
// An explicit path wins; otherwise the working directory is checked before
// the XDG config directory.
func FindConfigFile(configPath string) string {
	if configPath != "" {
		return configPath
	}

	if _, err := os.Stat(LocalConfigFile); err == nil {
		return LocalConfigFile
	}

	xdgConfig := filepath.Join(XDGConfigDir(), ConfigFileName)
	if _, err := os.Stat(xdgConfig); err == nil {
		return xdgConfig
	}

	return ""
}

// Load reads the config at path. An empty path yields Default.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path) //nolint:gosec // user-provided config path is intentional
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrConfigNotFound
		}
		return nil, err
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the settings a headless run needs.
func (c *Config) Validate() error {
	if c.InputPath == "" {
		return ErrNoInput
	}
	if c.WriteOutput {
		if c.OutputPath == "" {
			return ErrNoOutput
		}
		if !sheet.SupportedOutput(c.OutputPath) {
			return ErrUnsupportedOutput
		}
	}
	return nil
}
