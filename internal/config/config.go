// Package config loads the optional server configuration file.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// ErrUnsupportedFormat is returned for configuration files that are neither TOML nor YAML.
var ErrUnsupportedFormat = errors.New("unsupported config format")

// Config holds the server settings.
type Config struct {
	// Listen is the host:port the server binds to.
	Listen string `toml:"listen" yaml:"listen"`
	// ReadBufferSize is the number of bytes read from each connection.
	// Longer requests are truncated.
	ReadBufferSize int `toml:"read_buffer_size" yaml:"read_buffer_size"`
	// Root is the directory to serve. Empty means the working directory,
	// looked up again for every request.
	Root string `toml:"root" yaml:"root"`
	// NoColor disables colored log output.
	NoColor bool `toml:"no_color" yaml:"no_color"`
	// MarkdownListings allows Markdown directory listings for clients
	// that accept text/markdown.
	MarkdownListings bool `toml:"markdown_listings" yaml:"markdown_listings"`
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		Listen:           "127.0.0.1:5500",
		ReadBufferSize:   1024,
		MarkdownListings: true,
	}
}

// Load reads path on top of the defaults. The format is chosen by extension:
// .toml, or .yaml/.yml.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		if _, err := toml.Decode(string(data), &cfg); err != nil {
			return cfg, fmt.Errorf("parse %s: %w", path, err)
		}
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("parse %s: %w", path, err)
		}
	default:
		return cfg, fmt.Errorf("%w: %s", ErrUnsupportedFormat, path)
	}

	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Validate checks that the settings can be used to start a server.
func (c Config) Validate() error {
	if c.Listen == "" {
		return errors.New("config: listen address is empty")
	}
	if c.ReadBufferSize <= 0 {
		return fmt.Errorf("config: read_buffer_size must be positive, got %d", c.ReadBufferSize)
	}
	return nil
}

// RootFunc returns the function the server uses to find its root directory
// for each request.
func (c Config) RootFunc() func() (string, error) {
	if c.Root == "" {
		return os.Getwd
	}
	root := c.Root
	return func() (string, error) {
		return filepath.Abs(root)
	}
}
