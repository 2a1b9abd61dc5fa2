// Package config loads the optional termview YAML config file.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/blacktop/go-termview"
	"github.com/blacktop/go-termview/pkg/decode"
	"gopkg.in/yaml.v3"
)

// EnvVar names a config file that overrides the default location
const EnvVar = "TERMVIEW_CONFIG"

// PlainText as text_style prints undecodable text without highlighting
const PlainText = "plain"

// Config holds defaults for the command line flags
type Config struct {
	Mode          string `yaml:"mode"`     // png, zlib or raw
	Protocol      string `yaml:"protocol"` // auto, kitty, sixel, iterm2, halfblocks
	Filter        string `yaml:"filter"`
	Input         string `yaml:"input"`
	Background    bool   `yaml:"background"`
	Color         string `yaml:"color"`
	QueryTerminal bool   `yaml:"query_terminal"`
	Tmux          string `yaml:"tmux"`       // auto, on or off
	TextStyle     string `yaml:"text_style"` // chroma style, or plain
	Sixel         Sixel  `yaml:"sixel"`
}

// Sixel holds sixel encoder settings
type Sixel struct {
	Colors int  `yaml:"colors"`
	Dither bool `yaml:"dither"`
}

// Default returns the built-in defaults
func Default() *Config {
	return &Config{
		Mode:          "png",
		Protocol:      "auto",
		Filter:        "bilinear",
		Input:         "auto",
		Color:         "FFFFFF",
		QueryTerminal: true,
		Tmux:          "auto",
		TextStyle:     "monokai",
		Sixel: Sixel{
			Colors: 256,
		},
	}
}

// Path returns the config file to use: explicit, then $TERMVIEW_CONFIG,
// then the user config dir
func Path(explicit string) string {
	if explicit != "" {
		return explicit
	}
	if env := os.Getenv(EnvVar); env != "" {
		return env
	}
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "termview", "config.yaml")
}

// Load reads the config file over the defaults. A missing file is not an
// error unless it was named explicitly.
func Load(explicit string) (*Config, error) {
	conf := Default()

	path := Path(explicit)
	if path == "" {
		return conf, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) && explicit == "" {
			return conf, nil
		}
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, conf); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := conf.Validate(); err != nil {
		return nil, fmt.Errorf("validate config %s: %w", path, err)
	}
	return conf, nil
}

// Validate checks every enumerated value and the background color
func (c *Config) Validate() error {
	if _, err := termview.ParseMode(c.Mode); err != nil {
		return err
	}
	if _, err := termview.ParseProtocol(c.Protocol); err != nil {
		return err
	}
	if _, err := termview.ParseFilter(c.Filter); err != nil {
		return err
	}
	if _, err := decode.ParseKind(c.Input); err != nil {
		return err
	}
	if _, err := termview.ParseColor(c.Color); err != nil {
		return err
	}
	switch c.Tmux {
	case "", "auto", "on", "off":
	default:
		return fmt.Errorf("invalid tmux setting %q (must be auto, on or off)", c.Tmux)
	}
	if c.Sixel.Colors < 0 || c.Sixel.Colors > 256 {
		return fmt.Errorf("invalid sixel colors %d (must be 0-256)", c.Sixel.Colors)
	}
	return nil
}

// Passthrough resolves the tmux setting for the current environment
func (c *Config) Passthrough() bool {
	switch c.Tmux {
	case "on":
		return true
	case "off":
		return false
	default:
		return termview.InTmux()
	}
}
