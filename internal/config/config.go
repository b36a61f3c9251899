// Package config loads the YAML configuration of the quill program.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/iw2rmb/quill/internal/logging"
)

// ErrInvalidConfig is wrapped by every validation failure.
var ErrInvalidConfig = errors.New("invalid config")

// Config is the program configuration.
type Config struct {
	Editor    Editor            `yaml:"editor"`
	Log       Log               `yaml:"log"`
	Clipboard Clipboard         `yaml:"clipboard"`
	Keys      map[string]string `yaml:"keys"` // toolbar command name -> key, e.g. bold: alt+b
}

type Editor struct {
	Placeholder    string `yaml:"placeholder"`
	URLPlaceholder string `yaml:"url_placeholder"`
	Wrap           string `yaml:"wrap"` // word or grapheme
	TabWidth       int    `yaml:"tab_width"`
	HistoryLimit   int    `yaml:"history_limit"`
	MaxListDepth   int    `yaml:"max_list_depth"`
	ReadOnly       bool   `yaml:"read_only"`
}

type Log struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
	File   string `yaml:"file"` // empty disables logging
}

type Clipboard struct {
	Enabled        bool `yaml:"enabled"`
	CopyStateOnLog bool `yaml:"copy_state_on_log"`
}

func Default() Config {
	return Config{
		Editor: Editor{
			Placeholder:    "Tell a story...",
			URLPlaceholder: "https://",
			Wrap:           "word",
			TabWidth:       4,
			HistoryLimit:   100,
			MaxListDepth:   4,
		},
		Log: Log{
			Level:  "info",
			Format: "text",
		},
		Clipboard: Clipboard{Enabled: true},
	}
}

// Load reads path over the defaults. A missing path yields the defaults.
func Load(path string) (Config, error) {
	if path == "" {
		return Default(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}
	cfg, err := Parse(bytes.NewReader(data))
	if err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Parse decodes YAML from r over the defaults and validates the result.
// Unknown fields are rejected.
func Parse(r io.Reader) (Config, error) {
	cfg := Default()
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

var toolbarCommands = map[string]bool{
	"bold": true, "italic": true, "header": true,
	"list": true, "addLink": true, "removeLink": true,
}

func (c Config) Validate() error {
	switch c.Editor.Wrap {
	case "", "word", "grapheme":
	default:
		return fmt.Errorf("%w: editor.wrap %q", ErrInvalidConfig, c.Editor.Wrap)
	}
	if c.Editor.TabWidth < 0 {
		return fmt.Errorf("%w: editor.tab_width %d", ErrInvalidConfig, c.Editor.TabWidth)
	}
	if c.Editor.HistoryLimit < 0 {
		return fmt.Errorf("%w: editor.history_limit %d", ErrInvalidConfig, c.Editor.HistoryLimit)
	}
	if c.Editor.MaxListDepth < 0 {
		return fmt.Errorf("%w: editor.max_list_depth %d", ErrInvalidConfig, c.Editor.MaxListDepth)
	}
	if _, err := logging.ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("%w: log.level: %w", ErrInvalidConfig, err)
	}
	if _, err := logging.ParseFormat(c.Log.Format); err != nil {
		return fmt.Errorf("%w: log.format: %w", ErrInvalidConfig, err)
	}
	for name, k := range c.Keys {
		if !toolbarCommands[name] {
			return fmt.Errorf("%w: keys: unknown command %q", ErrInvalidConfig, name)
		}
		if k == "" {
			return fmt.Errorf("%w: keys.%s is empty", ErrInvalidConfig, name)
		}
	}
	return nil
}
