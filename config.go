package chatmd

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// ErrUnknownExtension reports a configured extension that is not built in.
var ErrUnknownExtension = errors.New("unknown extension")

// FileConfig is the YAML configuration file:
//
//	locale: en
//	highlight_style: monokai
//	front_matter: true
//	extensions:
//	  - name: abbr
//	    enabled: false
//	  - name: diagram
//	    options:
//	      languages: [mermaid]
type FileConfig struct {
	Locale         string             `yaml:"locale"`
	HighlightStyle string             `yaml:"highlight_style"`
	FrontMatter    bool               `yaml:"front_matter"`
	Extensions     []ExtensionSetting `yaml:"extensions"`
}

// ExtensionSetting enables, disables or configures one built-in extension.
type ExtensionSetting struct {
	Name    string         `yaml:"name"`
	Enabled *bool          `yaml:"enabled"`
	Options map[string]any `yaml:"options"`
}

// LoadConfig reads a FileConfig from path.
func LoadConfig(path string) (*FileConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	return ParseConfig(data)
}

// ParseConfig decodes a FileConfig. Unknown keys are rejected.
func ParseConfig(data []byte) (*FileConfig, error) {
	var cfg FileConfig
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("config: %w", err)
	}
	for _, ext := range cfg.Extensions {
		if _, ok := BuiltinExtension(ext.Name); !ok {
			return nil, fmt.Errorf("config: %w: %q", ErrUnknownExtension, ext.Name)
		}
	}
	return &cfg, nil
}

// Options returns the Engine options the file sets.
func (c *FileConfig) Options() []Option {
	return []Option{
		WithLocale(c.Locale),
		WithHighlightStyle(c.HighlightStyle),
		WithFrontMatter(c.FrontMatter),
	}
}

// Apply registers, reconfigures or unregisters the extensions listed in the
// file.
func (c *FileConfig) Apply(e *Engine) error {
	for _, ext := range c.Extensions {
		fn, ok := BuiltinExtension(ext.Name)
		if !ok {
			return fmt.Errorf("config: %w: %q", ErrUnknownExtension, ext.Name)
		}
		if ext.Enabled != nil && !*ext.Enabled {
			e.Unregister(ext.Name)
			continue
		}
		cfg := e.builtinConfig(ext.Name)
		for k, v := range ext.Options {
			cfg[k] = v
		}
		e.Register(ext.Name, fn, cfg)
	}
	return nil
}

// NewFromConfig returns an Engine configured by c and opts. opts are applied
// after the file options.
func NewFromConfig(c *FileConfig, opts ...Option) (*Engine, error) {
	e := New(append(c.Options(), opts...)...)
	if err := c.Apply(e); err != nil {
		return nil, err
	}
	return e, nil
}
