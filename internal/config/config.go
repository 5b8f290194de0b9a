// Package config resolves hilite settings from defaults, a TOML file and the
// environment. Command line flags are applied last by the caller.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/kk-code-lab/hilite/internal/htmldoc"
	"github.com/kk-code-lab/hilite/internal/ui/theme"
	"github.com/pelletier/go-toml/v2"
)

// ErrInvalidColor is returned when a highlight color cannot be parsed.
var ErrInvalidColor = errors.New("invalid color")

// Config is the resolved configuration.
type Config struct {
	Highlight Highlight `toml:"highlight"`
	Document  Document  `toml:"document"`
	Debug     Debug     `toml:"debug"`
}

// Highlight controls the highlight element and its colors.
type Highlight struct {
	Tag         string `toml:"tag"`
	Color       string `toml:"color"`
	ActiveColor string `toml:"active_color"`
}

// Document controls how a document is searched.
type Document struct {
	Root      string   `toml:"root"`
	Normalize bool     `toml:"normalize"`
	Skip      []string `toml:"skip"`
}

// Debug configures the debug log.
type Debug struct {
	File string `toml:"file"`
}

// ParseError reports a malformed config file.
type ParseError struct {
	Path string
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse config %s: %v", e.Path, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// Default returns the built-in settings.
func Default() Config {
	return Config{
		Highlight: Highlight{
			Tag:         htmldoc.DefaultTag,
			Color:       htmldoc.DefaultHighlightColor,
			ActiveColor: htmldoc.DefaultActiveColor,
		},
	}
}

// DefaultPath is $XDG_CONFIG_HOME/hilite/config.toml, falling back to the
// user config dir.
func DefaultPath() string {
	dir := os.Getenv("XDG_CONFIG_HOME")
	if dir == "" {
		var err error
		dir, err = os.UserConfigDir()
		if err != nil {
			return ""
		}
	}
	return filepath.Join(dir, "hilite", "config.toml")
}

// Load layers the file at path and the environment over the defaults. An
// empty path uses DefaultPath, which may be missing; an explicit path must
// exist.
func Load(path string) (Config, error) {
	cfg := Default()
	optional := path == ""
	if optional {
		path = DefaultPath()
	}
	if path != "" {
		if err := cfg.mergeFile(path, optional); err != nil {
			return cfg, err
		}
	}
	if err := cfg.mergeEnv(os.LookupEnv); err != nil {
		return cfg, err
	}
	return cfg, cfg.Validate()
}

func (c *Config) mergeFile(path string, optional bool) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if optional && errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("read config %s: %w", path, err)
	}
	return c.decode(path, data)
}

func (c *Config) decode(source string, data []byte) error {
	dec := toml.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(c); err != nil {
		return &ParseError{Path: source, Err: err}
	}
	return nil
}

func (c *Config) mergeEnv(lookup func(string) (string, bool)) error {
	if v, ok := lookup("HILITE_TAG"); ok && v != "" {
		c.Highlight.Tag = v
	}
	if v, ok := lookup("HILITE_ROOT"); ok && v != "" {
		c.Document.Root = v
	}
	if v, ok := lookup("HILITE_COLOR"); ok && v != "" {
		c.Highlight.Color = v
	}
	if v, ok := lookup("HILITE_ACTIVE_COLOR"); ok && v != "" {
		c.Highlight.ActiveColor = v
	}
	if v, ok := lookup("HILITE_NORMALIZE"); ok && v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("HILITE_NORMALIZE: %w", err)
		}
		c.Document.Normalize = b
	}
	if v, ok := lookup("HILITE_DEBUG_FILE"); ok && v != "" {
		c.Debug.File = v
	}
	return nil
}

// Validate checks the colors and the highlight tag.
func (c Config) Validate() error {
	for _, color := range []string{c.Highlight.Color, c.Highlight.ActiveColor} {
		if _, ok := theme.ParseColor(color); !ok {
			return fmt.Errorf("%w: %q", ErrInvalidColor, color)
		}
	}
	if strings.TrimSpace(c.Highlight.Tag) == "" {
		return errors.New("highlight tag must not be empty")
	}
	return nil
}

// DocumentOptions converts the configuration into htmldoc options.
func (c Config) DocumentOptions() htmldoc.Options {
	opts := htmldoc.Options{
		Root:      c.Document.Root,
		Tag:       c.Highlight.Tag,
		Normalize: c.Document.Normalize,
		Colors: htmldoc.Colors{
			Highlight: c.Highlight.Color,
			Active:    c.Highlight.ActiveColor,
		},
	}
	if len(c.Document.Skip) > 0 {
		base := htmldoc.DefaultSkip(c.Highlight.Tag)
		extra := make(map[string]struct{}, len(c.Document.Skip))
		for _, kind := range c.Document.Skip {
			extra[strings.ToLower(strings.TrimSpace(kind))] = struct{}{}
		}
		opts.Skip = func(kind string) bool {
			if base(kind) {
				return true
			}
			_, ok := extra[strings.ToLower(kind)]
			return ok
		}
	}
	return opts
}

// Theme returns the pager theme for the configured colors.
func (c Config) Theme() theme.Theme {
	return theme.New(c.Highlight.Color, c.Highlight.ActiveColor)
}
