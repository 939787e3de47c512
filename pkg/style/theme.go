package style

import (
	_ "embed"
	"os"
	"sort"
	"sync"

	"github.com/arthur-debert/tinta/pkg/errors"
	"gopkg.in/yaml.v3"
)

// ThemeConfig is the YAML layout of a theme file
type ThemeConfig struct {
	Colors map[string]string `yaml:"colors"`
	Styles map[string]string `yaml:"styles"`
}

// Theme maps style names such as "table.header" or "warning" to styles
type Theme struct {
	styles map[string]Style
}

//go:embed theme.yaml
var embeddedTheme []byte

var (
	defaultOnce  sync.Once
	defaultTheme *Theme
)

// DefaultTheme returns the built-in theme. It is shared and must not be
// modified; use Merge to derive a new one.
func DefaultTheme() *Theme {
	defaultOnce.Do(func() {
		t, err := LoadThemeData(embeddedTheme)
		if err != nil {
			t = NewTheme(map[string]Style{
				"bold":    New(Bold),
				"italic":  New(Italic),
				"warning": New(Bold),
				"error":   New(Bold),
			})
		}
		defaultTheme = t
	})
	return defaultTheme
}

// NewTheme builds a theme from already parsed styles
func NewTheme(styles map[string]Style) *Theme {
	t := &Theme{styles: make(map[string]Style, len(styles))}
	for k, v := range styles {
		t.styles[k] = v
	}
	return t
}

// LoadThemeData parses theme YAML
func LoadThemeData(data []byte) (*Theme, error) {
	var cfg ThemeConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, errors.Wrap(err, errors.ErrThemeLoad, "failed to parse theme data")
	}
	return FromConfig(cfg)
}

// LoadThemeFile reads and parses a theme file
func LoadThemeFile(path string) (*Theme, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrThemeLoad, "failed to read theme file %s", path)
	}
	t, err := LoadThemeData(data)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrThemeLoad, "invalid theme file %s", path)
	}
	return t, nil
}

// FromConfig parses every style definition in cfg
func FromConfig(cfg ThemeConfig) (*Theme, error) {
	t := &Theme{styles: make(map[string]Style, len(cfg.Styles))}
	for name, def := range cfg.Styles {
		s, err := parseWords(def, cfg.Colors)
		if err != nil {
			return nil, errors.Wrapf(err, errors.ErrThemeLoad, "style %q", name).
				WithDetail("style", name)
		}
		t.styles[name] = s
	}
	return t, nil
}

// Get looks up a named style
func (t *Theme) Get(name string) (Style, bool) {
	if t == nil {
		return Null, false
	}
	s, ok := t.styles[name]
	return s, ok
}

// Merge returns a new theme with other's entries layered over t's
func (t *Theme) Merge(other *Theme) *Theme {
	out := NewTheme(t.styles)
	if other != nil {
		for k, v := range other.styles {
			out.styles[k] = v
		}
	}
	return out
}

// Names returns the style names in sorted order
func (t *Theme) Names() []string {
	names := make([]string, 0, len(t.styles))
	for k := range t.styles {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}

// Lookup resolves name through the theme first and the style grammar second
func (t *Theme) Lookup(name string) (Style, error) {
	if s, ok := t.Get(name); ok {
		return s, nil
	}
	return Parse(name)
}
