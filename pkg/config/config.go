package config

import (
	"strings"

	"github.com/arthur-debert/tinta/pkg/color"
	"github.com/arthur-debert/tinta/pkg/console"
	"github.com/arthur-debert/tinta/pkg/errors"
	"github.com/arthur-debert/tinta/pkg/live"
	"github.com/arthur-debert/tinta/pkg/paths"
	"github.com/arthur-debert/tinta/pkg/profile"
	"github.com/arthur-debert/tinta/pkg/style"
)

// Switch is a tri-state setting: "auto" leaves the decision to detection
type Switch string

const (
	SwitchAuto  Switch = "auto"
	SwitchOn    Switch = "true"
	SwitchOff   Switch = "false"
	switchEmpty Switch = ""
)

// Bool returns nil for auto, otherwise the forced value
func (s Switch) Bool() *bool {
	var v bool
	switch s {
	case SwitchOn:
		v = true
	case SwitchOff:
		v = false
	default:
		return nil
	}
	return &v
}

func (s Switch) valid() bool {
	switch s {
	case SwitchAuto, SwitchOn, SwitchOff, switchEmpty:
		return true
	}
	return false
}

// Config is the effective configuration
type Config struct {
	Console ConsoleConfig `koanf:"console" toml:"console"`
	Live    LiveConfig    `koanf:"live" toml:"live"`
	Export  ExportConfig  `koanf:"export" toml:"export"`
	Logging LoggingConfig `koanf:"logging" toml:"logging"`
}

// ConsoleConfig overrides capability detection
type ConsoleConfig struct {
	ColorSystem      string `koanf:"color_system" toml:"color_system"`
	Width            int    `koanf:"width" toml:"width"`
	Height           int    `koanf:"height" toml:"height"`
	ForceTerminal    Switch `koanf:"force_terminal" toml:"force_terminal"`
	ForceInteractive Switch `koanf:"force_interactive" toml:"force_interactive"`
	LegacyWindows    Switch `koanf:"legacy_windows" toml:"legacy_windows"`
	Links            Switch `koanf:"links" toml:"links"`
	Encoding         string `koanf:"encoding" toml:"encoding"`
	Markup           bool   `koanf:"markup" toml:"markup"`
	Theme            string `koanf:"theme" toml:"theme"`
}

// LiveConfig holds defaults for live displays
type LiveConfig struct {
	RefreshPerSecond float64 `koanf:"refresh_per_second" toml:"refresh_per_second"`
	AutoRefresh      bool    `koanf:"auto_refresh" toml:"auto_refresh"`
	Redirect         string  `koanf:"redirect" toml:"redirect"`
	VerticalOverflow string  `koanf:"vertical_overflow" toml:"vertical_overflow"`
	Transient        bool    `koanf:"transient" toml:"transient"`
}

// ExportConfig holds defaults for SVG export
type ExportConfig struct {
	SVGTitle      string  `koanf:"svg_title" toml:"svg_title"`
	SVGFontSize   float64 `koanf:"svg_font_size" toml:"svg_font_size"`
	TerminalTheme string  `koanf:"terminal_theme" toml:"terminal_theme"`
}

type LoggingConfig struct {
	Verbosity int `koanf:"verbosity" toml:"verbosity"`
}

// Validate checks every enumerated setting
func (c *Config) Validate() error {
	cc := c.Console
	if cs := strings.ToLower(cc.ColorSystem); cs != "" && cs != "auto" {
		if _, err := color.ParseSystem(cs); err != nil {
			return errors.Wrapf(err, errors.ErrConfigValid, "console.color_system: unknown value %q", cc.ColorSystem).
				WithDetail("key", "console.color_system")
		}
	}
	if cc.Width < 0 || cc.Height < 0 {
		return errors.New(errors.ErrConfigValid, "console.width and console.height must not be negative")
	}
	for key, s := range map[string]Switch{
		"console.force_terminal":    cc.ForceTerminal,
		"console.force_interactive": cc.ForceInteractive,
		"console.legacy_windows":    cc.LegacyWindows,
		"console.links":             cc.Links,
	} {
		if !s.valid() {
			return errors.Newf(errors.ErrConfigValid, "%s: want auto, true or false, got %q", key, s).
				WithDetail("key", key)
		}
	}
	if c.Live.RefreshPerSecond < 0 {
		return errors.New(errors.ErrConfigValid, "live.refresh_per_second must not be negative")
	}
	if _, err := c.LiveOptions(); err != nil {
		return err
	}
	if _, ok := color.TerminalThemes[c.Export.TerminalTheme]; !ok && c.Export.TerminalTheme != "" {
		return errors.Newf(errors.ErrConfigValid, "export.terminal_theme: unknown theme %q", c.Export.TerminalTheme).
			WithDetail("key", "export.terminal_theme")
	}
	return nil
}

// ProfileOverrides turns the console section into detection overrides
func (c *Config) ProfileOverrides() profile.Overrides {
	cc := c.Console
	return profile.Overrides{
		ColorSystem: cc.ColorSystem,
		Width:       cc.Width,
		Height:      cc.Height,
		Terminal:    cc.ForceTerminal.Bool(),
		Interactive: cc.ForceInteractive.Bool(),
		Legacy:      cc.LegacyWindows.Bool(),
		Links:       cc.Links.Bool(),
		Encoding:    cc.Encoding,
	}
}

// LiveOptions returns the live section as live.Options
func (c *Config) LiveOptions() (live.Options, error) {
	redirect, err := live.ParseRedirect(c.Live.Redirect)
	if err != nil {
		return live.Options{}, err
	}
	overflow, err := live.ParseOverflow(c.Live.VerticalOverflow)
	if err != nil {
		return live.Options{}, err
	}
	return live.Options{
		RefreshPerSecond: c.Live.RefreshPerSecond,
		AutoRefresh:      c.Live.AutoRefresh,
		Redirect:         redirect,
		Overflow:         overflow,
		Transient:        c.Live.Transient,
	}, nil
}

// Theme loads console.theme layered over the default theme
func (c *Config) Theme() (*style.Theme, error) {
	if c.Console.Theme == "" {
		return style.DefaultTheme(), nil
	}
	t, err := style.LoadThemeFile(paths.ThemeFile(c.Console.Theme))
	if err != nil {
		return nil, err
	}
	return style.DefaultTheme().Merge(t), nil
}

// TerminalTheme is the palette used by SVG export
func (c *Config) TerminalTheme() *color.TerminalTheme {
	if t, ok := color.TerminalThemes[c.Export.TerminalTheme]; ok {
		return t
	}
	return color.DefaultTerminalTheme
}

// ConsoleOptions builds console options from the configuration
func (c *Config) ConsoleOptions() ([]console.Option, error) {
	theme, err := c.Theme()
	if err != nil {
		return nil, err
	}
	opts := []console.Option{
		console.WithDetectOptions(profile.WithOverrides(c.ProfileOverrides())),
		console.WithTheme(theme),
	}
	if !c.Console.Markup {
		opts = append(opts, console.WithoutMarkup())
	}
	return opts, nil
}
