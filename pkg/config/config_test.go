package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	toml "github.com/pelletier/go-toml/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arthur-debert/tinta/pkg/color"
	"github.com/arthur-debert/tinta/pkg/errors"
	"github.com/arthur-debert/tinta/pkg/live"
)

// isolate points the config directory at an empty temp dir
func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("TINTA_CONFIG_DIR", dir)
	return dir
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
}

func TestDefaults(t *testing.T) {
	cfg, err := Defaults()
	require.NoError(t, err)

	assert.Equal(t, "auto", cfg.Console.ColorSystem)
	assert.Equal(t, SwitchAuto, cfg.Console.ForceTerminal)
	assert.True(t, cfg.Console.Markup)
	assert.Equal(t, 4.0, cfg.Live.RefreshPerSecond)
	assert.True(t, cfg.Live.AutoRefresh)
	assert.Equal(t, "tinta", cfg.Export.SVGTitle)
	assert.Equal(t, 0, cfg.Logging.Verbosity)

	ov := cfg.ProfileOverrides()
	assert.Nil(t, ov.Terminal)
	assert.Nil(t, ov.Links)
	assert.Equal(t, 0, ov.Width)

	opts, err := cfg.LiveOptions()
	require.NoError(t, err)
	assert.Equal(t, live.DefaultOptions(), opts)
}

func TestUserFile(t *testing.T) {
	dir := isolate(t)
	writeFile(t, filepath.Join(dir, "config.toml"), `
[console]
color_system = "256"
force_terminal = true
links = false
width = 100

[live]
vertical_overflow = "crop"
transient = true
`)
	cfg, err := Load(WithoutEnv())
	require.NoError(t, err)

	assert.Equal(t, "256", cfg.Console.ColorSystem)
	assert.Equal(t, SwitchOn, cfg.Console.ForceTerminal)
	assert.Equal(t, SwitchOff, cfg.Console.Links)
	// untouched keys keep their defaults
	assert.Equal(t, SwitchAuto, cfg.Console.ForceInteractive)
	assert.True(t, cfg.Console.Markup)

	ov := cfg.ProfileOverrides()
	require.NotNil(t, ov.Terminal)
	assert.True(t, *ov.Terminal)
	require.NotNil(t, ov.Links)
	assert.False(t, *ov.Links)
	assert.Equal(t, 100, ov.Width)

	opts, err := cfg.LiveOptions()
	require.NoError(t, err)
	assert.Equal(t, live.OverflowCrop, opts.Overflow)
	assert.True(t, opts.Transient)
}

func TestEnvOverrides(t *testing.T) {
	dir := isolate(t)
	writeFile(t, filepath.Join(dir, "config.toml"), "[live]\nrefresh_per_second = 2.0\n")
	t.Setenv("TINTA_LIVE__REFRESH_PER_SECOND", "10")
	t.Setenv("TINTA_CONSOLE__FORCE_INTERACTIVE", "false")
	t.Setenv("TINTA_CONSOLE__MARKUP", "false")
	t.Setenv("TINTA_LIVE__REDIRECT", "REJECT")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 10.0, cfg.Live.RefreshPerSecond)
	assert.Equal(t, SwitchOff, cfg.Console.ForceInteractive)
	assert.False(t, cfg.Console.Markup)
	assert.Equal(t, "reject", cfg.Live.Redirect)

	opts, err := cfg.ConsoleOptions()
	require.NoError(t, err)
	// detection overrides, theme and markup switch
	assert.Len(t, opts, 3)
}

func TestExplicitOverrides(t *testing.T) {
	isolate(t)
	t.Setenv("TINTA_CONSOLE__WIDTH", "60")
	cfg, err := Load(WithOverrides(map[string]interface{}{"console.width": 40}))
	require.NoError(t, err)
	assert.Equal(t, 40, cfg.Console.Width)
}

func TestLoadErrors(t *testing.T) {
	t.Run("missing_explicit_file", func(t *testing.T) {
		_, err := Load(WithFile(filepath.Join(t.TempDir(), "nope.toml")), WithoutEnv())
		assert.True(t, errors.IsErrorCode(err, errors.ErrConfigLoad))
	})

	t.Run("malformed_toml", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "bad.toml")
		writeFile(t, path, "[console\ncolor_system = ")
		_, err := Load(WithFile(path), WithoutEnv())
		assert.True(t, errors.IsErrorCode(err, errors.ErrConfigParse))
	})

	invalid := []struct {
		name, content string
	}{
		{"color_system", "[console]\ncolor_system = \"sepia\"\n"},
		{"switch", "[console]\nlinks = \"maybe\"\n"},
		{"redirect", "[live]\nredirect = \"drop\"\n"},
		{"overflow", "[live]\nvertical_overflow = \"scroll\"\n"},
		{"terminal_theme", "[export]\nterminal_theme = \"solarized\"\n"},
		{"negative_width", "[console]\nwidth = -1\n"},
	}
	for _, tt := range invalid {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "config.toml")
			writeFile(t, path, tt.content)
			_, err := Load(WithFile(path), WithoutEnv())
			assert.True(t, errors.IsErrorCode(err, errors.ErrConfigValid), "got %v", err)
		})
	}
}

func TestTheme(t *testing.T) {
	dir := isolate(t)
	writeFile(t, filepath.Join(dir, "themes", "warm.yaml"), "styles:\n  warning: bold magenta\n")

	cfg, err := Defaults()
	require.NoError(t, err)
	theme, err := cfg.Theme()
	require.NoError(t, err)
	_, ok := theme.Get("table.header")
	assert.True(t, ok)

	cfg.Console.Theme = "warm"
	theme, err = cfg.Theme()
	require.NoError(t, err)
	warning, ok := theme.Get("warning")
	require.True(t, ok)
	fg, _ := warning.Fg()
	magenta, err := color.FromIndex(5)
	require.NoError(t, err)
	assert.Equal(t, magenta, fg)
	// entries the theme does not name come from the default
	_, ok = theme.Get("table.header")
	assert.True(t, ok)

	cfg.Console.Theme = "missing"
	_, err = cfg.Theme()
	assert.True(t, errors.IsErrorCode(err, errors.ErrThemeLoad))
}

func TestTerminalTheme(t *testing.T) {
	cfg, err := Defaults()
	require.NoError(t, err)
	assert.Same(t, color.DefaultTerminalTheme, cfg.TerminalTheme())
	cfg.Export.TerminalTheme = "monokai"
	assert.Same(t, color.MonokaiTerminalTheme, cfg.TerminalTheme())
}

func TestDump(t *testing.T) {
	cfg, err := Defaults()
	require.NoError(t, err)
	cfg.Console.Width = 72

	out, err := Dump(cfg)
	require.NoError(t, err)
	assert.Contains(t, out, "[console]")
	assert.Contains(t, out, "[live]")

	var back Config
	require.NoError(t, toml.Unmarshal([]byte(out), &back))
	assert.Equal(t, 72, back.Console.Width)
	assert.Equal(t, cfg.Live, back.Live)
}

func TestGenerateConfigContent(t *testing.T) {
	content := GenerateConfigContent()
	for _, line := range strings.Split(content, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || strings.HasPrefix(trimmed, "[") {
			continue
		}
		assert.True(t, strings.HasPrefix(trimmed, "#"), "line %q is live", line)
	}
	assert.Contains(t, content, "# color_system = \"auto\"")

	path := filepath.Join(t.TempDir(), "tinta", "config.toml")
	require.NoError(t, WriteConfigFile(path, false))
	err := WriteConfigFile(path, false)
	assert.True(t, errors.IsErrorCode(err, errors.ErrConfigLoad))
	require.NoError(t, WriteConfigFile(path, true))

	// the commented file loads to the defaults
	cfg, err := Load(WithFile(path), WithoutEnv())
	require.NoError(t, err)
	def, err := Defaults()
	require.NoError(t, err)
	assert.Equal(t, def, cfg)
}
