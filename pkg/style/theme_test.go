package style

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/arthur-debert/tinta/pkg/color"
	"github.com/arthur-debert/tinta/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultTheme(t *testing.T) {
	theme := DefaultTheme()

	for _, name := range []string{"table.header", "rule.line", "bar.complete", "warning", "progress.percentage"} {
		_, ok := theme.Get(name)
		assert.True(t, ok, name)
	}

	warning, _ := theme.Get("warning")
	assert.True(t, warning.Has(Bold))
	fg, ok := warning.Fg()
	require.True(t, ok)
	assert.Equal(t, color.FromRGB(0xff, 0xd5, 0x4f), fg, "color alias is resolved")
}

func TestLoadThemeData(t *testing.T) {
	data := []byte(`
colors:
  brand: "#112233"
styles:
  heading: bold brand
  quiet: dim
`)
	theme, err := LoadThemeData(data)
	require.NoError(t, err)
	assert.Equal(t, []string{"heading", "quiet"}, theme.Names())

	heading, _ := theme.Get("heading")
	assert.Equal(t, MustParse("bold #112233"), heading)
}

func TestLoadThemeDataErrors(t *testing.T) {
	_, err := LoadThemeData([]byte("styles: [unterminated"))
	assert.True(t, errors.IsErrorCode(err, errors.ErrThemeLoad))

	_, err = LoadThemeData([]byte("styles:\n  broken: bold nocolor\n"))
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrThemeLoad))
}

func TestLoadThemeFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "t.yaml")
	require.NoError(t, os.WriteFile(path, []byte("styles:\n  warning: italic\n"), 0644))

	theme, err := LoadThemeFile(path)
	require.NoError(t, err)

	merged := DefaultTheme().Merge(theme)
	warning, _ := merged.Get("warning")
	assert.Equal(t, New(Italic), warning)

	_, ok := merged.Get("table.header")
	assert.True(t, ok, "defaults survive the merge")

	_, err = LoadThemeFile(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestThemeLookup(t *testing.T) {
	theme := NewTheme(map[string]Style{"alert": New(Reverse)})

	s, err := theme.Lookup("alert")
	require.NoError(t, err)
	assert.True(t, s.Has(Reverse))

	s, err = theme.Lookup("bold blue")
	require.NoError(t, err)
	assert.True(t, s.Has(Bold))

	var nilTheme *Theme
	_, ok := nilTheme.Get("alert")
	assert.False(t, ok)
}
