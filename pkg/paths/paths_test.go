package paths

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConfigDir(t *testing.T) {
	t.Run("explicit_override", func(t *testing.T) {
		t.Setenv(EnvConfigDir, "/opt/tinta")
		assert.Equal(t, "/opt/tinta", ConfigDir())
		assert.Equal(t, filepath.Join("/opt/tinta", "config.toml"), ConfigFile())
	})

	t.Run("xdg_config_home", func(t *testing.T) {
		t.Setenv(EnvConfigDir, "")
		t.Setenv("XDG_CONFIG_HOME", "/xdg/config")
		assert.Equal(t, filepath.Join("/xdg/config", "tinta"), ConfigDir())
	})
}

func TestStateDir(t *testing.T) {
	t.Setenv(EnvStateDir, "")
	t.Setenv("XDG_STATE_HOME", "/xdg/state")
	assert.Equal(t, filepath.Join("/xdg/state", "tinta", "tinta.log"), LogFile())
}

func TestThemeFile(t *testing.T) {
	t.Setenv(EnvConfigDir, "/cfg")

	assert.Equal(t, "", ThemeFile(""))
	assert.Equal(t, filepath.Join("/cfg", "themes", "solar.yaml"), ThemeFile("solar"))
	assert.Equal(t, "/elsewhere/t.yaml", ThemeFile("/elsewhere/t.yaml"))
}

func TestExpand(t *testing.T) {
	t.Setenv("HOME", "/home/ana")

	tests := []struct {
		in   string
		want string
	}{
		{"", ""},
		{"/abs/path", "/abs/path"},
		{"~", "/home/ana"},
		{"~/themes", filepath.Join("/home/ana", "themes")},
		{"~other/x", "~other/x"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Expand(tt.in), tt.in)
	}
}
