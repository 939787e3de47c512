package paths

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"
)

// Environment variable names
const (
	// EnvConfigDir overrides the XDG config directory for tinta
	EnvConfigDir = "TINTA_CONFIG_DIR"

	// EnvStateDir overrides the XDG state directory for tinta
	EnvStateDir = "TINTA_STATE_DIR"

	// EnvHome is the standard home directory variable
	EnvHome = "HOME"
)

const (
	// AppDirName is the directory name used under each XDG base
	AppDirName = "tinta"

	// ConfigFileName is the user configuration file
	ConfigFileName = "config.toml"

	// LogFileName is the log file written under the state directory
	LogFileName = "tinta.log"

	// ThemesDir is the subdirectory holding user themes
	ThemesDir = "themes"
)

// ConfigDir returns the directory holding user configuration
func ConfigDir() string {
	if dir := os.Getenv(EnvConfigDir); dir != "" {
		return Expand(dir)
	}
	if base := os.Getenv("XDG_CONFIG_HOME"); base != "" {
		return filepath.Join(base, AppDirName)
	}
	return filepath.Join(xdg.ConfigHome, AppDirName)
}

// ConfigFile returns the path of the user configuration file
func ConfigFile() string {
	return filepath.Join(ConfigDir(), ConfigFileName)
}

// ThemeFile resolves a theme reference. Bare names are looked up in the
// themes directory, anything with a separator or extension is a path.
func ThemeFile(name string) string {
	if name == "" {
		return ""
	}
	if strings.ContainsRune(name, filepath.Separator) || filepath.Ext(name) != "" {
		return Expand(name)
	}
	return filepath.Join(ConfigDir(), ThemesDir, name+".yaml")
}

// StateDir returns the directory for runtime state such as logs.
// XDG_STATE_HOME is read on every call so tests can point it elsewhere.
func StateDir() string {
	if dir := os.Getenv(EnvStateDir); dir != "" {
		return Expand(dir)
	}
	if base := os.Getenv("XDG_STATE_HOME"); base != "" {
		return filepath.Join(base, AppDirName)
	}
	return filepath.Join(xdg.StateHome, AppDirName)
}

// LogFile returns the path of the log file
func LogFile() string {
	return filepath.Join(StateDir(), LogFileName)
}

// Expand replaces a leading ~ with the user's home directory
func Expand(path string) string {
	if path == "" || path[0] != '~' {
		return path
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		homeDir = os.Getenv(EnvHome)
		if homeDir == "" {
			return path
		}
	}

	if len(path) == 1 {
		return homeDir
	}
	if path[1] == '/' || path[1] == filepath.Separator {
		return filepath.Join(homeDir, path[2:])
	}
	return path
}
