// Package paths locates tinta's files on disk.
//
// It follows the XDG Base Directory specification:
//
//   - Config: $XDG_CONFIG_HOME/tinta (config.toml, themes)
//   - State: $XDG_STATE_HOME/tinta (log file)
//
// # Environment Variables
//
//   - TINTA_CONFIG_DIR: Override the config directory
//   - TINTA_STATE_DIR: Override the state directory
//
// # Usage
//
//	cfgFile := paths.ConfigFile()   // ~/.config/tinta/config.toml
//	logFile := paths.LogFile()      // ~/.local/state/tinta/tinta.log
//	theme := paths.Expand("~/themes/solar.yaml")
package paths
