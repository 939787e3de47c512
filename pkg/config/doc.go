// Package config handles configuration management for tinta.
// Settings come from embedded TOML defaults, the user config file and
// TINTA_ environment variables, in that order of precedence.
package config
