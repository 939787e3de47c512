package config

import (
	_ "embed"
	stderrors "errors"
	"os"
	"reflect"
	"strconv"
	"strings"

	"github.com/go-viper/mapstructure/v2"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/arthur-debert/tinta/pkg/errors"
	"github.com/arthur-debert/tinta/pkg/logging"
	"github.com/arthur-debert/tinta/pkg/paths"
)

//go:embed embedded/defaults.toml
var defaultConfig []byte

// EnvPrefix starts every environment override
const EnvPrefix = "TINTA_"

// rawBytesProvider implements koanf provider for raw bytes
type rawBytesProvider struct{ bytes []byte }

func (r *rawBytesProvider) ReadBytes() ([]byte, error) { return r.bytes, nil }
func (r *rawBytesProvider) Read() (map[string]interface{}, error) {
	return nil, stderrors.New("not implemented")
}

type loadSettings struct {
	file      string
	skipFile  bool
	skipEnv   bool
	overrides map[string]interface{}
}

// LoadOption adjusts Load
type LoadOption func(*loadSettings)

// WithFile reads path instead of the default user config file. A missing
// file given this way is an error.
func WithFile(path string) LoadOption {
	return func(s *loadSettings) { s.file = path }
}

// WithoutUserFile skips the user config file
func WithoutUserFile() LoadOption {
	return func(s *loadSettings) { s.skipFile = true }
}

// WithoutEnv ignores TINTA_ environment variables
func WithoutEnv() LoadOption {
	return func(s *loadSettings) { s.skipEnv = true }
}

// WithOverrides layers dotted keys over everything else, for command
// line flags
func WithOverrides(values map[string]interface{}) LoadOption {
	return func(s *loadSettings) { s.overrides = values }
}

// envKey maps TINTA_LIVE__REFRESH_PER_SECOND to live.refresh_per_second
func envKey(s string) string {
	return strings.ReplaceAll(strings.ToLower(strings.TrimPrefix(s, EnvPrefix)), "__", ".")
}

// Load builds the effective configuration
func Load(opts ...LoadOption) (*Config, error) {
	s := &loadSettings{}
	for _, opt := range opts {
		opt(s)
	}
	logger := logging.GetLogger("config")
	k := koanf.New(".")

	// 1. Embedded defaults
	if err := k.Load(&rawBytesProvider{bytes: defaultConfig}, toml.Parser()); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigParse, "failed to load defaults")
	}

	// 2. User config file
	if !s.skipFile {
		path, explicit := s.file, s.file != ""
		if !explicit {
			path = paths.ConfigFile()
		}
		if _, err := os.Stat(path); err == nil {
			if err := k.Load(file.Provider(path), toml.Parser()); err != nil {
				return nil, errors.Wrapf(err, errors.ErrConfigParse, "failed to load config from %s", path).
					WithDetail("path", path)
			}
			logger.Debug().Str("path", path).Msg("loaded user config")
		} else if explicit {
			return nil, errors.Wrapf(err, errors.ErrConfigLoad, "config file %s", path).
				WithDetail("path", path)
		}
	}

	// 3. Environment
	if !s.skipEnv {
		if err := k.Load(env.Provider(EnvPrefix, ".", envKey), nil); err != nil {
			return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to load env vars")
		}
	}

	// 4. Explicit overrides
	if len(s.overrides) > 0 {
		if err := k.Load(confmap.Provider(s.overrides, "."), nil); err != nil {
			return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to load overrides")
		}
	}

	// 5. Unmarshal
	var cfg Config
	unmarshalConf := koanf.UnmarshalConf{
		Tag: "koanf",
		DecoderConfig: &mapstructure.DecoderConfig{
			Result:           &cfg,
			WeaklyTypedInput: true,
			DecodeHook:       boolToSwitchHookFunc(),
		},
	}
	if err := k.UnmarshalWithConf("", &cfg, unmarshalConf); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigParse, "failed to unmarshal configuration")
	}

	// 6. Normalize and validate
	normalize(&cfg)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Defaults returns the embedded defaults alone
func Defaults() (*Config, error) {
	return Load(WithoutUserFile(), WithoutEnv())
}

// boolToSwitchHookFunc lets TOML booleans and env strings both fill a
// Switch
func boolToSwitchHookFunc() mapstructure.DecodeHookFunc {
	return func(f reflect.Type, t reflect.Type, data interface{}) (interface{}, error) {
		if t != reflect.TypeOf(Switch("")) {
			return data, nil
		}
		switch v := data.(type) {
		case bool:
			return Switch(strconv.FormatBool(v)), nil
		case string:
			if b, err := strconv.ParseBool(v); err == nil {
				return Switch(strconv.FormatBool(b)), nil
			}
			return Switch(strings.ToLower(strings.TrimSpace(v))), nil
		}
		return data, nil
	}
}

func normalize(cfg *Config) {
	cfg.Console.ColorSystem = strings.ToLower(strings.TrimSpace(cfg.Console.ColorSystem))
	cfg.Live.Redirect = strings.ToLower(cfg.Live.Redirect)
	cfg.Live.VerticalOverflow = strings.ToLower(cfg.Live.VerticalOverflow)
	cfg.Console.Theme = paths.Expand(cfg.Console.Theme)
}
