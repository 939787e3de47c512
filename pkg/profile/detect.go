package profile

import (
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/mattn/go-isatty"
	"github.com/muesli/termenv"
	"golang.org/x/term"

	"github.com/arthur-debert/tinta/pkg/color"
	"github.com/arthur-debert/tinta/pkg/logging"
)

// Environ reads environment variables. It matches termenv.Environ so the
// same value drives both.
type Environ = termenv.Environ

// MapEnviron is an Environ backed by a map, for tests and overrides
type MapEnviron map[string]string

func (m MapEnviron) Environ() []string {
	out := make([]string, 0, len(m))
	for k, v := range m {
		out = append(out, k+"="+v)
	}
	return out
}

func (m MapEnviron) Getenv(key string) string { return m[key] }

type osEnviron struct{}

func (osEnviron) Environ() []string        { return os.Environ() }
func (osEnviron) Getenv(key string) string { return os.Getenv(key) }

// Overrides pins parts of the profile regardless of what detection finds.
// Zero values mean "detect".
type Overrides struct {
	ColorSystem string
	Width       int
	Height      int
	Terminal    *bool
	Interactive *bool
	Legacy      *bool
	Links       *bool
	Encoding    string
}

type detector struct {
	env       Environ
	overrides Overrides
	assumeTTY *bool
}

// Option configures Detect
type Option func(*detector)

// WithEnviron reads environment variables from env instead of the process
func WithEnviron(env Environ) Option {
	return func(d *detector) { d.env = env }
}

// WithOverrides applies explicit settings on top of detection
func WithOverrides(o Overrides) Option {
	return func(d *detector) { d.overrides = o }
}

// WithTTY skips the device check and assumes the writer is (or is not)
// a terminal
func WithTTY(v bool) Option {
	return func(d *detector) { d.assumeTTY = &v }
}

type fder interface {
	Fd() uintptr
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(fder)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// Detect negotiates the profile for output written to w. Inputs, in
// increasing precedence: the device itself, TERM and COLORTERM, NO_COLOR,
// FORCE_COLOR, TTY_INTERACTIVE, COLUMNS and LINES, then overrides.
func Detect(w io.Writer, opts ...Option) Profile {
	d := &detector{env: osEnviron{}}
	for _, opt := range opts {
		opt(d)
	}
	env := d.env
	ov := d.overrides
	logger := logging.GetLogger("profile")

	tty := isTerminal(w)
	if d.assumeTTY != nil {
		tty = *d.assumeTTY
	}

	p := Profile{Terminal: tty}
	if env.Getenv("FORCE_COLOR") != "" {
		p.Terminal = true
	}
	if ov.Terminal != nil {
		p.Terminal = *ov.Terminal
	}

	p.Interactive = p.Terminal
	switch env.Getenv("TTY_INTERACTIVE") {
	case "0":
		p.Interactive = false
	case "1":
		p.Interactive = true
	}
	if ov.Interactive != nil {
		p.Interactive = *ov.Interactive
	}

	switch strings.ToLower(env.Getenv("TERM")) {
	case "dumb", "unknown":
		p.Dumb = true
	}

	p.Legacy = p.Terminal && tty && detectLegacy(w)
	if ov.Legacy != nil {
		p.Legacy = *ov.Legacy
	}
	p.ANSI = p.Terminal && !p.Dumb && !p.Legacy

	p.ColorSystem = detectColorSystem(w, env, p)
	if ov.ColorSystem != "" && ov.ColorSystem != "auto" {
		if sys, err := color.ParseSystem(ov.ColorSystem); err == nil {
			p.ColorSystem = sys
		} else {
			logger.Warn().Err(err).Msg("ignoring color system override")
		}
	}

	p.Links = p.ANSI
	if ov.Links != nil {
		p.Links = *ov.Links && p.ANSI
	}
	p.AltScreen = p.ANSI && p.Interactive

	p.Width, p.Height = detectSize(w, tty)
	if n, ok := envInt(env, "COLUMNS"); ok {
		p.Width = n
	}
	if n, ok := envInt(env, "LINES"); ok {
		p.Height = n
	}
	if ov.Width > 0 {
		p.Width = ov.Width
	}
	if ov.Height > 0 {
		p.Height = ov.Height
	}

	p.Encoding = detectEncoding(env)
	if ov.Encoding != "" {
		p.Encoding = normalizeEncoding(ov.Encoding)
	}

	logger.Debug().Str("profile", p.String()).Msg("negotiated output profile")
	return p
}

func detectColorSystem(w io.Writer, env Environ, p Profile) color.System {
	if env.Getenv("NO_COLOR") != "" || !p.Terminal || p.Dumb {
		return color.NoColor
	}
	if p.Legacy {
		return color.Windows
	}
	out := termenv.NewOutput(w, termenv.WithEnvironment(env), termenv.WithTTY(true))
	switch out.EnvColorProfile() {
	case termenv.TrueColor:
		return color.TrueColor
	case termenv.ANSI256:
		return color.EightBit
	case termenv.ANSI:
		return color.Standard
	}
	// a terminal termenv does not recognise still speaks the 16 colors,
	// unless CLICOLOR=0 asked for none
	if out.EnvNoColor() {
		return color.NoColor
	}
	return color.Standard
}

func detectSize(w io.Writer, tty bool) (int, int) {
	if f, ok := w.(fder); ok && tty {
		if width, height, err := term.GetSize(int(f.Fd())); err == nil && width > 0 {
			return width, max(height, 1)
		}
	}
	return DefaultWidth, DefaultHeight
}

func envInt(env Environ, key string) (int, bool) {
	v := strings.TrimSpace(env.Getenv(key))
	if v == "" {
		return 0, false
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < 1 {
		return 0, false
	}
	return n, true
}

// detectEncoding reads the charset from the locale variables. Without an
// explicit charset the output is assumed to be UTF-8.
func detectEncoding(env Environ) string {
	for _, key := range []string{"LC_ALL", "LC_CTYPE", "LANG"} {
		v := env.Getenv(key)
		if v == "" {
			continue
		}
		if i := strings.IndexByte(v, '.'); i >= 0 {
			cs := v[i+1:]
			if j := strings.IndexByte(cs, '@'); j >= 0 {
				cs = cs[:j]
			}
			return normalizeEncoding(cs)
		}
		return "utf-8"
	}
	return "utf-8"
}

func normalizeEncoding(enc string) string {
	enc = strings.ToLower(strings.TrimSpace(enc))
	switch enc {
	case "utf8", "utf-8":
		return "utf-8"
	case "ansi_x3.4-1968", "us-ascii":
		return "ascii"
	}
	return enc
}
