// Package console writes renderables to an output device. A Console owns
// the negotiated profile and the backend chosen for it; both are fixed
// for the console's lifetime.
package console

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/rs/zerolog"

	"github.com/arthur-debert/tinta/pkg/errors"
	"github.com/arthur-debert/tinta/pkg/logging"
	"github.com/arthur-debert/tinta/pkg/markup"
	"github.com/arthur-debert/tinta/pkg/profile"
	"github.com/arthur-debert/tinta/pkg/render"
	"github.com/arthur-debert/tinta/pkg/segment"
	"github.com/arthur-debert/tinta/pkg/style"
	"github.com/arthur-debert/tinta/pkg/text"
	"github.com/arthur-debert/tinta/pkg/widgets"
)

func log() zerolog.Logger { return logging.GetLogger("console") }

// Hook sees every batch of segments printed through the console before
// it reaches the backend. It runs with the console lock held.
type Hook interface {
	Process(segs []segment.Segment) ([]segment.Segment, error)
}

// Console renders and writes. Each render-and-write happens under an
// internal lock, so a Console may be shared between goroutines.
type Console struct {
	mu      sync.Mutex
	out     io.Writer
	profile profile.Profile
	theme   *style.Theme
	backend Backend
	markup  bool
	hooks   []Hook
	record  *RecordBackend
	capture []*strings.Builder
}

type settings struct {
	profile    *profile.Profile
	detect     []profile.Option
	theme      *style.Theme
	backend    Backend
	legacyTerm LegacyTerm
	record     bool
	noMarkup   bool
}

// Option configures New
type Option func(*settings)

// WithProfile uses p instead of detecting one
func WithProfile(p profile.Profile) Option {
	return func(s *settings) { s.profile = &p }
}

// WithDetectOptions passes options to profile detection
func WithDetectOptions(opts ...profile.Option) Option {
	return func(s *settings) { s.detect = append(s.detect, opts...) }
}

// WithTheme sets the theme used to resolve style names
func WithTheme(t *style.Theme) Option {
	return func(s *settings) { s.theme = t }
}

// WithBackend overrides backend selection
func WithBackend(b Backend) Option {
	return func(s *settings) { s.backend = b }
}

// WithLegacyTerm supplies the console used by the legacy backend
func WithLegacyTerm(t LegacyTerm) Option {
	return func(s *settings) { s.legacyTerm = t }
}

// WithRecord keeps a copy of everything written for export
func WithRecord() Option {
	return func(s *settings) { s.record = true }
}

// WithoutMarkup prints strings literally
func WithoutMarkup() Option {
	return func(s *settings) { s.noMarkup = true }
}

// New builds a console writing to w (stdout when nil). The profile is
// detected once here unless given.
func New(w io.Writer, opts ...Option) *Console {
	if w == nil {
		w = os.Stdout
	}
	s := &settings{}
	for _, opt := range opts {
		opt(s)
	}
	var p profile.Profile
	if s.profile != nil {
		p = *s.profile
	} else {
		p = profile.Detect(w, s.detect...)
	}
	theme := s.theme
	if theme == nil {
		theme = style.DefaultTheme()
	}
	backend := s.backend
	if backend == nil {
		backend = SelectBackend(p, w, s.legacyTerm)
	}
	c := &Console{
		out:     w,
		profile: p,
		theme:   theme,
		backend: backend,
		markup:  !s.noMarkup,
	}
	if s.record {
		c.record = &RecordBackend{}
	}
	logger := log()
	logger.Debug().Str("backend", fmt.Sprintf("%T", backend)).Str("profile", p.String()).Msg("console created")
	return c
}

var (
	defaultOnce    sync.Once
	defaultConsole *Console
)

// Default returns a process-wide console on stdout, built on first use
func Default() *Console {
	defaultOnce.Do(func() {
		defaultConsole = New(os.Stdout)
	})
	return defaultConsole
}

// Profile returns a copy of the console's profile
func (c *Console) Profile() profile.Profile { return c.profile }

func (c *Console) Theme() *style.Theme { return c.theme }

// Size returns the width and height in cells
func (c *Console) Size() (int, int) { return c.profile.Width, c.profile.Height }

func (c *Console) Width() int { return c.profile.Width }

// Options returns the root render options
func (c *Console) Options() render.Options {
	opts := c.profile.Options(c.theme)
	opts.Markup = c.markup
	return opts
}

// Render lays r out with opts
func (c *Console) Render(r render.Renderable, opts render.Options) []segment.Segment {
	return r.Render(opts)
}

// RenderLines lays r out as lines of exactly opts.Width cells
func (c *Console) RenderLines(r render.Renderable, opts render.Options) []segment.Line {
	return render.Lines(r, opts)
}

// renderables turns Print arguments into renderables. Runs of strings and
// other plain values are joined with spaces into one markup source.
func (c *Console) renderables(objects []any) ([]render.Renderable, error) {
	var out []render.Renderable
	var words []string
	flush := func() error {
		if len(words) == 0 {
			return nil
		}
		src := strings.Join(words, " ")
		words = nil
		if !c.markup {
			out = append(out, text.New(src, style.Null))
			return nil
		}
		tree, err := markup.Parse(src, markup.WithTheme(c.theme))
		if err != nil {
			return err
		}
		out = append(out, tree)
		return nil
	}
	for _, obj := range objects {
		switch v := obj.(type) {
		case render.Renderable:
			if err := flush(); err != nil {
				return nil, err
			}
			out = append(out, v)
		case string:
			words = append(words, v)
		default:
			s := fmt.Sprint(v)
			if c.markup {
				s = markup.Escape(s)
			}
			words = append(words, s)
		}
	}
	if err := flush(); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Console) print(newline bool, objects []any) error {
	rs, err := c.renderables(objects)
	if err != nil {
		return err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	opts := c.Options()
	var segs []segment.Segment
	for _, r := range rs {
		segs = append(segs, r.Render(opts)...)
	}
	segs = trimNewline(segs)
	if newline {
		segs = append(segs, segment.Newline)
	}
	return c.write(segs)
}

// trimNewline drops one trailing line break
func trimNewline(segs []segment.Segment) []segment.Segment {
	for i := len(segs) - 1; i >= 0; i-- {
		s := segs[i]
		if s.IsControl() {
			continue
		}
		if s.Text == "\n" {
			return append(segs[:i:i], segs[i+1:]...)
		}
		if strings.HasSuffix(s.Text, "\n") {
			out := append([]segment.Segment(nil), segs...)
			out[i].Text = strings.TrimSuffix(s.Text, "\n")
			return out
		}
		return segs
	}
	return segs
}

// Print renders objects without a final line break. Strings are markup
// unless the console was built WithoutMarkup; renderables are drawn at
// the console width.
func (c *Console) Print(objects ...any) error {
	return c.print(false, objects)
}

// Println is Print followed by a line break
func (c *Console) Println(objects ...any) error {
	return c.print(true, objects)
}

// Printf formats markup and prints it
func (c *Console) Printf(format string, args ...any) error {
	return c.print(false, []any{fmt.Sprintf(format, args...)})
}

// Line writes n blank lines
func (c *Console) Line(n int) error {
	segs := make([]segment.Segment, 0, n)
	for range n {
		segs = append(segs, segment.Newline)
	}
	return c.Write(segs)
}

// Rule draws a horizontal line with an optional markup title
func (c *Console) Rule(title string) error {
	return c.Println(widgets.NewRule(title))
}

// Write sends segments through the hooks and the backend
func (c *Console) Write(segs []segment.Segment) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.write(segs)
}

func (c *Console) write(segs []segment.Segment) error {
	var err error
	for _, h := range c.hooks {
		if segs, err = h.Process(segs); err != nil {
			return err
		}
	}
	return c.emit(segs)
}

func (c *Console) emit(segs []segment.Segment) error {
	if len(segs) == 0 {
		return nil
	}
	if c.record != nil {
		_ = c.record.Write(nil, segs)
	}
	if n := len(c.capture); n > 0 {
		b := c.backend
		if _, ok := b.(*LegacyBackend); ok {
			b = PlainBackend{}
		}
		return b.Write(c.capture[n-1], segs)
	}
	return c.backend.Write(c.out, segs)
}

// Exclusive runs fn with the console lock held. write sends segments
// straight to the backend, skipping hooks.
func (c *Console) Exclusive(fn func(write func([]segment.Segment) error) error) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return fn(c.emit)
}

// Control writes terminal controls. Devices without escape support
// ignore them.
func (c *Console) Control(ctrls ...segment.Control) error {
	if !c.profile.ANSI && !c.profile.Legacy {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.emit([]segment.Segment{segment.Controls(ctrls...)})
}

// ShowCursor shows or hides the cursor
func (c *Console) ShowCursor(show bool) error {
	t := segment.ControlHideCursor
	if show {
		t = segment.ControlShowCursor
	}
	return c.Control(segment.Control{Type: t})
}

// SetTitle sets the terminal window title
func (c *Console) SetTitle(title string) error {
	return c.Control(segment.Control{Type: segment.ControlSetTitle, Title: title})
}

// AltScreen runs fn on the alternate screen and always switches back,
// even when fn fails or panics. Without alternate screen support fn runs
// on the normal screen.
func (c *Console) AltScreen(fn func() error) (err error) {
	if !c.profile.AltScreen {
		logger := log()
		logger.Debug().Msg("alternate screen unsupported, rendering inline")
		return fn()
	}
	if err := c.Control(
		segment.Control{Type: segment.ControlEnableAltScreen},
		segment.Control{Type: segment.ControlHome},
	); err != nil {
		return err
	}
	defer func() {
		if exitErr := c.Control(segment.Control{Type: segment.ControlDisableAltScreen}); exitErr != nil && err == nil {
			err = exitErr
		}
	}()
	return fn()
}

// Capture runs fn and returns what it printed instead of writing it
func (c *Console) Capture(fn func() error) (string, error) {
	b := &strings.Builder{}
	c.mu.Lock()
	c.capture = append(c.capture, b)
	c.mu.Unlock()

	err := fn()

	c.mu.Lock()
	c.capture = c.capture[:len(c.capture)-1]
	c.mu.Unlock()
	return b.String(), err
}

// PushHook installs h after any hooks already present
func (c *Console) PushHook(h Hook) {
	c.mu.Lock()
	c.hooks = append(c.hooks, h)
	c.mu.Unlock()
}

// RemoveHook uninstalls h
func (c *Console) RemoveHook(h Hook) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for i, x := range c.hooks {
		if x == h {
			c.hooks = append(c.hooks[:i], c.hooks[i+1:]...)
			return
		}
	}
}

// Recording reports whether the console keeps output for export
func (c *Console) Recording() bool { return c.record != nil }

func (c *Console) recorded(clear bool) ([]segment.Segment, error) {
	if c.record == nil {
		return nil, errors.New(errors.ErrExport, "console is not recording; build it WithRecord")
	}
	segs := c.record.Segments()
	if clear {
		c.record.Reset()
	}
	return segs, nil
}
