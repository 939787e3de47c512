// Package testutil builds deterministic consoles for tests. Output goes
// to an in-memory buffer and the profile is fixed, so nothing depends on
// the terminal the tests run in.
package testutil

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/arthur-debert/tinta/pkg/cells"
	"github.com/arthur-debert/tinta/pkg/color"
	"github.com/arthur-debert/tinta/pkg/console"
	"github.com/arthur-debert/tinta/pkg/profile"
	"github.com/arthur-debert/tinta/pkg/render"
	"github.com/arthur-debert/tinta/pkg/style"
)

// TestConsole is a console writing into Buf
type TestConsole struct {
	*console.Console
	Buf *bytes.Buffer
}

// NewConsole returns a console over a buffer with profile p
func NewConsole(p profile.Profile, opts ...console.Option) *TestConsole {
	buf := &bytes.Buffer{}
	opts = append([]console.Option{console.WithProfile(p)}, opts...)
	return &TestConsole{Console: console.New(buf, opts...), Buf: buf}
}

// PlainConsole has no color and no terminal controls
func PlainConsole(width int, opts ...console.Option) *TestConsole {
	return NewConsole(profile.Plain(width), opts...)
}

// TerminalConsole behaves like an ANSI terminal of the given size
func TerminalConsole(sys color.System, width, height int, opts ...console.Option) *TestConsole {
	return NewConsole(profile.Terminal(sys, width, height), opts...)
}

// Output returns everything written so far
func (c *TestConsole) Output() string { return c.Buf.String() }

// Lines splits the output into lines with trailing blanks removed. A
// final line break does not produce an empty last line.
func (c *TestConsole) Lines() []string {
	return trimLines(c.Buf.String())
}

func (c *TestConsole) Reset() { c.Buf.Reset() }

func trimLines(s string) []string {
	s = strings.TrimSuffix(s, "\n")
	if s == "" {
		return nil
	}
	lines := strings.Split(s, "\n")
	for i, l := range lines {
		lines[i] = strings.TrimRight(l, " ")
	}
	return lines
}

// RenderPlain lays r out at width with the default theme and returns its
// text, one string per line with trailing blanks removed
func RenderPlain(r render.Renderable, width int) []string {
	opts := profile.Plain(width).Options(style.DefaultTheme())
	var out []string
	for _, line := range render.Lines(r, opts) {
		out = append(out, strings.TrimRight(line.Plain(), " "))
	}
	return out
}

// AssertFits fails when any line is wider than width cells
func AssertFits(t *testing.T, lines []string, width int) bool {
	t.Helper()
	ok := true
	for i, l := range lines {
		if n := cells.Len(l); n > width {
			ok = assert.Failf(t, "line too wide", "line %d is %d cells, limit %d: %q", i, n, width, l)
		}
	}
	return ok
}

// IsolateEnv clears the variables that steer detection and points the
// config and state directories at temp dirs
func IsolateEnv(t *testing.T) {
	t.Helper()
	for _, name := range []string{"NO_COLOR", "FORCE_COLOR", "TTY_INTERACTIVE", "COLUMNS", "LINES", "COLORTERM", "LC_ALL", "LC_CTYPE", "LANG"} {
		t.Setenv(name, "")
	}
	t.Setenv("TERM", "xterm-256color")
	t.Setenv("TINTA_CONFIG_DIR", t.TempDir())
	t.Setenv("TINTA_STATE_DIR", t.TempDir())
}
