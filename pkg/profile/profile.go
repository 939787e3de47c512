// Package profile describes what an output device supports: color tier,
// escape sequences, links, interactivity, size and encoding. A Profile is
// negotiated once when a console is built and never changes afterwards.
package profile

import (
	"fmt"
	"strings"

	"github.com/arthur-debert/tinta/pkg/color"
	"github.com/arthur-debert/tinta/pkg/render"
	"github.com/arthur-debert/tinta/pkg/style"
)

const (
	DefaultWidth  = 80
	DefaultHeight = 25
)

// Profile is a negotiated capability set. It is a plain value; copies
// are independent.
type Profile struct {
	ColorSystem color.System
	// ANSI reports support for escape sequences (SGR, cursor movement)
	ANSI bool
	// Legacy is a Windows console without virtual terminal processing
	Legacy bool
	// Interactive is true when a person is watching the output
	Interactive bool
	// Terminal is true when the output is a terminal device
	Terminal bool
	// Dumb is a terminal that cannot move the cursor (TERM=dumb)
	Dumb      bool
	Links     bool
	AltScreen bool
	Width     int
	Height    int
	Encoding  string
}

// Plain is a profile for files and pipes: no color, no escapes
func Plain(width int) Profile {
	if width < 1 {
		width = DefaultWidth
	}
	return Profile{
		ColorSystem: color.NoColor,
		Width:       width,
		Height:      DefaultHeight,
		Encoding:    "utf-8",
	}
}

// Terminal is a fully capable ANSI terminal profile
func Terminal(sys color.System, width, height int) Profile {
	if width < 1 {
		width = DefaultWidth
	}
	if height < 1 {
		height = DefaultHeight
	}
	return Profile{
		ColorSystem: sys,
		ANSI:        true,
		Interactive: true,
		Terminal:    true,
		Links:       true,
		AltScreen:   true,
		Width:       width,
		Height:      height,
		Encoding:    "utf-8",
	}
}

// CanMoveCursor reports whether in-place redraws are possible
func (p Profile) CanMoveCursor() bool {
	return p.Terminal && !p.Dumb && (p.ANSI || p.Legacy)
}

// UnicodeOK reports whether the encoding is a Unicode one
func (p Profile) UnicodeOK() bool {
	enc := strings.ToLower(p.Encoding)
	return enc == "" || strings.HasPrefix(enc, "utf")
}

// Options returns the root render options for this profile
func (p Profile) Options(theme *style.Theme) render.Options {
	if theme == nil {
		theme = style.DefaultTheme()
	}
	return render.Options{
		Width:       max(p.Width, 1),
		Theme:       theme,
		ColorSystem: p.ColorSystem,
		Encoding:    p.Encoding,
		ASCIIOnly:   !p.UnicodeOK(),
		Legacy:      p.Legacy,
		IsTerminal:  p.Terminal,
		TabSize:     8,
	}
}

func (p Profile) String() string {
	return fmt.Sprintf("color=%s ansi=%t legacy=%t interactive=%t terminal=%t links=%t size=%dx%d encoding=%s",
		p.ColorSystem, p.ANSI, p.Legacy, p.Interactive, p.Terminal, p.Links, p.Width, p.Height, p.Encoding)
}
