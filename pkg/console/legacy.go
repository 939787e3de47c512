package console

import (
	"io"
	"strings"

	"github.com/arthur-debert/tinta/pkg/color"
	"github.com/arthur-debert/tinta/pkg/errors"
	"github.com/arthur-debert/tinta/pkg/segment"
	"github.com/arthur-debert/tinta/pkg/style"
)

// Windows console attribute bits
const (
	fgBlue      uint16 = 0x1
	fgGreen     uint16 = 0x2
	fgRed       uint16 = 0x4
	fgIntensity uint16 = 0x8
)

// ansiToWindows maps the 16 ANSI color numbers to console color values
var ansiToWindows = [16]uint16{
	0, fgRed, fgGreen, fgRed | fgGreen, fgBlue, fgRed | fgBlue, fgGreen | fgBlue, fgRed | fgGreen | fgBlue,
	fgIntensity, fgIntensity | fgRed, fgIntensity | fgGreen, fgIntensity | fgRed | fgGreen,
	fgIntensity | fgBlue, fgIntensity | fgRed | fgBlue, fgIntensity | fgGreen | fgBlue, 0xf,
}

// LegacyTerm is a console driven through API calls rather than escape
// sequences
type LegacyTerm interface {
	WriteText(s string) error
	// DefaultAttributes are the attributes in effect before any styling
	DefaultAttributes() uint16
	SetAttributes(attr uint16) error
	MoveCursor(rows, cols int) error
	MoveToColumn(col int) error
	// EraseLine clears to the end (0), the start (1) or all (2) of the line
	EraseLine(mode int) error
	ShowCursor(show bool) error
	SetTitle(title string) error
}

// LegacyBackend maps styles to the 16 console colors. Attributes the
// console cannot show are dropped; bold brightens the foreground.
type LegacyBackend struct {
	Term   LegacyTerm
	System color.System
}

// NewLegacyBackend returns a backend drawing through term
func NewLegacyBackend(term LegacyTerm, sys color.System) *LegacyBackend {
	if sys != color.NoColor {
		sys = color.Windows
	}
	return &LegacyBackend{Term: term, System: sys}
}

// Attributes returns the console attributes for s
func (b *LegacyBackend) Attributes(s style.Style) uint16 {
	def := b.Term.DefaultAttributes()
	fore, back := def&0xf, (def>>4)&0xf
	st := stateOf(s, b.System)
	if st.hasFg && !st.fg.IsDefault() {
		fore = ansiToWindows[st.fg.Number&0xf]
	}
	if st.hasBg && !st.bg.IsDefault() {
		back = ansiToWindows[st.bg.Number&0xf]
	}
	if st.attrs&style.Bold != 0 {
		fore |= fgIntensity
	}
	if st.attrs&style.Dim != 0 {
		fore &^= fgIntensity
	}
	if st.attrs&style.Reverse != 0 {
		fore, back = back, fore
	}
	return fore | back<<4
}

func (b *LegacyBackend) Write(_ io.Writer, segs []segment.Segment) error {
	def := b.Term.DefaultAttributes()
	cur := def
	for _, s := range segs {
		if s.IsControl() {
			for _, c := range s.Controls {
				if err := b.control(c); err != nil {
					return errors.Wrap(err, errors.ErrBackendWrite, "legacy console control")
				}
			}
			continue
		}
		for i, part := range strings.Split(s.Text, "\n") {
			if i > 0 {
				if cur != def {
					if err := b.Term.SetAttributes(def); err != nil {
						return errors.Wrap(err, errors.ErrBackendWrite, "legacy console attributes")
					}
					cur = def
				}
				if err := b.Term.WriteText("\n"); err != nil {
					return errors.Wrap(err, errors.ErrBackendWrite, "legacy console write")
				}
			}
			if part == "" {
				continue
			}
			if attr := b.Attributes(s.Style); attr != cur {
				if err := b.Term.SetAttributes(attr); err != nil {
					return errors.Wrap(err, errors.ErrBackendWrite, "legacy console attributes")
				}
				cur = attr
			}
			if err := b.Term.WriteText(part); err != nil {
				return errors.Wrap(err, errors.ErrBackendWrite, "legacy console write")
			}
		}
	}
	if cur != def {
		if err := b.Term.SetAttributes(def); err != nil {
			return errors.Wrap(err, errors.ErrBackendWrite, "legacy console attributes")
		}
	}
	return nil
}

func (b *LegacyBackend) control(c segment.Control) error {
	switch c.Type {
	case segment.ControlCarriageReturn:
		return b.Term.MoveToColumn(0)
	case segment.ControlCursorUp:
		return b.Term.MoveCursor(-c.Param, 0)
	case segment.ControlCursorDown:
		return b.Term.MoveCursor(c.Param, 0)
	case segment.ControlCursorForward:
		return b.Term.MoveCursor(0, c.Param)
	case segment.ControlCursorBackward:
		return b.Term.MoveCursor(0, -c.Param)
	case segment.ControlMoveToColumn:
		return b.Term.MoveToColumn(c.Param)
	case segment.ControlEraseInLine:
		return b.Term.EraseLine(c.Param)
	case segment.ControlShowCursor:
		return b.Term.ShowCursor(true)
	case segment.ControlHideCursor:
		return b.Term.ShowCursor(false)
	case segment.ControlSetTitle:
		return b.Term.SetTitle(c.Title)
	}
	// bell, home, clear and the alternate screen have no legacy equivalent
	return nil
}
