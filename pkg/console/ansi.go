package console

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/muesli/termenv"

	"github.com/arthur-debert/tinta/pkg/color"
	"github.com/arthur-debert/tinta/pkg/errors"
	"github.com/arthur-debert/tinta/pkg/segment"
	"github.com/arthur-debert/tinta/pkg/style"
)

// sgrState is what the terminal currently shows: resolved colors and the
// attributes that are on
type sgrState struct {
	attrs        style.Attr
	fg, bg       color.Color
	hasFg, hasBg bool
}

func stateOf(s style.Style, sys color.System) sgrState {
	s = s.Downgrade(sys)
	var st sgrState
	for _, a := range style.AllAttrs {
		if s.Has(a) {
			st.attrs |= a
		}
	}
	st.fg, st.hasFg = s.Fg()
	st.bg, st.hasBg = s.Bg()
	return st
}

func (s sgrState) isZero() bool { return s == sgrState{} }

func (s sgrState) codes() []string {
	var codes []string
	for _, a := range style.AllAttrs {
		if s.attrs&a != 0 {
			codes = append(codes, a.OnCode())
		}
	}
	if s.hasFg {
		codes = append(codes, style.ColorCode(s.fg, true))
	}
	if s.hasBg {
		codes = append(codes, style.ColorCode(s.bg, false))
	}
	return codes
}

// sgrDiff returns the SGR parameters that take the terminal from prev to
// next, or "" when nothing changes. When a full reset is shorter than
// the delta the reset form is used.
func sgrDiff(prev, next sgrState) string {
	if prev == next {
		return ""
	}
	if next.isZero() {
		return "0"
	}

	var codes []string
	var cleared style.Attr
	seen := map[string]bool{}
	for _, a := range style.AllAttrs {
		if prev.attrs&a != 0 && next.attrs&a == 0 {
			if code := a.OffCode(); !seen[code] {
				seen[code] = true
				codes = append(codes, code)
			}
			cleared |= a.Siblings()
		}
	}
	for _, a := range style.AllAttrs {
		if next.attrs&a != 0 && (prev.attrs&a == 0 || cleared&a != 0) {
			codes = append(codes, a.OnCode())
		}
	}
	if prev.hasFg != next.hasFg || prev.fg != next.fg {
		if next.hasFg {
			codes = append(codes, style.ColorCode(next.fg, true))
		} else {
			codes = append(codes, "39")
		}
	}
	if prev.hasBg != next.hasBg || prev.bg != next.bg {
		if next.hasBg {
			codes = append(codes, style.ColorCode(next.bg, false))
		} else {
			codes = append(codes, "49")
		}
	}

	delta := strings.Join(codes, ";")
	if full := "0;" + strings.Join(next.codes(), ";"); len(full) < len(delta) {
		return full
	}
	return delta
}

// ControlSequence returns the escape sequence for a control, or "" when
// it has no effect
func ControlSequence(c segment.Control) string {
	move := func(seq string) string {
		if c.Param <= 0 {
			return ""
		}
		return termenv.CSI + fmt.Sprintf(seq, c.Param)
	}
	switch c.Type {
	case segment.ControlBell:
		return "\a"
	case segment.ControlCarriageReturn:
		return "\r"
	case segment.ControlHome:
		return termenv.CSI + fmt.Sprintf(termenv.CursorPositionSeq, 1, 1)
	case segment.ControlClear:
		return termenv.CSI + fmt.Sprintf(termenv.EraseDisplaySeq, 2)
	case segment.ControlShowCursor:
		return termenv.CSI + termenv.ShowCursorSeq
	case segment.ControlHideCursor:
		return termenv.CSI + termenv.HideCursorSeq
	case segment.ControlEnableAltScreen:
		return termenv.CSI + termenv.AltScreenSeq
	case segment.ControlDisableAltScreen:
		return termenv.CSI + termenv.ExitAltScreenSeq
	case segment.ControlCursorUp:
		return move(termenv.CursorUpSeq)
	case segment.ControlCursorDown:
		return move(termenv.CursorDownSeq)
	case segment.ControlCursorForward:
		return move(termenv.CursorForwardSeq)
	case segment.ControlCursorBackward:
		return move(termenv.CursorBackSeq)
	case segment.ControlMoveToColumn:
		return termenv.CSI + fmt.Sprintf(termenv.CursorHorizontalSeq, max(c.Param, 0)+1)
	case segment.ControlEraseInLine:
		return termenv.CSI + fmt.Sprintf(termenv.EraseLineSeq, c.Param)
	case segment.ControlSetTitle:
		return termenv.OSC + fmt.Sprintf(termenv.SetWindowTitleSeq, c.Title)
	}
	return ""
}

// ANSIBackend writes SGR escape sequences, emitting only the attributes
// and colors that change between segments. Every line ends with the
// terminal back at its default style.
type ANSIBackend struct {
	System color.System
	Links  bool

	cur     sgrState
	curLink string
	linkID  int
}

// NewANSIBackend returns a backend resolving colors for sys
func NewANSIBackend(sys color.System, links bool) *ANSIBackend {
	return &ANSIBackend{System: sys, Links: links}
}

func (b *ANSIBackend) Write(w io.Writer, segs []segment.Segment) error {
	var buf strings.Builder
	b.cur, b.curLink = sgrState{}, ""
	for _, s := range segs {
		if s.IsControl() {
			for _, c := range s.Controls {
				buf.WriteString(ControlSequence(c))
			}
			continue
		}
		for i, part := range strings.Split(s.Text, "\n") {
			if i > 0 {
				b.reset(&buf)
				buf.WriteByte('\n')
			}
			if part == "" {
				continue
			}
			b.transition(&buf, s.Style)
			buf.WriteString(part)
		}
	}
	b.reset(&buf)
	if _, err := io.WriteString(w, buf.String()); err != nil {
		return errors.Wrap(err, errors.ErrBackendWrite, "writing ANSI output")
	}
	return nil
}

func (b *ANSIBackend) transition(buf *strings.Builder, s style.Style) {
	next := stateOf(s, b.System)
	if codes := sgrDiff(b.cur, next); codes != "" {
		buf.WriteString(termenv.CSI + codes + "m")
	}
	b.cur = next

	if !b.Links || s.Link() == b.curLink {
		return
	}
	if b.curLink != "" {
		buf.WriteString(closeLink)
	}
	if link := s.Link(); link != "" {
		b.linkID++
		buf.WriteString(termenv.OSC + "8;id=" + strconv.Itoa(b.linkID) + ";" + link + termenv.ST)
	}
	b.curLink = s.Link()
}

const closeLink = termenv.OSC + "8;;" + termenv.ST

func (b *ANSIBackend) reset(buf *strings.Builder) {
	if b.curLink != "" {
		buf.WriteString(closeLink)
		b.curLink = ""
	}
	if !b.cur.isZero() {
		buf.WriteString(termenv.CSI + "0m")
		b.cur = sgrState{}
	}
}
