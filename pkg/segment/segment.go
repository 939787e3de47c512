// Package segment defines Segment, the unit of rendered output, and the
// line-oriented helpers the layout code is built on.
package segment

import (
	"strings"

	"github.com/arthur-debert/tinta/pkg/cells"
	"github.com/arthur-debert/tinta/pkg/style"
)

// ControlType identifies a terminal control operation
type ControlType uint8

const (
	ControlBell ControlType = iota + 1
	ControlCarriageReturn
	ControlHome
	ControlClear
	ControlShowCursor
	ControlHideCursor
	ControlEnableAltScreen
	ControlDisableAltScreen
	ControlCursorUp
	ControlCursorDown
	ControlCursorForward
	ControlCursorBackward
	ControlMoveToColumn
	ControlEraseInLine
	ControlSetTitle
)

// Control is a terminal operation carried by a segment instead of text
type Control struct {
	Type  ControlType
	Param int
	Title string
}

// Segment is a run of text in a single style, or a list of controls
type Segment struct {
	Text     string
	Style    style.Style
	Controls []Control
}

// Newline is the line separator segment
var Newline = Segment{Text: "\n"}

// Text builds a plain text segment
func Text(text string, s style.Style) Segment {
	return Segment{Text: text, Style: s}
}

// Controls builds a segment carrying only control operations
func Controls(ctrls ...Control) Segment {
	return Segment{Controls: ctrls}
}

// IsControl reports whether the segment carries controls rather than text
func (s Segment) IsControl() bool {
	return len(s.Controls) > 0
}

// CellLen is the printable width of the segment
func (s Segment) CellLen() int {
	if s.IsControl() {
		return 0
	}
	return cells.Len(s.Text)
}

// Split cuts the segment at cell offset cut
func (s Segment) Split(cut int) (Segment, Segment) {
	l, r := cells.Split(s.Text, cut)
	return Segment{Text: l, Style: s.Style}, Segment{Text: r, Style: s.Style}
}

// Line is one row of segments, without a trailing newline
type Line []Segment

// CellLen is the printable width of the line
func (l Line) CellLen() int {
	n := 0
	for _, s := range l {
		n += s.CellLen()
	}
	return n
}

// Plain concatenates the text of every segment
func (l Line) Plain() string {
	var b strings.Builder
	for _, s := range l {
		if !s.IsControl() {
			b.WriteString(s.Text)
		}
	}
	return b.String()
}

// SplitLines breaks a segment stream into lines at "\n"
func SplitLines(segs []Segment) []Line {
	var (
		lines []Line
		cur   Line
	)
	for _, s := range segs {
		if s.IsControl() || !strings.Contains(s.Text, "\n") {
			cur = append(cur, s)
			continue
		}
		parts := strings.Split(s.Text, "\n")
		for i, p := range parts {
			if p != "" {
				cur = append(cur, Segment{Text: p, Style: s.Style})
			}
			if i < len(parts)-1 {
				lines = append(lines, cur)
				cur = nil
			}
		}
	}
	if len(cur) > 0 {
		lines = append(lines, cur)
	}
	return lines
}

// SplitAndCropLines splits into lines and forces each to exactly width
// cells, padding with pad.
func SplitAndCropLines(segs []Segment, width int, pad style.Style) []Line {
	lines := SplitLines(segs)
	for i, l := range lines {
		lines[i] = AdjustLineLength(l, width, pad)
	}
	return lines
}

// AdjustLineLength crops or pads a line to exactly width cells
func AdjustLineLength(line Line, width int, pad style.Style) Line {
	n := line.CellLen()
	if n < width {
		out := make(Line, len(line), len(line)+1)
		copy(out, line)
		return append(out, Segment{Text: strings.Repeat(" ", width-n), Style: pad})
	}
	if n > width {
		return CropLine(line, width)
	}
	return line
}

// CropLine drops everything past width cells
func CropLine(line Line, width int) Line {
	out := make(Line, 0, len(line))
	used := 0
	for _, s := range line {
		if s.IsControl() {
			out = append(out, s)
			continue
		}
		w := s.CellLen()
		if used+w <= width {
			out = append(out, s)
			used += w
			continue
		}
		if used < width {
			left, _ := s.Split(width - used)
			out = append(out, left)
		}
		break
	}
	return out
}

// Shape returns the widest line and the number of lines
func Shape(lines []Line) (width, height int) {
	for _, l := range lines {
		if w := l.CellLen(); w > width {
			width = w
		}
	}
	return width, len(lines)
}

// SetShape pads every line to width and appends blank lines up to height
func SetShape(lines []Line, width, height int, pad style.Style) []Line {
	out := make([]Line, 0, height)
	for i := 0; i < height; i++ {
		if i < len(lines) {
			out = append(out, AdjustLineLength(lines[i], width, pad))
		} else {
			out = append(out, Line{{Text: strings.Repeat(" ", width), Style: pad}})
		}
	}
	return out
}

// Simplify merges adjacent segments that share a style
func Simplify(segs []Segment) []Segment {
	if len(segs) == 0 {
		return segs
	}
	out := make([]Segment, 0, len(segs))
	for _, s := range segs {
		if s.Text == "" && !s.IsControl() {
			continue
		}
		if n := len(out); n > 0 && !s.IsControl() && !out[n-1].IsControl() && out[n-1].Style == s.Style {
			out[n-1].Text += s.Text
			continue
		}
		out = append(out, s)
	}
	return out
}

// StripStyles returns the segments with every style removed
func StripStyles(segs []Segment) []Segment {
	out := make([]Segment, len(segs))
	for i, s := range segs {
		out[i] = Segment{Text: s.Text, Controls: s.Controls}
	}
	return out
}

// ApplyStyle layers base under every segment's style
func ApplyStyle(segs []Segment, base style.Style) []Segment {
	if base.IsNull() {
		return segs
	}
	out := make([]Segment, len(segs))
	for i, s := range segs {
		if !s.IsControl() {
			s.Style = style.Combine(base, s.Style)
		}
		out[i] = s
	}
	return out
}

// Join flattens lines back into a stream, ending every line with Newline
func Join(lines []Line) []Segment {
	var out []Segment
	for _, l := range lines {
		out = append(out, l...)
		out = append(out, Newline)
	}
	return out
}

// Divide splits a line at the given cell offsets. The result has one
// more element than cuts.
func Divide(line Line, cuts []int) []Line {
	out := make([]Line, 0, len(cuts)+1)
	var cur Line
	pos := 0
	ci := 0
	for _, s := range line {
		for ci < len(cuts) && !s.IsControl() {
			w := s.CellLen()
			if pos+w <= cuts[ci] {
				break
			}
			left, right := s.Split(cuts[ci] - pos)
			if left.Text != "" {
				cur = append(cur, left)
			}
			out = append(out, cur)
			cur = nil
			pos = cuts[ci]
			ci++
			s = right
		}
		if s.Text != "" || s.IsControl() {
			cur = append(cur, s)
			pos += s.CellLen()
		}
	}
	out = append(out, cur)
	for len(out) < len(cuts)+1 {
		out = append(out, nil)
	}
	return out
}
