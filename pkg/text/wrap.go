package text

import (
	"regexp"
	"strings"
	"unicode"

	"github.com/arthur-debert/tinta/pkg/cells"
	"github.com/arthur-debert/tinta/pkg/render"
	"github.com/arthur-debert/tinta/pkg/segment"
	"github.com/arthur-debert/tinta/pkg/style"
)

// a word is its leading whitespace, the word, and its trailing whitespace
var wordRe = regexp.MustCompile(`\s*\S+\s*`)

// divideLine returns the byte offsets at which text must break to fit in
// width cells. Words wider than width are folded when fold is set.
func divideLine(text string, width int, fold bool) []int {
	var breaks []int
	offset := 0
	for _, loc := range wordRe.FindAllStringIndex(text, -1) {
		start, end := loc[0], loc[1]
		word := text[start:end]
		wordLen := cells.Len(strings.TrimRightFunc(word, unicode.IsSpace))

		if width-offset >= wordLen {
			offset += cells.Len(word)
			continue
		}

		switch {
		case wordLen > width && fold:
			chunks := cells.Chop(word, width)
			for i, chunk := range chunks {
				if start > 0 {
					breaks = append(breaks, start)
				}
				if i == len(chunks)-1 {
					offset = cells.Len(chunk)
				} else {
					start += len(chunk)
				}
			}
		case wordLen > width:
			if start > 0 {
				breaks = append(breaks, start)
			}
			offset = cells.Len(word)
		case offset > 0 && start > 0:
			breaks = append(breaks, start)
			offset = cells.Len(word)
		}
	}
	return breaks
}

// Wrap lays the text out in lines no wider than width
func (t *Text) Wrap(width int, justify render.Justify, overflow render.Overflow, tabSize int, noWrap bool) []*Text {
	if width < 1 {
		width = 1
	}
	if justify == render.JustifyDefault {
		justify = t.Justify
	}
	if overflow == render.OverflowDefault {
		overflow = t.Overflow
	}
	if overflow == render.OverflowDefault {
		overflow = render.OverflowFold
	}
	noWrap = noWrap || t.NoWrap

	var out []*Text
	for _, line := range t.Lines() {
		line.ExpandTabs(tabSize)

		var pieces []*Text
		if noWrap {
			pieces = []*Text{line}
		} else {
			pieces = line.Divide(divideLine(line.plain, width, overflow == render.OverflowFold))
		}
		for _, p := range pieces {
			p.RstripEnd(width)
		}
		justifyLines(pieces, width, justify, overflow)
		for _, p := range pieces {
			p.Truncate(width, overflow, false)
		}
		out = append(out, pieces...)
	}
	return out
}

func justifyLines(lines []*Text, width int, justify render.Justify, overflow render.Overflow) {
	switch justify {
	case render.JustifyLeft:
		for _, l := range lines {
			l.Truncate(width, overflow, true)
		}
	case render.JustifyCenter:
		for _, l := range lines {
			l.Rstrip()
			l.Truncate(width, overflow, false)
			n := cells.Len(l.plain)
			l.PadLeft((width - n) / 2)
			l.PadRight(width - cells.Len(l.plain))
		}
	case render.JustifyRight:
		for _, l := range lines {
			l.Rstrip()
			l.Truncate(width, overflow, false)
			l.PadLeft(width - cells.Len(l.plain))
		}
	case render.JustifyFull:
		for i, l := range lines {
			if i == len(lines)-1 {
				break
			}
			lines[i] = fullJustify(l, width)
		}
	}
}

// fullJustify widens the gaps between words until the line fills width.
// Extra spaces go to the rightmost gaps first.
func fullJustify(line *Text, width int) *Text {
	line.Rstrip()
	words := line.Split(" ")
	if len(words) < 2 {
		return line
	}
	size := 0
	for _, w := range words {
		size += cells.Len(w.plain)
	}
	spaces := make([]int, len(words)-1)
	for i := range spaces {
		spaces[i] = 1
	}
	gaps := len(spaces)
	idx := 0
	for size+gaps < width {
		spaces[len(spaces)-idx-1]++
		gaps++
		idx = (idx + 1) % len(spaces)
	}

	out := line.blank("")
	for i, w := range words {
		out.appendRaw(w)
		if i < len(spaces) {
			left := w.StyleAt(len(w.plain) - 1)
			right := words[i+1].StyleAt(0)
			st := style.Null
			if left == right {
				// both neighbours share a style, the gap takes it too
				st = left
			}
			out.Append(strings.Repeat(" ", spaces[i]), st)
		}
	}
	return out
}

// Measure reports the longest word as the minimum and the longest line
// as the maximum
func (t *Text) Measure(opts render.Options, maxWidth int) render.Measurement {
	plain := t.plain
	if strings.Contains(plain, "\t") {
		c := t.Copy()
		c.ExpandTabs(t.tabSize(opts))
		plain = c.plain
	}
	maxW := 0
	for _, l := range strings.Split(plain, "\n") {
		if w := cells.Len(l); w > maxW {
			maxW = w
		}
	}
	minW := 0
	for _, w := range strings.Fields(plain) {
		if n := cells.Len(w); n > minW {
			minW = n
		}
	}
	if t.NoWrap || opts.NoWrap {
		minW = maxW
	}
	return render.Measurement{Min: minW, Max: maxW}.WithMaximum(maxWidth)
}

func (t *Text) tabSize(opts render.Options) int {
	if t.TabSize > 0 {
		return t.TabSize
	}
	return opts.EffectiveTabSize()
}

// Render wraps the text to opts.Width and emits one newline per line
func (t *Text) Render(opts render.Options) []segment.Segment {
	justify := t.Justify
	if justify == render.JustifyDefault {
		justify = opts.Justify
	}
	overflow := t.Overflow
	if overflow == render.OverflowDefault {
		overflow = opts.Overflow
	}
	base := style.Combine(opts.Style, t.Style)

	lines := t.Wrap(opts.Width, justify, overflow, t.tabSize(opts), t.NoWrap || opts.NoWrap)
	var out []segment.Segment
	for _, l := range lines {
		out = append(out, l.segments(base)...)
		out = append(out, segment.Newline)
	}
	return out
}
