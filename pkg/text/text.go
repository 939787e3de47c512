// Package text implements Text, a string with styled spans, and the
// wrapping and justification rules used everywhere text is laid out.
package text

import (
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/arthur-debert/tinta/pkg/cells"
	"github.com/arthur-debert/tinta/pkg/render"
	"github.com/arthur-debert/tinta/pkg/segment"
	"github.com/arthur-debert/tinta/pkg/style"
)

// Span styles the byte range [Start, End)
type Span struct {
	Start int
	End   int
	Style style.Style
}

func (s Span) shift(by int) Span {
	return Span{s.Start + by, s.End + by, s.Style}
}

// clip restricts s to [start, end) and rebases it to start
func (s Span) clip(start, end int) (Span, bool) {
	if s.End <= start || s.Start >= end {
		return Span{}, false
	}
	if s.Start < start {
		s.Start = start
	}
	if s.End > end {
		s.End = end
	}
	return Span{s.Start - start, s.End - start, s.Style}, true
}

// Text is a string with styled spans. Spans are applied in order, later
// spans layered over earlier ones, all on top of Style.
type Text struct {
	plain string
	spans []Span

	Style    style.Style
	Justify  render.Justify
	Overflow render.Overflow
	NoWrap   bool
	TabSize  int
}

// New creates a text in a single style
func New(plain string, s style.Style) *Text {
	return &Text{plain: plain, Style: s}
}

// Assemble builds a text from alternating (string, style) pieces
func Assemble(parts ...Piece) *Text {
	t := New("", style.Null)
	for _, p := range parts {
		t.Append(p.Text, p.Style)
	}
	return t
}

// Piece is one argument to Assemble
type Piece struct {
	Text  string
	Style style.Style
}

// Plain returns the text without styling
func (t *Text) Plain() string { return t.plain }

// String is the plain text
func (t *Text) String() string { return t.plain }

// Spans returns a copy of the spans
func (t *Text) Spans() []Span {
	out := make([]Span, len(t.spans))
	copy(out, t.spans)
	return out
}

// CellLen is the printable width of the widest line
func (t *Text) CellLen() int {
	if !strings.Contains(t.plain, "\n") {
		return cells.Len(t.plain)
	}
	max := 0
	for _, l := range strings.Split(t.plain, "\n") {
		if w := cells.Len(l); w > max {
			max = w
		}
	}
	return max
}

// Copy returns an independent copy
func (t *Text) Copy() *Text {
	c := *t
	c.spans = t.Spans()
	return &c
}

// blank returns an empty text with t's settings
func (t *Text) blank(plain string) *Text {
	return &Text{
		plain:    plain,
		Style:    t.Style,
		Justify:  t.Justify,
		Overflow: t.Overflow,
		NoWrap:   t.NoWrap,
		TabSize:  t.TabSize,
	}
}

// Append adds s in style st
func (t *Text) Append(s string, st style.Style) *Text {
	if s == "" {
		return t
	}
	start := len(t.plain)
	t.plain += s
	if !st.IsNull() {
		t.spans = append(t.spans, Span{start, len(t.plain), st})
	}
	return t
}

// AppendText adds another text, keeping its spans
func (t *Text) AppendText(o *Text) *Text {
	if o == nil || o.plain == "" {
		return t
	}
	start := len(t.plain)
	t.plain += o.plain
	if !o.Style.IsNull() {
		t.spans = append(t.spans, Span{start, len(t.plain), o.Style})
	}
	for _, s := range o.spans {
		t.spans = append(t.spans, s.shift(start))
	}
	return t
}

// appendRaw adds o's text and spans but not o.Style
func (t *Text) appendRaw(o *Text) {
	start := len(t.plain)
	t.plain += o.plain
	for _, s := range o.spans {
		t.spans = append(t.spans, s.shift(start))
	}
}

// Stylize applies st to the byte range [start, end)
func (t *Text) Stylize(st style.Style, start, end int) *Text {
	if st.IsNull() {
		return t
	}
	if start < 0 {
		start = 0
	}
	if end > len(t.plain) {
		end = len(t.plain)
	}
	if start >= end {
		return t
	}
	t.spans = append(t.spans, Span{start, end, st})
	return t
}

// StyleAt returns the effective style at byte offset i
func (t *Text) StyleAt(i int) style.Style {
	s := t.Style
	for _, sp := range t.spans {
		if sp.Start <= i && i < sp.End {
			s = style.Combine(s, sp.Style)
		}
	}
	return s
}

// Divide cuts the text at byte offsets, returning len(offsets)+1 pieces
func (t *Text) Divide(offsets []int) []*Text {
	bounds := make([]int, 0, len(offsets)+2)
	bounds = append(bounds, 0)
	last := 0
	for _, o := range offsets {
		if o > last && o <= len(t.plain) {
			bounds = append(bounds, o)
			last = o
		}
	}
	bounds = append(bounds, len(t.plain))

	out := make([]*Text, 0, len(bounds)-1)
	for i := 0; i+1 < len(bounds); i++ {
		start, end := bounds[i], bounds[i+1]
		piece := t.blank(t.plain[start:end])
		for _, s := range t.spans {
			if c, ok := s.clip(start, end); ok {
				piece.spans = append(piece.spans, c)
			}
		}
		out = append(out, piece)
	}
	return out
}

// Split cuts the text at every occurrence of sep, dropping the separators
func (t *Text) Split(sep string) []*Text {
	if sep == "" || !strings.Contains(t.plain, sep) {
		return []*Text{t.Copy()}
	}
	var offsets []int
	idx := 0
	for {
		i := strings.Index(t.plain[idx:], sep)
		if i < 0 {
			break
		}
		offsets = append(offsets, idx+i, idx+i+len(sep))
		idx += i + len(sep)
	}
	pieces := t.divideKeepEmpty(offsets)
	out := make([]*Text, 0, len(pieces)/2+1)
	for i, p := range pieces {
		if i%2 == 0 {
			out = append(out, p)
		}
	}
	return out
}

// divideKeepEmpty is Divide that keeps zero-length pieces, so separators
// at either end still produce empty lines.
func (t *Text) divideKeepEmpty(offsets []int) []*Text {
	bounds := append([]int{0}, offsets...)
	bounds = append(bounds, len(t.plain))
	out := make([]*Text, 0, len(bounds)-1)
	for i := 0; i+1 < len(bounds); i++ {
		start, end := bounds[i], bounds[i+1]
		piece := t.blank(t.plain[start:end])
		for _, s := range t.spans {
			if c, ok := s.clip(start, end); ok {
				piece.spans = append(piece.spans, c)
			}
		}
		out = append(out, piece)
	}
	return out
}

// Lines splits on newlines. A trailing newline yields a final empty line.
func (t *Text) Lines() []*Text {
	return t.Split("\n")
}

// RightCrop removes n bytes from the end
func (t *Text) RightCrop(n int) {
	if n <= 0 {
		return
	}
	if n > len(t.plain) {
		n = len(t.plain)
	}
	t.setPlainPrefix(t.plain[:len(t.plain)-n])
}

// setPlainPrefix replaces plain with a string that is a prefix of it, or
// a prefix padded with spaces, and clips spans to fit
func (t *Text) setPlainPrefix(p string) {
	t.plain = p
	end := len(p)
	kept := t.spans[:0]
	for _, s := range t.spans {
		if s.Start >= end {
			continue
		}
		if s.End > end {
			s.End = end
		}
		kept = append(kept, s)
	}
	t.spans = kept
}

// Rstrip removes trailing whitespace
func (t *Text) Rstrip() {
	t.setPlainPrefix(strings.TrimRightFunc(t.plain, unicode.IsSpace))
}

// RstripEnd removes trailing whitespace that extends past size cells
func (t *Text) RstripEnd(size int) {
	excess := cells.Len(t.plain) - size
	if excess <= 0 {
		return
	}
	trimmed := strings.TrimRightFunc(t.plain, unicode.IsSpace)
	ws := t.plain[len(trimmed):]
	n := utf8.RuneCountInString(ws)
	if n > excess {
		n = excess
	}
	cut := len(t.plain)
	for i := 0; i < n; i++ {
		_, size := utf8.DecodeLastRuneInString(t.plain[:cut])
		cut -= size
	}
	t.setPlainPrefix(t.plain[:cut])
}

// PadLeft inserts n spaces at the start
func (t *Text) PadLeft(n int) {
	if n <= 0 {
		return
	}
	t.plain = strings.Repeat(" ", n) + t.plain
	for i := range t.spans {
		t.spans[i] = t.spans[i].shift(n)
	}
}

// PadRight appends n spaces
func (t *Text) PadRight(n int) {
	if n > 0 {
		t.plain += strings.Repeat(" ", n)
	}
}

// Truncate crops the text to width cells following overflow. With pad
// set, shorter text is padded to exactly width.
func (t *Text) Truncate(width int, overflow render.Overflow, pad bool) {
	length := cells.Len(t.plain)
	if length > width {
		if overflow == render.OverflowEllipsis && width > 0 {
			kept := cells.SetSize(t.plain, width-1)
			t.setPlainPrefix(kept)
			t.plain += "…"
			for i := range t.spans {
				if t.spans[i].End == len(kept) {
					t.spans[i].End = len(t.plain)
				}
			}
		} else {
			t.setPlainPrefix(cells.SetSize(t.plain, width))
		}
		length = cells.Len(t.plain)
	}
	if pad && length < width {
		t.PadRight(width - length)
	}
}

// ExpandTabs replaces tabs with spaces up to the next multiple of size
func (t *Text) ExpandTabs(size int) {
	if !strings.Contains(t.plain, "\t") {
		return
	}
	if size <= 0 {
		size = 8
	}
	var (
		b      strings.Builder
		col    int
		shifts []int // shifts[i] = extra bytes inserted before old offset i
	)
	shifts = make([]int, len(t.plain)+1)
	extra := 0
	for i, r := range t.plain {
		shifts[i] = extra
		switch r {
		case '\t':
			n := size - col%size
			b.WriteString(strings.Repeat(" ", n))
			col += n
			extra += n - 1
		case '\n':
			b.WriteRune(r)
			col = 0
		default:
			b.WriteRune(r)
			col += cells.RuneWidth(r)
		}
	}
	shifts[len(t.plain)] = extra
	for i := 1; i < len(shifts); i++ {
		// offsets inside a multibyte rune inherit the rune's shift
		if shifts[i] < shifts[i-1] {
			shifts[i] = shifts[i-1]
		}
	}
	for i, s := range t.spans {
		t.spans[i] = Span{s.Start + shifts[s.Start], s.End + shifts[s.End], s.Style}
	}
	t.plain = b.String()
}

// Join concatenates parts with sep between them
func Join(sep *Text, parts []*Text) *Text {
	out := New("", style.Null)
	for i, p := range parts {
		if i > 0 && sep != nil {
			out.AppendText(sep)
		}
		out.AppendText(p)
	}
	return out
}

// Segments renders one line of text in parent style. Newlines are kept
// as-is in segment text.
func (t *Text) Segments(parent style.Style) []segment.Segment {
	return t.segments(style.Combine(parent, t.Style))
}

func (t *Text) segments(base style.Style) []segment.Segment {
	if t.plain == "" {
		return nil
	}
	if len(t.spans) == 0 {
		return []segment.Segment{segment.Text(t.plain, base)}
	}

	cuts := map[int]struct{}{0: {}, len(t.plain): {}}
	for _, s := range t.spans {
		cuts[s.Start] = struct{}{}
		cuts[s.End] = struct{}{}
	}
	bounds := make([]int, 0, len(cuts))
	for c := range cuts {
		if c >= 0 && c <= len(t.plain) {
			bounds = append(bounds, c)
		}
	}
	sort.Ints(bounds)

	var out []segment.Segment
	for i := 0; i+1 < len(bounds); i++ {
		start, end := bounds[i], bounds[i+1]
		if start == end {
			continue
		}
		st := base
		for _, s := range t.spans {
			if s.Start <= start && end <= s.End {
				st = style.Combine(st, s.Style)
			}
		}
		out = append(out, segment.Text(t.plain[start:end], st))
	}
	return segment.Simplify(out)
}
