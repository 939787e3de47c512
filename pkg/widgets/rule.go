package widgets

import (
	"strings"

	"github.com/arthur-debert/tinta/pkg/cells"
	"github.com/arthur-debert/tinta/pkg/render"
	"github.com/arthur-debert/tinta/pkg/segment"
	"github.com/arthur-debert/tinta/pkg/style"
	"github.com/arthur-debert/tinta/pkg/text"
)

// Rule is a horizontal line with an optional title
type Rule struct {
	// Title is markup
	Title     string
	Character string
	Style     string
	Align     render.Justify
}

// NewRule returns a centered rule with the default line style
func NewRule(title string) *Rule {
	return &Rule{Title: title}
}

func (r *Rule) Measure(opts render.Options, maxWidth int) render.Measurement {
	return render.Measurement{Min: 1, Max: 1}
}

func (r *Rule) chars(opts render.Options) string {
	ch := r.Character
	if ch == "" {
		ch = "─"
	}
	if opts.ASCIIOnly && !isASCII(ch) {
		ch = "-"
	}
	return ch
}

func isASCII(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] >= 0x80 {
			return false
		}
	}
	return true
}

func repeatTo(ch string, width int) string {
	if width <= 0 {
		return ""
	}
	n := width/max(cells.Len(ch), 1) + 1
	return cells.SetSize(strings.Repeat(ch, n), width)
}

func (r *Rule) Render(opts render.Options) []segment.Segment {
	width := opts.Width
	ch := r.chars(opts)
	lineStyle := opts.ResolveStyle(r.Style)
	if r.Style == "" {
		lineStyle = opts.ResolveStyle("rule.line")
	}
	out := text.New("", style.Null)

	align := r.Align
	if align == render.JustifyDefault || align == render.JustifyFull {
		align = render.JustifyCenter
	}
	required := 2
	if align == render.JustifyCenter {
		required = 4
	}
	if r.Title == "" || width-required <= 0 {
		out.Append(repeatTo(ch, width), lineStyle)
		return append(out.Segments(opts.Style), segment.Newline)
	}

	title := markupToText(strings.ReplaceAll(r.Title, "\n", " "), opts)
	title.Style = style.Combine(opts.ResolveStyle("rule.text"), title.Style)
	title.ExpandTabs(opts.EffectiveTabSize())
	title.Truncate(width-required, render.OverflowEllipsis, false)
	titleLen := title.CellLen()

	switch align {
	case render.JustifyLeft:
		out.AppendText(title)
		out.Append(" "+repeatTo(ch, width-titleLen-1), lineStyle)
	case render.JustifyRight:
		out.Append(repeatTo(ch, width-titleLen-1)+" ", lineStyle)
		out.AppendText(title)
	default:
		side := (width - titleLen) / 2
		out.Append(repeatTo(ch, side-1)+" ", lineStyle)
		out.AppendText(title)
		out.Append(" "+repeatTo(ch, width-side-titleLen-1), lineStyle)
	}
	return append(out.Segments(opts.Style), segment.Newline)
}
