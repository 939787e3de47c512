package widgets

import (
	"strings"

	"github.com/arthur-debert/tinta/pkg/box"
	"github.com/arthur-debert/tinta/pkg/render"
	"github.com/arthur-debert/tinta/pkg/segment"
	"github.com/arthur-debert/tinta/pkg/style"
	"github.com/arthur-debert/tinta/pkg/text"
)

// blankBox keeps the border cells of a borderless panel so its content
// width stays the same as a bordered one.
var blankBox = box.New("blank", strings.Repeat("    \n", 8), true)

// Panel draws a border around a child
type Panel struct {
	Child render.Renderable
	Box   *box.Box
	// Title and Subtitle are markup drawn into the top and bottom borders
	Title         string
	Subtitle      string
	TitleAlign    render.Justify
	SubtitleAlign render.Justify
	// Expand fills the available width; otherwise the panel fits its child
	Expand      bool
	Width       int
	Height      int
	PadX, PadY  int
	Style       string
	BorderStyle string
}

// NewPanel returns an expanding rounded panel with one cell of
// horizontal padding
func NewPanel(child render.Renderable) *Panel {
	return &Panel{Child: child, Box: box.Rounded, Expand: true, PadX: 1}
}

// Fit returns a panel that shrinks to its child's natural width
func Fit(child render.Renderable) *Panel {
	p := NewPanel(child)
	p.Expand = false
	return p
}

func (p *Panel) chrome() int { return 2 + 2*p.PadX }

func (p *Panel) Measure(opts render.Options, maxWidth int) render.Measurement {
	if p.Width > 0 {
		w := min(p.Width, maxWidth)
		return render.Measurement{Min: w, Max: w}
	}
	inner := max(maxWidth-p.chrome(), 1)
	m := render.MeasureOf(p.Child, opts, inner)
	if p.Title != "" {
		t := render.MeasureOf(Markup(p.Title), opts, inner)
		m.Max = max(m.Max, t.Max)
	}
	w := min(m.Max+p.chrome(), maxWidth)
	return render.Measurement{Min: w, Max: w}
}

func (p *Panel) outerWidth(opts render.Options) int {
	width := opts.Width
	if p.Width > 0 {
		width = min(p.Width, opts.Width)
	} else if !p.Expand {
		width = min(p.Measure(opts, opts.Width).Max, opts.Width)
	}
	return width
}

func (p *Panel) Render(opts render.Options) []segment.Segment {
	b := p.Box.Substitute(opts)
	if b == nil {
		b = blankBox
	}
	st := opts.ResolveStyle(p.Style)
	borderDef := p.BorderStyle
	if borderDef == "" {
		borderDef = "panel.border"
	}
	border := style.Combine(opts.Style, style.Combine(st, opts.ResolveStyle(borderDef)))

	width := p.outerWidth(opts)
	if width < 2 {
		// no room for both edges; render the bare child
		return p.Child.Render(opts.WithWidth(width))
	}
	inner := max(width-2, 1)
	content := max(inner-2*p.PadX, 1)

	height := p.Height
	if height <= 0 {
		height = opts.Height
	}
	childOpts := opts.WithWidth(content).WithStyle(st)
	childOpts.Height = 0
	if height > 0 {
		childOpts.Height = max(height-2-2*p.PadY, 1)
	}
	lines := render.Lines(p.Child, childOpts)
	bg := childOpts.Style.BackgroundOnly()

	var out []segment.Segment
	out = append(out, p.titleLine(b.Top, p.Title, p.TitleAlign, width, border, opts)...)
	pad := inner - content
	left := pad / 2
	body := func(l segment.Line) {
		out = append(out, segment.Segment{Text: b.Mid.Left, Style: border})
		if left > 0 {
			out = append(out, blank(left, bg))
		}
		out = append(out, l...)
		if pad-left > 0 {
			out = append(out, blank(pad-left, bg))
		}
		out = append(out, segment.Segment{Text: b.Mid.Right, Style: border}, segment.Newline)
	}
	for i := 0; i < p.PadY; i++ {
		body(segment.Line{blank(content, bg)})
	}
	for _, l := range lines {
		body(l)
	}
	for i := 0; i < p.PadY; i++ {
		body(segment.Line{blank(content, bg)})
	}
	out = append(out, p.titleLine(b.Bottom, p.Subtitle, p.SubtitleAlign, width, border, opts)...)
	return cropLines(out, width)
}

// titleLine draws a top or bottom border with an optional title set into it
func (p *Panel) titleLine(e box.Edge, title string, align render.Justify, width int, border style.Style, opts render.Options) []segment.Segment {
	if title == "" || width <= 4 {
		line := e.Left + strings.Repeat(e.Fill, width-2) + e.Right
		return []segment.Segment{{Text: line, Style: border}, segment.Newline}
	}

	t := markupToText(strings.ReplaceAll(title, "\n", " "), opts)
	t.Style = style.Combine(opts.ResolveStyle("panel.title"), t.Style)
	t.ExpandTabs(opts.EffectiveTabSize())
	t = text.New(" ", style.Null).AppendText(t).Append(" ", style.Null)
	t.Truncate(width-4, render.OverflowEllipsis, false)
	excess := width - 4 - t.CellLen()

	var before, after int
	switch align {
	case render.JustifyLeft:
		after = excess
	case render.JustifyRight:
		before = excess
	default:
		before = excess / 2
		after = excess - before
	}
	out := []segment.Segment{{Text: e.Left + strings.Repeat(e.Fill, 1+before), Style: border}}
	out = append(out, t.Segments(border)...)
	out = append(out, segment.Segment{Text: strings.Repeat(e.Fill, after+1) + e.Right, Style: border}, segment.Newline)
	return out
}
