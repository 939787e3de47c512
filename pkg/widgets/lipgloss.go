package widgets

import (
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/arthur-debert/tinta/pkg/render"
	"github.com/arthur-debert/tinta/pkg/segment"
	"github.com/arthur-debert/tinta/pkg/text"
)

// Lipgloss renders content with a lipgloss style, so blocks built with
// lipgloss can sit inside panels, tables and columns
type Lipgloss struct {
	Style   lipgloss.Style
	Content string
	// Fill sets the lipgloss width to the available width
	Fill bool
}

func (l *Lipgloss) output(opts render.Options, width int) string {
	r := lipgloss.NewRenderer(io.Discard)
	r.SetColorProfile(termenvProfile(opts))
	st := l.Style.Renderer(r).MaxWidth(width)
	if l.Fill {
		st = st.Width(width)
	}
	return st.Render(l.Content)
}

func (l *Lipgloss) Measure(opts render.Options, maxWidth int) render.Measurement {
	w := 0
	for _, line := range strings.Split(l.output(opts, maxWidth), "\n") {
		w = max(w, ansi.StringWidth(line))
	}
	w = max(min(w, maxWidth), 1)
	if l.Fill {
		return render.Measurement{Min: w, Max: maxWidth}
	}
	return render.Measurement{Min: w, Max: w}
}

func (l *Lipgloss) Render(opts render.Options) []segment.Segment {
	t := text.FromANSI(l.output(opts, opts.Width))
	t.NoWrap = true
	t.Overflow = render.OverflowCrop
	return t.Render(opts)
}
