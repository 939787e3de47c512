// Package widgets holds the composable renderables: panels, tables, trees,
// columns, rules, progress bars and adapters for external renderers.
//
// Every widget implements render.Renderable. Style fields are strings
// resolved against the theme in render.Options at render time, so a
// widget can name a theme entry ("table.header") or spell a style out
// ("bold magenta").
package widgets

import (
	"strings"

	"github.com/arthur-debert/tinta/pkg/logging"
	"github.com/arthur-debert/tinta/pkg/markup"
	"github.com/arthur-debert/tinta/pkg/render"
	"github.com/arthur-debert/tinta/pkg/segment"
	"github.com/arthur-debert/tinta/pkg/style"
	"github.com/arthur-debert/tinta/pkg/text"
)

type markupText struct {
	source string
}

// Markup returns a renderable for a markup string. Parsing happens at
// render time against the active theme; malformed markup renders as
// plain text.
func Markup(source string) render.Renderable {
	return markupText{source: source}
}

func (m markupText) text(opts render.Options) *text.Text {
	return markupToText(m.source, opts)
}

func (m markupText) Measure(opts render.Options, maxWidth int) render.Measurement {
	return m.text(opts).Measure(opts, maxWidth)
}

func (m markupText) Render(opts render.Options) []segment.Segment {
	return m.text(opts).Render(opts)
}

func markupToText(source string, opts render.Options) *text.Text {
	t, err := markup.Render(source, markup.WithTheme(opts.Theme))
	if err != nil {
		logger := logging.GetLogger("widgets")
		logger.Debug().Err(err).Str("markup", source).Msg("rendering markup as plain text")
		return text.New(source, style.Null)
	}
	return t
}

// Plain returns a renderable for s with no markup processing
func Plain(s string) render.Renderable {
	return text.New(s, style.Null)
}

func blank(width int, st style.Style) segment.Segment {
	return segment.Segment{Text: strings.Repeat(" ", max(width, 0)), Style: st}
}

func blankLine(width int, st style.Style) segment.Line {
	return segment.Line{blank(width, st)}
}

// cropLines forces every line of segs to at most width cells
func cropLines(segs []segment.Segment, width int) []segment.Segment {
	lines := segment.SplitLines(segs)
	for i, l := range lines {
		lines[i] = segment.CropLine(l, width)
	}
	return segment.Join(lines)
}
