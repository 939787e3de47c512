package widgets

import (
	"strings"

	"github.com/charmbracelet/glamour"

	"github.com/arthur-debert/tinta/pkg/color"
	"github.com/arthur-debert/tinta/pkg/logging"
	"github.com/arthur-debert/tinta/pkg/render"
	"github.com/arthur-debert/tinta/pkg/segment"
	"github.com/arthur-debert/tinta/pkg/text"
)

// Markdown renders a markdown document through glamour and decodes the
// result back into styled text
type Markdown struct {
	Source string
	// Theme is a glamour standard style: dark, light, dracula, pink,
	// notty or ascii
	Theme string
}

// NewMarkdown returns a markdown renderable with the dark theme
func NewMarkdown(source string) *Markdown {
	return &Markdown{Source: source, Theme: "dark"}
}

func (m *Markdown) theme(opts render.Options) string {
	switch {
	case opts.ASCIIOnly:
		return "ascii"
	case opts.ColorSystem == color.NoColor:
		return "notty"
	case m.Theme != "":
		return m.Theme
	}
	return "dark"
}

func (m *Markdown) Measure(opts render.Options, maxWidth int) render.Measurement {
	return render.Measurement{Min: 1, Max: maxWidth}
}

// toText returns the rendered document, or the source as plain text and
// false when glamour fails
func (m *Markdown) toText(opts render.Options) (*text.Text, bool) {
	r, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle(m.theme(opts)),
		glamour.WithWordWrap(opts.Width),
		glamour.WithColorProfile(termenvProfile(opts)),
	)
	if err == nil {
		var out string
		out, err = r.Render(m.Source)
		if err == nil {
			return text.FromANSI(strings.Trim(out, "\n")), true
		}
	}
	logger := logging.GetLogger("widgets")
	logger.Debug().Err(err).Msg("markdown rendering failed, showing source")
	return text.New(m.Source, opts.ResolveStyle("markdown.fallback")), false
}

func (m *Markdown) Render(opts render.Options) []segment.Segment {
	t, ok := m.toText(opts)
	if ok {
		// glamour already wrapped to the width
		t.NoWrap = true
		t.Overflow = render.OverflowCrop
	}
	return t.Render(opts)
}
