package widgets

import (
	"strings"

	"github.com/arthur-debert/tinta/pkg/render"
	"github.com/arthur-debert/tinta/pkg/segment"
)

// Group stacks renderables vertically
type Group struct {
	Children []render.Renderable
	// Fit measures the group to its widest child instead of the full width
	Fit bool
}

// NewGroup returns a fitted group of children
func NewGroup(children ...render.Renderable) *Group {
	return &Group{Children: children, Fit: true}
}

func (g *Group) Measure(opts render.Options, maxWidth int) render.Measurement {
	if !g.Fit {
		return render.Measurement{Min: maxWidth, Max: maxWidth}
	}
	return render.MeasureAll(g.Children, opts, maxWidth)
}

func (g *Group) Render(opts render.Options) []segment.Segment {
	var out []segment.Segment
	for _, c := range g.Children {
		segs := c.Render(opts)
		out = append(out, segs...)
		if n := len(segs); n > 0 && !strings.HasSuffix(segs[n-1].Text, "\n") {
			out = append(out, segment.Newline)
		}
	}
	return out
}
