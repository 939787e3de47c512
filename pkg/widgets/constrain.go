package widgets

import (
	"github.com/arthur-debert/tinta/pkg/render"
	"github.com/arthur-debert/tinta/pkg/segment"
)

// Constrain caps the width available to a child
type Constrain struct {
	Child render.Renderable
	Width int
}

func (c *Constrain) limit(width int) int {
	if c.Width > 0 {
		return min(width, c.Width)
	}
	return width
}

func (c *Constrain) Measure(opts render.Options, maxWidth int) render.Measurement {
	return render.MeasureOf(c.Child, opts, c.limit(maxWidth))
}

func (c *Constrain) Render(opts render.Options) []segment.Segment {
	return c.Child.Render(opts.WithWidth(c.limit(opts.Width)))
}
