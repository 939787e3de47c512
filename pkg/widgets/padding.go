package widgets

import (
	"github.com/arthur-debert/tinta/pkg/render"
	"github.com/arthur-debert/tinta/pkg/segment"
)

// Padding surrounds a renderable with blank cells
type Padding struct {
	Child                    render.Renderable
	Top, Right, Bottom, Left int
	Style                    string
	// Expand fills the available width instead of hugging the child
	Expand bool
}

// Pad uses CSS shorthand: one value for all sides, two for vertical and
// horizontal, four for top, right, bottom, left.
func Pad(child render.Renderable, sizes ...int) *Padding {
	p := &Padding{Child: child, Expand: true}
	switch len(sizes) {
	case 1:
		p.Top, p.Right, p.Bottom, p.Left = sizes[0], sizes[0], sizes[0], sizes[0]
	case 2:
		p.Top, p.Bottom = sizes[0], sizes[0]
		p.Left, p.Right = sizes[1], sizes[1]
	case 4:
		p.Top, p.Right, p.Bottom, p.Left = sizes[0], sizes[1], sizes[2], sizes[3]
	}
	return p
}

func (p *Padding) Measure(opts render.Options, maxWidth int) render.Measurement {
	extra := p.Left + p.Right
	if maxWidth-extra < 1 {
		return render.Measurement{Min: maxWidth, Max: maxWidth}
	}
	m := render.MeasureOf(p.Child, opts, maxWidth-extra)
	return render.Measurement{Min: m.Min + extra, Max: m.Max + extra}.WithMaximum(maxWidth)
}

func (p *Padding) Render(opts render.Options) []segment.Segment {
	st := opts.ResolveStyle(p.Style)
	width := opts.Width
	if !p.Expand {
		width = min(p.Measure(opts, opts.Width).Max, opts.Width)
	}
	inner := width - p.Left - p.Right
	if inner < 1 {
		inner = 1
	}

	childOpts := opts.WithWidth(inner).WithStyle(st)
	if opts.Height > 0 {
		childOpts = childOpts.WithHeight(max(1, opts.Height-p.Top-p.Bottom))
	}
	bg := childOpts.Style.BackgroundOnly()
	lines := render.Lines(p.Child, childOpts)

	var out []segment.Line
	for i := 0; i < p.Top; i++ {
		out = append(out, blankLine(width, bg))
	}
	left, right := blank(p.Left, bg), blank(p.Right, bg)
	for _, l := range lines {
		row := make(segment.Line, 0, len(l)+2)
		if p.Left > 0 {
			row = append(row, left)
		}
		row = append(row, l...)
		if p.Right > 0 {
			row = append(row, right)
		}
		out = append(out, segment.CropLine(row, width))
	}
	for i := 0; i < p.Bottom; i++ {
		out = append(out, blankLine(width, bg))
	}
	return segment.Join(out)
}
