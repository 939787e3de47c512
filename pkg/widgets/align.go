package widgets

import (
	"github.com/arthur-debert/tinta/pkg/render"
	"github.com/arthur-debert/tinta/pkg/segment"
)

// Align positions a child horizontally within the available width and
// optionally vertically within a height.
type Align struct {
	Child    render.Renderable
	Justify  render.Justify
	Vertical render.VerticalAlign
	// Height overrides the height from the render options
	Height int
	Style  string
	// Width renders the child at this width instead of its natural width
	Width int
}

// Left aligns child to the left edge
func Left(child render.Renderable) *Align {
	return &Align{Child: child, Justify: render.JustifyLeft}
}

// Center centers child horizontally
func Center(child render.Renderable) *Align {
	return &Align{Child: child, Justify: render.JustifyCenter}
}

// Right aligns child to the right edge
func Right(child render.Renderable) *Align {
	return &Align{Child: child, Justify: render.JustifyRight}
}

func (a *Align) Measure(opts render.Options, maxWidth int) render.Measurement {
	return render.MeasureOf(a.Child, opts, maxWidth)
}

func (a *Align) Render(opts render.Options) []segment.Segment {
	st := opts.ResolveStyle(a.Style)
	width := a.Width
	if width <= 0 {
		width = render.MeasureOf(a.Child, opts, opts.Width).Max
	}
	width = min(max(width, 1), opts.Width)

	childOpts := opts.WithWidth(width).WithStyle(st)
	childOpts.Height = 0
	lines := render.Lines(a.Child, childOpts)
	bg := childOpts.Style.BackgroundOnly()

	excess := opts.Width - width
	var left, right int
	switch a.Justify {
	case render.JustifyCenter:
		left = excess / 2
		right = excess - left
	case render.JustifyRight:
		left = excess
	default:
		right = excess
	}
	for i, l := range lines {
		row := make(segment.Line, 0, len(l)+2)
		if left > 0 {
			row = append(row, blank(left, bg))
		}
		row = append(row, l...)
		if right > 0 {
			row = append(row, blank(right, bg))
		}
		lines[i] = row
	}

	height := a.Height
	if height <= 0 {
		height = opts.Height
	}
	if height > len(lines) {
		gap := height - len(lines)
		var top int
		switch a.Vertical {
		case render.VAlignMiddle:
			top = gap / 2
		case render.VAlignBottom:
			top = gap
		}
		padded := make([]segment.Line, 0, height)
		for i := 0; i < top; i++ {
			padded = append(padded, blankLine(opts.Width, bg))
		}
		padded = append(padded, lines...)
		for len(padded) < height {
			padded = append(padded, blankLine(opts.Width, bg))
		}
		lines = padded
	}
	return segment.Join(lines)
}
