package widgets

import (
	"github.com/arthur-debert/tinta/pkg/render"
	"github.com/arthur-debert/tinta/pkg/segment"
)

// Columns flows renderables into as many equal-width columns as fit
type Columns struct {
	Items []render.Renderable
	// Gap is the blank cells between columns
	Gap int
	// Width fixes the column width; otherwise the widest item decides
	Width int
	// Expand spreads the columns over the full width
	Expand bool
	// ColumnFirst fills down each column before moving right
	ColumnFirst bool
}

// NewColumns returns columns separated by one cell
func NewColumns(items ...render.Renderable) *Columns {
	return &Columns{Items: items, Gap: 1}
}

func (c *Columns) itemWidth(opts render.Options, maxWidth int) int {
	if c.Width > 0 {
		return min(c.Width, maxWidth)
	}
	w := 1
	for _, it := range c.Items {
		w = max(w, render.MeasureOf(it, opts, maxWidth).Max)
	}
	return w
}

func (c *Columns) layout(opts render.Options, width int) (count, colWidth int) {
	colWidth = c.itemWidth(opts, width)
	count = max((width+c.Gap)/(colWidth+c.Gap), 1)
	count = min(count, max(len(c.Items), 1))
	if c.Expand {
		colWidth = max((width-c.Gap*(count-1))/count, 1)
	}
	return count, colWidth
}

func (c *Columns) Measure(opts render.Options, maxWidth int) render.Measurement {
	if len(c.Items) == 0 {
		return render.Measurement{}
	}
	if c.Expand {
		return render.Measurement{Min: min(c.itemWidth(opts, maxWidth), maxWidth), Max: maxWidth}
	}
	count, colWidth := c.layout(opts, maxWidth)
	w := count*colWidth + (count-1)*c.Gap
	return render.Measurement{Min: min(colWidth, maxWidth), Max: w}.WithMaximum(maxWidth)
}

func (c *Columns) Render(opts render.Options) []segment.Segment {
	if len(c.Items) == 0 {
		return nil
	}
	count, colWidth := c.layout(opts, opts.Width)
	rows := (len(c.Items) + count - 1) / count

	at := func(row, col int) int {
		if c.ColumnFirst {
			return col*rows + row
		}
		return row*count + col
	}

	itemOpts := opts.WithWidth(colWidth)
	itemOpts.Height = 0
	bg := opts.Style.BackgroundOnly()
	var out []segment.Segment
	for r := 0; r < rows; r++ {
		cellLines := make([][]segment.Line, count)
		height := 0
		for col := 0; col < count; col++ {
			if i := at(r, col); i < len(c.Items) {
				cellLines[col] = render.Lines(c.Items[i], itemOpts)
				height = max(height, len(cellLines[col]))
			}
		}
		for y := 0; y < height; y++ {
			var row segment.Line
			for col := 0; col < count; col++ {
				if col > 0 && c.Gap > 0 {
					row = append(row, blank(c.Gap, bg))
				}
				if y < len(cellLines[col]) {
					row = append(row, cellLines[col][y]...)
				} else {
					row = append(row, blank(colWidth, bg))
				}
			}
			out = append(out, segment.CropLine(row, opts.Width)...)
			out = append(out, segment.Newline)
		}
	}
	return out
}
