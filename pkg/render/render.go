// Package render defines the contract every widget implements: measure
// yourself against a width, then render into segments.
package render

import (
	"fmt"

	"github.com/arthur-debert/tinta/pkg/errors"
	"github.com/arthur-debert/tinta/pkg/segment"
)

// Renderable is anything that can lay itself out in a given width
type Renderable interface {
	// Measure reports the narrowest and widest useful widths, both no
	// larger than maxWidth.
	Measure(opts Options, maxWidth int) Measurement
	// Render lays the renderable out in opts.Width cells. No line may be
	// wider than opts.Width.
	Render(opts Options) []segment.Segment
}

// Measurement is a (min, max) width pair
type Measurement struct {
	Min int
	Max int
}

// Span returns max - min
func (m Measurement) Span() int { return m.Max - m.Min }

// Normalize makes 0 <= Min <= Max
func (m Measurement) Normalize() Measurement {
	if m.Min < 0 {
		m.Min = 0
	}
	if m.Max < 0 {
		m.Max = 0
	}
	if m.Min > m.Max {
		m.Min = m.Max
	}
	return m
}

// WithMaximum caps both ends at width
func (m Measurement) WithMaximum(width int) Measurement {
	if m.Max > width {
		m.Max = width
	}
	if m.Min > width {
		m.Min = width
	}
	return m
}

// WithMinimum raises both ends to at least width
func (m Measurement) WithMinimum(width int) Measurement {
	if width < 0 {
		width = 0
	}
	if m.Min < width {
		m.Min = width
	}
	if m.Max < width {
		m.Max = width
	}
	return m
}

// Clamp applies optional bounds; a bound <= 0 is ignored
func (m Measurement) Clamp(minWidth, maxWidth int) Measurement {
	if minWidth > 0 {
		m = m.WithMinimum(minWidth)
	}
	if maxWidth > 0 {
		m = m.WithMaximum(maxWidth)
	}
	return m
}

// MeasureOf measures r and enforces the measurement contract. A min
// greater than max is a bug in the renderable and panics.
func MeasureOf(r Renderable, opts Options, maxWidth int) Measurement {
	if maxWidth < 1 {
		maxWidth = 1
	}
	m := r.Measure(opts, maxWidth)
	if m.Min > m.Max {
		panic(errors.Newf(errors.ErrLayoutContract,
			"%T measured min %d > max %d", r, m.Min, m.Max).
			WithDetail("renderable", fmt.Sprintf("%T", r)))
	}
	if m.Min < 0 {
		m.Min = 0
	}
	return m.WithMaximum(maxWidth)
}

// MeasureAll combines the measurements of several renderables: the
// widest minimum and the widest maximum.
func MeasureAll(rs []Renderable, opts Options, maxWidth int) Measurement {
	var out Measurement
	for _, r := range rs {
		m := MeasureOf(r, opts, maxWidth)
		if m.Min > out.Min {
			out.Min = m.Min
		}
		if m.Max > out.Max {
			out.Max = m.Max
		}
	}
	return out
}

// Lines renders r at opts.Width and returns lines padded or cropped to
// exactly that width. If opts.Height is set the result has that many lines.
func Lines(r Renderable, opts Options) []segment.Line {
	segs := r.Render(opts)
	lines := segment.SplitAndCropLines(segs, opts.Width, opts.Style.BackgroundOnly())
	if opts.Height > 0 {
		lines = segment.SetShape(lines, opts.Width, opts.Height, opts.Style.BackgroundOnly())
	}
	return lines
}

// Func adapts a pair of functions into a Renderable
type Func struct {
	MeasureFunc func(opts Options, maxWidth int) Measurement
	RenderFunc  func(opts Options) []segment.Segment
}

func (f Func) Measure(opts Options, maxWidth int) Measurement {
	if f.MeasureFunc == nil {
		return Measurement{Min: maxWidth, Max: maxWidth}
	}
	return f.MeasureFunc(opts, maxWidth)
}

func (f Func) Render(opts Options) []segment.Segment {
	return f.RenderFunc(opts)
}
