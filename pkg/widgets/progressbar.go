package widgets

import (
	"math"
	"strings"
	"time"

	"github.com/arthur-debert/tinta/pkg/color"
	"github.com/arthur-debert/tinta/pkg/render"
	"github.com/arthur-debert/tinta/pkg/segment"
	"github.com/arthur-debert/tinta/pkg/style"
)

const pulseSize = 20

// ProgressBar draws completion as a horizontal bar. With Total <= 0 or
// Pulse set it animates a pulse instead.
type ProgressBar struct {
	Total     float64
	Completed float64
	Width     int
	Pulse     bool
	// AnimationTime drives the pulse; zero uses the wall clock
	AnimationTime time.Duration

	Style         string
	CompleteStyle string
	FinishedStyle string
	PulseStyle    string
}

// NewProgressBar returns a bar for total units of work
func NewProgressBar(total float64) *ProgressBar {
	return &ProgressBar{Total: total}
}

// Percentage is the completed share in [0, 100]
func (p *ProgressBar) Percentage() float64 {
	if p.Total <= 0 {
		return 0
	}
	return math.Min(100, math.Max(0, p.Completed*100/p.Total))
}

func (p *ProgressBar) Measure(opts render.Options, maxWidth int) render.Measurement {
	if p.Width > 0 {
		w := min(p.Width, maxWidth)
		return render.Measurement{Min: w, Max: w}
	}
	return render.Measurement{Min: min(4, maxWidth), Max: maxWidth}
}

func styleOr(opts render.Options, def, fallback string) style.Style {
	if def == "" {
		def = fallback
	}
	return style.Combine(opts.Style, opts.ResolveStyle(def))
}

func (p *ProgressBar) Render(opts render.Options) []segment.Segment {
	width := opts.Width
	if p.Width > 0 {
		width = min(p.Width, width)
	}
	bar, halfRight, halfLeft := "━", "╸", "╺"
	if opts.ASCIIOnly {
		bar, halfRight, halfLeft = "-", " ", " "
	}

	if p.Pulse || p.Total <= 0 {
		return append(p.pulse(opts, width, bar), segment.Newline)
	}

	completed := math.Min(p.Total, math.Max(0, p.Completed))
	halves := int(float64(width*2) * completed / p.Total)
	full, half := halves/2, halves%2

	back := styleOr(opts, p.Style, "bar.back")
	done := styleOr(opts, p.CompleteStyle, "bar.complete")
	if completed >= p.Total {
		done = styleOr(opts, p.FinishedStyle, "bar.finished")
	}

	var out []segment.Segment
	if full > 0 {
		out = append(out, segment.Segment{Text: strings.Repeat(bar, full), Style: done})
	}
	if half > 0 {
		out = append(out, segment.Segment{Text: halfRight, Style: done})
	}
	remaining := width - full - half
	if remaining > 0 && !opts.ASCIIOnly {
		if half == 0 && full > 0 {
			out = append(out, segment.Segment{Text: halfLeft, Style: back})
			remaining--
		}
	}
	if remaining > 0 {
		out = append(out, segment.Segment{Text: strings.Repeat(bar, remaining), Style: back})
	}
	return append(out, segment.Newline)
}

// pulse renders a window of a repeating gradient that slides with time
func (p *ProgressBar) pulse(opts render.Options, width int, bar string) []segment.Segment {
	fore := styleOr(opts, p.PulseStyle, "bar.pulse")
	back := styleOr(opts, p.Style, "bar.back")

	var cycle []segment.Segment
	if opts.ColorSystem == color.TrueColor || opts.ColorSystem == color.EightBit {
		from := triplet(fore, color.Triplet{R: 255, G: 0, B: 255})
		to := triplet(back, color.Triplet{})
		for i := 0; i < pulseSize; i++ {
			fade := 0.5 + math.Cos(float64(i)/pulseSize*math.Pi*2)/2
			c := to.Blend(from, fade)
			cycle = append(cycle, segment.Segment{Text: bar, Style: style.Null.WithFg(color.FromRGB(c.R, c.G, c.B))})
		}
	} else {
		for i := 0; i < pulseSize; i++ {
			if i < pulseSize/2 {
				cycle = append(cycle, segment.Segment{Text: bar, Style: fore})
			} else if opts.ColorSystem == color.NoColor {
				cycle = append(cycle, segment.Segment{Text: " ", Style: back})
			} else {
				cycle = append(cycle, segment.Segment{Text: bar, Style: back})
			}
		}
	}

	t := p.AnimationTime
	if t == 0 {
		t = time.Duration(time.Now().UnixNano())
	}
	offset := int(t.Seconds()*15) % pulseSize

	out := make([]segment.Segment, 0, width)
	for i := 0; i < width; i++ {
		out = append(out, cycle[(pulseSize-offset+i)%pulseSize])
	}
	return segment.Simplify(out)
}

func triplet(s style.Style, fallback color.Triplet) color.Triplet {
	c, ok := s.Fg()
	if !ok || c.IsDefault() {
		return fallback
	}
	return c.Triplet(color.DefaultTerminalTheme, true)
}
