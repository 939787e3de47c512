package widgets

import (
	"sort"
	"time"

	"github.com/briandowns/spinner"

	"github.com/arthur-debert/tinta/pkg/cells"
	"github.com/arthur-debert/tinta/pkg/render"
	"github.com/arthur-debert/tinta/pkg/segment"
	"github.com/arthur-debert/tinta/pkg/style"
	"github.com/arthur-debert/tinta/pkg/text"
)

// spinnerSets names frame sets from the spinner package's CharSets
var spinnerSets = map[string]int{
	"arrows":   0,
	"bar":      1,
	"quarter":  2,
	"box":      3,
	"circle":   7,
	"pulse":    8,
	"line":     9,
	"braille":  11,
	"dots":     14,
	"blocks":   16,
	"squares":  17,
	"dots2":    21,
	"ellipsis": 26,
	"toggle":   29,
	"clock":    37,
}

// SpinnerNames lists the named frame sets
func SpinnerNames() []string {
	names := make([]string, 0, len(spinnerSets))
	for n := range spinnerSets {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// SpinnerFrames returns the frames of a named set, and false if the name
// is unknown
func SpinnerFrames(name string) ([]string, bool) {
	idx, ok := spinnerSets[name]
	if !ok {
		return nil, false
	}
	return spinner.CharSets[idx], true
}

// Spinner shows an animated frame followed by optional text
type Spinner struct {
	Frames   []string
	Interval time.Duration
	Text     render.Renderable
	Style    string
	// Start anchors the animation; set on first render when zero
	Start time.Time
	// Now is the clock; defaults to time.Now
	Now func() time.Time
}

// NewSpinner returns a spinner using a named frame set, falling back to
// "dots" for unknown names
func NewSpinner(name string, label string) *Spinner {
	frames, ok := SpinnerFrames(name)
	if !ok {
		frames, _ = SpinnerFrames("dots")
	}
	s := &Spinner{Frames: frames, Interval: 80 * time.Millisecond}
	if label != "" {
		s.Text = Markup(label)
	}
	return s
}

func (s *Spinner) frames(opts render.Options) []string {
	if opts.ASCIIOnly || len(s.Frames) == 0 {
		return spinner.CharSets[spinnerSets["line"]]
	}
	return s.Frames
}

func (s *Spinner) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

// Frame returns the frame shown at instant t
func (s *Spinner) Frame(opts render.Options, t time.Time) string {
	frames := s.frames(opts)
	interval := s.Interval
	if interval <= 0 {
		interval = 80 * time.Millisecond
	}
	if s.Start.IsZero() {
		s.Start = t
	}
	n := int(t.Sub(s.Start) / interval)
	if n < 0 {
		n = 0
	}
	return frames[n%len(frames)]
}

func (s *Spinner) frameWidth(opts render.Options) int {
	w := 0
	for _, f := range s.frames(opts) {
		w = max(w, cells.Len(f))
	}
	return w
}

func (s *Spinner) Measure(opts render.Options, maxWidth int) render.Measurement {
	w := s.frameWidth(opts)
	if s.Text == nil {
		return render.Measurement{Min: w, Max: w}.WithMaximum(maxWidth)
	}
	m := render.MeasureOf(s.Text, opts, max(maxWidth-w-1, 1))
	return render.Measurement{Min: m.Min + w + 1, Max: m.Max + w + 1}.WithMaximum(maxWidth)
}

func (s *Spinner) Render(opts render.Options) []segment.Segment {
	frame := cells.SetSize(s.Frame(opts, s.now()), s.frameWidth(opts))
	st := styleOr(opts, s.Style, "status.spinner")
	line := text.New("", style.Null).Append(frame, st)
	if s.Text == nil {
		return append(line.Segments(opts.Style), segment.Newline)
	}

	indent := cells.Len(frame) + 1
	textOpts := opts.WithWidth(opts.Width - indent)
	textOpts.Height = 0
	lines := render.Lines(s.Text, textOpts)
	for i, l := range lines {
		var row segment.Line
		if i == 0 {
			row = segment.Line{{Text: frame, Style: st}, {Text: " ", Style: opts.Style}}
		} else {
			row = segment.Line{blank(indent, opts.Style.BackgroundOnly())}
		}
		lines[i] = segment.CropLine(append(row, l...), opts.Width)
	}
	return segment.Join(lines)
}
