// Package style defines Style, an immutable set of colors and text
// attributes, and the Theme registry that maps names to styles.
package style

import (
	"strings"

	"github.com/arthur-debert/tinta/pkg/color"
)

// Attr is a single text attribute bit
type Attr uint16

const (
	Bold Attr = 1 << iota
	Dim
	Italic
	Underline
	Blink
	Blink2
	Reverse
	Conceal
	Strike
	Underline2
	Frame
	Encircle
	Overline
)

// AllAttrs lists every attribute in SGR order
var AllAttrs = []Attr{
	Bold, Dim, Italic, Underline, Blink, Blink2, Reverse, Conceal,
	Strike, Underline2, Frame, Encircle, Overline,
}

var attrNames = map[Attr]string{
	Bold:       "bold",
	Dim:        "dim",
	Italic:     "italic",
	Underline:  "underline",
	Blink:      "blink",
	Blink2:     "blink2",
	Reverse:    "reverse",
	Conceal:    "conceal",
	Strike:     "strike",
	Underline2: "underline2",
	Frame:      "frame",
	Encircle:   "encircle",
	Overline:   "overline",
}

var attrAliases = map[string]Attr{
	"bold": Bold, "b": Bold,
	"dim": Dim, "d": Dim,
	"italic": Italic, "i": Italic,
	"underline": Underline, "u": Underline,
	"blink": Blink, "slowblink": Blink,
	"blink2": Blink2, "rapidblink": Blink2,
	"reverse": Reverse, "r": Reverse, "invert": Reverse,
	"conceal": Conceal, "c": Conceal,
	"strike": Strike, "s": Strike, "strikethrough": Strike,
	"underline2": Underline2, "uu": Underline2,
	"frame":    Frame,
	"encircle": Encircle,
	"overline": Overline, "o": Overline,
}

func (a Attr) String() string {
	return attrNames[a]
}

// LookupAttr resolves an attribute name or alias
func LookupAttr(name string) (Attr, bool) {
	a, ok := attrAliases[strings.ToLower(name)]
	return a, ok
}

// Style is a comparable value. The zero Style changes nothing.
type Style struct {
	fg, bg       color.Color
	hasFg, hasBg bool
	attrs        Attr // attribute values
	set          Attr // attributes explicitly turned on or off
	link         string
}

// Null is the style that leaves everything untouched
var Null = Style{}

// New returns a style with the given attributes turned on
func New(attrs ...Attr) Style {
	var s Style
	for _, a := range attrs {
		s = s.With(a, true)
	}
	return s
}

// IsNull reports whether s changes nothing
func (s Style) IsNull() bool {
	return s == Null
}

// Fg returns the foreground color and whether one was set
func (s Style) Fg() (color.Color, bool) { return s.fg, s.hasFg }

// Bg returns the background color and whether one was set
func (s Style) Bg() (color.Color, bool) { return s.bg, s.hasBg }

// Link returns the hyperlink target, if any
func (s Style) Link() string { return s.link }

// Has reports whether attribute a is on
func (s Style) Has(a Attr) bool { return s.attrs&a != 0 }

// IsSet reports whether a was explicitly turned on or off
func (s Style) IsSet(a Attr) bool { return s.set&a != 0 }

// WithFg returns a copy with the foreground set
func (s Style) WithFg(c color.Color) Style {
	s.fg, s.hasFg = c, true
	return s
}

// WithBg returns a copy with the background set
func (s Style) WithBg(c color.Color) Style {
	s.bg, s.hasBg = c, true
	return s
}

// With returns a copy with a explicitly on or off
func (s Style) With(a Attr, on bool) Style {
	s.set |= a
	if on {
		s.attrs |= a
	} else {
		s.attrs &^= a
	}
	return s
}

// WithLink returns a copy that renders as a hyperlink to url
func (s Style) WithLink(url string) Style {
	s.link = url
	return s
}

// WithoutColor drops both colors, keeping attributes and link
func (s Style) WithoutColor() Style {
	s.fg, s.hasFg = color.Color{}, false
	s.bg, s.hasBg = color.Color{}, false
	return s
}

// BackgroundOnly keeps just the background, used for padding cells
func (s Style) BackgroundOnly() Style {
	if !s.hasBg {
		return Null
	}
	return Null.WithBg(s.bg)
}

// Combine layers child on top of parent. Anything child sets wins,
// everything else comes from parent.
func Combine(parent, child Style) Style {
	if child.IsNull() {
		return parent
	}
	if parent.IsNull() {
		return child
	}
	out := parent
	if child.hasFg {
		out.fg, out.hasFg = child.fg, true
	}
	if child.hasBg {
		out.bg, out.hasBg = child.bg, true
	}
	out.attrs = (parent.attrs &^ child.set) | (child.attrs & child.set)
	out.set = parent.set | child.set
	if child.link != "" {
		out.link = child.link
	}
	return out
}

// Add is Combine with s as the parent
func (s Style) Add(child Style) Style {
	return Combine(s, child)
}

// Chain folds Combine over styles left to right
func Chain(styles ...Style) Style {
	var out Style
	for _, s := range styles {
		out = Combine(out, s)
	}
	return out
}

// Downgrade resolves colors for a color system. Under color.NoColor both
// colors are removed.
func (s Style) Downgrade(sys color.System) Style {
	if s.hasFg {
		if c, ok := color.Resolve(s.fg, sys); ok {
			s.fg = c
		} else {
			s.fg, s.hasFg = color.Color{}, false
		}
	}
	if s.hasBg {
		if c, ok := color.Resolve(s.bg, sys); ok {
			s.bg = c
		} else {
			s.bg, s.hasBg = color.Color{}, false
		}
	}
	return s
}

// String renders s in the same grammar Parse reads
func (s Style) String() string {
	if s.IsNull() {
		return "none"
	}
	var words []string
	for _, a := range AllAttrs {
		if !s.IsSet(a) {
			continue
		}
		if s.Has(a) {
			words = append(words, a.String())
		} else {
			words = append(words, "not "+a.String())
		}
	}
	if s.hasFg {
		words = append(words, s.fg.String())
	}
	if s.hasBg {
		words = append(words, "on "+s.bg.String())
	}
	if s.link != "" {
		words = append(words, "link "+s.link)
	}
	return strings.Join(words, " ")
}
