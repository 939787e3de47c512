package render

import (
	"github.com/arthur-debert/tinta/pkg/color"
	"github.com/arthur-debert/tinta/pkg/logging"
	"github.com/arthur-debert/tinta/pkg/style"
)

// Justify is horizontal text alignment
type Justify uint8

const (
	JustifyDefault Justify = iota
	JustifyLeft
	JustifyCenter
	JustifyRight
	JustifyFull
)

// ParseJustify accepts left, center, right, full and default
func ParseJustify(s string) Justify {
	switch s {
	case "left":
		return JustifyLeft
	case "center", "centre":
		return JustifyCenter
	case "right":
		return JustifyRight
	case "full":
		return JustifyFull
	}
	return JustifyDefault
}

// Overflow controls what happens to words wider than the line
type Overflow uint8

const (
	OverflowDefault Overflow = iota
	OverflowFold
	OverflowCrop
	OverflowEllipsis
	OverflowIgnore
)

// ParseOverflow accepts fold, crop, ellipsis and ignore
func ParseOverflow(s string) Overflow {
	switch s {
	case "fold":
		return OverflowFold
	case "crop":
		return OverflowCrop
	case "ellipsis":
		return OverflowEllipsis
	case "ignore":
		return OverflowIgnore
	}
	return OverflowDefault
}

// VerticalAlign positions content inside a taller box
type VerticalAlign uint8

const (
	VAlignTop VerticalAlign = iota
	VAlignMiddle
	VAlignBottom
)

// Options carries everything a renderable needs to lay itself out. It is
// passed by value; derive variations with the With methods.
type Options struct {
	Width  int
	Height int

	Justify  Justify
	Overflow Overflow
	NoWrap   bool
	Markup   bool

	// Style is the effective style of the enclosing container
	Style style.Style

	Theme       *style.Theme
	ColorSystem color.System
	Encoding    string
	ASCIIOnly   bool
	Legacy      bool
	IsTerminal  bool
	TabSize     int
}

// WithWidth returns a copy with the width set, never below 1
func (o Options) WithWidth(w int) Options {
	if w < 1 {
		w = 1
	}
	o.Width = w
	return o
}

// WithHeight returns a copy with a fixed height
func (o Options) WithHeight(h int) Options {
	o.Height = h
	return o
}

// WithStyle layers s over the inherited style
func (o Options) WithStyle(s style.Style) Options {
	o.Style = style.Combine(o.Style, s)
	return o
}

// WithJustify sets justification unless j is the default
func (o Options) WithJustify(j Justify) Options {
	if j != JustifyDefault {
		o.Justify = j
	}
	return o
}

// WithOverflow sets overflow unless v is the default
func (o Options) WithOverflow(v Overflow) Options {
	if v != OverflowDefault {
		o.Overflow = v
	}
	return o
}

// ResolveStyle turns a style name or definition into a Style. Unknown
// names fall back to the null style so rendering never fails.
func (o Options) ResolveStyle(def string) style.Style {
	if def == "" {
		return style.Null
	}
	if s, ok := o.Theme.Get(def); ok {
		return s
	}
	s, err := style.Parse(def)
	if err != nil {
		logger := logging.GetLogger("render")
		logger.Debug().Err(err).Str("style", def).Msg("unresolvable style, using none")
		return style.Null
	}
	return s
}

// EffectiveTabSize defaults to 8
func (o Options) EffectiveTabSize() int {
	if o.TabSize <= 0 {
		return 8
	}
	return o.TabSize
}
