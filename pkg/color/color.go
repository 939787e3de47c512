// Package color models terminal colors across the four capability tiers
// and converts between them.
package color

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/arthur-debert/tinta/pkg/errors"
	"github.com/lucasb-eyer/go-colorful"
)

// Type is the tier a Color was expressed in
type Type uint8

const (
	TypeDefault Type = iota
	TypeStandard
	TypeEightBit
	TypeTrueColor
	TypeWindows
)

// System is the color capability of an output device
type System uint8

const (
	NoColor System = iota
	Standard
	EightBit
	TrueColor
	Windows
)

func (s System) String() string {
	switch s {
	case NoColor:
		return "none"
	case Standard:
		return "standard"
	case EightBit:
		return "256"
	case TrueColor:
		return "truecolor"
	case Windows:
		return "windows"
	}
	return fmt.Sprintf("System(%d)", s)
}

// ParseSystem accepts the names used by configuration and flags
func ParseSystem(s string) (System, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "none", "no_color", "nocolor", "ascii":
		return NoColor, nil
	case "standard", "16", "ansi":
		return Standard, nil
	case "256", "eight_bit", "eightbit", "ansi256":
		return EightBit, nil
	case "truecolor", "24bit", "true_color":
		return TrueColor, nil
	case "windows", "legacy":
		return Windows, nil
	}
	return NoColor, errors.Newf(errors.ErrInvalidInput, "unknown color system %q", s)
}

// Triplet is an RGB value
type Triplet struct {
	R, G, B uint8
}

// Hex returns the #rrggbb form
func (t Triplet) Hex() string {
	return fmt.Sprintf("#%02x%02x%02x", t.R, t.G, t.B)
}

// Blend interpolates linearly in RGB space, 0 returning t and 1 returning other
func (t Triplet) Blend(other Triplet, amount float64) Triplet {
	r, g, b := t.colorful().BlendRgb(other.colorful(), amount).Clamped().RGB255()
	return Triplet{r, g, b}
}

func (t Triplet) colorful() colorful.Color {
	return colorful.Color{R: float64(t.R) / 255, G: float64(t.G) / 255, B: float64(t.B) / 255}
}

// Color is a comparable value. The zero value is the terminal default.
type Color struct {
	Type   Type
	Number uint8
	RGB    Triplet
}

// Default is the terminal's own foreground or background
var Default = Color{}

// FromIndex builds a palette color. Indexes 0-15 are standard colors.
func FromIndex(n int) (Color, error) {
	if n < 0 || n > 255 {
		return Color{}, errors.Newf(errors.ErrColorParse, "color index %d is outside 0-255", n).
			WithDetail("index", n)
	}
	if n < 16 {
		return Color{Type: TypeStandard, Number: uint8(n)}, nil
	}
	return Color{Type: TypeEightBit, Number: uint8(n)}, nil
}

// FromRGB builds a truecolor value
func FromRGB(r, g, b uint8) Color {
	return Color{Type: TypeTrueColor, RGB: Triplet{r, g, b}}
}

// IsDefault reports whether c is the terminal default
func (c Color) IsDefault() bool {
	return c.Type == TypeDefault
}

// System is the lowest color system able to show c unchanged
func (c Color) System() System {
	switch c.Type {
	case TypeStandard:
		return Standard
	case TypeEightBit:
		return EightBit
	case TypeTrueColor:
		return TrueColor
	case TypeWindows:
		return Windows
	}
	return Standard
}

func (c Color) String() string {
	switch c.Type {
	case TypeStandard, TypeWindows:
		return standardNames[c.Number]
	case TypeEightBit:
		return fmt.Sprintf("color(%d)", c.Number)
	case TypeTrueColor:
		return c.RGB.Hex()
	}
	return "default"
}

var (
	rgbRe   = regexp.MustCompile(`^rgb\(\s*(\d{1,3})\s*,\s*(\d{1,3})\s*,\s*(\d{1,3})\s*\)$`)
	indexRe = regexp.MustCompile(`^color\(\s*(\d{1,3})\s*\)$`)
)

// Parse reads a color name, #rrggbb, color(N) or rgb(r,g,b)
func Parse(s string) (Color, error) {
	orig := s
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return Color{}, errors.New(errors.ErrColorParse, "empty color")
	}
	if s == "default" {
		return Default, nil
	}

	if strings.HasPrefix(s, "#") {
		if len(s) != 7 {
			return Color{}, errors.Newf(errors.ErrColorParse, "malformed hex color %q", orig)
		}
		c, err := colorful.Hex(s)
		if err != nil {
			return Color{}, errors.Wrapf(err, errors.ErrColorParse, "malformed hex color %q", orig)
		}
		r, g, b := c.RGB255()
		return FromRGB(r, g, b), nil
	}

	if m := indexRe.FindStringSubmatch(s); m != nil {
		n, _ := strconv.Atoi(m[1])
		return FromIndex(n)
	}

	if m := rgbRe.FindStringSubmatch(s); m != nil {
		var comps [3]uint8
		for i := range comps {
			v, _ := strconv.Atoi(m[i+1])
			if v > 255 {
				return Color{}, errors.Newf(errors.ErrColorParse, "rgb component %d out of range in %q", v, orig)
			}
			comps[i] = uint8(v)
		}
		return FromRGB(comps[0], comps[1], comps[2]), nil
	}

	if n, ok := namedColors[s]; ok {
		return FromIndex(n)
	}
	return Color{}, errors.Newf(errors.ErrColorParse, "unknown color %q", orig)
}

// MustParse is Parse for package-level literals
func MustParse(s string) Color {
	c, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return c
}

// Triplet returns an RGB approximation of c. Default colors and the
// 16 standard colors are looked up in theme.
func (c Color) Triplet(theme *TerminalTheme, foreground bool) Triplet {
	switch c.Type {
	case TypeTrueColor:
		return c.RGB
	case TypeEightBit:
		return EightBitPalette[c.Number]
	case TypeStandard:
		return theme.ANSI[c.Number]
	case TypeWindows:
		return WindowsPalette[c.Number]
	}
	if foreground {
		return theme.Foreground
	}
	return theme.Background
}
