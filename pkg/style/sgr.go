package style

import (
	"strconv"
	"strings"

	"github.com/arthur-debert/tinta/pkg/color"
)

var onCodes = map[Attr]string{
	Bold: "1", Dim: "2", Italic: "3", Underline: "4", Blink: "5", Blink2: "6",
	Reverse: "7", Conceal: "8", Strike: "9", Underline2: "21",
	Frame: "51", Encircle: "52", Overline: "53",
}

// bold and dim share 22, frame and encircle share 54
var offCodes = map[Attr]string{
	Bold: "22", Dim: "22", Italic: "23", Underline: "24", Underline2: "24",
	Blink: "25", Blink2: "25", Reverse: "27", Conceal: "28", Strike: "29",
	Frame: "54", Encircle: "54", Overline: "55",
}

// OnCode is the SGR parameter that turns a on
func (a Attr) OnCode() string { return onCodes[a] }

// OffCode is the SGR parameter that turns a off. Some attributes share
// an off code, so turning one off may also clear its sibling.
func (a Attr) OffCode() string { return offCodes[a] }

// Siblings returns the attributes cleared by the same off code as a
func (a Attr) Siblings() Attr {
	var out Attr
	code := offCodes[a]
	for _, b := range AllAttrs {
		if offCodes[b] == code {
			out |= b
		}
	}
	return out
}

// ColorCode is the SGR parameter sequence selecting c as the foreground
// or background. c should already be resolved for the target system.
func ColorCode(c color.Color, foreground bool) string {
	base := 30
	if !foreground {
		base = 40
	}
	switch c.Type {
	case color.TypeStandard, color.TypeWindows:
		n := int(c.Number)
		if n < 8 {
			return strconv.Itoa(base + n)
		}
		return strconv.Itoa(base + 60 + n - 8)
	case color.TypeEightBit:
		return strconv.Itoa(base+8) + ";5;" + strconv.Itoa(int(c.Number))
	case color.TypeTrueColor:
		return strconv.Itoa(base+8) + ";2;" + strconv.Itoa(int(c.RGB.R)) + ";" +
			strconv.Itoa(int(c.RGB.G)) + ";" + strconv.Itoa(int(c.RGB.B))
	}
	return strconv.Itoa(base + 9)
}

// SGR returns the full parameter list for s under sys, without the
// surrounding CSI and "m". An empty string means no codes.
func (s Style) SGR(sys color.System) string {
	s = s.Downgrade(sys)
	var codes []string
	for _, a := range AllAttrs {
		if s.Has(a) {
			codes = append(codes, a.OnCode())
		}
	}
	if s.hasFg {
		codes = append(codes, ColorCode(s.fg, true))
	}
	if s.hasBg {
		codes = append(codes, ColorCode(s.bg, false))
	}
	return strings.Join(codes, ";")
}
