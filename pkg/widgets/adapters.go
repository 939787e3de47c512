package widgets

import (
	"github.com/muesli/termenv"

	"github.com/arthur-debert/tinta/pkg/color"
	"github.com/arthur-debert/tinta/pkg/render"
)

// termenvProfile maps a color system to the profile external renderers
// use to pick their escape sequences
func termenvProfile(opts render.Options) termenv.Profile {
	switch opts.ColorSystem {
	case color.TrueColor:
		return termenv.TrueColor
	case color.EightBit:
		return termenv.ANSI256
	case color.Standard, color.Windows:
		return termenv.ANSI
	}
	return termenv.Ascii
}
