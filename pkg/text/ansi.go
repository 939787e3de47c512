package text

import (
	"strings"

	"github.com/charmbracelet/x/ansi"

	"github.com/arthur-debert/tinta/pkg/color"
	"github.com/arthur-debert/tinta/pkg/style"
)

// FromANSI decodes text containing SGR and OSC 8 hyperlink sequences
// into a styled Text. Other escape sequences are dropped.
func FromANSI(s string) *Text {
	t := New("", style.Null)
	var (
		current style.Style
		link    string
		run     strings.Builder
		state   byte
	)
	flush := func() {
		if run.Len() > 0 {
			t.Append(run.String(), current.WithLink(link))
			run.Reset()
		}
	}

	p := ansi.NewParser()
	for len(s) > 0 {
		seq, _, n, next := ansi.DecodeSequence(s, state, p)
		state = next
		s = s[n:]
		if !isEscape(seq) {
			run.WriteString(seq)
			continue
		}
		flush()
		switch {
		case ansi.HasCsiPrefix(seq):
			cmd := ansi.Cmd(p.Command())
			if cmd.Final() == 'm' && cmd.Prefix() == 0 && cmd.Intermediate() == 0 {
				current = applySGR(current, sgrParams(p.Params()))
			}
		case ansi.HasOscPrefix(seq) && p.Command() == 8:
			// 8;params;url
			if parts := strings.SplitN(string(p.Data()), ";", 3); len(parts) == 3 {
				link = parts[2]
			}
		}
	}
	flush()
	return t
}

// isEscape reports whether a decoded sequence is an escape sequence
// rather than printable text. Newlines and tabs count as text.
func isEscape(seq string) bool {
	if seq == "" {
		return false
	}
	// C1 introducers such as 0x9b start multi-byte sequences too
	return seq[0] == ansi.ESC || (len(seq) > 1 && seq[0] >= 0x80 && seq[0] < 0xa0)
}

func sgrParams(params ansi.Params) []int {
	codes := make([]int, len(params))
	for i, param := range params {
		codes[i] = param.Param(0)
	}
	return codes
}

func applySGR(s style.Style, codes []int) style.Style {
	if len(codes) == 0 {
		return style.Null
	}
	for i := 0; i < len(codes); i++ {
		code := codes[i]
		switch {
		case code == 0:
			s = style.Null
		case code == 1:
			s = s.With(style.Bold, true)
		case code == 2:
			s = s.With(style.Dim, true)
		case code == 3:
			s = s.With(style.Italic, true)
		case code == 4:
			s = s.With(style.Underline, true)
		case code == 5:
			s = s.With(style.Blink, true)
		case code == 6:
			s = s.With(style.Blink2, true)
		case code == 7:
			s = s.With(style.Reverse, true)
		case code == 8:
			s = s.With(style.Conceal, true)
		case code == 9:
			s = s.With(style.Strike, true)
		case code == 21:
			s = s.With(style.Underline2, true)
		case code == 22:
			s = s.With(style.Bold, false).With(style.Dim, false)
		case code == 23:
			s = s.With(style.Italic, false)
		case code == 24:
			s = s.With(style.Underline, false).With(style.Underline2, false)
		case code == 25:
			s = s.With(style.Blink, false).With(style.Blink2, false)
		case code == 27:
			s = s.With(style.Reverse, false)
		case code == 28:
			s = s.With(style.Conceal, false)
		case code == 29:
			s = s.With(style.Strike, false)
		case code == 51:
			s = s.With(style.Frame, true)
		case code == 52:
			s = s.With(style.Encircle, true)
		case code == 53:
			s = s.With(style.Overline, true)
		case code == 54:
			s = s.With(style.Frame, false).With(style.Encircle, false)
		case code == 55:
			s = s.With(style.Overline, false)
		case code >= 30 && code <= 37:
			s = s.WithFg(color.Color{Type: color.TypeStandard, Number: uint8(code - 30)})
		case code >= 40 && code <= 47:
			s = s.WithBg(color.Color{Type: color.TypeStandard, Number: uint8(code - 40)})
		case code >= 90 && code <= 97:
			s = s.WithFg(color.Color{Type: color.TypeStandard, Number: uint8(code - 90 + 8)})
		case code >= 100 && code <= 107:
			s = s.WithBg(color.Color{Type: color.TypeStandard, Number: uint8(code - 100 + 8)})
		case code == 39:
			s = s.WithFg(color.Default)
		case code == 49:
			s = s.WithBg(color.Default)
		case code == 38 || code == 48:
			c, used, ok := extendedColor(codes[i+1:])
			i += used
			if !ok {
				continue
			}
			if code == 38 {
				s = s.WithFg(c)
			} else {
				s = s.WithBg(c)
			}
		}
	}
	return s
}

// extendedColor reads "5;n" or "2;r;g;b", returning how many params it used
func extendedColor(params []int) (color.Color, int, bool) {
	if len(params) == 0 {
		return color.Color{}, 0, false
	}
	switch params[0] {
	case 5:
		if len(params) < 2 {
			return color.Color{}, len(params), false
		}
		c, err := color.FromIndex(params[1])
		if err != nil {
			return color.Color{}, 2, false
		}
		if c.Type == color.TypeStandard {
			c.Type = color.TypeEightBit
		}
		return c, 2, true
	case 2:
		if len(params) < 4 {
			return color.Color{}, len(params), false
		}
		return color.FromRGB(clamp8(params[1]), clamp8(params[2]), clamp8(params[3])), 4, true
	}
	return color.Color{}, 1, false
}

func clamp8(n int) uint8 {
	if n < 0 {
		return 0
	}
	if n > 255 {
		return 255
	}
	return uint8(n)
}
