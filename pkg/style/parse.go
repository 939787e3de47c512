package style

import (
	"strings"
	"sync"

	"github.com/arthur-debert/tinta/pkg/color"
	"github.com/arthur-debert/tinta/pkg/errors"
)

var parseCache sync.Map

// Parse reads a style definition such as "bold red on white",
// "not italic", "#ff8000 underline" or "link https://example.com".
func Parse(def string) (Style, error) {
	if v, ok := parseCache.Load(def); ok {
		return v.(Style), nil
	}
	s, err := parseWords(def, nil)
	if err != nil {
		return Null, err
	}
	parseCache.Store(def, s)
	return s, nil
}

// MustParse is Parse for literals known to be valid
func MustParse(def string) Style {
	s, err := Parse(def)
	if err != nil {
		panic(err)
	}
	return s
}

// parseWords does the work of Parse. aliases maps extra color names to
// color definitions, used by themes.
func parseWords(def string, aliases map[string]string) (Style, error) {
	trimmed := strings.TrimSpace(def)
	if trimmed == "" || strings.EqualFold(trimmed, "none") {
		return Null, nil
	}

	parseColor := func(word string) (color.Color, error) {
		if alias, ok := aliases[strings.ToLower(word)]; ok {
			word = alias
		}
		return color.Parse(word)
	}

	var s Style
	words := strings.Fields(trimmed)
	for i := 0; i < len(words); i++ {
		word := words[i]
		lower := strings.ToLower(word)

		switch {
		case lower == "on":
			i++
			if i >= len(words) {
				return Null, syntaxError(def, "'on' must be followed by a color")
			}
			c, err := parseColor(words[i])
			if err != nil {
				return Null, errors.Wrapf(err, errors.ErrStyleSyntax, "unable to parse %q as background color", words[i]).
					WithDetail("definition", def)
			}
			s = s.WithBg(c)

		case lower == "not":
			i++
			if i >= len(words) {
				return Null, syntaxError(def, "'not' must be followed by an attribute")
			}
			a, ok := LookupAttr(words[i])
			if !ok {
				return Null, syntaxError(def, "expected attribute after 'not', found "+words[i])
			}
			s = s.With(a, false)

		case lower == "link":
			i++
			if i >= len(words) {
				return Null, syntaxError(def, "'link' must be followed by a URL")
			}
			s = s.WithLink(words[i])

		case strings.HasPrefix(lower, "link="):
			url := word[len("link="):]
			if url == "" {
				return Null, syntaxError(def, "empty link target")
			}
			s = s.WithLink(url)

		default:
			if a, ok := LookupAttr(lower); ok {
				s = s.With(a, true)
				continue
			}
			c, err := parseColor(word)
			if err != nil {
				return Null, errors.Wrapf(err, errors.ErrStyleSyntax, "unknown style word %q", word).
					WithDetail("definition", def)
			}
			s = s.WithFg(c)
		}
	}
	return s, nil
}

func syntaxError(def, msg string) error {
	return errors.New(errors.ErrStyleSyntax, msg).WithDetail("definition", def)
}
