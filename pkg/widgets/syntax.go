package widgets

import (
	"fmt"
	"strings"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"

	"github.com/arthur-debert/tinta/pkg/cells"
	"github.com/arthur-debert/tinta/pkg/color"
	"github.com/arthur-debert/tinta/pkg/logging"
	"github.com/arthur-debert/tinta/pkg/render"
	"github.com/arthur-debert/tinta/pkg/segment"
	"github.com/arthur-debert/tinta/pkg/style"
	"github.com/arthur-debert/tinta/pkg/text"
)

// Syntax highlights source code with chroma lexers and styles
type Syntax struct {
	Code string
	// Language is a lexer name or alias; empty guesses from the code
	Language string
	// Theme is a chroma style name such as "monokai"
	Theme       string
	LineNumbers bool
	StartLine   int
	WordWrap    bool
	// Background keeps the theme's background colors
	Background bool
}

// NewSyntax returns highlighted code using the monokai theme
func NewSyntax(code, language string) *Syntax {
	return &Syntax{Code: code, Language: language, Theme: "monokai", StartLine: 1}
}

func (s *Syntax) lexer() chroma.Lexer {
	var l chroma.Lexer
	if s.Language != "" {
		l = lexers.Get(s.Language)
	}
	if l == nil {
		l = lexers.Analyse(s.Code)
	}
	if l == nil {
		l = lexers.Fallback
	}
	return chroma.Coalesce(l)
}

func (s *Syntax) entryStyle(e chroma.StyleEntry) style.Style {
	st := style.Null
	if e.Colour.IsSet() {
		st = st.WithFg(color.FromRGB(e.Colour.Red(), e.Colour.Green(), e.Colour.Blue()))
	}
	if s.Background && e.Background.IsSet() {
		st = st.WithBg(color.FromRGB(e.Background.Red(), e.Background.Green(), e.Background.Blue()))
	}
	if e.Bold == chroma.Yes {
		st = st.With(style.Bold, true)
	}
	if e.Italic == chroma.Yes {
		st = st.With(style.Italic, true)
	}
	if e.Underline == chroma.Yes {
		st = st.With(style.Underline, true)
	}
	return st
}

// Highlight returns the code as styled text without a trailing newline
func (s *Syntax) Highlight(opts render.Options) *text.Text {
	code := strings.TrimRight(s.Code, "\n")
	out := text.New("", style.Null)

	it, err := s.lexer().Tokenise(nil, code)
	if err != nil {
		logger := logging.GetLogger("widgets")
		logger.Debug().Err(err).Str("language", s.Language).Msg("tokenising failed, showing plain code")
		out.Append(code, style.Null)
		return out
	}
	theme := styles.Get(s.Theme)
	for tok := it(); tok != chroma.EOF; tok = it() {
		out.Append(tok.Value, s.entryStyle(theme.Get(tok.Type)))
	}
	if strings.HasSuffix(out.Plain(), "\n") {
		out.RightCrop(1)
	}
	out.ExpandTabs(opts.EffectiveTabSize())
	return out
}

func (s *Syntax) lineCount() int {
	return strings.Count(strings.TrimRight(s.Code, "\n"), "\n") + 1
}

func (s *Syntax) gutterWidth() int {
	if !s.LineNumbers {
		return 0
	}
	return len(fmt.Sprint(s.StartLine+s.lineCount()-1)) + 2
}

func (s *Syntax) Measure(opts render.Options, maxWidth int) render.Measurement {
	widest := 0
	for _, l := range strings.Split(s.Highlight(opts).Plain(), "\n") {
		widest = max(widest, cells.Len(l))
	}
	g := s.gutterWidth()
	return render.Measurement{Min: min(g+1, widest+g), Max: widest + g}.WithMaximum(maxWidth)
}

func (s *Syntax) Render(opts render.Options) []segment.Segment {
	gutter := s.gutterWidth()
	numStyle := style.Combine(opts.Style, opts.ResolveStyle("syntax.line_number"))
	lineOpts := opts.WithWidth(opts.Width - gutter)
	lineOpts.Height = 0

	var out []segment.Line
	for i, l := range s.Highlight(opts).Split("\n") {
		l.NoWrap = !s.WordWrap
		l.Overflow = render.OverflowCrop
		if s.WordWrap {
			l.Overflow = render.OverflowFold
		}
		rows := render.Lines(l, lineOpts)
		for j, row := range rows {
			var prefix segment.Line
			if gutter > 0 {
				num := ""
				if j == 0 {
					num = fmt.Sprint(s.StartLine + i)
				}
				prefix = segment.Line{{Text: fmt.Sprintf("%*s  ", gutter-2, num), Style: numStyle}}
			}
			out = append(out, segment.CropLine(append(prefix, row...), opts.Width))
		}
	}
	return segment.Join(out)
}
