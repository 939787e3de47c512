package widgets

import (
	"strings"

	figure "github.com/common-nighthawk/go-figure"

	"github.com/arthur-debert/tinta/pkg/cells"
	"github.com/arthur-debert/tinta/pkg/render"
	"github.com/arthur-debert/tinta/pkg/segment"
	"github.com/arthur-debert/tinta/pkg/text"
)

// Banner draws large ASCII-art lettering with a FIGlet font
type Banner struct {
	Text    string
	Font    string
	Style   string
	Justify render.Justify
}

// BannerFonts lists the bundled FIGlet font names
func BannerFonts() []string {
	var out []string
	for _, name := range figure.AssetNames() {
		if strings.HasPrefix(name, "fonts/") && strings.HasSuffix(name, ".flf") {
			out = append(out, strings.TrimSuffix(strings.TrimPrefix(name, "fonts/"), ".flf"))
		}
	}
	return out
}

func (b *Banner) font() string {
	for _, f := range BannerFonts() {
		if f == b.Font {
			return f
		}
	}
	return "standard"
}

func (b *Banner) rows() []string {
	rows := figure.NewFigure(b.Text, b.font(), false).Slicify()
	// drop trailing rows that are entirely blank
	for len(rows) > 0 && strings.TrimSpace(rows[len(rows)-1]) == "" {
		rows = rows[:len(rows)-1]
	}
	return rows
}

func (b *Banner) Measure(opts render.Options, maxWidth int) render.Measurement {
	w := 1
	for _, r := range b.rows() {
		w = max(w, cells.Len(r))
	}
	return render.Measurement{Min: w, Max: w}.WithMaximum(maxWidth)
}

func (b *Banner) Render(opts render.Options) []segment.Segment {
	t := text.New(strings.Join(b.rows(), "\n"), opts.ResolveStyle(b.Style))
	t.NoWrap = true
	t.Overflow = render.OverflowCrop
	if b.Justify == render.JustifyCenter || b.Justify == render.JustifyRight {
		return (&Align{Child: t, Justify: b.Justify}).Render(opts)
	}
	return t.Render(opts)
}
