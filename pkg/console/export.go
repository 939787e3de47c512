package console

import (
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/beevik/etree"

	"github.com/arthur-debert/tinta/pkg/color"
	"github.com/arthur-debert/tinta/pkg/errors"
	"github.com/arthur-debert/tinta/pkg/segment"
	"github.com/arthur-debert/tinta/pkg/style"
)

func withoutControls(segs []segment.Segment) []segment.Segment {
	out := make([]segment.Segment, 0, len(segs))
	for _, s := range segs {
		if !s.IsControl() {
			out = append(out, s)
		}
	}
	return out
}

// ExportText returns the recorded output. With styled set the text keeps
// its SGR sequences for the console's color system. clear drops the
// recording afterwards.
func (c *Console) ExportText(styled, clear bool) (string, error) {
	segs, err := c.recorded(clear)
	if err != nil {
		return "", err
	}
	segs = withoutControls(segs)
	var b strings.Builder
	var backend Backend = PlainBackend{}
	if styled {
		backend = NewANSIBackend(c.profile.ColorSystem, false)
	}
	if err := backend.Write(&b, segs); err != nil {
		return "", errors.Wrap(err, errors.ErrExport, "exporting text")
	}
	return b.String(), nil
}

// SaveText writes ExportText to path
func (c *Console) SaveText(path string, styled, clear bool) error {
	out, err := c.ExportText(styled, clear)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, []byte(out), 0644); err != nil {
		return errors.Wrapf(err, errors.ErrExport, "writing %s", path)
	}
	return nil
}

// SVGOptions control ExportSVG
type SVGOptions struct {
	Title    string
	Theme    *color.TerminalTheme
	FontSize float64
	Clear    bool
}

const (
	svgPadding     = 12.0
	svgTitleHeight = 28.0
	svgCharRatio   = 0.61
	svgLineRatio   = 1.3
)

func svgNum(v float64) string {
	return strconv.FormatFloat(math.Round(v*100)/100, 'f', -1, 64)
}

// ExportSVG draws the recorded output as an SVG image, one <text> per
// styled run positioned on a cell grid
func (c *Console) ExportSVG(o SVGOptions) (string, error) {
	segs, err := c.recorded(o.Clear)
	if err != nil {
		return "", err
	}
	theme := o.Theme
	if theme == nil {
		theme = color.DefaultTerminalTheme
	}
	fontSize := o.FontSize
	if fontSize <= 0 {
		fontSize = 14
	}
	charW := fontSize * svgCharRatio
	lineH := fontSize * svgLineRatio

	lines := segment.SplitLines(withoutControls(segs))
	cols := 1
	for _, l := range lines {
		cols = max(cols, l.CellLen())
	}
	top := svgPadding
	if o.Title != "" {
		top += svgTitleHeight
	}
	width := float64(cols)*charW + 2*svgPadding
	height := top + float64(len(lines))*lineH + svgPadding

	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="UTF-8"`)
	svg := doc.CreateElement("svg")
	svg.CreateAttr("xmlns", "http://www.w3.org/2000/svg")
	svg.CreateAttr("width", svgNum(width))
	svg.CreateAttr("height", svgNum(height))
	svg.CreateAttr("viewBox", "0 0 "+svgNum(width)+" "+svgNum(height))

	css := svg.CreateElement("style")
	css.SetText(".tinta { font-family: Menlo, 'DejaVu Sans Mono', Consolas, monospace; font-size: " +
		svgNum(fontSize) + "px; white-space: pre; }")

	bg := svg.CreateElement("rect")
	bg.CreateAttr("width", "100%")
	bg.CreateAttr("height", "100%")
	bg.CreateAttr("rx", "6")
	bg.CreateAttr("fill", theme.Background.Hex())

	if o.Title != "" {
		t := svg.CreateElement("text")
		t.CreateAttr("class", "tinta")
		t.CreateAttr("x", svgNum(width/2))
		t.CreateAttr("y", svgNum(svgPadding+fontSize))
		t.CreateAttr("text-anchor", "middle")
		t.CreateAttr("fill", theme.Foreground.Hex())
		t.CreateAttr("opacity", "0.8")
		t.SetText(o.Title)
	}

	body := svg.CreateElement("g")
	body.CreateAttr("transform", "translate("+svgNum(svgPadding)+" "+svgNum(top)+")")
	for row, line := range lines {
		x := 0
		y := float64(row) * lineH
		for _, s := range line {
			cells := s.CellLen()
			if cells == 0 {
				continue
			}
			svgSegment(body, s, theme, float64(x)*charW, y, float64(cells)*charW, lineH, fontSize)
			x += cells
		}
	}

	out, err := doc.WriteToString()
	if err != nil {
		return "", errors.Wrap(err, errors.ErrExport, "encoding svg")
	}
	return out, nil
}

func svgSegment(parent *etree.Element, s segment.Segment, theme *color.TerminalTheme, x, y, w, h, fontSize float64) {
	st := s.Style
	fg := theme.Foreground
	if c, ok := st.Fg(); ok {
		fg = c.Triplet(theme, true)
	}
	bg, hasBg := theme.Background, false
	if c, ok := st.Bg(); ok {
		bg, hasBg = c.Triplet(theme, false), true
	}
	if st.Has(style.Reverse) {
		fg, bg, hasBg = bg, fg, true
	}
	if st.Has(style.Dim) {
		fg = fg.Blend(bg, 0.4)
	}

	if hasBg {
		r := parent.CreateElement("rect")
		r.CreateAttr("x", svgNum(x))
		r.CreateAttr("y", svgNum(y))
		r.CreateAttr("width", svgNum(w))
		r.CreateAttr("height", svgNum(h))
		r.CreateAttr("fill", bg.Hex())
	}
	if strings.TrimSpace(s.Text) == "" || st.Has(style.Conceal) {
		return
	}

	if link := st.Link(); link != "" {
		a := parent.CreateElement("a")
		a.CreateAttr("href", link)
		parent = a
	}
	t := parent.CreateElement("text")
	t.CreateAttr("class", "tinta")
	t.CreateAttr("x", svgNum(x))
	t.CreateAttr("y", svgNum(y+fontSize))
	t.CreateAttr("textLength", svgNum(w))
	t.CreateAttr("fill", fg.Hex())
	if st.Has(style.Bold) {
		t.CreateAttr("font-weight", "bold")
	}
	if st.Has(style.Italic) {
		t.CreateAttr("font-style", "italic")
	}
	var deco []string
	if st.Has(style.Underline) || st.Has(style.Underline2) {
		deco = append(deco, "underline")
	}
	if st.Has(style.Strike) {
		deco = append(deco, "line-through")
	}
	if st.Has(style.Overline) {
		deco = append(deco, "overline")
	}
	if len(deco) > 0 {
		t.CreateAttr("text-decoration", strings.Join(deco, " "))
	}
	t.SetText(s.Text)
}

// SaveSVG writes ExportSVG to path
func (c *Console) SaveSVG(path string, o SVGOptions) error {
	out, err := c.ExportSVG(o)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, []byte(out), 0644); err != nil {
		return errors.Wrapf(err, errors.ErrExport, "writing %s", path)
	}
	return nil
}
