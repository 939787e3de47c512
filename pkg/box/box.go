// Package box defines the glyph sets used to draw panel and table borders.
package box

import (
	"strings"

	"github.com/arthur-debert/tinta/pkg/render"
)

// Row selects one of the horizontal border rows of a box
type Row uint8

const (
	RowTop Row = iota
	RowHeadRow
	RowMid
	RowRow
	RowFootRow
	RowBottom
)

// Edge is a left/fill/divider/right quadruple
type Edge struct {
	Left, Fill, Divider, Right string
}

// Box is a set of border glyphs laid out as eight rows of four cells:
//
//	top       ┌─┬┐
//	head      │ ││
//	head row  ├─┼┤
//	mid       │ ││
//	row       ├─┼┤
//	foot row  ├─┼┤
//	foot      │ ││
//	bottom    └─┴┘
type Box struct {
	Name    string
	ASCII   bool
	Top     Edge
	Head    Edge
	HeadRow Edge
	Mid     Edge
	Row     Edge
	FootRow Edge
	Foot    Edge
	Bottom  Edge
}

// New builds a box from its eight-line picture
func New(name, picture string, ascii bool) *Box {
	lines := strings.Split(strings.Trim(picture, "\n"), "\n")
	if len(lines) != 8 {
		panic("box: " + name + " needs 8 lines")
	}
	edge := func(l string) Edge {
		r := []rune(l)
		if len(r) != 4 {
			panic("box: " + name + " rows need 4 glyphs")
		}
		return Edge{string(r[0]), string(r[1]), string(r[2]), string(r[3])}
	}
	return &Box{
		Name:    name,
		ASCII:   ascii,
		Top:     edge(lines[0]),
		Head:    edge(lines[1]),
		HeadRow: edge(lines[2]),
		Mid:     edge(lines[3]),
		Row:     edge(lines[4]),
		FootRow: edge(lines[5]),
		Foot:    edge(lines[6]),
		Bottom:  edge(lines[7]),
	}
}

func (b *Box) String() string { return b.Name }

func (b *Box) edge(r Row) Edge {
	switch r {
	case RowTop:
		return b.Top
	case RowHeadRow:
		return b.HeadRow
	case RowMid:
		return b.Mid
	case RowRow:
		return b.Row
	case RowFootRow:
		return b.FootRow
	}
	return b.Bottom
}

// Line draws a horizontal border row. widths are the inner column widths;
// edge adds the outer corners.
func (b *Box) Line(r Row, widths []int, edge bool) string {
	e := b.edge(r)
	var sb strings.Builder
	if edge {
		sb.WriteString(e.Left)
	}
	for i, w := range widths {
		sb.WriteString(strings.Repeat(e.Fill, w))
		if i < len(widths)-1 {
			sb.WriteString(e.Divider)
		}
	}
	if edge {
		sb.WriteString(e.Right)
	}
	return sb.String()
}

// TopLine draws the top border
func (b *Box) TopLine(widths []int, edge bool) string { return b.Line(RowTop, widths, edge) }

// BottomLine draws the bottom border
func (b *Box) BottomLine(widths []int, edge bool) string { return b.Line(RowBottom, widths, edge) }

// Substitute swaps b for a box the target can draw. Legacy consoles get
// boxes without heavy or rounded glyphs; ASCII-only targets and targets
// whose encoding can't represent the glyphs get ASCII.
func (b *Box) Substitute(opts render.Options) *Box {
	if b == nil {
		return nil
	}
	out := b
	if opts.Legacy {
		if sub, ok := legacySubstitutions[out]; ok {
			out = sub
		}
	}
	if !out.ASCII && (opts.ASCIIOnly || !Encodable(out, opts.Encoding)) {
		out = ASCII
	}
	return out
}

// PlainHeaded returns the box to use when a table has no header row,
// dropping the decorated head separator.
func (b *Box) PlainHeaded() *Box {
	if b == nil {
		return nil
	}
	if sub, ok := plainHeadedSubstitutions[b]; ok {
		return sub
	}
	return b
}

func (b *Box) glyphs() string {
	var sb strings.Builder
	for _, e := range []Edge{b.Top, b.Head, b.HeadRow, b.Mid, b.Row, b.FootRow, b.Foot, b.Bottom} {
		sb.WriteString(e.Left + e.Fill + e.Divider + e.Right)
	}
	return sb.String()
}
