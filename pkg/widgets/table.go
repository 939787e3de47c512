package widgets

import (
	"github.com/arthur-debert/tinta/pkg/box"
	"github.com/arthur-debert/tinta/pkg/render"
	"github.com/arthur-debert/tinta/pkg/segment"
	"github.com/arthur-debert/tinta/pkg/style"
)

// Column configures one table column
type Column struct {
	// Header and Footer are markup
	Header   string
	Footer   string
	Justify  render.Justify
	Vertical render.VerticalAlign
	Overflow render.Overflow
	NoWrap   bool
	// Width fixes the content width; MinWidth and MaxWidth bound it
	Width    int
	MinWidth int
	MaxWidth int
	// Ratio shares spare width between columns of an expanded table
	Ratio       int
	Style       string
	HeaderStyle string
	FooterStyle string

	cells []render.Renderable
}

// Table lays out rows of cells in columns
type Table struct {
	Columns []*Column

	Title   string
	Caption string

	Box        *box.Box
	ShowHeader bool
	ShowFooter bool
	ShowEdge   bool
	ShowLines  bool
	// PadX is the blank cells on each side of every cell
	PadX int
	// Expand stretches the table to the full available width
	Expand bool
	Width  int

	Style       string
	BorderStyle string
	HeaderStyle string
	FooterStyle string
	RowStyles   []string

	rows int
}

// NewTable returns a table with a header row and a heavy-head box
func NewTable(headers ...string) *Table {
	t := &Table{
		Box:        box.HeavyHead,
		ShowHeader: true,
		ShowEdge:   true,
		PadX:       1,
	}
	for _, h := range headers {
		t.AddColumn(&Column{Header: h})
	}
	return t
}

// NewGrid returns a borderless, headerless table for aligning content.
// padX blank cells separate adjacent columns.
func NewGrid(columns int, padX int) *Table {
	t := &Table{PadX: padX}
	for i := 0; i < columns; i++ {
		t.AddColumn(&Column{})
	}
	return t
}

// AddColumn appends a column, back-filling empty cells for existing rows
func (t *Table) AddColumn(c *Column) *Table {
	for len(c.cells) < t.rows {
		c.cells = append(c.cells, Plain(""))
	}
	t.Columns = append(t.Columns, c)
	return t
}

// AddRow appends a row of markup strings
func (t *Table) AddRow(cells ...string) *Table {
	rs := make([]render.Renderable, len(cells))
	for i, c := range cells {
		rs[i] = Markup(c)
	}
	return t.AddRenderables(rs...)
}

// AddRenderables appends a row of renderables. Missing cells are blank;
// extra cells get new columns.
func (t *Table) AddRenderables(cells ...render.Renderable) *Table {
	for len(t.Columns) < len(cells) {
		t.AddColumn(&Column{})
	}
	for i, c := range t.Columns {
		var cell render.Renderable = Plain("")
		if i < len(cells) && cells[i] != nil {
			cell = cells[i]
		}
		c.cells = append(c.cells, cell)
	}
	t.rows++
	return t
}

// RowCount is the number of body rows
func (t *Table) RowCount() int { return t.rows }

func (t *Table) hasBox() bool { return t.Box != nil }

// extraWidth is the width taken by borders
func (t *Table) extraWidth() int {
	if !t.hasBox() || len(t.Columns) == 0 {
		return 0
	}
	w := len(t.Columns) - 1
	if t.ShowEdge {
		w += 2
	}
	return w
}

func (t *Table) padding(i int) int {
	if t.hasBox() {
		return 2 * t.PadX
	}
	// grids only separate columns
	left, right := t.PadX, t.PadX
	if i == 0 {
		left = 0
	}
	if i == len(t.Columns)-1 {
		right = 0
	}
	return left + right
}

func (t *Table) cellPadding(i int) (left, right int) {
	if t.hasBox() {
		return t.PadX, t.PadX
	}
	left, right = t.PadX, t.PadX
	if i == 0 {
		left = 0
	}
	if i == len(t.Columns)-1 {
		right = 0
	}
	return left, right
}

func (t *Table) columnCells(c *Column) []render.Renderable {
	var out []render.Renderable
	if t.ShowHeader {
		out = append(out, Markup(c.Header))
	}
	out = append(out, c.cells...)
	if t.ShowFooter {
		out = append(out, Markup(c.Footer))
	}
	return out
}

// measureColumn returns the column's width range including padding
func (t *Table) measureColumn(opts render.Options, i int, maxWidth int) render.Measurement {
	c := t.Columns[i]
	pad := t.padding(i)
	if c.Width > 0 {
		w := c.Width + pad
		return render.Measurement{Min: w, Max: w}
	}
	avail := max(maxWidth-pad, 1)
	var m render.Measurement
	cellOpts := opts
	cellOpts.NoWrap = c.NoWrap
	for _, cell := range t.columnCells(c) {
		cm := render.MeasureOf(cell, cellOpts, avail)
		m.Min = max(m.Min, cm.Min)
		m.Max = max(m.Max, cm.Max)
	}
	if c.MinWidth > 0 {
		m.Min = max(m.Min, c.MinWidth)
		m.Max = max(m.Max, c.MinWidth)
	}
	if c.MaxWidth > 0 {
		m.Min = min(m.Min, c.MaxWidth)
		m.Max = min(m.Max, c.MaxWidth)
	}
	return render.Measurement{Min: m.Min + pad, Max: max(m.Max, 1) + pad}
}

// columnWidths lays the columns out in maxWidth cells, borders excluded
func (t *Table) columnWidths(opts render.Options, maxWidth int) []int {
	n := len(t.Columns)
	natural := make([]int, n)
	floors := make([]int, n)
	wrappable := false
	for i, c := range t.Columns {
		m := t.measureColumn(opts, i, maxWidth)
		natural[i] = m.Max
		floors[i] = 1
		if c.Width > 0 || c.NoWrap {
			floors[i] = m.Max
		} else {
			wrappable = true
		}
	}
	widths := append([]int(nil), natural...)

	if sum(widths) > maxWidth {
		if wrappable {
			widths = ShrinkWidths(widths, floors, maxWidth)
		}
		if sum(widths) > maxWidth {
			widths = ShrinkWidths(widths, nil, maxWidth)
		}
		// cells may need less than they were given once wrapped
		shrunk := make([]int, n)
		for i := range t.Columns {
			m := t.measureColumn(opts, i, widths[i])
			shrunk[i] = min(widths[i], max(m.Max, 1))
		}
		widths = giveBack(shrunk, natural, maxWidth-sum(shrunk))
	}

	if spare := maxWidth - sum(widths); spare > 0 && (t.Expand || t.Width > 0) {
		ratios := make([]int, n)
		flexible := false
		for i, c := range t.Columns {
			if c.Ratio > 0 {
				ratios[i] = c.Ratio
				flexible = true
			}
		}
		if !flexible {
			copy(ratios, widths)
		}
		for i, extra := range ratioDistribute(spare, ratios, nil) {
			widths[i] += extra
		}
	}
	return widths
}

// giveBack hands freed cells to columns still short of their natural width
func giveBack(widths, natural []int, free int) []int {
	for free > 0 {
		ratios := make([]int, len(widths))
		want := 0
		for i := range widths {
			if d := natural[i] - widths[i]; d > 0 {
				ratios[i] = d
				want += d
			}
		}
		if want == 0 {
			return widths
		}
		give := min(free, want)
		parts := ratioDistribute(give, ratios, nil)
		for i, p := range parts {
			p = min(p, natural[i]-widths[i])
			widths[i] += p
			free -= p
		}
	}
	return widths
}

func (t *Table) targetWidth(maxWidth int) int {
	if t.Width > 0 {
		return min(t.Width, maxWidth)
	}
	return maxWidth
}

func (t *Table) Measure(opts render.Options, maxWidth int) render.Measurement {
	if len(t.Columns) == 0 {
		return render.Measurement{}
	}
	target := t.targetWidth(maxWidth)
	extra := t.extraWidth()
	inner := max(target-extra, len(t.Columns))
	if t.Width > 0 {
		return render.Measurement{Min: target, Max: target}
	}
	var m render.Measurement
	for i := range t.Columns {
		cm := t.measureColumn(opts, i, inner)
		m.Min += cm.Min
		m.Max += cm.Max
	}
	m.Min += extra
	m.Max += extra
	if t.Expand {
		m.Max = maxWidth
	}
	return m.WithMaximum(maxWidth)
}

type tableRow struct {
	cells []render.Renderable
	style style.Style
	kind  rowKind
}

type rowKind uint8

const (
	rowHeader rowKind = iota
	rowBody
	rowFooter
)

func (t *Table) Render(opts render.Options) []segment.Segment {
	if len(t.Columns) == 0 {
		return []segment.Segment{segment.Newline}
	}
	b := t.Box.Substitute(opts)
	if b != nil && !t.ShowHeader {
		b = b.PlainHeaded()
	}
	tableStyle := opts.ResolveStyle(t.Style)
	opts = opts.WithStyle(tableStyle)
	borderDef := t.BorderStyle
	if borderDef == "" {
		borderDef = "table.border"
	}
	border := style.Combine(opts.Style, opts.ResolveStyle(borderDef))

	target := t.targetWidth(opts.Width)
	extra := t.extraWidth()
	widths := t.columnWidths(opts, max(target-extra, len(t.Columns)))
	tableWidth := sum(widths) + extra

	var out []segment.Segment
	if t.Title != "" {
		out = append(out, t.caption(t.Title, "table.title", tableWidth, opts)...)
	}

	rows := t.collectRows(opts)
	edgeLine := func(r box.Row) {
		if b == nil {
			return
		}
		out = append(out, segment.Segment{Text: b.Line(r, widths, t.ShowEdge), Style: border}, segment.Newline)
	}

	if b != nil && t.ShowEdge {
		edgeLine(box.RowTop)
	}
	for ri, row := range rows {
		var e box.Edge
		if b != nil {
			switch row.kind {
			case rowHeader:
				e = b.Head
			case rowFooter:
				e = b.Foot
			default:
				e = b.Mid
			}
		}
		out = append(out, t.renderRow(row, widths, e, b != nil, border, opts)...)

		if ri == len(rows)-1 || b == nil {
			continue
		}
		next := rows[ri+1]
		switch {
		case row.kind == rowHeader:
			edgeLine(box.RowHeadRow)
		case next.kind == rowFooter:
			edgeLine(box.RowFootRow)
		case t.ShowLines:
			edgeLine(box.RowRow)
		}
	}
	if b != nil && t.ShowEdge {
		edgeLine(box.RowBottom)
	}

	if t.Caption != "" {
		out = append(out, t.caption(t.Caption, "table.caption", tableWidth, opts)...)
	}
	return cropLines(out, opts.Width)
}

func (t *Table) collectRows(opts render.Options) []tableRow {
	var rows []tableRow
	if t.ShowHeader {
		r := tableRow{kind: rowHeader, style: opts.ResolveStyle(firstNonEmpty(t.HeaderStyle, "table.header"))}
		for _, c := range t.Columns {
			r.cells = append(r.cells, Markup(c.Header))
		}
		rows = append(rows, r)
	}
	for i := 0; i < t.rows; i++ {
		r := tableRow{kind: rowBody}
		if len(t.RowStyles) > 0 {
			r.style = opts.ResolveStyle(t.RowStyles[i%len(t.RowStyles)])
		}
		for _, c := range t.Columns {
			r.cells = append(r.cells, c.cells[i])
		}
		rows = append(rows, r)
	}
	if t.ShowFooter {
		r := tableRow{kind: rowFooter, style: opts.ResolveStyle(firstNonEmpty(t.FooterStyle, "table.footer"))}
		for _, c := range t.Columns {
			r.cells = append(r.cells, Markup(c.Footer))
		}
		rows = append(rows, r)
	}
	return rows
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}

// renderRow renders each cell at its column width, pads all of them to
// the tallest and stitches the lines together between the edge glyphs.
func (t *Table) renderRow(row tableRow, widths []int, e box.Edge, boxed bool, border style.Style, opts render.Options) []segment.Segment {
	cellLines := make([][]segment.Line, len(t.Columns))
	cellStyles := make([]style.Style, len(t.Columns))
	height := 1
	for i, c := range t.Columns {
		colStyle := opts.ResolveStyle(c.Style)
		switch row.kind {
		case rowHeader:
			colStyle = style.Combine(colStyle, opts.ResolveStyle(c.HeaderStyle))
		case rowFooter:
			colStyle = style.Combine(colStyle, opts.ResolveStyle(c.FooterStyle))
		}
		cellStyle := style.Combine(row.style, colStyle)
		cellStyles[i] = style.Combine(opts.Style, cellStyle)

		left, right := t.cellPadding(i)
		cellOpts := opts.WithWidth(widths[i] - left - right).WithStyle(cellStyle).WithJustify(c.Justify).WithOverflow(c.Overflow)
		cellOpts.Height = 0
		cellOpts.NoWrap = c.NoWrap
		lines := render.Lines(row.cells[i], cellOpts)
		cellLines[i] = lines
		height = max(height, len(lines))
	}

	for i, c := range t.Columns {
		left, right := t.cellPadding(i)
		w := widths[i] - left - right
		bg := cellStyles[i].BackgroundOnly()
		lines := cellLines[i]
		gap := height - len(lines)
		if gap > 0 {
			top := 0
			switch c.Vertical {
			case render.VAlignMiddle:
				top = gap / 2
			case render.VAlignBottom:
				top = gap
			}
			padded := make([]segment.Line, 0, height)
			for j := 0; j < top; j++ {
				padded = append(padded, blankLine(w, bg))
			}
			padded = append(padded, lines...)
			for len(padded) < height {
				padded = append(padded, blankLine(w, bg))
			}
			lines = padded
		}
		for j, l := range lines {
			cell := make(segment.Line, 0, len(l)+2)
			if left > 0 {
				cell = append(cell, blank(left, bg))
			}
			cell = append(cell, l...)
			if right > 0 {
				cell = append(cell, blank(right, bg))
			}
			lines[j] = segment.CropLine(cell, widths[i])
		}
		cellLines[i] = lines
	}

	var out []segment.Segment
	for y := 0; y < height; y++ {
		if boxed && t.ShowEdge {
			out = append(out, segment.Segment{Text: e.Left, Style: border})
		}
		for i := range t.Columns {
			out = append(out, cellLines[i][y]...)
			if boxed && i < len(t.Columns)-1 {
				out = append(out, segment.Segment{Text: e.Divider, Style: border})
			}
		}
		if boxed && t.ShowEdge {
			out = append(out, segment.Segment{Text: e.Right, Style: border})
		}
		out = append(out, segment.Newline)
	}
	return out
}

func (t *Table) caption(source, def string, width int, opts render.Options) []segment.Segment {
	txt := markupToText(source, opts)
	txt.Style = style.Combine(opts.ResolveStyle(def), txt.Style)
	txt.Justify = render.JustifyCenter
	return txt.Render(opts.WithWidth(min(width, opts.Width)))
}
