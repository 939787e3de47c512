package cli

import (
	"encoding/csv"
	"strings"
	"unicode/utf8"

	"github.com/spf13/cobra"

	"github.com/arthur-debert/tinta/pkg/errors"
	"github.com/arthur-debert/tinta/pkg/markup"
	"github.com/arthur-debert/tinta/pkg/render"
	"github.com/arthur-debert/tinta/pkg/widgets"
)

type tableFlags struct {
	noHeader  bool
	delimiter string
	boxName   string
	title     string
	caption   string
	lines     bool
	expand    bool
	markup    bool
	justify   []string
}

// buildTable turns CSV records into a table. The first record is the
// header unless noHeader is set.
func buildTable(source string, f tableFlags) (*widgets.Table, error) {
	r := csv.NewReader(strings.NewReader(source))
	r.FieldsPerRecord = -1
	r.TrimLeadingSpace = true
	if f.delimiter != "" {
		d, size := utf8.DecodeRuneInString(f.delimiter)
		if size != len(f.delimiter) {
			return nil, errors.Newf(errors.ErrInvalidInput, "delimiter must be a single character, got %q", f.delimiter)
		}
		r.Comma = d
	}
	records, err := r.ReadAll()
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrInvalidInput, "invalid CSV input")
	}
	if len(records) == 0 {
		return nil, errors.New(errors.ErrInvalidInput, "no rows in input")
	}

	b, err := lookupBox(f.boxName)
	if err != nil {
		return nil, err
	}
	t := widgets.NewTable()
	t.Box = b
	t.Title = f.title
	t.Caption = f.caption
	t.ShowLines = f.lines
	t.Expand = f.expand

	cell := widgets.Plain
	if f.markup {
		cell = widgets.Markup
	}
	if f.noHeader {
		t.ShowHeader = false
	} else {
		for _, h := range records[0] {
			if !f.markup {
				h = markup.Escape(h)
			}
			t.AddColumn(&widgets.Column{Header: h})
		}
		records = records[1:]
	}
	for _, rec := range records {
		cells := make([]render.Renderable, len(rec))
		for i, v := range rec {
			cells[i] = cell(v)
		}
		t.AddRenderables(cells...)
	}
	for i, j := range f.justify {
		if i < len(t.Columns) {
			t.Columns[i].Justify = render.ParseJustify(j)
		}
	}
	return t, nil
}

func newTableCmd(g *globals) *cobra.Command {
	var f tableFlags
	cmd := &cobra.Command{
		Use:     "table [file.csv]",
		Short:   MsgTableShort,
		GroupID: "render",
		Args:    cobra.MaximumNArgs(1),
		Example: tableExample,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, _, err := g.console(cmd)
			if err != nil {
				return err
			}
			source, err := fileInput(cmd, firstArg(args))
			if err != nil {
				return err
			}
			t, err := buildTable(source, f)
			if err != nil {
				return err
			}
			return c.Println(t)
		},
	}
	flags := cmd.Flags()
	flags.BoolVar(&f.noHeader, "no-header", false, "Treat the first row as data")
	flags.StringVarP(&f.delimiter, "delimiter", "d", ",", "Field separator")
	flags.StringVar(&f.boxName, "box", "heavy_head", "Border style")
	flags.StringVar(&f.title, "title", "", "Markup title above the table")
	flags.StringVar(&f.caption, "caption", "", "Markup caption below the table")
	flags.BoolVar(&f.lines, "lines", false, "Draw a line between rows")
	flags.BoolVar(&f.expand, "expand", false, "Stretch the table to the full width")
	flags.BoolVar(&f.markup, "markup", false, "Parse cells as markup")
	flags.StringSliceVar(&f.justify, "justify", nil, "Per-column alignment, e.g. left,right,center")
	return cmd
}
