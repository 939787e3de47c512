package box

import (
	"testing"

	"github.com/arthur-debert/tinta/pkg/cells"
	"github.com/arthur-debert/tinta/pkg/render"
	"github.com/stretchr/testify/assert"
)

func TestLines(t *testing.T) {
	widths := []int{3, 2}
	assert.Equal(t, "┌───┬──┐", Square.TopLine(widths, true))
	assert.Equal(t, "├───┼──┤", Square.Line(RowHeadRow, widths, true))
	assert.Equal(t, "└───┴──┘", Square.BottomLine(widths, true))
	assert.Equal(t, "───┬──", Square.TopLine(widths, false))
	assert.Equal(t, "+-----+", ASCII.TopLine([]int{5}, true))
}

func TestAllBoxesAreFourCellsWide(t *testing.T) {
	for _, b := range All {
		for _, e := range []Edge{b.Top, b.Head, b.HeadRow, b.Mid, b.Row, b.FootRow, b.Foot, b.Bottom} {
			assert.Equal(t, 4, cells.Len(e.Left+e.Fill+e.Divider+e.Right), b.Name)
		}
	}
}

func TestLookup(t *testing.T) {
	b, ok := Lookup("heavy_head")
	assert.True(t, ok)
	assert.Same(t, HeavyHead, b)

	b, ok = Lookup("none")
	assert.True(t, ok)
	assert.Nil(t, b)

	_, ok = Lookup("wavy")
	assert.False(t, ok)
}

func TestSubstitute(t *testing.T) {
	assert.Same(t, Rounded, Rounded.Substitute(render.Options{}))
	assert.Same(t, Square, Rounded.Substitute(render.Options{Legacy: true}))
	assert.Same(t, ASCII, Rounded.Substitute(render.Options{ASCIIOnly: true}))
	assert.Same(t, Markdown, Markdown.Substitute(render.Options{ASCIIOnly: true}))
	assert.Same(t, ASCII, Heavy.Substitute(render.Options{Encoding: "latin-1"}))
	assert.Same(t, Square, Square.Substitute(render.Options{Encoding: "utf-8"}))
	assert.Nil(t, None.Substitute(render.Options{ASCIIOnly: true}))
}

func TestEncodable(t *testing.T) {
	assert.True(t, Encodable(Square, "cp437"))
	assert.True(t, Encodable(Double, "cp437"))
	assert.False(t, Encodable(Rounded, "cp437"))
	assert.False(t, Encodable(Square, "latin-1"))
	assert.True(t, Encodable(Square, "some-unknown-encoding"))
}

func TestPlainHeaded(t *testing.T) {
	assert.Same(t, Square, HeavyHead.PlainHeaded())
	assert.Same(t, Rounded, Rounded.PlainHeaded())
}
