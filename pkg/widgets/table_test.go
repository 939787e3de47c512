package widgets

import (
	"strings"
	"testing"

	"github.com/arthur-debert/tinta/pkg/render"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestShrinkWidths(t *testing.T) {
	t.Run("proportional", func(t *testing.T) {
		assert.Equal(t, []int{12, 18, 30}, ShrinkWidths([]int{20, 30, 50}, nil, 60))
	})

	t.Run("floors_hold", func(t *testing.T) {
		got := ShrinkWidths([]int{10, 40, 50}, []int{10, 1, 1}, 50)
		assert.Equal(t, 10, got[0])
		assert.Equal(t, 50, got[0]+got[1]+got[2])
	})

	t.Run("below_floors", func(t *testing.T) {
		assert.Equal(t, []int{1, 1, 1}, ShrinkWidths([]int{20, 30, 50}, nil, 2))
		assert.Equal(t, []int{5, 1}, ShrinkWidths([]int{20, 30}, []int{5, 0}, 3))
	})

	t.Run("sums_to_target", func(t *testing.T) {
		cases := [][]int{
			{1, 1, 1, 97},
			{7, 3, 9, 2, 11},
			{50, 50},
			{3, 100, 4},
			{13, 17, 19, 23, 29, 31},
		}
		for _, widths := range cases {
			total := sum(widths)
			for target := len(widths); target < total; target++ {
				got := ShrinkWidths(widths, nil, target)
				require.Equal(t, target, sum(got), "%v -> %d", widths, target)
				for i, w := range got {
					assert.GreaterOrEqual(t, w, 1)
					assert.LessOrEqual(t, w, widths[i])
				}
			}
		}
	})
}

func TestRatioDistribute(t *testing.T) {
	assert.Equal(t, []int{4, 3, 3}, ratioDistribute(10, []int{1, 1, 1}, nil))
	assert.Equal(t, []int{0, 10}, ratioDistribute(10, []int{0, 1}, nil))
	assert.Equal(t, []int{3, 7}, ratioDistribute(10, []int{1, 3}, nil))
}

func TestTableScenarioShrink(t *testing.T) {
	grid := NewGrid(3, 0)
	grid.AddRow(strings.Repeat("a", 20), strings.Repeat("b", 30), strings.Repeat("c", 50))

	widths := grid.columnWidths(testOptions(60), 60)
	assert.Equal(t, []int{12, 18, 30}, widths)

	lines := renderLines(grid, testOptions(60))
	require.Len(t, lines, 2)
	assert.Equal(t, strings.Repeat("a", 12)+strings.Repeat("b", 18)+strings.Repeat("c", 30), lines[0])
}

func TestTableShrinkWithWrappingCells(t *testing.T) {
	grid := NewGrid(2, 0)
	grid.AddRow("aaaa aaaa aaaa aaaa", strings.Repeat("b", 30))

	widths := grid.columnWidths(testOptions(30), 30)
	assert.Equal(t, []int{12, 18}, widths)

	lines := renderLines(grid, testOptions(30))
	require.Len(t, lines, 2)
	assert.Equal(t, "aaaa aaaa   "+strings.Repeat("b", 18), lines[0])
}

func TestGiveBack(t *testing.T) {
	assert.Equal(t, []int{9, 21}, giveBack([]int{8, 20}, []int{10, 30}, 2))
	assert.Equal(t, []int{10, 25}, giveBack([]int{8, 20}, []int{10, 30}, 7))
	assert.Equal(t, []int{10, 30}, giveBack([]int{10, 30}, []int{10, 30}, 5))
}

func TestTableRender(t *testing.T) {
	table := NewTable("Name", "Qty")
	table.AddRow("apple", "3")

	got := renderLines(table, testOptions(40))
	assert.Equal(t, []string{
		"┏━━━━━━━┳━━━━━┓",
		"┃ Name  ┃ Qty ┃",
		"┡━━━━━━━╇━━━━━┩",
		"│ apple │ 3   │",
		"└───────┴─────┘",
	}, got)

	m := table.Measure(testOptions(40), 40)
	assert.Equal(t, render.Measurement{Min: 15, Max: 15}, m)
}

func TestTableOptions(t *testing.T) {
	t.Run("lines_and_footer", func(t *testing.T) {
		table := NewTable("A")
		table.Columns[0].Footer = "F"
		table.ShowFooter = true
		table.ShowLines = true
		table.AddRow("1")
		table.AddRow("2")

		got := renderLines(table, testOptions(20))
		assert.Equal(t, []string{
			"┏━━━┓",
			"┃ A ┃",
			"┡━━━┩",
			"│ 1 │",
			"├───┤",
			"│ 2 │",
			"├───┤",
			"│ F │",
			"└───┘",
		}, got)
	})

	t.Run("no_edge", func(t *testing.T) {
		table := NewTable("A", "B")
		table.ShowEdge = false
		table.AddRow("1", "2")
		got := renderLines(table, testOptions(20))
		assert.Equal(t, []string{" A ┃ B ", "━━━╇━━━", " 1 │ 2 "}, got)
	})

	t.Run("expand_by_ratio", func(t *testing.T) {
		table := NewGrid(2, 0)
		table.Expand = true
		table.Columns[0].Ratio = 1
		table.Columns[1].Ratio = 3
		table.AddRow("a", "b")
		assert.Equal(t, []int{6, 14}, table.columnWidths(testOptions(20), 20))
	})

	t.Run("justify_and_multiline_cells", func(t *testing.T) {
		table := NewGrid(2, 1)
		table.Columns[1].Justify = render.JustifyRight
		table.Columns[0].Width = 3
		table.AddRow("one two", "x")
		got := renderLines(table, testOptions(20))
		assert.Equal(t, []string{"one  x", "two   "}, got)
	})

	t.Run("title_and_caption", func(t *testing.T) {
		table := NewTable("Col")
		table.Title = "T"
		table.Caption = "C"
		table.AddRow("v")
		got := renderLines(table, testOptions(20))
		assert.Equal(t, "   T   ", got[0])
		assert.Equal(t, "   C   ", got[len(got)-1])
	})

	t.Run("ragged_rows", func(t *testing.T) {
		table := NewTable("A")
		table.AddRow("1", "2")
		require.Len(t, table.Columns, 2)
		assert.Equal(t, 1, table.RowCount())
	})
}
