package widgets

import (
	"strings"
	"testing"

	"github.com/arthur-debert/tinta/pkg/box"
	"github.com/arthur-debert/tinta/pkg/color"
	"github.com/arthur-debert/tinta/pkg/render"
	"github.com/arthur-debert/tinta/pkg/segment"
	"github.com/arthur-debert/tinta/pkg/style"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testOptions(width int) render.Options {
	return render.Options{
		Width:       width,
		Theme:       style.DefaultTheme(),
		ColorSystem: color.TrueColor,
		Encoding:    "utf-8",
		IsTerminal:  true,
	}
}

// renderLines renders r and returns each line's plain text
func renderLines(r render.Renderable, opts render.Options) []string {
	lines := segment.SplitLines(r.Render(opts))
	out := make([]string, len(lines))
	for i, l := range lines {
		out[i] = l.Plain()
	}
	return out
}

func trimmed(lines []string) []string {
	out := make([]string, len(lines))
	for i, l := range lines {
		out[i] = strings.TrimRight(l, " ")
	}
	return out
}

func TestPadding(t *testing.T) {
	got := renderLines(Pad(Markup("x"), 1, 2), testOptions(6))
	assert.Equal(t, []string{"      ", "  x   ", "      "}, got)
}

func TestAlign(t *testing.T) {
	assert.Equal(t, []string{"  ab  "}, renderLines(Center(Markup("ab")), testOptions(6)))
	assert.Equal(t, []string{"    ab"}, renderLines(Right(Markup("ab")), testOptions(6)))
	assert.Equal(t, []string{"ab    "}, renderLines(Left(Markup("ab")), testOptions(6)))

	a := Center(Markup("ab"))
	a.Vertical = render.VAlignMiddle
	a.Height = 3
	assert.Equal(t, []string{"      ", "  ab  ", "      "}, renderLines(a, testOptions(6)))
}

func TestConstrain(t *testing.T) {
	c := &Constrain{Child: Markup("one two three"), Width: 7}
	assert.Equal(t, render.Measurement{Min: 5, Max: 7}, c.Measure(testOptions(40), 40))
	assert.Equal(t, []string{"one two", "three"}, renderLines(c, testOptions(40)))
}

func TestGroup(t *testing.T) {
	g := NewGroup(Markup("a"), Markup("bbb"))
	assert.Equal(t, render.Measurement{Min: 3, Max: 3}, g.Measure(testOptions(10), 10))
	assert.Equal(t, []string{"a", "bbb"}, renderLines(g, testOptions(10)))
}

func TestRule(t *testing.T) {
	assert.Equal(t, []string{"─────"}, renderLines(NewRule(""), testOptions(5)))
	assert.Equal(t, []string{"──────── Hi ────────"}, renderLines(NewRule("Hi"), testOptions(20)))

	left := &Rule{Title: "Hi", Align: render.JustifyLeft}
	assert.Equal(t, []string{"Hi ───────"}, renderLines(left, testOptions(10)))

	opts := testOptions(4)
	opts.ASCIIOnly = true
	assert.Equal(t, []string{"----"}, renderLines(NewRule(""), opts))
}

func TestPanel(t *testing.T) {
	t.Run("expanded", func(t *testing.T) {
		got := renderLines(NewPanel(Markup("hi")), testOptions(10))
		assert.Equal(t, []string{"╭────────╮", "│ hi     │", "╰────────╯"}, got)
	})

	t.Run("fit_collapses_to_child", func(t *testing.T) {
		got := renderLines(Fit(Markup("hi")), testOptions(40))
		assert.Equal(t, []string{"╭────╮", "│ hi │", "╰────╯"}, got)
	})

	t.Run("title", func(t *testing.T) {
		p := NewPanel(Markup("x"))
		p.Title = "T"
		got := renderLines(p, testOptions(12))
		assert.Equal(t, "╭─── T ────╮", got[0])
	})

	t.Run("content_width", func(t *testing.T) {
		p := NewPanel(Markup(strings.Repeat("word ", 10)))
		p.PadX = 2
		p.Box = box.Square
		for _, l := range renderLines(p, testOptions(20))[1:3] {
			inner := strings.TrimSuffix(strings.TrimPrefix(l, "│  "), "  │")
			assert.Len(t, []rune(inner), 20-2-4)
		}
	})

	t.Run("ascii_substitution", func(t *testing.T) {
		opts := testOptions(6)
		opts.ASCIIOnly = true
		got := renderLines(NewPanel(Markup("x")), opts)
		assert.Equal(t, []string{"+----+", "| x  |", "+----+"}, got)
	})

	t.Run("no_box", func(t *testing.T) {
		p := NewPanel(Markup("x"))
		p.Box = box.None
		assert.Equal(t, []string{"      ", "  x   ", "      "}, renderLines(p, testOptions(6)))
	})
}

func TestTree(t *testing.T) {
	root := NewTree("root")
	a := root.Add("a")
	a.Add("a1")
	root.Add("b")

	got := trimmed(renderLines(root, testOptions(20)))
	assert.Equal(t, []string{"root", "├── a", "│   └── a1", "└── b"}, got)

	assert.Equal(t, render.Measurement{Min: 10, Max: 10}, root.Measure(testOptions(20), 20))

	root.HideRoot = true
	got = trimmed(renderLines(root, testOptions(20)))
	assert.Equal(t, []string{"a", "└── a1", "b"}, got)

	root.HideRoot = false
	a.Collapsed = true
	got = trimmed(renderLines(root, testOptions(20)))
	assert.Equal(t, []string{"root", "├── a", "└── b"}, got)
}

func TestTreeASCIIGuides(t *testing.T) {
	root := NewTree("r")
	root.Add("x")
	root.Add("y")
	opts := testOptions(10)
	opts.ASCIIOnly = true
	assert.Equal(t, []string{"r", "+-- x", "`-- y"}, trimmed(renderLines(root, opts)))
}

func TestColumns(t *testing.T) {
	c := NewColumns(Markup("a"), Markup("bb"), Markup("ccc"), Markup("dd"))
	assert.Equal(t, []string{"a   bb ", "ccc dd "}, renderLines(c, testOptions(10)))

	c.ColumnFirst = true
	assert.Equal(t, []string{"a   ccc", "bb  dd "}, renderLines(c, testOptions(10)))
}

func TestProgressBar(t *testing.T) {
	bar := &ProgressBar{Total: 10, Completed: 5, Width: 10}
	assert.Equal(t, []string{"━━━━━╺━━━━"}, renderLines(bar, testOptions(40)))
	assert.InDelta(t, 50.0, bar.Percentage(), 0.001)

	bar.Completed = 5.5
	assert.Equal(t, []string{"━━━━━╸━━━━"}, renderLines(bar, testOptions(40)))

	bar.Completed = 10
	segs := bar.Render(testOptions(40))
	require.NotEmpty(t, segs)
	assert.Equal(t, strings.Repeat("━", 10), segs[0].Text)
	finished, _ := style.DefaultTheme().Get("bar.finished")
	assert.Equal(t, finished, segs[0].Style)

	assert.Equal(t, render.Measurement{Min: 10, Max: 10}, bar.Measure(testOptions(40), 40))
	free := NewProgressBar(1)
	assert.Equal(t, render.Measurement{Min: 4, Max: 40}, free.Measure(testOptions(40), 40))
}

func TestProgressBarPulse(t *testing.T) {
	for _, sys := range []color.System{color.TrueColor, color.Standard, color.NoColor} {
		opts := testOptions(30)
		opts.ColorSystem = sys
		bar := &ProgressBar{Pulse: true, AnimationTime: 1500000000}
		lines := segment.SplitLines(bar.Render(opts))
		require.Len(t, lines, 1)
		assert.Equal(t, 30, lines[0].CellLen(), sys.String())
	}
}

func TestWidthContainment(t *testing.T) {
	table := NewTable("Name", "Description")
	table.AddRow("alpha", "the first letter of the greek alphabet")
	table.AddRow("omega", "the [bold]last[/] one")
	table.Title = "Letters"

	tree := NewTree("root")
	tree.Add("a child with a long label that wraps").Add("grandchild")

	panel := NewPanel(table)
	panel.Title = "A rather long panel title"

	widgets := map[string]render.Renderable{
		"panel":    panel,
		"table":    table,
		"tree":     tree,
		"columns":  NewColumns(Markup("one"), Markup("two"), Markup("three")),
		"rule":     NewRule("section"),
		"padding":  Pad(Markup("padded text here"), 1, 3),
		"align":    Center(Markup("centered")),
		"progress": NewProgressBar(3),
		"grid":     NewGrid(2, 1).AddRow("left cell", "right cell"),
	}
	for name, w := range widgets {
		for width := 1; width <= 50; width++ {
			opts := testOptions(width)
			m := render.MeasureOf(w, opts, width)
			assert.LessOrEqual(t, m.Min, m.Max, "%s measure at %d", name, width)
			assert.LessOrEqual(t, m.Max, width, "%s measure at %d", name, width)
			for _, l := range segment.SplitLines(w.Render(opts)) {
				assert.LessOrEqual(t, l.CellLen(), width, "%s at width %d: %q", name, width, l.Plain())
			}
		}
	}
}
