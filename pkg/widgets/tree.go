package widgets

import (
	"github.com/arthur-debert/tinta/pkg/cells"
	"github.com/arthur-debert/tinta/pkg/render"
	"github.com/arthur-debert/tinta/pkg/segment"
	"github.com/arthur-debert/tinta/pkg/style"
)

// Guide glyph sets: blank, continuation, branch, last branch
var (
	GuidesASCII   = [4]string{"    ", "|   ", "+-- ", "`-- "}
	GuidesUnicode = [4]string{"    ", "│   ", "├── ", "└── "}
	GuidesBold    = [4]string{"    ", "┃   ", "┣━━ ", "┗━━ "}
	GuidesDouble  = [4]string{"    ", "║   ", "╠══ ", "╚══ "}
)

const (
	guideSpace = iota
	guideContinue
	guideFork
	guideEnd
)

// Tree is a labelled hierarchy drawn with guide lines
type Tree struct {
	Label    render.Renderable
	Children []*Tree
	Style    string
	// GuideStyle colors the guide lines; defaults to "tree.line"
	GuideStyle string
	Guides     *[4]string
	Collapsed  bool
	HideRoot   bool
}

// NewTree returns a tree with a markup label
func NewTree(label string) *Tree {
	return &Tree{Label: Markup(label)}
}

// Add appends a child with a markup label and returns it
func (t *Tree) Add(label string) *Tree {
	return t.AddNode(&Tree{Label: Markup(label)})
}

// AddNode appends child and returns it
func (t *Tree) AddNode(child *Tree) *Tree {
	t.Children = append(t.Children, child)
	return child
}

func (t *Tree) guides(opts render.Options) [4]string {
	if t.Guides != nil {
		return *t.Guides
	}
	if opts.ASCIIOnly {
		return GuidesASCII
	}
	return GuidesUnicode
}

type treeFrame struct {
	node  *Tree
	next  int
	depth int
}

func (t *Tree) Measure(opts render.Options, maxWidth int) render.Measurement {
	var m render.Measurement
	stack := []treeFrame{{node: t}}
	first := true
	for len(stack) > 0 {
		var n *Tree
		depth := 0
		if first {
			n, first = t, false
		} else {
			top := &stack[len(stack)-1]
			if top.node.Collapsed || top.next >= len(top.node.Children) {
				stack = stack[:len(stack)-1]
				continue
			}
			n = top.node.Children[top.next]
			top.next++
			depth = top.depth + 1
			stack = append(stack, treeFrame{node: n, depth: depth})
		}
		indent := depth * 4
		if t.HideRoot {
			if n == t {
				continue
			}
			indent -= 4
		}
		lm := render.MeasureOf(n.Label, opts, max(maxWidth-indent, 1))
		m.Min = max(m.Min, lm.Min+indent)
		m.Max = max(m.Max, lm.Max+indent)
	}
	return m.WithMaximum(maxWidth)
}

// Render walks the tree depth first with an explicit stack. A node's
// prefix holds one guide per ancestor level, ending with its own branch.
func (t *Tree) Render(opts render.Options) []segment.Segment {
	g := t.guides(opts)
	guideDef := t.GuideStyle
	if guideDef == "" {
		guideDef = "tree.line"
	}
	guideStyle := style.Combine(opts.Style, opts.ResolveStyle(guideDef))

	type item struct {
		node   *Tree
		prefix []int
	}
	var out []segment.Segment
	stack := []item{{node: t}}
	for len(stack) > 0 {
		it := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if !(t.HideRoot && it.node == t) {
			prefix := it.prefix
			if t.HideRoot {
				prefix = prefix[1:]
			}
			out = append(out, t.renderNode(it.node, prefix, g, guideStyle, opts)...)
		}
		if it.node.Collapsed {
			continue
		}

		kids := it.node.Children
		for i := len(kids) - 1; i >= 0; i-- {
			prefix := make([]int, 0, len(it.prefix)+1)
			for _, p := range it.prefix {
				prefix = append(prefix, continuation(p))
			}
			if i == len(kids)-1 {
				prefix = append(prefix, guideEnd)
			} else {
				prefix = append(prefix, guideFork)
			}
			stack = append(stack, item{node: kids[i], prefix: prefix})
		}
	}
	return out
}

func continuation(guide int) int {
	if guide == guideFork || guide == guideContinue {
		return guideContinue
	}
	return guideSpace
}

func (t *Tree) renderNode(n *Tree, prefix []int, g [4]string, guideStyle style.Style, opts render.Options) []segment.Segment {
	indent := 0
	for _, p := range prefix {
		indent += cells.Len(g[p])
	}
	labelOpts := opts.WithWidth(opts.Width - indent).WithStyle(opts.ResolveStyle(n.Style))
	labelOpts.Height = 0
	lines := render.Lines(n.Label, labelOpts)

	var out []segment.Segment
	for i, l := range lines {
		var row segment.Line
		for j, p := range prefix {
			if i > 0 && j == len(prefix)-1 {
				p = continuation(p)
			}
			row = append(row, segment.Segment{Text: g[p], Style: guideStyle})
		}
		row = append(row, l...)
		out = append(out, segment.CropLine(row, opts.Width)...)
		out = append(out, segment.Newline)
	}
	return out
}
