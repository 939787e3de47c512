package markup

import (
	"strings"
	"sync"

	"github.com/arthur-debert/tinta/pkg/errors"
	"github.com/arthur-debert/tinta/pkg/render"
	"github.com/arthur-debert/tinta/pkg/segment"
	"github.com/arthur-debert/tinta/pkg/style"
	"github.com/arthur-debert/tinta/pkg/text"
)

// NodeKind identifies what a tree node holds
type NodeKind uint8

const (
	// NodeBlock groups children without styling them; the root is a block
	NodeBlock NodeKind = iota
	// NodeText is a leaf of literal text
	NodeText
	// NodeStyle applies Style to its children
	NodeStyle
)

// Node is an entry in a Tree's arena. Children index into Tree.Nodes.
type Node struct {
	Kind     NodeKind
	Text     string
	Tag      string
	Style    style.Style
	Children []int
	Pos      int
}

// Tree is a parsed markup document. Nodes[0] is the root block.
// A Tree is a render.Renderable; it renders as the equivalent styled text.
type Tree struct {
	Nodes []Node

	once sync.Once
	txt  *text.Text
}

type config struct {
	theme *style.Theme
}

// Option customizes parsing
type Option func(*config)

// WithTheme resolves style names in tags against theme instead of the
// default theme
func WithTheme(theme *style.Theme) Option {
	return func(c *config) {
		if theme != nil {
			c.theme = theme
		}
	}
}

func newConfig(opts []Option) *config {
	c := &config{theme: style.DefaultTheme()}
	for _, o := range opts {
		o(c)
	}
	return c
}

// Parse builds a Tree from source
func Parse(source string, opts ...Option) (*Tree, error) {
	cfg := newConfig(opts)
	tokens, err := Tokenize(source)
	if err != nil {
		return nil, err
	}

	tree := &Tree{Nodes: []Node{{Kind: NodeBlock}}}
	stack := []int{0}
	add := func(n Node) int {
		idx := len(tree.Nodes)
		tree.Nodes = append(tree.Nodes, n)
		parent := stack[len(stack)-1]
		tree.Nodes[parent].Children = append(tree.Nodes[parent].Children, idx)
		return idx
	}

	for _, tok := range tokens {
		switch tok.Kind {
		case TokenText:
			add(Node{Kind: NodeText, Text: tok.Value, Pos: tok.Pos})

		case TokenOpen:
			st, err := cfg.theme.Lookup(tok.Value)
			if err != nil {
				return nil, errors.Wrapf(err, errors.ErrMarkupSyntax, "unknown directive [%s] at position %d", tok.Value, tok.Pos).
					WithDetail("position", tok.Pos).
					WithDetail("tag", tok.Value)
			}
			idx := add(Node{Kind: NodeStyle, Tag: tok.Value, Style: st, Pos: tok.Pos})
			stack = append(stack, idx)

		case TokenClose:
			if len(stack) == 1 {
				return nil, errors.Newf(errors.ErrMarkupSyntax, "closing tag [/%s] at position %d has nothing to close", tok.Value, tok.Pos).
					WithDetail("position", tok.Pos).
					WithDetail("tag", tok.Value)
			}
			open := tree.Nodes[stack[len(stack)-1]]
			if tok.Value != "" && !sameTag(tok.Value, open.Tag) {
				return nil, errors.Newf(errors.ErrMarkupSyntax,
					"closing tag [/%s] at position %d doesn't match open tag [%s] at position %d",
					tok.Value, tok.Pos, open.Tag, open.Pos).
					WithDetail("position", tok.Pos).
					WithDetail("tag", tok.Value).
					WithDetail("open_tag", open.Tag)
			}
			stack = stack[:len(stack)-1]
		}
	}

	if len(stack) > 1 {
		open := tree.Nodes[stack[len(stack)-1]]
		return nil, errors.Newf(errors.ErrMarkupSyntax, "tag [%s] at position %d is never closed", open.Tag, open.Pos).
			WithDetail("position", open.Pos).
			WithDetail("tag", open.Tag)
	}
	return tree, nil
}

func sameTag(a, b string) bool {
	return strings.EqualFold(strings.Join(strings.Fields(a), " "), strings.Join(strings.Fields(b), " "))
}

// Text flattens the tree into styled text, combining each run's style
// with every enclosing tag over base.
func (t *Tree) Text(base style.Style) *text.Text {
	out := text.New("", style.Null)
	if len(t.Nodes) == 0 {
		return out
	}

	type frame struct {
		node  int
		next  int
		style style.Style
	}
	stack := []frame{{node: 0, style: base}}
	for len(stack) > 0 {
		top := &stack[len(stack)-1]
		n := &t.Nodes[top.node]
		if top.next >= len(n.Children) {
			stack = stack[:len(stack)-1]
			continue
		}
		child := n.Children[top.next]
		top.next++

		c := &t.Nodes[child]
		switch c.Kind {
		case NodeText:
			out.Append(c.Text, top.style)
		default:
			stack = append(stack, frame{node: child, style: style.Combine(top.style, c.Style)})
		}
	}
	return out
}

// Plain returns the text content with all tags removed
func (t *Tree) Plain() string {
	var b strings.Builder
	for _, n := range t.Nodes {
		if n.Kind == NodeText {
			b.WriteString(n.Text)
		}
	}
	return b.String()
}

func (t *Tree) rendered() *text.Text {
	t.once.Do(func() { t.txt = t.Text(style.Null) })
	return t.txt
}

// Measure implements render.Renderable
func (t *Tree) Measure(opts render.Options, maxWidth int) render.Measurement {
	return t.rendered().Measure(opts, maxWidth)
}

// Render implements render.Renderable
func (t *Tree) Render(opts render.Options) []segment.Segment {
	return t.rendered().Render(opts)
}

// Render parses source and returns the styled text it describes
func Render(source string, opts ...Option) (*text.Text, error) {
	tree, err := Parse(source, opts...)
	if err != nil {
		return nil, err
	}
	return tree.Text(style.Null), nil
}

// MustRender is like Render but panics on malformed markup
func MustRender(source string, opts ...Option) *text.Text {
	t, err := Render(source, opts...)
	if err != nil {
		panic(err)
	}
	return t
}

// Strip returns the text content of source without tags
func Strip(source string) (string, error) {
	tree, err := Parse(source)
	if err != nil {
		return "", err
	}
	return tree.Plain(), nil
}

var escaper = strings.NewReplacer("[", "[[", "]", "]]")

// Escape doubles every bracket so s renders literally
func Escape(s string) string {
	return escaper.Replace(s)
}
