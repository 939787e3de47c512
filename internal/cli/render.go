package cli

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/arthur-debert/tinta/pkg/box"
	"github.com/arthur-debert/tinta/pkg/errors"
	"github.com/arthur-debert/tinta/pkg/render"
	"github.com/arthur-debert/tinta/pkg/widgets"
)

func newPrintCmd(g *globals) *cobra.Command {
	var (
		noNewline bool
		justify   string
	)
	cmd := &cobra.Command{
		Use:     "print [markup...]",
		Short:   MsgPrintShort,
		GroupID: "render",
		Example: `  tinta print "[bold red]alert![/] something happened"
  echo "[i]from a pipe[/i]" | tinta print`,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, _, err := g.console(cmd)
			if err != nil {
				return err
			}
			source, err := input(cmd, args)
			if err != nil {
				return err
			}
			var obj any = source
			if justify != "" {
				obj = &widgets.Align{Child: widgets.Markup(source), Justify: render.ParseJustify(justify)}
			}
			if noNewline {
				return c.Print(obj)
			}
			return c.Println(obj)
		},
	}
	cmd.Flags().BoolVarP(&noNewline, "no-newline", "n", false, "Do not print a trailing newline")
	cmd.Flags().StringVarP(&justify, "justify", "j", "", "Align text: left, center or right")
	return cmd
}

func newRuleCmd(g *globals) *cobra.Command {
	var (
		character string
		align     string
		ruleStyle string
	)
	cmd := &cobra.Command{
		Use:     "rule [title]",
		Short:   MsgRuleShort,
		GroupID: "render",
		Args:    cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, _, err := g.console(cmd)
			if err != nil {
				return err
			}
			r := widgets.NewRule(strings.Join(args, " "))
			r.Character = character
			r.Style = ruleStyle
			r.Align = render.ParseJustify(align)
			return c.Println(r)
		},
	}
	cmd.Flags().StringVar(&character, "char", "", "Character drawn along the rule")
	cmd.Flags().StringVar(&align, "align", "center", "Title alignment: left, center or right")
	cmd.Flags().StringVar(&ruleStyle, "style", "", "Style or theme name for the line")
	return cmd
}

// lookupBox resolves a --box flag value
func lookupBox(name string) (*box.Box, error) {
	b, ok := box.Lookup(strings.ToLower(name))
	if !ok {
		var names []string
		for _, b := range box.All {
			names = append(names, b.Name)
		}
		return nil, errors.Newf(errors.ErrInvalidInput, "unknown box %q (choose from none, %s)", name, strings.Join(names, ", "))
	}
	return b, nil
}

func newPanelCmd(g *globals) *cobra.Command {
	var (
		title, subtitle string
		boxName         string
		fit             bool
		borderStyle     string
		padY            int
	)
	cmd := &cobra.Command{
		Use:     "panel [markup...]",
		Short:   MsgPanelShort,
		GroupID: "render",
		Example: `  tinta panel --title "[b]Notice[/]" "Deploy finished in [green]42s[/]"`,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, _, err := g.console(cmd)
			if err != nil {
				return err
			}
			source, err := input(cmd, args)
			if err != nil {
				return err
			}
			b, err := lookupBox(boxName)
			if err != nil {
				return err
			}
			p := widgets.NewPanel(widgets.Markup(source))
			p.Expand = !fit
			p.Box = b
			p.Title = title
			p.Subtitle = subtitle
			p.BorderStyle = borderStyle
			p.PadY = padY
			return c.Println(p)
		},
	}
	cmd.Flags().StringVarP(&title, "title", "t", "", "Markup title drawn in the top border")
	cmd.Flags().StringVar(&subtitle, "subtitle", "", "Markup subtitle drawn in the bottom border")
	cmd.Flags().StringVar(&boxName, "box", "rounded", "Border style")
	cmd.Flags().BoolVar(&fit, "fit", false, "Shrink the panel to its content")
	cmd.Flags().StringVar(&borderStyle, "border-style", "", "Style for the border")
	cmd.Flags().IntVar(&padY, "pad-y", 0, "Blank lines above and below the content")
	return cmd
}

func newBannerCmd(g *globals) *cobra.Command {
	var (
		font        string
		bannerStyle string
		listFonts   bool
		centerText  bool
	)
	cmd := &cobra.Command{
		Use:     "banner [text...]",
		Short:   MsgBannerShort,
		GroupID: "render",
		RunE: func(cmd *cobra.Command, args []string) error {
			if listFonts {
				for _, f := range widgets.BannerFonts() {
					fmt.Fprintln(cmd.OutOrStdout(), f)
				}
				return nil
			}
			c, _, err := g.console(cmd)
			if err != nil {
				return err
			}
			source, err := input(cmd, args)
			if err != nil {
				return err
			}
			b := &widgets.Banner{Text: source, Font: font, Style: bannerStyle}
			if centerText {
				b.Justify = render.JustifyCenter
			}
			return c.Println(b)
		},
	}
	cmd.Flags().StringVar(&font, "font", "standard", "FIGlet font name")
	cmd.Flags().StringVar(&bannerStyle, "style", "", "Style for the lettering")
	cmd.Flags().BoolVar(&listFonts, "list-fonts", false, "List the available fonts")
	cmd.Flags().BoolVar(&centerText, "center", false, "Center the banner")
	return cmd
}

// parseTree builds a tree from indented lines. Each level is indented
// further than its parent; the first line is the root.
func parseTree(source string) (*widgets.Tree, error) {
	type level struct {
		indent int
		node   *widgets.Tree
	}
	var (
		root  *widgets.Tree
		stack []level
	)
	for n, line := range strings.Split(source, "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}
		expanded := strings.ReplaceAll(line, "\t", "    ")
		label := strings.TrimLeft(expanded, " ")
		indent := len(expanded) - len(label)
		if root == nil {
			root = widgets.NewTree(label)
			stack = []level{{indent, root}}
			continue
		}
		for len(stack) > 0 && stack[len(stack)-1].indent >= indent {
			stack = stack[:len(stack)-1]
		}
		if len(stack) == 0 {
			return nil, errors.Newf(errors.ErrInvalidInput, "line %d: a tree has a single root", n+1)
		}
		child := stack[len(stack)-1].node.Add(label)
		stack = append(stack, level{indent, child})
	}
	if root == nil {
		return nil, errors.New(errors.ErrInvalidInput, "empty tree")
	}
	return root, nil
}

func newTreeCmd(g *globals) *cobra.Command {
	var hideRoot bool
	cmd := &cobra.Command{
		Use:     "tree [file]",
		Short:   MsgTreeShort,
		GroupID: "render",
		Args:    cobra.MaximumNArgs(1),
		Example: `  printf 'project\n  src\n    main.go\n  README.md\n' | tinta tree`,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, _, err := g.console(cmd)
			if err != nil {
				return err
			}
			source, err := fileInput(cmd, firstArg(args))
			if err != nil {
				return err
			}
			tree, err := parseTree(source)
			if err != nil {
				return err
			}
			tree.HideRoot = hideRoot
			return c.Println(tree)
		},
	}
	cmd.Flags().BoolVar(&hideRoot, "hide-root", false, "Do not draw the root label")
	return cmd
}

func newMarkdownCmd(g *globals) *cobra.Command {
	var theme string
	cmd := &cobra.Command{
		Use:     "markdown [file]",
		Aliases: []string{"md"},
		Short:   MsgMarkdownShort,
		GroupID: "render",
		Args:    cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, _, err := g.console(cmd)
			if err != nil {
				return err
			}
			source, err := fileInput(cmd, firstArg(args))
			if err != nil {
				return err
			}
			md := widgets.NewMarkdown(source)
			if theme != "" {
				md.Theme = theme
			}
			return c.Println(md)
		},
	}
	cmd.Flags().StringVar(&theme, "style", "", "glamour style: dark, light, dracula, pink, notty or ascii")
	return cmd
}

func newSyntaxCmd(g *globals) *cobra.Command {
	var (
		language    string
		theme       string
		lineNumbers bool
		wrap        bool
		background  bool
	)
	cmd := &cobra.Command{
		Use:     "syntax [file]",
		Short:   MsgSyntaxShort,
		GroupID: "render",
		Args:    cobra.MaximumNArgs(1),
		Example: `  tinta syntax -n main.go
  cat query.sql | tinta syntax -l sql`,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, _, err := g.console(cmd)
			if err != nil {
				return err
			}
			path := firstArg(args)
			source, err := fileInput(cmd, path)
			if err != nil {
				return err
			}
			lang := language
			if lang == "" && path != "" && path != "-" {
				lang = strings.TrimPrefix(filepath.Ext(path), ".")
			}
			s := widgets.NewSyntax(strings.TrimSuffix(source, "\n"), lang)
			if theme != "" {
				s.Theme = theme
			}
			s.LineNumbers = lineNumbers
			s.WordWrap = wrap
			s.Background = background
			return c.Println(s)
		},
	}
	cmd.Flags().StringVarP(&language, "lang", "l", "", "Lexer name; guessed from the file extension or content when empty")
	cmd.Flags().StringVar(&theme, "style", "", "chroma style name (default monokai)")
	cmd.Flags().BoolVarP(&lineNumbers, "line-numbers", "n", false, "Show line numbers")
	cmd.Flags().BoolVar(&wrap, "wrap", false, "Wrap long lines instead of cropping")
	cmd.Flags().BoolVar(&background, "background", false, "Paint the style's background color")
	return cmd
}

func firstArg(args []string) string {
	if len(args) == 0 {
		return ""
	}
	return args[0]
}
