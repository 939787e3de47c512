package cli

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/arthur-debert/tinta/pkg/color"
	"github.com/arthur-debert/tinta/pkg/console"
	"github.com/arthur-debert/tinta/pkg/errors"
	"github.com/arthur-debert/tinta/pkg/logging"
	"github.com/arthur-debert/tinta/pkg/markup"
	"github.com/arthur-debert/tinta/pkg/profile"
	"github.com/arthur-debert/tinta/pkg/widgets"
)

// profileTable lists the negotiated capabilities of p
func profileTable(p profile.Profile) *widgets.Table {
	t := widgets.NewGrid(2, 2)
	t.Columns[0].Style = "bold"
	row := func(name string, value any) {
		t.AddRenderables(widgets.Plain(name), widgets.Plain(fmt.Sprint(value)))
	}
	row("color system", p.ColorSystem)
	row("terminal", p.Terminal)
	row("interactive", p.Interactive)
	row("ansi", p.ANSI)
	row("legacy windows", p.Legacy)
	row("dumb", p.Dumb)
	row("links", p.Links)
	row("alt screen", p.AltScreen)
	row("cursor moves", p.CanMoveCursor())
	row("size", fmt.Sprintf("%dx%d", p.Width, p.Height))
	row("encoding", p.Encoding)
	return t
}

// swatch shows the sixteen standard colors and a gradient, downgraded
// to whatever the console supports
func swatch() string {
	var b strings.Builder
	for i := 0; i < 16; i++ {
		fmt.Fprintf(&b, "[on color(%d)]  [/]", i)
	}
	b.WriteString("\n")
	for i := 0; i < 32; i++ {
		c := color.FromRGB(uint8(i*8), uint8(255-i*8), 128)
		fmt.Fprintf(&b, "[on %s] [/]", c)
	}
	return b.String()
}

func newProfileCmd(g *globals) *cobra.Command {
	var noSwatch bool
	cmd := &cobra.Command{
		Use:     "profile",
		Short:   MsgProfileShort,
		GroupID: "setup",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, _, err := g.console(cmd)
			if err != nil {
				return err
			}
			if err := c.Println(profileTable(c.Profile())); err != nil {
				return err
			}
			if noSwatch || c.Profile().ColorSystem == color.NoColor {
				return nil
			}
			return c.Println(swatch())
		},
	}
	cmd.Flags().BoolVar(&noSwatch, "no-swatch", false, "Skip the color sample")
	return cmd
}

type exportFlags struct {
	format   string
	output   string
	title    string
	theme    string
	fontSize float64
}

// export renders source into a recording console and returns the
// exported document
func export(c *console.Console, source string, f exportFlags, svg console.SVGOptions) (string, error) {
	if err := c.Println(source); err != nil {
		return "", err
	}
	switch strings.ToLower(f.format) {
	case "svg":
		return c.ExportSVG(svg)
	case "text":
		return c.ExportText(false, true)
	case "ansi":
		return c.ExportText(true, true)
	}
	return "", errors.Newf(errors.ErrInvalidInput, "unknown export format %q (svg, text or ansi)", f.format)
}

func newExportCmd(g *globals) *cobra.Command {
	var f exportFlags
	cmd := &cobra.Command{
		Use:     "export [markup...]",
		Short:   MsgExportShort,
		GroupID: "render",
		Example: exportExample,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := g.config(cmd)
			if err != nil {
				return err
			}
			source, err := input(cmd, args)
			if err != nil {
				return err
			}
			opts, err := cfg.ConsoleOptions()
			if err != nil {
				return err
			}
			// exports are drawn as if on a full color terminal whatever
			// stdout is
			p := profile.Terminal(color.TrueColor, cfg.Console.Width, 0)
			opts = append(opts, console.WithProfile(p), console.WithRecord())
			c := console.New(io.Discard, opts...)

			svg := console.SVGOptions{
				Title:    cfg.Export.SVGTitle,
				Theme:    cfg.TerminalTheme(),
				FontSize: cfg.Export.SVGFontSize,
			}
			if cmd.Flags().Changed("title") {
				svg.Title = f.title
			}
			if f.theme != "" {
				t, ok := color.TerminalThemes[f.theme]
				if !ok {
					return errors.Newf(errors.ErrInvalidInput, "unknown terminal theme %q", f.theme)
				}
				svg.Theme = t
			}
			if f.fontSize > 0 {
				svg.FontSize = f.fontSize
			}

			done := logging.LogOperationStart(logging.GetLogger("cli.export"), "export "+f.format)
			out, err := export(c, source, f, svg)
			done()
			if err != nil {
				return err
			}
			if f.output == "" || f.output == "-" {
				_, err := io.WriteString(cmd.OutOrStdout(), out)
				return err
			}
			if err := os.WriteFile(f.output, []byte(out), 0644); err != nil {
				return errors.Wrapf(err, errors.ErrExport, "writing %s", f.output)
			}
			report, _, err := g.console(cmd)
			if err != nil {
				return err
			}
			return report.Println(fmt.Sprintf(MsgExported, markup.Escape(f.output)))
		},
	}
	flags := cmd.Flags()
	flags.StringVarP(&f.format, "format", "f", "svg", "Output format: svg, text or ansi")
	flags.StringVarP(&f.output, "output", "o", "", "Output file (default stdout)")
	flags.StringVar(&f.title, "title", "", "Window title drawn in the SVG")
	flags.StringVar(&f.theme, "terminal-theme", "", "Palette for SVG colors: default or monokai")
	flags.Float64Var(&f.fontSize, "font-size", 0, "SVG font size in pixels")
	return cmd
}
