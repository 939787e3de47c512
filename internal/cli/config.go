package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/arthur-debert/tinta/pkg/config"
	"github.com/arthur-debert/tinta/pkg/markup"
	"github.com/arthur-debert/tinta/pkg/paths"
	"github.com/arthur-debert/tinta/pkg/widgets"
)

func newConfigCmd(g *globals) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "config",
		Short:   MsgConfigShort,
		GroupID: "setup",
	}
	cmd.AddCommand(newConfigShowCmd(g), newConfigInitCmd(g), newConfigPathCmd())
	return cmd
}

func newConfigShowCmd(g *globals) *cobra.Command {
	var (
		defaults  bool
		highlight bool
	)
	cmd := &cobra.Command{
		Use:   "show",
		Short: MsgConfigShow,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var content string
			if defaults {
				content = config.DefaultsContent()
			} else {
				cfg, err := g.config(cmd)
				if err != nil {
					return err
				}
				if content, err = config.Dump(cfg); err != nil {
					return err
				}
			}
			if !highlight {
				_, err := io.WriteString(cmd.OutOrStdout(), content)
				return err
			}
			c, _, err := g.console(cmd)
			if err != nil {
				return err
			}
			return c.Println(widgets.NewSyntax(content, "toml"))
		},
	}
	cmd.Flags().BoolVar(&defaults, "defaults", false, "Show the built-in defaults with their comments")
	cmd.Flags().BoolVar(&highlight, "highlight", false, "Syntax highlight the output")
	return cmd
}

func newConfigInitCmd(g *globals) *cobra.Command {
	var (
		force bool
		path  string
	)
	cmd := &cobra.Command{
		Use:   "init",
		Short: MsgConfigInit,
		Long: MsgConfigInit + `.

Every setting is written commented out, so the file starts out
equivalent to the built-in defaults.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if path == "" {
				path = paths.ConfigFile()
			}
			if err := config.WriteConfigFile(path, force); err != nil {
				return err
			}
			c, _, err := g.console(cmd)
			if err != nil {
				return err
			}
			return c.Println(fmt.Sprintf(MsgConfigWritten, markup.Escape(path)))
		},
	}
	cmd.Flags().BoolVar(&force, "force", false, "Overwrite an existing file")
	cmd.Flags().StringVar(&path, "path", "", "Where to write (default is the user config file)")
	return cmd
}

func newConfigPathCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: MsgConfigPath,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := fmt.Fprintln(cmd.OutOrStdout(), paths.ConfigFile())
			return err
		},
	}
}
