package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/arthur-debert/tinta/internal/version"
	"github.com/arthur-debert/tinta/pkg/config"
	"github.com/arthur-debert/tinta/pkg/console"
	"github.com/arthur-debert/tinta/pkg/errors"
	"github.com/arthur-debert/tinta/pkg/logging"
)

// globals holds the persistent flags shared by every command
type globals struct {
	verbosity   int
	configFile  string
	colorSystem string
	width       int
	noMarkup    bool
	theme       string
}

// overrides turns the flags the user actually set into dotted config keys
func (g *globals) overrides(cmd *cobra.Command) map[string]interface{} {
	flags := cmd.Flags()
	out := map[string]interface{}{}
	if flags.Changed("color-system") {
		out["console.color_system"] = g.colorSystem
	}
	if flags.Changed("width") {
		out["console.width"] = g.width
	}
	if flags.Changed("no-markup") {
		out["console.markup"] = !g.noMarkup
	}
	if flags.Changed("theme") {
		out["console.theme"] = g.theme
	}
	return out
}

// config loads the layered configuration with flag overrides on top
func (g *globals) config(cmd *cobra.Command) (*config.Config, error) {
	var opts []config.LoadOption
	if g.configFile != "" {
		opts = append(opts, config.WithFile(g.configFile))
	}
	opts = append(opts, config.WithOverrides(g.overrides(cmd)))
	cfg, err := config.Load(opts...)
	if err != nil {
		return nil, err
	}
	if cfg.Logging.Verbosity > g.verbosity {
		g.verbosity = cfg.Logging.Verbosity
		logging.SetupLogger(g.verbosity)
	}
	return cfg, nil
}

// console builds a console on the command's output
func (g *globals) console(cmd *cobra.Command, extra ...console.Option) (*console.Console, *config.Config, error) {
	cfg, err := g.config(cmd)
	if err != nil {
		return nil, nil, err
	}
	opts, err := cfg.ConsoleOptions()
	if err != nil {
		return nil, nil, err
	}
	return console.New(cmd.OutOrStdout(), append(opts, extra...)...), cfg, nil
}

// NewRootCmd creates and returns the root command
func NewRootCmd() *cobra.Command {
	g := &globals{}

	rootCmd := &cobra.Command{
		Use:     "tinta",
		Short:   MsgRootShort,
		Long:    MsgRootLong,
		Version: version.Version,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logging.SetupLogger(g.verbosity)
			logging.LogCommand(cmd.CommandPath(), args)
		},
		SilenceUsage:      true,
		SilenceErrors:     true,
		DisableAutoGenTag: true,
	}

	// Global flags
	pf := rootCmd.PersistentFlags()
	pf.CountVarP(&g.verbosity, "verbose", "v", "Increase verbosity (-v INFO, -vv DEBUG, -vvv TRACE)")
	pf.StringVarP(&g.configFile, "config", "c", "", "Config file (default is $XDG_CONFIG_HOME/tinta/config.toml)")
	pf.StringVar(&g.colorSystem, "color-system", "auto", "Color system: auto, none, standard, 256, truecolor or windows")
	pf.IntVarP(&g.width, "width", "w", 0, "Output width in cells (0 detects)")
	pf.BoolVar(&g.noMarkup, "no-markup", false, "Print text literally without parsing markup")
	pf.StringVar(&g.theme, "theme", "", "Theme name or path to a YAML theme file")

	rootCmd.AddGroup(
		&cobra.Group{ID: "render", Title: "Rendering:"},
		&cobra.Group{ID: "live", Title: "Live displays:"},
		&cobra.Group{ID: "setup", Title: "Setup:"},
	)

	rootCmd.AddCommand(newVersionCmd())
	rootCmd.AddCommand(newPrintCmd(g))
	rootCmd.AddCommand(newRuleCmd(g))
	rootCmd.AddCommand(newPanelCmd(g))
	rootCmd.AddCommand(newBannerCmd(g))
	rootCmd.AddCommand(newTableCmd(g))
	rootCmd.AddCommand(newTreeCmd(g))
	rootCmd.AddCommand(newMarkdownCmd(g))
	rootCmd.AddCommand(newSyntaxCmd(g))
	rootCmd.AddCommand(newExportCmd(g))
	rootCmd.AddCommand(newProgressCmd(g))
	rootCmd.AddCommand(newStatusCmd(g))
	rootCmd.AddCommand(newProfileCmd(g))
	rootCmd.AddCommand(newConfigCmd(g))

	installTopics(rootCmd, g)

	return rootCmd
}

// Execute runs the root command and reports the error on stderr. It
// returns the process exit code.
func Execute(ctx context.Context) int {
	if err := NewRootCmd().ExecuteContext(ctx); err != nil {
		log.Debug().Str("code", string(errors.GetErrorCode(err))).Msg("Command failed")
		fmt.Fprintln(os.Stderr, formatError(err))
		return 1
	}
	return 0
}

func formatError(err error) string {
	return "Error: " + err.Error()
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "version",
		Short:   MsgVersionShort,
		GroupID: "setup",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := fmt.Fprintln(cmd.OutOrStdout(), version.String())
			return err
		},
	}
}

// input returns the joined arguments, or standard input when there are
// none or the only argument is "-"
func input(cmd *cobra.Command, args []string) (string, error) {
	if len(args) == 0 || (len(args) == 1 && args[0] == "-") {
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return "", fmt.Errorf("reading standard input: %w", err)
		}
		return strings.TrimSuffix(string(data), "\n"), nil
	}
	return strings.Join(args, " "), nil
}

// fileInput reads path, or standard input for "" and "-"
func fileInput(cmd *cobra.Command, path string) (string, error) {
	if path == "" || path == "-" {
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return "", fmt.Errorf("reading standard input: %w", err)
		}
		return string(data), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("reading %s: %w", path, err)
	}
	return string(data), nil
}
