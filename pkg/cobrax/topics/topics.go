// Package topics adds help topics to a cobra application. Topics are
// documents read from an fs.FS; `help <topic>` renders one and
// `help topics` lists them. Anything that is not a topic falls through
// to cobra's own help.
package topics

import (
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"

	"github.com/spf13/cobra"
)

// Topic is one help document
type Topic struct {
	Name string
	Path string
	// Format is the file extension, such as ".md"
	Format  string
	Content string
}

// Renderer draws a topic for cmd
type Renderer interface {
	Render(cmd *cobra.Command, t Topic) error
}

// PlainRenderer writes the content unchanged
type PlainRenderer struct{}

func (PlainRenderer) Render(cmd *cobra.Command, t Topic) error {
	_, err := fmt.Fprint(cmd.OutOrStdout(), t.Content)
	return err
}

// Options configures Load
type Options struct {
	// Extensions lists the file extensions read as topics; defaults to
	// .txt and .md
	Extensions []string
	// Renderer defaults to PlainRenderer
	Renderer Renderer
}

// Manager holds the loaded topics
type Manager struct {
	topics   map[string]Topic
	renderer Renderer
}

// Load reads every topic file under fsys
func Load(fsys fs.FS, opts Options) (*Manager, error) {
	exts := opts.Extensions
	if len(exts) == 0 {
		exts = []string{".txt", ".md"}
	}
	m := &Manager{topics: map[string]Topic{}, renderer: opts.Renderer}
	if m.renderer == nil {
		m.renderer = PlainRenderer{}
	}

	err := fs.WalkDir(fsys, ".", func(p string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return err
		}
		ext := path.Ext(p)
		if !contains(exts, ext) {
			return nil
		}
		data, err := fs.ReadFile(fsys, p)
		if err != nil {
			return err
		}
		name := strings.TrimSuffix(path.Base(p), ext)
		m.topics[name] = Topic{Name: name, Path: p, Format: ext, Content: string(data)}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan topics: %w", err)
	}
	return m, nil
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

// Get finds a topic by name. A leading "--" is ignored so flag names
// work as topic names.
func (m *Manager) Get(name string) (Topic, bool) {
	t, ok := m.topics[strings.TrimLeft(name, "-")]
	return t, ok
}

// Names returns the topic names in order
func (m *Manager) Names() []string {
	names := make([]string, 0, len(m.topics))
	for name := range m.topics {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (m *Manager) list(cmd *cobra.Command, root string) error {
	w := cmd.OutOrStdout()
	names := m.Names()
	if len(names) == 0 {
		_, err := fmt.Fprintln(w, "No help topics available.")
		return err
	}
	fmt.Fprintln(w, "Available help topics:")
	for _, name := range names {
		fmt.Fprintf(w, "  %s\n", name)
	}
	_, err := fmt.Fprintf(w, "\nUse '%s help <topic>' to read about a specific topic.\n", root)
	return err
}

// Install replaces root's help command and help function with ones that
// know about the topics
func (m *Manager) Install(root *cobra.Command) {
	original := root.HelpFunc()

	helpCmd := &cobra.Command{
		Use:   "help [command or topic]",
		Short: "Help about any command or topic",
		Long: `Help provides help for any command or topic in the application.
Simply type ` + root.Name() + ` help [path to command or topic] for full details.

To see all available help topics:
  ` + root.Name() + ` help topics`,
		ValidArgsFunction: func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
			completions := []string{"topics"}
			for _, c := range root.Commands() {
				if !c.Hidden {
					completions = append(completions, c.Name())
				}
			}
			return append(completions, m.Names()...), cobra.ShellCompDirectiveNoFileComp
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			switch {
			case len(args) == 0:
				original(root, args)
				return nil
			case args[0] == "topics":
				return m.list(cmd, root.Name())
			}
			if t, ok := m.Get(args[0]); ok {
				return m.renderer.Render(cmd, t)
			}
			target, _, err := root.Find(args)
			if err != nil || target == nil {
				return fmt.Errorf("unknown help topic %q", strings.Join(args, " "))
			}
			original(target, args)
			return nil
		},
	}

	for _, c := range root.Commands() {
		if c.Name() == "help" {
			root.RemoveCommand(c)
			break
		}
	}
	root.SetHelpCommand(helpCmd)
}
