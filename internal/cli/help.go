package cli

import (
	"embed"
	"io/fs"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/arthur-debert/tinta/pkg/cobrax/topics"
	"github.com/arthur-debert/tinta/pkg/widgets"
)

//go:embed help
var helpFiles embed.FS

// topicRenderer draws markdown topics through the markdown widget and
// text topics as markup
type topicRenderer struct{ g *globals }

func (r topicRenderer) Render(cmd *cobra.Command, t topics.Topic) error {
	c, _, err := r.g.console(cmd)
	if err != nil {
		return err
	}
	if t.Format == ".md" {
		return c.Println(widgets.NewMarkdown(t.Content))
	}
	return c.Println(widgets.Markup(t.Content))
}

func installTopics(root *cobra.Command, g *globals) {
	sub, err := fs.Sub(helpFiles, "help")
	if err == nil {
		var m *topics.Manager
		if m, err = topics.Load(sub, topics.Options{Renderer: topicRenderer{g}}); err == nil {
			m.Install(root)
			return
		}
	}
	log.Warn().Err(err).Msg("help topics unavailable")
}
