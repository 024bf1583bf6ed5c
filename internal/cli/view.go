package cli

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/gitlanes/gitlanes/pkg/graphio"
	"github.com/gitlanes/gitlanes/pkg/layout"
)

// viewCommand creates the 'view' command.
func (c *CLI) viewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "view <commits.json|url>",
		Short: "Browse a commit graph interactively",
		Long: `Open an interactive terminal browser for a commit graph.

The lane layout is computed from the given commit list and rendered as a
colored gutter next to each commit. Arrow keys (or j/k) move the selection,
+ and - adjust the zoom factor, q quits.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			list, err := graphio.ReadCommitsSource(cmd.Context(), args[0])
			if err != nil {
				return fmt.Errorf("reading commits: %w", err)
			}

			g := layout.Compute(list.Commits)
			c.Logger.Debug("layout computed",
				"commits", len(g.Nodes), "lanes", g.Lanes())

			model := NewGraphModel(list.Repo, g)
			p := tea.NewProgram(model, tea.WithAltScreen())
			if _, err := p.Run(); err != nil {
				return fmt.Errorf("running viewer: %w", err)
			}
			return nil
		},
	}
	return cmd
}
