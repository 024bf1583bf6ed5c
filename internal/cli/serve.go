package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/gitlanes/gitlanes/pkg/graphio"
	"github.com/gitlanes/gitlanes/pkg/server"
)

// serveCommand creates the serve command: expose a commit graph over HTTP.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr    string
		noCache bool
	)

	cmd := &cobra.Command{
		Use:   "serve [commits.json|url]",
		Short: "Serve a commit graph over HTTP",
		Long: `Serve a commit graph over HTTP.

Endpoints:
  GET /api/commits   the loaded commit window
  GET /api/graph     lane layout (columns, rows, edges) as JSON
  GET /api/draw      abstract draw-command list, ?zoom= supported
  GET /graph.svg     rendered SVG, ?zoom= supported
  GET /graph.dot     Graphviz DOT export
  GET /healthz       liveness probe

Responses carry a per-load snapshot ETag, so pollers receive 304s until
the commit window is reloaded.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			// Config loads after flag registration; only an explicit flag
			// overrides the configured address.
			if !cmd.Flags().Changed("addr") {
				addr = c.Config.Server.Addr
			}

			cl, err := graphio.ReadCommitsSource(ctx, args[0])
			if err != nil {
				return fmt.Errorf("load commits %s: %w", args[0], err)
			}

			runner, err := c.newRunner(ctx, noCache)
			if err != nil {
				return fmt.Errorf("initialize runner: %w", err)
			}
			defer runner.Close()

			srv := server.New(runner, c.Logger)
			srv.Load(cl.Repo, cl.Commits)
			return srv.ListenAndServe(addr)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", c.Config.Server.Addr, "listen address")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")

	return cmd
}
