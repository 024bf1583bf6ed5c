package cli

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/gitlanes/gitlanes/pkg/graphio"
)

// layoutCommand creates the layout command: commits.json -> layout.json.
func (c *CLI) layoutCommand() *cobra.Command {
	var (
		output  string
		noCache bool
	)

	cmd := &cobra.Command{
		Use:   "layout [commits.json|url]",
		Short: "Compute lane assignments for a commit list",
		Long: `Compute lane assignments for a commit list.

The input is a JSON file containing commit records (hash, parents, branch
and tag refs) in the order they should be displayed, newest first. The
output is a layout file with a column and row per commit plus the derived
parent edges, ready for 'render' or external consumption.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runLayout(cmd, args[0], output, noCache)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: stdout)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")

	return cmd
}

func (c *CLI) runLayout(cmd *cobra.Command, input, output string, noCache bool) error {
	ctx := cmd.Context()

	cl, err := graphio.ReadCommitsSource(ctx, input)
	if err != nil {
		return fmt.Errorf("load commits %s: %w", input, err)
	}

	runner, err := c.newRunner(ctx, noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	start := time.Now()
	res, err := runner.ComputeLayout(ctx, cl.Commits)
	if err != nil {
		return fmt.Errorf("layout: %w", err)
	}
	c.Logger.Infof("Laid out %d commits across %d lanes (%s)",
		len(res.Graph.Nodes), res.Graph.Lanes(), time.Since(start).Round(time.Millisecond))

	l := graphio.FromGraph(cl.Repo, res.Graph)
	if output == "" {
		data, err := graphio.MarshalLayout(l)
		if err != nil {
			return err
		}
		_, err = os.Stdout.Write(append(data, '\n'))
		return err
	}
	if err := graphio.WriteLayoutFile(l, output); err != nil {
		return fmt.Errorf("write layout %s: %w", output, err)
	}
	printSuccess("Layout written to %s", output)
	return nil
}
