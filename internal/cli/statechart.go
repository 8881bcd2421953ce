package cli

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/lnzlayouts/pkg/cache"
	"github.com/matzehuels/lnzlayouts/pkg/errors"
	"github.com/matzehuels/lnzlayouts/pkg/stack"
)

// statechartCommand creates the statechart command, which renders the
// pan-to-delete state machine with Graphviz.
func (c *CLI) statechartCommand() *cobra.Command {
	var (
		output    string
		highlight string
		labels    bool
		dot       bool
		noCache   bool
	)

	cmd := &cobra.Command{
		Use:   "statechart",
		Short: "Render the pan-to-delete state machine",
		Long: `Render the pan-to-delete state machine of the stack layout as SVG, or as
PNG when the output file ends in .png.

--highlight fills one state (idle, panning, committing, cancelling) and
--labels prints the events on the edges. --dot prints the Graphviz source
instead of rendering it.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := stack.StateChartOptions{Highlight: -1, Labels: labels}
			if highlight != "" {
				st, err := parseState(highlight)
				if err != nil {
					return err
				}
				opts.Highlight = st
			}

			src := stack.ToDOT(opts)
			if dot {
				fmt.Fprint(cmd.OutOrStdout(), src)
				return nil
			}

			ctx := cmd.Context()
			store, err := c.newCache(ctx, noCache)
			if err != nil {
				return fmt.Errorf("initialize cache: %w", err)
			}
			defer store.Close()

			format, render := chartFormat(output)
			key := c.keyer.ChartKey(cache.ChartKeyOpts{Highlight: highlight, Labels: labels, Format: format})
			spinner := newSpinner(ctx, "Rendering state chart...")
			spinner.Start()
			data, _, err := c.cachedArtifact(ctx, store, key, func() ([]byte, error) {
				return render(ctx, src)
			})
			if err != nil {
				spinner.StopWithError("Render failed")
				return fmt.Errorf("render state chart: %w", err)
			}
			spinner.Stop()

			printSuccess("State chart rendered")
			return writeArtifact(output, data)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "deletion.svg", "output file")
	cmd.Flags().StringVar(&highlight, "highlight", "", "state to highlight")
	cmd.Flags().BoolVar(&labels, "labels", false, "label edges with their events")
	cmd.Flags().BoolVar(&dot, "dot", false, "print the DOT source instead of rendering")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	_ = cmd.RegisterFlagCompletionFunc("highlight", completeStates)

	return cmd
}

// chartFormat picks the renderer for the output file's extension.
func chartFormat(output string) (string, func(context.Context, string) ([]byte, error)) {
	if strings.EqualFold(filepath.Ext(output), ".png") {
		return "png", stack.RenderStateChartPNG
	}
	return "svg", stack.RenderStateChart
}

// parseState returns the state named s.
func parseState(s string) (stack.State, error) {
	for _, st := range []stack.State{stack.Idle, stack.Panning, stack.Committing, stack.Cancelling} {
		if strings.EqualFold(st.String(), s) {
			return st, nil
		}
	}
	return 0, errors.New(errors.ErrCodeInvalidInput, "unknown state %q", s)
}
