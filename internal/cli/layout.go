package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/lnzlayouts/pkg/cache"
	"github.com/matzehuels/lnzlayouts/pkg/config"
	"github.com/matzehuels/lnzlayouts/pkg/scroll"
	"github.com/matzehuels/lnzlayouts/pkg/sink"
)

// layoutCommand creates the layout command for running a single layout pass.
func (c *CLI) layoutCommand() *cobra.Command {
	var (
		flags   sceneFlags
		jsonOut string
		svgOut  string
		pngOut  string
		noCache bool
	)

	cmd := &cobra.Command{
		Use:   "layout",
		Short: "Run one layout pass and print the element geometry",
		Long: `Run one layout pass and print the element geometry.

The scene is read from --config (a TOML file) or built from flags. The pass
is printed as a table; --json, --svg and --png export it for other tools.

Exports are cached locally (or in Redis with --redis) for faster subsequent runs.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			scene, err := flags.load(cmd)
			if err != nil {
				return err
			}
			out := exports{json: jsonOut, svg: svgOut, png: pngOut}
			return c.runLayout(cmd.Context(), scene, out, noCache)
		},
	}

	flags.register(cmd, config.KindCarousel)
	flags.registerKind(cmd)
	cmd.Flags().StringVar(&jsonOut, "json", "", "write the pass as JSON to this file")
	cmd.Flags().StringVar(&svgOut, "svg", "", "write an SVG preview of the pass to this file")
	cmd.Flags().StringVar(&pngOut, "png", "", "write a PNG preview of the pass to this file")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")

	return cmd
}

// exports are the output files of the layout command; empty paths are skipped.
type exports struct {
	json, svg, png string
}

func (e exports) requested() bool { return e.json != "" || e.svg != "" || e.png != "" }

// runLayout builds the scene, prints its first pass and writes the exports.
func (c *CLI) runLayout(ctx context.Context, scene config.Scene, out exports, noCache bool) error {
	v, _ := scene.Build(c.Logger)
	pass := sink.Capture(string(scene.Kind), v)

	fmt.Println(attributesTable(pass.Attributes, pass.Focused))

	cached := false
	if out.requested() {
		hit, err := c.exportPass(ctx, scene, pass, out, noCache)
		if err != nil {
			return err
		}
		cached = hit
	}

	printSuccess("Layout pass complete")
	printPassStats(len(pass.Attributes), pass.Focused, pass.ContentSize, cached)
	if out.svg == "" && out.png == "" {
		printNewline()
		printNextStep("Preview", appName+" preview --kind "+string(scene.Kind))
	}
	return nil
}

// exportPass writes the requested exports. It reports whether every export
// came from the cache.
func (c *CLI) exportPass(ctx context.Context, scene config.Scene, pass sink.Pass, out exports, noCache bool) (bool, error) {
	store, err := c.newCache(ctx, noCache)
	if err != nil {
		return false, fmt.Errorf("initialize cache: %w", err)
	}
	defer store.Close()

	hash, err := cache.HashValue(scene)
	if err != nil {
		return false, fmt.Errorf("hash scene: %w", err)
	}
	titles := scroll.NewList(scene.Items).Titles

	renderers := []struct {
		format string
		path   string
		render func() ([]byte, error)
	}{
		{"json", out.json, func() ([]byte, error) {
			return sink.RenderJSON(pass, sink.WithJSONTitles(titles), sink.WithJSONIndent())
		}},
		{"svg", out.svg, func() ([]byte, error) {
			return sink.RenderSVG(pass, sink.WithTitles(titles)), nil
		}},
		{"png", out.png, func() ([]byte, error) {
			return sink.RenderPNG(pass)
		}},
	}

	allCached := true
	for _, r := range renderers {
		if r.path == "" {
			continue
		}
		key := c.keyer.PassKey(hash, cache.PassKeyOpts{
			OffsetX: scene.Viewport.OffsetX,
			OffsetY: scene.Viewport.OffsetY,
			Format:  r.format,
		})
		data, hit, err := c.cachedArtifact(ctx, store, key, r.render)
		if err != nil {
			return false, fmt.Errorf("render %s: %w", r.format, err)
		}
		if err := writeArtifact(r.path, data); err != nil {
			return false, err
		}
		allCached = allCached && hit
	}
	return allCached, nil
}
