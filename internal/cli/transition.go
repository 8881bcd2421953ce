package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/matzehuels/lnzlayouts/pkg/cache"
	"github.com/matzehuels/lnzlayouts/pkg/config"
	"github.com/matzehuels/lnzlayouts/pkg/errors"
	"github.com/matzehuels/lnzlayouts/pkg/geom"
	"github.com/matzehuels/lnzlayouts/pkg/scroll"
	"github.com/matzehuels/lnzlayouts/pkg/sink"
	"github.com/matzehuels/lnzlayouts/pkg/stack"
	"github.com/matzehuels/lnzlayouts/pkg/transition"
)

// defaultFPS is the default sampling rate of the transition command.
const defaultFPS = 60

// transitionCommand creates the transition command, which samples the
// stack-to-detail transition into frames.
func (c *CLI) transitionCommand() *cobra.Command {
	var (
		flags   sceneFlags
		opts    transitionOpts
		output  string
		noCache bool
	)

	cmd := &cobra.Command{
		Use:   "transition",
		Short: "Sample the stack-to-detail transition into frames",
		Long: `Sample the stack-to-detail transition into frames.

The card at --index is presented from the stack: it expands to fill the
container while the other visible cards fold away. With --reverse the card is
dismissed back into the stack instead. The run is stepped --fps times per
second of transition time and every step is written to the output as JSON.

Frame sequences are cached locally (or in Redis with --redis).`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			scene, err := flags.load(cmd)
			if err != nil {
				return err
			}
			scene.Kind = config.KindStack
			if cmd.Flags().Changed("duration") {
				scene.Transition.Duration = opts.duration
			}
			if opts.fps <= 0 {
				return errors.New(errors.ErrCodeInvalidConfig, "fps must be positive, got %d", opts.fps)
			}
			return c.runTransition(cmd.Context(), scene, opts, output, noCache)
		},
	}

	flags.register(cmd, config.KindStack)
	cmd.Flags().IntVarP(&opts.index, "index", "i", 0, "index of the card to present")
	cmd.Flags().BoolVar(&opts.reversed, "reverse", false, "dismiss the card instead of presenting it")
	cmd.Flags().IntVar(&opts.fps, "fps", defaultFPS, "frames per second of transition time")
	cmd.Flags().DurationVar(&opts.duration, "duration", transition.DefaultDuration, "transition duration")
	cmd.Flags().StringVarP(&output, "output", "o", "frames.json", "output file")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")

	return cmd
}

// transitionOpts are the transition command flags.
type transitionOpts struct {
	index    int
	reversed bool
	fps      int
	duration time.Duration
}

// runTransition samples the transition, or loads it from the cache, and
// writes the frames.
func (c *CLI) runTransition(ctx context.Context, scene config.Scene, opts transitionOpts, output string, noCache bool) error {
	if err := errors.ValidateIndex(opts.index, scene.Items); err != nil {
		return fmt.Errorf("index: %w", err)
	}

	store, err := c.newCache(ctx, noCache)
	if err != nil {
		return fmt.Errorf("initialize cache: %w", err)
	}
	defer store.Close()

	hash, err := cache.HashValue(scene)
	if err != nil {
		return fmt.Errorf("hash scene: %w", err)
	}
	key := c.keyer.TransitionKey(hash, cache.TransitionKeyOpts{
		Index:    opts.index,
		Reversed: opts.reversed,
		FPS:      opts.fps,
	})

	spinner := newSpinner(ctx, "Sampling transition...")
	spinner.Start()

	var count int
	prog := newProgress(loggerFromContext(ctx))
	data, cached, err := c.cachedArtifact(ctx, store, key, func() ([]byte, error) {
		id, frames, err := sampleTransition(ctx, scene, opts)
		if err != nil {
			return nil, err
		}
		count = len(frames)
		return sink.RenderFramesJSON(id, frames)
	})
	if err != nil {
		spinner.StopWithError("Transition failed")
		return fmt.Errorf("sample transition: %w", err)
	}
	spinner.Stop()

	if ctx.Err() != nil {
		return ctx.Err()
	}
	if !cached {
		prog.done(fmt.Sprintf("Sampled %d frames", count))
	}

	if err := writeArtifact(output, data); err != nil {
		return err
	}
	verb := "Presented"
	if opts.reversed {
		verb = "Dismissed"
	}
	printSuccess("%s card %d", verb, opts.index)
	return nil
}

// sampleTransition runs the transition on a headless stack view with a
// synthetic clock and returns the run ID and one frame per step, including
// the initial and final state.
func sampleTransition(ctx context.Context, scene config.Scene, opts transitionOpts) (string, []transition.Frame, error) {
	v, l := scene.Build(nil)
	s, ok := l.(*stack.Stack)
	if !ok {
		return "", nil, errors.New(errors.ErrCodeInvalidLayout, "transition needs the stack layout, got %s", scene.Kind)
	}
	bringIntoView(v, s, opts.index)

	topts := []transition.Option{transition.WithOptions(scene.TransitionOptions())}
	if opts.reversed {
		topts = append(topts, transition.Reversed())
	}
	host := scroll.NewContainer(geom.R(0, 0, scene.Viewport.Width, scene.Viewport.Height))
	run, err := s.Animator(opts.index, topts...).Start(ctx, v, host, nil)
	if err != nil {
		return "", nil, err
	}

	step := time.Second / time.Duration(opts.fps)
	clock := time.Unix(0, 0)
	var frames []transition.Frame
	for i := 0; ; i++ {
		if err := ctx.Err(); err != nil {
			run.Cancel()
			return "", nil, err
		}
		more := run.Step(clock.Add(time.Duration(i) * step))
		frames = append(frames, run.Frame())
		if !more {
			break
		}
	}
	return run.ID, frames, nil
}

// bringIntoView scrolls v so the card at index is visible.
func bringIntoView(v *scroll.View, s *stack.Stack, index int) {
	f := s.FrameForItem(index)
	b := v.Bounds()
	if f.MinY() >= b.MinY() && f.MaxY() <= b.MaxY() {
		return
	}
	v.ScrollTo(geom.Pt(b.MinX(), f.MinY()-s.Config().InsetTop))
}
