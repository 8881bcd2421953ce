package cli

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/lnzlayouts/pkg/config"
	"github.com/matzehuels/lnzlayouts/pkg/errors"
	"github.com/matzehuels/lnzlayouts/pkg/geom"
	"github.com/matzehuels/lnzlayouts/pkg/scroll"
	"github.com/matzehuels/lnzlayouts/pkg/stack"
)

// stackCommand creates the stack command, which replays a pan gesture on the
// stacked card layout.
func (c *CLI) stackCommand() *cobra.Command {
	var (
		flags  sceneFlags
		card   int
		pan    string
		cancel bool
	)

	cmd := &cobra.Command{
		Use:   "stack",
		Short: "Replay a pan-to-delete gesture on the card stack",
		Long: `Replay a pan-to-delete gesture on the card stack.

--pan is a list of samples "dx,dy,vx[,vy]" separated by semicolons. The first
sample begins the gesture on --card, the others move it, and the gesture ends
with the velocity of the last sample (or is cancelled with --cancel).

Example:
  lnzlayouts stack --card 2 --pan "-10,0,-300;-40,0,-400;-20,0,-350"`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			scene, err := flags.load(cmd)
			if err != nil {
				return err
			}
			scene.Kind = config.KindStack

			samples, err := parsePan(pan)
			if err != nil {
				return err
			}
			if err := errors.ValidateIndex(card, scene.Items); err != nil {
				return fmt.Errorf("card: %w", err)
			}

			var trail []stack.Transition
			v, _ := scene.Build(c.Logger)
			s := stack.New(v,
				stack.WithConfig(scene.StackConfig()),
				stack.WithLogger(c.Logger),
				stack.WithObserver(func(t stack.Transition) { trail = append(trail, t) }),
			)
			v.SetLayout(s)

			states, err := replayPan(v, s, card, samples, cancel)
			if err != nil {
				return err
			}
			printGesture(states, trail)

			if len(v.Removed()) > 0 {
				printSuccess("Deleted item %d", v.Removed()[0].Index)
			} else {
				printInfo("No item deleted")
			}
			fmt.Println(attributesTable(v.Pass(), -1))
			return nil
		},
	}

	flags.register(cmd, config.KindStack)
	cmd.Flags().IntVar(&card, "card", 0, "index of the card the gesture starts on")
	cmd.Flags().StringVar(&pan, "pan", "-60,0,-300", `gesture samples "dx,dy,vx[,vy];..."`)
	cmd.Flags().BoolVar(&cancel, "cancel", false, "cancel the gesture instead of ending it")

	return cmd
}

// panSample is one parsed --pan entry.
type panSample struct {
	translation geom.Point
	velocity    geom.Point
}

// parsePan parses "dx,dy,vx[,vy];..." into samples.
func parsePan(s string) ([]panSample, error) {
	var samples []panSample
	for _, part := range strings.Split(s, ";") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		fields := strings.Split(part, ",")
		if len(fields) != 3 && len(fields) != 4 {
			return nil, errors.New(errors.ErrCodeInvalidGesture, "pan sample %q: want dx,dy,vx[,vy]", part)
		}
		vals := make([]float64, 4)
		for i, f := range fields {
			v, err := strconv.ParseFloat(strings.TrimSpace(f), 64)
			if err != nil {
				return nil, errors.Wrap(errors.ErrCodeInvalidGesture, err, "pan sample %q", part)
			}
			vals[i] = v
		}
		samples = append(samples, panSample{
			translation: geom.Pt(vals[0], vals[1]),
			velocity:    geom.Pt(vals[2], vals[3]),
		})
	}
	if len(samples) == 0 {
		return nil, errors.New(errors.ErrCodeInvalidGesture, "pan: no samples")
	}
	return samples, nil
}

// grabPoint returns a point on the visible part of a card: its top strip,
// which the next card does not cover.
func grabPoint(s *stack.Stack, index int) geom.Point {
	f := s.FrameForItem(index)
	strip := math.Min(s.Spacing(), f.Height())
	return geom.Pt(f.MidX(), f.MinY()+strip/2)
}

// replayPan feeds samples to v as one gesture on card and returns the state
// after every sample.
func replayPan(v *scroll.View, s *stack.Stack, card int, samples []panSample, cancel bool) ([]stack.State, error) {
	at := grabPoint(s, card)
	states := make([]stack.State, 0, len(samples)+1)

	for i, p := range samples {
		phase := stack.Began
		if i > 0 {
			phase = stack.Changed
			at = at.Add(p.translation)
		}
		st, err := v.Pan(stack.GestureSample{
			Phase:       phase,
			Location:    at,
			Translation: p.translation,
			Velocity:    p.velocity,
		})
		if err != nil {
			return nil, err
		}
		states = append(states, st)
	}

	end := stack.GestureSample{Phase: stack.Ended, Location: at, Velocity: samples[len(samples)-1].velocity}
	if cancel {
		end.Phase = stack.Cancelled
	}
	st, err := v.Pan(end)
	if err != nil {
		return nil, err
	}
	return append(states, st), nil
}

func printGesture(states []stack.State, trail []stack.Transition) {
	names := make([]string, len(states))
	for i, st := range states {
		names[i] = st.String()
	}
	printKeyValue("states", strings.Join(names, " "+iconArrow+" "))
	for _, t := range trail {
		printDetail("%s %s %s  (%s)", t.From, iconArrow, t.To, t.Event)
	}
}
