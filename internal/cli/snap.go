package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/lnzlayouts/pkg/config"
	"github.com/matzehuels/lnzlayouts/pkg/geom"
	"github.com/matzehuels/lnzlayouts/pkg/scroll"
)

// snapCommand creates the snap command, which resolves where a fling ends.
func (c *CLI) snapCommand() *cobra.Command {
	var (
		flags    sceneFlags
		velocity float64
	)

	cmd := &cobra.Command{
		Use:   "snap",
		Short: "Resolve where a horizontal fling comes to rest",
		Long: `Resolve where a horizontal fling comes to rest.

The drag ends at --offset-x with --velocity (points per second, negative is
leftwards). The layout picks the resting offset; for snapping layouts that is
the offset that centers the nearest item.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			scene, err := flags.load(cmd)
			if err != nil {
				return err
			}
			if scene.Kind == config.KindStack {
				return fmt.Errorf("snap: the %s layout does not snap horizontally", scene.Kind)
			}
			v, _ := scene.Build(c.Logger)
			report := fling(v, velocity)
			report.print()
			return nil
		},
	}

	flags.register(cmd, config.KindSnap)
	flags.registerKind(cmd)
	cmd.Flags().Float64Var(&velocity, "velocity", 0, "release velocity in points per second")

	return cmd
}

// flingReport describes a fling and where it ended.
type flingReport struct {
	from, to    geom.Point
	focusBefore int
	focusAfter  int
	velocity    float64
	visible     []int
}

func fling(v *scroll.View, velocity float64) flingReport {
	r := flingReport{
		from:        v.ContentOffset(),
		focusBefore: v.FocusedIndex(),
		velocity:    velocity,
	}
	r.to = v.Fling(geom.Pt(velocity, 0))
	r.focusAfter = v.FocusedIndex()
	r.visible = v.VisibleItems()
	return r
}

func (r flingReport) print() {
	printSuccess("Fling resolved")
	printKeyValue("from", fmt.Sprintf("%.1f", r.from.X))
	printKeyValue("velocity", fmt.Sprintf("%.0f pt/s", r.velocity))
	printKeyValue("rests at", StyleHighlight.Render(fmt.Sprintf("%.1f", r.to.X)))
	printKeyValue("focus", fmt.Sprintf("%d %s %d", r.focusBefore, iconArrow, r.focusAfter))
	printKeyValue("visible", fmt.Sprint(r.visible))
}
