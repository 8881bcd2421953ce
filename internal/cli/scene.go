package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/lnzlayouts/pkg/config"
)

// sceneFlags are the scene flags shared by the layout commands. A scene file
// given with --config is loaded first; flags the user set explicitly
// override its values.
type sceneFlags struct {
	path  string
	scene config.Scene
}

// register adds the scene flags to cmd, with defaults taken from kind.
func (f *sceneFlags) register(cmd *cobra.Command, kind config.Kind) {
	f.scene = config.Default()
	f.scene.Kind = kind

	fs := cmd.Flags()
	fs.StringVarP(&f.path, "config", "c", "", "scene file (TOML)")
	fs.IntVarP(&f.scene.Items, "items", "n", f.scene.Items, "number of items")
	fs.IntSliceVar(&f.scene.Locked, "locked", nil, "indexes of items that cannot be deleted")
	fs.Float64Var(&f.scene.Viewport.Width, "width", f.scene.Viewport.Width, "viewport width")
	fs.Float64Var(&f.scene.Viewport.Height, "height", f.scene.Viewport.Height, "viewport height")
	fs.Float64Var(&f.scene.Viewport.OffsetX, "offset-x", f.scene.Viewport.OffsetX, "horizontal content offset")
	fs.Float64Var(&f.scene.Viewport.OffsetY, "offset-y", f.scene.Viewport.OffsetY, "vertical content offset")
}

// registerKind adds the --kind flag for commands that accept every layout.
func (f *sceneFlags) registerKind(cmd *cobra.Command) {
	cmd.Flags().StringVarP((*string)(&f.scene.Kind), "kind", "k", string(f.scene.Kind),
		fmt.Sprintf("layout: %v", config.Kinds))
	_ = cmd.RegisterFlagCompletionFunc("kind", completeKinds)
}

// load returns the scene described by the file and the flags.
func (f *sceneFlags) load(cmd *cobra.Command) (config.Scene, error) {
	if f.path == "" {
		if err := f.scene.Validate(); err != nil {
			return config.Scene{}, err
		}
		return f.scene, nil
	}

	scene, err := config.Load(f.path)
	if err != nil {
		return config.Scene{}, fmt.Errorf("load scene %s: %w", f.path, err)
	}

	fs := cmd.Flags()
	if fs.Changed("kind") {
		scene.Kind = f.scene.Kind
	}
	if fs.Changed("items") {
		scene.Items = f.scene.Items
	}
	if fs.Changed("locked") {
		scene.Locked = f.scene.Locked
	}
	if fs.Changed("width") {
		scene.Viewport.Width = f.scene.Viewport.Width
	}
	if fs.Changed("height") {
		scene.Viewport.Height = f.scene.Viewport.Height
	}
	if fs.Changed("offset-x") {
		scene.Viewport.OffsetX = f.scene.Viewport.OffsetX
	}
	if fs.Changed("offset-y") {
		scene.Viewport.OffsetY = f.scene.Viewport.OffsetY
	}

	if err := scene.Validate(); err != nil {
		return config.Scene{}, err
	}
	return scene, nil
}
