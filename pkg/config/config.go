// Package config loads scene files: a viewport, a list of items and the
// parameters of the layout that arranges them.
//
// Scene files are TOML. Every key is optional; missing keys keep the
// defaults of the layout packages.
//
//	kind = "carousel"
//	items = 15
//
//	[viewport]
//	width = 375
//	height = 667
//
//	[layout]
//	min_scale = 0.8
//
//	[transition]
//	duration = "500ms"
package config

import (
	"math"
	"os"
	"slices"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/lnzlayouts/pkg/errors"
	"github.com/matzehuels/lnzlayouts/pkg/geom"
	"github.com/matzehuels/lnzlayouts/pkg/layout"
	"github.com/matzehuels/lnzlayouts/pkg/stack"
	"github.com/matzehuels/lnzlayouts/pkg/transition"
)

// Kind names a layout.
type Kind string

const (
	KindSnap     Kind = "snap"
	KindInfinite Kind = "infinite"
	KindCarousel Kind = "carousel"
	KindStack    Kind = "stack"
)

// Kinds lists the supported layouts.
var Kinds = []Kind{KindSnap, KindInfinite, KindCarousel, KindStack}

// Default values for a scene.
const (
	DefaultItems  = 15
	DefaultWidth  = 375.0
	DefaultHeight = 667.0
)

// Scene is a parsed scene file.
type Scene struct {
	Kind       Kind       `toml:"kind"`
	Items      int        `toml:"items"`
	Locked     []int      `toml:"locked"`
	Viewport   Viewport   `toml:"viewport"`
	Layout     Layout     `toml:"layout"`
	Stack      Stack      `toml:"stack"`
	Transition Transition `toml:"transition"`
}

// Viewport is the visible area of the scroll view. The offset is measured
// from where the layout rests after its first pass; for the row layouts
// that is the first item centered.
type Viewport struct {
	Width   float64     `toml:"width"`
	Height  float64     `toml:"height"`
	OffsetX float64     `toml:"offset_x"`
	OffsetY float64     `toml:"offset_y"`
	Inset   geom.Insets `toml:"inset"`
}

// Layout holds the row layout parameters. The item size and the vertical
// insets also apply to the stack.
type Layout struct {
	ItemWidth         float64 `toml:"item_width"`
	ItemHeight        float64 `toml:"item_height"`
	Spacing           float64 `toml:"spacing"`
	InsetTop          float64 `toml:"inset_top"`
	InsetBottom       float64 `toml:"inset_bottom"`
	MinInsetLeft      float64 `toml:"min_inset_left"`
	MinInsetRight     float64 `toml:"min_inset_right"`
	CenterFirstItem   bool    `toml:"center_first_item"`
	SnapToCenter      bool    `toml:"snap_to_center"`
	Infinite          bool    `toml:"infinite"`
	InfiniteThreshold float64 `toml:"infinite_threshold"`
	ScalingOffset     float64 `toml:"scaling_offset"`
	MinScale          float64 `toml:"min_scale"`
	HeaderHeight      float64 `toml:"header_height"`
	FooterHeight      float64 `toml:"footer_height"`
}

// Stack holds the stacked layout parameters.
type Stack struct {
	MinSpacing      float64 `toml:"min_spacing"`
	MaxSpacing      float64 `toml:"max_spacing"`
	ZOffset         float64 `toml:"z_offset"`
	Perspective     float64 `toml:"perspective"`
	MaxAngleDegrees float64 `toml:"max_angle_degrees"`
	DeleteVelocity  float64 `toml:"delete_velocity"`
}

// Transition holds the transition parameters.
type Transition struct {
	Duration    time.Duration `toml:"duration"`
	Interpolate bool          `toml:"interpolate"`
	Easing      string        `toml:"easing"`
}

// Default returns a scene with every default applied.
func Default() Scene {
	lc, sc, tc := layout.DefaultConfig(), stack.DefaultConfig(), transition.DefaultOptions()
	return Scene{
		Kind:     KindCarousel,
		Items:    DefaultItems,
		Viewport: Viewport{Width: DefaultWidth, Height: DefaultHeight},
		Layout: Layout{
			ItemWidth:         lc.ItemSize.Width,
			ItemHeight:        lc.ItemSize.Height,
			Spacing:           lc.Spacing,
			InsetTop:          lc.InsetTop,
			InsetBottom:       lc.InsetBottom,
			MinInsetLeft:      lc.MinInsetLeft,
			MinInsetRight:     lc.MinInsetRight,
			CenterFirstItem:   lc.CenterFirstItem,
			SnapToCenter:      lc.SnapToCenter,
			Infinite:          lc.InfiniteEnabled,
			InfiniteThreshold: lc.InfiniteThreshold,
			ScalingOffset:     lc.ScalingOffset,
			MinScale:          lc.MinScale,
			HeaderHeight:      lc.HeaderHeight,
			FooterHeight:      lc.FooterHeight,
		},
		Stack: Stack{
			MinSpacing:      sc.MinSpacing,
			MaxSpacing:      sc.MaxSpacing,
			ZOffset:         sc.ZOffset,
			Perspective:     sc.Perspective,
			MaxAngleDegrees: sc.MaxAngle * 180 / math.Pi,
			DeleteVelocity:  sc.DeleteVelocity,
		},
		Transition: Transition{
			Duration:    tc.Duration,
			Interpolate: tc.Interpolate,
			Easing:      "ease-in-out",
		},
	}
}

// Load reads and validates the scene file at path.
func Load(path string) (Scene, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Scene{}, errors.Wrap(errors.ErrCodeFileNotFound, err, "scene file %s", path)
		}
		return Scene{}, err
	}
	return Parse(data)
}

// Parse decodes and validates a scene. Unknown keys are rejected.
func Parse(data []byte) (Scene, error) {
	s := Default()
	md, err := toml.Decode(string(data), &s)
	if err != nil {
		return Scene{}, errors.Wrap(errors.ErrCodeInvalidFormat, err, "parse scene")
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return Scene{}, errors.New(errors.ErrCodeInvalidConfig, "unknown keys: %s", strings.Join(keys, ", "))
	}
	if err := s.Validate(); err != nil {
		return Scene{}, err
	}
	return s, nil
}

// Validate checks the scene and the configuration of every layout.
func (s Scene) Validate() error {
	if !slices.Contains(Kinds, s.Kind) {
		return errors.New(errors.ErrCodeInvalidLayout, "unknown layout %q", s.Kind)
	}
	if s.Items < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "items must not be negative, got %d", s.Items)
	}
	for _, i := range s.Locked {
		if err := errors.ValidateIndex(i, s.Items); err != nil {
			return err
		}
	}
	if _, ok := transition.Easings[s.Transition.Easing]; !ok {
		return errors.New(errors.ErrCodeInvalidConfig, "unknown easing %q", s.Transition.Easing)
	}
	checks := []error{
		errors.ValidatePositive("viewport width", s.Viewport.Width),
		errors.ValidatePositive("viewport height", s.Viewport.Height),
		s.LayoutConfig().Validate(),
		s.StackConfig().Validate(),
		s.TransitionOptions().Validate(),
	}
	for _, err := range checks {
		if err != nil {
			return err
		}
	}
	return nil
}

// LayoutConfig returns the row layout configuration.
func (s Scene) LayoutConfig() layout.Config {
	l := s.Layout
	return layout.Config{
		ItemSize:          geom.Sz(l.ItemWidth, l.ItemHeight),
		Spacing:           l.Spacing,
		InsetTop:          l.InsetTop,
		InsetBottom:       l.InsetBottom,
		MinInsetLeft:      l.MinInsetLeft,
		MinInsetRight:     l.MinInsetRight,
		CenterFirstItem:   l.CenterFirstItem,
		HeaderHeight:      l.HeaderHeight,
		FooterHeight:      l.FooterHeight,
		SnapToCenter:      l.SnapToCenter,
		InfiniteEnabled:   l.Infinite,
		InfiniteThreshold: l.InfiniteThreshold,
		ScalingOffset:     l.ScalingOffset,
		MinScale:          l.MinScale,
	}
}

// StackConfig returns the stacked layout configuration.
func (s Scene) StackConfig() stack.Config {
	return stack.Config{
		ItemSize:       geom.Sz(s.Layout.ItemWidth, s.Layout.ItemHeight),
		MinSpacing:     s.Stack.MinSpacing,
		MaxSpacing:     s.Stack.MaxSpacing,
		InsetTop:       s.Layout.InsetTop,
		InsetBottom:    s.Layout.InsetBottom,
		ZOffset:        s.Stack.ZOffset,
		Perspective:    s.Stack.Perspective,
		MaxAngle:       s.Stack.MaxAngleDegrees * math.Pi / 180,
		DeleteVelocity: s.Stack.DeleteVelocity,
	}
}

// TransitionOptions returns the transition options.
func (s Scene) TransitionOptions() transition.Options {
	return transition.Options{
		Duration:    s.Transition.Duration,
		Interpolate: s.Transition.Interpolate,
		Easing:      transition.Easings[s.Transition.Easing],
	}
}
