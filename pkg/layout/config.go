package layout

import (
	"github.com/charmbracelet/log"

	"github.com/matzehuels/lnzlayouts/pkg/errors"
	"github.com/matzehuels/lnzlayouts/pkg/geom"
)

// Default values for [Config].
const (
	DefaultSpacing           = 8.0
	DefaultInset             = 8.0
	DefaultItemWidth         = 100.0
	DefaultItemHeight        = 100.0
	DefaultInfiniteThreshold = 2.0
	DefaultScalingOffset     = 200.0
	DefaultMinScale          = 0.85
)

// Config holds the tunable parameters shared by the row layouts. It may be
// changed between passes; call Invalidate with [InvalidateEverything]
// afterwards.
type Config struct {
	// ItemSize is the size of every item.
	ItemSize geom.Size

	// Spacing is the horizontal gap between consecutive items.
	Spacing float64

	InsetTop    float64
	InsetBottom float64

	// MinInsetLeft and MinInsetRight bound the computed side insets from
	// below.
	MinInsetLeft  float64
	MinInsetRight float64

	// CenterFirstItem widens the side insets so the first and last items can
	// be scrolled to the exact center.
	CenterFirstItem bool

	// HeaderHeight and FooterHeight are used when the delegate does not
	// implement [HeaderFooterSizer].
	HeaderHeight float64
	FooterHeight float64

	// SnapToCenter enables snapping for [Infinite] and [Carousel].
	SnapToCenter bool

	// InfiniteEnabled turns cyclic scrolling on for [Infinite] and [Carousel].
	InfiniteEnabled bool

	// InfiniteThreshold is the multiple of the viewport width one cycle
	// must exceed before cyclic scrolling activates.
	InfiniteThreshold float64

	// ScalingOffset is the distance from the center at which [Carousel]
	// items reach MinScale.
	ScalingOffset float64

	// MinScale is the scale of items at or beyond ScalingOffset.
	MinScale float64
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{
		ItemSize:          geom.Sz(DefaultItemWidth, DefaultItemHeight),
		Spacing:           DefaultSpacing,
		InsetTop:          DefaultInset,
		InsetBottom:       DefaultInset,
		MinInsetLeft:      DefaultInset,
		MinInsetRight:     DefaultInset,
		CenterFirstItem:   true,
		SnapToCenter:      true,
		InfiniteEnabled:   true,
		InfiniteThreshold: DefaultInfiniteThreshold,
		ScalingOffset:     DefaultScalingOffset,
		MinScale:          DefaultMinScale,
	}
}

// Validate reports the first invalid parameter as an INVALID_CONFIG error.
func (c Config) Validate() error {
	checks := []error{
		errors.ValidatePositive("item width", c.ItemSize.Width),
		errors.ValidatePositive("item height", c.ItemSize.Height),
		errors.ValidateNonNegative("spacing", c.Spacing),
		errors.ValidateNonNegative("inset top", c.InsetTop),
		errors.ValidateNonNegative("inset bottom", c.InsetBottom),
		errors.ValidateNonNegative("minimum inset left", c.MinInsetLeft),
		errors.ValidateNonNegative("minimum inset right", c.MinInsetRight),
		errors.ValidateNonNegative("header height", c.HeaderHeight),
		errors.ValidateNonNegative("footer height", c.FooterHeight),
		errors.ValidatePositive("infinite threshold", c.InfiniteThreshold),
		errors.ValidatePositive("scaling offset", c.ScalingOffset),
	}
	for _, err := range checks {
		if err != nil {
			return err
		}
	}
	if c.MinScale <= 0 || c.MinScale > 1 {
		return errors.New(errors.ErrCodeInvalidConfig, "minimum scale must be within (0, 1], got %v", c.MinScale)
	}
	return nil
}

// pageWidth is the distance between the origins of consecutive items.
func (c Config) pageWidth() float64 { return c.ItemSize.Width + c.Spacing }

// Option configures a layout.
type Option func(*options)

type options struct {
	config    Config
	focus     FocusChangeDelegate
	logger    *log.Logger
	name      string
	threshold float64
}

func buildOptions(name string, opts []Option) options {
	o := options{config: DefaultConfig(), name: name}
	for _, opt := range opts {
		opt(&o)
	}
	if o.threshold > 0 {
		o.config.InfiniteThreshold = o.threshold
	}
	return o
}

// WithConfig replaces the default configuration.
func WithConfig(c Config) Option { return func(o *options) { o.config = c } }

// WithFocusDelegate sets the delegate notified of focus changes. Without it
// the collection's delegate is used when it implements [FocusChangeDelegate].
func WithFocusDelegate(d FocusChangeDelegate) Option { return func(o *options) { o.focus = d } }

// WithLogger enables debug traces of invalidation decisions.
func WithLogger(l *log.Logger) Option { return func(o *options) { o.logger = l } }

// WithThreshold overrides the infinite scrolling activation multiple.
func WithThreshold(t float64) Option { return func(o *options) { o.threshold = t } }

// WithName sets the layout name reported to observability hooks.
func WithName(name string) Option { return func(o *options) { o.name = name } }
