package transition

import (
	"math"
	"time"

	"github.com/matzehuels/lnzlayouts/pkg/errors"
)

// DefaultDuration is the length of a transition.
const DefaultDuration = time.Second

// Easing maps linear progress in [0, 1] to eased progress. It must map 0 to
// 0 and 1 to 1.
type Easing func(t float64) float64

// Linear does not ease.
func Linear(t float64) float64 { return t }

// EaseInOut accelerates through the first half and decelerates through the
// second.
func EaseInOut(t float64) float64 {
	if t < 0.5 {
		return 4 * t * t * t
	}
	return 1 - math.Pow(-2*t+2, 3)/2
}

// EaseOut decelerates towards the end.
func EaseOut(t float64) float64 { return 1 - math.Pow(1-t, 3) }

// Easings maps names accepted in configuration files to easing functions.
var Easings = map[string]Easing{
	"linear":      Linear,
	"ease-in-out": EaseInOut,
	"ease-out":    EaseOut,
}

// Options configures an [Animator].
type Options struct {
	// Duration is the length of the whole run.
	Duration time.Duration

	// Interpolate cross-fades the destination content inside the target
	// while presenting. Without it the content appears at completion.
	Interpolate bool

	// Reversed selects the dismiss sequence.
	Reversed bool

	// Easing shapes every keyframe. Nil means EaseInOut.
	Easing Easing
}

// DefaultOptions returns the default options.
func DefaultOptions() Options {
	return Options{
		Duration:    DefaultDuration,
		Interpolate: true,
		Easing:      EaseInOut,
	}
}

// Validate reports invalid options as an INVALID_CONFIG error.
func (o Options) Validate() error {
	if o.Duration <= 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "transition duration must be positive, got %s", o.Duration)
	}
	return nil
}

// Option configures an [Animator].
type Option func(*Options)

// WithOptions replaces all options.
func WithOptions(o Options) Option { return func(dst *Options) { *dst = o } }

// WithDuration sets the run length.
func WithDuration(d time.Duration) Option { return func(o *Options) { o.Duration = d } }

// WithInterpolation enables or disables the content cross-fade.
func WithInterpolation(on bool) Option { return func(o *Options) { o.Interpolate = on } }

// WithEasing sets the easing function.
func WithEasing(e Easing) Option { return func(o *Options) { o.Easing = e } }

// Reversed selects the dismiss sequence.
func Reversed() Option { return func(o *Options) { o.Reversed = true } }
