package stack

import (
	"math"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/lnzlayouts/pkg/errors"
	"github.com/matzehuels/lnzlayouts/pkg/geom"
)

// Default values for [Config].
const (
	DefaultSpacing        = 100.0
	DefaultInset          = 8.0
	DefaultZOffset        = -50.0
	DefaultPerspective    = -1.0 / 600.0
	DefaultMaxAngle       = math.Pi / 10
	DefaultDeleteVelocity = 800.0
)

// Config holds the stack layout parameters.
type Config struct {
	// ItemSize is used when the delegate does not implement
	// layout.ItemSizer.
	ItemSize geom.Size

	// MinSpacing is the vertical distance between consecutive cards.
	// MaxSpacing lets short stacks spread out to fill the viewport; a value
	// below MinSpacing is treated as MinSpacing.
	MinSpacing float64
	MaxSpacing float64

	InsetTop    float64
	InsetBottom float64

	// ZOffset is how far behind its plane a card pivots.
	ZOffset float64

	// Perspective is the depth-projection term, typically -1/eyeDistance.
	Perspective float64

	// MaxAngle is the tilt of a card at the bottom of the viewport, in
	// radians.
	MaxAngle float64

	// DeleteVelocity is the leftward release speed, in points per second,
	// that commits a deletion regardless of offset.
	DeleteVelocity float64
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{
		ItemSize:       geom.Sz(100, 100),
		MinSpacing:     DefaultSpacing,
		MaxSpacing:     DefaultSpacing,
		InsetTop:       DefaultInset,
		InsetBottom:    DefaultInset,
		ZOffset:        DefaultZOffset,
		Perspective:    DefaultPerspective,
		MaxAngle:       DefaultMaxAngle,
		DeleteVelocity: DefaultDeleteVelocity,
	}
}

// Validate reports the first invalid parameter as an INVALID_CONFIG error.
func (c Config) Validate() error {
	checks := []error{
		errors.ValidatePositive("item width", c.ItemSize.Width),
		errors.ValidatePositive("item height", c.ItemSize.Height),
		errors.ValidatePositive("minimum spacing", c.MinSpacing),
		errors.ValidateNonNegative("maximum spacing", c.MaxSpacing),
		errors.ValidateNonNegative("inset top", c.InsetTop),
		errors.ValidateNonNegative("inset bottom", c.InsetBottom),
		errors.ValidateRange("maximum angle", c.MaxAngle, 0, math.Pi/2),
		errors.ValidatePositive("delete velocity", c.DeleteVelocity),
	}
	for _, err := range checks {
		if err != nil {
			return err
		}
	}
	if c.Perspective > 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "perspective must not be positive, got %v", c.Perspective)
	}
	return nil
}

// Option configures a [Stack].
type Option func(*Stack)

// WithConfig replaces the default configuration.
func WithConfig(c Config) Option { return func(s *Stack) { s.cfg = c } }

// WithDeletionDelegate sets the delegate consulted for deletions. Without it
// the collection's delegate is used when it implements [DeletionDelegate].
func WithDeletionDelegate(d DeletionDelegate) Option { return func(s *Stack) { s.deletion = d } }

// WithLogger enables debug traces of gesture handling.
func WithLogger(l *log.Logger) Option { return func(s *Stack) { s.logger = l } }
