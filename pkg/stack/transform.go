package stack

import (
	"math"

	"github.com/matzehuels/lnzlayouts/pkg/geom"
)

// saturation is the item count beyond which the top tilt stops growing.
const saturation = 5

// AngleAtTop returns the tilt, in radians, of a card at the top of the
// viewport in a stack of count cards. It grows from π/30 for a single card
// to π/15 for five or more.
func AngleAtTop(count int) float64 {
	n := max(min(count, saturation), 1)
	return math.Pi/30 + math.Pi/30*float64(n-1)/4
}

// tilt interpolates between AngleAtTop(count) and maxAngle by the card's
// vertical position within a viewport of the given height.
func tilt(count int, maxAngle, y, height float64) float64 {
	top := AngleAtTop(count)
	if height <= 0 {
		return top
	}
	return top + (maxAngle-top)*geom.Clamp(y, 0, height)/height
}

// TransformForItem returns the transform of a card of the given size rotated
// by angle radians about the x axis.
//
// The card pivots about an axis r = h/2 + |zOffset/sin θ| behind it: it is
// translated by (0, r(1-cos θ), -r|sin θ|) in its own plane before the
// rotation, and the perspective term is applied last. The origin does not
// affect the result.
func TransformForItem(cfg Config, _ geom.Point, size geom.Size, angle float64) geom.Transform3D {
	sin, cos := math.Sincos(angle)
	if math.Abs(sin) < 1e-12 {
		return geom.Perspective(cfg.Perspective)
	}
	r := size.Height/2 + math.Abs(cfg.ZOffset/sin)
	t := geom.Translation(0, r*(1-cos), -r*math.Abs(sin))
	return t.Then(geom.RotationX(angle)).Then(geom.Perspective(cfg.Perspective))
}
