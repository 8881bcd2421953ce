// Package geom provides the value types shared by every layout: points,
// sizes, rectangles, edge insets and 3-D transforms.
//
// Coordinates follow the scroll-view convention: the origin is the top-left
// corner, X grows to the right and Y grows downward. A viewport is described
// by a [Rect] whose origin is the current content offset.
package geom

import (
	"fmt"
	"math"
)

// Point is a location in layout coordinates.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Pt is shorthand for Point{x, y}.
func Pt(x, y float64) Point { return Point{X: x, Y: y} }

// Add returns p translated by q.
func (p Point) Add(q Point) Point { return Point{p.X + q.X, p.Y + q.Y} }

// Sub returns p translated by -q.
func (p Point) Sub(q Point) Point { return Point{p.X - q.X, p.Y - q.Y} }

func (p Point) String() string { return fmt.Sprintf("(%.2f, %.2f)", p.X, p.Y) }

// Size is a width and height pair.
type Size struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Sz is shorthand for Size{w, h}.
func Sz(w, h float64) Size { return Size{Width: w, Height: h} }

// IsZero reports whether both dimensions are zero.
func (s Size) IsZero() bool { return s.Width == 0 && s.Height == 0 }

// Sub returns the component-wise difference s - t.
func (s Size) Sub(t Size) Size { return Size{s.Width - t.Width, s.Height - t.Height} }

func (s Size) String() string { return fmt.Sprintf("%.2fx%.2f", s.Width, s.Height) }

// Rect is an axis-aligned rectangle.
type Rect struct {
	Origin Point `json:"origin"`
	Size   Size  `json:"size"`
}

// R builds a Rect from its origin and dimensions.
func R(x, y, w, h float64) Rect {
	return Rect{Origin: Point{x, y}, Size: Size{w, h}}
}

func (r Rect) MinX() float64 { return r.Origin.X }
func (r Rect) MinY() float64 { return r.Origin.Y }
func (r Rect) MaxX() float64 { return r.Origin.X + r.Size.Width }
func (r Rect) MaxY() float64 { return r.Origin.Y + r.Size.Height }
func (r Rect) MidX() float64 { return r.Origin.X + r.Size.Width/2 }
func (r Rect) MidY() float64 { return r.Origin.Y + r.Size.Height/2 }

// Width returns the horizontal extent.
func (r Rect) Width() float64 { return r.Size.Width }

// Height returns the vertical extent.
func (r Rect) Height() float64 { return r.Size.Height }

// Center returns the midpoint of the rectangle.
func (r Rect) Center() Point { return Point{r.MidX(), r.MidY()} }

// Offset returns r moved by (dx, dy).
func (r Rect) Offset(dx, dy float64) Rect {
	r.Origin.X += dx
	r.Origin.Y += dy
	return r
}

// WithOrigin returns r moved so that its origin is p.
func (r Rect) WithOrigin(p Point) Rect {
	r.Origin = p
	return r
}

// Contains reports whether p lies within r, edges included.
func (r Rect) Contains(p Point) bool {
	return p.X >= r.MinX() && p.X <= r.MaxX() && p.Y >= r.MinY() && p.Y <= r.MaxY()
}

// Intersects reports whether r and s overlap with a non-empty area.
func (r Rect) Intersects(s Rect) bool {
	return r.MinX() < s.MaxX() && s.MinX() < r.MaxX() &&
		r.MinY() < s.MaxY() && s.MinY() < r.MaxY()
}

// Lerp interpolates origin and size between r and s.
func (r Rect) Lerp(s Rect, t float64) Rect {
	return Rect{
		Origin: Point{lerp(r.Origin.X, s.Origin.X, t), lerp(r.Origin.Y, s.Origin.Y, t)},
		Size:   Size{lerp(r.Size.Width, s.Size.Width, t), lerp(r.Size.Height, s.Size.Height, t)},
	}
}

func (r Rect) String() string {
	return fmt.Sprintf("{%s %s}", r.Origin, r.Size)
}

// Insets are distances inset from each edge of a rectangle.
type Insets struct {
	Top    float64 `json:"top" toml:"top"`
	Left   float64 `json:"left" toml:"left"`
	Bottom float64 `json:"bottom" toml:"bottom"`
	Right  float64 `json:"right" toml:"right"`
}

// Clamp limits v to [lo, hi]. When hi < lo the result is lo.
func Clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(v, hi))
}

func lerp(a, b, t float64) float64 { return a + t*(b-a) }

// Lerp is the scalar linear interpolation a + t(b-a).
func Lerp(a, b, t float64) float64 { return lerp(a, b, t) }

const epsilon = 1e-9

// Equal reports whether a and b are within a small tolerance.
func Equal(a, b float64) bool { return math.Abs(a-b) < epsilon }
