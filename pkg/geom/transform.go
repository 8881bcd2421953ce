package geom

import (
	"fmt"
	"math"

	"golang.org/x/image/math/f64"
)

// Transform3D is a 4x4 homogeneous transform using the row-vector
// convention: a point p maps to p·M. Element names follow the usual
// Mrc layout, so M41, M42 and M43 hold the translation and M34 is the
// perspective (depth-projection) term.
//
// The zero value is not the identity; use [Identity].
type Transform3D struct {
	m f64.Mat4
}

// Identity returns the identity transform.
func Identity() Transform3D {
	return Transform3D{m: f64.Mat4{
		1, 0, 0, 0,
		0, 1, 0, 0,
		0, 0, 1, 0,
		0, 0, 0, 1,
	}}
}

// FromMat4 wraps raw row-major storage.
func FromMat4(m f64.Mat4) Transform3D { return Transform3D{m: m} }

// Mat4 returns the row-major storage.
func (t Transform3D) Mat4() f64.Mat4 { return t.m }

// At returns the element at 1-based row r and column c.
func (t Transform3D) At(r, c int) float64 { return t.m[(r-1)*4+(c-1)] }

func (t Transform3D) M11() float64 { return t.m[0] }
func (t Transform3D) M22() float64 { return t.m[5] }
func (t Transform3D) M33() float64 { return t.m[10] }
func (t Transform3D) M34() float64 { return t.m[11] }
func (t Transform3D) M41() float64 { return t.m[12] }
func (t Transform3D) M42() float64 { return t.m[13] }
func (t Transform3D) M43() float64 { return t.m[14] }
func (t Transform3D) M44() float64 { return t.m[15] }

// Translation returns a transform that moves points by (tx, ty, tz).
func Translation(tx, ty, tz float64) Transform3D {
	t := Identity()
	t.m[12], t.m[13], t.m[14] = tx, ty, tz
	return t
}

// Scaling returns a transform that scales each axis.
func Scaling(sx, sy, sz float64) Transform3D {
	t := Identity()
	t.m[0], t.m[5], t.m[10] = sx, sy, sz
	return t
}

// RotationX returns a rotation of angle radians about the x axis.
func RotationX(angle float64) Transform3D {
	s, c := math.Sincos(angle)
	t := Identity()
	t.m[5], t.m[6] = c, s
	t.m[9], t.m[10] = -s, c
	return t
}

// Perspective returns the identity with the depth-projection term set to p.
// A typical value is -1/d for an eye distance d.
func Perspective(p float64) Transform3D {
	t := Identity()
	t.m[11] = p
	return t
}

// Concat returns the transform that applies a first and then b.
func Concat(a, b Transform3D) Transform3D {
	return Transform3D{m: mul16(a.m, b.m)}
}

// Then is Concat(t, next).
func (t Transform3D) Then(next Transform3D) Transform3D { return Concat(t, next) }

// WithPerspective returns t with its depth-projection term replaced.
func (t Transform3D) WithPerspective(p float64) Transform3D {
	t.m[11] = p
	return t
}

// Apply maps the point (x, y, z) through t and performs the perspective divide.
func (t Transform3D) Apply(x, y, z float64) (float64, float64, float64) {
	m := t.m
	ox := x*m[0] + y*m[4] + z*m[8] + m[12]
	oy := x*m[1] + y*m[5] + z*m[9] + m[13]
	oz := x*m[2] + y*m[6] + z*m[10] + m[14]
	w := x*m[3] + y*m[7] + z*m[11] + m[15]
	if w == 0 {
		return ox, oy, oz
	}
	return ox / w, oy / w, oz / w
}

// Project maps the corners of r through t about the center of r. The
// corners are returned clockwise from the top left.
func (t Transform3D) Project(r Rect) [4]Point {
	mid := r.Center()
	hw, hh := r.Width()/2, r.Height()/2
	var out [4]Point
	for i, c := range [4]Point{{-hw, -hh}, {hw, -hh}, {hw, hh}, {-hw, hh}} {
		x, y, _ := t.Apply(c.X, c.Y, 0)
		out[i] = Pt(mid.X+x, mid.Y+y)
	}
	return out
}

// Bounds returns the bounding box of r projected through t about its
// center.
func (t Transform3D) Bounds(r Rect) Rect {
	if t.IsIdentity() {
		return r
	}
	pts := t.Project(r)
	return BoundingBox(pts[:]...)
}

// BoundingBox returns the smallest rectangle containing pts.
func BoundingBox(pts ...Point) Rect {
	if len(pts) == 0 {
		return Rect{}
	}
	minX, minY, maxX, maxY := pts[0].X, pts[0].Y, pts[0].X, pts[0].Y
	for _, p := range pts[1:] {
		minX, maxX = min(minX, p.X), max(maxX, p.X)
		minY, maxY = min(minY, p.Y), max(maxY, p.Y)
	}
	return R(minX, minY, maxX-minX, maxY-minY)
}

// Translate returns a transform that translates before applying t.
func (t Transform3D) Translate(tx, ty, tz float64) Transform3D {
	return Concat(Translation(tx, ty, tz), t)
}

// Scale returns a transform that scales before applying t.
func (t Transform3D) Scale(sx, sy, sz float64) Transform3D {
	return Concat(Scaling(sx, sy, sz), t)
}

// RotateX returns a transform that rotates about the x axis before applying
// t.
func (t Transform3D) RotateX(angle float64) Transform3D {
	return Concat(RotationX(angle), t)
}

// Lerp interpolates each element between t and u.
func (t Transform3D) Lerp(u Transform3D, f float64) Transform3D {
	var out f64.Mat4
	for i := range out {
		out[i] = lerp(t.m[i], u.m[i], f)
	}
	return Transform3D{m: out}
}

// IsIdentity reports whether t is the identity within tolerance.
func (t Transform3D) IsIdentity() bool {
	return t.Equal(Identity())
}

// Equal compares element-wise within tolerance.
func (t Transform3D) Equal(u Transform3D) bool {
	for i := range t.m {
		if math.Abs(t.m[i]-u.m[i]) > 1e-9 {
			return false
		}
	}
	return true
}

// MarshalText renders the matrix as 16 space separated numbers.
func (t Transform3D) MarshalText() ([]byte, error) {
	m := t.m
	return []byte(fmt.Sprintf("%g %g %g %g %g %g %g %g %g %g %g %g %g %g %g %g",
		m[0], m[1], m[2], m[3], m[4], m[5], m[6], m[7],
		m[8], m[9], m[10], m[11], m[12], m[13], m[14], m[15])), nil
}

// UnmarshalText parses the form produced by MarshalText.
func (t *Transform3D) UnmarshalText(b []byte) error {
	var m f64.Mat4
	_, err := fmt.Sscanf(string(b), "%g %g %g %g %g %g %g %g %g %g %g %g %g %g %g %g",
		&m[0], &m[1], &m[2], &m[3], &m[4], &m[5], &m[6], &m[7],
		&m[8], &m[9], &m[10], &m[11], &m[12], &m[13], &m[14], &m[15])
	if err != nil {
		return fmt.Errorf("parse transform: %w", err)
	}
	t.m = m
	return nil
}

func (t Transform3D) String() string {
	m := t.m
	return fmt.Sprintf("%+.3f %+.3f %+.3f %+.3f\n%+.3f %+.3f %+.3f %+.3f\n%+.3f %+.3f %+.3f %+.3f\n%+.3f %+.3f %+.3f %+.3f",
		m[0], m[1], m[2], m[3], m[4], m[5], m[6], m[7], m[8], m[9], m[10], m[11], m[12], m[13], m[14], m[15])
}

func mul16(a, b f64.Mat4) f64.Mat4 {
	// +0 +1 +2 +3
	// +4 +5 +6 +7
	// +8 +9 10 11
	// 12 13 14 15
	return f64.Mat4{
		a[+0]*b[+0] + a[+1]*b[+4] + a[+2]*b[+8] + a[+3]*b[12],
		a[+0]*b[+1] + a[+1]*b[+5] + a[+2]*b[+9] + a[+3]*b[13],
		a[+0]*b[+2] + a[+1]*b[+6] + a[+2]*b[10] + a[+3]*b[14],
		a[+0]*b[+3] + a[+1]*b[+7] + a[+2]*b[11] + a[+3]*b[15],

		a[+4]*b[+0] + a[+5]*b[+4] + a[+6]*b[+8] + a[+7]*b[12],
		a[+4]*b[+1] + a[+5]*b[+5] + a[+6]*b[+9] + a[+7]*b[13],
		a[+4]*b[+2] + a[+5]*b[+6] + a[+6]*b[10] + a[+7]*b[14],
		a[+4]*b[+3] + a[+5]*b[+7] + a[+6]*b[11] + a[+7]*b[15],

		a[+8]*b[+0] + a[+9]*b[+4] + a[10]*b[+8] + a[11]*b[12],
		a[+8]*b[+1] + a[+9]*b[+5] + a[10]*b[+9] + a[11]*b[13],
		a[+8]*b[+2] + a[+9]*b[+6] + a[10]*b[10] + a[11]*b[14],
		a[+8]*b[+3] + a[+9]*b[+7] + a[10]*b[11] + a[11]*b[15],

		a[12]*b[+0] + a[13]*b[+4] + a[14]*b[+8] + a[15]*b[12],
		a[12]*b[+1] + a[13]*b[+5] + a[14]*b[+9] + a[15]*b[13],
		a[12]*b[+2] + a[13]*b[+6] + a[14]*b[10] + a[15]*b[14],
		a[12]*b[+3] + a[13]*b[+7] + a[14]*b[11] + a[15]*b[15],
	}
}
