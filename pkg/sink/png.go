package sink

import (
	"bytes"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"math"

	"golang.org/x/image/vector"

	"github.com/matzehuels/lnzlayouts/pkg/errors"
	"github.com/matzehuels/lnzlayouts/pkg/geom"
)

var (
	pngBackground = color.NRGBA{0xff, 0xff, 0xff, 0xff}
	pngViewport   = color.NRGBA{0xf4, 0xf6, 0xf8, 0xff}
	pngBand       = color.NRGBA{0xee, 0xf2, 0xf7, 0xff}
	pngStroke     = color.NRGBA{0x33, 0x33, 0x33, 0xff}
	pngCell       = color.NRGBA{0xff, 0xff, 0xff, 0xff}
	pngFocused    = color.NRGBA{0xd0, 0xe4, 0xff, 0xff}
)

// pngStrokeWidth is the cell outline width in points.
const pngStrokeWidth = 1.5

// PNGOption configures [RenderPNG].
type PNGOption func(*pngRenderer)

type pngRenderer struct {
	scale   float64
	padding float64
	origin  geom.Point
}

// WithScale sets the pixels per point (default 2 for 2x resolution).
func WithScale(s float64) PNGOption { return func(r *pngRenderer) { r.scale = s } }

// WithPNGPadding sets the margin around the viewport.
func WithPNGPadding(p float64) PNGOption { return func(r *pngRenderer) { r.padding = p } }

// RenderPNG rasterises a pass the way [RenderSVG] draws it, without labels.
func RenderPNG(p Pass, opts ...PNGOption) ([]byte, error) {
	r := pngRenderer{scale: 2, padding: 20}
	for _, opt := range opts {
		opt(&r)
	}
	if r.scale <= 0 {
		return nil, errors.New(errors.ErrCodeInvalidInput, "png scale must be positive, got %g", r.scale)
	}

	vp := p.Viewport
	w := int(math.Ceil((vp.Width() + 2*r.padding) * r.scale))
	h := int(math.Ceil((vp.Height() + 2*r.padding) * r.scale))
	if w <= 0 || h <= 0 {
		return nil, errors.New(errors.ErrCodeInvalidInput, "empty viewport %v", vp)
	}
	r.origin = geom.Pt(vp.MinX()-r.padding, vp.MinY()-r.padding)

	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	draw.Draw(img, img.Bounds(), image.NewUniform(pngBackground), image.Point{}, draw.Src)
	r.fill(img, corners(vp), pngViewport)

	for _, a := range paintOrder(p.Attributes) {
		if a.Hidden {
			continue
		}
		if !a.IsCell() {
			r.fill(img, corners(a.Frame), pngBand)
			continue
		}
		quad := a.Transform.Project(a.Frame)
		body := pngCell
		if a.Index == p.Focused {
			body = pngFocused
		}
		r.fill(img, quad, fade(pngStroke, a.Alpha))
		r.fill(img, shrink(quad, pngStrokeWidth), fade(body, a.Alpha))
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "encode png")
	}
	return buf.Bytes(), nil
}

// fill paints the quad pts, given in content coordinates, over dst.
func (r *pngRenderer) fill(dst *image.NRGBA, pts [4]geom.Point, c color.NRGBA) {
	b := dst.Bounds()
	z := vector.NewRasterizer(b.Dx(), b.Dy())
	z.DrawOp = draw.Over
	for i, pt := range pts {
		x := float32((pt.X - r.origin.X) * r.scale)
		y := float32((pt.Y - r.origin.Y) * r.scale)
		if i == 0 {
			z.MoveTo(x, y)
			continue
		}
		z.LineTo(x, y)
	}
	z.ClosePath()
	z.Draw(dst, b, image.NewUniform(c), image.Point{})
}

func corners(rc geom.Rect) [4]geom.Point {
	return [4]geom.Point{
		geom.Pt(rc.MinX(), rc.MinY()),
		geom.Pt(rc.MaxX(), rc.MinY()),
		geom.Pt(rc.MaxX(), rc.MaxY()),
		geom.Pt(rc.MinX(), rc.MaxY()),
	}
}

// shrink moves every corner d points towards the centroid.
func shrink(pts [4]geom.Point, d float64) [4]geom.Point {
	var c geom.Point
	for _, p := range pts {
		c.X += p.X / 4
		c.Y += p.Y / 4
	}
	var out [4]geom.Point
	for i, p := range pts {
		dx, dy := c.X-p.X, c.Y-p.Y
		n := math.Hypot(dx, dy)
		if n <= d {
			out[i] = c
			continue
		}
		out[i] = geom.Pt(p.X+dx*d/n, p.Y+dy*d/n)
	}
	return out
}

func fade(c color.NRGBA, alpha float64) color.NRGBA {
	c.A = uint8(math.Round(float64(c.A) * geom.Clamp(alpha, 0, 1)))
	return c
}
