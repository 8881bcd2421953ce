package sink

import (
	"bytes"
	"cmp"
	"fmt"
	"html"
	"slices"
	"strconv"
	"strings"

	"github.com/matzehuels/lnzlayouts/pkg/geom"
	"github.com/matzehuels/lnzlayouts/pkg/layout"
)

const passCSS = `
    .viewport { fill: none; stroke: #888; stroke-dasharray: 6 4; }
    .band { fill: #eef2f7; stroke: #b8c2cc; }
    .cell { fill: #ffffff; stroke: #333; stroke-width: 1.5; }
    .cell.focused { fill: #d0e4ff; }
    .label { font: 12px sans-serif; fill: #333; text-anchor: middle; dominant-baseline: middle; }`

// SVGOption configures [RenderSVG].
type SVGOption func(*svgRenderer)

type svgRenderer struct {
	titles  []string
	padding float64
}

// WithTitles labels cells with item titles instead of indexes.
func WithTitles(titles []string) SVGOption { return func(r *svgRenderer) { r.titles = titles } }

// WithPadding sets the margin around the viewport.
func WithPadding(p float64) SVGOption { return func(r *svgRenderer) { r.padding = p } }

// RenderSVG draws a pass in viewport coordinates. Cells are painted in
// z-index order with their transforms projected.
func RenderSVG(p Pass, opts ...SVGOption) []byte {
	r := svgRenderer{padding: 20}
	for _, opt := range opts {
		opt(&r)
	}

	vp := p.Viewport
	w, h := vp.Width()+2*r.padding, vp.Height()+2*r.padding

	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.1f %.1f" width="%.0f" height="%.0f">`+"\n",
		w, h, w, h)
	fmt.Fprintf(&buf, "  <style>%s\n  </style>\n", passCSS)
	fmt.Fprintf(&buf, "  <g transform=\"translate(%.2f %.2f)\">\n", r.padding-vp.MinX(), r.padding-vp.MinY())

	for _, a := range paintOrder(p.Attributes) {
		if a.Hidden {
			continue
		}
		if a.IsCell() {
			r.renderCell(&buf, a, a.Index == p.Focused)
			continue
		}
		f := a.Frame
		fmt.Fprintf(&buf, "    <rect class=\"band\" data-kind=\"%s\" x=\"%.2f\" y=\"%.2f\" width=\"%.2f\" height=\"%.2f\"/>\n",
			a.Kind, f.MinX(), f.MinY(), f.Width(), f.Height())
	}

	fmt.Fprintf(&buf, "    <rect class=\"viewport\" x=\"%.2f\" y=\"%.2f\" width=\"%.2f\" height=\"%.2f\"/>\n",
		vp.MinX(), vp.MinY(), vp.Width(), vp.Height())
	buf.WriteString("  </g>\n</svg>\n")
	return buf.Bytes()
}

// paintOrder returns attrs sorted back to front.
func paintOrder(attrs []layout.Attributes) []layout.Attributes {
	attrs = slices.Clone(attrs)
	slices.SortStableFunc(attrs, func(a, b layout.Attributes) int {
		return cmp.Or(cmp.Compare(a.ZIndex, b.ZIndex), cmp.Compare(a.Index, b.Index))
	})
	return attrs
}

func (r *svgRenderer) renderCell(buf *bytes.Buffer, a layout.Attributes, focused bool) {
	class := "cell"
	if focused {
		class += " focused"
	}
	fmt.Fprintf(buf, "    <polygon id=\"cell-%d\" class=\"%s\" points=\"%s\" opacity=\"%s\"/>\n",
		a.Index, class, points(a.Transform.Project(a.Frame)), strconv.FormatFloat(a.Alpha, 'f', -1, 64))

	c := a.Transform.Bounds(a.Frame).Center()
	fmt.Fprintf(buf, "    <text class=\"label\" x=\"%.2f\" y=\"%.2f\" opacity=\"%s\">%s</text>\n",
		c.X, c.Y, strconv.FormatFloat(a.Alpha, 'f', -1, 64), html.EscapeString(r.label(a.Index)))
}

func (r *svgRenderer) label(index int) string {
	if index >= 0 && index < len(r.titles) {
		return r.titles[index]
	}
	return strconv.Itoa(index)
}

func points(pts [4]geom.Point) string {
	parts := make([]string, len(pts))
	for i, p := range pts {
		parts[i] = fmt.Sprintf("%.2f,%.2f", p.X, p.Y)
	}
	return strings.Join(parts, " ")
}
