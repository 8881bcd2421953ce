package sink

import (
	"bytes"
	"encoding/json"
	"image/color"
	"image/png"
	"math"
	"strings"
	"testing"

	"github.com/matzehuels/lnzlayouts/pkg/errors"
	"github.com/matzehuels/lnzlayouts/pkg/geom"
	"github.com/matzehuels/lnzlayouts/pkg/layout"
	"github.com/matzehuels/lnzlayouts/pkg/scroll"
	"github.com/matzehuels/lnzlayouts/pkg/stack"
	"github.com/matzehuels/lnzlayouts/pkg/transition"
)

func carouselPass(t *testing.T) (Pass, *scroll.List) {
	t.Helper()
	list := scroll.NewList(5)
	v := scroll.New(list, geom.R(0, 0, 300, 200))
	v.SetLayout(layout.NewCarousel(v))
	return Capture("carousel", v), list
}

func TestCapture(t *testing.T) {
	p, _ := carouselPass(t)
	if p.Kind != "carousel" || p.Focused != 0 {
		t.Errorf("pass = %+v", p)
	}
	if p.ContentSize.Width != 732 {
		t.Errorf("content width = %v, want 732", p.ContentSize.Width)
	}
	if len(p.Attributes) != 2 {
		t.Errorf("%d attributes, want 2", len(p.Attributes))
	}
}

func TestRenderJSON(t *testing.T) {
	p, list := carouselPass(t)
	data, err := RenderJSON(p, WithJSONTitles(list.Titles), WithJSONIndent())
	if err != nil {
		t.Fatal(err)
	}

	var out struct {
		Kind     string `json:"kind"`
		Focused  *int   `json:"focused"`
		Elements []struct {
			Index     int     `json:"index"`
			Title     string  `json:"title"`
			Transform string  `json:"transform"`
			Alpha     float64 `json:"alpha"`
		} `json:"elements"`
	}
	if err := json.Unmarshal(data, &out); err != nil {
		t.Fatalf("invalid JSON: %v\n%s", err, data)
	}
	if out.Kind != "carousel" || out.Focused == nil || *out.Focused != 0 {
		t.Errorf("header = %+v", out)
	}
	if len(out.Elements) != 2 || out.Elements[0].Title != "item 0" {
		t.Fatalf("elements = %+v", out.Elements)
	}
	// The centered item is unscaled; its neighbour is not.
	if out.Elements[0].Transform != "" || out.Elements[1].Transform == "" {
		t.Errorf("transforms = %q, %q", out.Elements[0].Transform, out.Elements[1].Transform)
	}
}

func TestRenderJSONWithoutFocus(t *testing.T) {
	v := scroll.New(scroll.NewList(3), geom.R(0, 0, 320, 480))
	v.SetLayout(stack.New(v))
	data, err := RenderJSON(Capture("stack", v))
	if err != nil {
		t.Fatal(err)
	}
	if strings.Contains(string(data), `"focused"`) {
		t.Errorf("stack pass reports focus: %s", data)
	}
}

func TestRenderSVG(t *testing.T) {
	p, list := carouselPass(t)
	svg := string(RenderSVG(p, WithTitles(list.Titles), WithPadding(10)))

	if !strings.HasPrefix(svg, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 320.0 220.0"`) {
		t.Errorf("unexpected root: %.120s", svg)
	}
	for _, want := range []string{`id="cell-0" class="cell focused"`, `id="cell-1" class="cell"`, ">item 1</text>", `class="viewport"`} {
		if !strings.Contains(svg, want) {
			t.Errorf("missing %q", want)
		}
	}
	// Higher z-index paints later.
	if strings.Index(svg, `id="cell-1"`) > strings.Index(svg, `id="cell-0"`) {
		t.Error("focused cell is painted below its neighbour")
	}
}

func TestRenderSVGSkipsHidden(t *testing.T) {
	a := layout.NewAttributes(0, geom.R(0, 0, 10, 10))
	a.Hidden = true
	svg := string(RenderSVG(Pass{Viewport: geom.R(0, 0, 100, 100), Focused: -1, Attributes: []layout.Attributes{a}}))
	if strings.Contains(svg, "cell-0") {
		t.Error("hidden cell drawn")
	}
}

func TestRenderFramesJSON(t *testing.T) {
	frames := []transition.Frame{{Progress: 0}, {Progress: 1, ContentAlpha: 1}}
	data, err := RenderFramesJSON("run-1", frames)
	if err != nil {
		t.Fatal(err)
	}
	var out struct {
		ID     string             `json:"id"`
		Frames []transition.Frame `json:"frames"`
	}
	if err := json.Unmarshal(data, &out); err != nil {
		t.Fatal(err)
	}
	if out.ID != "run-1" || len(out.Frames) != 2 || out.Frames[1].ContentAlpha != 1 {
		t.Errorf("decoded = %+v", out)
	}
}

func TestRenderPNG(t *testing.T) {
	p, _ := carouselPass(t)
	data, err := RenderPNG(p, WithScale(1), WithPNGPadding(10))
	if err != nil {
		t.Fatal(err)
	}
	img, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("invalid PNG: %v", err)
	}
	if b := img.Bounds(); b.Dx() != 320 || b.Dy() != 220 {
		t.Fatalf("size = %v, want 320x220", b.Size())
	}

	if got := color.NRGBAModel.Convert(img.At(2, 2)); got != pngBackground {
		t.Errorf("padding pixel = %v, want background", got)
	}
	for _, a := range p.Attributes {
		if a.Index != p.Focused {
			continue
		}
		c := a.Transform.Bounds(a.Frame).Center()
		x, y := int(c.X-p.Viewport.MinX()+10), int(c.Y-p.Viewport.MinY()+10)
		if got := color.NRGBAModel.Convert(img.At(x, y)); got == pngBackground || got == pngViewport {
			t.Errorf("focused cell centre at (%d, %d) not painted: %v", x, y, got)
		}
	}
}

func TestRenderPNGRejectsBadScale(t *testing.T) {
	p, _ := carouselPass(t)
	if _, err := RenderPNG(p, WithScale(0)); !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("RenderPNG(scale 0) error = %v, want INVALID_INPUT", err)
	}
}

func TestShrink(t *testing.T) {
	sq := corners(geom.R(0, 0, 10, 10))
	got := shrink(sq, math.Sqrt2)
	if !approx(got[0].X, 1) || !approx(got[0].Y, 1) || !approx(got[2].X, 9) || !approx(got[2].Y, 9) {
		t.Errorf("shrink = %v", got)
	}
	if tiny := shrink(sq, 100); tiny[1] != geom.Pt(5, 5) {
		t.Errorf("over-shrunk corner = %v, want centroid", tiny[1])
	}
}

func approx(a, b float64) bool { return math.Abs(a-b) < 1e-9 }
