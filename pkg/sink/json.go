package sink

import (
	"encoding/json"

	"github.com/matzehuels/lnzlayouts/pkg/geom"
	"github.com/matzehuels/lnzlayouts/pkg/transition"
)

// JSONOption configures [RenderJSON].
type JSONOption func(*jsonRenderer)

type jsonRenderer struct {
	titles []string
	indent bool
}

// WithJSONTitles adds item titles to the cell entries.
func WithJSONTitles(titles []string) JSONOption { return func(r *jsonRenderer) { r.titles = titles } }

// WithJSONIndent pretty-prints the output.
func WithJSONIndent() JSONOption { return func(r *jsonRenderer) { r.indent = true } }

type jsonOutput struct {
	Kind     string        `json:"kind"`
	Viewport jsonRect      `json:"viewport"`
	Content  jsonSize      `json:"content"`
	Focused  *int          `json:"focused,omitempty"`
	Elements []jsonElement `json:"elements"`
}

type jsonRect struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

type jsonSize struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

type jsonElement struct {
	Index          int               `json:"index"`
	Kind           string            `json:"kind"`
	Title          string            `json:"title,omitempty"`
	Frame          jsonRect          `json:"frame"`
	Transform      *geom.Transform3D `json:"transform,omitempty"`
	ZIndex         int               `json:"z_index"`
	Alpha          float64           `json:"alpha"`
	DeletionOffset float64           `json:"deletion_offset,omitempty"`
}

// RenderJSON serialises a pass.
func RenderJSON(p Pass, opts ...JSONOption) ([]byte, error) {
	r := jsonRenderer{}
	for _, opt := range opts {
		opt(&r)
	}

	out := jsonOutput{
		Kind:     p.Kind,
		Viewport: jsonRect{p.Viewport.MinX(), p.Viewport.MinY(), p.Viewport.Width(), p.Viewport.Height()},
		Content:  jsonSize{p.ContentSize.Width, p.ContentSize.Height},
		Elements: make([]jsonElement, 0, len(p.Attributes)),
	}
	if p.Focused >= 0 {
		out.Focused = &p.Focused
	}
	for _, a := range p.Attributes {
		e := jsonElement{
			Index:          a.Index,
			Kind:           string(a.Kind),
			Frame:          jsonRect{a.Frame.MinX(), a.Frame.MinY(), a.Frame.Width(), a.Frame.Height()},
			ZIndex:         a.ZIndex,
			Alpha:          a.Alpha,
			DeletionOffset: a.DeletionOffset,
		}
		if a.IsCell() && a.Index >= 0 && a.Index < len(r.titles) {
			e.Title = r.titles[a.Index]
		}
		if !a.Transform.IsIdentity() {
			t := a.Transform
			e.Transform = &t
		}
		out.Elements = append(out.Elements, e)
	}
	return marshal(out, r.indent)
}

// RenderFramesJSON serialises the sampled frames of a transition run.
func RenderFramesJSON(id string, frames []transition.Frame) ([]byte, error) {
	return marshal(struct {
		ID     string             `json:"id"`
		Frames []transition.Frame `json:"frames"`
	}{id, frames}, true)
}

func marshal(v any, indent bool) ([]byte, error) {
	if indent {
		return json.MarshalIndent(v, "", "  ")
	}
	return json.Marshal(v)
}
