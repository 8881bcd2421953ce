package stack

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"
)

// StateChartOptions configures [ToDOT].
type StateChartOptions struct {
	// Highlight fills the node of this state. Negative disables it.
	Highlight State

	// Labels prints the event names on the edges.
	Labels bool
}

// ToDOT converts the deletion state machine to Graphviz DOT format. Edges
// between the same pair of states are merged into one.
func ToDOT(opts StateChartOptions) string {
	var buf bytes.Buffer
	buf.WriteString("digraph deletion {\n")
	buf.WriteString("  rankdir=LR;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontsize=14, margin=\"0.2,0.1\"];\n")
	buf.WriteString("\n")

	for _, st := range []State{Idle, Panning, Committing, Cancelling} {
		attrs := []string{fmt.Sprintf("label=%q", st.String())}
		if st == opts.Highlight {
			attrs = append(attrs, "fillcolor=\"#d0e4ff\"")
		}
		fmt.Fprintf(&buf, "  %q [%s];\n", st.String(), strings.Join(attrs, ", "))
	}

	type edge struct{ from, to State }
	var order []edge
	events := make(map[edge][]string)
	for _, t := range Transitions() {
		e := edge{t.From, t.To}
		if _, ok := events[e]; !ok {
			order = append(order, e)
		}
		events[e] = append(events[e], t.Event)
	}

	buf.WriteString("\n")
	for _, e := range order {
		if opts.Labels {
			label := strings.Join(events[e], "\n")
			fmt.Fprintf(&buf, "  %q -> %q [label=%q, fontsize=10];\n", e.from.String(), e.to.String(), label)
			continue
		}
		fmt.Fprintf(&buf, "  %q -> %q;\n", e.from.String(), e.to.String())
	}

	buf.WriteString("}\n")
	return buf.String()
}

// RenderStateChart renders a DOT graph to SVG using Graphviz.
func RenderStateChart(ctx context.Context, dot string) ([]byte, error) {
	svg, err := renderDOT(ctx, dot, graphviz.SVG)
	if err != nil {
		return nil, err
	}
	return normalizeViewBox(svg), nil
}

// RenderStateChartPNG renders a DOT graph to PNG using Graphviz.
func RenderStateChartPNG(ctx context.Context, dot string) ([]byte, error) {
	return renderDOT(ctx, dot, graphviz.PNG)
}

func renderDOT(ctx context.Context, dot string, format graphviz.Format) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, format, &buf); err != nil {
		return nil, fmt.Errorf("render %s: %w", format, err)
	}
	return buf.Bytes(), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

// normalizeViewBox rewrites the root element so the chart scales with its
// container.
func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	root := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)
	return svgTagRe.ReplaceAll(svg, []byte(root))
}
