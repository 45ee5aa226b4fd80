// Package render draws a page's logical tree as a node-link diagram.
//
// [ToDOT] converts the tree to Graphviz DOT; [RenderSVG] and [RenderPNG]
// rasterize it in-process using [github.com/goccy/go-graphviz]. Only the
// logical structure is drawn: shapes, styles and geometry from the source
// diagram are out of scope.
package render

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/drawbridge/pkg/mx"
)

// Options configures node-link diagram rendering.
type Options struct {
	// Detailed includes the element type and id in node labels.
	// When false, only the printable name is shown.
	Detailed bool
}

// ToDOT converts a page's logical tree to Graphviz DOT format.
// The resulting DOT string can be rendered using [RenderSVG] or [RenderPNG].
//
// Edges run from logical parent to logical child. A visited set guards
// against cycles introduced by post-load mutation, so ToDOT always
// terminates.
func ToDOT(page *mx.Page, opts Options) string {
	var buf bytes.Buffer
	buf.WriteString("digraph G {\n")
	buf.WriteString("  rankdir=TB;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, margin=\"0.2,0.1\"];\n")
	buf.WriteString("  ranksep=0.5;\n")
	buf.WriteString("  nodesep=0.3;\n")
	buf.WriteString("\n")

	// Start where the tree rendering starts: the entry element's first
	// logical child is the top of the diagram. Starting at the entry itself
	// would duplicate edges through its physical-children fallback.
	start := page.Entry()
	if kids := start.Children(); len(kids) > 0 {
		start = kids[0]
	}

	visited := make(map[*mx.Element]bool)
	writeNode(&buf, start, opts, visited)

	buf.WriteString("}\n")
	return buf.String()
}

func writeNode(buf *bytes.Buffer, e *mx.Element, opts Options, visited map[*mx.Element]bool) {
	if visited[e] {
		return
	}
	visited[e] = true

	fmt.Fprintf(buf, "  %q [label=%q];\n", nodeID(e), fmtLabel(e, opts.Detailed))
	for _, c := range e.Children() {
		fmt.Fprintf(buf, "  %q -> %q;\n", nodeID(e), nodeID(c))
		writeNode(buf, c, opts, visited)
	}
}

// nodeID picks a stable DOT identifier: the element id when declared,
// otherwise the printable name (the synthetic root has no id).
func nodeID(e *mx.Element) string {
	if id := e.ID(); id != "" {
		return id
	}
	return e.Name()
}

func fmtLabel(e *mx.Element, detailed bool) string {
	if !detailed {
		return e.Name()
	}
	parts := []string{e.Name(), "type: " + e.Type()}
	if id := e.ID(); id != "" {
		parts = append(parts, "id: "+id)
	}
	return strings.Join(parts, "\n")
}

// RenderSVG renders a DOT graph to SVG using Graphviz.
func RenderSVG(dot string) ([]byte, error) {
	return renderFormat(dot, graphviz.SVG, normalizeViewBox)
}

// RenderPNG renders a DOT graph to PNG using Graphviz.
func RenderPNG(dot string) ([]byte, error) {
	return renderFormat(dot, graphviz.PNG, nil)
}

func renderFormat(dot string, format graphviz.Format, post func([]byte) []byte) ([]byte, error) {
	ctx := context.Background()
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
		return nil, fmt.Errorf("render: %w", err)
	}
	if post != nil {
		return post(buf.Bytes()), nil
	}
	return buf.Bytes(), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

// normalizeViewBox rewrites the svg tag so the viewBox starts at the origin,
// which keeps the output embeddable regardless of Graphviz margins.
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

	newSvg := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)

	return svgTagRe.ReplaceAll(svg, []byte(newSvg))
}
