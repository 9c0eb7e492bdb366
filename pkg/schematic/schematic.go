// Package schematic draws a simplified topological diagram of a generated
// netlist: one glyph per component on a horizontal rail, best-effort layout.
// The only contract is that every declared component appears exactly once.
package schematic

import (
	"bytes"
	"fmt"

	svg "github.com/ajstarks/svgo"

	"github.com/OpenCircuitLab/SpiceTrace/pkg/netlist"
)

const (
	cellWidth  = 150
	cellTop    = 60
	cellMid    = 120
	railBottom = 200
	height     = 260
)

const (
	wireStyle  = "stroke:black;stroke-width:2;fill:none"
	labelStyle = "font-family:sans-serif;font-size:13px;text-anchor:middle"
	nodeStyle  = "font-family:sans-serif;font-size:10px;text-anchor:middle;fill:gray"
)

// Render draws the component list as an SVG document.
func Render(comps []netlist.Component) []byte {
	var buf bytes.Buffer
	canvas := svg.New(&buf)

	width := cellWidth*len(comps) + cellWidth/2
	if len(comps) == 0 {
		width = cellWidth
	}
	canvas.Start(width, height)
	canvas.Rect(0, 0, width, height, "fill:white")

	for i, c := range comps {
		x := cellWidth/2 + i*cellWidth
		drawComponent(canvas, x, c)
	}

	// Common ground rail along the bottom.
	canvas.Line(cellWidth/4, railBottom, width-cellWidth/4, railBottom, wireStyle)
	drawGround(canvas, width/2, railBottom)

	canvas.End()
	return buf.Bytes()
}

func drawComponent(canvas *svg.SVG, x int, c netlist.Component) {
	// Stub wires from the symbol to the rails.
	canvas.Line(x, cellTop, x, cellMid-25, wireStyle)
	canvas.Line(x, cellMid+25, x, railBottom, wireStyle)

	switch c.Kind {
	case 'R':
		drawResistor(canvas, x, cellMid)
	case 'C':
		drawCapacitor(canvas, x, cellMid)
	case 'L':
		drawInductor(canvas, x, cellMid)
	case 'V', 'I':
		drawSource(canvas, x, cellMid)
	case 'X':
		drawBox(canvas, x, cellMid)
	default:
		drawBox(canvas, x, cellMid)
	}

	canvas.Text(x, cellTop-28, c.Name, labelStyle)
	canvas.Text(x, cellTop-12, c.Value, labelStyle)
	if len(c.Nodes) > 0 {
		canvas.Text(x, railBottom+16, nodeLabel(c), nodeStyle)
	}
}

func nodeLabel(c netlist.Component) string {
	label := c.Nodes[0]
	for _, n := range c.Nodes[1:] {
		label += "-" + n
	}
	return label
}

func drawResistor(canvas *svg.SVG, x, y int) {
	xs := []int{x, x - 10, x + 10, x - 10, x + 10, x - 10, x + 10, x}
	ys := []int{y - 25, y - 18, y - 11, y - 4, y + 3, y + 10, y + 17, y + 25}
	canvas.Polyline(xs, ys, wireStyle)
}

func drawCapacitor(canvas *svg.SVG, x, y int) {
	canvas.Line(x, y-25, x, y-5, wireStyle)
	canvas.Line(x-16, y-5, x+16, y-5, wireStyle)
	canvas.Line(x-16, y+5, x+16, y+5, wireStyle)
	canvas.Line(x, y+5, x, y+25, wireStyle)
}

func drawInductor(canvas *svg.SVG, x, y int) {
	canvas.Line(x, y-25, x, y-18, wireStyle)
	for i := 0; i < 3; i++ {
		cy := y - 12 + i*12
		canvas.Circle(x, cy, 6, wireStyle)
	}
	canvas.Line(x, y+18, x, y+25, wireStyle)
}

func drawSource(canvas *svg.SVG, x, y int) {
	canvas.Circle(x, y, 22, wireStyle)
	canvas.Line(x-5, y-8, x+5, y-8, wireStyle)
	canvas.Line(x, y-13, x, y-3, wireStyle)
	canvas.Line(x-5, y+8, x+5, y+8, wireStyle)
}

func drawBox(canvas *svg.SVG, x, y int) {
	canvas.Rect(x-25, y-25, 50, 50, wireStyle)
}

func drawGround(canvas *svg.SVG, x, y int) {
	canvas.Line(x-14, y+4, x+14, y+4, wireStyle)
	canvas.Line(x-9, y+9, x+9, y+9, wireStyle)
	canvas.Line(x-4, y+14, x+4, y+14, wireStyle)
}

// RenderNetlist parses netlist text and renders its components.
func RenderNetlist(text string) ([]byte, error) {
	comps := netlist.Parse(text)
	if len(comps) == 0 {
		return nil, fmt.Errorf("schematic: no components in netlist")
	}
	return Render(comps), nil
}
