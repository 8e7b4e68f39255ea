package contour

import (
	"fmt"

	"github.com/ironsheep/region-tools-mcp/internal/pixmap"
	"github.com/ironsheep/region-tools-mcp/internal/regions"
)

// Point is a pixel coordinate on a boundary walk.
type Point struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// BorderKind distinguishes outer contours from hole contours.
type BorderKind string

const (
	// Outer marks the clockwise exterior contour of a component.
	Outer BorderKind = "outer"
	// Hole marks a counter-clockwise contour around an interior void.
	Hole BorderKind = "hole"
)

// Border is one traced boundary: an ordered pixel sequence and its kind.
type Border struct {
	Kind   BorderKind `json:"kind"`
	Points []Point    `json:"points"`
}

// ComponentBorders groups the outer border of one component with the borders
// of its interior holes, in hole discovery order.
type ComponentBorders struct {
	Label int      `json:"label"`
	Outer Border   `json:"outer"`
	Holes []Border `json:"holes,omitempty"`
}

// moore is the 8-neighborhood in clockwise order with y growing downward:
// E, SE, S, SW, W, NW, N, NE. Indices double as chain codes.
var moore = [8][2]int{
	{1, 0}, {1, 1}, {0, 1}, {-1, 1}, {-1, 0}, {-1, -1}, {0, -1}, {1, -1},
}

// dirIndex returns the moore index of the unit step (dx, dy), or -1.
func dirIndex(dx, dy int) int {
	for i, d := range moore {
		if d[0] == dx && d[1] == dy {
			return i
		}
	}
	return -1
}

// traceBorder walks one boundary with Moore-neighbor following.
//
// (sx, sy) is the start pixel, (bx, by) its initial backtrack (a background
// neighbor). clockwise selects the rotation sense. inside reports whether a
// coordinate belongs to the region being traced; it must tolerate
// out-of-bounds coordinates.
//
// The walk stops when it repeats its first move: the pixel after the start is
// entered again from the same direction. Checking the direction as well as
// the pixel is what keeps one-pixel-wide components from looping forever.
func traceBorder(inside func(x, y int) bool, sx, sy, bx, by int, clockwise bool) []Point {
	points := []Point{{X: sx, Y: sy}}

	cx, cy := sx, sy
	firstNextX, firstNextY, firstDir := 0, 0, -1

	for {
		back := dirIndex(bx-cx, by-cy)
		nx, ny, nbx, nby, moveDir := -1, -1, 0, 0, -1

		// Rotate from the backtrack position until a region pixel appears;
		// the cell examined just before it becomes the next backtrack.
		px, py := bx, by
		for i := 1; i <= 8; i++ {
			var d int
			if clockwise {
				d = (back + i) % 8
			} else {
				d = (back - i + 16) % 8
			}
			qx, qy := cx+moore[d][0], cy+moore[d][1]
			if inside(qx, qy) {
				nx, ny, nbx, nby, moveDir = qx, qy, px, py, d
				break
			}
			px, py = qx, qy
		}
		if moveDir < 0 {
			// Isolated single pixel.
			return points
		}

		if firstDir < 0 {
			firstNextX, firstNextY, firstDir = nx, ny, moveDir
		} else if nx == firstNextX && ny == firstNextY && moveDir == firstDir {
			// The walk is about to repeat its first move, so the loop is
			// closed. The move's source is the start pixel, appended again on
			// the previous step; drop that duplicate.
			return points[:len(points)-1]
		}

		cx, cy, bx, by = nx, ny, nbx, nby
		points = append(points, Point{X: cx, Y: cy})
	}
}

// firstPixelOfLabel returns the first raster-order pixel carrying label
// inside bounds.
func firstPixelOfLabel(m *regions.LabelMap, bounds pixmap.Rect, label int) (int, int) {
	for y := bounds.Y; y < bounds.Y+bounds.H; y++ {
		for x := bounds.X; x < bounds.X+bounds.W; x++ {
			if m.At(x, y) == label {
				return x, y
			}
		}
	}
	return -1, -1
}

// TraceOuter traces the clockwise exterior contour of every connected
// component of a 1-bit buffer, in label (raster discovery) order.
func TraceOuter(p *pixmap.Pix) ([]Border, error) {
	if p.Depth() != pixmap.Depth1 {
		return nil, fmt.Errorf("%w: tracing requires 1-bit, got %d",
			pixmap.ErrUnsupportedDepth, p.Depth())
	}
	m, comps, err := regions.Label(p, regions.EightWay)
	if err != nil {
		return nil, err
	}

	borders := make([]Border, 0, len(comps))
	for _, c := range comps {
		borders = append(borders, traceComponentOuter(m, c))
	}
	return borders, nil
}

func traceComponentOuter(m *regions.LabelMap, c regions.Component) Border {
	sx, sy := firstPixelOfLabel(m, c.Bounds, c.Label)
	inside := func(x, y int) bool { return m.At(x, y) == c.Label }
	// The raster-first pixel always has background to its west.
	pts := traceBorder(inside, sx, sy, sx-1, sy, true)
	return Border{Kind: Outer, Points: pts}
}

// TraceAll traces, for every component of a 1-bit buffer, its outer contour
// plus one counter-clockwise contour per interior hole.
//
// A hole is a background region (under 4-connectivity, the complement of the
// tracer's 8-connected foreground) that does not reach the image frame. Its
// border is walked over the foreground pixels of the enclosing component.
func TraceAll(p *pixmap.Pix) ([]ComponentBorders, error) {
	if p.Depth() != pixmap.Depth1 {
		return nil, fmt.Errorf("%w: tracing requires 1-bit, got %d",
			pixmap.ErrUnsupportedDepth, p.Depth())
	}
	m, comps, err := regions.Label(p, regions.EightWay)
	if err != nil {
		return nil, err
	}

	out := make([]ComponentBorders, len(comps))
	for i, c := range comps {
		out[i] = ComponentBorders{Label: c.Label, Outer: traceComponentOuter(m, c)}
	}

	inv, err := p.Invert()
	if err != nil {
		return nil, err
	}
	bg, bgComps, err := regions.Label(inv, regions.EightWay.Complement())
	if err != nil {
		return nil, err
	}

	w, h := p.Width(), p.Height()
	touchesFrame := make([]bool, len(bgComps)+1)
	for x := 0; x < w; x++ {
		touchesFrame[bg.At(x, 0)] = true
		touchesFrame[bg.At(x, h-1)] = true
	}
	for y := 0; y < h; y++ {
		touchesFrame[bg.At(0, y)] = true
		touchesFrame[bg.At(w-1, y)] = true
	}

	for _, hc := range bgComps {
		if touchesFrame[hc.Label] {
			continue
		}
		// First raster pixel of the hole; the pixel to its west belongs to
		// the enclosing component.
		hx, hy := firstPixelOfLabel(bg, hc.Bounds, hc.Label)
		owner := m.At(hx-1, hy)
		if owner == 0 {
			continue // unreachable for a true hole
		}
		inside := func(x, y int) bool { return m.At(x, y) == owner }
		pts := traceBorder(inside, hx-1, hy, hx, hy, false)
		out[owner-1].Holes = append(out[owner-1].Holes, Border{Kind: Hole, Points: pts})
	}

	return out, nil
}
