package regions

import (
	"fmt"

	"github.com/ironsheep/region-tools-mcp/internal/pixmap"
)

// unionFind is an arena of parent indices over provisional labels. Roots are
// detected by parent[i] == i; lookups apply path halving so chains stay
// short across the single labeling pass.
type unionFind struct {
	parent []int32
}

func (u *unionFind) add() int32 {
	n := int32(len(u.parent))
	u.parent = append(u.parent, n)
	return n
}

func (u *unionFind) find(i int32) int32 {
	for u.parent[i] != i {
		u.parent[i] = u.parent[u.parent[i]]
		i = u.parent[i]
	}
	return i
}

func (u *unionFind) union(a, b int32) {
	ra, rb := u.find(a), u.find(b)
	if ra == rb {
		return
	}
	// Keep the earlier provisional label as root.
	if ra < rb {
		u.parent[rb] = ra
	} else {
		u.parent[ra] = rb
	}
}

// Label assigns every foreground pixel of a 1-bit buffer a component id.
//
// It returns the full label raster and one Component per connected region,
// ordered by label. Labels are contiguous from 1 in order of first
// appearance in raster order; they are not stable across calls or across
// connectivity choices. An all-background image yields an empty component
// slice and an all-zero raster.
//
// Returns ErrUnsupportedDepth unless p is 1-bit, and ErrInvalidParameters
// for an invalid connectivity.
func Label(p *pixmap.Pix, conn Connectivity) (*LabelMap, []Component, error) {
	if p.Depth() != pixmap.Depth1 {
		return nil, nil, fmt.Errorf("%w: labeling requires 1-bit, got %d",
			pixmap.ErrUnsupportedDepth, p.Depth())
	}
	if !conn.Valid() {
		return nil, nil, fmt.Errorf("%w: connectivity %d", pixmap.ErrInvalidParameters, int(conn))
	}

	w, h := p.Width(), p.Height()
	m, err := NewLabelMap(w, h)
	if err != nil {
		return nil, nil, err
	}

	// Provisional labels, stored as union-find index + 1 so 0 stays "none".
	prov := make([]int32, w*h)
	uf := &unionFind{}

	// Neighbors already visited by the forward raster scan.
	var prior [][2]int
	if conn == FourWay {
		prior = [][2]int{{-1, 0}, {0, -1}}
	} else {
		prior = [][2]int{{-1, 0}, {-1, -1}, {0, -1}, {1, -1}}
	}

	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if !p.Foreground(x, y) {
				continue
			}
			var first int32 // uf index + 1 of the first labeled prior neighbor
			for _, d := range prior {
				nx, ny := x+d[0], y+d[1]
				if nx < 0 || ny < 0 || nx >= w {
					continue
				}
				n := prov[ny*w+nx]
				if n == 0 {
					continue
				}
				if first == 0 {
					first = n
				} else {
					uf.union(first-1, n-1)
				}
			}
			if first == 0 {
				first = uf.add() + 1
			}
			prov[y*w+x] = first
		}
	}

	// Flatten to roots and renumber in first-appearance order; accumulate
	// pixel counts and tight bounding boxes in the same pass.
	final := make([]int32, len(uf.parent)) // root -> final label, 0 = unassigned
	var comps []Component
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			pv := prov[y*w+x]
			if pv == 0 {
				continue
			}
			root := uf.find(pv - 1)
			id := final[root]
			if id == 0 {
				comps = append(comps, Component{
					Label:  len(comps) + 1,
					Bounds: pixmap.Rect{X: x, Y: y, W: 1, H: 1},
				})
				id = int32(len(comps))
				final[root] = id
			}
			c := &comps[id-1]
			c.PixelCount++
			c.Bounds = c.Bounds.IncludePoint(x, y)
			m.labels[y*w+x] = id
		}
	}

	return m, comps, nil
}

// Count returns the number of connected components without materializing the
// component list for the caller.
func Count(p *pixmap.Pix, conn Connectivity) (int, error) {
	_, comps, err := Label(p, conn)
	if err != nil {
		return 0, err
	}
	return len(comps), nil
}

// BoundingBoxes returns the component bounding boxes as a RectList, in label
// order.
func BoundingBoxes(p *pixmap.Pix, conn Connectivity) (*pixmap.RectList, error) {
	_, comps, err := Label(p, conn)
	if err != nil {
		return nil, err
	}
	var list pixmap.RectList
	for _, c := range comps {
		list.Push(c.Bounds)
	}
	return &list, nil
}
