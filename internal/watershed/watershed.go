// Package watershed segments a grayscale gradient image into drainage basins
// by priority flooding from its regional minima.
//
// Every minimum (a connected plateau with no strictly lower neighbor) seeds
// one basin. Seed pixels enter a minimum-first priority queue keyed by
// intensity; equal intensities pop in insertion order (stable FIFO), so the
// output is reproducible bit for bit across runs. Flooding assigns each
// popped pixel's unlabeled neighbors to a basin when exactly one basin
// borders them, and marks them watershed boundary when two or more would
// meet there. Basins and boundary partition the image: every pixel ends in
// exactly one of the two.
//
// The MinDepth option suppresses spurious shallow minima before flooding via
// the h-minima transform: erosion-based grayscale reconstruction of
// (gradient + MinDepth) under the gradient, computed with the seedfill
// package. Minima shallower than MinDepth relative to their lowest escape
// level disappear and their catchment merges into a neighbor's.
package watershed

import (
	"container/heap"
	"fmt"

	"github.com/ironsheep/region-tools-mcp/internal/pixmap"
	"github.com/ironsheep/region-tools-mcp/internal/regions"
	"github.com/ironsheep/region-tools-mcp/internal/seedfill"
)

// Options configures a segmentation run.
type Options struct {
	// Connectivity governs both minima detection and flooding.
	// Zero selects EightWay.
	Connectivity regions.Connectivity

	// MinDepth suppresses minima shallower than this many intensity levels
	// before flooding. Zero keeps every minimum.
	MinDepth uint32
}

// Result is a watershed segmentation: basin labels for every non-boundary
// pixel and a 1-bit boundary mask, together covering the image with no
// overlap.
type Result struct {
	BasinCount int
	Basins     *regions.LabelMap
	Boundary   *pixmap.Pix
}

// floodItem is one queued pixel: its intensity and a monotonically
// increasing sequence number that makes equal intensities pop FIFO.
type floodItem struct {
	value uint32
	seq   uint64
	x, y  int
}

type floodQueue []floodItem

func (q floodQueue) Len() int { return len(q) }
func (q floodQueue) Less(i, j int) bool {
	if q[i].value != q[j].value {
		return q[i].value < q[j].value
	}
	return q[i].seq < q[j].seq
}
func (q floodQueue) Swap(i, j int)      { q[i], q[j] = q[j], q[i] }
func (q *floodQueue) Push(v interface{}) { *q = append(*q, v.(floodItem)) }
func (q *floodQueue) Pop() interface{} {
	old := *q
	n := len(old)
	item := old[n-1]
	*q = old[:n-1]
	return item
}

// Segment floods an 8-bit gradient image from its regional minima and
// returns the basin partition.
//
// A gradient with a single minimum plateau (e.g. a perfectly flat image)
// yields one basin covering everything and an empty boundary; that is not an
// error.
func Segment(gradient *pixmap.Pix, opts Options) (*Result, error) {
	if gradient.Depth() != pixmap.Depth8 {
		return nil, fmt.Errorf("%w: watershed requires an 8-bit gradient, got %d",
			pixmap.ErrUnsupportedDepth, gradient.Depth())
	}
	conn := opts.Connectivity
	if conn == 0 {
		conn = regions.EightWay
	}
	if !conn.Valid() {
		return nil, fmt.Errorf("%w: connectivity %d", pixmap.ErrInvalidParameters, int(conn))
	}

	work := gradient
	if opts.MinDepth > 0 {
		var err error
		work, err = suppressShallowMinima(gradient, opts.MinDepth, conn)
		if err != nil {
			return nil, err
		}
	}

	w, h := work.Width(), work.Height()
	basins, err := regions.NewLabelMap(w, h)
	if err != nil {
		return nil, err
	}
	boundary, err := pixmap.New(w, h, pixmap.Depth1)
	if err != nil {
		return nil, err
	}

	offsets := conn.Offsets()
	pq := &floodQueue{}
	heap.Init(pq)
	var seq uint64
	push := func(x, y, label int) {
		basins.Set(x, y, label)
		heap.Push(pq, floodItem{value: work.At(x, y), seq: seq, x: x, y: y})
		seq++
	}

	basinCount := seedMinima(work, conn, push)
	if basinCount == 0 {
		// Unreachable for a non-empty image, but the contract is explicit:
		// no minima means one basin, no boundary.
		for y := 0; y < h; y++ {
			for x := 0; x < w; x++ {
				basins.Set(x, y, 1)
			}
		}
		return &Result{BasinCount: 1, Basins: basins, Boundary: boundary}, nil
	}

	for pq.Len() > 0 {
		p := heap.Pop(pq).(floodItem)
		for _, d := range offsets {
			nx, ny := p.x+d[0], p.y+d[1]
			if !work.InBounds(nx, ny) || basins.At(nx, ny) != 0 || boundary.Foreground(nx, ny) {
				continue
			}
			label := 0
			conflict := false
			for _, dd := range offsets {
				qx, qy := nx+dd[0], ny+dd[1]
				if !work.InBounds(qx, qy) {
					continue
				}
				l := basins.At(qx, qy)
				if l == 0 {
					continue
				}
				if label == 0 {
					label = l
				} else if label != l {
					conflict = true
					break
				}
			}
			switch {
			case conflict:
				boundary.Put(nx, ny, 1)
			case label != 0:
				push(nx, ny, label)
			}
		}
	}

	// Anything never reached, possible only when cut off from all seeds,
	// is boundary by definition.
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if basins.At(x, y) == 0 && !boundary.Foreground(x, y) {
				boundary.Put(x, y, 1)
			}
		}
	}

	return &Result{BasinCount: basinCount, Basins: basins, Boundary: boundary}, nil
}

// seedMinima finds regional minimum plateaus in raster order and calls push
// for every pixel of each, with basin ids 1..n. It returns n.
func seedMinima(work *pixmap.Pix, conn regions.Connectivity, push func(x, y, label int)) int {
	w, h := work.Width(), work.Height()
	offsets := conn.Offsets()
	seen := make([]bool, w*h)
	count := 0

	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if seen[y*w+x] {
				continue
			}
			v := work.At(x, y)

			// Collect the equal-value plateau by BFS and check whether any
			// plateau pixel has a strictly lower neighbor.
			plateau := [][2]int{{x, y}}
			seen[y*w+x] = true
			isMin := true
			for qi := 0; qi < len(plateau); qi++ {
				cx, cy := plateau[qi][0], plateau[qi][1]
				for _, d := range offsets {
					nx, ny := cx+d[0], cy+d[1]
					if !work.InBounds(nx, ny) {
						continue
					}
					nv := work.At(nx, ny)
					if nv < v {
						isMin = false
					} else if nv == v && !seen[ny*w+nx] {
						seen[ny*w+nx] = true
						plateau = append(plateau, [2]int{nx, ny})
					}
				}
			}
			if !isMin {
				continue
			}
			count++
			for _, c := range plateau {
				push(c[0], c[1], count)
			}
		}
	}
	return count
}

// suppressShallowMinima applies the h-minima transform: reconstruct
// (gradient + depth, saturating) under the gradient by erosion. Minima
// whose depth below their lowest escape level is less than depth vanish.
func suppressShallowMinima(gradient *pixmap.Pix, depth uint32, conn regions.Connectivity) (*pixmap.Pix, error) {
	raised := gradient.Clone()
	for y := 0; y < raised.Height(); y++ {
		for x := 0; x < raised.Width(); x++ {
			v := raised.At(x, y) + depth
			if v > 255 {
				v = 255
			}
			raised.Put(x, y, v)
		}
	}
	return seedfill.GrayInverse(raised, gradient, conn)
}
