package seedfill

import (
	"fmt"

	"github.com/ironsheep/region-tools-mcp/internal/pixmap"
	"github.com/ironsheep/region-tools-mcp/internal/regions"
)

func validateGrayPair(seed, mask *pixmap.Pix, conn regions.Connectivity) error {
	if seed.Depth() != pixmap.Depth8 || mask.Depth() != pixmap.Depth8 {
		return fmt.Errorf("%w: grayscale fill requires 8-bit seed and mask",
			pixmap.ErrUnsupportedDepth)
	}
	if !seed.SameSize(mask) {
		return fmt.Errorf("%w: seed %dx%d vs mask %dx%d", pixmap.ErrDimensionMismatch,
			seed.Width(), seed.Height(), mask.Width(), mask.Height())
	}
	if !conn.Valid() {
		return fmt.Errorf("%w: connectivity %d", pixmap.ErrInvalidParameters, int(conn))
	}
	return nil
}

// Gray computes grayscale morphological reconstruction by dilation: the
// largest image that is pointwise ≤ mask, agrees with spreading the seed by
// repeated neighborhood maxima, and is a fixed point of that spreading.
//
// Seed samples above the mask are clipped to it before propagation, so the
// result always satisfies min(seed, mask) ≤ result ≤ mask pointwise.
//
// The implementation is the hybrid raster/queue scheme: a forward and a
// backward sweep propagate maxima along each scan direction, then a FIFO
// queue finishes the pixels the sweeps could still change. Work after the
// two sweeps is proportional to the area actually raised, not to the image
// size times the number of passes a naive iteration would need.
func Gray(seed, mask *pixmap.Pix, conn regions.Connectivity) (*pixmap.Pix, error) {
	if err := validateGrayPair(seed, mask, conn); err != nil {
		return nil, err
	}

	w, h := mask.Width(), mask.Height()
	out, err := pixmap.New(w, h, pixmap.Depth8)
	if err != nil {
		return nil, err
	}
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			v := seed.At(x, y)
			if m := mask.At(x, y); v > m {
				v = m
			}
			out.Put(x, y, v)
		}
	}

	// Neighbors already visited by each sweep direction.
	var prior, posterior [][2]int
	if conn == regions.FourWay {
		prior = [][2]int{{-1, 0}, {0, -1}}
		posterior = [][2]int{{1, 0}, {0, 1}}
	} else {
		prior = [][2]int{{-1, 0}, {-1, -1}, {0, -1}, {1, -1}}
		posterior = [][2]int{{1, 0}, {1, 1}, {0, 1}, {-1, 1}}
	}

	// Forward sweep: propagate maxima from the already-visited half plane.
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			m := out.At(x, y)
			for _, d := range prior {
				nx, ny := x+d[0], y+d[1]
				if out.InBounds(nx, ny) {
					if v := out.At(nx, ny); v > m {
						m = v
					}
				}
			}
			if mv := mask.At(x, y); m > mv {
				m = mv
			}
			out.Put(x, y, m)
		}
	}

	// Backward sweep, queueing pixels whose posterior neighborhood can still
	// rise.
	var queue [][2]int
	for y := h - 1; y >= 0; y-- {
		for x := w - 1; x >= 0; x-- {
			m := out.At(x, y)
			for _, d := range posterior {
				nx, ny := x+d[0], y+d[1]
				if out.InBounds(nx, ny) {
					if v := out.At(nx, ny); v > m {
						m = v
					}
				}
			}
			if mv := mask.At(x, y); m > mv {
				m = mv
			}
			out.Put(x, y, m)

			for _, d := range posterior {
				nx, ny := x+d[0], y+d[1]
				if !out.InBounds(nx, ny) {
					continue
				}
				if v := out.At(nx, ny); v < m && v < mask.At(nx, ny) {
					queue = append(queue, [2]int{x, y})
					break
				}
			}
		}
	}

	// FIFO propagation to the fixed point.
	offsets := conn.Offsets()
	for qi := 0; qi < len(queue); qi++ {
		x, y := queue[qi][0], queue[qi][1]
		v := out.At(x, y)
		for _, d := range offsets {
			nx, ny := x+d[0], y+d[1]
			if !out.InBounds(nx, ny) {
				continue
			}
			nv := out.At(nx, ny)
			mv := mask.At(nx, ny)
			if nv < v && nv < mv {
				raised := v
				if raised > mv {
					raised = mv
				}
				if raised > nv {
					out.Put(nx, ny, raised)
					queue = append(queue, [2]int{nx, ny})
				}
			}
		}
	}

	return out, nil
}

// GrayInverse computes the erosion-based dual of Gray: each pixel sinks to
// the minimum of itself and its neighbors, floored below by the mask, until
// a fixed point. The result satisfies mask ≤ result ≤ max(seed, mask).
//
// Reconstruction by erosion is reconstruction by dilation on complemented
// samples, so the implementation reuses Gray through an 8-bit complement.
func GrayInverse(seed, mask *pixmap.Pix, conn regions.Connectivity) (*pixmap.Pix, error) {
	if err := validateGrayPair(seed, mask, conn); err != nil {
		return nil, err
	}
	r, err := Gray(complement8(seed), complement8(mask), conn)
	if err != nil {
		return nil, err
	}
	return complement8(r), nil
}

func complement8(p *pixmap.Pix) *pixmap.Pix {
	out := p.Clone()
	for y := 0; y < p.Height(); y++ {
		for x := 0; x < p.Width(); x++ {
			out.Put(x, y, 255-p.At(x, y))
		}
	}
	return out
}
