package quadtree

import (
	"fmt"

	"github.com/ironsheep/region-tools-mcp/internal/pixmap"
)

// Integral is a summed-area table over an 8-bit buffer.
//
// The table is padded by one row and column of zeros so any rectangle sum is
// four lookups with no edge cases. Accumulation is uint64 throughout: at the
// maximum sample value 255, images beyond 2^24 pixels still fit with wide
// margin (255 * 2^24 < 2^32 << 2^64), so sums never overflow in practice.
type Integral struct {
	width  int
	height int
	sum    []uint64 // (width+1) * (height+1), row-major
}

func build(p *pixmap.Pix, squared bool) (*Integral, error) {
	if p.Depth() != pixmap.Depth8 {
		return nil, fmt.Errorf("%w: integral image requires 8-bit, got %d",
			pixmap.ErrUnsupportedDepth, p.Depth())
	}
	w, h := p.Width(), p.Height()
	it := &Integral{
		width:  w,
		height: h,
		sum:    make([]uint64, (w+1)*(h+1)),
	}
	stride := w + 1
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			v := uint64(p.At(x, y))
			if squared {
				v *= v
			}
			it.sum[(y+1)*stride+(x+1)] = v +
				it.sum[y*stride+(x+1)] +
				it.sum[(y+1)*stride+x] -
				it.sum[y*stride+x]
		}
	}
	return it, nil
}

// BuildIntegral computes the summed-area table of an 8-bit buffer.
func BuildIntegral(p *pixmap.Pix) (*Integral, error) { return build(p, false) }

// BuildIntegralSquared computes the summed-area table of squared samples,
// used for O(1) rectangle sum-of-squares queries.
func BuildIntegralSquared(p *pixmap.Pix) (*Integral, error) { return build(p, true) }

// Width returns the source image width.
func (it *Integral) Width() int { return it.width }

// Height returns the source image height.
func (it *Integral) Height() int { return it.height }

// Sum returns the sample sum over r in O(1). The rectangle is clipped to the
// image; an empty intersection sums to zero.
func (it *Integral) Sum(r pixmap.Rect) uint64 {
	x0, y0, x1, y1 := r.X, r.Y, r.X+r.W, r.Y+r.H
	if x0 < 0 {
		x0 = 0
	}
	if y0 < 0 {
		y0 = 0
	}
	if x1 > it.width {
		x1 = it.width
	}
	if y1 > it.height {
		y1 = it.height
	}
	if x0 >= x1 || y0 >= y1 {
		return 0
	}
	stride := it.width + 1
	return it.sum[y1*stride+x1] - it.sum[y0*stride+x1] -
		it.sum[y1*stride+x0] + it.sum[y0*stride+x0]
}
