// Package quadtree derives hierarchical block statistics over an 8-bit
// grayscale buffer.
//
// A single summed-area table (plus one of squared samples for variance)
// gives O(1) access to the sum over any block at any subdivision level, so
// the per-level grids are filled by flat loops over block indices; no
// recursion and no revisiting of parent levels. Level 0 is the whole image;
// level k splits it into a 2^k x 2^k grid with block edges at the
// proportional cuts i*size/2^k, which partition the image exactly.
package quadtree

import (
	"fmt"

	"github.com/ironsheep/region-tools-mcp/internal/pixmap"
)

// Grid holds one subdivision level's block statistics in a Side x Side
// row-major layout.
type Grid struct {
	Side   int       `json:"side"`
	Values []float32 `json:"values"`
}

// At returns the statistic for the block in column col, row row.
func (g *Grid) At(col, row int) float32 { return g.Values[row*g.Side+col] }

// Result is the ordered sequence of per-level grids: Levels[k] is the
// 2^k x 2^k grid.
type Result struct {
	Levels []Grid `json:"levels"`
}

// MaxLevels returns the deepest usable subdivision level for an image of the
// given dimensions: the largest k with 2^k ≤ min(width, height). Every block
// at every level up to it contains at least one pixel.
func MaxLevels(width, height int) int {
	side := width
	if height < side {
		side = height
	}
	k := 0
	for (1 << (k + 1)) <= side {
		k++
	}
	return k
}

func validateLevels(p *pixmap.Pix, levels int) error {
	if p.Depth() != pixmap.Depth8 {
		return fmt.Errorf("%w: quadtree statistics require 8-bit, got %d",
			pixmap.ErrUnsupportedDepth, p.Depth())
	}
	if maxL := MaxLevels(p.Width(), p.Height()); levels < 0 || levels > maxL {
		return fmt.Errorf("%w: levels %d outside 0..%d for %dx%d",
			pixmap.ErrInvalidParameters, levels, maxL, p.Width(), p.Height())
	}
	return nil
}

// block returns the pixel rectangle of block (col, row) in a side x side
// subdivision of a w x h image.
func block(w, h, side, col, row int) pixmap.Rect {
	x0 := col * w / side
	x1 := (col + 1) * w / side
	y0 := row * h / side
	y1 := (row + 1) * h / side
	return pixmap.Rect{X: x0, Y: y0, W: x1 - x0, H: y1 - y0}
}

// Mean computes per-block mean grids for levels 0 through levels inclusive.
// Level 0 is the population mean of the whole image.
//
// levels beyond MaxLevels(width, height) is ErrInvalidParameters.
func Mean(p *pixmap.Pix, levels int) (*Result, error) {
	if err := validateLevels(p, levels); err != nil {
		return nil, err
	}
	it, err := BuildIntegral(p)
	if err != nil {
		return nil, err
	}

	res := &Result{Levels: make([]Grid, levels+1)}
	for k := 0; k <= levels; k++ {
		side := 1 << k
		g := Grid{Side: side, Values: make([]float32, side*side)}
		for row := 0; row < side; row++ {
			for col := 0; col < side; col++ {
				r := block(p.Width(), p.Height(), side, col, row)
				area := float64(r.W) * float64(r.H)
				g.Values[row*side+col] = float32(float64(it.Sum(r)) / area)
			}
		}
		res.Levels[k] = g
	}
	return res, nil
}

// MeanVariance computes per-block mean and variance grids for levels 0
// through levels inclusive. Variance is E[x²] − E[x]² from the plain and
// squared integral images, clamped at zero to absorb floating-point
// cancellation on near-constant blocks.
func MeanVariance(p *pixmap.Pix, levels int) (mean, variance *Result, err error) {
	if err := validateLevels(p, levels); err != nil {
		return nil, nil, err
	}
	it, err := BuildIntegral(p)
	if err != nil {
		return nil, nil, err
	}
	itSq, err := BuildIntegralSquared(p)
	if err != nil {
		return nil, nil, err
	}

	mean = &Result{Levels: make([]Grid, levels+1)}
	variance = &Result{Levels: make([]Grid, levels+1)}
	for k := 0; k <= levels; k++ {
		side := 1 << k
		gm := Grid{Side: side, Values: make([]float32, side*side)}
		gv := Grid{Side: side, Values: make([]float32, side*side)}
		for row := 0; row < side; row++ {
			for col := 0; col < side; col++ {
				r := block(p.Width(), p.Height(), side, col, row)
				area := float64(r.W) * float64(r.H)
				m := float64(it.Sum(r)) / area
				v := float64(itSq.Sum(r))/area - m*m
				if v < 0 {
					v = 0
				}
				gm.Values[row*side+col] = float32(m)
				gv.Values[row*side+col] = float32(v)
			}
		}
		mean.Levels[k] = gm
		variance.Levels[k] = gv
	}
	return mean, variance, nil
}
