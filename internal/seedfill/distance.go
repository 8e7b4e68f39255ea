package seedfill

import (
	"fmt"

	"github.com/ironsheep/region-tools-mcp/internal/pixmap"
	"github.com/ironsheep/region-tools-mcp/internal/regions"
)

// distanceInf is the provisional "unreached" value during the sweeps; final
// distances are capped to it, which also keeps them inside 16 bits.
const distanceInf = 0xFFFF

// DistanceTransform computes, for every foreground pixel of a 1-bit buffer,
// its distance to the nearest background pixel, as a 16-bit buffer.
// Background pixels get distance 0, and pixels outside the image count as
// background, so frame foreground pixels get distance 1.
//
// FourWay yields city-block distance, EightWay chessboard distance. Two
// raster sweeps, forward from the top-left and then backward from the
// bottom-right, each propagate a running minimum from the neighbors the
// sweep has already finalized.
func DistanceTransform(p *pixmap.Pix, conn regions.Connectivity) (*pixmap.Pix, error) {
	if p.Depth() != pixmap.Depth1 {
		return nil, fmt.Errorf("%w: distance transform requires 1-bit, got %d",
			pixmap.ErrUnsupportedDepth, p.Depth())
	}
	if !conn.Valid() {
		return nil, fmt.Errorf("%w: connectivity %d", pixmap.ErrInvalidParameters, int(conn))
	}

	w, h := p.Width(), p.Height()
	out, err := pixmap.New(w, h, pixmap.Depth16)
	if err != nil {
		return nil, err
	}

	var prior, posterior [][2]int
	if conn == regions.FourWay {
		prior = [][2]int{{-1, 0}, {0, -1}}
		posterior = [][2]int{{1, 0}, {0, 1}}
	} else {
		prior = [][2]int{{-1, 0}, {-1, -1}, {0, -1}, {1, -1}}
		posterior = [][2]int{{1, 0}, {1, 1}, {0, 1}, {-1, 1}}
	}

	sweep := func(x, y int, visited [][2]int) {
		if !p.Foreground(x, y) {
			return
		}
		best := out.At(x, y)
		if best == 0 {
			best = distanceInf
		}
		for _, d := range visited {
			nx, ny := x+d[0], y+d[1]
			var cand uint32
			if out.InBounds(nx, ny) {
				cand = out.At(nx, ny) + 1
			} else {
				cand = 1 // outside the image is background
			}
			if cand < best {
				best = cand
			}
		}
		if best > distanceInf {
			best = distanceInf
		}
		out.Put(x, y, best)
	}

	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			sweep(x, y, prior)
		}
	}
	for y := h - 1; y >= 0; y-- {
		for x := w - 1; x >= 0; x-- {
			sweep(x, y, posterior)
		}
	}

	return out, nil
}
