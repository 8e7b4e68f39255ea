package seedfill

import (
	"fmt"

	"github.com/ironsheep/region-tools-mcp/internal/pixmap"
	"github.com/ironsheep/region-tools-mcp/internal/regions"
)

func validateBinaryPair(seed, mask *pixmap.Pix, conn regions.Connectivity) error {
	if seed.Depth() != pixmap.Depth1 || mask.Depth() != pixmap.Depth1 {
		return fmt.Errorf("%w: binary fill requires 1-bit seed and mask",
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

// Binary computes binary morphological reconstruction: the set of mask
// foreground pixels reachable from any seed foreground pixel along a
// connectivity-respecting path lying entirely in mask foreground.
//
// Seed pixels outside mask foreground contribute nothing; the flood never
// crosses the mask boundary. The operation is idempotent.
func Binary(seed, mask *pixmap.Pix, conn regions.Connectivity) (*pixmap.Pix, error) {
	return BinaryRestricted(seed, mask, conn, -1)
}

// BinaryRestricted is Binary with a travel limit: the flood may not advance
// more than maxSteps connectivity steps from any seed pixel. A negative
// maxSteps means unrestricted; maxSteps of zero clips the seed to the mask
// without spreading.
func BinaryRestricted(seed, mask *pixmap.Pix, conn regions.Connectivity, maxSteps int) (*pixmap.Pix, error) {
	if err := validateBinaryPair(seed, mask, conn); err != nil {
		return nil, err
	}

	w, h := mask.Width(), mask.Height()
	out, err := pixmap.New(w, h, pixmap.Depth1)
	if err != nil {
		return nil, err
	}

	type cell struct {
		x, y, steps int
	}
	var queue []cell
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if seed.Foreground(x, y) && mask.Foreground(x, y) {
				out.Put(x, y, 1)
				queue = append(queue, cell{x, y, 0})
			}
		}
	}

	offsets := conn.Offsets()
	for qi := 0; qi < len(queue); qi++ {
		c := queue[qi]
		if maxSteps >= 0 && c.steps >= maxSteps {
			continue
		}
		for _, d := range offsets {
			nx, ny := c.x+d[0], c.y+d[1]
			if !mask.InBounds(nx, ny) || !mask.Foreground(nx, ny) || out.Foreground(nx, ny) {
				continue
			}
			out.Put(nx, ny, 1)
			queue = append(queue, cell{nx, ny, c.steps + 1})
		}
	}

	return out, nil
}

// SeedFromPoints builds a 1-bit seed buffer of the given dimensions with
// foreground at each listed (x, y) coordinate. A coordinate outside the
// buffer is ErrInvalidSeed.
func SeedFromPoints(width, height int, points [][2]int) (*pixmap.Pix, error) {
	seed, err := pixmap.New(width, height, pixmap.Depth1)
	if err != nil {
		return nil, err
	}
	for _, pt := range points {
		if !seed.Set(pt[0], pt[1], 1) {
			return nil, fmt.Errorf("%w: (%d,%d) outside %dx%d",
				pixmap.ErrInvalidSeed, pt[0], pt[1], width, height)
		}
	}
	return seed, nil
}
