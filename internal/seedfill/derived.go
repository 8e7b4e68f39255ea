package seedfill

import (
	"fmt"

	"github.com/ironsheep/region-tools-mcp/internal/pixmap"
	"github.com/ironsheep/region-tools-mcp/internal/regions"
)

// frameSeed returns a 1-bit buffer with foreground where src has foreground
// on the image frame (outermost rows and columns).
func frameSeed(src *pixmap.Pix) (*pixmap.Pix, error) {
	w, h := src.Width(), src.Height()
	seed, err := pixmap.New(w, h, pixmap.Depth1)
	if err != nil {
		return nil, err
	}
	for x := 0; x < w; x++ {
		if src.Foreground(x, 0) {
			seed.Put(x, 0, 1)
		}
		if src.Foreground(x, h-1) {
			seed.Put(x, h-1, 1)
		}
	}
	for y := 0; y < h; y++ {
		if src.Foreground(0, y) {
			seed.Put(0, y, 1)
		}
		if src.Foreground(w-1, y) {
			seed.Put(w-1, y, 1)
		}
	}
	return seed, nil
}

// FillHoles fills every background region completely surrounded by
// foreground, for the given foreground connectivity.
//
// Background is flooded from the image frame under the complementary
// connectivity (8↔4); whatever background the flood cannot reach is a hole
// and becomes foreground.
func FillHoles(p *pixmap.Pix, conn regions.Connectivity) (*pixmap.Pix, error) {
	if p.Depth() != pixmap.Depth1 {
		return nil, fmt.Errorf("%w: fill holes requires 1-bit, got %d",
			pixmap.ErrUnsupportedDepth, p.Depth())
	}
	if !conn.Valid() {
		return nil, fmt.Errorf("%w: connectivity %d", pixmap.ErrInvalidParameters, int(conn))
	}

	background, err := p.Invert()
	if err != nil {
		return nil, err
	}
	seed, err := frameSeed(background)
	if err != nil {
		return nil, err
	}
	exterior, err := Binary(seed, background, conn.Complement())
	if err != nil {
		return nil, err
	}
	holes, err := background.AndNot(exterior)
	if err != nil {
		return nil, err
	}
	return p.Or(holes)
}

// ClearBorder removes every foreground component that touches the image
// frame.
func ClearBorder(p *pixmap.Pix, conn regions.Connectivity) (*pixmap.Pix, error) {
	if p.Depth() != pixmap.Depth1 {
		return nil, fmt.Errorf("%w: clear border requires 1-bit, got %d",
			pixmap.ErrUnsupportedDepth, p.Depth())
	}
	seed, err := frameSeed(p)
	if err != nil {
		return nil, err
	}
	touching, err := Binary(seed, p, conn)
	if err != nil {
		return nil, err
	}
	return p.AndNot(touching)
}

// RemoveSeeded subtracts from mask exactly the components reached by the
// seed: the reconstruction of seed under mask, removed from mask.
func RemoveSeeded(seed, mask *pixmap.Pix, conn regions.Connectivity) (*pixmap.Pix, error) {
	touched, err := Binary(seed, mask, conn)
	if err != nil {
		return nil, err
	}
	return mask.AndNot(touched)
}
