package pixmap

import "fmt"

// Depth is the number of bits per sample in a Pix.
type Depth int

// Supported sample depths.
const (
	Depth1  Depth = 1
	Depth8  Depth = 8
	Depth16 Depth = 16
	Depth32 Depth = 32
)

// Valid reports whether d is one of the supported depths.
func (d Depth) Valid() bool {
	switch d {
	case Depth1, Depth8, Depth16, Depth32:
		return true
	}
	return false
}

// MaxValue returns the largest sample value representable at depth d.
func (d Depth) MaxValue() uint32 {
	if d == Depth32 {
		return ^uint32(0)
	}
	return (1 << uint(d)) - 1
}

// Pix is a dense 2-D raster of samples at a fixed bit depth.
//
// Samples are stored row-major, one uint32 per sample, masked to the buffer's
// depth on every write. A 1-bit Pix therefore holds only 0 and 1; the region
// engine interprets nonzero as foreground.
type Pix struct {
	width  int
	height int
	depth  Depth
	data   []uint32
}

// New allocates a zero-filled buffer of the given dimensions and depth.
//
// Returns ErrInvalidParameters for non-positive dimensions and
// ErrUnsupportedDepth for a depth other than 1, 8, 16, or 32.
func New(width, height int, depth Depth) (*Pix, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: dimensions %dx%d", ErrInvalidParameters, width, height)
	}
	if !depth.Valid() {
		return nil, fmt.Errorf("%w: depth %d", ErrUnsupportedDepth, depth)
	}
	return &Pix{
		width:  width,
		height: height,
		depth:  depth,
		data:   make([]uint32, width*height),
	}, nil
}

// Width returns the buffer width in pixels.
func (p *Pix) Width() int { return p.width }

// Height returns the buffer height in pixels.
func (p *Pix) Height() int { return p.height }

// Depth returns the bits per sample.
func (p *Pix) Depth() Depth { return p.depth }

// Get returns the sample at (x, y), or (0, false) if the coordinate is
// outside the buffer.
func (p *Pix) Get(x, y int) (uint32, bool) {
	if x < 0 || y < 0 || x >= p.width || y >= p.height {
		return 0, false
	}
	return p.data[y*p.width+x], true
}

// Set writes the sample at (x, y), masking v to the buffer depth. It reports
// whether the coordinate was inside the buffer.
func (p *Pix) Set(x, y int, v uint32) bool {
	if x < 0 || y < 0 || x >= p.width || y >= p.height {
		return false
	}
	p.data[y*p.width+x] = v & p.depth.MaxValue()
	return true
}

// At returns the sample at (x, y). The coordinate must be in bounds; this is
// the unchecked fast path used by the algorithm packages' inner loops.
func (p *Pix) At(x, y int) uint32 { return p.data[y*p.width+x] }

// Put writes the sample at (x, y), masking v to the buffer depth. The
// coordinate must be in bounds.
func (p *Pix) Put(x, y int, v uint32) { p.data[y*p.width+x] = v & p.depth.MaxValue() }

// Foreground reports whether the sample at (x, y) is nonzero. The coordinate
// must be in bounds.
func (p *Pix) Foreground(x, y int) bool { return p.data[y*p.width+x] != 0 }

// InBounds reports whether (x, y) lies inside the buffer.
func (p *Pix) InBounds(x, y int) bool {
	return x >= 0 && y >= 0 && x < p.width && y < p.height
}

// SameSize reports whether p and q share width and height.
func (p *Pix) SameSize(q *Pix) bool {
	return p.width == q.width && p.height == q.height
}

// Clone returns a deep copy of the buffer.
func (p *Pix) Clone() *Pix {
	out := &Pix{
		width:  p.width,
		height: p.height,
		depth:  p.depth,
		data:   make([]uint32, len(p.data)),
	}
	copy(out.data, p.data)
	return out
}

// Fill sets every sample to v, masked to the buffer depth.
func (p *Pix) Fill(v uint32) {
	v &= p.depth.MaxValue()
	for i := range p.data {
		p.data[i] = v
	}
}

// CountForeground returns the number of nonzero samples.
func (p *Pix) CountForeground() uint64 {
	var n uint64
	for _, v := range p.data {
		if v != 0 {
			n++
		}
	}
	return n
}

// Invert returns a new 1-bit buffer with foreground and background swapped.
// Returns ErrUnsupportedDepth unless p is 1-bit.
func (p *Pix) Invert() (*Pix, error) {
	if p.depth != Depth1 {
		return nil, fmt.Errorf("%w: invert requires 1-bit, got %d", ErrUnsupportedDepth, p.depth)
	}
	out := p.Clone()
	for i, v := range out.data {
		out.data[i] = v ^ 1
	}
	return out, nil
}

// Or returns the pixelwise union of two 1-bit buffers of equal dimensions.
func (p *Pix) Or(q *Pix) (*Pix, error) {
	if err := requireBinaryPair(p, q); err != nil {
		return nil, err
	}
	out := p.Clone()
	for i, v := range q.data {
		out.data[i] |= v
	}
	return out, nil
}

// AndNot returns the pixelwise difference p AND NOT q of two 1-bit buffers of
// equal dimensions.
func (p *Pix) AndNot(q *Pix) (*Pix, error) {
	if err := requireBinaryPair(p, q); err != nil {
		return nil, err
	}
	out := p.Clone()
	for i, v := range q.data {
		if v != 0 {
			out.data[i] = 0
		}
	}
	return out, nil
}

func requireBinaryPair(p, q *Pix) error {
	if p.depth != Depth1 || q.depth != Depth1 {
		return fmt.Errorf("%w: operation requires two 1-bit buffers", ErrUnsupportedDepth)
	}
	if !p.SameSize(q) {
		return fmt.Errorf("%w: %dx%d vs %dx%d", ErrDimensionMismatch,
			p.width, p.height, q.width, q.height)
	}
	return nil
}

// Equal reports whether p and q have identical dimensions, depth, and
// samples.
func (p *Pix) Equal(q *Pix) bool {
	if !p.SameSize(q) || p.depth != q.depth {
		return false
	}
	for i, v := range p.data {
		if q.data[i] != v {
			return false
		}
	}
	return true
}
