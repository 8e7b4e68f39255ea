package regions

import (
	"fmt"

	"github.com/ironsheep/region-tools-mcp/internal/pixmap"
)

// Component describes one connected component of a labeled image.
type Component struct {
	// Label is the component's id, in 1..N in raster discovery order.
	Label int `json:"label"`

	// PixelCount is the number of foreground pixels carrying this label.
	// It counts member pixels only, not the bounding-box area.
	PixelCount uint64 `json:"pixel_count"`

	// Bounds is the tight axis-aligned bounding box of the member pixels.
	Bounds pixmap.Rect `json:"bounds"`
}

// LabelMap is a raster of component labels, one per pixel of the source
// image. Background pixels carry label 0.
type LabelMap struct {
	width  int
	height int
	labels []int32
}

// NewLabelMap allocates an all-background label raster.
func NewLabelMap(width, height int) (*LabelMap, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: dimensions %dx%d", pixmap.ErrInvalidParameters, width, height)
	}
	return &LabelMap{
		width:  width,
		height: height,
		labels: make([]int32, width*height),
	}, nil
}

// Width returns the raster width in pixels.
func (m *LabelMap) Width() int { return m.width }

// Height returns the raster height in pixels.
func (m *LabelMap) Height() int { return m.height }

// At returns the label at (x, y), or 0 when the coordinate is out of bounds.
func (m *LabelMap) At(x, y int) int {
	if x < 0 || y < 0 || x >= m.width || y >= m.height {
		return 0
	}
	return int(m.labels[y*m.width+x])
}

// Set writes the label at (x, y). Out-of-bounds coordinates are ignored.
func (m *LabelMap) Set(x, y, label int) {
	if x < 0 || y < 0 || x >= m.width || y >= m.height {
		return
	}
	m.labels[y*m.width+x] = int32(label)
}
