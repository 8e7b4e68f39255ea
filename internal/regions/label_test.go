package regions

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ironsheep/region-tools-mcp/internal/pixmap"
)

// binaryPix builds a 1-bit buffer from rows of '.' (background) and 'x'
// (foreground).
func binaryPix(t *testing.T, rows ...string) *pixmap.Pix {
	t.Helper()
	require.NotEmpty(t, rows)
	p, err := pixmap.New(len(rows[0]), len(rows), pixmap.Depth1)
	require.NoError(t, err)
	for y, row := range rows {
		require.Len(t, row, p.Width(), "row %d", y)
		for x, ch := range row {
			if ch == 'x' {
				p.Put(x, y, 1)
			}
		}
	}
	return p
}

func TestLabel_DiagonalPair(t *testing.T) {
	p := binaryPix(t,
		"x...",
		".x..",
		"....",
		"....",
	)

	_, comps4, err := Label(p, FourWay)
	require.NoError(t, err)
	assert.Len(t, comps4, 2, "diagonal pixels are separate under 4-way")

	_, comps8, err := Label(p, EightWay)
	require.NoError(t, err)
	assert.Len(t, comps8, 1, "diagonal pixels merge under 8-way")
}

func TestLabel_AllBackground(t *testing.T) {
	p := binaryPix(t,
		"....",
		"....",
	)

	for _, conn := range []Connectivity{FourWay, EightWay} {
		m, comps, err := Label(p, conn)
		require.NoError(t, err)
		assert.Empty(t, comps, "%s", conn)
		for y := 0; y < p.Height(); y++ {
			for x := 0; x < p.Width(); x++ {
				assert.Zero(t, m.At(x, y))
			}
		}
	}
}

func TestLabel_EightWayNeverExceedsFourWay(t *testing.T) {
	images := []*pixmap.Pix{
		binaryPix(t, "x.x", ".x.", "x.x"),
		binaryPix(t, "xxx", "...", "xxx"),
		binaryPix(t, "x..", ".x.", "..x"),
		binaryPix(t, "xxxx", "xxxx"),
		binaryPix(t, "....", "...."),
	}
	for i, p := range images {
		n4, err := Count(p, FourWay)
		require.NoError(t, err)
		n8, err := Count(p, EightWay)
		require.NoError(t, err)
		assert.LessOrEqual(t, n8, n4, "image %d", i)
	}
}

func TestLabel_FirstAppearanceOrder(t *testing.T) {
	p := binaryPix(t,
		".x....",
		".x..xx",
		"....xx",
		"x.....",
	)

	m, comps, err := Label(p, FourWay)
	require.NoError(t, err)
	require.Len(t, comps, 3)

	// Labels follow raster discovery order.
	assert.Equal(t, 1, m.At(1, 0))
	assert.Equal(t, 2, m.At(4, 1))
	assert.Equal(t, 3, m.At(0, 3))

	assert.Equal(t, Component{
		Label:      1,
		PixelCount: 2,
		Bounds:     pixmap.Rect{X: 1, Y: 0, W: 1, H: 2},
	}, comps[0])
	assert.Equal(t, Component{
		Label:      2,
		PixelCount: 4,
		Bounds:     pixmap.Rect{X: 4, Y: 1, W: 2, H: 2},
	}, comps[1])
	assert.Equal(t, Component{
		Label:      3,
		PixelCount: 1,
		Bounds:     pixmap.Rect{X: 0, Y: 3, W: 1, H: 1},
	}, comps[2])
}

func TestLabel_UShapeMergesAcrossScan(t *testing.T) {
	// The two arms get distinct provisional labels that must be unioned when
	// the scan reaches the bottom of the U.
	p := binaryPix(t,
		"x.x",
		"x.x",
		"xxx",
	)

	m, comps, err := Label(p, FourWay)
	require.NoError(t, err)
	require.Len(t, comps, 1)
	assert.Equal(t, uint64(7), comps[0].PixelCount)
	assert.Equal(t, pixmap.Rect{X: 0, Y: 0, W: 3, H: 3}, comps[0].Bounds)

	for y := 0; y < 3; y++ {
		for x := 0; x < 3; x++ {
			if p.Foreground(x, y) {
				assert.Equal(t, 1, m.At(x, y))
			} else {
				assert.Zero(t, m.At(x, y))
			}
		}
	}
}

func TestLabel_InputValidation(t *testing.T) {
	gray, err := pixmap.New(4, 4, pixmap.Depth8)
	require.NoError(t, err)

	_, _, err = Label(gray, FourWay)
	assert.ErrorIs(t, err, pixmap.ErrUnsupportedDepth)

	p := binaryPix(t, "x")
	_, _, err = Label(p, Connectivity(6))
	assert.ErrorIs(t, err, pixmap.ErrInvalidParameters)
}

func TestBoundingBoxes(t *testing.T) {
	p := binaryPix(t,
		"xx...",
		"xx..x",
	)
	list, err := BoundingBoxes(p, FourWay)
	require.NoError(t, err)
	require.Equal(t, 2, list.Len())

	r, ok := list.Get(0)
	require.True(t, ok)
	assert.Equal(t, pixmap.Rect{X: 0, Y: 0, W: 2, H: 2}, r)

	r, ok = list.Get(1)
	require.True(t, ok)
	assert.Equal(t, pixmap.Rect{X: 4, Y: 1, W: 1, H: 1}, r)

	_, ok = list.Get(2)
	assert.False(t, ok)
}
