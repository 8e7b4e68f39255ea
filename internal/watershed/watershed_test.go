package watershed

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ironsheep/region-tools-mcp/internal/pixmap"
	"github.com/ironsheep/region-tools-mcp/internal/regions"
)

// columnGradient builds an 8-bit buffer whose value depends only on x.
func columnGradient(t *testing.T, profile []uint32, height int) *pixmap.Pix {
	t.Helper()
	p, err := pixmap.New(len(profile), height, pixmap.Depth8)
	require.NoError(t, err)
	for y := 0; y < height; y++ {
		for x, v := range profile {
			p.Put(x, y, v)
		}
	}
	return p
}

// assertPartition checks the core watershed invariant: every pixel is in a
// basin or on the boundary, never both, never neither.
func assertPartition(t *testing.T, res *Result) {
	t.Helper()
	for y := 0; y < res.Boundary.Height(); y++ {
		for x := 0; x < res.Boundary.Width(); x++ {
			labeled := res.Basins.At(x, y) != 0
			onBoundary := res.Boundary.Foreground(x, y)
			assert.True(t, labeled != onBoundary,
				"(%d,%d): labeled=%v boundary=%v", x, y, labeled, onBoundary)
		}
	}
}

func TestSegment_TwoBowls(t *testing.T) {
	// Two well-separated minima at x=2 and x=6 with a ridge at x=4.
	grad := columnGradient(t, []uint32{20, 10, 0, 10, 20, 10, 0, 10, 20}, 5)

	res, err := Segment(grad, Options{Connectivity: regions.EightWay})
	require.NoError(t, err)

	assert.Equal(t, 2, res.BasinCount)
	assertPartition(t, res)
	assert.NotZero(t, res.Boundary.CountForeground(), "ridge produces a boundary")

	for y := 0; y < 5; y++ {
		for x := 0; x < 4; x++ {
			assert.Equal(t, 1, res.Basins.At(x, y), "(%d,%d) drains left", x, y)
		}
		assert.True(t, res.Boundary.Foreground(4, y), "ridge column is boundary")
		for x := 5; x < 9; x++ {
			assert.Equal(t, 2, res.Basins.At(x, y), "(%d,%d) drains right", x, y)
		}
	}
}

func TestSegment_FlatImageIsSingleBasin(t *testing.T) {
	grad := columnGradient(t, []uint32{7, 7, 7, 7}, 4)

	res, err := Segment(grad, Options{})
	require.NoError(t, err)

	assert.Equal(t, 1, res.BasinCount)
	assert.Zero(t, res.Boundary.CountForeground())
	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			assert.Equal(t, 1, res.Basins.At(x, y))
		}
	}
}

func TestSegment_MinDepthSuppressesShallowMinimum(t *testing.T) {
	// The right-hand dip bottoms out at 16 but escapes over a ridge of 20:
	// only 4 levels deep, so MinDepth 5 absorbs it into the left basin.
	profile := []uint32{20, 10, 5, 10, 20, 18, 16, 18, 20}

	deep, err := Segment(columnGradient(t, profile, 3), Options{})
	require.NoError(t, err)
	assert.Equal(t, 2, deep.BasinCount, "both minima without suppression")

	merged, err := Segment(columnGradient(t, profile, 3), Options{MinDepth: 5})
	require.NoError(t, err)
	assert.Equal(t, 1, merged.BasinCount)
	assert.Zero(t, merged.Boundary.CountForeground())
	assertPartition(t, merged)
}

func TestSegment_Deterministic(t *testing.T) {
	grad := columnGradient(t, []uint32{9, 3, 9, 1, 9, 3, 9}, 6)

	first, err := Segment(grad, Options{Connectivity: regions.FourWay})
	require.NoError(t, err)
	for i := 0; i < 3; i++ {
		again, err := Segment(grad, Options{Connectivity: regions.FourWay})
		require.NoError(t, err)
		assert.Equal(t, first.BasinCount, again.BasinCount)
		assert.True(t, first.Boundary.Equal(again.Boundary), "run %d boundary", i)
		for y := 0; y < 6; y++ {
			for x := 0; x < 7; x++ {
				assert.Equal(t, first.Basins.At(x, y), again.Basins.At(x, y),
					"run %d (%d,%d)", i, x, y)
			}
		}
	}
}

func TestSegment_Validation(t *testing.T) {
	bin, err := pixmap.New(4, 4, pixmap.Depth1)
	require.NoError(t, err)
	_, err = Segment(bin, Options{})
	assert.ErrorIs(t, err, pixmap.ErrUnsupportedDepth)

	gray, err := pixmap.New(4, 4, pixmap.Depth8)
	require.NoError(t, err)
	_, err = Segment(gray, Options{Connectivity: regions.Connectivity(5)})
	assert.ErrorIs(t, err, pixmap.ErrInvalidParameters)
}
