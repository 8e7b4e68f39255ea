package quadtree

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/stat"

	"github.com/ironsheep/region-tools-mcp/internal/pixmap"
)

// randomGray builds a deterministic pseudo-random 8-bit buffer.
func randomGray(t *testing.T, w, h int, seed int64) *pixmap.Pix {
	t.Helper()
	p, err := pixmap.New(w, h, pixmap.Depth8)
	require.NoError(t, err)
	rng := rand.New(rand.NewSource(seed))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			p.Put(x, y, uint32(rng.Intn(256)))
		}
	}
	return p
}

func samples(p *pixmap.Pix, r pixmap.Rect) []float64 {
	out := make([]float64, 0, r.W*r.H)
	for y := r.Y; y < r.Y+r.H; y++ {
		for x := r.X; x < r.X+r.W; x++ {
			out = append(out, float64(p.At(x, y)))
		}
	}
	return out
}

func TestIntegral_RectangleSums(t *testing.T) {
	p, err := pixmap.New(3, 2, pixmap.Depth8)
	require.NoError(t, err)
	// 1 2 3
	// 4 5 6
	vals := [][]uint32{{1, 2, 3}, {4, 5, 6}}
	for y, row := range vals {
		for x, v := range row {
			p.Put(x, y, v)
		}
	}

	it, err := BuildIntegral(p)
	require.NoError(t, err)

	assert.Equal(t, uint64(21), it.Sum(pixmap.Rect{X: 0, Y: 0, W: 3, H: 2}))
	assert.Equal(t, uint64(1), it.Sum(pixmap.Rect{X: 0, Y: 0, W: 1, H: 1}))
	assert.Equal(t, uint64(5+6), it.Sum(pixmap.Rect{X: 1, Y: 1, W: 2, H: 1}))
	assert.Zero(t, it.Sum(pixmap.Rect{X: 3, Y: 0, W: 1, H: 1}), "clipped to empty")

	sq, err := BuildIntegralSquared(p)
	require.NoError(t, err)
	assert.Equal(t, uint64(1+4+9+16+25+36), sq.Sum(pixmap.Rect{X: 0, Y: 0, W: 3, H: 2}))
}

func TestMaxLevels(t *testing.T) {
	tests := []struct {
		w, h, want int
	}{
		{1, 1, 0},
		{2, 2, 1},
		{5, 4, 2},
		{8, 8, 3},
		{1024, 768, 9},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, MaxLevels(tt.w, tt.h), "%dx%d", tt.w, tt.h)
	}
}

func TestMean_LevelZeroIsPopulationMean(t *testing.T) {
	p := randomGray(t, 13, 9, 1)

	res, err := Mean(p, 0)
	require.NoError(t, err)
	require.Len(t, res.Levels, 1)
	require.Len(t, res.Levels[0].Values, 1)

	want := stat.Mean(samples(p, pixmap.Rect{W: 13, H: 9}), nil)
	assert.InDelta(t, want, float64(res.Levels[0].At(0, 0)), 1e-3)
}

func TestMeanVariance_BlocksMatchGonum(t *testing.T) {
	p := randomGray(t, 16, 16, 7)

	mean, variance, err := MeanVariance(p, 2)
	require.NoError(t, err)
	require.Len(t, mean.Levels, 3)
	require.Len(t, variance.Levels, 3)

	for k := 0; k <= 2; k++ {
		side := 1 << k
		for row := 0; row < side; row++ {
			for col := 0; col < side; col++ {
				r := block(16, 16, side, col, row)
				s := samples(p, r)
				assert.InDelta(t, stat.Mean(s, nil),
					float64(mean.Levels[k].At(col, row)), 1e-3,
					"mean level %d block (%d,%d)", k, col, row)
				assert.InDelta(t, stat.PopVariance(s, nil),
					float64(variance.Levels[k].At(col, row)), 1e-2,
					"variance level %d block (%d,%d)", k, col, row)
			}
		}
	}
}

func TestMean_OddDimensionsPartition(t *testing.T) {
	// Proportional block cuts must cover every pixel exactly once even when
	// the side does not divide the image size.
	p := randomGray(t, 7, 5, 3)

	res, err := Mean(p, 2)
	require.NoError(t, err)

	level := res.Levels[2]
	var weighted float64
	for row := 0; row < level.Side; row++ {
		for col := 0; col < level.Side; col++ {
			r := block(7, 5, level.Side, col, row)
			weighted += float64(level.At(col, row)) * float64(r.W*r.H)
		}
	}
	total := stat.Mean(samples(p, pixmap.Rect{W: 7, H: 5}), nil) * 35
	assert.True(t, math.Abs(weighted-total) < 1e-1,
		"area-weighted block means reconstruct the image sum")
}

func TestQuadtree_Validation(t *testing.T) {
	p := randomGray(t, 8, 8, 2)

	_, err := Mean(p, 4) // MaxLevels(8,8) == 3
	assert.ErrorIs(t, err, pixmap.ErrInvalidParameters)

	_, err = Mean(p, -1)
	assert.ErrorIs(t, err, pixmap.ErrInvalidParameters)

	bin, err := pixmap.New(8, 8, pixmap.Depth1)
	require.NoError(t, err)
	_, err = Mean(bin, 1)
	assert.ErrorIs(t, err, pixmap.ErrUnsupportedDepth)
	_, _, err = MeanVariance(bin, 1)
	assert.ErrorIs(t, err, pixmap.ErrUnsupportedDepth)
	_, err = BuildIntegral(bin)
	assert.ErrorIs(t, err, pixmap.ErrUnsupportedDepth)
}
