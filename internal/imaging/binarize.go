package imaging

import (
	"fmt"
	"image"

	"github.com/anthonynsimon/bild/segment"

	"github.com/ironsheep/region-tools-mcp/internal/pixmap"
)

// BinarizeResult contains a thresholded image and the threshold applied.
type BinarizeResult struct {
	// Width of the output image in pixels (same as input).
	Width int `json:"width"`

	// Height of the output image in pixels (same as input).
	Height int `json:"height"`

	// Threshold is the grayscale level actually applied (0-255). When Otsu
	// selection was requested this is the computed level.
	Threshold int `json:"threshold"`

	// ForegroundPixels is the number of pixels at or above the threshold
	// (below it, when inverted).
	ForegroundPixels uint64 `json:"foreground_pixels"`

	// ImageBase64 is the binary image encoded as base64 PNG, foreground
	// white.
	ImageBase64 string `json:"image_base64"`

	// MimeType is always "image/png".
	MimeType string `json:"mime_type"`
}

// BinarizeToPix converts an image to a 1-bit buffer.
//
// threshold selects the grayscale cut level (0-255); pass a negative value
// to compute it automatically with Otsu's method. invert makes dark pixels
// foreground instead of bright ones, the usual choice for scanned documents.
// The applied threshold is returned alongside the buffer.
func BinarizeToPix(img image.Image, threshold int, invert bool) (*pixmap.Pix, int, error) {
	if threshold > 255 {
		return nil, 0, fmt.Errorf("%w: threshold %d above 255", pixmap.ErrInvalidParameters, threshold)
	}
	if threshold < 0 {
		gray := pixmap.FromImage(img)
		threshold = otsuThreshold(gray)
	}

	bin := segment.Threshold(img, uint8(threshold))
	p, err := pixmap.FromGray(bin).Threshold(128)
	if err != nil {
		return nil, 0, err
	}
	if invert {
		p, err = p.Invert()
		if err != nil {
			return nil, 0, err
		}
	}
	return p, threshold, nil
}

// Binarize thresholds an image and returns the result as base64 PNG, for
// inspecting the binary input the region tools will operate on.
func Binarize(img image.Image, threshold int, invert bool) (*BinarizeResult, error) {
	p, applied, err := BinarizeToPix(img, threshold, invert)
	if err != nil {
		return nil, err
	}
	encoded, err := encodeBase64PNG(p.ToGray())
	if err != nil {
		return nil, err
	}
	return &BinarizeResult{
		Width:            p.Width(),
		Height:           p.Height(),
		Threshold:        applied,
		ForegroundPixels: p.CountForeground(),
		ImageBase64:      encoded,
		MimeType:         "image/png",
	}, nil
}

// otsuThreshold picks the grayscale level that maximizes between-class
// variance over the buffer's histogram.
func otsuThreshold(gray *pixmap.Pix) int {
	var hist [256]uint64
	w, h := gray.Width(), gray.Height()
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			hist[gray.At(x, y)]++
		}
	}
	total := uint64(w * h)

	var sum float64
	for i, n := range hist {
		sum += float64(i) * float64(n)
	}

	var sumBg, weightBg float64
	best, bestLevel := -1.0, 128
	for level := 0; level < 256; level++ {
		weightBg += float64(hist[level])
		if weightBg == 0 {
			continue
		}
		weightFg := float64(total) - weightBg
		if weightFg == 0 {
			break
		}
		sumBg += float64(level) * float64(hist[level])
		meanBg := sumBg / weightBg
		meanFg := (sum - sumBg) / weightFg
		between := weightBg * weightFg * (meanBg - meanFg) * (meanBg - meanFg)
		if between > best {
			best = between
			bestLevel = level + 1
		}
	}
	return bestLevel
}
