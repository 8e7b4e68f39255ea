package imaging

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	"image/color"
	"image/png"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/ironsheep/region-tools-mcp/internal/pixmap"
	"github.com/ironsheep/region-tools-mcp/internal/regions"
)

// goldenAngle spreads consecutive label hues as far apart as possible, so
// adjacent components rarely share a similar color.
const goldenAngle = 137.50776405003785

// RenderResult contains a rendered visualization encoded as base64 PNG.
type RenderResult struct {
	// Width of the output image in pixels.
	Width int `json:"width"`

	// Height of the output image in pixels.
	Height int `json:"height"`

	// ImageBase64 is the rendering encoded as base64 PNG.
	ImageBase64 string `json:"image_base64"`

	// MimeType is always "image/png".
	MimeType string `json:"mime_type"`
}

// labelColor returns a stable, well-separated color for a label id.
func labelColor(label int) color.RGBA {
	hue := float64(label) * goldenAngle
	hue -= 360 * float64(int(hue/360))
	c := colorful.Hsv(hue, 0.65, 0.95)
	r, g, b := c.RGB255()
	return color.RGBA{R: r, G: g, B: b, A: 255}
}

// RenderLabels renders a label raster with one distinct color per label on a
// black background. If boundary is non-nil, its foreground pixels are drawn
// white on top, the usual way to show watershed lines over their basins.
func RenderLabels(m *regions.LabelMap, boundary *pixmap.Pix) (*RenderResult, error) {
	if boundary != nil &&
		(boundary.Width() != m.Width() || boundary.Height() != m.Height()) {
		return nil, fmt.Errorf("%w: labels %dx%d vs boundary %dx%d",
			pixmap.ErrDimensionMismatch, m.Width(), m.Height(),
			boundary.Width(), boundary.Height())
	}

	img := image.NewRGBA(image.Rect(0, 0, m.Width(), m.Height()))
	for y := 0; y < m.Height(); y++ {
		for x := 0; x < m.Width(); x++ {
			switch {
			case boundary != nil && boundary.Foreground(x, y):
				img.SetRGBA(x, y, color.RGBA{R: 255, G: 255, B: 255, A: 255})
			case m.At(x, y) != 0:
				img.SetRGBA(x, y, labelColor(m.At(x, y)))
			default:
				img.SetRGBA(x, y, color.RGBA{A: 255})
			}
		}
	}

	encoded, err := encodeBase64PNG(img)
	if err != nil {
		return nil, err
	}
	return &RenderResult{
		Width:       m.Width(),
		Height:      m.Height(),
		ImageBase64: encoded,
		MimeType:    "image/png",
	}, nil
}

// RenderPix renders any pixel buffer as a grayscale base64 PNG: 1-bit
// foreground white, 8-bit samples as-is, wider samples clipped.
func RenderPix(p *pixmap.Pix) (*RenderResult, error) {
	encoded, err := encodeBase64PNG(p.ToGray())
	if err != nil {
		return nil, err
	}
	return &RenderResult{
		Width:       p.Width(),
		Height:      p.Height(),
		ImageBase64: encoded,
		MimeType:    "image/png",
	}, nil
}

// encodeBase64PNG encodes an image as PNG and then base64, the transport
// format every image-bearing tool result uses.
func encodeBase64PNG(img image.Image) (string, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return "", fmt.Errorf("failed to encode PNG: %w", err)
	}
	return base64.StdEncoding.EncodeToString(buf.Bytes()), nil
}
