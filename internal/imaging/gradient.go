package imaging

import (
	"image"

	"github.com/anthonynsimon/bild/blur"
	"github.com/anthonynsimon/bild/effect"

	"github.com/ironsheep/region-tools-mcp/internal/pixmap"
)

// GradientMagnitude converts an image to the 8-bit Sobel gradient-magnitude
// buffer the watershed engine floods.
//
// blurRadius > 0 applies a Gaussian blur first; a radius around 1-2 smooths
// sensor noise that would otherwise seed one tiny basin per speckle. The
// Sobel response is folded to grayscale with the usual luminance weights.
func GradientMagnitude(img image.Image, blurRadius float64) *pixmap.Pix {
	src := img
	if blurRadius > 0 {
		src = blur.Gaussian(img, blurRadius)
	}
	return pixmap.FromImage(effect.Sobel(src))
}
