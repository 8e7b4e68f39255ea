package pixmap

import (
	"fmt"
	"image"
	"image/color"

	"github.com/disintegration/imaging"
)

// FromImage converts any image to an 8-bit grayscale buffer using ITU-R
// BT.601 luminance weights.
func FromImage(img image.Image) *Pix {
	gray := imaging.Grayscale(img)
	b := gray.Bounds()
	p, _ := New(b.Dx(), b.Dy(), Depth8)
	for y := 0; y < p.height; y++ {
		for x := 0; x < p.width; x++ {
			// Grayscale output has R == G == B.
			i := gray.PixOffset(b.Min.X+x, b.Min.Y+y)
			p.data[y*p.width+x] = uint32(gray.Pix[i])
		}
	}
	return p
}

// FromGray converts a grayscale image to an 8-bit buffer.
func FromGray(img *image.Gray) *Pix {
	b := img.Bounds()
	p, _ := New(b.Dx(), b.Dy(), Depth8)
	for y := 0; y < p.height; y++ {
		for x := 0; x < p.width; x++ {
			p.data[y*p.width+x] = uint32(img.GrayAt(b.Min.X+x, b.Min.Y+y).Y)
		}
	}
	return p
}

// Threshold converts an 8-bit buffer to a 1-bit buffer with foreground where
// the sample is at or above level.
func (p *Pix) Threshold(level uint32) (*Pix, error) {
	if p.depth != Depth8 {
		return nil, fmt.Errorf("%w: threshold requires 8-bit, got %d", ErrUnsupportedDepth, p.depth)
	}
	out, _ := New(p.width, p.height, Depth1)
	for i, v := range p.data {
		if v >= level {
			out.data[i] = 1
		}
	}
	return out, nil
}

// ToGray renders the buffer as a grayscale image: 1-bit foreground maps to
// 255, 8-bit samples map directly, and wider samples are clipped to 255.
func (p *Pix) ToGray() *image.Gray {
	img := image.NewGray(image.Rect(0, 0, p.width, p.height))
	for y := 0; y < p.height; y++ {
		for x := 0; x < p.width; x++ {
			v := p.data[y*p.width+x]
			switch {
			case p.depth == Depth1:
				if v != 0 {
					v = 255
				}
			case v > 255:
				v = 255
			}
			img.SetGray(x, y, color.Gray{Y: uint8(v)})
		}
	}
	return img
}
