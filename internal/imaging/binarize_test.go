package imaging

import (
	"image"
	"image/color"
	"testing"
)

// createSplitGrayImage creates an image whose left half is one gray level
// and right half another.
func createSplitGrayImage(width, height int, left, right uint8) image.Image {
	img := image.NewGray(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			v := left
			if x >= width/2 {
				v = right
			}
			img.SetGray(x, y, color.Gray{Y: v})
		}
	}
	return img
}

func TestBinarizeToPix_FixedThreshold(t *testing.T) {
	img := createSplitGrayImage(10, 10, 0, 255)

	p, applied, err := BinarizeToPix(img, 128, false)
	if err != nil {
		t.Fatalf("BinarizeToPix failed: %v", err)
	}

	if applied != 128 {
		t.Errorf("applied threshold: got %d, want 128", applied)
	}
	if p.Width() != 10 || p.Height() != 10 {
		t.Errorf("dimensions: got %dx%d, want 10x10", p.Width(), p.Height())
	}

	// Only the bright right half should be foreground.
	if got := p.CountForeground(); got != 50 {
		t.Errorf("foreground pixels: got %d, want 50", got)
	}
	if p.Foreground(0, 0) {
		t.Error("dark pixel (0,0) should be background")
	}
	if !p.Foreground(9, 9) {
		t.Error("bright pixel (9,9) should be foreground")
	}
}

func TestBinarizeToPix_Invert(t *testing.T) {
	img := createSplitGrayImage(10, 10, 0, 255)

	p, _, err := BinarizeToPix(img, 128, true)
	if err != nil {
		t.Fatalf("BinarizeToPix failed: %v", err)
	}

	// Inverted: the dark left half becomes foreground.
	if got := p.CountForeground(); got != 50 {
		t.Errorf("foreground pixels: got %d, want 50", got)
	}
	if !p.Foreground(0, 0) {
		t.Error("dark pixel (0,0) should be foreground when inverted")
	}
	if p.Foreground(9, 9) {
		t.Error("bright pixel (9,9) should be background when inverted")
	}
}

func TestBinarizeToPix_OtsuBimodal(t *testing.T) {
	// Two well-separated gray populations; Otsu should cut between them.
	img := createSplitGrayImage(20, 20, 50, 200)

	p, applied, err := BinarizeToPix(img, -1, false)
	if err != nil {
		t.Fatalf("BinarizeToPix failed: %v", err)
	}

	if applied <= 50 || applied > 200 {
		t.Errorf("Otsu threshold %d outside (50, 200]", applied)
	}
	if got := p.CountForeground(); got != 200 {
		t.Errorf("foreground pixels: got %d, want 200", got)
	}
}

func TestBinarizeToPix_ThresholdTooHigh(t *testing.T) {
	img := createInMemoryImage(10, 10, color.RGBA{255, 0, 0, 255})

	_, _, err := BinarizeToPix(img, 256, false)
	if err == nil {
		t.Error("BinarizeToPix should fail for threshold above 255")
	}
}

func TestBinarize(t *testing.T) {
	img := createSplitGrayImage(10, 10, 0, 255)

	result, err := Binarize(img, 128, false)
	if err != nil {
		t.Fatalf("Binarize failed: %v", err)
	}

	if result.Width != 10 || result.Height != 10 {
		t.Errorf("dimensions: got %dx%d, want 10x10", result.Width, result.Height)
	}
	if result.Threshold != 128 {
		t.Errorf("Threshold: got %d, want 128", result.Threshold)
	}
	if result.ForegroundPixels != 50 {
		t.Errorf("ForegroundPixels: got %d, want 50", result.ForegroundPixels)
	}
	if result.MimeType != "image/png" {
		t.Errorf("MimeType: got %s, want image/png", result.MimeType)
	}
	if result.ImageBase64 == "" {
		t.Error("ImageBase64 should not be empty")
	}
}

func TestOtsuThreshold_Uniform(t *testing.T) {
	// A flat image has no between-class separation; the pick just has to
	// be a valid level.
	img := createInMemoryImage(10, 10, color.RGBA{128, 128, 128, 255})

	_, applied, err := BinarizeToPix(img, -1, false)
	if err != nil {
		t.Fatalf("BinarizeToPix failed: %v", err)
	}
	if applied < 0 || applied > 255 {
		t.Errorf("Otsu threshold %d outside [0, 255]", applied)
	}
}
