package imaging

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"testing"
)

func encodePNG(t *testing.T, width, height int) *bytes.Buffer {
	t.Helper()

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for x := 0; x < width; x += 10 {
		for y := 0; y < height; y++ {
			img.Set(x, y, color.RGBA{R: 200, A: 255})
		}
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("png encode failed: %v", err)
	}

	return &buf
}

func decodeJPEG(t *testing.T, data []byte) image.Image {
	t.Helper()

	img, err := jpeg.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("normalized output is not a JPEG: %v", err)
	}

	return img
}

func TestNormalizeScalesDownLandscape(t *testing.T) {
	out, err := Normalize(encodePNG(t, 1600, 1200))
	if err != nil {
		t.Fatalf("Normalize failed: %v", err)
	}

	bounds := decodeJPEG(t, out).Bounds()
	if bounds.Dx() != MaxDimension || bounds.Dy() != 600 {
		t.Errorf("got %dx%d, want %dx600", bounds.Dx(), bounds.Dy(), MaxDimension)
	}
}

func TestNormalizeScalesDownPortrait(t *testing.T) {
	out, err := Normalize(encodePNG(t, 600, 1200))
	if err != nil {
		t.Fatalf("Normalize failed: %v", err)
	}

	bounds := decodeJPEG(t, out).Bounds()
	if bounds.Dx() != 400 || bounds.Dy() != MaxDimension {
		t.Errorf("got %dx%d, want 400x%d", bounds.Dx(), bounds.Dy(), MaxDimension)
	}
}

func TestNormalizeKeepsSmallImages(t *testing.T) {
	out, err := Normalize(encodePNG(t, 120, 80))
	if err != nil {
		t.Fatalf("Normalize failed: %v", err)
	}

	bounds := decodeJPEG(t, out).Bounds()
	if bounds.Dx() != 120 || bounds.Dy() != 80 {
		t.Errorf("small image was resized to %dx%d", bounds.Dx(), bounds.Dy())
	}
}

func TestNormalizeRejectsNonImage(t *testing.T) {
	_, err := Normalize(bytes.NewReader([]byte("definitely not an image")))
	if !errors.Is(err, ErrUnsupportedFormat) {
		t.Errorf("got %v, want ErrUnsupportedFormat", err)
	}
}
