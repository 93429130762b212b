/*
Package imaging normalizes uploaded images before storage.

Every accepted image is decoded, scaled down to fit within a bounding box
while keeping its aspect ratio, and re-encoded as JPEG. Storing a single
normalized format keeps object keys predictable and strips whatever
metadata the original file carried.
*/
package imaging

import (
	"bytes"
	"errors"
	"image"
	"io"

	// registered decoders for the accepted input formats.
	_ "image/gif"
	"image/jpeg"
	_ "image/png"

	"golang.org/x/image/draw"
	_ "golang.org/x/image/webp"
)

const (
	// MaxDimension is the bounding box applied to both axes.
	MaxDimension = 800

	// JPEGQuality is the re-encode quality.
	JPEGQuality = 80

	// MaxImageBytes is the per-image upload size limit (5 MB).
	MaxImageBytes = 5 << 20
)

// ErrUnsupportedFormat is returned when the payload is not a decodable
// JPEG, PNG, GIF, or WebP image.
var ErrUnsupportedFormat = errors.New("unsupported image format")

// ContentType is the MIME type of every normalized image.
const ContentType = "image/jpeg"

// Normalize decodes the image, scales it to fit MaxDimension on both axes
// (never upscaling), and returns the JPEG re-encode.
func Normalize(r io.Reader) ([]byte, error) {
	src, _, err := image.Decode(r)
	if err != nil {
		return nil, ErrUnsupportedFormat
	}

	bounds := src.Bounds()
	width := bounds.Dx()
	height := bounds.Dy()

	if width > MaxDimension || height > MaxDimension {
		scaled := scaleToFit(src, MaxDimension)
		src = scaled
	}

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, src, &jpeg.Options{Quality: JPEGQuality}); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}

// scaleToFit resizes src so its longer side equals maxDim, preserving the
// aspect ratio.
func scaleToFit(src image.Image, maxDim int) image.Image {
	bounds := src.Bounds()
	width := bounds.Dx()
	height := bounds.Dy()

	var dstW, dstH int
	if width >= height {
		dstW = maxDim
		dstH = height * maxDim / width
	} else {
		dstH = maxDim
		dstW = width * maxDim / height
	}

	if dstW < 1 {
		dstW = 1
	}
	if dstH < 1 {
		dstH = 1
	}

	dst := image.NewRGBA(image.Rect(0, 0, dstW, dstH))
	draw.CatmullRom.Scale(dst, dst.Bounds(), src, bounds, draw.Over, nil)

	return dst
}
