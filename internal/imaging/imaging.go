// Package imaging loads and prepares image files for scoring.
package imaging

import (
	"image"
	"os"
	"time"

	// Decoders for the supported photo formats.
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	"github.com/rwcarlsen/goexif/exif"
	"golang.org/x/image/draw"
	_ "golang.org/x/image/webp"

	"github.com/phototag/phototag-go/internal/errors"
)

// maxDimension caps the longer image side before scoring. Larger photos are
// downscaled to keep scorer payloads and memory use bounded.
const maxDimension = 1024

// Load opens and decodes an image file, downscaling it when oversized.
func Load(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.New(err).
			Component("imaging").
			Category(errors.CategoryFileIO).
			Context("path", path).
			Build()
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, errors.New(err).
			Component("imaging").
			Category(errors.CategoryImageDecode).
			Context("path", path).
			Build()
	}

	return downscale(img), nil
}

// downscale shrinks an image so that neither side exceeds maxDimension,
// preserving the aspect ratio. Smaller images pass through untouched.
func downscale(img image.Image) image.Image {
	bounds := img.Bounds()
	width, height := bounds.Dx(), bounds.Dy()
	if width <= maxDimension && height <= maxDimension {
		return img
	}

	scale := float64(maxDimension) / float64(width)
	if height > width {
		scale = float64(maxDimension) / float64(height)
	}
	dstW := int(float64(width) * scale)
	dstH := int(float64(height) * scale)
	if dstW < 1 {
		dstW = 1
	}
	if dstH < 1 {
		dstH = 1
	}

	dst := image.NewRGBA(image.Rect(0, 0, dstW, dstH))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, bounds, draw.Src, nil)
	return dst
}

// CaptureTime extracts the EXIF capture timestamp from an image file.
// Extraction is best-effort: missing or unparsable EXIF data is reported as
// absence, never as an error.
func CaptureTime(path string) (time.Time, bool) {
	f, err := os.Open(path)
	if err != nil {
		return time.Time{}, false
	}
	defer f.Close()

	meta, err := exif.Decode(f)
	if err != nil {
		return time.Time{}, false
	}

	captured, err := meta.DateTime()
	if err != nil {
		return time.Time{}, false
	}
	return captured, true
}
