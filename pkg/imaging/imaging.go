// Package imaging shrinks uploaded profile pictures.
package imaging

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	_ "image/gif" // Register GIF decoder
	"image/jpeg"
	_ "image/png" // Register PNG decoder

	"golang.org/x/image/draw"
)

const (
	DefaultMaxDimension = 512
	DefaultQuality      = 85

	// Decoding allocates width*height*4 bytes regardless of the encoded size.
	MaxSide   = 8000
	MaxPixels = 40_000_000
)

var ErrTooManyPixels = errors.New("image dimensions too large")

// CompressJPEG scales data down so neither side exceeds maxDimension, keeping the aspect
// ratio, and re-encodes it as JPEG. Smaller images keep their size.
func CompressJPEG(data []byte, maxDimension, quality int) ([]byte, error) {
	cfg, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to read image header (format: %s): %w", format, err)
	}
	if err := checkDimensions(cfg.Width, cfg.Height); err != nil {
		return nil, err
	}

	img, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to decode image (format: %s): %w", format, err)
	}

	bounds := img.Bounds()
	newWidth, newHeight := fit(bounds.Dx(), bounds.Dy(), maxDimension)

	resized := image.NewRGBA(image.Rect(0, 0, newWidth, newHeight))
	draw.CatmullRom.Scale(resized, resized.Bounds(), img, bounds, draw.Over, nil)

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, resized, &jpeg.Options{Quality: quality}); err != nil {
		return nil, fmt.Errorf("failed to encode image: %w", err)
	}
	return buf.Bytes(), nil
}

func checkDimensions(width, height int) error {
	if width > MaxSide || height > MaxSide || int64(width)*int64(height) > MaxPixels {
		return fmt.Errorf("%w: %dx%d", ErrTooManyPixels, width, height)
	}
	return nil
}

func fit(width, height, maxDimension int) (int, int) {
	if width >= height {
		if width <= maxDimension {
			return width, height
		}
		return maxDimension, max(1, height*maxDimension/width)
	}
	if height <= maxDimension {
		return width, height
	}
	return max(1, width*maxDimension/height), maxDimension
}
