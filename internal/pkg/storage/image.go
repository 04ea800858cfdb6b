package storage

import (
	"bytes"
	"fmt"
	"image"
	"image/jpeg"
	"io"

	"github.com/disintegration/imaging"
)

const thumbnailJPEGQuality = 80

// Thumbnailer resizes uploaded images for list views.
type Thumbnailer struct {
	maxWidth  int
	maxHeight int
}

// NewThumbnailer creates a Thumbnailer with the given bounding box.
func NewThumbnailer(maxWidth, maxHeight int) *Thumbnailer {
	return &Thumbnailer{maxWidth: maxWidth, maxHeight: maxHeight}
}

// Render decodes the source image, fits it inside the bounding box and
// re-encodes it as JPEG.
func (t *Thumbnailer) Render(content io.Reader) (io.Reader, error) {
	img, _, err := image.Decode(content)
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}

	fitted := imaging.Fit(img, t.maxWidth, t.maxHeight, imaging.Lanczos)

	buf := new(bytes.Buffer)
	if err := jpeg.Encode(buf, fitted, &jpeg.Options{Quality: thumbnailJPEGQuality}); err != nil {
		return nil, fmt.Errorf("failed to encode thumbnail: %w", err)
	}
	return buf, nil
}
