package imgproc

import (
	"bytes"
	"fmt"
	"image"
	_ "image/gif"
	"image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	"golang.org/x/image/draw"
)

// PrepareOptions controls how a photo is normalized before embedding.
type PrepareOptions struct {
	CorrectOrientation bool
	MaxWidth           int // pixels; 0 disables downscaling
	JPEGQuality        int
}

// Prepared is a normalized image ready for embedding.
type Prepared struct {
	Data   []byte // JPEG bytes
	Width  int
	Height int
}

// Prepare decodes raw image bytes, optionally corrects EXIF orientation,
// downscales to MaxWidth preserving aspect ratio, and re-encodes as JPEG.
func Prepare(data []byte, orientation int, opts PrepareOptions) (*Prepared, error) {
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}

	if opts.CorrectOrientation {
		img = CorrectOrientation(img, orientation)
	}

	bounds := img.Bounds()
	width := bounds.Dx()
	height := bounds.Dy()

	if opts.MaxWidth > 0 && width > opts.MaxWidth {
		newWidth := opts.MaxWidth
		newHeight := int(float64(height) * float64(newWidth) / float64(width))
		resized := image.NewRGBA(image.Rect(0, 0, newWidth, newHeight))
		draw.CatmullRom.Scale(resized, resized.Bounds(), img, bounds, draw.Over, nil)
		img = resized
		width = newWidth
		height = newHeight
	}

	quality := opts.JPEGQuality
	if quality <= 0 {
		quality = 85
	}
	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: quality}); err != nil {
		return nil, fmt.Errorf("failed to encode image: %w", err)
	}

	return &Prepared{Data: buf.Bytes(), Width: width, Height: height}, nil
}

// Dimensions reads pixel dimensions from raw image bytes without a full decode.
func Dimensions(data []byte) (int, int, error) {
	cfg, _, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return 0, 0, fmt.Errorf("failed to decode image config: %w", err)
	}
	return cfg.Width, cfg.Height, nil
}
