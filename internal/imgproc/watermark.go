package imgproc

import (
	"image"
	"image/color"
	"image/draw"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

// watermarkAlpha is the text opacity on public proposal images.
const watermarkAlpha = 72

// Watermark tiles the given text diagonally across a copy of the image.
// Used on photos served through public proposal URLs so clients can review
// but not reuse them.
func Watermark(img image.Image, text string) image.Image {
	if text == "" {
		return img
	}

	bounds := img.Bounds()
	out := image.NewRGBA(bounds)
	draw.Draw(out, bounds, img, bounds.Min, draw.Src)

	face := basicfont.Face7x13
	textWidth := font.MeasureString(face, text).Ceil()
	if textWidth == 0 {
		return out
	}

	// Tile with generous spacing, offsetting every other row for a
	// diagonal pattern.
	stepX := textWidth * 2
	stepY := 80
	row := 0
	for y := bounds.Min.Y + stepY/2; y < bounds.Max.Y; y += stepY {
		offset := 0
		if row%2 == 1 {
			offset = stepX / 2
		}
		for x := bounds.Min.X - offset; x < bounds.Max.X; x += stepX {
			drawer := &font.Drawer{
				Dst:  out,
				Src:  image.NewUniform(color.NRGBA{R: 255, G: 255, B: 255, A: watermarkAlpha}),
				Face: face,
				Dot:  fixed.P(x, y),
			}
			drawer.DrawString(text)
		}
		row++
	}
	return out
}
