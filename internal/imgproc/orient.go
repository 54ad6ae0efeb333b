// Package imgproc provides the image transforms shared by photo upload,
// public proposal serving and PDF export: EXIF orientation correction,
// bounded downscaling with JPEG re-encoding, and watermarking.
package imgproc

import (
	"image"

	"github.com/disintegration/imaging"
)

// CorrectOrientation applies the rotation/flip implied by the standard
// 8-value EXIF orientation tag. Unknown or missing values (including 0 and 1)
// return the image unchanged. This is the single orientation code path used
// by both thumbnailing and PDF embedding.
func CorrectOrientation(img image.Image, orientation int) image.Image {
	switch orientation {
	case 2:
		return imaging.FlipH(img)
	case 3:
		return imaging.Rotate180(img)
	case 4:
		return imaging.FlipV(img)
	case 5:
		return imaging.Transpose(img)
	case 6:
		return imaging.Rotate270(img) // 90° clockwise
	case 7:
		return imaging.Transverse(img)
	case 8:
		return imaging.Rotate90(img) // 90° counter-clockwise
	default:
		return img
	}
}

// OrientedDimensions returns the pixel dimensions after orientation
// correction, without touching the pixel data. Orientations 5-8 swap axes.
func OrientedDimensions(width, height, orientation int) (int, int) {
	if orientation >= 5 && orientation <= 8 {
		return height, width
	}
	return width, height
}
