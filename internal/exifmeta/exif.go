// Package exifmeta extracts photo metadata into the model.ExifData shape.
// Extraction is best-effort: individual missing or malformed tags are
// skipped, and only a completely unreadable EXIF block is an error.
package exifmeta

import (
	"fmt"
	"io"
	"time"

	"github.com/rwcarlsen/goexif/exif"
	"github.com/rwcarlsen/goexif/tiff"

	"github.com/mholecek/location-scout/internal/model"
)

const exifTimeLayout = "2006:01:02 15:04:05"

// flashNames maps the low bit-patterns of the EXIF Flash tag to labels.
var flashNames = map[int]string{
	0x0: "No flash",
	0x1: "Fired",
	0x5: "Fired, no return",
	0x7: "Fired, return detected",
	0x9: "Forced",
	0x10: "Off",
	0x18: "Auto, did not fire",
	0x19: "Auto, fired",
}

var whiteBalanceNames = map[int]string{
	0: "Auto",
	1: "Manual",
}

var meteringNames = map[int]string{
	0: "Unknown",
	1: "Average",
	2: "Center-weighted",
	3: "Spot",
	4: "Multi-spot",
	5: "Pattern",
	6: "Partial",
}

// Extract parses EXIF metadata from an image stream. It returns an error only
// when no EXIF block can be decoded at all; absent tags simply leave their
// fields empty.
func Extract(r io.Reader) (*model.ExifData, error) {
	x, err := exif.Decode(r)
	if err != nil {
		return nil, fmt.Errorf("failed to decode EXIF: %w", err)
	}

	data := &model.ExifData{
		Make:     tagString(x, exif.Make),
		Model:    tagString(x, exif.Model),
		Software: tagString(x, exif.Software),
	}

	if lat, lng, err := x.LatLong(); err == nil {
		gps := &model.GPSData{Latitude: lat, Longitude: lng}
		gps.Altitude = tagRat(x, exif.GPSAltitude)
		data.GPS = gps
	}

	if dt := tagTime(x, exif.DateTime); dt != nil {
		data.DateTime = dt
	}
	if dt := tagTime(x, exif.DateTimeOriginal); dt != nil {
		data.DateTimeOriginal = dt
	}

	exposure := &model.ExposureData{
		Aperture:     tagRat(x, exif.ApertureValue),
		ShutterSpeed: shutterSpeed(x),
		ISO:          tagInt(x, exif.ISOSpeedRatings),
		FNumber:      tagRat(x, exif.FNumber),
	}
	if exposure.HasExposure() {
		data.Exposure = exposure
	}

	camera := &model.CameraSettings{
		FocalLength:  tagRat(x, exif.FocalLength),
		Flash:        lookupName(flashNames, tagInt(x, exif.Flash), ""),
		WhiteBalance: lookupName(whiteBalanceNames, tagInt(x, exif.WhiteBalance), ""),
		MeteringMode: lookupName(meteringNames, tagInt(x, exif.MeteringMode), ""),
	}
	if camera.HasSettings() {
		data.Camera = camera
	}

	img := &model.ImageData{
		Width:       tagInt(x, exif.PixelXDimension),
		Height:      tagInt(x, exif.PixelYDimension),
		Orientation: tagInt(x, exif.Orientation),
		XResolution: tagRat(x, exif.XResolution),
		YResolution: tagRat(x, exif.YResolution),
	}
	if img.Width > 0 || img.Height > 0 || img.Orientation > 0 {
		data.Image = img
	}

	return data, nil
}

// shutterSpeed renders ExposureTime as a conventional fraction ("1/250") or
// whole seconds for long exposures.
func shutterSpeed(x *exif.Exif) string {
	tag, err := x.Get(exif.ExposureTime)
	if err != nil {
		return ""
	}
	num, den, err := tag.Rat2(0)
	if err != nil {
		return ""
	}
	return formatShutter(num, den)
}

// formatShutter formats an ExposureTime rational. Degenerate rationals with
// a zero or negative numerator or denominator format as empty rather than
// dividing by zero.
func formatShutter(num, den int64) string {
	if num <= 0 || den <= 0 {
		return ""
	}
	if num >= den {
		return fmt.Sprintf("%gs", float64(num)/float64(den))
	}
	return fmt.Sprintf("%d/%d", 1, int64(float64(den)/float64(num)+0.5))
}

func lookupName(names map[int]string, value int, fallback string) string {
	if name, ok := names[value]; ok {
		return name
	}
	return fallback
}

func tagString(x *exif.Exif, field exif.FieldName) string {
	tag, err := x.Get(field)
	if err != nil {
		return ""
	}
	s, err := tag.StringVal()
	if err != nil {
		return ""
	}
	return s
}

func tagInt(x *exif.Exif, field exif.FieldName) int {
	tag, err := x.Get(field)
	if err != nil {
		return 0
	}
	n, err := tag.Int(0)
	if err != nil {
		return 0
	}
	return n
}

func tagRat(x *exif.Exif, field exif.FieldName) float64 {
	tag, err := x.Get(field)
	if err != nil {
		return 0
	}
	if tag.Format() == tiff.IntVal {
		n, err := tag.Int(0)
		if err != nil {
			return 0
		}
		return float64(n)
	}
	num, den, err := tag.Rat2(0)
	if err != nil || den == 0 {
		return 0
	}
	return float64(num) / float64(den)
}

func tagTime(x *exif.Exif, field exif.FieldName) *time.Time {
	tag, err := x.Get(field)
	if err != nil {
		return nil
	}
	s, err := tag.StringVal()
	if err != nil {
		return nil
	}
	t, err := time.ParseInLocation(exifTimeLayout, s, time.Local)
	if err != nil {
		return nil
	}
	return &t
}
