package report

import (
	"fmt"
	"time"

	"github.com/mholecek/location-scout/internal/model"
	"github.com/mholecek/location-scout/internal/suncalc"
)

// labelValue is one rendered row in a metadata section.
type labelValue struct {
	label string
	value string
}

// sectionDef describes one metadata section: when it is enabled, when the
// entry carries the data for it, its fixed height used for pagination
// estimates, and the rows it renders.
type sectionDef struct {
	id         string
	title      string
	enabled    func(DataFilter) bool
	present    func(*model.ExifData) bool
	estimateMM float64
	rows       func(*model.ExifData) []labelValue
}

// sectionDefs is the fixed render order of metadata sections.
var sectionDefs = []sectionDef{
	{
		id:      "location",
		title:   "Location",
		enabled: func(f DataFilter) bool { return f.Location },
		present: func(e *model.ExifData) bool { return e.GPS != nil },
		// header + 3 rows + maps link row
		estimateMM: sectionHeaderHeightMM + 4*rowHeightMM,
		rows: func(e *model.ExifData) []labelValue {
			rows := []labelValue{
				{"Latitude", fmt.Sprintf("%.6f", e.GPS.Latitude)},
				{"Longitude", fmt.Sprintf("%.6f", e.GPS.Longitude)},
			}
			if e.GPS.Altitude != 0 {
				rows = append(rows, labelValue{"Altitude", fmt.Sprintf("%.0f m", e.GPS.Altitude)})
			}
			return rows
		},
	},
	{
		id:         "datetime",
		title:      "Date & Time",
		enabled:    func(f DataFilter) bool { return f.DateTime },
		present:    func(e *model.ExifData) bool { return e.DateTime != nil || e.DateTimeOriginal != nil },
		estimateMM: sectionHeaderHeightMM + 2*rowHeightMM,
		rows: func(e *model.ExifData) []labelValue {
			var rows []labelValue
			if e.DateTimeOriginal != nil {
				rows = append(rows, labelValue{"Taken", formatTimestamp(*e.DateTimeOriginal)})
			}
			if e.DateTime != nil {
				rows = append(rows, labelValue{"Modified", formatTimestamp(*e.DateTime)})
			}
			return rows
		},
	},
	{
		id:         "camera",
		title:      "Camera",
		enabled:    func(f DataFilter) bool { return f.Camera },
		present:    func(e *model.ExifData) bool { return e.Make != "" || e.Model != "" },
		estimateMM: sectionHeaderHeightMM + 3*rowHeightMM,
		rows: func(e *model.ExifData) []labelValue {
			var rows []labelValue
			if e.Make != "" {
				rows = append(rows, labelValue{"Make", e.Make})
			}
			if e.Model != "" {
				rows = append(rows, labelValue{"Model", e.Model})
			}
			if e.Software != "" {
				rows = append(rows, labelValue{"Software", e.Software})
			}
			return rows
		},
	},
	{
		id:         "exposure",
		title:      "Exposure",
		enabled:    func(f DataFilter) bool { return f.Exposure },
		present:    func(e *model.ExifData) bool { return e.Exposure.HasExposure() },
		estimateMM: sectionHeaderHeightMM + 4*rowHeightMM,
		rows: func(e *model.ExifData) []labelValue {
			var rows []labelValue
			x := e.Exposure
			if x.FNumber > 0 {
				rows = append(rows, labelValue{"F-number", fmt.Sprintf("f/%.1f", x.FNumber)})
			}
			if x.ShutterSpeed != "" {
				rows = append(rows, labelValue{"Shutter", x.ShutterSpeed})
			}
			if x.ISO > 0 {
				rows = append(rows, labelValue{"ISO", fmt.Sprintf("%d", x.ISO)})
			}
			if x.Aperture > 0 {
				rows = append(rows, labelValue{"Aperture", fmt.Sprintf("%.1f", x.Aperture)})
			}
			return rows
		},
	},
	{
		id:         "settings",
		title:      "Settings",
		enabled:    func(f DataFilter) bool { return f.Settings },
		present:    func(e *model.ExifData) bool { return e.Camera.HasSettings() },
		estimateMM: sectionHeaderHeightMM + 4*rowHeightMM,
		rows: func(e *model.ExifData) []labelValue {
			var rows []labelValue
			c := e.Camera
			if c.FocalLength > 0 {
				rows = append(rows, labelValue{"Focal length", fmt.Sprintf("%.0f mm", c.FocalLength)})
			}
			if c.Flash != "" {
				rows = append(rows, labelValue{"Flash", c.Flash})
			}
			if c.WhiteBalance != "" {
				rows = append(rows, labelValue{"White balance", c.WhiteBalance})
			}
			if c.MeteringMode != "" {
				rows = append(rows, labelValue{"Metering", c.MeteringMode})
			}
			return rows
		},
	},
	{
		id:         "sun",
		title:      "Sun",
		enabled:    func(f DataFilter) bool { return f.Sun },
		present:    func(e *model.ExifData) bool { return e.Sun != nil },
		estimateMM: sectionHeaderHeightMM + 5*rowHeightMM,
		rows: func(e *model.ExifData) []labelValue {
			s := e.Sun
			rows := []labelValue{
				{"Sunrise", suncalc.FormatTime(s.Sunrise)},
				{"Sunset", suncalc.FormatTime(s.Sunset)},
				{"Solar noon", suncalc.FormatTime(s.SolarNoon)},
				{"Day length", suncalc.FormatDayLength(s.DayLengthMinutes)},
				{"Position", suncalc.FormatPosition(s.AzimuthDeg, s.AltitudeDeg)},
			}
			return rows
		},
	},
	{
		id:         "image",
		title:      "Image",
		enabled:    func(f DataFilter) bool { return f.Image },
		present:    func(e *model.ExifData) bool { return e.Image != nil && (e.Image.Width > 0 || e.Image.Height > 0) },
		estimateMM: sectionHeaderHeightMM + 3*rowHeightMM,
		rows: func(e *model.ExifData) []labelValue {
			i := e.Image
			rows := []labelValue{
				{"Dimensions", fmt.Sprintf("%d × %d", i.Width, i.Height)},
			}
			if i.Orientation > 0 {
				rows = append(rows, labelValue{"Orientation", fmt.Sprintf("%d", i.Orientation)})
			}
			if i.XResolution > 0 {
				rows = append(rows, labelValue{"Resolution", fmt.Sprintf("%.0f × %.0f dpi", i.XResolution, i.YResolution)})
			}
			return rows
		},
	},
}

// sectionTitle returns the header text drawn for a section. Coordinates
// that came from a geocoded location record rather than the photo's own
// EXIF are marked on the location header.
func sectionTitle(def sectionDef, entry PhotoEntry) string {
	if def.id == "location" && entry.IsGeocoded {
		return def.title + " (geocoded)"
	}
	return def.title
}

// visibleSections returns the sections that will be drawn for an entry:
// enabled by the filter AND present in the entry's metadata. An entry
// without EXIF data renders no sections regardless of the filter.
func visibleSections(entry PhotoEntry, filter DataFilter) []sectionDef {
	if entry.Exif == nil {
		return nil
	}
	var visible []sectionDef
	for _, def := range sectionDefs {
		if def.enabled(filter) && def.present(entry.Exif) {
			visible = append(visible, def)
		}
	}
	return visible
}

// estimateEntryHeight sums the fixed per-section constants for every visible
// section plus the fixed image block and caption heights. This estimate is
// committed to: drawing never re-paginates if actual content differs.
func estimateEntryHeight(entry PhotoEntry, filter DataFilter, opts RenderOptions) float64 {
	h := entryTitleHeightMM + opts.ImageColMaxHeightMM + imageCaptionHeightMM
	for _, def := range visibleSections(entry, filter) {
		h += def.estimateMM
	}
	return h + entryGapMM
}

func formatTimestamp(t time.Time) string {
	return t.Format("2 Jan 2006 15:04")
}

// mapsURL builds the external map link for a GPS position using the raw,
// unobfuscated coordinates.
func mapsURL(gps *model.GPSData) string {
	return fmt.Sprintf("https://www.openstreetmap.org/?mlat=%.6f&mlon=%.6f#map=16/%.6f/%.6f",
		gps.Latitude, gps.Longitude, gps.Latitude, gps.Longitude)
}
