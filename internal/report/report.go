// Package report renders an ordered list of photo entries into a paginated
// PDF scouting report and bundles it with the original images into a zip
// archive. Layout uses fixed page geometry with estimate-then-commit
// pagination: entry heights are estimated from fixed per-section constants
// before drawing, and there is no backtracking once drawing starts.
package report

import (
	"github.com/mholecek/location-scout/internal/model"
)

// PhotoEntry is one unit of paginator input. Ordering is caller-supplied and
// preserved; entries have no identity beyond their position.
type PhotoEntry struct {
	Title      string          `json:"title"`
	ImageURL   string          `json:"image_url"`
	IsGeocoded bool            `json:"is_geocoded"`
	Exif       *model.ExifData `json:"exif,omitempty"`
}

// DataFilter selects which metadata sections are rendered per entry.
type DataFilter struct {
	Location bool `json:"location"`
	DateTime bool `json:"dateTime"`
	Camera   bool `json:"camera"`
	Exposure bool `json:"exposure"`
	Settings bool `json:"settings"`
	Sun      bool `json:"sun"`
	Image    bool `json:"image"`
}

// AllSections returns a filter with every section enabled.
func AllSections() DataFilter {
	return DataFilter{
		Location: true,
		DateTime: true,
		Camera:   true,
		Exposure: true,
		Settings: true,
		Sun:      true,
		Image:    true,
	}
}

// Report describes the outcome of one export for quality inspection,
// mirroring what the UI shows after a download is prepared.
type Report struct {
	Title          string   `json:"title"`
	PageCount      int      `json:"page_count"`
	EntryCount     int      `json:"entry_count"`
	SkippedImages  []int    `json:"skipped_images,omitempty"`
	ArchiveEntries int      `json:"archive_entries"`
	Warnings       []string `json:"warnings,omitempty"`
}
