// Package model defines the core entities shared across storage, web and
// export code: projects, their shooting locations, photos with extracted
// metadata, and client-facing proposals.
package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/mholecek/location-scout/internal/suncalc"
)

// Project groups shooting locations for one job or client.
type Project struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Location is a single shooting location inside a project.
type Location struct {
	ID          uuid.UUID `json:"id"`
	ProjectID   uuid.UUID `json:"project_id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Latitude    float64   `json:"latitude"`
	Longitude   float64   `json:"longitude"`
	Address     string    `json:"address"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Photo is an uploaded image attached to a location.
type Photo struct {
	ID          uuid.UUID  `json:"id"`
	LocationID  uuid.UUID  `json:"location_id"`
	Filename    string     `json:"filename"`
	ContentType string     `json:"content_type"`
	StoragePath string     `json:"-"`
	Size        int64      `json:"size"`
	TakenAt     *time.Time `json:"taken_at,omitempty"`
	Exif        *ExifData  `json:"exif,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
}

// Proposal is a curated subset of a project's locations published for a
// client at a public URL.
type Proposal struct {
	ID          uuid.UUID   `json:"id"`
	ProjectID   uuid.UUID   `json:"project_id"`
	Title       string      `json:"title"`
	Description string      `json:"description"`
	Watermark   bool        `json:"watermark"`
	PublishedAt *time.Time  `json:"published_at,omitempty"`
	LocationIDs []uuid.UUID `json:"location_ids"`
	CreatedAt   time.Time   `json:"created_at"`
	UpdatedAt   time.Time   `json:"updated_at"`
}

// SunTime is the persisted per-day solar event cache for a location,
// keyed by (location_id, date) and deleted with its location.
type SunTime struct {
	LocationID       uuid.UUID `json:"location_id"`
	Date             time.Time `json:"date"`
	Sunrise          time.Time `json:"sunrise"`
	Sunset           time.Time `json:"sunset"`
	SolarNoon        time.Time `json:"solar_noon"`
	DayLengthMinutes int       `json:"day_length_minutes"`
}

// ExifData holds metadata extracted from an uploaded photo. All groups are
// optional; absence of a group means the source file carried no such tags.
type ExifData struct {
	GPS              *GPSData          `json:"gps,omitempty"`
	DateTime         *time.Time        `json:"date_time,omitempty"`
	DateTimeOriginal *time.Time        `json:"date_time_original,omitempty"`
	Make             string            `json:"make,omitempty"`
	Model            string            `json:"model,omitempty"`
	Software         string            `json:"software,omitempty"`
	Exposure         *ExposureData     `json:"exposure,omitempty"`
	Camera           *CameraSettings   `json:"camera,omitempty"`
	Image            *ImageData        `json:"image,omitempty"`
	Sun              *suncalc.Snapshot `json:"sun,omitempty"`
}

// GPSData is the geographic position a photo was taken at.
type GPSData struct {
	Latitude  float64 `json:"lat"`
	Longitude float64 `json:"lng"`
	Altitude  float64 `json:"altitude,omitempty"`
}

// ExposureData groups exposure-related tags.
type ExposureData struct {
	Aperture     float64 `json:"aperture,omitempty"`
	ShutterSpeed string  `json:"shutter_speed,omitempty"`
	ISO          int     `json:"iso,omitempty"`
	FNumber      float64 `json:"f_number,omitempty"`
}

// CameraSettings groups lens and body settings.
type CameraSettings struct {
	FocalLength  float64 `json:"focal_length,omitempty"`
	Flash        string  `json:"flash,omitempty"`
	WhiteBalance string  `json:"white_balance,omitempty"`
	MeteringMode string  `json:"metering_mode,omitempty"`
}

// ImageData groups pixel-level properties including the EXIF orientation tag.
type ImageData struct {
	Width       int     `json:"width,omitempty"`
	Height      int     `json:"height,omitempty"`
	Orientation int     `json:"orientation,omitempty"`
	XResolution float64 `json:"x_resolution,omitempty"`
	YResolution float64 `json:"y_resolution,omitempty"`
}

// HasExposure reports whether any exposure field carries a value.
func (e *ExposureData) HasExposure() bool {
	return e != nil && (e.Aperture > 0 || e.ShutterSpeed != "" || e.ISO > 0 || e.FNumber > 0)
}

// HasSettings reports whether any camera-settings field carries a value.
func (c *CameraSettings) HasSettings() bool {
	return c != nil && (c.FocalLength > 0 || c.Flash != "" || c.WhiteBalance != "" || c.MeteringMode != "")
}
