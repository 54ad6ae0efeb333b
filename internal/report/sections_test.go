package report

import (
	"strings"
	"testing"
	"time"

	"github.com/mholecek/location-scout/internal/model"
	"github.com/mholecek/location-scout/internal/suncalc"
)

// fullExif returns metadata with every section present.
func fullExif() *model.ExifData {
	taken := time.Date(2024, 6, 21, 18, 30, 0, 0, time.UTC)
	return &model.ExifData{
		GPS:              &model.GPSData{Latitude: 50.0755, Longitude: 14.4378, Altitude: 230},
		DateTime:         &taken,
		DateTimeOriginal: &taken,
		Make:             "FUJIFILM",
		Model:            "X-T4",
		Exposure:         &model.ExposureData{FNumber: 2.8, ShutterSpeed: "1/250", ISO: 400},
		Camera:           &model.CameraSettings{FocalLength: 35, WhiteBalance: "Auto"},
		Image:            &model.ImageData{Width: 6240, Height: 4160, Orientation: 1},
		Sun: &suncalc.Snapshot{
			Sunrise:          taken.Add(-13 * time.Hour),
			Sunset:           taken.Add(2 * time.Hour),
			SolarNoon:        taken.Add(-5 * time.Hour),
			DayLengthMinutes: 975,
			AzimuthDeg:       285,
			AltitudeDeg:      12,
		},
	}
}

func TestVisibleSections_SingleFilter(t *testing.T) {
	withData := PhotoEntry{Title: "full", Exif: fullExif()}
	withoutGPS := PhotoEntry{Title: "no gps", Exif: &model.ExifData{Make: "FUJIFILM"}}
	noExif := PhotoEntry{Title: "bare"}

	tests := []struct {
		name    string
		filter  DataFilter
		entry   PhotoEntry
		wantIDs []string
	}{
		{"location only, gps present", DataFilter{Location: true}, withData, []string{"location"}},
		{"location only, gps absent", DataFilter{Location: true}, withoutGPS, nil},
		{"camera only, make present", DataFilter{Camera: true}, withoutGPS, []string{"camera"}},
		{"sun only", DataFilter{Sun: true}, withData, []string{"sun"}},
		{"no exif renders nothing", AllSections(), noExif, nil},
		{"all off renders nothing", DataFilter{}, withData, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			visible := visibleSections(tt.entry, tt.filter)
			if len(visible) != len(tt.wantIDs) {
				t.Fatalf("expected %d sections, got %d", len(tt.wantIDs), len(visible))
			}
			for i, def := range visible {
				if def.id != tt.wantIDs[i] {
					t.Errorf("section %d: expected %q, got %q", i, tt.wantIDs[i], def.id)
				}
			}
		})
	}
}

func TestSectionTitle_MarksGeocodedLocation(t *testing.T) {
	geocoded := PhotoEntry{Title: "spot", IsGeocoded: true, Exif: fullExif()}
	plain := PhotoEntry{Title: "spot", Exif: fullExif()}

	for _, def := range sectionDefs {
		got := sectionTitle(def, geocoded)
		if def.id == "location" {
			if got != "Location (geocoded)" {
				t.Errorf("expected geocoded marker on location header, got %q", got)
			}
		} else if got != def.title {
			t.Errorf("section %s: geocoded entry changed header to %q", def.id, got)
		}
		if got := sectionTitle(def, plain); got != def.title {
			t.Errorf("section %s: expected %q, got %q", def.id, def.title, got)
		}
	}
}

func TestVisibleSections_AllPresent(t *testing.T) {
	visible := visibleSections(PhotoEntry{Exif: fullExif()}, AllSections())
	if len(visible) != len(sectionDefs) {
		t.Errorf("expected all %d sections, got %d", len(sectionDefs), len(visible))
	}
}

func TestEstimateEntryHeight_GrowsWithSections(t *testing.T) {
	opts := DefaultRenderOptions()
	entry := PhotoEntry{Exif: fullExif()}

	bare := estimateEntryHeight(entry, DataFilter{}, opts)
	one := estimateEntryHeight(entry, DataFilter{Location: true}, opts)
	all := estimateEntryHeight(entry, AllSections(), opts)

	if !(bare < one && one < all) {
		t.Errorf("estimates should grow with enabled sections: %.1f, %.1f, %.1f", bare, one, all)
	}
	// The bare estimate is the image block plus title, caption and gap.
	want := entryTitleHeightMM + opts.ImageColMaxHeightMM + imageCaptionHeightMM + entryGapMM
	if bare != want {
		t.Errorf("bare estimate: expected %.1f, got %.1f", want, bare)
	}
}

func TestSectionRows_OmitEmptyFields(t *testing.T) {
	exif := &model.ExifData{
		Exposure: &model.ExposureData{ISO: 800},
	}
	for _, def := range sectionDefs {
		if def.id != "exposure" {
			continue
		}
		rows := def.rows(exif)
		if len(rows) != 1 {
			t.Fatalf("expected only the ISO row, got %d rows", len(rows))
		}
		if rows[0].label != "ISO" || rows[0].value != "800" {
			t.Errorf("unexpected row %q=%q", rows[0].label, rows[0].value)
		}
	}
}

func TestMapsURL(t *testing.T) {
	url := mapsURL(&model.GPSData{Latitude: 50.0755, Longitude: 14.4378})
	if want := "mlat=50.075500"; !strings.Contains(url, want) {
		t.Errorf("expected %q in %q", want, url)
	}
	if want := "mlon=14.437800"; !strings.Contains(url, want) {
		t.Errorf("expected %q in %q", want, url)
	}
}
