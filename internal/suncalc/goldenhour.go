package suncalc

import (
	"errors"
	"math"
	"time"

	"github.com/sj14/astral/pkg/astral"
)

// GoldenType identifies which daily golden-hour window a time falls into.
type GoldenType string

const (
	GoldenMorning GoldenType = "morning"
	GoldenEvening GoldenType = "evening"
)

// DefaultGoldenWindow is the offset applied on both sides of sunrise and
// sunset when no window is configured.
const DefaultGoldenWindow = 30 * time.Minute

// ErrNoGoldenHour is returned when no golden-hour window exists within the
// scan horizon (polar day or polar night).
var ErrNoGoldenHour = errors.New("no golden hour window found")

// Window is a single golden-hour interval.
type Window struct {
	Start time.Time
	End   time.Time
	Type  GoldenType
}

// Classification reports whether an instant is inside a golden-hour window.
type Classification struct {
	IsGolden         bool       `json:"is_golden"`
	Type             GoldenType `json:"type,omitempty"`
	RemainingMinutes int        `json:"remaining_minutes,omitempty"`
}

// dayWindows returns the morning and evening windows for the calendar date
// of at. Days without a sunrise or sunset contribute no windows.
func dayWindows(latitude, longitude float64, at time.Time, window time.Duration) []Window {
	observer := astral.Observer{Latitude: latitude, Longitude: longitude}
	ref := dateRef(at)

	var windows []Window
	if sunrise, err := astral.Sunrise(observer, ref); err == nil {
		sunrise = sunrise.In(at.Location())
		windows = append(windows, Window{
			Start: sunrise.Add(-window),
			End:   sunrise.Add(window),
			Type:  GoldenMorning,
		})
	}
	if sunset, err := astral.Sunset(observer, ref); err == nil {
		sunset = sunset.In(at.Location())
		windows = append(windows, Window{
			Start: sunset.Add(-window),
			End:   sunset.Add(window),
			Type:  GoldenEvening,
		})
	}
	return windows
}

// ClassifyGoldenHour reports whether at falls inside the morning or evening
// golden-hour window of its calendar date. The window parameter is the offset
// on each side of sunrise/sunset; pass 0 to use DefaultGoldenWindow.
func ClassifyGoldenHour(latitude, longitude float64, at time.Time, window time.Duration) Classification {
	if window <= 0 {
		window = DefaultGoldenWindow
	}
	for _, w := range dayWindows(latitude, longitude, at, window) {
		if !at.Before(w.Start) && !at.After(w.End) {
			remaining := int(math.Ceil(w.End.Sub(at).Minutes()))
			return Classification{IsGolden: true, Type: w.Type, RemainingMinutes: remaining}
		}
	}
	return Classification{}
}

// NextGoldenHour returns the start of the next golden-hour window strictly
// after from. Golden hour recurs daily, so scanning the current day and the
// next is sufficient everywhere the sun rises and sets; high latitudes in
// polar day/night get ErrNoGoldenHour.
func NextGoldenHour(latitude, longitude float64, from time.Time, window time.Duration) (time.Time, GoldenType, error) {
	if window <= 0 {
		window = DefaultGoldenWindow
	}
	for day := 0; day < 2; day++ {
		date := from.AddDate(0, 0, day)
		for _, w := range dayWindows(latitude, longitude, date, window) {
			if w.Start.After(from) {
				return w.Start, w.Type, nil
			}
		}
	}
	return time.Time{}, "", ErrNoGoldenHour
}
