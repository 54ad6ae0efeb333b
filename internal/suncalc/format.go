package suncalc

import (
	"fmt"
	"math"
	"time"
)

// compassNames are the 8 directions in clockwise order starting at North.
var compassNames = [8]string{
	"North", "Northeast", "East", "Southeast",
	"South", "Southwest", "West", "Northwest",
}

// CompassDirection buckets an azimuth into one of 8 compass directions using
// 45°-wide windows centered on each direction, so 337.5°–22.5° is North.
func CompassDirection(azimuthDeg float64) string {
	normalized := math.Mod(azimuthDeg, 360)
	if normalized < 0 {
		normalized += 360
	}
	idx := int((normalized+22.5)/45) % 8
	return compassNames[idx]
}

// FormatTime renders an event time as HH:MM, or a dash when the event does
// not occur on that date (polar day/night).
func FormatTime(t time.Time) string {
	if t.IsZero() {
		return "—"
	}
	return t.Format("15:04")
}

// FormatPosition renders a sun position as azimuth with compass direction and
// altitude, e.g. "231.4° Southwest, 18.2° altitude".
func FormatPosition(azimuthDeg, altitudeDeg float64) string {
	return fmt.Sprintf("%.1f° %s, %.1f° altitude",
		azimuthDeg, CompassDirection(azimuthDeg), altitudeDeg)
}

// FormatDayLength renders whole minutes as "Xh Ym".
func FormatDayLength(minutes int) string {
	return fmt.Sprintf("%dh %dm", minutes/60, minutes%60)
}
