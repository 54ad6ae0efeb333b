// Package suncalc computes solar events and positions for shooting locations.
// Sunrise, sunset and solar noon come from the astral library; golden-hour
// windows are defined as fixed time offsets around sunrise and sunset rather
// than a solar-altitude threshold.
//
// The functions here are pure and perform no validation: coordinates outside
// the valid ranges propagate whatever the underlying formulas produce
// (typically zero times). Callers that need strict validation do it upstream.
package suncalc

import (
	"math"
	"strconv"
	"sync"
	"time"

	"github.com/sj14/astral/pkg/astral"
)

// Snapshot holds the computed solar state for one coordinate pair and instant.
type Snapshot struct {
	Sunrise          time.Time `json:"sunrise"`
	Sunset           time.Time `json:"sunset"`
	SolarNoon        time.Time `json:"solar_noon"`
	AzimuthDeg       float64   `json:"azimuth_deg"`
	AltitudeDeg      float64   `json:"altitude_deg"`
	DayLengthMinutes int       `json:"day_length_minutes"`
	IsDaytime        bool      `json:"is_daytime"`
}

// ComputeSnapshot calculates the full solar state for the calendar date
// containing at. Sunrise/sunset errors (polar day or night) leave the
// corresponding fields as zero times and DayLengthMinutes as zero.
func ComputeSnapshot(latitude, longitude float64, at time.Time) Snapshot {
	observer := astral.Observer{Latitude: latitude, Longitude: longitude}
	ref := dateRef(at)

	var snap Snapshot
	sunrise, riseErr := astral.Sunrise(observer, ref)
	sunset, setErr := astral.Sunset(observer, ref)
	if riseErr == nil {
		snap.Sunrise = sunrise.In(at.Location())
	}
	if setErr == nil {
		snap.Sunset = sunset.In(at.Location())
	}
	snap.SolarNoon = astral.Noon(observer, ref).In(at.Location())
	snap.AzimuthDeg = astral.Azimuth(observer, at)
	snap.AltitudeDeg = astral.Elevation(observer, at, true)

	if riseErr == nil && setErr == nil {
		snap.DayLengthMinutes = int(math.Round(snap.Sunset.Sub(snap.Sunrise).Minutes()))
		// Boundary inclusive on both ends.
		snap.IsDaytime = !at.Before(snap.Sunrise) && !at.After(snap.Sunset)
	}
	return snap
}

// dateRef anchors a date's event calculations to a single instant, local
// noon. The astral sunrise and sunset results shift by a few seconds with
// the time-of-day component of their argument; computing every lookup for a
// date from the same instant keeps the events identical no matter when
// during the day they are asked for.
func dateRef(at time.Time) time.Time {
	return time.Date(at.Year(), at.Month(), at.Day(), 12, 0, 0, 0, at.Location())
}

// cacheEntry holds a day snapshot computed for a specific coordinate and date.
type cacheEntry struct {
	snap Snapshot
	date time.Time
}

// Calc caches per-date solar computations so calendar views don't recompute
// the same events for every photo of a location.
type Calc struct {
	mu    sync.RWMutex
	cache map[string]cacheEntry
}

// NewCalc creates an empty calculator cache.
func NewCalc() *Calc {
	return &Calc{cache: make(map[string]cacheEntry)}
}

// cacheKey buckets coordinates to 4 decimal places (~11m), plenty for a
// per-location day cache.
func cacheKey(latitude, longitude float64, date time.Time) string {
	return date.Format(time.DateOnly) + "/" +
		strconv.FormatFloat(latitude, 'f', 4, 64) + "," +
		strconv.FormatFloat(longitude, 'f', 4, 64)
}

// Snapshot returns the solar snapshot for at, caching day-level events per
// coordinate/date pair. Azimuth and altitude are instant-specific and are
// recomputed on every call.
func (c *Calc) Snapshot(latitude, longitude float64, at time.Time) Snapshot {
	key := cacheKey(latitude, longitude, at)

	c.mu.RLock()
	entry, ok := c.cache[key]
	c.mu.RUnlock()

	observer := astral.Observer{Latitude: latitude, Longitude: longitude}
	if ok {
		snap := entry.snap
		snap.AzimuthDeg = astral.Azimuth(observer, at)
		snap.AltitudeDeg = astral.Elevation(observer, at, true)
		if !snap.Sunrise.IsZero() && !snap.Sunset.IsZero() {
			snap.IsDaytime = !at.Before(snap.Sunrise) && !at.After(snap.Sunset)
		}
		return snap
	}

	snap := ComputeSnapshot(latitude, longitude, at)
	c.mu.Lock()
	c.cache[key] = cacheEntry{snap: snap, date: at}
	c.mu.Unlock()
	return snap
}
