// Package privacy obfuscates location coordinates for public proposal pages
// so a published proposal never exposes the exact shooting spot.
package privacy

import (
	"encoding/binary"
	"hash/fnv"
	"math"
)

// earthRadiusM is the mean Earth radius used for metric offsets.
const earthRadiusM = 6371000.0

// Obfuscate shifts a coordinate by a deterministic pseudo-random offset of up
// to radiusM meters. The offset is seeded from the exact coordinates, so the
// same location always maps to the same public point and repeated requests
// cannot be averaged back to the original.
func Obfuscate(latitude, longitude, radiusM float64) (float64, float64) {
	if radiusM <= 0 {
		return latitude, longitude
	}

	h := fnv.New64a()
	var buf [16]byte
	binary.BigEndian.PutUint64(buf[0:8], math.Float64bits(latitude))
	binary.BigEndian.PutUint64(buf[8:16], math.Float64bits(longitude))
	h.Write(buf[:])
	seed := h.Sum64()

	// Two independent uniform values from the hash halves.
	angle := float64(seed&0xFFFFFFFF) / float64(1<<32) * 2 * math.Pi
	// Square root keeps points uniform over the disc area.
	distance := math.Sqrt(float64(seed>>32)/float64(1<<32)) * radiusM

	dLat := distance * math.Cos(angle) / earthRadiusM * (180 / math.Pi)
	dLng := distance * math.Sin(angle) / earthRadiusM * (180 / math.Pi) /
		math.Cos(latitude*math.Pi/180)

	return latitude + dLat, longitude + dLng
}

// Round truncates coordinates to the given number of decimal places, the
// coarse alternative when a fixed grid is preferred over jitter.
func Round(latitude, longitude float64, decimals int) (float64, float64) {
	scale := math.Pow(10, float64(decimals))
	return math.Round(latitude*scale) / scale, math.Round(longitude*scale) / scale
}
