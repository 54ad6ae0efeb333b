package privacy

import (
	"math"
	"testing"
)

func TestObfuscate_Deterministic(t *testing.T) {
	lat1, lng1 := Obfuscate(50.0755, 14.4378, 250)
	lat2, lng2 := Obfuscate(50.0755, 14.4378, 250)
	if lat1 != lat2 || lng1 != lng2 {
		t.Errorf("same input must give same output: (%f,%f) vs (%f,%f)", lat1, lng1, lat2, lng2)
	}
}

func TestObfuscate_WithinRadius(t *testing.T) {
	coords := [][2]float64{
		{50.0755, 14.4378},
		{-33.8688, 151.2093},
		{64.1466, -21.9426},
		{0.0, 0.0},
	}
	const radius = 250.0
	for _, c := range coords {
		lat, lng := Obfuscate(c[0], c[1], radius)
		d := haversineM(c[0], c[1], lat, lng)
		if d > radius*1.01 {
			t.Errorf("(%f,%f): offset %0.f m exceeds radius %0.f m", c[0], c[1], d, radius)
		}
		if lat == c[0] && lng == c[1] {
			t.Errorf("(%f,%f): coordinates unchanged", c[0], c[1])
		}
	}
}

func TestObfuscate_ZeroRadius(t *testing.T) {
	lat, lng := Obfuscate(50.0, 14.0, 0)
	if lat != 50.0 || lng != 14.0 {
		t.Errorf("zero radius must be a no-op, got (%f,%f)", lat, lng)
	}
}

func TestRound(t *testing.T) {
	lat, lng := Round(50.07553211, 14.43784499, 3)
	if lat != 50.076 || lng != 14.438 {
		t.Errorf("expected (50.076, 14.438), got (%f, %f)", lat, lng)
	}
}

func haversineM(lat1, lng1, lat2, lng2 float64) float64 {
	const r = 6371000.0
	toRad := func(d float64) float64 { return d * math.Pi / 180 }
	dLat := toRad(lat2 - lat1)
	dLng := toRad(lng2 - lng1)
	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(toRad(lat1))*math.Cos(toRad(lat2))*math.Sin(dLng/2)*math.Sin(dLng/2)
	return 2 * r * math.Asin(math.Sqrt(a))
}
