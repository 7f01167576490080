package geo

import (
	"math"
	"testing"
)

func TestDistanceMilesSymmetry(t *testing.T) {
	tests := []struct {
		name                   string
		latA, lonA, latB, lonB float64
	}{
		{"austin to houston", 30.2672, -97.7431, 29.7601, -95.3701},
		{"equator crossing", -1.5, 12.0, 1.5, -12.0},
		{"near poles", 89.0, 0.0, -89.0, 180.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ab := DistanceMiles(tt.latA, tt.lonA, tt.latB, tt.lonB)
			ba := DistanceMiles(tt.latB, tt.lonB, tt.latA, tt.lonA)
			if math.Abs(ab-ba) > 1e-9 {
				t.Errorf("distance not symmetric: %f vs %f", ab, ba)
			}
			if ab < 0 {
				t.Errorf("distance is negative: %f", ab)
			}
		})
	}
}

func TestDistanceMilesZero(t *testing.T) {
	if d := DistanceMiles(30.2672, -97.7431, 30.2672, -97.7431); d != 0 {
		t.Errorf("distance to self = %f, want 0", d)
	}
}

func TestDistanceMilesAustinHouston(t *testing.T) {
	// Austin and Houston are roughly 165 miles apart, so a 100 mile radius
	// excludes the pair and a 200 mile radius includes it.
	d := DistanceMiles(30.2672, -97.7431, 29.7601, -95.3701)
	if d < 140 || d > 180 {
		t.Fatalf("austin-houston distance = %f, want ~165", d)
	}
	if d <= 100 {
		t.Errorf("distance %f should exceed a 100 mile radius", d)
	}
	if d > 200 {
		t.Errorf("distance %f should fall within a 200 mile radius", d)
	}
}

func TestRoundMiles(t *testing.T) {
	tests := []struct {
		in   float64
		want float64
	}{
		{164.9637, 165.0},
		{0.04, 0.0},
		{0.05, 0.1},
		{12.34, 12.3},
	}

	for _, tt := range tests {
		if got := RoundMiles(tt.in); got != tt.want {
			t.Errorf("RoundMiles(%f) = %f, want %f", tt.in, got, tt.want)
		}
	}
}
