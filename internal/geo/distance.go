package geo

import "math"

// EarthRadiusMiles is the mean Earth radius in miles.
const EarthRadiusMiles = 3958.8

// DistanceMiles returns the great-circle distance between two points using
// the haversine formula. Inputs are degrees; callers validate ranges at the
// model boundary.
func DistanceMiles(latA, lonA, latB, lonB float64) float64 {
	dLat := (latB - latA) * math.Pi / 180
	dLon := (lonB - lonA) * math.Pi / 180

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(latA*math.Pi/180)*math.Cos(latB*math.Pi/180)*
			math.Sin(dLon/2)*math.Sin(dLon/2)

	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return EarthRadiusMiles * c
}

// RoundMiles rounds a distance to one decimal place for display. Radius
// filtering always compares the unrounded value so results don't flap at the
// boundary.
func RoundMiles(d float64) float64 {
	return math.Round(d*10) / 10
}
