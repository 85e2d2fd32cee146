package landmark

import "math"

const (
	EarthRadiusKm = 6371

	// MaxDistanceKm is the default radius within which a landmark counts as nearby.
	MaxDistanceKm = 100
)

// Distance returns the great-circle distance in kilometres between two
// latitude/longitude pairs given in degrees.
func Distance(lat1, lon1, lat2, lon2 float64) float64 {
	dLat := toRad(lat2 - lat1)
	dLon := toRad(lon2 - lon1)
	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(toRad(lat1))*math.Cos(toRad(lat2))*math.Sin(dLon/2)*math.Sin(dLon/2)
	// rounding can push a just outside [0, 1]
	a = math.Max(0, math.Min(1, a))
	return EarthRadiusKm * 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
}

func toRad(deg float64) float64 {
	return deg * math.Pi / 180
}
