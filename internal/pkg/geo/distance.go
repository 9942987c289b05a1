package geo

import (
	"math"

	"github.com/mashaweer/mashaweer/internal/pkg/models"
)

// EarthRadiusMeters is the mean earth radius used by every distance in the system
const EarthRadiusMeters = 6371e3

// DistanceBetween calculates the great-circle distance in meters using the Haversine formula
func DistanceBetween(lat1, lon1, lat2, lon2 float64) float64 {
	phi1 := lat1 * math.Pi / 180
	phi2 := lat2 * math.Pi / 180
	dPhi := (lat2 - lat1) * math.Pi / 180
	dLambda := (lon2 - lon1) * math.Pi / 180

	a := math.Sin(dPhi/2)*math.Sin(dPhi/2) +
		math.Cos(phi1)*math.Cos(phi2)*math.Sin(dLambda/2)*math.Sin(dLambda/2)
	// rounding can push a a hair past 1 for antipodal points
	a = math.Min(1, math.Max(0, a))
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return EarthRadiusMeters * c
}

// Distance returns the meters between a and b, or false if either point is missing
func Distance(a, b *models.Coordinates) (float64, bool) {
	if a == nil || b == nil {
		return 0, false
	}
	return DistanceBetween(a.Latitude, a.Longitude, b.Latitude, b.Longitude), true
}

// DistancePtr is Distance shaped for JSON payloads: nil when unknown
func DistancePtr(a, b *models.Coordinates) *float64 {
	d, ok := Distance(a, b)
	if !ok {
		return nil
	}
	return &d
}
