package geo

import (
	"fmt"
	"math"
)

// KilometerThreshold is the distance at which display switches from meters to kilometers
const KilometerThreshold = 1000.0

// UnknownDistanceText is shown when the viewer's position is not available
const UnknownDistanceText = "الموقع غير متاح"

// FormatDistance renders meters for display: "N متر" below 1 km, "Y.Y كم" from 1 km up
func FormatDistance(meters *float64) string {
	if meters == nil {
		return UnknownDistanceText
	}
	if *meters < KilometerThreshold {
		return fmt.Sprintf("%d متر", int64(math.Round(*meters)))
	}
	return fmt.Sprintf("%.1f كم", *meters/1000)
}
