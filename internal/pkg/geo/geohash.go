package geo

import (
	"github.com/mmcloughlin/geohash"
	"github.com/mashaweer/mashaweer/internal/pkg/models"
)

// DefaultPrecision is roughly a 1.2 km cell, enough to group nearby drivers
const DefaultPrecision = 6

// Encode converts coordinates to a geohash string
func Encode(c models.Coordinates, precision uint) string {
	return geohash.EncodeWithPrecision(c.Latitude, c.Longitude, precision)
}
