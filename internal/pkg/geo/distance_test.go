package geo

import (
	"math"
	"testing"

	"github.com/mashaweer/mashaweer/internal/pkg/models"
	"github.com/mmcloughlin/geohash"
	"github.com/stretchr/testify/assert"
)

var cairo = models.Coordinates{Latitude: 30.0444, Longitude: 31.2357}

func TestDistance_SamePointIsZero(t *testing.T) {
	points := []models.Coordinates{
		cairo,
		{Latitude: 0, Longitude: 0},
		{Latitude: -33.8688, Longitude: 151.2093},
		{Latitude: 89.9, Longitude: -179.9},
	}

	for _, p := range points {
		p := p
		d, ok := Distance(&p, &p)
		assert.True(t, ok)
		assert.Equal(t, 0.0, d)
	}
}

func TestDistance_Symmetric(t *testing.T) {
	alexandria := models.Coordinates{Latitude: 31.2001, Longitude: 29.9187}

	ab, _ := Distance(&cairo, &alexandria)
	ba, _ := Distance(&alexandria, &cairo)

	assert.InDelta(t, ab, ba, 1e-6)
	assert.InDelta(t, 180_000, ab, 2_000)
}

func TestDistance_MonotonicInSeparation(t *testing.T) {
	prev := 0.0
	for step := 1; step <= 50; step++ {
		other := models.Coordinates{Latitude: cairo.Latitude + float64(step)*0.01, Longitude: cairo.Longitude}
		d, ok := Distance(&cairo, &other)
		assert.True(t, ok)
		assert.Greater(t, d, prev)
		prev = d
	}
}

func TestDistance_MissingCoordinate(t *testing.T) {
	d, ok := Distance(&cairo, nil)
	assert.False(t, ok)
	assert.Zero(t, d)

	_, ok = Distance(nil, &cairo)
	assert.False(t, ok)

	assert.Nil(t, DistancePtr(nil, &cairo))
}

func TestDistance_Antipodal(t *testing.T) {
	d := DistanceBetween(0, 0, 0, 180)
	assert.InDelta(t, math.Pi*EarthRadiusMeters, d, 1)
}

func TestFormatDistance(t *testing.T) {
	eastLon := cairo.Longitude + (5000/(EarthRadiusMeters*math.Cos(cairo.Latitude*math.Pi/180)))*180/math.Pi
	fiveKmEast := models.Coordinates{Latitude: cairo.Latitude, Longitude: eastLon}

	testCases := []struct {
		name     string
		meters   *float64
		expected string
	}{
		{name: "same point", meters: DistancePtr(&cairo, &cairo), expected: "0 متر"},
		{name: "five km east", meters: DistancePtr(&cairo, &fiveKmEast), expected: "5.0 كم"},
		{name: "just under threshold", meters: ptr(999.4), expected: "999 متر"},
		{name: "at threshold", meters: ptr(1000), expected: "1.0 كم"},
		{name: "unknown", meters: nil, expected: UnknownDistanceText},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, FormatDistance(tc.meters))
		})
	}
}

func TestEncode(t *testing.T) {
	hash := Encode(cairo, DefaultPrecision)
	assert.Len(t, hash, DefaultPrecision)

	lat, lng := geohash.Decode(hash)
	center := models.Coordinates{Latitude: lat, Longitude: lng}
	d, _ := Distance(&cairo, &center)
	assert.Less(t, d, 1000.0)
}

func ptr(v float64) *float64 { return &v }
