package gateway

import (
	"context"
	"encoding/json"
	"fmt"
	nethttp "net/http"
	"net/url"

	pkghttp "github.com/mashaweer/mashaweer/internal/pkg/http"
	"github.com/mashaweer/mashaweer/internal/pkg/models"
)

// GeocoderGW resolves place queries through the Mapbox geocoding API
type GeocoderGW struct {
	client   *pkghttp.Client
	token    string
	language string
}

type geocodeResponse struct {
	Features []struct {
		PlaceName string    `json:"place_name"`
		Center    []float64 `json:"center"`
	} `json:"features"`
}

// NewGeocoderGW creates a geocoding gateway
func NewGeocoderGW(client *pkghttp.Client, token, language string) *GeocoderGW {
	return &GeocoderGW{client: client, token: token, language: language}
}

// Geocode returns the center of the best match for query, biased toward near
func (g *GeocoderGW) Geocode(ctx context.Context, query string, near models.Coordinates) (*models.Coordinates, error) {
	params := url.Values{}
	params.Set("access_token", g.token)
	params.Set("autocomplete", "true")
	params.Set("limit", "1")
	params.Set("proximity", fmt.Sprintf("%g,%g", near.Longitude, near.Latitude))
	if g.language != "" {
		params.Set("language", g.language)
	}
	endpoint := fmt.Sprintf("/geocoding/v5/mapbox.places/%s.json?%s", url.PathEscape(query), params.Encode())

	body, err := g.client.Do(ctx, nethttp.MethodGet, endpoint, "", nil, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to geocode: %w", err)
	}

	var resp geocodeResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("failed to decode geocoding response: %w", err)
	}
	if len(resp.Features) == 0 || len(resp.Features[0].Center) < 2 {
		return nil, models.ErrPlaceNotFound
	}

	// centers come back as [lng, lat]
	center := resp.Features[0].Center
	place := &models.Coordinates{Latitude: center[1], Longitude: center[0]}
	if !place.Valid() {
		return nil, fmt.Errorf("geocoder returned %v: %w", center, models.ErrInvalidLocation)
	}
	return place, nil
}
