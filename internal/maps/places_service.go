package maps

import (
	"context"
	"fmt"
	"strings"

	"googlemaps.github.io/maps"

	"tripstoryer/internal/trip"
)

// maxPlacesPerActivity bounds how many venues are attached to one activity.
const maxPlacesPerActivity = 3

// PlacesService handles interactions with Google Places API.
// It backs the enrichment fallback for activities the story model left
// without concrete venues.
type PlacesService struct {
	client *maps.Client
	cache  *Cache
}

// NewPlacesService creates a new PlacesService with the given API Key.
// cache may be nil; lookups then always hit the API.
func NewPlacesService(apiKey string, cache *Cache) (*PlacesService, error) {
	client, err := maps.NewClient(maps.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create maps client: %w", err)
	}
	return &PlacesService{client: client, cache: cache}, nil
}

// newPlacesServiceWithClient is used by tests to point at a stub server.
func newPlacesServiceWithClient(client *maps.Client, cache *Cache) *PlacesService {
	return &PlacesService{client: client, cache: cache}
}

// Lookup searches venues matching an activity type near the destination.
// timeWindow biases the query text only; it is not a strict filter.
// Cache errors are ignored: a broken cache must never break a lookup.
func (s *PlacesService) Lookup(ctx context.Context, activityType, destination, timeWindow string) ([]trip.Place, error) {
	if s.cache != nil {
		if places, ok := s.cache.Get(ctx, activityType, destination, timeWindow); ok {
			return places, nil
		}
	}

	query := fmt.Sprintf("%s in %s", activityType, destination)
	if timeWindow != "" {
		query = fmt.Sprintf("%s (%s)", query, timeWindow)
	}

	resp, err := s.client.TextSearch(ctx, &maps.TextSearchRequest{
		Query:    query,
		Language: "en",
	})
	if err != nil {
		return nil, fmt.Errorf("places api error: %w", err)
	}

	var results []trip.Place
	for _, result := range resp.Results {
		if result.Rating > 0 && result.Rating < 4.0 { // Filter for quality, keep unrated
			continue
		}

		place := trip.Place{
			Name:          result.Name,
			Address:       result.FormattedAddress,
			PriceEstimate: priceTier(result.PriceLevel),
			Geo: &trip.GeoPos{
				Lat: result.Geometry.Location.Lat,
				Lng: result.Geometry.Location.Lng,
			},
		}
		if result.PlaceID != "" {
			place.URL = "https://www.google.com/maps/place/?q=place_id:" + result.PlaceID
		}
		results = append(results, place)

		if len(results) >= maxPlacesPerActivity {
			break
		}
	}

	if s.cache != nil {
		s.cache.Put(ctx, activityType, destination, timeWindow, results)
	}

	return results, nil
}

// priceTier maps the Places API price level (0..4) to a symbolic tier string.
func priceTier(level int) string {
	if level <= 0 || level > 4 {
		return ""
	}
	return strings.Repeat("$", level)
}
