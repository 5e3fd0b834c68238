package services

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"tripwise-backend/internal/cache"
)

// Place is a named point of interest from OpenStreetMap.
type Place struct {
	Name string  `json:"name"`
	Type string  `json:"type"`
	Lat  float64 `json:"lat"`
	Lon  float64 `json:"lon"`
}

// PlacesService queries the Overpass API (OpenStreetMap) for hotels,
// attractions and transport stops near a point. No API key required.
type PlacesService struct {
	baseURL    string
	httpClient *http.Client
	cache      *cache.Cache
}

func NewPlacesService(baseURL string, c *cache.Cache) *PlacesService {
	return &PlacesService{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: 20 * time.Second},
		cache:      c,
	}
}

// HotelsNearby lists hotels, hostels and guest houses around a point.
func (s *PlacesService) HotelsNearby(ctx context.Context, lat, lon float64, radius, limit int) ([]Place, error) {
	query := fmt.Sprintf(`[out:json];
(
  node(around:%d,%f,%f)["tourism"="hotel"];
  node(around:%d,%f,%f)["tourism"="hostel"];
  node(around:%d,%f,%f)["tourism"="guest_house"];
);
out body %d;`, radius, lat, lon, radius, lat, lon, radius, lat, lon, limit)

	return s.run(ctx, fmt.Sprintf("hotels:%.3f:%.3f:%d", lat, lon, radius), query, limit, "Unnamed Hotel", "tourism")
}

// AttractionsNearby lists museums, sights, historic and natural features
// around a point.
func (s *PlacesService) AttractionsNearby(ctx context.Context, lat, lon float64, radius, limit int) ([]Place, error) {
	query := fmt.Sprintf(`[out:json];
(
  node(around:%d,%f,%f)["tourism"="museum"];
  node(around:%d,%f,%f)["tourism"="attraction"];
  node(around:%d,%f,%f)["historic"];
  node(around:%d,%f,%f)["tourism"="theme_park"];
);
out body %d;`, radius, lat, lon, radius, lat, lon, radius, lat, lon, radius, lat, lon, limit)

	return s.run(ctx, fmt.Sprintf("attractions:%.3f:%.3f:%d", lat, lon, radius), query, limit, "Unnamed Attraction", "tourism", "historic", "natural")
}

// TransportStops lists bus, rail and metro stops around a point.
func (s *PlacesService) TransportStops(ctx context.Context, lat, lon float64, radius, limit int) ([]Place, error) {
	query := fmt.Sprintf(`[out:json];
(
  node(around:%d,%f,%f)[public_transport=platform];
  node(around:%d,%f,%f)[railway=station];
  node(around:%d,%f,%f)[highway=bus_stop];
);
out body %d;`, radius, lat, lon, radius, lat, lon, radius, lat, lon, limit)

	return s.run(ctx, fmt.Sprintf("transport:%.3f:%.3f:%d", lat, lon, radius), query, limit, "Unnamed Stop", "railway", "highway")
}

func (s *PlacesService) run(ctx context.Context, cacheKey, query string, limit int, fallbackName string, typeTags ...string) ([]Place, error) {
	var cached []Place
	if s.cache.Get(ctx, cacheKey, &cached) {
		return cached, nil
	}

	form := url.Values{}
	form.Set("data", query)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.baseURL, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, fmt.Errorf("build overpass request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("overpass request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("overpass request: status %d", resp.StatusCode)
	}

	var out struct {
		Elements []struct {
			Lat  float64           `json:"lat"`
			Lon  float64           `json:"lon"`
			Tags map[string]string `json:"tags"`
		} `json:"elements"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("decode overpass response: %w", err)
	}

	places := make([]Place, 0, limit)
	for _, el := range out.Elements {
		if len(places) >= limit {
			break
		}
		p := Place{Lat: el.Lat, Lon: el.Lon, Name: fallbackName}
		if name := el.Tags["name"]; name != "" {
			p.Name = name
		}
		for _, tag := range typeTags {
			if v := el.Tags[tag]; v != "" {
				p.Type = v
				break
			}
		}
		places = append(places, p)
	}

	s.cache.Set(ctx, cacheKey, places)
	return places, nil
}
