package services

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"tripwise-backend/internal/cache"
)

// Location is a forward-geocoded place.
type Location struct {
	Lat         float64 `json:"lat"`
	Lon         float64 `json:"lon"`
	Name        string  `json:"name"`
	Country     string  `json:"country"`
	CountryCode string  `json:"country_code"` // ISO-2
}

// GeocodeService resolves place names via the Open-Meteo geocoding API,
// with Nominatim reverse lookup as a country fallback.
type GeocodeService struct {
	searchURL  string
	reverseURL string
	httpClient *http.Client
	cache      *cache.Cache
}

func NewGeocodeService(searchURL, reverseURL string, c *cache.Cache) *GeocodeService {
	return &GeocodeService{
		searchURL:  searchURL,
		reverseURL: reverseURL,
		httpClient: &http.Client{Timeout: 10 * time.Second},
		cache:      c,
	}
}

// Lookup forward-geocodes a place name. Returns nil without error when the
// geocoder has no match.
func (s *GeocodeService) Lookup(ctx context.Context, query string) (*Location, error) {
	cacheKey := "geocode:" + query
	var cached Location
	if s.cache.Get(ctx, cacheKey, &cached) {
		return &cached, nil
	}

	params := url.Values{}
	params.Set("name", query)
	params.Set("count", "1")
	params.Set("language", "en")
	params.Set("format", "json")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.searchURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("build geocode request: %w", err)
	}

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("geocode request for %q: %w", query, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("geocode request for %q: status %d", query, resp.StatusCode)
	}

	var out struct {
		Results []struct {
			Latitude    float64 `json:"latitude"`
			Longitude   float64 `json:"longitude"`
			Name        string  `json:"name"`
			Country     string  `json:"country"`
			CountryCode string  `json:"country_code"`
		} `json:"results"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("decode geocode response: %w", err)
	}
	if len(out.Results) == 0 {
		return nil, nil
	}

	loc := &Location{
		Lat:         out.Results[0].Latitude,
		Lon:         out.Results[0].Longitude,
		Name:        out.Results[0].Name,
		Country:     out.Results[0].Country,
		CountryCode: out.Results[0].CountryCode,
	}
	s.cache.Set(ctx, cacheKey, loc)
	return loc, nil
}

// ReverseCountry resolves coordinates to a country name and ISO-2 code.
func (s *GeocodeService) ReverseCountry(ctx context.Context, lat, lon float64) (country, code string, err error) {
	params := url.Values{}
	params.Set("format", "jsonv2")
	params.Set("lat", strconv.FormatFloat(lat, 'f', -1, 64))
	params.Set("lon", strconv.FormatFloat(lon, 'f', -1, 64))
	params.Set("zoom", "5")
	params.Set("addressdetails", "1")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.reverseURL+"?"+params.Encode(), nil)
	if err != nil {
		return "", "", fmt.Errorf("build reverse geocode request: %w", err)
	}
	// Nominatim requires an identifying agent.
	req.Header.Set("User-Agent", "tripwise-backend/1.0")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return "", "", fmt.Errorf("reverse geocode request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", "", fmt.Errorf("reverse geocode request: status %d", resp.StatusCode)
	}

	var out struct {
		Address struct {
			Country     string `json:"country"`
			CountryCode string `json:"country_code"`
		} `json:"address"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", "", fmt.Errorf("decode reverse geocode response: %w", err)
	}
	return out.Address.Country, out.Address.CountryCode, nil
}
