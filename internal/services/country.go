package services

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"tripwise-backend/internal/cache"
)

// CountryInfo is the practical subset of RestCountries data the assistant
// weaves into answers.
type CountryInfo struct {
	Name       string   `json:"name"`
	Capital    string   `json:"capital"`
	Region     string   `json:"region"`
	Subregion  string   `json:"subregion"`
	Population int64    `json:"population"`
	Languages  []string `json:"languages"`
	Currency   string   `json:"currency"`
	Timezones  []string `json:"timezones"`
}

// CountryService looks up country facts via RestCountries, resolving city
// names to countries through the geocoder first.
type CountryService struct {
	baseURL    string
	httpClient *http.Client
	cache      *cache.Cache
	geocoder   *GeocodeService
}

func NewCountryService(baseURL string, geocoder *GeocodeService, c *cache.Cache) *CountryService {
	return &CountryService{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: 10 * time.Second},
		cache:      c,
		geocoder:   geocoder,
	}
}

const countryFields = "name,capital,region,subregion,population,languages,currencies,timezones"

// GetCountryInfo resolves a place name (city or country) to country facts.
// Returns nil without error when nothing matches.
func (s *CountryService) GetCountryInfo(ctx context.Context, placeName string) (*CountryInfo, error) {
	cacheKey := "country:" + placeName
	var cached CountryInfo
	if s.cache.Get(ctx, cacheKey, &cached) {
		return &cached, nil
	}

	// Prefer the geocoder's country so "Paris" resolves to France rather
	// than a fuzzy name match.
	lookupName := placeName
	if loc, err := s.geocoder.Lookup(ctx, placeName); err == nil && loc != nil {
		if loc.Country != "" {
			lookupName = loc.Country
		} else if country, _, err := s.geocoder.ReverseCountry(ctx, loc.Lat, loc.Lon); err == nil && country != "" {
			lookupName = country
		}
	}

	info, err := s.queryByPath(ctx, "/name/"+url.PathEscape(lookupName))
	if err != nil {
		return nil, err
	}
	if info == nil {
		// Capital fallback for cases like "Paris" when geocoding failed.
		info, err = s.queryByPath(ctx, "/capital/"+url.PathEscape(placeName))
		if err != nil {
			return nil, err
		}
	}
	if info == nil {
		return nil, nil
	}

	s.cache.Set(ctx, cacheKey, info)
	return info, nil
}

func (s *CountryService) queryByPath(ctx context.Context, path string) (*CountryInfo, error) {
	params := url.Values{}
	params.Set("fields", countryFields)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.baseURL+path+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("build country request: %w", err)
	}

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("country request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, nil
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("country request: status %d", resp.StatusCode)
	}

	var payload []struct {
		Name struct {
			Common string `json:"common"`
		} `json:"name"`
		Capital    []string          `json:"capital"`
		Region     string            `json:"region"`
		Subregion  string            `json:"subregion"`
		Population int64             `json:"population"`
		Languages  map[string]string `json:"languages"`
		Currencies map[string]struct {
			Name string `json:"name"`
		} `json:"currencies"`
		Timezones []string `json:"timezones"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("decode country response: %w", err)
	}
	if len(payload) == 0 {
		return nil, nil
	}

	data := payload[0]
	info := &CountryInfo{
		Name:       data.Name.Common,
		Capital:    "Unknown",
		Region:     data.Region,
		Subregion:  data.Subregion,
		Population: data.Population,
		Timezones:  data.Timezones,
		Currency:   "Unknown",
	}
	if len(data.Capital) > 0 {
		info.Capital = data.Capital[0]
	}
	for code := range data.Currencies {
		info.Currency = code
		break
	}
	for _, lang := range data.Languages {
		info.Languages = append(info.Languages, lang)
	}
	return info, nil
}
