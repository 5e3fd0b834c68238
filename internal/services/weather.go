package services

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"tripwise-backend/internal/cache"
)

// WMO weather interpretation codes used by Open-Meteo.
var weatherCodes = map[int]string{
	0: "Clear sky", 1: "Mainly clear", 2: "Partly cloudy", 3: "Overcast",
	45: "Fog", 48: "Depositing rime fog",
	51: "Light drizzle", 53: "Moderate drizzle", 55: "Dense drizzle",
	56: "Freezing drizzle (light)", 57: "Freezing drizzle (dense)",
	61: "Slight rain", 63: "Moderate rain", 65: "Heavy rain",
	66: "Freezing rain (light)", 67: "Freezing rain (heavy)",
	71: "Slight snow", 73: "Moderate snow", 75: "Heavy snow",
	77: "Snow grains",
	80: "Rain showers (slight)", 81: "Rain showers (moderate)", 82: "Rain showers (violent)",
	85: "Snow showers (slight)", 86: "Snow showers (heavy)",
	95: "Thunderstorm", 96: "Thunderstorm with slight hail", 99: "Thunderstorm with heavy hail",
}

func codeText(code int) string {
	if text, ok := weatherCodes[code]; ok {
		return text
	}
	return fmt.Sprintf("Weather code %d", code)
}

// ForecastDay is one day of the daily forecast.
type ForecastDay struct {
	Date          string  `json:"date"`
	MaxTemp       float64 `json:"max_temp"`
	MinTemp       float64 `json:"min_temp"`
	Precipitation float64 `json:"precipitation"`
	WeatherCode   int     `json:"weathercode"`
	Condition     string  `json:"condition"`
}

// Forecast is the current weather plus a daily outlook.
type Forecast struct {
	Latitude    float64       `json:"latitude"`
	Longitude   float64       `json:"longitude"`
	CurrentTemp float64       `json:"current_temp"`
	Condition   string        `json:"condition"`
	Days        []ForecastDay `json:"forecast"`
}

// BestDay is the nicest forecast day for travel, with the reasoning spelled
// out for the user.
type BestDay struct {
	ForecastDay
	Score  float64 `json:"score"`
	Advice string  `json:"advice"`
}

// WeatherService fetches free weather and climate data from Open-Meteo.
type WeatherService struct {
	baseURL    string
	httpClient *http.Client
	cache      *cache.Cache
}

func NewWeatherService(baseURL string, c *cache.Cache) *WeatherService {
	return &WeatherService{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: 10 * time.Second},
		cache:      c,
	}
}

// GetForecast fetches the current weather and a daily forecast.
func (s *WeatherService) GetForecast(ctx context.Context, lat, lon float64, days int) (*Forecast, error) {
	cacheKey := fmt.Sprintf("weather:%.3f:%.3f:%d", lat, lon, days)
	var cached Forecast
	if s.cache.Get(ctx, cacheKey, &cached) {
		return &cached, nil
	}

	params := url.Values{}
	params.Set("latitude", strconv.FormatFloat(lat, 'f', -1, 64))
	params.Set("longitude", strconv.FormatFloat(lon, 'f', -1, 64))
	params.Set("daily", "temperature_2m_max,temperature_2m_min,precipitation_sum,weathercode")
	params.Set("current_weather", "true")
	params.Set("forecast_days", strconv.Itoa(days))
	params.Set("timezone", "auto")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.baseURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("build weather request: %w", err)
	}

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("weather request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("weather request: status %d", resp.StatusCode)
	}

	var out struct {
		Latitude       float64 `json:"latitude"`
		Longitude      float64 `json:"longitude"`
		CurrentWeather struct {
			Temperature float64 `json:"temperature"`
			WeatherCode int     `json:"weathercode"`
		} `json:"current_weather"`
		Daily struct {
			Time             []string  `json:"time"`
			TemperatureMax   []float64 `json:"temperature_2m_max"`
			TemperatureMin   []float64 `json:"temperature_2m_min"`
			PrecipitationSum []float64 `json:"precipitation_sum"`
			WeatherCode      []int     `json:"weathercode"`
		} `json:"daily"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("decode weather response: %w", err)
	}

	forecast := &Forecast{
		Latitude:    out.Latitude,
		Longitude:   out.Longitude,
		CurrentTemp: out.CurrentWeather.Temperature,
		Condition:   codeText(out.CurrentWeather.WeatherCode),
	}
	for i := range out.Daily.Time {
		if i >= len(out.Daily.TemperatureMax) || i >= len(out.Daily.TemperatureMin) ||
			i >= len(out.Daily.PrecipitationSum) || i >= len(out.Daily.WeatherCode) {
			break
		}
		forecast.Days = append(forecast.Days, ForecastDay{
			Date:          out.Daily.Time[i],
			MaxTemp:       out.Daily.TemperatureMax[i],
			MinTemp:       out.Daily.TemperatureMin[i],
			Precipitation: out.Daily.PrecipitationSum[i],
			WeatherCode:   out.Daily.WeatherCode[i],
			Condition:     codeText(out.Daily.WeatherCode[i]),
		})
	}

	s.cache.Set(ctx, cacheKey, forecast)
	return forecast, nil
}

// ClimateSummary condenses the next week into packing-relevant prose.
func (s *WeatherService) ClimateSummary(ctx context.Context, lat, lon float64) (string, error) {
	f, err := s.GetForecast(ctx, lat, lon, 7)
	if err != nil {
		return "", err
	}
	if len(f.Days) == 0 {
		return "", nil
	}

	maxTemp := f.Days[0].MaxTemp
	minTemp := f.Days[0].MinTemp
	rainy := false
	for _, d := range f.Days {
		maxTemp = math.Max(maxTemp, d.MaxTemp)
		minTemp = math.Min(minTemp, d.MinTemp)
		cond := strings.ToLower(d.Condition)
		if strings.Contains(cond, "rain") || strings.Contains(cond, "drizzle") || strings.Contains(cond, "shower") {
			rainy = true
		}
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "Current: %.1f°C, %s. Highs up to %.1f°C and lows down to %.1f°C. ",
		f.CurrentTemp, f.Condition, maxTemp, minTemp)
	if rainy {
		sb.WriteString("Rain likely — pack waterproofs. ")
	}
	if maxTemp > 30 {
		sb.WriteString("Hot weather — light clothing. ")
	}
	if minTemp < 10 {
		sb.WriteString("Cold temps — warm layers.")
	}
	return strings.TrimSpace(sb.String()), nil
}

// Comfort band for scoring travel days, in °C.
const (
	idealMinTemp = 18.0
	idealMaxTemp = 28.0
)

// BestTravelDay scores the forecast week for mild temperatures and low
// rainfall and picks the nicest day.
func (s *WeatherService) BestTravelDay(ctx context.Context, lat, lon float64) (*BestDay, error) {
	f, err := s.GetForecast(ctx, lat, lon, 7)
	if err != nil {
		return nil, err
	}
	if len(f.Days) == 0 {
		return nil, nil
	}

	idealMid := (idealMinTemp + idealMaxTemp) / 2
	var best *BestDay
	for _, day := range f.Days {
		avgTemp := (day.MaxTemp + day.MinTemp) / 2
		score := math.Abs(avgTemp-idealMid) + day.Precipitation*2 // rain is more disruptive
		if best == nil || score < best.Score {
			best = &BestDay{ForecastDay: day, Score: math.Round(score*100) / 100}
		}
	}

	avgTemp := (best.MaxTemp + best.MinTemp) / 2
	reasons := []string{}
	if avgTemp >= idealMinTemp && avgTemp <= idealMaxTemp {
		reasons = append(reasons, fmt.Sprintf("comfortable average temperature around %.1f°C", avgTemp))
	} else {
		reasons = append(reasons, fmt.Sprintf("temperature of %.1f°C (slightly outside comfort range)", avgTemp))
	}
	switch {
	case best.Precipitation == 0:
		reasons = append(reasons, "no expected rain")
	case best.Precipitation < 2:
		reasons = append(reasons, "very little rain")
	default:
		reasons = append(reasons, fmt.Sprintf("%.1fmm rain (light chance)", best.Precipitation))
	}
	reasons = append(reasons, "overall condition: "+strings.ToLower(best.Condition))

	best.Advice = fmt.Sprintf(
		"The best travel day is %s, with %.0f–%.0f°C and %.1fmm rain. This day was chosen because of %s.",
		best.Date, best.MinTemp, best.MaxTemp, best.Precipitation, strings.Join(reasons, ", "))

	return best, nil
}
