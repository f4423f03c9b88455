package repositories

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/sony/gobreaker"

	"clothing-advisor/config"
	"clothing-advisor/internal/models"
	"clothing-advisor/pkg/observe"
)

const openWeatherDefaultBaseURL = "https://api.openweathermap.org/data/2.5"

// OpenWeatherRepository fetches current conditions from OpenWeatherMap by
// US ZIP code, in imperial units.
type OpenWeatherRepository struct {
	BaseURL    string
	APIKey     string
	httpClient HTTPClient
	cb         *gobreaker.CircuitBreaker
	l          *observe.Logger
}

func NewOpenWeatherRepository(cfg config.WeatherAPIConfig, l *observe.Logger, httpClient HTTPClient) *OpenWeatherRepository {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = openWeatherDefaultBaseURL
	}
	if httpClient == nil {
		httpClient = &http.Client{Timeout: time.Duration(cfg.Timeout) * time.Second}
	}
	return &OpenWeatherRepository{
		BaseURL:    baseURL,
		APIKey:     cfg.APIKey,
		httpClient: httpClient,
		cb:         newProviderBreaker("openweather"),
		l:          l,
	}
}

func (r *OpenWeatherRepository) Name() string {
	return "openweather"
}

type openWeatherResponse struct {
	Weather []struct {
		Main string `json:"main"`
	} `json:"weather"`
	Main struct {
		Temp     float64 `json:"temp"`
		Humidity float64 `json:"humidity"`
	} `json:"main"`
	Wind struct {
		Speed float64 `json:"speed"`
	} `json:"wind"`
	Dt int64 `json:"dt"`
}

func (r *OpenWeatherRepository) FetchCurrent(ctx context.Context, query models.LocationQuery) (models.ConditionsSnapshot, error) {
	url := fmt.Sprintf("%s/weather?zip=%s,us&units=imperial&appid=%s", r.BaseURL, query.Zip(), r.APIKey)

	r.l.Debug("making openweather request", map[string]any{"zip": query.Zip()})

	body, err := doProviderRequest(ctx, r.httpClient, r.cb, url)
	if err != nil {
		return models.ConditionsSnapshot{}, err
	}

	var response openWeatherResponse
	if err := json.Unmarshal(body, &response); err != nil {
		return models.ConditionsSnapshot{}, errors.Wrap(models.ErrUpstream, "parse openweather response")
	}

	condition := models.ConditionUnknown
	if len(response.Weather) > 0 {
		condition = normalizeOpenWeatherCondition(response.Weather[0].Main)
	}

	ts := time.Now().UTC()
	if response.Dt > 0 {
		ts = time.Unix(response.Dt, 0).UTC()
	}

	return models.ConditionsSnapshot{
		Location:    query,
		Zip:         query.Zip(),
		Timestamp:   ts,
		TempF:       response.Main.Temp,
		Condition:   condition,
		HumidityPct: response.Main.Humidity,
		WindMph:     response.Wind.Speed,
		Precip:      condition.PrecipCategory(),
		Provider:    r.Name(),
	}, nil
}

func normalizeOpenWeatherCondition(main string) models.Condition {
	switch strings.ToLower(main) {
	case "clear":
		return models.ConditionClear
	case "clouds":
		return models.ConditionCloudy
	case "rain":
		return models.ConditionRain
	case "drizzle":
		return models.ConditionDrizzle
	case "snow":
		return models.ConditionSnow
	case "thunderstorm":
		return models.ConditionStorm
	case "fog", "mist":
		return models.ConditionFog
	case "haze":
		return models.ConditionHaze
	case "smoke":
		return models.ConditionSmoke
	}
	return models.ConditionUnknown
}
