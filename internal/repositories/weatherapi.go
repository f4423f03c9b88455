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

const weatherAPIDefaultBaseURL = "https://api.weatherapi.com/v1"

// WeatherAPIRepository fetches current conditions from weatherapi.com by
// US ZIP code.
type WeatherAPIRepository struct {
	BaseURL    string
	APIKey     string
	httpClient HTTPClient
	cb         *gobreaker.CircuitBreaker
	l          *observe.Logger
}

func NewWeatherAPIRepository(cfg config.WeatherAPIConfig, l *observe.Logger, httpClient HTTPClient) *WeatherAPIRepository {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = weatherAPIDefaultBaseURL
	}
	if httpClient == nil {
		httpClient = &http.Client{Timeout: time.Duration(cfg.Timeout) * time.Second}
	}
	return &WeatherAPIRepository{
		BaseURL:    baseURL,
		APIKey:     cfg.APIKey,
		httpClient: httpClient,
		cb:         newProviderBreaker("weatherapi"),
		l:          l,
	}
}

func (r *WeatherAPIRepository) Name() string {
	return "weatherapi"
}

type weatherAPIResponse struct {
	Current struct {
		TempF     float64 `json:"temp_f"`
		Humidity  float64 `json:"humidity"`
		WindMph   float64 `json:"wind_mph"`
		Condition struct {
			Text string `json:"text"`
		} `json:"condition"`
		LastUpdatedEpoch int64 `json:"last_updated_epoch"`
	} `json:"current"`
}

func (r *WeatherAPIRepository) FetchCurrent(ctx context.Context, query models.LocationQuery) (models.ConditionsSnapshot, error) {
	url := fmt.Sprintf("%s/current.json?key=%s&q=%s", r.BaseURL, r.APIKey, query.Zip())

	r.l.Debug("making weatherapi request", map[string]any{"zip": query.Zip()})

	body, err := doProviderRequest(ctx, r.httpClient, r.cb, url)
	if err != nil {
		return models.ConditionsSnapshot{}, err
	}

	var response weatherAPIResponse
	if err := json.Unmarshal(body, &response); err != nil {
		return models.ConditionsSnapshot{}, errors.Wrap(models.ErrUpstream, "parse weatherapi response")
	}

	condition := normalizeWeatherAPICondition(response.Current.Condition.Text)

	ts := time.Now().UTC()
	if response.Current.LastUpdatedEpoch > 0 {
		ts = time.Unix(response.Current.LastUpdatedEpoch, 0).UTC()
	}

	return models.ConditionsSnapshot{
		Location:    query,
		Zip:         query.Zip(),
		Timestamp:   ts,
		TempF:       response.Current.TempF,
		Condition:   condition,
		HumidityPct: response.Current.Humidity,
		WindMph:     response.Current.WindMph,
		Precip:      condition.PrecipCategory(),
		Provider:    r.Name(),
	}, nil
}

func normalizeWeatherAPICondition(text string) models.Condition {
	t := strings.ToLower(text)
	switch {
	case strings.Contains(t, "thunder"):
		return models.ConditionStorm
	case strings.Contains(t, "sleet"):
		return models.ConditionSleet
	case strings.Contains(t, "snow"), strings.Contains(t, "blizzard"):
		return models.ConditionSnow
	case strings.Contains(t, "drizzle"):
		return models.ConditionDrizzle
	case strings.Contains(t, "rain"), strings.Contains(t, "shower"):
		return models.ConditionRain
	case strings.Contains(t, "fog"), strings.Contains(t, "mist"):
		return models.ConditionFog
	case strings.Contains(t, "haze"):
		return models.ConditionHaze
	case strings.Contains(t, "smoke"):
		return models.ConditionSmoke
	case strings.Contains(t, "cloud"), strings.Contains(t, "overcast"):
		return models.ConditionCloudy
	case strings.Contains(t, "sunny"), strings.Contains(t, "clear"):
		return models.ConditionClear
	}
	return models.ConditionUnknown
}
