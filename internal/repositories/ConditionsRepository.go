package repositories

import (
	"context"
	"net/http"

	"clothing-advisor/config"
	"clothing-advisor/internal/models"
	"clothing-advisor/pkg/observe"
)

// HTTPClient is the outbound transport; *http.Client satisfies it and tests
// substitute their own.
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// ConditionsRepository fetches current conditions for one ZIP code from an
// external weather provider. Implementations classify provider failures into
// the models error taxonomy: unknown ZIP -> ErrNotFound, transport/5xx ->
// ErrUpstream.
type ConditionsRepository interface {
	Name() string
	FetchCurrent(ctx context.Context, query models.LocationQuery) (models.ConditionsSnapshot, error)
}

// InitConditionsRepositories builds the configured providers in order. The
// first entry acts as the primary source.
func InitConditionsRepositories(cfg *config.Config, l *observe.Logger) []ConditionsRepository {
	var repos []ConditionsRepository
	for _, api := range cfg.Weather.APIs {
		switch api.Name {
		case "openweather":
			repos = append(repos, NewOpenWeatherRepository(api, l, nil))
		case "weatherapi":
			repos = append(repos, NewWeatherAPIRepository(api, l, nil))
			// Add more cases here to support new providers.
		}
	}
	return repos
}
