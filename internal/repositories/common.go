package repositories

import (
	"context"
	"io"
	"net/http"
	"time"

	"github.com/pkg/errors"
	"github.com/sony/gobreaker"

	"clothing-advisor/internal/models"
)

// newProviderBreaker builds the circuit breaker shared by provider
// repositories. The breaker trips after a streak of failures and stays open
// for a cool-down; while open, calls fail fast as upstream failures. There
// is deliberately no retry loop around it.
func newProviderBreaker(name string) *gobreaker.CircuitBreaker {
	return gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:    name,
		Timeout: 30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 5
		},
		// A burst of bad ZIP codes must not trip the breaker.
		IsSuccessful: func(err error) bool {
			return err == nil || errors.Is(err, models.ErrNotFound)
		},
	})
}

// doProviderRequest executes one outbound call through the breaker and
// returns the body on 2xx. Status classification:
//   - 404 and 400 mean the provider rejected the identifier -> ErrNotFound
//   - anything else non-2xx, transport errors, timeouts -> ErrUpstream
func doProviderRequest(ctx context.Context, client HTTPClient, cb *gobreaker.CircuitBreaker, url string) ([]byte, error) {
	result, err := cb.Execute(func() (interface{}, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if err != nil {
			return nil, errors.Wrap(err, "build request")
		}

		resp, err := client.Do(req)
		if err != nil {
			return nil, errors.Wrap(models.ErrUpstream, err.Error())
		}
		defer resp.Body.Close()

		body, err := io.ReadAll(resp.Body)
		if err != nil {
			return nil, errors.Wrap(models.ErrUpstream, "read response body")
		}

		switch {
		case resp.StatusCode == http.StatusNotFound, resp.StatusCode == http.StatusBadRequest:
			return nil, errors.Wrapf(models.ErrNotFound, "provider status %d", resp.StatusCode)
		case resp.StatusCode < 200 || resp.StatusCode >= 300:
			return nil, errors.Wrapf(models.ErrUpstream, "provider status %d", resp.StatusCode)
		}

		return body, nil
	})
	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			return nil, errors.Wrap(models.ErrUpstream, "circuit breaker open")
		}
		return nil, err
	}

	body, ok := result.([]byte)
	if !ok {
		return nil, errors.Wrap(models.ErrUpstream, "unexpected result type from circuit breaker")
	}
	return body, nil
}
