package conditions

import (
	"context"
	"time"

	"github.com/pkg/errors"

	"clothing-advisor/internal/models"
	"clothing-advisor/internal/repositories"
	"clothing-advisor/pkg/observe"
)

// Service is the data fetcher: one outbound provider call per location,
// bounded by a timeout, with failures classified instead of raised. The
// first configured repository is the primary source; there are no internal
// retries.
type Service struct {
	repos          []repositories.ConditionsRepository
	fetchTimeout   time.Duration
	maxConcurrency int
	l              *observe.Logger
}

func NewService(repos []repositories.ConditionsRepository, fetchTimeout time.Duration, maxConcurrency int, l *observe.Logger) *Service {
	if maxConcurrency <= 0 {
		maxConcurrency = 1
	}
	return &Service{
		repos:          repos,
		fetchTimeout:   fetchTimeout,
		maxConcurrency: maxConcurrency,
		l:              l,
	}
}

// Fetch retrieves current conditions for one location. The outcome wraps
// either a snapshot or a classified error; it never panics or retries.
func (s *Service) Fetch(ctx context.Context, query models.LocationQuery) models.FetchOutcome {
	if len(s.repos) == 0 {
		return models.FailureOutcome(query, errors.Wrap(models.ErrUpstream, "no weather providers configured"))
	}

	fetchCtx, cancel := context.WithTimeout(ctx, s.fetchTimeout)
	defer cancel()

	primary := s.repos[0]

	snapshot, err := primary.FetchCurrent(fetchCtx, query)
	if err != nil {
		classified := classifyFetchError(err)
		s.l.Warning("conditions fetch failed", map[string]any{
			"zip":      query.Zip(),
			"provider": primary.Name(),
			"kind":     string(models.KindOf(classified)),
			"err":      err.Error(),
		})
		return models.FailureOutcome(query, classified)
	}

	s.l.Debug("conditions fetch succeeded", map[string]any{
		"zip":       query.Zip(),
		"provider":  primary.Name(),
		"temp_f":    snapshot.TempF,
		"condition": string(snapshot.Condition),
	})
	return models.SuccessOutcome(query, snapshot)
}

// FetchMany fans out independent fetches for a set of locations with bounded
// concurrency. One failing query never blocks or invalidates another; a
// query still pending when the caller's deadline expires is recorded as an
// upstream (timeout) failure. The returned mapping always covers every
// distinct input query.
func (s *Service) FetchMany(ctx context.Context, queries []models.LocationQuery) map[models.LocationQuery]models.FetchOutcome {
	results := make(map[models.LocationQuery]models.FetchOutcome, len(queries))

	type keyed struct {
		query   models.LocationQuery
		outcome models.FetchOutcome
	}

	distinct := make([]models.LocationQuery, 0, len(queries))
	seen := make(map[models.LocationQuery]struct{}, len(queries))
	for _, q := range queries {
		if _, dup := seen[q]; dup {
			continue
		}
		seen[q] = struct{}{}
		distinct = append(distinct, q)
	}

	out := make(chan keyed, len(distinct))
	sem := make(chan struct{}, s.maxConcurrency)

	for _, q := range distinct {
		q := q
		go func() {
			select {
			case sem <- struct{}{}:
				defer func() { <-sem }()
			case <-ctx.Done():
				// Never got a worker slot before the deadline.
				out <- keyed{q, models.FailureOutcome(q, errors.Wrap(models.ErrUpstream, "fetch timed out"))}
				return
			}
			out <- keyed{q, s.Fetch(ctx, q)}
		}()
	}

	for range distinct {
		k := <-out
		results[k.query] = k.outcome
	}

	return results
}

// classifyFetchError folds context expiry into the upstream-failure class;
// already-classified errors pass through untouched.
func classifyFetchError(err error) error {
	switch {
	case errors.Is(err, models.ErrNotFound), errors.Is(err, models.ErrUpstream):
		return err
	case errors.Is(err, context.DeadlineExceeded), errors.Is(err, context.Canceled):
		return errors.Wrap(models.ErrUpstream, "fetch timed out")
	default:
		return errors.Wrap(models.ErrUpstream, err.Error())
	}
}
