package advisor

import (
	"context"

	"clothing-advisor/internal/models"
	"clothing-advisor/internal/services/conditions"
	"clothing-advisor/pkg/observe"
)

// Options carries per-request caller signals into the pipeline.
type Options struct {
	Personalize bool
}

// Result is everything one advisory request produced.
type Result struct {
	Query    models.LocationQuery
	Snapshot models.ConditionsSnapshot
	Path     Path
	Set      models.RecommendationSet
}

// BatchResult pairs a fan-out item with either its result or its terminal
// error; one bad ZIP never fails the batch.
type BatchResult struct {
	Result *Result
	Err    error
}

// Advisor runs the linear pipeline: normalize, fetch, classify, produce.
// Stateless and request-scoped; nothing here outlives a call.
type Advisor struct {
	fetcher   *conditions.Service
	rules     *RuleStrategy
	delegated Strategy
	l         *observe.Logger
}

func NewAdvisor(fetcher *conditions.Service, rules *RuleStrategy, delegated Strategy, l *observe.Logger) *Advisor {
	return &Advisor{
		fetcher:   fetcher,
		rules:     rules,
		delegated: delegated,
		l:         l,
	}
}

// Advise extracts a ZIP code from a free-form message and runs the pipeline.
func (a *Advisor) Advise(ctx context.Context, message string, opts Options) (Result, error) {
	query, err := models.NormalizeLocation(message)
	if err != nil {
		return Result{}, err
	}
	return a.AdviseZip(ctx, query, opts)
}

// AdviseZip runs fetch -> classify -> produce for an already-validated query.
func (a *Advisor) AdviseZip(ctx context.Context, query models.LocationQuery, opts Options) (Result, error) {
	outcome := a.fetcher.Fetch(ctx, query)
	if !outcome.OK() {
		return Result{Query: query}, outcome.Err
	}

	snapshot := *outcome.Snapshot
	path := Classify(snapshot, ClassifyOptions{Personalize: opts.Personalize})

	set := a.Produce(ctx, snapshot, path)

	a.l.Info("advisory produced", map[string]any{
		"zip":       query.Zip(),
		"path":      string(path),
		"temp_f":    snapshot.TempF,
		"condition": string(snapshot.Condition),
		"items":     len(set.Items),
	})

	return Result{
		Query:    query,
		Snapshot: snapshot,
		Path:     path,
		Set:      set,
	}, nil
}

// Produce dispatches to the strategy for the chosen path. Both strategies
// are total in practice: the rule table cannot fail and the delegated
// strategy absorbs its own failures, so a snapshot always yields a set.
func (a *Advisor) Produce(ctx context.Context, snapshot models.ConditionsSnapshot, path Path) models.RecommendationSet {
	var strategy Strategy = a.rules
	if path == PathComplex && a.delegated != nil {
		strategy = a.delegated
	}

	set, err := strategy.Produce(ctx, snapshot)
	if err != nil {
		// Deterministic floor: never surface a producer error.
		set, _ = a.rules.Produce(ctx, snapshot)
	}
	return set
}

// AdviseMany fans out the pipeline over several validated queries. Fetches
// run concurrently with the fetcher's bounded pool; classification and
// production happen per successful outcome.
func (a *Advisor) AdviseMany(ctx context.Context, queries []models.LocationQuery, opts Options) map[models.LocationQuery]BatchResult {
	outcomes := a.fetcher.FetchMany(ctx, queries)

	results := make(map[models.LocationQuery]BatchResult, len(outcomes))
	for query, outcome := range outcomes {
		if !outcome.OK() {
			results[query] = BatchResult{Err: outcome.Err}
			continue
		}

		snapshot := *outcome.Snapshot
		path := Classify(snapshot, ClassifyOptions{Personalize: opts.Personalize})
		set := a.Produce(ctx, snapshot, path)

		results[query] = BatchResult{Result: &Result{
			Query:    query,
			Snapshot: snapshot,
			Path:     path,
			Set:      set,
		}}
	}

	return results
}
