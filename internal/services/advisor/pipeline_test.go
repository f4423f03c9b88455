package advisor_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"clothing-advisor/internal/models"
	"clothing-advisor/internal/repositories"
	"clothing-advisor/internal/services/advisor"
	"clothing-advisor/internal/services/conditions"
	"clothing-advisor/pkg/observe"
)

// stubConditionsRepo serves canned snapshots keyed by ZIP.
type stubConditionsRepo struct {
	snapshots map[string]models.ConditionsSnapshot
}

func (s *stubConditionsRepo) Name() string { return "stub" }

func (s *stubConditionsRepo) FetchCurrent(_ context.Context, q models.LocationQuery) (models.ConditionsSnapshot, error) {
	snap, ok := s.snapshots[q.Zip()]
	if !ok {
		return models.ConditionsSnapshot{}, models.ErrNotFound
	}
	return snap, nil
}

func newTestAdvisor(t *testing.T, repo *stubConditionsRepo, reasoning *mockReasoningClient) *advisor.Advisor {
	t.Helper()
	l := observe.NewZapLogger("test-app", "test")
	fetcher := conditions.NewService([]repositories.ConditionsRepository{repo}, time.Second, 4, l)
	rules := advisor.NewRuleStrategy()
	var client repositories.ReasoningClient
	if reasoning != nil {
		client = reasoning
	}
	delegated := advisor.NewDelegatedStrategy(rules, client, time.Second, l)
	return advisor.NewAdvisor(fetcher, rules, delegated, l)
}

func TestAdviseSimplePath(t *testing.T) {
	repo := &stubConditionsRepo{snapshots: map[string]models.ConditionsSnapshot{
		"80302": {Zip: "80302", TempF: 25, Condition: models.ConditionSnow, WindMph: 18, Precip: models.PrecipSnow},
	}}
	reasoning := &mockReasoningClient{reply: "should not be called"}
	a := newTestAdvisor(t, repo, reasoning)

	result, err := a.Advise(context.Background(), "heading out in 80302, what do I wear?", advisor.Options{})
	require.NoError(t, err)

	assert.Equal(t, advisor.PathSimple, result.Path)
	assert.Equal(t, 0, reasoning.callCount, "simple path never calls the reasoning service")
	assert.GreaterOrEqual(t, len(result.Set.Items), 4)
}

func TestAdviseComplexFallbackEqualsDraft(t *testing.T) {
	// 33F rain is inside the near-freezing band: the complex path runs, and
	// an induced escalation failure must yield exactly the rule draft.
	snapshot := models.ConditionsSnapshot{Zip: "10001", TempF: 33, Condition: models.ConditionRain, WindMph: 10, Precip: models.PrecipRain}
	repo := &stubConditionsRepo{snapshots: map[string]models.ConditionsSnapshot{"10001": snapshot}}
	reasoning := &mockReasoningClient{err: errors.New("boom")}
	a := newTestAdvisor(t, repo, reasoning)

	result, err := a.Advise(context.Background(), "10001 please", advisor.Options{})
	require.NoError(t, err)

	assert.Equal(t, advisor.PathComplex, result.Path)
	assert.Equal(t, 1, reasoning.callCount)

	draft, err := advisor.NewRuleStrategy().Produce(context.Background(), snapshot)
	require.NoError(t, err)
	assert.Equal(t, draft, result.Set)
	assert.GreaterOrEqual(t, len(result.Set.Items), 3)
}

func TestAdviseInvalidMessage(t *testing.T) {
	a := newTestAdvisor(t, &stubConditionsRepo{}, nil)

	_, err := a.Advise(context.Background(), "no zip here", advisor.Options{})
	require.Error(t, err)
	assert.Equal(t, models.KindInvalidFormat, models.KindOf(err))
}

func TestAdviseUnknownZip(t *testing.T) {
	a := newTestAdvisor(t, &stubConditionsRepo{snapshots: map[string]models.ConditionsSnapshot{}}, nil)

	_, err := a.Advise(context.Background(), "try 00000", advisor.Options{})
	require.Error(t, err)
	assert.Equal(t, models.KindNotFound, models.KindOf(err))
}

func TestAdviseManyMixedOutcomes(t *testing.T) {
	repo := &stubConditionsRepo{snapshots: map[string]models.ConditionsSnapshot{
		"80302": {Zip: "80302", TempF: 60, Condition: models.ConditionClear, WindMph: 5},
		"10001": {Zip: "10001", TempF: 88, Condition: models.ConditionClear, WindMph: 5},
	}}
	a := newTestAdvisor(t, repo, nil)

	var queries []models.LocationQuery
	for _, z := range []string{"80302", "10001", "00000"} {
		q, err := models.ParseLocationQuery(z)
		require.NoError(t, err)
		queries = append(queries, q)
	}

	results := a.AdviseMany(context.Background(), queries, advisor.Options{})
	require.Len(t, results, 3)

	for _, z := range []string{"80302", "10001"} {
		q, _ := models.ParseLocationQuery(z)
		br := results[q]
		require.NotNil(t, br.Result, "zip %s should succeed", z)
		assert.NoError(t, br.Err)
		assert.GreaterOrEqual(t, len(br.Result.Set.Items), 3)
	}

	q, _ := models.ParseLocationQuery("00000")
	br := results[q]
	assert.Nil(t, br.Result)
	assert.Equal(t, models.KindNotFound, models.KindOf(br.Err))
}
