package advisor_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"clothing-advisor/internal/models"
	"clothing-advisor/internal/services/advisor"
	"clothing-advisor/pkg/observe"
)

// mockReasoningClient scripts the escalation behavior for fallback tests.
type mockReasoningClient struct {
	reply      string
	err        error
	hang       bool
	callCount  int
	lastSystem string
	lastUser   string
}

func (m *mockReasoningClient) Complete(ctx context.Context, system, user string) (string, error) {
	m.callCount++
	m.lastSystem = system
	m.lastUser = user

	if m.hang {
		<-ctx.Done()
		return "", ctx.Err()
	}
	if m.err != nil {
		return "", m.err
	}
	return m.reply, nil
}

func TestDelegatedStrategyEnhancesSummary(t *testing.T) {
	l := observe.NewZapLogger("test-app", "test")
	rules := advisor.NewRuleStrategy()
	client := &mockReasoningClient{reply: "Layer up: near-freezing rain can turn icy fast."}
	delegated := advisor.NewDelegatedStrategy(rules, client, time.Second, l)

	s := snap(33, models.ConditionRain, 10)
	draft, err := rules.Produce(context.Background(), s)
	require.NoError(t, err)

	set, err := delegated.Produce(context.Background(), s)
	require.NoError(t, err)

	assert.Equal(t, 1, client.callCount)
	assert.Equal(t, client.reply, set.Summary)
	// The items stay the deterministic draft's, in the same order.
	assert.Equal(t, draft.Items, set.Items)
	assert.Contains(t, client.lastUser, "33")
	assert.Contains(t, client.lastUser, "rain")
}

func TestDelegatedStrategyFallsBackOnError(t *testing.T) {
	l := observe.NewZapLogger("test-app", "test")
	rules := advisor.NewRuleStrategy()
	client := &mockReasoningClient{err: errors.New("rate limited")}
	delegated := advisor.NewDelegatedStrategy(rules, client, time.Second, l)

	s := snap(33, models.ConditionRain, 10)
	draft, err := rules.Produce(context.Background(), s)
	require.NoError(t, err)

	set, err := delegated.Produce(context.Background(), s)
	require.NoError(t, err, "escalation failure must never surface")
	assert.Equal(t, draft, set, "fallback must equal the deterministic draft exactly")
	assert.Equal(t, 1, client.callCount, "exactly one attempt, no retry")
}

func TestDelegatedStrategyFallsBackOnTimeout(t *testing.T) {
	l := observe.NewZapLogger("test-app", "test")
	rules := advisor.NewRuleStrategy()
	client := &mockReasoningClient{hang: true}
	delegated := advisor.NewDelegatedStrategy(rules, client, 20*time.Millisecond, l)

	s := snap(33, models.ConditionRain, 10)
	draft, err := rules.Produce(context.Background(), s)
	require.NoError(t, err)

	start := time.Now()
	set, err := delegated.Produce(context.Background(), s)
	require.NoError(t, err)
	assert.Less(t, time.Since(start), time.Second)
	assert.Equal(t, draft, set)
}

func TestDelegatedStrategyFallsBackOnEmptyOutput(t *testing.T) {
	l := observe.NewZapLogger("test-app", "test")
	rules := advisor.NewRuleStrategy()
	client := &mockReasoningClient{reply: "   \n "}
	delegated := advisor.NewDelegatedStrategy(rules, client, time.Second, l)

	s := snap(88, models.ConditionClear, 5)
	draft, err := rules.Produce(context.Background(), s)
	require.NoError(t, err)

	set, err := delegated.Produce(context.Background(), s)
	require.NoError(t, err)
	assert.Equal(t, draft, set)
}

func TestDelegatedStrategyWithoutClient(t *testing.T) {
	// No reasoning client configured: the delegated path degrades to the
	// rule table without error.
	l := observe.NewZapLogger("test-app", "test")
	rules := advisor.NewRuleStrategy()
	delegated := advisor.NewDelegatedStrategy(rules, nil, time.Second, l)

	s := snap(33, models.ConditionRain, 10)
	draft, err := rules.Produce(context.Background(), s)
	require.NoError(t, err)

	set, err := delegated.Produce(context.Background(), s)
	require.NoError(t, err)
	assert.Equal(t, draft, set)
}
