package advisor

import (
	"context"
	"fmt"
	"strings"
	"time"

	"clothing-advisor/internal/models"
	"clothing-advisor/internal/repositories"
	"clothing-advisor/pkg/observe"
)

// delegatedSystemPrompt pins the reasoning service to the same bucket
// definitions and category guidance the rule table uses, so an escalated
// answer can refine the draft but never contradict it.
const delegatedSystemPrompt = `You are a clothing advisor. Refine the draft recommendation for the given weather.
Temperature buckets (Fahrenheit): freezing below 32, cold 32-49, mild 50-69, warm 70-84, hot 85 and up.
Keep every draft item unless it is clearly wrong for the conditions, explain nuance concisely, and answer with a single short paragraph of advice. Do not use markdown.`

// DelegatedStrategy escalates a complex snapshot to the reasoning service.
// It always computes the deterministic draft first; the service gets exactly
// one bounded attempt to enhance it, and any failure - error, timeout,
// unusable output - silently yields the draft. Escalation is an enhancement,
// never a dependency, so Produce cannot fail.
type DelegatedStrategy struct {
	rules   *RuleStrategy
	client  repositories.ReasoningClient
	timeout time.Duration
	l       *observe.Logger
}

func NewDelegatedStrategy(rules *RuleStrategy, client repositories.ReasoningClient, timeout time.Duration, l *observe.Logger) *DelegatedStrategy {
	return &DelegatedStrategy{
		rules:   rules,
		client:  client,
		timeout: timeout,
		l:       l,
	}
}

func (s *DelegatedStrategy) Produce(ctx context.Context, snapshot models.ConditionsSnapshot) (models.RecommendationSet, error) {
	draft, err := s.rules.Produce(ctx, snapshot)
	if err != nil {
		// Unreachable today; kept so the interface stays honest.
		return draft, err
	}

	if s.client == nil {
		return draft, nil
	}

	callCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	enhanced, err := s.client.Complete(callCtx, delegatedSystemPrompt, buildDelegatedPrompt(snapshot, draft))
	if err != nil {
		s.l.Warning("escalation failed, falling back to deterministic result", map[string]any{
			"zip": snapshot.Zip,
			"err": err.Error(),
		})
		return draft, nil
	}

	enhanced = strings.TrimSpace(enhanced)
	if enhanced == "" {
		s.l.Warning("escalation returned empty output, falling back", map[string]any{"zip": snapshot.Zip})
		return draft, nil
	}

	// Items stay the deterministic draft's; the reasoning service only
	// refines the narrative, which keeps the minimum-items contract intact.
	draft.Summary = enhanced
	return draft, nil
}

func buildDelegatedPrompt(snapshot models.ConditionsSnapshot, draft models.RecommendationSet) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Weather for ZIP %s: %.0fF, condition %s, humidity %.0f%%, wind %.0f mph.\n",
		snapshot.Zip, snapshot.TempF, snapshot.Condition, snapshot.HumidityPct, snapshot.WindMph)
	b.WriteString("Draft recommendation:\n")
	for _, item := range draft.Items {
		fmt.Fprintf(&b, "- [%s] %s", item.Category, item.Item)
		if item.Rationale != "" {
			fmt.Fprintf(&b, " (%s)", item.Rationale)
		}
		b.WriteString("\n")
	}
	if draft.Advisory != "" {
		fmt.Fprintf(&b, "Advisory: %s\n", draft.Advisory)
	}
	return b.String()
}
