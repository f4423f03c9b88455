package advisor_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"clothing-advisor/internal/models"
	"clothing-advisor/internal/services/advisor"
)

func TestRuleStrategyIdempotence(t *testing.T) {
	rules := advisor.NewRuleStrategy()
	s := snap(33, models.ConditionRain, 10)

	first, err := rules.Produce(context.Background(), s)
	require.NoError(t, err)

	for i := 0; i < 10; i++ {
		again, err := rules.Produce(context.Background(), s)
		require.NoError(t, err)
		assert.Equal(t, first, again, "same snapshot must give identical set, same order")
	}
}

func TestRuleStrategyMinimumCardinality(t *testing.T) {
	rules := advisor.NewRuleStrategy()

	conditions := []models.Condition{
		models.ConditionUnknown, models.ConditionClear, models.ConditionCloudy,
		models.ConditionRain, models.ConditionSnow, models.ConditionStorm,
		models.ConditionFog,
	}
	for temp := -40.0; temp <= 130.0; temp += 1.0 {
		for _, cond := range conditions {
			for _, wind := range []float64{0, 16, 30} {
				set, err := rules.Produce(context.Background(), snap(temp, cond, wind))
				require.NoError(t, err)
				assert.GreaterOrEqual(t, len(set.Items), models.MinRecommendationItems,
					"temp %.0f cond %s wind %.0f", temp, cond, wind)
				assert.NotEmpty(t, set.Summary)
			}
		}
	}
}

func TestRuleStrategyFreezingSnowWindy(t *testing.T) {
	// 25F, snow, wind 18: winter outerwear, footwear, wind overlay and an
	// accessory, at least four items total.
	rules := advisor.NewRuleStrategy()

	set, err := rules.Produce(context.Background(), snap(25, models.ConditionSnow, 18))
	require.NoError(t, err)

	assert.GreaterOrEqual(t, len(set.Items), 4)
	assert.True(t, hasCategory(set, models.CategoryOuterwear))
	assert.True(t, hasCategory(set, models.CategoryFootwear))
	assert.True(t, hasCategory(set, models.CategoryAccessory))
	assert.True(t, hasItem(set, "windproof outer layer"), "wind above 15 mph adds the wind overlay")
}

func TestRuleStrategyHotClear(t *testing.T) {
	// 88F clear: light clothing and sun protection, no precipitation overlay.
	rules := advisor.NewRuleStrategy()

	set, err := rules.Produce(context.Background(), snap(88, models.ConditionClear, 5))
	require.NoError(t, err)

	assert.GreaterOrEqual(t, len(set.Items), 3)
	assert.True(t, hasCategory(set, models.CategoryProtection))
	assert.True(t, hasItem(set, "lightweight breathable top"))
	assert.False(t, hasItem(set, "waterproof rain jacket"))
	assert.False(t, hasItem(set, "umbrella"))
}

func TestRuleStrategyStrongWindAdvisory(t *testing.T) {
	rules := advisor.NewRuleStrategy()

	set, err := rules.Produce(context.Background(), snap(60, models.ConditionClear, 30))
	require.NoError(t, err)

	assert.True(t, hasItem(set, "heavy windproof shell"))
	assert.NotEmpty(t, set.Advisory)
}

func TestRuleStrategyBucketEdges(t *testing.T) {
	rules := advisor.NewRuleStrategy()

	// Inclusive-lower / exclusive-upper: 32 belongs to cold, 31.9 to freezing.
	cold, err := rules.Produce(context.Background(), snap(32, models.ConditionClear, 0))
	require.NoError(t, err)
	assert.True(t, hasItem(cold, "warm jacket"))

	freezing, err := rules.Produce(context.Background(), snap(31.9, models.ConditionClear, 0))
	require.NoError(t, err)
	assert.True(t, hasItem(freezing, "insulated winter coat"))

	hot, err := rules.Produce(context.Background(), snap(85, models.ConditionClear, 0))
	require.NoError(t, err)
	assert.True(t, hasItem(hot, "lightweight breathable top"))
}

func hasCategory(set models.RecommendationSet, cat models.Category) bool {
	for _, item := range set.Items {
		if item.Category == cat {
			return true
		}
	}
	return false
}

func hasItem(set models.RecommendationSet, name string) bool {
	for _, item := range set.Items {
		if item.Item == name {
			return true
		}
	}
	return false
}
