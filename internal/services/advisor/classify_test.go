package advisor_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"clothing-advisor/internal/models"
	"clothing-advisor/internal/services/advisor"
)

func snap(tempF float64, cond models.Condition, windMph float64) models.ConditionsSnapshot {
	return models.ConditionsSnapshot{
		Zip:       "80302",
		TempF:     tempF,
		Condition: cond,
		WindMph:   windMph,
		Precip:    cond.PrecipCategory(),
	}
}

func TestClassifyNearFreezingPrecipitation(t *testing.T) {
	// Inside the 30-35 band with precipitation escalates.
	assert.Equal(t, advisor.PathComplex, advisor.Classify(snap(33, models.ConditionRain, 10), advisor.ClassifyOptions{}))
	assert.Equal(t, advisor.PathComplex, advisor.Classify(snap(31, models.ConditionSnow, 0), advisor.ClassifyOptions{}))

	// Below the band, snow is plain winter weather.
	assert.Equal(t, advisor.PathSimple, advisor.Classify(snap(25, models.ConditionSnow, 18), advisor.ClassifyOptions{}))

	// Inside the band without precipitation: the band alone does not
	// escalate, but 33 sits in the 32-threshold boundary window anyway.
	assert.Equal(t, advisor.PathComplex, advisor.Classify(snap(33, models.ConditionClear, 0), advisor.ClassifyOptions{}))
}

func TestClassifyBoundaryWindows(t *testing.T) {
	// Readings within 2 degrees of any bucket edge escalate.
	for _, temp := range []float64{30, 32, 34, 48, 50, 52, 68, 70, 72, 83, 85, 87} {
		assert.Equal(t, advisor.PathComplex, advisor.Classify(snap(temp, models.ConditionClear, 5), advisor.ClassifyOptions{}),
			"temp %.0f should be in a boundary window", temp)
	}

	// Comfortably inside a bucket stays simple.
	for _, temp := range []float64{-10, 20, 25, 40, 45, 60, 65, 75, 80, 88, 95, 110} {
		assert.Equal(t, advisor.PathSimple, advisor.Classify(snap(temp, models.ConditionClear, 5), advisor.ClassifyOptions{}),
			"temp %.0f should be simple", temp)
	}
}

func TestClassifyUnusualConditions(t *testing.T) {
	for _, cond := range []models.Condition{models.ConditionFog, models.ConditionHaze, models.ConditionSmoke} {
		assert.Equal(t, advisor.PathComplex, advisor.Classify(snap(60, cond, 5), advisor.ClassifyOptions{}))
	}

	assert.Equal(t, advisor.PathSimple, advisor.Classify(snap(60, models.ConditionCloudy, 5), advisor.ClassifyOptions{}))
}

func TestClassifyPersonalizeFlag(t *testing.T) {
	s := snap(60, models.ConditionClear, 5)
	assert.Equal(t, advisor.PathSimple, advisor.Classify(s, advisor.ClassifyOptions{}))
	assert.Equal(t, advisor.PathComplex, advisor.Classify(s, advisor.ClassifyOptions{Personalize: true}))
}

func TestClassifyTotality(t *testing.T) {
	// Every combination returns exactly one of the two paths; no input fails.
	conditions := []models.Condition{
		models.ConditionUnknown, models.ConditionClear, models.ConditionCloudy,
		models.ConditionRain, models.ConditionDrizzle, models.ConditionSnow,
		models.ConditionSleet, models.ConditionStorm, models.ConditionFog,
		models.ConditionHaze, models.ConditionSmoke,
	}
	for temp := -40.0; temp <= 130.0; temp += 0.5 {
		for _, cond := range conditions {
			path := advisor.Classify(snap(temp, cond, 12), advisor.ClassifyOptions{})
			assert.True(t, path == advisor.PathSimple || path == advisor.PathComplex)
		}
	}
}
