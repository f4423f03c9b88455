package advisor

import (
	"context"
	"fmt"

	"clothing-advisor/internal/models"
)

// Strategy produces a recommendation set for a snapshot. The two
// implementations are interchangeable behind this interface; RuleStrategy
// can never fail.
type Strategy interface {
	Produce(ctx context.Context, snapshot models.ConditionsSnapshot) (models.RecommendationSet, error)
}

// bucketThresholds are the temperature bucket edges, in Fahrenheit,
// inclusive-lower / exclusive-upper. The classifier's boundary windows and
// the delegated prompt both derive from these same values so the two
// strategies can never contradict each other on bucket membership.
var bucketThresholds = []float64{32, 50, 70, 85}

type tempBucket struct {
	name  string
	items []models.RecommendationItem
}

// Buckets: below 32, [32,50), [50,70), [70,85), 85 and up. Every bucket
// contributes at least two base items.
var tempBuckets = []tempBucket{
	{
		name: "freezing",
		items: []models.RecommendationItem{
			{Category: models.CategoryOuterwear, Item: "insulated winter coat", Rationale: "temperatures below freezing"},
			{Category: models.CategoryLayer, Item: "thermal base layer", Rationale: "traps warmth in freezing air"},
			{Category: models.CategoryFootwear, Item: "insulated waterproof boots", Rationale: "keeps feet warm and dry"},
			{Category: models.CategoryAccessory, Item: "warm hat and gloves", Rationale: "limits heat loss at extremities"},
		},
	},
	{
		name: "cold",
		items: []models.RecommendationItem{
			{Category: models.CategoryOuterwear, Item: "warm jacket", Rationale: "cold but above freezing"},
			{Category: models.CategoryLayer, Item: "sweater or fleece", Rationale: "midlayer for cold air"},
			{Category: models.CategoryBottom, Item: "long pants", Rationale: "full coverage for cold weather"},
		},
	},
	{
		name: "mild",
		items: []models.RecommendationItem{
			{Category: models.CategoryOuterwear, Item: "light jacket or hoodie", Rationale: "mild with a possible chill"},
			{Category: models.CategoryBottom, Item: "long pants or jeans", Rationale: "comfortable in mild weather"},
		},
	},
	{
		name: "warm",
		items: []models.RecommendationItem{
			{Category: models.CategoryTop, Item: "t-shirt or short sleeves", Rationale: "warm daytime temperatures"},
			{Category: models.CategoryBottom, Item: "shorts or light pants", Rationale: "stays comfortable in warm air"},
		},
	},
	{
		name: "hot",
		items: []models.RecommendationItem{
			{Category: models.CategoryTop, Item: "lightweight breathable top", Rationale: "hot conditions"},
			{Category: models.CategoryBottom, Item: "shorts", Rationale: "minimizes overheating"},
			{Category: models.CategoryProtection, Item: "sunscreen and sunglasses", Rationale: "strong sun exposure likely"},
		},
	},
}

// Wind overlay thresholds in mph.
const (
	windOverlayMph       = 15.0
	windStrongOverlayMph = 25.0
)

var precipOverlays = map[models.Precip][]models.RecommendationItem{
	models.PrecipRain: {
		{Category: models.CategoryOuterwear, Item: "waterproof rain jacket", Rationale: "active rain"},
		{Category: models.CategoryAccessory, Item: "umbrella", Rationale: "keeps you dry between doors"},
	},
	models.PrecipSnow: {
		{Category: models.CategoryFootwear, Item: "waterproof snow boots", Rationale: "snow on the ground"},
	},
	models.PrecipMixed: {
		{Category: models.CategoryOuterwear, Item: "waterproof shell", Rationale: "mixed rain and snow"},
	},
	models.PrecipStormy: {
		{Category: models.CategoryOuterwear, Item: "waterproof shell with hood", Rationale: "storm conditions; skip the umbrella near lightning"},
	},
}

// RuleStrategy is the deterministic floor: a pure table lookup that always
// returns the same ordered set for the same snapshot and never fails.
type RuleStrategy struct{}

func NewRuleStrategy() *RuleStrategy {
	return &RuleStrategy{}
}

func bucketFor(tempF float64) tempBucket {
	for i, threshold := range bucketThresholds {
		if tempF < threshold {
			return tempBuckets[i]
		}
	}
	return tempBuckets[len(tempBuckets)-1]
}

func (s *RuleStrategy) Produce(_ context.Context, snapshot models.ConditionsSnapshot) (models.RecommendationSet, error) {
	bucket := bucketFor(snapshot.TempF)

	items := make([]models.RecommendationItem, 0, len(bucket.items)+4)
	items = append(items, bucket.items...)

	if overlay, ok := precipOverlays[snapshot.Precip]; ok {
		items = append(items, overlay...)
	}

	advisory := ""
	if snapshot.WindMph > windStrongOverlayMph {
		items = append(items, models.RecommendationItem{
			Category:  models.CategoryOuterwear,
			Item:      "heavy windproof shell",
			Rationale: fmt.Sprintf("strong wind at %.0f mph", snapshot.WindMph),
		})
		advisory = "Strong wind: secure loose layers and skip umbrellas."
	} else if snapshot.WindMph > windOverlayMph {
		items = append(items, models.RecommendationItem{
			Category:  models.CategoryLayer,
			Item:      "windproof outer layer",
			Rationale: fmt.Sprintf("breezy at %.0f mph", snapshot.WindMph),
		})
	}

	// Guaranteed floor: the product contract is at least three items.
	for len(items) < models.MinRecommendationItems {
		items = append(items, models.RecommendationItem{
			Category: models.CategoryLayer,
			Item:     "weather-appropriate layer",
		})
	}

	summary := fmt.Sprintf("%s and %s in %s (%.0f°F, wind %.0f mph) - dress accordingly.",
		titleCase(bucket.name), string(snapshot.Condition), snapshot.Zip, snapshot.TempF, snapshot.WindMph)

	return models.RecommendationSet{
		Items:    items,
		Summary:  summary,
		Advisory: advisory,
	}, nil
}

func titleCase(s string) string {
	if s == "" {
		return s
	}
	return string(s[0]-'a'+'A') + s[1:]
}
