package advisor

import "clothing-advisor/internal/models"

// Path selects the recommendation strategy for one request.
type Path string

const (
	PathSimple  Path = "simple"
	PathComplex Path = "complex"
)

// Near-freezing transition band: precipitation inside it can land as rain,
// snow, or ice, which the rule table cannot disambiguate well.
const (
	freezingBandLowF  = 30.0
	freezingBandHighF = 35.0
)

// boundaryWindowF widens each bucket threshold into an ambiguity window; a
// reading that close to an edge gets a second opinion.
const boundaryWindowF = 2.0

// unusualConditions lists condition tags the rule table has no good answer
// for.
var unusualConditions = map[models.Condition]struct{}{
	models.ConditionFog:   {},
	models.ConditionHaze:  {},
	models.ConditionSmoke: {},
}

// ClassifyOptions carries caller signals that are not derivable from the
// snapshot itself.
type ClassifyOptions struct {
	// Personalize requests contextual reasoning regardless of conditions.
	Personalize bool
}

// Classify decides whether the deterministic rule table suffices or the
// request warrants escalation to the reasoning service. Pure and total: it
// never fails and returns exactly one of the two paths. Roughly four in five
// requests are expected to stay on the simple path; the boundary below is
// what keeps escalation cost bounded.
func Classify(s models.ConditionsSnapshot, opts ClassifyOptions) Path {
	if opts.Personalize {
		return PathComplex
	}

	if s.TempF > freezingBandLowF && s.TempF < freezingBandHighF && s.Condition.IsPrecipitating() {
		return PathComplex
	}

	for _, threshold := range bucketThresholds {
		if s.TempF >= threshold-boundaryWindowF && s.TempF <= threshold+boundaryWindowF {
			return PathComplex
		}
	}

	if _, unusual := unusualConditions[s.Condition]; unusual {
		return PathComplex
	}

	return PathSimple
}
