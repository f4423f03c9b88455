package models

import "time"

// Condition is a normalized high-level weather condition tag.
type Condition string

const (
	ConditionUnknown Condition = "unknown"
	ConditionClear   Condition = "clear"
	ConditionCloudy  Condition = "cloudy"
	ConditionRain    Condition = "rain"
	ConditionDrizzle Condition = "drizzle"
	ConditionSnow    Condition = "snow"
	ConditionSleet   Condition = "sleet"
	ConditionStorm   Condition = "storm"
	ConditionFog     Condition = "fog"
	ConditionHaze    Condition = "haze"
	ConditionSmoke   Condition = "smoke"
)

// Precip categorizes precipitation for the rule overlays.
type Precip string

const (
	PrecipNone   Precip = ""
	PrecipRain   Precip = "rain"
	PrecipSnow   Precip = "snow"
	PrecipMixed  Precip = "mixed"
	PrecipStormy Precip = "storm"
)

// IsPrecipitating reports whether the condition tag indicates active precipitation.
func (c Condition) IsPrecipitating() bool {
	switch c {
	case ConditionRain, ConditionDrizzle, ConditionSnow, ConditionSleet, ConditionStorm:
		return true
	}
	return false
}

// PrecipCategory maps a condition tag onto the overlay category.
func (c Condition) PrecipCategory() Precip {
	switch c {
	case ConditionRain, ConditionDrizzle:
		return PrecipRain
	case ConditionSnow:
		return PrecipSnow
	case ConditionSleet:
		return PrecipMixed
	case ConditionStorm:
		return PrecipStormy
	}
	return PrecipNone
}

// ConditionsSnapshot is a point-in-time reading for one location. Produced
// only by the conditions fetcher; immutable; lives for a single request.
type ConditionsSnapshot struct {
	Location    LocationQuery `json:"-"`
	Zip         string        `json:"zip" example:"80302"`
	Timestamp   time.Time     `json:"timestamp"`
	TempF       float64       `json:"temperature_f" example:"33.0"`
	Condition   Condition     `json:"condition" example:"rain"`
	HumidityPct float64       `json:"humidity_percent" example:"74"`
	WindMph     float64       `json:"wind_mph" example:"12.5"`
	Precip      Precip        `json:"precip,omitempty" example:"rain"`
	Provider    string        `json:"provider,omitempty" example:"openweather"`
}
