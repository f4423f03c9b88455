package models

// Category tags a recommendation item with the slot it fills.
type Category string

const (
	CategoryOuterwear  Category = "outerwear"
	CategoryTop        Category = "top"
	CategoryBottom     Category = "bottom"
	CategoryFootwear   Category = "footwear"
	CategoryAccessory  Category = "accessory"
	CategoryProtection Category = "protection"
	CategoryLayer      Category = "layer"
)

// MinRecommendationItems is the product contract: every successful
// recommendation carries at least this many items.
const MinRecommendationItems = 3

// RecommendationItem is one suggested piece of clothing or gear.
type RecommendationItem struct {
	Category  Category `json:"category" example:"outerwear"`
	Item      string   `json:"item" example:"insulated winter coat"`
	Rationale string   `json:"rationale,omitempty" example:"temperatures below freezing"`
}

// RecommendationSet is the ordered result of one advisory request. The
// caller owns it once returned; nothing mutates it afterwards.
type RecommendationSet struct {
	Items    []RecommendationItem `json:"items"`
	Summary  string               `json:"summary" example:"Freezing and snowy in 80302 - bundle up."`
	Advisory string               `json:"advisory,omitempty" example:"Strong wind: secure loose layers."`
}
