package domain

// SpeciesProfile carries the planning parameters for a single species. All
// downstream stocking and feeding math reads from this one shape, whether the
// values came from the static catalog, the record store, or the conservative
// default for species nobody has heard of.
type SpeciesProfile struct {
	Name                      string  `json:"name"`
	BioloadFactor             float64 `json:"bioload_factor"`
	VolumePerFishLiters       float64 `json:"volume_per_fish_liters"`
	AdultSizeCm               float64 `json:"adult_size_cm"`
	SchoolingMinimum          int     `json:"schooling_minimum"`
	MaxRecommendedPer40Liters int     `json:"max_recommended_per_40_liters"`
	DailyFoodGrams            float64 `json:"daily_food_grams"`
}

// RequiresSchool reports whether the species is understocked below a group.
func (p SpeciesProfile) RequiresSchool() bool {
	return p.SchoolingMinimum > 1
}

// CompatibilityStatus is the externally computed classification of whether a
// set of species may share a tank.
type CompatibilityStatus string

const (
	CompatibilityCompatible   CompatibilityStatus = "compatible"
	CompatibilityConditional  CompatibilityStatus = "compatible_with_condition"
	CompatibilityIncompatible CompatibilityStatus = "incompatible"
)

// CompatibilityVerdict pairs a status with the classifier's textual findings.
type CompatibilityVerdict struct {
	Status CompatibilityStatus `json:"status"`
	Issues []string            `json:"issues,omitempty"`
}

// SpeciesSelection is one species a user picked and how many they keep. The
// order of a selection slice is meaningful: the stocking solver enumerates
// candidates for the first species and treats later ones as constrained by it.
type SpeciesSelection struct {
	Species  string `json:"species"`
	Quantity int    `json:"quantity"`
}

// StockingRecommendation maps species name to the recommended head count.
// Every species present in the input selection has exactly one entry, zero
// included, so callers never need to distinguish "absent" from "none".
type StockingRecommendation map[string]int

// TotalFish sums the recommended counts across species.
func (r StockingRecommendation) TotalFish() int {
	total := 0
	for _, qty := range r {
		total += qty
	}
	return total
}
