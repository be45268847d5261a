// Package catalog holds the static planning parameters for common
// aquarium species.
//
// Lookups resolve a raw user-entered name in three stages: an exact
// match on the normalized name, then an ordered substring scan in
// either direction (entry contains query, or query contains entry),
// then a conservative default. The scan order is fixed so that repeated
// lookups of an ambiguous name always resolve to the same entry.
package catalog

import (
	"strings"

	"github.com/Skippy-iskipi/AquaSync-Project-sub006/internal/domain"
)

// profiles is the static planning table, in match-priority order.
// Generic family tokens such as "tetra" or "barb" resolve to the first
// entry of that family, so the most common representative sits first.
var profiles = []domain.SpeciesProfile{
	{Name: "Neon Tetra", BioloadFactor: 0.5, VolumePerFishLiters: 3.0, AdultSizeCm: 3.5, SchoolingMinimum: 8, MaxRecommendedPer40Liters: 13, DailyFoodGrams: 0.03},
	{Name: "Cardinal Tetra", BioloadFactor: 0.5, VolumePerFishLiters: 3.5, AdultSizeCm: 4.0, SchoolingMinimum: 8, MaxRecommendedPer40Liters: 12, DailyFoodGrams: 0.04},
	{Name: "Harlequin Rasbora", BioloadFactor: 0.5, VolumePerFishLiters: 4.0, AdultSizeCm: 4.5, SchoolingMinimum: 6, MaxRecommendedPer40Liters: 10, DailyFoodGrams: 0.05},
	{Name: "Zebra Danio", BioloadFactor: 0.6, VolumePerFishLiters: 4.0, AdultSizeCm: 5.0, SchoolingMinimum: 6, MaxRecommendedPer40Liters: 10, DailyFoodGrams: 0.08},
	{Name: "Guppy", BioloadFactor: 0.6, VolumePerFishLiters: 4.0, AdultSizeCm: 4.5, SchoolingMinimum: 3, MaxRecommendedPer40Liters: 10, DailyFoodGrams: 0.06},
	{Name: "Endler Livebearer", BioloadFactor: 0.5, VolumePerFishLiters: 3.0, AdultSizeCm: 3.0, SchoolingMinimum: 3, MaxRecommendedPer40Liters: 12, DailyFoodGrams: 0.03},
	{Name: "Cherry Barb", BioloadFactor: 0.7, VolumePerFishLiters: 5.0, AdultSizeCm: 5.0, SchoolingMinimum: 5, MaxRecommendedPer40Liters: 8, DailyFoodGrams: 0.08},
	{Name: "Tiger Barb", BioloadFactor: 1.0, VolumePerFishLiters: 8.0, AdultSizeCm: 7.0, SchoolingMinimum: 6, MaxRecommendedPer40Liters: 6, DailyFoodGrams: 0.2},
	{Name: "Platy", BioloadFactor: 0.8, VolumePerFishLiters: 6.0, AdultSizeCm: 6.0, SchoolingMinimum: 3, MaxRecommendedPer40Liters: 8, DailyFoodGrams: 0.15},
	{Name: "Molly", BioloadFactor: 1.0, VolumePerFishLiters: 8.0, AdultSizeCm: 8.0, SchoolingMinimum: 3, MaxRecommendedPer40Liters: 6, DailyFoodGrams: 0.25},
	{Name: "Swordtail", BioloadFactor: 1.0, VolumePerFishLiters: 10.0, AdultSizeCm: 10.0, SchoolingMinimum: 3, MaxRecommendedPer40Liters: 5, DailyFoodGrams: 0.4},
	{Name: "Corydoras", BioloadFactor: 0.8, VolumePerFishLiters: 8.0, AdultSizeCm: 6.0, SchoolingMinimum: 4, MaxRecommendedPer40Liters: 6, DailyFoodGrams: 0.15},
	{Name: "Otocinclus", BioloadFactor: 0.4, VolumePerFishLiters: 5.0, AdultSizeCm: 4.0, SchoolingMinimum: 4, MaxRecommendedPer40Liters: 8, DailyFoodGrams: 0.05},
	{Name: "Betta", BioloadFactor: 1.0, VolumePerFishLiters: 15.0, AdultSizeCm: 6.5, SchoolingMinimum: 1, MaxRecommendedPer40Liters: 1, DailyFoodGrams: 0.1},
	{Name: "Dwarf Gourami", BioloadFactor: 1.0, VolumePerFishLiters: 20.0, AdultSizeCm: 8.0, SchoolingMinimum: 1, MaxRecommendedPer40Liters: 2, DailyFoodGrams: 0.25},
	{Name: "Angelfish", BioloadFactor: 2.0, VolumePerFishLiters: 40.0, AdultSizeCm: 15.0, SchoolingMinimum: 1, MaxRecommendedPer40Liters: 1, DailyFoodGrams: 1.5},
	{Name: "Goldfish", BioloadFactor: 3.0, VolumePerFishLiters: 40.0, AdultSizeCm: 25.0, SchoolingMinimum: 1, MaxRecommendedPer40Liters: 1, DailyFoodGrams: 2.0},
	{Name: "Oscar", BioloadFactor: 5.0, VolumePerFishLiters: 200.0, AdultSizeCm: 35.0, SchoolingMinimum: 1, MaxRecommendedPer40Liters: 1, DailyFoodGrams: 8.0},
	{Name: "Common Pleco", BioloadFactor: 4.0, VolumePerFishLiters: 150.0, AdultSizeCm: 40.0, SchoolingMinimum: 1, MaxRecommendedPer40Liters: 1, DailyFoodGrams: 5.0},
	{Name: "Cherry Shrimp", BioloadFactor: 0.1, VolumePerFishLiters: 1.0, AdultSizeCm: 2.5, SchoolingMinimum: 1, MaxRecommendedPer40Liters: 40, DailyFoodGrams: 0.01},
	{Name: "Nerite Snail", BioloadFactor: 0.2, VolumePerFishLiters: 4.0, AdultSizeCm: 2.5, SchoolingMinimum: 1, MaxRecommendedPer40Liters: 10, DailyFoodGrams: 0.02},
}

// defaultProfile is returned for names that match nothing in the table.
// The values are deliberately strict (high per-fish volume, low density
// ceiling) so an unknown species can never be stocked more aggressively
// than a known one would be.
var defaultProfile = domain.SpeciesProfile{
	Name:                      "Unknown Species",
	BioloadFactor:             2.0,
	VolumePerFishLiters:       20.0,
	AdultSizeCm:               0,
	SchoolingMinimum:          1,
	MaxRecommendedPer40Liters: 2,
	DailyFoodGrams:            0.5,
}

// Catalog resolves species names to planning profiles.
type Catalog struct {
	ordered []domain.SpeciesProfile
	keys    []string
	byKey   map[string]int
	def     domain.SpeciesProfile
}

// New builds a catalog over the built-in species table.
func New() *Catalog {
	c := &Catalog{
		ordered: profiles,
		keys:    make([]string, len(profiles)),
		byKey:   make(map[string]int, len(profiles)),
		def:     defaultProfile,
	}
	for i, p := range profiles {
		key := Normalize(p.Name)
		c.keys[i] = key
		c.byKey[key] = i
	}
	return c
}

// Normalize lowercases a raw species name, trims it, and collapses
// internal whitespace so that lookups are insensitive to formatting.
func Normalize(name string) string {
	return strings.Join(strings.Fields(strings.ToLower(name)), " ")
}

// Lookup resolves a raw species name to a planning profile. The second
// return value reports whether the name matched a table entry; when it
// is false the returned profile is the conservative default.
func (c *Catalog) Lookup(name string) (domain.SpeciesProfile, bool) {
	key := Normalize(name)
	if key == "" {
		return c.def, false
	}
	if i, ok := c.byKey[key]; ok {
		return c.ordered[i], true
	}
	for i, entryKey := range c.keys {
		if strings.Contains(entryKey, key) || strings.Contains(key, entryKey) {
			return c.ordered[i], true
		}
	}
	return c.def, false
}

// Profile resolves a raw species name, falling back to the default
// profile for unknown names. It never fails.
func (c *Catalog) Profile(name string) domain.SpeciesProfile {
	profile, _ := c.Lookup(name)
	return profile
}

// Default returns the profile applied to unmatched species names.
func (c *Catalog) Default() domain.SpeciesProfile {
	return c.def
}

// Profiles returns the table entries in match-priority order.
func (c *Catalog) Profiles() []domain.SpeciesProfile {
	out := make([]domain.SpeciesProfile, len(c.ordered))
	copy(out, c.ordered)
	return out
}

// AdultSizeCm reports the catalog's adult size for a name, if the name
// matched a table entry with a known size.
func (c *Catalog) AdultSizeCm(name string) (float64, bool) {
	profile, matched := c.Lookup(name)
	if !matched || profile.AdultSizeCm <= 0 {
		return 0, false
	}
	return profile.AdultSizeCm, true
}
