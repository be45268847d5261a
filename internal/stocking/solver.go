// Package stocking recommends per-species fish quantities for a tank.
//
// The solver is deliberately small: selections of one or two species are
// solved near-optimally, while three or more species use a conservative
// greedy allocation. It never errors; bad inputs degrade to zero
// quantities, which downstream surfaces render as "do not stock".
package stocking

import (
	"math"
	"sort"

	"github.com/Skippy-iskipi/AquaSync-Project-sub006/internal/catalog"
	"github.com/Skippy-iskipi/AquaSync-Project-sub006/internal/domain"
)

const (
	// maxSingleSpeciesCount caps any single-species recommendation.
	maxSingleSpeciesCount = 50

	// maxPairCount caps per-species counts in two-species selections.
	maxPairCount = 20

	// multiSpeciesVolumeShare is the fraction of tank volume allocated
	// when three or more species are selected, reserving headroom for
	// cross-species bioload.
	multiSpeciesVolumeShare = 0.70

	// multiSpeciesBuffer is how far above its schooling minimum a
	// species may be stocked in a multi-species allocation.
	multiSpeciesBuffer = 2

	// bioloadReferenceVolumeLiters is the volume the per-species density
	// ceilings are expressed against.
	bioloadReferenceVolumeLiters = 40.0

	// conditionalReduction scales quantities down when compatibility
	// holds only with conditions.
	conditionalReduction = 0.8
)

// Solver computes stocking recommendations using catalog profiles.
type Solver struct {
	catalog *catalog.Catalog
}

// NewSolver returns a solver backed by the given catalog.
func NewSolver(c *catalog.Catalog) *Solver {
	return &Solver{catalog: c}
}

type selection struct {
	key     string
	profile domain.SpeciesProfile
	aliases []string
}

// Recommend produces a quantity for every name in species. The verdict
// gates the whole computation: incompatible selections map every name
// to zero, and conditional compatibility reduces each recommendation by
// 20% (never below one fish once at least one was recommended).
//
// Names resolving to the same catalog entry are solved once and the
// result is reported under each supplied spelling.
func (s *Solver) Recommend(volumeLiters float64, species []string, verdict domain.CompatibilityVerdict) domain.StockingRecommendation {
	recommendation := make(domain.StockingRecommendation, len(species))
	for _, name := range species {
		recommendation[name] = 0
	}
	if len(species) == 0 {
		return recommendation
	}
	if verdict.Status == domain.CompatibilityIncompatible {
		return recommendation
	}
	if volumeLiters <= 0 {
		return recommendation
	}

	selections := s.dedupe(species)
	counts := make([]int, len(selections))

	switch len(selections) {
	case 1:
		counts[0] = singleSpeciesCount(volumeLiters, selections[0].profile)
	case 2:
		counts[0], counts[1] = pairCounts(volumeLiters, selections[0].profile, selections[1].profile)
	default:
		multiSpeciesCounts(volumeLiters, selections, counts)
	}

	if verdict.Status == domain.CompatibilityConditional {
		for i, count := range counts {
			counts[i] = reduceForCondition(count)
		}
	}

	for i, sel := range selections {
		for _, alias := range sel.aliases {
			recommendation[alias] = counts[i]
		}
	}
	return recommendation
}

// dedupe collapses spellings that normalize to the same species while
// preserving first-seen order.
func (s *Solver) dedupe(species []string) []selection {
	index := make(map[string]int, len(species))
	selections := make([]selection, 0, len(species))
	for _, name := range species {
		key := catalog.Normalize(name)
		if i, ok := index[key]; ok {
			selections[i].aliases = append(selections[i].aliases, name)
			continue
		}
		index[key] = len(selections)
		selections = append(selections, selection{
			key:     key,
			profile: s.catalog.Profile(name),
			aliases: []string{name},
		})
	}
	return selections
}

// singleSpeciesCount balances swimming space against waste density. The
// schooling minimum is honored when it fits; when it cannot, at least
// one fish is still recommended so the shortfall stays visible to the
// caller instead of silently zeroing out.
func singleSpeciesCount(volumeLiters float64, profile domain.SpeciesProfile) int {
	maxByVolume := floorDiv(volumeLiters, profile.VolumePerFishLiters)
	maxByBioload := int((volumeLiters / bioloadReferenceVolumeLiters) * float64(profile.MaxRecommendedPer40Liters))
	maxPossible := maxByVolume
	if maxByBioload < maxPossible {
		maxPossible = maxByBioload
	}

	if maxPossible >= profile.SchoolingMinimum {
		return clampInt(maxPossible, profile.SchoolingMinimum, maxSingleSpeciesCount)
	}
	return clampInt(maxPossible, 1, maxSingleSpeciesCount)
}

// pairCounts enumerates counts of the first species from its schooling
// minimum upward and fills the remaining volume with the second. Among
// feasible candidates the highest total fish count wins; ties keep the
// first candidate found, so the lower first-species count is preferred.
// When no candidate satisfies both schooling minimums the first species
// falls back to its minimum alone.
func pairCounts(volumeLiters float64, first, second domain.SpeciesProfile) (int, int) {
	bestTotal := -1
	bestFirst, bestSecond := 0, 0

	for count1 := first.SchoolingMinimum; count1 <= maxPairCount; count1++ {
		remaining := volumeLiters - float64(count1)*first.VolumePerFishLiters
		feasible := floorDiv(remaining, second.VolumePerFishLiters)
		if feasible < second.SchoolingMinimum {
			continue
		}
		count2 := feasible
		if count2 > maxPairCount {
			count2 = maxPairCount
		}
		if total := count1 + count2; total > bestTotal {
			bestTotal = total
			bestFirst, bestSecond = count1, count2
		}
	}

	if bestTotal < 0 {
		return first.SchoolingMinimum, 0
	}
	return bestFirst, bestSecond
}

// multiSpeciesCounts allocates 70% of the volume greedily, heaviest
// waste producers first. Each species gets at most a small buffer above
// its schooling minimum; a species whose minimum no longer fits gets 0.
func multiSpeciesCounts(volumeLiters float64, selections []selection, counts []int) {
	order := make([]int, len(selections))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		return selections[order[a]].profile.BioloadFactor > selections[order[b]].profile.BioloadFactor
	})

	remaining := volumeLiters * multiSpeciesVolumeShare
	for _, i := range order {
		profile := selections[i].profile
		feasible := floorDiv(remaining, profile.VolumePerFishLiters)
		if feasible < profile.SchoolingMinimum {
			counts[i] = 0
			continue
		}
		count := clampInt(feasible, profile.SchoolingMinimum, profile.SchoolingMinimum+multiSpeciesBuffer)
		counts[i] = count
		remaining -= float64(count) * profile.VolumePerFishLiters
	}
}

// reduceForCondition applies the 20% conditional-compatibility cut.
// Quantities of zero stay zero; anything recommended stays at least one.
func reduceForCondition(count int) int {
	if count < 1 {
		return count
	}
	reduced := int(math.Floor(float64(count) * conditionalReduction))
	return clampInt(reduced, 1, count)
}

// floorDiv is the whole number of fish fitting in a volume, 0 when the
// inputs are degenerate.
func floorDiv(volumeLiters, perFishLiters float64) int {
	if volumeLiters <= 0 || perFishLiters <= 0 {
		return 0
	}
	return int(volumeLiters / perFishLiters)
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
