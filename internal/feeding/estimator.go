// Package feeding estimates food consumption and forecasts feed
// inventory depletion.
package feeding

import (
	"context"
	"math"
	"strings"
	"time"

	"github.com/Skippy-iskipi/AquaSync-Project-sub006/internal/domain"
)

const (
	// Allometric weight model: weightGrams = 0.12 * sizeCm^2.8.
	allometricCoefficient = 0.12
	allometricExponent    = 2.8

	// dailyIntakeFraction is the daily food mass as a fraction of body
	// weight, the midpoint of the 0.5-1% range.
	dailyIntakeFraction = 0.0075

	// defaultWeightGrams is the final weight fallback when neither a
	// known size, the oracle, nor a name pattern produces an estimate.
	defaultWeightGrams = 2.0

	// DefaultOracleTimeout bounds a single weight-oracle call. The
	// oracle is advisory; on timeout the estimator falls through to the
	// name-pattern table.
	DefaultOracleTimeout = 2 * time.Second
)

// SizeSource supplies a known adult size in centimeters for a species.
// The boolean reports whether a size is actually known.
type SizeSource interface {
	AdultSizeCm(ctx context.Context, species string) (float64, bool)
}

// WeightOracle returns a best-effort weight estimate in grams for a
// species. Non-positive results and errors are both treated as
// "unavailable".
type WeightOracle interface {
	EstimateWeightGrams(ctx context.Context, species string) (float64, error)
}

// weightPatterns maps genus and family tokens to typical adult weights
// in grams. Scanned in order; the first token contained in the name
// wins.
var weightPatterns = []struct {
	token string
	grams float64
}{
	{"tetra", 0.5},
	{"rasbora", 0.5},
	{"endler", 0.4},
	{"guppy", 0.6},
	{"danio", 0.6},
	{"platy", 2.0},
	{"molly", 4.0},
	{"swordtail", 5.0},
	{"barb", 3.0},
	{"betta", 3.0},
	{"gourami", 7.0},
	{"corydoras", 4.0},
	{"cory", 4.0},
	{"otocinclus", 1.0},
	{"angelfish", 25.0},
	{"goldfish", 30.0},
	{"oscar", 300.0},
	{"pleco", 400.0},
	{"shrimp", 0.3},
	{"snail", 1.0},
}

// Estimator derives per-fish and aggregate daily food consumption from
// estimated body weight.
//
// Weight resolution order: a known adult size run through the
// allometric model, then the external oracle, then the name-pattern
// table. Every stage failing still produces the default weight, so the
// estimate is total.
type Estimator struct {
	sizes         SizeSource
	oracle        WeightOracle
	oracleTimeout time.Duration
}

// NewEstimator builds an estimator. Either source may be nil; the
// corresponding stage is then skipped. A non-positive timeout falls
// back to DefaultOracleTimeout.
func NewEstimator(sizes SizeSource, oracle WeightOracle, oracleTimeout time.Duration) *Estimator {
	if oracleTimeout <= 0 {
		oracleTimeout = DefaultOracleTimeout
	}
	return &Estimator{sizes: sizes, oracle: oracle, oracleTimeout: oracleTimeout}
}

// EstimateWeightGrams resolves a body-weight estimate for the species.
func (e *Estimator) EstimateWeightGrams(ctx context.Context, species string) float64 {
	if e.sizes != nil {
		if sizeCm, ok := e.sizes.AdultSizeCm(ctx, species); ok && sizeCm > 0 {
			return weightFromSizeCm(sizeCm)
		}
	}

	if e.oracle != nil {
		oracleCtx, cancel := context.WithTimeout(ctx, e.oracleTimeout)
		grams, err := e.oracle.EstimateWeightGrams(oracleCtx, species)
		cancel()
		if err == nil && grams > 0 {
			return grams
		}
	}

	return weightFromNamePattern(species)
}

// DailyGramsPerFish is the estimated daily food mass for one individual.
func (e *Estimator) DailyGramsPerFish(ctx context.Context, species string) float64 {
	return e.EstimateWeightGrams(ctx, species) * dailyIntakeFraction
}

// DailyConsumptionGrams aggregates daily food mass across a selection,
// scaling each species by its quantity. Non-positive quantities
// contribute nothing.
func (e *Estimator) DailyConsumptionGrams(ctx context.Context, selections []domain.SpeciesSelection) float64 {
	var total float64
	for _, sel := range selections {
		if sel.Quantity <= 0 {
			continue
		}
		total += float64(sel.Quantity) * e.DailyGramsPerFish(ctx, sel.Species)
	}
	return total
}

func weightFromSizeCm(sizeCm float64) float64 {
	return allometricCoefficient * math.Pow(sizeCm, allometricExponent)
}

func weightFromNamePattern(species string) float64 {
	name := strings.ToLower(species)
	for _, p := range weightPatterns {
		if strings.Contains(name, p.token) {
			return p.grams
		}
	}
	return defaultWeightGrams
}
