package feeding

import (
	"fmt"
	"math"

	"github.com/Skippy-iskipi/AquaSync-Project-sub006/internal/domain"
)

// ShelfLife describes how long a feed category stays safe to use and
// the shorter window in which it should ideally be consumed.
type ShelfLife struct {
	ShelfLifeDays  int `json:"shelf_life_days"`
	OptimalUseDays int `json:"optimal_use_days"`
}

var shelfLives = map[domain.FeedCategory]ShelfLife{
	domain.FeedDry:            {ShelfLifeDays: 365, OptimalUseDays: 90},
	domain.FeedFreezeDried:    {ShelfLifeDays: 730, OptimalUseDays: 180},
	domain.FeedFrozen:         {ShelfLifeDays: 365, OptimalUseDays: 180},
	domain.FeedLive:           {ShelfLifeDays: 7, OptimalUseDays: 3},
	domain.FeedFreshVegetable: {ShelfLifeDays: 5, OptimalUseDays: 2},
}

// defaultShelfLife covers FeedOther and unrecognized categories.
var defaultShelfLife = ShelfLife{ShelfLifeDays: 180, OptimalUseDays: 60}

// ShelfLifeFor returns the shelf-life class for a feed category.
func ShelfLifeFor(category domain.FeedCategory) ShelfLife {
	if life, ok := shelfLives[category]; ok {
		return life
	}
	return defaultShelfLife
}

// purchaseSafetyFactor pads the recommended purchase by 10%.
const purchaseSafetyFactor = 1.1

// Forecast classifies how urgently a feed needs restocking.
//
// Duration is on-hand mass divided by daily consumption. The branches
// are checked in a fixed order: spoilage first, then oversupply, then
// the low-stock thresholds at 7 and 14 days. Zero daily consumption is
// reported as missing data rather than a division by zero.
func Forecast(state domain.FeedInventoryState) domain.FeedForecast {
	life := ShelfLifeFor(state.Category)

	if state.DailyConsumptionGrams <= 0 {
		return domain.FeedForecast{
			DurationDays:   0,
			Urgency:        domain.UrgencyInfo,
			Recommendation: "No consumption data for this feed yet; assign fish that eat it to forecast depletion.",
		}
	}

	onHand := state.OnHandGrams
	if onHand < 0 {
		onHand = 0
	}
	duration := onHand / state.DailyConsumptionGrams
	purchase := recommendedPurchaseGrams(state.DailyConsumptionGrams, life)

	forecast := domain.FeedForecast{
		DurationDays:             duration,
		RecommendedPurchaseGrams: purchase,
	}

	switch {
	case duration > float64(life.ShelfLifeDays):
		forecast.Urgency = domain.UrgencyWarning
		forecast.Recommendation = fmt.Sprintf(
			"Current stock lasts %.0f days but spoils after %d; it will spoil before use. Buy no more than %dg at a time.",
			duration, life.ShelfLifeDays, purchase)
	case duration > float64(life.OptimalUseDays):
		forecast.Urgency = domain.UrgencyInfo
		forecast.Recommendation = fmt.Sprintf(
			"Large supply: %.0f days on hand exceeds the %d-day optimal-use window. Buy smaller portions of about %dg.",
			duration, life.OptimalUseDays, purchase)
	case duration < 7:
		forecast.Urgency = domain.UrgencyUrgent
		forecast.Recommendation = fmt.Sprintf(
			"Only %.1f days of feed left. Restock about %dg now.",
			duration, purchase)
	case duration < 14:
		forecast.Urgency = domain.UrgencyAttention
		forecast.Recommendation = fmt.Sprintf(
			"Roughly %.1f days of feed left. Plan to buy about %dg soon.",
			duration, purchase)
	default:
		forecast.Urgency = domain.UrgencyNormal
		forecast.Recommendation = fmt.Sprintf(
			"Feed level is good for about %.0f days. A purchase of about %dg keeps stock within its optimal window.",
			duration, purchase)
	}

	return forecast
}

// recommendedPurchaseGrams sizes a purchase to the optimal-use window
// plus the safety factor. The tiny subtraction keeps exact products
// from being pushed over the next integer by float noise before the
// ceiling is taken.
func recommendedPurchaseGrams(dailyGrams float64, life ShelfLife) int {
	raw := dailyGrams * float64(life.OptimalUseDays) * purchaseSafetyFactor
	return int(math.Ceil(raw - 1e-9))
}
